package main

import (
	"context"

	dashboardhandler "vidtube.com/cmd/api/handlers/dashboard"
	"vidtube.com/cmd/api/handlers/interaction"
	relationhandler "vidtube.com/cmd/api/handlers/relation"
	userhandler "vidtube.com/cmd/api/handlers/user"
	videohandler "vidtube.com/cmd/api/handlers/video"
	"vidtube.com/cmd/api/router"
	dashboarddb "vidtube.com/cmd/dashboard/dal/db"
	dashboardservice "vidtube.com/cmd/dashboard/service"
	interactiondb "vidtube.com/cmd/interaction/dal/db"
	interactionservice "vidtube.com/cmd/interaction/service"
	relationdb "vidtube.com/cmd/relation/dal/db"
	relationservice "vidtube.com/cmd/relation/service"
	userdb "vidtube.com/cmd/user/dal/db"
	userservice "vidtube.com/cmd/user/service"
	videodb "vidtube.com/cmd/video/dal/db"
	videoservice "vidtube.com/cmd/video/service"
	"vidtube.com/config"
	"vidtube.com/pkg/database"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"
	"vidtube.com/pkg/oss"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conf, err := config.Init()
	if err != nil {
		logrus.Fatalf("load config failed: %v", err)
	}

	db, err := database.Init(conf)
	if err != nil {
		logrus.Fatalf("connect mysql failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("redis unavailable, analytics cache disabled: %v", err)
		rdb = nil
	}

	uploader, err := oss.NewMinioUploader(conf.Minio)
	if err != nil {
		logrus.Fatalf("init minio failed: %v", err)
	}

	tokens, err := jwt.New(conf.Jwt)
	if err != nil {
		logrus.Fatalf("init jwt failed: %v", err)
	}

	userRepo := userdb.NewUserRepo(db)
	videoRepo := videodb.NewVideoRepo(db)
	commentRepo := interactiondb.NewCommentRepo(db)
	likeRepo := interactiondb.NewLikeRepo(db)
	subscriptionRepo := relationdb.NewSubscriptionRepo(db)
	analyticsRepo := dashboarddb.NewAnalyticsRepo(db)

	userService := userservice.NewUserService(userRepo, tokens, uploader)
	videoService := videoservice.NewVideoService(videoRepo, likeRepo, uploader)
	commentService := interactionservice.NewCommentService(commentRepo, videoRepo)
	likeService := interactionservice.NewLikeService(likeRepo, commentRepo, videoRepo)
	subscriptionService := relationservice.NewSubscriptionService(subscriptionRepo, userRepo)
	dashboardService := dashboardservice.NewDashboardService(analyticsRepo, videoRepo, rdb)

	r := server.New(
		server.WithHostPorts(conf.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(512*1024*1024),
	)

	r.Use(corsMiddleware())

	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"statusCode": errno.ServiceErr.ErrCode,
				"data":       nil,
				"message":    "Internal server error",
				"success":    false,
			})
		})))

	router.Register(r, router.Deps{
		Tokens:       tokens,
		User:         userhandler.New(userService),
		Video:        videohandler.New(videoService),
		Comment:      interaction.NewCommentHandler(commentService),
		Like:         interaction.NewLikeHandler(likeService),
		Subscription: relationhandler.New(subscriptionService),
		Dashboard:    dashboardhandler.New(dashboardService, likeService),
	})

	r.Spin()
}
