package router

import (
	dashboardhandler "vidtube.com/cmd/api/handlers/dashboard"
	"vidtube.com/cmd/api/handlers/interaction"
	relationhandler "vidtube.com/cmd/api/handlers/relation"
	userhandler "vidtube.com/cmd/api/handlers/user"
	videohandler "vidtube.com/cmd/api/handlers/video"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// Deps bundles everything the route table needs. The handlers arrive
// fully constructed from main.
type Deps struct {
	Tokens       *jwt.TokenService
	User         *userhandler.Handler
	Video        *videohandler.Handler
	Comment      *interaction.CommentHandler
	Like         *interaction.LikeHandler
	Subscription *relationhandler.Handler
	Dashboard    *dashboardhandler.Handler
}

// Register wires the route table. Everything except register, login and
// the token refresh sits behind the access token middleware.
func Register(r *server.Hertz, deps Deps) {
	auth := deps.Tokens.MiddlewareFunc()

	users := r.Group("/users")
	{
		users.POST("/register", deps.User.Register)
		users.POST("/login", deps.User.Login)
		users.POST("/refresh", deps.Tokens.RefreshMiddlewareFunc(), deps.User.Refresh)
		users.POST("/change-password", auth, deps.User.ChangePassword)
		users.GET("/me", auth, deps.User.Me)
		users.PATCH("/me", auth, deps.User.UpdateProfile)
		users.PATCH("/me/avatar", auth, deps.User.UpdateAvatar)
		users.PATCH("/me/cover", auth, deps.User.UpdateCover)
	}

	videos := r.Group("/videos", auth)
	{
		videos.GET("", deps.Video.List)
		videos.POST("", deps.Video.Publish)
		videos.GET("/:video_id", deps.Video.Get)
		videos.PATCH("/:video_id", deps.Video.Update)
		videos.DELETE("/:video_id", deps.Video.Delete)
		videos.PATCH("/:video_id/publish", deps.Video.TogglePublish)
		videos.GET("/:video_id/comments", deps.Comment.ListComments)
		videos.POST("/:video_id/comments", deps.Comment.AddComment)
	}

	comments := r.Group("/comments", auth)
	{
		comments.PATCH("/:comment_id", deps.Comment.UpdateComment)
		comments.DELETE("/:comment_id", deps.Comment.DeleteComment)
	}

	likes := r.Group("/likes", auth)
	{
		likes.POST("/toggle/video/:video_id", deps.Like.ToggleVideoLike)
		likes.POST("/toggle/comment/:comment_id", deps.Like.ToggleCommentLike)
		likes.GET("/videos", deps.Like.LikedVideos)
		likes.GET("/comments", deps.Like.LikedComments)
	}

	subscriptions := r.Group("/subscriptions", auth)
	{
		subscriptions.GET("/subscribe/:channel_id", deps.Subscription.SubscribedChannels)
		subscriptions.POST("/subscribe/:channel_id", deps.Subscription.ToggleSubscription)
		subscriptions.GET("/subscribers/:channel_id", deps.Subscription.ChannelSubscribers)
	}

	dashboard := r.Group("/dashboard", auth)
	{
		dashboard.GET("/channel/:channel_id/videos", deps.Dashboard.ChannelVideos)
		dashboard.GET("/channel/:channel_id/analytics", deps.Dashboard.ChannelAnalytics)
		dashboard.GET("/user/liked-videos", deps.Dashboard.LikedVideos)
		dashboard.GET("/user/subscriptions", deps.Subscription.MySubscriptions)
	}
}
