package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/database"
	"vidtube.com/pkg/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, name string) *model.User {
	t.Helper()
	now := time.Now().Format(constants.DataFormate)
	user := &model.User{
		UserId:    utils.NewObjectId(),
		UserName:  name,
		Email:     name + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

func seedVideo(t *testing.T, conn *gorm.DB, ownerId string) *model.Video {
	t.Helper()
	now := time.Now().Format(constants.DataFormate)
	video := &model.Video{
		VideoId:     utils.NewObjectId(),
		UserId:      ownerId,
		Title:       "clip",
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := conn.Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}

func seedVideoLike(t *testing.T, conn *gorm.DB, userId, videoId string) {
	t.Helper()
	like := &model.Like{
		LikeId:     utils.NewObjectId(),
		UserId:     userId,
		TargetKind: model.TargetVideo,
		TargetId:   videoId,
		CreatedAt:  time.Now().Format(constants.DataFormate),
	}
	if err := conn.Create(like).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
}

func seedSubscription(t *testing.T, conn *gorm.DB, subscriberId, channelId string) {
	t.Helper()
	sub := &model.Subscription{
		SubscriptionId: utils.NewObjectId(),
		SubscriberId:   subscriberId,
		ChannelId:      channelId,
		CreatedAt:      time.Now().Format(constants.DataFormate),
	}
	if err := conn.Create(sub).Error; err != nil {
		t.Fatalf("seed subscription: %v", err)
	}
}

func TestGetChannelAnalytics(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	repo := NewAnalyticsRepo(conn)

	t.Run("EmptyChannel", func(t *testing.T) {
		channel := seedUser(t, conn, "uma")
		got, err := repo.GetChannelAnalytics(ctx, channel.UserId)
		if err != nil {
			t.Fatalf("analytics: %v", err)
		}
		if got.TotalVideos != 0 || got.TotalLikes != 0 || got.TotalSubscribers != 0 {
			t.Errorf("empty channel should report all zeros, got %+v", got)
		}
	})

	t.Run("VideosWithoutEngagement", func(t *testing.T) {
		channel := seedUser(t, conn, "vera")
		seedVideo(t, conn, channel.UserId)
		seedVideo(t, conn, channel.UserId)
		seedVideo(t, conn, channel.UserId)

		got, err := repo.GetChannelAnalytics(ctx, channel.UserId)
		if err != nil {
			t.Fatalf("analytics: %v", err)
		}
		if got.TotalVideos != 3 {
			t.Errorf("expected 3 videos, got %d", got.TotalVideos)
		}
		if got.TotalLikes != 0 || got.TotalSubscribers != 0 {
			t.Errorf("no engagement expected, got %+v", got)
		}
	})

	t.Run("FullChannel", func(t *testing.T) {
		channel := seedUser(t, conn, "wendy")
		fanA := seedUser(t, conn, "xavier")
		fanB := seedUser(t, conn, "yara")

		videoA := seedVideo(t, conn, channel.UserId)
		videoB := seedVideo(t, conn, channel.UserId)

		// 3 likes spread unevenly so the join fans out per video.
		seedVideoLike(t, conn, fanA.UserId, videoA.VideoId)
		seedVideoLike(t, conn, fanB.UserId, videoA.VideoId)
		seedVideoLike(t, conn, fanA.UserId, videoB.VideoId)

		// 2 subscribers; without DISTINCT they would be counted once per
		// video and per like row.
		seedSubscription(t, conn, fanA.UserId, channel.UserId)
		seedSubscription(t, conn, fanB.UserId, channel.UserId)

		got, err := repo.GetChannelAnalytics(ctx, channel.UserId)
		if err != nil {
			t.Fatalf("analytics: %v", err)
		}
		if got.TotalVideos != 2 {
			t.Errorf("expected 2 videos, got %d", got.TotalVideos)
		}
		if got.TotalLikes != 3 {
			t.Errorf("expected 3 likes, got %d", got.TotalLikes)
		}
		if got.TotalSubscribers != 2 {
			t.Errorf("expected 2 subscribers, got %d", got.TotalSubscribers)
		}
	})

	t.Run("IgnoresOtherChannels", func(t *testing.T) {
		channel := seedUser(t, conn, "zane")
		rival := seedUser(t, conn, "abel")
		seedVideo(t, conn, rival.UserId)
		seedSubscription(t, conn, channel.UserId, rival.UserId)

		got, err := repo.GetChannelAnalytics(ctx, channel.UserId)
		if err != nil {
			t.Fatalf("analytics: %v", err)
		}
		if got.TotalVideos != 0 || got.TotalLikes != 0 || got.TotalSubscribers != 0 {
			t.Errorf("rival channel activity must not leak in, got %+v", got)
		}
	})

	t.Run("CommentLikesExcluded", func(t *testing.T) {
		channel := seedUser(t, conn, "bree")
		fan := seedUser(t, conn, "cody")
		video := seedVideo(t, conn, channel.UserId)

		comment := &model.Comment{
			CommentId: utils.NewObjectId(),
			VideoId:   video.VideoId,
			UserId:    fan.UserId,
			Content:   "nice",
			CreatedAt: time.Now().Format(constants.DataFormate),
			UpdatedAt: time.Now().Format(constants.DataFormate),
		}
		if err := conn.Create(comment).Error; err != nil {
			t.Fatalf("seed comment: %v", err)
		}
		like := &model.Like{
			LikeId:     utils.NewObjectId(),
			UserId:     fan.UserId,
			TargetKind: model.TargetComment,
			TargetId:   comment.CommentId,
			CreatedAt:  time.Now().Format(constants.DataFormate),
		}
		if err := conn.Create(like).Error; err != nil {
			t.Fatalf("seed comment like: %v", err)
		}

		got, err := repo.GetChannelAnalytics(ctx, channel.UserId)
		if err != nil {
			t.Fatalf("analytics: %v", err)
		}
		if got.TotalLikes != 0 {
			t.Errorf("comment likes must not count as video likes, got %d", got.TotalLikes)
		}
	})
}
