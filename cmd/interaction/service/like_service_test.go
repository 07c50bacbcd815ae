package service

import (
	"context"
	"testing"

	"vidtube.com/cmd/interaction/dal/db"
	"vidtube.com/cmd/model"
	videodb "vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"

	"gorm.io/gorm"
)

func newLikeService(conn *gorm.DB) *LikeService {
	return NewLikeService(db.NewLikeRepo(conn), db.NewCommentRepo(conn), videodb.NewVideoRepo(conn))
}

func TestToggleVideoLike(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	service := newLikeService(conn)

	owner := seedUser(t, conn, "gus")
	fan := seedUser(t, conn, "hana")
	video := seedVideo(t, conn, owner.UserId)
	target := model.VideoTarget(video.VideoId)

	t.Run("FirstToggleLikes", func(t *testing.T) {
		liked, err := service.Toggle(ctx, fan.UserId, target)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !liked {
			t.Error("first toggle should create the like")
		}
	})

	t.Run("SecondToggleUnlikes", func(t *testing.T) {
		liked, err := service.Toggle(ctx, fan.UserId, target)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if liked {
			t.Error("second toggle should remove the like")
		}
		if got, _ := service.likeRepo.GetLike(ctx, fan.UserId, target); got != nil {
			t.Error("edge should be gone after the second toggle")
		}
	})

	t.Run("TogglesAreIndependentPerUser", func(t *testing.T) {
		if _, err := service.Toggle(ctx, fan.UserId, target); err != nil {
			t.Fatalf("fan toggle: %v", err)
		}
		if _, err := service.Toggle(ctx, owner.UserId, target); err != nil {
			t.Fatalf("owner toggle: %v", err)
		}
		count, err := service.likeRepo.GetVideoLikeCount(ctx, video.VideoId)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 independent likes, got %d", count)
		}
	})

	t.Run("InvalidId", func(t *testing.T) {
		_, err := service.Toggle(ctx, fan.UserId, model.VideoTarget("zzz"))
		if code := errCode(t, err); code != errno.RequestErrCode {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("MissingVideo", func(t *testing.T) {
		_, err := service.Toggle(ctx, fan.UserId, model.VideoTarget(utils.NewObjectId()))
		if code := errCode(t, err); code != errno.NotFoundErrCode {
			t.Errorf("expected 404, got %d", code)
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := service.Toggle(ctx, fan.UserId, model.LikeTarget{Kind: "playlist", Id: utils.NewObjectId()})
		if code := errCode(t, err); code != errno.RequestErrCode {
			t.Errorf("expected 400, got %d", code)
		}
	})
}

func TestToggleCommentLike(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	likeService := newLikeService(conn)
	commentService := newCommentService(conn)

	owner := seedUser(t, conn, "iris")
	video := seedVideo(t, conn, owner.UserId)
	comment, err := commentService.AddComment(ctx, owner.UserId, video.VideoId, "like this")
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	target := model.CommentTarget(comment.CommentId)

	liked, err := likeService.Toggle(ctx, owner.UserId, target)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !liked {
		t.Error("first toggle should create the like")
	}

	t.Run("VideoLikeDoesNotCollide", func(t *testing.T) {
		// The same user likes the video too; distinct kinds, distinct edges.
		if _, err := likeService.Toggle(ctx, owner.UserId, model.VideoTarget(video.VideoId)); err != nil {
			t.Fatalf("video toggle: %v", err)
		}
		if got, _ := likeService.likeRepo.GetLike(ctx, owner.UserId, target); got == nil {
			t.Error("comment like should still exist")
		}
	})
}

func TestLikedListings(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	likeService := newLikeService(conn)
	commentService := newCommentService(conn)

	owner := seedUser(t, conn, "jack")
	fan := seedUser(t, conn, "kira")
	video := seedVideo(t, conn, owner.UserId)
	comment, err := commentService.AddComment(ctx, owner.UserId, video.VideoId, "note")
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	if _, err := likeService.Toggle(ctx, fan.UserId, model.VideoTarget(video.VideoId)); err != nil {
		t.Fatalf("video toggle: %v", err)
	}
	if _, err := likeService.Toggle(ctx, fan.UserId, model.CommentTarget(comment.CommentId)); err != nil {
		t.Fatalf("comment toggle: %v", err)
	}

	videos, err := likeService.LikedVideos(ctx, fan.UserId)
	if err != nil {
		t.Fatalf("liked videos: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 liked video, got %d", len(videos))
	}
	comments, err := likeService.LikedComments(ctx, fan.UserId)
	if err != nil {
		t.Fatalf("liked comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 liked comment, got %d", len(comments))
	}

	t.Run("EmptyForNewUser", func(t *testing.T) {
		nobody := seedUser(t, conn, "liz")
		videos, err := likeService.LikedVideos(ctx, nobody.UserId)
		if err != nil {
			t.Fatalf("liked videos: %v", err)
		}
		if len(videos) != 0 {
			t.Errorf("expected empty listing, got %d", len(videos))
		}
	})
}
