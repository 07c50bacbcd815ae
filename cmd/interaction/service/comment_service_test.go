package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vidtube.com/cmd/interaction/dal/db"
	"vidtube.com/cmd/model"
	videodb "vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/database"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"

	"github.com/pkg/errors"
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
		Duration:    60,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := conn.Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}

func errCode(t *testing.T, err error) int64 {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var e errno.ErrNo
	if !errors.As(err, &e) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	return e.ErrCode
}

func newCommentService(conn *gorm.DB) *CommentService {
	return NewCommentService(db.NewCommentRepo(conn), videodb.NewVideoRepo(conn))
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	service := newCommentService(conn)

	author := seedUser(t, conn, "ana")
	video := seedVideo(t, conn, author.UserId)

	t.Run("Success", func(t *testing.T) {
		comment, err := service.AddComment(ctx, author.UserId, video.VideoId, "  first!  ")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if comment.Content != "first!" {
			t.Errorf("expected trimmed content, got %q", comment.Content)
		}
		if !utils.IsValidObjectId(comment.CommentId) {
			t.Errorf("expected a valid id, got %q", comment.CommentId)
		}
	})

	t.Run("EmptyContent", func(t *testing.T) {
		_, err := service.AddComment(ctx, author.UserId, video.VideoId, "   ")
		if code := errCode(t, err); code != errno.RequestErrCode {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("TooLong", func(t *testing.T) {
		_, err := service.AddComment(ctx, author.UserId, video.VideoId, strings.Repeat("x", constants.MaxCommentLength+1))
		if code := errCode(t, err); code != errno.RequestErrCode {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("MaxLengthAccepted", func(t *testing.T) {
		_, err := service.AddComment(ctx, author.UserId, video.VideoId, strings.Repeat("y", constants.MaxCommentLength))
		if err != nil {
			t.Errorf("content at the limit should pass: %v", err)
		}
	})

	t.Run("InvalidVideoId", func(t *testing.T) {
		_, err := service.AddComment(ctx, author.UserId, "not-an-id", "hello")
		if code := errCode(t, err); code != errno.RequestErrCode {
			t.Errorf("expected 400, got %d", code)
		}
	})

	t.Run("MissingVideo", func(t *testing.T) {
		_, err := service.AddComment(ctx, author.UserId, utils.NewObjectId(), "hello")
		if code := errCode(t, err); code != errno.NotFoundErrCode {
			t.Errorf("expected 404, got %d", code)
		}
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	service := newCommentService(conn)

	author := seedUser(t, conn, "ben")
	video := seedVideo(t, conn, author.UserId)
	for i := 0; i < 12; i++ {
		if _, err := service.AddComment(ctx, author.UserId, video.VideoId, "c"+strings.Repeat("!", i+1)); err != nil {
			t.Fatalf("seed comment %d: %v", i, err)
		}
	}

	t.Run("DefaultsApplied", func(t *testing.T) {
		feed, err := service.ListComments(ctx, video.VideoId, 0, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if feed.PageNum != constants.DefaultPage || feed.PageSize != constants.DefaultLimit {
			t.Errorf("expected defaults, got page=%d size=%d", feed.PageNum, feed.PageSize)
		}
		if len(feed.Comments) != int(constants.DefaultLimit) {
			t.Errorf("expected a default-size page, got %d", len(feed.Comments))
		}
		if feed.Total != 12 {
			t.Errorf("expected total 12, got %d", feed.Total)
		}
	})

	t.Run("OversizedPageCapped", func(t *testing.T) {
		feed, err := service.ListComments(ctx, video.VideoId, 1, constants.MaxLimit+1)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if feed.PageSize != constants.MaxLimit {
			t.Errorf("oversized page size should clamp to the cap, got %d", feed.PageSize)
		}
	})

	t.Run("ReadHasNoSideEffects", func(t *testing.T) {
		before, _ := service.ListComments(ctx, video.VideoId, 1, 5)
		after, _ := service.ListComments(ctx, video.VideoId, 1, 5)
		if before.Total != after.Total || len(before.Comments) != len(after.Comments) {
			t.Error("identical reads should return identical pages")
		}
		for i := range before.Comments {
			if before.Comments[i].CommentId != after.Comments[i].CommentId {
				t.Errorf("page content changed between reads at index %d", i)
			}
		}
	})
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	service := newCommentService(conn)

	author := seedUser(t, conn, "cleo")
	stranger := seedUser(t, conn, "dirk")
	video := seedVideo(t, conn, author.UserId)
	comment, err := service.AddComment(ctx, author.UserId, video.VideoId, "original")
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	t.Run("AuthorCanEdit", func(t *testing.T) {
		updated, err := service.UpdateComment(ctx, author.UserId, comment.CommentId, "edited")
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Content != "edited" {
			t.Errorf("expected new content, got %q", updated.Content)
		}
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		_, err := service.UpdateComment(ctx, stranger.UserId, comment.CommentId, "hijacked")
		if code := errCode(t, err); code != errno.ForbiddenErrCode {
			t.Errorf("expected 403, got %d", code)
		}
		got, err := service.commentRepo.GetCommentInfo(ctx, comment.CommentId)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if got.Content != "edited" {
			t.Errorf("rejected edit must not change the comment, got %q", got.Content)
		}
	})

	t.Run("MissingBeatsForbidden", func(t *testing.T) {
		_, err := service.UpdateComment(ctx, stranger.UserId, utils.NewObjectId(), "whatever")
		if code := errCode(t, err); code != errno.NotFoundErrCode {
			t.Errorf("a missing comment is 404 even for a non-author, got %d", code)
		}
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	conn := newTestDB(t)
	service := newCommentService(conn)

	author := seedUser(t, conn, "elsa")
	stranger := seedUser(t, conn, "fred")
	video := seedVideo(t, conn, author.UserId)
	comment, err := service.AddComment(ctx, author.UserId, video.VideoId, "delete me")
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}

	t.Run("StrangerForbidden", func(t *testing.T) {
		err := service.DeleteComment(ctx, stranger.UserId, comment.CommentId)
		if code := errCode(t, err); code != errno.ForbiddenErrCode {
			t.Errorf("expected 403, got %d", code)
		}
	})

	t.Run("AuthorCanDelete", func(t *testing.T) {
		if err := service.DeleteComment(ctx, author.UserId, comment.CommentId); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, err := service.commentRepo.GetCommentInfo(ctx, comment.CommentId)
		if code := errCode(t, err); code != errno.NotFoundErrCode {
			t.Errorf("expected the comment gone, got %d", code)
		}
	})
}
