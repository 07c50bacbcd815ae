package db

import (
	"context"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// CommentWithAuthor is one row of the comment feed: the comment plus the
// author's display fields. Nothing else from the user record is projected.
type CommentWithAuthor struct {
	CommentId string `gorm:"column:comment_id" json:"comment_id"`
	Content   string `gorm:"column:content" json:"content"`
	CreatedAt string `gorm:"column:created_at" json:"created_at"`
	UserName  string `gorm:"column:user_name" json:"user_name"`
	AvatarUrl string `gorm:"column:avatar_url" json:"avatar_url"`
}

func (r *CommentRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errors.Wrap(err, "CreateComment failed")
	}
	return nil
}

func (r *CommentRepo) GetCommentInfo(ctx context.Context, commentId string) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).First(comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Comment not found")
		}
		return nil, errors.Wrap(err, "GetCommentInfo failed")
	}
	return comment, nil
}

func (r *CommentRepo) CommentExists(ctx context.Context, commentId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "CommentExists failed")
	}
	return count != 0, nil
}

func (r *CommentRepo) GetVideoCommentCount(ctx context.Context, videoId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("video_id = ?", videoId).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "GetVideoCommentCount failed")
	}
	return count, nil
}

// GetVideoCommentListByPart returns one page of a video's comments, newest
// first, each joined with its author. The join is inner on purpose: a
// comment whose owner record is gone is dropped rather than surfaced as a
// partial row.
func (r *CommentRepo) GetVideoCommentListByPart(ctx context.Context, videoId string, pageNum, pageSize int64) ([]CommentWithAuthor, error) {
	list := make([]CommentWithAuthor, 0)
	err := r.db.WithContext(ctx).Table(model.CommentTableName).
		Select("comments.comment_id, comments.content, comments.created_at, users.user_name, users.avatar_url").
		Joins("INNER JOIN users ON users.user_id = comments.user_id").
		Where("comments.video_id = ?", videoId).
		Order("comments.created_at DESC, comments.comment_id DESC").
		Offset(int((pageNum - 1) * pageSize)).
		Limit(int(pageSize)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetVideoCommentListByPart failed")
	}
	return list, nil
}

func (r *CommentRepo) UpdateContent(ctx context.Context, commentId, content, updatedAt string) error {
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("comment_id = ?", commentId).
		Updates(map[string]interface{}{"content": content, "updated_at": updatedAt}).Error
	if err != nil {
		return errors.Wrap(err, "UpdateContent failed")
	}
	return nil
}

// DeleteComment removes the comment together with likes pointing at it.
func (r *CommentRepo) DeleteComment(ctx context.Context, commentId string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.TargetComment, commentId).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("comment_id = ?", commentId).Delete(&model.Comment{}).Error
	})
	if err != nil {
		return errors.Wrap(err, "DeleteComment failed")
	}
	return nil
}
