package db

import (
	"context"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// LikedVideo is a like of kind video with the target's display fields
// attached. The target columns are pointers: when the video has since been
// deleted the like row is still returned, with no target resolved.
type LikedVideo struct {
	LikeId         string  `gorm:"column:like_id" json:"like_id"`
	LikedAt        string  `gorm:"column:liked_at" json:"liked_at"`
	VideoId        *string `gorm:"column:video_id" json:"video_id"`
	Title          *string `gorm:"column:title" json:"title"`
	Description    *string `gorm:"column:description" json:"description"`
	ThumbnailUrl   *string `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	VideoCreatedAt *string `gorm:"column:video_created_at" json:"video_created_at"`
}

// LikedComment mirrors LikedVideo for likes of kind comment.
type LikedComment struct {
	LikeId           string  `gorm:"column:like_id" json:"like_id"`
	LikedAt          string  `gorm:"column:liked_at" json:"liked_at"`
	CommentId        *string `gorm:"column:comment_id" json:"comment_id"`
	Content          *string `gorm:"column:content" json:"content"`
	CommentCreatedAt *string `gorm:"column:comment_created_at" json:"comment_created_at"`
}

// GetLike returns the like for the (user, target) pair, or nil when the
// pair is in the absent state.
func (r *LikeRepo) GetLike(ctx context.Context, userId string, target model.LikeTarget) (*model.Like, error) {
	like := &model.Like{}
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userId, target.Kind, target.Id).
		First(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "GetLike failed")
	}
	return like, nil
}

// CreateLike inserts the edge. When two togglers race, the unique index
// rejects the second insert and the loser sees a conflict.
func (r *LikeRepo) CreateLike(ctx context.Context, like *model.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Already liked")
		}
		return errors.Wrap(err, "CreateLike failed")
	}
	return nil
}

func (r *LikeRepo) DeleteLike(ctx context.Context, userId string, target model.LikeTarget) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userId, target.Kind, target.Id).
		Delete(&model.Like{}).Error
	if err != nil {
		return errors.Wrap(err, "DeleteLike failed")
	}
	return nil
}

// GetLikedVideos lists the user's likes of kind video, left-joined against
// the video so deleted targets surface as unresolved rather than dropped.
func (r *LikeRepo) GetLikedVideos(ctx context.Context, userId string) ([]LikedVideo, error) {
	list := make([]LikedVideo, 0)
	err := r.db.WithContext(ctx).Table(model.LikeTableName).
		Select("likes.like_id, likes.created_at AS liked_at, videos.video_id, videos.title, videos.description, videos.thumbnail_url, videos.created_at AS video_created_at").
		Joins("LEFT JOIN videos ON videos.video_id = likes.target_id").
		Where("likes.user_id = ? AND likes.target_kind = ?", userId, model.TargetVideo).
		Order("likes.created_at DESC, likes.like_id DESC").
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetLikedVideos failed")
	}
	return list, nil
}

func (r *LikeRepo) GetLikedComments(ctx context.Context, userId string) ([]LikedComment, error) {
	list := make([]LikedComment, 0)
	err := r.db.WithContext(ctx).Table(model.LikeTableName).
		Select("likes.like_id, likes.created_at AS liked_at, comments.comment_id, comments.content, comments.created_at AS comment_created_at").
		Joins("LEFT JOIN comments ON comments.comment_id = likes.target_id").
		Where("likes.user_id = ? AND likes.target_kind = ?", userId, model.TargetComment).
		Order("likes.created_at DESC, likes.like_id DESC").
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetLikedComments failed")
	}
	return list, nil
}

func (r *LikeRepo) GetVideoLikeCount(ctx context.Context, videoId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", model.TargetVideo, videoId).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "GetVideoLikeCount failed")
	}
	return count, nil
}
