package db

import (
	"context"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoRepo struct {
	db *gorm.DB
}

func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

// VideoWithOwner is a video row annotated with the owner's display fields.
type VideoWithOwner struct {
	model.Video
	OwnerName     string `gorm:"column:owner_name" json:"owner_name"`
	OwnerFullName string `gorm:"column:owner_full_name" json:"owner_full_name"`
	OwnerAvatar   string `gorm:"column:owner_avatar" json:"owner_avatar"`
}

// ListParams are the optional filters of the video listing.
type ListParams struct {
	Query    string
	OwnerId  string
	SortBy   string
	SortDesc bool
	PageNum  int64
	PageSize int64
}

func (r *VideoRepo) CreateVideo(ctx context.Context, video *model.Video) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		return errors.Wrap(err, "CreateVideo failed")
	}
	return nil
}

func (r *VideoRepo) GetVideoById(ctx context.Context, videoId string) (*model.Video, error) {
	video := &model.Video{}
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).First(video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("Video not found")
		}
		return nil, errors.Wrap(err, "GetVideoById failed")
	}
	return video, nil
}

func (r *VideoRepo) VideoExists(ctx context.Context, videoId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "VideoExists failed")
	}
	return count != 0, nil
}

// ListVideos pages through videos with the owner joined in. Only a fixed
// set of sort columns is accepted, everything else falls back to created_at.
func (r *VideoRepo) ListVideos(ctx context.Context, params ListParams) ([]VideoWithOwner, error) {
	list := make([]VideoWithOwner, 0)

	sortBy := params.SortBy
	switch sortBy {
	case "created_at", "title", "duration":
	default:
		sortBy = "created_at"
	}
	order := "videos." + sortBy
	if params.SortDesc {
		order += " DESC"
	}

	query := r.db.WithContext(ctx).Table(model.VideoTableName).
		Select("videos.*, users.user_name AS owner_name, users.full_name AS owner_full_name, users.avatar_url AS owner_avatar").
		Joins("INNER JOIN users ON users.user_id = videos.user_id")
	if params.Query != "" {
		query = query.Where("videos.title LIKE ?", "%"+params.Query+"%")
	}
	if params.OwnerId != "" {
		query = query.Where("videos.user_id = ?", params.OwnerId)
	}

	err := query.Order(order).
		Offset(int((params.PageNum - 1) * params.PageSize)).
		Limit(int(params.PageSize)).
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "ListVideos failed")
	}
	return list, nil
}

// GetChannelVideos returns every video of the channel, newest first.
func (r *VideoRepo) GetChannelVideos(ctx context.Context, channelId string) ([]model.Video, error) {
	list := make([]model.Video, 0)
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("user_id = ?", channelId).
		Order("created_at DESC, video_id DESC").
		Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetChannelVideos failed")
	}
	return list, nil
}

func (r *VideoRepo) UpdateVideo(ctx context.Context, videoId string, updates map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.Video{}).Where("video_id = ?", videoId).Updates(updates).Error
	if err != nil {
		return errors.Wrap(err, "UpdateVideo failed")
	}
	return nil
}

// DeleteVideo removes the video with its whole interaction subtree in one
// transaction: likes on the video, likes on its comments, the comments,
// then the video itself. Storage-object cleanup is still an open item.
func (r *VideoRepo) DeleteVideo(ctx context.Context, videoId string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_kind = ? AND target_id = ?", model.TargetVideo, videoId).
			Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_kind = ? AND target_id IN (?)", model.TargetComment,
			tx.Model(&model.Comment{}).Select("comment_id").Where("video_id = ?", videoId),
		).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("video_id = ?", videoId).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("video_id = ?", videoId).Delete(&model.Video{}).Error
	})
	if err != nil {
		return errors.Wrap(err, "DeleteVideo failed")
	}
	return nil
}
