package db

import (
	"context"

	"vidtube.com/cmd/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AnalyticsRepo struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// ChannelAnalytics is the dashboard summary record.
type ChannelAnalytics struct {
	TotalVideos      int64 `gorm:"column:total_videos" json:"totalVideos"`
	TotalLikes       int64 `gorm:"column:total_likes" json:"totalLikes"`
	TotalSubscribers int64 `gorm:"column:total_subscribers" json:"totalSubscribers"`
}

// GetChannelAnalytics computes all three counts from one statement over the
// channel's videos. The branches fan out from the same filtered set via the
// two left joins; DISTINCT keeps a like or subscription from being counted
// once per joined row. A channel with zero videos yields a single all-zero
// row because the aggregate runs without GROUP BY.
func (r *AnalyticsRepo) GetChannelAnalytics(ctx context.Context, channelId string) (*ChannelAnalytics, error) {
	analytics := &ChannelAnalytics{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT v.video_id)        AS total_videos,
		       COUNT(DISTINCT l.like_id)         AS total_likes,
		       COUNT(DISTINCT s.subscription_id) AS total_subscribers
		FROM videos v
		LEFT JOIN likes l ON l.target_kind = ? AND l.target_id = v.video_id
		LEFT JOIN subscriptions s ON s.channel_id = v.user_id
		WHERE v.user_id = ?`,
		model.TargetVideo, channelId,
	).Scan(analytics).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetChannelAnalytics failed")
	}
	return analytics, nil
}
