package service

import (
	"context"
	"encoding/json"
	"time"

	"vidtube.com/cmd/dashboard/dal/db"
	"vidtube.com/cmd/model"
	videodb "vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

const (
	analyticsCacheKey = "dashboard:analytics:"
	analyticsCacheTTL = 30 * time.Second
)

// DashboardService serves the channel reporting endpoints. The analytics
// aggregate is cached best-effort in redis; any cache failure falls
// through to the store.
type DashboardService struct {
	analyticsRepo *db.AnalyticsRepo
	videoRepo     *videodb.VideoRepo
	rdb           *redis.Client
}

func NewDashboardService(analyticsRepo *db.AnalyticsRepo, videoRepo *videodb.VideoRepo, rdb *redis.Client) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo, videoRepo: videoRepo, rdb: rdb}
}

func (service *DashboardService) ChannelAnalytics(ctx context.Context, channelId string) (*db.ChannelAnalytics, error) {
	if !utils.IsValidObjectId(channelId) {
		return nil, errno.RequestErr.WithMessage("Invalid channel ID")
	}

	if cached := service.cachedAnalytics(ctx, channelId); cached != nil {
		return cached, nil
	}

	analytics, err := service.analyticsRepo.GetChannelAnalytics(ctx, channelId)
	if err != nil {
		return nil, err
	}
	service.storeAnalytics(ctx, channelId, analytics)
	return analytics, nil
}

func (service *DashboardService) ChannelVideos(ctx context.Context, channelId string) ([]model.Video, error) {
	if !utils.IsValidObjectId(channelId) {
		return nil, errno.RequestErr.WithMessage("Invalid channel ID")
	}
	return service.videoRepo.GetChannelVideos(ctx, channelId)
}

func (service *DashboardService) cachedAnalytics(ctx context.Context, channelId string) *db.ChannelAnalytics {
	if service.rdb == nil {
		return nil
	}
	raw, err := service.rdb.Get(ctx, analyticsCacheKey+channelId).Bytes()
	if err != nil {
		if err != redis.Nil {
			hlog.CtxWarnf(ctx, "analytics cache read failed: %v", err)
		}
		return nil
	}
	analytics := &db.ChannelAnalytics{}
	if err := json.Unmarshal(raw, analytics); err != nil {
		hlog.CtxWarnf(ctx, "analytics cache decode failed: %v", err)
		return nil
	}
	return analytics
}

func (service *DashboardService) storeAnalytics(ctx context.Context, channelId string, analytics *db.ChannelAnalytics) {
	if service.rdb == nil {
		return
	}
	raw, err := json.Marshal(analytics)
	if err != nil {
		return
	}
	if err := service.rdb.Set(ctx, analyticsCacheKey+channelId, raw, analyticsCacheTTL).Err(); err != nil {
		hlog.CtxWarnf(ctx, "analytics cache write failed: %v", err)
	}
}
