package dashboard

import (
	"context"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/dashboard/service"
	interactionservice "vidtube.com/cmd/interaction/service"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	dashboardService *service.DashboardService
	likeService      *interactionservice.LikeService
}

func New(dashboardService *service.DashboardService, likeService *interactionservice.LikeService) *Handler {
	return &Handler{dashboardService: dashboardService, likeService: likeService}
}

// ChannelAnalytics returns the channel summary record. A channel with no
// content reads as all zeros, never as an error.
func (h *Handler) ChannelAnalytics(ctx context.Context, c *app.RequestContext) {
	analytics, err := h.dashboardService.ChannelAnalytics(ctx, c.Param("channel_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Channel analytics fetched"), analytics)
}

func (h *Handler) ChannelVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := h.dashboardService.ChannelVideos(ctx, c.Param("channel_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, videos)
}

// LikedVideos is the dashboard view of the authenticated user's liked
// videos, same data as the likes listing.
func (h *Handler) LikedVideos(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	list, err := h.likeService.LikedVideos(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}
