package relation

import (
	"context"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/relation/service"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
)

type Handler struct {
	subscriptionService *service.SubscriptionService
}

func New(subscriptionService *service.SubscriptionService) *Handler {
	return &Handler{subscriptionService: subscriptionService}
}

func (h *Handler) ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	subscribed, err := h.subscriptionService.Toggle(ctx, userId, c.Param("channel_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	message := "Unsubscribed"
	if subscribed {
		message = "Subscribed"
	}
	handlers.SendResponse(c, errno.Success.WithMessage(message), map[string]interface{}{"subscribed": subscribed})
}

// SubscribedChannels lists the channels the user in the path follows.
func (h *Handler) SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	list, err := h.subscriptionService.SubscribedChannels(ctx, c.Param("channel_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// ChannelSubscribers lists the followers of the channel in the path.
func (h *Handler) ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	list, err := h.subscriptionService.ChannelSubscribers(ctx, c.Param("channel_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}

// MySubscriptions lists the channels the authenticated user follows.
func (h *Handler) MySubscriptions(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	list, err := h.subscriptionService.SubscribedChannels(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}
