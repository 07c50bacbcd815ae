package interaction

import (
	"context"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/interaction/service"
	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, model.VideoTarget(c.Param("video_id")))
}

func (h *LikeHandler) ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	h.toggle(ctx, c, model.CommentTarget(c.Param("comment_id")))
}

func (h *LikeHandler) toggle(ctx context.Context, c *app.RequestContext, target model.LikeTarget) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	liked, err := h.likeService.Toggle(ctx, userId, target)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	message := string(target.Kind) + " unliked"
	if liked {
		message = string(target.Kind) + " liked"
	}
	handlers.SendResponse(c, errno.Success.WithMessage(message), map[string]interface{}{"liked": liked})
}

func (h *LikeHandler) LikedVideos(ctx context.Context, c *app.RequestContext) {
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

func (h *LikeHandler) LikedComments(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	list, err := h.likeService.LikedComments(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, list)
}
