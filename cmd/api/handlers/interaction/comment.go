package interaction

import (
	"context"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/interaction/service"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type ListCommentParam struct {
	PageNum  int64 `query:"page"`
	PageSize int64 `query:"limit"`
}

type CommentContentParam struct {
	Content string `json:"content" form:"content"`
}

// ListComments serves the paginated comment feed of a video.
func (h *CommentHandler) ListComments(ctx context.Context, c *app.RequestContext) {
	var param ListCommentParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind list comment param: %v", err)
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	feed, err := h.commentService.ListComments(ctx, c.Param("video_id"), param.PageNum, param.PageSize)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, feed)
}

func (h *CommentHandler) AddComment(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param CommentContentParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	comment, err := h.commentService.AddComment(ctx, userId, c.Param("video_id"), param.Content)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Created.WithMessage("Comment added"), comment)
}

func (h *CommentHandler) UpdateComment(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param CommentContentParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	comment, err := h.commentService.UpdateComment(ctx, userId, c.Param("comment_id"), param.Content)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Comment updated"), comment)
}

func (h *CommentHandler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	if err := h.commentService.DeleteComment(ctx, userId, c.Param("comment_id")); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Comment deleted"), nil)
}
