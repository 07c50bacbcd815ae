package video

import (
	"context"
	"os"
	"path/filepath"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/video/service"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

type Handler struct {
	videoService *service.VideoService
}

func New(videoService *service.VideoService) *Handler {
	return &Handler{videoService: videoService}
}

type PublishParam struct {
	Title       string  `form:"title"`
	Description string  `form:"description"`
	Duration    float64 `form:"duration"`
}

type ListParam struct {
	Query    string `query:"query"`
	OwnerId  string `query:"user_id"`
	SortBy   string `query:"sort_by"`
	SortType string `query:"sort_type"`
	PageNum  int64  `query:"page"`
	PageSize int64  `query:"limit"`
}

type UpdateParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

// Publish accepts the multipart upload, stages both files locally and
// hands the paths to the service, which uploads them to object storage
// before the record is created.
func (h *Handler) Publish(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param PublishParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}

	videoPath, err := h.stageFile(c, "video")
	if err != nil {
		handlers.SendResponse(c, errno.RequestErr.WithMessage("Video file is required"), nil)
		return
	}
	defer os.Remove(videoPath)
	thumbnailPath, err := h.stageFile(c, "thumbnail")
	if err != nil {
		handlers.SendResponse(c, errno.RequestErr.WithMessage("Thumbnail is required"), nil)
		return
	}
	defer os.Remove(thumbnailPath)

	video, err := h.videoService.Publish(ctx, service.PublishParams{
		UserId:        userId,
		Title:         param.Title,
		Description:   param.Description,
		Duration:      param.Duration,
		VideoPath:     videoPath,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "publish failed: %v", err)
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Created.WithMessage("Video published"), video)
}

func (h *Handler) List(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	videos, err := h.videoService.List(ctx, service.ListParams{
		Query:    param.Query,
		OwnerId:  param.OwnerId,
		SortBy:   param.SortBy,
		SortDesc: param.SortType != "asc",
		PageNum:  param.PageNum,
		PageSize: param.PageSize,
	})
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, videos)
}

func (h *Handler) Get(ctx context.Context, c *app.RequestContext) {
	video, err := h.videoService.GetById(ctx, c.Param("video_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, video)
}

func (h *Handler) Update(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param UpdateParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}

	// The thumbnail is optional on update.
	thumbnailPath := ""
	if file, err := c.FormFile("thumbnail"); err == nil {
		thumbnailPath = filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, thumbnailPath); err != nil {
			handlers.SendResponse(c, errno.ServiceErr, nil)
			return
		}
		defer os.Remove(thumbnailPath)
	}

	video, err := h.videoService.Update(ctx, userId, c.Param("video_id"), service.UpdateParams{
		Title:         param.Title,
		Description:   param.Description,
		ThumbnailPath: thumbnailPath,
	})
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Video updated"), video)
}

func (h *Handler) Delete(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	if err := h.videoService.Delete(ctx, userId, c.Param("video_id")); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Video deleted"), nil)
}

func (h *Handler) TogglePublish(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	video, err := h.videoService.TogglePublish(ctx, userId, c.Param("video_id"))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Publish status updated"), video)
}

func (h *Handler) stageFile(c *app.RequestContext, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	localPath := filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		return "", err
	}
	return localPath, nil
}
