package user

import (
	"context"
	"os"
	"path/filepath"

	"vidtube.com/cmd/api/handlers"
	"vidtube.com/cmd/model"
	"vidtube.com/cmd/user/service"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

type Handler struct {
	userService *service.UserService
}

func New(userService *service.UserService) *Handler {
	return &Handler{userService: userService}
}

type RegisterParam struct {
	UserName string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"full_name" form:"full_name"`
	Password string `json:"password" form:"password"`
}

type LoginParam struct {
	UserName string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type ChangePasswordParam struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

type UpdateProfileParam struct {
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email"`
}

func (h *Handler) Register(ctx context.Context, c *app.RequestContext) {
	var param RegisterParam
	if err := c.BindAndValidate(&param); err != nil {
		hlog.CtxInfof(ctx, "bind register param: %v", err)
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	user, err := h.userService.Register(ctx, service.RegisterParams{
		UserName: param.UserName,
		Email:    param.Email,
		FullName: param.FullName,
		Password: param.Password,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "register failed: %v", err)
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Created.WithMessage("Account created"), user)
}

func (h *Handler) Login(ctx context.Context, c *app.RequestContext) {
	var param LoginParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	result, err := h.userService.Login(ctx, param.UserName, param.Password)
	if err != nil {
		hlog.CtxInfof(ctx, "login failed: %v", err)
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Logged in"), result)
}

// Refresh rotates the token pair. The route is guarded by the refresh
// token middleware, the raw token is re-read here to compare against the
// persisted one.
func (h *Handler) Refresh(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	result, err := h.userService.Refresh(ctx, userId, jwt.BearerToken(c))
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Token refreshed"), result)
}

func (h *Handler) ChangePassword(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param ChangePasswordParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	if err := h.userService.ChangePassword(ctx, userId, param.OldPassword, param.NewPassword); err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Password changed"), nil)
}

func (h *Handler) Me(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	user, err := h.userService.GetCurrentUser(ctx, userId)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success, user)
}

func (h *Handler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	var param UpdateProfileParam
	if err := c.BindAndValidate(&param); err != nil {
		handlers.SendResponse(c, errno.RequestErr, nil)
		return
	}
	user, err := h.userService.UpdateProfile(ctx, userId, param.FullName, param.Email)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Profile updated"), user)
}

func (h *Handler) UpdateAvatar(ctx context.Context, c *app.RequestContext) {
	h.updateImage(ctx, c, "avatar", h.userService.UpdateAvatar)
}

func (h *Handler) UpdateCover(ctx context.Context, c *app.RequestContext) {
	h.updateImage(ctx, c, "cover", h.userService.UpdateCover)
}

func (h *Handler) updateImage(ctx context.Context, c *app.RequestContext, field string,
	update func(ctx context.Context, userId, localPath string) (*model.User, error)) {
	userId, ok := jwt.UserIdFromContext(ctx, c)
	if !ok {
		handlers.SendResponse(c, errno.AuthFailedErr, nil)
		return
	}
	file, err := c.FormFile(field)
	if err != nil {
		handlers.SendResponse(c, errno.RequestErr.WithMessage(field+" file is required"), nil)
		return
	}

	localPath := filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		hlog.CtxErrorf(ctx, "save uploaded %s failed: %v", field, err)
		handlers.SendResponse(c, errno.ServiceErr, nil)
		return
	}
	defer os.Remove(localPath)

	user, err := update(ctx, userId, localPath)
	if err != nil {
		handlers.SendResponse(c, errno.ConvertErr(err), nil)
		return
	}
	handlers.SendResponse(c, errno.Success.WithMessage("Image updated"), user)
}
