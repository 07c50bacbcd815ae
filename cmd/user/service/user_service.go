package service

import (
	"context"
	"strings"
	"time"

	"vidtube.com/cmd/model"
	"vidtube.com/cmd/user/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/jwt"
	"vidtube.com/pkg/oss"
	"vidtube.com/pkg/utils"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type UserService struct {
	userRepo *db.UserRepo
	tokens   *jwt.TokenService
	uploader oss.Uploader
}

func NewUserService(userRepo *db.UserRepo, tokens *jwt.TokenService, uploader oss.Uploader) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, uploader: uploader}
}

type RegisterParams struct {
	UserName string
	Email    string
	FullName string
	Password string
}

// LoginResult carries the user plus the freshly issued token pair.
type LoginResult struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func (service *UserService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	if strings.TrimSpace(params.UserName) == "" ||
		strings.TrimSpace(params.FullName) == "" ||
		params.Password == "" {
		return nil, errno.RequestErr.WithMessage("Username, full name and password are required")
	}
	if !strings.Contains(params.Email, "@") {
		return nil, errno.RequestErr.WithMessage("Invalid email")
	}

	hashedPassword, err := utils.Crypt(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().Format(constants.DataFormate)
	user := &model.User{
		UserId:    utils.NewObjectId(),
		UserName:  strings.ToLower(strings.TrimSpace(params.UserName)),
		Email:     strings.ToLower(strings.TrimSpace(params.Email)),
		FullName:  strings.TrimSpace(params.FullName),
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (service *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := service.userRepo.GetUserByName(ctx, strings.ToLower(username))
	if err != nil {
		// Do not reveal whether the username exists.
		hlog.CtxInfof(ctx, "login rejected for %s: %v", username, err)
		return nil, errno.AuthFailedErr.WithMessage("Invalid username or password")
	}
	if !utils.VerifyPassword(password, user.Password) {
		return nil, errno.AuthFailedErr.WithMessage("Invalid username or password")
	}
	return service.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must match
// the one persisted at the last login or rotation.
func (service *UserService) Refresh(ctx context.Context, userId, presentedToken string) (*LoginResult, error) {
	user, err := service.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != presentedToken {
		return nil, errno.AuthFailedErr.WithMessage("Refresh token has been rotated")
	}
	return service.issueTokens(ctx, user)
}

func (service *UserService) issueTokens(ctx context.Context, user *model.User) (*LoginResult, error) {
	accessToken, refreshToken, err := service.tokens.GenerateTokenPair(user.UserId)
	if err != nil {
		return nil, err
	}
	if err := service.userRepo.UpdateRefreshToken(ctx, user.UserId, refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken
	return &LoginResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (service *UserService) ChangePassword(ctx context.Context, userId, oldPassword, newPassword string) error {
	if newPassword == "" {
		return errno.RequestErr.WithMessage("New password is required")
	}
	user, err := service.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(oldPassword, user.Password) {
		return errno.AuthFailedErr.WithMessage("Old password is incorrect")
	}
	hashedPassword, err := utils.Crypt(newPassword)
	if err != nil {
		return err
	}
	return service.userRepo.UpdatePassword(ctx, userId, hashedPassword, time.Now().Format(constants.DataFormate))
}

func (service *UserService) GetCurrentUser(ctx context.Context, userId string) (*model.User, error) {
	return service.userRepo.GetUserById(ctx, userId)
}

func (service *UserService) UpdateProfile(ctx context.Context, userId, fullName, email string) (*model.User, error) {
	updates := map[string]interface{}{"updated_at": time.Now().Format(constants.DataFormate)}
	if strings.TrimSpace(fullName) != "" {
		updates["full_name"] = strings.TrimSpace(fullName)
	}
	if email != "" {
		if !strings.Contains(email, "@") {
			return nil, errno.RequestErr.WithMessage("Invalid email")
		}
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if err := service.userRepo.UpdateProfile(ctx, userId, updates); err != nil {
		return nil, err
	}
	return service.userRepo.GetUserById(ctx, userId)
}

// UpdateAvatar uploads the image and stores the resulting URL. An upload
// failure surfaces as an upload error, not a validation error.
func (service *UserService) UpdateAvatar(ctx context.Context, userId, localPath string) (*model.User, error) {
	return service.updateImage(ctx, userId, localPath, "avatar_url")
}

func (service *UserService) UpdateCover(ctx context.Context, userId, localPath string) (*model.User, error) {
	return service.updateImage(ctx, userId, localPath, "cover_url")
}

func (service *UserService) updateImage(ctx context.Context, userId, localPath, column string) (*model.User, error) {
	url, err := service.uploader.UploadImage(ctx, localPath)
	if err != nil {
		hlog.CtxErrorf(ctx, "image upload failed: %v", err)
		return nil, errno.UploadErr
	}
	updates := map[string]interface{}{
		column:       url,
		"updated_at": time.Now().Format(constants.DataFormate),
	}
	if err := service.userRepo.UpdateProfile(ctx, userId, updates); err != nil {
		return nil, err
	}
	return service.userRepo.GetUserById(ctx, userId)
}
