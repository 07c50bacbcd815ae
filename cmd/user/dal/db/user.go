package db

import (
	"context"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepo is the identity store. It is constructed with an injected
// handle so tests can point it at their own database.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Username or email already taken")
		}
		return errors.Wrap(err, "CreateUser failed")
	}
	return nil
}

func (r *UserRepo) GetUserById(ctx context.Context, userId string) (*model.User, error) {
	user := &model.User{}
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User not found")
		}
		return nil, errors.Wrap(err, "GetUserById failed")
	}
	return user, nil
}

func (r *UserRepo) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_name = ?", username).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("User not found")
		}
		return nil, errors.Wrap(err, "GetUserByName failed")
	}
	return user, nil
}

// UserExists is the cheap existence check the subscription listings use
// before querying edges.
func (r *UserRepo) UserExists(ctx context.Context, userId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "UserExists failed")
	}
	return count != 0, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userId string, updates map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).Updates(updates).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Email already taken")
		}
		return errors.Wrap(err, "UpdateProfile failed")
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userId, hashedPassword, updatedAt string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).
		Updates(map[string]interface{}{"password": hashedPassword, "updated_at": updatedAt}).Error
	if err != nil {
		return errors.Wrap(err, "UpdatePassword failed")
	}
	return nil
}

func (r *UserRepo) UpdateRefreshToken(ctx context.Context, userId, refreshToken string) error {
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("user_id = ?", userId).
		Update("refresh_token", refreshToken).Error
	if err != nil {
		return errors.Wrap(err, "UpdateRefreshToken failed")
	}
	return nil
}
