package db

import (
	"context"

	"vidtube.com/cmd/model"
	"vidtube.com/pkg/errno"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// SubscriptionUser is one edge projected onto the far side's display
// fields: the channel for "who does X follow", the subscriber for "who
// follows Y".
type SubscriptionUser struct {
	SubscriptionId string `gorm:"column:subscription_id" json:"subscription_id"`
	UserId         string `gorm:"column:user_id" json:"user_id"`
	UserName       string `gorm:"column:user_name" json:"user_name"`
	FullName       string `gorm:"column:full_name" json:"full_name"`
	AvatarUrl      string `gorm:"column:avatar_url" json:"avatar_url"`
	SubscribedAt   string `gorm:"column:subscribed_at" json:"subscribed_at"`
}

func (r *SubscriptionRepo) GetSubscription(ctx context.Context, subscriberId, channelId string) (*model.Subscription, error) {
	sub := &model.Subscription{}
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		First(sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "GetSubscription failed")
	}
	return sub, nil
}

func (r *SubscriptionRepo) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.ConflictErr.WithMessage("Already subscribed")
		}
		return errors.Wrap(err, "CreateSubscription failed")
	}
	return nil
}

func (r *SubscriptionRepo) DeleteSubscription(ctx context.Context, subscriberId, channelId string) error {
	err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberId, channelId).
		Delete(&model.Subscription{}).Error
	if err != nil {
		return errors.Wrap(err, "DeleteSubscription failed")
	}
	return nil
}

// GetSubscribedChannels lists the channels the user follows.
func (r *SubscriptionRepo) GetSubscribedChannels(ctx context.Context, subscriberId string) ([]SubscriptionUser, error) {
	list := make([]SubscriptionUser, 0)
	err := r.db.WithContext(ctx).Table(model.SubscriptionTableName).
		Select("subscriptions.subscription_id, subscriptions.created_at AS subscribed_at, users.user_id, users.user_name, users.full_name, users.avatar_url").
		Joins("INNER JOIN users ON users.user_id = subscriptions.channel_id").
		Where("subscriptions.subscriber_id = ?", subscriberId).
		Order("subscriptions.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetSubscribedChannels failed")
	}
	return list, nil
}

// GetChannelSubscribers lists the followers of the channel.
func (r *SubscriptionRepo) GetChannelSubscribers(ctx context.Context, channelId string) ([]SubscriptionUser, error) {
	list := make([]SubscriptionUser, 0)
	err := r.db.WithContext(ctx).Table(model.SubscriptionTableName).
		Select("subscriptions.subscription_id, subscriptions.created_at AS subscribed_at, users.user_id, users.user_name, users.full_name, users.avatar_url").
		Joins("INNER JOIN users ON users.user_id = subscriptions.subscriber_id").
		Where("subscriptions.channel_id = ?", channelId).
		Order("subscriptions.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "GetChannelSubscribers failed")
	}
	return list, nil
}

func (r *SubscriptionRepo) GetChannelSubscriberCount(ctx context.Context, channelId string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("channel_id = ?", channelId).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "GetChannelSubscriberCount failed")
	}
	return count, nil
}
