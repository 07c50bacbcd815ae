package service

import (
	"context"
	"time"

	"vidtube.com/cmd/model"
	"vidtube.com/cmd/relation/dal/db"
	userdb "vidtube.com/cmd/user/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"
)

type SubscriptionService struct {
	subscriptionRepo *db.SubscriptionRepo
	userRepo         *userdb.UserRepo
}

func NewSubscriptionService(subscriptionRepo *db.SubscriptionRepo, userRepo *userdb.UserRepo) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, userRepo: userRepo}
}

// Toggle flips the subscriber -> channel edge. Subscribing to oneself is
// rejected, same as the follow service this mirrors.
func (service *SubscriptionService) Toggle(ctx context.Context, subscriberId, channelId string) (bool, error) {
	if !utils.IsValidObjectId(channelId) {
		return false, errno.RequestErr.WithMessage("Invalid channel ID")
	}
	if subscriberId == channelId {
		return false, errno.RequestErr.WithMessage("Cannot subscribe to yourself")
	}
	if err := service.requireUser(ctx, channelId, "Channel not found"); err != nil {
		return false, err
	}

	existing, err := service.subscriptionRepo.GetSubscription(ctx, subscriberId, channelId)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := service.subscriptionRepo.DeleteSubscription(ctx, subscriberId, channelId); err != nil {
			return false, err
		}
		return false, nil
	}

	sub := &model.Subscription{
		SubscriptionId: utils.NewObjectId(),
		SubscriberId:   subscriberId,
		ChannelId:      channelId,
		CreatedAt:      time.Now().Format(constants.DataFormate),
	}
	if err := service.subscriptionRepo.CreateSubscription(ctx, sub); err != nil {
		return false, err
	}
	return true, nil
}

// SubscribedChannels answers "who does this user follow". The id must be a
// real user; a valid user with no edges gets an empty list, not an error.
func (service *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberId string) ([]db.SubscriptionUser, error) {
	if !utils.IsValidObjectId(subscriberId) {
		return nil, errno.RequestErr.WithMessage("Invalid subscriber ID")
	}
	if err := service.requireUser(ctx, subscriberId, "Subscriber not found"); err != nil {
		return nil, err
	}
	return service.subscriptionRepo.GetSubscribedChannels(ctx, subscriberId)
}

// SubscriberList is the follower roster of a channel with its size.
type SubscriberList struct {
	Subscribers []db.SubscriptionUser `json:"subscribers"`
	Total       int64                 `json:"total"`
}

// ChannelSubscribers answers "who follows this channel".
func (service *SubscriptionService) ChannelSubscribers(ctx context.Context, channelId string) (*SubscriberList, error) {
	if !utils.IsValidObjectId(channelId) {
		return nil, errno.RequestErr.WithMessage("Invalid channel ID")
	}
	if err := service.requireUser(ctx, channelId, "Channel not found"); err != nil {
		return nil, err
	}
	subscribers, err := service.subscriptionRepo.GetChannelSubscribers(ctx, channelId)
	if err != nil {
		return nil, err
	}
	total, err := service.subscriptionRepo.GetChannelSubscriberCount(ctx, channelId)
	if err != nil {
		return nil, err
	}
	return &SubscriberList{Subscribers: subscribers, Total: total}, nil
}

func (service *SubscriptionService) requireUser(ctx context.Context, userId, message string) error {
	exists, err := service.userRepo.UserExists(ctx, userId)
	if err != nil {
		return err
	}
	if !exists {
		return errno.NotFoundErr.WithMessage(message)
	}
	return nil
}
