package service

import (
	"context"
	"time"

	"vidtube.com/cmd/interaction/dal/db"
	"vidtube.com/cmd/model"
	videodb "vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"
)

type LikeService struct {
	likeRepo    *db.LikeRepo
	commentRepo *db.CommentRepo
	videoRepo   *videodb.VideoRepo
}

func NewLikeService(likeRepo *db.LikeRepo, commentRepo *db.CommentRepo, videoRepo *videodb.VideoRepo) *LikeService {
	return &LikeService{likeRepo: likeRepo, commentRepo: commentRepo, videoRepo: videoRepo}
}

// Toggle flips the (user, target) like edge: present deletes, absent
// creates. The read and the write are not wrapped in a transaction; when
// two togglers race on the create, the unique index picks the winner and
// the loser surfaces a conflict.
func (service *LikeService) Toggle(ctx context.Context, userId string, target model.LikeTarget) (bool, error) {
	if !utils.IsValidObjectId(target.Id) {
		return false, errno.RequestErr.WithMessage("Invalid " + string(target.Kind) + " ID")
	}
	if err := service.targetExists(ctx, target); err != nil {
		return false, err
	}

	existing, err := service.likeRepo.GetLike(ctx, userId, target)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := service.likeRepo.DeleteLike(ctx, userId, target); err != nil {
			return false, err
		}
		return false, nil
	}

	like := &model.Like{
		LikeId:     utils.NewObjectId(),
		UserId:     userId,
		TargetKind: target.Kind,
		TargetId:   target.Id,
		CreatedAt:  time.Now().Format(constants.DataFormate),
	}
	if err := service.likeRepo.CreateLike(ctx, like); err != nil {
		return false, err
	}
	return true, nil
}

// targetExists dispatches on the tagged target kind. Unknown kinds cannot
// be built through the model constructors, but reject them anyway.
func (service *LikeService) targetExists(ctx context.Context, target model.LikeTarget) error {
	var exists bool
	var err error
	switch target.Kind {
	case model.TargetVideo:
		exists, err = service.videoRepo.VideoExists(ctx, target.Id)
	case model.TargetComment:
		exists, err = service.commentRepo.CommentExists(ctx, target.Id)
	default:
		return errno.RequestErr.WithMessage("Unsupported resource type")
	}
	if err != nil {
		return err
	}
	if !exists {
		return errno.NotFoundErr.WithMessage(string(target.Kind) + " not found")
	}
	return nil
}

func (service *LikeService) LikedVideos(ctx context.Context, userId string) ([]db.LikedVideo, error) {
	return service.likeRepo.GetLikedVideos(ctx, userId)
}

func (service *LikeService) LikedComments(ctx context.Context, userId string) ([]db.LikedComment, error) {
	return service.likeRepo.GetLikedComments(ctx, userId)
}
