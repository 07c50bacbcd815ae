package service

import (
	"context"
	"strings"
	"time"

	interactiondb "vidtube.com/cmd/interaction/dal/db"
	"vidtube.com/cmd/model"
	"vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/oss"
	"vidtube.com/pkg/utils"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type VideoService struct {
	videoRepo *db.VideoRepo
	likeRepo  *interactiondb.LikeRepo
	uploader  oss.Uploader
}

func NewVideoService(videoRepo *db.VideoRepo, likeRepo *interactiondb.LikeRepo, uploader oss.Uploader) *VideoService {
	return &VideoService{videoRepo: videoRepo, likeRepo: likeRepo, uploader: uploader}
}

type PublishParams struct {
	UserId        string
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	ThumbnailPath string
}

type ListParams struct {
	Query    string
	OwnerId  string
	SortBy   string
	SortDesc bool
	PageNum  int64
	PageSize int64
}

// Publish uploads both files to object storage, then creates the record.
// The upload is awaited inside the publishing request, there is no queue.
func (service *VideoService) Publish(ctx context.Context, params PublishParams) (*model.Video, error) {
	if strings.TrimSpace(params.Title) == "" || params.Duration <= 0 {
		return nil, errno.RequestErr.WithMessage("Title and duration are required")
	}
	if params.VideoPath == "" || params.ThumbnailPath == "" {
		return nil, errno.RequestErr.WithMessage("Video file and thumbnail are required")
	}

	videoUrl, err := service.uploader.UploadVideo(ctx, params.VideoPath)
	if err != nil {
		hlog.CtxErrorf(ctx, "video upload failed: %v", err)
		return nil, errno.UploadErr
	}
	thumbnailUrl, err := service.uploader.UploadImage(ctx, params.ThumbnailPath)
	if err != nil {
		hlog.CtxErrorf(ctx, "thumbnail upload failed: %v", err)
		return nil, errno.UploadErr
	}

	now := time.Now().Format(constants.DataFormate)
	video := &model.Video{
		VideoId:      utils.NewObjectId(),
		UserId:       params.UserId,
		VideoUrl:     videoUrl,
		ThumbnailUrl: thumbnailUrl,
		Title:        strings.TrimSpace(params.Title),
		Description:  params.Description,
		Duration:     params.Duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := service.videoRepo.CreateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

func (service *VideoService) List(ctx context.Context, params ListParams) ([]db.VideoWithOwner, error) {
	if params.PageNum <= 0 {
		params.PageNum = constants.DefaultPage
	}
	if params.PageSize <= 0 {
		params.PageSize = constants.DefaultLimit
	} else if params.PageSize > constants.MaxLimit {
		params.PageSize = constants.MaxLimit
	}
	if params.OwnerId != "" && !utils.IsValidObjectId(params.OwnerId) {
		// A malformed owner filter is ignored rather than rejected.
		params.OwnerId = ""
	}
	return service.videoRepo.ListVideos(ctx, db.ListParams{
		Query:    params.Query,
		OwnerId:  params.OwnerId,
		SortBy:   params.SortBy,
		SortDesc: params.SortDesc,
		PageNum:  params.PageNum,
		PageSize: params.PageSize,
	})
}

// VideoDetail is a single video with its like count attached.
type VideoDetail struct {
	*model.Video
	LikeCount int64 `json:"like_count"`
}

func (service *VideoService) GetById(ctx context.Context, videoId string) (*VideoDetail, error) {
	if !utils.IsValidObjectId(videoId) {
		return nil, errno.RequestErr.WithMessage("Invalid video ID")
	}
	video, err := service.videoRepo.GetVideoById(ctx, videoId)
	if err != nil {
		return nil, err
	}
	likeCount, err := service.likeRepo.GetVideoLikeCount(ctx, videoId)
	if err != nil {
		return nil, err
	}
	return &VideoDetail{Video: video, LikeCount: likeCount}, nil
}

type UpdateParams struct {
	Title         string
	Description   string
	ThumbnailPath string
}

func (service *VideoService) Update(ctx context.Context, userId, videoId string, params UpdateParams) (*model.Video, error) {
	video, err := service.ownedVideo(ctx, userId, videoId)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now().Format(constants.DataFormate)}
	if strings.TrimSpace(params.Title) != "" {
		updates["title"] = strings.TrimSpace(params.Title)
	}
	if params.Description != "" {
		updates["description"] = params.Description
	}
	if params.ThumbnailPath != "" {
		thumbnailUrl, err := service.uploader.UploadImage(ctx, params.ThumbnailPath)
		if err != nil {
			hlog.CtxErrorf(ctx, "thumbnail upload failed: %v", err)
			return nil, errno.UploadErr
		}
		updates["thumbnail_url"] = thumbnailUrl
	}

	if err := service.videoRepo.UpdateVideo(ctx, video.VideoId, updates); err != nil {
		return nil, err
	}
	return service.videoRepo.GetVideoById(ctx, videoId)
}

// Delete removes the record and cascades the likes on it. The stored
// objects in the bucket are not cleaned up yet.
// TODO: remove the video and thumbnail objects once oss grows a delete API.
func (service *VideoService) Delete(ctx context.Context, userId, videoId string) error {
	video, err := service.ownedVideo(ctx, userId, videoId)
	if err != nil {
		return err
	}
	return service.videoRepo.DeleteVideo(ctx, video.VideoId)
}

func (service *VideoService) TogglePublish(ctx context.Context, userId, videoId string) (*model.Video, error) {
	video, err := service.ownedVideo(ctx, userId, videoId)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"is_published": !video.IsPublished,
		"updated_at":   time.Now().Format(constants.DataFormate),
	}
	if err := service.videoRepo.UpdateVideo(ctx, video.VideoId, updates); err != nil {
		return nil, err
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

// ownedVideo loads the video and enforces that userId is its owner.
// NotFound is checked before ownership so a missing video never reads as
// a permission problem.
func (service *VideoService) ownedVideo(ctx context.Context, userId, videoId string) (*model.Video, error) {
	if !utils.IsValidObjectId(videoId) {
		return nil, errno.RequestErr.WithMessage("Invalid video ID")
	}
	video, err := service.videoRepo.GetVideoById(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if video.UserId != userId {
		return nil, errno.ForbiddenErr.WithMessage("You are not the owner of this video")
	}
	return video, nil
}
