package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"vidtube.com/cmd/interaction/dal/db"
	"vidtube.com/cmd/model"
	videodb "vidtube.com/cmd/video/dal/db"
	"vidtube.com/pkg/constants"
	"vidtube.com/pkg/errno"
	"vidtube.com/pkg/utils"
)

type CommentService struct {
	commentRepo *db.CommentRepo
	videoRepo   *videodb.VideoRepo
}

func NewCommentService(commentRepo *db.CommentRepo, videoRepo *videodb.VideoRepo) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// CommentFeed is one page of a video's comments with the total count.
type CommentFeed struct {
	Comments []db.CommentWithAuthor `json:"comments"`
	Total    int64                  `json:"total"`
	PageNum  int64                  `json:"page_num"`
	PageSize int64                  `json:"page_size"`
}

func (service *CommentService) validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.RequestErr.WithMessage("Comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return errno.RequestErr.WithMessage("Comment too long, maximum 500 characters allowed")
	}
	return nil
}

func (service *CommentService) AddComment(ctx context.Context, userId, videoId, content string) (*model.Comment, error) {
	if !utils.IsValidObjectId(videoId) {
		return nil, errno.RequestErr.WithMessage("Invalid video ID")
	}
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	exists, err := service.videoRepo.VideoExists(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage("Video not found")
	}

	now := time.Now().Format(constants.DataFormate)
	comment := &model.Comment{
		CommentId: utils.NewObjectId(),
		VideoId:   videoId,
		UserId:    userId,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := service.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns one page of the video's comment feed, newest first.
// The read has no side effects, identical calls return identical pages.
func (service *CommentService) ListComments(ctx context.Context, videoId string, pageNum, pageSize int64) (*CommentFeed, error) {
	if !utils.IsValidObjectId(videoId) {
		return nil, errno.RequestErr.WithMessage("Invalid video ID")
	}
	if pageNum <= 0 {
		pageNum = constants.DefaultPage
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultLimit
	} else if pageSize > constants.MaxLimit {
		pageSize = constants.MaxLimit
	}

	comments, err := service.commentRepo.GetVideoCommentListByPart(ctx, videoId, pageNum, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := service.commentRepo.GetVideoCommentCount(ctx, videoId)
	if err != nil {
		return nil, err
	}
	return &CommentFeed{
		Comments: comments,
		Total:    total,
		PageNum:  pageNum,
		PageSize: pageSize,
	}, nil
}

func (service *CommentService) UpdateComment(ctx context.Context, userId, commentId, content string) (*model.Comment, error) {
	comment, err := service.ownedComment(ctx, userId, commentId)
	if err != nil {
		return nil, err
	}
	if err := service.validateContent(content); err != nil {
		return nil, err
	}
	now := time.Now().Format(constants.DataFormate)
	if err := service.commentRepo.UpdateContent(ctx, comment.CommentId, strings.TrimSpace(content), now); err != nil {
		return nil, err
	}
	comment.Content = strings.TrimSpace(content)
	comment.UpdatedAt = now
	return comment, nil
}

func (service *CommentService) DeleteComment(ctx context.Context, userId, commentId string) error {
	comment, err := service.ownedComment(ctx, userId, commentId)
	if err != nil {
		return err
	}
	return service.commentRepo.DeleteComment(ctx, comment.CommentId)
}

// ownedComment loads the comment and enforces authorship. NotFound and
// Forbidden keep their own codes all the way to the handler.
func (service *CommentService) ownedComment(ctx context.Context, userId, commentId string) (*model.Comment, error) {
	if !utils.IsValidObjectId(commentId) {
		return nil, errno.RequestErr.WithMessage("Invalid comment ID")
	}
	comment, err := service.commentRepo.GetCommentInfo(ctx, commentId)
	if err != nil {
		return nil, err
	}
	if comment.UserId != userId {
		return nil, errno.ForbiddenErr.WithMessage("You are not the author of this comment")
	}
	return comment, nil
}
