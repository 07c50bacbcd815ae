package oss

import (
	"context"
	"fmt"
	"path/filepath"

	"vidtube.com/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	videoBucket   = "video"
	pictureBucket = "picture"

	// MinIO default region.
	location = "us-east-1"
)

// Uploader is the object-storage capability: it takes a local file path
// and returns a public URL, or fails. Video publish and profile-image
// updates consume it.
type Uploader interface {
	UploadVideo(ctx context.Context, path string) (string, error)
	UploadImage(ctx context.Context, path string) (string, error)
}

type MinioUploader struct {
	client    *minio.Client
	publicUrl string
}

func NewMinioUploader(conf config.Minio) (*MinioUploader, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client error: %w", err)
	}
	return &MinioUploader{client: client, publicUrl: conf.PublicUrl}, nil
}

func (u *MinioUploader) UploadVideo(ctx context.Context, path string) (string, error) {
	return u.upload(ctx, videoBucket, path)
}

func (u *MinioUploader) UploadImage(ctx context.Context, path string) (string, error) {
	return u.upload(ctx, pictureBucket, path)
}

func (u *MinioUploader) upload(ctx context.Context, bucketName, path string) (string, error) {
	exists, err := u.client.BucketExists(ctx, bucketName)
	if err != nil {
		return "", fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = u.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return "", fmt.Errorf("create bucket error: %w", err)
		}
	}

	// Namespace every object with a fresh key so re-uploads never collide.
	objectName := uuid.New().String() + "/" + filepath.Base(path)
	_, err = u.client.FPutObject(ctx, bucketName, objectName, path, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("put object error: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicUrl, bucketName, objectName), nil
}
