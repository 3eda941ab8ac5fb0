package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	serviceContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService is the object store behind section videos, attachments and
// module thumbnails. MediaService owns all naming and metadata; this layer
// only moves bytes and signs URLs.
type MinIOService struct {
	serviceContext.DefaultService

	client *minio.Client
	bucket string

	endpoint  string
	accessKey string
	secretKey string
	useSSL    bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *serviceContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}
	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}
	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucket = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucket == "" {
		svc.bucket = "lyra-media"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}
	svc.client = client

	if err := svc.ensureBucket(context.Background()); err != nil {
		return err
	}

	log.WithFields(log.Fields{"endpoint": svc.endpoint, "bucket": svc.bucket}).Info("Object store ready")
	return nil
}

func (svc *MinIOService) ensureBucket(ctx context.Context) error {
	exists, err := svc.client.BucketExists(ctx, svc.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", svc.bucket, err)
	}
	if exists {
		return nil
	}

	if err := svc.client.MakeBucket(ctx, svc.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", svc.bucket, err)
	}
	log.WithField("bucket", svc.bucket).Info("Created media bucket")
	return nil
}

// Put streams an object into the media bucket.
func (svc *MinIOService) Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	_, err := svc.client.PutObject(ctx, svc.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", objectKey, err)
	}
	return nil
}

// PresignedURL signs a time-limited download link for an object.
func (svc *MinIOService) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := svc.client.PresignedGetObject(ctx, svc.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectKey, err)
	}
	return u.String(), nil
}

// Remove deletes an object from the media bucket.
func (svc *MinIOService) Remove(ctx context.Context, objectKey string) error {
	if err := svc.client.RemoveObject(ctx, svc.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", objectKey, err)
	}
	return nil
}

// Bucket exposes the bucket name for building fallback URLs.
func (svc *MinIOService) Bucket() string {
	return svc.bucket
}
