package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/leandrawisnu/noteshare/internal/config"
	"github.com/leandrawisnu/noteshare/internal/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioBlobStorage is the MinIO-backed implementation of [BlobStorage].
// Attachment image bytes are stored as objects in a single bucket; the
// public URL of an object is built from the configured public base URL so
// links keep working when the store sits behind a proxy or CDN.
type minioBlobStorage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	logger        *logger.Logger
}

// NewMinioBlobStorage connects to the configured object store and ensures the
// attachment bucket exists.
func NewMinioBlobStorage(ctx context.Context, cfg config.Blob, log *logger.Logger) (BlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioBlobStorage").Msg("error connecting object storage")
		return nil, fmt.Errorf("error connecting object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating bucket %q: %w", cfg.Bucket, err)
		}
	}
	log.Info().Str("func", "NewMinioBlobStorage").Str("bucket", cfg.Bucket).Msg("connected to object storage successfully")

	return &minioBlobStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        log,
	}, nil
}

// PutObject uploads attachment bytes under objectKey and returns the public
// URL the stored object is reachable at.
func (s *minioBlobStorage) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		log.Err(err).Str("func", "*minioBlobStorage.PutObject").Str("object_key", objectKey).Msg("error putting object")
		return "", fmt.Errorf("%w: %w", ErrPuttingObject, err)
	}

	return s.publicBaseURL + "/" + s.bucket + "/" + objectKey, nil
}

// RemoveObject deletes the object stored under objectKey.
func (s *minioBlobStorage) RemoveObject(ctx context.Context, objectKey string) error {
	log := logger.FromContext(ctx)

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		log.Err(err).Str("func", "*minioBlobStorage.RemoveObject").Str("object_key", objectKey).Msg("error removing object")
		return fmt.Errorf("%w: %w", ErrRemovingObject, err)
	}

	return nil
}
