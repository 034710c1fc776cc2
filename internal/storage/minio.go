// Package storage holds the object store adapter. Binary payloads go in
// under a caller-chosen key and come back as a durable URL; nothing in
// this system ever reads, updates or deletes an object again.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"video_vault/config"
	"video_vault/internal/logger"
)

// ObjectStore is the write-only blob storage contract.
type ObjectStore interface {
	// EnsureBucket creates the target bucket when absent. Called once at
	// startup; failure is fatal for the process.
	EnsureBucket(ctx context.Context) error

	// Put uploads the payload under key and returns its durable URL.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) (string, error)
}

// MinioStore implements ObjectStore on a MinIO endpoint.
type MinioStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewMinioStore builds the MinIO client from configuration. The client is
// long-lived and read-only after construction.
func NewMinioStore(cfg *config.Configuration) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client")
	}

	logger.GetAppLogger().Infof("MinIO client initialized for endpoint %s", cfg.MinioEndpoint)
	return &MinioStore{
		client:   client,
		endpoint: cfg.MinioEndpoint,
		bucket:   cfg.MinioBucket,
		useSSL:   cfg.MinioUseSSL,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrapf(err, "check bucket %s", s.bucket)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrapf(err, "create bucket %s", s.bucket)
		}
		logger.GetAppLogger().Infof("Created bucket %s", s.bucket)
	}
	return nil
}

// Put streams the payload into the bucket and returns the object URL.
// Collision freedom is the caller's responsibility: keys derive from
// freshly generated video ids.
func (s *MinioStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return s.ObjectURL(key), nil
}

// ObjectURL builds the durable locator for a stored key. The URL is
// stored verbatim on the video document and never re-derived afterwards.
func (s *MinioStore) ObjectURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
