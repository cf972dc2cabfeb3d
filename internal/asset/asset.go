// Package asset stores binary media (videos, thumbnails, avatars) in an
// s3-compatible object store and hands back public URLs. Deletion is
// best-effort: callers log failures and move on, a lost object never fails
// the owning mutation.
package asset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidtube/internal/config"
)

// Store is the asset collaborator interface the services depend on.
type Store interface {
	Upload(ctx context.Context, filename, contentType string, content io.Reader, size int64) (string, error)
	Delete(ctx context.Context, assetURL string, isVideo bool) error
}

// File carries one inbound upload from the transport layer to a service.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type minioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewStore(cfg *config.Config) (Store, error) {
	client, err := minio.New(cfg.Asset.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Asset.AccessKeyID, cfg.Asset.SecretAccessKey, ""),
		Secure: cfg.Asset.UseSSL,
		Region: cfg.Asset.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create asset store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Asset.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.Asset.Bucket, minio.MakeBucketOptions{Region: cfg.Asset.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	baseURL := cfg.Asset.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.Asset.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Asset.Endpoint)
	}

	return &minioStore{
		client:  client,
		bucket:  cfg.Asset.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores the content under a fresh object name, keeping the original
// extension, and returns the public URL.
func (s *minioStore) Upload(ctx context.Context, filename, contentType string, content io.Reader, size int64) (string, error) {
	objectName := primitive.NewObjectID().Hex() + path.Ext(filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName), nil
}

// Delete removes the object a previously returned URL points at. The object
// name is recovered from the last path segment of the URL.
func (s *minioStore) Delete(ctx context.Context, assetURL string, isVideo bool) error {
	if assetURL == "" {
		return nil
	}

	objectName, err := objectNameFromURL(assetURL)
	if err != nil {
		return err
	}

	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

func objectNameFromURL(assetURL string) (string, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset url %q: %w", assetURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("invalid asset url %q: no object name", assetURL)
	}
	return name, nil
}
