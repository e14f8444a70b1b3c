package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	apperrors "github.com/yesmovie/backend/pkg/errors"
)

// publicBaseURL is where publicly readable GCS objects are served from.
const publicBaseURL = "https://storage.googleapis.com"

// GCSStorage implements Storage on a Google Cloud Storage bucket. The
// bucket is assumed to grant allUsers object-viewer access, so uploaded
// objects are publicly readable without per-object ACL changes.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSStorage creates a GCS-backed storage instance.
func NewGCSStorage(client *storage.Client, bucket string) (*GCSStorage, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, apperrors.Configuration("gcs bucket name is required")
	}
	return &GCSStorage{client: client, bucket: strings.TrimSpace(bucket)}, nil
}

// Upload streams the file into the bucket and returns its public URL.
func (s *GCSStorage) Upload(ctx context.Context, input *UploadInput) (*UploadResult, error) {
	obj := s.client.Bucket(s.bucket).Object(input.Key)

	w := obj.NewWriter(ctx)
	w.ContentType = input.ContentType
	if _, err := io.Copy(w, input.Data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write object %s: %w", input.Key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize object %s: %w", input.Key, err)
	}

	return &UploadResult{
		Key: input.Key,
		URL: s.objectURL(input.Key),
	}, nil
}

// Delete removes the object. Deleting an absent object is a not-found error.
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil {
		if isObjectNotFound(err) {
			return apperrors.NotFound("file", key)
		}
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// GetURL returns the public URL after confirming the object exists.
func (s *GCSStorage) GetURL(ctx context.Context, key string) (string, error) {
	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if err != nil {
		if isObjectNotFound(err) {
			return "", apperrors.NotFound("file", key)
		}
		return "", fmt.Errorf("stat object %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

// isObjectNotFound matches both the storage sentinel and a raw 404 from the
// JSON API, which some operations surface as a googleapi.Error.
func isObjectNotFound(err error) bool {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == 404
}

func (s *GCSStorage) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", publicBaseURL, s.bucket, strings.TrimLeft(key, "/"))
}
