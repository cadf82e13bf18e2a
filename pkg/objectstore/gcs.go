package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCSStore keeps objects in a Cloud Storage bucket and hands out V4 signed
// URLs.
type GCSStore struct {
	bucket     *storage.BucketHandle
	bucketName string
	ttl        time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewGCSStore wraps a bucket handle, typically obtained from the Firebase
// Admin SDK storage client.
func NewGCSStore(bucket *storage.BucketHandle, bucketName string, ttl time.Duration, logger *zap.Logger) *GCSStore {
	return &GCSStore{bucket: bucket, bucketName: bucketName, ttl: ttl, logger: logger, now: time.Now}
}

// Put uploads r. The object name is the reference.
func (s *GCSStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	w := s.bucket.Object(name).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("while writing object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("while closing object writer for %s: %w", name, err)
	}
	s.logger.Info("Stored object", zap.String("bucket", s.bucketName), zap.String("object", name))
	return name, nil
}

// URL returns a GET signed URL for ref valid for the configured TTL.
func (s *GCSStore) URL(ctx context.Context, ref string) (string, error) {
	if _, err := s.bucket.Object(ref).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", fmt.Errorf("%s: %w", ref, ErrNotFound)
		}
		return "", fmt.Errorf("while reading attrs of %s: %w", ref, err)
	}
	url, err := s.bucket.SignedURL(ref, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: s.now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("while signing URL for %s: %w", ref, err)
	}
	return url, nil
}
