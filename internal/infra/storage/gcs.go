//go:build gcp

package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
)

// GCSUploader writes objects to Google Cloud Storage using application
// default credentials.
type GCSUploader struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

var _ Uploader = (*GCSUploader)(nil)

func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket name is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: create client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket, now: time.Now}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, obj Object) (string, error) {
	bucket := obj.Bucket
	if bucket == "" {
		bucket = u.bucket
	}
	key := ObjectKey(obj.Prefix, obj.Name, u.now())

	w := u.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.ContentType = obj.ContentType
	w.PredefinedACL = "publicRead"

	if _, err := w.Write(obj.Body); err != nil {
		_ = w.Close()
		return "", &UploadError{Key: key, Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &UploadError{Key: key, Err: err}
	}

	return publicURL("https://storage.googleapis.com/"+bucket, key), nil
}

func (u *GCSUploader) Close() error {
	return u.client.Close()
}

func newGCSUploader(ctx context.Context, cfg Config) (Uploader, error) {
	return NewGCSUploader(ctx, cfg.S3.Bucket)
}
