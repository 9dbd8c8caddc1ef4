package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryUploader stores objects as Cloudinary assets. Prefix becomes the
// asset folder; the bucket has no meaning there and is ignored.
type CloudinaryUploader struct {
	api cloudinaryAPI
	now func() time.Time
}

var _ Uploader = (*CloudinaryUploader)(nil)

func NewCloudinaryUploader(cfg CloudinaryConfig) (*CloudinaryUploader, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary: credentials are not set")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: init: %w", err)
	}

	return &CloudinaryUploader{api: &cld.Upload, now: time.Now}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, obj Object) (string, error) {
	key := ObjectKey(obj.Prefix, obj.Name, u.now())
	publicID := strings.TrimSuffix(key, path.Ext(key))

	result, err := u.api.Upload(ctx, bytes.NewReader(obj.Body), uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", &UploadError{Key: key, Err: err}
	}
	if result.Error.Message != "" {
		return "", &UploadError{Key: key, Err: errors.New(result.Error.Message)}
	}

	return result.SecureURL, nil
}
