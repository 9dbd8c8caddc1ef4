package storage

import (
	"context"
	"fmt"
)

type Driver string

const (
	DriverS3         Driver = "s3"
	DriverGCS        Driver = "gcs"
	DriverCloudinary Driver = "cloudinary"
)

// Config selects and configures the storage backend. The S3 bucket name is
// also used as the GCS bucket.
type Config struct {
	Driver     Driver
	S3         S3Config
	Cloudinary CloudinaryConfig
}

func New(ctx context.Context, cfg Config) (Uploader, error) {
	switch cfg.Driver {
	case DriverS3, "":
		return NewS3Uploader(ctx, cfg.S3)
	case DriverGCS:
		return newGCSUploader(ctx, cfg)
	case DriverCloudinary:
		return NewCloudinaryUploader(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
