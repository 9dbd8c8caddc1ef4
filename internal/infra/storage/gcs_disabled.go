//go:build !gcp

package storage

import (
	"context"
	"fmt"
)

func newGCSUploader(ctx context.Context, cfg Config) (Uploader, error) {
	return nil, fmt.Errorf("gcs storage is not enabled in this build (use -tags gcp)")
}
