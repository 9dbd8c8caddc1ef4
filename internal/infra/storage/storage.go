package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// Object is a single file to be stored. An empty Bucket means the
// uploader's configured bucket.
type Object struct {
	Body        []byte
	Name        string
	ContentType string
	Prefix      string
	Bucket      string
}

// Uploader puts objects into public storage and returns their public URL.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

// UploadError is returned when the storage backend rejects an upload.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("file upload failed: %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ObjectKey builds prefix + unix millis + "_" + file name. Directory parts of
// the uploaded name are dropped.
func ObjectKey(prefix, name string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "_" + base
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + escapeKey(key)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
