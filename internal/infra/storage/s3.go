package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config describes an S3 compatible bucket (AWS, DigitalOcean Spaces, MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // optional, e.g. nyc3.digitaloceanspaces.com
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string // optional base URL objects are served from
	ForcePathStyle  bool
}

type S3Uploader struct {
	client  s3API
	bucket  string
	baseURL func(bucket string) string
	now     func() time.Time
}

var _ Uploader = (*S3Uploader)(nil)

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	endpoint := normalizeEndpoint(cfg.Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = cfg.ForcePathStyle
		}
	})

	return newS3Uploader(client, cfg.Bucket, s3BaseURL(cfg, endpoint)), nil
}

func newS3Uploader(client s3API, bucket string, baseURL func(string) string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, obj Object) (string, error) {
	bucket := obj.Bucket
	if bucket == "" {
		bucket = u.bucket
	}
	key := ObjectKey(obj.Prefix, obj.Name, u.now())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Body),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ACL:           types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", &UploadError{Key: key, Err: err}
	}

	return publicURL(u.baseURL(bucket), key), nil
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return strings.TrimRight(endpoint, "/")
}

func s3BaseURL(cfg S3Config, endpoint string) func(string) string {
	return func(bucket string) string {
		switch {
		case cfg.PublicURL != "" && bucket == cfg.Bucket:
			return cfg.PublicURL
		case endpoint == "":
			return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
		case cfg.ForcePathStyle:
			return endpoint + "/" + bucket
		}
		u, err := url.Parse(endpoint)
		if err != nil {
			return endpoint + "/" + bucket
		}
		return u.Scheme + "://" + bucket + "." + u.Host
	}
}
