package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMySQL    = "mysql"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Port    string
	GinMode string

	ClaimsStore   string
	DatabaseURL   string
	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string
	MongoDatabase string

	ShopifyDomain       string
	ShopifyAccessToken  string
	ShopifyAPIVersion   string
	CommerceTimeout     time.Duration
	CommerceMaxAttempts int

	StorageDriver        string
	BucketName           string
	BucketURL            string
	BucketRegion         string
	BucketAccessKeyID    string
	BucketAccessSecret   string
	BucketPublicURL      string
	BucketForcePathStyle bool
	CloudinaryCloudName  string
	CloudinaryAPIKey     string
	CloudinaryAPISecret  string
	UploadMaxFileBytes   int64

	SpreadsheetURL     string
	SpreadsheetTimeout time.Duration

	RedisHost       string
	CatalogCacheTTL time.Duration

	RabbitMQURL string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env loaded (%v), relying on environment", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults, and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	cfg := &Config{
		Port:    r.str("PORT", "8000"),
		GinMode: r.str("GIN_MODE", "release"),

		ClaimsStore:   strings.ToLower(r.str("CLAIMS_STORE", StoreMySQL)),
		DatabaseURL:   r.str("DATABASE_URL", getenv("DATABASE_URI")),
		MySQLUser:     r.str("MYSQL_USER", ""),
		MySQLPassword: r.str("MYSQL_PASSWORD", ""),
		MySQLHost:     r.str("MYSQL_HOST", ""),
		MySQLPort:     r.str("MYSQL_PORT", "3306"),
		MySQLDatabase: r.str("MYSQL_DATABASE", ""),
		MongoDatabase: r.str("MONGO_DATABASE", "warranty"),

		ShopifyDomain:       r.str("SHOPIFY_DOMAIN", ""),
		ShopifyAccessToken:  r.str("SHOPIFY_ACCESS_TOKEN", ""),
		ShopifyAPIVersion:   r.str("SHOPIFY_API_VERSION", "2024-10"),
		CommerceTimeout:     r.duration("COMMERCE_TIMEOUT", 10*time.Second),
		CommerceMaxAttempts: r.integer("COMMERCE_MAX_ATTEMPTS", 3),

		StorageDriver:        strings.ToLower(r.str("STORAGE_DRIVER", "s3")),
		BucketName:           r.str("BUCKET_NAME", ""),
		BucketURL:            r.str("BUCKET_URL", ""),
		BucketRegion:         r.str("BUCKET_REGION", "us-east-1"),
		BucketAccessKeyID:    r.str("BUCKET_WRITE_ACCESS_KEY_ID", ""),
		BucketAccessSecret:   r.str("BUCKET_WRITE_ACCESS_KEY_SECRET", ""),
		BucketPublicURL:      r.str("BUCKET_PUBLIC_URL", ""),
		BucketForcePathStyle: r.boolean("BUCKET_FORCE_PATH_STYLE", false),
		CloudinaryCloudName:  r.str("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:     r.str("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:  r.str("CLOUDINARY_API_SECRET", ""),
		UploadMaxFileBytes:   int64(r.integer("UPLOAD_MAX_FILE_BYTES", 5<<20)),

		SpreadsheetURL:     r.str("GOOGLE_SPREADSHEET_LINK", ""),
		SpreadsheetTimeout: r.duration("SPREADSHEET_TIMEOUT", 10*time.Second),

		RedisHost:       r.str("REDIS_HOST", ""),
		CatalogCacheTTL: r.duration("CATALOG_CACHE_TTL", time.Minute),

		RabbitMQURL: r.str("RABBITMQ_URL", ""),
	}

	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.ShopifyDomain == "" {
		errs = append(errs, errors.New("SHOPIFY_DOMAIN is required"))
	}
	if c.ShopifyAccessToken == "" {
		errs = append(errs, errors.New("SHOPIFY_ACCESS_TOKEN is required"))
	}

	switch c.ClaimsStore {
	case StoreMySQL:
		if c.DatabaseURL == "" && c.MySQLHost == "" {
			errs = append(errs, errors.New("DATABASE_URL or MYSQL_HOST is required for the mysql store"))
		}
	case StorePostgres, StoreMongo:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for the %s store", c.ClaimsStore))
		}
	default:
		errs = append(errs, fmt.Errorf("CLAIMS_STORE %q is not one of mysql, postgres, mongo", c.ClaimsStore))
	}

	switch c.StorageDriver {
	case "s3", "gcs":
		if c.BucketName == "" {
			errs = append(errs, errors.New("BUCKET_NAME is required"))
		}
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			errs = append(errs, errors.New("CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER %q is not one of s3, gcs, cloudinary", c.StorageDriver))
	}

	if c.UploadMaxFileBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILE_BYTES must be positive"))
	}
	if c.CommerceMaxAttempts <= 0 {
		errs = append(errs, errors.New("COMMERCE_MAX_ATTEMPTS must be positive"))
	}

	return errors.Join(errs...)
}

type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *reader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}
