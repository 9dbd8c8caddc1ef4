package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"SHOPIFY_DOMAIN":       "shop.myshopify.com",
		"SHOPIFY_ACCESS_TOKEN": "shpat_x",
		"MYSQL_HOST":           "db",
		"BUCKET_NAME":          "claims",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(baseEnv()))

	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, StoreMySQL, cfg.ClaimsStore)
	assert.Equal(t, "3306", cfg.MySQLPort)
	assert.Equal(t, "warranty", cfg.MongoDatabase)
	assert.Equal(t, "2024-10", cfg.ShopifyAPIVersion)
	assert.Equal(t, 10*time.Second, cfg.CommerceTimeout)
	assert.Equal(t, 3, cfg.CommerceMaxAttempts)
	assert.Equal(t, "s3", cfg.StorageDriver)
	assert.Equal(t, "us-east-1", cfg.BucketRegion)
	assert.Equal(t, int64(5242880), cfg.UploadMaxFileBytes)
	assert.Equal(t, time.Minute, cfg.CatalogCacheTTL)
	assert.Empty(t, cfg.RedisHost)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	m := baseEnv()
	m["PORT"] = "9000"
	m["CLAIMS_STORE"] = "Mongo"
	m["DATABASE_URI"] = "mongodb://localhost:27017"
	m["COMMERCE_TIMEOUT"] = "3s"
	m["CATALOG_CACHE_TTL"] = "5m"
	m["BUCKET_FORCE_PATH_STYLE"] = "true"
	m["UPLOAD_MAX_FILE_BYTES"] = "1024"

	cfg, err := FromEnv(env(m))

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.ClaimsStore)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.CommerceTimeout)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.True(t, cfg.BucketForcePathStyle)
	assert.Equal(t, int64(1024), cfg.UploadMaxFileBytes)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(map[string]string)
		expectedErr string
	}{
		{"missing shop", func(m map[string]string) { delete(m, "SHOPIFY_DOMAIN") }, "SHOPIFY_DOMAIN is required"},
		{"missing token", func(m map[string]string) { delete(m, "SHOPIFY_ACCESS_TOKEN") }, "SHOPIFY_ACCESS_TOKEN is required"},
		{"no mysql target", func(m map[string]string) { delete(m, "MYSQL_HOST") }, "DATABASE_URL or MYSQL_HOST is required"},
		{"postgres without url", func(m map[string]string) { m["CLAIMS_STORE"] = "postgres" }, "DATABASE_URL is required for the postgres store"},
		{"unknown store", func(m map[string]string) { m["CLAIMS_STORE"] = "dynamo" }, `CLAIMS_STORE "dynamo"`},
		{"missing bucket", func(m map[string]string) { delete(m, "BUCKET_NAME") }, "BUCKET_NAME is required"},
		{"cloudinary without credentials", func(m map[string]string) { m["STORAGE_DRIVER"] = "cloudinary" }, "CLOUDINARY_CLOUD_NAME"},
		{"unknown driver", func(m map[string]string) { m["STORAGE_DRIVER"] = "ftp" }, `STORAGE_DRIVER "ftp"`},
		{"bad duration", func(m map[string]string) { m["COMMERCE_TIMEOUT"] = "soon" }, "COMMERCE_TIMEOUT"},
		{"bad integer", func(m map[string]string) { m["COMMERCE_MAX_ATTEMPTS"] = "many" }, "COMMERCE_MAX_ATTEMPTS"},
		{"zero file size", func(m map[string]string) { m["UPLOAD_MAX_FILE_BYTES"] = "0" }, "UPLOAD_MAX_FILE_BYTES must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := baseEnv()
			tt.mutate(m)

			cfg, err := FromEnv(env(m))

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
