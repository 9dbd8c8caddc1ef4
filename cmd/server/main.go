package main

import (
	"context"
	"errors"
	"io"
	"log"
	nethttp "net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"warranty-service/internal/config"
	"warranty-service/internal/controllers/http"
	"warranty-service/internal/infra"
	"warranty-service/internal/infra/cache"
	"warranty-service/internal/infra/database"
	"warranty-service/internal/infra/mongodb"
	"warranty-service/internal/infra/rabbitmq"
	"warranty-service/internal/infra/spreadsheet"
	"warranty-service/internal/infra/storage"
	"warranty-service/internal/repository"
	"warranty-service/internal/repository/gormrepo"
	"warranty-service/internal/repository/mongorepo"
	"warranty-service/internal/services"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repo, closeRepo, err := openClaimRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}
	closers = append(closers, closeRepo)

	uploader, err := storage.New(ctx, storage.Config{
		Driver: storage.Driver(cfg.StorageDriver),
		S3: storage.S3Config{
			Bucket:          cfg.BucketName,
			Region:          cfg.BucketRegion,
			Endpoint:        cfg.BucketURL,
			AccessKeyID:     cfg.BucketAccessKeyID,
			SecretAccessKey: cfg.BucketAccessSecret,
			PublicURL:       cfg.BucketPublicURL,
			ForcePathStyle:  cfg.BucketForcePathStyle,
		},
		Cloudinary: storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		},
	})
	if err != nil {
		log.Fatalf("storage: init: %v", err)
	}
	if c, ok := uploader.(io.Closer); ok {
		closers = append(closers, func() { _ = c.Close() })
	}

	var notifiers []services.ClaimNotifier
	if cfg.SpreadsheetURL != "" {
		notifiers = append(notifiers, spreadsheet.NewMirror(cfg.SpreadsheetURL, cfg.SpreadsheetTimeout))
	} else {
		log.Println("spreadsheet: GOOGLE_SPREADSHEET_LINK not set, mirroring disabled")
	}
	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, rabbitmq.ExchangeName)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		closers = append(closers, publisher.Close)
		notifiers = append(notifiers, services.NewClaimEventNotifier(publisher))
	}

	commerce := infra.NewCommerceClient(infra.CommerceConfig{
		Endpoint:    infra.ShopifyEndpoint(cfg.ShopifyDomain, cfg.ShopifyAPIVersion),
		AccessToken: cfg.ShopifyAccessToken,
		Timeout:     cfg.CommerceTimeout,
		MaxAttempts: cfg.CommerceMaxAttempts,
	})

	catalog := services.NewCatalogService(commerce)
	if cfg.RedisHost != "" {
		addr := cfg.RedisHost
		if !strings.Contains(addr, ":") {
			addr += ":6379"
		}
		rdb, err := cache.NewRedisClient(ctx, addr)
		if err != nil {
			log.Printf("catalog cache disabled: %v", err)
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			catalog.SetCache(cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL))
		}
	}

	claims := services.NewClaimService(repo, uploader, notifiers...)
	closers = append(closers, claims.Wait)

	gin.SetMode(cfg.GinMode)
	handler := http.NewHandler(catalog, claims, cfg.UploadMaxFileBytes)

	srv := &nethttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           http.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting warranty service on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("server run: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func openClaimRepository(ctx context.Context, cfg *config.Config) (repository.ClaimRepository, func(), error) {
	if cfg.ClaimsStore == config.StoreMongo {
		client, err := mongodb.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return mongorepo.NewClaimRepository(client.Database(cfg.MongoDatabase)), func() { mongodb.Disconnect(client) }, nil
	}

	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = database.MySQLDSN(cfg.MySQLUser, cfg.MySQLPassword, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDatabase)
	}
	db, err := database.Open(database.Config{Driver: cfg.ClaimsStore, DSN: dsn})
	if err != nil {
		return nil, nil, err
	}
	return gormrepo.NewClaimRepository(db), func() { database.Close(db) }, nil
}
