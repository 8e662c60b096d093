package app

import (
	"context"
	"fmt"
	"os"

	"ess-api/internal/bootstrap"
	"ess-api/internal/media"
	"ess-api/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		5,
	)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	logger.Info("database connection established")

	db, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}

	// Redis is optional. Without it the API still answers; caching and
	// idempotency replay are simply off.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		} else {
			logger.Info("redis connection established")
		}
	}

	storage, err := buildStorage()
	if err != nil {
		return fmt.Errorf("init image storage: %w", err)
	}

	auditLogger := bootstrap.NewStdoutAuditLogger()

	return registerModules(router, db, gormDB, rdb, storage, auditLogger)
}

func buildStorage() (media.Storage, error) {
	switch os.Getenv("STORAGE_BACKEND") {
	case "s3":
		return media.NewS3Storage(context.Background(), media.S3Config{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY"),
			SecretAccessKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:          os.Getenv("S3_BUCKET"),
			UseSSL:          os.Getenv("S3_USE_SSL") == "true",
		})
	default:
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "uploads"
		}
		return media.NewLocalStorage(dir)
	}
}
