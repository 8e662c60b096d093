package main

import (
	"context"
	"os"

	"ess-api/internal/leave"
	"ess-api/internal/shared/connection"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Seeds the leave type catalogue into an empty deployment. Running it
// against a populated table is a no-op.
func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		5,
	)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}

	ctx := context.Background()
	repo := leave.NewRepository(gormDB)

	count, err := repo.CountTypes(ctx)
	if err != nil {
		logger.Fatal("count leave types failed", zap.Error(err))
	}
	if count > 0 {
		logger.Info("leave types already present, nothing to do", zap.Int64("count", count))
		return
	}

	if err := repo.SeedDefaultTypes(ctx, leave.DefaultTypeNames); err != nil {
		logger.Fatal("seed leave types failed", zap.Error(err))
	}

	logger.Info("seeded leave types", zap.Int("count", len(leave.DefaultTypeNames)))
}
