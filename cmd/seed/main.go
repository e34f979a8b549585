package main

import (
	"context"
	"log"
	"time"

	"coursetrack-backend-go/internal/config"
	"coursetrack-backend-go/internal/db"
	"coursetrack-backend-go/internal/logging"
	"coursetrack-backend-go/internal/migrations"
	"coursetrack-backend-go/internal/repositories"
	"coursetrack-backend-go/internal/seed"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, closeLogs, err := logging.New(logging.Options{Level: "info"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLogs()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.Open(ctx, config.DatabaseURL())
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Apply(ctx, database); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}
	result, err := seed.Load(ctx, repositories.NewCatalogRepository(database), time.Now().UTC())
	if err != nil {
		logger.Fatal("seed catalog", zap.Error(err))
	}
	logger.Info("catalog seeded", zap.Int("courses", result.Courses), zap.Int("videos", result.Videos))
}
