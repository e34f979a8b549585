package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coursetrack-backend-go/internal/config"
	"coursetrack-backend-go/internal/db"
	httpapi "coursetrack-backend-go/internal/http"
	"coursetrack-backend-go/internal/logging"
	"coursetrack-backend-go/internal/migrations"
	"coursetrack-backend-go/internal/repositories"
	"coursetrack-backend-go/internal/seed"
	"coursetrack-backend-go/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, closeLogs, err := logging.New(logging.Options{
		Dir:           cfg.LogDir,
		RetentionDays: cfg.LogRetentionDays,
		Level:         cfg.LogLevel,
	})
	if err != nil {
		log.Printf("log file unavailable, logging to stdout only: %v", err)
	}
	defer closeLogs()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage", zap.String("storage", cfg.Storage), zap.Error(err))
	}
	defer closeStores()

	hub := services.NewProgressHub(logger)
	server := httpapi.NewServer(cfg, stores, hub, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("storage", cfg.Storage))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("shutdown complete")
}

// openStores wires Postgres repositories, or a seeded in-memory store when STORAGE=memory.
func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (httpapi.Stores, func(), error) {
	if cfg.Storage == config.StorageMemory {
		store := repositories.NewMemoryStore()
		result, err := seed.Load(ctx, store, time.Now().UTC())
		if err != nil {
			return httpapi.Stores{}, nil, fmt.Errorf("seed memory store: %w", err)
		}
		logger.Info("memory store seeded", zap.Int("courses", result.Courses), zap.Int("videos", result.Videos))
		return httpapi.Stores{
			Users:        store,
			Catalog:      store,
			Progress:     store,
			Certificates: store,
			DB:           store,
		}, func() {}, nil
	}

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return httpapi.Stores{}, nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrations.Apply(ctx, database); err != nil {
		_ = database.Close()
		return httpapi.Stores{}, nil, fmt.Errorf("migrations: %w", err)
	}
	return httpapi.Stores{
		Users:        repositories.NewUserRepository(database),
		Catalog:      repositories.NewCatalogRepository(database),
		Progress:     repositories.NewProgressRepository(database),
		Certificates: repositories.NewCertificateRepository(database),
		DB:           database,
	}, func() { _ = database.Close() }, nil
}
