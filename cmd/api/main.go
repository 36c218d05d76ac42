package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/logger"
	"github.com/pageza/pantrychef/backend/internal/server"
	"github.com/pageza/pantrychef/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.NewLogger(string(cfg.Env), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	err = run(cfg, zlog)
	if err != nil {
		zlog.Error("server exited", zap.Error(err))
	}
	_ = zlog.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	db, err := database.Open(cfg, zlog)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, cfg.MigrationsDir, zlog); err != nil {
		return err
	}

	rdb, err := database.NewRedisClient(cfg, zlog)
	if err != nil {
		zlog.Warn("rate limiting disabled", zap.Error(err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	deps := server.Deps{DB: db, Redis: rdb, Logger: zlog}
	if cfg.PictureStorage == "s3" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			return err
		}
		if err := s3cfg.HeadBucket(context.Background()); err != nil {
			zlog.Warn("picture bucket is not reachable", zap.String("bucket", s3cfg.BucketName), zap.Error(err))
		}
		deps.Pictures = service.NewS3PictureStore(s3cfg)
	}

	srv := server.New(cfg, deps)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
