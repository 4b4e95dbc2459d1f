package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/pkg/logger"
	rediscache "github.com/places-api/internal/repository/cache"
	"github.com/places-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.Worker.Enabled {
		log.Info("worker disabled, exiting")
		return
	}

	redisClient := rediscache.NewRedisClient(cfg.Redis, cfg.GetRedisAddr())
	cacheRepo := rediscache.NewRedisCache(redisClient)
	streams := rediscache.NewRedisStream(redisClient)
	dataset := rediscache.NewCovidDataset(cacheRepo, cfg.Blocks.Covid19DatasetExpire)

	w := worker.New(streams, cacheRepo, dataset, cfg.Worker, cfg.Blocks.Covid19DatasetExpire, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		log.Fatal("worker stopped", zap.Error(err))
	}
	log.Info("worker stopped")
}
