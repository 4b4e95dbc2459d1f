package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/places-api/internal/blocks"
	"github.com/places-api/internal/config"
	httpdelivery "github.com/places-api/internal/delivery/http"
	"github.com/places-api/internal/domain/repository"
	"github.com/places-api/internal/infrastructure/directory"
	"github.com/places-api/internal/infrastructure/weather"
	"github.com/places-api/internal/infrastructure/wiki"
	"github.com/places-api/internal/pkg/logger"
	"github.com/places-api/internal/pkg/mapurls"
	"github.com/places-api/internal/pkg/thumbr"
	"github.com/places-api/internal/pkg/tz"
	rediscache "github.com/places-api/internal/repository/cache"
	esrepo "github.com/places-api/internal/repository/elastic"
	"github.com/places-api/internal/repository/postgres"
	"github.com/places-api/internal/usecase"
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

	esClient, err := esrepo.NewClient(cfg.Elastic)
	if err != nil {
		log.Fatal("elasticsearch connection failed", zap.Error(err))
	}
	placeRepo := esrepo.NewPlaceRepository(esClient, cfg.Elastic, log)
	eventRepo := esrepo.NewEventRepository(esClient, cfg.Elastic, log)

	redisClient := rediscache.NewRedisClient(cfg.Redis, cfg.GetRedisAddr())
	cacheRepo := rediscache.NewRedisCache(redisClient)
	streams := rediscache.NewRedisStream(redisClient)
	covidDataset := rediscache.NewCovidDataset(cacheRepo, cfg.Blocks.Covid19DatasetExpire)

	var measurements repository.MeasurementRepository
	if cfg.Database.Host != "" {
		db, err := postgres.NewDB(cfg.Database)
		if err != nil {
			log.Fatal("database connection failed", zap.Error(err))
		}
		defer db.Close()
		measurements = postgres.NewMeasurementRepository(db, log)
	}

	var weatherRepo repository.WeatherRepository
	if cfg.Weather.Enabled {
		client, err := weather.NewClient()
		if err != nil {
			log.Fatal("weather client init failed", zap.Error(err))
		}
		weatherRepo = client
	}

	tzFinder, err := tz.NewFinder()
	if err != nil {
		log.Fatal("timezone index load failed", zap.Error(err))
	}

	thumbs := thumbr.New(cfg.Blocks.ThumbrURLs, cfg.Blocks.ThumbrSalt, cfg.Blocks.ThumbrEnabled)

	blockBuilder := blocks.NewBuilder(blocks.BuilderParams{
		Config:         cfg.Blocks,
		Logger:         log,
		Wiki:           wiki.NewClient(cfg.Wiki, cfg.Cache.WikiTTL, log),
		Measurements:   measurements,
		Weather:        weatherRepo,
		Covid:          covidDataset,
		Timezones:      tzFinder,
		Thumbnails:     thumbs,
		WeatherEnabled: cfg.Weather.Enabled,
	})

	placeUsecase := usecase.NewPlaceUsecase(
		placeRepo,
		eventRepo,
		directory.NewClient(cfg.Directory, log),
		blockBuilder,
		mapurls.New(cfg.Maps.BaseURL),
		thumbs,
		streams,
		log,
	)

	handler := httpdelivery.NewPlaceHandler(placeUsecase, log)
	server := httpdelivery.NewServer(cfg, log, handler)

	go func() {
		if err := server.Listen(); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()
	log.Info("api started", zap.String("addr", cfg.GetServerAddr()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
