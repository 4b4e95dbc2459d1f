// Package worker consumes background tasks from the shared task
// stream. Its single job today is keeping the curated pandemic-status
// dataset loaded in the cache: the API publishes refresh hints when
// covered places get traffic, and the worker re-imports the dataset
// when the cached copy expired.
package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	"github.com/places-api/internal/repository/cache"
	"github.com/places-api/internal/usecase"
)

const (
	consumerName    = "dataset-importer"
	freshnessMarker = "covid19:dataset:fresh"
)

type Worker struct {
	streams    repository.StreamRepository
	cacheRepo  repository.CacheRepository
	dataset    *cache.CovidDataset
	httpClient *http.Client
	cfg        config.WorkerConfig
	expire     time.Duration
	log        *zap.Logger
}

func New(
	streams repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	dataset *cache.CovidDataset,
	cfg config.WorkerConfig,
	expire time.Duration,
	log *zap.Logger,
) *Worker {
	return &Worker{
		streams:    streams,
		cacheRepo:  cacheRepo,
		dataset:    dataset,
		httpClient: &http.Client{Timeout: cfg.DatasetTimeout},
		cfg:        cfg,
		expire:     expire,
		log:        log,
	}
}

// Run consumes refresh hints until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.streams.EnsureGroup(ctx, usecase.DatasetRefreshStream, w.cfg.ConsumerGroup); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	w.log.Info("worker started",
		zap.String("stream", usecase.DatasetRefreshStream),
		zap.String("group", w.cfg.ConsumerGroup))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		messages, err := w.streams.ReadGroup(ctx,
			usecase.DatasetRefreshStream, w.cfg.ConsumerGroup, consumerName,
			w.cfg.StreamReadTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Error("stream read failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if len(messages) == 0 {
			continue
		}

		if err := w.refreshIfStale(ctx); err != nil {
			w.log.Error("dataset refresh failed", zap.Error(err))
		}
		ids := make([]string, 0, len(messages))
		for _, msg := range messages {
			ids = append(ids, msg.ID)
		}
		if err := w.streams.Ack(ctx, usecase.DatasetRefreshStream, w.cfg.ConsumerGroup, ids...); err != nil {
			w.log.Warn("ack failed", zap.Error(err))
		}
	}
}

func (w *Worker) refreshIfStale(ctx context.Context) error {
	fresh, err := w.cacheRepo.Exists(ctx, freshnessMarker)
	if err == nil && fresh {
		return nil
	}

	var count int
	for attempt := 1; ; attempt++ {
		count, err = w.importDataset(ctx)
		if err == nil {
			break
		}
		if attempt >= w.cfg.MaxRetries || ctx.Err() != nil {
			return err
		}
		w.log.Warn("dataset import failed, retrying",
			zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	w.log.Info("dataset imported", zap.Int("records", count))
	return w.cacheRepo.Set(ctx, freshnessMarker, []byte("1"), w.expire)
}

// importDataset downloads the CSV export and loads every row into the
// cache. Expected columns: osm_id, status, opening_hours, infos.
func (w *Worker) importDataset(ctx context.Context) (int, error) {
	if w.cfg.DatasetURL == "" {
		return 0, fmt.Errorf("no dataset url configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.cfg.DatasetURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("dataset responded %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{"osm_id", "status"} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("dataset is missing column %q", required)
		}
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			w.log.Warn("skipping malformed dataset row", zap.Error(err))
			continue
		}
		record := domain.CovidRecord{
			OsmID:        field(row, columns, "osm_id"),
			Status:       field(row, columns, "status"),
			OpeningHours: field(row, columns, "opening_hours"),
			Note:         field(row, columns, "infos"),
		}
		if record.OsmID == "" {
			continue
		}
		if err := w.dataset.PutRecord(ctx, record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func field(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
