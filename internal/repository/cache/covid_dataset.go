package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
)

const covidKeyPrefix = "covid19:"

// CovidDataset reads and writes the curated pandemic-status records
// that the worker loads into the shared cache.
type CovidDataset struct {
	cache repository.CacheRepository
	ttl   time.Duration
}

func NewCovidDataset(cache repository.CacheRepository, ttl time.Duration) *CovidDataset {
	return &CovidDataset{cache: cache, ttl: ttl}
}

// GetRecord returns (nil, nil) when no override exists for the place.
func (d *CovidDataset) GetRecord(ctx context.Context, osmID string) (*domain.CovidRecord, error) {
	payload, err := d.cache.Get(ctx, covidKeyPrefix+osmID)
	if err != nil || payload == nil {
		return nil, err
	}
	var record domain.CovidRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (d *CovidDataset) PutRecord(ctx context.Context, record domain.CovidRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return d.cache.Set(ctx, covidKeyPrefix+record.OsmID, payload, d.ttl)
}
