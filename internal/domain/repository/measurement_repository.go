package repository

import (
	"context"
	"time"

	"github.com/places-api/internal/domain"
)

// MeasurementRepository reads the environmental measurement store.
type MeasurementRepository interface {
	// GetAirQuality returns the freshest air quality reading inside a
	// bbox, or nil when no reading newer than maxAge exists.
	GetAirQuality(ctx context.Context, bbox [4]float64, maxAge time.Duration) (*domain.AirQualityMeasurement, error)

	// GetRecycling returns fill-level readings around a point, capped
	// by distance (meters) and measurement age.
	GetRecycling(ctx context.Context, lat, lon, maxDistance float64, maxAge time.Duration) ([]domain.RecyclingMeasurement, error)
}

// WeatherRepository reads current conditions for a coordinate.
type WeatherRepository interface {
	GetCurrentWeather(ctx context.Context, lat, lon float64) (*domain.WeatherObservation, error)
}
