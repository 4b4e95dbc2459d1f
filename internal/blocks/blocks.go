// Package blocks assembles the optional enrichment sections of a place
// response. Each block type knows how to derive itself from a place
// adapter; the builder runs the block list selected by the request
// verbosity and keeps the sections that produced data.
package blocks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	"github.com/places-api/internal/pkg/thumbr"
	"github.com/places-api/internal/places"
)

// TimezoneFinder resolves the IANA timezone name for a coordinate.
type TimezoneFinder interface {
	TimezoneName(lat, lon float64) string
}

// CovidSource looks up pandemic-status overrides collected outside the
// main geocoding index.
type CovidSource interface {
	GetRecord(ctx context.Context, osmID string) (*domain.CovidRecord, error)
}

// Builder derives response blocks from a place adapter.
type Builder struct {
	cfg            config.BlocksConfig
	log            *zap.Logger
	wiki           repository.WikiRepository
	measurements   repository.MeasurementRepository
	weather        repository.WeatherRepository
	covid          CovidSource
	tz             TimezoneFinder
	thumbnails     *thumbr.Helper
	weatherEnabled bool
	now            func() time.Time
}

type BuilderParams struct {
	Config         config.BlocksConfig
	Logger         *zap.Logger
	Wiki           repository.WikiRepository
	Measurements   repository.MeasurementRepository
	Weather        repository.WeatherRepository
	Covid          CovidSource
	Timezones      TimezoneFinder
	Thumbnails     *thumbr.Helper
	WeatherEnabled bool
}

func NewBuilder(p BuilderParams) *Builder {
	return &Builder{
		cfg:            p.Config,
		log:            p.Logger,
		wiki:           p.Wiki,
		measurements:   p.Measurements,
		weather:        p.Weather,
		covid:          p.Covid,
		tz:             p.Timezones,
		thumbnails:     p.Thumbnails,
		weatherEnabled: p.WeatherEnabled,
		now:            time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

type blockSpec struct {
	enabled func(b *Builder) bool
	build   func(ctx context.Context, b *Builder, p places.Place, lang string) domain.Block
}

func always(*Builder) bool { return true }

var blockSpecs = map[string]blockSpec{
	"weather": {
		enabled: func(b *Builder) bool { return b.weatherEnabled && b.weather != nil },
		build:   buildWeather,
	},
	"air_quality": {
		enabled: func(b *Builder) bool { return b.cfg.AirQualityEnabled && b.measurements != nil },
		build:   buildAirQuality,
	},
	"event_opening_dates": {enabled: always, build: buildEventOpeningDates},
	"event_description":   {enabled: always, build: buildEventDescription},
	"opening_hours":       {enabled: always, build: buildOpeningHours},
	"happy_hours":         {enabled: always, build: buildHappyHours},
	"covid19": {
		enabled: func(b *Builder) bool { return b.cfg.Covid19Enabled },
		build:   buildCovid19,
	},
	"phone":       {enabled: always, build: buildPhone},
	"information": {enabled: always, build: buildInformation},
	"website":     {enabled: always, build: buildWebsite},
	"contact":     {enabled: always, build: buildContact},
	"images": {
		enabled: func(b *Builder) bool { return b.cfg.ImagesEnabled },
		build:   buildImages,
	},
	"grades":  {enabled: always, build: buildGrades},
	"reviews": {enabled: always, build: buildReviews},
	"recycling": {
		enabled: func(b *Builder) bool { return b.cfg.RecyclingEnabled && b.measurements != nil },
		build:   buildRecycling,
	},
	"transactional": {enabled: always, build: buildTransactional},
	"social":        {enabled: always, build: buildSocial},
	"description":   {enabled: always, build: buildDescription},
	"delivery":      {enabled: always, build: buildDelivery},
	"stars":         {enabled: always, build: buildStars},
}

// blockOrder fixes the block sequence per verbosity. The output order
// is part of the response contract.
var blockOrder = map[domain.Verbosity][]string{
	domain.VerbosityLong: {
		"weather",
		"air_quality",
		"event_opening_dates",
		"event_description",
		"opening_hours",
		"happy_hours",
		"covid19",
		"phone",
		"information",
		"website",
		"contact",
		"images",
		"grades",
		"reviews",
		"recycling",
		"transactional",
		"social",
		"description",
		"delivery",
		"stars",
	},
	domain.VerbosityList: {
		"event_opening_dates",
		"event_description",
		"opening_hours",
		"covid19",
		"phone",
		"website",
		"images",
		"grades",
		"recycling",
		"transactional",
		"social",
		"delivery",
		"stars",
	},
	domain.VerbosityShort: {
		"opening_hours",
		"covid19",
	},
}

// Build runs every enabled block of the verbosity level and returns
// the ones that produced data, in the contract order. Blocks run
// concurrently since several of them call external stores.
func (b *Builder) Build(ctx context.Context, p places.Place, lang string, verbosity domain.Verbosity) []domain.Block {
	names := blockOrder[verbosity]
	slots := make([]domain.Block, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		spec := blockSpecs[name]
		if !spec.enabled(b) {
			continue
		}
		wg.Add(1)
		go func(i int, spec blockSpec) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("block build panicked",
						zap.String("block", names[i]),
						zap.String("place_id", p.ID()),
						zap.Any("panic", r))
				}
			}()
			slots[i] = spec.build(ctx, b, p, lang)
		}(i, spec)
	}
	wg.Wait()

	out := make([]domain.Block, 0, len(slots))
	for _, block := range slots {
		if block != nil {
			out = append(out, block)
		}
	}
	return out
}
