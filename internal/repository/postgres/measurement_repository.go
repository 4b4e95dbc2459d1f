// Package postgres implements the environmental measurement store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/pkg/utils"
)

func NewDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

type MeasurementRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewMeasurementRepository(db *sqlx.DB, log *zap.Logger) *MeasurementRepository {
	return &MeasurementRepository{db: db, log: log}
}

type airQualityRow struct {
	QualityIndex int       `db:"quality_index"`
	MeasuredAt   time.Time `db:"measured_at"`
	Source       string    `db:"source"`
	SourceURL    string    `db:"source_url"`
	Unit         string    `db:"unit"`
	COValue      *float64  `db:"co_value"`
	COIndex      *int      `db:"co_index"`
	PM10Value    *float64  `db:"pm10_value"`
	PM10Index    *int      `db:"pm10_index"`
	O3Value      *float64  `db:"o3_value"`
	O3Index      *int      `db:"o3_index"`
	NO2Value     *float64  `db:"no2_value"`
	NO2Index     *int      `db:"no2_index"`
	SO2Value     *float64  `db:"so2_value"`
	SO2Index     *int      `db:"so2_index"`
	PM25Value    *float64  `db:"pm25_value"`
	PM25Index    *int      `db:"pm25_index"`
}

const airQualityQuery = `
	SELECT quality_index, measured_at, source, source_url, unit,
	       co_value, co_index, pm10_value, pm10_index, o3_value, o3_index,
	       no2_value, no2_index, so2_value, so2_index, pm25_value, pm25_index
	FROM air_quality_measurements
	WHERE lon BETWEEN $1 AND $2
	  AND lat BETWEEN $3 AND $4
	  AND measured_at > $5
	ORDER BY measured_at DESC
	LIMIT 1`

func (r *MeasurementRepository) GetAirQuality(ctx context.Context, bbox [4]float64, maxAge time.Duration) (*domain.AirQualityMeasurement, error) {
	var row airQualityRow
	err := r.db.GetContext(ctx, &row, airQualityQuery,
		bbox[0], bbox[2], bbox[1], bbox[3], time.Now().Add(-maxAge))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.AirQualityMeasurement{
		CO:           particle(row.COValue, row.COIndex),
		PM10:         particle(row.PM10Value, row.PM10Index),
		O3:           particle(row.O3Value, row.O3Index),
		NO2:          particle(row.NO2Value, row.NO2Index),
		SO2:          particle(row.SO2Value, row.SO2Index),
		PM25:         particle(row.PM25Value, row.PM25Index),
		QualityIndex: row.QualityIndex,
		Date:         row.MeasuredAt,
		Source:       row.Source,
		SourceURL:    row.SourceURL,
		Unit:         row.Unit,
	}, nil
}

func particle(value *float64, index *int) *domain.Particle {
	if value == nil && index == nil {
		return nil
	}
	return &domain.Particle{Value: value, QualityIndex: index}
}

const recyclingQuery = `
	SELECT container_id, volume, fill_ratio, waste_type, place_name,
	       measured_at, lat, lon
	FROM recycling_measurements
	WHERE lon BETWEEN $1 AND $2
	  AND lat BETWEEN $3 AND $4
	  AND measured_at > $5
	ORDER BY measured_at DESC`

func (r *MeasurementRepository) GetRecycling(ctx context.Context, lat, lon, maxDistance float64, maxAge time.Duration) ([]domain.RecyclingMeasurement, error) {
	// Degree-box prefilter in SQL, exact distance check in Go.
	latDelta := maxDistance / 111320
	lonDelta := latDelta * 2

	var rows []domain.RecyclingMeasurement
	err := r.db.SelectContext(ctx, &rows, recyclingQuery,
		lon-lonDelta, lon+lonDelta, lat-latDelta, lat+latDelta,
		time.Now().Add(-maxAge))
	if err != nil {
		return nil, err
	}

	out := rows[:0]
	for _, row := range rows {
		if utils.HaversineDistance(lat, lon, row.Lat, row.Lon)*1000 <= maxDistance {
			out = append(out, row)
		}
	}
	// Keep the latest reading per container.
	seen := make(map[string]bool, len(out))
	deduped := make([]domain.RecyclingMeasurement, 0, len(out))
	for _, row := range out {
		if seen[row.ContainerID] {
			continue
		}
		seen[row.ContainerID] = true
		deduped = append(deduped, row)
	}
	return deduped, nil
}
