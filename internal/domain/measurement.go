package domain

import "time"

// AirQualityMeasurement is one reading of the air quality station store.
type AirQualityMeasurement struct {
	CO           *Particle `json:"CO" db:"-"`
	PM10         *Particle `json:"PM10" db:"-"`
	O3           *Particle `json:"O3" db:"-"`
	NO2          *Particle `json:"NO2" db:"-"`
	SO2          *Particle `json:"SO2" db:"-"`
	PM25         *Particle `json:"PM2_5" db:"-"`
	QualityIndex int       `json:"quality_index" db:"quality_index"`
	Date         time.Time `json:"date" db:"measured_at"`
	Source       string    `json:"source" db:"source"`
	SourceURL    string    `json:"source_url" db:"source_url"`
	Unit         string    `json:"measurements_unit,omitempty" db:"unit"`
}

type Particle struct {
	Value        *float64 `json:"value"`
	QualityIndex *int     `json:"quality_index"`
}

// RecyclingMeasurement is one container fill-level reading.
type RecyclingMeasurement struct {
	ContainerID string    `db:"container_id"`
	Volume      float64   `db:"volume"`
	FillRatio   float64   `db:"fill_ratio"`
	Type        string    `db:"waste_type"`
	Place       string    `db:"place_name"`
	MeasuredAt  time.Time `db:"measured_at"`
	Lat         float64   `db:"lat"`
	Lon         float64   `db:"lon"`
}

// WeatherObservation is a current-conditions snapshot for an admin area.
type WeatherObservation struct {
	Temperature float64
	WindSpeed   float64
	WeatherCode int
	Time        time.Time
}
