package blocks

import (
	"context"

	"go.uber.org/zap"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

// cityZoneTypes are the administrative levels that get ambient data
// blocks (weather, air quality).
var cityZoneTypes = map[string]bool{"city": true, "city_district": true, "suburb": true}

type AirQualityBlock struct {
	Type string `json:"type"`
	domain.AirQualityMeasurement
}

func (b *AirQualityBlock) BlockType() string { return "air_quality" }

// buildAirQuality reports the freshest station reading inside a city
// level admin area.
func buildAirQuality(ctx context.Context, b *Builder, p places.Place, _ string) domain.Block {
	if p.PlaceType() != domain.PlaceTypeAdmin || !cityZoneTypes[p.ClassName()] {
		return nil
	}
	bbox := p.Bbox()
	if len(bbox) != 4 {
		return nil
	}
	measurement, err := b.measurements.GetAirQuality(ctx,
		[4]float64{bbox[0], bbox[1], bbox[2], bbox[3]}, b.cfg.AirQualityMaxAge)
	if err != nil {
		b.log.Warn("air quality measurements unavailable",
			zap.String("place_id", p.ID()), zap.Error(err))
		return nil
	}
	if measurement == nil {
		return nil
	}
	return &AirQualityBlock{Type: "air_quality", AirQualityMeasurement: *measurement}
}
