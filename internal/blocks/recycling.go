package blocks

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type RecyclingBlock struct {
	Type       string               `json:"type"`
	Containers []RecyclingContainer `json:"containers"`
}

type RecyclingContainer struct {
	Type         string `json:"type"`
	FillingLevel int    `json:"filling_level"`
	UpdatedAt    string `json:"updated_at"`
	Place        string `json:"place,omitempty"`
}

func (b *RecyclingBlock) BlockType() string { return "recycling" }

// buildRecycling attaches container fill levels to recycling points,
// from the measurement store readings around the place.
func buildRecycling(ctx context.Context, b *Builder, p places.Place, _ string) domain.Block {
	if p.ClassName() != "recycling" {
		return nil
	}
	coord := p.Coord()
	if coord == nil {
		return nil
	}
	measurements, err := b.measurements.GetRecycling(ctx,
		coord.Lat, coord.Lon, b.cfg.RecyclingMaxDistance, b.cfg.RecyclingMaxAge)
	if err != nil {
		b.log.Warn("recycling measurements unavailable",
			zap.String("place_id", p.ID()), zap.Error(err))
		return nil
	}
	if len(measurements) == 0 {
		return nil
	}

	containers := make([]RecyclingContainer, 0, len(measurements))
	for _, m := range measurements {
		containers = append(containers, RecyclingContainer{
			Type:         m.Type,
			FillingLevel: int(m.FillRatio * 100),
			UpdatedAt:    m.MeasuredAt.Format(time.RFC3339),
			Place:        m.Place,
		})
	}
	return &RecyclingBlock{Type: "recycling", Containers: containers}
}
