package blocks

import (
	"context"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type GradesBlock struct {
	Type             string  `json:"type"`
	TotalGradesCount int     `json:"total_grades_count"`
	GlobalGrade      float64 `json:"global_grade"`
	URL              string  `json:"url,omitempty"`
}

func (b *GradesBlock) BlockType() string { return "grades" }

func buildGrades(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	grades := p.RawGrades()
	if grades == nil {
		return nil
	}
	return &GradesBlock{
		Type:             "grades",
		TotalGradesCount: grades.TotalCount,
		GlobalGrade:      grades.GlobalGrade,
		URL:              p.ReviewsURL(),
	}
}
