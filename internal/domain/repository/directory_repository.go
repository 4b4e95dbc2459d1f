package repository

import (
	"context"

	"github.com/places-api/internal/domain"
)

// DirectoryRepository fetches raw records from the local business
// directory API ("pj" namespace).
type DirectoryRepository interface {
	// GetRawBusiness fetches one business record by its internal id
	// (the place id without the "pj:" prefix).
	GetRawBusiness(ctx context.Context, internalID string) (domain.RawRecord, error)

	// SearchRawBusinesses returns business records matching free-text
	// categories within a bbox.
	SearchRawBusinesses(ctx context.Context, what string, bbox [4]float64, limit int) ([]domain.RawRecord, error)

	// Enabled reports whether the directory source is configured.
	Enabled() bool
}
