package repository

import (
	"context"

	"github.com/places-api/internal/domain"
)

// PoiFilter restricts a bbox query to a class/subclass pair. A "*" on
// either side of a raw filter is represented by an empty string.
type PoiFilter struct {
	Class    string
	Subclass string
}

// PlaceRepository fetches raw records from the geocoding index.
type PlaceRepository interface {
	// GetRawPlace finds one record by its id. kindHint selects a
	// sub-index (admin|street|addr|poi|poi_tripadvisor); the combined
	// index is queried when it is empty. Returns ErrPlaceNotFound when
	// no record matches, ErrUpstreamUnavailable when the store fails.
	GetRawPlace(ctx context.Context, id, kindHint string) (domain.RawRecord, error)

	// GetRawPlacesInBbox returns POI records within a bbox matching at
	// least one of the filters (all records when filters is empty),
	// ordered by decreasing weight.
	GetRawPlacesInBbox(ctx context.Context, filters []PoiFilter, bbox [4]float64, limit int) ([]domain.RawRecord, error)

	// PlaceKind reports the kind declared by a raw record.
	PlaceKind(record domain.RawRecord) string
}

// EventRepository fetches raw records from the open-data event store.
type EventRepository interface {
	GetRawEvent(ctx context.Context, uid string) (domain.RawRecord, error)
	GetRawEventsInBbox(ctx context.Context, bbox [4]float64, limit int) ([]domain.RawRecord, error)
}
