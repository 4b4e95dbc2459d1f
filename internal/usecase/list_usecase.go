package usecase

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	apperrors "github.com/places-api/internal/pkg/errors"
	"github.com/places-api/internal/pkg/utils"
	"github.com/places-api/internal/places"
	"github.com/places-api/internal/usecase/dto"
)

const defaultListSize = 10

// categoryDef binds a public category name to its index filters and
// its directory search phrase.
type categoryDef struct {
	filters        []repository.PoiFilter
	directoryQuery string
}

var categories = map[string]categoryDef{
	"restaurant":  {[]repository.PoiFilter{{Class: "restaurant"}, {Class: "fast_food"}}, "restaurant"},
	"hotel":       {[]repository.PoiFilter{{Class: "lodging"}}, "hôtel"},
	"museum":      {[]repository.PoiFilter{{Class: "museum"}}, "musée"},
	"cinema":      {[]repository.PoiFilter{{Class: "cinema"}}, "salles de cinéma"},
	"theatre":     {[]repository.PoiFilter{{Class: "theatre"}}, "salles de spectacles"},
	"pharmacy":    {[]repository.PoiFilter{{Class: "pharmacy"}}, "pharmacie"},
	"supermarket": {[]repository.PoiFilter{{Class: "grocery"}}, "supermarché"},
	"bank":        {[]repository.PoiFilter{{Class: "bank"}}, "banque"},
	"bar":         {[]repository.PoiFilter{{Class: "bar"}}, "bars"},
	"school":      {[]repository.PoiFilter{{Class: "school"}, {Class: "college"}}, "écoles"},
	"doctors":     {[]repository.PoiFilter{{Class: "doctors"}}, "médecin"},
	"veterinary":  {[]repository.PoiFilter{{Class: "veterinary"}}, "vétérinaire"},
	"car_repair":  {[]repository.PoiFilter{{Class: "car_repair"}}, "garages automobiles"},
}

// ListPlaces returns points of interest inside a bbox, optionally
// restricted to a category or raw class/subclass filters. Inside the
// directory coverage, category listings use the directory source.
func (u *PlaceUsecase) ListPlaces(ctx context.Context, req dto.ListPlacesRequest) ([]*domain.Place, error) {
	lang, verbosity, err := requestOptions(req.Lang, req.Verbosity, domain.DefaultListVerbosity())
	if err != nil {
		return nil, err
	}
	bbox, err := parseBbox(req.RawBbox)
	if err != nil {
		return nil, err
	}
	if req.Category != "" && len(req.RawFilters) > 0 {
		return nil, apperrors.ErrConflictingFilters
	}
	size := req.Size
	if size <= 0 {
		size = defaultListSize
	}

	var filters []repository.PoiFilter
	directoryQuery := ""
	if req.Category != "" {
		def, ok := categories[req.Category]
		if !ok {
			return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"category": req.Category,
			})
		}
		filters = def.filters
		directoryQuery = def.directoryQuery
	}
	for _, raw := range req.RawFilters {
		filter, err := parseRawFilter(raw)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}

	if req.Query != "" {
		directoryQuery = req.Query
	}

	switch req.Source {
	case "pages_jaunes":
		if directoryQuery == "" || !u.directoryCovers(bbox) {
			return nil, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"source": req.Source,
			})
		}
		return u.directoryPlaces(ctx, directoryQuery, bbox, size, lang, verbosity)
	case "osm":
		// Explicit index source, never the directory.
	default:
		if directoryQuery != "" && u.directoryCovers(bbox) {
			if results, err := u.directoryPlaces(ctx, directoryQuery, bbox, size, lang, verbosity); err == nil {
				return results, nil
			}
			// Directory trouble falls back to the index.
		}
	}

	records, err := u.placeRepo.GetRawPlacesInBbox(ctx, filters, bbox, size)
	if err != nil {
		return nil, err
	}
	results := make([]*domain.Place, 0, len(records))
	for _, record := range records {
		place, err := adaptRecord(u.placeRepo, record)
		if err != nil {
			u.log.Error("skipping record whose kind has no adapter", zap.Error(err))
			continue
		}
		results = append(results, u.assemble(ctx, place, lang, verbosity))
	}
	return results, nil
}

// ListEvents returns open-data events inside a bbox.
func (u *PlaceUsecase) ListEvents(ctx context.Context, req dto.ListEventsRequest) ([]*domain.Place, error) {
	lang, verbosity, err := requestOptions(req.Lang, req.Verbosity, domain.DefaultListVerbosity())
	if err != nil {
		return nil, err
	}
	bbox, err := parseBbox(req.RawBbox)
	if err != nil {
		return nil, err
	}
	size := req.Size
	if size <= 0 {
		size = defaultListSize
	}

	records, err := u.eventRepo.GetRawEventsInBbox(ctx, bbox, size)
	if err != nil {
		return nil, err
	}
	results := make([]*domain.Place, 0, len(records))
	for _, record := range records {
		results = append(results, u.assemble(ctx, places.NewEvent(record), lang, verbosity))
	}
	return results, nil
}

func (u *PlaceUsecase) directoryCovers(bbox [4]float64) bool {
	return u.directory != nil && u.directory.Enabled() &&
		utils.BboxInFrance(bbox[0], bbox[1], bbox[2], bbox[3])
}

func (u *PlaceUsecase) directoryPlaces(ctx context.Context, what string, bbox [4]float64, size int, lang string, verbosity domain.Verbosity) ([]*domain.Place, error) {
	records, err := u.directory.SearchRawBusinesses(ctx, what, bbox, size)
	if err != nil {
		u.log.Warn("directory search failed", zap.Error(err))
		return nil, err
	}
	results := make([]*domain.Place, 0, len(records))
	for _, record := range records {
		poi, err := places.NewPjApiPOIFromRaw(record)
		if err != nil {
			continue
		}
		results = append(results, u.assemble(ctx, poi, lang, verbosity))
	}
	return results, nil
}

// parseBbox parses "left,bottom,right,top".
func parseBbox(raw string) ([4]float64, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return [4]float64{}, apperrors.ErrInvalidBbox
	}
	var bbox [4]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [4]float64{}, apperrors.ErrInvalidBbox
		}
		bbox[i] = value
	}
	if !utils.ValidateBbox(bbox[0], bbox[1], bbox[2], bbox[3]) {
		return [4]float64{}, apperrors.ErrInvalidBbox
	}
	return bbox, nil
}

// parseRawFilter parses "class,subclass" where either side may be the
// "*" wildcard.
func parseRawFilter(raw string) (repository.PoiFilter, error) {
	class, subclass, found := strings.Cut(raw, ",")
	if !found {
		return repository.PoiFilter{}, apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"raw_filter": raw,
		})
	}
	filter := repository.PoiFilter{}
	if class != "*" {
		filter.Class = class
	}
	if subclass != "*" {
		filter.Subclass = subclass
	}
	return filter, nil
}
