package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-api/internal/blocks"
	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	apperrors "github.com/places-api/internal/pkg/errors"
	"github.com/places-api/internal/pkg/mapurls"
	"github.com/places-api/internal/usecase/dto"
)

type mockPlaceRepo struct{ mock.Mock }

func (m *mockPlaceRepo) GetRawPlace(ctx context.Context, id, kindHint string) (domain.RawRecord, error) {
	args := m.Called(ctx, id, kindHint)
	if record := args.Get(0); record != nil {
		return record.(domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceRepo) GetRawPlacesInBbox(ctx context.Context, filters []repository.PoiFilter, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	args := m.Called(ctx, filters, bbox, limit)
	if records := args.Get(0); records != nil {
		return records.([]domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlaceRepo) PlaceKind(record domain.RawRecord) string {
	return record.String("type")
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) GetRawEvent(ctx context.Context, uid string) (domain.RawRecord, error) {
	args := m.Called(ctx, uid)
	if record := args.Get(0); record != nil {
		return record.(domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEventRepo) GetRawEventsInBbox(ctx context.Context, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	args := m.Called(ctx, bbox, limit)
	if records := args.Get(0); records != nil {
		return records.([]domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDirectory struct {
	mock.Mock
	enabled bool
}

func (m *mockDirectory) Enabled() bool { return m.enabled }

func (m *mockDirectory) GetRawBusiness(ctx context.Context, internalID string) (domain.RawRecord, error) {
	args := m.Called(ctx, internalID)
	if record := args.Get(0); record != nil {
		return record.(domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDirectory) SearchRawBusinesses(ctx context.Context, what string, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	args := m.Called(ctx, what, bbox, limit)
	if records := args.Get(0); records != nil {
		return records.([]domain.RawRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestUsecase(placeRepo *mockPlaceRepo, eventRepo *mockEventRepo, directory *mockDirectory) *PlaceUsecase {
	blockBuilder := blocks.NewBuilder(blocks.BuilderParams{
		Config: config.BlocksConfig{DescriptionMaxSize: 250},
		Logger: zap.NewNop(),
	})
	return NewPlaceUsecase(
		placeRepo, eventRepo, directory, blockBuilder,
		mapurls.New("https://maps.example.com/"),
		nil, nil, zap.NewNop(),
	)
}

func poiRecord() domain.RawRecord {
	return domain.RawRecord{
		"type": "poi",
		"id":   "osm:node:738042332",
		"name": "Musée du Louvre",
		"coord": map[string]interface{}{
			"lat": 48.860861, "lon": 2.335836,
		},
		"properties": map[string]interface{}{
			"name":         "Musée du Louvre",
			"name:en":      "Louvre Museum",
			"poi_class":    "museum",
			"poi_subclass": "museum",
		},
	}
}

func TestGetPlaceFromIndex(t *testing.T) {
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlace", mock.Anything, "osm:node:738042332", "").
		Return(poiRecord(), nil)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	place, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{
		ID:   "osm:node:738042332",
		Lang: "en",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PlaceTypePOI, place.Type)
	assert.Equal(t, "osm:node:738042332", place.ID)
	assert.Equal(t, "Louvre Museum", place.Name)
	assert.Equal(t, "Musée du Louvre", place.LocalName)
	assert.Equal(t, "museum", place.ClassName)
	assert.Equal(t, "osm", place.Meta.Source)
	assert.Equal(t, "https://maps.example.com/place/osm:node:738042332", place.Meta.MapsPlaceURL)
	placeRepo.AssertExpectations(t)
}

func TestGetPlaceLatlon(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{})

	place, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{
		ID: "latlon:48.85000:2.35000",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceTypeLatlon, place.Type)
	assert.Equal(t, "latlon:48.85000:2.35000", place.ID)
}

func TestGetPlaceInvalidID(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{})

	_, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "latlon:not:numbers"})
	assert.Equal(t, apperrors.ErrInvalidPlaceID, err)

	_, err = u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: ""})
	assert.Equal(t, apperrors.ErrInvalidPlaceID, err)

	// An id with no namespace separator is rejected before any fetch.
	_, err = u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "osmnode738042332"})
	assert.Equal(t, apperrors.ErrInvalidPlaceID, err)
}

func TestGetPlaceUnknownRecordKind(t *testing.T) {
	record := domain.RawRecord{"type": "galaxy", "id": "osm:node:1"}
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlace", mock.Anything, "osm:node:1", "").Return(record, nil)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	_, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "osm:node:1"})
	assert.Equal(t, apperrors.ErrInternalServer, err)
}

func TestGetPlaceInvalidVerbosity(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{})

	_, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{
		ID:        "latlon:1.00000:2.00000",
		Verbosity: "verbose",
	})
	assert.Equal(t, apperrors.ErrInvalidVerbosity, err)
}

func TestGetPlaceTripadvisorHint(t *testing.T) {
	record := poiRecord()
	record["type"] = "poi_tripadvisor"
	record["id"] = "ta:poi:123"
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlace", mock.Anything, "ta:poi:123", domain.RawKindTaPOI).
		Return(record, nil)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	place, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "ta:poi:123"})
	require.NoError(t, err)
	assert.Equal(t, "tripadvisor", place.Meta.Source)
	placeRepo.AssertExpectations(t)
}

func TestGetPlaceMovedAddressRedirects(t *testing.T) {
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlace", mock.Anything, "addr:2.35000;48.85000", domain.RawKindAddress).
		Return(nil, apperrors.ErrPlaceNotFound)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	_, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "addr:2.35000;48.85000"})
	redirect, ok := err.(*apperrors.RedirectError)
	require.True(t, ok)
	assert.Equal(t, "latlon:48.85000:2.35000", redirect.Target)
}

func TestGetPlaceMovedAddressFollowed(t *testing.T) {
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlace", mock.Anything, "addr:2.35000;48.85000", domain.RawKindAddress).
		Return(nil, apperrors.ErrPlaceNotFound)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	place, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{
		ID:             "addr:2.35000;48.85000",
		FollowRedirect: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PlaceTypeLatlon, place.Type)
	assert.Equal(t, "latlon:48.85000:2.35000", place.ID)
}

func TestGetPlaceDirectoryDisabled(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{enabled: false})

	_, err := u.GetPlace(context.Background(), dto.GetPlaceRequest{ID: "pj:05340764"})
	assert.Equal(t, apperrors.ErrPlaceNotFound, err)
}

func TestListPlacesInvalidBbox(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{})

	_, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{RawBbox: "2.3,48.8,2.4"})
	assert.Equal(t, apperrors.ErrInvalidBbox, err)

	_, err = u.ListPlaces(context.Background(), dto.ListPlacesRequest{RawBbox: "2.4,48.9,2.3,48.8"})
	assert.Equal(t, apperrors.ErrInvalidBbox, err)
}

func TestListPlacesConflictingFilters(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{})

	_, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{
		RawBbox:    "2.3,48.8,2.4,48.9",
		Category:   "museum",
		RawFilters: []string{"museum,*"},
	})
	assert.Equal(t, apperrors.ErrConflictingFilters, err)
}

func TestListPlacesCategoryFilters(t *testing.T) {
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlacesInBbox", mock.Anything,
		[]repository.PoiFilter{{Class: "museum"}},
		[4]float64{2.3, 48.8, 2.4, 48.9}, 10).
		Return([]domain.RawRecord{poiRecord()}, nil)
	u := newTestUsecase(placeRepo, new(mockEventRepo), &mockDirectory{})

	results, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{
		RawBbox:  "2.3,48.8,2.4,48.9",
		Category: "museum",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "osm:node:738042332", results[0].ID)
	placeRepo.AssertExpectations(t)
}

func TestListPlacesRawFilterWildcards(t *testing.T) {
	filter, err := parseRawFilter("*,atm")
	require.NoError(t, err)
	assert.Equal(t, repository.PoiFilter{Subclass: "atm"}, filter)

	_, err = parseRawFilter("museum")
	assert.Error(t, err)
}

func TestListPlacesDirectorySource(t *testing.T) {
	directory := &mockDirectory{enabled: true}
	directory.On("SearchRawBusinesses", mock.Anything, "musée",
		[4]float64{2.3, 48.8, 2.4, 48.9}, 10).
		Return([]domain.RawRecord{{
			"merchant_id":   "55317963",
			"merchant_name": "Musée d'Orsay",
		}}, nil)
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), directory)

	results, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{
		RawBbox:  "2.3,48.8,2.4,48.9",
		Category: "museum",
		Source:   "pages_jaunes",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "pj:55317963", results[0].ID)
	directory.AssertExpectations(t)
}

func TestListPlacesDirectorySourceOutsideCoverage(t *testing.T) {
	u := newTestUsecase(new(mockPlaceRepo), new(mockEventRepo), &mockDirectory{enabled: true})

	// Moscow bbox, outside the directory coverage area.
	_, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{
		RawBbox:  "37.5,55.7,37.7,55.8",
		Category: "museum",
		Source:   "pages_jaunes",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestListPlacesOsmSourceSkipsDirectory(t *testing.T) {
	placeRepo := new(mockPlaceRepo)
	placeRepo.On("GetRawPlacesInBbox", mock.Anything,
		[]repository.PoiFilter{{Class: "museum"}},
		[4]float64{2.3, 48.8, 2.4, 48.9}, 10).
		Return([]domain.RawRecord{poiRecord()}, nil)
	directory := &mockDirectory{enabled: true}
	u := newTestUsecase(placeRepo, new(mockEventRepo), directory)

	results, err := u.ListPlaces(context.Background(), dto.ListPlacesRequest{
		RawBbox:  "2.3,48.8,2.4,48.9",
		Category: "museum",
		Source:   "osm",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	directory.AssertNotCalled(t, "SearchRawBusinesses",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
