// Package usecase holds the application services: place resolution,
// response assembly and bbox listings.
package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/places-api/internal/blocks"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	apperrors "github.com/places-api/internal/pkg/errors"
	"github.com/places-api/internal/pkg/mapurls"
	"github.com/places-api/internal/pkg/thumbr"
	"github.com/places-api/internal/places"
	"github.com/places-api/internal/usecase/dto"
)

const (
	defaultLang = "en"

	// Stream the API publishes dataset refresh hints to.
	DatasetRefreshStream = "places:dataset:refresh"
)

type PlaceUsecase struct {
	placeRepo repository.PlaceRepository
	eventRepo repository.EventRepository
	directory repository.DirectoryRepository
	blocks    *blocks.Builder
	mapURLs   *mapurls.Builder
	thumbs    *thumbr.Helper
	streams   repository.StreamRepository
	log       *zap.Logger
}

func NewPlaceUsecase(
	placeRepo repository.PlaceRepository,
	eventRepo repository.EventRepository,
	directory repository.DirectoryRepository,
	blockBuilder *blocks.Builder,
	mapURLs *mapurls.Builder,
	thumbs *thumbr.Helper,
	streams repository.StreamRepository,
	log *zap.Logger,
) *PlaceUsecase {
	return &PlaceUsecase{
		placeRepo: placeRepo,
		eventRepo: eventRepo,
		directory: directory,
		blocks:    blockBuilder,
		mapURLs:   mapURLs,
		thumbs:    thumbs,
		streams:   streams,
		log:       log,
	}
}

// GetPlace resolves a namespaced place id and assembles its response.
// A moved id surfaces as *errors.RedirectError unless the request asks
// to follow it.
func (u *PlaceUsecase) GetPlace(ctx context.Context, req dto.GetPlaceRequest) (*domain.Place, error) {
	lang, verbosity, err := requestOptions(req.Lang, req.Verbosity, domain.DefaultVerbosity())
	if err != nil {
		return nil, err
	}

	place, err := u.resolvePlace(ctx, req.ID, req.FollowRedirect)
	if err != nil {
		return nil, err
	}
	return u.assemble(ctx, place, lang, verbosity), nil
}

func (u *PlaceUsecase) resolvePlace(ctx context.Context, id string, followRedirect bool) (places.Place, error) {
	if id == "" {
		return nil, apperrors.ErrInvalidPlaceID
	}
	namespace, _, found := strings.Cut(id, ":")
	if !found {
		return nil, apperrors.ErrInvalidPlaceID
	}
	switch namespace {
	case "latlon":
		return latlonFromID(id)
	case "pj":
		return u.directoryPlace(ctx, id)
	case "ta":
		record, err := u.placeRepo.GetRawPlace(ctx, id, domain.RawKindTaPOI)
		if err != nil {
			return nil, err
		}
		return places.NewTripadvisorPOI(record), nil
	case "event":
		record, err := u.eventRepo.GetRawEvent(ctx, strings.TrimPrefix(id, "event:"))
		if err != nil {
			return nil, err
		}
		return places.NewEvent(record), nil
	case "addr":
		return u.addressPlace(ctx, id, followRedirect)
	default:
		return u.indexedPlace(ctx, id)
	}
}

// addressPlace falls back to the bare coordinate when the address id
// is no longer indexed, since address ids encode their position.
func (u *PlaceUsecase) addressPlace(ctx context.Context, id string, followRedirect bool) (places.Place, error) {
	record, err := u.placeRepo.GetRawPlace(ctx, id, domain.RawKindAddress)
	if err == nil {
		return places.NewAddress(record), nil
	}
	if err != apperrors.ErrPlaceNotFound {
		return nil, err
	}
	lat, lon, ok := coordFromAddressID(id)
	if !ok {
		return nil, apperrors.ErrPlaceNotFound
	}
	if !followRedirect {
		return nil, apperrors.NewRedirect(places.LatlonID(lat, lon))
	}
	return places.NewLatlon(lat, lon, nil), nil
}

func (u *PlaceUsecase) directoryPlace(ctx context.Context, id string) (places.Place, error) {
	if u.directory == nil || !u.directory.Enabled() {
		return nil, apperrors.ErrPlaceNotFound
	}
	record, err := u.directory.GetRawBusiness(ctx, strings.TrimPrefix(id, "pj:"))
	if err != nil {
		return nil, err
	}
	poi, err := places.NewPjApiPOIFromRaw(record)
	if err != nil {
		return nil, apperrors.ErrUpstreamUnavailable
	}
	return poi, nil
}

func (u *PlaceUsecase) indexedPlace(ctx context.Context, id string) (places.Place, error) {
	record, err := u.placeRepo.GetRawPlace(ctx, id, "")
	if err != nil {
		return nil, err
	}
	place, err := adaptRecord(u.placeRepo, record)
	if err != nil {
		u.log.Error("indexed record kind has no adapter",
			zap.String("place_id", id))
		return nil, err
	}
	return place, nil
}

func adaptRecord(repo repository.PlaceRepository, record domain.RawRecord) (places.Place, error) {
	switch repo.PlaceKind(record) {
	case domain.RawKindAdmin:
		return places.NewAdmin(record), nil
	case domain.RawKindStreet:
		return places.NewStreet(record), nil
	case domain.RawKindAddress:
		return places.NewAddress(record), nil
	case domain.RawKindPOI:
		return places.NewOsmPOI(record), nil
	case domain.RawKindTaPOI:
		return places.NewTripadvisorPOI(record), nil
	default:
		// The store handed back a kind no adapter claims: an upstream
		// contract violation, not a bad request.
		return nil, apperrors.ErrInternalServer
	}
}

// latlonFromID parses "latlon:<lat>:<lon>".
func latlonFromID(id string) (places.Place, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return nil, apperrors.ErrInvalidPlaceID
	}
	lat, errLat := strconv.ParseFloat(parts[1], 64)
	lon, errLon := strconv.ParseFloat(parts[2], 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperrors.ErrInvalidPlaceID
	}
	return places.NewLatlon(lat, lon, nil), nil
}

// coordFromAddressID parses the position encoded by "addr:<lon>;<lat>"
// ids, with an optional trailing house number segment.
func coordFromAddressID(id string) (lat, lon float64, ok bool) {
	payload := strings.TrimPrefix(id, "addr:")
	payload, _, _ = strings.Cut(payload, ":")
	lonText, latText, found := strings.Cut(payload, ";")
	if !found {
		return 0, 0, false
	}
	lonValue, errLon := strconv.ParseFloat(lonText, 64)
	latValue, errLat := strconv.ParseFloat(latText, 64)
	if errLon != nil || errLat != nil {
		return 0, 0, false
	}
	return latValue, lonValue, true
}

// assemble builds the response payload from a resolved place.
func (u *PlaceUsecase) assemble(ctx context.Context, place places.Place, lang string, verbosity domain.Verbosity) *domain.Place {
	name := place.Name(lang)
	if name == "" {
		name = place.LocalName()
	}

	result := &domain.Place{
		Type:         place.PlaceType(),
		ID:           place.ID(),
		Name:         name,
		LocalName:    place.LocalName(),
		ClassName:    place.ClassName(),
		SubclassName: place.SubclassName(),
		Geometry:     place.Geometry(),
		Address:      place.BuildAddress(lang),
		Blocks:       u.blocks.Build(ctx, place, lang, verbosity),
		Meta:         u.placeMeta(place),
	}
	u.publishRefreshHint(place)
	return result
}

func (u *PlaceUsecase) placeMeta(place places.Place) domain.PlaceMeta {
	meta := domain.PlaceMeta{
		Source:        place.Source(),
		SourceURL:     place.SourceURL(),
		ContributeURL: place.ContributeURL(),
	}
	if u.mapURLs != nil && place.ID() != "" {
		meta.MapsPlaceURL = u.mapURLs.PlaceURL(place.ID())
		meta.MapsDirectionsURL = u.mapURLs.DirectionsURL(place.ID())
	}
	if rating := place.RatingURL(); rating != "" {
		if u.thumbs != nil && u.thumbs.Enabled() {
			rating = u.thumbs.ThumbnailURL(rating, 0, 0)
		}
		meta.RatingURL = rating
	}
	return meta
}

// publishRefreshHint tells the background worker that a curated
// dataset consumer just saw traffic. Failures are ignored, the worker
// refreshes on schedule anyway.
func (u *PlaceUsecase) publishRefreshHint(place places.Place) {
	if u.streams == nil || place.PlaceType() != domain.PlaceTypePOI || place.CountryCode() != "FR" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := u.streams.Publish(ctx, DatasetRefreshStream, map[string]interface{}{
			"place_id":     place.ID(),
			"requested_at": time.Now().Unix(),
		}); err != nil {
			u.log.Debug("refresh hint publish failed", zap.Error(err))
		}
	}()
}

func requestOptions(lang, verbosity string, fallback domain.Verbosity) (string, domain.Verbosity, error) {
	if lang == "" {
		lang = defaultLang
	}
	v := fallback
	if verbosity != "" {
		v = domain.Verbosity(verbosity)
		if !v.Valid() {
			return "", "", apperrors.ErrInvalidVerbosity
		}
	}
	return lang, v, nil
}
