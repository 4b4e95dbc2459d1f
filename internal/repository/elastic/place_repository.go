// Package elastic implements the geocoding index repositories on top
// of an Elasticsearch cluster.
package elastic

import (
	"context"
	"encoding/json"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/domain/repository"
	apperrors "github.com/places-api/internal/pkg/errors"
)

type PlaceRepository struct {
	client *elastic.Client
	cfg    config.ElasticConfig
	log    *zap.Logger
}

func NewPlaceRepository(client *elastic.Client, cfg config.ElasticConfig, log *zap.Logger) *PlaceRepository {
	return &PlaceRepository{client: client, cfg: cfg, log: log}
}

func (r *PlaceRepository) GetRawPlace(ctx context.Context, id, kindHint string) (domain.RawRecord, error) {
	index := r.indexFor(kindHint)
	result, err := r.client.Search(index).
		Query(elastic.NewTermQuery("id", id)).
		Size(1).
		Do(ctx)
	if err != nil {
		r.log.Error("place lookup failed",
			zap.String("id", id), zap.String("index", index), zap.Error(err))
		return nil, apperrors.ErrUpstreamUnavailable
	}
	if result.TotalHits() == 0 {
		return nil, apperrors.ErrPlaceNotFound
	}
	return decodeRecord(result.Hits.Hits[0].Source)
}

func (r *PlaceRepository) GetRawPlacesInBbox(ctx context.Context, filters []repository.PoiFilter, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	left, bottom, right, top := bbox[0], bbox[1], bbox[2], bbox[3]
	query := elastic.NewBoolQuery().Filter(
		elastic.NewGeoBoundingBoxQuery("coord").
			TopLeft(top, left).
			BottomRight(bottom, right))

	if len(filters) > 0 {
		classes := elastic.NewBoolQuery()
		for _, f := range filters {
			pair := elastic.NewBoolQuery()
			if f.Class != "" {
				pair = pair.Must(elastic.NewTermQuery("properties.poi_class", f.Class))
			}
			if f.Subclass != "" {
				pair = pair.Must(elastic.NewTermQuery("properties.poi_subclass", f.Subclass))
			}
			classes = classes.Should(pair)
		}
		query = query.Must(classes.MinimumNumberShouldMatch(1))
	}

	result, err := r.client.Search(r.cfg.PoiIndex).
		Query(query).
		SortBy(elastic.NewFieldSort("weight").Desc()).
		Size(limit).
		Do(ctx)
	if err != nil {
		r.log.Error("bbox search failed", zap.Error(err))
		return nil, apperrors.ErrUpstreamUnavailable
	}
	return decodeHits(result)
}

// PlaceKind reports the record kind: the indexed "type" field when
// present, otherwise an inference from the record shape.
func (r *PlaceRepository) PlaceKind(record domain.RawRecord) string {
	if kind := record.String("type"); kind != "" {
		return kind
	}
	switch {
	case record.String("zone_type") != "":
		return domain.RawKindAdmin
	case record.String("house_number") != "" || record.String("housenumber") != "":
		return domain.RawKindAddress
	case record.Map("street") != nil:
		return domain.RawKindAddress
	case record["poi_type"] != nil || record["properties"] != nil:
		if hasProperty(record, "ta:url") {
			return domain.RawKindTaPOI
		}
		return domain.RawKindPOI
	default:
		return domain.RawKindStreet
	}
}

func hasProperty(record domain.RawRecord, key string) bool {
	if m := record.Map("properties"); m != nil {
		_, ok := m[key]
		return ok
	}
	if items, ok := record["properties"].([]interface{}); ok {
		for _, item := range items {
			if entry, ok := item.(map[string]interface{}); ok && entry["key"] == key {
				return true
			}
		}
	}
	return false
}

func (r *PlaceRepository) indexFor(kindHint string) string {
	switch kindHint {
	case domain.RawKindAdmin:
		return r.cfg.AdminIndex
	case domain.RawKindStreet:
		return r.cfg.StreetIndex
	case domain.RawKindAddress:
		return r.cfg.AddressIndex
	case domain.RawKindPOI, domain.RawKindTaPOI:
		return r.cfg.PoiIndex
	default:
		return r.cfg.DefaultIndex
	}
}

func decodeHits(result *elastic.SearchResult) ([]domain.RawRecord, error) {
	records := make([]domain.RawRecord, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		record, err := decodeRecord(hit.Source)
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(source json.RawMessage) (domain.RawRecord, error) {
	var record domain.RawRecord
	if err := json.Unmarshal(source, &record); err != nil {
		return nil, apperrors.ErrUpstreamUnavailable
	}
	return record, nil
}
