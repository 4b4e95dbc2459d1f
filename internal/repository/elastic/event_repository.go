package elastic

import (
	"context"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"

	"github.com/places-api/internal/config"
	"github.com/places-api/internal/domain"
	apperrors "github.com/places-api/internal/pkg/errors"
)

type EventRepository struct {
	client *elastic.Client
	cfg    config.ElasticConfig
	log    *zap.Logger
}

func NewEventRepository(client *elastic.Client, cfg config.ElasticConfig, log *zap.Logger) *EventRepository {
	return &EventRepository{client: client, cfg: cfg, log: log}
}

func (r *EventRepository) GetRawEvent(ctx context.Context, uid string) (domain.RawRecord, error) {
	result, err := r.client.Search(r.cfg.EventIndex).
		Query(elastic.NewTermQuery("id_events", uid)).
		Size(1).
		Do(ctx)
	if err != nil {
		r.log.Error("event lookup failed", zap.String("uid", uid), zap.Error(err))
		return nil, apperrors.ErrUpstreamUnavailable
	}
	if result.TotalHits() == 0 {
		return nil, apperrors.ErrPlaceNotFound
	}
	return decodeRecord(result.Hits.Hits[0].Source)
}

func (r *EventRepository) GetRawEventsInBbox(ctx context.Context, bbox [4]float64, limit int) ([]domain.RawRecord, error) {
	left, bottom, right, top := bbox[0], bbox[1], bbox[2], bbox[3]
	query := elastic.NewBoolQuery().Filter(
		elastic.NewGeoBoundingBoxQuery("geo_loc").
			TopLeft(top, left).
			BottomRight(bottom, right))

	result, err := r.client.Search(r.cfg.EventIndex).
		Query(query).
		Size(limit).
		Do(ctx)
	if err != nil {
		r.log.Error("event bbox search failed", zap.Error(err))
		return nil, apperrors.ErrUpstreamUnavailable
	}
	return decodeHits(result)
}
