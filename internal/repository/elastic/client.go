package elastic

import (
	"github.com/olivere/elastic/v7"

	"github.com/places-api/internal/config"
)

func NewClient(cfg config.ElasticConfig) (*elastic.Client, error) {
	return elastic.NewClient(
		elastic.SetURL(cfg.URL),
		elastic.SetSniff(cfg.Sniff),
		elastic.SetHealthcheck(false),
	)
}
