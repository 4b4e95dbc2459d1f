package blocks

import (
	"context"

	"github.com/nyaruka/phonenumbers"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type PhoneBlock struct {
	Type          string `json:"type"`
	URL           string `json:"url"`
	International string `json:"international_format"`
	Local         string `json:"local_format"`
}

func (b *PhoneBlock) BlockType() string { return "phone" }

func buildPhone(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	raw := p.Phone()
	if raw == "" {
		return nil
	}
	num, err := phonenumbers.Parse(raw, p.CountryCode())
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil
	}
	return &PhoneBlock{
		Type:          "phone",
		URL:           "tel:" + phonenumbers.Format(num, phonenumbers.E164),
		International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		Local:         phonenumbers.Format(num, phonenumbers.NATIONAL),
	}
}
