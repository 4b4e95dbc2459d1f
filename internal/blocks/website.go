package blocks

import (
	"context"
	"net/url"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type WebSiteBlock struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

func (b *WebSiteBlock) BlockType() string { return "website" }

func buildWebsite(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	raw := p.Website()
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return nil
	}
	label := p.WebsiteLabel()
	if label == "" {
		label = strings.TrimPrefix(parsed.Host, "www.")
	}
	return &WebSiteBlock{Type: "website", URL: raw, Label: label}
}
