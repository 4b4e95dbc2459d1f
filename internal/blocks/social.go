package blocks

import (
	"context"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type SocialBlock struct {
	Type  string       `json:"type"`
	Links []SocialLink `json:"links"`
}

type SocialLink struct {
	Site string `json:"site"`
	URL  string `json:"url"`
}

func (b *SocialBlock) BlockType() string { return "social" }

func buildSocial(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	var links []SocialLink
	for _, entry := range []struct {
		site string
		url  string
	}{
		{"facebook", p.Facebook()},
		{"twitter", p.Twitter()},
		{"instagram", p.Instagram()},
		{"youtube", p.Youtube()},
	} {
		if entry.url != "" {
			links = append(links, SocialLink{Site: entry.site, URL: entry.url})
		}
	}
	if len(links) == 0 {
		return nil
	}
	return &SocialBlock{Type: "social", Links: links}
}
