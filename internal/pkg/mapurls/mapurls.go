// Package mapurls builds links to the maps front-end for the place meta
// section.
package mapurls

import (
	"net/url"
	"strings"
)

type Builder struct {
	baseURL string
}

func New(baseURL string) *Builder {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Builder{baseURL: baseURL}
}

func (b *Builder) PlaceURL(placeID string) string {
	return b.baseURL + "place/" + placeID
}

func (b *Builder) DirectionsURL(placeID string) string {
	q := url.Values{"destination": {placeID}}
	return b.baseURL + "routes/?" + q.Encode()
}
