package blocks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

const thumbnailHeight = 165

type ImagesBlock struct {
	Type   string  `json:"type"`
	Images []Image `json:"images"`
}

type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Credits   string `json:"credits"`
	SourceURL string `json:"source_url"`
}

func (b *ImagesBlock) BlockType() string { return "images" }

// commonsFilePattern extracts the media file name from a Wikimedia
// Commons upload URL, with or without a thumb path segment.
var commonsFilePattern = regexp.MustCompile(
	`^https?://upload\.wikimedia\.org/wikipedia/commons/(?:.+/)?\w{1}/\w{2}/([^/]+)`)

// thumbnailDenylist rejects generic encyclopedia page images that are
// not photographs of the place itself.
var thumbnailDenylist = []string{"street_enseigne", "location_map", "Open_Street_Map"}

func buildImages(ctx context.Context, b *Builder, p places.Place, lang string) domain.Block {
	images := b.sourceImages(p)
	if len(images) == 0 {
		images = b.propertyImage(p)
	}
	if len(images) == 0 {
		images = b.encyclopediaThumbnail(ctx, p, lang)
	}
	if len(images) == 0 {
		return nil
	}
	return &ImagesBlock{Type: "images", Images: images}
}

// sourceImages uses the photo gallery carried by the raw record.
func (b *Builder) sourceImages(p places.Place) []Image {
	urls := p.ImagesURLs()
	if len(urls) == 0 {
		return nil
	}
	gallery := p.ImagesSourceURL()
	images := make([]Image, 0, len(urls))
	for _, raw := range urls {
		sourceURL := gallery
		if sourceURL == "" {
			sourceURL = raw
		}
		images = append(images, Image{
			URL:       b.thumbnail(raw),
			Alt:       p.LocalName(),
			Credits:   p.Source(),
			SourceURL: sourceURL,
		})
	}
	return images
}

// propertyImage uses the "image" tag. Wikimedia uploads link back to
// their Commons file page; encyclopedia article links are skipped
// since they are not direct media.
func (b *Builder) propertyImage(p places.Place) []Image {
	raw := p.Property("image")
	if raw == "" || strings.Contains(raw, "wikipedia.org") {
		return nil
	}
	sourceURL := raw
	if match := commonsFilePattern.FindStringSubmatch(raw); match != nil {
		sourceURL = fmt.Sprintf("https://commons.wikimedia.org/wiki/File:%s", match[1])
	}
	return []Image{{
		URL:       b.thumbnail(raw),
		Alt:       p.LocalName(),
		Credits:   p.Source(),
		SourceURL: sourceURL,
	}}
}

func (b *Builder) encyclopediaThumbnail(ctx context.Context, p places.Place, lang string) []Image {
	if b.wiki == nil || p.WikidataID() == "" || !b.wiki.SupportsLang(lang) {
		return nil
	}
	entry, err := b.wiki.GetEntry(ctx, p.WikidataID(), lang)
	if err != nil || entry == nil || entry.ThumbnailURL == "" {
		return nil
	}
	for _, denied := range thumbnailDenylist {
		if strings.Contains(entry.ThumbnailURL, denied) {
			return nil
		}
	}
	return []Image{{
		URL:       b.thumbnail(entry.ThumbnailURL),
		Alt:       p.LocalName(),
		Credits:   "wikimedia",
		SourceURL: entry.URL,
	}}
}

func (b *Builder) thumbnail(source string) string {
	if b.thumbnails == nil {
		return source
	}
	return b.thumbnails.ThumbnailURL(source, 0, thumbnailHeight)
}
