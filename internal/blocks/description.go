package blocks

import (
	"context"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type DescriptionBlock struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url,omitempty"`
}

func (b *DescriptionBlock) BlockType() string { return "description" }

func buildDescription(ctx context.Context, b *Builder, p places.Place, lang string) domain.Block {
	if block := b.encyclopediaDescription(ctx, p, lang); block != nil {
		return block
	}
	if block := b.encyclopediaSummary(ctx, p, lang); block != nil {
		return block
	}

	desc := p.Description(lang)
	if desc == "" {
		return nil
	}
	// A bare description with no language tag is only trusted when the
	// requested language is spoken where the place is.
	if p.Source() == domain.SourceOSM && p.Properties()["description:"+lang] == "" {
		if !langSpokenIn(lang, p.CountryCode()) {
			return nil
		}
	}
	return &DescriptionBlock{
		Type:        "description",
		Description: truncate(desc, b.cfg.DescriptionMaxSize),
		Source:      p.Source(),
		URL:         p.DescriptionURL(lang),
	}
}

func (b *Builder) encyclopediaDescription(ctx context.Context, p places.Place, lang string) domain.Block {
	if b.wiki == nil || p.WikidataID() == "" || !b.wiki.SupportsLang(lang) {
		return nil
	}
	entry, err := b.wiki.GetEntry(ctx, p.WikidataID(), lang)
	if err != nil || entry == nil || entry.Content == "" {
		return nil
	}
	return &DescriptionBlock{
		Type:        "description",
		Description: truncate(entry.Content, b.cfg.DescriptionMaxSize),
		Source:      "wikipedia",
		URL:         entry.URL,
	}
}

// encyclopediaSummary covers places with an encyclopedia page tag but
// no pre-indexed entry. The tag value is "lang:Title"; when the tagged
// language differs from the requested one the title is translated
// first.
func (b *Builder) encyclopediaSummary(ctx context.Context, p places.Place, lang string) domain.Block {
	if b.wiki == nil {
		return nil
	}
	tagLang, title, found := strings.Cut(p.Property("wikipedia"), ":")
	if !found || title == "" {
		return nil
	}
	if tagLang != lang {
		translated, err := b.wiki.GetTitleInLanguage(ctx, title, tagLang, lang)
		if err != nil || translated == "" {
			return nil
		}
		title = translated
	}
	summary, err := b.wiki.GetSummary(ctx, title, lang)
	if err != nil || summary == nil || summary.Extract == "" {
		return nil
	}
	return &DescriptionBlock{
		Type:        "description",
		Description: truncate(summary.Extract, b.cfg.DescriptionMaxSize),
		Source:      "wikipedia",
		URL:         summary.URL,
	}
}

func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}

// countryLanguages lists the main official languages per country for
// the markets the service covers.
var countryLanguages = map[string][]string{
	"FR": {"fr"},
	"BE": {"fr", "nl", "de"},
	"CH": {"de", "fr", "it"},
	"DE": {"de"},
	"AT": {"de"},
	"IT": {"it"},
	"ES": {"es"},
	"PT": {"pt"},
	"NL": {"nl"},
	"GB": {"en"},
	"IE": {"en"},
	"US": {"en"},
	"CA": {"en", "fr"},
	"LU": {"fr", "de"},
	"MC": {"fr"},
}

func langSpokenIn(lang, countryCode string) bool {
	for _, l := range countryLanguages[countryCode] {
		if l == lang {
			return true
		}
	}
	return false
}
