package domain

// KBRecord is a pre-indexed knowledge-base entry for an entity, keyed by
// its stable cross-source id (wikidata id).
type KBRecord struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	URL           string `json:"url"`
	ThumbnailURL  string `json:"pageimage_thumb"`
	OriginalTitle string `json:"originalTitle"`
}

// WikiSummary is the live encyclopedia summary for a page title.
type WikiSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url"`
}

// CovidRecord is one row of the pandemic-status override dataset,
// indexed by OSM id.
type CovidRecord struct {
	OsmID        string `json:"osm_id"`
	Status       string `json:"status"`
	OpeningHours string `json:"opening_hours"`
	Note         string `json:"infos"`
}
