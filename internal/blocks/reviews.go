package blocks

import (
	"context"
	"sort"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

const maxReviews = 10

type ReviewsBlock struct {
	Type    string   `json:"type"`
	Reviews []Review `json:"reviews"`
}

type Review struct {
	Date           string `json:"date"`
	Rating         string `json:"rating"`
	URL            string `json:"url"`
	MoreReviewsURL string `json:"more_reviews_url"`
	Lang           string `json:"lang"`
	Title          string `json:"title"`
	Text           string `json:"text"`
	TripType       string `json:"trip_type"`
	AuthorName     string `json:"author_name"`
}

func (b *ReviewsBlock) BlockType() string { return "reviews" }

// buildReviews keeps the freshest reviews, preferring the ones written
// in the requested language.
func buildReviews(_ context.Context, _ *Builder, p places.Place, lang string) domain.Block {
	raw := p.Reviews()
	if len(raw) == 0 {
		return nil
	}
	sorted := append([]places.RawReview(nil), raw...)
	sort.SliceStable(sorted, func(i, j int) bool {
		langI, langJ := sorted[i].Lang == lang, sorted[j].Lang == lang
		if langI != langJ {
			return langI
		}
		// ISO dates order lexicographically.
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > maxReviews {
		sorted = sorted[:maxReviews]
	}

	reviews := make([]Review, 0, len(sorted))
	for _, r := range sorted {
		reviews = append(reviews, Review{
			Date:           r.Date,
			Rating:         r.Rating,
			URL:            r.URL,
			MoreReviewsURL: r.MoreReviewsURL,
			Lang:           r.Lang,
			Title:          r.Title,
			Text:           r.Text,
			TripType:       r.TripType,
			AuthorName:     r.AuthorName,
		})
	}
	return &ReviewsBlock{Type: "reviews", Reviews: reviews}
}
