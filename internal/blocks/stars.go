package blocks

import (
	"context"
	"strconv"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type StarsBlock struct {
	Type    string        `json:"type"`
	Ratings []StarsRating `json:"ratings"`
}

type StarsRating struct {
	HasStars string   `json:"has_stars"`
	NbStars  *float64 `json:"nb_stars"`
	Kind     string   `json:"kind"`
}

func (b *StarsBlock) BlockType() string { return "stars" }

var (
	lodgingClasses    = map[string]bool{"lodging": true, "hotel": true, "hostel": true, "guest_house": true, "motel": true}
	restaurantClasses = map[string]bool{"restaurant": true, "fast_food": true, "food": true}
)

// buildStars reports the official star rating for lodging and
// restaurant places. A suffix like "4S" marks a "superior" rating and
// keeps the numeric part; non-numeric values only assert that stars
// exist.
func buildStars(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	var kind string
	switch {
	case lodgingClasses[p.ClassName()]:
		kind = "lodging"
	case restaurantClasses[p.ClassName()]:
		kind = "restaurant"
	default:
		return nil
	}

	raw := strings.TrimSpace(p.RawStars())
	if raw == "" {
		return nil
	}

	rating := StarsRating{Kind: kind}
	if raw == "no" || raw == "0" {
		rating.HasStars = AccessNo
	} else {
		rating.HasStars = AccessYes
		numeric := strings.TrimSuffix(strings.ToUpper(raw), "S")
		numeric = strings.ReplaceAll(numeric, ",", ".")
		if value, err := strconv.ParseFloat(numeric, 64); err == nil {
			rating.NbStars = &value
		}
	}
	return &StarsBlock{Type: "stars", Ratings: []StarsRating{rating}}
}
