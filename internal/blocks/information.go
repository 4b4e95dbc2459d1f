package blocks

import (
	"context"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

// Access statuses shared by the accessibility and cuisine sub-blocks.
const (
	AccessYes     = "yes"
	AccessNo      = "no"
	AccessPartial = "partial"
	AccessUnknown = "unknown"
)

type InformationBlock struct {
	Type string         `json:"type"`
	Info []domain.Block `json:"blocks"`
}

func (b *InformationBlock) BlockType() string { return "information" }

type ServicesAndInformationBlock struct {
	Type string         `json:"type"`
	Info []domain.Block `json:"blocks"`
}

func (b *ServicesAndInformationBlock) BlockType() string { return "services_and_information" }

type AccessibilityBlock struct {
	Type              string `json:"type"`
	Wheelchair        string `json:"wheelchair"`
	ToiletsWheelchair string `json:"toilets_wheelchair"`
}

func (b *AccessibilityBlock) BlockType() string { return "accessibility" }

type InternetAccessBlock struct {
	Type string `json:"type"`
	Wifi bool   `json:"wifi"`
}

func (b *InternetAccessBlock) BlockType() string { return "internet_access" }

type BreweryBlock struct {
	Type  string `json:"type"`
	Beers []Beer `json:"beers"`
}

type Beer struct {
	Name string `json:"name"`
}

func (b *BreweryBlock) BlockType() string { return "brewery" }

type CuisineBlock struct {
	Type       string    `json:"type"`
	Cuisines   []Cuisine `json:"cuisines"`
	Vegetarian string    `json:"vegetarian"`
	Vegan      string    `json:"vegan"`
	GlutenFree string    `json:"gluten_free"`
}

type Cuisine struct {
	Name string `json:"name"`
}

func (b *CuisineBlock) BlockType() string { return "cuisine" }

func buildInformation(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	var inner []domain.Block
	for _, block := range []domain.Block{
		accessibilityFromPlace(p),
		internetAccessFromPlace(p),
		breweryFromPlace(p),
		cuisineFromPlace(p),
	} {
		if block != nil {
			inner = append(inner, block)
		}
	}
	if len(inner) == 0 {
		return nil
	}
	services := &ServicesAndInformationBlock{Type: "services_and_information", Info: inner}
	return &InformationBlock{Type: "information", Info: []domain.Block{services}}
}

func accessibilityFromPlace(p places.Place) domain.Block {
	wheelchair := accessStatus(p.RawWheelchair())
	toilets := accessStatus(p.Property("toilets:wheelchair"))
	if wheelchair == AccessUnknown && toilets == AccessUnknown {
		return nil
	}
	return &AccessibilityBlock{
		Type:              "accessibility",
		Wheelchair:        wheelchair,
		ToiletsWheelchair: toilets,
	}
}

func accessStatus(value string) string {
	switch value {
	case "yes", "designated":
		return AccessYes
	case "limited":
		return AccessPartial
	case "no":
		return AccessNo
	}
	return AccessUnknown
}

func internetAccessFromPlace(p places.Place) domain.Block {
	wifi := p.Property("wifi")
	access := p.Property("internet_access")
	hasWifi := wifi == "yes" || wifi == "free" ||
		access == "wlan" || access == "wifi" || access == "yes"
	if !hasWifi {
		return nil
	}
	return &InternetAccessBlock{Type: "internet_access", Wifi: true}
}

func breweryFromPlace(p places.Place) domain.Block {
	raw := p.Property("brewery")
	if raw == "" {
		return nil
	}
	var beers []Beer
	for _, name := range strings.Split(raw, ";") {
		if name = strings.TrimSpace(name); name != "" {
			beers = append(beers, Beer{Name: name})
		}
	}
	if len(beers) == 0 {
		return nil
	}
	return &BreweryBlock{Type: "brewery", Beers: beers}
}

func cuisineFromPlace(p places.Place) domain.Block {
	var cuisines []Cuisine
	for _, name := range strings.Split(p.Property("cuisine"), ";") {
		if name = strings.TrimSpace(name); name != "" {
			cuisines = append(cuisines, Cuisine{Name: name})
		}
	}
	vegetarian := yesNoStatus(p.Property("diet:vegetarian"))
	vegan := yesNoStatus(p.Property("diet:vegan"))
	glutenFree := yesNoStatus(p.Property("diet:gluten_free"))

	if len(cuisines) == 0 &&
		vegetarian == AccessUnknown && vegan == AccessUnknown && glutenFree == AccessUnknown {
		return nil
	}
	return &CuisineBlock{
		Type:       "cuisine",
		Cuisines:   cuisines,
		Vegetarian: vegetarian,
		Vegan:      vegan,
		GlutenFree: glutenFree,
	}
}
