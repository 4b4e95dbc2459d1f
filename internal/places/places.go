// Package places wraps raw source records behind a uniform read-only
// accessor surface. One adapter exists per source and entity kind; each
// overrides only the accessors whose raw shape differs from the shared
// defaults.
package places

import (
	"sort"
	"strings"

	"github.com/places-api/internal/domain"
)

// Place is the capability set shared by every adapter variant.
type Place interface {
	PlaceType() domain.PlaceType
	ID() string
	LocalName() string
	Name(lang string) string
	ClassName() string
	SubclassName() string

	Coord() *domain.Coord
	Geometry() *domain.Geometry
	Bbox() []float64

	RawAddress() domain.RawRecord
	RawStreet() domain.RawRecord
	RawAdmins() []domain.RawRecord
	Postcodes() []string
	AdminLabel(lang string) *domain.AdminLabel
	BuildAddress(lang string) *domain.Address
	CountryCodes() []string
	CountryCode() string

	Properties() map[string]string
	Property(fallbackKeys ...string) string

	Phone() string
	Website() string
	WebsiteLabel() string
	Facebook() string
	Twitter() string
	Instagram() string
	Youtube() string

	RawOpeningHours() string
	RawHappyHours() string
	RawWheelchair() string

	Description(lang string) string
	DescriptionURL(lang string) string
	WikidataID() string

	ImagesURLs() []string
	ImagesSourceURL() string
	RawGrades() *RawGrades
	ReviewsURL() string
	Reviews() []RawReview
	RawStars() string

	BookingURL() string
	AppointmentURL() string
	QuotationRequestURL() string

	Source() string
	SourceURL() string
	ContributeURL() string
	RatingURL() string
}

type RawGrades struct {
	TotalCount  int
	GlobalGrade float64
}

type RawReview struct {
	Date           string
	Rating         string
	URL            string
	MoreReviewsURL string
	Lang           string
	Title          string
	Text           string
	TripType       string
	AuthorName     string
}

// zoneTypeRank orders administrative zone types from least (0) to most
// specific. Unknown zone types rank below suburb.
var zoneTypeRank = map[string]int{
	"suburb":         1,
	"city_district":  2,
	"city":           3,
	"state_district": 4,
	"state":          5,
	"country_region": 6,
	"country":        7,
}

// countryCodes derives ISO 3166-1 alpha-2 codes from the admin
// hierarchy, ordered from the least to the most specific region.
func countryCodes(p Place) []string {
	admins := append([]domain.RawRecord(nil), p.RawAdmins()...)
	sort.SliceStable(admins, func(i, j int) bool {
		return zoneTypeRank[admins[i].String("zone_type")] > zoneTypeRank[admins[j].String("zone_type")]
	})
	var codes []string
	for _, admin := range admins {
		for _, c := range admin.StringsAt("country_codes") {
			codes = append(codes, strings.ToUpper(c))
		}
	}
	return codes
}

func countryCode(p Place) string {
	if codes := p.CountryCodes(); len(codes) > 0 {
		return codes[0]
	}
	return ""
}

// standardAddress assembles the Address record from the raw address,
// street and admin hierarchy of an indexed-store record.
func standardAddress(p Place, lang string) *domain.Address {
	rawAddress := p.RawAddress()
	street := buildStreet(p.RawStreet())

	postcode := ""
	if postcodes := p.Postcodes(); len(postcodes) == 1 {
		// More than one distinct postcode is ambiguous and collapses
		// to empty.
		postcode = postcodes[0]
	}

	name := rawAddress.String("name")
	if name == "" {
		name = street.Name
	}
	label := rawAddress.String("label")
	if label == "" {
		label = street.Label
	}

	// The indexed store uses "house_number" while the geocoder API
	// returns "housenumber".
	housenumber := rawAddress.String("house_number")
	if housenumber == "" {
		housenumber = rawAddress.String("housenumber")
	}

	return &domain.Address{
		ID:          rawAddress.String("id"),
		Name:        name,
		HouseNumber: housenumber,
		Postcode:    postcode,
		Label:       label,
		Admin:       p.AdminLabel(lang),
		Street:      street,
		Admins:      buildAdmins(p.RawAdmins(), lang),
		CountryCode: p.CountryCode(),
	}
}

func buildStreet(rawStreet domain.RawRecord) *domain.Street {
	return &domain.Street{
		ID:        rawStreet.String("id"),
		Name:      rawStreet.String("name"),
		Label:     rawStreet.String("label"),
		Postcodes: rawStreet.StringsAt("zip_codes"),
	}
}

func buildAdmins(rawAdmins []domain.RawRecord, lang string) []domain.AdminRef {
	admins := make([]domain.AdminRef, 0, len(rawAdmins))
	for _, raw := range rawAdmins {
		label := localized(raw.Map("labels"), lang)
		if label == "" {
			label = raw.String("label")
		}
		name := localized(raw.Map("names"), lang)
		if name == "" {
			name = raw.String("name")
		}
		admins = append(admins, domain.AdminRef{
			ID:        raw.String("id"),
			Label:     label,
			Name:      name,
			ClassName: raw.String("zone_type"),
			Postcodes: raw.StringsAt("zip_codes"),
		})
	}
	return admins
}

func localized(m map[string]interface{}, lang string) string {
	if m == nil || lang == "" {
		return ""
	}
	if v, ok := m[lang].(string); ok {
		return v
	}
	return ""
}

// pointGeometry builds a GeoJSON point (with optional bbox) from a
// coordinate pair.
func pointGeometry(coord *domain.Coord, bbox []float64) *domain.Geometry {
	if coord == nil {
		return nil
	}
	pt := [2]float64{coord.Lon, coord.Lat}
	return &domain.Geometry{
		Type:        "Point",
		Coordinates: pt,
		Center:      pt,
		Bbox:        bbox,
	}
}

func rawRecords(items []interface{}) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, domain.RawRecord(m))
		}
	}
	return out
}
