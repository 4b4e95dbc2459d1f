package places

import (
	"strings"

	"github.com/places-api/internal/domain"
)

// base carries the raw record and the flattened property map, and
// provides the default accessor behavior shared by all variants.
type base struct {
	record     domain.RawRecord
	properties map[string]string
}

func newBase(record domain.RawRecord) base {
	if record == nil {
		record = domain.RawRecord{}
	}
	return base{record: record, properties: map[string]string{}}
}

// flattenProperties normalizes the two raw shapes of the "properties"
// field (a plain object, or a list of {key, value} pairs) into a flat
// string map.
func flattenProperties(raw interface{}) map[string]string {
	flat := map[string]string{}
	switch v := raw.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if s, ok := value.(string); ok {
				flat[key] = s
			}
		}
	case []interface{}:
		for _, item := range v {
			pair, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			key, _ := pair["key"].(string)
			value, _ := pair["value"].(string)
			if key != "" {
				flat[key] = value
			}
		}
	}
	return flat
}

func (b *base) Raw() domain.RawRecord { return b.record }

func (b *base) ID() string { return b.record.String("id") }

func (b *base) LocalName() string { return b.record.String("name") }

func (b *base) Name(_ string) string { return b.LocalName() }

func (b *base) Coord() *domain.Coord {
	coord := b.record.Map("coord")
	if coord == nil {
		return nil
	}
	lon, lonOK := domain.RawRecord(coord).Float("lon")
	lat, latOK := domain.RawRecord(coord).Float("lat")
	if !lonOK || !latOK {
		return nil
	}
	return &domain.Coord{Lon: lon, Lat: lat}
}

func (b *base) Geometry() *domain.Geometry { return pointGeometry(b.Coord(), b.Bbox()) }

func (b *base) Bbox() []float64 { return nil }

func (b *base) RawAddress() domain.RawRecord {
	return domain.RawRecord(b.record.Map("address"))
}

func (b *base) RawStreet() domain.RawRecord {
	rawAddress := b.RawAddress()
	if rawAddress.String("type") == "street" {
		return rawAddress
	}
	return domain.RawRecord(rawAddress.Map("street"))
}

func (b *base) RawAdmins() []domain.RawRecord {
	return rawRecords(b.record.Slice("administrative_regions"))
}

func (b *base) Postcodes() []string {
	return b.RawAddress().StringsAt("zip_codes")
}

func (b *base) AdminLabel(_ string) *domain.AdminLabel { return nil }

func (b *base) Properties() map[string]string { return b.properties }

// Property returns the first non-empty value among the given keys.
func (b *base) Property(fallbackKeys ...string) string {
	for _, key := range fallbackKeys {
		if v := b.properties[key]; v != "" {
			return v
		}
	}
	return ""
}

func (b *base) Phone() string {
	return b.Property("phone", "contact:phone")
}

func (b *base) Website() string {
	return b.Property("contact:website", "website", "facebook")
}

func (b *base) WebsiteLabel() string { return "" }

func (b *base) Facebook() string {
	return socialURL(b.Property("facebook", "contact:facebook"), "https://www.facebook.com/")
}

func (b *base) Twitter() string {
	return socialURL(b.Property("twitter", "contact:twitter"), "https://twitter.com/")
}

func (b *base) Instagram() string {
	return socialURL(b.Property("instagram", "contact:instagram"), "https://www.instagram.com/")
}

func (b *base) Youtube() string {
	return socialURL(b.Property("youtube", "contact:youtube"), "https://www.youtube.com/")
}

// socialURL accepts either a full URL or a bare account handle.
func socialURL(value, baseURL string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return baseURL + strings.TrimPrefix(value, "@")
}

func (b *base) RawOpeningHours() string { return b.properties["opening_hours"] }

func (b *base) RawHappyHours() string { return b.properties["happy_hours"] }

func (b *base) RawWheelchair() string { return b.properties["wheelchair"] }

func (b *base) Description(lang string) string {
	if lang != "" {
		if v := b.properties["description:"+lang]; v != "" {
			return v
		}
	}
	return b.properties["description"]
}

func (b *base) DescriptionURL(_ string) string { return "" }

func (b *base) WikidataID() string { return b.properties["wikidata"] }

func (b *base) ImagesURLs() []string { return nil }

func (b *base) ImagesSourceURL() string { return "" }

func (b *base) RawGrades() *RawGrades { return nil }

func (b *base) ReviewsURL() string { return "" }

func (b *base) Reviews() []RawReview { return nil }

func (b *base) RawStars() string { return b.properties["stars"] }

func (b *base) BookingURL() string { return "" }

func (b *base) AppointmentURL() string { return "" }

func (b *base) QuotationRequestURL() string { return "" }

func (b *base) Source() string { return "" }

func (b *base) SourceURL() string { return "" }

func (b *base) ContributeURL() string { return "" }

func (b *base) RatingURL() string { return "" }
