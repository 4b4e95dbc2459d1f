package places

import (
	"strings"

	"github.com/places-api/internal/domain"
)

// Event wraps a cultural event record from the events index.
type Event struct {
	base
}

func NewEvent(record domain.RawRecord) *Event {
	return &Event{base: newBase(record)}
}

func (p *Event) PlaceType() domain.PlaceType { return domain.PlaceTypeEvent }

func (p *Event) ID() string {
	if eventID := p.record.String("id_events"); eventID != "" {
		return "event:" + eventID
	}
	return ""
}

func (p *Event) LocalName() string { return p.record.String("title") }

func (p *Event) ClassName() string { return string(domain.PlaceTypeEvent) }

func (p *Event) SubclassName() string { return string(domain.PlaceTypeEvent) }

func (p *Event) Coord() *domain.Coord {
	loc := p.record.Map("geo_loc")
	if loc == nil {
		return nil
	}
	lon, lonOK := domain.RawRecord(loc).Float("lon")
	lat, latOK := domain.RawRecord(loc).Float("lat")
	if !lonOK || !latOK {
		return nil
	}
	return &domain.Coord{Lon: lon, Lat: lat}
}

func (p *Event) Geometry() *domain.Geometry { return pointGeometry(p.Coord(), nil) }

func (p *Event) Website() string { return p.record.String("link") }

func (p *Event) ImagesURLs() []string {
	var urls []string
	for _, key := range []string{"image_thumb", "image"} {
		if u := p.record.String(key); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// BuildAddress keeps only the venue name and the free-form address
// line; events carry no structured street record.
func (p *Event) BuildAddress(lang string) *domain.Address {
	return &domain.Address{
		Name:   p.record.String("placename"),
		Label:  p.record.String("address"),
		Admins: buildAdmins(p.RawAdmins(), lang),
	}
}

func (p *Event) CountryCodes() []string { return countryCodes(p) }

func (p *Event) CountryCode() string { return countryCode(p) }

// Source is the feed prefix of the event id, e.g. "openagenda".
func (p *Event) Source() string {
	id := p.record.String("id_events")
	if id == "" {
		return ""
	}
	return strings.SplitN(id, "_", 2)[0]
}

// Event date range and description, read by the event blocks.

func (p *Event) DateStart() string { return p.record.String("date_start") }

func (p *Event) DateEnd() string { return p.record.String("date_end") }

func (p *Event) EventDescription() string { return p.record.String("description") }

func (p *Event) FreeText() string { return p.record.String("free_text") }

func (p *Event) PricingInfo() string { return p.record.String("pricing_info") }

func (p *Event) SpaceTimeInfo() string { return p.record.String("space_time_info") }

// Timetable is a ";"-separated list of "start end" datetime pairs.
func (p *Event) Timetable() string { return p.record.String("timetable") }

func (p *Event) Tags() []string {
	if raw := p.record.String("tags"); raw != "" {
		return strings.Split(raw, ";")
	}
	return p.record.StringsAt("tags")
}
