package places

import "github.com/places-api/internal/domain"

// Admin wraps an administrative region record. The record itself is
// the zone, so the postal and label accessors read from the top level.
type Admin struct {
	base
}

func NewAdmin(record domain.RawRecord) *Admin {
	return &Admin{base: newBase(record)}
}

func (p *Admin) PlaceType() domain.PlaceType { return domain.PlaceTypeAdmin }

func (p *Admin) Name(lang string) string {
	if name := localized(p.record.Map("names"), lang); name != "" {
		return name
	}
	return p.LocalName()
}

func (p *Admin) ClassName() string { return p.record.String("zone_type") }

func (p *Admin) SubclassName() string { return p.record.String("zone_type") }

func (p *Admin) Postcodes() []string { return p.record.StringsAt("zip_codes") }

func (p *Admin) AdminLabel(lang string) *domain.AdminLabel {
	label := localized(p.record.Map("labels"), lang)
	if label == "" {
		label = p.record.String("label")
	}
	return &domain.AdminLabel{Label: label}
}

func (p *Admin) Bbox() []float64 {
	bbox := p.record.Slice("bbox")
	if len(bbox) != 4 {
		return nil
	}
	out := make([]float64, 4)
	for i, v := range bbox {
		f, ok := v.(float64)
		if !ok {
			return nil
		}
		out[i] = f
	}
	return out
}

func (p *Admin) Geometry() *domain.Geometry { return pointGeometry(p.Coord(), p.Bbox()) }

// WikidataID for admins comes from the "codes" list rather than from
// OSM-style properties.
func (p *Admin) WikidataID() string {
	for _, item := range p.record.Slice("codes") {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if name, _ := entry["name"].(string); name == "wikidata" {
			value, _ := entry["value"].(string)
			return value
		}
	}
	return ""
}

func (p *Admin) BuildAddress(lang string) *domain.Address { return standardAddress(p, lang) }

func (p *Admin) CountryCodes() []string { return countryCodes(p) }

func (p *Admin) CountryCode() string { return countryCode(p) }
