package places

import (
	"fmt"
	"strings"

	"github.com/places-api/internal/domain"
)

// OsmPOI wraps a point of interest record from the geocoding index.
// The record properties follow OSM tagging conventions.
type OsmPOI struct {
	base
}

func NewOsmPOI(record domain.RawRecord) *OsmPOI {
	p := &OsmPOI{base: newBase(record)}
	p.properties = flattenProperties(p.record["properties"])
	return p
}

func (p *OsmPOI) PlaceType() domain.PlaceType { return domain.PlaceTypePOI }

func (p *OsmPOI) LocalName() string { return p.properties["name"] }

func (p *OsmPOI) Name(lang string) string {
	if lang != "" {
		if name := p.properties["name:"+lang]; name != "" {
			return name
		}
	}
	return p.LocalName()
}

func (p *OsmPOI) ClassName() string { return p.properties["poi_class"] }

func (p *OsmPOI) SubclassName() string { return p.properties["poi_subclass"] }

func (p *OsmPOI) BuildAddress(lang string) *domain.Address { return standardAddress(p, lang) }

func (p *OsmPOI) CountryCodes() []string { return countryCodes(p) }

func (p *OsmPOI) CountryCode() string { return countryCode(p) }

func (p *OsmPOI) Source() string { return domain.SourceOSM }

func (p *OsmPOI) SourceURL() string {
	kind, ref := p.osmRef()
	if kind == "" {
		return ""
	}
	return fmt.Sprintf("https://www.openstreetmap.org/%s/%s", kind, ref)
}

func (p *OsmPOI) ContributeURL() string {
	kind, ref := p.osmRef()
	if kind == "" {
		return ""
	}
	return fmt.Sprintf("https://www.openstreetmap.org/edit?%s=%s", kind, ref)
}

// osmRef splits an "osm:<kind>:<ref>" place id into its OSM object
// kind (node, way or relation) and numeric reference.
func (p *OsmPOI) osmRef() (kind, ref string) {
	parts := strings.Split(p.ID(), ":")
	if len(parts) < 3 || parts[0] != "osm" {
		return "", ""
	}
	switch parts[1] {
	case "node", "way", "relation":
		return parts[1], parts[2]
	}
	return "", ""
}
