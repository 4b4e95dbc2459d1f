package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/places-api/internal/domain"
)

func osmRecord() domain.RawRecord {
	return domain.RawRecord{
		"id":   "osm:way:63178753",
		"name": "Musée d'Orsay",
		"coord": map[string]interface{}{
			"lon": 2.3265827716099623,
			"lat": 48.859917803575875,
		},
		"properties": []interface{}{
			map[string]interface{}{"key": "name", "value": "Musée d'Orsay"},
			map[string]interface{}{"key": "name:en", "value": "Orsay Museum"},
			map[string]interface{}{"key": "poi_class", "value": "museum"},
			map[string]interface{}{"key": "poi_subclass", "value": "museum"},
			map[string]interface{}{"key": "phone", "value": "+33140494814"},
			map[string]interface{}{"key": "website", "value": "http://www.musee-orsay.fr"},
			map[string]interface{}{"key": "wikidata", "value": "Q23402"},
		},
		"address": map[string]interface{}{
			"id":    "addr:2.326589;48.859953",
			"name":  "1 Rue de la Légion d'Honneur",
			"label": "1 Rue de la Légion d'Honneur (Paris)",
			"street": map[string]interface{}{
				"id":        "street:553660044C",
				"name":      "Rue de la Légion d'Honneur",
				"label":     "Rue de la Légion d'Honneur (Paris)",
				"zip_codes": []interface{}{"75007"},
			},
			"zip_codes":    []interface{}{"75007"},
			"house_number": "1",
		},
		"administrative_regions": []interface{}{
			map[string]interface{}{
				"id":            "admin:osm:relation:7444",
				"name":          "Paris",
				"label":         "Paris (75000-75116), Île-de-France, France",
				"zone_type":     "city",
				"zip_codes":     []interface{}{"75000", "75116"},
				"country_codes": []interface{}{"FR"},
				"names":         map[string]interface{}{"en": "Paris"},
			},
			map[string]interface{}{
				"id":            "admin:osm:relation:2202162",
				"name":          "France",
				"label":         "France",
				"zone_type":     "country",
				"zip_codes":     []interface{}{},
				"country_codes": []interface{}{"fr"},
			},
		},
	}
}

func TestOsmPOIAccessors(t *testing.T) {
	poi := NewOsmPOI(osmRecord())

	assert.Equal(t, domain.PlaceTypePOI, poi.PlaceType())
	assert.Equal(t, "osm:way:63178753", poi.ID())
	assert.Equal(t, "Musée d'Orsay", poi.LocalName())
	assert.Equal(t, "Orsay Museum", poi.Name("en"))
	assert.Equal(t, "Musée d'Orsay", poi.Name("fr"))
	assert.Equal(t, "museum", poi.ClassName())
	assert.Equal(t, "museum", poi.SubclassName())
	assert.Equal(t, "+33140494814", poi.Phone())
	assert.Equal(t, "http://www.musee-orsay.fr", poi.Website())
	assert.Equal(t, "Q23402", poi.WikidataID())

	require.NotNil(t, poi.Coord())
	assert.InDelta(t, 48.8599178, poi.Coord().Lat, 1e-6)

	assert.Equal(t, "https://www.openstreetmap.org/way/63178753", poi.SourceURL())
	assert.Equal(t, "https://www.openstreetmap.org/edit?way=63178753", poi.ContributeURL())
}

func TestOsmPOICountryCodes(t *testing.T) {
	poi := NewOsmPOI(osmRecord())

	// Ordered from the least to the most specific admin.
	assert.Equal(t, []string{"FR", "FR"}, poi.CountryCodes())
	assert.Equal(t, "FR", poi.CountryCode())
}

func TestOsmPOIBuildAddress(t *testing.T) {
	poi := NewOsmPOI(osmRecord())
	addr := poi.BuildAddress("en")

	require.NotNil(t, addr)
	assert.Equal(t, "1 Rue de la Légion d'Honneur", addr.Name)
	assert.Equal(t, "1", addr.HouseNumber)
	assert.Equal(t, "75007", addr.Postcode)
	assert.Equal(t, "FR", addr.CountryCode)

	require.NotNil(t, addr.Street)
	assert.Equal(t, "Rue de la Légion d'Honneur", addr.Street.Name)

	require.Len(t, addr.Admins, 2)
	assert.Equal(t, "Paris", addr.Admins[0].Name)
	assert.Equal(t, "city", addr.Admins[0].ClassName)
}

func TestBuildAddressAmbiguousPostcode(t *testing.T) {
	record := osmRecord()
	address := record["address"].(map[string]interface{})
	address["zip_codes"] = []interface{}{"75007", "75008"}

	addr := NewOsmPOI(record).BuildAddress("fr")

	require.NotNil(t, addr)
	assert.Empty(t, addr.Postcode)
}

func TestAdminAccessors(t *testing.T) {
	admin := NewAdmin(domain.RawRecord{
		"id":        "admin:osm:relation:7444",
		"name":      "Paris",
		"label":     "Paris (75000-75116), Île-de-France, France",
		"zone_type": "city",
		"names":     map[string]interface{}{"it": "Parigi"},
		"labels":    map[string]interface{}{"it": "Parigi, Ile-de-France, Francia"},
		"zip_codes": []interface{}{"75000", "75116"},
		"bbox":      []interface{}{2.224122, 48.815565, 2.469760, 48.902156},
		"coord":     map[string]interface{}{"lon": 2.35, "lat": 48.85},
		"codes": []interface{}{
			map[string]interface{}{"name": "ref:INSEE", "value": "75056"},
			map[string]interface{}{"name": "wikidata", "value": "Q90"},
		},
	})

	assert.Equal(t, domain.PlaceTypeAdmin, admin.PlaceType())
	assert.Equal(t, "Parigi", admin.Name("it"))
	assert.Equal(t, "Paris", admin.Name("fr"))
	assert.Equal(t, "city", admin.ClassName())
	assert.Equal(t, "Q90", admin.WikidataID())
	assert.Equal(t, []string{"75000", "75116"}, admin.Postcodes())

	require.NotNil(t, admin.AdminLabel("it"))
	assert.Equal(t, "Parigi, Ile-de-France, Francia", admin.AdminLabel("it").Label)
	assert.Equal(t, "Paris (75000-75116), Île-de-France, France", admin.AdminLabel("fr").Label)

	geom := admin.Geometry()
	require.NotNil(t, geom)
	assert.Len(t, geom.Bbox, 4)
}

func TestStreetOwnRecordIsRawStreet(t *testing.T) {
	street := NewStreet(domain.RawRecord{
		"id":        "street:553660044C",
		"name":      "Rue de la Légion d'Honneur",
		"label":     "Rue de la Légion d'Honneur (Paris)",
		"zip_codes": []interface{}{"75007"},
		"coord":     map[string]interface{}{"lon": 2.326, "lat": 48.859},
	})

	addr := street.BuildAddress("fr")
	require.NotNil(t, addr)
	assert.Equal(t, "Rue de la Légion d'Honneur", addr.Name)
	assert.Equal(t, "75007", addr.Postcode)
	require.NotNil(t, addr.Street)
	assert.Equal(t, "street:553660044C", addr.Street.ID)
}

func TestAddressOwnRecordIsRawAddress(t *testing.T) {
	address := NewAddress(domain.RawRecord{
		"id":           "addr:5.108632;48.810273",
		"name":         "4 Rue du Port",
		"label":        "4 Rue du Port (Ancerville)",
		"house_number": "4",
		"coord":        map[string]interface{}{"lon": 5.108632, "lat": 48.810273},
		"street": map[string]interface{}{
			"id":        "street:551140066X",
			"name":      "Rue du Port",
			"label":     "Rue du Port (Ancerville)",
			"zip_codes": []interface{}{"55170"},
			"administrative_regions": []interface{}{
				map[string]interface{}{
					"id":            "admin:osm:relation:1234",
					"name":          "Ancerville",
					"zone_type":     "city",
					"country_codes": []interface{}{"FR"},
				},
			},
		},
	})

	addr := address.BuildAddress("fr")
	require.NotNil(t, addr)
	assert.Equal(t, "4 Rue du Port", addr.Name)
	assert.Equal(t, "4", addr.HouseNumber)
	assert.Equal(t, "FR", addr.CountryCode)
	require.Len(t, addr.Admins, 1)
	assert.Equal(t, "Ancerville", addr.Admins[0].Name)
}

func TestLatlonID(t *testing.T) {
	place := NewLatlon(48.810273123, 5.108632456, nil)

	assert.Equal(t, "latlon:48.81027:5.10863", place.ID())
	assert.Equal(t, "48.81027 : 5.10863", place.LocalName())
	assert.Nil(t, place.BuildAddress("fr"))
	require.NotNil(t, place.Coord())
	assert.InDelta(t, 48.81027, place.Coord().Lat, 1e-9)
}

func TestEventAccessors(t *testing.T) {
	event := NewEvent(domain.RawRecord{
		"id_events":   "openagenda_56777480",
		"title":       "Quand les livres expliquent la science",
		"geo_loc":     map[string]interface{}{"lon": 2.3265, "lat": 48.8599},
		"link":        "https://openagenda.com/events/56777480",
		"image":       "https://cdn.openagenda.com/main.jpg",
		"image_thumb": "https://cdn.openagenda.com/thumb.jpg",
		"placename":   "Bibliothèque Buffon",
		"address":     "15 bis rue Buffon, 75005 Paris",
		"date_start":  "2026-09-01T18:00:00",
		"date_end":    "2026-09-01T20:00:00",
		"tags":        "science;livres",
	})

	assert.Equal(t, "event:openagenda_56777480", event.ID())
	assert.Equal(t, "openagenda", event.Source())
	assert.Equal(t, "Quand les livres expliquent la science", event.LocalName())
	assert.Equal(t, "https://openagenda.com/events/56777480", event.Website())
	assert.Equal(t, []string{"https://cdn.openagenda.com/thumb.jpg", "https://cdn.openagenda.com/main.jpg"}, event.ImagesURLs())
	assert.Equal(t, []string{"science", "livres"}, event.Tags())

	addr := event.BuildAddress("fr")
	require.NotNil(t, addr)
	assert.Equal(t, "Bibliothèque Buffon", addr.Name)
	assert.Equal(t, "15 bis rue Buffon, 75005 Paris", addr.Label)
}
