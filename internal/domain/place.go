package domain

// PlaceType discriminates the normalized place representation.
type PlaceType string

const (
	PlaceTypeAdmin   PlaceType = "admin"
	PlaceTypeStreet  PlaceType = "street"
	PlaceTypeAddress PlaceType = "address"
	PlaceTypePOI     PlaceType = "poi"
	PlaceTypeEvent   PlaceType = "event"
	PlaceTypeLatlon  PlaceType = "latlon"
)

// Block is one optional enrichment section of a Place. Concrete block
// types live in internal/blocks; each carries its own "type" field.
type Block interface {
	BlockType() string
}

// Place is the versioned output contract returned to API clients.
// Field names and block discriminants are a compatibility contract.
type Place struct {
	Type         PlaceType `json:"type"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LocalName    string    `json:"local_name"`
	ClassName    string    `json:"class_name"`
	SubclassName string    `json:"subclass_name"`
	Geometry     *Geometry `json:"geometry"`
	Address      *Address  `json:"address"`
	Blocks       []Block   `json:"blocks"`
	Meta         PlaceMeta `json:"meta"`
}

// Geometry is a GeoJSON point with an optional bbox.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
	Center      [2]float64 `json:"center"`
	Bbox        []float64  `json:"bbox,omitempty"`
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Address is the normalized postal address attached to a place.
type Address struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	HouseNumber string      `json:"housenumber"`
	Postcode    string      `json:"postcode"`
	Label       string      `json:"label"`
	Admin       *AdminLabel `json:"admin"`
	Street      *Street     `json:"street"`
	Admins      []AdminRef  `json:"admins"`
	CountryCode string      `json:"country_code"`
}

type AdminLabel struct {
	Label string `json:"label"`
}

type Street struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Postcodes []string `json:"postcodes"`
}

// AdminRef is a projection of one administrative region, ordered from
// most to least specific as returned by the source.
type AdminRef struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Name      string   `json:"name"`
	ClassName string   `json:"class_name"`
	Postcodes []string `json:"postcodes"`
}

// Data source names reported in the place meta.
const (
	SourceOSM         = "osm"
	SourcePagesJaunes = "pagesjaunes"
	SourceTripadvisor = "tripadvisor"
)

type PlaceMeta struct {
	Source            string `json:"source"`
	SourceURL         string `json:"source_url,omitempty"`
	ContributeURL     string `json:"contribute_url,omitempty"`
	MapsPlaceURL      string `json:"maps_place_url"`
	MapsDirectionsURL string `json:"maps_directions_url"`
	RatingURL         string `json:"rating_url,omitempty"`
}

// Verbosity selects the block-type list attempted for a request.
type Verbosity string

const (
	VerbosityLong  Verbosity = "long"
	VerbosityShort Verbosity = "short"
	VerbosityList  Verbosity = "list"
)

func (v Verbosity) Valid() bool {
	switch v {
	case VerbosityLong, VerbosityShort, VerbosityList:
		return true
	}
	return false
}

func DefaultVerbosity() Verbosity { return VerbosityLong }

func DefaultListVerbosity() Verbosity { return VerbosityList }
