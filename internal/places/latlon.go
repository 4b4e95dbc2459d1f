package places

import (
	"fmt"
	"math"

	"github.com/places-api/internal/domain"
)

// Latlon is a synthetic place for an arbitrary coordinate, optionally
// carrying the closest known address.
type Latlon struct {
	base
	lat, lon       float64
	closestAddress *Address
}

func NewLatlon(lat, lon float64, closestAddress *Address) *Latlon {
	p := &Latlon{
		lat:            round5(lat),
		lon:            round5(lon),
		closestAddress: closestAddress,
	}
	if closestAddress != nil {
		p.base = closestAddress.base
	} else {
		p.base = newBase(nil)
	}
	return p
}

func round5(v float64) float64 { return math.Round(v*1e5) / 1e5 }

// LatlonID formats the canonical id for a coordinate pair.
func LatlonID(lat, lon float64) string {
	return fmt.Sprintf("latlon:%.5f:%.5f", round5(lat), round5(lon))
}

func (p *Latlon) PlaceType() domain.PlaceType { return domain.PlaceTypeLatlon }

func (p *Latlon) ID() string { return LatlonID(p.lat, p.lon) }

func (p *Latlon) LocalName() string { return fmt.Sprintf("%.5f : %.5f", p.lat, p.lon) }

func (p *Latlon) Name(_ string) string { return p.LocalName() }

func (p *Latlon) ClassName() string { return string(domain.PlaceTypeLatlon) }

func (p *Latlon) SubclassName() string { return string(domain.PlaceTypeLatlon) }

func (p *Latlon) Coord() *domain.Coord { return &domain.Coord{Lat: p.lat, Lon: p.lon} }

func (p *Latlon) Geometry() *domain.Geometry { return pointGeometry(p.Coord(), nil) }

func (p *Latlon) BuildAddress(lang string) *domain.Address {
	if p.closestAddress == nil {
		return nil
	}
	return p.closestAddress.BuildAddress(lang)
}

func (p *Latlon) CountryCodes() []string {
	if p.closestAddress == nil {
		return nil
	}
	return p.closestAddress.CountryCodes()
}

func (p *Latlon) CountryCode() string {
	if codes := p.CountryCodes(); len(codes) > 0 {
		return codes[0]
	}
	return ""
}
