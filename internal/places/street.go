package places

import "github.com/places-api/internal/domain"

// Street wraps a street record. The record doubles as its own raw
// street for address building.
type Street struct {
	base
}

func NewStreet(record domain.RawRecord) *Street {
	return &Street{base: newBase(record)}
}

func (p *Street) PlaceType() domain.PlaceType { return domain.PlaceTypeStreet }

func (p *Street) ClassName() string { return string(domain.PlaceTypeStreet) }

func (p *Street) SubclassName() string { return string(domain.PlaceTypeStreet) }

func (p *Street) RawStreet() domain.RawRecord { return p.record }

func (p *Street) Postcodes() []string { return p.record.StringsAt("zip_codes") }

func (p *Street) BuildAddress(lang string) *domain.Address { return standardAddress(p, lang) }

func (p *Street) CountryCodes() []string { return countryCodes(p) }

func (p *Street) CountryCode() string { return countryCode(p) }
