package places

import "github.com/places-api/internal/domain"

// Address wraps a house-number record. The record doubles as its own
// raw address, and its admin hierarchy hangs off the embedded street.
type Address struct {
	base
}

func NewAddress(record domain.RawRecord) *Address {
	return &Address{base: newBase(record)}
}

func (p *Address) PlaceType() domain.PlaceType { return domain.PlaceTypeAddress }

func (p *Address) ClassName() string { return string(domain.PlaceTypeAddress) }

func (p *Address) SubclassName() string { return string(domain.PlaceTypeAddress) }

func (p *Address) RawAddress() domain.RawRecord { return p.record }

func (p *Address) RawStreet() domain.RawRecord {
	return domain.RawRecord(p.record.Map("street"))
}

func (p *Address) Postcodes() []string { return p.record.StringsAt("zip_codes") }

func (p *Address) RawAdmins() []domain.RawRecord {
	return rawRecords(p.RawStreet().Slice("administrative_regions"))
}

func (p *Address) BuildAddress(lang string) *domain.Address { return standardAddress(p, lang) }

func (p *Address) CountryCodes() []string { return countryCodes(p) }

func (p *Address) CountryCode() string { return countryCode(p) }
