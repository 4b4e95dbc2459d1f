package places

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/places-api/internal/domain"
)

// PjLegacyPOI wraps a business record from the legacy directory
// datafeed. Field names follow the feed's PascalCase convention.
type PjLegacyPOI struct {
	base
}

func NewPjLegacyPOI(record domain.RawRecord) *PjLegacyPOI {
	return &PjLegacyPOI{base: newBase(record)}
}

func (p *PjLegacyPOI) PlaceType() domain.PlaceType { return domain.PlaceTypePOI }

func (p *PjLegacyPOI) ID() string {
	if businessID := p.record.String("BusinessId"); businessID != "" {
		return "pj:" + businessID
	}
	return ""
}

func (p *PjLegacyPOI) LocalName() string { return p.record.String("BusinessName") }

func (p *PjLegacyPOI) Name(_ string) string { return p.LocalName() }

func (p *PjLegacyPOI) ClassName() string {
	class, _ := classifyPjCategories(p.record.StringsAt("Category"))
	return class
}

func (p *PjLegacyPOI) SubclassName() string {
	_, subclass := classifyPjCategories(p.record.StringsAt("Category"))
	return subclass
}

func (p *PjLegacyPOI) Coord() *domain.Coord {
	geo := p.record.Map("Geo")
	if geo == nil {
		return nil
	}
	lon, lonOK := domain.RawRecord(geo).Float("lon")
	lat, latOK := domain.RawRecord(geo).Float("lat")
	if !lonOK || !latOK {
		return nil
	}
	return &domain.Coord{Lon: lon, Lat: lat}
}

func (p *PjLegacyPOI) Geometry() *domain.Geometry { return pointGeometry(p.Coord(), nil) }

func (p *PjLegacyPOI) Phone() string {
	contactInfos := p.record.Map("ContactInfos")
	numbers := domain.RawRecord(contactInfos).Slice("PhoneNumbers")
	if len(numbers) == 0 {
		return ""
	}
	if number, ok := numbers[0].(map[string]interface{}); ok {
		return domain.RawRecord(number).String("phoneNumber")
	}
	return ""
}

func (p *PjLegacyPOI) Website() string { return p.record.String("WebsiteURL") }

// RawOpeningHours synthesizes an opening-hours expression from the
// feed's per-day table, grouping consecutive days that share the same
// time ranges ("Mo-Fr 09:00-18:00; Sa 09:00-12:00").
func (p *PjLegacyPOI) RawOpeningHours() string {
	table := domain.RawRecord(p.record.Map("OpeningHours"))
	var parts []string
	flush := func(firstDay, lastDay, times string) {
		if times == "" {
			return
		}
		if firstDay == lastDay {
			parts = append(parts, firstDay+" "+times)
			return
		}
		parts = append(parts, firstDay+"-"+lastDay+" "+times)
	}
	var firstDay, lastDay, times string
	for _, day := range [...]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		value := table.String(day)
		if value == "" || value != times {
			flush(firstDay, lastDay, times)
			firstDay, lastDay, times = "", "", ""
		}
		if value != "" && value != times {
			firstDay, lastDay, times = day, day, value
		} else if value != "" {
			lastDay = day
		}
	}
	flush(firstDay, lastDay, times)
	return strings.Join(parts, "; ")
}

func (p *PjLegacyPOI) RawWheelchair() string { return p.record.String("WheelchairAccessible") }

func (p *PjLegacyPOI) BuildAddress(_ string) *domain.Address {
	raw := domain.RawRecord(p.record.Map("Address"))
	city := raw.String("City")
	number := raw.String("Number")
	postalCode := raw.String("PostalCode")
	street := raw.String("Street")

	var postcodes []string
	if postalCode != "" {
		postcodes = []string{postalCode}
	}
	return &domain.Address{
		Name:        strings.TrimSpace(number + " " + street),
		HouseNumber: number,
		Postcode:    postalCode,
		Label:       pjAddressLabel(number, street, postalCode, city),
		Street: &domain.Street{
			Name:      street,
			Label:     fmt.Sprintf("%s (%s)", street, city),
			Postcodes: postcodes,
		},
		Admins:      []domain.AdminRef{},
		CountryCode: "FR",
	}
}

func pjAddressLabel(number, street, postalCode, city string) string {
	label := strings.TrimSpace(number + " " + street)
	tail := strings.TrimSpace(postalCode + " " + city)
	if label == "" {
		return tail
	}
	if tail == "" {
		return label
	}
	return label + ", " + tail
}

// The directory only covers businesses located in France.
func (p *PjLegacyPOI) CountryCodes() []string { return []string{"FR"} }

func (p *PjLegacyPOI) CountryCode() string { return "FR" }

func (p *PjLegacyPOI) ImagesURLs() []string {
	photos := domain.RawRecord(p.record.Map("photos")).Slice("photos")
	urls := make([]string, 0, len(photos))
	for _, item := range photos {
		if photo, ok := item.(map[string]interface{}); ok {
			if u := domain.RawRecord(photo).String("url"); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls
}

// ImagesSourceURL points at the photo gallery of the merchant page.
func (p *PjLegacyPOI) ImagesSourceURL() string {
	links := domain.RawRecord(p.record.Map("Links"))
	if u := links.String("viewPhotos"); u != "" {
		return u
	}
	if u := p.SourceURL(); u != "" {
		return u + "#ancrePhotoVideo"
	}
	return ""
}

func (p *PjLegacyPOI) RawGrades() *RawGrades {
	grades := domain.RawRecord(p.record.Map("grades"))
	count, countOK := grades.Float("total_grades_count")
	grade, gradeOK := grades.Float("global_grade")
	if !countOK || !gradeOK {
		return nil
	}
	return &RawGrades{TotalCount: int(count), GlobalGrade: grade}
}

func (p *PjLegacyPOI) Source() string { return domain.SourcePagesJaunes }

func (p *PjLegacyPOI) SourceURL() string {
	return domain.RawRecord(p.record.Map("Links")).String("viewSite")
}

func (p *PjLegacyPOI) ContributeURL() string { return p.SourceURL() }

// PjInfoResponse is the business details payload of the directory
// API, as generated from its OpenAPI spec.
type PjInfoResponse struct {
	MerchantID           string                  `json:"merchant_id"`
	MerchantName         string                  `json:"merchant_name"`
	Description          string                  `json:"description"`
	ThumbnailURL         string                  `json:"thumbnail_url"`
	WebsiteURLs          []PjWebsiteURL          `json:"website_urls"`
	BusinessDescriptions []PjBusinessDescription `json:"business_descriptions"`
	Photos               []PjPhoto               `json:"photos"`
	Categories           []PjCategoryField       `json:"categories"`
	RestaurantInfo       *PjRestaurantInfo       `json:"restaurant_info"`
	AccommodationInfos   []PjAccommodationInfo   `json:"accommodation_infos"`
	Schedules            *PjSchedules            `json:"schedules"`
	TransactionalLinks   []PjTransactionalLink   `json:"transactionals_links"`
	Inscriptions         []PjInscription         `json:"inscriptions"`
}

type PjWebsiteURL struct {
	URLType        string `json:"url_type"`
	WebsiteURL     string `json:"website_url"`
	SuggestedLabel string `json:"suggested_label"`
}

type PjBusinessDescription struct {
	Values []string `json:"values"`
}

type PjPhoto struct {
	URL string `json:"url"`
}

type PjCategoryField struct {
	CategoryName string `json:"category_name"`
}

type PjRestaurantInfo struct {
	Atmospheres []string `json:"atmospheres"`
}

type PjAccommodationInfo struct {
	Category string `json:"category"`
}

type PjSchedules struct {
	OpeningHours string `json:"opening_hours"`
}

type PjTransactionalLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type PjContactInfo struct {
	ContactType  string `json:"contact_type"`
	ContactValue string `json:"contact_value"`
}

type PjReviews struct {
	TotalReviews        int     `json:"total_reviews"`
	OverallReviewRating float64 `json:"overall_review_rating"`
}

type PjUrls struct {
	MerchantURL string `json:"merchant_url"`
	ReviewsURL  string `json:"reviews_url"`
}

type PjInscription struct {
	AddressStreet  string          `json:"address_street"`
	AddressZipcode string          `json:"address_zipcode"`
	AddressCity    string          `json:"address_city"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	Reviews        *PjReviews      `json:"reviews"`
	ContactInfos   []PjContactInfo `json:"contact_infos"`
	Urls           *PjUrls         `json:"urls"`
}

// PjApiPOI wraps a business details response of the directory API.
type PjApiPOI struct {
	base
	info PjInfoResponse
}

func NewPjApiPOI(info PjInfoResponse) *PjApiPOI {
	return &PjApiPOI{base: newBase(nil), info: info}
}

// NewPjApiPOIFromRaw decodes an as-fetched directory payload into the
// typed response model.
func NewPjApiPOIFromRaw(record domain.RawRecord) (*PjApiPOI, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var info PjInfoResponse
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, err
	}
	return NewPjApiPOI(info), nil
}

func (p *PjApiPOI) Info() PjInfoResponse { return p.info }

func (p *PjApiPOI) PlaceType() domain.PlaceType { return domain.PlaceTypePOI }

func (p *PjApiPOI) ID() string {
	if p.info.MerchantID == "" {
		return ""
	}
	return "pj:" + p.info.MerchantID
}

func (p *PjApiPOI) LocalName() string { return p.info.MerchantName }

func (p *PjApiPOI) Name(_ string) string { return p.LocalName() }

func (p *PjApiPOI) ClassName() string {
	class, _ := classifyPjCategories(p.categoryNames())
	return class
}

func (p *PjApiPOI) SubclassName() string {
	_, subclass := classifyPjCategories(p.categoryNames())
	return subclass
}

func (p *PjApiPOI) categoryNames() []string {
	names := make([]string, 0, len(p.info.Categories))
	for _, c := range p.info.Categories {
		names = append(names, c.CategoryName)
	}
	return names
}

func (p *PjApiPOI) inscription() *PjInscription {
	if len(p.info.Inscriptions) == 0 {
		return nil
	}
	return &p.info.Inscriptions[0]
}

func (p *PjApiPOI) Coord() *domain.Coord {
	ins := p.inscription()
	if ins == nil || ins.Latitude == nil || ins.Longitude == nil {
		return nil
	}
	return &domain.Coord{Lat: *ins.Latitude, Lon: *ins.Longitude}
}

func (p *PjApiPOI) Geometry() *domain.Geometry { return pointGeometry(p.Coord(), nil) }

func (p *PjApiPOI) Phone() string {
	ins := p.inscription()
	if ins == nil {
		return ""
	}
	for _, contactType := range []string{"TELEPHONE", "MOBILE"} {
		for _, contact := range ins.ContactInfos {
			if contact.ContactType == contactType && contact.ContactValue != "" {
				return contact.ContactValue
			}
		}
	}
	return ""
}

func (p *PjApiPOI) websiteURL(urlTypes ...string) string {
	for _, urlType := range urlTypes {
		for _, u := range p.info.WebsiteURLs {
			if u.URLType == urlType && u.WebsiteURL != "" {
				return u.WebsiteURL
			}
		}
	}
	return ""
}

func (p *PjApiPOI) Website() string {
	return p.websiteURL("WEBSITE", "SITE_EXTERNE", "SITE_PRIVILEGE", "MINISITE")
}

func (p *PjApiPOI) WebsiteLabel() string {
	for _, urlType := range []string{"WEBSITE", "SITE_EXTERNE", "SITE_PRIVILEGE", "MINISITE"} {
		for _, u := range p.info.WebsiteURLs {
			if u.URLType == urlType && u.WebsiteURL != "" {
				return u.SuggestedLabel
			}
		}
	}
	return ""
}

func (p *PjApiPOI) Facebook() string { return p.websiteURL("FACEBOOK") }

func (p *PjApiPOI) Twitter() string { return p.websiteURL("TWITTER") }

func (p *PjApiPOI) Instagram() string { return p.websiteURL("INSTAGRAM") }

func (p *PjApiPOI) Youtube() string { return p.websiteURL("YOUTUBE") }

func (p *PjApiPOI) RawOpeningHours() string {
	if p.info.Schedules == nil {
		return ""
	}
	return p.info.Schedules.OpeningHours
}

func (p *PjApiPOI) BuildAddress(_ string) *domain.Address {
	ins := p.inscription()
	if ins == nil {
		return nil
	}
	var postcodes []string
	if ins.AddressZipcode != "" {
		postcodes = []string{ins.AddressZipcode}
	}
	return &domain.Address{
		Name:     ins.AddressStreet,
		Postcode: ins.AddressZipcode,
		Label:    pjAddressLabel("", ins.AddressStreet, ins.AddressZipcode, ins.AddressCity),
		Street: &domain.Street{
			Name:      ins.AddressStreet,
			Label:     fmt.Sprintf("%s (%s)", ins.AddressStreet, ins.AddressCity),
			Postcodes: postcodes,
		},
		Admins:      []domain.AdminRef{},
		CountryCode: "FR",
	}
}

func (p *PjApiPOI) CountryCodes() []string { return []string{"FR"} }

func (p *PjApiPOI) CountryCode() string { return "FR" }

// The directory publishes French copy only.
func (p *PjApiPOI) Description(lang string) string {
	if lang != "fr" {
		return ""
	}
	return p.info.Description
}

func (p *PjApiPOI) DescriptionURL(_ string) string { return p.SourceURL() }

func (p *PjApiPOI) ImagesURLs() []string {
	urls := make([]string, 0, len(p.info.Photos))
	for _, photo := range p.info.Photos {
		if photo.URL != "" {
			urls = append(urls, photo.URL)
		}
	}
	if len(urls) == 0 && p.info.ThumbnailURL != "" {
		urls = append(urls, p.info.ThumbnailURL)
	}
	return urls
}

func (p *PjApiPOI) ImagesSourceURL() string {
	if u := p.SourceURL(); u != "" {
		return u + "#ancrePhotoVideo"
	}
	return ""
}

func (p *PjApiPOI) RawGrades() *RawGrades {
	ins := p.inscription()
	if ins == nil || ins.Reviews == nil || ins.Reviews.TotalReviews == 0 {
		return nil
	}
	return &RawGrades{
		TotalCount:  ins.Reviews.TotalReviews,
		GlobalGrade: ins.Reviews.OverallReviewRating,
	}
}

func (p *PjApiPOI) ReviewsURL() string {
	ins := p.inscription()
	if ins == nil || ins.Urls == nil {
		return ""
	}
	return ins.Urls.ReviewsURL
}

func (p *PjApiPOI) transactionalLink(prefixes ...string) string {
	for _, link := range p.info.TransactionalLinks {
		for _, prefix := range prefixes {
			if strings.HasPrefix(link.Type, prefix) && link.URL != "" {
				return link.URL
			}
		}
	}
	return ""
}

func (p *PjApiPOI) BookingURL() string { return p.transactionalLink("RESERVER") }

func (p *PjApiPOI) AppointmentURL() string { return p.transactionalLink("PRENDRE_RDV") }

func (p *PjApiPOI) QuotationRequestURL() string { return p.transactionalLink("QUOTATION_REQUEST") }

// OrderURL is exposed for click and collect detection.
func (p *PjApiPOI) OrderURL() string { return p.transactionalLink("COMMANDER") }

var pjStarsPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*étoile`)

// RawStars parses the star count out of the accommodation category
// label, e.g. "Hôtel 4 étoiles".
func (p *PjApiPOI) RawStars() string {
	for _, info := range p.info.AccommodationInfos {
		match := pjStarsPattern.FindStringSubmatch(strings.ToLower(info.Category))
		if match != nil {
			return strings.ReplaceAll(match[1], ",", ".")
		}
	}
	return ""
}

func (p *PjApiPOI) Source() string { return domain.SourcePagesJaunes }

func (p *PjApiPOI) SourceURL() string {
	ins := p.inscription()
	if ins == nil || ins.Urls == nil {
		return ""
	}
	return ins.Urls.MerchantURL
}

func (p *PjApiPOI) ContributeURL() string { return p.SourceURL() }
