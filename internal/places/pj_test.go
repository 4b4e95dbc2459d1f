package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/places-api/internal/domain"
)

func TestLegacyPjCategories(t *testing.T) {
	for _, tc := range []struct {
		categories []string
		class      string
		subclass   string
	}{
		{[]string{"None"}, "", ""},
		{[]string{"restaurants"}, "restaurant", "restaurant"},
		{[]string{"hôtels"}, "lodging", "lodging"},
		{[]string{"musées"}, "museum", "museum"},
		{[]string{"salles de cinéma"}, "cinema", "cinema"},
		{[]string{"salles de concerts, de spectacles"}, "theatre", "theatre"},
		{[]string{"Pharmacie"}, "pharmacy", "pharmacy"},
		{[]string{"supermarchés, hypermarchés"}, "grocery", "grocery"},
		{[]string{"banques"}, "bank", "bank"},
		{[]string{"cafés, bars"}, "bar", "bar"},
		{[]string{"des supers écoles de fou"}, "school", "school"},
		{[]string{"grandes études", "ou bien l'enseignement supérieur"}, "college", "college"},
		{[]string{" Psychologue "}, "doctors", "doctors"},
		{[]string{"vétérinaires"}, "veterinary", "veterinary"},
		{[]string{"unrelated category", "garages automobiles"}, "car", "car_repair"},
	} {
		poi := NewPjLegacyPOI(domain.RawRecord{"Category": toInterfaceSlice(tc.categories)})
		assert.Equal(t, tc.class, poi.ClassName(), "categories: %v", tc.categories)
		assert.Equal(t, tc.subclass, poi.SubclassName(), "categories: %v", tc.categories)
	}
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func TestLegacyPjOpeningHoursSynthesis(t *testing.T) {
	poi := NewPjLegacyPOI(domain.RawRecord{
		"OpeningHours": map[string]interface{}{
			"Mo": "09:00-18:00",
			"Tu": "09:00-18:00",
			"We": "09:00-18:00",
			"Th": "09:00-18:00",
			"Fr": "09:00-18:00",
			"Sa": "09:00-12:00",
		},
	})
	assert.Equal(t, "Mo-Fr 09:00-18:00; Sa 09:00-12:00", poi.RawOpeningHours())

	poi = NewPjLegacyPOI(domain.RawRecord{
		"OpeningHours": map[string]interface{}{
			"Mo": "09:00-18:00",
			"We": "09:00-18:00",
			"Th": "10:00-17:00",
		},
	})
	assert.Equal(t, "Mo 09:00-18:00; We 09:00-18:00; Th 10:00-17:00", poi.RawOpeningHours())

	poi = NewPjLegacyPOI(domain.RawRecord{})
	assert.Empty(t, poi.RawOpeningHours())
}

func TestLegacyPjAccessors(t *testing.T) {
	poi := NewPjLegacyPOI(domain.RawRecord{
		"BusinessId":   "PJ04410257",
		"BusinessName": "Multiplexe Liberté",
		"Geo":          map[string]interface{}{"lon": -3.36942, "lat": 47.748},
		"WebsiteURL":   "http://multiplexe-liberte.fr",
		"ContactInfos": map[string]interface{}{
			"PhoneNumbers": []interface{}{
				map[string]interface{}{"phoneNumber": "01 40 20 52 29"},
			},
		},
		"Address": map[string]interface{}{
			"Number":     "11",
			"Street":     "Rue de Liège",
			"PostalCode": "56100",
			"City":       "Lorient",
		},
		"grades": map[string]interface{}{
			"total_grades_count": 8.0,
			"global_grade":       4.2,
		},
	})

	assert.Equal(t, "pj:PJ04410257", poi.ID())
	assert.Equal(t, "Multiplexe Liberté", poi.LocalName())
	assert.Equal(t, "01 40 20 52 29", poi.Phone())
	assert.Equal(t, "http://multiplexe-liberte.fr", poi.Website())
	assert.Equal(t, domain.SourcePagesJaunes, poi.Source())
	assert.Equal(t, []string{"FR"}, poi.CountryCodes())

	addr := poi.BuildAddress("fr")
	require.NotNil(t, addr)
	assert.Equal(t, "11 Rue de Liège", addr.Name)
	assert.Equal(t, "11 Rue de Liège, 56100 Lorient", addr.Label)
	assert.Equal(t, "56100", addr.Postcode)
	require.NotNil(t, addr.Street)
	assert.Equal(t, "Rue de Liège (Lorient)", addr.Street.Label)

	grades := poi.RawGrades()
	require.NotNil(t, grades)
	assert.Equal(t, 8, grades.TotalCount)
	assert.Equal(t, 4.2, grades.GlobalGrade)
}

func pjInfoFixture() PjInfoResponse {
	lat, lon := 47.748, -3.36942
	return PjInfoResponse{
		MerchantID:   "04410257",
		MerchantName: "Multiplexe Liberté",
		Description:  "Le plus grand cinéma de Lorient.",
		WebsiteURLs: []PjWebsiteURL{
			{URLType: "FACEBOOK", WebsiteURL: "https://www.facebook.com/multiplexe"},
			{URLType: "SITE_EXTERNE", WebsiteURL: "http://multiplexe-liberte.fr", SuggestedLabel: "multiplexe-liberte.fr"},
		},
		Categories: []PjCategoryField{{CategoryName: "salles de cinéma"}},
		Schedules:  &PjSchedules{OpeningHours: "Mo-Su 11:00-23:00"},
		TransactionalLinks: []PjTransactionalLink{
			{Type: "RESERVER_INTERNE", URL: "https://booking.example.com"},
			{Type: "PRENDRE_RDV_EXTERNE", URL: "https://rdv.example.com"},
		},
		AccommodationInfos: []PjAccommodationInfo{{Category: "Hôtel 4 étoiles"}},
		Inscriptions: []PjInscription{
			{
				AddressStreet:  "11 Rue de Liège",
				AddressZipcode: "56100",
				AddressCity:    "Lorient",
				Latitude:       &lat,
				Longitude:      &lon,
				Reviews:        &PjReviews{TotalReviews: 8, OverallReviewRating: 4.2},
				ContactInfos: []PjContactInfo{
					{ContactType: "MOBILE", ContactValue: "06 01 02 03 04"},
					{ContactType: "TELEPHONE", ContactValue: "02 97 64 00 01"},
				},
				Urls: &PjUrls{
					MerchantURL: "https://www.pagesjaunes.fr/pros/04410257",
					ReviewsURL:  "https://www.pagesjaunes.fr/pros/04410257#zone-avis",
				},
			},
		},
	}
}

func TestPjApiPOIAccessors(t *testing.T) {
	poi := NewPjApiPOI(pjInfoFixture())

	assert.Equal(t, "pj:04410257", poi.ID())
	assert.Equal(t, "Multiplexe Liberté", poi.Name("fr"))
	assert.Equal(t, "cinema", poi.ClassName())
	// The landline wins over the mobile number.
	assert.Equal(t, "02 97 64 00 01", poi.Phone())
	assert.Equal(t, "http://multiplexe-liberte.fr", poi.Website())
	assert.Equal(t, "multiplexe-liberte.fr", poi.WebsiteLabel())
	assert.Equal(t, "https://www.facebook.com/multiplexe", poi.Facebook())
	assert.Equal(t, "Mo-Su 11:00-23:00", poi.RawOpeningHours())
	assert.Equal(t, "https://www.pagesjaunes.fr/pros/04410257", poi.SourceURL())
	assert.Equal(t, "https://www.pagesjaunes.fr/pros/04410257#zone-avis", poi.ReviewsURL())
	assert.Equal(t, "https://booking.example.com", poi.BookingURL())
	assert.Equal(t, "https://rdv.example.com", poi.AppointmentURL())
	assert.Empty(t, poi.QuotationRequestURL())
	assert.Equal(t, "4", poi.RawStars())

	require.NotNil(t, poi.Coord())
	assert.InDelta(t, 47.748, poi.Coord().Lat, 1e-9)

	grades := poi.RawGrades()
	require.NotNil(t, grades)
	assert.Equal(t, 8, grades.TotalCount)

	addr := poi.BuildAddress("fr")
	require.NotNil(t, addr)
	assert.Equal(t, "11 Rue de Liège, 56100 Lorient", addr.Label)
}

func TestPjApiPOIDescriptionFrenchOnly(t *testing.T) {
	poi := NewPjApiPOI(pjInfoFixture())

	assert.Equal(t, "Le plus grand cinéma de Lorient.", poi.Description("fr"))
	assert.Empty(t, poi.Description("en"))
}
