package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/places-api/internal/domain"
)

func taRecord() domain.RawRecord {
	return domain.RawRecord{
		"id": "ta:poi:3166925",
		"coord": map[string]interface{}{
			"lon": 5.69365,
			"lat": 43.835431,
		},
		"properties": []interface{}{
			map[string]interface{}{"key": "website", "value": "http://www.facebook.com/profile.php?id=778236518876620"},
			map[string]interface{}{"key": "ta:url", "value": "https://www.tripadvisor.fr/Restaurant_Review-d3166925.html?m=66562"},
			map[string]interface{}{"key": "ta:average_rating", "value": "4.5"},
			map[string]interface{}{"key": "ta:review_count", "value": "321"},
		},
		"images": []interface{}{
			"https://media-cdn.tripadvisor.com/media/photo-o/0f/e9/04/82/photo0jpg.jpg",
		},
		"reviews": []interface{}{
			map[string]interface{}{
				"DatePublished":  "2025-11-02T09:33:31.000-0500",
				"Rating":         "5",
				"ReviewURL":      "#review123",
				"MoreReviewsURL": "#REVIEWS",
				"Language":       "fr",
				"Title":          "Excellent",
				"Text":           "Très bonne table.",
				"TripType":       "FAMILY",
				"Author":         map[string]interface{}{"AuthorName": "Jean"},
			},
		},
	}
}

func TestTripadvisorPOIAccessors(t *testing.T) {
	poi := NewTripadvisorPOI(taRecord())

	assert.Equal(t, domain.SourceTripadvisor, poi.Source())
	assert.Equal(t, "https://www.tripadvisor.fr/Restaurant_Review-d3166925.html?m=66562", poi.SourceURL())
	assert.Equal(t, "https://www.tripadvisor.fr/Restaurant_Review-d3166925.html?m=66562#REVIEWS", poi.ReviewsURL())

	grades := poi.RawGrades()
	require.NotNil(t, grades)
	assert.Equal(t, 321, grades.TotalCount)
	assert.Equal(t, 4.5, grades.GlobalGrade)

	assert.Equal(t,
		"https://www.tripadvisor.com/img/cdsi/img2/ratings/traveler/4.5-MCID-66562.svg",
		poi.RatingURL())

	require.Len(t, poi.ImagesURLs(), 1)
}

func TestTripadvisorPOIRatingBadgeWholeGrade(t *testing.T) {
	record := taRecord()
	props := record["properties"].([]interface{})
	props[2] = map[string]interface{}{"key": "ta:average_rating", "value": "4"}

	poi := NewTripadvisorPOI(record)
	assert.Equal(t,
		"https://www.tripadvisor.com/img/cdsi/img2/ratings/traveler/4-MCID-66562.svg",
		poi.RatingURL())
}

func TestTripadvisorPOIReviews(t *testing.T) {
	poi := NewTripadvisorPOI(taRecord())

	reviews := poi.Reviews()
	require.Len(t, reviews, 1)
	assert.Equal(t, "Jean", reviews[0].AuthorName)
	assert.Equal(t, "5", reviews[0].Rating)
	assert.Equal(t, "https://www.tripadvisor.fr/Restaurant_Review-d3166925.html?m=66562#review123", reviews[0].URL)
	assert.Equal(t, "fr", reviews[0].Lang)
}

func TestTripadvisorPOIWithoutGrades(t *testing.T) {
	poi := NewTripadvisorPOI(domain.RawRecord{"id": "ta:poi:1"})

	assert.Nil(t, poi.RawGrades())
	assert.Empty(t, poi.RatingURL())
	assert.Empty(t, poi.ReviewsURL())
}
