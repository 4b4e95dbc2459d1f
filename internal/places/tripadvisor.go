package places

import (
	"strconv"
	"strings"

	"github.com/places-api/internal/domain"
)

// TripadvisorPOI wraps a record from the TripAdvisor index. Records
// follow the same schema as OSM points of interest, with the partner
// link, grades and reviews carried in dedicated fields.
type TripadvisorPOI struct {
	OsmPOI
}

func NewTripadvisorPOI(record domain.RawRecord) *TripadvisorPOI {
	return &TripadvisorPOI{OsmPOI: *NewOsmPOI(record)}
}

func (p *TripadvisorPOI) Source() string { return domain.SourceTripadvisor }

func (p *TripadvisorPOI) SourceURL() string { return p.Property("ta:url") }

func (p *TripadvisorPOI) ContributeURL() string { return p.Property("ta:url") }

// RatingURL is the partner rating badge for the current global grade,
// as a raw image URL. The response assembler proxies it.
func (p *TripadvisorPOI) RatingURL() string {
	grades := p.RawGrades()
	if grades == nil {
		return ""
	}
	grade := strconv.FormatFloat(grades.GlobalGrade, 'f', -1, 64)
	if grades.GlobalGrade == float64(int(grades.GlobalGrade)) {
		grade = strconv.Itoa(int(grades.GlobalGrade))
	}
	return "https://www.tripadvisor.com/img/cdsi/img2/ratings/traveler/" + grade + "-MCID-66562.svg"
}

func (p *TripadvisorPOI) ReviewsURL() string {
	if u := p.SourceURL(); u != "" {
		return u + "#REVIEWS"
	}
	return ""
}

func (p *TripadvisorPOI) RawGrades() *RawGrades {
	rating, err := strconv.ParseFloat(p.Property("ta:average_rating"), 64)
	if err != nil {
		return nil
	}
	count, _ := strconv.Atoi(p.Property("ta:review_count"))
	return &RawGrades{TotalCount: count, GlobalGrade: rating}
}

func (p *TripadvisorPOI) ImagesURLs() []string {
	if urls := p.record.StringsAt("images"); len(urls) > 0 {
		return urls
	}
	// Some records carry photo urls as a ";"-separated property.
	if raw := p.Property("ta:photos_url"); raw != "" {
		return strings.Split(raw, ";")
	}
	return nil
}

func (p *TripadvisorPOI) Reviews() []RawReview {
	items := p.record.Slice("reviews")
	if len(items) == 0 {
		return nil
	}
	sourceURL := p.SourceURL()
	reviews := make([]RawReview, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		record := domain.RawRecord(raw)
		rating := record.String("Rating")
		if rating == "" {
			if v, ok := record.Float("Rating"); ok {
				rating = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		review := RawReview{
			Date:           record.String("DatePublished"),
			Rating:         rating,
			URL:            sourceURL + record.String("ReviewURL"),
			MoreReviewsURL: sourceURL + record.String("MoreReviewsURL"),
			Lang:           record.String("Language"),
			Title:          record.String("Title"),
			Text:           record.String("Text"),
			TripType:       record.String("TripType"),
		}
		if author := record.Map("Author"); author != nil {
			review.AuthorName = domain.RawRecord(author).String("AuthorName")
		}
		reviews = append(reviews, review)
	}
	return reviews
}
