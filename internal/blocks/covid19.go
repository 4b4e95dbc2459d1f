package blocks

import (
	"context"

	"go.uber.org/zap"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

// Pandemic-period statuses.
const (
	CovidStatusOpenAsUsual = "open_as_usual"
	CovidStatusOpen        = "open"
	CovidStatusMaybeOpen   = "maybe_open"
	CovidStatusClosed      = "closed"
	CovidStatusUnknown     = "unknown"
)

type Covid19Block struct {
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	Note          string       `json:"note,omitempty"`
	OpeningHours  []OpeningDay `json:"opening_hours"`
	ContributeURL string       `json:"contribute_url,omitempty"`
}

func (b *Covid19Block) BlockType() string { return "covid19" }

// buildCovid19 reports the pandemic-period status of French points of
// interest, from the dedicated tags or the curated dataset when it is
// fresher.
func buildCovid19(ctx context.Context, b *Builder, p places.Place, _ string) domain.Block {
	if p.PlaceType() != domain.PlaceTypePOI || p.CountryCode() != "FR" {
		return nil
	}

	raw := p.Property("opening_hours:covid19")
	note := p.Property("note:covid19")
	status := ""

	if b.cfg.Covid19UseDataset && b.covid != nil {
		record, err := b.covid.GetRecord(ctx, p.ID())
		if err != nil {
			b.log.Warn("covid dataset lookup failed",
				zap.String("place_id", p.ID()), zap.Error(err))
		} else if record != nil {
			status = record.Status
			if record.OpeningHours != "" {
				raw = record.OpeningHours
			}
			if record.Note != "" {
				note = record.Note
			}
		}
	}

	hours := raw
	if status == "" {
		switch raw {
		case "":
			status = CovidStatusUnknown
		case "same":
			status = CovidStatusOpenAsUsual
			hours = p.RawOpeningHours()
		case "off", "closed":
			status = CovidStatusClosed
			hours = ""
		default:
			status = CovidStatusMaybeOpen
			if report := b.scheduleReport(p, raw); report != nil && report.open {
				status = CovidStatusOpen
			}
		}
	}

	var days []OpeningDay
	if hours != "" {
		if report := b.scheduleReport(p, hours); report != nil {
			days = report.days
		}
	}
	return &Covid19Block{
		Type:          "covid19",
		Status:        status,
		Note:          note,
		OpeningHours:  days,
		ContributeURL: p.ContributeURL(),
	}
}
