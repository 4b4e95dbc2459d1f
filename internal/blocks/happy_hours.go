package blocks

import (
	"context"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type HappyHourBlock struct {
	Type                        string         `json:"type"`
	Status                      string         `json:"status"`
	NextTransitionDatetime      *string        `json:"next_transition_datetime"`
	SecondsBeforeNextTransition *int           `json:"seconds_before_next_transition"`
	Raw                         string         `json:"raw"`
	Days                        []HappyHourDay `json:"days"`
}

func (b *HappyHourBlock) BlockType() string { return "happy_hours" }

// HappyHourDay mirrors OpeningDay with yes/no statuses and the
// intervals keyed as happy_hours.
type HappyHourDay struct {
	DayOfWeek  int         `json:"dayofweek"`
	LocalDate  string      `json:"local_date"`
	Status     string      `json:"status"`
	HappyHours []HourRange `json:"happy_hours"`
}

func buildHappyHours(_ context.Context, b *Builder, p places.Place, _ string) domain.Block {
	report := b.scheduleReport(p, p.RawHappyHours())
	if report == nil {
		return nil
	}
	return &HappyHourBlock{
		Type:                        "happy_hours",
		Status:                      report.statusWord("yes", "no"),
		NextTransitionDatetime:      report.nextTransition,
		SecondsBeforeNextTransition: report.secondsToNext,
		Raw:                         report.raw,
		Days:                        happyHourDays(report.days),
	}
}

func happyHourDays(days []OpeningDay) []HappyHourDay {
	out := make([]HappyHourDay, 0, len(days))
	for _, day := range days {
		status := "no"
		if day.Status == StatusOpen {
			status = "yes"
		}
		out = append(out, HappyHourDay{
			DayOfWeek:  day.DayOfWeek,
			LocalDate:  day.LocalDate,
			Status:     status,
			HappyHours: day.OpeningHours,
		})
	}
	return out
}
