package blocks

import (
	"context"
	"fmt"
	"time"

	"github.com/places-api/internal/blocks/openinghours"
	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

type OpeningHoursBlock struct {
	Type                        string       `json:"type"`
	Status                      string       `json:"status"`
	NextTransitionDatetime      *string      `json:"next_transition_datetime"`
	SecondsBeforeNextTransition *int         `json:"seconds_before_next_transition"`
	Is247                       bool         `json:"is_24_7"`
	Raw                         string       `json:"raw"`
	Days                        []OpeningDay `json:"days"`
}

func (b *OpeningHoursBlock) BlockType() string { return "opening_hours" }

type OpeningDay struct {
	DayOfWeek    int         `json:"dayofweek"`
	LocalDate    string      `json:"local_date"`
	Status       string      `json:"status"`
	OpeningHours []HourRange `json:"opening_hours"`
}

type HourRange struct {
	Beginning string `json:"beginning"`
	End       string `json:"end"`
}

func buildOpeningHours(_ context.Context, b *Builder, p places.Place, _ string) domain.Block {
	report := b.scheduleReport(p, p.RawOpeningHours())
	if report == nil {
		return nil
	}
	return &OpeningHoursBlock{
		Type:                        "opening_hours",
		Status:                      report.statusWord(StatusOpen, StatusClosed),
		NextTransitionDatetime:      report.nextTransition,
		SecondsBeforeNextTransition: report.secondsToNext,
		Is247:                       report.is247,
		Raw:                         report.raw,
		Days:                        report.days,
	}
}

// scheduleReport evaluates an opening_hours expression against the
// place's local timezone. It returns nil when the expression is
// missing, does not parse, or describes a place that never opens.
type scheduleReport struct {
	raw            string
	open           bool
	is247          bool
	nextTransition *string
	secondsToNext  *int
	days           []OpeningDay
}

func (r *scheduleReport) statusWord(open, closed string) string {
	if r.open {
		return open
	}
	return closed
}

func (b *Builder) scheduleReport(p places.Place, raw string) *scheduleReport {
	if raw == "" {
		return nil
	}
	coord := p.Coord()
	if coord == nil {
		return nil
	}
	schedule, err := openinghours.Parse(raw)
	if err != nil {
		return nil
	}
	loc := b.placeLocation(coord)
	if loc == nil {
		return nil
	}

	ev := openinghours.NewEvaluator(schedule, loc).WithCoordinates(coord.Lat, coord.Lon)
	now := b.now().In(loc)

	open := ev.IsOpen(now)
	next, hasNext := ev.NextChange(now)
	if !open && !hasNext {
		// Expired date ranges or an unconditional "off".
		return nil
	}

	report := &scheduleReport{
		raw:   raw,
		open:  open,
		is247: open && !hasNext,
		days:  weekDays(ev, now),
	}
	if hasNext {
		formatted := next.Format("2006-01-02T15:04:05-07:00")
		seconds := int(next.Sub(now).Seconds())
		report.nextTransition = &formatted
		report.secondsToNext = &seconds
	}
	return report
}

func (b *Builder) placeLocation(coord *domain.Coord) *time.Location {
	if b.tz == nil {
		return time.UTC
	}
	name := b.tz.TimezoneName(coord.Lat, coord.Lon)
	if name == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil
	}
	return loc
}

// weekDays reports the seven days of the current local week, starting
// on Monday.
func weekDays(ev *openinghours.Evaluator, now time.Time) []OpeningDay {
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	days := make([]OpeningDay, 0, 7)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		spans := ev.DaySpans(date.Year(), date.Month(), date.Day())

		status := StatusClosed
		if len(spans) > 0 {
			status = StatusOpen
		}
		ranges := make([]HourRange, 0, len(spans))
		for _, sp := range spans {
			ranges = append(ranges, HourRange{
				Beginning: formatMinutes(sp.Start),
				End:       formatMinutes(sp.End % (24 * 60)),
			})
		}
		days = append(days, OpeningDay{
			DayOfWeek:    i + 1,
			LocalDate:    date.Format("2006-01-02"),
			Status:       status,
			OpeningHours: ranges,
		})
	}
	return days
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
