package blocks

import (
	"context"
	"strings"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type OpeningDayEventBlock struct {
	Type          string           `json:"type"`
	DateStart     string           `json:"date_start"`
	DateEnd       string           `json:"date_end"`
	SpaceTimeInfo string           `json:"space_time_info,omitempty"`
	Timetable     []TimetableEntry `json:"timetable"`
}

type TimetableEntry struct {
	Beginning string `json:"beginning"`
	End       string `json:"end"`
}

func (b *OpeningDayEventBlock) BlockType() string { return "event_opening_dates" }

type DescriptionEventBlock struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	FreeText    string   `json:"free_text,omitempty"`
	Price       string   `json:"price,omitempty"`
	Tags        []string `json:"tags"`
}

func (b *DescriptionEventBlock) BlockType() string { return "event_description" }

func buildEventOpeningDates(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	event, ok := p.(*places.Event)
	if !ok {
		return nil
	}
	start, end := event.DateStart(), event.DateEnd()
	if start == "" && end == "" {
		return nil
	}
	return &OpeningDayEventBlock{
		Type:          "event_opening_dates",
		DateStart:     start,
		DateEnd:       end,
		SpaceTimeInfo: event.SpaceTimeInfo(),
		Timetable:     eventTimetable(event.Timetable()),
	}
}

func buildEventDescription(_ context.Context, _ *Builder, p places.Place, _ string) domain.Block {
	event, ok := p.(*places.Event)
	if !ok {
		return nil
	}
	description := event.EventDescription()
	if description == "" {
		return nil
	}
	return &DescriptionEventBlock{
		Type:        "event_description",
		Description: description,
		FreeText:    event.FreeText(),
		Price:       event.PricingInfo(),
		Tags:        event.Tags(),
	}
}

// eventTimetable parses ";"-separated "beginning end" datetime pairs.
func eventTimetable(raw string) []TimetableEntry {
	var entries []TimetableEntry
	for _, pair := range strings.Split(raw, ";") {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			continue
		}
		entries = append(entries, TimetableEntry{Beginning: fields[0], End: fields[1]})
	}
	return entries
}
