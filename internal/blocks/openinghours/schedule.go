package openinghours

import (
	"sort"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// Fallback sun times used when the place coordinates are unknown.
const (
	defaultSunriseMinutes = 6 * 60
	defaultSunsetMinutes  = 18 * 60
)

// changeHorizon bounds the search for the next state transition.
// Month-scoped rules can stay closed for most of a year, so the
// horizon must cover a full cycle.
const changeHorizon = 400 * 24 * time.Hour

// Evaluator binds a schedule to the place's timezone and coordinates.
type Evaluator struct {
	schedule *Schedule
	loc      *time.Location
	lat, lon float64
	hasCoord bool
}

func NewEvaluator(schedule *Schedule, loc *time.Location) *Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &Evaluator{schedule: schedule, loc: loc}
}

// WithCoordinates enables real sunrise/sunset computation.
func (e *Evaluator) WithCoordinates(lat, lon float64) *Evaluator {
	e.lat, e.lon, e.hasCoord = lat, lon, true
	return e
}

func (e *Evaluator) Location() *time.Location { return e.loc }

// Span is an open range in minutes from local midnight of one day.
// End may exceed 24h for ranges that spill into the next day.
type Span struct {
	Start, End int
}

// DaySpans returns the open spans starting on the given local date,
// sorted and coalesced.
func (e *Evaluator) DaySpans(year int, month time.Month, day int) []Span {
	var spans []Span
	for _, r := range e.schedule.rules {
		if r.holidayOnly || !e.ruleMatches(r, year, month, day) {
			continue
		}
		resolved := e.resolveSpans(r, year, month, day)
		switch {
		case r.off && len(r.spans) > 0:
			spans = subtractSpans(spans, resolved)
		case r.off:
			spans = nil
		case r.additional:
			spans = append(spans, resolved...)
		default:
			spans = resolved
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return coalesceSpans(spans)
}

func (e *Evaluator) ruleMatches(r rule, year int, month time.Month, day int) bool {
	if len(r.months) > 0 && !matchesMonthday(r.months, year, int(month), day) {
		return false
	}
	if len(r.weekdays) > 0 {
		weekday := mondayIndex(time.Date(year, month, day, 12, 0, 0, 0, e.loc).Weekday())
		matched := false
		for _, wr := range r.weekdays {
			if weekdayInRange(weekday, wr) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchesMonthday(ranges []monthdayRange, year, month, day int) bool {
	for _, md := range ranges {
		if md.startYear != 0 {
			// Absolute range.
			start := dateOrdinal(md.startYear, md.startMonth, maxInt(md.startDay, 1))
			endDay := md.endDay
			if endDay == 0 {
				endDay = 31
			}
			end := dateOrdinal(md.endYear, md.endMonth, endDay)
			current := dateOrdinal(year, month, day)
			if start <= current && current <= end {
				return true
			}
			continue
		}

		start := md.startMonth*100 + maxInt(md.startDay, 1)
		endDay := md.endDay
		if endDay == 0 {
			endDay = 31
		}
		end := md.endMonth*100 + endDay
		current := month*100 + day
		if start <= end {
			if start <= current && current <= end {
				return true
			}
		} else if current >= start || current <= end {
			// Wraparound range such as Nov 3-Apr 30.
			return true
		}
	}
	return false
}

func dateOrdinal(year, month, day int) int { return year*10000 + month*100 + day }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mondayIndex maps time.Weekday onto Monday=0..Sunday=6.
func mondayIndex(d time.Weekday) int { return (int(d) + 6) % 7 }

func weekdayInRange(weekday int, wr weekdayRange) bool {
	if wr.first <= wr.last {
		return wr.first <= weekday && weekday <= wr.last
	}
	// Wraparound range such as We-Mo.
	return weekday >= wr.first || weekday <= wr.last
}

func (e *Evaluator) resolveSpans(r rule, year int, month time.Month, day int) []Span {
	sunriseMin, sunsetMin := e.sunTimes(year, month, day)
	spans := make([]Span, 0, len(r.spans))
	for _, sp := range r.spans {
		start, end := sp.start, sp.end
		switch sp.startSun {
		case sunRise:
			start = sunriseMin
		case sunSet:
			start = sunsetMin
		}
		switch sp.endSun {
		case sunRise:
			end = sunriseMin
		case sunSet:
			end = sunsetMin
		}
		// "24:00" and "00:00" endings both mean midnight; an end at
		// or before the start spills into the next day.
		if end <= start {
			end += minutesPerDay
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

func (e *Evaluator) sunTimes(year int, month time.Month, day int) (sunriseMin, sunsetMin int) {
	if !e.hasCoord {
		return defaultSunriseMinutes, defaultSunsetMinutes
	}
	rise, set := sunrise.SunriseSunset(e.lat, e.lon, year, month, day)
	if rise.IsZero() || set.IsZero() {
		return defaultSunriseMinutes, defaultSunsetMinutes
	}
	localRise := rise.In(e.loc)
	localSet := set.In(e.loc)
	return localRise.Hour()*60 + localRise.Minute(), localSet.Hour()*60 + localSet.Minute()
}

func subtractSpans(spans, removed []Span) []Span {
	out := spans
	for _, rm := range removed {
		var next []Span
		for _, sp := range out {
			if rm.End <= sp.Start || rm.Start >= sp.End {
				next = append(next, sp)
				continue
			}
			if rm.Start > sp.Start {
				next = append(next, Span{Start: sp.Start, End: rm.Start})
			}
			if rm.End < sp.End {
				next = append(next, Span{Start: rm.End, End: sp.End})
			}
		}
		out = next
	}
	return out
}

func coalesceSpans(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.Start <= last.End {
			if sp.End > last.End {
				last.End = sp.End
			}
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Interval is an absolute open period.
type Interval struct {
	Start, End time.Time
}

// OpenIntervals lists the coalesced open periods between from and to.
// Spans that started the previous day are taken into account.
func (e *Evaluator) OpenIntervals(from, to time.Time) []Interval {
	var intervals []Interval
	day := time.Date(from.In(e.loc).Year(), from.In(e.loc).Month(), from.In(e.loc).Day(), 0, 0, 0, 0, e.loc)
	day = day.AddDate(0, 0, -1)
	for !day.After(to.In(e.loc)) {
		year, month, dayOfMonth := day.Date()
		for _, sp := range e.DaySpans(year, month, dayOfMonth) {
			start := time.Date(year, month, dayOfMonth, 0, sp.Start, 0, 0, e.loc)
			end := time.Date(year, month, dayOfMonth, 0, sp.End, 0, 0, e.loc)
			if end.Before(from) || start.After(to) {
				continue
			}
			intervals = append(intervals, Interval{Start: start, End: end})
		}
		day = day.AddDate(0, 0, 1)
	}
	return coalesceIntervals(intervals)
}

func coalesceIntervals(intervals []Interval) []Interval {
	if len(intervals) < 2 {
		return intervals
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start.Before(intervals[j].Start) })
	out := intervals[:1]
	for _, iv := range intervals[1:] {
		last := &out[len(out)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// IsOpen reports whether the schedule is open at the given instant.
func (e *Evaluator) IsOpen(now time.Time) bool {
	local := now.In(e.loc)
	for _, iv := range e.OpenIntervals(local.Add(-24*time.Hour), local.Add(time.Minute)) {
		if !local.Before(iv.Start) && local.Before(iv.End) {
			return true
		}
	}
	return false
}

// NextChange returns the instant of the next state transition, or
// false when the state is stable over the whole search horizon.
func (e *Evaluator) NextChange(now time.Time) (time.Time, bool) {
	local := now.In(e.loc)
	horizon := local.Add(changeHorizon)
	for _, iv := range e.OpenIntervals(local.Add(-24*time.Hour), horizon) {
		if local.Before(iv.Start) {
			return iv.Start, true
		}
		if local.Before(iv.End) {
			// Currently inside this interval. An end beyond the
			// horizon means the schedule is effectively always open.
			if iv.End.After(horizon) {
				return time.Time{}, false
			}
			return iv.End, true
		}
	}
	return time.Time{}, false
}

// Is247 reports that the schedule is open now with no transition in
// sight.
func (e *Evaluator) Is247(now time.Time) bool {
	if !e.IsOpen(now) {
		return false
	}
	_, ok := e.NextChange(now)
	return !ok
}

// HasOpenIntervals reports whether anything opens between now and the
// horizon. Expressions with only past or "off" rules yield false.
func (e *Evaluator) HasOpenIntervals(now time.Time) bool {
	local := now.In(e.loc)
	return len(e.OpenIntervals(local.Add(-24*time.Hour), local.Add(changeHorizon))) > 0
}
