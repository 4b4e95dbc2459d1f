// Package openinghours evaluates OSM opening_hours expressions: rule
// sequences with weekday and month-day selectors, time span lists,
// sunrise/sunset endpoints and "off" rules. Public-holiday selectors
// (PH, SH) are ignored, as no holiday calendar is bundled.
package openinghours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// span is a time range in minutes from local midnight. End may exceed
// 24h when the range spills into the next day. Sunrise/sunset
// endpoints stay symbolic until resolved against a date.
type span struct {
	start, end       int
	startSun, endSun sunEvent
}

type sunEvent int

const (
	sunNone sunEvent = iota
	sunRise
	sunSet
)

type weekdayRange struct {
	// Monday=0 .. Sunday=6; wraparound ranges like We-Mo are valid.
	first, last int
}

type monthdayRange struct {
	startYear, endYear   int // 0 when unspecified
	startMonth, endMonth int // 1..12
	startDay, endDay     int // 0 when unspecified
}

type rule struct {
	additional  bool
	off         bool
	holidayOnly bool
	weekdays    []weekdayRange
	months      []monthdayRange
	spans       []span
}

// Schedule is a parsed opening_hours expression.
type Schedule struct {
	raw   string
	rules []rule
}

func (s *Schedule) Raw() string { return s.raw }

var weekdayIndex = map[string]int{
	"Mo": 0, "Tu": 1, "We": 2, "Th": 3, "Fr": 4, "Sa": 5, "Su": 6,
}

var monthIndex = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

var (
	timeSpanPattern = regexp.MustCompile(`^(\d{1,2}:\d{2}|sunrise|sunset)-(\d{1,2}:\d{2}|sunrise|sunset)$`)
	monthdayPattern = regexp.MustCompile(
		`^(?:(\d{4}) +)?(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)(?: +(\d{1,2}))?` +
			`(?: *- *(?:(\d{4}) +)?(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)(?: +(\d{1,2}))?)?$`)
)

// Parse parses an opening_hours expression. It accepts the subset in
// common use: weekday and month-day selectors, time span lists,
// "24/7", sunrise/sunset and off rules.
func Parse(raw string) (*Schedule, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty opening hours")
	}

	s := &Schedule{raw: raw}
	if trimmed == "24/7" {
		s.rules = []rule{{spans: []span{{start: 0, end: minutesPerDay}}}}
		return s, nil
	}

	for _, group := range strings.Split(trimmed, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		for i, text := range splitRuleTexts(group) {
			r, err := parseRule(text)
			if err != nil {
				return nil, err
			}
			r.additional = i > 0
			s.rules = append(s.rules, r)
		}
	}
	if len(s.rules) == 0 {
		return nil, fmt.Errorf("no rules in %q", raw)
	}
	return s, nil
}

// splitRuleTexts splits one ";"-delimited group on commas that start
// an additional rule. Commas inside a time span list or a selector
// list glue their fragment back onto the current rule.
func splitRuleTexts(group string) []string {
	var texts []string
	for _, fragment := range strings.Split(group, ",") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		switch {
		case len(texts) == 0:
			texts = append(texts, fragment)
		case startsWithTime(fragment):
			// Continuation of the current time span list.
			texts[len(texts)-1] += " " + fragment
		case !containsTimeOrOff(texts[len(texts)-1]):
			// The current rule is still selector-only, so the comma
			// belonged to its selector list.
			texts[len(texts)-1] += "," + fragment
		default:
			texts = append(texts, fragment)
		}
	}
	return texts
}

func startsWithTime(fragment string) bool {
	token := strings.Fields(fragment)[0]
	return timeSpanPattern.MatchString(token)
}

func containsTimeOrOff(text string) bool {
	for _, token := range strings.Fields(text) {
		token = strings.TrimSuffix(token, ":")
		if timeSpanPattern.MatchString(token) || token == "off" || token == "closed" {
			return true
		}
	}
	return false
}

func parseRule(text string) (rule, error) {
	var r rule
	var monthTokens []string
	sawTime := false

	flushMonths := func() error {
		if len(monthTokens) == 0 {
			return nil
		}
		md, err := parseMonthdayRange(strings.Join(monthTokens, " "))
		if err != nil {
			return err
		}
		r.months = append(r.months, md)
		monthTokens = nil
		return nil
	}

	for _, token := range strings.Fields(text) {
		token = strings.TrimSuffix(token, ":")
		switch {
		case token == "off" || token == "closed":
			r.off = true
		case timeSpanPattern.MatchString(token):
			if err := flushMonths(); err != nil {
				return r, err
			}
			sp, err := parseTimeSpan(token)
			if err != nil {
				return r, err
			}
			r.spans = append(r.spans, sp)
			sawTime = true
		case isWeekdayToken(token):
			if err := flushMonths(); err != nil {
				return r, err
			}
			holidayOnly, err := parseWeekdayList(token, &r)
			if err != nil {
				return r, err
			}
			r.holidayOnly = holidayOnly
		case isMonthdayToken(token):
			monthTokens = append(monthTokens, token)
		default:
			return r, fmt.Errorf("unsupported token %q", token)
		}
	}
	if err := flushMonths(); err != nil {
		return r, err
	}
	if !sawTime && !r.off && len(r.spans) == 0 {
		return r, fmt.Errorf("rule %q has no time spans", text)
	}
	return r, nil
}

func isWeekdayToken(token string) bool {
	head := token
	if i := strings.IndexAny(token, "-,"); i > 0 {
		head = token[:i]
	}
	if _, ok := weekdayIndex[head]; ok {
		return true
	}
	return head == "PH" || head == "SH"
}

// isMonthdayToken reports whether a token can belong to a month-day
// selector: a month name, a year, a day number, possibly glued to a
// range dash.
func isMonthdayToken(token string) bool {
	for _, part := range strings.Split(token, "-") {
		if part == "" {
			continue
		}
		if _, ok := monthIndex[part]; ok {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil && n >= 1 && n <= 9999 {
			continue
		}
		return false
	}
	return token != "" && token != "-"
}

// parseWeekdayList parses "Mo-Sa", "We-Mo", "Mo,We,Fr" or "Mo-Su,PH".
// It returns true when the list holds holiday selectors only.
func parseWeekdayList(token string, r *rule) (bool, error) {
	sawHoliday, sawWeekday := false, false
	for _, item := range strings.Split(token, ",") {
		if item == "PH" || item == "SH" {
			sawHoliday = true
			continue
		}
		first, last := item, item
		if i := strings.Index(item, "-"); i > 0 {
			first, last = item[:i], item[i+1:]
		}
		firstIdx, ok := weekdayIndex[first]
		if !ok {
			return false, fmt.Errorf("unknown weekday %q", first)
		}
		lastIdx, ok := weekdayIndex[last]
		if !ok {
			return false, fmt.Errorf("unknown weekday %q", last)
		}
		r.weekdays = append(r.weekdays, weekdayRange{first: firstIdx, last: lastIdx})
		sawWeekday = true
	}
	return sawHoliday && !sawWeekday, nil
}

func parseMonthdayRange(text string) (monthdayRange, error) {
	match := monthdayPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return monthdayRange{}, fmt.Errorf("unsupported month selector %q", text)
	}
	var md monthdayRange
	md.startYear = atoiDefault(match[1])
	md.startMonth = monthIndex[match[2]]
	md.startDay = atoiDefault(match[3])
	if match[5] != "" {
		md.endYear = atoiDefault(match[4])
		md.endMonth = monthIndex[match[5]]
		md.endDay = atoiDefault(match[6])
	} else {
		md.endYear = md.startYear
		md.endMonth = md.startMonth
		md.endDay = md.startDay
	}
	return md, nil
}

func atoiDefault(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func parseTimeSpan(token string) (span, error) {
	match := timeSpanPattern.FindStringSubmatch(token)
	var sp span
	var err error
	sp.start, sp.startSun, err = parseTimePoint(match[1])
	if err != nil {
		return sp, err
	}
	sp.end, sp.endSun, err = parseTimePoint(match[2])
	if err != nil {
		return sp, err
	}
	return sp, nil
}

func parseTimePoint(text string) (int, sunEvent, error) {
	switch text {
	case "sunrise":
		return 0, sunRise, nil
	case "sunset":
		return 0, sunSet, nil
	}
	parts := strings.SplitN(text, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours > 24 {
		return 0, sunNone, fmt.Errorf("invalid time %q", text)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes > 59 {
		return 0, sunNone, fmt.Errorf("invalid time %q", text)
	}
	return hours*60 + minutes, sunNone, nil
}
