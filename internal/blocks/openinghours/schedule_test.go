package openinghours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moscow(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}

func mustEval(t *testing.T, raw string, loc *time.Location) *Evaluator {
	t.Helper()
	schedule, err := Parse(raw)
	require.NoError(t, err)
	return NewEvaluator(schedule, loc)
}

func TestParseRejectsFreeText(t *testing.T) {
	_, err := Parse("all day long")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestWeekScheduleWithSundaySplit(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Sa 10:00-22:00; Su 10:00-14:00, 18:00-22:00", loc)

	// Thursday late morning.
	now := time.Date(2018, 6, 14, 11, 30, 0, 0, loc)
	assert.True(t, e.IsOpen(now))

	next, ok := e.NextChange(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, 6, 14, 22, 0, 0, 0, loc), next)
	assert.Equal(t, 37800.0, next.Sub(now).Seconds())

	// Saturday follows the weekday spans, Sunday has the split ones.
	assert.Equal(t, []Span{{600, 1320}}, e.DaySpans(2018, time.June, 16))
	assert.Equal(t, []Span{{600, 840}, {1080, 1320}}, e.DaySpans(2018, time.June, 17))
}

func TestWraparoundWeekdayRange(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "We-Mo 11:00-19:00", loc)

	// Tuesday is the only closed day.
	tuesday := time.Date(2018, 6, 12, 11, 30, 0, 0, loc)
	assert.False(t, e.IsOpen(tuesday))
	assert.Nil(t, e.DaySpans(2018, time.June, 12))

	next, ok := e.NextChange(tuesday)
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, 6, 13, 11, 0, 0, 0, loc), next)

	monday := time.Date(2018, 6, 11, 12, 0, 0, 0, loc)
	assert.True(t, e.IsOpen(monday))
}

func TestAlwaysOpen(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "24/7", loc)

	now := time.Date(2018, 6, 14, 11, 30, 0, 0, loc)
	assert.True(t, e.IsOpen(now))
	assert.True(t, e.Is247(now))

	_, ok := e.NextChange(now)
	assert.False(t, ok)
}

func TestContiguousSpansCollapseToAlwaysOpen(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su 00:00-12:00,12:00-24:00", loc)

	now := time.Date(2018, 6, 14, 11, 30, 0, 0, loc)
	assert.True(t, e.IsOpen(now))
	assert.True(t, e.Is247(now))
}

func TestSpanSpillingPastMidnight(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su 09:00-02:00", loc)

	assert.Equal(t, []Span{{540, 1560}}, e.DaySpans(2018, time.June, 14))

	// Open at 01:00 through the previous day's span.
	night := time.Date(2018, 6, 15, 1, 0, 0, 0, loc)
	assert.True(t, e.IsOpen(night))

	next, ok := e.NextChange(night)
	require.True(t, ok)
	assert.Equal(t, time.Date(2018, 6, 15, 2, 0, 0, 0, loc), next)
}

func TestMonthRangeNextSeason(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Jan-Feb 10:00-18:00", loc)

	now := time.Date(2018, 6, 14, 11, 30, 0, 0, loc)
	assert.False(t, e.IsOpen(now))

	next, ok := e.NextChange(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 1, 1, 10, 0, 0, 0, loc), next)

	january := time.Date(2019, 1, 15, 12, 0, 0, 0, loc)
	assert.True(t, e.IsOpen(january))
}

func TestSunTimesFallbackWithoutCoordinates(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su sunrise-sunset", loc)

	assert.Equal(t, []Span{{360, 1080}}, e.DaySpans(2018, time.June, 14))
}

func TestAdditionalRuleAppendsSpans(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su 18:00-22:00, Mo-Fr 11:00-14:00", loc)

	// Weekdays get both span lists, sorted.
	assert.Equal(t, []Span{{660, 840}, {1080, 1320}}, e.DaySpans(2018, time.June, 11))
	// Saturday only matches the first rule.
	assert.Equal(t, []Span{{1080, 1320}}, e.DaySpans(2018, time.June, 16))
}

func TestLaterRuleOverridesMatchedDays(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su 10:00-20:00; Su 12:00-16:00", loc)

	assert.Equal(t, []Span{{600, 1200}}, e.DaySpans(2018, time.June, 16))
	assert.Equal(t, []Span{{720, 960}}, e.DaySpans(2018, time.June, 17))
}

func TestOffRuleRemovesSpans(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Mo-Su 10:00-20:00; Su off", loc)

	assert.Nil(t, e.DaySpans(2018, time.June, 17))
	assert.NotEmpty(t, e.DaySpans(2018, time.June, 16))
}

func TestSeasonalOffNeverOpens(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "Apr 1-Sep 30: off", loc)

	now := time.Date(2018, 6, 14, 11, 30, 0, 0, loc)
	assert.False(t, e.IsOpen(now))
	assert.False(t, e.HasOpenIntervals(now))

	_, ok := e.NextChange(now)
	assert.False(t, ok)
}

func TestAbsoluteDateRangeInThePast(t *testing.T) {
	loc := moscow(t)
	e := mustEval(t, "2018 Jul 02- 2018 Sep 02 10:00-12:00", loc)

	during := time.Date(2018, 8, 1, 11, 0, 0, 0, loc)
	assert.True(t, e.IsOpen(during))

	after := time.Date(2018, 10, 1, 11, 0, 0, 0, loc)
	assert.False(t, e.IsOpen(after))
	assert.False(t, e.HasOpenIntervals(after))
}

func TestHolidaySelectorInWeekdayList(t *testing.T) {
	loc := moscow(t)
	// PH glued to a weekday list is ignored, the weekdays still apply.
	e := mustEval(t, "Mo-Su,PH 19:00-22:30", loc)
	assert.Equal(t, []Span{{1140, 1350}}, e.DaySpans(2018, time.June, 14))
}
