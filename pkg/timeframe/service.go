// Package timeframe owns the dashboard's calendar math: resolving a chosen
// period into a date range, strict timestamp parsing, listing the selectable
// periods for a data range and the bucket-start helpers used when grouping
// consumption by day, week, month or year.
package timeframe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadTimestamp reports a timestamp string that does not match
// TimestampLayout. Callers must not confuse this with an empty query result.
var ErrBadTimestamp = errors.New("timestamp not in YYYY-MM-DD HH:MM:SS format")

// Resolve computes the inclusive start and end dates for a selected period.
// A missing unit or value means nothing is selected yet and yields two empty
// strings with no error. Values are expected to come from PeriodOptions;
// an unparsable month or week value is surfaced as an error.
func Resolve(unit, value string) (string, string, error) {
	if unit == "" || value == "" {
		return "", "", nil
	}
	switch unit {
	case UnitYear:
		return value + "-01-01", value + "-12-31", nil
	case UnitMonth:
		monthStart, err := time.ParseInLocation(MonthLayout, value, time.UTC)
		if err != nil {
			return "", "", fmt.Errorf("bad month value %q: %w", value, err)
		}
		// Day 0 of the next month is the last day of this one.
		monthEnd := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return monthStart.Format(DateLayout), monthEnd.Format(DateLayout), nil
	case UnitWeek:
		weekStart, err := time.ParseInLocation(DateLayout, value, time.UTC)
		if err != nil {
			return "", "", fmt.Errorf("bad week value %q: %w", value, err)
		}
		return value, weekStart.AddDate(0, 0, 6).Format(DateLayout), nil
	default:
		// Day selection: a single date.
		return value, value, nil
	}
}

// ParseTimestamp converts a strict "YYYY-MM-DD HH:MM:SS" string to a Unix
// timestamp, interpreted as UTC.
func ParseTimestamp(s string) (int64, error) {
	t, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
	}
	return t.Unix(), nil
}

// FormatTimestamp renders a Unix timestamp as a UTC "YYYY-MM-DD HH:MM:SS"
// string, the inverse of ParseTimestamp.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(TimestampLayout)
}

// DayStart returns the start of the UTC calendar day containing t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the start of the week containing t. Weeks start Monday.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// YearStart returns January 1st of the year containing t.
func YearStart(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
}

// SamplingStep returns the row-thinning step for a date range: every row up
// to a week, then 10 more per elapsed week. Daily peaks are collected
// separately by the sampler, so thinning never drops a daily maximum.
func SamplingStep(startDate, endDate string) (int, error) {
	start, err := time.ParseInLocation(DateLayout, startDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("bad start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(DateLayout, endDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("bad end date %q: %w", endDate, err)
	}
	diffDays := int(end.Sub(start).Hours() / 24)
	if diffDays < 0 {
		diffDays = 0
	}
	step := 10 * (diffDays / 7)
	if step < 1 {
		step = 1
	}
	return step, nil
}

// PeriodOptions enumerates the selectable year, month, week and day values
// between two dates, inclusive. Empty or unparsable bounds yield empty
// lists for every unit.
func PeriodOptions(minDate, maxDate string) map[string][]PeriodOption {
	empty := map[string][]PeriodOption{
		UnitYear: {}, UnitMonth: {}, UnitWeek: {}, UnitDay: {},
	}
	if minDate == "" || maxDate == "" {
		return empty
	}
	start, err := time.ParseInLocation(DateLayout, minDate, time.UTC)
	if err != nil {
		return empty
	}
	end, err := time.ParseInLocation(DateLayout, maxDate, time.UTC)
	if err != nil || end.Before(start) {
		return empty
	}

	var years, months, weeks, days []PeriodOption
	for y := start.Year(); y <= end.Year(); y++ {
		v := strconv.Itoa(y)
		years = append(years, PeriodOption{Label: v, Value: v})
	}
	for m := MonthStart(start); !m.After(end); m = m.AddDate(0, 1, 0) {
		v := m.Format(MonthLayout)
		months = append(months, PeriodOption{Label: v, Value: v})
	}
	for w := WeekStart(start); !w.After(end); w = w.AddDate(0, 0, 7) {
		v := w.Format(DateLayout)
		weeks = append(weeks, PeriodOption{Label: v, Value: v})
	}
	for d := DayStart(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		v := d.Format(DateLayout)
		days = append(days, PeriodOption{Label: v, Value: v})
	}
	return map[string][]PeriodOption{
		UnitYear:  years,
		UnitMonth: months,
		UnitWeek:  weeks,
		UnitDay:   days,
	}
}
