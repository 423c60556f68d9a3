package timeslot

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for booking dates.
const DateFormat = "2006-01-02"

// rangeSeparator joins the two halves of the wire format "HH:MM - HH:MM".
const rangeSeparator = " - "

// TimeOfDay is a clock time without a date, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", value, err)
	}

	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes() < other.minutes()
}

// At anchors the clock time on the given calendar date, in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Range is a validated start/end pair within one day. It replaces the
// free-text "HH:MM - HH:MM" strings of the storage format; ordering is
// enforced at parse time.
type Range struct {
	Start TimeOfDay
	End   TimeOfDay
}

func ParseRange(value string) (Range, error) {
	parts := strings.Split(value, rangeSeparator)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("parse time range %q: expected format \"HH:MM - HH:MM\"", value)
	}

	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return Range{}, fmt.Errorf("parse time range %q: %w", value, err)
	}

	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return Range{}, fmt.Errorf("parse time range %q: %w", value, err)
	}

	if !start.Before(end) {
		return Range{}, fmt.Errorf("parse time range %q: start must be before end", value)
	}

	return Range{Start: start, End: end}, nil
}

func (r Range) String() string {
	return r.Start.String() + rangeSeparator + r.End.String()
}

// ParseDate parses a YYYY-MM-DD date in the given location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: expected format YYYY-MM-DD", value)
	}

	return date, nil
}

// WeekdayKey returns the lowercase weekday name used as the schedule day key.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// StartOfDay truncates to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsPastDate reports whether date falls before today's start of day.
func IsPastDate(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now))
}

// IsPastSlot reports whether a slot starting at start on date has already
// elapsed: any slot on a past date is past, and on today's date a slot is
// past once its start time has gone by.
func IsPastSlot(date time.Time, start TimeOfDay, now time.Time) bool {
	if IsPastDate(date, now) {
		return true
	}
	if !SameDay(date, now) {
		return false
	}
	return start.At(now).Before(now)
}
