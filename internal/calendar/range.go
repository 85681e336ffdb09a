// Package calendar implements the date-range selection used whenever a user
// taps a day on the trip calendar.
package calendar

import (
	"fmt"
	"time"
)

// Range is the start/end pair being picked on the calendar plus the data a
// calendar view needs to highlight it.
// A zero StartsAt or EndsAt means the endpoint is unset.
// When both are set, StartsAt is never after EndsAt.
type Range struct {
	StartsAt time.Time
	EndsAt   time.Time

	// Marked holds every day from StartsAt to EndsAt inclusive, in order.
	// While only StartsAt is set it holds just that day.
	Marked []time.Time

	// Label is "10 to 15 of March" once the range is complete, empty otherwise.
	Label string
}

// Day truncates t to its calendar day at UTC midnight.
// The wall-clock date of t in its own location is kept.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HasStart reports whether a start day has been picked.
func (r Range) HasStart() bool { return !r.StartsAt.IsZero() }

// Complete reports whether both endpoints are set.
func (r Range) Complete() bool { return !r.StartsAt.IsZero() && !r.EndsAt.IsZero() }

// IsMarked reports whether day should be highlighted.
func (r Range) IsMarked(day time.Time) bool {
	d := Day(day)
	for _, m := range r.Marked {
		if m.Equal(d) {
			return true
		}
	}
	return false
}

// Select returns the range that results from tapping day on a calendar
// currently showing r. It never mutates r.
//
// Tapping resets the range to a new start when r has no start, when r is
// already complete, or when day is earlier than the start. Otherwise day
// becomes the end. A one-day range (start == end) is complete, so the next
// tap resets it.
func Select(r Range, day time.Time) Range {
	d := Day(day)
	if !r.HasStart() || r.Complete() || d.Before(r.StartsAt) {
		return Range{StartsAt: d, Marked: []time.Time{d}}
	}
	return Range{
		StartsAt: r.StartsAt,
		EndsAt:   d,
		Marked:   daysBetween(r.StartsAt, d),
		Label:    label(r.StartsAt, d),
	}
}

// FromDates builds the range a user would get by tapping start and then end.
// If end is before start the result is an incomplete range starting at end.
func FromDates(start, end time.Time) Range {
	return Select(Select(Range{}, start), end)
}

func daysBetween(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func label(start, end time.Time) string {
	return fmt.Sprintf("%d to %d of %s", start.Day(), end.Day(), start.Month())
}
