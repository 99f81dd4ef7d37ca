package collection

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // zone data for hosts without /usr/share/zoneinfo
)

// DefaultTimeZone pins all pickup arithmetic to the NYC civil calendar.
const DefaultTimeZone = "America/New_York"

const daysPerWeek = 7

// ErrEmptySchedule means no collection day is known for the requested refuse type.
var ErrEmptySchedule = errors.New("collection schedule is empty")

// NextOccurrence is the closest scheduled day counting today.
type NextOccurrence struct {
	Day       time.Weekday
	DaysUntil int // 0 is today, never above 6
}

// IsToday reports whether the pickup is on the reference day.
func (n NextOccurrence) IsToday() bool { return n.DaysUntil == 0 }

// IsTomorrow reports whether the pickup is the day after the reference day.
func (n NextOccurrence) IsTomorrow() bool { return n.DaysUntil == 1 }

// DaysUntil returns how many days forward from reference the target weekday is.
func DaysUntil(target, reference time.Weekday) int {
	if target >= reference {
		return int(target - reference)
	}
	return daysPerWeek + int(target) - int(reference)
}

// NextOccurrenceOf picks the scheduled day nearest to reference. On ties the
// earlier entry of days wins. days is not modified.
func NextOccurrenceOf(days WeekdaySet, reference time.Weekday) (NextOccurrence, error) {
	if len(days) == 0 {
		return NextOccurrence{}, ErrEmptySchedule
	}

	best := NextOccurrence{Day: days[0], DaysUntil: DaysUntil(days[0], reference)}
	for _, d := range days[1:] {
		if n := DaysUntil(d, reference); n < best.DaysUntil {
			best = NextOccurrence{Day: d, DaysUntil: n}
		}
	}
	return best, nil
}

// Calendar resolves "today" in one fixed zone regardless of the host zone.
type Calendar struct {
	location *time.Location
	now      func() time.Time
}

// NewCalendar loads the named zone. A nil now uses time.Now.
func NewCalendar(zone string, now func() time.Time) (*Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", zone, err)
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{location: loc, now: now}, nil
}

// Location returns the calendar's zone.
func (c *Calendar) Location() *time.Location { return c.location }

// Now returns the current instant in the calendar's zone.
func (c *Calendar) Now() time.Time { return c.now().In(c.location) }

// Today returns the current weekday in the calendar's zone.
func (c *Calendar) Today() time.Weekday { return c.Now().Weekday() }

// Date returns today's date as YYYY-MM-DD in the calendar's zone.
func (c *Calendar) Date() string { return c.Now().Format("2006-01-02") }

// NextOccurrence is NextOccurrenceOf relative to today.
func (c *Calendar) NextOccurrence(days WeekdaySet) (NextOccurrence, error) {
	return NextOccurrenceOf(days, c.Today())
}
