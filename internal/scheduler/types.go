// Package scheduler implements the deterministic slot computation engine:
// timezone-aware window generation, conflict exclusion with buffer
// semantics, preference-based ranking and top-N selection. The engine is a
// pure computation over a caller-supplied request; it holds no state
// between calls.
package scheduler

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time within a single day, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("scheduler: parse time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.minutes() < o.minutes()
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// TimeWindow is a half-open wall-clock interval [Start, End) within a day.
type TimeWindow struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether the given time of day falls inside the window.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// BusinessHours maps each weekday to the provider's open intervals on that
// day, expressed in the provider's local time zone. A weekday with no entry
// (or an empty list) is closed.
type BusinessHours map[time.Weekday][]TimeWindow

// Date is a civil calendar date, independent of any time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("scheduler: parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// at materializes the wall-clock time on this date in the given zone. The
// conversion is zone-aware, so DST transition days resolve to the correct
// absolute instants.
func (d Date) at(t TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

// weekday returns the day of week this date falls on in the given zone.
// Noon is used as the anchor because some zones skip midnight on DST days.
func (d Date) weekday(loc *time.Location) time.Weekday {
	return d.at(TimeOfDay{Hour: 12}, loc).Weekday()
}

func (d Date) next() Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) after(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

// DateRange is an inclusive range of calendar dates in the provider's zone.
type DateRange struct {
	Start Date
	End   Date
}

// Appointment is an already-booked interval [Start, End) in absolute time.
// Appointments are supplied wholesale by the caller per request; the engine
// never mutates or persists them.
type Appointment struct {
	Start time.Time
	End   time.Time
}

// Preferences narrows which candidate slots rank highest. An empty
// dimension places no constraint on that dimension.
type Preferences struct {
	Days  []time.Weekday
	Times []TimeWindow
}

func (p *Preferences) empty() bool {
	return p == nil || (len(p.Days) == 0 && len(p.Times) == 0)
}

// Request carries everything needed for one slot computation.
type Request struct {
	ProviderID    string
	Timezone      string // IANA zone identifier, e.g. "America/New_York"
	BusinessHours BusinessHours
	DateRange     DateRange
	SlotLength    time.Duration  // zero means use the engine default
	Buffer        *time.Duration // nil means use the engine default
	Appointments  []Appointment
	Preferences   *Preferences // nil means no preference
}

// Slot is a candidate appointment window. End is always Start plus the
// request's slot length.
type Slot struct {
	ProviderID string
	Start      time.Time
	End        time.Time
}
