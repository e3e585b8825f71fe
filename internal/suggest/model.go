// Package suggest exposes the slot suggestion API: the wire schema, the
// availability-text parser and per-slot explanation collaborators, and the
// HTTP handler that ties them to the scheduling engine.
package suggest

import (
	"fmt"
	"strings"
	"time"

	"github.com/slotwise/scheduler/internal/scheduler"
)

// TimeRange is a wall-clock range in "HH:MM" form.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DateRange is an inclusive "YYYY-MM-DD" range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ExistingAppointment is an already-booked interval, RFC 3339 datetimes.
type ExistingAppointment struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability is the normalized scheduling input, either supplied directly
// by the caller or produced by the availability-text parser.
type Availability struct {
	ProviderID           string                 `json:"provider_id"`
	Timezone             string                 `json:"timezone"`
	SlotLengthMinutes    *int                   `json:"slot_length_minutes,omitempty"`
	BufferMinutes        *int                   `json:"buffer_minutes,omitempty"`
	BusinessHours        map[string][]TimeRange `json:"business_hours"`
	DateRange            DateRange              `json:"date_range"`
	ExistingAppointments []ExistingAppointment  `json:"existing_appointments,omitempty"`
	PreferredDays        []string               `json:"preferred_days,omitempty"`
	PreferredTimes       []TimeRange            `json:"preferred_times,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("suggest: unknown weekday %q", s)
	}
	return day, nil
}

func parseTimeWindow(r TimeRange) (scheduler.TimeWindow, error) {
	start, err := scheduler.ParseTimeOfDay(r.Start)
	if err != nil {
		return scheduler.TimeWindow{}, err
	}
	end, err := scheduler.ParseTimeOfDay(r.End)
	if err != nil {
		return scheduler.TimeWindow{}, err
	}
	return scheduler.TimeWindow{Start: start, End: end}, nil
}

// ToRequest converts the wire schema into an engine request. All field
// format problems surface here, before the engine runs.
func (a *Availability) ToRequest() (scheduler.Request, error) {
	req := scheduler.Request{
		ProviderID: a.ProviderID,
		Timezone:   a.Timezone,
	}

	if a.SlotLengthMinutes != nil {
		if *a.SlotLengthMinutes <= 0 {
			return scheduler.Request{}, fmt.Errorf("%w: slot_length_minutes must be positive", scheduler.ErrInvalidDuration)
		}
		req.SlotLength = time.Duration(*a.SlotLengthMinutes) * time.Minute
	}
	if a.BufferMinutes != nil {
		buffer := time.Duration(*a.BufferMinutes) * time.Minute
		if buffer < 0 {
			return scheduler.Request{}, fmt.Errorf("%w: buffer_minutes must not be negative", scheduler.ErrInvalidDuration)
		}
		req.Buffer = &buffer
	}

	hours := make(scheduler.BusinessHours, len(a.BusinessHours))
	for dayName, ranges := range a.BusinessHours {
		day, err := parseWeekday(dayName)
		if err != nil {
			return scheduler.Request{}, err
		}
		for _, r := range ranges {
			w, err := parseTimeWindow(r)
			if err != nil {
				return scheduler.Request{}, err
			}
			hours[day] = append(hours[day], w)
		}
	}
	req.BusinessHours = hours

	start, err := scheduler.ParseDate(a.DateRange.Start)
	if err != nil {
		return scheduler.Request{}, err
	}
	end, err := scheduler.ParseDate(a.DateRange.End)
	if err != nil {
		return scheduler.Request{}, err
	}
	req.DateRange = scheduler.DateRange{Start: start, End: end}

	for _, appt := range a.ExistingAppointments {
		s, err := time.Parse(time.RFC3339, appt.Start)
		if err != nil {
			return scheduler.Request{}, fmt.Errorf("suggest: parse appointment start %q: %w", appt.Start, err)
		}
		e, err := time.Parse(time.RFC3339, appt.End)
		if err != nil {
			return scheduler.Request{}, fmt.Errorf("suggest: parse appointment end %q: %w", appt.End, err)
		}
		req.Appointments = append(req.Appointments, scheduler.Appointment{Start: s, End: e})
	}

	if len(a.PreferredDays) > 0 || len(a.PreferredTimes) > 0 {
		prefs := &scheduler.Preferences{}
		for _, name := range a.PreferredDays {
			day, err := parseWeekday(name)
			if err != nil {
				return scheduler.Request{}, err
			}
			prefs.Days = append(prefs.Days, day)
		}
		for _, r := range a.PreferredTimes {
			w, err := parseTimeWindow(r)
			if err != nil {
				return scheduler.Request{}, err
			}
			prefs.Times = append(prefs.Times, w)
		}
		req.Preferences = prefs
	}

	return req, nil
}

// SuggestRequest is the POST /suggest body. Exactly one of the two fields
// must be set.
type SuggestRequest struct {
	AvailabilityText       string        `json:"availability_text,omitempty"`
	StructuredAvailability *Availability `json:"structured_availability,omitempty"`
}

// SuggestedSlot is one returned candidate. Explanation is best-effort and
// may be empty when the explanation collaborator is unavailable.
type SuggestedSlot struct {
	ProviderID  string `json:"provider_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Explanation string `json:"explanation,omitempty"`
}

// SuggestResponse carries up to five ranked slots plus the availability the
// engine actually used (for debugging parsed free text).
type SuggestResponse struct {
	Slots            []SuggestedSlot `json:"slots"`
	AvailabilityUsed *Availability   `json:"availability_used,omitempty"`
}
