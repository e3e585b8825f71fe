package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// normalized is a request with the zone resolved, defaults applied and
// every invariant checked. All later stages operate on it without further
// validation.
type normalized struct {
	providerID   string
	loc          *time.Location
	hours        BusinessHours
	dateRange    DateRange
	slotLength   time.Duration
	buffer       time.Duration
	appointments []Appointment
	prefs        *Preferences
}

// normalize resolves the provider's zone, applies configured defaults and
// validates the request. It is the only stage that can fail.
func normalize(req Request, defaults Defaults) (*normalized, error) {
	zone := strings.TrimSpace(req.Timezone)
	if zone == "" {
		return nil, fmt.Errorf("%w: zone identifier is empty", ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown zone %q", ErrInvalidTimeZone, zone)
	}

	slotLength := req.SlotLength
	if slotLength == 0 {
		slotLength = defaults.SlotLength
	}
	if slotLength <= 0 {
		return nil, fmt.Errorf("%w: slot length %s must be positive", ErrInvalidDuration, slotLength)
	}

	buffer := defaults.Buffer
	if req.Buffer != nil {
		buffer = *req.Buffer
	}
	if buffer < 0 {
		return nil, fmt.Errorf("%w: buffer %s must not be negative", ErrInvalidDuration, buffer)
	}

	if req.DateRange.Start.after(req.DateRange.End) {
		return nil, fmt.Errorf("%w: date range %s..%s", ErrInvalidInterval, req.DateRange.Start, req.DateRange.End)
	}

	hours, err := normalizeHours(req.BusinessHours)
	if err != nil {
		return nil, err
	}

	for _, appt := range req.Appointments {
		if !appt.Start.Before(appt.End) {
			return nil, fmt.Errorf("%w: appointment %s..%s", ErrInvalidInterval,
				appt.Start.Format(time.RFC3339), appt.End.Format(time.RFC3339))
		}
	}

	if req.Preferences != nil {
		for _, w := range req.Preferences.Times {
			if !w.Start.Before(w.End) {
				return nil, fmt.Errorf("%w: preferred time window %s..%s", ErrInvalidInterval, w.Start, w.End)
			}
		}
	}

	return &normalized{
		providerID:   req.ProviderID,
		loc:          loc,
		hours:        hours,
		dateRange:    req.DateRange,
		slotLength:   slotLength,
		buffer:       buffer,
		appointments: req.Appointments,
		prefs:        req.Preferences,
	}, nil
}

// normalizeHours copies the weekly hours with each day's windows sorted by
// start time, rejecting empty or overlapping windows.
func normalizeHours(hours BusinessHours) (BusinessHours, error) {
	out := make(BusinessHours, len(hours))
	for day, windows := range hours {
		if len(windows) == 0 {
			continue
		}
		sorted := make([]TimeWindow, len(windows))
		copy(sorted, windows)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Start.Before(sorted[j].Start)
		})
		for i, w := range sorted {
			if !w.Start.Before(w.End) {
				return nil, fmt.Errorf("%w: business hours %s %s..%s", ErrInvalidInterval, day, w.Start, w.End)
			}
			if i > 0 && sorted[i-1].End.minutes() > w.Start.minutes() {
				return nil, fmt.Errorf("%w: overlapping business hours on %s", ErrInvalidInterval, day)
			}
		}
		out[day] = sorted
	}
	return out, nil
}
