package scheduler

import "errors"

// Validation failures surfaced to the caller. An empty result is not an
// error; a fully booked range yields a nil error and zero slots.
var (
	// ErrInvalidTimeZone means the request's zone identifier does not
	// resolve to a known IANA zone.
	ErrInvalidTimeZone = errors.New("scheduler: invalid time zone")

	// ErrInvalidInterval means a business-hours window, the date range, an
	// existing appointment or a preferred time window has start >= end, or
	// business-hours windows on the same day overlap.
	ErrInvalidInterval = errors.New("scheduler: invalid interval")

	// ErrInvalidDuration means the slot length is not positive or the
	// buffer is negative.
	ErrInvalidDuration = errors.New("scheduler: invalid duration")
)
