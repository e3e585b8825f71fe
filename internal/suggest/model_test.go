package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/scheduler/internal/scheduler"
)

func intPtr(v int) *int { return &v }

func validAvailability() *Availability {
	return &Availability{
		ProviderID: "dr-1",
		Timezone:   "America/New_York",
		BusinessHours: map[string][]TimeRange{
			"monday": {{Start: "09:00", End: "17:00"}},
			"tue":    {{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}},
		},
		DateRange: DateRange{Start: "2025-02-03", End: "2025-02-10"},
		ExistingAppointments: []ExistingAppointment{
			{Start: "2025-02-03T10:00:00-05:00", End: "2025-02-03T10:30:00-05:00"},
		},
		PreferredDays:  []string{"Monday", "wed"},
		PreferredTimes: []TimeRange{{Start: "09:00", End: "12:00"}},
	}
}

func TestToRequest(t *testing.T) {
	req, err := validAvailability().ToRequest()
	require.NoError(t, err)

	assert.Equal(t, "dr-1", req.ProviderID)
	assert.Equal(t, "America/New_York", req.Timezone)
	assert.Zero(t, req.SlotLength, "absent slot length defers to engine default")
	assert.Nil(t, req.Buffer, "absent buffer defers to engine default")

	require.Len(t, req.BusinessHours[time.Monday], 1)
	require.Len(t, req.BusinessHours[time.Tuesday], 2)
	assert.Equal(t, scheduler.TimeOfDay{Hour: 9}, req.BusinessHours[time.Monday][0].Start)

	assert.Equal(t, scheduler.Date{Year: 2025, Month: time.February, Day: 3}, req.DateRange.Start)
	require.Len(t, req.Appointments, 1)
	assert.True(t, req.Appointments[0].End.Sub(req.Appointments[0].Start) == 30*time.Minute)

	require.NotNil(t, req.Preferences)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, req.Preferences.Days)
	require.Len(t, req.Preferences.Times, 1)
}

func TestToRequestOverrides(t *testing.T) {
	avail := validAvailability()
	avail.SlotLengthMinutes = intPtr(45)
	avail.BufferMinutes = intPtr(0)

	req, err := avail.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, req.SlotLength)
	require.NotNil(t, req.Buffer)
	assert.Equal(t, time.Duration(0), *req.Buffer)
}

func TestToRequestRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Availability)
	}{
		{"unknown weekday", func(a *Availability) {
			a.BusinessHours = map[string][]TimeRange{"funday": {{Start: "09:00", End: "17:00"}}}
		}},
		{"bad time format", func(a *Availability) {
			a.BusinessHours = map[string][]TimeRange{"monday": {{Start: "9am", End: "5pm"}}}
		}},
		{"bad date format", func(a *Availability) {
			a.DateRange = DateRange{Start: "02/03/2025", End: "2025-02-10"}
		}},
		{"bad appointment datetime", func(a *Availability) {
			a.ExistingAppointments = []ExistingAppointment{{Start: "yesterday", End: "2025-02-03T10:30:00-05:00"}}
		}},
		{"zero slot length", func(a *Availability) {
			a.SlotLengthMinutes = intPtr(0)
		}},
		{"negative buffer", func(a *Availability) {
			a.BufferMinutes = intPtr(-5)
		}},
		{"unknown preferred day", func(a *Availability) {
			a.PreferredDays = []string{"someday"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avail := validAvailability()
			tt.mutate(avail)
			_, err := avail.ToRequest()
			require.Error(t, err)
		})
	}
}

func TestToRequestDurationErrorsUseEngineTaxonomy(t *testing.T) {
	avail := validAvailability()
	avail.SlotLengthMinutes = intPtr(-30)
	_, err := avail.ToRequest()
	require.ErrorIs(t, err, scheduler.ErrInvalidDuration)

	avail = validAvailability()
	avail.BufferMinutes = intPtr(-1)
	_, err = avail.ToRequest()
	require.ErrorIs(t, err, scheduler.ErrInvalidDuration)
}
