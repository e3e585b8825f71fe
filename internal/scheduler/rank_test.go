package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankFixture builds slots on Mon Feb 3 2025 (morning and afternoon) and
// Tue Feb 4 2025 (morning) in New York.
func rankFixture(t *testing.T) ([]Slot, *time.Location) {
	t.Helper()
	ny := mustZone(t, "America/New_York")
	mk := func(day, hour int) Slot {
		start := time.Date(2025, time.February, day, hour, 0, 0, 0, ny)
		return Slot{ProviderID: "p1", Start: start, End: start.Add(30 * time.Minute)}
	}
	return []Slot{mk(3, 9), mk(3, 14), mk(4, 9), mk(4, 14)}, ny
}

func TestRankTiersDayAndTime(t *testing.T) {
	slots, ny := rankFixture(t)
	prefs := &Preferences{
		Days:  []time.Weekday{time.Tuesday},
		Times: []TimeWindow{window(9, 0, 12, 0)},
	}

	ranked := rank(slots, prefs, ny)
	require.Len(t, ranked, 4)

	// Tue morning matches both, Mon morning and Tue afternoon match one
	// each (ordered by start within the tier), Mon afternoon matches
	// neither.
	assert.Equal(t, 4, ranked[0].Start.Day())
	assert.Equal(t, 9, ranked[0].Start.In(ny).Hour())
	assert.Equal(t, 3, ranked[1].Start.Day())
	assert.Equal(t, 9, ranked[1].Start.In(ny).Hour())
	assert.Equal(t, 4, ranked[2].Start.Day())
	assert.Equal(t, 14, ranked[2].Start.In(ny).Hour())
	assert.Equal(t, 3, ranked[3].Start.Day())
	assert.Equal(t, 14, ranked[3].Start.In(ny).Hour())
}

func TestRankDaysOnly(t *testing.T) {
	slots, ny := rankFixture(t)
	prefs := &Preferences{Days: []time.Weekday{time.Tuesday}}

	ranked := rank(slots, prefs, ny)
	assert.Equal(t, 4, ranked[0].Start.Day())
	assert.Equal(t, 4, ranked[1].Start.Day())
	assert.Equal(t, 3, ranked[2].Start.Day())
	assert.Equal(t, 3, ranked[3].Start.Day())
}

func TestRankTimesOnly(t *testing.T) {
	slots, ny := rankFixture(t)
	prefs := &Preferences{Times: []TimeWindow{window(13, 0, 17, 0)}}

	ranked := rank(slots, prefs, ny)
	assert.Equal(t, 14, ranked[0].Start.In(ny).Hour())
	assert.Equal(t, 14, ranked[1].Start.In(ny).Hour())
	assert.True(t, ranked[0].Start.Before(ranked[1].Start), "within a tier order is earliest first")
	assert.Equal(t, 9, ranked[2].Start.In(ny).Hour())
	assert.Equal(t, 9, ranked[3].Start.In(ny).Hour())
}

func TestRankWithoutPreferencesKeepsChronology(t *testing.T) {
	slots, ny := rankFixture(t)
	original := make([]Slot, len(slots))
	copy(original, slots)

	assert.Equal(t, original, rank(slots, nil, ny))
	assert.Equal(t, original, rank(slots, &Preferences{}, ny))
}

func TestTierEvaluatesInProviderZone(t *testing.T) {
	ny := mustZone(t, "America/New_York")
	// 01:00 UTC on Feb 4 is still Mon Feb 3 evening in New York.
	start := time.Date(2025, time.February, 4, 1, 0, 0, 0, time.UTC)
	slot := Slot{Start: start, End: start.Add(30 * time.Minute)}

	prefs := &Preferences{Days: []time.Weekday{time.Monday}}
	assert.Equal(t, tierBothMatch, tier(slot, prefs, ny))

	prefs = &Preferences{Days: []time.Weekday{time.Tuesday}}
	assert.Equal(t, tierOneMatch, tier(slot, prefs, ny))
}
