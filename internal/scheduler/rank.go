package scheduler

import (
	"sort"
	"time"
)

// Preference tiers, highest first. A dimension the caller left empty counts
// as matched, so a days-only preference still splits candidates into two
// tiers with the preferred days first.
const (
	tierBothMatch = iota
	tierOneMatch
	tierNoMatch
)

// rank orders slots by (preference tier, start time) compared
// lexicographically. Without preferences every slot is tier-equal and the
// order reduces to earliest-start-first, which is how the candidates
// already arrive from generation.
func rank(slots []Slot, prefs *Preferences, loc *time.Location) []Slot {
	if prefs.empty() {
		return slots
	}
	sort.SliceStable(slots, func(i, j int) bool {
		ti, tj := tier(slots[i], prefs, loc), tier(slots[j], prefs, loc)
		if ti != tj {
			return ti < tj
		}
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

func tier(slot Slot, prefs *Preferences, loc *time.Location) int {
	local := slot.Start.In(loc)

	dayMatch := len(prefs.Days) == 0
	for _, d := range prefs.Days {
		if local.Weekday() == d {
			dayMatch = true
			break
		}
	}

	start := TimeOfDay{Hour: local.Hour(), Minute: local.Minute()}
	timeMatch := len(prefs.Times) == 0
	for _, w := range prefs.Times {
		if w.Contains(start) {
			timeMatch = true
			break
		}
	}

	switch {
	case dayMatch && timeMatch:
		return tierBothMatch
	case dayMatch || timeMatch:
		return tierOneMatch
	default:
		return tierNoMatch
	}
}
