package scheduler

import "time"

// excludeConflicts drops every candidate that intersects any existing
// appointment once the appointment is expanded by the buffer on both
// sides. Ordering of the survivors is preserved.
func excludeConflicts(candidates []Slot, appointments []Appointment, buffer time.Duration) []Slot {
	if len(appointments) == 0 {
		return candidates
	}
	out := candidates[:0:0]
	for _, slot := range candidates {
		if !conflictsAny(slot, appointments, buffer) {
			out = append(out, slot)
		}
	}
	return out
}

func conflictsAny(slot Slot, appointments []Appointment, buffer time.Duration) bool {
	for _, appt := range appointments {
		if conflicts(slot, appt, buffer) {
			return true
		}
	}
	return false
}

// conflicts reports whether the candidate [s, e) intersects the
// buffer-expanded appointment [a-buffer, b+buffer). The buffer protects
// both ends of the appointment symmetrically.
func conflicts(slot Slot, appt Appointment, buffer time.Duration) bool {
	return slot.Start.Before(appt.End.Add(buffer)) && slot.End.After(appt.Start.Add(-buffer))
}
