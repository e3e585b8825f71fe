package scheduler

// generateWindows walks the date range day by day and emits every
// slot-length candidate inside each business-hours window, ordered by start
// time. Candidates within the same window are contiguous: the step is the
// slot length exactly, never slot length plus buffer. The buffer only
// matters against existing appointments, which the conflict stage handles.
func generateWindows(n *normalized) []Slot {
	var out []Slot
	for day := n.dateRange.Start; !day.after(n.dateRange.End); day = day.next() {
		for _, w := range n.hours[day.weekday(n.loc)] {
			open := day.at(w.Start, n.loc)
			closed := day.at(w.End, n.loc)
			for start := open; !start.Add(n.slotLength).After(closed); start = start.Add(n.slotLength) {
				out = append(out, Slot{
					ProviderID: n.providerID,
					Start:      start,
					End:        start.Add(n.slotLength),
				})
			}
		}
	}
	return out
}
