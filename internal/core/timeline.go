package core

// Interval is one Gantt entry: PID held the CPU during [Start, End).
type Interval struct {
	PID   ProcessID `json:"pid"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

func (i Interval) Duration() int { return i.End - i.Start }

// Timeline is the ordered record of CPU occupation of one run. Gaps between
// consecutive intervals are idle time.
type Timeline []Interval

// Append records a new interval.
func (t *Timeline) Append(pid ProcessID, start, end int) {
	*t = append(*t, Interval{PID: pid, Start: start, End: end})
}

// Extend grows the last interval when pid keeps the CPU without a gap,
// and opens a new interval otherwise.
func (t *Timeline) Extend(pid ProcessID, start, end int) {
	if n := len(*t); n > 0 {
		last := &(*t)[n-1]
		if last.PID == pid && last.End == start {
			last.End = end
			return
		}
	}
	t.Append(pid, start, end)
}

// Coalesce returns a copy where contiguous intervals of the same process
// are merged. Used for display only.
func (t Timeline) Coalesce() Timeline {
	merged := make(Timeline, 0, len(t))
	for _, iv := range t {
		merged.Extend(iv.PID, iv.Start, iv.End)
	}
	return merged
}

// ContextSwitches counts the points where the CPU passes from one process
// to a different one.
func (t Timeline) ContextSwitches() int {
	switches := 0
	for i := 1; i < len(t); i++ {
		if t[i].PID != t[i-1].PID {
			switches++
		}
	}
	return switches
}

// BusyTime sums the CPU time given to pid.
func (t Timeline) BusyTime(pid ProcessID) int {
	total := 0
	for _, iv := range t {
		if iv.PID == pid {
			total += iv.Duration()
		}
	}
	return total
}

// End is the clock value at which the last interval finishes.
func (t Timeline) End() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}
