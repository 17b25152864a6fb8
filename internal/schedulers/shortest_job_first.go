package schedulers

import (
	"scheduling-simulator/internal/core"
)

// scheduleShortestJobFirst is the preemptive variant (shortest remaining
// time first): a newly arrived job with strictly less remaining work takes
// the CPU at the next tick.
func scheduleShortestJobFirst(states []core.RunState, cpu *core.Cpu, opts Options) core.Timeline {
	return schedulePreemptive(states, cpu, opts, remainingTime)
}

func remainingTime(s *core.RunState) int { return s.Remaining }
