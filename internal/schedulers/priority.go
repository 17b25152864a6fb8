package schedulers

import (
	"scheduling-simulator/internal/core"
)

// schedulePriority always runs the ready process with the lowest priority
// number. There is no aging, so a low priority process may starve while
// more urgent ones keep arriving.
func schedulePriority(states []core.RunState, cpu *core.Cpu, opts Options) core.Timeline {
	return schedulePreemptive(states, cpu, opts, priorityLevel)
}

func priorityLevel(s *core.RunState) int { return s.Priority }
