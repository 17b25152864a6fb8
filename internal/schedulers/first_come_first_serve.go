package schedulers

import (
	"scheduling-simulator/internal/core"
)

// scheduleFirstComeFirstServe runs every process to completion in arrival
// order. Each process yields exactly one interval.
func scheduleFirstComeFirstServe(states []core.RunState, cpu *core.Cpu, opts Options) core.Timeline {
	log := opts.logger()
	timeline := make(core.Timeline, 0, len(states))

	// sort jobs by arrival time
	for _, i := range arrivalOrder(states) {
		process := &states[i]

		// cpu stays idle until the process arrives
		cpu.IdleUntil(process.Arrival)

		process.Dispatch(cpu.Now())
		burst := process.Remaining
		start, end := cpu.Execute(burst)
		timeline.Append(process.ID, start, end)
		log.Debug("process dispatched", "pid", process.ID, "start", start, "end", end)

		if process.Execute(burst, end) {
			opts.completed(process)
		}
	}
	return timeline
}
