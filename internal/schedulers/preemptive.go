package schedulers

import (
	"scheduling-simulator/internal/core"
)

// schedulePreemptive is the per-tick decision loop shared by the preemptive
// policies. Every tick the ready process with the smallest key runs for one
// unit; an empty ready set idles the CPU up to the next arrival and records
// nothing.
func schedulePreemptive(states []core.RunState, cpu *core.Cpu, opts Options, key func(*core.RunState) int) core.Timeline {
	log := opts.logger()
	timeline := make(core.Timeline, 0)
	running := core.ProcessID(0)

	for completed := 0; completed < len(states); {
		picked := core.PickReady(states, cpu.Now(), key)
		if picked == -1 {
			idle(states, cpu)
			running = 0
			continue
		}

		process := &states[picked]
		if process.ID != running {
			log.Debug("process dispatched", "pid", process.ID, "at", cpu.Now(), "remaining", process.Remaining)
			running = process.ID
		}

		process.Dispatch(cpu.Now())
		start, end := cpu.Execute(1)
		timeline.Extend(process.ID, start, end)

		if process.Execute(1, end) {
			completed++
			running = 0
			opts.completed(process)
		}
	}
	return timeline
}

// idle moves the clock to the next arrival. Nothing can become ready
// earlier, so the jump matches ticking one idle unit at a time.
func idle(states []core.RunState, cpu *core.Cpu) {
	if next, ok := core.NextArrival(states); ok && next > cpu.Now() {
		cpu.IdleUntil(next)
		return
	}
	cpu.IdleTick()
}
