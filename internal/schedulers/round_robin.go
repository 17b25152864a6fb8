package schedulers

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"scheduling-simulator/internal/core"
)

// scheduleRoundRobin serves a FIFO ready queue, granting each dispatch at
// most opts.Quantum units. Processes that arrive while a slice runs are
// queued ahead of the process that was just preempted.
func scheduleRoundRobin(states []core.RunState, cpu *core.Cpu, opts Options) core.Timeline {
	log := opts.logger()
	timeline := make(core.Timeline, 0)
	order := arrivalOrder(states)
	readyQueue := linkedlistqueue.New()
	queued := make([]bool, len(states))

	// admit enqueues arrived, unfinished processes in arrival order; skip
	// is the index of the process currently off the queue, or -1.
	admit := func(now, skip int) {
		for _, i := range order {
			if i == skip || queued[i] || !states[i].Ready(now) {
				continue
			}
			readyQueue.Enqueue(i)
			queued[i] = true
			log.Debug("process admitted to ready queue", "pid", states[i].ID, "at", now)
		}
	}

	for completed := 0; completed < len(states); {
		admit(cpu.Now(), -1)

		value, ok := readyQueue.Dequeue()
		if !ok {
			idle(states, cpu)
			continue
		}
		i := value.(int)
		queued[i] = false
		process := &states[i]

		slice := min(process.Remaining, opts.Quantum)
		process.Dispatch(cpu.Now())
		start, end := cpu.Execute(slice)
		timeline.Append(process.ID, start, end)
		log.Debug("process dispatched", "pid", process.ID, "start", start, "end", end)

		done := process.Execute(slice, end)

		// arrivals during the slice go first
		admit(end, i)

		if done {
			completed++
			opts.completed(process)
			continue
		}
		// context switch: back to the tail of the queue
		readyQueue.Enqueue(i)
		queued[i] = true
	}
	return timeline
}
