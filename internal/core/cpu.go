package core

// CpuMetric summarises how the simulated CPU spent a run, in clock units.
type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
}

// Utilization is the busy share of TotalTime.
func (m CpuMetric) Utilization() float64 {
	if m.TotalTime == 0 {
		return 0
	}
	return float64(m.UtilizationTime) / float64(m.TotalTime)
}

// Throughput is the number of completed processes per clock unit.
func (m CpuMetric) Throughput(processCount int) float64 {
	if m.TotalTime == 0 {
		return 0
	}
	return float64(processCount) / float64(m.TotalTime)
}

// Cpu is the single simulated processor. It owns the authoritative clock,
// which starts at 0 and only moves forward.
type Cpu struct {
	clock int
	busy  int
	idle  int
}

func NewCpu() *Cpu {
	return &Cpu{}
}

func (c *Cpu) Now() int { return c.clock }

// Execute occupies the CPU for units and returns the covered [start, end).
func (c *Cpu) Execute(units int) (start, end int) {
	start = c.clock
	c.clock += units
	c.busy += units
	return start, c.clock
}

// IdleTick advances the clock by one unit with nothing running.
func (c *Cpu) IdleTick() {
	c.clock++
	c.idle++
}

// IdleUntil moves the clock forward to t, counting the gap as idle.
func (c *Cpu) IdleUntil(t int) {
	if t > c.clock {
		c.idle += t - c.clock
		c.clock = t
	}
}

func (c *Cpu) Metric() CpuMetric {
	return CpuMetric{
		TotalTime:       c.clock,
		UtilizationTime: c.busy,
		IdleTime:        c.idle,
	}
}

// PickReady returns the index of the ready process with the smallest key at
// clock value now, or -1 if none is ready. The scan runs in registry order
// and only a strictly smaller key replaces the current candidate, so the
// lowest index wins among equal keys.
func PickReady(states []RunState, now int, key func(*RunState) int) int {
	picked := -1
	best := 0
	for i := range states {
		s := &states[i]
		if !s.Ready(now) {
			continue
		}
		if k := key(s); picked == -1 || k < best {
			picked, best = i, k
		}
	}
	return picked
}

// NextArrival returns the earliest arrival among processes that have not
// completed, or false when every process is done.
func NextArrival(states []RunState) (int, bool) {
	next, found := 0, false
	for i := range states {
		s := &states[i]
		if s.Completed {
			continue
		}
		if !found || s.Arrival < next {
			next, found = s.Arrival, true
		}
	}
	return next, found
}
