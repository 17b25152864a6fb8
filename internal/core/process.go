package core

// ProcessID identifies a process inside one registry. IDs start at 1.
type ProcessID int

// ProcessSpec is the immutable template of a process as it was defined.
type ProcessSpec struct {
	ID       ProcessID `json:"id"`
	Arrival  int       `json:"arrival"`
	Burst    int       `json:"burst"`
	Priority int       `json:"priority"` // lower number = higher priority
}

// RunState is the mutable projection of a ProcessSpec for a single
// simulation run.
type RunState struct {
	ProcessSpec
	Remaining      int
	Completed      bool
	StartTime      int // first dispatch, -1 until the process gets the CPU
	CompletionTime int
	WaitingTime    int
	TurnaroundTime int
}

// Metrics is the per-process outcome of a finished run.
type Metrics struct {
	ID             ProcessID `json:"id"`
	Arrival        int       `json:"arrival"`
	Burst          int       `json:"burst"`
	Priority       int       `json:"priority"`
	StartTime      int       `json:"start_time"`
	CompletionTime int       `json:"completion_time"`
	TurnaroundTime int       `json:"turnaround_time"`
	WaitingTime    int       `json:"waiting_time"`
	ResponseTime   int       `json:"response_time"`
}

// NewRunState returns the initial run state of spec.
func NewRunState(spec ProcessSpec) RunState {
	return RunState{
		ProcessSpec: spec,
		Remaining:   spec.Burst,
		StartTime:   -1,
	}
}

// NewRunStates builds fresh run states for specs, keeping their order.
func NewRunStates(specs []ProcessSpec) []RunState {
	states := make([]RunState, len(specs))
	for i, spec := range specs {
		states[i] = NewRunState(spec)
	}
	return states
}

// Ready reports whether the process can be picked at clock value now.
func (s *RunState) Ready(now int) bool {
	return !s.Completed && s.Arrival <= now
}

// Dispatch records the first time the process gets the CPU.
func (s *RunState) Dispatch(now int) {
	if s.StartTime < 0 {
		s.StartTime = now
	}
}

// Execute consumes units of remaining burst ending at clock value end and
// reports whether the process completed with this slice.
func (s *RunState) Execute(units, end int) bool {
	s.Remaining -= units
	if s.Remaining == 0 && !s.Completed {
		s.Completed = true
		s.CompletionTime = end
		return true
	}
	return false
}
