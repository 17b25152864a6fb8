package schedulers

import (
	"scheduling-simulator/internal/core"
)

// Advice is the guidance shown next to a comparison. It is never used to
// pick a policy.
var Advice = []string{
	"The algorithm with the lowest average waiting time is generally the most efficient for the given workload.",
	"For throughput-oriented systems, SJF is often optimal.",
	"For interactive systems, Round Robin provides better response times.",
}

// Comparison holds one result per policy, in Kinds order.
type Comparison struct {
	Quantum int
	Results []Result
}

// Result returns the run of kind, if present.
func (c Comparison) Result(kind Kind) (Result, bool) {
	for _, r := range c.Results {
		if r.Kind == kind {
			return r, true
		}
	}
	return Result{}, false
}

// AverageWaitingTimes maps each policy to its average waiting time.
func (c Comparison) AverageWaitingTimes() map[Kind]float64 {
	out := make(map[Kind]float64, len(c.Results))
	for _, r := range c.Results {
		out[r.Kind] = r.AverageWaitingTime
	}
	return out
}

// CompareAll runs every policy against the same specs. Each run works on
// its own copy, so results are independent of the order of runs.
func CompareAll(specs []core.ProcessSpec, quantum int, opts Options) (Comparison, error) {
	if len(specs) == 0 {
		return Comparison{}, core.ErrEmptyRegistry
	}
	if err := core.ValidateQuantum(quantum); err != nil {
		return Comparison{}, err
	}

	opts.Quantum = quantum
	comparison := Comparison{Quantum: quantum, Results: make([]Result, 0, len(Kinds))}
	for _, kind := range Kinds {
		result, err := RunPolicy(kind, specs, opts)
		if err != nil {
			return Comparison{}, err
		}
		comparison.Results = append(comparison.Results, result)
	}
	return comparison, nil
}
