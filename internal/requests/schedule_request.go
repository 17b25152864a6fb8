package requests

import (
	"fmt"

	"scheduling-simulator/internal/core"
)

// Process is one process definition. Its keys match core.ProcessSpec and
// the workload file format.
type Process struct {
	ArrivalTime int `json:"arrival" yaml:"arrival"`
	BurstTime   int `json:"burst" yaml:"burst"`
	Priority    int `json:"priority" yaml:"priority"`
}

type ScheduleRequest struct {
	TimeQuantum int       `json:"quantum,omitempty" yaml:"quantum"`
	Processes   []Process `json:"processes" yaml:"processes"`
}

// Registry loads the requested processes into a new registry. The first
// rejected process aborts the load.
func (r ScheduleRequest) Registry(capacity int, opts ...core.RegistryOption) (*core.Registry, error) {
	registry := core.NewRegistry(capacity, opts...)
	for i, p := range r.Processes {
		if _, err := registry.AddProcess(p.ArrivalTime, p.BurstTime, p.Priority); err != nil {
			return nil, fmt.Errorf("process #%d: %w", i+1, err)
		}
	}
	return registry, nil
}
