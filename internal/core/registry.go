package core

import (
	"fmt"
	"math"
)

// DefaultCapacity is the process limit used when none is configured.
const DefaultCapacity = 100

// Observer is notified around the lifetime of a process. It is purely
// informational and never feeds data back into scheduling.
type Observer interface {
	ProcessCreated(spec ProcessSpec)
	ProcessCompleted(spec ProcessSpec, at int)
}

// RemovalObserver is an Observer that also wants to hear about processes
// dropped by Registry.Clear.
type RemovalObserver interface {
	Observer
	ProcessRemoved(spec ProcessSpec)
}

// RegistryOption configures a Registry in NewRegistry.
type RegistryOption func(*Registry)

// WithObserver installs the observer notified on process creation.
func WithObserver(o Observer) RegistryOption {
	return func(r *Registry) { r.observer = o }
}

// Registry holds the defined processes in insertion order together with
// their canonical run state. It is not safe for concurrent use.
type Registry struct {
	capacity int
	nextID   ProcessID
	states   []RunState
	observer Observer

	// bounds of the longest possible schedule: last arrival plus all bursts
	latestArrival int
	totalBurst    int
}

// NewRegistry creates an empty registry holding up to capacity processes.
func NewRegistry(capacity int, opts ...RegistryOption) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r := &Registry{
		capacity: capacity,
		nextID:   1,
		states:   make([]RunState, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddProcess validates and appends a new process. On error the registry is
// left untouched.
func (r *Registry) AddProcess(arrival, burst, priority int) (ProcessSpec, error) {
	if len(r.states) >= r.capacity {
		return ProcessSpec{}, fmt.Errorf("%w: limit is %d", ErrCapacityExceeded, r.capacity)
	}
	if err := validateProcess(arrival, burst, priority); err != nil {
		return ProcessSpec{}, err
	}
	if burst > math.MaxInt-r.totalBurst || max(r.latestArrival, arrival) > math.MaxInt-r.totalBurst-burst {
		return ProcessSpec{}, &ValidationError{Field: "burst", Value: burst, Reason: "schedule length overflows int"}
	}

	spec := ProcessSpec{
		ID:       r.nextID,
		Arrival:  arrival,
		Burst:    burst,
		Priority: priority,
	}
	r.nextID++
	r.latestArrival = max(r.latestArrival, arrival)
	r.totalBurst += burst
	r.states = append(r.states, NewRunState(spec))

	if r.observer != nil {
		r.observer.ProcessCreated(spec)
	}
	return spec, nil
}

// Reset restores every canonical run state to its initial values. Processes
// are kept.
func (r *Registry) Reset() {
	for i := range r.states {
		r.states[i] = NewRunState(r.states[i].ProcessSpec)
	}
}

// Clear removes all processes. IDs keep increasing afterwards.
func (r *Registry) Clear() {
	if ro, ok := r.observer.(RemovalObserver); ok {
		for _, s := range r.states {
			ro.ProcessRemoved(s.ProcessSpec)
		}
	}
	r.states = r.states[:0]
	r.latestArrival, r.totalBurst = 0, 0
}

// Snapshot returns a copy of the process specs in insertion order.
func (r *Registry) Snapshot() []ProcessSpec {
	specs := make([]ProcessSpec, len(r.states))
	for i, s := range r.states {
		specs[i] = s.ProcessSpec
	}
	return specs
}

// States returns a copy of the canonical run states.
func (r *Registry) States() []RunState {
	states := make([]RunState, len(r.states))
	copy(states, r.states)
	return states
}

// Lookup returns the ProcessSpec of the process with the given id.
func (r *Registry) Lookup(id ProcessID) (ProcessSpec, bool) {
	for _, s := range r.states {
		if s.ID == id {
			return s.ProcessSpec, true
		}
	}
	return ProcessSpec{}, false
}

// Len is the number of defined processes.
func (r *Registry) Len() int { return len(r.states) }

// Capacity is the maximum number of processes the registry accepts.
func (r *Registry) Capacity() int { return r.capacity }
