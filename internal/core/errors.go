package core

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when the registry holds its maximum
	// number of processes.
	ErrCapacityExceeded = errors.New("process registry is at capacity")
	// ErrEmptyRegistry is returned when a policy is invoked without processes.
	ErrEmptyRegistry = errors.New("no processes to schedule")
)

// ValidationError rejects a single input value.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// InternalConsistencyError means a run finished in a state that correct
// clock advancement cannot produce.
type InternalConsistencyError struct {
	ProcessID ProcessID
	Reason    string
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("internal consistency error for pid %d: %s", e.ProcessID, e.Reason)
}

// ValidateQuantum checks a Round Robin time quantum.
func ValidateQuantum(quantum int) error {
	if quantum <= 0 {
		return &ValidationError{Field: "quantum", Value: quantum, Reason: "must be a positive integer"}
	}
	return nil
}

func validateProcess(arrival, burst, priority int) error {
	switch {
	case arrival < 0:
		return &ValidationError{Field: "arrival", Value: arrival, Reason: "must be a non-negative integer"}
	case burst <= 0:
		return &ValidationError{Field: "burst", Value: burst, Reason: "must be a positive integer"}
	case priority < 0:
		return &ValidationError{Field: "priority", Value: priority, Reason: "must be a non-negative integer"}
	}
	return nil
}
