package schedulers

import (
	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/responses"
)

// ComputeMetrics derives turnaround and waiting time for each run state
// from its completion time and the burst of the matching spec, and stores
// them back on the state.
func ComputeMetrics(states []core.RunState, specs []core.ProcessSpec) (map[core.ProcessID]core.Metrics, error) {
	byID := make(map[core.ProcessID]core.ProcessSpec, len(specs))
	for _, spec := range specs {
		byID[spec.ID] = spec
	}

	details := make(map[core.ProcessID]core.Metrics, len(states))
	for i := range states {
		state := &states[i]
		spec, ok := byID[state.ID]
		if !ok {
			return nil, &core.InternalConsistencyError{ProcessID: state.ID, Reason: "no matching process spec"}
		}
		if !state.Completed || state.Remaining != 0 {
			return nil, &core.InternalConsistencyError{ProcessID: state.ID, Reason: "no completion time recorded"}
		}

		state.TurnaroundTime = state.CompletionTime - spec.Arrival
		state.WaitingTime = state.TurnaroundTime - spec.Burst

		details[state.ID] = core.Metrics{
			ID:             state.ID,
			Arrival:        spec.Arrival,
			Burst:          spec.Burst,
			Priority:       spec.Priority,
			StartTime:      state.StartTime,
			CompletionTime: state.CompletionTime,
			TurnaroundTime: state.TurnaroundTime,
			WaitingTime:    state.WaitingTime,
			ResponseTime:   state.StartTime - spec.Arrival,
		}
	}
	return details, nil
}

func GenerateResponse(result Result) responses.ScheduleResponse {
	timeline := make([]responses.IntervalResponse, 0, len(result.Timeline))
	for _, iv := range result.Timeline {
		timeline = append(timeline, responses.IntervalResponse{
			ProcessId: int(iv.PID),
			Start:     iv.Start,
			End:       iv.End,
		})
	}

	details := result.Details()
	processDetails := make([]responses.ProcessResponse, 0, len(details))
	for _, m := range details {
		processDetails = append(processDetails, generateProcessDetails(m))
	}

	return responses.ScheduleResponse{
		Algorithm:             string(result.Kind),
		AlgorithmName:         result.Kind.Name(),
		TimeQuantum:           result.Quantum,
		TotalTime:             result.Cpu.TotalTime,
		IdleTime:              result.Cpu.IdleTime,
		AverageWaitingTime:    result.AverageWaitingTime,
		AverageResponseTime:   result.AverageResponseTime,
		AverageTurnAroundTime: result.AverageTurnaroundTime,
		CpuUtilization:        result.Cpu.Utilization(),
		CpuThroughput:         result.Cpu.Throughput(len(details)),
		ContextSwitches:       result.ContextSwitches,
		Timeline:              timeline,
		Details:               processDetails,
	}
}

func generateProcessDetails(m core.Metrics) responses.ProcessResponse {
	return responses.ProcessResponse{
		ProcessId:      int(m.ID),
		ArrivalTime:    m.Arrival,
		BurstTime:      m.Burst,
		Priority:       m.Priority,
		StartTime:      m.StartTime,
		CompletionTime: m.CompletionTime,
		ResponseTime:   m.ResponseTime,
		TurnAroundTime: m.TurnaroundTime,
		WaitingTime:    m.WaitingTime,
	}
}

func GenerateComparisonResponse(c Comparison) responses.ComparisonResponse {
	response := responses.ComparisonResponse{
		TimeQuantum: c.Quantum,
		Summary:     make([]responses.PolicySummary, 0, len(c.Results)),
		Results:     make([]responses.ScheduleResponse, 0, len(c.Results)),
		Advice:      Advice,
	}
	for _, result := range c.Results {
		response.Summary = append(response.Summary, responses.PolicySummary{
			Algorithm:             string(result.Kind),
			AlgorithmName:         result.Kind.Name(),
			AverageWaitingTime:    result.AverageWaitingTime,
			AverageResponseTime:   result.AverageResponseTime,
			AverageTurnAroundTime: result.AverageTurnaroundTime,
		})
		response.Results = append(response.Results, GenerateResponse(result))
	}
	return response
}
