package schedulers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-simulator/internal/core"
)

func TestCompareAll(t *testing.T) {
	comparison, err := CompareAll(scenario(t), 4, Options{})
	require.NoError(t, err)

	require.Len(t, comparison.Results, len(Kinds))
	for i, kind := range Kinds {
		assert.Equal(t, kind, comparison.Results[i].Kind)
	}

	averages := comparison.AverageWaitingTimes()
	assert.InDelta(t, 10.0/3, averages[FirstComeFirstServe], 1e-9)
	assert.InDelta(t, 3, averages[ShortestJobFirst], 1e-9)
	assert.InDelta(t, 3, averages[Priority], 1e-9)
	assert.InDelta(t, 16.0/3, averages[RoundRobin], 1e-9)

	rr, ok := comparison.Result(RoundRobin)
	require.True(t, ok)
	assert.Equal(t, 4, rr.Quantum)
}

func TestCompareAll_MatchesIndividualRuns(t *testing.T) {
	specs := specsOf(t, [3]int{0, 7, 3}, [3]int{2, 4, 1}, [3]int{4, 1, 4}, [3]int{5, 4, 2})
	comparison, err := CompareAll(specs, 3, Options{})
	require.NoError(t, err)

	for _, kind := range Kinds {
		single, err := RunPolicy(kind, specs, Options{Quantum: 3})
		require.NoError(t, err)
		compared, ok := comparison.Result(kind)
		require.True(t, ok)
		assert.Equal(t, single.Timeline, compared.Timeline, kind)
		assert.Equal(t, single.Metrics, compared.Metrics, kind)
	}
}

func TestCompareAll_Errors(t *testing.T) {
	_, err := CompareAll(nil, 4, Options{})
	assert.ErrorIs(t, err, core.ErrEmptyRegistry)

	obs := &countingObserver{completions: map[core.ProcessID]int{}}
	_, err = CompareAll(scenario(t), 0, Options{Observer: obs})
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, obs.completions, "no policy may run with an invalid quantum")
}

func TestComputeMetrics_IncompleteRun(t *testing.T) {
	specs := scenario(t)
	states := core.NewRunStates(specs)
	for i := range states[:2] {
		states[i].Execute(states[i].Remaining, 10)
	}

	_, err := ComputeMetrics(states, specs)
	var cerr *core.InternalConsistencyError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, core.ProcessID(3), cerr.ProcessID)
}

func TestComputeMetrics_UnknownProcess(t *testing.T) {
	states := core.NewRunStates([]core.ProcessSpec{{ID: 9, Burst: 1}})
	states[0].Execute(1, 1)

	_, err := ComputeMetrics(states, scenario(t))
	var cerr *core.InternalConsistencyError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, core.ProcessID(9), cerr.ProcessID)
}

func TestComputeMetrics_WritesBackToStates(t *testing.T) {
	specs := specsOf(t, [3]int{2, 3, 0})
	states := core.NewRunStates(specs)
	states[0].Dispatch(4)
	states[0].Execute(3, 7)

	details, err := ComputeMetrics(states, specs)
	require.NoError(t, err)
	assert.Equal(t, 5, states[0].TurnaroundTime)
	assert.Equal(t, 2, states[0].WaitingTime)
	assert.Equal(t, core.Metrics{
		ID: 1, Arrival: 2, Burst: 3, StartTime: 4, CompletionTime: 7,
		TurnaroundTime: 5, WaitingTime: 2, ResponseTime: 2,
	}, details[1])
}

func TestGenerateResponse(t *testing.T) {
	result, err := RunPolicy(FirstComeFirstServe, scenario(t), Options{})
	require.NoError(t, err)

	response := GenerateResponse(result)
	assert.Equal(t, "fcfs", response.Algorithm)
	assert.Equal(t, "First-Come, First-Served (FCFS)", response.AlgorithmName)
	assert.Equal(t, 16, response.TotalTime)
	assert.Zero(t, response.IdleTime)
	assert.InDelta(t, 1.0, response.CpuUtilization, 1e-9)
	assert.InDelta(t, 3.0/16, response.CpuThroughput, 1e-9)
	assert.Equal(t, 2, response.ContextSwitches)
	require.Len(t, response.Timeline, 3)
	assert.Equal(t, 8, response.Timeline[2].Start)
	require.Len(t, response.Details, 3)
	assert.Equal(t, 2, response.Details[1].ProcessId)
	assert.Equal(t, 4, response.Details[1].WaitingTime)
	assert.Equal(t, 7, response.Details[1].TurnAroundTime)
}

func TestGenerateComparisonResponse(t *testing.T) {
	comparison, err := CompareAll(scenario(t), 4, Options{})
	require.NoError(t, err)

	response := GenerateComparisonResponse(comparison)
	assert.Equal(t, 4, response.TimeQuantum)
	require.Len(t, response.Summary, 4)
	assert.Equal(t, "rr", response.Summary[3].Algorithm)
	assert.InDelta(t, 16.0/3, response.Summary[3].AverageWaitingTime, 1e-9)
	assert.Len(t, response.Results, 4)
	assert.Equal(t, Advice, response.Advice)
}
