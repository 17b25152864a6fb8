package requests

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-simulator/internal/core"
)

const sampleWorkload = `
quantum: 4
processes:
  - arrival: 0
    burst: 5
    priority: 2
  - {arrival: 1, burst: 3, priority: 1}
  - arrival: 2
    burst: 8
    priority: 3
`

func TestLoadWorkload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleWorkload), 0o644))

	req, err := LoadWorkload(path)
	require.NoError(t, err)
	assert.Equal(t, ScheduleRequest{
		TimeQuantum: 4,
		Processes: []Process{
			{ArrivalTime: 0, BurstTime: 5, Priority: 2},
			{ArrivalTime: 1, BurstTime: 3, Priority: 1},
			{ArrivalTime: 2, BurstTime: 8, Priority: 3},
		},
	}, req)
}

func TestLoadWorkload_Errors(t *testing.T) {
	_, err := LoadWorkload(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseWorkload([]byte("quantum: 2\n"))
	assert.Error(t, err)

	_, err = ParseWorkload([]byte("processes: [1, 2"))
	assert.Error(t, err)
}

func TestParseWorkload_JSON(t *testing.T) {
	req, err := ParseWorkload([]byte(`{"quantum": 2, "processes": [{"arrival": 3, "burst": 1, "priority": 0}]}`))
	require.NoError(t, err)
	assert.Equal(t, 2, req.TimeQuantum)
	assert.Equal(t, []Process{{ArrivalTime: 3, BurstTime: 1}}, req.Processes)
}

func TestProcess_KeysMatchProcessSpec(t *testing.T) {
	body := []byte(`{"quantum":3,"processes":[{"arrival":1,"burst":2,"priority":4}]}`)
	var req ScheduleRequest
	require.NoError(t, json.Unmarshal(body, &req))
	assert.Equal(t, ScheduleRequest{
		TimeQuantum: 3,
		Processes:   []Process{{ArrivalTime: 1, BurstTime: 2, Priority: 4}},
	}, req)

	// a spec returned by the api can be sent back as a definition
	spec, err := json.Marshal(core.ProcessSpec{ID: 7, Arrival: 1, Burst: 2, Priority: 4})
	require.NoError(t, err)
	var p Process
	require.NoError(t, json.Unmarshal(spec, &p))
	assert.Equal(t, req.Processes[0], p)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"arrival":1,"burst":2,"priority":4}`, string(out))
}

func TestScheduleRequest_Registry(t *testing.T) {
	req, err := ParseWorkload([]byte(sampleWorkload))
	require.NoError(t, err)

	registry, err := req.Registry(10)
	require.NoError(t, err)
	assert.Equal(t, 3, registry.Len())

	_, err = req.Registry(2)
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)

	bad := ScheduleRequest{Processes: []Process{{ArrivalTime: 0, BurstTime: 1}, {ArrivalTime: 0, BurstTime: 0}}}
	_, err = bad.Registry(10)
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "process #2")
}
