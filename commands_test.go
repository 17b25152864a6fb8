package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scheduling-simulator/api"
	"scheduling-simulator/config"
)

const scenarioWorkload = `
quantum: 4
processes:
  - {arrival: 0, burst: 5, priority: 2}
  - {arrival: 1, burst: 3, priority: 1}
  - {arrival: 2, burst: 8, priority: 3}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := buildRoot()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func testFiles(t *testing.T) (configPath, workloadPath string) {
	t.Helper()
	dir := t.TempDir()
	configPath = writeFile(t, dir, "config.yaml", "memory_simulation: true\nlog:\n  level: info\n")
	workloadPath = writeFile(t, dir, "workload.yaml", scenarioWorkload)
	return configPath, workloadPath
}

func TestRunCommand(t *testing.T) {
	configPath, workloadPath := testFiles(t)

	out, logs, err := execute(t, "run", "--config", configPath, "--workload", workloadPath, "--policy", "sjf")
	require.NoError(t, err)
	assert.Contains(t, out, "Preemptive Shortest Job First (SJF)")
	assert.Contains(t, out, "Gantt schedule")
	assert.Contains(t, out, "P2")
	assert.Contains(t, out, "3.00")
	assert.Contains(t, logs, "memory block allocated")
	assert.Contains(t, logs, "memory block released")
}

func TestRunCommand_QuantumPrecedence(t *testing.T) {
	configPath, workloadPath := testFiles(t)

	out, _, err := execute(t, "run", "--config", configPath, "--workload", workloadPath, "--policy", "rr")
	require.NoError(t, err)
	assert.Contains(t, out, "time quantum 4")
	assert.Contains(t, out, "5.33")

	out, _, err = execute(t, "run", "--config", configPath, "--workload", workloadPath, "--policy", "rr", "--quantum", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "time quantum 10")
	assert.Contains(t, out, "3.33")
}

func TestRunCommand_Errors(t *testing.T) {
	configPath, workloadPath := testFiles(t)

	_, _, err := execute(t, "run", "--config", configPath, "--workload", workloadPath, "--policy", "lottery")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--config", configPath, "--workload", workloadPath, "--policy", "rr", "--quantum", "0")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--config", configPath, "--workload", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--config", configPath)
	assert.Error(t, err, "workload is required")

	_, _, err = execute(t, "run", "--config", configPath, "--workload", workloadPath, "--log-level", "loud")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	configPath, workloadPath := testFiles(t)

	out, _, err := execute(t, "compare", "--config", configPath, "--workload", workloadPath)
	require.NoError(t, err)
	for _, name := range []string{
		"First-Come, First-Served (FCFS)",
		"Preemptive Shortest Job First (SJF)",
		"Preemptive Priority Scheduling",
		"Round Robin (RR)",
		"Comparison",
		"lowest average waiting time",
	} {
		assert.Contains(t, out, name)
	}
}

func TestSubmitCommand(t *testing.T) {
	configPath, workloadPath := testFiles(t)

	cfg := &config.SchedulerConfig{RoundRobinTimeQuantum: 4, MaxProcesses: 100}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := api.NewApp(api.NewSchedulerHandlerImpl(cfg, logger), logger)
	server := httptest.NewServer(adaptor.FiberApp(app))
	defer server.Close()

	out, _, err := execute(t, "submit", "--config", configPath, "--workload", workloadPath,
		"--api-url", server.URL, "--policy", "priority")
	require.NoError(t, err)
	assert.Contains(t, out, "Preemptive Priority Scheduling")

	out, _, err = execute(t, "submit", "--config", configPath, "--workload", workloadPath, "--api-url", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Comparison")

	_, _, err = execute(t, "submit", "--config", configPath, "--workload", workloadPath,
		"--api-url", server.URL, "--policy", "lottery")
	assert.ErrorContains(t, err, "400")
}
