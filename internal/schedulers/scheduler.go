package schedulers

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/metrics"
	"scheduling-simulator/internal/util"
)

// Kind names a scheduling policy.
type Kind string

const (
	FirstComeFirstServe Kind = "fcfs"
	ShortestJobFirst    Kind = "sjf"
	Priority            Kind = "priority"
	RoundRobin          Kind = "rr"
)

// Kinds lists every policy in the order used for comparisons.
var Kinds = []Kind{FirstComeFirstServe, ShortestJobFirst, Priority, RoundRobin}

var ErrUnknownPolicy = errors.New("unknown scheduling policy")

var kindAliases = map[string]Kind{
	"fcfs":                   FirstComeFirstServe,
	"first_come_first_serve": FirstComeFirstServe,
	"sjf":                    ShortestJobFirst,
	"srtf":                   ShortestJobFirst,
	"shortest_job_first":     ShortestJobFirst,
	"priority":               Priority,
	"prio":                   Priority,
	"rr":                     RoundRobin,
	"round_robin":            RoundRobin,
	"roundrobin":             RoundRobin,
}

var aliasReplacer = strings.NewReplacer("-", "_", " ", "_")

// ParseKind resolves a policy name or alias, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := aliasReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (k Kind) Name() string {
	switch k {
	case FirstComeFirstServe:
		return "First-Come, First-Served (FCFS)"
	case ShortestJobFirst:
		return "Preemptive Shortest Job First (SJF)"
	case Priority:
		return "Preemptive Priority Scheduling"
	case RoundRobin:
		return "Round Robin (RR)"
	default:
		return string(k)
	}
}

// Options tunes a policy run. Quantum is required for RoundRobin only.
type Options struct {
	Quantum  int
	Observer core.Observer
	Logger   *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) completed(s *core.RunState) {
	o.logger().Debug("process completed", "pid", s.ID, "at", s.CompletionTime)
	if o.Observer != nil {
		o.Observer.ProcessCompleted(s.ProcessSpec, s.CompletionTime)
	}
}

// policy orders the given fresh run states on cpu and returns the timeline.
type policy func(states []core.RunState, cpu *core.Cpu, opts Options) core.Timeline

var policies = map[Kind]policy{
	FirstComeFirstServe: scheduleFirstComeFirstServe,
	ShortestJobFirst:    scheduleShortestJobFirst,
	Priority:            schedulePriority,
	RoundRobin:          scheduleRoundRobin,
}

// Result is the outcome of one policy run.
type Result struct {
	Kind                  Kind
	Quantum               int
	Timeline              core.Timeline
	Metrics               map[core.ProcessID]core.Metrics
	Cpu                   core.CpuMetric
	AverageWaitingTime    float64
	AverageTurnaroundTime float64
	AverageResponseTime   float64
	ContextSwitches       int
}

// Details returns the per-process metrics ordered by process ID.
func (r Result) Details() []core.Metrics {
	details := make([]core.Metrics, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		details = append(details, m)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].ID < details[j].ID
	})
	return details
}

// RunPolicy simulates kind over a fresh copy of specs.
func RunPolicy(kind Kind, specs []core.ProcessSpec, opts Options) (Result, error) {
	result, err := runPolicy(kind, specs, opts)
	if err != nil {
		metrics.IncFailure(string(kind))
	}
	return result, err
}

func runPolicy(kind Kind, specs []core.ProcessSpec, opts Options) (Result, error) {
	schedule, ok := policies[kind]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, string(kind))
	}
	if len(specs) == 0 {
		return Result{}, core.ErrEmptyRegistry
	}
	if kind == RoundRobin {
		if err := core.ValidateQuantum(opts.Quantum); err != nil {
			return Result{}, err
		}
	} else {
		opts.Quantum = 0
	}

	log := opts.logger().With("algorithm", string(kind))
	log.Debug("running scheduling algorithm", "processes", len(specs), "time_quantum", opts.Quantum)
	opts.Logger = log

	started := time.Now()
	states := core.NewRunStates(specs)
	cpu := core.NewCpu()
	timeline := schedule(states, cpu, opts)

	details, err := ComputeMetrics(states, specs)
	if err != nil {
		log.Error("scheduling run left inconsistent state", "error", err)
		return Result{}, err
	}

	result := Result{
		Kind:            kind,
		Quantum:         opts.Quantum,
		Timeline:        timeline,
		Metrics:         details,
		Cpu:             cpu.Metric(),
		ContextSwitches: timeline.ContextSwitches(),
	}
	result.AverageWaitingTime, result.AverageResponseTime, result.AverageTurnaroundTime = util.CalculateAverage(result.Details())

	metrics.ObserveRun(string(kind), result.AverageWaitingTime, result.AverageTurnaroundTime, time.Since(started).Seconds())
	log.Debug("scheduling algorithm finished",
		"total_time", result.Cpu.TotalTime,
		"average_waiting_time", result.AverageWaitingTime,
	)
	return result, nil
}

// arrivalOrder returns state indexes sorted by arrival time; ties keep
// insertion order.
func arrivalOrder(states []core.RunState) []int {
	order := make([]int, len(states))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return states[order[i]].Arrival < states[order[j]].Arrival
	})
	return order
}
