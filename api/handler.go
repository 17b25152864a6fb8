package api

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v2"

	"scheduling-simulator/config"
	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/metrics"
	"scheduling-simulator/internal/requests"
	"scheduling-simulator/internal/responses"
	"scheduling-simulator/internal/schedulers"
)

type SchedulerHandler interface {
	AddProcess(ctx *fiber.Ctx) error
	ListProcesses(ctx *fiber.Ctx) error
	ResetProcesses(ctx *fiber.Ctx) error
	ClearProcesses(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Schedule(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

// SchedulerHandlerImpl serves the simulator over HTTP. It owns one registry
// shared by all requests; ad-hoc schedule and compare requests build their
// own.
type SchedulerHandlerImpl struct {
	config   *config.SchedulerConfig
	logger   *slog.Logger
	observer core.Observer

	mu       sync.Mutex
	registry *core.Registry
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, logger *slog.Logger) *SchedulerHandlerImpl {
	if logger == nil {
		logger = slog.Default()
	}
	s := &SchedulerHandlerImpl{config: config, logger: logger}
	if config.MemorySimulation {
		s.observer = core.NewMemorySimulator(logger)
	}
	s.registry = s.newRegistry()
	return s
}

func (s *SchedulerHandlerImpl) newRegistry() *core.Registry {
	if s.observer == nil {
		return core.NewRegistry(s.config.MaxProcesses)
	}
	return core.NewRegistry(s.config.MaxProcesses, core.WithObserver(s.observer))
}

func (s *SchedulerHandlerImpl) options() schedulers.Options {
	return schedulers.Options{Observer: s.observer, Logger: s.logger}
}

func (s *SchedulerHandlerImpl) AddProcess(ctx *fiber.Ctx) error {
	var request requests.Process
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx)
	}

	s.mu.Lock()
	spec, err := s.registry.AddProcess(request.ArrivalTime, request.BurstTime, request.Priority)
	n := s.registry.Len()
	s.mu.Unlock()
	if err != nil {
		return s.fail(ctx, err)
	}

	metrics.SetRegistryProcesses(n)
	s.logger.Info("process registered", "pid", spec.ID, "arrival", spec.Arrival, "burst", spec.Burst, "priority", spec.Priority)
	return ctx.Status(fiber.StatusCreated).JSON(spec)
}

func (s *SchedulerHandlerImpl) ListProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	states := s.registry.States()
	capacity := s.registry.Capacity()
	s.mu.Unlock()

	response := responses.RegistryResponse{
		Capacity:  capacity,
		Processes: make([]responses.RegisteredProcess, 0, len(states)),
	}
	for _, st := range states {
		response.Processes = append(response.Processes, responses.RegisteredProcess{
			ProcessId:      int(st.ID),
			ArrivalTime:    st.Arrival,
			BurstTime:      st.Burst,
			Priority:       st.Priority,
			RemainingTime:  st.Remaining,
			Completed:      st.Completed,
			CompletionTime: st.CompletionTime,
			WaitingTime:    st.WaitingTime,
			TurnAroundTime: st.TurnaroundTime,
		})
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) ResetProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	s.registry.Reset()
	s.mu.Unlock()
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) ClearProcesses(ctx *fiber.Ctx) error {
	s.mu.Lock()
	s.registry.Clear()
	s.mu.Unlock()

	metrics.SetRegistryProcesses(0)
	s.logger.Info("process registry cleared")
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.runRegistered(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.runRegistered(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.runRegistered(ctx, schedulers.Priority)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.runRegistered(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	quantum := ctx.QueryInt("quantum", s.config.RoundRobinTimeQuantum)

	s.mu.Lock()
	specs := s.registry.Snapshot()
	s.mu.Unlock()

	comparison, err := schedulers.CompareAll(specs, quantum, s.options())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(schedulers.GenerateComparisonResponse(comparison))
}

// Schedule runs the policy named in the path over the processes in the
// request body.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	kind, err := schedulers.ParseKind(ctx.Params("policy"))
	if err != nil {
		return s.fail(ctx, err)
	}
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx)
	}
	registry, err := request.Registry(s.config.MaxProcesses)
	if err != nil {
		return s.fail(ctx, err)
	}

	// the memory simulation tracks the shared registry only
	opts := schedulers.Options{Quantum: s.quantum(request.TimeQuantum), Logger: s.logger}
	result, err := schedulers.RunPolicy(kind, registry.Snapshot(), opts)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(schedulers.GenerateResponse(result))
}

func (s *SchedulerHandlerImpl) Compare(ctx *fiber.Ctx) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx)
	}
	registry, err := request.Registry(s.config.MaxProcesses)
	if err != nil {
		return s.fail(ctx, err)
	}

	opts := schedulers.Options{Logger: s.logger}
	comparison, err := schedulers.CompareAll(registry.Snapshot(), s.quantum(request.TimeQuantum), opts)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(schedulers.GenerateComparisonResponse(comparison))
}

func (s *SchedulerHandlerImpl) runRegistered(ctx *fiber.Ctx, kind schedulers.Kind) error {
	opts := s.options()
	if kind == schedulers.RoundRobin {
		opts.Quantum = ctx.QueryInt("quantum", s.config.RoundRobinTimeQuantum)
	}

	s.mu.Lock()
	specs := s.registry.Snapshot()
	s.mu.Unlock()

	result, err := schedulers.RunPolicy(kind, specs, opts)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(schedulers.GenerateResponse(result))
}

// quantum falls back to the configured value when a request leaves it out.
func (s *SchedulerHandlerImpl) quantum(requested int) int {
	if requested == 0 {
		return s.config.RoundRobinTimeQuantum
	}
	return requested
}

func (s *SchedulerHandlerImpl) fail(ctx *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "path", ctx.Path(), "error", err)
	} else {
		s.logger.Info("request rejected", "path", ctx.Path(), "status", status, "error", err)
	}
	return ctx.Status(status).JSON(responses.ErrorResponse{Error: err.Error()})
}

func badRequest(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
}

func statusOf(err error) int {
	var validation *core.ValidationError
	switch {
	case errors.As(err, &validation), errors.Is(err, schedulers.ErrUnknownPolicy):
		return fiber.StatusBadRequest
	case errors.Is(err, core.ErrCapacityExceeded):
		return fiber.StatusConflict
	case errors.Is(err, core.ErrEmptyRegistry):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
