package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"scheduling-simulator/api"
	"scheduling-simulator/config"
	"scheduling-simulator/internal/core"
	"scheduling-simulator/internal/logger"
	"scheduling-simulator/internal/metrics"
	"scheduling-simulator/internal/render"
	"scheduling-simulator/internal/requests"
	"scheduling-simulator/internal/schedulers"
	"scheduling-simulator/pkg/client"
)

// GlobalFlags holds the persistent flags shared by every command
type GlobalFlags struct {
	ConfigPath string
	LogLevel   string
}

// RunFlags holds flags for the run and compare commands
type RunFlags struct {
	Workload string
	Policy   string
	Quantum  int
}

type ServeFlags struct {
	Port int
}

// SubmitFlags holds flags for the submit command
type SubmitFlags struct {
	Workload   string
	Policy     string
	APIUrl     string
	APITimeout time.Duration
}

// environment is what a command needs once config and logging are set up.
type environment struct {
	config   *config.SchedulerConfig
	logger   *slog.Logger
	closer   io.Closer
	observer core.Observer // nil unless memory_simulation is on
}

func (e environment) registryOptions() []core.RegistryOption {
	if e.observer == nil {
		return nil
	}
	return []core.RegistryOption{core.WithObserver(e.observer)}
}

func setup(cmd *cobra.Command, flags *GlobalFlags) (environment, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return environment{}, err
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	log, closer, err := logger.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return environment{}, err
	}
	env := environment{config: cfg, logger: log, closer: closer}
	if cfg.MemorySimulation {
		env.observer = core.NewMemorySimulator(log)
	}
	return env, nil
}

func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	runFlags := &RunFlags{}
	compareFlags := &RunFlags{}
	serveFlags := &ServeFlags{}
	submitFlags := &SubmitFlags{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createRunCommand(globalFlags, runFlags),
		createCompareCommand(globalFlags, compareFlags),
		createServeCommand(globalFlags, serveFlags),
		createSubmitCommand(globalFlags, submitFlags),
	)
	return root
}

func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "scheduling-simulator",
		Short: "CPU process scheduling simulator",
		Long: `Simulates FCFS, preemptive SJF, preemptive Priority and Round Robin
scheduling over a set of processes and reports per-process times and a
Gantt chart.

Examples:
  scheduling-simulator run --workload=workload.yaml --policy=sjf
  scheduling-simulator compare --workload=workload.yaml --quantum=2
  scheduling-simulator serve --port=9095
  scheduling-simulator submit --api-url=http://localhost:9095 --workload=workload.yaml`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to YAML config file (optional)")
	root.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	return root
}

func createRunCommand(globalFlags *GlobalFlags, flags *RunFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one scheduling policy over a workload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, globalFlags)
			if err != nil {
				return err
			}
			defer func() { _ = env.closer.Close() }()

			kind, err := schedulers.ParseKind(flags.Policy)
			if err != nil {
				return err
			}
			request, registry, err := loadRegistry(env, flags.Workload)
			if err != nil {
				return err
			}

			opts := schedulers.Options{
				Quantum:  resolveQuantum(cmd, flags.Quantum, request.TimeQuantum, env.config),
				Observer: env.observer,
				Logger:   env.logger,
			}
			result, err := schedulers.RunPolicy(kind, registry.Snapshot(), opts)
			if err != nil {
				return err
			}
			render.Schedule(cmd.OutOrStdout(), schedulers.GenerateResponse(result))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Workload, "workload", "", "workload file, YAML or JSON (required)")
	cmd.Flags().StringVar(&flags.Policy, "policy", string(schedulers.FirstComeFirstServe), "fcfs, sjf, priority or rr")
	cmd.Flags().IntVar(&flags.Quantum, "quantum", 0, "Round Robin time quantum (defaults to the workload, then config)")
	if err := cmd.MarkFlagRequired("workload"); err != nil {
		panic(err)
	}
	return cmd
}

func createCompareCommand(globalFlags *GlobalFlags, flags *RunFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every policy over a workload file and compare them",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, globalFlags)
			if err != nil {
				return err
			}
			defer func() { _ = env.closer.Close() }()

			request, registry, err := loadRegistry(env, flags.Workload)
			if err != nil {
				return err
			}

			quantum := resolveQuantum(cmd, flags.Quantum, request.TimeQuantum, env.config)
			opts := schedulers.Options{Observer: env.observer, Logger: env.logger}
			comparison, err := schedulers.CompareAll(registry.Snapshot(), quantum, opts)
			if err != nil {
				return err
			}
			render.Comparison(cmd.OutOrStdout(), schedulers.GenerateComparisonResponse(comparison))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Workload, "workload", "", "workload file, YAML or JSON (required)")
	cmd.Flags().IntVar(&flags.Quantum, "quantum", 0, "Round Robin time quantum (defaults to the workload, then config)")
	if err := cmd.MarkFlagRequired("workload"); err != nil {
		panic(err)
	}
	return cmd
}

func createServeCommand(globalFlags *GlobalFlags, flags *ServeFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, globalFlags)
			if err != nil {
				return err
			}
			defer func() { _ = env.closer.Close() }()

			if cmd.Flags().Changed("port") {
				env.config.Port = flags.Port
			}
			if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}

			app := api.NewApp(api.NewSchedulerHandlerImpl(env.config, env.logger), env.logger)

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = app.Shutdown()
			}()

			addr := fmt.Sprintf(":%d", env.config.Port)
			env.logger.Info("scheduler api listening", "addr", addr)
			return app.Listen(addr)
		},
	}
	cmd.Flags().IntVar(&flags.Port, "port", 0, "listen port (overrides config)")
	return cmd
}

func createSubmitCommand(globalFlags *GlobalFlags, flags *SubmitFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a workload to a running simulator API",
		Long: `Send a workload file to a running simulator and render the answer.
Use --policy=all to request a comparison of every policy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd, globalFlags)
			if err != nil {
				return err
			}
			defer func() { _ = env.closer.Close() }()

			request, err := requests.LoadWorkload(flags.Workload)
			if err != nil {
				return err
			}
			c := client.New(client.Config{
				BaseURL: flags.APIUrl,
				Timeout: flags.APITimeout,
				Logger:  env.logger,
			})

			ctx := commandContext(cmd)
			if flags.Policy == "all" {
				comparison, err := c.Compare(ctx, request)
				if err != nil {
					return err
				}
				render.Comparison(cmd.OutOrStdout(), comparison)
				return nil
			}
			result, err := c.Schedule(ctx, flags.Policy, request)
			if err != nil {
				return err
			}
			render.Schedule(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Workload, "workload", "", "workload file, YAML or JSON (required)")
	cmd.Flags().StringVar(&flags.Policy, "policy", "all", "policy to run, or all to compare")
	cmd.Flags().StringVar(&flags.APIUrl, "api-url", client.DefaultConfig().BaseURL, "simulator API URL")
	cmd.Flags().DurationVar(&flags.APITimeout, "api-timeout", client.DefaultConfig().Timeout, "request timeout")
	if err := cmd.MarkFlagRequired("workload"); err != nil {
		panic(err)
	}
	return cmd
}

func loadRegistry(env environment, path string) (requests.ScheduleRequest, *core.Registry, error) {
	request, err := requests.LoadWorkload(path)
	if err != nil {
		return requests.ScheduleRequest{}, nil, err
	}
	registry, err := request.Registry(env.config.MaxProcesses, env.registryOptions()...)
	if err != nil {
		return requests.ScheduleRequest{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return request, registry, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveQuantum prefers the flag, then the workload file, then config.
func resolveQuantum(cmd *cobra.Command, flag, workload int, cfg *config.SchedulerConfig) int {
	switch {
	case cmd.Flags().Changed("quantum"):
		return flag
	case workload != 0:
		return workload
	default:
		return cfg.RoundRobinTimeQuantum
	}
}
