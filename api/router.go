package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"scheduling-simulator/internal/metrics"
)

// NewApp wires handler into a fiber app: the simulator under /api/v1 plus
// /healthz and /metrics at the root.
func NewApp(handler SchedulerHandler, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}
	app := fiber.New(fiber.Config{
		AppName:               "scheduling-simulator",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestLogger(logger))

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	v1 := api.Group("/v1")
	{
		v1.Post("/processes", handler.AddProcess)
		v1.Get("/processes", handler.ListProcesses)
		v1.Delete("/processes", handler.ClearProcesses)
		v1.Post("/processes/reset", handler.ResetProcesses)

		v1.Get("/fcfs", handler.FirstComeFirstServe)
		v1.Get("/sjf", handler.ShortestJobFirst)
		v1.Get("/priority", handler.Priority)
		v1.Get("/rr", handler.RoundRobin)
		v1.Get("/all", handler.AllAlgorithms)

		v1.Post("/schedule/:policy", handler.Schedule)
		v1.Post("/compare", handler.Compare)
	}
	return app
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		started := time.Now()
		err := ctx.Next()
		logger.Info("http request",
			"method", ctx.Method(),
			"path", ctx.Path(),
			"status", ctx.Response().StatusCode(),
			"duration", time.Since(started),
		)
		return err
	}
}
