// Package server exposes the monitoring agent over HTTP. It owns routing,
// middleware, authentication, and the JSON envelopes; all container
// knowledge lives behind the Monitor interface.
package server

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/zorak1103/dmon/internal/config"
	"github.com/zorak1103/dmon/internal/docker"
	"github.com/zorak1103/dmon/internal/filter"
	"github.com/zorak1103/dmon/internal/metrics"
	"github.com/zorak1103/dmon/internal/monitor"
	"github.com/zorak1103/dmon/internal/notification"
)

// Monitor is the container monitoring surface the HTTP layer depends on.
type Monitor interface {
	ListContainers(ctx context.Context, spec filter.Spec) ([]docker.Container, error)
	NamedContainers(ctx context.Context, names []string) ([]docker.Container, error)
	ContainerLogs(ctx context.Context, ref string, tail int) (string, error)
	ContainerMetrics(ctx context.Context, ref string) (metrics.Metrics, error)
	MetricsForNames(ctx context.Context, names []string) (map[string]monitor.NameResult, error)
	Dispatch(ctx context.Context, ref string, action monitor.Action) (monitor.ActionResult, error)
	Health(ctx context.Context) monitor.HealthStatus
	ServerMetrics(ctx context.Context) (monitor.ServerMetrics, error)
	DaemonInfo(ctx context.Context) (docker.DaemonInfo, error)
}

// Compile-time check that the monitor service satisfies the interface.
var _ Monitor = (*monitor.Service)(nil)

// Server wires the fiber app, its middleware, and the agent routes.
type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	monitor  Monitor
	notifier *notification.Notifier
}

// New assembles the HTTP server. The notifier may be nil or disabled; action
// failure notifications are then skipped.
func New(cfg config.ServerConfig, mon Monitor, notifier *notification.Notifier) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "dmon",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(AuthMiddleware(cfg.AuthToken))

	s := &Server{app: app, cfg: cfg, monitor: mon, notifier: notifier}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/", s.handleRoot)
	s.app.Get("/health", s.handleHealth)

	s.app.Get("/containers", s.handleContainers)
	s.app.Get("/monitored-containers", s.handleMonitoredContainers)
	s.app.Get("/monitored-containers/metrics", s.handleMonitoredMetrics)
	s.app.Get("/containers/:id/metrics", s.handleContainerMetrics)
	s.app.Get("/containers/:id/logs", s.handleContainerLogs)
	s.app.Post("/containers/:id/action", s.handleContainerAction)
	s.app.Get("/metrics", s.handleServerMetrics)
	s.app.Get("/info", s.handleInfo)
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr())
}

// Shutdown stops accepting new connections and drains in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
