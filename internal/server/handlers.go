package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/zorak1103/dmon/internal/filter"
	"github.com/zorak1103/dmon/internal/monitor"
	"github.com/zorak1103/dmon/internal/version"
)

func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Docker Monitor Agent",
		"version": version.Version,
		"status":  "running",
	})
}

// handleHealth reports daemon reachability: 200 when the ping succeeds,
// 503 otherwise.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	hs := s.monitor.Health(c.Context())
	if !hs.Healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"docker":  "connection_failed",
			"message": "Docker connection failed: " + hs.Message,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"docker":  "connected",
		"message": "Agent is healthy and Docker is connected",
	})
}

// handleContainers lists containers, optionally narrowed by the name_filter
// pattern grammar (exact, *X*, X*, *X, comma-separated alternatives).
func (s *Server) handleContainers(c *fiber.Ctx) error {
	spec := filter.ParseSpec(c.Query("name_filter"))

	containers, err := s.monitor.ListContainers(c.Context(), spec)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"containers": containers})
}

func (s *Server) handleMonitoredContainers(c *fiber.Ctx) error {
	names := namesParam(c)
	if len(names) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "names query parameter is required",
		})
	}

	containers, err := s.monitor.NamedContainers(c.Context(), names)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"containers":  containers,
		"names":       names,
		"total_found": len(containers),
	})
}

// handleMonitoredMetrics collects metrics for the named containers. Names
// the collection failed for map to an error entry instead of failing the
// whole request; total_found counts the successful ones.
func (s *Server) handleMonitoredMetrics(c *fiber.Ctx) error {
	names := namesParam(c)
	if len(names) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "names query parameter is required",
		})
	}

	results, err := s.monitor.MetricsForNames(c.Context(), names)
	if err != nil {
		return errorResponse(c, err)
	}

	payload := make(fiber.Map, len(results))
	found := 0
	for name, res := range results {
		if res.Err != nil {
			payload[name] = fiber.Map{"error": res.Err.Error()}
			continue
		}
		payload[name] = res.Metrics
		found++
	}

	return c.JSON(fiber.Map{
		"metrics":     payload,
		"total_found": found,
	})
}

func (s *Server) handleContainerMetrics(c *fiber.Ctx) error {
	m, err := s.monitor.ContainerMetrics(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(m)
}

func (s *Server) handleContainerLogs(c *fiber.Ctx) error {
	tail := 100
	if raw := c.Query("tail"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tail must be a positive integer",
			})
		}
		tail = parsed
	}

	logs, err := s.monitor.ContainerLogs(c.Context(), c.Params("id"), tail)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"logs": logs})
}

type actionRequest struct {
	Action string `json:"action"`
}

// handleContainerAction validates the action vocabulary before anything
// touches the daemon, dispatches, and reports the observed post-action
// status.
func (s *Server) handleContainerAction(c *fiber.Ctx) error {
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	action, err := monitor.ParseAction(req.Action)
	if err != nil {
		return errorResponse(c, err)
	}

	ref := c.Params("id")
	result, err := s.monitor.Dispatch(c.Context(), ref, action)
	if err != nil {
		s.notifyActionFailure(ref, string(action), err)
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"action":  string(result.Action),
		"status":  result.Status,
		"message": fmt.Sprintf("Container %s %s successfully", ref, pastTense(result.Action)),
	})
}

func (s *Server) handleServerMetrics(c *fiber.Ctx) error {
	m, err := s.monitor.ServerMetrics(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(m)
}

func (s *Server) handleInfo(c *fiber.Ctx) error {
	info, err := s.monitor.DaemonInfo(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(info)
}

// namesParam splits the comma-separated names query parameter, trimming
// whitespace and dropping empty entries.
func namesParam(c *fiber.Ctx) []string {
	var names []string
	for _, part := range strings.Split(c.Query("names"), ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// notifyActionFailure reports a failed lifecycle action without blocking the
// response.
func (s *Server) notifyActionFailure(ref, action string, cause error) {
	if s.notifier == nil || !s.notifier.IsEnabled() {
		return
	}
	go func() {
		if err := s.notifier.SendActionFailure(ref, action, cause); err != nil {
			fmt.Printf("Warning: failed to send action failure notification: %v\n", err)
		}
	}()
}

func pastTense(a monitor.Action) string {
	switch a {
	case monitor.ActionStart:
		return "started"
	case monitor.ActionStop:
		return "stopped"
	case monitor.ActionRestart:
		return "restarted"
	case monitor.ActionPause:
		return "paused"
	case monitor.ActionUnpause:
		return "unpaused"
	}
	return string(a)
}
