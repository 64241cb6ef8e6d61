// Package monitor orchestrates container queries, metrics aggregation, and
// lifecycle actions on top of the Docker client.
package monitor

import (
	"context"
	"time"

	"github.com/zorak1103/dmon/internal/docker"
	"github.com/zorak1103/dmon/internal/filter"
	"github.com/zorak1103/dmon/internal/sysinfo"
)

// Service answers the agent's queries. It holds no per-request state; every
// call works from a fresh daemon read.
type Service struct {
	docker      docker.Client
	host        sysinfo.Provider
	pingTimeout time.Duration
}

// NewService wires a Service from its dependencies. pingTimeout bounds
// health-check pings so a wedged daemon cannot stall the health endpoint.
func NewService(dockerCli docker.Client, host sysinfo.Provider, pingTimeout time.Duration) *Service {
	return &Service{
		docker:      dockerCli,
		host:        host,
		pingTimeout: pingTimeout,
	}
}

// ListContainers returns all containers that satisfy the filter, in the
// order the daemon reports them. The empty filter returns everything,
// including stopped containers.
func (s *Service) ListContainers(ctx context.Context, spec filter.Spec) ([]docker.Container, error) {
	containers, err := s.docker.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	if spec.IsEmpty() {
		return containers, nil
	}

	filtered := make([]docker.Container, 0, len(containers))
	for _, ctr := range containers {
		if spec.Match(ctr.Name) {
			filtered = append(filtered, ctr)
		}
	}

	return filtered, nil
}

// NamedContainers returns the containers whose names appear in names,
// matched exactly and case-sensitively. Names with no matching container
// are silently omitted; callers compare requested and returned counts to
// detect that. Daemon order is preserved and duplicates collapse.
func (s *Service) NamedContainers(ctx context.Context, names []string) ([]docker.Container, error) {
	containers, err := s.docker.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	result := make([]docker.Container, 0, len(wanted))
	for _, ctr := range containers {
		if wanted[ctr.Name] {
			result = append(result, ctr)
		}
	}

	return result, nil
}

// ContainerLogs returns up to tail lines of the container's logs as plain
// text. Content is the daemon's, untransformed.
func (s *Service) ContainerLogs(ctx context.Context, ref string, tail int) (string, error) {
	return s.docker.ContainerLogs(ctx, ref, tail)
}

// HealthStatus is the result of a daemon reachability probe.
type HealthStatus struct {
	Healthy bool
	Message string
}

// Health pings the daemon with the configured timeout.
func (s *Service) Health(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()

	if err := s.docker.Ping(ctx); err != nil {
		return HealthStatus{Healthy: false, Message: err.Error()}
	}

	return HealthStatus{Healthy: true, Message: "Docker daemon reachable"}
}
