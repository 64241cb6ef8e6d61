package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/zorak1103/dmon/internal/docker"
	apperrors "github.com/zorak1103/dmon/internal/errors"
	"github.com/zorak1103/dmon/internal/metrics"
)

// ContainerMetrics collects one aggregated reading for a container addressed
// by ID or name. Uptime counts only for containers that are currently up.
func (s *Service) ContainerMetrics(ctx context.Context, ref string) (metrics.Metrics, error) {
	details, err := s.docker.InspectContainer(ctx, ref)
	if err != nil {
		return metrics.Metrics{}, err
	}

	pair, err := s.docker.ContainerStats(ctx, ref)
	if err != nil {
		return metrics.Metrics{}, err
	}

	m := metrics.Compute(pair)
	m.RestartCount = details.RestartCount
	if details.Status == "running" || details.Status == "paused" {
		m.UptimeSeconds = metrics.Uptime(details.StartedAt, time.Now().UTC())
	}

	return m, nil
}

// NameResult is the per-name outcome of a batch metrics request: either a
// reading or the error that prevented one.
type NameResult struct {
	Metrics *metrics.Metrics
	Err     error
}

// MetricsForNames collects metrics for a set of exact container names.
// Unknown names and per-container collection failures are recorded in the
// result instead of aborting the batch; only a failure to list containers
// at all is returned as an error. Collection fans out per container.
func (s *Service) MetricsForNames(ctx context.Context, names []string) (map[string]NameResult, error) {
	containers, err := s.docker.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]docker.Container, len(containers))
	for _, ctr := range containers {
		byName[ctr.Name] = ctr
	}

	results := make(map[string]NameResult, len(names))

	// Resolve names first so unknown ones are settled before any fetch.
	type lookup struct {
		name string
		id   string
	}
	var found []lookup
	for _, name := range names {
		if _, dup := results[name]; dup {
			continue
		}
		ctr, ok := byName[name]
		if !ok {
			results[name] = NameResult{Err: &apperrors.ContainerNotFoundError{Ref: name}}
			continue
		}
		results[name] = NameResult{}
		found = append(found, lookup{name: name, id: ctr.ID})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, l := range found {
		wg.Add(1)
		go func(name, id string) {
			defer wg.Done()

			m, err := s.ContainerMetrics(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[name] = NameResult{Err: err}
				return
			}
			results[name] = NameResult{Metrics: &m}
		}(l.name, l.id)
	}

	wg.Wait()

	return results, nil
}
