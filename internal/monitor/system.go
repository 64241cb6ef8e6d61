package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/zorak1103/dmon/internal/docker"
)

// ServerMetrics combines a host resource snapshot with the daemon's
// container counts.
type ServerMetrics struct {
	CPUPercent        float64   `json:"cpu_percent"`
	MemoryPercent     float64   `json:"memory_percent"`
	MemoryUsage       uint64    `json:"memory_usage"`
	MemoryTotal       uint64    `json:"memory_total"`
	DiskUsagePercent  float64   `json:"disk_usage_percent"`
	DiskUsage         uint64    `json:"disk_usage"`
	DiskTotal         uint64    `json:"disk_total"`
	RunningContainers int       `json:"running_containers"`
	TotalContainers   int       `json:"total_containers"`
	Timestamp         time.Time `json:"timestamp"`
}

// ServerMetrics samples the host and asks the daemon for container counts.
func (s *Service) ServerMetrics(ctx context.Context) (ServerMetrics, error) {
	info, err := s.docker.Info(ctx)
	if err != nil {
		return ServerMetrics{}, err
	}

	snap, err := s.host.Snapshot(ctx)
	if err != nil {
		return ServerMetrics{}, fmt.Errorf("failed to read host metrics: %w", err)
	}

	return ServerMetrics{
		CPUPercent:        snap.CPUPercent,
		MemoryPercent:     snap.MemoryPercent,
		MemoryUsage:       snap.MemoryUsed,
		MemoryTotal:       snap.MemoryTotal,
		DiskUsagePercent:  snap.DiskPercent,
		DiskUsage:         snap.DiskUsed,
		DiskTotal:         snap.DiskTotal,
		RunningContainers: info.ContainersRunning,
		TotalContainers:   info.Containers,
		Timestamp:         time.Now().UTC(),
	}, nil
}

// DaemonInfo exposes the daemon information subset.
func (s *Service) DaemonInfo(ctx context.Context) (docker.DaemonInfo, error) {
	return s.docker.Info(ctx)
}
