// Package sysinfo reads host-level resource usage for the server metrics endpoint.
package sysinfo

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cloudfoundry/gosigar"
)

// Snapshot is one host-level resource reading. Byte counters are bytes;
// percentages are rounded to two decimals.
type Snapshot struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsed    uint64
	MemoryTotal   uint64
	DiskPercent   float64
	DiskUsed      uint64
	DiskTotal     uint64
}

// Provider reads host resource usage.
type Provider interface {
	// Snapshot samples the host. It blocks for the configured CPU sample
	// period, so callers should pass a request-scoped context.
	Snapshot(ctx context.Context) (Snapshot, error)
}

type provider struct {
	diskPath     string
	samplePeriod time.Duration
}

// NewProvider returns a Provider that reports disk usage for diskPath and
// derives CPU percent from two samples taken samplePeriod apart.
func NewProvider(diskPath string, samplePeriod time.Duration) Provider {
	return &provider{
		diskPath:     diskPath,
		samplePeriod: samplePeriod,
	}
}

func (p *provider) Snapshot(ctx context.Context) (Snapshot, error) {
	cpuPct, err := p.cpuPercent(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to sample cpu usage: %w", err)
	}

	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read memory usage: %w", err)
	}

	disk := sigar.FileSystemUsage{}
	if err := disk.Get(p.diskPath); err != nil {
		return Snapshot{}, fmt.Errorf("failed to read disk usage for %s: %w", p.diskPath, err)
	}

	snap := Snapshot{
		CPUPercent:  cpuPct,
		MemoryUsed:  mem.ActualUsed,
		MemoryTotal: mem.Total,
		DiskUsed:    fromKBytesToBytes(disk.Used),
		DiskTotal:   fromKBytesToBytes(disk.Total),
	}

	if mem.Total > 0 {
		snap.MemoryPercent = round2(float64(mem.ActualUsed) / float64(mem.Total) * 100)
	}
	if disk.Total > 0 {
		snap.DiskPercent = round2(float64(disk.Used) / float64(disk.Total) * 100)
	}

	return snap, nil
}

// cpuPercent derives host CPU utilization from the jiffy counters of two
// samples. Idle and iowait time both count as idle.
func (p *provider) cpuPercent(ctx context.Context) (float64, error) {
	first := sigar.Cpu{}
	if err := first.Get(); err != nil {
		return 0, err
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(p.samplePeriod):
	}

	second := sigar.Cpu{}
	if err := second.Get(); err != nil {
		return 0, err
	}

	if second.Total() <= first.Total() {
		return 0, nil
	}

	totalDelta := float64(second.Total() - first.Total())
	idleDelta := float64((second.Idle + second.Wait) - (first.Idle + first.Wait))

	busy := totalDelta - idleDelta
	if busy < 0 {
		busy = 0
	}

	return round2(busy / totalDelta * 100), nil
}

// gosigar reports filesystem usage in kilobytes
func fromKBytesToBytes(kbytes uint64) uint64 {
	return kbytes * 1024
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
