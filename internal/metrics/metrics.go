// Package metrics turns raw daemon counters into user-facing container metrics.
package metrics

import (
	"math"
	"time"

	"github.com/zorak1103/dmon/internal/docker"
)

// Metrics is one aggregated reading for a container. Percentages are rounded
// to two decimals; byte counters are passed through as the daemon reports
// them. Network totals are cumulative since container start, not rates.
type Metrics struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	MemoryUsage   uint64    `json:"memory_usage"`
	MemoryLimit   uint64    `json:"memory_limit"`
	NetworkRx     uint64    `json:"network_rx"`
	NetworkTx     uint64    `json:"network_tx"`
	RestartCount  int       `json:"restart_count"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Timestamp     time.Time `json:"timestamp"`
}

// Compute aggregates one stats pair. CPU percent needs the previous sample;
// without one it reports 0 rather than guessing. RestartCount and
// UptimeSeconds come from inspect data and are filled in by the caller.
func Compute(pair docker.StatsPair) Metrics {
	cur := pair.Current

	ts := cur.Read
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	m := Metrics{
		CPUPercent:  cpuPercent(cur.CPU, pair.PreCPU),
		MemoryUsage: cur.MemoryUsage,
		MemoryLimit: cur.MemoryLimit,
		Timestamp:   ts,
	}

	// A zero limit means the daemon reported no usable ceiling; percent is
	// meaningless then and stays 0.
	if cur.MemoryLimit > 0 {
		m.MemoryPercent = round2(float64(cur.MemoryUsage) / float64(cur.MemoryLimit) * 100.0)
	}

	for _, counters := range cur.Networks {
		m.NetworkRx += counters.RxBytes
		m.NetworkTx += counters.TxBytes
	}

	return m
}

// Uptime converts a container start time into whole seconds of uptime as of
// now. Never-started containers (zero start time) and clock skew report 0.
func Uptime(startedAt time.Time, now time.Time) int64 {
	if startedAt.IsZero() || now.Before(startedAt) {
		return 0
	}
	return int64(now.Sub(startedAt).Seconds())
}

// cpuPercent applies the daemon's delta formula: container CPU time over
// host CPU time, scaled by the number of CPUs. Counter resets and absent
// previous samples yield 0.
func cpuPercent(cur docker.CPUSample, prev *docker.CPUSample) float64 {
	if prev == nil {
		return 0
	}
	if cur.SystemUsage <= prev.SystemUsage || cur.TotalUsage < prev.TotalUsage {
		return 0
	}

	cpuDelta := float64(cur.TotalUsage - prev.TotalUsage)
	systemDelta := float64(cur.SystemUsage - prev.SystemUsage)

	// cgroup v2 daemons report online_cpus but no per-cpu breakdown, so
	// prefer the explicit count and fall back to the slice length.
	cpus := float64(cur.OnlineCPUs)
	if cpus == 0 {
		cpus = float64(cur.PercpuCount)
	}
	if cpus == 0 {
		cpus = 1
	}

	return round2(cpuDelta / systemDelta * cpus * 100.0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
