package metrics

import (
	"testing"
	"time"

	"github.com/zorak1103/dmon/internal/docker"
)

func pairWith(cur docker.CPUSample, prev *docker.CPUSample) docker.StatsPair {
	return docker.StatsPair{
		Current: docker.StatSnapshot{CPU: cur},
		PreCPU:  prev,
	}
}

func TestCompute_CPUPercent(t *testing.T) {
	tests := []struct {
		name string
		cur  docker.CPUSample
		prev *docker.CPUSample
		want float64
	}{
		{
			name: "no previous sample reports zero",
			cur:  docker.CPUSample{TotalUsage: 400, SystemUsage: 2000, OnlineCPUs: 4},
			prev: nil,
			want: 0,
		},
		{
			name: "zero system delta reports zero",
			cur:  docker.CPUSample{TotalUsage: 400, SystemUsage: 1000, OnlineCPUs: 4},
			prev: &docker.CPUSample{TotalUsage: 300, SystemUsage: 1000},
			want: 0,
		},
		{
			name: "negative system delta reports zero",
			cur:  docker.CPUSample{TotalUsage: 400, SystemUsage: 900, OnlineCPUs: 4},
			prev: &docker.CPUSample{TotalUsage: 300, SystemUsage: 1000},
			want: 0,
		},
		{
			name: "container counter reset reports zero",
			cur:  docker.CPUSample{TotalUsage: 100, SystemUsage: 2000, OnlineCPUs: 4},
			prev: &docker.CPUSample{TotalUsage: 300, SystemUsage: 1000},
			want: 0,
		},
		{
			name: "ten percent of one core on a four core host",
			cur:  docker.CPUSample{TotalUsage: 1100000000, SystemUsage: 5000000000, OnlineCPUs: 4},
			prev: &docker.CPUSample{TotalUsage: 1000000000, SystemUsage: 4000000000},
			want: 40,
		},
		{
			name: "falls back to percpu count when online cpus missing",
			cur:  docker.CPUSample{TotalUsage: 1100000000, SystemUsage: 5000000000, PercpuCount: 2},
			prev: &docker.CPUSample{TotalUsage: 1000000000, SystemUsage: 4000000000},
			want: 20,
		},
		{
			name: "assumes one cpu when daemon reports neither",
			cur:  docker.CPUSample{TotalUsage: 1100000000, SystemUsage: 5000000000},
			prev: &docker.CPUSample{TotalUsage: 1000000000, SystemUsage: 4000000000},
			want: 10,
		},
		{
			name: "result is rounded to two decimals",
			cur:  docker.CPUSample{TotalUsage: 1000000100, SystemUsage: 4000000300, OnlineCPUs: 1},
			prev: &docker.CPUSample{TotalUsage: 1000000000, SystemUsage: 4000000000},
			want: 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(pairWith(tt.cur, tt.prev))
			if m.CPUPercent != tt.want {
				t.Errorf("CPUPercent = %v, want %v", m.CPUPercent, tt.want)
			}
		})
	}
}

func TestCompute_MemoryPercent(t *testing.T) {
	tests := []struct {
		name  string
		usage uint64
		limit uint64
		want  float64
	}{
		{
			name:  "quarter of the limit",
			usage: 536870912,
			limit: 2147483648,
			want:  25,
		},
		{
			name:  "zero limit reports zero percent",
			usage: 536870912,
			limit: 0,
			want:  0,
		},
		{
			name:  "rounded to two decimals",
			usage: 1,
			limit: 3,
			want:  33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(docker.StatsPair{
				Current: docker.StatSnapshot{MemoryUsage: tt.usage, MemoryLimit: tt.limit},
			})
			if m.MemoryPercent != tt.want {
				t.Errorf("MemoryPercent = %v, want %v", m.MemoryPercent, tt.want)
			}
			if m.MemoryUsage != tt.usage || m.MemoryLimit != tt.limit {
				t.Errorf("byte counters not passed through: usage=%d limit=%d", m.MemoryUsage, m.MemoryLimit)
			}
		})
	}
}

func TestCompute_NetworkTotals(t *testing.T) {
	m := Compute(docker.StatsPair{
		Current: docker.StatSnapshot{
			Networks: map[string]docker.NetworkCounters{
				"eth0": {RxBytes: 1000, TxBytes: 400},
				"eth1": {RxBytes: 24, TxBytes: 6},
			},
		},
	})

	if m.NetworkRx != 1024 {
		t.Errorf("NetworkRx = %d, want 1024", m.NetworkRx)
	}
	if m.NetworkTx != 406 {
		t.Errorf("NetworkTx = %d, want 406", m.NetworkTx)
	}
}

func TestCompute_NoNetworks(t *testing.T) {
	m := Compute(docker.StatsPair{Current: docker.StatSnapshot{}})

	if m.NetworkRx != 0 || m.NetworkTx != 0 {
		t.Errorf("Expected zero network totals, got rx=%d tx=%d", m.NetworkRx, m.NetworkTx)
	}
}

func TestCompute_Timestamp(t *testing.T) {
	read := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m := Compute(docker.StatsPair{Current: docker.StatSnapshot{Read: read}})
	if !m.Timestamp.Equal(read) {
		t.Errorf("Timestamp = %v, want daemon read time %v", m.Timestamp, read)
	}

	before := time.Now().UTC()
	m = Compute(docker.StatsPair{})
	if m.Timestamp.Before(before) {
		t.Errorf("Expected current time fallback, got %v", m.Timestamp)
	}
}

func TestUptime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startedAt time.Time
		want      int64
	}{
		{
			name:      "running for ninety seconds",
			startedAt: now.Add(-90 * time.Second),
			want:      90,
		},
		{
			name:      "never started reports zero",
			startedAt: time.Time{},
			want:      0,
		},
		{
			name:      "start time in the future reports zero",
			startedAt: now.Add(10 * time.Second),
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Uptime(tt.startedAt, now); got != tt.want {
				t.Errorf("Uptime = %d, want %d", got, tt.want)
			}
		})
	}
}
