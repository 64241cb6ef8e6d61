package docker

import "time"

// Container represents a Docker container with relevant metadata
type Container struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Status  string            `json:"status"` // running, exited, paused, restarting, created, dead
	Image   string            `json:"image"`
	Created time.Time         `json:"created"`
	Ports   []PortBinding     `json:"ports"`
	Labels  map[string]string `json:"labels"`
}

// PortBinding represents a single published or exposed container port
type PortBinding struct {
	HostIP      string `json:"host_ip,omitempty"` // empty when the port is exposed but not published
	PrivatePort uint16 `json:"container_port"`
	PublicPort  uint16 `json:"host_port,omitempty"` // zero when the port is exposed but not published
	Protocol    string `json:"protocol"`
}

// ContainerDetails is the inspect subset needed to enrich metrics.
type ContainerDetails struct {
	ID           string
	Name         string
	Status       string
	StartedAt    time.Time // zero when the container never started
	RestartCount int
}

// CPUSample holds the daemon's cumulative CPU counters at one read.
// Both counters are nanoseconds of CPU time since boot.
type CPUSample struct {
	TotalUsage  uint64 // container CPU time
	SystemUsage uint64 // host CPU time across all cores
	OnlineCPUs  uint32
	PercpuCount int
}

// NetworkCounters holds cumulative per-interface traffic totals.
type NetworkCounters struct {
	RxBytes uint64
	TxBytes uint64
}

// StatSnapshot is one decoded stats read for a container.
type StatSnapshot struct {
	Read        time.Time
	CPU         CPUSample
	MemoryUsage uint64
	MemoryLimit uint64
	Networks    map[string]NetworkCounters
}

// StatsPair bundles a snapshot with the daemon-supplied previous CPU sample.
// PreCPU is nil when the daemon had no previous read to report, which happens
// on one-shot collection or the first read of a fresh container.
type StatsPair struct {
	Current StatSnapshot
	PreCPU  *CPUSample
}

// DaemonInfo is the subset of the daemon's system info the agent exposes.
type DaemonInfo struct {
	ServerVersion     string `json:"version"`
	Containers        int    `json:"containers"`
	ContainersRunning int    `json:"containers_running"`
	ContainersPaused  int    `json:"containers_paused"`
	ContainersStopped int    `json:"containers_stopped"`
	Images            int    `json:"images"`
	Driver            string `json:"driver"`
	KernelVersion     string `json:"kernel_version"`
	OperatingSystem   string `json:"operating_system"`
	Architecture      string `json:"architecture"`
	NCPU              int    `json:"ncpu"`
	MemTotal          int64  `json:"mem_total"`
}
