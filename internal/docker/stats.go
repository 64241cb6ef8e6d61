package docker

import "github.com/docker/docker/api/types/container"

// newStatsPair converts a daemon stats response into the agent's snapshot
// form. The daemon's precpu block is all zeros when no previous sample
// exists; that case is detected via system_cpu_usage and the previous
// sample is dropped entirely rather than passed along as zeros.
func newStatsPair(raw container.StatsResponse) StatsPair {
	snap := StatSnapshot{
		Read: raw.Read,
		CPU: CPUSample{
			TotalUsage:  raw.CPUStats.CPUUsage.TotalUsage,
			SystemUsage: raw.CPUStats.SystemUsage,
			OnlineCPUs:  raw.CPUStats.OnlineCPUs,
			PercpuCount: len(raw.CPUStats.CPUUsage.PercpuUsage),
		},
		MemoryUsage: raw.MemoryStats.Usage,
		MemoryLimit: raw.MemoryStats.Limit,
	}

	if len(raw.Networks) > 0 {
		snap.Networks = make(map[string]NetworkCounters, len(raw.Networks))
		for iface, net := range raw.Networks {
			snap.Networks[iface] = NetworkCounters{
				RxBytes: net.RxBytes,
				TxBytes: net.TxBytes,
			}
		}
	}

	pair := StatsPair{Current: snap}

	if raw.PreCPUStats.SystemUsage > 0 {
		pair.PreCPU = &CPUSample{
			TotalUsage:  raw.PreCPUStats.CPUUsage.TotalUsage,
			SystemUsage: raw.PreCPUStats.SystemUsage,
			OnlineCPUs:  raw.PreCPUStats.OnlineCPUs,
			PercpuCount: len(raw.PreCPUStats.CPUUsage.PercpuUsage),
		}
	}

	return pair
}
