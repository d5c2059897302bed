package provider

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// ProcessStats is a snapshot of host resource usage shown on the dashboard.
type ProcessStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsedMB     uint64  `json:"mem_used_mb"`
	MemTotalMB    uint64  `json:"mem_total_mb"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
}

// ProcessMonitor samples host CPU and memory usage.
type ProcessMonitor struct{}

// NewProcessMonitor creates a process monitor.
func NewProcessMonitor() *ProcessMonitor {
	return &ProcessMonitor{}
}

// Snapshot returns current host resource usage.
func (m *ProcessMonitor) Snapshot(ctx context.Context) (ProcessStats, error) {
	var stats ProcessStats

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return stats, fmt.Errorf("cpu percent: %w", err)
	}
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("virtual memory: %w", err)
	}
	stats.MemUsedMB = vm.Used / 1024 / 1024
	stats.MemTotalMB = vm.Total / 1024 / 1024

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("uptime: %w", err)
	}
	stats.UptimeSeconds = uptime

	return stats, nil
}
