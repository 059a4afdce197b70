package services

import (
	"context"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSnapshot is a point-in-time view of the host the operator is driving
// commands on.
type SystemSnapshot struct {
	Hostname      string    `json:"hostname"`
	OS            string    `json:"os"`
	Platform      string    `json:"platform"`
	UptimeSeconds uint64    `json:"uptimeSeconds"`
	CPUPercent    float64   `json:"cpuPercent"`
	LoadAvg       []float64 `json:"loadAvg"`
	MemoryTotal   uint64    `json:"memoryTotal"`
	MemoryUsed    uint64    `json:"memoryUsed"`
	MemoryPercent float64   `json:"memoryPercent"`
}

// SystemService reports host health alongside the command surface.
type SystemService struct{}

func NewSystemService() *SystemService {
	return &SystemService{}
}

// Snapshot gathers host information. Probes that fail leave their fields
// zeroed rather than failing the whole snapshot.
func (s *SystemService) Snapshot(ctx context.Context) SystemSnapshot {
	var snap SystemSnapshot

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.Hostname = info.Hostname
		snap.OS = info.OS
		snap.Platform = info.Platform
		snap.UptimeSeconds = info.Uptime
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		snap.LoadAvg = []float64{avg.Load1, avg.Load5, avg.Load15}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.MemoryTotal = vm.Total
		snap.MemoryUsed = vm.Used
		snap.MemoryPercent = vm.UsedPercent
	}

	return snap
}
