package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// HostInfo represents static host identity
type HostInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Kernel   string `json:"kernel"`
	CPU      string `json:"cpu"`
}

// GetHostInfo returns static host identity
func GetHostInfo(ctx context.Context) (*HostInfo, error) {
	hostStat, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	cpuModel, err := GetCPUModel(ctx)
	if err != nil {
		cpuModel = "Unknown CPU" // Continue without CPU model
	}

	return &HostInfo{
		Hostname: hostStat.Hostname,
		OS:       fmt.Sprintf("%s %s %s", hostStat.Platform, hostStat.PlatformVersion, hostStat.KernelArch),
		Kernel:   fmt.Sprintf("%s %s", hostStat.OS, hostStat.KernelVersion),
		CPU:      cpuModel,
	}, nil
}

// GetCPUModel returns formatted CPU model information
func GetCPUModel(ctx context.Context) (string, error) {
	cpuStat, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get CPU info: %w", err)
	}

	if len(cpuStat) == 0 {
		return "Unknown CPU", nil
	}

	threads, err := cpu.CountsWithContext(ctx, true)
	if err != nil || threads <= 0 {
		threads = len(cpuStat)
	}

	return fmt.Sprintf("%s (%d)", cpuStat[0].ModelName, threads), nil
}
