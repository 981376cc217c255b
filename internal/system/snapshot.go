package system

import (
	"context"
	"fmt"

	"hostbridge/internal/logger"
)

const (
	bytesPerMB = 1 << 20
	bytesPerGB = 1 << 30

	// UnspecifiedMAC is reported for interfaces without a hardware address
	UnspecifiedMAC = "00:00:00:00:00:00"
)

// Snapshot is one point-in-time aggregation of host telemetry.
// It is built fresh on every call and never cached.
type Snapshot struct {
	CPU      []string          `json:"cpu"`
	Memory   string            `json:"memory"`
	Disks    []string          `json:"disks"`
	Networks map[string]string `json:"networks"`
}

// Collector assembles snapshots from a Source
type Collector struct {
	source Source
}

// NewCollector returns a collector reading from src
func NewCollector(src Source) *Collector {
	return &Collector{source: src}
}

// Snapshot reads every category once and formats the result.
// A category that cannot be read comes back empty; the call itself never fails.
func (c *Collector) Snapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		CPU:      []string{},
		Disks:    []string{},
		Networks: map[string]string{},
	}

	if cpus, err := c.source.CPUs(ctx); err != nil {
		logger.Warn().Err(err).Str("category", "cpu").Msg("telemetry degraded")
	} else {
		for _, s := range cpus {
			snap.CPU = append(snap.CPU, FormatCPU(s))
		}
	}

	if m, err := c.source.Memory(ctx); err != nil {
		logger.Warn().Err(err).Str("category", "memory").Msg("telemetry degraded")
	} else {
		snap.Memory = FormatMemory(m)
	}

	if disks, err := c.source.Disks(ctx); err != nil {
		logger.Warn().Err(err).Str("category", "disk").Msg("telemetry degraded")
	} else {
		for _, d := range disks {
			snap.Disks = append(snap.Disks, FormatDisk(d))
		}
	}

	if nics, err := c.source.Networks(ctx); err != nil {
		logger.Warn().Err(err).Str("category", "network").Msg("telemetry degraded")
	} else {
		for _, n := range nics {
			snap.Networks[n.Name] = FormatNetwork(n)
		}
	}

	return snap
}

// FormatCPU renders "<name>: <frequency> MHz"
func FormatCPU(s CPUStat) string {
	return fmt.Sprintf("%s: %d MHz", s.Name, s.FrequencyMHz)
}

// FormatMemory renders total and used memory in truncated megabytes
func FormatMemory(s MemoryStat) string {
	return fmt.Sprintf("Total: %d MB, Used: %d MB", s.Total/bytesPerMB, s.Used/bytesPerMB)
}

// FormatDisk renders available and total space in truncated gigabytes
func FormatDisk(s DiskStat) string {
	return fmt.Sprintf("%s: %d GB / %d GB", s.Name, s.Available/bytesPerGB, s.Total/bytesPerGB)
}

// FormatNetwork renders the cumulative counters and MAC of one interface
func FormatNetwork(s NetworkStat) string {
	mac := s.MAC
	if mac == "" {
		mac = UnspecifiedMAC
	}
	return fmt.Sprintf("Received: %d B, Transmitted: %d B, MAC: %s", s.Received, s.Transmitted, mac)
}
