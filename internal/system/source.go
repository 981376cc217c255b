package system

import (
	"context"
	"fmt"

	"hostbridge/internal/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// CPUStat is one logical core
type CPUStat struct {
	Name         string
	FrequencyMHz uint64
}

// MemoryStat holds physical memory counters in bytes
type MemoryStat struct {
	Total uint64
	Used  uint64
}

// DiskStat holds space counters of one mounted volume in bytes
type DiskStat struct {
	Name       string
	Mountpoint string
	Available  uint64
	Total      uint64
}

// NetworkStat holds cumulative counters of one interface
type NetworkStat struct {
	Name        string
	Received    uint64
	Transmitted uint64
	MAC         string
}

// Source reads raw host telemetry. Every call reads live state.
type Source interface {
	CPUs(ctx context.Context) ([]CPUStat, error)
	Memory(ctx context.Context) (MemoryStat, error)
	Disks(ctx context.Context) ([]DiskStat, error)
	Networks(ctx context.Context) ([]NetworkStat, error)
}

// HostSource reads the local host through gopsutil. It holds no state, so
// each Snapshot is a fresh refresh.
type HostSource struct{}

// NewHostSource returns the gopsutil-backed source
func NewHostSource() *HostSource {
	return &HostSource{}
}

// CPUs returns one entry per logical core. Platforms that report a single
// package entry share its frequency across all cores. When frequencies
// cannot be read the cores are still listed, at 0 MHz.
func (HostSource) CPUs(ctx context.Context) ([]CPUStat, error) {
	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count CPUs: %w", err)
	}
	info, err := cpu.InfoWithContext(ctx)
	if err != nil {
		if count <= 0 {
			return nil, fmt.Errorf("failed to get CPU info: %w", err)
		}
		logger.Warn().Err(err).Int("cores", count).Msg("cpu frequency unavailable")
		info = nil
	}
	return cpuStats(count, info), nil
}

// cpuStats names count cores cpu0..cpuN-1, falling back to len(info) when
// the count is unknown.
func cpuStats(count int, info []cpu.InfoStat) []CPUStat {
	if count <= 0 {
		count = len(info)
	}

	stats := make([]CPUStat, 0, count)
	for i := 0; i < count; i++ {
		var mhz float64
		if len(info) > 0 {
			mhz = info[min(i, len(info)-1)].Mhz
		}
		stats = append(stats, CPUStat{
			Name:         fmt.Sprintf("cpu%d", i),
			FrequencyMHz: uint64(max(mhz, 0)),
		})
	}
	return stats
}

// Memory returns total and used physical memory, used being total minus available
func (HostSource) Memory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, fmt.Errorf("failed to get memory info: %w", err)
	}
	used := vm.Used
	if vm.Available <= vm.Total {
		used = vm.Total - vm.Available
	}
	return MemoryStat{Total: vm.Total, Used: used}, nil
}

// Disks returns physical partitions in mount order. Partitions whose usage
// cannot be read are skipped.
func (HostSource) Disks(ctx context.Context) ([]DiskStat, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	stats := make([]DiskStat, 0, len(parts))
	for _, p := range parts {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		stats = append(stats, DiskStat{
			Name:       p.Device,
			Mountpoint: p.Mountpoint,
			Available:  usage.Free,
			Total:      usage.Total,
		})
	}
	return stats, nil
}

// Networks returns per-interface counters joined with the interface table for MACs
func (HostSource) Networks(ctx context.Context) ([]NetworkStat, error) {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get network counters: %w", err)
	}

	macs := make(map[string]string)
	if ifaces, err := psnet.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			macs[iface.Name] = iface.HardwareAddr
		}
	}

	stats := make([]NetworkStat, 0, len(counters))
	for _, c := range counters {
		stats = append(stats, NetworkStat{
			Name:        c.Name,
			Received:    c.BytesRecv,
			Transmitted: c.BytesSent,
			MAC:         macs[c.Name],
		})
	}
	return stats, nil
}
