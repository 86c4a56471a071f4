// Package performance samples the resource usage of the running process.
package performance

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ResourceMonitor measures resource usage relative to its creation
type ResourceMonitor struct {
	process      *process.Process
	startCPUTime float64
	startTime    time.Time
	mu           sync.RWMutex
}

// ResourceUsage contains resource usage information
type ResourceUsage struct {
	CPUPercent            float64 `json:"cpu_percent" cbor:"cpu_percent"`
	MemoryRSS             uint64  `json:"memory_rss" cbor:"memory_rss"`
	MemoryVMS             uint64  `json:"memory_vms" cbor:"memory_vms"`
	SystemMemoryPercent   float64 `json:"system_memory_percent" cbor:"system_memory_percent"`
	SystemMemoryAvailable uint64  `json:"system_memory_available" cbor:"system_memory_available"`
	LogicalCPUs           int     `json:"logical_cpus" cbor:"logical_cpus"`
	GoroutineCount        int     `json:"goroutines" cbor:"goroutines"`
	ThreadCount           int32   `json:"threads" cbor:"threads"`
}

// NewResourceMonitor creates a resource monitor for the current process.
// Where process statistics are unavailable the monitor still reports
// system-wide values.
func NewResourceMonitor() *ResourceMonitor {
	rm := &ResourceMonitor{startTime: time.Now()}

	proc, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return rm
	}
	rm.process = proc
	if t, err := proc.Times(); err == nil {
		rm.startCPUTime = t.Total()
	}
	return rm
}

// GetResourceUsage returns current resource usage. Individual samplers that
// fail leave their fields zero.
func (rm *ResourceMonitor) GetResourceUsage() *ResourceUsage {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	usage := &ResourceUsage{GoroutineCount: runtime.NumGoroutine()}

	if rm.process != nil {
		if cpuTime, err := rm.process.Times(); err == nil {
			if elapsed := time.Since(rm.startTime).Seconds(); elapsed > 0 {
				usage.CPUPercent = ((cpuTime.Total() - rm.startCPUTime) / elapsed) * 100
			}
		}
		if memInfo, err := rm.process.MemoryInfo(); err == nil {
			usage.MemoryRSS = memInfo.RSS
			usage.MemoryVMS = memInfo.VMS
		}
		usage.ThreadCount, _ = rm.process.NumThreads()
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemoryPercent = vmStat.UsedPercent
		usage.SystemMemoryAvailable = vmStat.Available
	}
	if n, err := cpu.Counts(true); err == nil {
		usage.LogicalCPUs = n
	}

	return usage
}

// Elapsed returns the time since the monitor was created
func (rm *ResourceMonitor) Elapsed() time.Duration {
	return time.Since(rm.startTime)
}
