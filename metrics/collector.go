// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

const percentBase = 100

type CPUCollector struct{}

func newCPUCollector() *CPUCollector {
	return &CPUCollector{}
}

func (c *CPUCollector) Collect() CPUStates {
	percs, err := cpu.Percent(0, false)
	if err != nil {
		return CPUStates{}
	}

	cpuStats := CPUStates{}
	cpuStats.Usage = percs[0]

	timeStates, err := cpu.Times(false)
	if err == nil && len(timeStates) > 0 {
		state := timeStates[0]
		total := state.User + state.System + state.Idle
		if total > 0 {
			cpuStats.User = state.User / total * percentBase
			cpuStats.System = state.System / total * percentBase
			cpuStats.Idle = state.Idle / total * percentBase
		}
	}

	avg, err := load.Avg()
	if err == nil && avg != nil {
		cpuStats.Load1 = avg.Load1
		cpuStats.Load5 = avg.Load5
		cpuStats.Load15 = avg.Load15
	}

	return cpuStats
}

type RuntimesCollector struct{}

func newRuntimesCollector() *RuntimesCollector {
	return &RuntimesCollector{}
}

func (r *RuntimesCollector) Collect() RuntimeStates {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	return RuntimeStates{
		Goroutines: uint64(runtime.NumGoroutine()),
		HeapAlloc:  memStats.HeapAlloc,
		StackAlloc: memStats.StackInuse,
		GCNums:     uint64(memStats.NumGC),
		GCPause: func() uint64 {
			if memStats.NumGC == 0 {
				return 0
			}
			idx := (memStats.NumGC - 1) % uint32(len(memStats.PauseNs))
			return memStats.PauseNs[idx]
		}(),
	}
}

type MemoryCollector struct{}

func newMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

func (m *MemoryCollector) Collect() MemoryStates {
	memStates := MemoryStates{}
	vms, err := mem.VirtualMemory()
	if err == nil && vms != nil {
		memStates.Total = vms.Total
		memStates.Used = vms.Used
		memStates.Free = vms.Free
		memStates.UsedPercent = vms.UsedPercent
		memStates.Cached = vms.Cached
		memStates.Buffers = vms.Buffers
	}

	return memStates
}
