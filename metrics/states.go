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

import "time"

type Meta struct {
	LastCollectTime  time.Time `json:"lastCollectTime"`
	SuccessCount     int64     `json:"successCount,omitempty"`
	ErrCount         int       `json:"errCount,omitempty"`
	AverageTimeTaken int64     `json:"averageTimeTaken,omitempty"`
	TimeTakenQueue   []int64   `json:"timeTakenQueue,omitempty"`
}

// SystemStates is one snapshot of host and runtime load, collected
// periodically while the monitor runs.
type SystemStates struct {
	Timestamp int64         `json:"timestamp"`
	CPU       CPUStates     `json:"cpu"`
	Memory    MemoryStates  `json:"memory"`
	Runtime   RuntimeStates `json:"runtime"`
}

type CPUStates struct {
	Usage  float64 `json:"usage"`
	User   float64 `json:"user"`
	System float64 `json:"system"`
	Idle   float64 `json:"idle"`
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

type MemoryStates struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
	Cached      uint64  `json:"cached"`
	Buffers     uint64  `json:"buffers"`
}

type RuntimeStates struct {
	Goroutines uint64 `json:"goroutines"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	StackAlloc uint64 `json:"stackAlloc"`
	GCNums     uint64 `json:"gcNums"`
	GCPause    uint64 `json:"gcPause"`
}
