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
	"fmt"
	"time"

	"github.com/TimeWtr/StateJet"
)

const (
	defaultBatchingLatency = 20 * time.Millisecond
	defaultComplianceFloor = 0.95
	defaultCPUCeiling      = 85.0
)

// Recommendation is one tuning step derived from observed behavior.
type Recommendation struct {
	Action StateJet.OptimizationAction `json:"action"`
	Reason string                      `json:"reason"`
}

type OptimizerOption func(*Optimizer)

func WithBatchingLatency(d time.Duration) OptimizerOption {
	return func(o *Optimizer) {
		o.batchingLatency = d
	}
}

func WithComplianceFloor(floor float64) OptimizerOption {
	return func(o *Optimizer) {
		o.complianceFloor = floor
	}
}

func WithCPUCeiling(ceiling float64) OptimizerOption {
	return func(o *Optimizer) {
		o.cpuCeiling = ceiling
	}
}

// Optimizer derives tuning recommendations from window metrics and
// system load. It holds thresholds only, no state across calls, so the
// same inputs always produce the same recommendations.
type Optimizer struct {
	batchingLatency time.Duration
	complianceFloor float64
	cpuCeiling      float64
}

func NewOptimizer(opts ...OptimizerOption) *Optimizer {
	o := &Optimizer{
		batchingLatency: defaultBatchingLatency,
		complianceFloor: defaultComplianceFloor,
		cpuCeiling:      defaultCPUCeiling,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *Optimizer) Recommend(m Metrics, sys SystemStates) []Recommendation {
	var recs []Recommendation
	if m.EventCount > 0 && m.AverageLatency > o.batchingLatency {
		recs = append(recs, Recommendation{
			Action: StateJet.EnableBatching,
			Reason: fmt.Sprintf("average latency %s over %s", m.AverageLatency, o.batchingLatency),
		})
	}

	if m.EventCount > 0 && m.SLACompliance < o.complianceFloor {
		recs = append(recs, Recommendation{
			Action: StateJet.IncreasePriority,
			Reason: fmt.Sprintf("sla compliance %.3f under %.3f", m.SLACompliance, o.complianceFloor),
		})
	}

	if sys.CPU.Usage > o.cpuCeiling {
		recs = append(recs, Recommendation{
			Action: StateJet.ShedLoad,
			Reason: fmt.Sprintf("cpu usage %.1f%% over %.1f%%", sys.CPU.Usage, o.cpuCeiling),
		})
	}

	return recs
}
