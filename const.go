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

package StateJet

// Priority is the dispatch tier an observer registers with. Higher tiers
// are notified strictly before lower ones within a single propagation.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (p Priority) Validate() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

// Tiers returns every priority in dispatch order, highest first.
func Tiers() []Priority {
	return []Priority{PriorityCritical, PriorityHigh, PriorityNormal, PriorityLow}
}

// HealthState is the lifecycle state of a registered observer. An observer
// marked Unhealthy stays unhealthy until maintenance removes it.
type HealthState int

const (
	Healthy HealthState = iota
	Unhealthy
)

func (h HealthState) String() string {
	switch h {
	case Healthy:
		return "healthy"
	case Unhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

type CollectorType int

const (
	PrometheusCollector CollectorType = iota
	OpenTelemetryCollector
)

func (c CollectorType) String() string {
	switch c {
	case PrometheusCollector:
		return "Prometheus"
	case OpenTelemetryCollector:
		return "OpenTelemetry"
	default:
		return "unknown"
	}
}

func (c CollectorType) Validate() bool {
	switch c {
	case PrometheusCollector, OpenTelemetryCollector:
		return true
	default:
		return false
	}
}

type OperationType int

const (
	MetricsIncOp OperationType = iota
	MetricsDecOp
)

// DeliveryStatus is the outcome of dispatching one state value to one
// observer handler.
type DeliveryStatus int

const (
	DeliverySuccess DeliveryStatus = iota
	DeliveryFailure
	DeliverySkip
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliverySuccess:
		return "Delivery success"
	case DeliveryFailure:
		return "Delivery failure"
	case DeliverySkip:
		return "Delivery skip"
	default:
		return "unknown"
	}
}

// OptimizationAction is an adaptive tuning step recommended by the
// optimizer from observed latency, compliance and system load.
type OptimizationAction int

const (
	EnableBatching OptimizationAction = iota
	IncreasePriority
	ShedLoad
)

func (a OptimizationAction) String() string {
	switch a {
	case EnableBatching:
		return "enable batching"
	case IncreasePriority:
		return "increase priority"
	case ShedLoad:
		return "shed load"
	default:
		return "unknown"
	}
}

// SlowStreakLimit is the consecutive slow execution count at which the
// streak factor saturates when judging observer health.
const SlowStreakLimit = 5

const (
	LatencyWeight  = 0.6
	StreakWeight   = 0.4
	UnhealthyScore = 0.85
)
