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
	"github.com/TimeWtr/StateJet"
)

// Collector is the low level metrics sink behind the batch collector.
type Collector interface {
	CollectSwitcher(enable bool) // collector on/off switch
	PropagationMetrics
	DeliveryMetrics
	ObserverMetrics
	ViolationMetrics
	BackpressureMetrics
	MulticastMetrics
}

// PropagationMetrics covers state values entering streams.
type PropagationMetrics interface {
	// ObservePropagation reports propagation counts, payload sizes and
	// rejected propagation counts.
	ObservePropagation(counts, sizes, errors float64)
}

// DeliveryMetrics covers handler dispatch outcomes.
type DeliveryMetrics interface {
	// DeliveryWithLatency reports delivery counts and the completion
	// latency for one outcome class.
	DeliveryWithLatency(status StateJet.DeliveryStatus, counts float64, millSeconds float64)
}

// ObserverMetrics covers the registered observer population.
type ObserverMetrics interface {
	// ObserveObservers reports observer registrations and releases.
	ObserveObservers(operation StateJet.OperationType, delta float64)
	// EvictionInc reports observers removed by maintenance.
	EvictionInc(delta float64)
}

// ViolationMetrics covers latency contract breaches.
type ViolationMetrics interface {
	ObserveViolations(counts float64)
}

// BackpressureMetrics covers propagations delayed by the concurrency
// bound.
type BackpressureMetrics interface {
	ObserveBackpressure(waits float64)
}

// MulticastMetrics covers broadcast deliveries to subscribers.
type MulticastMetrics interface {
	ObserveMulticast(deliveries float64)
}
