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
	"net/http"

	"github.com/TimeWtr/StateJet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mc       *Prometheus
	registry *prometheus.Registry // metric registry
)

// GetHandler returns the HTTP handler to mount on any framework.
func GetHandler() http.Handler {
	return promhttp.HandlerFor(
		registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	)
}

var _ Collector = (*Prometheus)(nil)

type Prometheus struct {
	enabled             bool                   // whether collection is enabled
	propagationCounter  *prometheus.CounterVec // total propagated state values
	propagationSizes    prometheus.Counter     // total propagated payload bytes
	propagationErrors   prometheus.Counter     // rejected propagation count
	deliveryCounts      prometheus.Counter     // total successful handler deliveries
	deliveryLatency     prometheus.Histogram   // handler completion latency
	deliveryErrors      prometheus.Counter     // handler failure count
	skippedDeliveries   prometheus.Counter     // dispatches skipped for dead or unhealthy observers
	activeObservers     prometheus.Gauge       // currently registered observers
	observerEvictions   prometheus.Counter     // observers removed by maintenance
	slaViolations       prometheus.Counter     // propagations exceeding the latency bound
	backpressureWaits   prometheus.Counter     // propagations delayed by the concurrency bound
	multicastDeliveries prometheus.Counter     // values delivered to multicast subscribers
}

func NewPrometheus() *Prometheus {
	mc = &Prometheus{}
	registry = prometheus.NewRegistry()
	return mc.register()
}

func (p *Prometheus) register() *Prometheus {
	const namespace = "StateJet"
	p.propagationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagation_counts_total",
		Help:      "Number of state values propagated.",
	}, []string{"result"})
	registry.MustRegister(p.propagationCounter)

	p.propagationSizes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagation_sizes_total",
		Help:      "Number of payload bytes propagated.",
	})
	registry.MustRegister(p.propagationSizes)

	p.propagationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "propagation_errors_total",
		Help:      "Number of propagations rejected.",
	})
	registry.MustRegister(p.propagationErrors)

	p.deliveryCounts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_counts_total",
		Help:      "Number of handler deliveries completed.",
	})
	registry.MustRegister(p.deliveryCounts)

	p.deliveryLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "delivery_latency",
		Help:      "Latency of handler deliveries.",
	})
	registry.MustRegister(p.deliveryLatency)

	p.deliveryErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_errors_total",
		Help:      "Number of handler deliveries failed.",
	})
	registry.MustRegister(p.deliveryErrors)

	p.skippedDeliveries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_delivery_counts_total",
		Help:      "Number of deliveries skipped.",
	})
	registry.MustRegister(p.skippedDeliveries)

	p.activeObservers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_observers",
		Help:      "Number of registered observers.",
	})
	registry.MustRegister(p.activeObservers)

	p.observerEvictions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "observer_evictions_total",
		Help:      "Number of observers removed by maintenance.",
	})
	registry.MustRegister(p.observerEvictions)

	p.slaViolations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sla_violations_total",
		Help:      "Number of propagations over the latency bound.",
	})
	registry.MustRegister(p.slaViolations)

	p.backpressureWaits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backpressure_waits_total",
		Help:      "Number of propagations delayed by backpressure.",
	})
	registry.MustRegister(p.backpressureWaits)

	p.multicastDeliveries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "multicast_deliveries_total",
		Help:      "Number of values delivered to multicast subscribers.",
	})
	registry.MustRegister(p.multicastDeliveries)

	return p
}

func (p *Prometheus) CollectSwitcher(enable bool) {
	p.enabled = enable
}

func (p *Prometheus) ObservePropagation(counts, sizes, errors float64) {
	if !p.enabled {
		return
	}

	p.propagationCounter.With(prometheus.Labels{"result": "success"}).Add(counts)
	p.propagationSizes.Add(sizes)
	p.propagationErrors.Add(errors)
}

func (p *Prometheus) DeliveryWithLatency(status StateJet.DeliveryStatus, counts, millSeconds float64) {
	if !p.enabled {
		return
	}

	switch status {
	case StateJet.DeliverySuccess:
		p.deliveryCounts.Add(counts)
		p.deliveryLatency.Observe(millSeconds)
	case StateJet.DeliveryFailure:
		p.deliveryErrors.Add(counts)
	case StateJet.DeliverySkip:
		p.skippedDeliveries.Add(counts)
	}
}

func (p *Prometheus) ObserveObservers(operation StateJet.OperationType, delta float64) {
	if !p.enabled {
		return
	}

	if operation == StateJet.MetricsIncOp {
		p.activeObservers.Add(delta)
	} else {
		p.activeObservers.Add(-delta)
	}
}

func (p *Prometheus) EvictionInc(delta float64) {
	if !p.enabled {
		return
	}

	p.observerEvictions.Add(delta)
}

func (p *Prometheus) ObserveViolations(counts float64) {
	if !p.enabled {
		return
	}

	p.slaViolations.Add(counts)
}

func (p *Prometheus) ObserveBackpressure(waits float64) {
	if !p.enabled {
		return
	}

	p.backpressureWaits.Add(waits)
}

func (p *Prometheus) ObserveMulticast(deliveries float64) {
	if !p.enabled {
		return
	}

	p.multicastDeliveries.Add(deliveries)
}
