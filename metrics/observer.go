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
	"encoding/json"
	"fmt"

	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/prometheus/client_golang/prometheus"
)

type ConsoleObserver struct {
	l log.Logger
}

func NewConsoleObserver(l log.Logger) *ConsoleObserver {
	return &ConsoleObserver{l: l}
}

func (c *ConsoleObserver) Update(dash Dashboard) {
	summary := fmt.Sprintf(
		"[Dashboard] Timestamp: %d | AvgLatency: %s | Compliance: %.3f | CPU: %.1f%% | Goroutines: %d",
		dash.Timestamp,
		dash.Metrics.AverageLatency,
		dash.Metrics.SLACompliance,
		dash.System.CPU.Usage,
		dash.System.Runtime.Goroutines,
	)
	c.l.Info(summary)

	if data, err := json.MarshalIndent(dash, "", "  "); err == nil {
		c.l.Info("Detailed dashboard:")
		c.l.Info(string(data))
	}
}

type PrometheusObserver struct {
	avgLatency    prometheus.Gauge
	peakLatency   prometheus.Gauge
	slaCompliance prometheus.Gauge
	activeStreams prometheus.Gauge
	pendingAlerts prometheus.Gauge
	cpuUsage      prometheus.Gauge
	memUsage      prometheus.Gauge
	goroutines    prometheus.Gauge
	heapAlloc     prometheus.Gauge
	registry      *prometheus.Registry
	l             log.Logger
}

func NewPrometheusObserver(l log.Logger) *PrometheusObserver {
	registry := prometheus.NewRegistry()
	observer := &PrometheusObserver{
		registry: registry,
		avgLatency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "propagation_average_latency_seconds",
			Help: "Average propagation latency over the rolling window",
		}),
		peakLatency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "propagation_peak_latency_seconds",
			Help: "Peak propagation latency over the rolling window",
		}),
		slaCompliance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "propagation_sla_compliance_ratio",
			Help: "Share of windowed propagations inside the latency bound",
		}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_streams",
			Help: "Number of registered streams",
		}),
		pendingAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pending_sla_alerts",
			Help: "Number of retained SLA violation alerts",
		}),
		cpuUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "Current CPU usage in percent",
		}),
		memUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "system_memory_usage_percent",
			Help: "Current memory usage in percent",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "runtime_goroutines",
			Help: "Number of active goroutines",
		}),
		heapAlloc: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "runtime_heap_alloc_bytes",
			Help: "Bytes allocated on the heap",
		}),
		l: l,
	}

	registry.MustRegister(
		observer.avgLatency,
		observer.peakLatency,
		observer.slaCompliance,
		observer.activeStreams,
		observer.pendingAlerts,
		observer.cpuUsage,
		observer.memUsage,
		observer.goroutines,
		observer.heapAlloc,
	)

	return observer
}

func (p *PrometheusObserver) Update(dash Dashboard) {
	p.avgLatency.Set(dash.Metrics.AverageLatency.Seconds())
	p.peakLatency.Set(dash.Metrics.PeakLatency.Seconds())
	p.slaCompliance.Set(dash.Metrics.SLACompliance)
	p.activeStreams.Set(float64(len(dash.Streams)))
	p.pendingAlerts.Set(float64(len(dash.Alerts)))
	p.cpuUsage.Set(dash.System.CPU.Usage)
	p.memUsage.Set(dash.System.Memory.UsedPercent)
	p.goroutines.Set(float64(dash.System.Runtime.Goroutines))
	p.heapAlloc.Set(float64(dash.System.Runtime.HeapAlloc))
}

func (p *PrometheusObserver) Registry() *prometheus.Registry {
	return p.registry
}
