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

package core

import (
	"errors"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/metrics"
)

type Options func(engine *Engine) error

// WithMetrics Enable indicator collection and specify the collector type
func WithMetrics(collector StateJet.CollectorType) Options {
	return func(engine *Engine) error {
		if !collector.Validate() {
			return errors.New("invalid metrics collector")
		}

		engine.enableMetrics = true
		switch collector {
		case StateJet.PrometheusCollector:
			engine.mc = metrics.NewBatchCollector(metrics.NewPrometheus())
		case StateJet.OpenTelemetryCollector:
		}

		return nil
	}
}

// WithPoolSize Set the capacity of the goroutine pool shared by all streams.
func WithPoolSize(size int) Options {
	return func(engine *Engine) error {
		if size <= 0 {
			return errors.New("pool size must be positive")
		}

		engine.poolSize = size
		return nil
	}
}

// WithHealthStrategy Set the strategy judging observer health.
func WithHealthStrategy(hs StateJet.HealthStrategy) Options {
	return func(engine *Engine) error {
		if hs == nil {
			return errors.New("nil health strategy")
		}

		engine.hs = hs
		return nil
	}
}

// WithUnhealthyThreshold Set the handler latency above which an observer
// is marked unhealthy.
func WithUnhealthyThreshold(threshold time.Duration) Options {
	return func(engine *Engine) error {
		if threshold <= 0 {
			return errors.New("unhealthy threshold must be positive")
		}

		engine.unhealthyThreshold = threshold
		return nil
	}
}

// WithCleanupInterval Set the interval between lazy maintenance sweeps.
func WithCleanupInterval(interval time.Duration) Options {
	return func(engine *Engine) error {
		if interval <= 0 {
			return errors.New("cleanup interval must be positive")
		}

		engine.cleanupInterval = interval
		return nil
	}
}

// WithMonitorOptions Pass options through to the embedded monitor.
func WithMonitorOptions(opts ...metrics.Options) Options {
	return func(engine *Engine) error {
		engine.monitorOpts = append(engine.monitorOpts, opts...)
		return nil
	}
}
