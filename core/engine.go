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
	"context"
	"sync"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/metrics"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/panjf2000/ants"
)

const (
	// defaultPoolSize The capacity of the shared dispatch goroutine pool.
	defaultPoolSize = 64
	// defaultUnhealthyThreshold Handler latency above which an observer
	// counts as slow.
	defaultUnhealthyThreshold = 100 * time.Millisecond
	// defaultCleanupInterval The interval between lazy maintenance sweeps.
	defaultCleanupInterval = 30 * time.Second
	// taskExpireDuration Idle worker recycle duration for the pool.
	taskExpireDuration = 60 * time.Second
)

// Engine owns the resources shared by every stream: the dispatch goroutine
// pool, the batch metrics collector and the monitor. Streams are created
// against an engine and release themselves back to it on close.
type Engine struct {
	// Structured logger shared with streams and the monitor.
	l log.Logger
	// The monitor aggregating propagation events into a dashboard.
	monitor *metrics.Monitor
	// The goroutine pool dispatching observer handlers.
	pool *ants.Pool
	// Batch indicator collector receiving delivery data in real time.
	mc metrics.BatchCollector
	// Whether the collector exports metrics, set by WithMetrics.
	enableMetrics bool
	// The strategy judging observer health.
	hs StateJet.HealthStrategy
	// Handler latency above which an observer is marked unhealthy.
	unhealthyThreshold time.Duration
	// The interval between lazy maintenance sweeps.
	cleanupInterval time.Duration
	// The capacity of the dispatch goroutine pool.
	poolSize int
	// Options passed through to the embedded monitor.
	monitorOpts []metrics.Options
	// Guards the stream close functions.
	mu sync.Mutex
	// Close functions of the live streams, keyed by stream ID.
	streams map[string]func()
	// Lifecycle control.
	ctx        context.Context
	cancelFunc context.CancelFunc
	state      *atomicx.Bool
	closed     *atomicx.Bool
}

func NewEngine(l log.Logger, opts ...Options) (*Engine, error) {
	e := &Engine{
		l:                  l,
		mc:                 metrics.NewBatchCollector(metrics.NewPrometheus()),
		hs:                 StateJet.NewDefaultStrategy(),
		unhealthyThreshold: defaultUnhealthyThreshold,
		cleanupInterval:    defaultCleanupInterval,
		poolSize:           defaultPoolSize,
		streams:            map[string]func(){},
		state:              atomicx.NewBool(),
		closed:             atomicx.NewBool(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if !e.enableMetrics {
		// Deltas still accumulate, the collector just never exports them.
		e.mc.CollectSwitcher(false)
	}

	pool, err := ants.NewPool(e.poolSize,
		ants.WithExpiryDuration(taskExpireDuration),
		ants.WithPreAlloc(true),
		ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	e.pool = pool

	monitor, err := metrics.NewMonitor(l, append(e.monitorOpts, metrics.WithRecorder(e.mc))...)
	if err != nil {
		pool.Release()
		return nil, err
	}
	e.monitor = monitor

	return e, nil
}

// Start launches the background collectors. Streams work without it, Start
// only adds periodic system sampling and batch metric reporting.
func (e *Engine) Start(ctx context.Context) {
	if !e.state.CompareAndSwap(false, true) {
		return
	}

	e.ctx, e.cancelFunc = context.WithCancel(ctx)
	e.monitor.Start(e.ctx)
	e.mc.Start()
}

// Stop closes every live stream, stops the monitor, flushes the metrics
// collector and releases the goroutine pool. It is idempotent.
func (e *Engine) Stop() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}

	if e.cancelFunc != nil {
		e.cancelFunc()
	}

	e.mu.Lock()
	closers := make([]func(), 0, len(e.streams))
	for _, closeFn := range e.streams {
		closers = append(closers, closeFn)
	}
	e.streams = map[string]func(){}
	e.mu.Unlock()

	// Stream closers call back into the engine, run them outside the lock.
	for _, closeFn := range closers {
		closeFn()
	}

	e.monitor.Stop()
	e.mc.Flush()
	e.mc.Stop()
	e.pool.Release()
	e.l.Info("engine stopped")
}

// Dashboard returns the current aggregated view.
func (e *Engine) Dashboard() metrics.Dashboard {
	return e.monitor.Dashboard()
}

// Register adds a dashboard observer to the monitor.
func (e *Engine) Register(observer metrics.Observer) {
	e.monitor.Register(observer)
}

// Unregister removes a dashboard observer from the monitor.
func (e *Engine) Unregister(observer metrics.Observer) {
	e.monitor.Unregister(observer)
}

// registerStream stores the stream closer and registers the stream with
// the monitor so its propagations are judged against sla.
func (e *Engine) registerStream(id string, sla StateJet.SLA, closeFn func()) {
	e.mu.Lock()
	e.streams[id] = closeFn
	e.mu.Unlock()
	e.monitor.RegisterStream(id, sla)
}

// bind stores a closer without monitor registration, used by multicast
// streams which have no propagation latency to judge.
func (e *Engine) bind(id string, closeFn func()) {
	e.mu.Lock()
	e.streams[id] = closeFn
	e.mu.Unlock()
}

// forget drops a monitored stream after it closed itself.
func (e *Engine) forget(id string) {
	e.mu.Lock()
	delete(e.streams, id)
	e.mu.Unlock()
	e.monitor.UnregisterStream(id)
}

// release drops an unmonitored stream after it closed itself.
func (e *Engine) release(id string) {
	e.mu.Lock()
	delete(e.streams, id)
	e.mu.Unlock()
}

// report feeds one propagation into the monitor.
func (e *Engine) report(id string, latency time.Duration, observerCount int, payloadSize int64) {
	e.monitor.RecordPropagation(id, latency, observerCount, payloadSize)
}
