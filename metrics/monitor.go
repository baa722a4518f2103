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
	"sort"
	"sync"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/google/uuid"
	"github.com/panjf2000/ants"
	"golang.org/x/net/context"
)

const (
	collectInterval = 5 * time.Second
	reportInterval  = 5 * time.Second
)

type Options func(*Monitor)

func WithTimeoutController(ctrl TimeoutController) Options {
	return func(r *Monitor) {
		r.timeoutCtrl = ctrl
	}
}

func WithCollectInterval(interval time.Duration) Options {
	return func(r *Monitor) {
		r.collectInterval = interval
	}
}

func WithWindowSize(size int) Options {
	return func(r *Monitor) {
		r.window = newEventWindow(size)
	}
}

func WithAlertCapacity(capacity int) Options {
	return func(r *Monitor) {
		r.alerts = NewAlertService(r.l, capacity)
	}
}

func WithOptimizer(optimizer *Optimizer) Options {
	return func(r *Monitor) {
		r.optimizer = optimizer
	}
}

// WithRecorder forwards violation counts to the batch collector.
func WithRecorder(rec Recorder) Options {
	return func(r *Monitor) {
		r.rec = rec
	}
}

const (
	workerPoolSize = 10
	collectors     = 3
	mod            = 5
)

type streamEntry struct {
	sla          StateJet.SLA
	propagations uint64
	violations   uint64
	lastLatency  time.Duration
}

// StreamStats is the per stream slice of the dashboard.
type StreamStats struct {
	ID           string        `json:"id"`
	Propagations uint64        `json:"propagations"`
	Violations   uint64        `json:"violations"`
	LastLatency  time.Duration `json:"lastLatency"`
}

// Dashboard is a point in time snapshot of everything the monitor
// knows, safe to serialize.
type Dashboard struct {
	Timestamp       int64            `json:"timestamp"`
	Metrics         Metrics          `json:"metrics"`
	System          SystemStates     `json:"system"`
	Streams         []StreamStats    `json:"streams"`
	Recommendations []Recommendation `json:"recommendations"`
	Alerts          []Alert          `json:"alerts"`
}

type Monitor struct {
	collectInterval   time.Duration
	reportInterval    time.Duration
	observers         []Observer
	cpuCollector      *CPUCollector
	memCollector      *MemoryCollector
	runtimesCollector *RuntimesCollector
	window            *eventWindow
	alerts            *AlertService
	optimizer         *Optimizer
	rec               Recorder
	streams           map[string]*streamEntry
	recommendations   []Recommendation
	system            SystemStates
	ctx               context.Context
	cancelFunc        context.CancelFunc
	meta              Meta
	wg                sync.WaitGroup
	mu                sync.RWMutex
	pool              *ants.Pool
	timeoutCtrl       TimeoutController
	state             *atomicx.Bool
	l                 log.Logger
}

func NewMonitor(l log.Logger, opts ...Options) (*Monitor, error) {
	m := &Monitor{
		collectInterval:   collectInterval,
		reportInterval:    reportInterval,
		observers:         []Observer{},
		cpuCollector:      newCPUCollector(),
		memCollector:      newMemoryCollector(),
		runtimesCollector: newRuntimesCollector(),
		window:            newEventWindow(defaultWindowSize),
		alerts:            NewAlertService(l, DefaultAlertCapacity),
		optimizer:         NewOptimizer(),
		streams:           make(map[string]*streamEntry),
		timeoutCtrl:       newOpenSourceTimeout(defaultTimeoutFactor, l),
		state:             atomicx.NewBool(),
		l:                 l,
	}

	const taskExpireDuration = 60 * time.Second
	pool, err := ants.NewPool(workerPoolSize,
		ants.WithExpiryDuration(taskExpireDuration),
		ants.WithPreAlloc(true),
		ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	m.pool = pool

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// RegisterStream attaches the latency contract used to judge later
// propagations on the stream.
func (m *Monitor) RegisterStream(id string, sla StateJet.SLA) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.streams[id] = &streamEntry{sla: sla}
}

func (m *Monitor) UnregisterStream(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.streams, id)
}

// RecordPropagation ingests one propagation outcome. A latency over the
// stream bound raises an alert and refreshes the recommendations, it
// never fails the caller.
func (m *Monitor) RecordPropagation(streamID string, latency time.Duration, observerCount int, payloadSize int64) {
	evt := PropagationEvent{
		StreamID:      streamID,
		Latency:       latency,
		ObserverCount: observerCount,
		PayloadSize:   payloadSize,
		Timestamp:     time.Now(),
	}

	var maxLatency time.Duration
	m.mu.Lock()
	if entry, ok := m.streams[streamID]; ok {
		entry.propagations++
		entry.lastLatency = latency
		if latency > entry.sla.MaxLatency {
			entry.violations++
			evt.Violated = true
			maxLatency = entry.sla.MaxLatency
		}
	}
	m.mu.Unlock()

	m.window.push(evt)
	if !evt.Violated {
		return
	}

	if m.rec != nil {
		m.rec.RecordViolation()
	}
	m.alerts.TriggerSLAViolation(Alert{
		ID:         uuid.NewString(),
		StreamID:   streamID,
		Latency:    latency,
		MaxLatency: maxLatency,
		Timestamp:  evt.Timestamp,
		Message:    fmt.Sprintf("propagation took %s, bound %s", latency, maxLatency),
	})
	m.refreshRecommendations()
}

func (m *Monitor) refreshRecommendations() {
	metrics := m.window.Metrics()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.recommendations = m.optimizer.Recommend(metrics, m.system)
}

// Dashboard assembles a read only snapshot, it never mutates monitor
// state.
func (m *Monitor) Dashboard() Dashboard {
	metrics := m.window.Metrics()

	m.mu.RLock()
	sys := m.system
	recs := make([]Recommendation, len(m.recommendations))
	copy(recs, m.recommendations)
	streams := make([]StreamStats, 0, len(m.streams))
	for id, entry := range m.streams {
		streams = append(streams, StreamStats{
			ID:           id,
			Propagations: entry.propagations,
			Violations:   entry.violations,
			LastLatency:  entry.lastLatency,
		})
	}
	m.mu.RUnlock()

	sort.Slice(streams, func(i, j int) bool { return streams[i].ID < streams[j].ID })

	return Dashboard{
		Timestamp:       time.Now().UnixMilli(),
		Metrics:         metrics,
		System:          sys,
		Streams:         streams,
		Recommendations: recs,
		Alerts:          m.alerts.Alerts(),
	}
}

func (m *Monitor) Register(observer Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observers = append(m.observers, observer)
}

func (m *Monitor) Unregister(observer Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, ob := range m.observers {
		if ob == observer {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *Monitor) NotifyAll() {
	m.mu.Lock()
	copyObservers := make([]Observer, len(m.observers))
	copy(copyObservers, m.observers)
	m.mu.Unlock()

	dash := m.Dashboard()
	for _, observer := range copyObservers {
		observer.Update(dash)
	}
}

func (m *Monitor) Start(ctx context.Context) {
	if !m.state.CompareAndSwap(false, true) {
		return
	}

	m.ctx, m.cancelFunc = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.runCollector()
}

func (m *Monitor) runCollector() {
	defer m.wg.Done()
	ticker := time.NewTicker(m.collectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := m.collectAllStates()
			if err != nil {
				continue
			}

			m.refreshRecommendations()
			m.NotifyAll()
		case <-m.ctx.Done():
			return
		}
	}
}

func (m *Monitor) collectAllStates() error {
	start := time.Now()

	var (
		cpuStates CPUStates
		memStates MemoryStates
		rtStates  RuntimeStates
	)

	var wg sync.WaitGroup
	wg.Add(collectors)
	_ = m.pool.Submit(func() { defer wg.Done(); cpuStates = m.cpuCollector.Collect() })
	_ = m.pool.Submit(func() { defer wg.Done(); memStates = m.memCollector.Collect() })
	_ = m.pool.Submit(func() { defer wg.Done(); rtStates = m.runtimesCollector.Collect() })

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// collect success
		m.mu.Lock()
		defer m.mu.Unlock()
		timeTaken := time.Since(start).Milliseconds()
		m.system = SystemStates{
			Timestamp: time.Now().UnixMilli(),
			CPU:       cpuStates,
			Memory:    memStates,
			Runtime:   rtStates,
		}
		m.meta.TimeTakenQueue = append(m.meta.TimeTakenQueue, timeTaken)
		m.meta.SuccessCount++
		if m.meta.SuccessCount%mod == 0 {
			var totalDuration int64
			l := len(m.meta.TimeTakenQueue)
			for _, duration := range m.meta.TimeTakenQueue {
				totalDuration += duration
			}
			m.meta.AverageTimeTaken = totalDuration / int64(l)
		}
		m.meta.LastCollectTime = time.Now()
		m.timeoutCtrl.Recover()

		return nil
	case <-time.After(m.timeoutCtrl.Timeout(m.collectInterval)):
		// timeout
		m.mu.Lock()
		m.meta.ErrCount++
		m.meta.LastCollectTime = time.Now()
		m.mu.Unlock()
		m.timeoutCtrl.HandleTimeout("system-states", collectors, time.Since(start))
		return context.DeadlineExceeded
	}
}

func (m *Monitor) Stop() {
	if !m.state.CompareAndSwap(true, false) {
		// Never started, only the pool needs releasing.
		m.pool.Release()
		return
	}
	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.pool.Release()
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(m.timeoutCtrl.Timeout(m.reportInterval)):
		return
	}
}
