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
	"reflect"
	"sync"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/errorx"
	"github.com/TimeWtr/StateJet/metrics"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

type StreamOption[T any] func(s *Stream[T])

// WithStreamHealthStrategy Override the engine health strategy for one stream.
func WithStreamHealthStrategy[T any](hs StateJet.HealthStrategy) StreamOption[T] {
	return func(s *Stream[T]) {
		if hs != nil {
			s.reg.hs = hs
		}
	}
}

// WithStreamUnhealthyThreshold Override the slow handler latency bound for
// one stream.
func WithStreamUnhealthyThreshold[T any](threshold time.Duration) StreamOption[T] {
	return func(s *Stream[T]) {
		if threshold > 0 {
			s.reg.unhealthyThreshold = threshold
		}
	}
}

// WithStreamCleanupInterval Override the lazy maintenance interval for one
// stream.
func WithStreamCleanupInterval[T any](interval time.Duration) StreamOption[T] {
	return func(s *Stream[T]) {
		if interval > 0 {
			s.reg.cleanupInterval = interval
		}
	}
}

// Stream distributes state values of one source to prioritized observers.
// Propagation is synchronous, when Propagate returns every live observer
// has been notified. The latest value is retained for Current.
type Stream[T any] struct {
	id       string
	engine   *Engine
	sla      StateJet.SLA
	priority StateJet.Priority
	// The prioritized observer set.
	reg *registry[T]
	// Guards the retained state value.
	mu    sync.RWMutex
	state T
	// Bounds concurrent propagations, nil when the SLA sets no
	// backpressure threshold.
	sem *semaphore.Weighted
	// Stream status.
	closed *atomicx.Bool
	// Total accepted propagations.
	propagations *atomicx.Uint64
	l            log.Logger
	mc           metrics.Recorder
}

// NewStream creates a stream bound to engine holding initial as its first
// state value. The SLA fixes the latency targets, observer capacity and
// backpressure bound for the stream lifetime.
func NewStream[T any](e *Engine, initial T, priority StateJet.Priority,
	sla StateJet.SLA, opts ...StreamOption[T],
) (*Stream[T], error) {
	if e == nil {
		return nil, errorx.ErrNilEngine
	}

	if e.closed.Load() {
		return nil, errorx.ErrEngineClosed
	}

	if !priority.Validate() {
		return nil, errorx.ErrInvalidPriority
	}

	if err := sla.Validate(); err != nil {
		return nil, err
	}

	s := &Stream[T]{
		id:           uuid.NewString(),
		engine:       e,
		sla:          sla,
		priority:     priority,
		state:        initial,
		closed:       atomicx.NewBool(),
		propagations: atomicx.NewUint64(0),
		l:            e.l,
		mc:           e.mc,
	}
	s.reg = newRegistry[T](e, sla.MaxObservers)
	if sla.BackpressureThreshold > 0 {
		s.sem = semaphore.NewWeighted(sla.BackpressureThreshold)
	}

	for _, opt := range opts {
		opt(s)
	}

	e.registerStream(s.id, sla, s.Close)

	return s, nil
}

// Propagate retains state and notifies every live observer tier by tier.
// Failures never surface to the caller: a closed stream and a cancelled
// context are reported to metrics, handler panics are contained inside
// the dispatch.
func (s *Stream[T]) Propagate(ctx context.Context, state T) {
	if s.closed.Load() {
		s.mc.RecordPropagation(0, errorx.ErrStreamClosed)
		s.l.Warn("propagate on closed stream", log.StringField("stream", s.id))
		return
	}

	if s.sem != nil {
		if !s.sem.TryAcquire(1) {
			s.mc.RecordBackpressure()
			if err := s.sem.Acquire(ctx, 1); err != nil {
				s.mc.RecordPropagation(0, err)
				return
			}
		}
		defer s.sem.Release(1)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	size := payloadSize(state)
	start := time.Now()
	notified := s.reg.notifyByPriority(ctx, state)
	elapsed := time.Since(start)

	s.propagations.Inc()
	s.mc.RecordPropagation(size, nil)
	s.engine.report(s.id, elapsed, notified, size)
}

// Observe registers handler at the given priority and returns the token
// releasing it.
func (s *Stream[T]) Observe(priority StateJet.Priority, handler HandlerFunc[T]) (*Token, error) {
	if s.closed.Load() {
		return nil, errorx.ErrStreamClosed
	}

	return s.reg.add(priority, handler)
}

// Current returns the most recently propagated state value.
func (s *Stream[T]) Current() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// PerformMaintenance reclaims released and unhealthy observers immediately
// instead of waiting for the lazy sweep.
func (s *Stream[T]) PerformMaintenance() {
	s.reg.sweep()
}

// Observers returns the number of registered entries, released ones
// included until a sweep reclaims them.
func (s *Stream[T]) Observers() int {
	return s.reg.size()
}

// Propagations returns the number of accepted propagations.
func (s *Stream[T]) Propagations() uint64 {
	return s.propagations.Load()
}

func (s *Stream[T]) ID() string {
	return s.id
}

func (s *Stream[T]) Priority() StateJet.Priority {
	return s.priority
}

func (s *Stream[T]) SLA() StateJet.SLA {
	return s.sla
}

// Close releases every observer and detaches the stream from the engine.
// It is idempotent.
func (s *Stream[T]) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}

	s.reg.closeAll()
	s.engine.forget(s.id)
	s.l.Info("stream closed", log.StringField("stream", s.id))
}

// payloadSize approximates the wire size of a state value. Byte slices
// and strings report their length, other types their shallow size.
func payloadSize(v any) int64 {
	switch data := v.(type) {
	case nil:
		return 0
	case []byte:
		return int64(len(data))
	case string:
		return int64(len(data))
	default:
		return int64(reflect.TypeOf(v).Size())
	}
}
