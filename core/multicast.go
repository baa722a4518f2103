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
	"sync"

	"github.com/TimeWtr/StateJet/errorx"
	"github.com/TimeWtr/StateJet/metrics"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/google/uuid"
)

// defaultSubscriberBuffer The per-subscriber channel capacity.
const defaultSubscriberBuffer = 16

// Subscription is one receiver of a multicast stream.
type Subscription[T any] struct {
	id string
	// Values fan out to this channel, closed when the source ends.
	events chan T
	// Closed by Cancel to release a blocked fanout send.
	done      chan struct{}
	cancelled *atomicx.Bool
	parent    *MulticastStream[T]
}

// Events returns the receive channel. It is closed when the source channel
// ends, a cancelled subscription's channel stays open and must not be read
// after Cancel.
func (s *Subscription[T]) Events() <-chan T {
	return s.events
}

// Cancel detaches the subscription from the fanout. It is idempotent and
// does not disturb the other subscribers.
func (s *Subscription[T]) Cancel() {
	if !s.cancelled.CompareAndSwap(false, true) {
		return
	}

	close(s.done)
	if s.parent != nil {
		s.parent.remove(s.id)
	}
}

// Cancelled reports whether Cancel has been called.
func (s *Subscription[T]) Cancelled() bool {
	return s.cancelled.Load()
}

type MulticastOption[T any] func(m *MulticastStream[T])

// WithSubscriberBuffer Set the per-subscriber channel capacity.
func WithSubscriberBuffer[T any](size int) MulticastOption[T] {
	return func(m *MulticastStream[T]) {
		if size > 0 {
			m.bufferSize = size
		}
	}
}

// MulticastStream replicates one source channel to every subscriber. The
// pump goroutine starts lazily on the first Subscribe, a subscriber joining
// later receives only the values fanned out after it joined. When the
// source channel closes every subscriber channel is closed.
type MulticastStream[T any] struct {
	id     string
	engine *Engine
	source <-chan T
	// Guards the subscriber set.
	mu   sync.Mutex
	subs map[string]*Subscription[T]
	// True once the pump goroutine launched.
	started *atomicx.Bool
	// True once the source ended or Close tore the stream down.
	completed *atomicx.Bool
	// Guards Close idempotency.
	closeRequested *atomicx.Bool
	// Closed by Close to stop the pump.
	stop chan struct{}
	// The per-subscriber channel capacity.
	bufferSize int
	wg         sync.WaitGroup
	l          log.Logger
	mc         metrics.Recorder
}

// NewMulticastStream creates a multicast stream over source. The
// expectedSubscribers hint sizes the subscriber set, it is not a limit.
func NewMulticastStream[T any](e *Engine, source <-chan T, expectedSubscribers int,
	opts ...MulticastOption[T],
) (*MulticastStream[T], error) {
	if e == nil {
		return nil, errorx.ErrNilEngine
	}

	if e.closed.Load() {
		return nil, errorx.ErrEngineClosed
	}

	if source == nil {
		return nil, errorx.ErrNilSource
	}

	if expectedSubscribers <= 0 {
		return nil, errorx.ErrSubscriberCount
	}

	m := &MulticastStream[T]{
		id:             uuid.NewString(),
		engine:         e,
		source:         source,
		subs:           make(map[string]*Subscription[T], expectedSubscribers),
		started:        atomicx.NewBool(),
		completed:      atomicx.NewBool(),
		closeRequested: atomicx.NewBool(),
		stop:           make(chan struct{}),
		bufferSize:     defaultSubscriberBuffer,
		l:              e.l,
		mc:             e.mc,
	}

	for _, opt := range opts {
		opt(m)
	}

	e.bind(m.id, m.Close)

	return m, nil
}

// Subscribe attaches a new receiver. The first subscription launches the
// pump goroutine, so values flowing before anyone subscribed are never
// consumed from the source. Subscribing after completion returns a
// subscription whose channel is already closed.
func (m *MulticastStream[T]) Subscribe() *Subscription[T] {
	if m.completed.Load() {
		return m.closedSubscription()
	}

	sub := &Subscription[T]{
		id:        uuid.NewString(),
		events:    make(chan T, m.bufferSize),
		done:      make(chan struct{}),
		cancelled: atomicx.NewBool(),
		parent:    m,
	}

	m.mu.Lock()
	if m.completed.Load() {
		m.mu.Unlock()
		return m.closedSubscription()
	}
	m.subs[sub.id] = sub
	m.mu.Unlock()

	if m.started.CompareAndSwap(false, true) {
		m.wg.Add(1)
		go m.pump()
	}

	return sub
}

// Subscribers returns the number of attached receivers.
func (m *MulticastStream[T]) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Completed reports whether the source ended or the stream was closed.
func (m *MulticastStream[T]) Completed() bool {
	return m.completed.Load()
}

func (m *MulticastStream[T]) ID() string {
	return m.id
}

// Close stops the pump and completes every subscriber. It is idempotent.
func (m *MulticastStream[T]) Close() {
	if !m.closeRequested.CompareAndSwap(false, true) {
		return
	}

	close(m.stop)
	if m.started.Load() {
		m.wg.Wait()
		return
	}

	m.complete()
}

func (m *MulticastStream[T]) closedSubscription() *Subscription[T] {
	events := make(chan T)
	close(events)
	cancelled := atomicx.NewBool()
	cancelled.SetTrue()

	return &Subscription[T]{
		id:        uuid.NewString(),
		events:    events,
		done:      make(chan struct{}),
		cancelled: cancelled,
	}
}

// pump moves values from the source to the subscribers until the source
// ends or Close fires. Only the pump sends on subscriber channels, which
// keeps completion free of send-on-closed races.
func (m *MulticastStream[T]) pump() {
	defer m.wg.Done()

	for {
		select {
		case <-m.stop:
			m.complete()
			return
		case v, ok := <-m.source:
			if !ok {
				m.complete()
				return
			}
			m.fanout(v)
		}
	}
}

func (m *MulticastStream[T]) fanout(v T) {
	m.mu.Lock()
	subs := make([]*Subscription[T], 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	var delivered int64
loop:
	for _, sub := range subs {
		select {
		case sub.events <- v:
			delivered++
		case <-sub.done:
		case <-m.stop:
			break loop
		}
	}

	if delivered > 0 {
		m.mc.RecordMulticast(delivered)
	}
}

// complete closes every subscriber channel exactly once and detaches the
// stream from the engine.
func (m *MulticastStream[T]) complete() {
	if !m.completed.CompareAndSwap(false, true) {
		return
	}

	m.mu.Lock()
	for id, sub := range m.subs {
		close(sub.events)
		delete(m.subs, id)
	}
	m.mu.Unlock()

	m.engine.release(m.id)
	m.l.Info("multicast completed", log.StringField("stream", m.id))
}

func (m *MulticastStream[T]) remove(id string) {
	m.mu.Lock()
	delete(m.subs, id)
	m.mu.Unlock()
}
