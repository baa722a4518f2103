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
	"fmt"
	"sync"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/errorx"
	"github.com/TimeWtr/StateJet/metrics"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
	"github.com/google/uuid"
	"github.com/panjf2000/ants"
)

// HandlerFunc receives one propagated state value. Handlers must not block,
// a handler slower than the unhealthy threshold is excluded from future
// notifications.
type HandlerFunc[T any] func(ctx context.Context, state T)

type observerEntry[T any] struct {
	id       string
	priority StateJet.Priority
	handler  HandlerFunc[T]
	// False after the token is cancelled, the entry stays in its bucket
	// until the next maintenance sweep.
	alive *atomicx.Bool
	// False after the health strategy condemns the handler, never reset.
	healthy *atomicx.Bool
	// Completion time of the last invocation, in milliseconds.
	lastActive *atomicx.Int64
	// Consecutive invocations slower than the unhealthy threshold.
	slowStreak *atomicx.Int32
}

// registry holds the observers of one stream grouped into priority buckets.
// Notification walks the tiers from critical to low, entries inside one
// tier run concurrently on the shared pool and the tier is awaited before
// the next one starts.
type registry[T any] struct {
	mu sync.RWMutex
	// Observers grouped by priority.
	buckets map[StateJet.Priority][]*observerEntry[T]
	// The number of entries across all buckets, released entries included
	// until a sweep reclaims them.
	count int
	// Registration capacity from the stream SLA.
	maxObservers int
	// The strategy judging observer health.
	hs StateJet.HealthStrategy
	// Handler latency above which an invocation counts as slow.
	unhealthyThreshold time.Duration
	// The interval between lazy maintenance sweeps.
	cleanupInterval time.Duration
	// The time of the last sweep, in milliseconds.
	lastCleanup *atomicx.Int64
	// The shared dispatch goroutine pool.
	pool *ants.Pool
	// Batch indicator collector for delivery data.
	mc metrics.Recorder
	l  log.Logger
}

func newRegistry[T any](e *Engine, maxObservers int) *registry[T] {
	return &registry[T]{
		buckets:            make(map[StateJet.Priority][]*observerEntry[T], len(StateJet.Tiers())),
		maxObservers:       maxObservers,
		hs:                 e.hs,
		unhealthyThreshold: e.unhealthyThreshold,
		cleanupInterval:    e.cleanupInterval,
		lastCleanup:        atomicx.NewInt64(time.Now().UnixMilli()),
		pool:               e.pool,
		mc:                 e.mc,
		l:                  e.l,
	}
}

// add registers a handler and returns its release token. When the registry
// is full it reclaims released and unhealthy entries first and rejects only
// if the capacity is still exceeded.
func (r *registry[T]) add(priority StateJet.Priority, handler HandlerFunc[T]) (*Token, error) {
	if handler == nil {
		return nil, errorx.ErrNilHandler
	}

	if !priority.Validate() {
		return nil, errorx.ErrInvalidPriority
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count >= r.maxObservers {
		r.purgeLocked()
		if r.count >= r.maxObservers {
			return nil, errorx.ErrTooManyObservers
		}
	}

	ent := &observerEntry[T]{
		id:         uuid.NewString(),
		priority:   priority,
		handler:    handler,
		alive:      atomicx.NewBool(),
		healthy:    atomicx.NewBool(),
		lastActive: atomicx.NewInt64(time.Now().UnixMilli()),
		slowStreak: atomicx.NewInt32(0),
	}
	ent.alive.SetTrue()
	ent.healthy.SetTrue()

	r.buckets[priority] = append(r.buckets[priority], ent)
	r.count++
	r.mc.RecordObserver(StateJet.MetricsIncOp)

	return newToken(ent.id, ent.alive), nil
}

// notifyByPriority delivers state to every live observer tier by tier and
// returns the number of dispatched handlers.
func (r *registry[T]) notifyByPriority(ctx context.Context, state T) int {
	notified := 0
	for _, tier := range StateJet.Tiers() {
		r.mu.RLock()
		bucket := make([]*observerEntry[T], len(r.buckets[tier]))
		copy(bucket, r.buckets[tier])
		r.mu.RUnlock()

		if len(bucket) == 0 {
			continue
		}

		notified += r.dispatchTier(ctx, bucket, state)
	}

	r.maybeCleanup()
	return notified
}

func (r *registry[T]) dispatchTier(ctx context.Context, bucket []*observerEntry[T], state T) int {
	var wg sync.WaitGroup
	dispatched := 0
	for _, ent := range bucket {
		if !ent.alive.Load() || !ent.healthy.Load() {
			r.mc.RecordDelivery(StateJet.DeliverySkip, 0)
			continue
		}

		wg.Add(1)
		entry := ent
		if err := r.pool.Submit(func() {
			defer wg.Done()
			r.invoke(ctx, entry, state)
		}); err != nil {
			// The nonblocking pool is saturated, deliver inline so the
			// tier still completes.
			r.invoke(ctx, entry, state)
			wg.Done()
		}
		dispatched++
	}
	wg.Wait()

	return dispatched
}

// invoke runs one handler, contains its panic and feeds the measurement
// into the health strategy.
func (r *registry[T]) invoke(ctx context.Context, ent *observerEntry[T], state T) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if rec := recover(); rec != nil {
			r.mc.RecordDelivery(StateJet.DeliveryFailure, elapsed.Milliseconds())
			r.l.Error("observer handler panic",
				log.StringField("observer", ent.id),
				log.StringField("panic", fmt.Sprintf("%v", rec)))
		} else {
			r.mc.RecordDelivery(StateJet.DeliverySuccess, elapsed.Milliseconds())
		}

		ent.lastActive.Store(time.Now().UnixMilli())
		var streak int32
		if elapsed > r.unhealthyThreshold {
			streak = ent.slowStreak.Inc()
		} else {
			ent.slowStreak.Store(0)
		}

		if r.hs.Unhealthy(elapsed, r.unhealthyThreshold, streak) &&
			ent.healthy.CompareAndSwap(true, false) {
			r.l.Warn("observer marked unhealthy",
				log.StringField("observer", ent.id),
				log.StringField("priority", ent.priority.String()),
				log.DurationField("elapsed", elapsed))
		}
	}()

	ent.handler(ctx, state)
}

// maybeCleanup runs a sweep when the cleanup interval elapsed since the
// last one. The CAS makes concurrent notifications elect a single sweeper.
func (r *registry[T]) maybeCleanup() {
	last := r.lastCleanup.Load()
	now := time.Now().UnixMilli()
	if now-last < r.cleanupInterval.Milliseconds() {
		return
	}

	if !r.lastCleanup.CompareAndSwap(last, now) {
		return
	}

	r.mu.Lock()
	r.purgeLocked()
	r.mu.Unlock()
}

// sweep reclaims released and unhealthy entries immediately.
func (r *registry[T]) sweep() {
	r.lastCleanup.Store(time.Now().UnixMilli())
	r.mu.Lock()
	r.purgeLocked()
	r.mu.Unlock()
}

func (r *registry[T]) purgeLocked() {
	for tier, bucket := range r.buckets {
		kept := make([]*observerEntry[T], 0, len(bucket))
		for _, ent := range bucket {
			alive := ent.alive.Load()
			if alive && ent.healthy.Load() {
				kept = append(kept, ent)
				continue
			}

			r.count--
			r.mc.RecordObserver(StateJet.MetricsDecOp)
			if alive {
				// Condemned but never cancelled, counts as an eviction.
				ent.alive.SetFalse()
				r.mc.RecordEviction()
			}
		}

		if len(kept) == 0 {
			delete(r.buckets, tier)
			continue
		}

		r.buckets[tier] = kept
	}
}

// closeAll releases every entry when the stream shuts down.
func (r *registry[T]) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, bucket := range r.buckets {
		for _, ent := range bucket {
			ent.alive.SetFalse()
			r.mc.RecordObserver(StateJet.MetricsDecOp)
		}
	}

	r.buckets = map[StateJet.Priority][]*observerEntry[T]{}
	r.count = 0
}

func (r *registry[T]) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}
