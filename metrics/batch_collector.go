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
	"sync/atomic"
	"time"

	"github.com/TimeWtr/StateJet"
)

// BatchCollector accumulates metric deltas in memory and reports them
// to the underlying collector in batches.
type BatchCollector interface {
	Controller
	Recorder
}

// Recorder is the write side handed to streams and registries.
type Recorder interface {
	RecordPropagation(size int64, err error)                            // report one propagation
	RecordDelivery(status StateJet.DeliveryStatus, latencyMillis int64) // report one handler dispatch
	RecordObserver(op StateJet.OperationType)                           // report observer registration or release
	RecordEviction()                                                    // report one maintenance eviction
	RecordViolation()                                                   // report one latency contract breach
	RecordBackpressure()                                                // report one delayed propagation
	RecordMulticast(count int64)                                        // report multicast deliveries
}

// Controller drives the async batch reporting.
type Controller interface {
	Start()                      // start async batch reporting
	Stop()                       // stop async batch reporting
	Flush()                      // force an immediate report
	CollectSwitcher(enable bool) // toggle export by the underlying collector
}

// Propagation holds counters for state values entering streams.
type Propagation struct {
	counts int64 // total propagated state values
	sizes  int64 // total propagated payload bytes
	errors int64 // rejected propagation count
}

func (p *Propagation) Reset() {
	atomic.StoreInt64(&p.counts, 0)
	atomic.StoreInt64(&p.sizes, 0)
	atomic.StoreInt64(&p.errors, 0)
}

// Delivery holds counters for handler dispatch outcomes.
type Delivery struct {
	counts   int64 // successful deliveries
	failures int64 // panicked handlers
	skips    int64 // dispatches skipped for dead or unhealthy observers
	latency  int64 // last completion latency in milliseconds
}

func (d *Delivery) Reset() {
	atomic.StoreInt64(&d.counts, 0)
	atomic.StoreInt64(&d.failures, 0)
	atomic.StoreInt64(&d.skips, 0)
	atomic.StoreInt64(&d.latency, 0)
}

type Supporting struct {
	observerIncCounts   int64 // observer registrations
	observerDecCounts   int64 // observer releases
	evictions           int64 // maintenance evictions
	violations          int64 // latency contract breaches
	backpressureWaits   int64 // propagations delayed by backpressure
	multicastDeliveries int64 // values delivered to multicast subscribers
}

func (s *Supporting) Reset() {
	atomic.StoreInt64(&s.observerIncCounts, 0)
	atomic.StoreInt64(&s.observerDecCounts, 0)
	atomic.StoreInt64(&s.evictions, 0)
	atomic.StoreInt64(&s.violations, 0)
	atomic.StoreInt64(&s.backpressureWaits, 0)
	atomic.StoreInt64(&s.multicastDeliveries, 0)
}

var _ Recorder = (*BatchCollectImpl)(nil)

// BatchCollectImpl wraps the underlying collector and adds a periodic
// task flushing the accumulated deltas.
type BatchCollectImpl struct {
	p   *Propagation  // propagation counters
	d   *Delivery     // delivery counters
	sp  *Supporting   // supporting counters
	mc  Collector     // underlying collector
	t   *time.Ticker  // report timer
	sem chan struct{} // stops the report loop
}

func NewBatchCollector(mc Collector) *BatchCollectImpl {
	const duration = time.Second * 5
	b := &BatchCollectImpl{
		p:   &Propagation{},
		d:   &Delivery{},
		sp:  &Supporting{},
		mc:  mc,
		t:   time.NewTicker(duration),
		sem: make(chan struct{}),
	}

	b.mc.CollectSwitcher(true)

	return b
}

func (b *BatchCollectImpl) RecordPropagation(size int64, err error) {
	if err != nil {
		atomic.AddInt64(&b.p.errors, 1)
		return
	}

	atomic.AddInt64(&b.p.counts, 1)
	atomic.AddInt64(&b.p.sizes, size)
}

func (b *BatchCollectImpl) RecordDelivery(status StateJet.DeliveryStatus, latencyMillis int64) {
	switch status {
	case StateJet.DeliverySuccess:
		atomic.AddInt64(&b.d.counts, 1)
		atomic.StoreInt64(&b.d.latency, latencyMillis)
	case StateJet.DeliveryFailure:
		atomic.AddInt64(&b.d.failures, 1)
	case StateJet.DeliverySkip:
		atomic.AddInt64(&b.d.skips, 1)
	}
}

func (b *BatchCollectImpl) RecordObserver(op StateJet.OperationType) {
	if op == StateJet.MetricsIncOp {
		atomic.AddInt64(&b.sp.observerIncCounts, 1)
		return
	}

	atomic.AddInt64(&b.sp.observerDecCounts, 1)
}

func (b *BatchCollectImpl) RecordEviction() {
	atomic.AddInt64(&b.sp.evictions, 1)
}

func (b *BatchCollectImpl) RecordViolation() {
	atomic.AddInt64(&b.sp.violations, 1)
}

func (b *BatchCollectImpl) RecordBackpressure() {
	atomic.AddInt64(&b.sp.backpressureWaits, 1)
}

func (b *BatchCollectImpl) RecordMulticast(count int64) {
	atomic.AddInt64(&b.sp.multicastDeliveries, count)
}

func (b *BatchCollectImpl) CollectSwitcher(enable bool) {
	b.mc.CollectSwitcher(enable)
}

func (b *BatchCollectImpl) Start() {
	go b.asyncWorker()
}

func (b *BatchCollectImpl) Stop() {
	b.t.Stop()
	close(b.sem)
}

func (b *BatchCollectImpl) Flush() {
	b.report()
}

func (b *BatchCollectImpl) asyncWorker() {
	for {
		select {
		case <-b.sem:
			return
		case <-b.t.C:
			b.report()
		}
	}
}

// report syncs the accumulated deltas once.
func (b *BatchCollectImpl) report() {
	b.mc.ObservePropagation(float64(atomic.LoadInt64(&b.p.counts)),
		float64(atomic.LoadInt64(&b.p.sizes)),
		float64(atomic.LoadInt64(&b.p.errors)))
	b.p.Reset()

	b.mc.DeliveryWithLatency(StateJet.DeliverySuccess,
		float64(atomic.LoadInt64(&b.d.counts)),
		float64(atomic.LoadInt64(&b.d.latency)))
	b.mc.DeliveryWithLatency(StateJet.DeliveryFailure,
		float64(atomic.LoadInt64(&b.d.failures)), 0)
	b.mc.DeliveryWithLatency(StateJet.DeliverySkip,
		float64(atomic.LoadInt64(&b.d.skips)), 0)
	b.d.Reset()

	b.mc.ObserveObservers(StateJet.MetricsIncOp, float64(atomic.LoadInt64(&b.sp.observerIncCounts)))
	b.mc.ObserveObservers(StateJet.MetricsDecOp, float64(atomic.LoadInt64(&b.sp.observerDecCounts)))
	b.mc.EvictionInc(float64(atomic.LoadInt64(&b.sp.evictions)))
	b.mc.ObserveViolations(float64(atomic.LoadInt64(&b.sp.violations)))
	b.mc.ObserveBackpressure(float64(atomic.LoadInt64(&b.sp.backpressureWaits)))
	b.mc.ObserveMulticast(float64(atomic.LoadInt64(&b.sp.multicastDeliveries)))
	b.sp.Reset()
}
