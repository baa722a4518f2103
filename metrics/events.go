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
	"sync"
	"time"
)

const defaultWindowSize = 1000

// PropagationEvent is the immutable record of one propagation.
type PropagationEvent struct {
	StreamID      string        `json:"streamId"`
	Latency       time.Duration `json:"latency"`
	ObserverCount int           `json:"observerCount"`
	PayloadSize   int64         `json:"payloadSize"`
	Timestamp     time.Time     `json:"timestamp"`
	Violated      bool          `json:"violated"`
}

// Metrics is derived from the events currently held in the rolling
// window. It is computed on read, never stored.
type Metrics struct {
	EventCount     int           `json:"eventCount"`
	ViolationCount int           `json:"violationCount"`
	AverageLatency time.Duration `json:"averageLatency"`
	PeakLatency    time.Duration `json:"peakLatency"`
	SLACompliance  float64       `json:"slaCompliance"`
}

// eventWindow keeps the most recent events in a fixed size ring. Old
// events fall off as new ones arrive.
type eventWindow struct {
	mu       sync.RWMutex
	events   []PropagationEvent
	head     int
	count    int
	capacity int
}

func newEventWindow(capacity int) *eventWindow {
	if capacity <= 0 {
		capacity = defaultWindowSize
	}

	return &eventWindow{
		events:   make([]PropagationEvent, capacity),
		capacity: capacity,
	}
}

func (w *eventWindow) push(evt PropagationEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.events[w.head] = evt
	w.head = (w.head + 1) % w.capacity
	if w.count < w.capacity {
		w.count++
	}
}

func (w *eventWindow) Metrics() Metrics {
	w.mu.RLock()
	defer w.mu.RUnlock()

	m := Metrics{EventCount: w.count, SLACompliance: 1}
	if w.count == 0 {
		return m
	}

	var total time.Duration
	for i := 0; i < w.count; i++ {
		evt := w.events[w.index(i)]
		total += evt.Latency
		if evt.Latency > m.PeakLatency {
			m.PeakLatency = evt.Latency
		}
		if evt.Violated {
			m.ViolationCount++
		}
	}
	m.AverageLatency = total / time.Duration(w.count)
	m.SLACompliance = 1 - float64(m.ViolationCount)/float64(w.count)

	return m
}

// Events returns the windowed events oldest first.
func (w *eventWindow) Events() []PropagationEvent {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]PropagationEvent, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.events[w.index(i)]
	}

	return out
}

// index maps the i-th oldest event to its ring slot, callers hold the
// lock.
func (w *eventWindow) index(i int) int {
	if w.count < w.capacity {
		return i
	}

	return (w.head + i) % w.capacity
}
