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

	"github.com/TimeWtr/StateJet/utils/log"
)

const DefaultAlertCapacity = 100

// Alert is one latency contract breach kept for the dashboard.
type Alert struct {
	ID         string        `json:"id"`
	StreamID   string        `json:"streamId"`
	Latency    time.Duration `json:"latency"`
	MaxLatency time.Duration `json:"maxLatency"`
	Timestamp  time.Time     `json:"timestamp"`
	Message    string        `json:"message"`
}

// AlertService keeps the most recent alerts in a bounded FIFO. When the
// buffer is full the oldest alert is dropped first.
type AlertService struct {
	mu       sync.Mutex
	alerts   []Alert
	capacity int
	l        log.Logger
}

func NewAlertService(l log.Logger, capacity int) *AlertService {
	if capacity <= 0 {
		capacity = DefaultAlertCapacity
	}

	return &AlertService{
		alerts:   make([]Alert, 0, capacity),
		capacity: capacity,
		l:        l,
	}
}

func (s *AlertService) TriggerSLAViolation(alert Alert) {
	s.l.Warn("sla violation",
		log.StringField("stream", alert.StreamID),
		log.DurationField("latency", alert.Latency),
		log.DurationField("maxLatency", alert.MaxLatency))

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.alerts) >= s.capacity {
		s.alerts = append(s.alerts[:0], s.alerts[1:]...)
	}
	s.alerts = append(s.alerts, alert)
}

// Alerts returns a copy of the retained alerts, oldest first.
func (s *AlertService) Alerts() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Alert, len(s.alerts))
	copy(out, s.alerts)

	return out
}

func (s *AlertService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.alerts)
}
