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

package StateJet

import (
	"time"

	"github.com/TimeWtr/StateJet/errorx"
)

// SLA is the latency contract attached to a stream at creation time. It
// is a plain value object, immutable for the lifetime of the stream.
type SLA struct {
	// MaxLatency is the hard bound for one propagation. Exceeding it is
	// recorded as a violation, it never aborts the propagation.
	MaxLatency time.Duration
	// TargetLatency is the soft goal the optimizer steers towards.
	TargetLatency time.Duration
	// MaxObservers caps the number of registered observers per stream.
	MaxObservers int
	// BackpressureThreshold bounds concurrent propagations on the
	// stream. Zero disables backpressure.
	BackpressureThreshold int64
}

func DefaultSLA() SLA {
	return SLA{
		MaxLatency:            100 * time.Millisecond,
		TargetLatency:         20 * time.Millisecond,
		MaxObservers:          128,
		BackpressureThreshold: 64,
	}
}

func (s SLA) Validate() error {
	if s.MaxLatency <= 0 {
		return errorx.ErrMaxLatency
	}

	if s.TargetLatency <= 0 || s.TargetLatency > s.MaxLatency {
		return errorx.ErrTargetLatency
	}

	if s.MaxObservers <= 0 {
		return errorx.ErrMaxObservers
	}

	if s.BackpressureThreshold < 0 {
		return errorx.ErrBackpressureThreshold
	}

	return nil
}
