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

import "time"

// HealthStrategy decides whether an observer must be marked unhealthy
// after one handler execution. elapsed is the handler completion time,
// threshold the configured slow bound, streak the current count of
// consecutive slow executions including this one.
type HealthStrategy interface {
	Unhealthy(elapsed, threshold time.Duration, streak int32) bool
}

type DefaultStrategy struct{}

func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{}
}

func (d *DefaultStrategy) Unhealthy(elapsed, threshold time.Duration, streak int32) bool {
	if elapsed >= threshold {
		return true
	}

	// Calculate latency factor (0-1)
	latencyFactor := float64(elapsed) / float64(threshold)
	// Calculate slow streak factor (0-1)
	streakFactor := float64(streak) / float64(SlowStreakLimit)
	if streakFactor > 1 {
		streakFactor = 1
	}
	combined := LatencyWeight*latencyFactor + StreakWeight*streakFactor

	return combined > UnhealthyScore
}

type LatencyOnlyStrategy struct{}

func (l *LatencyOnlyStrategy) Unhealthy(elapsed, threshold time.Duration, _ int32) bool {
	return elapsed >= threshold
}

type StreakOnlyStrategy struct{}

func (s *StreakOnlyStrategy) Unhealthy(_, _ time.Duration, streak int32) bool {
	return streak >= SlowStreakLimit
}
