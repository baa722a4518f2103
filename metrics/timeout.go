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
	"time"

	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/TimeWtr/StateJet/utils/log"
)

const (
	defaultTimeoutFactor = 1.5
	timeoutStrikeLimit   = 3
	minCollectTimeout    = 100 * time.Millisecond
)

var _ TimeoutController = (*openSourceTimeout)(nil)

// openSourceTimeout scales the collection timeout from the collect
// interval. After consecutive timeouts it widens the budget until one
// collection round succeeds again.
type openSourceTimeout struct {
	factor   float64
	strikes  *atomicx.Int32
	degraded *atomicx.Bool
	l        log.Logger
}

func newOpenSourceTimeout(factor float64, l log.Logger) TimeoutController {
	if factor <= 0 {
		factor = defaultTimeoutFactor
	}

	return &openSourceTimeout{
		factor:   factor,
		strikes:  atomicx.NewInt32(0),
		degraded: atomicx.NewBool(),
		l:        l,
	}
}

func (o *openSourceTimeout) Timeout(collectInterval time.Duration) time.Duration {
	timeout := time.Duration(float64(collectInterval) * o.factor)
	if o.degraded.Load() {
		timeout *= 2
	}

	if timeout < minCollectTimeout {
		timeout = minCollectTimeout
	}

	return timeout
}

func (o *openSourceTimeout) HandleTimeout(component string, collected int, latency time.Duration) {
	strikes := o.strikes.Inc()
	o.l.Warn("metrics collection timed out",
		log.StringField("component", component),
		log.IntField("collected", collected),
		log.DurationField("latency", latency),
		log.IntField("strikes", int(strikes)))

	if strikes >= timeoutStrikeLimit && o.degraded.CompareAndSwap(false, true) {
		o.l.Error("collection degraded, widening timeout",
			log.StringField("component", component))
	}
}

func (o *openSourceTimeout) Recover() {
	o.strikes.Store(0)
	if o.degraded.CompareAndSwap(true, false) {
		o.l.Info("collection recovered")
	}
}
