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
	"sync"
	"testing"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/errorx"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream(t *testing.T, engine *Engine, sla StateJet.SLA,
	opts ...StreamOption[int],
) *Stream[int] {
	t.Helper()

	stream, err := NewStream[int](engine, 0, StateJet.PriorityNormal, sla, opts...)
	require.NoError(t, err)

	return stream
}

func TestNewStream_Validation(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("nil engine", func(t *testing.T) {
		_, err := NewStream[int](nil, 0, StateJet.PriorityNormal, StateJet.DefaultSLA())
		assert.ErrorIs(t, err, errorx.ErrNilEngine)
	})

	t.Run("invalid priority", func(t *testing.T) {
		_, err := NewStream[int](engine, 0, StateJet.Priority(42), StateJet.DefaultSLA())
		assert.ErrorIs(t, err, errorx.ErrInvalidPriority)
	})

	t.Run("invalid sla", func(t *testing.T) {
		sla := StateJet.DefaultSLA()
		sla.MaxObservers = 0
		_, err := NewStream[int](engine, 0, StateJet.PriorityNormal, sla)
		assert.ErrorIs(t, err, errorx.ErrMaxObservers)
	})
}

func TestStream_PropagateNotifiesAll(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	counts := [3]*atomicx.Int64{atomicx.NewInt64(0), atomicx.NewInt64(0), atomicx.NewInt64(0)}
	priorities := []StateJet.Priority{StateJet.PriorityCritical, StateJet.PriorityNormal, StateJet.PriorityLow}
	for i, priority := range priorities {
		counter := counts[i]
		_, err := stream.Observe(priority, func(_ context.Context, _ int) {
			counter.Inc()
		})
		require.NoError(t, err)
	}

	stream.Propagate(context.Background(), 1)
	stream.Propagate(context.Background(), 2)

	for _, counter := range counts {
		assert.Equal(t, int64(2), counter.Load())
	}
	assert.Equal(t, 2, stream.Current())
	assert.Equal(t, uint64(2), stream.Propagations())
}

func TestStream_TierOrdering(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	var mu sync.Mutex
	var sequence []string
	tiers := []StateJet.Priority{
		StateJet.PriorityLow,
		StateJet.PriorityCritical,
		StateJet.PriorityNormal,
		StateJet.PriorityHigh,
	}
	for _, tier := range tiers {
		name := tier.String()
		_, err := stream.Observe(tier, func(_ context.Context, _ int) {
			mu.Lock()
			sequence = append(sequence, name)
			mu.Unlock()
		})
		require.NoError(t, err)
	}

	stream.Propagate(context.Background(), 1)

	assert.Equal(t, []string{"critical", "high", "normal", "low"}, sequence)
}

func TestStream_CancelExcludesObserver(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	counter := atomicx.NewInt64(0)
	token, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		counter.Inc()
	})
	require.NoError(t, err)

	stream.Propagate(context.Background(), 1)
	assert.Equal(t, int64(1), counter.Load())

	assert.True(t, token.Cancel())
	assert.False(t, token.Cancel(), "second cancel must be a no-op")
	assert.False(t, token.Alive())

	stream.Propagate(context.Background(), 2)
	assert.Equal(t, int64(1), counter.Load())
}

func TestStream_ObserverCapacity(t *testing.T) {
	engine := newTestEngine(t)
	sla := StateJet.DefaultSLA()
	sla.MaxObservers = 2
	stream := newTestStream(t, engine, sla)

	handler := func(_ context.Context, _ int) {}
	token, err := stream.Observe(StateJet.PriorityHigh, handler)
	require.NoError(t, err)
	_, err = stream.Observe(StateJet.PriorityNormal, handler)
	require.NoError(t, err)

	_, err = stream.Observe(StateJet.PriorityLow, handler)
	assert.ErrorIs(t, err, errorx.ErrTooManyObservers)
	assert.Equal(t, 2, stream.Observers())

	// A released slot is reclaimed by the capacity check itself.
	token.Cancel()
	_, err = stream.Observe(StateJet.PriorityLow, handler)
	assert.NoError(t, err)
	assert.Equal(t, 2, stream.Observers())
}

func TestStream_ObserveValidation(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	_, err := stream.Observe(StateJet.PriorityNormal, nil)
	assert.ErrorIs(t, err, errorx.ErrNilHandler)

	_, err = stream.Observe(StateJet.Priority(42), func(_ context.Context, _ int) {})
	assert.ErrorIs(t, err, errorx.ErrInvalidPriority)
}

func TestStream_SlowObserverExcluded(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA(),
		WithStreamUnhealthyThreshold[int](20*time.Millisecond))

	slowCalls := atomicx.NewInt64(0)
	token, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		slowCalls.Inc()
		time.Sleep(60 * time.Millisecond)
	})
	require.NoError(t, err)

	fastCalls := atomicx.NewInt64(0)
	_, err = stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		fastCalls.Inc()
	})
	require.NoError(t, err)

	stream.Propagate(context.Background(), 1)
	require.Equal(t, int64(1), slowCalls.Load())

	// The slow handler is condemned, only the fast one keeps receiving.
	stream.Propagate(context.Background(), 2)
	assert.Equal(t, int64(1), slowCalls.Load())
	assert.Equal(t, int64(2), fastCalls.Load())
	assert.True(t, token.Alive(), "exclusion must not cancel the token")

	stream.PerformMaintenance()
	assert.Equal(t, 1, stream.Observers())
	assert.False(t, token.Alive())
}

func TestStream_LazyMaintenance(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA(),
		WithStreamCleanupInterval[int](20*time.Millisecond))

	token, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {})
	require.NoError(t, err)
	token.Cancel()
	assert.Equal(t, 1, stream.Observers(), "released entry stays until the sweep")

	time.Sleep(30 * time.Millisecond)
	stream.Propagate(context.Background(), 1)
	assert.Equal(t, 0, stream.Observers())
}

func TestStream_PanicContainment(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	counter := atomicx.NewInt64(0)
	_, err := stream.Observe(StateJet.PriorityHigh, func(_ context.Context, _ int) {
		panic("boom")
	})
	require.NoError(t, err)
	_, err = stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		counter.Inc()
	})
	require.NoError(t, err)

	stream.Propagate(context.Background(), 1)
	stream.Propagate(context.Background(), 2)

	assert.Equal(t, int64(2), counter.Load())
	assert.Equal(t, 2, stream.Observers(), "a panicking handler is not condemned")
}

func TestStream_SLAViolationRaisesAlert(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("within bound no alert", func(t *testing.T) {
		stream := newTestStream(t, engine, StateJet.DefaultSLA())
		for _, tier := range []StateJet.Priority{
			StateJet.PriorityCritical, StateJet.PriorityHigh, StateJet.PriorityNormal,
		} {
			_, err := stream.Observe(tier, func(_ context.Context, _ int) {
				time.Sleep(2 * time.Millisecond)
			})
			require.NoError(t, err)
		}

		stream.Propagate(context.Background(), 1)

		dash := engine.Dashboard()
		assert.Empty(t, dash.Alerts)
		stream.Close()
	})

	t.Run("over bound raises alert", func(t *testing.T) {
		sla := StateJet.DefaultSLA()
		sla.MaxLatency = 10 * time.Millisecond
		stream := newTestStream(t, engine, sla)
		_, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
			time.Sleep(30 * time.Millisecond)
		})
		require.NoError(t, err)

		stream.Propagate(context.Background(), 1)

		dash := engine.Dashboard()
		require.Len(t, dash.Alerts, 1)
		assert.Equal(t, stream.ID(), dash.Alerts[0].StreamID)
		assert.Equal(t, sla.MaxLatency, dash.Alerts[0].MaxLatency)
		require.Len(t, dash.Streams, 1)
		assert.Equal(t, uint64(1), dash.Streams[0].Violations)
	})
}

func TestStream_SLACompliance(t *testing.T) {
	engine := newTestEngine(t)
	sla := StateJet.DefaultSLA()
	sla.MaxLatency = 30 * time.Millisecond
	stream := newTestStream(t, engine, sla)

	slow := atomicx.NewBool()
	_, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		if slow.Load() {
			time.Sleep(60 * time.Millisecond)
		}
	})
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		slow.Store(i%20 == 0)
		stream.Propagate(context.Background(), i)
	}

	dash := engine.Dashboard()
	assert.Equal(t, 100, dash.Metrics.EventCount)
	assert.InDelta(t, 0.95, dash.Metrics.SLACompliance, 0.001)
	assert.Equal(t, 5, dash.Metrics.ViolationCount)
	assert.Len(t, dash.Alerts, 5)
}

func TestStream_Backpressure(t *testing.T) {
	engine := newTestEngine(t)
	sla := StateJet.DefaultSLA()
	sla.BackpressureThreshold = 1
	stream := newTestStream(t, engine, sla)

	_, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		time.Sleep(50 * time.Millisecond)
	})
	require.NoError(t, err)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stream.Propagate(context.Background(), 1)
		}()
	}
	wg.Wait()

	// The second propagation waits for the first to release the slot.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestStream_BackpressureContextCancelled(t *testing.T) {
	engine := newTestEngine(t)
	sla := StateJet.DefaultSLA()
	sla.BackpressureThreshold = 1
	stream := newTestStream(t, engine, sla)

	counter := atomicx.NewInt64(0)
	_, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		counter.Inc()
		time.Sleep(80 * time.Millisecond)
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		stream.Propagate(context.Background(), 1)
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stream.Propagate(ctx, 2)
	wg.Wait()

	assert.Equal(t, int64(1), counter.Load(), "cancelled propagation must not dispatch")
}

func TestStream_CloseIdempotent(t *testing.T) {
	engine := newTestEngine(t)
	stream := newTestStream(t, engine, StateJet.DefaultSLA())

	counter := atomicx.NewInt64(0)
	_, err := stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		counter.Inc()
	})
	require.NoError(t, err)

	stream.Close()
	stream.Close()

	stream.Propagate(context.Background(), 1)
	assert.Equal(t, int64(0), counter.Load())

	_, err = stream.Observe(StateJet.PriorityNormal, func(_ context.Context, _ int) {})
	assert.ErrorIs(t, err, errorx.ErrStreamClosed)
}

func TestStream_CurrentHoldsInitialValue(t *testing.T) {
	engine := newTestEngine(t)

	stream, err := NewStream[string](engine, "initial", StateJet.PriorityLow, StateJet.DefaultSLA())
	require.NoError(t, err)
	assert.Equal(t, "initial", stream.Current())

	stream.Propagate(context.Background(), "updated")
	assert.Equal(t, "updated", stream.Current())
	assert.Equal(t, StateJet.PriorityLow, stream.Priority())
}

func TestPayloadSize(t *testing.T) {
	assert.Equal(t, int64(0), payloadSize(nil))
	assert.Equal(t, int64(5), payloadSize([]byte("hello")))
	assert.Equal(t, int64(3), payloadSize("abc"))
	assert.Equal(t, int64(8), payloadSize(int64(7)))
}
