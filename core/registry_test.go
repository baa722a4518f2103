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
	"testing"
	"time"

	"github.com/TimeWtr/StateJet"
	"github.com/TimeWtr/StateJet/utils/atomicx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddGroupsByPriority(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)

	handler := func(_ context.Context, _ int) {}
	_, err := reg.add(StateJet.PriorityCritical, handler)
	require.NoError(t, err)
	_, err = reg.add(StateJet.PriorityCritical, handler)
	require.NoError(t, err)
	_, err = reg.add(StateJet.PriorityLow, handler)
	require.NoError(t, err)

	assert.Equal(t, 3, reg.size())
	assert.Len(t, reg.buckets[StateJet.PriorityCritical], 2)
	assert.Len(t, reg.buckets[StateJet.PriorityLow], 1)
	assert.Empty(t, reg.buckets[StateJet.PriorityNormal])
}

func TestRegistry_NotifySkipsDeadAndUnhealthy(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)

	live := atomicx.NewInt64(0)
	_, err := reg.add(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		live.Inc()
	})
	require.NoError(t, err)

	cancelled := atomicx.NewInt64(0)
	token, err := reg.add(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		cancelled.Inc()
	})
	require.NoError(t, err)
	token.Cancel()

	condemned := atomicx.NewInt64(0)
	_, err = reg.add(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		condemned.Inc()
	})
	require.NoError(t, err)
	reg.buckets[StateJet.PriorityNormal][2].healthy.SetFalse()

	notified := reg.notifyByPriority(context.Background(), 1)

	assert.Equal(t, 1, notified)
	assert.Equal(t, int64(1), live.Load())
	assert.Equal(t, int64(0), cancelled.Load())
	assert.Equal(t, int64(0), condemned.Load())
}

func TestRegistry_SweepReclaimsDeadAndUnhealthy(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)

	handler := func(_ context.Context, _ int) {}
	token, err := reg.add(StateJet.PriorityHigh, handler)
	require.NoError(t, err)
	_, err = reg.add(StateJet.PriorityHigh, handler)
	require.NoError(t, err)
	_, err = reg.add(StateJet.PriorityNormal, handler)
	require.NoError(t, err)

	token.Cancel()
	condemned := reg.buckets[StateJet.PriorityNormal][0]
	condemned.healthy.SetFalse()

	reg.sweep()

	assert.Equal(t, 1, reg.size())
	assert.Len(t, reg.buckets[StateJet.PriorityHigh], 1)
	assert.Empty(t, reg.buckets[StateJet.PriorityNormal], "emptied bucket is dropped")
	assert.False(t, condemned.alive.Load(), "evicted entry is released")
}

func TestRegistry_LazySweepWaitsForInterval(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)
	reg.cleanupInterval = time.Hour

	token, err := reg.add(StateJet.PriorityNormal, func(_ context.Context, _ int) {})
	require.NoError(t, err)
	token.Cancel()

	reg.notifyByPriority(context.Background(), 1)
	assert.Equal(t, 1, reg.size(), "sweep must wait for the interval")

	reg.sweep()
	assert.Equal(t, 0, reg.size())
}

func TestRegistry_SlowStreakResetsOnFastCall(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)
	reg.unhealthyThreshold = 30 * time.Millisecond
	// Streak judgment only, one slow call must not condemn.
	reg.hs = &StateJet.StreakOnlyStrategy{}

	sleep := atomicx.NewBool()
	_, err := reg.add(StateJet.PriorityNormal, func(_ context.Context, _ int) {
		if sleep.Load() {
			time.Sleep(40 * time.Millisecond)
		}
	})
	require.NoError(t, err)
	ent := reg.buckets[StateJet.PriorityNormal][0]

	sleep.SetTrue()
	reg.notifyByPriority(context.Background(), 1)
	assert.Equal(t, int32(1), ent.slowStreak.Load())
	assert.True(t, ent.healthy.Load())

	sleep.SetFalse()
	reg.notifyByPriority(context.Background(), 2)
	assert.Equal(t, int32(0), ent.slowStreak.Load())
	assert.True(t, ent.healthy.Load())
}

func TestRegistry_CloseAllReleasesEverything(t *testing.T) {
	engine := newTestEngine(t)
	reg := newRegistry[int](engine, 10)

	handler := func(_ context.Context, _ int) {}
	first, err := reg.add(StateJet.PriorityCritical, handler)
	require.NoError(t, err)
	second, err := reg.add(StateJet.PriorityLow, handler)
	require.NoError(t, err)

	reg.closeAll()

	assert.Equal(t, 0, reg.size())
	assert.Empty(t, reg.buckets)
	assert.False(t, first.Alive())
	assert.False(t, second.Alive())
}
