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
	"testing"
	"time"

	"github.com/TimeWtr/StateJet/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSLA(t *testing.T) {
	sla := DefaultSLA()
	require.NoError(t, sla.Validate())
	assert.Equal(t, 100*time.Millisecond, sla.MaxLatency)
	assert.Equal(t, 20*time.Millisecond, sla.TargetLatency)
	assert.Equal(t, 128, sla.MaxObservers)
	assert.Equal(t, int64(64), sla.BackpressureThreshold)
}

func TestSLA_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(sla *SLA)
		wantErr error
	}{
		{
			name:    "valid default",
			mutate:  func(_ *SLA) {},
			wantErr: nil,
		},
		{
			name:    "zero max latency",
			mutate:  func(sla *SLA) { sla.MaxLatency = 0 },
			wantErr: errorx.ErrMaxLatency,
		},
		{
			name:    "negative max latency",
			mutate:  func(sla *SLA) { sla.MaxLatency = -time.Second },
			wantErr: errorx.ErrMaxLatency,
		},
		{
			name:    "zero target latency",
			mutate:  func(sla *SLA) { sla.TargetLatency = 0 },
			wantErr: errorx.ErrTargetLatency,
		},
		{
			name: "target over max",
			mutate: func(sla *SLA) {
				sla.TargetLatency = 2 * sla.MaxLatency
			},
			wantErr: errorx.ErrTargetLatency,
		},
		{
			name:    "zero max observers",
			mutate:  func(sla *SLA) { sla.MaxObservers = 0 },
			wantErr: errorx.ErrMaxObservers,
		},
		{
			name:    "negative backpressure threshold",
			mutate:  func(sla *SLA) { sla.BackpressureThreshold = -1 },
			wantErr: errorx.ErrBackpressureThreshold,
		},
		{
			name:    "zero backpressure threshold disables backpressure",
			mutate:  func(sla *SLA) { sla.BackpressureThreshold = 0 },
			wantErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sla := DefaultSLA()
			tc.mutate(&sla)

			err := sla.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
