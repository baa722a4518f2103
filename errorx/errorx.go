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

package errorx

import (
	"errors"
)

var (
	ErrEngineClosed = errors.New("engine is closed")
	ErrNilEngine    = errors.New("engine cannot be nil")
	ErrStreamClosed = errors.New("stream is closed")
)

var (
	ErrMaxLatency            = errors.New("max latency cannot be negative and zero")
	ErrTargetLatency         = errors.New("target latency must be positive and not exceed max latency")
	ErrMaxObservers          = errors.New("max observers cannot be negative and zero")
	ErrBackpressureThreshold = errors.New("backpressure threshold cannot be negative")
)

var (
	ErrNilHandler       = errors.New("observer handler cannot be nil")
	ErrInvalidPriority  = errors.New("invalid observer priority")
	ErrTooManyObservers = errors.New("observer capacity exceeded")
)

var (
	ErrNilSource       = errors.New("multicast source cannot be nil")
	ErrSubscriberCount = errors.New("expected subscriber count cannot be negative and zero")
)
