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

import "github.com/TimeWtr/StateJet/utils/atomicx"

// Token is the handle returned by Observe. Cancel flips the shared alive
// flag, the registry entry itself is reclaimed by the next maintenance
// sweep.
type Token struct {
	id    string
	alive *atomicx.Bool
}

func newToken(id string, alive *atomicx.Bool) *Token {
	return &Token{id: id, alive: alive}
}

// ID returns the observer ID the token stands for.
func (t *Token) ID() string {
	return t.id
}

// Alive reports whether the observer may still receive notifications.
func (t *Token) Alive() bool {
	return t.alive.Load()
}

// Cancel releases the observer. It is idempotent and returns true only on
// the call that performed the release.
func (t *Token) Cancel() bool {
	return t.alive.CompareAndSwap(true, false)
}
