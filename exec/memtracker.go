// Copyright 2024 the doris-go authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package exec

import (
	"sync/atomic"
)

// MemTracker is the accounting collaborator operators report their
// buffer consumption to. The engine-level implementation enforces
// limits; inside this module only the bookkeeping contract matters:
// every Consume is matched by a Release on all exit paths.
type MemTracker interface {
	Consume(bytes int)
	Release(bytes int)
	Consumption() int64
}

// NewMemTracker returns a label-only counting tracker.
func NewMemTracker(label string) MemTracker {
	return &countingTracker{label: label}
}

type countingTracker struct {
	label    string
	consumed atomic.Int64
}

func (t *countingTracker) Consume(bytes int) {
	t.consumed.Add(int64(bytes))
}

func (t *countingTracker) Release(bytes int) {
	t.consumed.Add(-int64(bytes))
}

func (t *countingTracker) Consumption() int64 {
	return t.consumed.Load()
}
