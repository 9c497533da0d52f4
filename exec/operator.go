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

// Package exec contains the block-oriented operator protocol and the
// vectorized sort operator: a blocking pipeline breaker that drains
// its child into sorted runs and streams the k-way merge downstream.
package exec

import (
	"github.com/liwenqi1996/doris/vec"
)

// Operator is the block-oriented execution surface. An operator is
// driven Open → Next* → Close by its parent; Next delivers up to
// BatchSize rows per call and reports end-of-stream, possibly
// together with the final rows.
//
// A delivered block may be empty with eos=false; callers treat that
// as "continue". Reset rewinds the little state a re-driven operator
// keeps between passes of a controlling subplan; it is not a
// substitute for Close.
type Operator interface {
	Open(state *RuntimeState) error
	Next(state *RuntimeState, block *vec.Block) (eos bool, err error)
	Reset(state *RuntimeState) error
	Close(state *RuntimeState) error

	// RowDescriptor exposes the schema of delivered blocks, used by
	// parents to pre-size their buffers.
	RowDescriptor() vec.Schema
}

// baseNode carries the lifecycle bookkeeping shared by concrete
// operators: children, the LIMIT accounting, and idempotent close.
// Concrete operators embed it rather than inherit behavior from it.
type baseNode struct {
	children []Operator

	limit           int // -1 when unbounded
	numRowsReturned int
	closed          bool
}

func (b *baseNode) child(i int) Operator { return b.children[i] }

// reachedLimit truncates block so that the cumulative row count
// never exceeds the limit and flips eos once it is reached exactly.
// Called on every delivery.
func (b *baseNode) reachedLimit(block *vec.Block, eos *bool) {
	if b.limit < 0 {
		b.numRowsReturned += block.Rows()
		return
	}
	remaining := b.limit - b.numRowsReturned
	if block.Rows() >= remaining {
		block.Truncate(remaining)
		*eos = true
	}
	b.numRowsReturned += block.Rows()
}

// closeOnce marks the node closed; it reports false if the node was
// closed already so Close bodies can bail out early.
func (b *baseNode) closeOnce() bool {
	if b.closed {
		return false
	}
	b.closed = true
	return true
}
