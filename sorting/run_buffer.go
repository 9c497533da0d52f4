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

package sorting

import (
	"github.com/liwenqi1996/doris/vec"
)

// Run flush thresholds. A run is cut as soon as the buffer crosses
// either one, or on upstream end-of-stream.
const (
	DefaultRunRowThreshold  = 1024 * 1024
	DefaultRunByteThreshold = 32 << 20
)

// RunBuffer accumulates upstream blocks into one mutable column
// store until the buffered rows are worth cutting into a run.
type RunBuffer struct {
	buf           *vec.MutableBlock
	rowThreshold  int
	byteThreshold int
}

// NewRunBuffer returns an empty buffer for the given upstream schema.
// Non-positive thresholds fall back to the defaults.
func NewRunBuffer(schema vec.Schema, rowThreshold, byteThreshold int) *RunBuffer {
	if rowThreshold <= 0 {
		rowThreshold = DefaultRunRowThreshold
	}
	if byteThreshold <= 0 {
		byteThreshold = DefaultRunByteThreshold
	}
	return &RunBuffer{
		buf:           vec.NewMutableBlock(schema),
		rowThreshold:  rowThreshold,
		byteThreshold: byteThreshold,
	}
}

// Append copies all rows of block into the buffer.
func (r *RunBuffer) Append(block *vec.Block) error {
	return r.buf.Merge(block)
}

// Rows returns the number of buffered rows.
func (r *RunBuffer) Rows() int { return r.buf.Rows() }

// Bytes approximates the heap bytes held by the buffer.
func (r *RunBuffer) Bytes() int { return r.buf.AllocatedBytes() }

// Full reports whether either flush threshold has been crossed.
func (r *RunBuffer) Full() bool {
	return r.buf.Rows() >= r.rowThreshold || r.buf.AllocatedBytes() >= r.byteThreshold
}

// Extract moves the buffered rows out as an immutable block and
// resets the buffer for the next run.
func (r *RunBuffer) Extract() *vec.Block {
	return r.buf.ToBlock()
}
