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
	"github.com/liwenqi1996/doris/heap"
	"github.com/liwenqi1996/doris/vec"
)

// Run is one sorted block owned by a RunSet. When the set compresses
// runs, the block is held as an encoded frame plus a two-row boundary
// block (first and last row) kept uncompressed so that the pruning
// heap can compare against the run without decoding it.
type Run struct {
	block    *vec.Block
	frame    []byte
	boundary *vec.Block
	rows     int
}

func newRun(block *vec.Block, compress bool) *Run {
	r := &Run{rows: block.Rows()}
	if !compress {
		r.block = block
		r.boundary = block
		return r
	}
	boundary := block.CloneEmpty()
	boundary.AppendRowFrom(block, 0)
	boundary.AppendRowFrom(block, block.Rows()-1)
	r.frame = vec.EncodeBlock(block)
	r.boundary = boundary
	return r
}

// Rows returns the number of rows in the run.
func (r *Run) Rows() int { return r.rows }

// Block returns the sorted rows, decoding the compressed frame
// if necessary. The decoded block is retained.
func (r *Run) Block() (*vec.Block, error) {
	if r.block != nil {
		return r.block, nil
	}
	block, err := vec.DecodeBlock(r.frame)
	if err != nil {
		return nil, err
	}
	r.block = block
	r.frame = nil
	return block, nil
}

// release drops the run's storage.
func (r *Run) release() {
	r.block = nil
	r.frame = nil
	r.boundary = nil
}

// RunSet owns the sorted runs produced during the build phase.
//
// In plain-sort mode every run is admitted. In top-N mode the set
// keeps a max-heap of cursors parked on each admitted run's last row;
// the heap top is the largest value currently in the candidate set,
// and an arriving run whose smallest row already dominates it is
// discarded outright. Admitted runs are never evicted: over-admission
// is bounded by the input and the merge truncates the final result.
type RunSet struct {
	desc     Description
	limit    Limit
	compress bool

	runs      []*Run
	totalRows int

	// max-heap of last-row cursors, top-N mode only
	pruning []*Cursor

	// discarded run statistics, reported by the operator
	PrunedRuns int
	PrunedRows int
}

// NewRunSet returns an empty run set. Top-N pruning is active iff
// limit is bounded.
func NewRunSet(desc Description, limit Limit, compress bool) *RunSet {
	return &RunSet{desc: desc, limit: limit, compress: compress}
}

// Add offers a sorted block to the set. Empty blocks are ignored.
// In top-N mode the block may be discarded; Add reports whether the
// run was admitted.
func (s *RunSet) Add(block *vec.Block) bool {
	rows := block.Rows()
	if rows == 0 {
		return false
	}
	if !s.limit.Bounded() {
		s.admit(block, rows)
		return true
	}

	if s.totalRows >= s.limit.Hint() && len(s.pruning) > 0 {
		incoming := NewCursor(block, s.desc)
		if incoming.TotallyGreater(s.pruning[0]) {
			s.PrunedRuns++
			s.PrunedRows += rows
			return false
		}
	}

	run := s.admit(block, rows)
	heap.PushSlice(&s.pruning, NewLastRowCursor(run.boundary, s.desc), cursorGreater)
	return true
}

func (s *RunSet) admit(block *vec.Block, rows int) *Run {
	run := newRun(block, s.compress)
	s.runs = append(s.runs, run)
	s.totalRows += rows
	return run
}

func cursorGreater(a, b *Cursor) bool { return a.Greater(b) }

// Len returns the number of admitted runs.
func (s *RunSet) Len() int { return len(s.runs) }

// TotalRows returns the total rows across admitted runs.
func (s *RunSet) TotalRows() int { return s.totalRows }

// Run returns the i-th admitted run.
func (s *RunSet) Run(i int) *Run { return s.runs[i] }

// Release drains the pruning heap and drops every run.
// The set must not be used afterwards.
func (s *RunSet) Release() {
	s.pruning = nil
	for _, r := range s.runs {
		r.release()
	}
	s.runs = nil
	s.totalRows = 0
}
