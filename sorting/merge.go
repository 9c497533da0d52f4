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

// MergeReader streams the globally ordered rows of a run set through
// a k-way min-heap of cursors. The reader consumes the configured
// OFFSET by discarding rows as they surface at the heap top; LIMIT
// truncation is the operator's job.
type MergeReader struct {
	desc    Description
	first   *vec.Block
	cursors []*Cursor
	offset  int
}

// NewMergeReader builds a cursor per run, positioned at row 0, and
// orders them into the merge heap. Runs held compressed are decoded
// here, once, before merging starts.
func NewMergeReader(set *RunSet, desc Description, offset int) (*MergeReader, error) {
	m := &MergeReader{desc: desc, offset: offset}
	for i := 0; i < set.Len(); i++ {
		block, err := set.Run(i).Block()
		if err != nil {
			return nil, err
		}
		if m.first == nil {
			m.first = block
		}
		m.cursors = append(m.cursors, NewCursor(block, desc))
	}
	heap.OrderSlice(m.cursors, cursorLess)
	return m, nil
}

func cursorLess(a, b *Cursor) bool { return a.Less(b) }

// ReadBatch moves up to targetRows globally ordered rows into out
// and reports end-of-stream. When out already carries columns of the
// run schema the rows are appended into them (caller-owned reuse);
// otherwise a fresh block is built and swapped into out.
func (m *MergeReader) ReadBatch(targetRows int, out *vec.Block) (eos bool) {
	reuse := out.Columns() == m.first.Columns() && out.Schema().Equal(m.first.Schema())
	dst := out
	if !reuse {
		dst = m.first.CloneEmpty()
	}

	merged := 0
	for len(m.cursors) > 0 && merged < targetRows {
		current := heap.PopSlice(&m.cursors, cursorLess)

		if m.offset > 0 {
			m.offset--
		} else {
			dst.AppendRowFrom(current.Block, current.Pos)
			merged++
		}

		if !current.IsLast() {
			current.Next()
			heap.PushSlice(&m.cursors, current, cursorLess)
		}
	}

	if merged == 0 {
		return true
	}
	if !reuse {
		dst.Swap(out)
	}
	return false
}

// Release drops the heap and the borrowed cursors.
func (m *MergeReader) Release() {
	m.cursors = nil
	m.first = nil
}
