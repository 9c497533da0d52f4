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
	"fmt"
	"strings"

	"github.com/liwenqi1996/doris/sorting"
	"github.com/liwenqi1996/doris/vec"
)

// nodeState tracks where the sort operator sits in its lifecycle.
//
//	init → open → building → mergedReady → draining → eos
//	                     └→ singleRunReady ──────────→ eos
type nodeState uint8

const (
	stateInit nodeState = iota
	stateOpen
	stateBuilding
	stateMergedReady
	stateSingleRunReady
	stateDraining
	stateEOS
)

// SortNode is the vectorized ORDER BY operator: a blocking pipeline
// breaker. Open drains the child into sorted runs (pruning dominated
// runs in top-N mode); Next streams the k-way merge of the admitted
// runs in downstream-sized batches, honoring OFFSET and LIMIT.
type SortNode struct {
	baseNode

	exprs SortExprs

	offset       int
	isAscOrder   []bool
	nullsFirst   []bool
	rowThreshold int
	byteThresh   int
	compressRuns bool

	desc      sorting.Description
	outSchema vec.Schema

	buf    *sorting.RunBuffer
	runs   *sorting.RunSet
	merger *sorting.MergeReader

	tracker       MemTracker
	totalMemUsage int

	state          nodeState
	drained        bool
	numRowsSkipped int
}

// NewSortNode builds a sort operator over child. tracker may be nil,
// in which case a counting tracker is created.
func NewSortNode(child Operator, exprs SortExprs, opts Options, tracker MemTracker) (*SortNode, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if keys := len(exprs.LhsOrderingExprs()); keys != len(opts.IsAscOrder) {
		return nil, fmt.Errorf("sort: %d ordering expressions but %d key directions",
			keys, len(opts.IsAscOrder))
	}
	if tracker == nil {
		tracker = NewMemTracker("SortNode")
	}
	n := &SortNode{
		exprs:        exprs,
		offset:       opts.Offset,
		isAscOrder:   opts.IsAscOrder,
		nullsFirst:   opts.NullsFirst,
		rowThreshold: opts.RunRowThreshold,
		byteThresh:   opts.RunByteThreshold,
		compressRuns: opts.CompressRuns,
		tracker:      tracker,
	}
	n.children = []Operator{child}
	n.limit = opts.Limit
	return n, nil
}

// Open initializes the expressions, opens the child and runs the
// build phase to completion: the whole input is drained into sorted
// runs before Open returns. The final merge happens on demand as
// rows are requested in Next. The child is closed once the build is
// done; it is not re-driven afterwards.
func (n *SortNode) Open(state *RuntimeState) error {
	if n.state != stateInit {
		return fmt.Errorf("%w: sort opened twice", ErrInternal)
	}
	n.state = stateOpen

	if err := n.exprs.Open(state); err != nil {
		return err
	}
	if err := state.CheckQueryState("sort: open"); err != nil {
		return err
	}
	if err := n.child(0).Open(state); err != nil {
		return err
	}

	n.state = stateBuilding
	if err := n.sortInput(state); err != nil {
		return err
	}
	if err := n.child(0).Close(state); err != nil {
		return err
	}

	state.Logger().WithFields(map[string]interface{}{
		"node":        "sort",
		"top_n":       n.limit >= 0,
		"runs":        n.runs.Len(),
		"rows":        n.runs.TotalRows(),
		"pruned_runs": n.runs.PrunedRuns,
		"pruned_rows": n.runs.PrunedRows,
		"mem_bytes":   n.totalMemUsage,
	}).Debug("sort build phase done")
	return nil
}

// sortInput drains the child into the run buffer, cutting and
// partially sorting a run whenever a flush threshold is crossed or
// the input ends, then prepares the merge tree.
func (n *SortNode) sortInput(state *RuntimeState) error {
	n.buf = sorting.NewRunBuffer(n.child(0).RowDescriptor(), n.rowThreshold, n.byteThresh)

	eos := false
	for !eos {
		for {
			upstream := &vec.Block{}
			childEOS, err := n.child(0).Next(state, upstream)
			if err != nil {
				return err
			}
			eos = childEOS
			if upstream.Rows() != 0 {
				if err := n.buf.Append(upstream); err != nil {
					return err
				}
			}
			if eos || n.buf.Full() {
				break
			}
		}

		if n.buf.Rows() > 0 {
			consumed := n.buf.Bytes()
			n.tracker.Consume(consumed)
			n.totalMemUsage += consumed

			sorted, err := n.partialSort(n.buf.Extract())
			if err != nil {
				return err
			}
			if n.runs == nil {
				n.runs = sorting.NewRunSet(n.desc, n.limitClause(), n.compressRuns)
			}
			if !n.runs.Add(sorted) {
				// run pruned: give its memory back right away
				n.tracker.Release(consumed)
				n.totalMemUsage -= consumed
			}
			if err := state.CheckQueryState("sort: sorting input"); err != nil {
				return err
			}
		}
	}

	if n.runs == nil {
		n.runs = sorting.NewRunSet(n.desc, n.limitClause(), n.compressRuns)
	}
	return n.buildMergeTree()
}

// partialSort projects the sort keys (and, if required, the
// materialized output tuple) out of block and sorts it, leaving only
// the first offset+limit rows meaningfully ordered in top-N mode.
func (n *SortNode) partialSort(block *vec.Block) (*vec.Block, error) {
	if n.exprs.NeedMaterializeTuple() {
		slots := n.exprs.SortTupleSlotExprs()
		cols := make([]vec.Column, len(slots))
		for i, expr := range slots {
			id, err := expr.Execute(block)
			if err != nil {
				return nil, fmt.Errorf("%w: materializing sort tuple slot %d: %v", ErrExpression, i, err)
			}
			cols[i] = block.Column(id)
		}
		block = vec.NewBlock(cols...)
	}

	ordering := n.exprs.LhsOrderingExprs()
	desc := make(sorting.Description, len(ordering))
	for i, expr := range ordering {
		col, err := expr.Execute(block)
		if err != nil {
			return nil, fmt.Errorf("%w: evaluating ordering expression %d: %v", ErrExpression, i, err)
		}
		desc[i].Column = col
		if n.isAscOrder[i] {
			desc[i].Direction = sorting.Ascending
		} else {
			desc[i].Direction = sorting.Descending
		}
		if n.nullsFirst[i] {
			desc[i].Nulls = sorting.NullsFirst
		} else {
			desc[i].Nulls = sorting.NullsLast
		}
	}
	n.desc = desc
	n.outSchema = block.Schema()

	return sorting.SortBlock(block, desc, n.limitClause().Hint()), nil
}

// buildMergeTree decides the probe-phase shape: no runs at all,
// a single run served by the swap fast path, or a k-way merge.
func (n *SortNode) buildMergeTree() error {
	if n.runs.Len() <= 1 {
		n.state = stateSingleRunReady
		return nil
	}
	merger, err := sorting.NewMergeReader(n.runs, n.desc, n.offset)
	if err != nil {
		return err
	}
	n.merger = merger
	n.state = stateMergedReady
	return nil
}

// Next implements Operator. With several runs it delivers up to
// state.BatchSize() rows per call; a single run is swapped out whole
// in one call together with eos. The limit clause is applied to every
// delivery.
func (n *SortNode) Next(state *RuntimeState, block *vec.Block) (bool, error) {
	if err := state.CheckQueryState("sort: read output batch"); err != nil {
		return false, err
	}
	if n.closed {
		return false, fmt.Errorf("%w: sort next after close", ErrInternal)
	}

	eos := false
	switch {
	case n.state == stateInit || n.state == stateOpen || n.state == stateBuilding:
		return false, fmt.Errorf("%w: sort next before open completed", ErrInternal)

	case n.state == stateEOS || n.runs.Len() == 0:
		eos = true

	case n.runs.Len() == 1:
		n.state = stateDraining
		if !n.drained {
			single, err := n.runs.Run(0).Block()
			if err != nil {
				return false, err
			}
			if n.offset != 0 {
				start, end := n.limitClause().FinalRange(single.Rows())
				single.Swap(single.Slice(start, end-start))
				n.numRowsSkipped += start
			}
			block.Swap(single)
			n.drained = true
		}
		eos = true

	default:
		if n.state == stateMergedReady {
			// the first merged batch consumes the whole OFFSET
			n.numRowsSkipped += min(n.offset, n.runs.TotalRows())
		}
		n.state = stateDraining
		eos = n.merger.ReadBatch(state.BatchSize(), block)
	}

	n.reachedLimit(block, &eos)
	if eos {
		n.state = stateEOS
	}
	return eos, nil
}

// NextRow is the legacy row-batch surface; the sort operator only
// speaks blocks.
func (n *SortNode) NextRow(state *RuntimeState) (bool, error) {
	return true, fmt.Errorf("%w: SortNode row-batch next", ErrNotSupported)
}

// Reset clears the skipped-row counter. It is only used when the
// operator is re-driven by a controlling subplan; full teardown goes
// through Close.
func (n *SortNode) Reset(state *RuntimeState) error {
	n.numRowsSkipped = 0
	return nil
}

// NumRowsSkipped returns the rows consumed by OFFSET so far.
func (n *SortNode) NumRowsSkipped() int { return n.numRowsSkipped }

// Close releases the expressions, the merge heap and the runs.
// It is idempotent.
func (n *SortNode) Close(state *RuntimeState) error {
	if !n.closeOnce() {
		return nil
	}
	n.exprs.Close(state)
	if n.merger != nil {
		n.merger.Release()
		n.merger = nil
	}
	if n.runs != nil {
		n.runs.Release()
		n.runs = nil
	}
	n.buf = nil
	n.tracker.Release(n.totalMemUsage)
	n.totalMemUsage = 0
	return n.child(0).Close(state)
}

// RowDescriptor implements Operator. Until the first run is cut the
// output schema matches the child's row descriptor; once the sort
// tuple is materialized it is the reduced schema.
func (n *SortNode) RowDescriptor() vec.Schema {
	if n.outSchema != nil {
		return n.outSchema
	}
	return n.child(0).RowDescriptor()
}

// DebugString renders the per-key ordering, "asc nulls last" style.
func (n *SortNode) DebugString() string {
	var sb strings.Builder
	sb.WriteString("SortNode(")
	for i := range n.isAscOrder {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if n.isAscOrder[i] {
			sb.WriteString("asc")
		} else {
			sb.WriteString("desc")
		}
		sb.WriteString(" nulls ")
		if n.nullsFirst[i] {
			sb.WriteString("first")
		} else {
			sb.WriteString("last")
		}
	}
	fmt.Fprintf(&sb, " offset=%d limit=%d)", n.offset, n.limit)
	return sb.String()
}

func (n *SortNode) limitClause() sorting.Limit {
	return sorting.Limit{Offset: n.offset, Limit: n.limit}
}
