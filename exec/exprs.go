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

	"github.com/liwenqi1996/doris/vec"
)

// ExprCtx is one sort-key projection. Execute evaluates the
// expression against the block, materializing a result column if the
// expression is not a plain column reference, and returns the index
// of the result column within the block.
type ExprCtx interface {
	Execute(block *vec.Block) (int, error)
}

// SortExprs is the expression collaborator of the sort operator. It
// owns the ordering projections and, when the sort output tuple is
// narrower than the input, the projections that materialize it.
type SortExprs interface {
	// NeedMaterializeTuple reports whether the operator must project
	// the input block down to the materialized sort-output columns
	// before partial sort.
	NeedMaterializeTuple() bool

	// SortTupleSlotExprs returns the projections producing the
	// materialized output columns; only meaningful when
	// NeedMaterializeTuple is true.
	SortTupleSlotExprs() []ExprCtx

	// LhsOrderingExprs returns one projection per sort key, in key
	// precedence order.
	LhsOrderingExprs() []ExprCtx

	Open(state *RuntimeState) error
	Close(state *RuntimeState)
}

// ColumnRef is the trivial projection: the key is column n of the
// block as-is.
type ColumnRef int

// Execute implements ExprCtx.
func (c ColumnRef) Execute(block *vec.Block) (int, error) {
	if int(c) < 0 || int(c) >= block.Columns() {
		return 0, fmt.Errorf("%w: column reference %d outside block with %d columns",
			ErrExpression, int(c), block.Columns())
	}
	return int(c), nil
}

// SimpleSortExprs is a SortExprs over ready-made projection lists.
type SimpleSortExprs struct {
	Ordering    []ExprCtx
	TupleSlots  []ExprCtx
	Materialize bool
}

func (s *SimpleSortExprs) NeedMaterializeTuple() bool    { return s.Materialize }
func (s *SimpleSortExprs) SortTupleSlotExprs() []ExprCtx { return s.TupleSlots }
func (s *SimpleSortExprs) LhsOrderingExprs() []ExprCtx   { return s.Ordering }

func (s *SimpleSortExprs) Open(*RuntimeState) error { return nil }
func (s *SimpleSortExprs) Close(*RuntimeState)      {}

// ColumnRefs builds the common all-column-reference projection list.
func ColumnRefs(cols ...int) []ExprCtx {
	out := make([]ExprCtx, len(cols))
	for i, c := range cols {
		out[i] = ColumnRef(c)
	}
	return out
}
