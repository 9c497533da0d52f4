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

// Cursor is a position inside one sorted run. The merge heap keeps
// one cursor per run ordered by the current row under the forward
// comparator; the pruning heap keeps cursors parked on the last row
// of each run and orders them in reverse.
//
// Cursors borrow their block from the run set; they never own it.
type Cursor struct {
	Block *vec.Block
	Pos   int
	Rows  int

	desc Description
}

// NewCursor returns a cursor over block positioned at row 0.
func NewCursor(block *vec.Block, desc Description) *Cursor {
	return &Cursor{Block: block, Rows: block.Rows(), desc: desc}
}

// NewLastRowCursor returns a cursor parked on the last row of block,
// the form the pruning heap stores.
func NewLastRowCursor(block *vec.Block, desc Description) *Cursor {
	return &Cursor{Block: block, Pos: block.Rows() - 1, Rows: block.Rows(), desc: desc}
}

// Next advances the cursor by one row.
func (c *Cursor) Next() { c.Pos++ }

// IsLast reports whether the cursor sits on the final row.
func (c *Cursor) IsLast() bool { return c.Pos+1 >= c.Rows }

// Less reports whether the current row of c orders strictly before
// the current row of o in forward order.
func (c *Cursor) Less(o *Cursor) bool {
	return CompareRow(c.Block, c.Pos, o.Block, o.Pos, c.desc) < 0
}

// Greater reports whether the current row of c orders strictly after
// the current row of o. It is the pruning heap's comparison.
func (c *Cursor) Greater(o *Cursor) bool {
	return CompareRow(c.Block, c.Pos, o.Block, o.Pos, c.desc) > 0
}

// TotallyGreater reports whether every row of c's run orders at or
// after the row under o: since the run is sorted, it compares the
// first (smallest) row of c against o's current row. With o parked
// on the last row of its run, a true result means c's whole run is
// dominated and cannot contribute to the merged prefix.
func (c *Cursor) TotallyGreater(o *Cursor) bool {
	return CompareRow(c.Block, 0, o.Block, o.Pos, c.desc) >= 0
}
