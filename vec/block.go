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

package vec

import (
	"fmt"
)

// Block is a column-major batch of rows. All columns have equal
// length. Columns are shared by reference: Slice and Column return
// views on the same storage, so a Block handed downstream must be
// treated as immutable by the receiver.
type Block struct {
	cols []Column
}

// NewBlock builds a block from the given columns.
// It panics if the columns differ in length.
func NewBlock(cols ...Column) *Block {
	for i := 1; i < len(cols); i++ {
		if cols[i].Len() != cols[0].Len() {
			panic(fmt.Sprintf("vec: column %d has %d rows, column 0 has %d",
				i, cols[i].Len(), cols[0].Len()))
		}
	}
	return &Block{cols: cols}
}

// NewEmptyBlock builds a zero-row block with the given schema.
func NewEmptyBlock(schema Schema) *Block {
	cols := make([]Column, len(schema))
	for i, t := range schema {
		cols[i] = NewColumn(t)
	}
	return &Block{cols: cols}
}

// Columns returns the number of columns.
func (b *Block) Columns() int { return len(b.cols) }

// Column returns the i-th column, shared with the block.
func (b *Block) Column(i int) Column { return b.cols[i] }

// Rows returns the number of rows.
func (b *Block) Rows() int {
	if len(b.cols) == 0 {
		return 0
	}
	return b.cols[0].Len()
}

// Schema returns the column types of the block.
func (b *Block) Schema() Schema {
	s := make(Schema, len(b.cols))
	for i, c := range b.cols {
		s[i] = c.Type()
	}
	return s
}

// Swap exchanges the contents of b and o.
func (b *Block) Swap(o *Block) {
	b.cols, o.cols = o.cols, b.cols
}

// Slice returns a zero-copy view of rows [offset, offset+length).
func (b *Block) Slice(offset, length int) *Block {
	cols := make([]Column, len(b.cols))
	for i, c := range b.cols {
		cols[i] = c.Slice(offset, length)
	}
	return &Block{cols: cols}
}

// SkipRows drops the first n rows in place by re-slicing
// every column. n larger than the row count empties the block.
func (b *Block) SkipRows(n int) {
	rows := b.Rows()
	if n > rows {
		n = rows
	}
	for i, c := range b.cols {
		b.cols[i] = c.Slice(n, rows-n)
	}
}

// Truncate keeps only the first n rows.
func (b *Block) Truncate(n int) {
	if n >= b.Rows() {
		return
	}
	for i, c := range b.cols {
		b.cols[i] = c.Slice(0, n)
	}
}

// CloneEmpty returns a zero-row block with the same schema.
func (b *Block) CloneEmpty() *Block {
	cols := make([]Column, len(b.cols))
	for i, c := range b.cols {
		cols[i] = c.NewEmpty()
	}
	return &Block{cols: cols}
}

// AppendRowFrom appends row i of src column-wise.
// The schemas must match.
func (b *Block) AppendRowFrom(src *Block, i int) {
	for j, c := range b.cols {
		c.AppendFrom(src.cols[j], i)
	}
}

// Gather returns a new block with rows reordered by perm
// (row i of the result is row perm[i] of b). Every column is
// permuted, not only the sort keys.
func (b *Block) Gather(perm []int) *Block {
	cols := make([]Column, len(b.cols))
	for i, c := range b.cols {
		cols[i] = c.Gather(perm)
	}
	return &Block{cols: cols}
}

// Reset truncates all columns to zero rows, keeping capacity.
func (b *Block) Reset() {
	for _, c := range b.cols {
		c.Reset()
	}
}

// MemoryUsage approximates the heap bytes held by the block.
func (b *Block) MemoryUsage() int {
	size := 0
	for _, c := range b.cols {
		size += c.MemoryUsage()
	}
	return size
}

// MutableBlock accumulates upstream rows before they are cut into a
// run. It owns its columns; ToBlock moves them out and resets the
// buffer for the next run.
type MutableBlock struct {
	schema Schema
	cols   []Column
}

// NewMutableBlock returns an empty buffer with the given schema.
func NewMutableBlock(schema Schema) *MutableBlock {
	m := &MutableBlock{schema: schema}
	m.reset()
	return m
}

func (m *MutableBlock) reset() {
	m.cols = make([]Column, len(m.schema))
	for i, t := range m.schema {
		m.cols[i] = NewColumn(t)
	}
}

// Merge appends all rows of src column-wise.
// The schema of src must match.
func (m *MutableBlock) Merge(src *Block) error {
	if !src.Schema().Equal(m.schema) {
		return fmt.Errorf("vec: cannot merge block with schema %v into buffer with schema %v",
			src.Schema(), m.schema)
	}
	for i, c := range m.cols {
		c.Extend(src.Column(i))
	}
	return nil
}

// Rows returns the number of buffered rows.
func (m *MutableBlock) Rows() int {
	if len(m.cols) == 0 {
		return 0
	}
	return m.cols[0].Len()
}

// AllocatedBytes approximates the heap bytes held by the buffer.
func (m *MutableBlock) AllocatedBytes() int {
	size := 0
	for _, c := range m.cols {
		size += c.MemoryUsage()
	}
	return size
}

// ToBlock moves the buffered rows out as an immutable Block and
// resets the buffer to empty columns.
func (m *MutableBlock) ToBlock() *Block {
	b := &Block{cols: m.cols}
	m.reset()
	return b
}
