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

// Package vec implements the column-major data model shared by the
// vectorized operators: typed nullable columns, the immutable Block
// handed between operators, the MutableBlock accumulation buffer,
// and a compact block codec.
package vec

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Type identifies the physical representation of a column.
type Type uint8

const (
	Int64 Type = iota
	Float64
	Bool
	String
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Schema is the ordered list of column types of a block.
type Schema []Type

// Equal reports whether two schemas describe the same column layout.
func (s Schema) Equal(o Schema) bool {
	return slices.Equal(s, o)
}

// NewColumn returns an empty column of the given type.
func NewColumn(t Type) Column {
	switch t {
	case Int64:
		return &Int64Column{}
	case Float64:
		return &Float64Column{}
	case Bool:
		return &BoolColumn{}
	case String:
		return &StringColumn{}
	}
	panic(fmt.Sprintf("vec: unknown column type %d", t))
}

// Column is one nullable vector of values.
//
// Compare is only defined for non-null slots; null handling
// (placement relative to non-null values) is the ordering layer's
// concern and is driven through Null.
type Column interface {
	// Type returns the physical type of the column.
	Type() Type

	// Len returns the number of rows.
	Len() int

	// Null reports whether row i holds a null.
	Null(i int) bool

	// Compare compares the non-null value at row i with the
	// non-null value at row j of other. The result is negative,
	// zero or positive in the usual manner. other must have the
	// same Type.
	Compare(i int, other Column, j int) int

	// AppendFrom appends the value at row i of src
	// (null or not) to the column.
	AppendFrom(src Column, i int)

	// AppendNull appends a null slot.
	AppendNull()

	// Extend bulk-appends all rows of src.
	Extend(src Column)

	// Slice returns a view of rows [offset, offset+length).
	// The view shares storage with the column.
	Slice(offset, length int) Column

	// Gather returns a new column with rows reordered so that
	// row i of the result is row perm[i] of the receiver.
	Gather(perm []int) Column

	// NewEmpty returns a fresh empty column of the same type.
	NewEmpty() Column

	// Reset truncates the column to zero rows, keeping capacity.
	Reset()

	// MemoryUsage approximates the heap bytes held by the column.
	MemoryUsage() int
}

// Int64Column is a nullable vector of 64-bit integers.
type Int64Column struct {
	Values []int64
	Nulls  []bool // nil means no row is null
}

func (c *Int64Column) Type() Type { return Int64 }
func (c *Int64Column) Len() int   { return len(c.Values) }

func (c *Int64Column) Null(i int) bool {
	return c.Nulls != nil && c.Nulls[i]
}

func (c *Int64Column) Compare(i int, other Column, j int) int {
	o := other.(*Int64Column)
	a, b := c.Values[i], o.Values[j]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c *Int64Column) AppendFrom(src Column, i int) {
	s := src.(*Int64Column)
	if s.Null(i) {
		c.AppendNull()
		return
	}
	c.appendValid()
	c.Values = append(c.Values, s.Values[i])
}

func (c *Int64Column) AppendNull() {
	c.materializeNulls()
	c.Values = append(c.Values, 0)
	c.Nulls = append(c.Nulls, true)
}

func (c *Int64Column) Extend(src Column) {
	s := src.(*Int64Column)
	if s.Nulls == nil && c.Nulls == nil {
		c.Values = append(c.Values, s.Values...)
		return
	}
	for i := 0; i < s.Len(); i++ {
		c.AppendFrom(s, i)
	}
}

func (c *Int64Column) Slice(offset, length int) Column {
	out := &Int64Column{Values: c.Values[offset : offset+length]}
	if c.Nulls != nil {
		out.Nulls = c.Nulls[offset : offset+length]
	}
	return out
}

func (c *Int64Column) Gather(perm []int) Column {
	out := &Int64Column{Values: make([]int64, len(perm))}
	for i, j := range perm {
		out.Values[i] = c.Values[j]
	}
	if c.Nulls != nil {
		out.Nulls = make([]bool, len(perm))
		for i, j := range perm {
			out.Nulls[i] = c.Nulls[j]
		}
	}
	return out
}

func (c *Int64Column) NewEmpty() Column { return &Int64Column{} }

func (c *Int64Column) Reset() {
	c.Values = c.Values[:0]
	c.Nulls = nil
}

func (c *Int64Column) MemoryUsage() int {
	return 8*cap(c.Values) + cap(c.Nulls)
}

func (c *Int64Column) appendValid() {
	if c.Nulls != nil {
		c.Nulls = append(c.Nulls, false)
	}
}

func (c *Int64Column) materializeNulls() {
	if c.Nulls == nil {
		c.Nulls = make([]bool, len(c.Values), cap(c.Values)+1)
	}
}

// Float64Column is a nullable vector of 64-bit floats.
type Float64Column struct {
	Values []float64
	Nulls  []bool
}

func (c *Float64Column) Type() Type { return Float64 }
func (c *Float64Column) Len() int   { return len(c.Values) }

func (c *Float64Column) Null(i int) bool {
	return c.Nulls != nil && c.Nulls[i]
}

func (c *Float64Column) Compare(i int, other Column, j int) int {
	o := other.(*Float64Column)
	a, b := c.Values[i], o.Values[j]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c *Float64Column) AppendFrom(src Column, i int) {
	s := src.(*Float64Column)
	if s.Null(i) {
		c.AppendNull()
		return
	}
	if c.Nulls != nil {
		c.Nulls = append(c.Nulls, false)
	}
	c.Values = append(c.Values, s.Values[i])
}

func (c *Float64Column) AppendNull() {
	if c.Nulls == nil {
		c.Nulls = make([]bool, len(c.Values), cap(c.Values)+1)
	}
	c.Values = append(c.Values, 0)
	c.Nulls = append(c.Nulls, true)
}

func (c *Float64Column) Extend(src Column) {
	s := src.(*Float64Column)
	if s.Nulls == nil && c.Nulls == nil {
		c.Values = append(c.Values, s.Values...)
		return
	}
	for i := 0; i < s.Len(); i++ {
		c.AppendFrom(s, i)
	}
}

func (c *Float64Column) Slice(offset, length int) Column {
	out := &Float64Column{Values: c.Values[offset : offset+length]}
	if c.Nulls != nil {
		out.Nulls = c.Nulls[offset : offset+length]
	}
	return out
}

func (c *Float64Column) Gather(perm []int) Column {
	out := &Float64Column{Values: make([]float64, len(perm))}
	for i, j := range perm {
		out.Values[i] = c.Values[j]
	}
	if c.Nulls != nil {
		out.Nulls = make([]bool, len(perm))
		for i, j := range perm {
			out.Nulls[i] = c.Nulls[j]
		}
	}
	return out
}

func (c *Float64Column) NewEmpty() Column { return &Float64Column{} }

func (c *Float64Column) Reset() {
	c.Values = c.Values[:0]
	c.Nulls = nil
}

func (c *Float64Column) MemoryUsage() int {
	return 8*cap(c.Values) + cap(c.Nulls)
}

// BoolColumn is a nullable vector of booleans;
// false orders before true.
type BoolColumn struct {
	Values []bool
	Nulls  []bool
}

func (c *BoolColumn) Type() Type { return Bool }
func (c *BoolColumn) Len() int   { return len(c.Values) }

func (c *BoolColumn) Null(i int) bool {
	return c.Nulls != nil && c.Nulls[i]
}

func (c *BoolColumn) Compare(i int, other Column, j int) int {
	o := other.(*BoolColumn)
	a, b := c.Values[i], o.Values[j]
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func (c *BoolColumn) AppendFrom(src Column, i int) {
	s := src.(*BoolColumn)
	if s.Null(i) {
		c.AppendNull()
		return
	}
	if c.Nulls != nil {
		c.Nulls = append(c.Nulls, false)
	}
	c.Values = append(c.Values, s.Values[i])
}

func (c *BoolColumn) AppendNull() {
	if c.Nulls == nil {
		c.Nulls = make([]bool, len(c.Values), cap(c.Values)+1)
	}
	c.Values = append(c.Values, false)
	c.Nulls = append(c.Nulls, true)
}

func (c *BoolColumn) Extend(src Column) {
	s := src.(*BoolColumn)
	if s.Nulls == nil && c.Nulls == nil {
		c.Values = append(c.Values, s.Values...)
		return
	}
	for i := 0; i < s.Len(); i++ {
		c.AppendFrom(s, i)
	}
}

func (c *BoolColumn) Slice(offset, length int) Column {
	out := &BoolColumn{Values: c.Values[offset : offset+length]}
	if c.Nulls != nil {
		out.Nulls = c.Nulls[offset : offset+length]
	}
	return out
}

func (c *BoolColumn) Gather(perm []int) Column {
	out := &BoolColumn{Values: make([]bool, len(perm))}
	for i, j := range perm {
		out.Values[i] = c.Values[j]
	}
	if c.Nulls != nil {
		out.Nulls = make([]bool, len(perm))
		for i, j := range perm {
			out.Nulls[i] = c.Nulls[j]
		}
	}
	return out
}

func (c *BoolColumn) NewEmpty() Column { return &BoolColumn{} }

func (c *BoolColumn) Reset() {
	c.Values = c.Values[:0]
	c.Nulls = nil
}

func (c *BoolColumn) MemoryUsage() int {
	return cap(c.Values) + cap(c.Nulls)
}

// StringColumn is a nullable vector of strings.
type StringColumn struct {
	Values []string
	Nulls  []bool
}

func (c *StringColumn) Type() Type { return String }
func (c *StringColumn) Len() int   { return len(c.Values) }

func (c *StringColumn) Null(i int) bool {
	return c.Nulls != nil && c.Nulls[i]
}

func (c *StringColumn) Compare(i int, other Column, j int) int {
	o := other.(*StringColumn)
	a, b := c.Values[i], o.Values[j]
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (c *StringColumn) AppendFrom(src Column, i int) {
	s := src.(*StringColumn)
	if s.Null(i) {
		c.AppendNull()
		return
	}
	if c.Nulls != nil {
		c.Nulls = append(c.Nulls, false)
	}
	c.Values = append(c.Values, s.Values[i])
}

func (c *StringColumn) AppendNull() {
	if c.Nulls == nil {
		c.Nulls = make([]bool, len(c.Values), cap(c.Values)+1)
	}
	c.Values = append(c.Values, "")
	c.Nulls = append(c.Nulls, true)
}

func (c *StringColumn) Extend(src Column) {
	s := src.(*StringColumn)
	if s.Nulls == nil && c.Nulls == nil {
		c.Values = append(c.Values, s.Values...)
		return
	}
	for i := 0; i < s.Len(); i++ {
		c.AppendFrom(s, i)
	}
}

func (c *StringColumn) Slice(offset, length int) Column {
	out := &StringColumn{Values: c.Values[offset : offset+length]}
	if c.Nulls != nil {
		out.Nulls = c.Nulls[offset : offset+length]
	}
	return out
}

func (c *StringColumn) Gather(perm []int) Column {
	out := &StringColumn{Values: make([]string, len(perm))}
	for i, j := range perm {
		out.Values[i] = c.Values[j]
	}
	if c.Nulls != nil {
		out.Nulls = make([]bool, len(perm))
		for i, j := range perm {
			out.Nulls[i] = c.Nulls[j]
		}
	}
	return out
}

func (c *StringColumn) NewEmpty() Column { return &StringColumn{} }

func (c *StringColumn) Reset() {
	c.Values = c.Values[:0]
	c.Nulls = nil
}

func (c *StringColumn) MemoryUsage() int {
	size := 16 * cap(c.Values)
	for _, s := range c.Values {
		size += len(s)
	}
	return size + cap(c.Nulls)
}
