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
	"fmt"
	"strings"
)

// Direction encodes a sorting direction of a column (SQL: ASC/DESC)
type Direction int

const (
	Ascending  Direction = 1  // Sort ascending
	Descending Direction = -1 // Sort descending
)

// NullsOrder encodes order of null values (SQL: NULLS FIRST/NULLS LAST)
type NullsOrder int

const (
	NullsFirst NullsOrder = iota // Null values go first
	NullsLast                    // Null values go last
)

// SortColumn describes the ordering contributed by a single key:
// which column of the block to compare, the direction, and where
// nulls are placed.
type SortColumn struct {
	Column    int
	Direction Direction
	Nulls     NullsOrder
}

// NullsDirection returns the null comparison hint: the sign a null
// value contributes when compared against a non-null one. Nulls-first
// is the opposite sign of the direction, nulls-last the same sign, so
// that after the direction multiplication in CompareRow a null always
// lands on the requested side.
func (s SortColumn) NullsDirection() int {
	if s.Nulls == NullsFirst {
		return -int(s.Direction)
	}
	return int(s.Direction)
}

// Description is the ordered list of sort keys; earlier entries take
// precedence over later ones.
type Description []SortColumn

func (d Description) String() string {
	var sb strings.Builder
	for i, key := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		dir := "asc"
		if key.Direction == Descending {
			dir = "desc"
		}
		nulls := "last"
		if key.Nulls == NullsFirst {
			nulls = "first"
		}
		fmt.Fprintf(&sb, "#%d %s nulls %s", key.Column, dir, nulls)
	}
	return sb.String()
}
