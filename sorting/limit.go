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

// Limit stores raw values of LIMIT and OFFSET from a query.
// A negative Limit means the query is unbounded and disables
// top-N pruning.
type Limit struct {
	Offset, Limit int
}

// Unbounded is the Limit of a query without a LIMIT clause.
var Unbounded = Limit{Limit: -1}

// Bounded reports whether a LIMIT was set.
func (l Limit) Bounded() bool { return l.Limit >= 0 }

// Hint returns the number of leading rows of a sorted run that
// matter to the query: offset+limit, or -1 when unbounded. The
// partial sorter may leave rows past the hint unordered, and the
// run set prunes runs that cannot reach the first Hint rows.
func (l Limit) Hint() int {
	if !l.Bounded() {
		return -1
	}
	return l.Offset + l.Limit
}

// FinalRange clamps [Offset, Offset+Limit) to a collection of
// rowsCount rows and returns the half-open row range to output.
// An Offset at or past rowsCount yields an empty range.
func (l Limit) FinalRange(rowsCount int) (start, end int) {
	if l.Offset >= rowsCount {
		return rowsCount, rowsCount
	}
	start = l.Offset
	end = rowsCount
	if l.Bounded() && start+l.Limit < end {
		end = start + l.Limit
	}
	return start, end
}
