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

// CompareRow compares row i of block a with row j of block b under
// desc, lexicographically major-to-minor. The result is negative when
// row i orders before row j in the output order ("forward" order),
// zero when the rows tie on every key.
//
// The same comparator drives the partial sort, the pruning heap (sign
// reversed) and the merge heap, so null placement is consistent
// across all three.
func CompareRow(a *vec.Block, i int, b *vec.Block, j int, desc Description) int {
	for _, key := range desc {
		rel := int(key.Direction) * compareAt(a.Column(key.Column), i, b.Column(key.Column), j, key.NullsDirection())
		if rel != 0 {
			return rel
		}
	}
	return 0
}

// compareAt compares two column slots with a null direction hint:
// a null slot compares as nullsDir against any non-null slot, and
// two nulls tie.
func compareAt(ca vec.Column, i int, cb vec.Column, j int, nullsDir int) int {
	anull, bnull := ca.Null(i), cb.Null(j)
	if anull || bnull {
		if anull && bnull {
			return 0
		}
		if anull {
			return nullsDir
		}
		return -nullsDir
	}
	return ca.Compare(i, cb, j)
}
