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
	"sort"

	"github.com/liwenqi1996/doris/vec"
)

// Below this range size the quicksort hands off to the stdlib.
const quicksortSplitThreshold = 48

// SortBlock sorts a block by desc and returns the result; every
// column is permuted, not only the key columns. The sort builds an
// integer permutation of [0..rows) and gathers once, so column
// storage is never shuffled element-by-element.
//
// limitHint, when non-negative, promises that only the first
// limitHint rows of the result are ever read in order: rows past the
// hint are kept in the block but their relative order is unspecified.
// The sort is not stable in either mode.
func SortBlock(b *vec.Block, desc Description, limitHint int) *vec.Block {
	rows := b.Rows()
	perm := make([]int, rows)
	for i := range perm {
		perm[i] = i
	}

	less := func(x, y int) bool {
		return CompareRow(b, x, b, y, desc) < 0
	}

	if limitHint >= 0 && limitHint < rows {
		prefixSort(perm, limitHint, less)
	} else {
		sort.Slice(perm, func(i, j int) bool {
			return less(perm[i], perm[j])
		})
	}
	return b.Gather(perm)
}

// prefixSort quicksorts perm so that perm[0:limit] holds the limit
// smallest rows in order. Subranges entirely past the limit are left
// untouched instead of recursed into, which is where the partial
// sort wins over a full one.
func prefixSort(perm []int, limit int, less func(x, y int) bool) {
	var rec func(left, right int)
	rec = func(left, right int) {
		if right-left+1 < quicksortSplitThreshold {
			sub := perm[left : right+1]
			sort.Slice(sub, func(i, j int) bool {
				return less(sub[i], sub[j])
			})
			return
		}

		i, j := prefixPartition(perm, (left+right)/2, left, right, less)

		// rows in (j, i) already sit at their final position
		if left <= j {
			rec(left, j)
		}
		if i <= right && i < limit {
			rec(i, right)
		}
	}
	rec(0, len(perm)-1)
}

// prefixPartition splits perm[left:right+1] around the row at
// pivotIndex. The pivot row id is snapshotted up front: the slot at
// pivotIndex may be overwritten while partitioning.
func prefixPartition(perm []int, pivotIndex, left, right int, less func(x, y int) bool) (int, int) {
	pivot := perm[pivotIndex]

	for left <= right {
		for less(perm[left], pivot) {
			left++
		}
		for less(pivot, perm[right]) {
			right--
		}
		if left <= right {
			perm[left], perm[right] = perm[right], perm[left]
			left++
			right--
		}
	}
	return left, right
}
