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

package heap

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func TestHeap(t *testing.T) {
	x := make([]int, 0, 1000)
	less := func(x, y int) bool {
		return x < y
	}
	rng := rand.New(rand.NewSource(42))
	for len(x) < cap(x) {
		PushSlice(&x, rng.Int(), less)
	}
	sorted := make([]int, 0, len(x))
	for len(x) > 0 {
		sorted = append(sorted, PopSlice(&x, less))
	}
	if !slices.IsSorted(sorted) {
		t.Fatal("not sorted")
	}

	for len(x) < cap(x) {
		PushSlice(&x, rng.Int(), less)
	}
	// disturb ordering, then Fix
	x[len(x)/2] = 1
	FixSlice(x, len(x)/2, less)
	sorted = sorted[:0]
	for len(x) > 0 {
		sorted = append(sorted, PopSlice(&x, less))
	}
	if !slices.IsSorted(sorted) {
		t.Fatal("not sorted after FixSlice")
	}
}

func TestHeapOrderSlice(t *testing.T) {
	less := func(x, y int) bool {
		return x < y
	}
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 2, 3, 17, 256} {
		x := make([]int, n)
		for i := range x {
			x[i] = rng.Intn(100)
		}
		OrderSlice(x, less)
		sorted := make([]int, 0, n)
		for len(x) > 0 {
			sorted = append(sorted, PopSlice(&x, less))
		}
		if !slices.IsSorted(sorted) {
			t.Fatalf("n=%d: not sorted after OrderSlice", n)
		}
	}
}

func TestHeapMaxOrdering(t *testing.T) {
	// a max-heap is just a min-heap with the comparison flipped
	greater := func(x, y int) bool {
		return x > y
	}
	var x []int
	for _, v := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		PushSlice(&x, v, greater)
	}
	if x[0] != 9 {
		t.Fatalf("expected 9 at the top, got %d", x[0])
	}
	prev := PopSlice(&x, greater)
	for len(x) > 0 {
		v := PopSlice(&x, greater)
		if v > prev {
			t.Fatalf("pop sequence not descending: %d after %d", v, prev)
		}
		prev = v
	}
}
