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
	"testing"

	"golang.org/x/exp/slices"
)

func sequence(lo, hi int64) []int64 {
	out := make([]int64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

func TestRunSetPlainModeAdmitsEverything(t *testing.T) {
	s := NewRunSet(Description{asc(0)}, Unbounded, false)
	for i := 0; i < 5; i++ {
		if !s.Add(i64block(sequence(400, 500)...)) {
			t.Fatalf("run %d rejected in plain-sort mode", i)
		}
	}
	if s.Len() != 5 {
		t.Errorf("got %d runs, want 5", s.Len())
	}
	if s.PrunedRuns != 0 {
		t.Errorf("plain mode pruned %d runs", s.PrunedRuns)
	}
}

func TestRunSetTopNPruning(t *testing.T) {
	// three sorted runs, limit 5: after the first two the heap top
	// holds 300 (last row of run 2); run 3 starts at 400 >= 300 and
	// is discarded entirely
	s := NewRunSet(Description{asc(0)}, Limit{Offset: 0, Limit: 5}, false)

	if !s.Add(i64block(sequence(1, 100)...)) {
		t.Fatal("run 1 rejected")
	}
	if !s.Add(i64block(sequence(200, 300)...)) {
		t.Fatal("run 2 rejected")
	}
	if s.Add(i64block(sequence(400, 500)...)) {
		t.Fatal("dominated run 3 admitted")
	}

	if s.Len() != 2 {
		t.Errorf("got %d runs, want 2", s.Len())
	}
	if s.PrunedRuns != 1 || s.PrunedRows != 101 {
		t.Errorf("pruning stats: %d runs / %d rows, want 1 / 101", s.PrunedRuns, s.PrunedRows)
	}
}

func TestRunSetTopNAdmitsOverlap(t *testing.T) {
	s := NewRunSet(Description{asc(0)}, Limit{Offset: 0, Limit: 3}, false)
	s.Add(i64block(10, 20, 30))
	// starts below the heap top (30): must be admitted even though
	// the candidate set already holds offset+limit rows
	if !s.Add(i64block(25, 99, 100)) {
		t.Fatal("overlapping run rejected")
	}
	if s.Len() != 2 {
		t.Errorf("got %d runs, want 2", s.Len())
	}
}

func TestRunSetUnconditionalBelowTarget(t *testing.T) {
	// while total rows < offset+limit every run is admitted, even a
	// dominated one
	s := NewRunSet(Description{asc(0)}, Limit{Offset: 2, Limit: 3}, false)
	s.Add(i64block(1, 2))
	if !s.Add(i64block(1000, 2000)) {
		t.Fatal("run rejected while candidate set is short of offset+limit rows")
	}
	if s.TotalRows() != 4 {
		t.Errorf("total rows %d, want 4", s.TotalRows())
	}
}

func TestRunSetEmptyBlockIgnored(t *testing.T) {
	s := NewRunSet(Description{asc(0)}, Unbounded, false)
	if s.Add(i64block()) {
		t.Fatal("empty block admitted as a run")
	}
	if s.Len() != 0 {
		t.Errorf("got %d runs, want 0", s.Len())
	}
}

func TestRunSetCompressedRuns(t *testing.T) {
	vals := sequence(1, 1000)
	s := NewRunSet(Description{asc(0)}, Limit{Offset: 0, Limit: 5}, true)
	if !s.Add(i64block(vals...)) {
		t.Fatal("run rejected")
	}
	// dominated run is still pruned against the uncompressed boundary
	if s.Add(i64block(sequence(5000, 5010)...)) {
		t.Fatal("dominated run admitted in compressed mode")
	}

	block, err := s.Run(0).Block()
	if err != nil {
		t.Fatalf("decoding run: %v", err)
	}
	if got := i64values(t, block, 0); !slices.Equal(got, vals) {
		t.Error("compressed run did not round-trip")
	}
}

func TestRunSetRelease(t *testing.T) {
	s := NewRunSet(Description{asc(0)}, Limit{Offset: 0, Limit: 2}, false)
	s.Add(i64block(1, 2, 3))
	s.Release()
	if s.Len() != 0 || s.TotalRows() != 0 {
		t.Error("release left runs behind")
	}
}
