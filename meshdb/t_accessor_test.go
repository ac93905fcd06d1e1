// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

import "testing"

// TestSortPermuteRestoreOrdering checks that results come back in the
// caller's original (possibly unsorted) order, with the underlying read
// only ever seeing a sorted, deduplicated id list.
func TestSortPermuteRestoreOrdering(tst *testing.T) {
	requested := []int{5, 1, 3, 1}
	var seen []int
	got := sortPermuteRestore(requested, func(u []int) []float64 {
		seen = append([]int(nil), u...)
		out := make([]float64, len(u))
		for i, id := range u {
			out[i] = float64(id) * 10
		}
		return out
	})

	wantSeen := []int{1, 3, 5}
	if len(seen) != len(wantSeen) {
		tst.Fatalf("expected deduplicated sorted read of %v, got %v", wantSeen, seen)
	}
	for i := range wantSeen {
		if seen[i] != wantSeen[i] {
			tst.Fatalf("expected sorted unique ids %v, got %v", wantSeen, seen)
		}
	}

	want := []float64{50, 10, 30, 10}
	for i := range want {
		if got[i] != want[i] {
			tst.Fatalf("restored order mismatch at %d: got=%v want=%v", i, got, want)
		}
	}
}

func TestStrainEntrySizeBytes(tst *testing.T) {
	e := StrainEntry{{0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}}
	if e.SizeBytes() != 3*6*8 {
		tst.Fatalf("expected %d bytes, got %d", 3*6*8, e.SizeBytes())
	}
}

func TestDisplEntrySizeBytes(tst *testing.T) {
	npol := 4
	e := make(DisplEntry, 2)
	for t := range e {
		e[t] = make([][][3]float64, npol)
		for j := range e[t] {
			e[t][j] = make([][3]float64, npol)
		}
	}
	want := int64(2 * npol * npol * 3 * 8)
	if e.SizeBytes() != want {
		tst.Fatalf("expected %d bytes, got %d", want, e.SizeBytes())
	}
}
