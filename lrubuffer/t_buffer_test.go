// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lrubuffer

import "testing"

type fakeValue int64

func (v fakeValue) SizeBytes() int64 { return int64(v) }

func TestContainsUpdatesCounters(tst *testing.T) {
	b := NewBuffer(1)
	if b.Contains(1) {
		tst.Fatalf("empty buffer must not contain key 1")
	}
	b.Add(1, fakeValue(10))
	if !b.Contains(1) {
		tst.Fatalf("buffer must contain key 1 after Add")
	}
	if b.Efficiency() != 0.5 {
		tst.Fatalf("expected efficiency 0.5, got %v", b.Efficiency())
	}
}

// TestEvictionRespectsBudget checks invariant 4: total buffered size never
// exceeds the configured budget.
func TestEvictionRespectsBudget(tst *testing.T) {
	b := NewBuffer(0) // zero-byte budget, replaced by a 100-byte one below
	b.maxSizeBytes = 100
	b.Add(1, fakeValue(60))
	b.Add(2, fakeValue(60))
	if b.totalSize > b.maxSizeBytes {
		tst.Fatalf("buffer exceeded its byte budget: %d > %d", b.totalSize, b.maxSizeBytes)
	}
	if b.Contains(1) {
		tst.Fatalf("oldest entry should have been evicted")
	}
	if !b.Contains(2) {
		tst.Fatalf("most recently added entry should still be present")
	}
}

// TestGetMovesToFront checks invariant 4's recency ordering: after
// add(k1), add(k2), get(k1), the next eviction must target k2.
func TestGetMovesToFront(tst *testing.T) {
	b := NewBuffer(0)
	b.maxSizeBytes = 100
	b.Add(1, fakeValue(50))
	b.Add(2, fakeValue(50))
	b.Get(1) // k1 is now most-recently-used
	b.Add(3, fakeValue(50))
	if b.Contains(2) {
		tst.Fatalf("k2 should have been evicted, not k1")
	}
	if !b.Contains(1) {
		tst.Fatalf("k1 was recently used and must survive eviction")
	}
	if !b.Contains(3) {
		tst.Fatalf("freshly added k3 must be present")
	}
}
