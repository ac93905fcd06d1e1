// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kdtree

import "testing"

func samplePoints() ([]Point, []int) {
	pts := []Point{
		{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 2}, {-1, -1}, {3, 0}, {0, 3}, {5, 5}, {2, 0},
	}
	ids := make([]int, len(pts))
	for i := range ids {
		ids[i] = i + 100
	}
	return pts, ids
}

// TestKNNMatchesBruteForce compares the distance at every rank: points at
// equal distance may come back in a different order (KNN keeps kd-tree
// traversal order among ties, the brute force keeps input order).
func TestKNNMatchesBruteForce(tst *testing.T) {
	pts, ids := samplePoints()
	tree := Build(pts, ids)
	byID := make(map[int]Point, len(pts))
	for i, id := range ids {
		byID[id] = pts[i]
	}
	queries := []Point{{0.1, 0.1}, {2, 2}, {-5, -5}, {4, 4}}
	for _, q := range queries {
		for _, k := range []int{1, 6} {
			got := tree.KNN(q, k)
			want := BruteForceKNN(pts, ids, q, k)
			if len(got) != len(want) {
				tst.Fatalf("q=%v k=%d: length mismatch got=%v want=%v", q, k, got, want)
			}
			for i := range got {
				if sqDist(q, byID[got[i]]) != sqDist(q, byID[want[i]]) {
					tst.Fatalf("q=%v k=%d: mismatch at %d: got=%v want=%v", q, k, i, got, want)
				}
			}
		}
	}
}

func TestKNNSingleNearest(tst *testing.T) {
	pts, ids := samplePoints()
	tree := Build(pts, ids)
	got := tree.KNN(Point{0.05, -0.05}, 1)
	if len(got) != 1 || got[0] != 100 {
		tst.Fatalf("expected nearest id 100 (point 0,0), got %v", got)
	}
}

func TestKNNRequestExceedingPointCount(tst *testing.T) {
	pts, ids := samplePoints()
	tree := Build(pts, ids)
	got := tree.KNN(Point{0, 0}, 1000)
	if len(got) != len(pts) {
		tst.Fatalf("expected all %d points back, got %d", len(pts), len(got))
	}
}

func TestKNNEmptyTree(tst *testing.T) {
	tree := Build(nil, nil)
	got := tree.KNN(Point{0, 0}, 5)
	if got != nil {
		tst.Fatalf("expected nil result from empty tree, got %v", got)
	}
}
