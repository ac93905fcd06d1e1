// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

import "sort"

// NodalAccessor is a view over the fixed nodal arrays (S, Z, mu, fem_mesh,
// sem_mesh, eltype, axis) of an open mesh file. It has exactly two
// implementations: an in-memory one that holds the full arrays, and a
// file-backed one that re-reads from disc on every call. Both honour the
// same sort-permute-restore contract: readers must receive every requested
// id's values in the caller's original order, even though the backing file
// format rejects unsorted or duplicated index lists.
type NodalAccessor interface {
	Corners(elemID int) (nodeIDS [4]int)
	SemMeshIDs(elemID int) []int
	ElType(elemID int) ElementTag
	IsAxis(elemID int) bool
	ReadS(ids []int) []float64
	ReadZ(ids []int) []float64
	ReadMu(ids []int) []float64
	ElementMidpoint(elemID int) (s, z float64)
	NumElements() int
}

// ElementTag mirrors femmap.ElementType without importing it here, keeping
// this package's on-disc vocabulary independent of the mapping package's
// enumeration
type ElementTag int

const (
	ElLinear ElementTag = iota
	ElSemino
	ElSemiso
	ElSubpar
)

// sortPermuteRestore executes read(uniqueSortedIDs) against the backing
// store and returns the results reordered (and, where needed, duplicated)
// to match the caller's original ids slice. This is the one place the
// lazy-read constraint described in §4.6 is enforced; both NodalAccessor
// implementations route every disc read through it, since the backing file
// format rejects both unsorted and duplicated index lists.
func sortPermuteRestore(ids []int, read func(uniqueSorted []int) []float64) []float64 {
	unique := make([]int, 0, len(ids))
	firstPos := make(map[int]int, len(ids))
	for _, id := range ids {
		if _, ok := firstPos[id]; !ok {
			firstPos[id] = len(unique)
			unique = append(unique, id)
		}
	}
	sort.Ints(unique)

	uniquePos := make(map[int]int, len(unique))
	for i, id := range unique {
		uniquePos[id] = i
	}

	vals := read(unique)

	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = vals[uniquePos[id]]
	}
	return out
}

// sortPermuteRestoreColumns is sortPermuteRestore's analogue for readers
// that return one time series (rather than one scalar) per requested id
func sortPermuteRestoreColumns(ids []int, read func(uniqueSorted []int) [][]float64) [][]float64 {
	unique := make([]int, 0, len(ids))
	firstPos := make(map[int]int, len(ids))
	for _, id := range ids {
		if _, ok := firstPos[id]; !ok {
			firstPos[id] = len(unique)
			unique = append(unique, id)
		}
	}
	sort.Ints(unique)

	uniquePos := make(map[int]int, len(unique))
	for i, id := range unique {
		uniquePos[id] = i
	}

	vals := read(unique)

	out := make([][]float64, len(ids))
	for i, id := range ids {
		out[i] = vals[uniquePos[id]]
	}
	return out
}
