// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

// inMemoryAccessor materializes every fixed nodal array in process memory at
// open time. Used when read_on_demand=false.
type inMemoryAccessor struct {
	s, z, mu   []float64
	femMesh    [][4]int
	semMesh    [][]int
	eltype     []ElementTag
	axis       []bool
	mpS, mpZ   []float64
}

func newInMemoryAccessor(s, z, mu []float64, femMesh [][4]int, semMesh [][]int, eltype []ElementTag, axis []bool, mpS, mpZ []float64) *inMemoryAccessor {
	return &inMemoryAccessor{s: s, z: z, mu: mu, femMesh: femMesh, semMesh: semMesh, eltype: eltype, axis: axis, mpS: mpS, mpZ: mpZ}
}

func (o *inMemoryAccessor) Corners(elemID int) [4]int    { return o.femMesh[elemID] }
func (o *inMemoryAccessor) SemMeshIDs(elemID int) []int  { return o.semMesh[elemID] }
func (o *inMemoryAccessor) ElType(elemID int) ElementTag { return o.eltype[elemID] }
func (o *inMemoryAccessor) IsAxis(elemID int) bool       { return o.axis[elemID] }
func (o *inMemoryAccessor) NumElements() int             { return len(o.femMesh) }

func (o *inMemoryAccessor) ElementMidpoint(elemID int) (s, z float64) {
	return o.mpS[elemID], o.mpZ[elemID]
}

func (o *inMemoryAccessor) ReadS(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 {
		out := make([]float64, len(u))
		for i, id := range u {
			out[i] = o.s[id]
		}
		return out
	})
}

func (o *inMemoryAccessor) ReadZ(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 {
		out := make([]float64, len(u))
		for i, id := range u {
			out[i] = o.z[id]
		}
		return out
	})
}

func (o *inMemoryAccessor) ReadMu(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 {
		out := make([]float64, len(u))
		for i, id := range u {
			out[i] = o.mu[id]
		}
		return out
	})
}
