// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

import (
	"github.com/cpmech/gosl/chk"
	hdf5 "github.com/sbinet/go-hdf5"
)

// lazyAccessor re-reads the fixed nodal arrays from the open file on every
// call, applying the sort-permute-restore rule required by the backing
// library. Used when read_on_demand=true; keeps resident memory to the
// per-element working set rather than the whole mesh.
type lazyAccessor struct {
	group      *hdf5.Group
	femMeshDS  *hdf5.Dataset
	semMeshDS  *hdf5.Dataset
	sDS, zDS   *hdf5.Dataset
	muDS       *hdf5.Dataset
	eltypeDS   *hdf5.Dataset
	axisDS     *hdf5.Dataset
	mpS, mpZ   []float64 // always eager: needed up front to build the kd-tree
	numElems   int
	npolPlus1  int
}

func newLazyAccessor(group *hdf5.Group, mpS, mpZ []float64, npolPlus1 int) (*lazyAccessor, error) {
	open := func(name string) (*hdf5.Dataset, error) {
		ds, err := group.OpenDataset(name)
		if err != nil {
			return nil, chk.Err("meshdb: failed to open dataset %q: %v\n", name, err)
		}
		return ds, nil
	}
	femMeshDS, err := open("fem_mesh")
	if err != nil {
		return nil, err
	}
	semMeshDS, err := open("sem_mesh")
	if err != nil {
		return nil, err
	}
	sDS, err := open("mesh_S")
	if err != nil {
		return nil, err
	}
	zDS, err := open("mesh_Z")
	if err != nil {
		return nil, err
	}
	muDS, err := open("mesh_mu")
	if err != nil {
		return nil, err
	}
	eltypeDS, err := open("eltype")
	if err != nil {
		return nil, err
	}
	axisDS, err := open("axis")
	if err != nil {
		return nil, err
	}
	return &lazyAccessor{
		group: group, femMeshDS: femMeshDS, semMeshDS: semMeshDS,
		sDS: sDS, zDS: zDS, muDS: muDS, eltypeDS: eltypeDS, axisDS: axisDS,
		mpS: mpS, mpZ: mpZ, numElems: len(mpS), npolPlus1: npolPlus1,
	}, nil
}

func (o *lazyAccessor) NumElements() int { return o.numElems }

func (o *lazyAccessor) ElementMidpoint(elemID int) (s, z float64) {
	return o.mpS[elemID], o.mpZ[elemID]
}

func (o *lazyAccessor) Corners(elemID int) [4]int {
	row := readIntRow(o.femMeshDS, elemID, 4)
	return [4]int{row[0], row[1], row[2], row[3]}
}

func (o *lazyAccessor) SemMeshIDs(elemID int) []int {
	return readIntRow(o.semMeshDS, elemID, o.npolPlus1*o.npolPlus1)
}

func (o *lazyAccessor) ElType(elemID int) ElementTag {
	v := readIntRow(o.eltypeDS, elemID, 1)
	return ElementTag(v[0])
}

func (o *lazyAccessor) IsAxis(elemID int) bool {
	v := readIntRow(o.axisDS, elemID, 1)
	return v[0] != 0
}

func (o *lazyAccessor) ReadS(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 { return readFloatByIDs(o.sDS, u) })
}

func (o *lazyAccessor) ReadZ(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 { return readFloatByIDs(o.zDS, u) })
}

func (o *lazyAccessor) ReadMu(ids []int) []float64 {
	return sortPermuteRestore(ids, func(u []int) []float64 { return readFloatByIDs(o.muDS, u) })
}
