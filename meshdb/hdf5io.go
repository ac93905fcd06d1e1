// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

import (
	hdf5 "github.com/sbinet/go-hdf5"
)

// readIntRow reads the width-wide row of integers at the given element id
// from a 2-D (or 1-D, width=1) integer dataset. Used only for the
// already-sorted, single-id access pattern of per-element corner/sem-mesh
// lookups, which never triggers the unsorted-index restriction.
func readIntRow(ds *hdf5.Dataset, elemID, width int) []int {
	space := ds.Space()
	defer space.Close()
	out := make([]int32, width)
	fspace := space.Select(hdf5.SelectSet, []uint{uint(elemID), 0}, nil, []uint{1, uint(width)}, nil)
	mspace, _ := hdf5.CreateSimpleDataspace([]uint{uint(width)}, nil)
	defer mspace.Close()
	ds.ReadSubset(&out, fspace, mspace)
	result := make([]int, width)
	for i, v := range out {
		result[i] = int(v)
	}
	return result
}

// readFloatByIDs reads one float64 value per id from a 1-D dataset indexed
// by node id. ids must already be sorted and unique: the backing file
// format rejects unsorted or duplicated index lists, which is why every
// caller routes through sortPermuteRestore before reaching here.
func readFloatByIDs(ds *hdf5.Dataset, ids []int) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		space := ds.Space()
		fspace := space.Select(hdf5.SelectSet, []uint{uint(id)}, nil, []uint{1}, nil)
		mspace, _ := hdf5.CreateSimpleDataspace([]uint{1}, nil)
		var v [1]float64
		ds.ReadSubset(&v, fspace, mspace)
		out[i] = v[0]
		mspace.Close()
		space.Close()
	}
	return out
}

// readFloatAttr reads a scalar float64 root attribute
func readFloatAttr(f *hdf5.File, name string) (float64, error) {
	attr, err := f.OpenAttribute(name)
	if err != nil {
		return 0, err
	}
	defer attr.Close()
	var v float64
	if err := attr.Read(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// readIntAttr reads a scalar integer root attribute
func readIntAttr(f *hdf5.File, name string) (int, error) {
	attr, err := f.OpenAttribute(name)
	if err != nil {
		return 0, err
	}
	defer attr.Close()
	var v int32
	if err := attr.Read(&v); err != nil {
		return 0, err
	}
	return int(v), nil
}

// readStringAttr reads a scalar string root attribute
func readStringAttr(f *hdf5.File, name string) (string, error) {
	attr, err := f.OpenAttribute(name)
	if err != nil {
		return "", err
	}
	defer attr.Close()
	var v string
	if err := attr.Read(&v); err != nil {
		return "", err
	}
	return v, nil
}

// readFloatVector reads a full 1-D float64 dataset
func readFloatVector(ds *hdf5.Dataset, n int) []float64 {
	out := make([]float64, n)
	ds.Read(&out)
	return out
}

// readFloat2DColumn reads the length-T column at the given index out of a
// 2-D [T, P] dataset (time-major snapshot arrays are stored this way)
func readFloat2DColumn(ds *hdf5.Dataset, numTimeSamples, col int) []float64 {
	space := ds.Space()
	defer space.Close()
	fspace := space.Select(hdf5.SelectSet, []uint{0, uint(col)}, nil, []uint{uint(numTimeSamples), 1}, nil)
	mspace, _ := hdf5.CreateSimpleDataspace([]uint{uint(numTimeSamples)}, nil)
	defer mspace.Close()
	out := make([]float64, numTimeSamples)
	ds.ReadSubset(&out, fspace, mspace)
	return out
}
