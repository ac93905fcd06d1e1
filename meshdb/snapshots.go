// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meshdb

import (
	"github.com/cpmech/gosl/chk"
	hdf5 "github.com/sbinet/go-hdf5"
)

// ReadDisplacementGLL reads disp_s, disp_p, disp_z at every id in gllIDs
// (applying the sort-permute-restore rule) for all T time samples, returning
// a dense [T][npol+1][npol+1][3] array laid out [t][eta-index][xi-index][comp],
// matching the nodal ordering gllIDs itself is stored in (row-major over
// (xi, eta) per the sem_mesh convention).
func (o *MeshHandle) ReadDisplacementGLL(gllIDs []int) ([][][][3]float64, error) {
	if o.snapshots == nil {
		return nil, chk.Err("meshdb: mesh not fully parsed, no Snapshots group open\n")
	}
	npolPlus1 := o.Meta.SpatialOrder + 1
	if len(gllIDs) != npolPlus1*npolPlus1 {
		return nil, chk.Err("meshdb: expected %d gll ids, got %d\n", npolPlus1*npolPlus1, len(gllIDs))
	}

	comps := [3]string{"disp_s", "disp_p", "disp_z"}
	var cols [3][][]float64 // cols[c][nodeIndex] = length-T time series
	for c, name := range comps {
		ds, err := o.snapshots.OpenDataset(name)
		if err != nil {
			// some dump types omit disp_p (monopole has no polar component)
			cols[c] = nil
			continue
		}
		cols[c] = readColumnsByIDs(ds, o.Meta.NumTimeSamples, gllIDs)
	}

	u := make([][][][3]float64, o.Meta.NumTimeSamples)
	for t := 0; t < o.Meta.NumTimeSamples; t++ {
		u[t] = make([][][3]float64, npolPlus1)
		for j := 0; j < npolPlus1; j++ {
			u[t][j] = make([][3]float64, npolPlus1)
			for i := 0; i < npolPlus1; i++ {
				idx := i*npolPlus1 + j
				var v [3]float64
				for c := 0; c < 3; c++ {
					if cols[c] != nil {
						v[c] = cols[c][idx][t]
					}
				}
				u[t][j][i] = v
			}
		}
	}
	return u, nil
}

// readColumnsByIDs reads one length-T column per requested id, honouring the
// sort-permute-restore rule for the underlying unsorted/duplicate-id
// restriction
func readColumnsByIDs(ds *hdf5.Dataset, numTimeSamples int, ids []int) [][]float64 {
	return sortPermuteRestoreColumns(ids, func(unique []int) [][]float64 {
		out := make([][]float64, len(unique))
		for i, id := range unique {
			out[i] = readFloat2DColumn(ds, numTimeSamples, id)
		}
		return out
	})
}

// StrainTraces reads the six stored strain component traces for elemID
// directly (strain_only/fullfields dump) and remaps them to the engine's
// fixed voigt ordering, per §4.7 step 6.
func (o *MeshHandle) StrainTraces(elemID int) ([][6]float64, error) {
	if o.snapshots == nil {
		return nil, chk.Err("meshdb: mesh not fully parsed, no Snapshots group open\n")
	}
	names := []string{"strain_dsus", "strain_dsuz", "strain_dpup", "strain_dsup", "strain_dzup", "straintrace"}
	raw := make([][]float64, 6)
	for i, name := range names {
		ds, err := o.snapshots.OpenDataset(name)
		if err != nil {
			return nil, chk.Err("meshdb: missing strain dataset %q: %v\n", name, err)
		}
		raw[i] = readFloat2DColumn(ds, o.Meta.NumTimeSamples, elemID)
	}

	out := make([][6]float64, o.Meta.NumTimeSamples)
	for t := 0; t < o.Meta.NumTimeSamples; t++ {
		dsus, dsuz, dpup, dsup, dzup, trace := raw[0][t], raw[1][t], raw[2][t], raw[3][t], raw[4][t], raw[5][t]
		out[t] = [6]float64{
			dsus,
			dpup,
			trace - dsus - dpup,
			-dzup,
			dsuz,
			-dsup,
		}
	}
	return out, nil
}
