// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

import (
	"math"

	"github.com/martapien/instaseis/femmap"
	"github.com/martapien/instaseis/kdtree"
	"github.com/martapien/instaseis/meshdb"
	"github.com/martapien/instaseis/rotations"
	"github.com/martapien/instaseis/semderiv"
	"github.com/martapien/instaseis/spectral"
)

type locatable interface {
	X(planetRadius float64) float64
	Y(planetRadius float64) float64
	Z(planetRadius float64) float64
	LongitudeRad() float64
	ColatitudeRad() float64
}

var validComponents = map[byte]bool{'Z': true, 'N': true, 'E': true, 'R': true, 'T': true}

func elementTagToType(tag meshdb.ElementTag) femmap.ElementType {
	return femmap.ElementType(tag)
}

// resolveElement walks the canonical mesh's kd-tree candidates in distance
// order and returns the first element whose inverse mapping reports the
// point inside, per §4.7 steps 2-3.
func (o *DatabaseSession) resolveElement(s, z float64, k int) (elemID int, xi, eta float64, eltype femmap.ElementType, err error) {
	acc := o.canonical.Access()
	tree := o.canonical.Tree()
	candidates := tree.KNN(kdtree.Point{S: s, Z: z}, k)
	for _, idx := range candidates {
		corners4 := acc.Corners(idx)
		ids := []int{corners4[0], corners4[1], corners4[2], corners4[3]}
		ss := acc.ReadS(ids)
		zz := acc.ReadZ(ids)
		var corners femmap.Corners
		for i := 0; i < 4; i++ {
			corners[i] = [2]float64{ss[i], zz[i]}
		}
		et := elementTagToType(acc.ElType(idx))
		isIn, xiV, etaV := femmap.InsideElement(s, z, corners, et, 1.0e-3)
		if isIn {
			return idx, xiV, etaV, et, nil
		}
	}
	return 0, 0, 0, 0, newErr(ElementNotFound, "no candidate element contains (s=%.6g, z=%.6g)", s, z)
}

func symmetryToSemderiv(sym meshdb.Symmetry) semderiv.Symmetry {
	switch sym {
	case meshdb.Dipole:
		return semderiv.Dipole
	case meshdb.Quadpole:
		return semderiv.Quadpole
	default:
		return semderiv.Monopole
	}
}

func reconstructStrain(sym meshdb.Symmetry, u [][][][3]float64, G, GT [][]float64, xiNodes, etaNodes []float64, corners femmap.Corners, eltype femmap.ElementType, axis bool) [][][][6]float64 {
	switch symmetryToSemderiv(sym) {
	case semderiv.Dipole:
		return semderiv.StrainDipoleTD(u, G, GT, xiNodes, etaNodes, corners, eltype, axis)
	case semderiv.Quadpole:
		return semderiv.StrainQuadpoleTD(u, G, GT, xiNodes, etaNodes, corners, eltype, axis)
	default:
		return semderiv.StrainMonopoleTD(u, G, GT, xiNodes, etaNodes, corners, eltype, axis)
	}
}

type basis struct {
	xiNodes, etaNodes []float64
	G, GT             [][]float64
}

// basisFor selects the (xi, eta) collocation grids for an element,
// switching the xi-direction to the GLJ grid for axis-touching elements
// per §4.7 step 4.
func basisFor(mesh *meshdb.MeshHandle, axis bool) basis {
	if axis {
		return basis{xiNodes: mesh.GLJPoints, etaNodes: mesh.GLLPoints, G: mesh.G2, GT: mesh.G1T}
	}
	return basis{xiNodes: mesh.GLLPoints, etaNodes: mesh.GLLPoints, G: mesh.G2, GT: mesh.G2T}
}

// elementStrainSeries interpolates all T samples of all six voigt components
// at (xi, eta); the non-monopole sign flip of components 4 and 6 is already
// part of the reconstructed (or buffered) strain grid
func elementStrainSeries(mesh *meshdb.MeshHandle, elemID int, gllIDs []int, b basis, corners femmap.Corners, eltype femmap.ElementType, axis bool, sym meshdb.Symmetry, xi, eta float64) ([][6]float64, error) {
	var strain [][][][6]float64
	if mesh.StrainBuf != nil && mesh.StrainBuf.Contains(elemID) {
		strain = mesh.StrainBuf.Get(elemID).(meshdb.StrainGridEntry)
	} else {
		u, err := mesh.ReadDisplacementGLL(gllIDs)
		if err != nil {
			return nil, wrapErr(IoError, err, "reading displacement for element %d", elemID)
		}
		strain = reconstructStrain(sym, u, b.G, b.GT, b.xiNodes, b.etaNodes, corners, eltype, axis)
		if mesh.StrainBuf != nil {
			mesh.StrainBuf.Add(elemID, meshdb.StrainGridEntry(strain))
		}
	}

	nt := len(strain)
	series := make([][6]float64, nt)
	for c := 0; c < 6; c++ {
		field := make([][][]float64, nt)
		for t := 0; t < nt; t++ {
			field[t] = make([][]float64, len(strain[t]))
			for j := range strain[t] {
				field[t][j] = make([]float64, len(strain[t][j]))
				for i := range strain[t][j] {
					field[t][j][i] = strain[t][j][i][c]
				}
			}
		}
		interp := spectral.LagrangeInterp2D(b.xiNodes, b.etaNodes, field, xi, eta)
		for t := 0; t < nt; t++ {
			series[t][c] = interp[t]
		}
	}
	return series, nil
}

func elementDisplacementSeries(mesh *meshdb.MeshHandle, elemID int, gllIDs []int, b basis, xi, eta float64) ([][3]float64, error) {
	var u [][][][3]float64
	if mesh.DisplBuf != nil && mesh.DisplBuf.Contains(elemID) {
		u = mesh.DisplBuf.Get(elemID).(meshdb.DisplEntry)
	} else {
		var err error
		u, err = mesh.ReadDisplacementGLL(gllIDs)
		if err != nil {
			return nil, wrapErr(IoError, err, "reading displacement for element %d", elemID)
		}
		if mesh.DisplBuf != nil {
			mesh.DisplBuf.Add(elemID, meshdb.DisplEntry(u))
		}
	}

	nt := len(u)
	out := make([][3]float64, nt)
	for c := 0; c < 3; c++ {
		field := make([][][]float64, nt)
		for t := 0; t < nt; t++ {
			field[t] = make([][]float64, len(u[t]))
			for j := range u[t] {
				field[t][j] = make([]float64, len(u[t][j]))
				for i := range u[t][j] {
					field[t][j][i] = u[t][j][i][c]
				}
			}
		}
		interp := spectral.LagrangeInterp2D(b.xiNodes, b.etaNodes, field, xi, eta)
		for t := 0; t < nt; t++ {
			out[t][c] = interp[t]
		}
	}
	return out, nil
}

// GetSeismograms is the extraction engine's single public operation.
func (o *DatabaseSession) GetSeismograms(source SeismogramSource, receiver Receiver, components []string) (map[string][]float64, error) {
	for _, c := range components {
		if len(c) != 1 || !validComponents[c[0]] {
			return nil, newErr(InvalidArgument, "unknown component %q", c)
		}
	}

	_, isForce := source.(ForceSource)
	momentSource, isMoment := source.(Source)
	if !isForce && !isMoment {
		return nil, newErr(InvalidArgument, "source must be Source or ForceSource")
	}

	if o.IsReciprocal() {
		return o.getSeismogramsReciprocal(source, receiver, components)
	}
	if isForce {
		return nil, newErr(UnsupportedMode, "force sources are not supported in forward mode")
	}
	return o.getSeismogramsForward(momentSource, receiver, components)
}

func (o *DatabaseSession) getSeismogramsReciprocal(source SeismogramSource, receiver Receiver, components []string) (map[string][]float64, error) {
	a := source.(locatable)
	planetRadius := o.canonical.Meta.PlanetRadius
	s, phi, z := rotations.RotateFrameRD(a.X(planetRadius), a.Y(planetRadius), a.Z(planetRadius), receiver.LongitudeRad(), receiver.ColatitudeRad())

	dump := o.canonical.Meta.Dump
	k := 1
	if dump == meshdb.DisplOnly {
		k = 6
	}
	elemID, xi, eta, eltype, err := o.resolveElement(s, z, k)
	if err != nil {
		return nil, err
	}

	acc := o.canonical.Access()
	axis := acc.IsAxis(elemID)
	b2 := basisFor(o.canonical, axis)
	gllIDs := acc.SemMeshIDs(elemID)

	momentSource, isMoment := source.(Source)
	if isMoment {
		return o.reciprocalMomentTensor(momentSource, receiver, elemID, gllIDs, b2, eltype, axis, xi, eta, phi, components)
	}
	forceSource := source.(ForceSource)
	return o.reciprocalForce(forceSource, receiver, elemID, gllIDs, b2, xi, eta, phi, components)
}

func (o *DatabaseSession) reciprocalMomentTensor(source Source, receiver Receiver, elemID int, gllIDs []int, b basis, eltype femmap.ElementType, axis bool, xi, eta, phi float64, components []string) (map[string][]float64, error) {
	corners4 := o.canonical.Access().Corners(elemID)
	ss := o.canonical.Access().ReadS([]int{corners4[0], corners4[1], corners4[2], corners4[3]})
	zz := o.canonical.Access().ReadZ([]int{corners4[0], corners4[1], corners4[2], corners4[3]})
	var corners femmap.Corners
	for i := 0; i < 4; i++ {
		corners[i] = [2]float64{ss[i], zz[i]}
	}

	needZ := contains(components, "Z")
	needX := containsAny(components, "N", "E", "R", "T")
	sym := o.canonical.Meta.Excitation

	if needZ && o.Bwd.PZ == nil {
		return nil, newErr(BadDatabaseLayout, "component Z requested but this database has no PZ mesh")
	}
	if needX && o.Bwd.PX == nil {
		return nil, newErr(BadDatabaseLayout, "components N/E/R/T requested but this database has no PX mesh")
	}

	var strainZ, strainX [][6]float64
	var err error
	if needZ {
		strainZ, err = strainFor(o.Bwd.PZ, o.canonical.Meta.Dump, elemID, gllIDs, b, corners, eltype, axis, sym, xi, eta)
		if err != nil {
			return nil, err
		}
	}
	if needX {
		strainX, err = strainFor(o.Bwd.PX, o.canonical.Meta.Dump, elemID, gllIDs, b, corners, eltype, axis, sym, xi, eta)
		if err != nil {
			return nil, err
		}
	}

	mij := source.TensorVoigt()
	mij = rotations.RotateSymmTensorVoigtXYZSrcToEarth(mij, source.LongitudeRad(), source.ColatitudeRad())
	mij = rotations.RotateSymmTensorVoigtXYZEarthToSrc(mij, receiver.LongitudeRad(), receiver.ColatitudeRad())
	mij = rotations.RotateSymmTensorVoigtXYZToSrc(mij, phi)
	amp := o.canonical.Meta.Amplitude
	for i := range mij {
		mij[i] /= amp
	}

	data := make(map[string][]float64)
	if contains(components, "Z") {
		nt := len(strainZ)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = mij[0]*strainZ[t][0] + mij[1]*strainZ[t][1] + mij[2]*strainZ[t][2] + 2.0*mij[4]*strainZ[t][4]
		}
		data["Z"] = out
	}
	if contains(components, "R") {
		nt := len(strainX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = -(strainX[t][0]*mij[0] + strainX[t][1]*mij[1] + strainX[t][2]*mij[2] + 2.0*strainX[t][4]*mij[4])
		}
		data["R"] = out
	}
	if contains(components, "T") {
		nt := len(strainX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = 2.0*strainX[t][3]*mij[3] + 2.0*strainX[t][5]*mij[5]
		}
		data["T"] = out
	}
	for _, comp := range []string{"E", "N"} {
		if !contains(components, comp) {
			continue
		}
		var fac1, fac2 float64
		if comp == "N" {
			fac1, fac2 = math.Cos(phi), -math.Sin(phi)
		} else {
			fac1, fac2 = math.Sin(phi), math.Cos(phi)
		}
		nt := len(strainX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			v := strainX[t][0]*mij[0]*fac1 + strainX[t][1]*mij[1]*fac1 + strainX[t][2]*mij[2]*fac1 +
				strainX[t][3]*mij[3]*2.0*fac2 + strainX[t][4]*mij[4]*2.0*fac1 + strainX[t][5]*mij[5]*2.0*fac2
			if comp == "N" {
				v = -v
			}
			out[t] = v
		}
		data[comp] = out
	}
	return data, nil
}

func strainFor(mesh *meshdb.MeshHandle, dump meshdb.DumpKind, elemID int, gllIDs []int, b basis, corners femmap.Corners, eltype femmap.ElementType, axis bool, sym meshdb.Symmetry, xi, eta float64) ([][6]float64, error) {
	if dump == meshdb.DisplOnly {
		return elementStrainSeries(mesh, elemID, gllIDs, b, corners, eltype, axis, sym, xi, eta)
	}
	if mesh.StrainBuf != nil && mesh.StrainBuf.Contains(elemID) {
		return mesh.StrainBuf.Get(elemID).(meshdb.StrainEntry), nil
	}
	traces, err := mesh.StrainTraces(elemID)
	if err != nil {
		return nil, wrapErr(IoError, err, "reading strain traces for element %d", elemID)
	}
	out := make(meshdb.StrainEntry, len(traces))
	for t := range traces {
		out[t] = traces[t]
	}
	if mesh.StrainBuf != nil {
		mesh.StrainBuf.Add(elemID, out)
	}
	return out, nil
}

func (o *DatabaseSession) reciprocalForce(source ForceSource, receiver Receiver, elemID int, gllIDs []int, b basis, xi, eta, phi float64, components []string) (map[string][]float64, error) {
	if o.canonical.Meta.Dump != meshdb.DisplOnly {
		return nil, newErr(UnsupportedDump, "force sources require a displ_only database")
	}

	needZ := contains(components, "Z")
	needX := containsAny(components, "N", "E", "R", "T")

	if needZ && o.Bwd.PZ == nil {
		return nil, newErr(BadDatabaseLayout, "component Z requested but this database has no PZ mesh")
	}
	if needX && o.Bwd.PX == nil {
		return nil, newErr(BadDatabaseLayout, "components N/E/R/T requested but this database has no PX mesh")
	}

	var displZ, displX [][3]float64
	var err error
	if needZ {
		displZ, err = elementDisplacementSeries(o.Bwd.PZ, elemID, gllIDs, b, xi, eta)
		if err != nil {
			return nil, err
		}
	}
	if needX {
		displX, err = elementDisplacementSeries(o.Bwd.PX, elemID, gllIDs, b, xi, eta)
		if err != nil {
			return nil, err
		}
	}

	force := source.ForceVectorSPZ()
	force3 := rotations.RotateVectorXYZSrcToEarth(force, source.LongitudeRad(), source.ColatitudeRad())
	force3 = rotations.RotateVectorXYZEarthToSrc(force3, receiver.LongitudeRad(), receiver.ColatitudeRad())
	force3 = rotations.RotateVectorXYZToSrc(force3, phi)
	amp := o.canonical.Meta.Amplitude
	for i := range force3 {
		force3[i] /= amp
	}

	data := make(map[string][]float64)
	if contains(components, "Z") {
		nt := len(displZ)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = displZ[t][0]*force3[0] + displZ[t][2]*force3[2]
		}
		data["Z"] = out
	}
	if contains(components, "R") {
		nt := len(displX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = displX[t][0]*force3[0] + displX[t][2]*force3[2]
		}
		data["R"] = out
	}
	if contains(components, "T") {
		nt := len(displX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = displX[t][1] * force3[1]
		}
		data["T"] = out
	}
	for _, comp := range []string{"E", "N"} {
		if !contains(components, comp) {
			continue
		}
		var fac1, fac2 float64
		if comp == "N" {
			fac1, fac2 = math.Cos(phi), -math.Sin(phi)
		} else {
			fac1, fac2 = math.Sin(phi), math.Cos(phi)
		}
		nt := len(displX)
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			v := displX[t][0]*force3[0]*fac1 + displX[t][1]*force3[1]*fac2 + displX[t][2]*force3[2]*fac1
			if comp == "N" {
				v = -v
			}
			out[t] = v
		}
		data[comp] = out
	}
	return data, nil
}

func (o *DatabaseSession) getSeismogramsForward(source Source, receiver Receiver, components []string) (map[string][]float64, error) {
	if o.canonical.Meta.Dump != meshdb.DisplOnly {
		return nil, newErr(UnsupportedDump, "forward mode requires a displ_only database")
	}

	planetRadius := o.canonical.Meta.PlanetRadius
	s, phi, z := rotations.RotateFrameRD(receiver.X(planetRadius), receiver.Y(planetRadius), receiver.Z(planetRadius), source.LongitudeRad(), source.ColatitudeRad())

	elemID, xi, eta, _, err := o.resolveElement(s, z, 6)
	if err != nil {
		return nil, err
	}
	acc := o.canonical.Access()
	axis := acc.IsAxis(elemID)
	b := basisFor(o.canonical, axis)
	gllIDs := acc.SemMeshIDs(elemID)

	d1, err := elementDisplacementSeries(o.Fwd.M1, elemID, gllIDs, b, xi, eta)
	if err != nil {
		return nil, err
	}
	d2, err := elementDisplacementSeries(o.Fwd.M2, elemID, gllIDs, b, xi, eta)
	if err != nil {
		return nil, err
	}
	d3, err := elementDisplacementSeries(o.Fwd.M3, elemID, gllIDs, b, xi, eta)
	if err != nil {
		return nil, err
	}
	d4, err := elementDisplacementSeries(o.Fwd.M4, elemID, gllIDs, b, xi, eta)
	if err != nil {
		return nil, err
	}

	mij := source.Tensor() // [Mrr, Mtt, Mpp, Mrt, Mrp, Mtp]
	amp := o.canonical.Meta.Amplitude
	for i := range mij {
		mij[i] /= amp
	}

	nt := len(d1)
	final := make([][3]float64, nt)
	for t := 0; t < nt; t++ {
		final[t][0] += d1[t][0] * mij[0]
		final[t][2] += d1[t][2] * mij[0]

		final[t][0] += d2[t][0] * (mij[1] + mij[2])
		final[t][2] += d2[t][2] * (mij[1] + mij[2])

		fac1 := mij[3]*math.Cos(phi) + mij[4]*math.Sin(phi)
		fac2 := -mij[3]*math.Sin(phi) + mij[4]*math.Cos(phi)
		final[t][0] += d3[t][0] * fac1
		final[t][1] += d3[t][1] * fac2
		final[t][2] += d3[t][2] * fac1

		fac1b := (mij[1]-mij[2])*math.Cos(2*phi) + 2*mij[5]*math.Sin(2*phi)
		fac2b := -(mij[1]-mij[2])*math.Sin(2*phi) + 2*mij[5]*math.Cos(2*phi)
		final[t][0] += d4[t][0] * fac1b
		final[t][1] += d4[t][1] * fac2b
		final[t][2] += d4[t][2] * fac1b
	}

	data := make(map[string][]float64)
	rotmeshColat := math.Atan2(s, z)
	if contains(components, "T") {
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = -final[t][1]
		}
		data["T"] = out
	}
	if contains(components, "R") {
		out := make([]float64, nt)
		for t := 0; t < nt; t++ {
			out[t] = final[t][0]*math.Cos(rotmeshColat) - final[t][2]*math.Sin(rotmeshColat)
		}
		data["R"] = out
	}
	if containsAny(components, "N", "E", "Z") {
		spz := [3][]float64{make([]float64, nt), make([]float64, nt), make([]float64, nt)}
		for t := 0; t < nt; t++ {
			spz[0][t] = final[t][0]
			spz[1][t] = final[t][1]
			spz[2][t] = final[t][2]
		}
		nez := rotations.RotateVectorSrcToNEZ(spz, phi, source.LongitudeRad(), source.ColatitudeRad(), receiver.LongitudeRad(), receiver.ColatitudeRad())
		if contains(components, "N") {
			data["N"] = nez[0]
		}
		if contains(components, "E") {
			data["E"] = nez[1]
		}
		if contains(components, "Z") {
			data["Z"] = nez[2]
		}
	}
	return data, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsAny(list []string, vs ...string) bool {
	for _, v := range vs {
		if contains(list, v) {
			return true
		}
	}
	return false
}
