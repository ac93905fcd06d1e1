// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rotations implements the algebraic vector and symmetric-tensor
// rotations chaining the source-centred, Earth-centred, and receiver-local
// frames used by the extraction engine. Every routine is a pure function of
// dense fixed-size arrays; there is no hidden state.
package rotations

import "math"

// Voigt is a symmetric 3x3 tensor stored in the fixed ordering
// (ε_ss, ε_pp, ε_zz, ε_zp, ε_sz, ε_sp)
type Voigt [6]float64

// rotMatXYZ builds the rotation matrix taking the geographic (x,y,z) frame
// at colatitude/longitude (colat, lon) into the local (s=radial-horizontal,
// p=transverse, z=radial) source/receiver frame
func rotMatXYZ(lon, colat float64) [3][3]float64 {
	sLon, cLon := math.Sin(lon), math.Cos(lon)
	sCol, cCol := math.Sin(colat), math.Cos(colat)
	return [3][3]float64{
		{cCol * cLon, cCol * sLon, -sCol},
		{-sLon, cLon, 0},
		{sCol * cLon, sCol * sLon, cCol},
	}
}

func matVec(m [3][3]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func transpose(m [3][3]float64) [3][3]float64 {
	var t [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var c [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return c
}

// voigtToMat expands the fixed (ss,pp,zz,zp,sz,sp) voigt vector into a dense
// symmetric 3x3 matrix in (s,p,z) order
func voigtToMat(v Voigt) [3][3]float64 {
	return [3][3]float64{
		{v[0], v[5], v[4]},
		{v[5], v[1], v[3]},
		{v[4], v[3], v[2]},
	}
}

func matToVoigt(m [3][3]float64) Voigt {
	return Voigt{m[0][0], m[1][1], m[2][2], m[1][2], m[0][2], m[0][1]}
}

func rotateTensor(t Voigt, r [3][3]float64) Voigt {
	m := voigtToMat(t)
	return matToVoigt(matMul(matMul(r, m), transpose(r)))
}

// RotateFrameRD rotates the cartesian point (x,y,z) by the colatitude/longitude
// of an epicentre, returning the cylindrical mesh-frame coordinates (s, phi, z)
func RotateFrameRD(x, y, z, lon, colat float64) (s, phi, zOut float64) {
	r := rotMatXYZ(lon, colat)
	v := matVec(r, [3]float64{x, y, z})
	s = math.Hypot(v[0], v[1])
	phi = math.Atan2(v[1], v[0])
	zOut = v[2]
	return
}

// RotateSymmTensorVoigtXYZSrcToEarth rotates a symmetric tensor, expressed in
// the (s,p,z) frame centred on a source at (lon,colat), into the geocentric
// Earth-fixed (x,y,z) frame
func RotateSymmTensorVoigtXYZSrcToEarth(t Voigt, lon, colat float64) Voigt {
	r := transpose(rotMatXYZ(lon, colat))
	return rotateTensor(t, r)
}

// RotateSymmTensorVoigtXYZEarthToSrc rotates a symmetric tensor from the
// geocentric Earth-fixed frame into the (s,p,z) frame centred at (lon,colat)
func RotateSymmTensorVoigtXYZEarthToSrc(t Voigt, lon, colat float64) Voigt {
	r := rotMatXYZ(lon, colat)
	return rotateTensor(t, r)
}

// RotateSymmTensorVoigtXYZToSrc rotates a symmetric tensor about the z-axis by
// azimuth phi, completing the chain into the mesh's source-centred frame
func RotateSymmTensorVoigtXYZToSrc(t Voigt, phi float64) Voigt {
	c, s := math.Cos(phi), math.Sin(phi)
	r := [3][3]float64{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
	return rotateTensor(t, r)
}

// RotateVectorXYZSrcToEarth rotates a 3-vector from the source-local (s,p,z)
// frame into the geocentric Earth-fixed frame
func RotateVectorXYZSrcToEarth(v [3]float64, lon, colat float64) [3]float64 {
	return matVec(transpose(rotMatXYZ(lon, colat)), v)
}

// RotateVectorXYZEarthToSrc rotates a 3-vector from the Earth-fixed frame into
// the (s,p,z) frame centred at (lon,colat)
func RotateVectorXYZEarthToSrc(v [3]float64, lon, colat float64) [3]float64 {
	return matVec(rotMatXYZ(lon, colat), v)
}

// RotateVectorXYZToSrc rotates a 3-vector about the z-axis by azimuth phi
func RotateVectorXYZToSrc(v [3]float64, phi float64) [3]float64 {
	c, s := math.Cos(phi), math.Sin(phi)
	r := [3][3]float64{{c, s, 0}, {-s, c, 0}, {0, 0, 1}}
	return matVec(r, v)
}

// RotateVectorSrcToNEZ rotates a time series of 3-vectors, given in the
// forward-mode (s,p,z) synthesis frame at azimuth phi, into the geographic
// North/East/Z components at the receiver, chaining source->earth->receiver.
// v3xT is laid out [3][T] (component-major) to match the synthesis step that
// produces it; the returned array uses the same layout.
func RotateVectorSrcToNEZ(v3xT [3][]float64, phi, srcLon, srcColat, recLon, recColat float64) [3][]float64 {
	nt := len(v3xT[0])
	out := [3][]float64{make([]float64, nt), make([]float64, nt), make([]float64, nt)}
	cp, sp := math.Cos(phi), math.Sin(phi)
	rSrcT := transpose(rotMatXYZ(srcLon, srcColat))
	rRec := rotMatXYZ(recLon, recColat)
	for t := 0; t < nt; t++ {
		spz := [3]float64{v3xT[0][t], v3xT[1][t], v3xT[2][t]}
		// cylindrical (s, phi-hat, z) components at azimuth phi -> Cartesian
		// components in the mesh frame centred on the source
		meshCart := matVec([3][3]float64{{cp, -sp, 0}, {sp, cp, 0}, {0, 0, 1}}, spz)
		earth := matVec(rSrcT, meshCart)
		recLocal := matVec(rRec, earth) // (south, east, up) at the receiver
		out[0][t] = -recLocal[0]        // N = -south
		out[1][t] = recLocal[1]         // E = east
		out[2][t] = recLocal[2]         // Z = up
	}
	return out
}
