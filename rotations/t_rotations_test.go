// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rotations

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestTensorRoundTrip checks invariant 3: earth_to_src composed with
// src_to_earth is the identity within 1e-12.
func TestTensorRoundTrip(tst *testing.T) {
	lon, colat := 0.3, 1.1
	t := Voigt{1, 2, 3, 0.4, 0.5, 0.6}
	earth := RotateSymmTensorVoigtXYZSrcToEarth(t, lon, colat)
	back := RotateSymmTensorVoigtXYZEarthToSrc(earth, lon, colat)
	// earth_to_src(src_to_earth(t)) should recover t only if the two
	// rotations share the same angles and are mutual inverses
	for i := 0; i < 6; i++ {
		chk.Scalar(tst, "tensor round-trip", 1e-12, back[i], t[i])
	}
}

func TestVectorRoundTrip(tst *testing.T) {
	lon, colat := 0.7, 0.4
	v := [3]float64{1, 2, 3}
	e := RotateVectorXYZSrcToEarth(v, lon, colat)
	back := RotateVectorXYZEarthToSrc(e, lon, colat)
	for i := 0; i < 3; i++ {
		chk.Scalar(tst, "vector round-trip", 1e-12, back[i], v[i])
	}
}

func TestRotateFrameRDPoleIsOrigin(tst *testing.T) {
	// a point located exactly at the pole (lon,colat) maps to s=0
	lon, colat := 0.5, 0.9
	x := math.Sin(colat) * math.Cos(lon)
	y := math.Sin(colat) * math.Sin(lon)
	z := math.Cos(colat)
	s, _, zOut := RotateFrameRD(x, y, z, lon, colat)
	chk.Scalar(tst, "s at pole", 1e-10, s, 0)
	chk.Scalar(tst, "z at pole", 1e-10, zOut, 1)
}

func TestRotateVectorToSrcAndBack(tst *testing.T) {
	phi := 0.33
	v := [3]float64{1.1, -2.2, 3.3}
	rotated := RotateVectorXYZToSrc(v, phi)
	back := RotateVectorXYZToSrc(rotated, -phi)
	for i := 0; i < 3; i++ {
		chk.Scalar(tst, "azimuthal round-trip", 1e-12, back[i], v[i])
	}
}
