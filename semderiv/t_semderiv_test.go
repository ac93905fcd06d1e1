// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package semderiv

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/martapien/instaseis/femmap"
	"github.com/martapien/instaseis/spectral"
)

// squareElement builds a 2x2 square element far from the axis, so that
// physical (s,z) derivatives equal reference (xi,eta) derivatives: the
// [-1,1] -> [10,12] map has unit scale.
func squareElement() femmap.Corners {
	return femmap.Corners{{10, 10}, {12, 10}, {12, 12}, {10, 12}}
}

// TestMonopoleConstantFieldIsStrainFree checks that a spatially uniform
// displacement field produces zero strain everywhere.
func TestMonopoleConstantFieldIsStrainFree(tst *testing.T) {
	npol := 3
	xi := spectral.GLLPoints(npol)
	eta := spectral.GLLPoints(npol)
	G := spectral.LagrangeDerivsGLL(npol)
	GT := spectral.TransposeMatrix(G)

	n := len(xi)
	u := make([][][][3]float64, 1)
	u[0] = make([][][3]float64, n)
	for j := 0; j < n; j++ {
		u[0][j] = make([][3]float64, n)
		for i := 0; i < n; i++ {
			u[0][j][i] = [3]float64{1.5, 0, -0.7}
		}
	}

	corners := squareElement()
	eps := StrainMonopoleTD(u, G, GT, xi, eta, corners, femmap.Linear, false)

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			for c := 0; c < 6; c++ {
				if c == 1 {
					continue // hoop strain is u_s/s, nonzero away from the axis even for a uniform field
				}
				chk.Scalar(tst, "strain of uniform field", 1e-8, eps[0][j][i][c], 0)
			}
		}
	}
}

// TestDipoleQuadpoleSignFlip checks that the ε_zp / ε_sp components (voigt
// indices 3 and 5) are negated relative to the unflipped reconstruction of
// the same field at the same azimuthal order, per the non-monopole sign
// convention.
func TestDipoleQuadpoleSignFlip(tst *testing.T) {
	npol := 3
	xi := spectral.GLLPoints(npol)
	eta := spectral.GLLPoints(npol)
	G := spectral.LagrangeDerivsGLL(npol)
	GT := spectral.TransposeMatrix(G)
	corners := squareElement()

	n := len(xi)
	u := make([][][][3]float64, 1)
	u[0] = make([][][3]float64, n)
	for j := 0; j < n; j++ {
		u[0][j] = make([][3]float64, n)
		for i := 0; i < n; i++ {
			u[0][j][i] = [3]float64{float64(i) * 0.1, float64(j) * 0.2, float64(i+j) * 0.05}
		}
	}

	dipRef := reconstruct(u, G, GT, xi, eta, corners, femmap.Linear, Dipole, false)
	dip := StrainDipoleTD(u, G, GT, xi, eta, corners, femmap.Linear, false)
	quadRef := reconstruct(u, G, GT, xi, eta, corners, femmap.Linear, Quadpole, false)
	quad := StrainQuadpoleTD(u, G, GT, xi, eta, corners, femmap.Linear, false)

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			chk.Scalar(tst, "ezp flips sign", 1e-8, dip[0][j][i][3], -dipRef[0][j][i][3])
			chk.Scalar(tst, "esp flips sign", 1e-8, dip[0][j][i][5], -dipRef[0][j][i][5])
			chk.Scalar(tst, "ess unaffected", 1e-8, dip[0][j][i][0], dipRef[0][j][i][0])
			chk.Scalar(tst, "quadpole ezp flips sign", 1e-8, quad[0][j][i][3], -quadRef[0][j][i][3])
			chk.Scalar(tst, "quadpole esp flips sign", 1e-8, quad[0][j][i][5], -quadRef[0][j][i][5])
		}
	}
}
