// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spectral

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestGLLPoints(tst *testing.T) {
	x := GLLPoints(4)
	if len(x) != 5 {
		tst.Fatalf("expected 5 points, got %d", len(x))
	}
	chk.Scalar(tst, "x[0]", 1e-14, x[0], -1)
	chk.Scalar(tst, "x[4]", 1e-14, x[4], 1)
	chk.Scalar(tst, "x[2]", 1e-14, x[2], 0) // midpoint symmetric about origin
	for i := 0; i < len(x)-1; i++ {
		if x[i] >= x[i+1] {
			tst.Fatalf("GLL points must be strictly increasing: %v", x)
		}
	}
}

func TestGLJPoints(tst *testing.T) {
	x := GLJPoints(4)
	chk.Scalar(tst, "x[0]", 1e-14, x[0], -1)
	chk.Scalar(tst, "x[4]", 1e-14, x[4], 1)
	for i := 0; i < len(x)-1; i++ {
		if x[i] >= x[i+1] {
			tst.Fatalf("GLJ points must be strictly increasing: %v", x)
		}
	}
}

// TestDerivMatrixExactOnLinear checks that the GLL differentiation matrix
// reproduces the exact derivative of a linear polynomial (applying it to
// f(x)=x yields the all-ones vector)
func TestDerivMatrixExactOnLinear(tst *testing.T) {
	x := GLLPoints(6)
	G := LagrangeDerivsGLL(6)
	for i := range x {
		var d float64
		for j := range x {
			d += G[i][j] * x[j]
		}
		chk.Scalar(tst, "d(x)/dx at node", 1e-12, d, 1.0)
	}
}

func TestDerivMatrixExactOnQuadratic(tst *testing.T) {
	x := GLLPoints(6)
	G := LagrangeDerivsGLL(6)
	for i := range x {
		var d float64
		for j := range x {
			d += G[i][j] * x[j] * x[j]
		}
		chk.Scalar(tst, "d(x^2)/dx at node", 1e-10, d, 2*x[i])
	}
}

func TestLagrangeInterp2DRecoversNodalValues(tst *testing.T) {
	xiNodes := GLLPoints(4)
	etaNodes := GLLPoints(4)
	n := len(xiNodes)
	field := make([][][]float64, 1)
	field[0] = make([][]float64, n)
	for j := 0; j < n; j++ {
		field[0][j] = make([]float64, n)
		for i := 0; i < n; i++ {
			field[0][j][i] = math.Sin(xiNodes[i]) + math.Cos(etaNodes[j])
		}
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			got := LagrangeInterp2D(xiNodes, etaNodes, field, xiNodes[i], etaNodes[j])
			chk.Scalar(tst, "interp at node", 1e-10, got[0], field[0][j][i])
		}
	}
}

func TestLagrangeInterp2DStableSlightlyOutsideDomain(tst *testing.T) {
	xiNodes := GLLPoints(4)
	etaNodes := GLLPoints(4)
	field := [][][]float64{{
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
		{1, 1, 1, 1, 1},
	}}
	got := LagrangeInterp2D(xiNodes, etaNodes, field, 1+1e-3, -1-1e-3)
	chk.Scalar(tst, "constant field extrapolated just outside [-1,1]", 1e-8, got[0], 1.0)
}
