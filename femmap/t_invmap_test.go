// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package femmap

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func squareCorners() Corners {
	return Corners{{0, 1}, {1, 1}, {1, 2}, {0, 2}}
}

func TestInsideElementLinearMidpoint(tst *testing.T) {
	c := squareCorners()
	s, z, _ := Linear.Forward(c, 0, 0)
	isIn, xi, eta := InsideElement(s, z, c, Linear, 1e-3)
	if !isIn {
		tst.Fatalf("midpoint must be inside its own element")
	}
	chk.Scalar(tst, "xi", 1e-8, xi, 0)
	chk.Scalar(tst, "eta", 1e-8, eta, 0)
}

// TestInsideElementEveryCorner exercises invariant 1 from the spec: the
// forward map applied at every corner must invert back to that corner
// within tolerance.
func TestInsideElementEveryCorner(tst *testing.T) {
	c := squareCorners()
	refs := [][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i, eltype := range []ElementType{Linear, Semino, Semiso, Subpar} {
		for _, ref := range refs {
			s, z, _ := eltype.Forward(c, ref[0], ref[1])
			isIn, xi, eta := InsideElement(s, z, c, eltype, 1e-3)
			if !isIn {
				tst.Fatalf("eltype %d: corner %v not detected inside", i, ref)
			}
			chk.Scalar(tst, "xi at corner", 1e-6, xi, ref[0])
			chk.Scalar(tst, "eta at corner", 1e-6, eta, ref[1])
		}
	}
}

// TestForwardInverseRoundTrip checks invariant 2: forward then inverse is the
// identity within 1e-9 for interior (xi, eta) in [-0.95, 0.95]^2.
func TestForwardInverseRoundTrip(tst *testing.T) {
	c := Corners{{0, 6371000}, {0.3, 6371000}, {0.28, 6.0e6}, {0, 6.0e6}}
	pts := [][2]float64{{0.0, 0.0}, {0.4, -0.3}, {-0.6, 0.5}, {0.95, -0.95}, {-0.95, 0.95}}
	for _, eltype := range []ElementType{Linear, Semino, Semiso, Subpar} {
		for _, p := range pts {
			s, z, _ := eltype.Forward(c, p[0], p[1])
			isIn, xi, eta := InsideElement(s, z, c, eltype, 1e-3)
			if !isIn {
				tst.Fatalf("round-trip point not found inside element")
			}
			if math.Abs(xi-p[0]) > 1e-9 || math.Abs(eta-p[1]) > 1e-9 {
				tst.Fatalf("round-trip mismatch: want (%v,%v) got (%v,%v)", p[0], p[1], xi, eta)
			}
		}
	}
}

func TestOutsideElementRejected(tst *testing.T) {
	c := squareCorners()
	isIn, _, _ := InsideElement(100, 100, c, Linear, 1e-3)
	if isIn {
		tst.Fatalf("far-away point must not be reported inside")
	}
}
