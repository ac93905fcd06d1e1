// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package femmap implements the forward and inverse reference-to-physical
// mapping of the four axisymmetric element families, and the point-in-element
// test built on top of it
package femmap

import "math"

// ElementType identifies the reference-element family of an axisymmetric
// quadrilateral, distinguished by which radial edges are analytically curved
type ElementType int

// element type families, matching the mesh-file "eltype" codes
const (
	Linear ElementType = iota // all four edges straight
	Semino                    // the η=+1 ("north"/outer) edge is a circular arc
	Semiso                    // the η=-1 ("south"/inner) edge is a circular arc
	Subpar                    // both the η=+1 and η=-1 edges are circular arcs
)

// ParseElementType maps the mesh file's string tag to an ElementType
func ParseElementType(tag string) (ElementType, bool) {
	switch tag {
	case "linear":
		return Linear, true
	case "semino":
		return Semino, true
	case "semiso":
		return Semiso, true
	case "subpar":
		return Subpar, true
	default:
		return Linear, false
	}
}

// Corners holds the four corner physical coordinates of an element, ordered
// counter-clockwise starting at (ξ,η)=(-1,-1): corner 0 at (-1,-1), corner 1
// at (+1,-1), corner 2 at (+1,+1), corner 3 at (-1,+1)
type Corners [4][2]float64

// edgeLinear returns the straight-line point at parametric coordinate
// t ∈ [-1,1] between two corners
func edgeLinear(a, b [2]float64, t float64) (s, z, ds, dz float64) {
	f := (t + 1) / 2
	s = a[0] + f*(b[0]-a[0])
	z = a[1] + f*(b[1]-a[1])
	ds = (b[0] - a[0]) / 2
	dz = (b[1] - a[1]) / 2
	return
}

// edgeArc returns the point, and its derivative w.r.t. t, on the circular arc
// through corners a and b, parameterised by the angle from the z-axis
// (colatitude-like angle atan2(s,z)) and by a radius blended linearly between
// the two corners' distances to the origin. This reduces to the exact
// circular arc when both corners share a radius, which is how AxiSEM's
// curved mesh edges following a spherical discontinuity are built.
func edgeArc(a, b [2]float64, t float64) (s, z, ds, dz float64) {
	ra := math.Hypot(a[0], a[1])
	rb := math.Hypot(b[0], b[1])
	ta := math.Atan2(a[0], a[1])
	tb := math.Atan2(b[0], b[1])
	f := (t + 1) / 2
	df := 0.5
	r := ra + f*(rb-ra)
	dr := df * (rb - ra)
	th := ta + f*(tb-ta)
	dth := df * (tb - ta)
	sinT, cosT := math.Sin(th), math.Cos(th)
	s = r * sinT
	z = r * cosT
	ds = dr*sinT + r*cosT*dth
	dz = dr*cosT - r*sinT*dth
	return
}

// bottomEdge returns the η=-1 edge function (straight, except for Semiso/Subpar)
func (o ElementType) bottomEdge(c Corners, xi float64) (s, z, ds, dz float64) {
	if o == Semiso || o == Subpar {
		return edgeArc(c[0], c[1], xi)
	}
	return edgeLinear(c[0], c[1], xi)
}

// topEdge returns the η=+1 edge function (straight, except for Semino/Subpar)
func (o ElementType) topEdge(c Corners, xi float64) (s, z, ds, dz float64) {
	if o == Semino || o == Subpar {
		return edgeArc(c[3], c[2], xi)
	}
	return edgeLinear(c[3], c[2], xi)
}

// Forward computes the physical coordinates (s, z) and the Jacobian matrix
// dxdR = [[ds/dξ, ds/dη], [dz/dξ, dz/dη]] at reference coordinates (xi, eta),
// using a Coons-patch (transfinite) blend of the four edges. The ξ=±1
// (left/right) edges are always straight; only the η=±1 (bottom/top) edges
// can be arcs, which sweep the angle between their corners along a circle
// about the origin when both corners share a radius.
func (o ElementType) Forward(c Corners, xi, eta float64) (s, z float64, dxdR [2][2]float64) {
	bs, bz, bds, bdz := o.bottomEdge(c, xi)
	ts, tz, tds, tdz := o.topEdge(c, xi)
	ls, lz, lds, ldz := edgeLinear(c[0], c[3], eta)
	rs, rz, rds, rdz := edgeLinear(c[1], c[2], eta)

	fb, ft := (1-eta)/2, (1+eta)/2
	fl, fr := (1-xi)/2, (1+xi)/2

	// bilinear corner correction (Coons patch)
	bilinS := fl*fb*c[0][0] + fr*fb*c[1][0] + fr*ft*c[2][0] + fl*ft*c[3][0]
	bilinZ := fl*fb*c[0][1] + fr*fb*c[1][1] + fr*ft*c[2][1] + fl*ft*c[3][1]

	s = fb*bs + ft*ts + fl*ls + fr*rs - bilinS
	z = fb*bz + ft*tz + fl*lz + fr*rz - bilinZ

	// d/dξ
	dsdxi := fb*bds + ft*tds + (-0.5)*ls + 0.5*rs -
		(-0.5*fb*c[0][0] + 0.5*fb*c[1][0] + 0.5*ft*c[2][0] + (-0.5)*ft*c[3][0])
	dzdxi := fb*bdz + ft*tdz + (-0.5)*lz + 0.5*rz -
		(-0.5*fb*c[0][1] + 0.5*fb*c[1][1] + 0.5*ft*c[2][1] + (-0.5)*ft*c[3][1])

	// d/dη
	dsdeta := (-0.5)*bs + 0.5*ts + fl*lds + fr*rds -
		(fl*(-0.5)*c[0][0] + fr*(-0.5)*c[1][0] + fr*0.5*c[2][0] + fl*0.5*c[3][0])
	dzdeta := (-0.5)*bz + 0.5*tz + fl*ldz + fr*rdz -
		(fl*(-0.5)*c[0][1] + fr*(-0.5)*c[1][1] + fr*0.5*c[2][1] + fl*0.5*c[3][1])

	dxdR = [2][2]float64{{dsdxi, dsdeta}, {dzdxi, dzdeta}}
	return
}
