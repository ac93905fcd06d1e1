// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

import (
	"math"

	"github.com/martapien/instaseis/rotations"
)

// wgs84Flattening is the WGS84 ellipsoid flattening used to convert
// geographic (ellipsoidal) latitude into geocentric latitude; see §8
// scenario S5.
const wgs84Flattening = 1.0 / 298.257223563

// geocentricColatRad converts a geographic latitude in degrees to a
// geocentric colatitude in radians
func geocentricColatRad(geographicLatDeg float64) float64 {
	if geographicLatDeg == 90 || geographicLatDeg == -90 {
		return (90 - geographicLatDeg) * math.Pi / 180
	}
	oneMinusFSq := (1 - wgs84Flattening) * (1 - wgs84Flattening)
	latRad := geographicLatDeg * math.Pi / 180
	geocentricLat := math.Atan(oneMinusFSq * math.Tan(latRad))
	return math.Pi/2 - geocentricLat
}

// SeismogramSource is implemented by Source and ForceSource, the only two
// source kinds GetSeismograms accepts.
type SeismogramSource interface {
	isSeismogramSource()
}

// Source is a moment-tensor point source located by geographic latitude and
// longitude and a depth below the surface. The moment tensor components are
// given in the local spherical (r, theta, phi) basis at the source.
type Source struct {
	Latitude, Longitude float64 // degrees
	DepthInM            float64

	Mrr, Mtt, Mpp, Mrt, Mrp, Mtp float64 // N.m
}

func (s Source) isSeismogramSource() {}

// ColatitudeRad returns the geocentric colatitude in radians
func (s Source) ColatitudeRad() float64 { return geocentricColatRad(s.Latitude) }

// LongitudeRad returns the longitude in radians
func (s Source) LongitudeRad() float64 { return s.Longitude * math.Pi / 180 }

func (s Source) xyz(planetRadius float64) (x, y, z float64) {
	r := planetRadius - s.DepthInM
	colat := s.ColatitudeRad()
	lon := s.LongitudeRad()
	sinColat := math.Sin(colat)
	return r * sinColat * math.Cos(lon), r * sinColat * math.Sin(lon), r * math.Cos(colat)
}

// X, Y, Z return the geocentric Cartesian coordinates of the source at the
// given planet radius (metres)
func (s Source) X(planetRadius float64) float64 { x, _, _ := s.xyz(planetRadius); return x }
func (s Source) Y(planetRadius float64) float64 { _, y, _ := s.xyz(planetRadius); return y }
func (s Source) Z(planetRadius float64) float64 { _, _, z := s.xyz(planetRadius); return z }

// Tensor returns the moment tensor in the fixed order used by the
// forward-mode elemental-mesh summation: (Mrr, Mtt, Mpp, Mrt, Mrp, Mtp)
func (s Source) Tensor() [6]float64 {
	return [6]float64{s.Mrr, s.Mtt, s.Mpp, s.Mrt, s.Mrp, s.Mtp}
}

// TensorVoigt returns the moment tensor remapped into the reconstruction
// engine's fixed (ε_ss, ε_pp, ε_zz, ε_zp, ε_sz, ε_sp) ordering, under the
// source-local frame correspondence s<->theta, p<->phi, z<->r
func (s Source) TensorVoigt() rotations.Voigt {
	return rotations.Voigt{s.Mtt, s.Mpp, s.Mrr, s.Mrp, s.Mrt, s.Mtp}
}

// ForceSource is a point force located by geographic latitude and longitude
// and a depth below the surface, given in the local spherical (r, theta,
// phi) basis at the source. Only supported in reciprocal, displ_only mode.
type ForceSource struct {
	Latitude, Longitude float64 // degrees
	DepthInM            float64

	Fr, Ft, Fp float64 // N
}

func (s ForceSource) isSeismogramSource() {}

func (s ForceSource) ColatitudeRad() float64 { return geocentricColatRad(s.Latitude) }
func (s ForceSource) LongitudeRad() float64  { return s.Longitude * math.Pi / 180 }

func (s ForceSource) xyz(planetRadius float64) (x, y, z float64) {
	r := planetRadius - s.DepthInM
	colat := s.ColatitudeRad()
	lon := s.LongitudeRad()
	sinColat := math.Sin(colat)
	return r * sinColat * math.Cos(lon), r * sinColat * math.Sin(lon), r * math.Cos(colat)
}

func (s ForceSource) X(planetRadius float64) float64 { x, _, _ := s.xyz(planetRadius); return x }
func (s ForceSource) Y(planetRadius float64) float64 { _, y, _ := s.xyz(planetRadius); return y }
func (s ForceSource) Z(planetRadius float64) float64 { _, _, z := s.xyz(planetRadius); return z }

// ForceVectorSPZ returns the force in the (s, p, z) <-> (theta, phi, r)
// source-local basis consumed by the rotation chain
func (s ForceSource) ForceVectorSPZ() [3]float64 {
	return [3]float64{s.Ft, s.Fp, s.Fr}
}

// Receiver is a surface observation point located by geographic latitude
// and longitude
type Receiver struct {
	Latitude, Longitude float64 // degrees
}

func (r Receiver) ColatitudeRad() float64 { return geocentricColatRad(r.Latitude) }
func (r Receiver) LongitudeRad() float64  { return r.Longitude * math.Pi / 180 }

func (r Receiver) xyz(planetRadius float64) (x, y, z float64) {
	colat := r.ColatitudeRad()
	lon := r.LongitudeRad()
	sinColat := math.Sin(colat)
	return planetRadius * sinColat * math.Cos(lon), planetRadius * sinColat * math.Sin(lon), planetRadius * math.Cos(colat)
}

func (r Receiver) X(planetRadius float64) float64 { x, _, _ := r.xyz(planetRadius); return x }
func (r Receiver) Y(planetRadius float64) float64 { _, y, _ := r.xyz(planetRadius); return y }
func (r Receiver) Z(planetRadius float64) float64 { _, _, z := r.xyz(planetRadius); return z }
