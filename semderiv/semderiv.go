// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package semderiv reconstructs the symmetric strain tensor at every
// collocation point of a spectral element from its nodal displacement field,
// by tensor-contracting with the element's Lagrange derivative matrices and
// combining the result with the azimuthal factors dictated by the
// excitation's Fourier order. One routine variant exists per excitation
// symmetry (monopole, dipole, quadpole); all three share the same core.
package semderiv

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/martapien/instaseis/femmap"
)

// Symmetry identifies the azimuthal Fourier order of the stored wavefield
type Symmetry int

const (
	Monopole Symmetry = iota // m=0
	Dipole                   // m=1
	Quadpole                 // m=2
)

func (o Symmetry) order() int { return int(o) }

// axisEps guards the s=0 coordinate singularity: terms of the form u/s are
// replaced by their L'Hopital limit du/ds whenever s falls below this radius
const axisEps = 1.0e-6

// StrainMonopoleTD reconstructs the strain tensor time series for a
// monopole-symmetry element
func StrainMonopoleTD(u [][][][3]float64, G, GT [][]float64, xiNodes, etaNodes []float64, corners femmap.Corners, eltype femmap.ElementType, axis bool) [][][][6]float64 {
	return reconstruct(u, G, GT, xiNodes, etaNodes, corners, eltype, Monopole, axis)
}

// StrainDipoleTD reconstructs the strain tensor time series for a
// dipole-symmetry element, applying the component-4/6 sign flip required for
// non-monopole excitations
func StrainDipoleTD(u [][][][3]float64, G, GT [][]float64, xiNodes, etaNodes []float64, corners femmap.Corners, eltype femmap.ElementType, axis bool) [][][][6]float64 {
	return flipNonMonopoleSigns(reconstruct(u, G, GT, xiNodes, etaNodes, corners, eltype, Dipole, axis))
}

// StrainQuadpoleTD reconstructs the strain tensor time series for a
// quadpole-symmetry element, applying the component-4/6 sign flip required
// for non-monopole excitations
func StrainQuadpoleTD(u [][][][3]float64, G, GT [][]float64, xiNodes, etaNodes []float64, corners femmap.Corners, eltype femmap.ElementType, axis bool) [][][][6]float64 {
	return flipNonMonopoleSigns(reconstruct(u, G, GT, xiNodes, etaNodes, corners, eltype, Quadpole, axis))
}

// flipNonMonopoleSigns negates voigt components 4 (ε_zp) and 6 (ε_sp) in
// place, per §3's sign convention for non-monopole excitations
func flipNonMonopoleSigns(eps [][][][6]float64) [][][][6]float64 {
	for t := range eps {
		for j := range eps[t] {
			for i := range eps[t][j] {
				eps[t][j][i][3] = -eps[t][j][i][3]
				eps[t][j][i][5] = -eps[t][j][i][5]
			}
		}
	}
	return eps
}

// nodeJacobianInverse returns the inverse Jacobian [[dxi/ds, dxi/dz], [deta/ds, deta/dz]]
// and the physical s coordinate at reference node (xi, eta)
func nodeJacobianInverse(corners femmap.Corners, eltype femmap.ElementType, xi, eta float64) (jinv [][]float64, s float64) {
	sPhys, _, dxdR := eltype.Forward(corners, xi, eta)
	jac := [][]float64{{dxdR[0][0], dxdR[0][1]}, {dxdR[1][0], dxdR[1][1]}}
	jinv = la.MatAlloc(2, 2)
	la.MatInv(jinv, jac, 1.0e-14)
	return jinv, sPhys
}

// derivRef contracts a scalar nodal field (indexed [eta][xi]) against the
// element's Lagrange derivative matrices to produce its reference-space
// partial derivatives, also indexed [eta][xi]. G is the η-direction (GLL)
// differentiation matrix, G[j][k] = l_k'(η_j); GT is the transpose of the
// ξ-direction matrix (GLL off the axis, GLJ on it), GT[k][i] = l_k'(ξ_i)
func derivRef(field [][]float64, G, GT [][]float64) (dxi, deta [][]float64) {
	n := len(field)
	dxi = make([][]float64, n)
	deta = make([][]float64, n)
	for j := 0; j < n; j++ {
		dxi[j] = make([]float64, n)
		deta[j] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += GT[k][i] * field[j][k]
			}
			dxi[j][i] = sum
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += G[j][k] * field[k][i]
			}
			deta[j][i] = sum
		}
	}
	return
}

func reconstruct(u [][][][3]float64, G, GT [][]float64, xiNodes, etaNodes []float64, corners femmap.Corners, eltype femmap.ElementType, sym Symmetry, axis bool) [][][][6]float64 {
	nt := len(u)
	npol := len(xiNodes)
	m := float64(sym.order())

	// precompute the inverse Jacobian and physical s at every node, shared
	// across all time samples
	jinv := make([][][][]float64, npol)
	sPhys := make([][]float64, npol)
	for j := 0; j < npol; j++ {
		jinv[j] = make([][][]float64, npol)
		sPhys[j] = make([]float64, npol)
		for i := 0; i < npol; i++ {
			ji, s := nodeJacobianInverse(corners, eltype, xiNodes[i], etaNodes[j])
			jinv[j][i] = ji
			sPhys[j][i] = s
		}
	}

	eps := make([][][][6]float64, nt)
	for t := 0; t < nt; t++ {
		eps[t] = make([][][6]float64, npol)
		for j := range eps[t] {
			eps[t][j] = make([][6]float64, npol)
		}

		us := make([][]float64, npol)
		up := make([][]float64, npol)
		uz := make([][]float64, npol)
		for j := 0; j < npol; j++ {
			us[j] = make([]float64, npol)
			up[j] = make([]float64, npol)
			uz[j] = make([]float64, npol)
			for i := 0; i < npol; i++ {
				us[j][i] = u[t][j][i][0]
				up[j][i] = u[t][j][i][1]
				uz[j][i] = u[t][j][i][2]
			}
		}

		dusXi, dusEta := derivRef(us, G, GT)
		dupXi, dupEta := derivRef(up, G, GT)
		duzXi, duzEta := derivRef(uz, G, GT)

		for j := 0; j < npol; j++ {
			for i := 0; i < npol; i++ {
				ji := jinv[j][i]
				s := sPhys[j][i]

				duSds := dusXi[j][i]*ji[0][0] + dusEta[j][i]*ji[1][0]
				duSdz := dusXi[j][i]*ji[0][1] + dusEta[j][i]*ji[1][1]
				duPds := dupXi[j][i]*ji[0][0] + dupEta[j][i]*ji[1][0]
				duPdz := dupXi[j][i]*ji[0][1] + dupEta[j][i]*ji[1][1]
				duZds := duzXi[j][i]*ji[0][0] + duzEta[j][i]*ji[1][0]
				duZdz := duzXi[j][i]*ji[0][1] + duzEta[j][i]*ji[1][1]

				var epp, esp, ezp float64
				onAxis := (axis && i == 0) || math.Abs(s) < axisEps
				if onAxis {
					// on the symmetry axis, u/s is evaluated as its
					// L'Hopital limit du/ds rather than by direct division.
					// xiNodes[0] is the exact axis node on a GLJ grid, so an
					// axis-touching element forces the limit there instead of
					// relying on s falling below axisEps by floating-point luck.
					epp = duSds + m*duPds
					esp = 0.5 * m * duSds
					ezp = 0.5 * (duPdz - m*duZds)
				} else {
					epp = (us[j][i] + m*up[j][i]) / s
					esp = 0.5 * (duPds - up[j][i]/s + m*us[j][i]/s)
					ezp = 0.5 * (duPdz - m*uz[j][i]/s)
				}

				eps[t][j][i] = [6]float64{
					duSds,
					epp,
					duZdz,
					ezp,
					0.5 * (duSdz + duZds),
					esp,
				}
			}
		}
	}
	return eps
}
