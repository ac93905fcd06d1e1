// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package femmap

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// constants governing the Newton inversion, mirroring the iteration budget
// and tolerance used by the isoparametric inverse mapping this is grounded on
const (
	minDet   = 1.0e-14
	maxIters = 10
	tolResid = 1.0e-10
)

// InsideElement performs Newton iteration on the analytic forward mapping of
// the given element family to find the reference coordinates (xi, eta) of
// the physical point (s, z), starting from the element centre. It reports
// is_in = true iff the converged point lies in [-1-tol, 1+tol]^2.
func InsideElement(s, z float64, corners Corners, eltype ElementType, tol float64) (isIn bool, xi, eta float64) {
	xi, eta = 0, 0
	var resid float64
	for it := 0; it < maxIters; it++ {
		ps, pz, dxdR := eltype.Forward(corners, xi, eta)
		e := [2]float64{s - ps, z - pz}

		jac := [][]float64{{dxdR[0][0], dxdR[0][1]}, {dxdR[1][0], dxdR[1][1]}}
		jinv := la.MatAlloc(2, 2)
		_, err := la.MatInv(jinv, jac, minDet)
		if err != nil {
			break
		}

		dxi := jinv[0][0]*e[0] + jinv[0][1]*e[1]
		deta := jinv[1][0]*e[0] + jinv[1][1]*e[1]
		xi += dxi
		eta += deta

		resid = math.Hypot(e[0], e[1])
		if resid < tolResid {
			break
		}
	}
	isIn = xi >= -1-tol && xi <= 1+tol && eta >= -1-tol && eta <= 1+tol
	return
}
