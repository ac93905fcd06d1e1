// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package spectral implements nodal positions and Lagrange differentiation
// matrices on Gauss-Lobatto-Legendre and Gauss-Lobatto-Jacobi grids, plus
// tensor-product interpolation of time-series fields sampled on those grids
package spectral

import "math"

// jacobiP evaluates the Jacobi polynomial of degree n and parameters
// (alpha, beta) at x using the standard three-term recurrence
func jacobiP(n int, alpha, beta, x float64) float64 {
	if n == 0 {
		return 1.0
	}
	p0 := 1.0
	p1 := 0.5 * (alpha - beta + (alpha+beta+2)*x)
	if n == 1 {
		return p1
	}
	for k := 2; k <= n; k++ {
		kf := float64(k)
		a1 := 2 * kf * (kf + alpha + beta) * (2*kf + alpha + beta - 2)
		a2 := (2*kf + alpha + beta - 1) * (alpha*alpha - beta*beta)
		a3 := (2*kf + alpha + beta - 2) * (2*kf + alpha + beta - 1) * (2*kf + alpha + beta)
		a4 := 2 * (kf + alpha - 1) * (kf + beta - 1) * (2*kf + alpha + beta)
		p2 := ((a2+a3*x)*p1 - a4*p0) / a1
		p0, p1 = p1, p2
	}
	return p1
}

// jacobiPDeriv evaluates d/dx of the degree-n Jacobi polynomial (alpha, beta) at x
func jacobiPDeriv(n int, alpha, beta, x float64) float64 {
	if n == 0 {
		return 0.0
	}
	return 0.5 * (float64(n) + alpha + beta + 1) * jacobiP(n-1, alpha+1, beta+1, x)
}

// gaussLobattoJacobi returns the npol+1 Gauss-Lobatto-Jacobi(alpha, beta) abscissas on
// [-1, 1]: the endpoints plus the npol-1 roots of the degree-(npol-1) Jacobi
// polynomial with parameters (alpha+1, beta+1), found by Newton iteration from
// Chebyshev-Gauss-Lobatto starting guesses
func gaussLobattoJacobi(npol int, alpha, beta float64) []float64 {
	x := make([]float64, npol+1)
	x[0] = -1
	x[npol] = 1
	if npol < 2 {
		return x
	}
	const maxit = 100
	const tol = 1e-15
	for i := 1; i < npol; i++ {
		xi := -math.Cos(math.Pi * float64(i) / float64(npol))
		for it := 0; it < maxit; it++ {
			f := jacobiP(npol-1, alpha+1, beta+1, xi)
			df := jacobiPDeriv(npol-1, alpha+1, beta+1, xi)
			if df == 0 {
				break
			}
			dx := f / df
			xi -= dx
			if math.Abs(dx) < tol {
				break
			}
		}
		x[i] = xi
	}
	return x
}

// GLLPoints returns the npol+1 Gauss-Lobatto-Legendre nodes for polynomial
// order npol, sorted ascending on [-1, 1]
func GLLPoints(npol int) []float64 {
	return gaussLobattoJacobi(npol, 0, 0)
}

// GLJPoints returns the npol+1 Gauss-Lobatto-Jacobi(1,0) nodes used on the
// ξ-direction of elements touching the symmetry axis, where the 1/s term in
// the axisymmetric strain operator requires the Jacobi(1,0) weight
func GLJPoints(npol int) []float64 {
	return gaussLobattoJacobi(npol, 1, 0)
}

// barycentricWeights computes the barycentric interpolation weights of a
// nodal set, after Berrut & Trefethen (2004)
func barycentricWeights(x []float64) []float64 {
	n := len(x)
	w := make([]float64, n)
	for j := 0; j < n; j++ {
		w[j] = 1.0
		for k := 0; k < n; k++ {
			if k != j {
				w[j] /= x[j] - x[k]
			}
		}
	}
	return w
}

// lagrangeDerivMatrix builds the (n x n) differentiation matrix of the unique
// degree-(n-1) polynomial interpolating the nodes x, using the barycentric
// weights and the negative-sum-trick for the diagonal
func lagrangeDerivMatrix(x []float64) [][]float64 {
	n := len(x)
	w := barycentricWeights(x)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d[i][j] = (w[j] / w[i]) / (x[i] - x[j])
			d[i][i] -= d[i][j]
		}
	}
	return d
}

// LagrangeDerivsGLL returns the (npol+1)x(npol+1) differentiation matrix G2
// of the Lagrange basis on the GLL grid, G2[i][j] = l_j'(xi_i)
func LagrangeDerivsGLL(npol int) [][]float64 {
	return lagrangeDerivMatrix(GLLPoints(npol))
}

// LagrangeDerivsGLJ returns the pair (G0, G1) used for the ξ-direction on
// axis-touching elements. G1 is the ordinary Lagrange differentiation matrix
// on the GLJ grid. G0 differentiates the axis-weighted basis (1+ξ)ℓ_j(ξ),
// which is the operator the 1/s-singular monopole term near the pole needs;
// it is exposed for completeness but, matching the observed reference
// behaviour, the strain reconstruction routines in this module only ever
// dereference G1 (via its transpose).
func LagrangeDerivsGLJ(npol int) (G0, G1 [][]float64) {
	xi := GLJPoints(npol)
	G1 = lagrangeDerivMatrix(xi)
	n := len(xi)
	G0 = make([][]float64, n)
	for i := range G0 {
		G0[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			G0[i][j] = (1 + xi[i]) * G1[i][j]
			if i == j {
				G0[i][j] += 1
			}
		}
	}
	return
}

// TransposeMatrix returns the transpose of a dense matrix
func TransposeMatrix(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return nil
	}
	nr, nc := len(a), len(a[0])
	t := make([][]float64, nc)
	for j := 0; j < nc; j++ {
		t[j] = make([]float64, nr)
		for i := 0; i < nr; i++ {
			t[j][i] = a[i][j]
		}
	}
	return t
}

// lagrangeBasis1D evaluates, at parametric coordinate t, the value of every
// Lagrange cardinal function supported on the nodes x, using the barycentric
// formula; this remains numerically stable for |t| up to about 1+1e-3, as
// required when the Newton-resolved (ξ, η) of an accepted element sits just
// outside [-1, 1] within tolerance
func lagrangeBasis1D(x []float64, t float64) []float64 {
	n := len(x)
	w := barycentricWeights(x)
	l := make([]float64, n)
	for i, xi := range x {
		if t == xi {
			l[i] = 1
			return l
		}
	}
	var sum float64
	for i := 0; i < n; i++ {
		l[i] = w[i] / (t - x[i])
		sum += l[i]
	}
	for i := range l {
		l[i] /= sum
	}
	return l
}

// LagrangeInterp2D performs tensor-product Lagrange interpolation of a
// time-series field field[t][jeta][ixi] (sampled on the node sets xiNodes x
// etaNodes) at the single point (xi, eta), returning the interpolated value
// at every time sample
func LagrangeInterp2D(xiNodes, etaNodes []float64, field [][][]float64, xi, eta float64) []float64 {
	lxi := lagrangeBasis1D(xiNodes, xi)
	leta := lagrangeBasis1D(etaNodes, eta)
	nt := len(field)
	out := make([]float64, nt)
	for t := 0; t < nt; t++ {
		var acc float64
		for j, lj := range leta {
			if lj == 0 {
				continue
			}
			row := field[t][j]
			var racc float64
			for i, li := range lxi {
				racc += li * row[i]
			}
			acc += lj * racc
		}
		out[t] = acc
	}
	return out
}
