// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/martapien/instaseis/femmap"
	"github.com/martapien/instaseis/meshdb"
)

func TestContainsAndContainsAny(tst *testing.T) {
	list := []string{"Z", "R", "T"}
	if !contains(list, "R") {
		tst.Fatalf("expected R to be present")
	}
	if contains(list, "N") {
		tst.Fatalf("did not expect N to be present")
	}
	if !containsAny(list, "N", "E", "Z") {
		tst.Fatalf("expected containsAny to find Z")
	}
	if containsAny(list, "N", "E") {
		tst.Fatalf("did not expect containsAny to find N or E")
	}
}

func TestNextPow2(tst *testing.T) {
	chk.Scalar(tst, "nextPow2(1)", 1.0e-15, float64(nextPow2(1)), 1)
	chk.Scalar(tst, "nextPow2(5)", 1.0e-15, float64(nextPow2(5)), 8)
	chk.Scalar(tst, "nextPow2(8)", 1.0e-15, float64(nextPow2(8)), 8)
	chk.Scalar(tst, "nextPow2(1025)", 1.0e-15, float64(nextPow2(1025)), 2048)
}

func TestElementTagToType(tst *testing.T) {
	cases := []struct {
		tag  meshdb.ElementTag
		want femmap.ElementType
	}{
		{meshdb.ElLinear, femmap.Linear},
		{meshdb.ElSemino, femmap.Semino},
		{meshdb.ElSemiso, femmap.Semiso},
		{meshdb.ElSubpar, femmap.Subpar},
	}
	for _, c := range cases {
		if got := elementTagToType(c.tag); got != c.want {
			tst.Fatalf("elementTagToType(%v) = %v, want %v", c.tag, got, c.want)
		}
	}
}

func TestBasisForSwitchesXiGridOnAxis(tst *testing.T) {
	mesh := &meshdb.MeshHandle{
		GLLPoints: []float64{-1, 0, 1},
		GLJPoints: []float64{-1, 0.5, 1},
	}

	offAxis := basisFor(mesh, false)
	if offAxis.xiNodes[1] != mesh.GLLPoints[1] {
		tst.Fatalf("off-axis elements must use the GLL grid in xi")
	}

	onAxis := basisFor(mesh, true)
	if onAxis.xiNodes[1] != mesh.GLJPoints[1] {
		tst.Fatalf("axis elements must use the GLJ grid in xi")
	}
	if onAxis.etaNodes[1] != mesh.GLLPoints[1] {
		tst.Fatalf("eta grid stays GLL regardless of axis")
	}
}
