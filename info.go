// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

// Info is an immutable descriptor of an open database, mirroring the
// scalar attributes a caller needs to plan a GetSeismograms call without
// touching any mesh file itself.
type Info struct {
	IsReciprocal    bool
	Components      string
	SourceDepthInM  float64 // metres; only set in forward mode, zero in reciprocal mode
	BackgroundModel string
	Attenuation     bool
	DominantPeriod  float64
	Dt              float64
	SamplingRate    float64
	NumTimeSamples  int
	NFFT            int
	LengthInSec     float64
	STF             []float64
	STFDeriv        []float64
	SpatialOrder    int
	PlanetRadius    float64
	MinRadius       float64
	MaxRadius       float64
	MinColatitude   float64
	MaxColatitude   float64
	FileVersion     int
	FileByteSize    int64
	Directory       string
}

// nextPow2 returns the smallest power of two >= n
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Info reports the database's static descriptive metadata, per §4.7.
func (o *DatabaseSession) Info() Info {
	m := o.canonical.Meta

	var components string
	switch {
	case o.Bwd != nil:
		switch {
		case o.Bwd.PX != nil && o.Bwd.PZ != nil:
			components = "vertical and horizontal"
		case o.Bwd.PX != nil:
			components = "horizontal only"
		case o.Bwd.PZ != nil:
			components = "vertical only"
		}
	case o.Fwd != nil:
		components = "4 elemental moment tensors"
	}

	sourceDepth := 0.0
	if !o.IsReciprocal() {
		sourceDepth = m.SourceDepth * 1.0e3
	}

	return Info{
		IsReciprocal:    o.IsReciprocal(),
		Components:      components,
		SourceDepthInM:  sourceDepth,
		BackgroundModel: m.BackgroundModel,
		Attenuation:     m.Attenuation,
		DominantPeriod:  m.DominantPeriod,
		Dt:              m.Dt,
		SamplingRate:    1.0 / m.Dt,
		NumTimeSamples:  m.NumTimeSamples,
		NFFT:            nextPow2(m.NumTimeSamples) * 2,
		LengthInSec:     m.Dt * float64(m.NumTimeSamples-1),
		STF:             m.STF,
		STFDeriv:        m.STFDeriv,
		SpatialOrder:    m.SpatialOrder,
		PlanetRadius:    m.PlanetRadius,
		MinRadius:       m.KernelRmin * 1.0e3,
		MaxRadius:       m.KernelRmax * 1.0e3,
		MinColatitude:   m.KernelColatMin,
		MaxColatitude:   m.KernelColatMax,
		FileVersion:     m.FileVersion,
		FileByteSize:    o.fileSize,
		Directory:       o.dbPath,
	}
}
