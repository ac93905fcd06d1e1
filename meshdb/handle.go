// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package meshdb opens a single netCDF-4/HDF5 wavefield database file and
// exposes its metadata, nodal arrays (eager or lazy, per the caller's
// budget), a kd-tree over element midpoints, and the two per-mesh LRU
// buffers used to avoid redundant strain/displacement reconstruction.
package meshdb

import (
	"github.com/cpmech/gosl/chk"
	hdf5 "github.com/sbinet/go-hdf5"

	"github.com/martapien/instaseis/kdtree"
	"github.com/martapien/instaseis/lrubuffer"
	"github.com/martapien/instaseis/spectral"
)

// DumpKind is the wavefield quantity stored by a database file
type DumpKind int

const (
	DisplOnly DumpKind = iota
	StrainOnly
	FullFields
)

// Symmetry mirrors semderiv.Symmetry without importing the reconstruction
// package, keeping the on-disc vocabulary of this package self-contained
type Symmetry int

const (
	Monopole Symmetry = iota
	Dipole
	Quadpole
)

// minSupportedVersion is the file format floor required by §4.6
const minSupportedVersion = 4

// Metadata holds the scalar database attributes read once at open time
type Metadata struct {
	SpatialOrder      int
	NumTimeSamples    int
	Dt                float64
	NumNodes          int
	NumElements       int
	Dump              DumpKind
	Excitation        Symmetry
	Reciprocal        bool
	PlanetRadius      float64 // metres
	SourceDepth       float64 // km, as stored
	Attenuation       bool
	Amplitude         float64
	FileVersion       int
	DominantPeriod    float64
	BackgroundModel   string
	KernelRmin        float64 // km, as stored
	KernelRmax        float64 // km, as stored
	KernelColatMin    float64
	KernelColatMax    float64
	STF               []float64
	STFDeriv          []float64
	FileByteSize      int64
}

// StrainEntry is a buffer value holding the strain tensor time series for
// one element: shape [T][6]
type StrainEntry [][6]float64

func (e StrainEntry) SizeBytes() int64 { return int64(len(e)) * 6 * 8 }

// DisplEntry is a buffer value holding the nodal displacement time series
// for one element: shape [T][N+1][N+1][3]
type DisplEntry [][][][3]float64

func (e DisplEntry) SizeBytes() int64 {
	if len(e) == 0 {
		return 0
	}
	npol := int64(len(e[0]))
	return int64(len(e)) * npol * npol * 3 * 8
}

// StrainGridEntry is a buffer value holding the full SEM-reconstructed
// strain tensor grid for one element, as produced from displ_only nodal
// displacement: shape [T][N+1][N+1][6]
type StrainGridEntry [][][][6]float64

func (e StrainGridEntry) SizeBytes() int64 {
	if len(e) == 0 {
		return 0
	}
	npol := int64(len(e[0]))
	return int64(len(e)) * npol * npol * 6 * 8
}

// MeshHandle owns one open database file: its metadata, nodal accessor, the
// precomputed spectral operators, the element kd-tree, and the two LRU
// buffers shared across queries against this mesh
type MeshHandle struct {
	Meta Metadata

	file       *hdf5.File
	snapshots  *hdf5.Group
	access     NodalAccessor
	tree       *kdtree.Tree

	GLLPoints, GLJPoints       []float64
	G0, G1, G2, G1T, G2T       [][]float64

	StrainBuf *lrubuffer.Buffer
	DisplBuf  *lrubuffer.Buffer

	readOnDemand bool
}

// Open opens path read-only, validates its dump type and file version, and
// opens the Snapshots group with its sample count. When fullParse is
// requested it also reads the remaining metadata and the midpoint arrays,
// builds the kd-tree, and precomputes the spectral operators. strainBudgetMB
// and displBudgetMB size the two LRU buffers independently; only a fully
// parsed handle gets buffers.
func Open(path string, fullParse, readOnDemand bool, strainBudgetMB, displBudgetMB int) (*MeshHandle, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, chk.Err("meshdb: cannot open %q: %v\n", path, err)
	}

	version, err := readIntAttr(f, "file version")
	if err != nil {
		f.Close()
		return nil, chk.Err("meshdb: missing file version attribute in %q\n", path)
	}
	if version < minSupportedVersion {
		f.Close()
		return nil, chk.Err("meshdb: %q has file version %d, need >= %d\n", path, version, minSupportedVersion)
	}

	dumpTag, err := readStringAttr(f, "dump type")
	if err != nil {
		f.Close()
		return nil, chk.Err("meshdb: missing dump type attribute in %q\n", path)
	}
	dump, ok := parseDumpKind(dumpTag)
	if !ok {
		f.Close()
		return nil, chk.Err("meshdb: unrecognised dump type %q in %q\n", dumpTag, path)
	}

	npol, _ := readIntAttr(f, "npol")
	excTag, _ := readStringAttr(f, "excitation type")
	exc := parseSymmetry(excTag)

	h := &MeshHandle{
		file:         f,
		readOnDemand: readOnDemand,
		Meta: Metadata{
			SpatialOrder: npol,
			Dump:         dump,
			Excitation:   exc,
			FileVersion:  version,
		},
	}

	if !fullParse {
		h.Meta.NumTimeSamples, _ = readIntAttr(f, "number of strain dumps")
		snapshots, err := f.OpenGroup("Snapshots")
		if err != nil {
			f.Close()
			return nil, chk.Err("meshdb: missing Snapshots group in %q: %v\n", path, err)
		}
		h.snapshots = snapshots
		return h, nil
	}

	if err := h.fullParse(); err != nil {
		f.Close()
		return nil, err
	}
	if strainBudgetMB > 0 {
		h.StrainBuf = lrubuffer.NewBuffer(strainBudgetMB)
	}
	if displBudgetMB > 0 {
		h.DisplBuf = lrubuffer.NewBuffer(displBudgetMB)
	}
	return h, nil
}

func (o *MeshHandle) fullParse() error {
	f := o.file
	o.Meta.NumTimeSamples, _ = readIntAttr(f, "number of strain dumps")
	o.Meta.Dt, _ = readFloatAttr(f, "strain dump sampling rate in sec")
	o.Meta.NumNodes, _ = readIntAttr(f, "npoints")
	planetRadiusKm, _ := readFloatAttr(f, "planet radius")
	o.Meta.PlanetRadius = planetRadiusKm * 1.0e3
	o.Meta.SourceDepth, _ = readFloatAttr(f, "source depth in km")
	o.Meta.DominantPeriod, _ = readFloatAttr(f, "dominant source period")
	o.Meta.BackgroundModel, _ = readStringAttr(f, "background model")
	if attenTag, err := readIntAttr(f, "attenuation"); err == nil {
		o.Meta.Attenuation = attenTag != 0
	}
	o.Meta.KernelRmin, _ = readFloatAttr(f, "kernel wavefield rmin")
	o.Meta.KernelRmax, _ = readFloatAttr(f, "kernel wavefield rmax")
	o.Meta.KernelColatMin, _ = readFloatAttr(f, "kernel wavefield colatmin")
	o.Meta.KernelColatMax, _ = readFloatAttr(f, "kernel wavefield colatmax")
	amp, err := readFloatAttr(f, "scalar source magnitude")
	if err != nil || amp == 0 {
		amp = 1
	}
	o.Meta.Amplitude = amp

	surface, err := f.OpenGroup("Surface")
	if err != nil {
		return chk.Err("meshdb: missing Surface group: %v\n", err)
	}
	defer surface.Close()
	stfDS, err := surface.OpenDataset("stf_dump")
	if err != nil {
		return chk.Err("meshdb: missing stf_dump: %v\n", err)
	}
	o.Meta.STF = readFloatVector(stfDS, o.Meta.NumTimeSamples)
	stfDDS, err := surface.OpenDataset("stf_d_dump")
	if err != nil {
		return chk.Err("meshdb: missing stf_d_dump: %v\n", err)
	}
	o.Meta.STFDeriv = readFloatVector(stfDDS, o.Meta.NumTimeSamples)

	snapshots, err := f.OpenGroup("Snapshots")
	if err != nil {
		return chk.Err("meshdb: missing Snapshots group: %v\n", err)
	}
	o.snapshots = snapshots

	mesh, err := f.OpenGroup("Mesh")
	if err != nil {
		return chk.Err("meshdb: missing Mesh group: %v\n", err)
	}
	defer mesh.Close()

	mpSDS, err := mesh.OpenDataset("mp_mesh_S")
	if err != nil {
		return chk.Err("meshdb: missing mp_mesh_S: %v\n", err)
	}
	mpZDS, err := mesh.OpenDataset("mp_mesh_Z")
	if err != nil {
		return chk.Err("meshdb: missing mp_mesh_Z: %v\n", err)
	}
	numElems, err := readIntAttr(f, "number of elements")
	if err != nil || numElems == 0 {
		// some files carry element count only implicitly via the mp_mesh
		// dataset shape; fall back to its extent
		space := mpSDS.Space()
		dims, _, _ := space.SimpleExtentDims()
		space.Close()
		if len(dims) > 0 {
			numElems = int(dims[0])
		}
	}
	o.Meta.NumElements = numElems
	mpS := readFloatVector(mpSDS, numElems)
	mpZ := readFloatVector(mpZDS, numElems)

	pts := make([]kdtree.Point, numElems)
	ids := make([]int, numElems)
	for i := 0; i < numElems; i++ {
		pts[i] = kdtree.Point{S: mpS[i], Z: mpZ[i]}
		ids[i] = i
	}
	o.tree = kdtree.Build(pts, ids)

	o.GLLPoints = spectral.GLLPoints(o.Meta.SpatialOrder)
	o.GLJPoints = spectral.GLJPoints(o.Meta.SpatialOrder)
	o.G2 = spectral.LagrangeDerivsGLL(o.Meta.SpatialOrder)
	o.G2T = spectral.TransposeMatrix(o.G2)
	o.G0, o.G1 = spectral.LagrangeDerivsGLJ(o.Meta.SpatialOrder)
	o.G1T = spectral.TransposeMatrix(o.G1)

	if !o.readOnDemand {
		acc, err := o.buildInMemoryAccessor(mesh, numElems, mpS, mpZ)
		if err != nil {
			return err
		}
		o.access = acc
	} else {
		acc, err := newLazyAccessor(mesh, mpS, mpZ, o.Meta.SpatialOrder+1)
		if err != nil {
			return err
		}
		o.access = acc
	}
	return nil
}

func (o *MeshHandle) buildInMemoryAccessor(mesh *hdf5.Group, numElems int, mpS, mpZ []float64) (*inMemoryAccessor, error) {
	npolPlus1 := o.Meta.SpatialOrder + 1

	sDS, err := mesh.OpenDataset("mesh_S")
	if err != nil {
		return nil, chk.Err("meshdb: missing mesh_S: %v\n", err)
	}
	zDS, err := mesh.OpenDataset("mesh_Z")
	if err != nil {
		return nil, chk.Err("meshdb: missing mesh_Z: %v\n", err)
	}
	muDS, err := mesh.OpenDataset("mesh_mu")
	if err != nil {
		return nil, chk.Err("meshdb: missing mesh_mu: %v\n", err)
	}
	s := readFloatVector(sDS, o.Meta.NumNodes)
	z := readFloatVector(zDS, o.Meta.NumNodes)
	mu := readFloatVector(muDS, o.Meta.NumNodes)

	femMeshDS, err := mesh.OpenDataset("fem_mesh")
	if err != nil {
		return nil, chk.Err("meshdb: missing fem_mesh: %v\n", err)
	}
	semMeshDS, err := mesh.OpenDataset("sem_mesh")
	if err != nil {
		return nil, chk.Err("meshdb: missing sem_mesh: %v\n", err)
	}
	eltypeDS, err := mesh.OpenDataset("eltype")
	if err != nil {
		return nil, chk.Err("meshdb: missing eltype: %v\n", err)
	}
	axisDS, err := mesh.OpenDataset("axis")
	if err != nil {
		return nil, chk.Err("meshdb: missing axis: %v\n", err)
	}

	femMesh := make([][4]int, numElems)
	semMesh := make([][]int, numElems)
	eltype := make([]ElementTag, numElems)
	axis := make([]bool, numElems)
	for e := 0; e < numElems; e++ {
		row := readIntRow(femMeshDS, e, 4)
		femMesh[e] = [4]int{row[0], row[1], row[2], row[3]}
		semMesh[e] = readIntRow(semMeshDS, e, npolPlus1*npolPlus1)
		tag := readIntRow(eltypeDS, e, 1)
		eltype[e] = ElementTag(tag[0])
		ax := readIntRow(axisDS, e, 1)
		axis[e] = ax[0] != 0
	}

	return newInMemoryAccessor(s, z, mu, femMesh, semMesh, eltype, axis, mpS, mpZ), nil
}

// Access returns the mesh's nodal array accessor (eager or lazy)
func (o *MeshHandle) Access() NodalAccessor { return o.access }

// Tree returns the element-midpoint kd-tree
func (o *MeshHandle) Tree() *kdtree.Tree { return o.tree }

// Close releases the underlying file handle
func (o *MeshHandle) Close() error {
	if o.snapshots != nil {
		o.snapshots.Close()
	}
	if o.file == nil {
		return nil
	}
	return o.file.Close()
}

func parseDumpKind(tag string) (DumpKind, bool) {
	switch tag {
	case "displ_only":
		return DisplOnly, true
	case "strain_only":
		return StrainOnly, true
	case "fullfields":
		return FullFields, true
	default:
		return DisplOnly, false
	}
}

func parseSymmetry(tag string) Symmetry {
	switch tag {
	case "dipole":
		return Dipole
	case "quadpole":
		return Quadpole
	default:
		return Monopole
	}
}
