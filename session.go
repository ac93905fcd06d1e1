// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package instaseis

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/martapien/instaseis/meshdb"
)

const outputFileName = "ordered_output.nc4"

const maxWalkDepth = 3

var componentPatterns = []string{"PX", "PZ", "MZZ", "MXX_P_MYY", "MXZ_MYZ", "MXY_MXX_M_MYY"}

// MeshCollectionBwd holds the reciprocal database's PX/PZ meshes; any subset
// of {px, pz} may be nil except both
type MeshCollectionBwd struct {
	PX, PZ *meshdb.MeshHandle
}

// MeshCollectionFwd holds the four forward-mode elemental moment-tensor
// meshes, all of which must be present
type MeshCollectionFwd struct {
	M1, M2, M3, M4 *meshdb.MeshHandle
}

// DatabaseSession owns exactly one of the two mesh collection variants and
// serializes all file reads and buffer updates through it
type DatabaseSession struct {
	Bwd *MeshCollectionBwd
	Fwd *MeshCollectionFwd

	canonical *meshdb.MeshHandle // authoritative metadata source
	dbPath    string
	fileSize  int64
}

func findDatabaseFiles(root string) (map[string]string, error) {
	found := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && rel != "." {
				depth := len(strings.Split(rel, string(os.PathSeparator)))
				if depth >= maxWalkDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if info.Name() != outputFileName {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		parts := strings.Split(rel, string(os.PathSeparator))
		for _, p := range parts {
			for _, pattern := range componentPatterns {
				if p == pattern {
					if existing, ok := found[pattern]; ok && existing != path {
						return newErr(BadDatabaseLayout, "duplicate component %s: %s and %s", pattern, existing, path)
					}
					found[pattern] = path
				}
			}
		}
		return nil
	})
	if err != nil {
		if e, ok := err.(*Error); ok {
			return nil, e
		}
		return nil, wrapErr(IoError, err, "walking %s", root)
	}
	return found, nil
}

// Open discovers and opens an Instaseis-style database rooted at path,
// classifying its ordered_output.nc4 files by the PX/PZ/MZZ/... directory
// they live under. Cardinality 1 or 2 selects reciprocal mode; cardinality 4
// (with all four elemental components present) selects forward mode.
func Open(path string, bufferBudgetMB int, readOnDemand bool) (*DatabaseSession, error) {
	found, err := findDatabaseFiles(path)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, newErr(NotFound, "no %s files found under %s", outputFileName, path)
	}

	_, hasPX := found["PX"]
	_, hasPZ := found["PZ"]
	fwdKeys := []string{"MZZ", "MXX_P_MYY", "MXZ_MYZ", "MXY_MXX_M_MYY"}
	fwdCount := 0
	for _, k := range fwdKeys {
		if _, ok := found[k]; ok {
			fwdCount++
		}
	}

	switch {
	case hasPX || hasPZ:
		if fwdCount > 0 {
			return nil, newErr(BadDatabaseLayout, "mixed reciprocal and forward-mode components under %s", path)
		}
		return openReciprocal(path, found, bufferBudgetMB, readOnDemand)
	case fwdCount > 0:
		if fwdCount != 4 {
			return nil, newErr(BadDatabaseLayout, "forward-mode database requires all four elemental components, found %d", fwdCount)
		}
		return openForward(path, found, bufferBudgetMB, readOnDemand)
	default:
		return nil, newErr(BadDatabaseLayout, "no recognised PX/PZ/MZZ/... components under %s", path)
	}
}

func openMesh(path string, fullParse bool, strainMB, displMB int, readOnDemand bool) (*meshdb.MeshHandle, error) {
	h, err := meshdb.Open(path, fullParse, readOnDemand, strainMB, displMB)
	if err != nil {
		return nil, wrapErr(IoError, err, "opening %s", path)
	}
	if h.Meta.FileVersion < 4 {
		return nil, newErr(UnsupportedVersion, "file %s has version %d, need >= 4", path, h.Meta.FileVersion)
	}
	return h, nil
}

func openReciprocal(root string, found map[string]string, bufferBudgetMB int, readOnDemand bool) (*DatabaseSession, error) {
	var px, pz *meshdb.MeshHandle
	var err error
	var canonical *meshdb.MeshHandle

	if pxPath, ok := found["PX"]; ok {
		px, err = openMesh(pxPath, true, bufferBudgetMB, bufferBudgetMB, readOnDemand)
		if err != nil {
			return nil, err
		}
		canonical = px
	}
	if pzPath, ok := found["PZ"]; ok {
		fullParse := canonical == nil
		pz, err = openMesh(pzPath, fullParse, bufferBudgetMB, bufferBudgetMB, readOnDemand)
		if err != nil {
			return nil, err
		}
		if canonical == nil {
			canonical = pz
		}
	}

	sess := &DatabaseSession{
		Bwd:       &MeshCollectionBwd{PX: px, PZ: pz},
		canonical: canonical,
		dbPath:    root,
	}
	sess.fileSize = totalFileSize(found)
	return sess, nil
}

func openForward(root string, found map[string]string, bufferBudgetMB int, readOnDemand bool) (*DatabaseSession, error) {
	m1, err := openMesh(found["MZZ"], true, 0, bufferBudgetMB, readOnDemand)
	if err != nil {
		return nil, err
	}
	m2, err := openMesh(found["MXX_P_MYY"], false, 0, bufferBudgetMB, readOnDemand)
	if err != nil {
		return nil, err
	}
	m3, err := openMesh(found["MXZ_MYZ"], false, 0, bufferBudgetMB, readOnDemand)
	if err != nil {
		return nil, err
	}
	m4, err := openMesh(found["MXY_MXX_M_MYY"], false, 0, bufferBudgetMB, readOnDemand)
	if err != nil {
		return nil, err
	}

	sess := &DatabaseSession{
		Fwd:       &MeshCollectionFwd{M1: m1, M2: m2, M3: m3, M4: m4},
		canonical: m1,
		dbPath:    root,
	}
	sess.fileSize = totalFileSize(found)
	return sess, nil
}

func totalFileSize(found map[string]string) int64 {
	var total int64
	counted := make(map[string]bool)
	for _, path := range found {
		if counted[path] {
			continue
		}
		counted[path] = true
		if info, err := os.Stat(path); err == nil {
			total += info.Size()
		}
	}
	return total
}

// IsReciprocal reports whether this session holds reciprocal (PX/PZ) meshes
func (o *DatabaseSession) IsReciprocal() bool { return o.Bwd != nil }

// Close releases every open mesh file handle
func (o *DatabaseSession) Close() error {
	var firstErr error
	closeOne := func(h *meshdb.MeshHandle) {
		if h == nil {
			return
		}
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if o.Bwd != nil {
		closeOne(o.Bwd.PX)
		closeOne(o.Bwd.PZ)
	}
	if o.Fwd != nil {
		closeOne(o.Fwd.M1)
		closeOne(o.Fwd.M2)
		closeOne(o.Fwd.M3)
		closeOne(o.Fwd.M4)
	}
	return firstErr
}
