package voxel

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// World is an in-memory voxel store that answers wall-candidate queries for
// room scans. Voxels in sections that were never loaded read as air.
// Not safe for concurrent mutation: sections are written by the owning loop only.
type World struct {
	palette  *Palette
	sections map[Coord]Section
}

// NewWorld creates an empty world. A nil palette selects DefaultPalette.
func NewWorld(palette *Palette) *World {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &World{
		palette:  palette,
		sections: make(map[Coord]Section),
	}
}

// Palette returns the material palette used to interpret voxel IDs.
func (w *World) Palette() *Palette {
	return w.palette
}

// LoadWorld loads all .sec files from the given directory.
// File naming convention: "<sectionX>_<sectionY>_<sectionZ>.sec"
func (w *World) LoadWorld(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading world dir %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != SectionExt {
			continue
		}

		var sx, sy, sz int
		base := strings.TrimSuffix(name, ext)
		if _, err := fmt.Sscanf(base, "%d_%d_%d", &sx, &sy, &sz); err != nil {
			slog.Warn("skip section file (bad name)", "file", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading section %s: %w", name, err)
		}

		section, consumed, err := ParseSection(data, 0)
		if err != nil {
			return fmt.Errorf("parsing section %s: %w", name, err)
		}
		if consumed != len(data) {
			slog.Warn("section file has trailing bytes", "file", name, "extra", len(data)-consumed)
		}

		w.sections[C(sx, sy, sz)] = section
		loaded++
	}

	slog.Info("world sections loaded", "sections", loaded, "dir", dir)
	return nil
}

// SaveSection writes the section at section coordinate sc into dir.
func (w *World) SaveSection(dir string, sc Coord) error {
	section, ok := w.sections[sc]
	if !ok {
		return fmt.Errorf("save section %v: not loaded", sc)
	}
	name := fmt.Sprintf("%d_%d_%d%s", sc.X, sc.Y, sc.Z, SectionExt)
	if err := os.WriteFile(filepath.Join(dir, name), section.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing section %s: %w", name, err)
	}
	return nil
}

// SaveAll writes every loaded section into dir and returns how many were
// written. Uniform dense sections are stored flat.
func (w *World) SaveAll(dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating world dir %s: %w", dir, err)
	}
	written := 0
	for sc, s := range w.sections {
		if _, dense := s.(*DenseSection); dense && s.Uniform() {
			w.sections[sc] = NewFlatSection(s.At(0))
		}
		if err := w.SaveSection(dir, sc); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Ready reports whether any section is present. An unloaded world cannot
// answer probe queries.
func (w *World) Ready() bool {
	return w != nil && len(w.sections) > 0
}

// SectionCount returns the number of loaded sections.
func (w *World) SectionCount() int {
	return len(w.sections)
}

// SetSection stores a section at section coordinate sc.
func (w *World) SetSection(sc Coord, s Section) {
	w.sections[sc] = s
}

// At returns the material ID of voxel c.
func (w *World) At(c Coord) ID {
	s, ok := w.sections[c.Section()]
	if !ok {
		return Air
	}
	return s.At(c.Local())
}

// Material returns the material of voxel c.
func (w *World) Material(c Coord) Material {
	return w.palette.Lookup(w.At(c))
}

// IsWallCandidate reports whether voxel c is a valid wall, floor or ceiling.
func (w *World) IsWallCandidate(c Coord) bool {
	return w.Material(c).IsWall()
}

// Set stores id at voxel c, expanding flat sections as needed.
func (w *World) Set(c Coord, id ID) {
	sc := c.Section()
	var dense *DenseSection
	switch s := w.sections[sc].(type) {
	case *DenseSection:
		dense = s
	case *FlatSection:
		if s.id == id {
			return
		}
		dense = NewDenseSection(s.id)
	default:
		dense = NewDenseSection(Air)
	}
	dense.Set(c.Local(), id)
	w.sections[sc] = dense
}

// Fill sets every voxel in the inclusive box [from, to] to id.
func (w *World) Fill(from, to Coord, id ID) {
	minX, maxX := order(from.X, to.X)
	minY, maxY := order(from.Y, to.Y)
	minZ, maxZ := order(from.Z, to.Z)
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				w.Set(C(x, y, z), id)
			}
		}
	}
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
