// SPDX-License-Identifier: GPL-2.0-or-later

// Package world is the scene a light is propagated through: sectors holding
// things made of polygons, some of which are portals into other sectors.
package world

import (
	"log/slog"

	"gocs/cvars"
)

// Config holds the traversal parameters.
type Config struct {
	// Reflections is the highest recursion level at which a sector is
	// still entered.
	Reflections int
	// CellSize is the edge length of a lightmap texel in world units.
	CellSize float32
}

func DefaultConfig() Config {
	return Config{
		Reflections: 1,
		CellSize:    16,
	}
}

// FromCvars returns the configuration set by the lt_* cvars.
func FromCvars() Config {
	cfg := Config{
		Reflections: cvars.LightReflections.Int(),
		CellSize:    cvars.LightLightmapCell.Value(),
	}
	if cfg.CellSize <= 0 {
		slog.Warn("Invalid lightmap cell size, using default", "cellsize", cfg.CellSize)
		cfg.CellSize = DefaultConfig().CellSize
	}
	return cfg
}

type World struct {
	cfg     Config
	sectors []*Sector
	byName  map[string]*Sector
}

func New(cfg Config) *World {
	return &World{
		cfg:    cfg,
		byName: make(map[string]*Sector),
	}
}

func (w *World) Config() Config {
	return w.cfg
}

func (w *World) SetConfig(cfg Config) {
	w.cfg = cfg
}

// NewSector creates a sector, or returns the existing one with that name.
func (w *World) NewSector(name string) *Sector {
	if s, ok := w.byName[name]; ok {
		return s
	}
	s := &Sector{name: name, world: w}
	w.sectors = append(w.sectors, s)
	w.byName[name] = s
	return s
}

// Sector returns the named sector or nil.
func (w *World) Sector(name string) *Sector {
	return w.byName[name]
}

func (w *World) Sectors() []*Sector {
	return w.sectors
}

// Polygons calls f for every polygon of every thing.
func (w *World) Polygons(f func(p *Polygon)) {
	for _, s := range w.sectors {
		for _, t := range s.things {
			for _, p := range t.polygons {
				f(p)
			}
		}
	}
}

// SetupLightmaps builds the texel table and an empty lightmap of every
// polygon that can receive light and returns how many were set up.
func (w *World) SetupLightmaps() int {
	n := 0
	w.Polygons(func(p *Polygon) {
		if p.SetupLightmap(w.cfg.CellSize) {
			n++
		}
	})
	slog.Debug("Lightmaps set up", "count", n, "cellsize", w.cfg.CellSize)
	return n
}
