// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"log/slog"
	"sort"

	"gocs/fview"
	"gocs/geom"
)

// SectorCallback runs every time a traversal reaches the sector, before
// its contents are checked.
type SectorCallback func(s *Sector, fv *fview.View)

// Tracker is notified of every sector a traversal enters. A View whose
// user data implements Tracker gets the notifications.
type Tracker interface {
	EnterSector(s *Sector, depth int)
}

type Sector struct {
	name      string
	world     *World
	things    []*Thing
	recLevel  int
	callbacks []SectorCallback
}

func (s *Sector) Name() string {
	return s.name
}

func (s *Sector) String() string {
	return s.name
}

func (s *Sector) World() *World {
	return s.world
}

func (s *Sector) Things() []*Thing {
	return s.things
}

// RecursionLevel returns how often the sector is entered by the running
// traversal.
func (s *Sector) RecursionLevel() int {
	return s.recLevel
}

func (s *Sector) AddCallback(cb SectorCallback) {
	s.callbacks = append(s.callbacks, cb)
}

// NewThing adds an empty thing with identity transform.
func (s *Sector) NewThing(name string) *Thing {
	t := newThing(name, s)
	s.things = append(s.things, t)
	return t
}

// CheckFrustum visits the contents of the sector with the current context
// of fv, which must have a light frustum.
func (s *Sector) CheckFrustum(fv *fview.View) {
	for _, cb := range s.callbacks {
		cb(s, fv)
	}
	if s.recLevel > s.world.cfg.Reflections {
		return
	}
	s.recLevel++
	defer func() { s.recLevel-- }()

	slog.Debug("Sector visit", "sector", s.name, "view", fv.ID(), "depth", fv.Depth(), "level", s.recLevel)
	if tr, ok := fv.UserData().(Tracker); ok {
		tr.EnterSector(s, fv.Depth())
	}
	s.castShadows(fv)
}

type candidate struct {
	t    *Thing
	near float32
	far  float32
}

// castShadows lets the casting things in range add their shadows and then
// visits the receiving things. The shadows are removed again afterwards.
func (s *Sector) castShadows(fv *fview.View) {
	ctx := fv.Context()
	lf := ctx.LightFrustum()
	if lf == nil {
		return
	}
	origin := lf.Origin()
	sq := fv.SquaredRadius()

	var casters, receivers []candidate
	for _, t := range s.things {
		near, far := geom.BoxSquaredDistance(origin, t.mins, t.maxs)
		if sq > 0 && near >= sq {
			continue
		}
		c := candidate{t: t, near: near, far: far}
		if fv.ThingShadowsEnabled() && fv.CheckShadowMask(t.flags) {
			casters = append(casters, c)
		}
		if fv.CheckProcessMask(t.flags) {
			receivers = append(receivers, c)
		}
	}
	sort.SliceStable(casters, func(i, j int) bool {
		return casters[i].near < casters[j].near
	})
	sort.SliceStable(receivers, func(i, j int) bool {
		return receivers[i].far < receivers[j].far
	})

	list := ctx.Shadows()
	prev := list.MarkNewRegion()
	for _, c := range casters {
		c.t.AppendShadows(list, origin)
	}
	for _, c := range receivers {
		fv.CallObjectFunction(c.t, true)
	}
	for b := list.Last(); b != nil && list.FromCurrentRegion(b); b = list.Last() {
		list.RemoveLastShadowBlock()
		b.DeleteAllShadows()
	}
	list.RestoreRegion(prev)
}
