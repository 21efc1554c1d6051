// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"gocs/geom"
	qmath "gocs/math"
	"gocs/math/vec"
	"gocs/shadow"
)

const (
	// FlagNoShadows keeps a thing from casting shadows.
	FlagNoShadows uint32 = 1 << iota
	// FlagNoLighting keeps a thing from being lit.
	FlagNoLighting
)

// Thing is a set of polygons placed in a sector by an object to world
// transform.
type Thing struct {
	name      string
	sector    *Sector
	flags     uint32
	transform geom.Transform
	polygons  []*Polygon
	mins      vec.Vec3
	maxs      vec.Vec3
}

func newThing(name string, s *Sector) *Thing {
	return &Thing{
		name:      name,
		sector:    s,
		transform: geom.Identity(),
	}
}

func (t *Thing) Name() string {
	return t.name
}

func (t *Thing) String() string {
	return t.sector.name + "." + t.name
}

func (t *Thing) Sector() *Sector {
	return t.sector
}

func (t *Thing) Flags() uint32 {
	return t.flags
}

func (t *Thing) SetFlags(f uint32) {
	t.flags = f
}

func (t *Thing) Polygons() []*Polygon {
	return t.polygons
}

// Bounds returns the world space bounding box.
func (t *Thing) Bounds() (mins, maxs vec.Vec3) {
	return t.mins, t.maxs
}

// Transform returns the object to world transform.
func (t *Thing) Transform() geom.Transform {
	return t.transform
}

// SetTransform moves the thing. World space vertices, planes and bounds are
// recomputed; lightmaps have to be set up again.
func (t *Thing) SetTransform(tr geom.Transform) {
	t.transform = tr
	for _, p := range t.polygons {
		p.update()
	}
	t.updateBounds()
}

func (t *Thing) updateBounds() {
	var pts []vec.Vec3
	for _, p := range t.polygons {
		pts = append(pts, p.world...)
	}
	if len(pts) == 0 {
		t.mins, t.maxs = vec.Vec3{}, vec.Vec3{}
		return
	}
	t.mins, t.maxs = vec.Bounds(pts)
}

// AddPolygon adds a convex polygon given in object space. Seen from the side
// that is lit, the vertices run clockwise.
func (t *Thing) AddPolygon(verts []vec.Vec3) *Polygon {
	p := &Polygon{
		thing:  t,
		index:  len(t.polygons),
		object: append([]vec.Vec3(nil), verts...),
	}
	p.update()
	t.polygons = append(t.polygons, p)
	t.updateBounds()
	return p
}

// AddPortal adds a portal polygon leading into target, which may be nil to
// be resolved by missing sector callbacks.
func (t *Thing) AddPortal(verts []vec.Vec3, target *Sector) *Portal {
	p := t.AddPolygon(verts)
	p.portal = &Portal{
		poly:   p,
		target: target,
		warp:   geom.Identity(),
	}
	return p.portal
}

// AppendShadows adds a block with one shadow per polygon facing origin to
// list. Portals cast no shadows. It returns the number of shadows added.
func (t *Thing) AppendShadows(list *shadow.List, origin vec.Vec3) int {
	var b *shadow.Block
	for _, p := range t.polygons {
		if p.portal != nil || len(p.world) < 3 {
			continue
		}
		c := p.plane.Classify(origin)
		if qmath.Abs32(c) < qmath.Epsilon || c > 0 {
			continue
		}
		if b == nil {
			b = list.NewShadowBlock(t.sector, t.sector.recLevel)
		}
		bp := p.plane.Relative(origin).Inverse()
		s := b.AddShadow(origin, p, len(p.world), &bp)
		for j, v := range p.world {
			s.SetVertex(j, vec.Sub(v, origin))
		}
	}
	if b == nil {
		return 0
	}
	return b.Len()
}
