// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"fmt"

	"gocs/geom"
	"gocs/lightmap"
	qmath "gocs/math"
	"gocs/math/vec"
)

// Polygon is a convex face of a thing. It is either a portal or a surface
// with a lightmap.
type Polygon struct {
	thing  *Thing
	index  int
	object []vec.Vec3
	world  []vec.Vec3
	plane  geom.Plane
	portal *Portal

	lightmap *lightmap.Map
	texels   *lightmap.TexelTable
}

func (p *Polygon) update() {
	tr := p.thing.transform
	p.world = make([]vec.Vec3, len(p.object))
	for i, v := range p.object {
		p.world[i] = tr.Apply(v)
	}
	p.plane = geom.PolyPlane(p.world)
}

func (p *Polygon) Thing() *Thing {
	return p.thing
}

func (p *Polygon) Index() int {
	return p.index
}

// Name is unique within the world and usable as a file name.
func (p *Polygon) Name() string {
	return fmt.Sprintf("%s_%s_%d", p.thing.sector.name, p.thing.name, p.index)
}

func (p *Polygon) String() string {
	return p.Name()
}

// Vertices returns the world space vertices.
func (p *Polygon) Vertices() []vec.Vec3 {
	return p.world
}

func (p *Polygon) ObjectVertices() []vec.Vec3 {
	return p.object
}

// Plane returns the world space plane. Its visible side is the lit side.
func (p *Polygon) Plane() geom.Plane {
	return p.plane
}

func (p *Polygon) Center() vec.Vec3 {
	return geom.PolyCenter(p.world)
}

// Portal returns the portal of the polygon or nil.
func (p *Polygon) Portal() *Portal {
	return p.portal
}

func (p *Polygon) Lightmap() *lightmap.Map {
	return p.lightmap
}

func (p *Polygon) Texels() *lightmap.TexelTable {
	return p.texels
}

// SetupLightmap builds the texel table and an empty lightmap. Portals and
// degenerate polygons get none; false is returned for them.
func (p *Polygon) SetupLightmap(cellSize float32) bool {
	p.lightmap, p.texels = nil, nil
	if p.portal != nil || len(p.world) < 3 {
		return false
	}
	if geom.PolyNormal(p.world).Length() < qmath.SmallEpsilon {
		return false
	}
	p.texels = lightmap.NewTexelTable(p.world, p.plane, cellSize)
	p.lightmap = p.texels.NewMap()
	return true
}

// Receiver returns the polygon as a lightmap receiver. It is only valid
// after SetupLightmap.
func (p *Polygon) Receiver() lightmap.Receiver {
	return lightmap.Receiver{
		ID:     p,
		Plane:  p.plane,
		Map:    p.lightmap,
		Texels: p.texels,
	}
}
