// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"log/slog"

	"gocs/fview"
	"gocs/geom"
	qmath "gocs/math"
	"gocs/math/vec"
)

type PortalFlags uint32

const (
	// PortalWarp transforms space when crossing the portal.
	PortalWarp PortalFlags = 1 << iota
	// PortalMirror is set for warps that reverse orientation.
	PortalMirror
	// PortalStaticDest means the warp maps into world space directly and
	// does not move with the thing.
	PortalStaticDest
	// PortalClipDest clips everything before the portal plane in the
	// target sector.
	PortalClipDest
)

// MissingSectorFunc may bind the target of a portal that has none. It
// returns true if it did.
type MissingSectorFunc func(p *Portal, fv *fview.View) bool

type Portal struct {
	poly    *Polygon
	target  *Sector
	flags   PortalFlags
	warp    geom.Transform
	filter  *vec.Vec3
	missing []MissingSectorFunc
}

func (p *Portal) Polygon() *Polygon {
	return p.poly
}

// Target returns the sector behind the portal, nil if still unresolved.
func (p *Portal) Target() *Sector {
	return p.target
}

func (p *Portal) SetTarget(s *Sector) {
	p.target = s
}

func (p *Portal) Flags() PortalFlags {
	return p.flags
}

func (p *Portal) SetFlags(f PortalFlags) {
	p.flags = f
}

func (p *Portal) HasFlag(f PortalFlags) bool {
	return p.flags&f != 0
}

// SetWarp sets the object space warp of the portal.
func (p *Portal) SetWarp(t geom.Transform) {
	p.warp = t
	p.flags |= PortalWarp
	if t.Mirrors() {
		p.flags |= PortalMirror
	} else {
		p.flags &^= PortalMirror
	}
}

// SetMirror makes the portal a mirror about its own plane.
func (p *Portal) SetMirror() {
	p.SetWarp(geom.Reflection(geom.PolyPlane(p.poly.object)))
}

// Warp returns the object space warp.
func (p *Portal) Warp() geom.Transform {
	return p.warp
}

// SetFilter multiplies light passing the portal by c.
func (p *Portal) SetFilter(c vec.Vec3) {
	p.filter = &c
}

func (p *Portal) ClearFilter() {
	p.filter = nil
}

func (p *Portal) Filter() (vec.Vec3, bool) {
	if p.filter == nil {
		return vec.Vec3{}, false
	}
	return *p.filter, true
}

func (p *Portal) AddMissingSectorCallback(cb MissingSectorFunc) {
	p.missing = append(p.missing, cb)
}

// CompleteSector reports whether the portal has a target, asking the
// missing sector callbacks in order if it has none.
func (p *Portal) CompleteSector(fv *fview.View) bool {
	if p.target != nil {
		return true
	}
	for _, cb := range p.missing {
		if cb(p, fv) && p.target != nil {
			return true
		}
	}
	return false
}

// WorldWarp returns the warp in world space.
func (p *Portal) WorldWarp() geom.Transform {
	tr := p.poly.thing.transform
	if tr.IsIdentity() {
		return p.warp
	}
	w := p.warp.Compose(tr.Inverse())
	if p.HasFlag(PortalStaticDest) {
		return w
	}
	return tr.Compose(w)
}

// WarpSpace maps a world space point through the portal.
func (p *Portal) WarpSpace(pt vec.Vec3) vec.Vec3 {
	if !p.HasFlag(PortalWarp) {
		return pt
	}
	return p.WorldWarp().Apply(pt)
}

// CheckFrustum propagates the current context of fv through the portal
// into the target sector.
func (p *Portal) CheckFrustum(fv *fview.View) {
	if !p.CompleteSector(fv) {
		return
	}
	if p.target.recLevel > p.target.world.cfg.Reflections {
		return
	}
	ctx := fv.Context()
	lf := ctx.LightFrustum()
	if lf == nil {
		return
	}
	origin := lf.Origin()
	nf := lf.IntersectPoly(geom.RelativeTo(p.poly.world, origin, ctx.IsMirrored()))
	if nf == nil {
		return
	}
	if p.HasFlag(PortalClipDest) {
		bp := p.poly.plane.Relative(origin).Inverse()
		nf.SetBackPlane(&bp)
	}

	saved := fv.CreateFrustumContext()
	defer fv.RestoreFrustumContext(saved)
	child := fv.Context()
	child.SetLightFrustum(nf)

	if !MarkRelevantShadowFrustums(saved.Shadows(), nf, p.poly.plane) {
		slog.Debug("Portal covered by shadow", "portal", p.poly.Name(), "view", fv.ID())
		return
	}
	b := fv.StartNewShadowBlock()
	if p.HasFlag(PortalWarp) {
		w := p.WorldWarp()
		nf.Transform(w)
		if w.Mirrors() {
			child.SetMirrored(!child.IsMirrored())
		}
		nf.SetMirrored(child.IsMirrored())
		b.AddAllRelevantShadows(saved.Shadows(), &w)
	} else {
		b.AddAllRelevantShadows(saved.Shadows(), nil)
	}

	if li := child.Lighting(); li != nil && p.filter != nil {
		li.Color = vec.Mul(li.Color, *p.filter)
		if li.Color.X < qmath.SmallEpsilon && li.Color.Y < qmath.SmallEpsilon && li.Color.Z < qmath.SmallEpsilon {
			return
		}
	}

	slog.Debug("Portal", "portal", p.poly.Name(), "target", p.target.name, "view", fv.ID(), "depth", fv.Depth(), "mirrored", child.IsMirrored())
	p.target.CheckFrustum(fv)
}
