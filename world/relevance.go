// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"gocs/frustum"
	"gocs/geom"
	"gocs/math/vec"
	"gocs/shadow"
)

// MarkRelevantShadowFrustums flags the shadows of l that can matter behind
// a portal with plane pl, given the light frustum lf already clipped to the
// portal. It returns false if one shadow covers lf completely and its
// occluder lies between the light and the portal, in which case nothing
// behind the portal is lit.
func MarkRelevantShadowFrustums(l *shadow.List, lf *frustum.Frustum, pl geom.Plane) bool {
	it := l.Iterator(false)
	for it.HasNext() {
		s := it.Next()
		if cp, ok := s.CasterPlane(); ok && geom.PlanesClose(cp, pl) {
			s.MarkRelevant(false)
			continue
		}
		switch lf.Classify(s.Vertices()) {
		case frustum.Covered:
			if blocks(s, lf) {
				return false
			}
			s.MarkRelevant(true)
		case frustum.Outside:
			s.MarkRelevant(false)
		default:
			s.MarkRelevant(true)
		}
	}
	return true
}

// blocks reports whether the occluder plane of s cuts the ray from the light
// to the centre of lf.
func blocks(s *shadow.Frustum, lf *frustum.Frustum) bool {
	cp, ok := s.CasterPlane()
	if !ok {
		return true
	}
	verts := lf.Vertices()
	var c vec.Vec3
	for _, v := range verts {
		c = vec.Add(c, v)
	}
	c = c.Scale(1 / float32(len(verts)))
	o := lf.Origin()
	d0 := cp.Classify(o)
	d1 := cp.Classify(vec.Add(o, c))
	return (d0 < 0) != (d1 < 0)
}
