// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"

	qmath "gocs/math"
	"gocs/math/vec"
)

// Plane is the set of points p with Normal·p + D == 0.
//
// A point is visible from the plane's front when Classify(p) <= 0. Polygon
// planes are oriented so that the side a viewer (or light) must be on to see
// the polygon is the negative one.
type Plane struct {
	Normal vec.Vec3
	D      float32
}

func NewPlane(normal vec.Vec3, d float32) Plane {
	return Plane{Normal: normal, D: d}
}

// PlaneFromPoint returns the plane with the given normal through p.
func PlaneFromPoint(normal, p vec.Vec3) Plane {
	return Plane{Normal: normal, D: -vec.Dot(normal, p)}
}

// Classify returns the signed distance of p to the plane scaled by the
// normal's length.
func (p Plane) Classify(pt vec.Vec3) float32 {
	return vec.Dot(p.Normal, pt) + p.D
}

// Distance returns the unsigned distance of pt to the plane.
func (p Plane) Distance(pt vec.Vec3) float32 {
	return math32.Abs(p.Classify(pt))
}

// Visible reports whether pt is on the non-positive side.
func (p Plane) Visible(pt vec.Vec3) bool {
	return p.Classify(pt) <= 0
}

func (p Plane) Inverse() Plane {
	return Plane{Normal: p.Normal.Neg(), D: -p.D}
}

// Relative returns the plane expressed in coordinates relative to origin.
func (p Plane) Relative(origin vec.Vec3) Plane {
	return Plane{Normal: p.Normal, D: p.D + vec.Dot(p.Normal, origin)}
}

// Normalize scales the plane so its normal has unit length.
func (p Plane) Normalize() Plane {
	l := p.Normal.Length()
	if l == 0 {
		return p
	}
	return Plane{Normal: p.Normal.Scale(1 / l), D: p.D / l}
}

func planesEqual(a, b Plane) bool {
	const eps = 0.001
	return vec.Near(a.Normal, b.Normal, eps) && qmath.Abs32(a.D-b.D) < eps
}

// PlanesClose reports whether a and b describe nearly the same oriented
// plane, independent of normal length.
func PlanesClose(a, b Plane) bool {
	if planesEqual(a, b) {
		return true
	}
	return planesEqual(a.Normalize(), b.Normalize())
}

// SegmentPlane intersects the segment a-b with the plane. t is the fraction
// along a-b. ok is false if the segment is parallel to the plane.
func SegmentPlane(a, b vec.Vec3, p Plane) (isect vec.Vec3, t float32, ok bool) {
	ab := vec.Sub(b, a)
	den := vec.Dot(p.Normal, ab)
	if den == 0 {
		return a, 0, false
	}
	t = -p.Classify(a) / den
	return vec.Add(a, ab.Scale(t)), t, true
}
