// SPDX-License-Identifier: GPL-2.0-or-later

package frustum

import (
	"fmt"

	qmath "gocs/math"
	"gocs/math/vec"
)

// Intersect returns the intersection of f with o, which must share f's
// origin. The result is nil if it is empty.
func (f *Frustum) Intersect(o *Frustum) *Frustum {
	if !vec.Near(f.origin, o.origin, qmath.Epsilon) {
		panic(fmt.Sprintf("frustum: intersecting origin %v with origin %v", f.origin, o.origin))
	}
	if o.IsInfinite() {
		return f.Clone()
	}
	if o.IsEmpty() {
		return nil
	}
	if len(o.vertices) == 0 {
		// o is wide and only bounded by its back plane
		r := f.Clone()
		if r.IsEmpty() {
			return nil
		}
		if len(r.vertices) > 0 {
			r.ClipPolyToPlane(o.backPlane)
			if r.IsEmpty() {
				return nil
			}
		}
		if r.backPlane == nil {
			r.SetBackPlane(o.backPlane)
		}
		return r
	}
	return f.IntersectPoly(o.vertices)
}

// IntersectPoly returns the part of the convex polygon poly, given relative
// to the origin, that is inside f. The result is nil if it is empty.
func (f *Frustum) IntersectPoly(poly []vec.Vec3) *Frustum {
	if f.IsInfinite() {
		r := NewPoly(f.origin, poly, nil)
		r.mirrored = f.mirrored
		return r
	}
	if f.IsEmpty() {
		return nil
	}
	r := NewPoly(f.origin, poly, nil)
	r.mirrored = f.mirrored
	j := len(f.vertices) - 1
	for i := range f.vertices {
		r.ClipToPlane(f.vertices[j], f.vertices[i])
		if r.IsEmpty() {
			return nil
		}
		j = i
	}
	if f.backPlane != nil {
		r.ClipPolyToPlane(f.backPlane)
		if r.IsEmpty() {
			return nil
		}
	}
	return r
}

// IntersectPolys intersects the frustum at origin spanned by the clockwise
// polygon frust with poly. Both polygons are relative to origin.
func IntersectPolys(origin vec.Vec3, frust, poly []vec.Vec3) *Frustum {
	f := NewPoly(origin, frust, nil)
	return f.IntersectPoly(poly)
}

// IntersectTriangle is IntersectPolys for a triangle.
func IntersectTriangle(origin vec.Vec3, frust []vec.Vec3, v1, v2, v3 vec.Vec3) *Frustum {
	return IntersectPolys(origin, frust, []vec.Vec3{v1, v2, v3})
}
