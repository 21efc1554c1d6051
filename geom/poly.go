// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/chewxy/math32"

	"gocs/math/vec"
)

// PolyNormal returns the (unnormalized) normal of a polygon. Seen from the
// side the normal points away from, the vertices run clockwise.
func PolyNormal(poly []vec.Vec3) vec.Vec3 {
	var n vec.Vec3
	j := len(poly) - 1
	for i := range poly {
		n = vec.Add(n, vec.Cross(poly[i], poly[j]))
		j = i
	}
	return n
}

// PolyPlane returns the normalized plane of poly. A viewer that sees the
// vertices in clockwise order is on the plane's visible side.
func PolyPlane(poly []vec.Vec3) Plane {
	n := PolyNormal(poly).Normalize()
	var c vec.Vec3
	if len(poly) > 0 {
		c = PolyCenter(poly)
	}
	return PlaneFromPoint(n, c)
}

func PolyCenter(poly []vec.Vec3) vec.Vec3 {
	var c vec.Vec3
	for _, v := range poly {
		c = vec.Add(c, v)
	}
	return c.Scale(1 / float32(len(poly)))
}

// PolyArea returns the area of a planar polygon.
func PolyArea(poly []vec.Vec3) float32 {
	return PolyNormal(poly).Length() / 2
}

// Reversed returns a copy of poly in reverse order.
func Reversed(poly []vec.Vec3) []vec.Vec3 {
	r := make([]vec.Vec3, len(poly))
	for i, v := range poly {
		r[len(poly)-1-i] = v
	}
	return r
}

// RelativeTo returns poly translated so that origin becomes (0,0,0),
// reversed if mirrored is set.
func RelativeTo(poly []vec.Vec3, origin vec.Vec3, mirrored bool) []vec.Vec3 {
	r := make([]vec.Vec3, len(poly))
	n := len(poly)
	for i, v := range poly {
		j := i
		if mirrored {
			j = n - 1 - i
		}
		r[j] = vec.Sub(v, origin)
	}
	return r
}

func insidePoly(p vec.Vec3, poly []vec.Vec3, n vec.Vec3) bool {
	pos, neg := false, false
	j := len(poly) - 1
	for i := range poly {
		s := vec.Dot(vec.Cross(vec.Sub(poly[i], poly[j]), vec.Sub(p, poly[j])), n)
		if s > 0 {
			pos = true
		} else if s < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
		j = i
	}
	return true
}

func segmentSquaredDistance(p, a, b vec.Vec3) float32 {
	ab := vec.Sub(b, a)
	l := ab.SquaredLength()
	if l == 0 {
		return vec.SquaredDistance(p, a)
	}
	t := vec.Dot(vec.Sub(p, a), ab) / l
	switch {
	case t <= 0:
		return vec.SquaredDistance(p, a)
	case t >= 1:
		return vec.SquaredDistance(p, b)
	}
	return vec.SquaredDistance(p, vec.Add(a, ab.Scale(t)))
}

// PointPolySquaredDistance returns the squared distance between p and the
// closest point of the convex polygon poly lying in the normalized plane pl.
func PointPolySquaredDistance(p vec.Vec3, poly []vec.Vec3, pl Plane) float32 {
	d := pl.Classify(p)
	proj := vec.Sub(p, pl.Normal.Scale(d))
	if insidePoly(proj, poly, pl.Normal) {
		return d * d
	}
	min := float32(math32.MaxFloat32)
	j := len(poly) - 1
	for i := range poly {
		if sq := segmentSquaredDistance(p, poly[j], poly[i]); sq < min {
			min = sq
		}
		j = i
	}
	return min
}

// BoxSquaredDistance returns the squared distance from p to the closest and
// to the farthest point of the box mins-maxs.
func BoxSquaredDistance(p, mins, maxs vec.Vec3) (near, far float32) {
	axis := func(v, lo, hi float32) (float32, float32) {
		var n float32
		switch {
		case v < lo:
			n = lo - v
		case v > hi:
			n = v - hi
		}
		f := math32.Max(math32.Abs(v-lo), math32.Abs(v-hi))
		return n * n, f * f
	}
	nx, fx := axis(p.X, mins.X, maxs.X)
	ny, fy := axis(p.Y, mins.Y, maxs.Y)
	nz, fz := axis(p.Z, mins.Z, maxs.Z)
	return nx + ny + nz, fx + fy + fz
}
