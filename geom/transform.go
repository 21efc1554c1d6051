// SPDX-License-Identifier: GPL-2.0-or-later

package geom

import (
	"github.com/go-gl/mathgl/mgl32"

	"gocs/math/vec"
)

// Transform maps a point p to M·p + T. The inverse matrix is kept alongside
// so planes and inverse mappings need no further inversion.
type Transform struct {
	m   mgl32.Mat3
	inv mgl32.Mat3
	t   vec.Vec3
}

func toMgl(v vec.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) vec.Vec3 {
	return vec.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func Identity() Transform {
	return Transform{m: mgl32.Ident3(), inv: mgl32.Ident3()}
}

// NewTransform returns the transform p -> m·p + t. m must be invertible.
func NewTransform(m mgl32.Mat3, t vec.Vec3) Transform {
	return Transform{m: m, inv: m.Inv(), t: t}
}

func Translation(t vec.Vec3) Transform {
	return Transform{m: mgl32.Ident3(), inv: mgl32.Ident3(), t: t}
}

// Reflection returns the mirror transform about p:
// x' = x - 2(n·x + D)n.
func Reflection(p Plane) Transform {
	p = p.Normalize()
	n := toMgl(p.Normal)
	m := mgl32.Ident3().Sub(n.OuterProd3(n).Mul(2))
	// a reflection is its own inverse
	return Transform{m: m, inv: m, t: p.Normal.Scale(-2 * p.D)}
}

func (t Transform) Matrix() mgl32.Mat3 {
	return t.m
}

func (t Transform) Offset() vec.Vec3 {
	return t.t
}

// Apply maps a point.
func (t Transform) Apply(p vec.Vec3) vec.Vec3 {
	return vec.Add(fromMgl(t.m.Mul3x1(toMgl(p))), t.t)
}

// ApplyRelative maps a direction or an origin relative position, ignoring
// the translation.
func (t Transform) ApplyRelative(v vec.Vec3) vec.Vec3 {
	return fromMgl(t.m.Mul3x1(toMgl(v)))
}

// ApplyInverse maps a point back.
func (t Transform) ApplyInverse(p vec.Vec3) vec.Vec3 {
	return fromMgl(t.inv.Mul3x1(toMgl(vec.Sub(p, t.t))))
}

// ApplyPlane maps a plane so that points on pl map to points on the result.
func (t Transform) ApplyPlane(pl Plane) Plane {
	n := fromMgl(t.inv.Transpose().Mul3x1(toMgl(pl.Normal)))
	return Plane{Normal: n, D: pl.D - vec.Dot(n, t.t)}
}

// ApplyPlaneRelative maps a plane given relative to an origin that is
// itself moved by t.
func (t Transform) ApplyPlaneRelative(pl Plane) Plane {
	n := fromMgl(t.inv.Transpose().Mul3x1(toMgl(pl.Normal)))
	return Plane{Normal: n, D: pl.D}
}

func (t Transform) Inverse() Transform {
	return Transform{
		m:   t.inv,
		inv: t.m,
		t:   fromMgl(t.inv.Mul3x1(toMgl(t.t))).Neg(),
	}
}

// Compose returns the transform that applies o first and t second.
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		m:   t.m.Mul3(o.m),
		inv: o.inv.Mul3(t.inv),
		t:   t.Apply(o.t),
	}
}

// Mirrors reports whether the transform flips orientation.
func (t Transform) Mirrors() bool {
	return t.m.Det() < 0
}

// IsIdentity reports whether t is the identity up to a small tolerance.
func (t Transform) IsIdentity() bool {
	const eps = 1e-5
	same := func(a, b float32) bool {
		return mgl32.Abs(a-b) < eps
	}
	return t.m.ApproxFuncEqual(mgl32.Ident3(), same) && vec.Near(t.t, vec.Vec3{}, eps)
}
