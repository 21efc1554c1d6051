// SPDX-License-Identifier: GPL-2.0-or-later

// Package frustum implements convex visibility volumes spanned from an
// origin. A frustum is bounded by the planes through the origin and each
// pair of consecutive polygon vertices, and optionally by a back plane.
//
// All vertices and the back plane are kept relative to the origin. Seen
// from the origin the polygon runs clockwise, unless the frustum is
// mirrored, in which case it runs counterclockwise.
package frustum

import (
	"fmt"

	"gocs/geom"
	"gocs/math/vec"
)

// growBy is the number of vertex slots added when AddVertex runs out of
// capacity.
const growBy = 10

type Frustum struct {
	origin    vec.Vec3
	vertices  []vec.Vec3
	backPlane *geom.Plane
	wide      bool
	mirrored  bool
}

// New returns an empty frustum.
func New(origin vec.Vec3) *Frustum {
	return &Frustum{origin: origin}
}

// NewWide returns an infinite frustum.
func NewWide(origin vec.Vec3) *Frustum {
	return &Frustum{origin: origin, wide: true}
}

// NewPoly returns a frustum with a copy of verts, which must already be
// relative to origin. backPlane may be nil.
func NewPoly(origin vec.Vec3, verts []vec.Vec3, backPlane *geom.Plane) *Frustum {
	f := &Frustum{origin: origin}
	if len(verts) > 0 {
		f.vertices = make([]vec.Vec3, len(verts))
		copy(f.vertices, verts)
	}
	f.SetBackPlane(backPlane)
	return f
}

// NewSized returns a frustum with n zero vertices to be filled with
// SetVertex.
func NewSized(origin vec.Vec3, n int, backPlane *geom.Plane) *Frustum {
	f := &Frustum{origin: origin, vertices: make([]vec.Vec3, n)}
	f.SetBackPlane(backPlane)
	return f
}

func (f *Frustum) String() string {
	return fmt.Sprintf("frustum{origin: %v, vertices: %v, wide: %v, mirrored: %v, back: %v}",
		f.origin, f.vertices, f.wide, f.mirrored, f.backPlane)
}

// Clone returns a deep copy.
func (f *Frustum) Clone() *Frustum {
	c := NewPoly(f.origin, f.vertices, f.backPlane)
	c.wide = f.wide
	c.mirrored = f.mirrored
	return c
}

func (f *Frustum) Origin() vec.Vec3 {
	return f.origin
}

func (f *Frustum) SetOrigin(o vec.Vec3) {
	f.origin = o
}

// Vertices returns the polygon. The slice is owned by the frustum.
func (f *Frustum) Vertices() []vec.Vec3 {
	return f.vertices
}

func (f *Frustum) NumVertices() int {
	return len(f.vertices)
}

func (f *Frustum) Vertex(i int) vec.Vec3 {
	return f.vertices[i]
}

func (f *Frustum) SetVertex(i int, v vec.Vec3) {
	f.vertices[i] = v
}

// AddVertex appends a vertex relative to the origin.
func (f *Frustum) AddVertex(v vec.Vec3) {
	if len(f.vertices) == cap(f.vertices) {
		nv := make([]vec.Vec3, len(f.vertices), cap(f.vertices)+growBy)
		copy(nv, f.vertices)
		f.vertices = nv
	}
	f.vertices = append(f.vertices, v)
}

// BackPlane returns the back plane or nil.
func (f *Frustum) BackPlane() *geom.Plane {
	return f.backPlane
}

// SetBackPlane stores a copy of p. A nil p removes the back plane.
func (f *Frustum) SetBackPlane(p *geom.Plane) {
	if p == nil {
		f.backPlane = nil
		return
	}
	bp := *p
	f.backPlane = &bp
}

func (f *Frustum) RemoveBackPlane() {
	f.backPlane = nil
}

func (f *Frustum) IsWide() bool {
	return f.wide
}

func (f *Frustum) IsMirrored() bool {
	return f.mirrored
}

func (f *Frustum) SetMirrored(m bool) {
	f.mirrored = m
}

// IsEmpty reports a frustum that contains nothing.
func (f *Frustum) IsEmpty() bool {
	return !f.wide && len(f.vertices) == 0
}

// IsInfinite reports a frustum that contains everything.
func (f *Frustum) IsInfinite() bool {
	return f.wide && len(f.vertices) == 0 && f.backPlane == nil
}

func (f *Frustum) MakeEmpty() {
	f.vertices = nil
	f.backPlane = nil
	f.wide = false
}

func (f *Frustum) MakeInfinite() {
	f.vertices = nil
	f.backPlane = nil
	f.wide = true
}

// Transform moves the frustum by t. The mirrored flag is left alone.
func (f *Frustum) Transform(t geom.Transform) {
	f.origin = t.Apply(f.origin)
	for i, v := range f.vertices {
		f.vertices[i] = t.ApplyRelative(v)
	}
	if f.backPlane != nil {
		bp := t.ApplyPlaneRelative(*f.backPlane)
		f.backPlane = &bp
	}
}

// EdgeNormals returns for each edge i -> i+1 the normal of the side plane,
// oriented so that points inside have a non-positive dot product.
func (f *Frustum) EdgeNormals() []vec.Vec3 {
	n := EdgeNormals(f.vertices)
	if f.mirrored {
		for i := range n {
			n[i] = n[i].Neg()
		}
	}
	return n
}

// EdgeNormals returns frust[i] x frust[i+1] for every edge of a clockwise
// polygon given relative to the origin.
func EdgeNormals(frust []vec.Vec3) []vec.Vec3 {
	n := make([]vec.Vec3, len(frust))
	for i := range frust {
		n[i] = vec.Cross(frust[i], frust[(i+1)%len(frust)])
	}
	return n
}

// Contains reports whether p, given relative to the origin, lies inside.
func (f *Frustum) Contains(p vec.Vec3) bool {
	if f.backPlane != nil && !f.backPlane.Visible(p) {
		return false
	}
	if len(f.vertices) == 0 {
		return f.wide
	}
	return contains(f.vertices, p, f.mirrored)
}

// Contains reports whether p lies inside the frustum given by the clockwise
// polygon frust around (0,0,0).
func Contains(frust []vec.Vec3, p vec.Vec3) bool {
	return contains(frust, p, false)
}

// ContainsAt is Contains for a world space point and a frustum at origin.
func ContainsAt(origin vec.Vec3, frust []vec.Vec3, p vec.Vec3) bool {
	return contains(frust, vec.Sub(p, origin), false)
}

func contains(frust []vec.Vec3, p vec.Vec3, mirrored bool) bool {
	j := len(frust) - 1
	for i := range frust {
		d := vec.Dot(vec.Cross(frust[j], frust[i]), p)
		if mirrored {
			d = -d
		}
		if d > 0 {
			return false
		}
		j = i
	}
	return true
}
