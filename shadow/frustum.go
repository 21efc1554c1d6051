// SPDX-License-Identifier: GPL-2.0-or-later

// Package shadow holds the shadow volumes collected while a light is
// propagated through the world.
package shadow

import (
	"gocs/frustum"
	"gocs/geom"
	"gocs/math/vec"
)

// Frustum is a shadow volume cast by one occluder. The same Frustum may be
// listed in several blocks at once; refs counts those listings.
type Frustum struct {
	frustum.Frustum
	userData any
	relevant bool
	refs     int
}

// NewFrustum returns a relevant shadow frustum with n zero vertices.
func NewFrustum(origin vec.Vec3, userData any, n int, backPlane *geom.Plane) *Frustum {
	return &Frustum{
		Frustum:  *frustum.NewSized(origin, n, backPlane),
		userData: userData,
		relevant: true,
	}
}

// UserData identifies the casting object.
func (s *Frustum) UserData() any {
	return s.userData
}

func (s *Frustum) SetUserData(ud any) {
	s.userData = ud
}

func (s *Frustum) IsRelevant() bool {
	return s.relevant
}

func (s *Frustum) MarkRelevant(r bool) {
	s.relevant = r
}

// CasterPlane returns the world space plane of the occluder, recovered from
// the back plane. ok is false for a shadow without a back plane.
func (s *Frustum) CasterPlane() (pl geom.Plane, ok bool) {
	bp := s.BackPlane()
	if bp == nil {
		return geom.Plane{}, false
	}
	pl = bp.Inverse()
	pl.D -= vec.Dot(pl.Normal, s.Origin())
	return pl, true
}

// Refs returns the number of blocks listing s.
func (s *Frustum) Refs() int {
	return s.refs
}

// Copy returns an unlisted deep copy.
func (s *Frustum) Copy() *Frustum {
	return &Frustum{
		Frustum:  *s.Frustum.Clone(),
		userData: s.userData,
		relevant: s.relevant,
	}
}

func (s *Frustum) incRef() {
	s.refs++
}

func (s *Frustum) decRef() {
	if s.refs <= 0 {
		panic("shadow: released an unreferenced shadow frustum")
	}
	s.refs--
}
