// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"gocs/frustum"
	"gocs/fview"
	"gocs/math/vec"
)

// Visibility is the result of VisibleSectors.
type Visibility struct {
	// Sectors in the order they were first entered.
	Sectors []*Sector
	// Visits counts every entry, including repeated ones.
	Visits   int
	MaxDepth int
	seen     map[*Sector]bool
}

func (v *Visibility) EnterSector(s *Sector, depth int) {
	v.Visits++
	if depth > v.MaxDepth {
		v.MaxDepth = depth
	}
	if !v.seen[s] {
		v.seen[s] = true
		v.Sectors = append(v.Sectors, s)
	}
}

// Contains reports whether s was reached.
func (v *Visibility) Contains(s *Sector) bool {
	return v.seen[s]
}

// VisibleSectors follows the portals visible from origin within radius,
// starting in s, without lighting anything.
func VisibleSectors(s *Sector, origin vec.Vec3, radius float32) *Visibility {
	vis := &Visibility{seen: make(map[*Sector]bool)}
	fv := fview.New(fview.VisitorFunc(followPortals))
	fv.SetRadius(radius)
	fv.SetUserData(vis)
	fv.Context().SetLightFrustum(frustum.NewWide(origin))
	s.CheckFrustum(fv)
	return vis
}

func followPortals(obj fview.Object, fv *fview.View, visible bool) {
	t, ok := obj.(*Thing)
	if !ok || !visible {
		return
	}
	origin := fv.Context().LightFrustum().Origin()
	for _, p := range t.polygons {
		if p.portal == nil || !p.plane.Visible(origin) {
			continue
		}
		p.portal.CheckFrustum(fv)
	}
}
