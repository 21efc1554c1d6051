// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"gocs/frustum"
	"gocs/fview"
	"gocs/geom"
	"gocs/math/vec"
	"gocs/shadow"
)

const eps = 1e-4

// quad returns a square at height z that is lit from below.
func quad(a, z float32) []vec.Vec3 {
	return []vec.Vec3{
		{X: -a, Y: -a, Z: z},
		{X: -a, Y: a, Z: z},
		{X: a, Y: a, Z: z},
		{X: a, Y: -a, Z: z},
	}
}

func winding(v []vec.Vec3) float32 {
	return vec.Dot(v[0], vec.Cross(v[1], v[2]))
}

// twoSectors returns sectors a and b with a portal from a to b at z = 0.
func twoSectors(cfg Config) (*World, *Sector, *Sector, *Portal) {
	w := New(cfg)
	a := w.NewSector("a")
	b := w.NewSector("b")
	p := a.NewThing("walls").AddPortal(quad(1, 0), b)
	return w, a, b, p
}

func TestNewSector(t *testing.T) {
	w := New(DefaultConfig())
	a := w.NewSector("a")
	if w.NewSector("a") != a {
		t.Errorf("NewSector(a) twice created two sectors")
	}
	if w.Sector("a") != a || w.Sector("b") != nil {
		t.Errorf("Sector lookup failed")
	}
	if len(w.Sectors()) != 1 {
		t.Errorf("len(Sectors()) = %v, want 1", len(w.Sectors()))
	}
}

func TestCyclicPortalBound(t *testing.T) {
	for r := 0; r < 4; r++ {
		cfg := DefaultConfig()
		cfg.Reflections = r
		_, a, b, _ := twoSectors(cfg)
		b.NewThing("walls").AddPortal(quad(0.5, 1), a)

		vis := VisibleSectors(a, vec.Vec3{Z: -5}, 100)
		if want := 2 * (r + 1); vis.Visits != want {
			t.Errorf("Reflections %v: Visits = %v, want %v", r, vis.Visits, want)
		}
		if len(vis.Sectors) != 2 || !vis.Contains(a) || !vis.Contains(b) {
			t.Errorf("Reflections %v: Sectors = %v", r, vis.Sectors)
		}
		if a.RecursionLevel() != 0 || b.RecursionLevel() != 0 {
			t.Errorf("recursion levels not reset: %v, %v", a.RecursionLevel(), b.RecursionLevel())
		}
	}
}

func TestPortalFacingAway(t *testing.T) {
	w := New(DefaultConfig())
	a := w.NewSector("a")
	b := w.NewSector("b")
	a.NewThing("walls").AddPortal(geom.Reversed(quad(1, 0)), b)
	vis := VisibleSectors(a, vec.Vec3{Z: -5}, 100)
	if vis.Contains(b) {
		t.Errorf("entered a sector through a portal facing away")
	}
	if vis.Visits != 1 {
		t.Errorf("Visits = %v, want 1", vis.Visits)
	}
}

func TestPortalOutOfRadius(t *testing.T) {
	_, a, b, _ := twoSectors(DefaultConfig())
	vis := VisibleSectors(a, vec.Vec3{Z: -5}, 3)
	if vis.Contains(b) {
		t.Errorf("entered a sector through a portal beyond the radius")
	}
}

func TestMissingSector(t *testing.T) {
	w := New(DefaultConfig())
	a := w.NewSector("a")
	b := w.NewSector("b")
	p := a.NewThing("walls").AddPortal(quad(1, 0), nil)

	asked := 0
	p.AddMissingSectorCallback(func(p *Portal, fv *fview.View) bool {
		asked++
		return false
	})
	if vis := VisibleSectors(a, vec.Vec3{Z: -5}, 100); vis.Contains(b) || asked != 1 {
		t.Errorf("unresolved portal: Contains(b) = %v, asked %v", vis.Contains(b), asked)
	}

	p.AddMissingSectorCallback(func(p *Portal, fv *fview.View) bool {
		p.SetTarget(b)
		return true
	})
	if vis := VisibleSectors(a, vec.Vec3{Z: -5}, 100); !vis.Contains(b) {
		t.Errorf("portal resolved by callback was not followed")
	}
	if p.Target() != b {
		t.Errorf("Target() = %v, want b", p.Target())
	}
}

func TestSectorCallbacks(t *testing.T) {
	_, a, b, _ := twoSectors(DefaultConfig())
	var got []string
	cb := func(s *Sector, fv *fview.View) {
		got = append(got, s.Name())
	}
	a.AddCallback(cb)
	b.AddCallback(cb)
	VisibleSectors(a, vec.Vec3{Z: -5}, 100)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("callbacks ran for %v, want [a b]", got)
	}
}

func TestMirrorPortal(t *testing.T) {
	_, a, b, p := twoSectors(DefaultConfig())
	p.SetMirror()
	if !p.HasFlag(PortalWarp) || !p.HasFlag(PortalMirror) {
		t.Fatalf("Flags() = %v, want warp and mirror", p.Flags())
	}
	b.NewThing("floor").AddPolygon(geom.Reversed(quad(3, -4)))

	origin := vec.Vec3{Z: -5}
	var seen *fview.Context
	var lf *frustum.Frustum
	fv := fview.New(fview.VisitorFunc(func(obj fview.Object, fv *fview.View, visible bool) {
		if th := obj.(*Thing); th.Sector() == b {
			seen = fv.Context()
			lf = seen.LightFrustum().Clone()
		}
		followPortals(obj, fv, visible)
	}))
	fv.SetRadius(100)
	fv.Context().SetLightFrustum(frustum.NewWide(origin))
	a.CheckFrustum(fv)

	if seen == nil {
		t.Fatalf("sector b was not visited")
	}
	if !seen.IsMirrored() || !lf.IsMirrored() {
		t.Errorf("mirrored = %v, %v, want true", seen.IsMirrored(), lf.IsMirrored())
	}
	if fv.Context().IsMirrored() {
		t.Errorf("root context became mirrored")
	}
	if !vec.Near(lf.Origin(), vec.Vec3{Z: 5}, eps) {
		t.Errorf("warped origin = %v, want (0,0,5)", lf.Origin())
	}
	before := winding(geom.RelativeTo(quad(1, 0), origin, false))
	after := winding(lf.Vertices())
	if before*after >= 0 {
		t.Errorf("winding %v became %v, want the sign reversed", before, after)
	}
	if c, r := fv.Balance(); c != r || c != 1 {
		t.Errorf("Balance() = %v, %v, want 1, 1", c, r)
	}
}

func TestWorldWarp(t *testing.T) {
	w := New(DefaultConfig())
	a := w.NewSector("a")
	th := a.NewThing("door")
	p := th.AddPortal(quad(1, 0), a)
	if got := p.WarpSpace(vec.Vec3{X: 1}); got != (vec.Vec3{X: 1}) {
		t.Errorf("WarpSpace without warp = %v", got)
	}

	rot := geom.NewTransform(mgl32.Rotate3DZ(math.Pi/2), vec.Vec3{})
	p.SetWarp(rot)
	if p.HasFlag(PortalMirror) {
		t.Errorf("rotation flagged as mirror")
	}
	th.SetTransform(geom.Translation(vec.Vec3{X: 10}))

	tests := []struct {
		static bool
		want   vec.Vec3
	}{
		{false, vec.Vec3{X: 10, Y: 1}},
		{true, vec.Vec3{Y: 1}},
	}
	for _, tc := range tests {
		f := PortalWarp
		if tc.static {
			f |= PortalStaticDest
		}
		p.SetFlags(f)
		if got := p.WarpSpace(vec.Vec3{X: 11}); !vec.Near(got, tc.want, eps) {
			t.Errorf("static %v: WarpSpace((11,0,0)) = %v, want %v", tc.static, got, tc.want)
		}
	}
}

func TestPortalFilter(t *testing.T) {
	_, a, b, p := twoSectors(DefaultConfig())
	b.NewThing("floor").AddPolygon(quad(3, 4))

	run := func() (*fview.LightingInfo, *fview.View) {
		var got *fview.LightingInfo
		fv := fview.New(fview.VisitorFunc(func(obj fview.Object, fv *fview.View, visible bool) {
			if obj.(*Thing).Sector() == b {
				li := *fv.Context().Lighting()
				got = &li
			}
			followPortals(obj, fv, visible)
		}))
		fv.SetRadius(100)
		fv.Context().SetLightFrustum(frustum.NewWide(vec.Vec3{Z: -5}))
		fv.Context().SetLighting(fview.LightingInfo{Color: vec.Vec3{X: 1, Y: 1, Z: 1}})
		a.CheckFrustum(fv)
		return got, fv
	}

	p.SetFilter(vec.Vec3{X: 0.5, Y: 1, Z: 0})
	got, fv := run()
	if got == nil {
		t.Fatalf("sector b not lit through a filter")
	}
	if !vec.Near(got.Color, vec.Vec3{X: 0.5, Y: 1}, eps) {
		t.Errorf("filtered color = %v, want (0.5,1,0)", got.Color)
	}
	if c := fv.Context().Lighting().Color; c != (vec.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("root color changed to %v", c)
	}

	p.SetFilter(vec.Vec3{})
	if got, _ := run(); got != nil {
		t.Errorf("light passed a black filter")
	}
}

func TestAppendShadows(t *testing.T) {
	w := New(DefaultConfig())
	s := w.NewSector("s")
	th := s.NewThing("box")
	front := th.AddPolygon(quad(1, 2.5))
	th.AddPolygon(geom.Reversed(quad(1, 3)))
	th.AddPortal(quad(1, 2), s)

	l := shadow.NewList()
	if n := th.AppendShadows(l, vec.Vec3{}); n != 1 {
		t.Fatalf("AppendShadows = %v, want 1", n)
	}
	sh := l.First().Shadow(0)
	if sh.UserData() != front {
		t.Errorf("UserData() = %v, want %v", sh.UserData(), front)
	}
	if !sh.Contains(vec.Vec3{Z: 4}) {
		t.Errorf("point behind the occluder not in shadow")
	}
	if sh.Contains(vec.Vec3{Z: 2}) {
		t.Errorf("point in front of the occluder in shadow")
	}
	if sh.Contains(vec.Vec3{X: 3, Z: 4}) {
		t.Errorf("point beside the occluder in shadow")
	}
	if cp, ok := sh.CasterPlane(); !ok || !geom.PlanesClose(cp, front.Plane()) {
		t.Errorf("CasterPlane() = %v, %v, want %v", cp, ok, front.Plane())
	}

	// seen from above nothing faces the light but the reversed polygon
	l2 := shadow.NewList()
	if n := th.AppendShadows(l2, vec.Vec3{Z: 10}); n != 1 {
		t.Errorf("AppendShadows from above = %v, want 1", n)
	}
	if n := th.AppendShadows(shadow.NewList(), vec.Vec3{Z: 2.5}); n != 0 {
		t.Errorf("AppendShadows from the occluder plane = %v, want 0", n)
	}
}

func TestCullerShadows(t *testing.T) {
	w := New(DefaultConfig())
	s := w.NewSector("s")
	occ := s.NewThing("occluder")
	occ.AddPolygon(quad(1, 2.5))
	floor := s.NewThing("floor")
	floor.AddPolygon(quad(4, 5))

	var order []string
	var shadows []int
	fv := fview.New(fview.VisitorFunc(func(obj fview.Object, fv *fview.View, visible bool) {
		order = append(order, obj.(*Thing).Name())
		shadows = append(shadows, fv.Context().Shadows().NumShadows())
	}))
	fv.SetRadius(100)
	fv.EnableThingShadows(true)
	fv.SetShadowMask(FlagNoShadows, 0)
	fv.Context().SetLightFrustum(frustum.NewWide(vec.Vec3{}))
	s.CheckFrustum(fv)

	if len(order) != 2 || order[0] != "occluder" || order[1] != "floor" {
		t.Errorf("visit order = %v, want [occluder floor]", order)
	}
	for i, n := range shadows {
		if n != 2 {
			t.Errorf("visit %v saw %v shadows, want 2", i, n)
		}
	}
	if l := fv.Context().Shadows(); l.Len() != 0 {
		t.Errorf("%v shadow blocks left after the sector", l.Len())
	}

	floor.SetFlags(FlagNoShadows)
	shadows = shadows[:0]
	s.CheckFrustum(fv)
	if len(shadows) != 2 || shadows[0] != 1 {
		t.Errorf("with a non casting floor saw %v shadows, want 1", shadows)
	}

	floor.SetFlags(FlagNoLighting)
	fv.SetProcessMask(FlagNoLighting, 0)
	order = order[:0]
	s.CheckFrustum(fv)
	if len(order) != 1 || order[0] != "occluder" {
		t.Errorf("visited %v, want only the occluder", order)
	}
}

func TestMarkRelevantShadowFrustums(t *testing.T) {
	origin := vec.Vec3{}
	lf := frustum.NewPoly(origin, quad(1, 5), nil)
	portal := geom.PolyPlane(quad(1, 5))

	add := func(b *shadow.Block, poly []vec.Vec3) *shadow.Frustum {
		bp := geom.PolyPlane(poly).Relative(origin).Inverse()
		s := b.AddShadow(origin, nil, len(poly), &bp)
		for i, v := range poly {
			s.SetVertex(i, v)
		}
		return s
	}

	l := shadow.NewList()
	b := l.NewShadowBlock(nil, 0)
	inside := add(b, quad(0.3, 2.5))
	outside := add(b, []vec.Vec3{
		{X: 9, Y: -1, Z: 2.5},
		{X: 9, Y: 1, Z: 2.5},
		{X: 11, Y: 1, Z: 2.5},
		{X: 11, Y: -1, Z: 2.5},
	})
	coplanar := add(b, quad(0.3, 5))

	if !MarkRelevantShadowFrustums(l, lf, portal) {
		t.Fatalf("MarkRelevantShadowFrustums reported the portal covered")
	}
	if !inside.IsRelevant() {
		t.Errorf("shadow inside the portal not relevant")
	}
	if outside.IsRelevant() {
		t.Errorf("shadow outside the portal relevant")
	}
	if coplanar.IsRelevant() {
		t.Errorf("shadow in the portal plane relevant")
	}

	// two corners on the side plane x = z/5
	edge := add(b, []vec.Vec3{
		{X: 0.25, Z: 2.5},
		{X: 0.5, Y: 0.25, Z: 2.5},
		{X: 0.75, Z: 2.5},
		{X: 0.5, Y: -0.25, Z: 2.5},
	})
	MarkRelevantShadowFrustums(l, lf, portal)
	if !edge.IsRelevant() {
		t.Errorf("shadow crossing the portal edge through its corners not relevant")
	}

	add(b, quad(3, 2.5))
	if MarkRelevantShadowFrustums(l, lf, portal) {
		t.Errorf("covering shadow did not stop propagation")
	}

	far := shadow.NewList()
	beyond := add(far.NewShadowBlock(nil, 0), quad(3, 7))
	if !MarkRelevantShadowFrustums(far, lf, portal) {
		t.Errorf("covering shadow beyond the portal stopped propagation")
	}
	if !beyond.IsRelevant() {
		t.Errorf("covering shadow beyond the portal not relevant")
	}
}

func TestShadowsThroughPortal(t *testing.T) {
	_, a, b, _ := twoSectors(DefaultConfig())
	occ := a.NewThing("occluder")
	occ.AddPolygon(quad(0.2, -2))
	floor := b.NewThing("floor")
	floor.AddPolygon(quad(3, 4))
	floor.SetFlags(FlagNoShadows)

	got := -1
	fv := fview.New(fview.VisitorFunc(func(obj fview.Object, fv *fview.View, visible bool) {
		if obj.(*Thing).Sector() == b {
			got = fv.Context().Shadows().NumShadows()
		}
		followPortals(obj, fv, visible)
	}))
	fv.SetRadius(100)
	fv.EnableThingShadows(true)
	fv.SetShadowMask(FlagNoShadows, 0)
	fv.Context().SetLightFrustum(frustum.NewWide(vec.Vec3{Z: -5}))
	a.CheckFrustum(fv)
	if got != 1 {
		t.Errorf("sector b saw %v shadows, want 1", got)
	}
}

func TestSetupLightmaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CellSize = 0.5
	w, _, b, _ := twoSectors(cfg)
	floor := b.NewThing("floor").AddPolygon(quad(1, 4))
	if n := w.SetupLightmaps(); n != 1 {
		t.Errorf("SetupLightmaps() = %v, want 1", n)
	}
	lm := floor.Lightmap()
	if lm == nil || lm.Width() != 4 || lm.Height() != 4 {
		t.Fatalf("floor lightmap = %v", lm)
	}
	if floor.Receiver().ID != floor {
		t.Errorf("Receiver().ID is not the polygon")
	}
	if floor.Name() != "b_floor_0" {
		t.Errorf("Name() = %q", floor.Name())
	}
}
