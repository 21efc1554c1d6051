// SPDX-License-Identifier: GPL-2.0-or-later

package fview

import (
	"testing"

	"gocs/frustum"
	"gocs/math/vec"
)

type flagObject uint32

func (f flagObject) Flags() uint32 {
	return uint32(f)
}

func TestRootContext(t *testing.T) {
	v := New(nil)
	if v.Depth() != 0 {
		t.Errorf("Depth() = %v, want 0", v.Depth())
	}
	c := v.Context()
	if !c.IsFirstTime() {
		t.Errorf("root context is not first time")
	}
	if c.IsShared() || c.Shadows() == nil {
		t.Errorf("root context must own a shadow list")
	}
}

func TestCreateRestoreBalance(t *testing.T) {
	v := New(nil)
	root := v.Context()
	root.SetLighting(LightingInfo{Color: vec.Vec3{X: 1, Y: 1, Z: 1}})
	root.SetMirrored(true)

	saved := v.CreateFrustumContext()
	if saved != root {
		t.Fatalf("CreateFrustumContext did not return the parent")
	}
	child := v.Context()
	if v.Depth() != 1 {
		t.Errorf("Depth() = %v, want 1", v.Depth())
	}
	if !child.IsShared() || child.Shadows() != root.Shadows() {
		t.Errorf("child does not share the parent's shadows")
	}
	if !child.IsMirrored() {
		t.Errorf("child lost the mirrored flag")
	}
	if child.IsFirstTime() {
		t.Errorf("child is first time")
	}
	if child.LightFrustum() != nil {
		t.Errorf("child inherited a light frustum")
	}
	child.Lighting().Color = vec.Vec3{X: 0.5}
	if root.Lighting().Color.X != 1 || root.Lighting().Color.Y != 1 {
		t.Errorf("changing the child's lighting changed the parent: %v", root.Lighting().Color)
	}

	s2 := v.CreateFrustumContext()
	v.RestoreFrustumContext(s2)
	v.RestoreFrustumContext(saved)
	if v.Context() != root {
		t.Errorf("restore did not return to the root")
	}
	c, r := v.Balance()
	if c != 2 || r != 2 {
		t.Errorf("Balance() = %v, %v, want 2, 2", c, r)
	}
}

func TestRestoreSkipsLevels(t *testing.T) {
	v := New(nil)
	saved := v.CreateFrustumContext()
	v.CreateFrustumContext()
	v.CreateFrustumContext()
	v.RestoreFrustumContext(saved)
	if v.Depth() != 0 {
		t.Errorf("Depth() = %v, want 0", v.Depth())
	}
}

func TestRestoreUnknownPanics(t *testing.T) {
	v := New(nil)
	defer func() {
		if recover() == nil {
			t.Errorf("restoring a foreign context did not panic")
		}
	}()
	v.RestoreFrustumContext(&Context{})
}

func TestCleanupOrder(t *testing.T) {
	v := New(nil)
	saved := v.CreateFrustumContext()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		v.Context().AddCleanup(CleanupFunc(func(fv *View, ctx *Context) {
			order = append(order, i)
		}))
	}
	v.RestoreFrustumContext(saved)
	want := []int{2, 1, 0}
	if len(order) != len(want) {
		t.Fatalf("ran %v cleanups, want %v", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("cleanup order = %v, want %v", order, want)
			break
		}
	}
}

func TestStartNewShadowBlock(t *testing.T) {
	v := New(nil)
	root := v.Context()
	root.Shadows().NewShadowBlock(nil, 0).AddShadow(vec.Vec3{}, "root", 3, nil)

	saved := v.CreateFrustumContext()
	b := v.StartNewShadowBlock()
	ctx := v.Context()
	if ctx.IsShared() || ctx.Shadows() == root.Shadows() {
		t.Fatalf("StartNewShadowBlock did not give the context its own list")
	}
	if b.RecursionLevel() != 1 {
		t.Errorf("RecursionLevel() = %v, want 1", b.RecursionLevel())
	}
	b.AddRelevantShadows(root.Shadows().First(), nil)
	shared := root.Shadows().First().Shadow(0)
	if shared.Refs() != 2 {
		t.Errorf("Refs() = %v, want 2", shared.Refs())
	}
	again := v.StartNewShadowBlock()
	if ctx.Shadows().Len() != 2 || again == b {
		t.Errorf("second block was not appended to the owned list")
	}
	v.RestoreFrustumContext(saved)
	if shared.Refs() != 1 {
		t.Errorf("after restore Refs() = %v, want 1", shared.Refs())
	}
	if root.Shadows().NumShadows() != 1 {
		t.Errorf("restore changed the parent's shadows")
	}
}

func TestMasks(t *testing.T) {
	v := New(nil)
	v.SetShadowMask(0x1, 0)
	v.SetProcessMask(0x6, 0x2)
	tests := []struct {
		flags  uint32
		shadow bool
		proc   bool
	}{
		{0, true, false},
		{0x1, false, false},
		{0x2, true, true},
		{0x3, false, true},
		{0x6, true, false},
	}
	for _, tc := range tests {
		if got := v.CheckShadowMask(tc.flags); got != tc.shadow {
			t.Errorf("CheckShadowMask(%#x) = %v, want %v", tc.flags, got, tc.shadow)
		}
		if got := v.CheckProcessMask(tc.flags); got != tc.proc {
			t.Errorf("CheckProcessMask(%#x) = %v, want %v", tc.flags, got, tc.proc)
		}
	}
}

func TestCallObjectFunction(t *testing.T) {
	var got []uint32
	v := New(VisitorFunc(func(obj Object, fv *View, visible bool) {
		if !visible {
			t.Errorf("visitor called with visible = false")
		}
		got = append(got, obj.Flags())
	}))
	v.CallObjectFunction(flagObject(7), true)
	v.CallObjectFunction(flagObject(9), true)
	if len(got) != 2 || got[0] != 7 || got[1] != 9 {
		t.Errorf("visited %v, want [7 9]", got)
	}
	New(nil).CallObjectFunction(flagObject(1), true)
}

func TestRadius(t *testing.T) {
	v := New(nil)
	v.SetRadius(4)
	if v.Radius() != 4 || v.SquaredRadius() != 16 {
		t.Errorf("Radius() = %v, SquaredRadius() = %v", v.Radius(), v.SquaredRadius())
	}
}

func TestLightFrustumLocal(t *testing.T) {
	v := New(nil)
	f := frustum.NewWide(vec.Vec3{})
	v.Context().SetLightFrustum(f)
	saved := v.CreateFrustumContext()
	v.Context().SetLightFrustum(frustum.New(vec.Vec3{}))
	v.RestoreFrustumContext(saved)
	if v.Context().LightFrustum() != f {
		t.Errorf("child light frustum leaked into the parent")
	}
}
