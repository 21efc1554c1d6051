// SPDX-License-Identifier: GPL-2.0-or-later

package shadow

import (
	"testing"

	"gocs/geom"
	"gocs/math/vec"
)

type caster struct {
	name string
}

func fill(s *Frustum, z float32) {
	s.SetVertex(0, vec.Vec3{X: -1, Y: -1, Z: z})
	s.SetVertex(1, vec.Vec3{X: -1, Y: 1, Z: z})
	s.SetVertex(2, vec.Vec3{X: 1, Y: 1, Z: z})
}

func newBlock(names ...string) (*Block, []*Frustum) {
	b := NewBlock(nil, 0)
	var fs []*Frustum
	for _, n := range names {
		s := b.AddShadow(vec.Vec3{}, &caster{n}, 3, nil)
		fill(s, 1)
		fs = append(fs, s)
	}
	return b, fs
}

func TestAddShadow(t *testing.T) {
	bp := geom.Plane{Normal: vec.Vec3{X: 0, Y: 0, Z: -1}, D: 1}
	b := NewBlock("sector", 2)
	s := b.AddShadow(vec.Vec3{X: 1, Y: 2, Z: 3}, "ud", 4, &bp)
	if b.Len() != 1 || b.Shadow(0) != s {
		t.Fatalf("AddShadow did not append")
	}
	if s.NumVertices() != 4 || s.Origin() != (vec.Vec3{X: 1, Y: 2, Z: 3}) || s.BackPlane() == nil {
		t.Errorf("AddShadow = %v", s)
	}
	if !s.IsRelevant() || s.UserData() != "ud" || s.Refs() != 1 {
		t.Errorf("new shadow: relevant %v, userData %v, refs %v", s.IsRelevant(), s.UserData(), s.Refs())
	}
	if b.Sector() != "sector" || b.RecursionLevel() != 2 {
		t.Errorf("block sector %v level %v", b.Sector(), b.RecursionLevel())
	}
}

func TestRelevanceFiltering(t *testing.T) {
	src, fs := newBlock("a", "b", "c", "d")
	fs[1].MarkRelevant(false)
	fs[3].MarkRelevant(false)
	dst := NewBlock(nil, 1)
	dst.AddRelevantShadows(src, nil)
	if dst.Len() != 2 {
		t.Fatalf("AddRelevantShadows added %v shadows, want 2", dst.Len())
	}
	srcUD := map[any]bool{}
	for _, s := range fs {
		srcUD[s.UserData()] = true
	}
	for i := 0; i < dst.Len(); i++ {
		if !srcUD[dst.Shadow(i).UserData()] {
			t.Errorf("userData %v not from source", dst.Shadow(i).UserData())
		}
		if !dst.Shadow(i).IsRelevant() {
			t.Errorf("irrelevant shadow copied")
		}
	}
}

func TestRefCountSafety(t *testing.T) {
	first, fs := newBlock("a")
	second := NewBlock(nil, 0)
	second.AddRelevantShadows(first, nil)
	s := fs[0]
	if s.Refs() != 2 {
		t.Errorf("Refs() = %v, want 2", s.Refs())
	}
	first.DeleteAllShadows()
	if second.Len() != 1 || second.Shadow(0) != s || s.Refs() != 1 {
		t.Fatalf("shadow lost after releasing the first block")
	}
	if !s.Contains(vec.Vec3{X: -0.5, Y: 0.5, Z: 2}) {
		t.Errorf("shared shadow no longer usable")
	}
	second.DeleteAllShadows()
	if s.Refs() != 0 {
		t.Errorf("Refs() = %v after releasing both blocks, want 0", s.Refs())
	}
}

func TestAddRelevantShadowsTransformed(t *testing.T) {
	src, fs := newBlock("a")
	m := geom.Reflection(geom.Plane{Normal: vec.Vec3{X: 0, Y: 0, Z: 1}, D: -10})
	dst := NewBlock(nil, 1)
	dst.AddRelevantShadows(src, &m)
	c := dst.Shadow(0)
	if c == fs[0] {
		t.Fatalf("transformed shadow is shared")
	}
	if fs[0].Refs() != 1 || c.Refs() != 1 {
		t.Errorf("refs source %v copy %v, want 1 1", fs[0].Refs(), c.Refs())
	}
	if fs[0].Origin() != (vec.Vec3{}) {
		t.Errorf("source moved to %v", fs[0].Origin())
	}
	if !vec.Near(c.Origin(), vec.Vec3{X: 0, Y: 0, Z: 20}, 1e-4) {
		t.Errorf("copy origin = %v, want (0,0,20)", c.Origin())
	}
	if !c.IsMirrored() || c.UserData() != fs[0].UserData() {
		t.Errorf("copy mirrored %v userData %v", c.IsMirrored(), c.UserData())
	}
}

func TestAddUniqueRelevantShadows(t *testing.T) {
	a, fa := newBlock("a", "b")
	l := NewList()
	l.AppendShadowBlock(a)
	b := l.NewShadowBlock(nil, 0)
	b.Append(fa[0])
	dst := NewBlock(nil, 0)
	dst.AddUniqueRelevantShadows(l)
	if dst.Len() != 2 {
		t.Errorf("AddUniqueRelevantShadows added %v shadows, want 2", dst.Len())
	}
	all := NewBlock(nil, 0)
	all.AddAllRelevantShadows(l, nil)
	if all.Len() != 3 {
		t.Errorf("AddAllRelevantShadows added %v shadows, want 3", all.Len())
	}
}

func TestListBlocks(t *testing.T) {
	l := NewList()
	if l.First() != nil || l.Last() != nil || l.RemoveLastShadowBlock() != nil {
		t.Fatalf("empty list not empty")
	}
	b1 := l.NewShadowBlock("s1", 0)
	b2 := l.NewShadowBlock("s2", 1)
	if l.First() != b1 || l.Last() != b2 || l.Len() != 2 {
		t.Fatalf("blocks not in order")
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("appending a listed block did not panic")
			}
		}()
		l.AppendShadowBlock(b1)
	}()
	if got := l.RemoveLastShadowBlock(); got != b2 || l.Len() != 1 {
		t.Errorf("RemoveLastShadowBlock() = %v", got)
	}
	other := NewList()
	other.AppendShadowBlock(b2)
	if other.Last() != b2 {
		t.Errorf("detached block could not be appended elsewhere")
	}
}

func TestRegions(t *testing.T) {
	l := NewList()
	old := l.NewShadowBlock(nil, 0)
	prev := l.MarkNewRegion()
	n1 := l.NewShadowBlock(nil, 0)
	n2 := l.NewShadowBlock(nil, 0)
	if l.FromCurrentRegion(old) || !l.FromCurrentRegion(n1) || !l.FromCurrentRegion(n2) {
		t.Fatalf("region membership wrong")
	}
	for l.Last() != nil && l.FromCurrentRegion(l.Last()) {
		l.RemoveLastShadowBlock()
	}
	l.RestoreRegion(prev)
	if l.Len() != 1 || l.Last() != old {
		t.Errorf("region removal left %v blocks", l.Len())
	}
	if !l.FromCurrentRegion(old) {
		t.Errorf("old block should be in the restored region")
	}
}

func names(it *Iterator) []string {
	var r []string
	for it.HasNext() {
		r = append(r, it.Next().UserData().(*caster).name)
	}
	return r
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testList() *List {
	l := NewList()
	b1, _ := newBlock("a", "b")
	b2, _ := newBlock()
	b3, _ := newBlock("c")
	b4, _ := newBlock("d", "e")
	for _, b := range []*Block{b1, b2, b3, b4} {
		l.AppendShadowBlock(b)
	}
	return l
}

func TestIterator(t *testing.T) {
	l := testList()
	if got, want := names(l.Iterator(false)), []string{"a", "b", "c", "d", "e"}; !equal(got, want) {
		t.Errorf("forward = %v, want %v", got, want)
	}
	if got, want := names(l.Iterator(true)), []string{"e", "d", "c", "b", "a"}; !equal(got, want) {
		t.Errorf("backward = %v, want %v", got, want)
	}
	it := l.First().Iterator(false)
	if got, want := names(it), []string{"a", "b"}; !equal(got, want) {
		t.Errorf("block = %v, want %v", got, want)
	}
	if it.Next() != nil {
		t.Errorf("Next past the end should be nil")
	}
	it.Reset()
	if got := names(it); len(got) != 2 {
		t.Errorf("after Reset = %v", got)
	}
	if n := names(NewList().Iterator(true)); len(n) != 0 {
		t.Errorf("empty list iterated %v", n)
	}
}

func TestIteratorDelete(t *testing.T) {
	for _, reverse := range []bool{false, true} {
		l := testList()
		it := l.Iterator(reverse)
		var seen []string
		for it.HasNext() {
			s := it.Next()
			n := s.UserData().(*caster).name
			seen = append(seen, n)
			if n == "b" || n == "c" || n == "d" {
				it.DeleteCurrent()
				if s.Refs() != 0 {
					t.Errorf("deleted shadow still referenced")
				}
			}
		}
		if len(seen) != 5 {
			t.Errorf("reverse %v: visited %v, want all 5", reverse, seen)
		}
		if got, want := names(l.Iterator(false)), []string{"a", "e"}; !equal(got, want) {
			t.Errorf("reverse %v: remaining %v, want %v", reverse, got, want)
		}
	}
}

func TestIteratorRelevance(t *testing.T) {
	l := testList()
	it := l.Iterator(false)
	if it.UserData() != nil || it.IsRelevant() {
		t.Errorf("accessors before Next should be empty")
	}
	for it.HasNext() {
		it.Next()
		if it.UserData().(*caster).name == "c" {
			it.MarkRelevant(false)
		}
	}
	dst := NewBlock(nil, 0)
	dst.AddAllRelevantShadows(l, nil)
	if dst.Len() != 4 {
		t.Errorf("relevant shadows = %v, want 4", dst.Len())
	}
	if l.NumShadows() != 5 {
		t.Errorf("NumShadows() = %v, want 5", l.NumShadows())
	}
	l.DeleteAllShadows()
	if l.Len() != 0 || l.NumShadows() != 0 {
		t.Errorf("DeleteAllShadows left %v blocks", l.Len())
	}
}

func TestCasterPlane(t *testing.T) {
	world := geom.Plane{Normal: vec.Vec3{X: 0, Y: 0, Z: 1}, D: -5}
	origin := vec.Vec3{X: 1, Y: 2, Z: 3}
	bp := world.Relative(origin).Inverse()
	s := NewFrustum(origin, nil, 3, &bp)
	pl, ok := s.CasterPlane()
	if !ok || pl != world {
		t.Errorf("CasterPlane() = %v, %v, want %v", pl, ok, world)
	}
	if _, ok := NewFrustum(origin, nil, 3, nil).CasterPlane(); ok {
		t.Errorf("CasterPlane() without back plane reported ok")
	}
}
