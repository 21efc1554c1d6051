// SPDX-License-Identifier: GPL-2.0-or-later

package shadow

import (
	"gocs/geom"
	"gocs/math/vec"
)

// Block is an ordered group of shadows collected at one sector and
// recursion level.
type Block struct {
	shadows  []*Frustum
	sector   any
	recLevel int
	list     *List
	region   uint32
}

// NewBlock returns a block not yet in any list. sector is used for lookup
// only.
func NewBlock(sector any, recLevel int) *Block {
	return &Block{sector: sector, recLevel: recLevel}
}

func (b *Block) Sector() any {
	return b.sector
}

func (b *Block) RecursionLevel() int {
	return b.recLevel
}

func (b *Block) Len() int {
	return len(b.shadows)
}

func (b *Block) Shadow(i int) *Frustum {
	return b.shadows[i]
}

// AddShadow appends a new shadow with n vertices for the caller to fill.
func (b *Block) AddShadow(origin vec.Vec3, userData any, n int, backPlane *geom.Plane) *Frustum {
	s := NewFrustum(origin, userData, n, backPlane)
	b.Append(s)
	return s
}

// Append shares s with this block.
func (b *Block) Append(s *Frustum) {
	s.incRef()
	b.shadows = append(b.shadows, s)
}

// UnlinkShadow removes the shadow at i from the block.
func (b *Block) UnlinkShadow(i int) {
	b.shadows[i].decRef()
	copy(b.shadows[i:], b.shadows[i+1:])
	b.shadows[len(b.shadows)-1] = nil
	b.shadows = b.shadows[:len(b.shadows)-1]
}

// DeleteAllShadows releases every shadow of the block.
func (b *Block) DeleteAllShadows() {
	for i, s := range b.shadows {
		s.decRef()
		b.shadows[i] = nil
	}
	b.shadows = b.shadows[:0]
}

// AddRelevantShadows adds the relevant shadows of src. Without a transform
// the shadows are shared, otherwise transformed copies are added.
func (b *Block) AddRelevantShadows(src *Block, t *geom.Transform) {
	for _, s := range src.shadows {
		if !s.relevant {
			continue
		}
		if t == nil {
			b.Append(s)
			continue
		}
		c := s.Copy()
		c.Transform(*t)
		if t.Mirrors() {
			c.SetMirrored(!c.IsMirrored())
		}
		b.Append(c)
	}
}

// AddAllRelevantShadows is AddRelevantShadows for every block of src.
func (b *Block) AddAllRelevantShadows(src *List, t *geom.Transform) {
	for _, sb := range src.blocks {
		b.AddRelevantShadows(sb, t)
	}
}

func (b *Block) hasUserData(ud any) bool {
	for _, s := range b.shadows {
		if s.userData == ud {
			return true
		}
	}
	return false
}

// AddUniqueRelevantShadows shares the relevant shadows of src whose caster
// is not yet represented in b. Shadows without userData are always added.
// userData values must be comparable.
func (b *Block) AddUniqueRelevantShadows(src *List) {
	for _, sb := range src.blocks {
		for _, s := range sb.shadows {
			if !s.relevant {
				continue
			}
			if s.userData != nil && b.hasUserData(s.userData) {
				continue
			}
			b.Append(s)
		}
	}
}

// Iterator returns an iterator over the shadows of this block.
func (b *Block) Iterator(reverse bool) *Iterator {
	it := &Iterator{single: b, reverse: reverse}
	it.Reset()
	return it
}
