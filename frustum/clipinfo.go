// SPDX-License-Identifier: GPL-2.0-or-later

package frustum

import (
	"fmt"
)

type ClipKind uint8

const (
	ClipUndefined ClipKind = iota
	// ClipOriginal refers to a vertex of the source polygon.
	ClipOriginal
	// ClipOnEdge interpolates between two source vertices.
	ClipOnEdge
	// ClipInside interpolates between two other clip infos.
	ClipInside
)

// ClipInfo records where a vertex of a clipped polygon came from so that
// attributes of the source polygon can be interpolated for it later.
type ClipInfo struct {
	Kind ClipKind
	// Index is set for ClipOriginal.
	Index int
	// I1 and I2 are set for ClipOnEdge.
	I1, I2 int
	// R is the interpolation factor for ClipOnEdge and ClipInside.
	R float32
	// Left and Right are owned by a ClipInside node.
	Left, Right *ClipInfo
}

func NewOriginal(idx int) ClipInfo {
	return ClipInfo{Kind: ClipOriginal, Index: idx}
}

func NewOnEdge(i1, i2 int, r float32) ClipInfo {
	return ClipInfo{Kind: ClipOnEdge, I1: i1, I2: i2, R: r}
}

// NewInside returns a node owning deep copies of left and right.
func NewInside(left, right ClipInfo, r float32) ClipInfo {
	l := left.Copy()
	rr := right.Copy()
	return ClipInfo{Kind: ClipInside, Left: &l, Right: &rr, R: r}
}

// OriginalInfos returns one ClipOriginal per vertex of an n-gon.
func OriginalInfos(n int) []ClipInfo {
	ci := make([]ClipInfo, n)
	for i := range ci {
		ci[i] = NewOriginal(i)
	}
	return ci
}

// Copy returns a deep copy.
func (c ClipInfo) Copy() ClipInfo {
	if c.Kind != ClipInside {
		c.Left, c.Right = nil, nil
		return c
	}
	l := c.Left.Copy()
	r := c.Right.Copy()
	c.Left, c.Right = &l, &r
	return c
}

// Depth returns the height of the interpolation tree.
func (c ClipInfo) Depth() int {
	if c.Kind != ClipInside {
		return 1
	}
	return 1 + max(c.Left.Depth(), c.Right.Depth())
}

func (c ClipInfo) String() string {
	switch c.Kind {
	case ClipOriginal:
		return fmt.Sprintf("orig(%d)", c.Index)
	case ClipOnEdge:
		return fmt.Sprintf("edge(%d,%d,%.3f)", c.I1, c.I2, c.R)
	case ClipInside:
		return fmt.Sprintf("inside(%v,%v,%.3f)", *c.Left, *c.Right, c.R)
	}
	return "undefined"
}

// interpolate returns the info of the point at fraction r from a to b.
func interpolate(a, b ClipInfo, r float32) ClipInfo {
	if a.Kind == ClipOriginal && b.Kind == ClipOriginal {
		return NewOnEdge(a.Index, b.Index, r)
	}
	return NewInside(a, b, r)
}

// Resolve reconstructs the attribute for the vertex described by c from the
// attributes of the source polygon.
func Resolve[T any](c ClipInfo, orig []T, lerp func(a, b T, r float32) T) T {
	switch c.Kind {
	case ClipOriginal:
		return orig[c.Index]
	case ClipOnEdge:
		return lerp(orig[c.I1], orig[c.I2], c.R)
	case ClipInside:
		return lerp(Resolve(*c.Left, orig, lerp), Resolve(*c.Right, orig, lerp), c.R)
	}
	panic(fmt.Sprintf("frustum: resolve of %v", c))
}
