// SPDX-License-Identifier: GPL-2.0-or-later

package lightmap

import (
	"github.com/chewxy/math32"

	"gocs/geom"
	"gocs/math/vec"
)

// Texel is the world position of a texel centre and the normal of the lit
// side of its surface.
type Texel struct {
	Pos    vec.Vec3
	Normal vec.Vec3
}

// TexelTable maps the texels of one lightmap to world space.
type TexelTable struct {
	width  int
	height int
	texels []Texel
	// UStep and VStep span one texel.
	UStep vec.Vec3
	VStep vec.Vec3
}

// NewTexelTable lays a grid of cellSize sized texels over the polygon poly
// with plane pl. The u axis runs along the first edge and v is
// normal x u, where normal faces the visible side of pl.
func NewTexelTable(poly []vec.Vec3, pl geom.Plane, cellSize float32) *TexelTable {
	front := pl.Normal.Normalize().Neg()
	u := vec.Sub(poly[1], poly[0]).Normalize()
	v := vec.Cross(front, u)

	minU, minV := float32(math32.MaxFloat32), float32(math32.MaxFloat32)
	maxU, maxV := -minU, -minV
	for _, p := range poly {
		d := vec.Sub(p, poly[0])
		du, dv := vec.Dot(d, u), vec.Dot(d, v)
		minU, maxU = math32.Min(minU, du), math32.Max(maxU, du)
		minV, maxV = math32.Min(minV, dv), math32.Max(maxV, dv)
	}
	w := int(math32.Ceil((maxU - minU) / cellSize))
	h := int(math32.Ceil((maxV - minV) / cellSize))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	t := &TexelTable{
		width:  w,
		height: h,
		texels: make([]Texel, w*h),
		UStep:  u.Scale(cellSize),
		VStep:  v.Scale(cellSize),
	}
	base := vec.Add(poly[0], vec.Add(u.Scale(minU), v.Scale(minV)))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := vec.Add(base, vec.Add(
				t.UStep.Scale(float32(x)+0.5),
				t.VStep.Scale(float32(y)+0.5)))
			t.texels[y*w+x] = Texel{Pos: pos, Normal: front}
		}
	}
	return t
}

func (t *TexelTable) Width() int {
	return t.width
}

func (t *TexelTable) Height() int {
	return t.height
}

func (t *TexelTable) At(x, y int) Texel {
	return t.texels[y*t.width+x]
}

// NewMap returns an empty lightmap matching the table.
func (t *TexelTable) NewMap() *Map {
	return New(t.width, t.height)
}
