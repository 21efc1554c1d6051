// SPDX-License-Identifier: GPL-2.0-or-later

package lightmap

import (
	"fmt"

	"gocs/frustum"
	qmath "gocs/math"
	"gocs/math/vec"
	"gocs/shadow"
)

// MaxQuality bounds the probe grid to 16x16 per texel.
const MaxQuality = 4

// Coverage records which texels of a lightmap a light reaches, so the light
// can be applied once after all paths to the surface are known.
type Coverage struct {
	width  int
	height int
	state  []texelState
}

func NewCoverage(width, height int) *Coverage {
	return &Coverage{
		width:  width,
		height: height,
		state:  make([]texelState, width*height),
	}
}

func (c *Coverage) Width() int {
	return c.width
}

func (c *Coverage) Height() int {
	return c.height
}

func (c *Coverage) Lit(x, y int) bool {
	return c.state[y*c.width+x] == stateLit
}

func (c *Coverage) Shadowed(x, y int) bool {
	return c.state[y*c.width+x] == stateShadowed
}

// Merge combines o into c. A texel lit in either is lit.
func (c *Coverage) Merge(o *Coverage) {
	if o.width != c.width || o.height != c.height {
		panic(fmt.Sprintf("lightmap: merging %dx%d coverage into %dx%d", o.width, o.height, c.width, c.height))
	}
	for i, s := range o.state {
		if s > c.state[i] {
			c.state[i] = s
		}
	}
}

// Cover computes the coverage of the receiver. Each texel is probed on a
// grid of 2^quality by 2^quality points and is lit if any probe is.
func Cover(r Receiver, src Source, lf *frustum.Frustum, shadows *shadow.Iterator, quality int) *Coverage {
	quality = qmath.Clamp(0, quality, MaxQuality)
	n := 1 << quality
	offsets := make([]vec.Vec3, 0, n*n)
	for j := 0; j < n; j++ {
		fv := (float32(j)+0.5)/float32(n) - 0.5
		for i := 0; i < n; i++ {
			fu := (float32(i)+0.5)/float32(n) - 0.5
			offsets = append(offsets, vec.Add(r.Texels.UStep.Scale(fu), r.Texels.VStep.Scale(fv)))
		}
	}

	c := NewCoverage(r.Texels.Width(), r.Texels.Height())
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			pos := r.Texels.At(x, y).Pos
			best := stateOutside
			for _, off := range offsets {
				if s := r.test(vec.Add(pos, off), src, lf, shadows); s > best {
					best = s
					if best == stateLit {
						break
					}
				}
			}
			c.state[y*c.width+x] = best
		}
	}
	return c
}

// Apply lights every covered texel of the receiver.
func (c *Coverage) Apply(r Receiver, src Source) Stats {
	var st Stats
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			switch c.state[y*c.width+x] {
			case stateLit:
				if r.light(x, y, r.Texels.At(x, y), src) {
					st.Lit++
				} else {
					st.Outside++
				}
			case stateShadowed:
				st.Shadowed++
			default:
				st.Outside++
			}
		}
	}
	return st
}
