// SPDX-License-Identifier: GPL-2.0-or-later

// Package lightmap holds per surface lightmaps and the driver that lights
// their texels from a point light through a light frustum and its shadows.
package lightmap

import (
	"image"
	"image/color"

	qmath "gocs/math"
)

// NormalLightLevel is the channel value a full intensity white light adds
// to a texel it hits head on.
const NormalLightLevel = 128

// Map is an RGB lightmap, 3 bytes per texel, row major.
type Map struct {
	width  int
	height int
	data   []byte
}

func New(width, height int) *Map {
	return &Map{
		width:  width,
		height: height,
		data:   make([]byte, width*height*3),
	}
}

func (m *Map) Width() int {
	return m.width
}

func (m *Map) Height() int {
	return m.height
}

// Data returns the raw channel buffer.
func (m *Map) Data() []byte {
	return m.data
}

func (m *Map) At(x, y int) (r, g, b byte) {
	i := (y*m.width + x) * 3
	return m.data[i], m.data[i+1], m.data[i+2]
}

// Add adds to the channels of a texel, saturating at 255.
func (m *Map) Add(x, y int, r, g, b int) {
	i := (y*m.width + x) * 3
	m.data[i] = qmath.SaturatingAdd(m.data[i], r)
	m.data[i+1] = qmath.SaturatingAdd(m.data[i+1], g)
	m.data[i+2] = qmath.SaturatingAdd(m.data[i+2], b)
}

// Fill sets every texel to the ambient color.
func (m *Map) Fill(r, g, b byte) {
	for i := 0; i < len(m.data); i += 3 {
		m.data[i] = r
		m.data[i+1] = g
		m.data[i+2] = b
	}
}

// Image returns a copy of the lightmap as an opaque image.
func (m *Map) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, b := m.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
