// SPDX-License-Identifier: GPL-2.0-or-later

package lightmap

import (
	"strings"

	"github.com/chewxy/math32"
)

// Attenuation selects how brightness drops with distance.
type Attenuation int

const (
	AttenuationNone Attenuation = iota
	AttenuationLinear
	AttenuationInverse
	AttenuationRealistic
	AttenuationCLQ
)

var attenuationNames = [...]string{
	AttenuationNone:      "none",
	AttenuationLinear:    "linear",
	AttenuationInverse:   "inverse",
	AttenuationRealistic: "realistic",
	AttenuationCLQ:       "clq",
}

func (a Attenuation) String() string {
	if a < 0 || int(a) >= len(attenuationNames) {
		return "unknown"
	}
	return attenuationNames[a]
}

// ParseAttenuation returns the mode with the given name.
func ParseAttenuation(s string) (Attenuation, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range attenuationNames {
		if n == s {
			return Attenuation(i), true
		}
	}
	return AttenuationNone, false
}

// Falloff describes the brightness of a light over distance. Radius is the
// cut-off distance; nothing beyond it is lit.
type Falloff struct {
	Mode   Attenuation
	Radius float32
	// CLQ coefficients, only used by AttenuationCLQ.
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Brightness returns the attenuation factor at distance d.
func (f Falloff) Brightness(d float32) float32 {
	switch f.Mode {
	case AttenuationLinear:
		if f.Radius <= 0 || d >= f.Radius {
			return 0
		}
		return 1 - d/f.Radius
	case AttenuationInverse:
		return 1 / math32.Max(d, 0.0001)
	case AttenuationRealistic:
		d = math32.Max(d, 0.0001)
		return 1 / (d * d)
	case AttenuationCLQ:
		den := f.Constant + f.Linear*d + f.Quadratic*d*d
		if den <= 0 {
			return 1
		}
		return 1 / den
	}
	return 1
}

// InfluenceRadius returns the distance at which the brightness falls to
// fraction, limited by Radius when that is set.
func (f Falloff) InfluenceRadius(fraction float32) float32 {
	r := f.Radius
	var d float32
	switch f.Mode {
	case AttenuationLinear:
		d = f.Radius * (1 - fraction)
	case AttenuationInverse:
		d = 1 / fraction
	case AttenuationRealistic:
		d = math32.Sqrt(1 / fraction)
	case AttenuationCLQ:
		target := 1 / fraction
		switch {
		case f.Quadratic > 0:
			disc := f.Linear*f.Linear - 4*f.Quadratic*(f.Constant-target)
			if disc < 0 {
				return 0
			}
			d = (-f.Linear + math32.Sqrt(disc)) / (2 * f.Quadratic)
		case f.Linear > 0:
			d = (target - f.Constant) / f.Linear
		default:
			return r
		}
	default:
		return r
	}
	if d < 0 {
		d = 0
	}
	if r > 0 && d > r {
		return r
	}
	return d
}
