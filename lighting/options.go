// SPDX-License-Identifier: GPL-2.0-or-later

package lighting

import (
	"gocs/cvars"
)

type Options struct {
	// CosinusFactor is added to the cosine of the light incidence angle.
	CosinusFactor float32
	// IntensityFraction is the brightness at which a light's influence
	// ends.
	IntensityFraction float32
	// ShadowQuality is the log2 of the probes per texel edge.
	ShadowQuality int
	ThingShadows  bool
}

func DefaultOptions() Options {
	return Options{
		IntensityFraction: 0.0039,
		ShadowQuality:     1,
		ThingShadows:      true,
	}
}

func FromCvars() Options {
	return Options{
		CosinusFactor:     cvars.LightCosinusFactor.Value(),
		IntensityFraction: cvars.LightIntensityFrac.Value(),
		ShadowQuality:     cvars.LightShadowQuality.Int(),
		ThingShadows:      cvars.LightThingShadows.Bool(),
	}
}
