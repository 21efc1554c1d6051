// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"gocs/cvar"
)

var (
	Developer          *cvar.Cvar
	LightCosinusFactor *cvar.Cvar
	LightIntensityFrac *cvar.Cvar
	LightLightmapCell  *cvar.Cvar
	LightReflections   *cvar.Cvar
	LightShadowQuality *cvar.Cvar
	LightThingShadows  *cvar.Cvar
)

func init() {
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	LightCosinusFactor = cvar.MustRegister("lt_cosinus_factor", "0", cvar.ARCHIVE)
	LightIntensityFrac = cvar.MustRegister("lt_intensity_fraction", "0.0039", cvar.ARCHIVE)
	LightLightmapCell = cvar.MustRegister("lt_lightmap_cellsize", "16", cvar.ARCHIVE)
	// maximum recursion level of a sector
	LightReflections = cvar.MustRegister("lt_reflections", "1", cvar.ARCHIVE|cvar.NOTIFY)
	LightShadowQuality = cvar.MustRegister("lt_shadow_quality", "1", cvar.ARCHIVE)
	LightThingShadows = cvar.MustRegister("lt_thing_shadows", "1", cvar.ARCHIVE)
}
