// SPDX-License-Identifier: GPL-2.0-or-later

// Package lighting computes the lightmaps of a world from its point lights.
package lighting

import (
	"fmt"

	"github.com/google/uuid"

	"gocs/lightmap"
	"gocs/math/vec"
	"gocs/world"
)

// Light is a point light placed in a sector.
type Light struct {
	ID      uuid.UUID
	Name    string
	Sector  *world.Sector
	Origin  vec.Vec3
	Color   vec.Vec3
	Falloff lightmap.Falloff
	// Dynamic lights write to the lightmaps directly instead of through
	// the queue.
	Dynamic bool
}

// NewLight returns a white light with linear attenuation.
func NewLight(name string, s *world.Sector, origin vec.Vec3, radius float32) *Light {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Light{
		ID:     id,
		Name:   name,
		Sector: s,
		Origin: origin,
		Color:  vec.Vec3{X: 1, Y: 1, Z: 1},
		Falloff: lightmap.Falloff{
			Mode:   lightmap.AttenuationLinear,
			Radius: radius,
		},
	}
}

func (l *Light) String() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.ID)
}
