// SPDX-License-Identifier: GPL-2.0-or-later

package lightmap

import (
	"fmt"

	"github.com/chewxy/math32"

	"gocs/frustum"
	"gocs/geom"
	qmath "gocs/math"
	"gocs/math/vec"
	"gocs/shadow"
)

// Source is a light as seen from the current frustum context. Origin is the
// possibly warped light position and Radius the distance beyond which
// nothing is lit.
type Source struct {
	Origin    vec.Vec3
	Color     vec.Vec3
	Falloff   Falloff
	Radius    float32
	CosFactor float32
}

func (s Source) squaredRadius() float32 {
	return s.Radius * s.Radius
}

// Receiver is a lit surface. ID is compared with the userData of shadows so
// a surface never shadows itself.
type Receiver struct {
	ID     any
	Plane  geom.Plane
	Map    *Map
	Texels *TexelTable
}

// Stats counts texels by outcome.
type Stats struct {
	Lit      int
	Shadowed int
	Outside  int
}

func (s *Stats) Add(o Stats) {
	s.Lit += o.Lit
	s.Shadowed += o.Shadowed
	s.Outside += o.Outside
}

func (s Stats) String() string {
	return fmt.Sprintf("lit %d, shadowed %d, outside %d", s.Lit, s.Shadowed, s.Outside)
}

type texelState uint8

const (
	stateOutside texelState = iota
	stateShadowed
	stateLit
)

func (r Receiver) test(pos vec.Vec3, src Source, lf *frustum.Frustum, shadows *shadow.Iterator) texelState {
	if vec.SquaredDistance(pos, src.Origin) >= src.squaredRadius() {
		return stateOutside
	}
	if lf != nil && !lf.Contains(vec.Sub(pos, lf.Origin())) {
		return stateOutside
	}
	if r.shadowed(pos, shadows) {
		return stateShadowed
	}
	return stateLit
}

func (r Receiver) shadowed(pos vec.Vec3, shadows *shadow.Iterator) bool {
	if shadows == nil {
		return false
	}
	shadows.Reset()
	for shadows.HasNext() {
		s := shadows.Next()
		if r.ID != nil && s.UserData() == r.ID {
			continue
		}
		if cp, ok := s.CasterPlane(); ok && geom.PlanesClose(cp, r.Plane) {
			continue
		}
		if s.Contains(vec.Sub(pos, s.Origin())) {
			return true
		}
	}
	return false
}

// light adds the Lambert lit contribution of src to texel x,y. It reports
// false if the texel faces away.
func (r Receiver) light(x, y int, tx Texel, src Source) bool {
	l := vec.Sub(src.Origin, tx.Pos)
	d := l.Length()
	cos := float32(1)
	if d >= qmath.SmallEpsilon {
		cos = vec.Dot(l, tx.Normal)/d + src.CosFactor
	}
	if cos <= 0 {
		return false
	}
	if cos > 1 {
		cos = 1
	}
	b := NormalLightLevel * cos * src.Falloff.Brightness(d)
	r.Map.Add(x, y,
		int(math32.Round(src.Color.X*b)),
		int(math32.Round(src.Color.Y*b)),
		int(math32.Round(src.Color.Z*b)))
	return true
}

// Shine lights the receiver directly. A texel is lit if it is within the
// light radius, inside lf and not inside any shadow of the iterator. lf and
// shadows may be nil.
func Shine(r Receiver, src Source, lf *frustum.Frustum, shadows *shadow.Iterator) Stats {
	var st Stats
	for y := 0; y < r.Texels.Height(); y++ {
		for x := 0; x < r.Texels.Width(); x++ {
			tx := r.Texels.At(x, y)
			switch r.test(tx.Pos, src, lf, shadows) {
			case stateOutside:
				st.Outside++
			case stateShadowed:
				st.Shadowed++
			default:
				if r.light(x, y, tx, src) {
					st.Lit++
				} else {
					st.Outside++
				}
			}
		}
	}
	return st
}
