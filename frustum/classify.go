// SPDX-License-Identifier: GPL-2.0-or-later

package frustum

import (
	"gocs/math/vec"
)

// Classification describes how a polygon relates to a frustum.
type Classification int

const (
	// Outside means the polygon does not touch the frustum.
	Outside Classification = iota
	// Inside means the polygon is completely within the frustum.
	Inside
	// Covered means the polygon covers the whole frustum.
	Covered
	// Partial means the polygon is partly inside.
	Partial
)

func (c Classification) String() string {
	switch c {
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	case Covered:
		return "covered"
	case Partial:
		return "partial"
	}
	return "unknown"
}

// Classify relates the convex polygon poly to the frustum spanned by the
// clockwise polygon frust. Both are relative to (0,0,0).
func Classify(frust, poly []vec.Vec3) Classification {
	return BatchClassify(frust, EdgeNormals(frust), poly)
}

// Classify relates poly, given relative to the origin, to f.
func (f *Frustum) Classify(poly []vec.Vec3) Classification {
	if f.IsInfinite() {
		return Inside
	}
	if f.IsEmpty() {
		return Outside
	}
	return BatchClassify(f.vertices, f.EdgeNormals(), poly)
}

// BatchClassify is Classify with precomputed edge normals; normals[i]
// belongs to the edge frust[i] -> frust[i+1] and points away from the
// inside.
func BatchClassify(frust, normals, poly []vec.Vec3) Classification {
	nf := len(frust)
	np := len(poly)
	ds := make([]float32, np)
	allInside := true
	for k := 0; k < nf; k++ {
		fn := normals[k]
		a := frust[k]
		b := frust[(k+1)%nf]
		w := vec.Cross(a, b)
		between := func(x vec.Vec3) bool {
			return vec.Dot(vec.Cross(a, x), w) >= 0 && vec.Dot(vec.Cross(x, b), w) >= 0
		}
		allOut := true
		// sign of the last vertex off the side plane
		var side float32
		for j := 0; j < np; j++ {
			ds[j] = vec.Dot(fn, poly[j])
			if ds[j] > 0 {
				allInside = false
			} else {
				allOut = false
			}
			if ds[j] != 0 {
				side = ds[j]
			}
		}
		if allOut {
			return Outside
		}
		if side == 0 {
			// poly lies in the side plane
			continue
		}
		for j := 0; j < np; j++ {
			d := ds[j]
			if d == 0 || (side < 0) == (d < 0) {
				if d != 0 {
					side = d
				}
				continue
			}
			pj := j - 1
			if pj < 0 {
				pj = np - 1
			}
			if prev := ds[pj]; prev != 0 {
				if between(vec.Lerp(poly[pj], poly[j], prev/(prev-d))) {
					return Partial
				}
			} else {
				// the crossing runs through on-plane vertices
				for z := pj; ds[z] == 0; {
					if between(poly[z]) {
						return Partial
					}
					if z--; z < 0 {
						z = np - 1
					}
				}
			}
			side = d
		}
	}
	if allInside {
		return Inside
	}
	return coveredOrOutside(frust, poly)
}

// coveredOrOutside decides between Covered and Outside for a polygon with no
// edge crossing the frustum sides. One probe ray suffices unless it grazes
// the polygon's boundary.
func coveredOrOutside(frust, poly []vec.Vec3) Classification {
	pn := EdgeNormals(poly)
	c := vec.Vec3{}
	for _, v := range poly {
		c = vec.Add(c, v)
	}
	var s float32
	for _, n := range pn {
		s += vec.Dot(n, c)
	}
	flip := s > 0
	for _, probe := range frust {
		onEdge := false
		out := false
		for _, n := range pn {
			d := vec.Dot(n, probe)
			if flip {
				d = -d
			}
			if d > 0 {
				out = true
				break
			}
			if d == 0 {
				onEdge = true
			}
		}
		if out {
			return Outside
		}
		if !onEdge {
			return Covered
		}
	}
	return Covered
}
