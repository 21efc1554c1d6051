// SPDX-License-Identifier: GPL-2.0-or-later

package frustum

import (
	"gocs/geom"
	"gocs/math/vec"
)

// splice keeps the part of the convex polygon verts on the non-positive side
// of pl. info may be nil, otherwise it runs parallel to verts and is
// updated alongside. A nil result means nothing is left.
func splice(verts []vec.Vec3, info []ClipInfo, pl geom.Plane) ([]vec.Vec3, []ClipInfo) {
	n := len(verts)
	if n == 0 {
		return nil, nil
	}
	out := func(i int) bool {
		return pl.Classify(verts[i]) > 0
	}
	lastOut := out(n - 1)

	cw := -1
	for i := 0; i < n-1; i++ {
		if out(i) != lastOut {
			cw = i
			break
		}
	}
	if cw == -1 {
		if lastOut {
			return nil, nil
		}
		return verts, info
	}
	ccw := n - 2
	for ; ccw >= 0; ccw-- {
		if out(ccw) != lastOut {
			break
		}
	}

	prev := cw - 1
	if prev < 0 {
		prev = n - 1
	}
	isectCW, rCW, _ := geom.SegmentPlane(verts[prev], verts[cw], pl)
	isectCCW, rCCW, _ := geom.SegmentPlane(verts[ccw], verts[ccw+1], pl)

	// an intersection that falls on a kept vertex on the plane is not added
	on := func(i int) bool {
		return pl.Classify(verts[i]) == 0
	}
	var nv []vec.Vec3
	var ni []ClipInfo
	if lastOut {
		// the run cw..ccw is kept
		nv = make([]vec.Vec3, 0, ccw-cw+3)
		if info != nil {
			ni = make([]ClipInfo, 0, ccw-cw+3)
		}
		if !on(cw) {
			nv = append(nv, isectCW)
			if info != nil {
				ni = append(ni, interpolate(info[prev], info[cw], rCW))
			}
		}
		nv = append(nv, verts[cw:ccw+1]...)
		if info != nil {
			ni = append(ni, info[cw:ccw+1]...)
		}
		if !on(ccw) {
			nv = append(nv, isectCCW)
			if info != nil {
				ni = append(ni, interpolate(info[ccw], info[ccw+1], rCCW))
			}
		}
	} else {
		// the run cw..ccw is dropped
		nv = make([]vec.Vec3, 0, n-(ccw-cw+1)+2)
		if info != nil {
			ni = make([]ClipInfo, 0, n-(ccw-cw+1)+2)
		}
		nv = append(nv, verts[:cw]...)
		if info != nil {
			ni = append(ni, info[:cw]...)
		}
		if !on(prev) {
			nv = append(nv, isectCW)
			if info != nil {
				ni = append(ni, interpolate(info[prev], info[cw], rCW))
			}
		}
		if !on(ccw + 1) {
			nv = append(nv, isectCCW)
			if info != nil {
				ni = append(ni, interpolate(info[ccw], info[ccw+1], rCCW))
			}
		}
		nv = append(nv, verts[ccw+1:]...)
		if info != nil {
			ni = append(ni, info[ccw+1:]...)
		}
	}
	if len(nv) < 3 {
		return nil, nil
	}
	return nv, ni
}

func throughOrigin(v1, v2 vec.Vec3) geom.Plane {
	return geom.Plane{Normal: vec.Cross(v1, v2)}
}

// ClipToPlane clips the frustum polygon to the plane through the origin, v1
// and v2. Vertices on the side the plane normal v1 x v2 points to are cut
// away. For mirrored frustums the orientation is reversed.
func (f *Frustum) ClipToPlane(v1, v2 vec.Vec3) {
	if len(f.vertices) == 0 {
		return
	}
	pl := throughOrigin(v1, v2)
	if f.mirrored {
		pl = throughOrigin(v2, v1)
	}
	nv, _ := splice(f.vertices, nil, pl)
	if nv == nil {
		f.MakeEmpty()
		return
	}
	f.vertices = nv
}

// ClipToPlane clips the polygon verts to the plane through (0,0,0), v1 and
// v2 and threads info alongside. Either result is nil if nothing is left.
func ClipToPlane(verts []vec.Vec3, info []ClipInfo, v1, v2 vec.Vec3) ([]vec.Vec3, []ClipInfo) {
	return splice(verts, info, throughOrigin(v1, v2))
}

// ClipToPlaneP clips the polygon verts to the visible side of pl and threads
// info alongside.
func ClipToPlaneP(verts []vec.Vec3, info []ClipInfo, pl geom.Plane) ([]vec.Vec3, []ClipInfo) {
	return splice(verts, info, pl)
}

// ClipPolyToPlane cuts the frustum's own polygon by pl keeping the visible
// side. Fewer than three remaining vertices make the frustum empty.
func (f *Frustum) ClipPolyToPlane(pl *geom.Plane) {
	n := len(f.vertices)
	if n == 0 {
		return
	}
	vis := make([]bool, n)
	cnt := 0
	for i, v := range f.vertices {
		vis[i] = pl.Visible(v)
		if vis[i] {
			cnt++
		}
	}
	if cnt == 0 {
		f.MakeEmpty()
		return
	}
	if cnt == n {
		return
	}
	clipped := make([]vec.Vec3, 0, n+1)
	i1 := n - 1
	for i, v := range f.vertices {
		// skip intersections that fall on a visible vertex on the plane
		if vis[i] != vis[i1] && pl.Classify(v) != 0 && pl.Classify(f.vertices[i1]) != 0 {
			if isect, _, ok := geom.SegmentPlane(f.vertices[i1], v, *pl); ok {
				clipped = append(clipped, isect)
			}
		}
		if vis[i] {
			clipped = append(clipped, v)
		}
		i1 = i
	}
	if len(clipped) < 3 {
		f.MakeEmpty()
		return
	}
	f.vertices = clipped
}
