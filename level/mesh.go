// SPDX-License-Identifier: GPL-2.0-or-later

package level

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"gocs/geom"
	"gocs/math/vec"
)

func (l *loader) mesh(i *int) (*gltf.Mesh, error) {
	if i == nil {
		return nil, errors.New("node has no mesh")
	}
	if *i < 0 || *i >= len(l.doc.Meshes) {
		return nil, errors.Errorf("mesh %d out of range", *i)
	}
	return l.doc.Meshes[*i], nil
}

func (l *loader) positions(prim *gltf.Primitive) ([]vec.Vec3, error) {
	a, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive without positions")
	}
	if a < 0 || a >= len(l.doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", a)
	}
	raw, err := modeler.ReadPosition(l.doc, l.doc.Accessors[a], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read positions")
	}
	pos := make([]vec.Vec3, len(raw))
	for i, p := range raw {
		pos[i] = vec.VFromA(p)
	}
	return pos, nil
}

func (l *loader) indices(prim *gltf.Primitive, n int) ([]int, error) {
	idx := make([]int, 0, n)
	if prim.Indices == nil {
		for i := 0; i < n; i++ {
			idx = append(idx, i)
		}
		return idx, nil
	}
	a := *prim.Indices
	if a < 0 || a >= len(l.doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", a)
	}
	raw, err := modeler.ReadIndices(l.doc, l.doc.Accessors[a], nil)
	if err != nil {
		return nil, errors.Wrap(err, "read indices")
	}
	for _, i := range raw {
		if int(i) >= n {
			return nil, errors.Errorf("index %d out of range", i)
		}
		idx = append(idx, int(i))
	}
	return idx, nil
}

// meshPolygons returns the convex polygons of every triangle primitive of
// the mesh.
func (l *loader) meshPolygons(mi *int) ([][]vec.Vec3, error) {
	m, err := l.mesh(mi)
	if err != nil {
		return nil, err
	}
	var polys [][]vec.Vec3
	for j, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			slog.Warn("Skipping primitive", "mesh", m.Name, "primitive", j, "mode", prim.Mode)
			continue
		}
		pos, err := l.positions(prim)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %d primitive %d", *mi, j)
		}
		idx, err := l.indices(prim, len(pos))
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %d primitive %d", *mi, j)
		}
		if len(idx)%3 != 0 {
			return nil, errors.Errorf("mesh %d primitive %d: %d indices do not form triangles", *mi, j, len(idx))
		}
		polys = append(polys, polygons(pos, idx)...)
	}
	return polys, nil
}

// portalPolygon returns the vertices of the first primitive in stored
// order.
func (l *loader) portalPolygon(mi *int) ([]vec.Vec3, error) {
	m, err := l.mesh(mi)
	if err != nil {
		return nil, err
	}
	if len(m.Primitives) == 0 {
		return nil, errors.Errorf("mesh %d has no primitives", *mi)
	}
	pos, err := l.positions(m.Primitives[0])
	if err != nil {
		return nil, errors.Wrapf(err, "mesh %d", *mi)
	}
	if len(pos) < 3 || geom.PolyArea(pos) < 1e-6 {
		return nil, errors.Errorf("mesh %d: degenerate portal polygon", *mi)
	}
	return pos, nil
}

func corners(pos []vec.Vec3, idx []int) []vec.Vec3 {
	r := make([]vec.Vec3, len(idx))
	for i, j := range idx {
		r[i] = pos[j]
	}
	return r
}

// polygons turns an indexed triangle list into polygons. Two consecutive
// triangles that share an edge and a plane and form a convex quad are
// merged. Degenerate triangles are dropped.
func polygons(pos []vec.Vec3, idx []int) [][]vec.Vec3 {
	var res [][]vec.Vec3
	for i := 0; i+3 <= len(idx); i += 3 {
		a := idx[i : i+3]
		if i+6 <= len(idx) {
			if q, ok := mergeQuad(pos, a, idx[i+3:i+6]); ok {
				res = append(res, q)
				i += 3
				continue
			}
		}
		if t := corners(pos, a); geom.PolyArea(t) >= 1e-6 {
			res = append(res, t)
		}
	}
	return res
}

func mergeQuad(pos []vec.Vec3, a, b []int) ([]vec.Vec3, bool) {
	ta, tb := corners(pos, a), corners(pos, b)
	if geom.PolyArea(ta) < 1e-6 || geom.PolyArea(tb) < 1e-6 {
		return nil, false
	}
	if !geom.PlanesClose(geom.PolyPlane(ta), geom.PolyPlane(tb)) {
		return nil, false
	}
	for e := 0; e < 3; e++ {
		p, q := a[e], a[(e+1)%3]
		for f := 0; f < 3; f++ {
			if b[f] != q || b[(f+1)%3] != p {
				continue
			}
			quad := corners(pos, []int{p, b[(f+2)%3], q, a[(e+2)%3]})
			return quad, convex(quad)
		}
	}
	return nil, false
}

func convex(poly []vec.Vec3) bool {
	n := geom.PolyNormal(poly)
	for i := range poly {
		a := poly[(i+len(poly)-1)%len(poly)]
		b := poly[i]
		c := poly[(i+1)%len(poly)]
		if vec.Dot(vec.Cross(vec.Sub(b, a), vec.Sub(c, b)), n) >= 0 {
			return false
		}
	}
	return true
}
