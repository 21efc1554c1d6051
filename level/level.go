// SPDX-License-Identifier: GPL-2.0-or-later

// Package level builds a world and its lights from a glTF scene.
//
// Nodes are interpreted by name:
//
//	sector.<name>             mesh forming the walls of a sector
//	thing.<sector>.<name>     mesh added as a thing to a sector
//	portal.<from>.<to>        polygon leading from one sector into another
//	light.<sector>.<name>     point light at the node position
//
// Node transforms are applied. The front face of a glTF triangle is the
// side that receives light. Other nodes are ignored.
package level

import (
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"gocs/geom"
	"gocs/lighting"
	"gocs/lightmap"
	"gocs/math/vec"
	"gocs/world"
)

type Scene struct {
	World  *world.World
	Lights []*lighting.Light
}

// Load reads a .gltf or .glb file.
func Load(path string, cfg world.Config) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	sc, err := FromDocument(doc, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	slog.Info("Scene loaded", "path", path, "sectors", len(sc.World.Sectors()), "lights", len(sc.Lights))
	return sc, nil
}

type loader struct {
	doc   *gltf.Document
	scene *Scene
	seen  map[int]bool
}

// FromDocument builds the scene from an already decoded document.
func FromDocument(doc *gltf.Document, cfg world.Config) (*Scene, error) {
	l := &loader{
		doc:   doc,
		scene: &Scene{World: world.New(cfg)},
		seen:  make(map[int]bool),
	}
	roots, err := l.roots()
	if err != nil {
		return nil, err
	}
	for _, n := range roots {
		if err := l.node(n, mgl32.Ident4()); err != nil {
			return nil, err
		}
	}
	return l.scene, nil
}

// roots returns the nodes of the default scene, or every node that is
// nobody's child if the document has no scenes.
func (l *loader) roots() ([]int, error) {
	if len(l.doc.Scenes) > 0 {
		s := 0
		if l.doc.Scene != nil {
			s = *l.doc.Scene
		}
		if s < 0 || s >= len(l.doc.Scenes) {
			return nil, errors.Errorf("default scene %d out of range", s)
		}
		return l.doc.Scenes[s].Nodes, nil
	}
	child := make(map[int]bool)
	for _, n := range l.doc.Nodes {
		for _, c := range n.Children {
			child[c] = true
		}
	}
	var roots []int
	for i := range l.doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

func (l *loader) node(i int, parent mgl32.Mat4) error {
	if i < 0 || i >= len(l.doc.Nodes) {
		return errors.Errorf("node %d out of range", i)
	}
	if l.seen[i] {
		return errors.Errorf("node %d reached twice", i)
	}
	l.seen[i] = true
	n := l.doc.Nodes[i]
	m := parent.Mul4(localMatrix(n))
	if err := l.build(n, m); err != nil {
		return errors.Wrapf(err, "node %d (%s)", i, n.Name)
	}
	for _, c := range n.Children {
		if err := l.node(c, m); err != nil {
			return err
		}
	}
	return nil
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if mat := n.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func toTransform(m mgl32.Mat4) (geom.Transform, error) {
	r := m.Mat3()
	if d := r.Det(); d > -1e-9 && d < 1e-9 {
		return geom.Transform{}, errors.New("degenerate node transform")
	}
	c := m.Col(3)
	return geom.NewTransform(r, vec.Vec3{X: c[0], Y: c[1], Z: c[2]}), nil
}

// splitName splits "a.b" into a and b. Both must be non-empty.
func splitName(s string) (string, string, bool) {
	a, b, ok := strings.Cut(s, ".")
	return a, b, ok && a != "" && b != ""
}

func (l *loader) build(n *gltf.Node, m mgl32.Mat4) error {
	kind, rest, _ := strings.Cut(n.Name, ".")
	switch kind {
	case "sector", "thing", "portal", "light":
	default:
		slog.Debug("Ignoring node", "name", n.Name)
		return nil
	}
	ex, err := extrasOf(n.Extras)
	if err != nil {
		return err
	}
	tr, err := toTransform(m)
	if err != nil {
		return err
	}
	w := l.scene.World

	switch kind {
	case "sector":
		if rest == "" {
			return errors.New("sector without name")
		}
		return l.addThing(w.NewSector(rest).NewThing("walls"), n, tr)

	case "thing":
		sector, name, ok := splitName(rest)
		if !ok {
			return errors.Errorf("want thing.<sector>.<name>")
		}
		t := w.NewSector(sector).NewThing(name)
		var flags uint32
		if ex.flag("noshadows") {
			flags |= world.FlagNoShadows
		}
		if ex.flag("nolighting") {
			flags |= world.FlagNoLighting
		}
		t.SetFlags(flags)
		return l.addThing(t, n, tr)

	case "portal":
		from, to, ok := splitName(rest)
		if !ok {
			return errors.Errorf("want portal.<from>.<to>")
		}
		verts, err := l.portalPolygon(n.Mesh)
		if err != nil {
			return err
		}
		t := w.NewSector(from).NewThing("portal_" + to)
		t.SetTransform(tr)
		return setupPortal(t.AddPortal(verts, w.NewSector(to)), ex)

	case "light":
		sector, name, ok := splitName(rest)
		if !ok {
			return errors.Errorf("want light.<sector>.<name>")
		}
		c := m.Col(3)
		lt, err := newLight(rest, w.NewSector(sector), vec.Vec3{X: c[0], Y: c[1], Z: c[2]}, ex)
		if err != nil {
			return err
		}
		slog.Debug("Light", "name", name, "sector", sector, "origin", lt.Origin)
		l.scene.Lights = append(l.scene.Lights, lt)
	}
	return nil
}

func (l *loader) addThing(t *world.Thing, n *gltf.Node, tr geom.Transform) error {
	polys, err := l.meshPolygons(n.Mesh)
	if err != nil {
		return err
	}
	t.SetTransform(tr)
	for _, p := range polys {
		t.AddPolygon(p)
	}
	return nil
}

func setupPortal(p *world.Portal, ex extras) error {
	warp, ok, err := ex.numbers("warp", 12)
	if err != nil {
		return err
	}
	if ok {
		var m mgl32.Mat3
		copy(m[:], warp[:9])
		if d := m.Det(); d > -1e-9 && d < 1e-9 {
			return errors.New("degenerate warp matrix")
		}
		p.SetWarp(geom.NewTransform(m, vec.Vec3{X: warp[9], Y: warp[10], Z: warp[11]}))
	}
	if ex.flag("mirror") {
		if ok {
			return errors.New("portal has both warp and mirror")
		}
		p.SetMirror()
	}
	if ex.flag("staticdest") {
		p.SetFlags(p.Flags() | world.PortalStaticDest)
	}
	if ex.flag("clipdest") {
		p.SetFlags(p.Flags() | world.PortalClipDest)
	}
	filter, ok, err := ex.numbers("filter", 3)
	if err != nil {
		return err
	}
	if ok {
		p.SetFilter(vec.Vec3{X: filter[0], Y: filter[1], Z: filter[2]})
	}
	return nil
}

func newLight(name string, s *world.Sector, origin vec.Vec3, ex extras) (*lighting.Light, error) {
	radius, ok, err := ex.number("radius")
	if err != nil {
		return nil, err
	}
	if !ok || radius <= 0 {
		return nil, errors.New("light needs a positive radius")
	}
	lt := lighting.NewLight(name, s, origin, radius)
	color, ok, err := ex.numbers("color", 3)
	if err != nil {
		return nil, err
	}
	if ok {
		lt.Color = vec.Vec3{X: color[0], Y: color[1], Z: color[2]}
	}
	if a, ok, err := ex.text("attenuation"); err != nil {
		return nil, err
	} else if ok {
		mode, ok := lightmap.ParseAttenuation(a)
		if !ok {
			return nil, errors.Errorf("unknown attenuation %q", a)
		}
		lt.Falloff.Mode = mode
	}
	clq, ok, err := ex.numbers("clq", 3)
	if err != nil {
		return nil, err
	}
	if ok {
		lt.Falloff.Constant, lt.Falloff.Linear, lt.Falloff.Quadratic = clq[0], clq[1], clq[2]
	}
	lt.Dynamic = ex.flag("dynamic")
	return lt, nil
}
