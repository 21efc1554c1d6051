// SPDX-License-Identifier: GPL-2.0-or-later

package lighting

import (
	"log/slog"
	"sort"

	"gocs/frustum"
	"gocs/fview"
	"gocs/geom"
	"gocs/lightmap"
	qmath "gocs/math"
	"gocs/world"
)

// Result summarises the calculation of one light.
type Result struct {
	Light *Light
	Stats lightmap.Stats
	// Sectors in the order they were first entered.
	Sectors []*world.Sector
	Visits  int
	// Polygons counts the surfaces the light frustum reached, Direct
	// those of them reached without passing a portal.
	Polygons int
	Direct   int
}

// run is the state of one light calculation. It is the visitor and the
// sector tracker of the view.
type run struct {
	light  *Light
	opts   Options
	radius float32
	queue  *Queue
	res    *Result
	seen   map[*world.Sector]bool
}

func (r *run) EnterSector(s *world.Sector, depth int) {
	r.res.Visits++
	if !r.seen[s] {
		r.seen[s] = true
		r.res.Sectors = append(r.res.Sectors, s)
	}
}

func (r *run) Visit(obj fview.Object, fv *fview.View, visible bool) {
	t, ok := obj.(*world.Thing)
	if !ok || !visible {
		return
	}
	for _, p := range t.Polygons() {
		r.lightPolygon(p, fv)
	}
}

func (r *run) lightPolygon(p *world.Polygon, fv *fview.View) {
	ctx := fv.Context()
	lf := ctx.LightFrustum()
	origin := lf.Origin()
	pl := p.Plane()
	if !pl.Visible(origin) {
		return
	}
	if d := pl.Distance(origin); d < qmath.SmallEpsilon || d >= r.radius {
		return
	}
	nf := lf.IntersectPoly(geom.RelativeTo(p.Vertices(), origin, ctx.IsMirrored()))
	if nf == nil {
		return
	}
	if p.Lightmap() != nil {
		r.res.Polygons++
		if ctx.IsFirstTime() {
			r.res.Direct++
		}
		src := lightmap.Source{
			Origin:    origin,
			Color:     ctx.Lighting().Color,
			Falloff:   r.light.Falloff,
			Radius:    r.radius,
			CosFactor: r.opts.CosinusFactor,
		}
		shadows := ctx.Shadows().Iterator(false)
		if fv.IsDynamic() {
			r.res.Stats.Add(lightmap.Shine(p.Receiver(), src, nf, shadows))
		} else {
			r.queue.Add(p, src, lightmap.Cover(p.Receiver(), src, nf, shadows, r.opts.ShadowQuality))
		}
	}
	if portal := p.Portal(); portal != nil {
		portal.CheckFrustum(fv)
	}
}

// CalculateLighting propagates l through the world from its sector and
// lights every reachable lightmap.
func CalculateLighting(l *Light, opts Options) *Result {
	r := &run{
		light:  l,
		opts:   opts,
		radius: l.Falloff.InfluenceRadius(opts.IntensityFraction),
		queue:  NewQueue(l.ID),
		res:    &Result{Light: l},
		seen:   make(map[*world.Sector]bool),
	}
	if r.radius <= 0 {
		slog.Warn("Light has no influence", "light", l.Name, "id", l.ID)
		return r.res
	}
	slog.Debug("Light start", "light", l.Name, "id", l.ID, "sector", l.Sector.Name(), "radius", r.radius, "dynamic", l.Dynamic)

	fv := fview.New(r)
	fv.SetRadius(r.radius)
	fv.EnableThingShadows(opts.ThingShadows)
	fv.SetShadowMask(world.FlagNoShadows, 0)
	fv.SetProcessMask(world.FlagNoLighting, 0)
	fv.SetDynamic(l.Dynamic)
	fv.SetUserData(r)
	ctx := fv.Context()
	ctx.SetLightFrustum(frustum.NewWide(l.Origin))
	ctx.SetLighting(fview.LightingInfo{Color: l.Color})

	l.Sector.CheckFrustum(fv)

	if !fv.IsDynamic() {
		r.res.Stats = r.queue.UpdateMaps()
	}
	slog.Debug("Light done", "light", l.Name, "id", l.ID, "stats", r.res.Stats, "visits", r.res.Visits)
	return r.res
}

// LightAll calculates the static lights first and the dynamic ones after
// them, each group in the given order.
func LightAll(lights []*Light, opts Options) []*Result {
	ordered := make([]*Light, len(lights))
	copy(ordered, lights)
	sort.SliceStable(ordered, func(i, j int) bool {
		return !ordered[i].Dynamic && ordered[j].Dynamic
	})
	res := make([]*Result, 0, len(ordered))
	for _, l := range ordered {
		res = append(res, CalculateLighting(l, opts))
	}
	return res
}
