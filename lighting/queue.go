// SPDX-License-Identifier: GPL-2.0-or-later

package lighting

import (
	"github.com/google/uuid"

	"gocs/lightmap"
	"gocs/math/vec"
	"gocs/world"
)

type queueKey struct {
	poly   *world.Polygon
	origin vec.Vec3
	color  vec.Vec3
}

type queueEntry struct {
	poly *world.Polygon
	src  lightmap.Source
	cov  *lightmap.Coverage
}

// Queue collects the coverage of the polygons reached by one static light.
// Coverage of a polygon reached along several paths from the same
// (possibly warped) light position is merged, so every texel is lit at
// most once per position.
type Queue struct {
	light   uuid.UUID
	entries []*queueEntry
	byKey   map[queueKey]*queueEntry
}

func NewQueue(light uuid.UUID) *Queue {
	return &Queue{
		light: light,
		byKey: make(map[queueKey]*queueEntry),
	}
}

// Light returns the id of the light the queue belongs to.
func (q *Queue) Light() uuid.UUID {
	return q.light
}

func (q *Queue) Len() int {
	return len(q.entries)
}

func (q *Queue) Add(p *world.Polygon, src lightmap.Source, c *lightmap.Coverage) {
	k := queueKey{poly: p, origin: src.Origin, color: src.Color}
	if e, ok := q.byKey[k]; ok {
		e.cov.Merge(c)
		return
	}
	e := &queueEntry{poly: p, src: src, cov: c}
	q.entries = append(q.entries, e)
	q.byKey[k] = e
}

// UpdateMaps applies all queued coverage to the lightmaps and empties the
// queue.
func (q *Queue) UpdateMaps() lightmap.Stats {
	var st lightmap.Stats
	for _, e := range q.entries {
		st.Add(e.cov.Apply(e.poly.Receiver(), e.src))
	}
	q.entries = nil
	q.byKey = make(map[queueKey]*queueEntry)
	return st
}
