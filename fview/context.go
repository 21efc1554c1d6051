// SPDX-License-Identifier: GPL-2.0-or-later

package fview

import (
	"gocs/frustum"
	"gocs/math/vec"
	"gocs/shadow"
)

// LightingInfo is the light state propagated with a context.
type LightingInfo struct {
	Color vec.Vec3
}

// CleanupAction is run once when the context it was added to is popped.
type CleanupAction interface {
	Cleanup(fv *View, ctx *Context)
}

type CleanupFunc func(fv *View, ctx *Context)

func (f CleanupFunc) Cleanup(fv *View, ctx *Context) {
	f(fv, ctx)
}

// Context is the state of one recursion level of a frustum traversal.
type Context struct {
	shadows       *shadow.List
	sharedShadows bool
	lightFrustum  *frustum.Frustum
	mirrored      bool
	firstTime     bool
	cleanups      []CleanupAction
	lighting      *LightingInfo
}

// Shadows returns the shadow list visible at this level.
func (c *Context) Shadows() *shadow.List {
	return c.shadows
}

// IsShared reports whether the shadow list belongs to a parent context.
func (c *Context) IsShared() bool {
	return c.sharedShadows
}

// SetShadows replaces the shadow list. An owned list is released when the
// context is popped.
func (c *Context) SetShadows(l *shadow.List, shared bool) {
	c.shadows = l
	c.sharedShadows = shared
}

func (c *Context) LightFrustum() *frustum.Frustum {
	return c.lightFrustum
}

// SetLightFrustum gives the context its own light frustum.
func (c *Context) SetLightFrustum(f *frustum.Frustum) {
	c.lightFrustum = f
}

func (c *Context) IsMirrored() bool {
	return c.mirrored
}

func (c *Context) SetMirrored(m bool) {
	c.mirrored = m
}

func (c *Context) IsFirstTime() bool {
	return c.firstTime
}

func (c *Context) SetFirstTime(ft bool) {
	c.firstTime = ft
}

// Lighting returns the light state or nil if the traversal carries none.
// Changes to it are local to this context.
func (c *Context) Lighting() *LightingInfo {
	return c.lighting
}

func (c *Context) SetLighting(li LightingInfo) {
	c.lighting = &li
}

// AddCleanup registers a to run when the context is popped.
func (c *Context) AddCleanup(a CleanupAction) {
	c.cleanups = append(c.cleanups, a)
}

func (c *Context) runCleanups(fv *View) {
	for i := len(c.cleanups) - 1; i >= 0; i-- {
		a := c.cleanups[i]
		c.cleanups[i] = nil
		a.Cleanup(fv, c)
	}
	c.cleanups = nil
}

// child returns a new context inheriting shadows, mirroring and lighting.
func (c *Context) child() *Context {
	n := &Context{
		shadows:       c.shadows,
		sharedShadows: true,
		mirrored:      c.mirrored,
	}
	if c.lighting != nil {
		li := *c.lighting
		n.lighting = &li
	}
	return n
}
