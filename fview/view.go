// SPDX-License-Identifier: GPL-2.0-or-later

// Package fview implements the state threaded through a recursive frustum
// traversal of the world: a stack of contexts holding the light frustum and
// the shadows collected so far, and the query wide parameters.
package fview

import (
	"fmt"

	"github.com/google/uuid"

	"gocs/shadow"
)

// Object is anything a traversal visits.
type Object interface {
	Flags() uint32
}

// Visitor decides what a visit means, lighting or shadow casting.
type Visitor interface {
	Visit(obj Object, fv *View, visible bool)
}

type VisitorFunc func(obj Object, fv *View, visible bool)

func (f VisitorFunc) Visit(obj Object, fv *View, visible bool) {
	f(obj, fv, visible)
}

type View struct {
	id    uuid.UUID
	stack []*Context

	radius   float32
	sqRadius float32

	thingShadows bool
	shadowMask   uint32
	shadowValue  uint32
	processMask  uint32
	processValue uint32
	dynamic      bool

	visitor  Visitor
	userData any

	creates  int
	restores int
}

// New returns a view with a root context that owns an empty shadow list.
func New(visitor Visitor) *View {
	root := &Context{
		shadows:   shadow.NewList(),
		firstTime: true,
	}
	return &View{
		id:      newID(),
		stack:   []*Context{root},
		visitor: visitor,
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ID identifies the traversal in logs.
func (v *View) ID() uuid.UUID {
	return v.id
}

// Context returns the current context.
func (v *View) Context() *Context {
	return v.stack[len(v.stack)-1]
}

// Depth returns the number of contexts pushed above the root.
func (v *View) Depth() int {
	return len(v.stack) - 1
}

// CreateFrustumContext pushes a child of the current context and returns
// the previous one, to be handed to RestoreFrustumContext. The child shares
// the parent's shadows but has no light frustum.
func (v *View) CreateFrustumContext() *Context {
	parent := v.Context()
	v.stack = append(v.stack, parent.child())
	v.creates++
	return parent
}

// RestoreFrustumContext pops contexts until saved is current again. Every
// popped context runs its cleanup actions and releases its own shadows.
func (v *View) RestoreFrustumContext(saved *Context) {
	idx := -1
	for i := len(v.stack) - 1; i >= 0; i-- {
		if v.stack[i] == saved {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic(fmt.Sprintf("fview: restore of a context not on the stack of view %v", v.id))
	}
	for len(v.stack)-1 > idx {
		top := v.stack[len(v.stack)-1]
		top.runCleanups(v)
		if !top.sharedShadows {
			top.shadows.DeleteAllShadows()
		}
		v.stack[len(v.stack)-1] = nil
		v.stack = v.stack[:len(v.stack)-1]
		v.restores++
	}
}

// Balance returns the number of context creations and restorations.
func (v *View) Balance() (creates, restores int) {
	return v.creates, v.restores
}

// StartNewShadowBlock appends an empty block for the current recursion
// level. A context that still shares its parent's shadows first gets a list
// of its own.
func (v *View) StartNewShadowBlock() *shadow.Block {
	ctx := v.Context()
	if ctx.sharedShadows {
		ctx.SetShadows(shadow.NewList(), false)
	}
	return ctx.shadows.NewShadowBlock(nil, v.Depth())
}

// CallObjectFunction hands obj to the visitor.
func (v *View) CallObjectFunction(obj Object, visible bool) {
	if v.visitor != nil {
		v.visitor.Visit(obj, v, visible)
	}
}

func (v *View) SetRadius(r float32) {
	v.radius = r
	v.sqRadius = r * r
}

func (v *View) Radius() float32 {
	return v.radius
}

func (v *View) SquaredRadius() float32 {
	return v.sqRadius
}

func (v *View) EnableThingShadows(e bool) {
	v.thingShadows = e
}

func (v *View) ThingShadowsEnabled() bool {
	return v.thingShadows
}

func (v *View) SetShadowMask(mask, value uint32) {
	v.shadowMask = mask
	v.shadowValue = value
}

func (v *View) SetProcessMask(mask, value uint32) {
	v.processMask = mask
	v.processValue = value
}

// CheckShadowMask reports whether an object with these flags casts shadows.
func (v *View) CheckShadowMask(flags uint32) bool {
	return flags&v.shadowMask == v.shadowValue
}

// CheckProcessMask reports whether an object with these flags is visited.
func (v *View) CheckProcessMask(flags uint32) bool {
	return flags&v.processMask == v.processValue
}

func (v *View) SetDynamic(d bool) {
	v.dynamic = d
}

func (v *View) IsDynamic() bool {
	return v.dynamic
}

func (v *View) SetUserData(ud any) {
	v.userData = ud
}

func (v *View) UserData() any {
	return v.userData
}
