// SPDX-License-Identifier: GPL-2.0-or-later

package shadow

// List is the ordered sequence of shadow blocks of one frustum context.
type List struct {
	blocks     []*Block
	region     uint32
	lastRegion uint32
}

func NewList() *List {
	return &List{}
}

func (l *List) Len() int {
	return len(l.blocks)
}

// Blocks returns the blocks in order. The slice is owned by the list.
func (l *List) Blocks() []*Block {
	return l.blocks
}

func (l *List) First() *Block {
	if len(l.blocks) == 0 {
		return nil
	}
	return l.blocks[0]
}

func (l *List) Last() *Block {
	if len(l.blocks) == 0 {
		return nil
	}
	return l.blocks[len(l.blocks)-1]
}

// NumShadows returns the number of shadow listings over all blocks.
func (l *List) NumShadows() int {
	n := 0
	for _, b := range l.blocks {
		n += len(b.shadows)
	}
	return n
}

// NewShadowBlock creates a block and appends it.
func (l *List) NewShadowBlock(sector any, recLevel int) *Block {
	b := NewBlock(sector, recLevel)
	l.AppendShadowBlock(b)
	return b
}

// AppendShadowBlock appends b, which must not be in a list yet.
func (l *List) AppendShadowBlock(b *Block) {
	if b.list != nil {
		panic("shadow: block is already in a list")
	}
	b.list = l
	b.region = l.region
	l.blocks = append(l.blocks, b)
}

// RemoveLastShadowBlock detaches the last block and returns it. The block
// keeps its shadows.
func (l *List) RemoveLastShadowBlock() *Block {
	if len(l.blocks) == 0 {
		return nil
	}
	b := l.blocks[len(l.blocks)-1]
	l.blocks[len(l.blocks)-1] = nil
	l.blocks = l.blocks[:len(l.blocks)-1]
	b.list = nil
	return b
}

// DeleteAllShadows releases all shadows and drops all blocks.
func (l *List) DeleteAllShadows() {
	for i, b := range l.blocks {
		b.DeleteAllShadows()
		b.list = nil
		l.blocks[i] = nil
	}
	l.blocks = l.blocks[:0]
}

// MarkNewRegion starts a new region; blocks appended from now on belong to
// it. The previous region is returned for RestoreRegion.
func (l *List) MarkNewRegion() uint32 {
	prev := l.region
	l.lastRegion++
	l.region = l.lastRegion
	return prev
}

func (l *List) RestoreRegion(prev uint32) {
	l.region = prev
}

// FromCurrentRegion reports whether b was appended in the current region.
func (l *List) FromCurrentRegion(b *Block) bool {
	return b.list == l && b.region == l.region
}

// Iterator returns an iterator over all shadows of all blocks.
func (l *List) Iterator(reverse bool) *Iterator {
	it := &Iterator{list: l, reverse: reverse}
	it.Reset()
	return it
}
