// SPDX-License-Identifier: GPL-2.0-or-later

package shadow

// Iterator walks the shadows of a block or of a whole list in a fixed
// direction. Only one iterator may modify a list at a time.
type Iterator struct {
	list    *List
	single  *Block
	reverse bool

	// position of the next shadow
	bi, si int
	// position of the shadow last returned, lbi < 0 if none
	lbi, lsi int
}

func (it *Iterator) numBlocks() int {
	if it.single != nil {
		return 1
	}
	return len(it.list.blocks)
}

func (it *Iterator) block(i int) *Block {
	if it.single != nil {
		return it.single
	}
	return it.list.blocks[i]
}

func (it *Iterator) normalize() {
	if it.reverse {
		for it.bi >= 0 && it.si < 0 {
			it.bi--
			if it.bi >= 0 {
				it.si = it.block(it.bi).Len() - 1
			}
		}
		return
	}
	for it.bi < it.numBlocks() && it.si >= it.block(it.bi).Len() {
		it.bi++
		it.si = 0
	}
}

// Reset restarts the iteration.
func (it *Iterator) Reset() {
	it.lbi = -1
	if it.reverse {
		it.bi = it.numBlocks() - 1
		it.si = -1
		if it.bi >= 0 {
			it.si = it.block(it.bi).Len() - 1
		}
	} else {
		it.bi = 0
		it.si = 0
	}
	it.normalize()
}

func (it *Iterator) HasNext() bool {
	if it.reverse {
		return it.bi >= 0
	}
	return it.bi < it.numBlocks()
}

// Next returns the next shadow or nil at the end.
func (it *Iterator) Next() *Frustum {
	if !it.HasNext() {
		return nil
	}
	s := it.block(it.bi).shadows[it.si]
	it.lbi, it.lsi = it.bi, it.si
	if it.reverse {
		it.si--
	} else {
		it.si++
	}
	it.normalize()
	return s
}

func (it *Iterator) current() *Frustum {
	if it.lbi < 0 {
		return nil
	}
	return it.block(it.lbi).shadows[it.lsi]
}

// UserData returns the caster of the shadow last returned by Next.
func (it *Iterator) UserData() any {
	if s := it.current(); s != nil {
		return s.userData
	}
	return nil
}

func (it *Iterator) IsRelevant() bool {
	if s := it.current(); s != nil {
		return s.relevant
	}
	return false
}

func (it *Iterator) MarkRelevant(r bool) {
	if s := it.current(); s != nil {
		s.relevant = r
	}
}

// DeleteCurrent removes the shadow last returned by Next from its block.
func (it *Iterator) DeleteCurrent() {
	if it.lbi < 0 {
		return
	}
	it.block(it.lbi).UnlinkShadow(it.lsi)
	if !it.reverse && it.bi == it.lbi {
		it.si--
	}
	it.lbi = -1
	it.normalize()
}
