package bptree

// separatorInfo describes the key a split promotes to the parent
// (spec.md §4.8 step 1).
type separatorInfo struct {
	length      int  // full length, including the page's prefix
	slot        int  // slot at which the page splits
	isTruncated bool // if true, the separator's suffix comes from slot+1
}

// commonPrefix returns how many leading bytes slot a and slot b share
// (spec.md §4.8's separator-truncation step).
func (p *page) commonPrefix(a, b int) int {
	sa, sb := p.slot(a), p.slot(b)
	limit := minInt(int(sa.keyLen), int(sb.keyLen))
	ka, kb := p.getKey(a), p.getKey(b)
	i := 0
	for i < limit && ka[i] == kb[i] {
		i++
	}
	return i
}

// findSeparator picks the slot to split on and, where possible, a
// truncated separator shorter than the full key at that slot (spec.md
// §4.8 step 1, ported from btree2020.cpp findSep).
func (p *page) findSeparator() separatorInfo {
	count := p.count()
	if p.isInner() {
		slotID := count / 2
		return separatorInfo{p.prefixLength() + int(p.slot(slotID).keyLen), slotID, false}
	}

	var lower, upper int
	if count < 4 {
		lower = count / 2
		upper = lower + 1
	} else {
		lower = count/2 - count/16
		upper = count/2 + count/16
	}

	best := count / 2
	bestPrefix := p.commonPrefix(best, 0)
	for i := lower; i < upper; i++ {
		if pfx := p.commonPrefix(i, 0); pfx > bestPrefix {
			bestPrefix = pfx
			best = i
		}
	}

	common := 0
	if best+1 < count {
		common = p.commonPrefix(best, best+1)
	}
	if best+1 < count && int(p.slot(best).keyLen) > common && int(p.slot(best+1).keyLen) > common+1 {
		return separatorInfo{p.prefixLength() + common + 1, best, true}
	}
	return separatorInfo{p.prefixLength() + int(p.slot(best).keyLen), best, false}
}

// getSeparator materializes the full separator key described by info:
// the page's prefix followed by info.length-prefixLength suffix bytes
// taken from slot (info.slot + 1 if truncated, else info.slot) (spec.md
// §4.8, ported from btree2020.cpp getSep).
func (p *page) getSeparator(info separatorInfo) []byte {
	key := make([]byte, info.length)
	copy(key, p.getPrefix())
	srcSlot := info.slot
	if info.isTruncated {
		srcSlot++
	}
	copy(key[p.prefixLength():], p.getKey(srcSlot)[:info.length-p.prefixLength()])
	return key
}

// split rebuilds p as a freshly-fenced left/right pair: left is a brand
// new page, right is the temporary image that ends up bitwise-copied
// back onto p, so p's identity (and therefore the parent's existing
// reference to it) becomes the right sibling (spec.md §4.8 steps 3-5).
// sepSlot/sepKey must come from this same page's findSeparator/
// getSeparator. The separator is inserted into parent by the caller
// (tree.go), which also owns retrying when the parent itself has no
// room.
func (p *page) split(left *page, sepSlot int, sepKey []byte) {
	right := newPage(p.id, uint32(p.size()), p.tagByte())
	left.setFences(p.getLowerFence(), sepKey)
	right.setFences(sepKey, p.getUpperFence())

	if p.isLeaf() {
		p.copyKeyValueRangeTo(left, 0, 0, sepSlot+1)
		p.copyKeyValueRangeTo(right, 0, sepSlot+1, p.count()-(sepSlot+1))
	} else {
		p.copyKeyValueRangeTo(left, 0, 0, sepSlot)
		p.copyKeyValueRangeTo(right, 0, sepSlot+1, p.count()-sepSlot-1)
		left.setUpper(p.getChild(sepSlot))
		right.setUpper(p.upper())
	}
	left.makeHint()
	right.makeHint()
	copy(p.buf, right.buf)
}
