package bptree

// tryMerge attempts to fold right's contents into left, producing a
// single page with left's lower fence and right's upper fence. sepKey is
// the separator the parent currently holds between them (needed for the
// inner case, where it becomes the key promoted alongside left's upper
// pointer). It mutates left in place and returns false, leaving both
// pages untouched, when the combined contents would not fit even with a
// widened prefix (spec.md §4.9, ported from btree2020.cpp mergeNodes).
func (left *page) tryMerge(sepKey []byte, right *page) bool {
	if left.isLeaf() != right.isLeaf() {
		panic("bptree: cannot merge a leaf with an inner node")
	}
	tmp := newPage(left.id, uint32(left.size()), left.tagByte())
	tmp.setFences(left.getLowerFence(), right.getUpperFence())

	if left.isLeaf() {
		leftGrow := (left.prefixLength() - tmp.prefixLength()) * left.count()
		rightGrow := (right.prefixLength() - tmp.prefixLength()) * right.count()
		spaceUpperBound := left.spaceUsed() + right.spaceUsed() +
			slotSize*(left.count()+right.count()) + leftGrow + rightGrow
		if spaceUpperBound > tmp.size()-headerSize {
			return false
		}
		left.copyKeyValueRangeTo(tmp, 0, 0, left.count())
		right.copyKeyValueRangeTo(tmp, left.count(), 0, right.count())
		tmp.makeHint()
		copy(left.buf, tmp.buf)
		return true
	}

	// Inner merge: left's upper child is demoted into an ordinary slot
	// keyed by the separator pulled up from the parent; right's entries
	// and upper follow unchanged.
	leftGrow := (left.prefixLength() - tmp.prefixLength()) * left.count()
	rightGrow := (right.prefixLength() - tmp.prefixLength()) * right.count()
	extra := len(sepKey) - tmp.prefixLength() + 8
	spaceUpperBound := left.spaceUsed() + right.spaceUsed() +
		slotSize*(left.count()+right.count()+1) + leftGrow + rightGrow + extra
	if spaceUpperBound > tmp.size()-headerSize {
		return false
	}
	left.copyKeyValueRangeTo(tmp, 0, 0, left.count())
	tmp.insert(sepKey, encodeChild(left.upper()))
	right.copyKeyValueRangeTo(tmp, tmp.count(), 0, right.count())
	tmp.setUpper(right.upper())
	tmp.makeHint()
	copy(left.buf, tmp.buf)
	return true
}
