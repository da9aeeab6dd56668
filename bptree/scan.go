package bptree

// ScanAscending calls fn(key, payload) for every stored key >= start, in
// ascending order, until fn returns false or the tree is exhausted.
// There are no sibling pointers (spec.md §3 Non-goals): moving past a
// leaf's last slot re-descends from the root using a key built from that
// leaf's (inclusive) upper fence with a trailing zero byte appended,
// which is the smallest key strictly greater than the fence.
func (t *Tree) ScanAscending(start []byte, fn func(key, payload []byte) bool) {
	leaf := t.descendToLeaf(start)
	slot := leaf.lowerBound(start).index
	for {
		for slot < leaf.count() {
			if !fn(leaf.fullKey(slot), leaf.getPayload(slot)) {
				return
			}
			slot++
		}
		upper := leaf.getUpperFence()
		if len(upper) == 0 {
			return
		}
		next := make([]byte, len(upper)+1)
		copy(next, upper)
		leaf = t.descendToLeaf(next)
		slot = 0
	}
}

// ScanDescending calls fn(key, payload) for every stored key <= start,
// in descending order, until fn returns false or the tree is exhausted.
// A leaf's (exclusive) lower fence is, by construction, the previous
// leaf's upper fence, so re-descending with it lands exactly on the
// previous leaf.
func (t *Tree) ScanDescending(start []byte, fn func(key, payload []byte) bool) {
	leaf := t.descendToLeaf(start)
	r := leaf.lowerBound(start)
	slot := r.index
	if !r.exact {
		slot--
	}
	for {
		for slot >= 0 {
			if !fn(leaf.fullKey(slot), leaf.getPayload(slot)) {
				return
			}
			slot--
		}
		lower := leaf.getLowerFence()
		if len(lower) == 0 {
			return
		}
		leaf = t.descendToLeaf(lower)
		slot = leaf.count() - 1
	}
}
