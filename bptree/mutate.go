package bptree

// storeKeyValue writes suffix and payload into slotID's heap region,
// updating dataOffset/spaceUsed and the slot header (spec.md §4.4 step
// 4). suffix is the key already stripped of the page's prefix.
func (p *page) storeKeyValue(slotID int, suffix, payload []byte) {
	space := len(suffix) + len(payload)
	newOffset := p.dataOffset() - space
	p.setDataOffset(uint16(newOffset))
	p.setSpaceUsed(p.spaceUsed() + space)

	s := slotView{
		offset:     uint16(newOffset),
		keyLen:     uint16(len(suffix)),
		payloadLen: uint16(len(payload)),
		head:       head(suffix),
	}
	p.setSlot(slotID, s)
	copy(p.buf[newOffset:], suffix)
	copy(p.buf[newOffset+len(suffix):], payload)
}

// insert adds key/payload to the page, returning false if there is no
// room even after compaction (spec.md §4.4). key is the full key,
// including the page's prefix.
func (p *page) insert(key, payload []byte) bool {
	suffix := key[p.prefixLength():]
	if !p.requestSpaceFor(p.spaceNeeded(len(key), len(payload))) {
		return false
	}
	slotID := p.lowerBound(key).index
	p.shiftSlotsRight(slotID, 1)
	p.storeKeyValue(slotID, suffix, payload)
	p.setCount(p.count() + 1)
	p.updateHint(slotID)
	return true
}

// shiftSlotsRight moves the slot-array tail [from, count) right by n
// slots, making room for an insert at "from" (spec.md §4.4 step 3).
func (p *page) shiftSlotsRight(from, n int) {
	count := p.count()
	src := p.buf[p.slotAt(from):p.slotAt(count)]
	dst := p.buf[p.slotAt(from+n):]
	copy(dst, src)
}

// shiftSlotsLeft moves the slot-array tail (from, count) left by one
// slot, closing the gap left by removing slot "from" (spec.md §4.5).
func (p *page) shiftSlotsLeft(from int) {
	count := p.count()
	src := p.buf[p.slotAt(from+1):p.slotAt(count)]
	dst := p.buf[p.slotAt(from):]
	copy(dst, src)
}

// removeSlot drops slotID, closing the slot array and rebuilding the
// hint array (spec.md §4.5).
func (p *page) removeSlot(slotID int) {
	s := p.slot(slotID)
	p.setSpaceUsed(p.spaceUsed() - int(s.keyLen) - int(s.payloadLen))
	p.shiftSlotsLeft(slotID)
	p.setCount(p.count() - 1)
	p.makeHint()
}

// remove finds key by lowerBound and removes it if present, per
// spec.md §4.5.
func (p *page) remove(key []byte) bool {
	r := p.lowerBound(key)
	if !r.exact {
		return false
	}
	p.removeSlot(r.index)
	return true
}

// insertFence copies key into the heap and records its offset/length as
// the lower fence if isLower, else as the upper fence (spec.md §4.8's
// setFences, via the original's insertFence helper).
func (p *page) insertFence(isLower bool, key []byte) {
	newOffset := p.dataOffset() - len(key)
	p.setDataOffset(uint16(newOffset))
	p.setSpaceUsed(p.spaceUsed() + len(key))
	copy(p.buf[newOffset:], key)
	if isLower {
		p.setLowerFence(uint16(newOffset), uint16(len(key)))
	} else {
		p.setUpperFence(uint16(newOffset), uint16(len(key)))
	}
}

// setFences installs the page's fence keys and recomputes prefixLength
// as their common byte prefix (spec.md §4.1, §4.8).
func (p *page) setFences(lower, upper []byte) {
	p.insertFence(true, lower)
	p.insertFence(false, upper)
	n := minInt(len(lower), len(upper))
	i := 0
	for i < n && lower[i] == upper[i] {
		i++
	}
	p.setPrefixLength(i)
}

// compactify rebuilds the page in a temporary image with the same
// fences (recomputing nothing else) and bitwise-overwrites the original,
// per spec.md §4.6. The temporary image's prefixLength is identical to
// the source's because its fences are unchanged, so copyKeyValueRangeTo
// always takes the "prefix grows" (no-op growth) path here.
func (p *page) compactify() {
	tmp := newPage(p.id, uint32(p.size()), p.tagByte())
	tmp.setFences(p.getLowerFence(), p.getUpperFence())
	p.copyKeyValueRangeTo(tmp, 0, 0, p.count())
	tmp.setUpper(p.upper())
	copy(p.buf, tmp.buf)
	p.makeHint()
}

// copyKeyValueRangeTo copies srcCount slots starting at srcStart in p
// into dst starting at dstStart, re-truncating keys against dst's
// (possibly different) prefix, per spec.md §4.7.
func (p *page) copyKeyValueRangeTo(dst *page, dstStart, srcStart, srcCount int) {
	if p.prefixLength() <= dst.prefixLength() {
		diff := dst.prefixLength() - p.prefixLength()
		for i := 0; i < srcCount; i++ {
			s := p.slot(srcStart + i)
			newKeyLen := int(s.keyLen) - diff
			suffix := p.getKey(srcStart + i)[diff:]
			payload := p.getPayload(srcStart + i)
			dst.storeKeyValue(dstStart+i, suffix[:newKeyLen], payload)
		}
	} else {
		for i := 0; i < srcCount; i++ {
			p.copyKeyValueTo(srcStart+i, dst, dstStart+i)
		}
	}
	dst.setCount(dst.count() + srcCount)
}

// copyKeyValueTo reconstructs the full key for slot srcSlot (prefix +
// stored suffix) and stores it into dst, which re-truncates against its
// own (smaller) prefix via storeKeyValue's caller contract. Used when
// dst's prefix is smaller than p's, i.e. during merge (spec.md §4.7).
func (p *page) copyKeyValueTo(srcSlot int, dst *page, dstSlot int) {
	s := p.slot(srcSlot)
	full := make([]byte, p.prefixLength()+int(s.keyLen))
	copy(full, p.getPrefix())
	copy(full[p.prefixLength():], p.getKey(srcSlot))
	dst.storeKeyValue(dstSlot, full[dst.prefixLength():], p.getPayload(srcSlot))
}
