// Package bptree implements an in-memory ordered key-value index as a
// B+Tree of fixed-size slotted pages: prefix-truncated keys, an
// order-preserving 4-byte key head, search hints, compaction, and
// separator-truncating splits. See original_source/btree2020.cpp for the
// reference this port follows field-for-field.
package bptree

import "encoding/binary"

// PageID identifies a page within a Tree's arena. It plays the role the
// original C++ gives a raw BTreeNode*: an inner node's child slots and
// upper field store PageIDs as their payload, and PageID 0 never names a
// live page (it is the zero value / "no page").
//
// Using an arena index instead of a real pointer is the "preferred
// rewrite" spec.md §9 calls out for safe languages, and it is what makes
// persist.Dump/Load possible: a page's bytes, read back verbatim, still
// point at the right children because the IDs embedded in them are
// stable across a dump/reload instead of being addresses of freed Go
// memory.
type PageID uint64

const (
	headerSize = 96
	slotSize   = 10
	hintCount  = 16
)

// Offsets within the fixed header (see the package doc and spec.md §4.1).
const (
	offTag         = 0
	offUpper       = 8
	offLowerFenceO = 16
	offLowerFenceL = 18
	offUpperFenceO = 20
	offUpperFenceL = 22
	offCount       = 24
	offSpaceUsed   = 26
	offDataOffset  = 28
	offPrefixLen   = 30
	offHints       = 32 // hintCount * 4 bytes, ends at 32+64=96
)

type tag uint8

const (
	tagLeaf  tag = 0
	tagInner tag = 1
)

// page is a fixed-size byte buffer laid out exactly as spec.md §4.1
// describes: a header, a slot array growing up from the front, and a
// heap growing down from the back. It is the bit-exact representation;
// everything else in this package is an interpretation of these bytes,
// never a separate copy of them (spec.md §9 "Tagged-variant node
// dispatch").
type page struct {
	id  PageID
	buf []byte
}

func newPage(id PageID, size uint32, t tag) *page {
	p := &page{id: id, buf: make([]byte, size)}
	p.setTag(t)
	p.setDataOffset(uint16(size))
	return p
}

func (p *page) size() int { return len(p.buf) }

func (p *page) tagByte() tag        { return tag(p.buf[offTag]) }
func (p *page) setTag(t tag)        { p.buf[offTag] = byte(t) }
func (p *page) isLeaf() bool        { return p.tagByte() == tagLeaf }
func (p *page) isInner() bool       { return p.tagByte() == tagInner }

func (p *page) upper() PageID {
	return PageID(binary.LittleEndian.Uint64(p.buf[offUpper:]))
}
func (p *page) setUpper(id PageID) {
	binary.LittleEndian.PutUint64(p.buf[offUpper:], uint64(id))
}

func (p *page) lowerFenceOffset() uint16 { return binary.LittleEndian.Uint16(p.buf[offLowerFenceO:]) }
func (p *page) lowerFenceLength() uint16 { return binary.LittleEndian.Uint16(p.buf[offLowerFenceL:]) }
func (p *page) upperFenceOffset() uint16 { return binary.LittleEndian.Uint16(p.buf[offUpperFenceO:]) }
func (p *page) upperFenceLength() uint16 { return binary.LittleEndian.Uint16(p.buf[offUpperFenceL:]) }

func (p *page) setLowerFence(offset, length uint16) {
	binary.LittleEndian.PutUint16(p.buf[offLowerFenceO:], offset)
	binary.LittleEndian.PutUint16(p.buf[offLowerFenceL:], length)
}
func (p *page) setUpperFence(offset, length uint16) {
	binary.LittleEndian.PutUint16(p.buf[offUpperFenceO:], offset)
	binary.LittleEndian.PutUint16(p.buf[offUpperFenceL:], length)
}

func (p *page) count() int          { return int(binary.LittleEndian.Uint16(p.buf[offCount:])) }
func (p *page) setCount(n int)      { binary.LittleEndian.PutUint16(p.buf[offCount:], uint16(n)) }
func (p *page) spaceUsed() int      { return int(binary.LittleEndian.Uint16(p.buf[offSpaceUsed:])) }
func (p *page) setSpaceUsed(n int)  { binary.LittleEndian.PutUint16(p.buf[offSpaceUsed:], uint16(n)) }
func (p *page) dataOffset() int     { return int(binary.LittleEndian.Uint16(p.buf[offDataOffset:])) }
func (p *page) setDataOffset(n uint16) {
	binary.LittleEndian.PutUint16(p.buf[offDataOffset:], n)
}
func (p *page) prefixLength() int { return int(binary.LittleEndian.Uint16(p.buf[offPrefixLen:])) }
func (p *page) setPrefixLength(n int) {
	binary.LittleEndian.PutUint16(p.buf[offPrefixLen:], uint16(n))
}

func (p *page) hint(i int) uint32 {
	return binary.LittleEndian.Uint32(p.buf[offHints+4*i:])
}
func (p *page) setHint(i int, v uint32) {
	binary.LittleEndian.PutUint32(p.buf[offHints+4*i:], v)
}

// getPrefix returns the page's stored prefix, which lives at the
// lowerFence's offset (spec.md §3 "Prefix").
func (p *page) getPrefix() []byte {
	o := p.lowerFenceOffset()
	return p.buf[o : int(o)+p.prefixLength()]
}

func (p *page) getLowerFence() []byte {
	o := p.lowerFenceOffset()
	l := p.lowerFenceLength()
	return p.buf[o : int(o)+int(l)]
}

func (p *page) getUpperFence() []byte {
	o := p.upperFenceOffset()
	l := p.upperFenceLength()
	return p.buf[o : int(o)+int(l)]
}

// --- slot array -----------------------------------------------------------

type slotView struct {
	offset     uint16
	keyLen     uint16
	payloadLen uint16
	head       uint32
}

func (p *page) slotAt(i int) int { return headerSize + i*slotSize }

func (p *page) slot(i int) slotView {
	o := p.slotAt(i)
	b := p.buf[o : o+slotSize]
	return slotView{
		offset:     binary.LittleEndian.Uint16(b[0:2]),
		keyLen:     binary.LittleEndian.Uint16(b[2:4]),
		payloadLen: binary.LittleEndian.Uint16(b[4:6]),
		head:       binary.LittleEndian.Uint32(b[6:10]),
	}
}

func (p *page) setSlot(i int, s slotView) {
	o := p.slotAt(i)
	b := p.buf[o : o+slotSize]
	binary.LittleEndian.PutUint16(b[0:2], s.offset)
	binary.LittleEndian.PutUint16(b[2:4], s.keyLen)
	binary.LittleEndian.PutUint16(b[4:6], s.payloadLen)
	binary.LittleEndian.PutUint32(b[6:10], s.head)
}

func (p *page) setSlotHead(i int, h uint32) {
	o := p.slotAt(i) + 6
	binary.LittleEndian.PutUint32(p.buf[o:o+4], h)
}

// getKey returns the stored (prefix-truncated) key suffix for slot i.
func (p *page) getKey(i int) []byte {
	s := p.slot(i)
	return p.buf[s.offset : int(s.offset)+int(s.keyLen)]
}

// getPayload returns the payload for slot i: a user value on a leaf, or
// a pointer-width PageID on an inner node.
func (p *page) getPayload(i int) []byte {
	s := p.slot(i)
	start := int(s.offset) + int(s.keyLen)
	return p.buf[start : start+int(s.payloadLen)]
}

// getChild reads slot i's payload as a PageID (inner nodes only).
func (p *page) getChild(i int) PageID {
	return PageID(binary.LittleEndian.Uint64(p.getPayload(i)))
}

// encodeChild renders a PageID as the 8-byte payload inner slots store.
func encodeChild(id PageID) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(id))
	return b
}

// setChildAt overwrites slot i's payload bytes in place with id, without
// touching the slot's key or shifting anything else (inner nodes only;
// the payload is always 8 bytes). Used when a merge leaves a slot
// pointing at the page that was absorbed rather than the survivor.
func (p *page) setChildAt(i int, id PageID) {
	copy(p.getPayload(i), encodeChild(id))
}

// fullKey reconstructs slot i's complete key (prefix + stored suffix).
func (p *page) fullKey(i int) []byte {
	full := make([]byte, p.prefixLength()+int(p.slot(i).keyLen))
	copy(full, p.getPrefix())
	copy(full[p.prefixLength():], p.getKey(i))
	return full
}

// freeSpace is the gap between the end of the slot array and the start
// of the heap (spec.md §4.1).
func (p *page) freeSpace() int {
	return p.dataOffset() - p.slotAt(p.count())
}

// freeSpaceAfterCompaction is the free space the page would have once
// rebuilt with no gaps (spec.md §4.1).
func (p *page) freeSpaceAfterCompaction() int {
	return p.size() - p.slotAt(p.count()) - p.spaceUsed()
}

func (p *page) requestSpaceFor(needed int) bool {
	if needed <= p.freeSpace() {
		return true
	}
	if needed <= p.freeSpaceAfterCompaction() {
		p.compactify()
		return true
	}
	return false
}

// spaceNeeded is how many bytes inserting a key of length keyLength with
// a payloadLength-byte payload would cost on this page (spec.md §4.1).
func (p *page) spaceNeeded(keyLength, payloadLength int) int {
	return slotSize + (keyLength - p.prefixLength()) + payloadLength
}
