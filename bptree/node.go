package bptree

import "fmt"

func newLeaf(id PageID, size uint32) *page  { return newPage(id, size, tagLeaf) }
func newInner(id PageID, size uint32) *page { return newPage(id, size, tagInner) }

// validate checks the structural invariants spec.md §8 expects to hold
// of any page at rest: slots sorted by key, fences bracket every stored
// key, and the prefix matches both fences. It is used by tests, not by
// any production code path.
func (p *page) validate() error {
	if p.count() > 0 {
		if lf := p.getLowerFence(); len(lf) > 0 {
			if cmpFull(p, 0, lf) < 0 {
				return fmt.Errorf("slot 0 key precedes lower fence")
			}
		}
		uf := p.getUpperFence()
		last := p.count() - 1
		if len(uf) > 0 && cmpFull(p, last, uf) > 0 {
			return fmt.Errorf("slot %d key exceeds upper fence", last)
		}
	}
	for i := 1; i < p.count(); i++ {
		prev := append(append([]byte{}, p.getPrefix()...), p.getKey(i-1)...)
		cur := append(append([]byte{}, p.getPrefix()...), p.getKey(i)...)
		if bytesCompare(prev, cur) >= 0 {
			return fmt.Errorf("slots %d and %d out of order", i-1, i)
		}
	}
	lf, uf := p.getLowerFence(), p.getUpperFence()
	n := minInt(len(lf), len(uf))
	i := 0
	for i < n && lf[i] == uf[i] {
		i++
	}
	if p.count() > 0 && p.prefixLength() != i {
		return fmt.Errorf("prefixLength %d does not match fence agreement %d", p.prefixLength(), i)
	}
	return nil
}

func cmpFull(p *page, slot int, other []byte) int {
	full := append(append([]byte{}, p.getPrefix()...), p.getKey(slot)...)
	return bytesCompare(full, other)
}

func bytesCompare(a, b []byte) int {
	n := minInt(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
