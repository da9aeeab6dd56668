package bptree

import "testing"

func TestPageInsertLookupRoundTrip(t *testing.T) {
	p := newLeaf(1, defaultPageSize)
	p.setFences(nil, nil)

	keys := [][]byte{[]byte("banana"), []byte("apple"), []byte("cherry"), []byte("date")}
	for i, k := range keys {
		if !p.insert(k, []byte{byte(i)}) {
			t.Fatalf("insert %q failed", k)
		}
	}
	if err := p.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	for i, k := range keys {
		r := p.lowerBound(k)
		if !r.exact {
			t.Fatalf("lowerBound(%q) not exact", k)
		}
		payload := p.getPayload(r.index)
		if len(payload) != 1 || payload[0] != byte(i) {
			t.Fatalf("payload for %q = %v, want [%d]", k, payload, i)
		}
	}
}

func TestPageLowerBoundOrdersBySuffix(t *testing.T) {
	p := newLeaf(1, defaultPageSize)
	p.setFences(nil, nil)
	for _, k := range [][]byte{[]byte("b"), []byte("d"), []byte("f")} {
		p.insert(k, []byte("v"))
	}
	r := p.lowerBound([]byte("c"))
	if r.exact {
		t.Fatalf("lowerBound(c) should not be exact")
	}
	if got := string(p.getKey(r.index)); got != "d" {
		t.Fatalf("lowerBound(c).index -> key %q, want d", got)
	}
}

func TestPageRemove(t *testing.T) {
	p := newLeaf(1, defaultPageSize)
	p.setFences(nil, nil)
	p.insert([]byte("x"), []byte("1"))
	p.insert([]byte("y"), []byte("2"))
	if !p.remove([]byte("x")) {
		t.Fatalf("remove(x) = false")
	}
	if p.remove([]byte("x")) {
		t.Fatalf("second remove(x) should fail")
	}
	r := p.lowerBound([]byte("y"))
	if !r.exact {
		t.Fatalf("y missing after removing x")
	}
}

func TestPagePrefixTruncation(t *testing.T) {
	p := newLeaf(1, defaultPageSize)
	p.setFences([]byte("fruit/apple"), []byte("fruit/pear"))
	if p.prefixLength() != len("fruit/") {
		t.Fatalf("prefixLength = %d, want %d", p.prefixLength(), len("fruit/"))
	}
	p.insert([]byte("fruit/grape"), []byte("v"))
	if got := string(p.getKey(0)); got != "grape" {
		t.Fatalf("stored suffix = %q, want %q", got, "grape")
	}
	r := p.lowerBound([]byte("fruit/grape"))
	if !r.exact {
		t.Fatalf("lowerBound on full key failed after prefix truncation")
	}
}

func TestPageCompactifyPreservesContents(t *testing.T) {
	p := newLeaf(1, defaultPageSize)
	p.setFences(nil, nil)
	for i := 0; i < 20; i++ {
		k := []byte{byte('a' + i)}
		p.insert(k, []byte("payload"))
	}
	for i := 0; i < 20; i += 2 {
		p.remove([]byte{byte('a' + i)})
	}
	before := p.count()
	p.compactify()
	if p.count() != before {
		t.Fatalf("compactify changed count: %d -> %d", before, p.count())
	}
	if err := p.validate(); err != nil {
		t.Fatalf("validate after compactify: %v", err)
	}
	for i := 1; i < 20; i += 2 {
		r := p.lowerBound([]byte{byte('a' + i)})
		if !r.exact {
			t.Fatalf("key %c missing after compactify", 'a'+i)
		}
	}
}

func TestHeadOrderPreserving(t *testing.T) {
	cases := [][]byte{
		[]byte(""), []byte("a"), []byte("aa"), []byte("ab"),
		[]byte("b"), []byte("ba"), []byte("bb"), []byte("z"),
	}
	for i := 1; i < len(cases); i++ {
		if head(cases[i-1]) > head(cases[i]) {
			t.Fatalf("head(%q)=%d > head(%q)=%d, want non-decreasing",
				cases[i-1], head(cases[i-1]), cases[i], head(cases[i]))
		}
	}
}

func TestRequestSpaceForTriggersCompaction(t *testing.T) {
	p := newLeaf(1, minPageSize)
	p.setFences(nil, nil)
	i := 0
	for p.insert([]byte{byte(i)}, make([]byte, 8)) {
		i++
	}
	for j := 0; j < i; j += 2 {
		p.remove([]byte{byte(j)})
	}
	freeBefore := p.freeSpace()
	freeAfter := p.freeSpaceAfterCompaction()
	if freeAfter <= freeBefore {
		t.Fatalf("freeSpaceAfterCompaction (%d) should exceed freeSpace (%d) once fragmented", freeAfter, freeBefore)
	}
	if !p.requestSpaceFor(freeBefore + 1) {
		t.Fatalf("requestSpaceFor(%d) = false, want true after compaction", freeBefore+1)
	}
	if p.freeSpace() != freeAfter {
		t.Fatalf("freeSpace after requestSpaceFor = %d, want %d (compacted)", p.freeSpace(), freeAfter)
	}
}
