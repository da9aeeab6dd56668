package persist

import (
	"fmt"
	"path/filepath"
	"testing"

	"slotkv/bptree"
)

func buildTree(t *testing.T, n int) (*bptree.Tree, bptree.Config) {
	cfg := bptree.Config{PageSize: 512}
	tr, err := bptree.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < n; i++ {
		tr.Insert([]byte(fmt.Sprintf("k%05d", i)), []byte(fmt.Sprintf("v%d", i)))
	}
	return tr, cfg
}

func TestDumpLoadMemPagerRoundTrip(t *testing.T) {
	tr, cfg := buildTree(t, 40)
	defer tr.Close()

	pager := NewMemPager()
	if err := Dump(tr, cfg, pager); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	loaded, err := Load(pager)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	for i := 0; i < 40; i++ {
		k := []byte(fmt.Sprintf("k%05d", i))
		got, ok := loaded.Lookup(k)
		if !ok {
			t.Fatalf("key %q missing after load", k)
		}
		if string(got) != fmt.Sprintf("v%d", i) {
			t.Fatalf("key %q = %q, want v%d", k, got, i)
		}
	}
}

func TestDumpLoadFilePagerRoundTrip(t *testing.T) {
	tr, cfg := buildTree(t, 40)
	defer tr.Close()

	path := filepath.Join(t.TempDir(), "index.db")
	pager, err := OpenFilePager(path, int(cfg.PageSize))
	if err != nil {
		t.Fatalf("OpenFilePager: %v", err)
	}
	if err := Dump(tr, cfg, pager); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if err := pager.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenFilePager(path, int(cfg.PageSize))
	if err != nil {
		t.Fatalf("re-open: %v", err)
	}
	defer reopened.Close()

	loaded, err := Load(reopened)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	got, ok := loaded.Lookup([]byte("k00020"))
	if !ok || string(got) != "v20" {
		t.Fatalf("lookup k00020 = (%q, %v), want (v20, true)", got, ok)
	}
}

func TestDumpRejectsOversizedIDList(t *testing.T) {
	tr, cfg := buildTree(t, 4000)
	defer tr.Close()

	pager := NewMemPager()
	if err := Dump(tr, cfg, pager); err == nil {
		t.Fatalf("Dump of an oversized tree should have failed")
	}
}

func TestCacheReadsThroughOnMiss(t *testing.T) {
	pager := NewMemPager()
	id, err := pager.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}
	want := make([]byte, 64)
	want[0] = 0xAB
	if err := pager.WritePage(id, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	cache, err := NewCache(pager, 100)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	got, err := cache.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got[0] != 0xAB {
		t.Fatalf("Get returned %v, want first byte 0xAB", got)
	}
}
