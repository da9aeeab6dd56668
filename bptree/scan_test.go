package bptree

import (
	"fmt"
	"testing"
)

func buildScanTree(t *testing.T, n int) *Tree {
	tr, err := New(Config{PageSize: 512})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < n; i++ {
		tr.Insert([]byte(fmt.Sprintf("k%05d", i)), []byte(fmt.Sprintf("v%d", i)))
	}
	return tr
}

func TestScanAscendingVisitsEveryKeyInOrder(t *testing.T) {
	const n = 600
	tr := buildScanTree(t, n)
	defer tr.Close()

	var got []string
	tr.ScanAscending(nil, func(key, payload []byte) bool {
		got = append(got, string(key))
		return true
	})
	if len(got) != n {
		t.Fatalf("scanned %d keys, want %d", len(got), n)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("scan not strictly ascending at %d: %q >= %q", i, got[i-1], got[i])
		}
	}
	if got[0] != "k00000" {
		t.Fatalf("first scanned key = %q, want k00000", got[0])
	}
}

func TestScanAscendingFromMidpoint(t *testing.T) {
	const n = 400
	tr := buildScanTree(t, n)
	defer tr.Close()

	start := []byte("k00200")
	var got []string
	tr.ScanAscending(start, func(key, payload []byte) bool {
		got = append(got, string(key))
		return true
	})
	if got[0] != "k00200" {
		t.Fatalf("first key from midpoint scan = %q, want k00200", got[0])
	}
	if len(got) != n-200 {
		t.Fatalf("scanned %d keys from midpoint, want %d", len(got), n-200)
	}
}

func TestScanAscendingStopsEarly(t *testing.T) {
	tr := buildScanTree(t, 200)
	defer tr.Close()

	count := 0
	tr.ScanAscending(nil, func(key, payload []byte) bool {
		count++
		return count < 10
	})
	if count != 10 {
		t.Fatalf("scan visited %d keys after early stop, want 10", count)
	}
}

func TestScanDescendingVisitsEveryKeyInOrder(t *testing.T) {
	const n = 600
	tr := buildScanTree(t, n)
	defer tr.Close()

	var got []string
	tr.ScanDescending([]byte("k99999"), func(key, payload []byte) bool {
		got = append(got, string(key))
		return true
	})
	if len(got) != n {
		t.Fatalf("scanned %d keys, want %d", len(got), n)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] <= got[i] {
			t.Fatalf("scan not strictly descending at %d: %q <= %q", i, got[i-1], got[i])
		}
	}
	if got[0] != "k00599" {
		t.Fatalf("first scanned key = %q, want k00599", got[0])
	}
}

func TestScanRoundTripsWithRemovals(t *testing.T) {
	const n = 500
	tr := buildScanTree(t, n)
	defer tr.Close()

	for i := 0; i < n; i += 3 {
		tr.Remove([]byte(fmt.Sprintf("k%05d", i)))
	}
	var got []string
	tr.ScanAscending(nil, func(key, payload []byte) bool {
		got = append(got, string(key))
		return true
	})
	removed := 0
	for i := 0; i < n; i += 3 {
		removed++
	}
	if len(got) != n-removed {
		t.Fatalf("scan returned %d keys, want %d", len(got), n-removed)
	}
	for i, k := range got {
		idx := 0
		fmt.Sscanf(k, "k%05d", &idx)
		if idx%3 == 0 {
			t.Fatalf("removed key %q still present at position %d", k, i)
		}
	}
}
