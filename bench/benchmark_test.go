package bench

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestGetDetailedMemReturnsLiveStats(t *testing.T) {
	m := GetDetailedMem()
	if m.HeapObjects == 0 {
		t.Error("HeapObjects = 0, want a live process to report at least one object")
	}
}

func TestRecordWritesOneCSVRow(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	res := BenchResult{
		Name:      "slotkv",
		KeyShape:  "sequential",
		Operation: "OLTP (90% read)",
		LatencyNs: 12345,
		MemMB:     7,
		Objects:   42,
	}
	if err := Record(w, res); err != nil {
		t.Fatalf("Record: %v", err)
	}
	w.Flush()

	r := csv.NewReader(bytes.NewReader(buf.Bytes()))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := []string{"slotkv", "sequential", "OLTP (90% read)", "12345", "7", "42"}
	for i, w := range want {
		if rows[0][i] != w {
			t.Errorf("row[%d] = %q, want %q", i, rows[0][i], w)
		}
	}
}

func TestCompareRecordsASample(t *testing.T) {
	idx, err := NewSlotkvIndex(defaultTestConfig())
	if err != nil {
		t.Fatalf("NewSlotkvIndex: %v", err)
	}
	defer idx.Close()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	wl := Workload{Shape: Sequential, Seed: 1}

	res, err := Compare(w, "slotkv", idx, wl, OLTP, 100)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	w.Flush()

	if res.Name != "slotkv" {
		t.Errorf("Name = %q, want slotkv", res.Name)
	}
	if res.KeyShape != "sequential" {
		t.Errorf("KeyShape = %q, want sequential", res.KeyShape)
	}
	if res.LatencyNs <= 0 {
		t.Errorf("LatencyNs = %d, want > 0", res.LatencyNs)
	}
	if buf.Len() == 0 {
		t.Error("Compare did not write any CSV output")
	}
}

func TestKeyShapeName(t *testing.T) {
	cases := map[KeyShape]string{
		Sequential:       "sequential",
		LongSharedPrefix: "long-shared-prefix",
		Random:           "random",
		KeyShape(99):     "unknown",
	}
	for shape, want := range cases {
		if got := keyShapeName(shape); got != want {
			t.Errorf("keyShapeName(%v) = %q, want %q", shape, got, want)
		}
	}
}

func TestMin64(t *testing.T) {
	if min64(3, 5) != 3 {
		t.Error("min64(3, 5) != 3")
	}
	if min64(5, 3) != 3 {
		t.Error("min64(5, 3) != 3")
	}
}
