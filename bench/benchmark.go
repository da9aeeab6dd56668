package bench

import (
	"encoding/csv"
	"runtime"
	"strconv"
	"time"
)

// BenchResult is one sampled measurement, adapted from
// NikolasRummel-db-index-performance-evaluation/src/benchmark.go's
// BenchResult (same fields, renamed Config -> KeyShape since this
// harness's "configuration" axis is the key-distribution, not a tuning
// string).
type BenchResult struct {
	Name      string
	KeyShape  string
	Operation string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

// MemoryStats mirrors runtime.MemStats' fields the harness cares about.
type MemoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// GetDetailedMem forces a GC so the measurement reflects live data
// rather than garbage awaiting collection, then snapshots runtime.MemStats.
func GetDetailedMem() MemoryStats {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

// Record appends res as one CSV row: name, key shape, operation,
// latency, memory, and live object count.
func Record(w *csv.Writer, res BenchResult) error {
	return w.Write([]string{
		res.Name,
		res.KeyShape,
		res.Operation,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}

// Compare runs wType against idx alone, timing the whole run and
// sampling memory before and after, writes the resulting BenchResult as
// one row to w, and returns it. Callers compare participants by calling
// Compare once per Index.
func Compare(w *csv.Writer, name string, idx Index, wl Workload, wType WorkloadType, n int) (BenchResult, error) {
	before := GetDetailedMem()
	start := time.Now()
	Run(idx, wl, wType, n)
	elapsed := time.Since(start)
	after := GetDetailedMem()

	res := BenchResult{
		Name:      name,
		KeyShape:  keyShapeName(wl.Shape),
		Operation: string(wType),
		LatencyNs: elapsed.Nanoseconds(),
		MemMB:     after.AllocMB - min64(after.AllocMB, before.AllocMB),
		Objects:   after.HeapObjects,
	}
	return res, Record(w, res)
}

func keyShapeName(s KeyShape) string {
	switch s {
	case Sequential:
		return "sequential"
	case LongSharedPrefix:
		return "long-shared-prefix"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
