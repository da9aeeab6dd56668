package bench

import (
	"fmt"
	"math/rand"
)

// WorkloadType names a read/write mix, adapted from
// NikolasRummel-db-index-performance-evaluation/src/workload.go's
// WorkloadType enum (OLTP/OLAP/Reporting).
type WorkloadType string

const (
	OLTP      WorkloadType = "OLTP (90% read)"
	OLAP      WorkloadType = "OLAP (90% write)"
	Reporting WorkloadType = "Reporting (scan)"
)

// KeyShape selects how Workload generates keys, covering the same
// distributions spec.md §8 exercises for the core's own tests:
// sequential integers, long shared-prefix strings (to stress prefix
// truncation and separator truncation), and uniformly random byte
// strings.
type KeyShape int

const (
	Sequential KeyShape = iota
	LongSharedPrefix
	Random
)

// Workload generates a reproducible stream of keys for the performance
// runs and tests in this package. The bptree tests build their own keys
// and do not use it.
type Workload struct {
	Shape KeyShape
	Seed  int64
}

// Key returns the i-th key this workload would generate.
func (w Workload) Key(i int) []byte {
	rng := rand.New(rand.NewSource(w.Seed + int64(i)))
	switch w.Shape {
	case Sequential:
		return []byte(fmt.Sprintf("k%010d", i))
	case LongSharedPrefix:
		return []byte(fmt.Sprintf("/org/acme/project/dataset/partition-%08d/row-%06d", i/1000, i%1000))
	case Random:
		b := make([]byte, 16)
		rng.Read(b)
		return b
	default:
		panic("bench: unknown KeyShape")
	}
}

// Run executes n operations of wType against idx, choosing keys from a
// keyspace of size n via w.
func Run(idx Index, w Workload, wType WorkloadType, n int) {
	rng := rand.New(rand.NewSource(w.Seed))
	for i := 0; i < n; i++ {
		choice := rng.Intn(100)
		key := w.Key(rng.Intn(n))

		switch wType {
		case OLTP:
			if choice < 90 {
				idx.Get(key)
			} else {
				idx.Insert(key, []byte("x"))
			}
		case OLAP:
			if choice < 10 {
				idx.Get(key)
			} else {
				idx.Insert(key, []byte("x"))
			}
		case Reporting:
			end := w.Key(rng.Intn(n) + n)
			idx.Range(key, end, func(k, v []byte) bool { return true })
		}
	}
}
