// Package bench is a peripheral benchmark/comparison harness: it drives
// bptree.Tree and a pebble.DB reference baseline through the same
// workload generators and records latency and memory samples. Nothing
// in bptree or persist imports this package.
package bench

import "slotkv/bptree"

// Index is the common interface the harness drives both implementations
// through, adapted from
// NikolasRummel-db-index-performance-evaluation/src/dbms/index/index.go
// (there keyed by int64; here by []byte, matching bptree.Tree's own
// keys instead of converting).
type Index interface {
	Insert(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	// Range calls fn for every key in [start, end) in ascending order
	// until fn returns false.
	Range(start, end []byte, fn func(key, value []byte) bool) error
	Close() error
}

// slotkvIndex adapts *bptree.Tree to Index. Delete always returns a nil
// error because bptree.Tree.Remove reports "not found" as a bool, not an
// error (spec.md §7) — Delete's error return exists only to satisfy the
// interface pebble also has to satisfy.
type slotkvIndex struct {
	tree *bptree.Tree
}

// NewSlotkvIndex wraps a freshly constructed bptree.Tree as an Index.
func NewSlotkvIndex(cfg bptree.Config) (Index, error) {
	tree, err := bptree.New(cfg)
	if err != nil {
		return nil, err
	}
	return &slotkvIndex{tree: tree}, nil
}

func (s *slotkvIndex) Insert(key, value []byte) error {
	s.tree.Insert(key, value)
	return nil
}

func (s *slotkvIndex) Get(key []byte) ([]byte, error) {
	v, _ := s.tree.Lookup(key)
	return v, nil
}

func (s *slotkvIndex) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

func (s *slotkvIndex) Range(start, end []byte, fn func(key, value []byte) bool) error {
	s.tree.ScanAscending(start, func(key, value []byte) bool {
		if bytesGTE(key, end) {
			return false
		}
		return fn(key, value)
	})
	return nil
}

func bytesGTE(a, b []byte) bool {
	if len(b) == 0 {
		return false
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return len(a) >= len(b)
}

func (s *slotkvIndex) Close() error {
	s.tree.Close()
	return nil
}
