package bench

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

// pebbleIndex adapts a pebble.DB to Index, grounded on
// NikolasRummel-db-index-performance-evaluation/src/dbms/index/lsm/lsm.go
// (same MemTableSize/compaction-threshold tuning, same NoSync writes for
// benchmark-only durability).
type pebbleIndex struct {
	db *pebble.DB
}

// NewPebbleIndex opens (or creates) a pebble database at dir as the
// harness's reference ordered-KV baseline.
func NewPebbleIndex(dir string) (Index, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		MemTableSize:                16 << 20,
		MemTableStopWritesThreshold: 4,
		L0CompactionThreshold:       4,
		L0StopWritesThreshold:       12,
	})
	if err != nil {
		return nil, fmt.Errorf("bench: open pebble: %w", err)
	}
	return &pebbleIndex{db: db}, nil
}

func (p *pebbleIndex) Insert(key, value []byte) error {
	return p.db.Set(key, value, pebble.NoSync)
}

func (p *pebbleIndex) Get(key []byte) ([]byte, error) {
	val, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bench: pebble get: %w", err)
	}
	out := make([]byte, len(val))
	copy(out, val)
	closer.Close()
	return out, nil
}

func (p *pebbleIndex) Delete(key []byte) error {
	return p.db.Delete(key, pebble.NoSync)
}

func (p *pebbleIndex) Range(start, end []byte, fn func(key, value []byte) bool) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return fmt.Errorf("bench: pebble range: %w", err)
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		if !fn(iter.Key(), iter.Value()) {
			break
		}
	}
	return nil
}

func (p *pebbleIndex) Close() error {
	return p.db.Close()
}
