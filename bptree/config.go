package bptree

import "fmt"

// Config controls the fixed page size and the merge threshold. Zero
// fields are filled in with defaults by New and FromPages, so a zero
// Config is equivalent to DefaultConfig.
type Config struct {
	// PageSize is the fixed size, in bytes, of every node in the tree.
	// Must be a power of two in [minPageSize, maxPageSize]. Zero selects
	// the default (4096).
	PageSize uint32

	// UnderfullThreshold is the freeSpaceAfterCompaction value above
	// which a leaf or inner page becomes a merge candidate (spec.md §4.9,
	// §9 "Open questions"). Zero selects 3*PageSize/4. Other revisions
	// use PageSize - PageSize/8 or PageSize*2/5; callers chasing a
	// different fill-factor target can set this directly. A value of
	// PageSize - headerSize or more can never be exceeded, so no page
	// ever merges (for a 512-byte page, PageSize - PageSize/8 is such a
	// value).
	UnderfullThreshold uint32
}

const (
	minPageSize     = 512
	maxPageSize     = 65536
	defaultPageSize = 4096
)

// DefaultConfig returns the Config used when New is called with a zero
// Config.
func DefaultConfig() Config {
	return Config{PageSize: defaultPageSize}
}

func (c Config) withDefaults() (Config, error) {
	if c.PageSize == 0 {
		c.PageSize = defaultPageSize
	}
	if c.PageSize < minPageSize || c.PageSize > maxPageSize || c.PageSize&(c.PageSize-1) != 0 {
		return c, fmt.Errorf("bptree: page size %d must be a power of two in [%d, %d]", c.PageSize, minPageSize, maxPageSize)
	}
	if int(c.PageSize) < headerSize+2*slotSize {
		return c, fmt.Errorf("bptree: page size %d too small for header", c.PageSize)
	}
	if c.UnderfullThreshold == 0 {
		c.UnderfullThreshold = c.PageSize/2 + c.PageSize/4
	}
	return c, nil
}

// maxKeyPayload is the largest keyLen+payloadLen Insert accepts, per
// spec.md §4.10 ("Assert keyLen + payloadLen <= P/4").
func (c Config) maxKeyPayload() int {
	return int(c.PageSize) / 4
}
