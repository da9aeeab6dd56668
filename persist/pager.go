// Package persist provides an optional, peripheral verbatim snapshot and
// restore path for a bptree.Tree: the page layout bptree uses is bit-exact
// enough to write and read back byte for byte, so this package never needs
// to understand B+Tree semantics, only page bytes and IDs.
//
// Nothing in bptree imports this package. It exists purely as a consumer,
// the way a file-I/O/buffer-manager layer sits outside an in-memory index
// core: build it on top, never inside.
package persist

import (
	"errors"

	"slotkv/bptree"
)

// ErrPageNotFound is returned by Pager.ReadPage when the requested page was
// never written.
var ErrPageNotFound = errors.New("persist: page not found")

// ErrClosed is returned by any Pager method called after Close.
var ErrClosed = errors.New("persist: pager is closed")

// Pager is the storage abstraction Dump/Load read and write through. It is
// grounded on the teacher's own Pager interface
// (ShubhamNegi4-DaemonDB/bplustree/pager.go), kept field-for-field.
type Pager interface {
	ReadPage(id bptree.PageID) ([]byte, error)
	WritePage(id bptree.PageID, data []byte) error
	AllocatePage() (bptree.PageID, error)
	DeallocatePage(id bptree.PageID) error
	Sync() error
	Close() error
}
