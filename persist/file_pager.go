package persist

import (
	"fmt"
	"os"
	"sync"

	"slotkv/bptree"
)

// FilePager is an *os.File-backed Pager writing fixed-size pages at
// id*pageSize, adapted from the teacher's OnDiskPager
// (bplustree/disk_pager.go). No tree page has ID 0, so the file's first
// pageSize bytes hold only the metadata block snapshot.go's Dump writes
// there.
type FilePager struct {
	mu       sync.RWMutex
	file     *os.File
	pageSize int
	nextPage bptree.PageID
}

// OpenFilePager opens (creating if necessary) path as a fixed-pageSize
// page file.
func OpenFilePager(path string, pageSize int) (*FilePager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("persist: stat %s: %w", path, err)
	}
	next := bptree.PageID(stat.Size()/int64(pageSize)) + 1
	return &FilePager{file: f, pageSize: pageSize, nextPage: next}, nil
}

func (p *FilePager) ReadPage(id bptree.PageID) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.file == nil {
		return nil, ErrClosed
	}
	buf := make([]byte, p.pageSize)
	n, err := p.file.ReadAt(buf, int64(id)*int64(p.pageSize))
	if err != nil && n == 0 {
		return nil, fmt.Errorf("persist: read page %d: %w", id, err)
	}
	return buf, nil
}

func (p *FilePager) WritePage(id bptree.PageID, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return ErrClosed
	}
	if len(data) != p.pageSize {
		return fmt.Errorf("persist: page %d has %d bytes, want %d", id, len(data), p.pageSize)
	}
	if _, err := p.file.WriteAt(data, int64(id)*int64(p.pageSize)); err != nil {
		return fmt.Errorf("persist: write page %d: %w", id, err)
	}
	return nil
}

func (p *FilePager) AllocatePage() (bptree.PageID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return 0, ErrClosed
	}
	id := p.nextPage
	p.nextPage++
	return id, nil
}

func (p *FilePager) DeallocatePage(id bptree.PageID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return ErrClosed
	}
	if _, err := p.file.WriteAt(make([]byte, p.pageSize), int64(id)*int64(p.pageSize)); err != nil {
		return fmt.Errorf("persist: deallocate page %d: %w", id, err)
	}
	return nil
}

func (p *FilePager) Sync() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.file == nil {
		return ErrClosed
	}
	return p.file.Sync()
}

func (p *FilePager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}
