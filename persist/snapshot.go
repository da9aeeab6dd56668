package persist

import (
	"encoding/binary"
	"fmt"

	"slotkv/bptree"
)

var magic = [8]byte{'s', 'l', 'o', 't', 'k', 'v', '1', 0}

const headerFixedSize = 8 + 4 + 4 + 8 + 4 // magic, pageSize, underfull, root, idCount

// Dump walks t's live pages via bptree.Tree.Pages and writes each one
// verbatim through p, then writes a metadata page at the reserved
// PageID 0 (never a live arena page, per the PageID doc comment)
// recording the root, config, and the list of live page IDs: the Pager
// interface has no "list all pages" operation (matching the teacher's
// Pager verbatim), so Load needs this list to know what to read back.
//
// The ID list must fit in a single page; Dump returns an error instead
// of silently truncating it for trees whose page count exceeds that
// (roughly pageSize/8 pages, e.g. ~500 for the default 4096-byte page).
// Dump/Load is a peripheral, optional snapshot path, not a general
// storage engine, and this keeps its on-disk format to one page.
func Dump(t *bptree.Tree, cfg bptree.Config, p Pager) error {
	var ids []bptree.PageID
	t.Pages(func(id bptree.PageID, raw []byte) {
		ids = append(ids, id)
	})

	pageSize := int(cfg.PageSize)
	capacity := (pageSize - headerFixedSize) / 8
	if len(ids) > capacity {
		return fmt.Errorf("persist: tree has %d pages, metadata page holds at most %d", len(ids), capacity)
	}

	var writeErr error
	t.Pages(func(id bptree.PageID, raw []byte) {
		if writeErr != nil {
			return
		}
		writeErr = p.WritePage(id, raw)
	})
	if writeErr != nil {
		return fmt.Errorf("persist: dump pages: %w", writeErr)
	}

	header := make([]byte, pageSize)
	copy(header[0:8], magic[:])
	binary.LittleEndian.PutUint32(header[8:12], cfg.PageSize)
	binary.LittleEndian.PutUint32(header[12:16], cfg.UnderfullThreshold)
	binary.LittleEndian.PutUint64(header[16:24], uint64(t.Root()))
	binary.LittleEndian.PutUint32(header[24:28], uint32(len(ids)))
	for i, id := range ids {
		binary.LittleEndian.PutUint64(header[headerFixedSize+i*8:headerFixedSize+i*8+8], uint64(id))
	}
	if err := p.WritePage(0, header); err != nil {
		return fmt.Errorf("persist: dump metadata: %w", err)
	}
	return p.Sync()
}

// Load rebuilds a *bptree.Tree from the metadata and page bytes p holds,
// as written by Dump.
func Load(p Pager) (*bptree.Tree, error) {
	header, err := p.ReadPage(0)
	if err != nil {
		return nil, fmt.Errorf("persist: read metadata: %w", err)
	}
	if len(header) < headerFixedSize || string(header[0:8]) != string(magic[:]) {
		return nil, fmt.Errorf("persist: metadata page missing or corrupt")
	}
	cfg := bptree.Config{
		PageSize:           binary.LittleEndian.Uint32(header[8:12]),
		UnderfullThreshold: binary.LittleEndian.Uint32(header[12:16]),
	}
	root := bptree.PageID(binary.LittleEndian.Uint64(header[16:24]))
	idCount := int(binary.LittleEndian.Uint32(header[24:28]))

	pages := make(map[bptree.PageID][]byte, idCount)
	for i := 0; i < idCount; i++ {
		off := headerFixedSize + i*8
		id := bptree.PageID(binary.LittleEndian.Uint64(header[off : off+8]))
		raw, err := p.ReadPage(id)
		if err != nil {
			return nil, fmt.Errorf("persist: read page %d: %w", id, err)
		}
		pages[id] = raw
	}
	return bptree.FromPages(cfg, root, pages)
}
