// Package storeadapter provides ingestion paths that construct
// byteview.Values from external storage, for the log-structured-merge-tree
// and columnar-store use cases named in spec.md §1. Adapted from
// iavlx/internal/mmap.go's read-only mmap wrapper.
package storeadapter

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/kocubinski/byteview"
)

// MmapSource memory-maps a file of length-prefixed records (a little-endian
// uint32 length followed by that many content bytes, repeated to EOF) and
// constructs Values from it on demand. It never aliases the mapped memory
// directly in a returned Value — FromBytes always copies — because the
// mapping's lifetime is independent of any Value's refcount and the two
// must not be conflated.
type MmapSource struct {
	file   *os.File
	handle mmap.MMap
}

// OpenMmapSource opens and maps path read-only.
func OpenMmapSource(path string) (*MmapSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storeadapter: open %s: %w", path, err)
	}

	fi, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("storeadapter: stat %s: %w", path, err)
	}
	if fi.Size() == 0 {
		return &MmapSource{file: file}, nil
	}

	handle, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("storeadapter: mmap %s: %w", path, err)
	}
	return &MmapSource{file: file, handle: handle}, nil
}

// Close unmaps the file and releases its descriptor.
func (m *MmapSource) Close() error {
	if m.handle != nil {
		if err := m.handle.Unmap(); err != nil {
			return err
		}
	}
	return m.file.Close()
}

// Records decodes every length-prefixed record in the mapped file into a
// Value, in file order.
func (m *MmapSource) Records() ([]byteview.Value, error) {
	var out []byteview.Value
	offset := 0
	for offset < len(m.handle) {
		if offset+4 > len(m.handle) {
			return nil, fmt.Errorf("storeadapter: truncated length prefix at offset %d", offset)
		}
		n := int(binary.LittleEndian.Uint32(m.handle[offset : offset+4]))
		offset += 4
		if offset+n > len(m.handle) {
			return nil, fmt.Errorf("storeadapter: truncated record at offset %d (want %d bytes)", offset, n)
		}
		v, err := byteview.FromBytes(m.handle[offset : offset+n])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		offset += n
	}
	return out, nil
}
