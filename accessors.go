package byteview

import (
	"github.com/kocubinski/byteview/internal/backing"
	"github.com/kocubinski/byteview/internal/layout"
)

// Len returns the length of the logical byte sequence.
func (v *Value) Len() uint32 {
	return v.length
}

// IsEmpty reports whether v has zero length.
func (v *Value) IsEmpty() bool {
	return v.length == 0
}

// Bytes returns a borrowed view of v's logical byte sequence. For inline
// cases the returned slice aliases v itself and is valid only as long as v
// is not reused or overwritten by a caller that ignores its immutability
// contract; for heap cases it aliases the shared backing buffer and remains
// valid for as long as v (or a clone sharing its handle) has not been
// Released.
func (v *Value) Bytes() []byte {
	raw := v.raw()
	if layout.CaseOf(v.length) == layout.CaseHeap {
		h := readHeapHandle(v)
		offset := readHeapOffset(v)
		data := backing.Global.Bytes(h)
		return data[offset : offset+v.length]
	}
	// prefix and tail are adjacent fields with no compiler-inserted padding
	// between them (both are byte arrays), so for the two inline cases the
	// logical content is simply the [SizePrefix : SizePrefix+length] window
	// of the raw record — prefix.length bytes of it drawn from prefix, the
	// rest from the start of tail.
	return raw[layout.OffsetPrefix : layout.OffsetPrefix+v.length]
}

// Prefix returns the first up-to-4 bytes of v's logical sequence, with any
// trailing unused bytes zeroed. It never dereferences the heap buffer, so it
// is safe to use as a cheap filter before comparing full contents.
func (v *Value) Prefix() [4]byte {
	return v.prefix
}

// refCount reports the live refcount of v's backing buffer, or 1 for inline
// values (which are never shared). Exposed for tests exercising the
// refcount-correctness property.
func refCount(v *Value) uint64 {
	if layout.CaseOf(v.length) != layout.CaseHeap {
		return 1
	}
	return backing.Global.RefCount(readHeapHandle(v))
}
