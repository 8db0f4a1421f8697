package byteview

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/kocubinski/byteview/internal/layout"
)

// Equal reports whether a and b hold the same logical byte sequence.
//
// The first 8 bytes of the raw representation (length + prefix) are always
// enough to prove inequality without touching heap memory: two values that
// differ there cannot have the same content. When those 8 bytes match and
// both values are inline, the full 24-byte record is bit-identical for
// equal content (construction always zero-fills unused padding), so a
// single array comparison settles it. Only the heap case ever needs to
// dereference the backing buffer.
func Equal(a, b *Value) bool {
	ra, rb := a.raw(), b.raw()

	if binary.LittleEndian.Uint64(ra[:8]) != binary.LittleEndian.Uint64(rb[:8]) {
		return false
	}

	if layout.CaseOf(a.length) == layout.CaseHeap {
		return bytes.Equal(a.Bytes(), b.Bytes())
	}
	return *ra == *rb
}

// Compare returns -1, 0 or 1 according to the lexicographic order of a and
// b's logical byte sequences, agreeing with bytes.Compare(a.Bytes(),
// b.Bytes()). Differing prefixes decide the order without touching heap
// memory; a tied prefix falls through to a full comparison, since a
// zero-padded prefix cannot by itself distinguish "shorter value" from
// "longer value with a zero byte in the same position."
func Compare(a, b *Value) int {
	if c := bytes.Compare(a.prefix[:], b.prefix[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.Bytes(), b.Bytes())
}

// Hash returns a hash of v's logical byte content (never of the raw 24-byte
// record), so that any two values with equal content — inline or
// heap-backed, whole buffer or sub-slice — hash identically.
func Hash(v *Value) uint64 {
	return xxhash.Sum64(v.Bytes())
}
