package byteview

import (
	"encoding/binary"
	"unsafe"

	"github.com/kocubinski/byteview/internal/backing"
	"github.com/kocubinski/byteview/internal/layout"
)

// Value is a 24-byte, immutable view over a byte sequence. It is either
// inlined entirely within its own 24 bytes (length <= 20) or shares a
// reference-counted backing buffer with every other Value it was sliced or
// cloned from (length > 20). The zero Value is the empty sequence.
//
// None of Value's fields are pointer-typed on purpose: the heap case's
// "pointer" is really a Handle into internal/backing, packed into tail as
// plain bytes. That is what lets the whole 24-byte record be read, written,
// copied and compared as opaque bytes the way spec.md's layout demands,
// without ever asking the garbage collector to scan a fabricated address.
type Value struct {
	length uint32
	prefix [4]byte
	tail   [16]byte
}

// raw reinterprets v as its exact 24-byte wire representation. Safe because
// Value has no pointer fields and its declared layout (uint32, [4]byte,
// [16]byte, all 4-byte aligned or narrower) has no compiler-inserted padding
// between offsets 0, 4 and 8.
func (v *Value) raw() *[layout.Size]byte {
	return (*[layout.Size]byte)(unsafe.Pointer(v))
}

// Empty returns the zero-length Value. All 24 bytes are zero.
func Empty() Value {
	return Value{}
}

// FromBytes copies b into a new Value, inlining it if short enough and
// otherwise allocating a fresh backing buffer.
func FromBytes(b []byte) (Value, error) {
	if uint64(len(b)) > layout.MaxLength {
		return Value{}, lengthOverflow(uint64(len(b)))
	}
	return WithWriter(uint32(len(b)), func(dst []byte) {
		copy(dst, b)
	}), nil
}

// WithWriter constructs a Value of length n, invoking fill exactly once with
// a zero-initialized region of that length. Once fill returns, the region is
// sealed and never mutated again — no second holder can observe it until
// fill has already returned, which is what lets heap-cased Values be shared
// across goroutines without any further synchronization.
func WithWriter(n uint32, fill func([]byte)) Value {
	var v Value
	v.length = n

	switch layout.CaseOf(n) {
	case layout.CaseInlineShort:
		fill(v.prefix[:n])

	case layout.CaseInlineLong:
		var scratch [layout.InlineLongMax]byte
		fill(scratch[:n])
		copy(v.prefix[:], scratch[:layout.SizePrefix])
		copy(v.tail[:], scratch[layout.SizePrefix:n])

	case layout.CaseHeap:
		data := make([]byte, n)
		fill(data)
		copy(v.prefix[:], data[:layout.SizePrefix])
		h := backing.Global.Alloc(data)
		writeHeapTail(&v, h, 0)
	}

	return v
}

// Clone produces an independent Value with the same content. Inline values
// are a plain bit-copy; heap values are a bit-copy plus a refcount
// increment on the shared backing buffer.
func Clone(v *Value) Value {
	out := *v
	if layout.CaseOf(v.length) == layout.CaseHeap {
		backing.Global.IncRef(readHeapHandle(v))
	}
	return out
}

// Release destroys v, decrementing the backing buffer's refcount and
// freeing it if v held the last reference. Inline values need no action.
// Go has no scope-based destructors, so callers that hold a heap-cased
// Value past its use must call Release explicitly (typically via defer)
// the same way the rest of this codebase defers Close on pooled resources.
// Calling Release more than once on the same Value over-releases the shared
// buffer: it can free the slot while a clone still references it, or
// underflow the refcount; callers own that discipline the same way an
// Arc<T> owner in the original implementation does.
func Release(v *Value) {
	if layout.CaseOf(v.length) == layout.CaseHeap {
		backing.Global.DecRef(readHeapHandle(v))
	}
}

// Slice returns the sub-sequence [start, end) of v. If the source is
// heap-cased and the result is longer than 20 bytes, the result shares v's
// backing buffer (with a new offset) at the cost of a refcount increment and
// no data copy. Otherwise the result's bytes are copied into an inline
// Value and the source's backing buffer, if any, is not retained.
func Slice(v *Value, start, end uint32) (Value, error) {
	if start > end || end > v.length {
		return Value{}, outOfRange(start, end, v.length)
	}
	n := end - start

	if layout.CaseOf(v.length) == layout.CaseHeap && layout.CaseOf(n) == layout.CaseHeap {
		h := readHeapHandle(v)
		offset := readHeapOffset(v)
		backing.Global.IncRef(h)

		var out Value
		out.length = n
		data := backing.Global.Bytes(h)
		copy(out.prefix[:], data[offset+start:offset+start+layout.SizePrefix])
		writeHeapTail(&out, h, offset+start)
		return out, nil
	}

	src := v.Bytes()[start:end]
	return WithWriter(n, func(dst []byte) { copy(dst, src) }), nil
}

// Concat returns a new Value holding the concatenation of a and b's bytes.
// The result is inlined if the combined length is at most 20 bytes,
// otherwise it is a fresh heap allocation (never a share of either input's
// buffer, since it must hold both contents contiguously).
func Concat(a, b *Value) (Value, error) {
	total := uint64(a.length) + uint64(b.length)
	if total > layout.MaxLength {
		return Value{}, lengthOverflow(total)
	}
	n := uint32(total)
	return WithWriter(n, func(dst []byte) {
		copy(dst, a.Bytes())
		copy(dst[a.length:], b.Bytes())
	}), nil
}

func writeHeapTail(v *Value, h backing.Handle, offset uint32) {
	raw := v.raw()
	binary.LittleEndian.PutUint64(raw[layout.OffsetTailHandle:layout.OffsetTailHandle+layout.SizeTailHandle], uint64(h))
	binary.LittleEndian.PutUint32(raw[layout.OffsetTailOffset:layout.OffsetTailOffset+layout.SizeTailOffset], offset)
	// raw[OffsetTailReserved:] is already zero from the struct's zero value.
}

func readHeapHandle(v *Value) backing.Handle {
	raw := v.raw()
	return backing.Handle(binary.LittleEndian.Uint64(raw[layout.OffsetTailHandle : layout.OffsetTailHandle+layout.SizeTailHandle]))
}

func readHeapOffset(v *Value) uint32 {
	raw := v.raw()
	return binary.LittleEndian.Uint32(raw[layout.OffsetTailOffset : layout.OffsetTailOffset+layout.SizeTailOffset])
}
