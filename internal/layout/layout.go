// Package layout describes the fixed 24-byte wire representation shared by
// every byteview.Value: the field offsets and the tagless case discriminant.
// The byte-level accessors that read and write the heap tail at these
// offsets live in the byteview package, not here.
package layout

// Size is the fixed footprint of a Value in bytes: 4 (length) + 4 (prefix) +
// 16 (tail).
const Size = 24

const (
	OffsetLength = 0
	SizeLength   = 4

	OffsetPrefix = OffsetLength + SizeLength
	SizePrefix   = 4

	OffsetTail = OffsetPrefix + SizePrefix
	SizeTail   = 16
)

// Sub-offsets within the tail, valid only when CaseOf(length) == CaseHeap.
const (
	OffsetTailHandle = OffsetTail
	SizeTailHandle   = 8

	OffsetTailOffset = OffsetTailHandle + SizeTailHandle
	SizeTailOffset   = 4

	OffsetTailReserved = OffsetTailOffset + SizeTailOffset
	SizeTailReserved   = 4
)

// InlineShortMax is the largest length stored entirely in prefix.
const InlineShortMax = 4

// InlineLongMax is the largest length stored entirely inline (prefix + tail).
const InlineLongMax = 20

// MaxLength is the largest length representable by the 32-bit len field.
const MaxLength = 1<<32 - 1

// Case is the tagless discriminant derived purely from a value's length.
type Case uint8

const (
	CaseInlineShort Case = iota
	CaseInlineLong
	CaseHeap
)

func (c Case) String() string {
	switch c {
	case CaseInlineShort:
		return "inline-short"
	case CaseInlineLong:
		return "inline-long"
	case CaseHeap:
		return "heap"
	default:
		return "unknown"
	}
}

// CaseOf is the single, centralized classification of a length into one of
// the three cases. Every part of the implementation that needs to know a
// value's case must call this function rather than re-deriving the
// thresholds, so the classification can never diverge across the codebase.
func CaseOf(length uint32) Case {
	switch {
	case length <= InlineShortMax:
		return CaseInlineShort
	case length <= InlineLongMax:
		return CaseInlineLong
	default:
		return CaseHeap
	}
}
