// Package stringview supplements the core byteview.Value with a
// UTF-8-validated string wrapper, ported from the original implementation's
// second public type (see original_source/src/strview.rs). It is a thin
// shell over byteview.Value's contracts: everything about inlining,
// sharing, and sub-slicing without allocation comes from the wrapped Value.
package stringview

import (
	"unicode/utf8"

	"github.com/kocubinski/byteview"
)

// View is an immutable, UTF-8-validated string sharing byteview.Value's
// inline/shared-heap representation.
type View struct {
	inner byteview.Value
}

// FromString validates s as UTF-8 and wraps it. Returns an error if s is
// not valid UTF-8 or exceeds byteview's length limit.
func FromString(s string) (View, error) {
	if !utf8.ValidString(s) {
		return View{}, &InvalidUTF8Error{}
	}
	v, err := byteview.FromBytes([]byte(s))
	if err != nil {
		return View{}, err
	}
	return View{inner: v}, nil
}

// InvalidUTF8Error is returned by FromString and Slice when the requested
// content or cut point is not valid UTF-8.
type InvalidUTF8Error struct{}

func (e *InvalidUTF8Error) Error() string {
	return "stringview: invalid UTF-8"
}

// Len returns the length of the string in bytes.
func (s *View) Len() uint32 {
	return s.inner.Len()
}

// String returns the string's content. The returned string aliases s's
// backing storage under the same borrowing rules as byteview.Value.Bytes.
func (s *View) String() string {
	return string(s.inner.Bytes())
}

// Clone shares s's backing buffer (if any) without copying, exactly like
// byteview.Clone.
func Clone(s *View) View {
	return View{inner: byteview.Clone(&s.inner)}
}

// Release decrements the refcount of s's backing buffer, if any.
func Release(s *View) {
	byteview.Release(&s.inner)
}

// Slice returns the sub-string [start, end), rejecting cuts that land inside
// a multi-byte rune. A cut exactly at 0 or at the string's length is always
// valid; any interior cut point must be the start of a rune.
func Slice(s *View, start, end uint32) (View, error) {
	content := s.inner.Bytes()
	for _, cut := range [2]uint32{start, end} {
		if cut > 0 && cut < uint32(len(content)) && !utf8.RuneStart(content[cut]) {
			return View{}, &InvalidUTF8Error{}
		}
	}
	v, err := byteview.Slice(&s.inner, start, end)
	if err != nil {
		return View{}, err
	}
	return View{inner: v}, nil
}
