package byteview

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"

	"github.com/kocubinski/byteview/internal/layout"
)

func randomBytes(t *rapid.T, label string) []byte {
	n := rapid.IntRange(0, 64).Draw(t, label+"_len")
	return rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, label)
}

// Property 1 & 2: round-trip and length preservation.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := randomBytes(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		defer Release(&v)

		if v.Len() != uint32(len(b)) {
			t.Fatalf("length not preserved: got %d want %d", v.Len(), len(b))
		}
		if !bytes.Equal(v.Bytes(), b) {
			t.Fatalf("round-trip mismatch: got %x want %x", v.Bytes(), b)
		}
	})
}

// Property 3: prefix law.
func TestPropertyPrefixLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := randomBytes(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		defer Release(&v)

		want := min(len(b), 4)
		prefix := v.Prefix()
		if !bytes.Equal(prefix[:want], b[:want]) {
			t.Fatalf("prefix content mismatch")
		}
		for _, x := range prefix[want:] {
			if x != 0 {
				t.Fatalf("prefix not zero-padded past %d: %v", want, prefix)
			}
		}
	})
}

// Property 4: clone equality.
func TestPropertyCloneEquality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := randomBytes(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		defer Release(&v)

		clone := Clone(&v)
		defer Release(&clone)

		if !bytes.Equal(clone.Bytes(), v.Bytes()) {
			t.Fatalf("clone content mismatch")
		}
	})
}

// Property 5: sub-slice law.
func TestPropertySubSliceLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := randomBytes(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		defer Release(&v)

		if len(b) == 0 {
			return
		}
		a := uint32(rapid.IntRange(0, len(b)).Draw(t, "a"))
		e := uint32(rapid.IntRange(int(a), len(b)).Draw(t, "e"))

		w, err := Slice(&v, a, e)
		if err != nil {
			t.Fatalf("Slice: %v", err)
		}
		defer Release(&w)

		if !bytes.Equal(w.Bytes(), b[a:e]) {
			t.Fatalf("sub-slice content mismatch: got %x want %x", w.Bytes(), b[a:e])
		}
	})
}

// Property 6: concat law.
func TestPropertyConcatLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ba := randomBytes(t, "a")
		bb := randomBytes(t, "b")
		a, err := FromBytes(ba)
		if err != nil {
			t.Fatalf("FromBytes a: %v", err)
		}
		defer Release(&a)
		b, err := FromBytes(bb)
		if err != nil {
			t.Fatalf("FromBytes b: %v", err)
		}
		defer Release(&b)

		c, err := Concat(&a, &b)
		if err != nil {
			t.Fatalf("Concat: %v", err)
		}
		defer Release(&c)

		want := append(append([]byte{}, ba...), bb...)
		if !bytes.Equal(c.Bytes(), want) {
			t.Fatalf("concat content mismatch: got %x want %x", c.Bytes(), want)
		}
	})
}

// Property 7 & 8: equality iff content, ordering agrees with lexicographic compare.
func TestPropertyEqualityAndOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ba := randomBytes(t, "a")
		bb := randomBytes(t, "b")
		a, err := FromBytes(ba)
		if err != nil {
			t.Fatalf("FromBytes a: %v", err)
		}
		defer Release(&a)
		b, err := FromBytes(bb)
		if err != nil {
			t.Fatalf("FromBytes b: %v", err)
		}
		defer Release(&b)

		if Equal(&a, &b) != bytes.Equal(ba, bb) {
			t.Fatalf("equality diverges from content equality")
		}
		if Compare(&a, &b) != bytes.Compare(ba, bb) {
			t.Fatalf("ordering diverges from lexicographic compare")
		}
	})
}

// Property 9: inline values are zero-padded past their length.
func TestPropertyInlinePaddingZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, layout.InlineLongMax).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}

		raw := v.raw()
		for i := layout.OffsetPrefix + n; i < layout.Size; i++ {
			if raw[i] != 0 {
				t.Fatalf("byte %d not zero in inline value of length %d: %v", i, n, raw)
			}
		}
	})
}

// Property 10: refcount correctness under interleaved clone/drop.
func TestPropertyRefcountCorrectness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(21, 128).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}

		k := rapid.IntRange(0, 8).Draw(t, "k")
		clones := make([]Value, k)
		for i := range clones {
			clones[i] = Clone(&v)
		}
		if got := refCount(&v); got != uint64(k+1) {
			t.Fatalf("refcount after %d clones: got %d want %d", k, got, k+1)
		}

		order := indices(k)
		for i := len(order) - 1; i > 0; i-- {
			j := rapid.IntRange(0, i).Draw(t, "swap")
			order[i], order[j] = order[j], order[i]
		}
		for _, i := range order {
			Release(&clones[i])
		}
		if got := refCount(&v); got != 1 {
			t.Fatalf("refcount after dropping all clones: got %d want 1", got)
		}
		if !bytes.Equal(v.Bytes(), b) {
			t.Fatalf("original value corrupted after clone churn")
		}
		Release(&v)
	})
}

// Property 11: sub-slicing a heap value into a heap-sized result shares the
// buffer instead of allocating, and increments the refcount by exactly one.
func TestPropertySubSliceSharing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(21, 128).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")
		v, err := FromBytes(b)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		defer Release(&v)

		a := uint32(rapid.IntRange(0, n-21).Draw(t, "a"))
		e := a + 21 // guarantee a heap-sized (>20 byte) result

		before := refCount(&v)
		w, err := Slice(&v, a, e)
		if err != nil {
			t.Fatalf("Slice: %v", err)
		}
		defer Release(&w)

		if readHeapHandle(&w) != readHeapHandle(&v) {
			t.Fatalf("sub-slice did not share the parent's backing buffer")
		}
		if got := refCount(&v); got != before+1 {
			t.Fatalf("refcount after sub-slice: got %d want %d", got, before+1)
		}
	})
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
