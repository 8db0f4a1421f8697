// Package byteview provides Value, a 24-byte immutable, reference-counted
// byte-slice value type optimized for short byte sequences and
// allocation-free sub-slicing.
//
// A Value is either inlined entirely in its own 24 bytes or shares a
// reference-counted backing buffer with every value it was sliced or cloned
// from. The case is derived solely from the value's length; there is no
// separate tag. See internal/layout for the exact byte offsets and
// internal/backing for how heap-cased values share their buffer without a
// pointer ever living inside the 24-byte record.
package byteview
