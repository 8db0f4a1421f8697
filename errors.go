package byteview

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel error kinds. Concrete errors returned by this package wrap one of
// these via errors.Mark, so callers that only care about the kind can use
// errors.Is(err, byteview.ErrOutOfRange) and so on.
var (
	ErrOutOfRange      = errors.New("byteview: out of range")
	ErrLengthOverflow  = errors.New("byteview: length overflow")
	ErrAllocationFailed = errors.New("byteview: allocation failed")
)

// OutOfRangeError is returned by Slice when the requested range is inverted
// or exceeds the source value's length.
type OutOfRangeError struct {
	Start, End, Length uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("byteview: slice [%d:%d) out of range for length %d", e.Start, e.End, e.Length)
}

// Is makes the standard library's errors.Is recognise the sentinel too; the
// errors.Mark wrapper is otherwise only understood by cockroachdb/errors.Is.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

func outOfRange(start, end, length uint32) error {
	return errors.Mark(&OutOfRangeError{Start: start, End: end, Length: length}, ErrOutOfRange)
}

// LengthOverflowError is returned by FromBytes and Concat when the
// requested or combined length exceeds 2^32 - 1 bytes.
type LengthOverflowError struct {
	Requested uint64
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("byteview: length %d exceeds maximum of %d", e.Requested, uint64(1<<32-1))
}

// Is makes the standard library's errors.Is recognise ErrLengthOverflow.
func (e *LengthOverflowError) Is(target error) bool {
	return target == ErrLengthOverflow
}

func lengthOverflow(requested uint64) error {
	return errors.Mark(&LengthOverflowError{Requested: requested}, ErrLengthOverflow)
}

// AllocationFailedError would be returned by heap-cased constructors on an
// allocator failure, if the Go runtime exposed one. It exists so callers
// compiled against this package can already handle the case; Go's ambient
// allocator instead panics (via make) on out-of-memory, which this package
// does not recover from, matching spec's "specification permits either, but
// must be documented" allowance.
type AllocationFailedError struct {
	Requested uint32
}

func (e *AllocationFailedError) Error() string {
	return fmt.Sprintf("byteview: allocation of %d bytes failed", e.Requested)
}
