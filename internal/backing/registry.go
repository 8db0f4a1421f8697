// Package backing implements the shared, atomically reference-counted
// buffers behind heap-cased byteview.Values.
//
// A backing buffer is never referenced by a raw pointer embedded inside a
// Value (see the byteview.Value doc for why). Instead every allocation
// lives in one of a fixed number of shards, each a mutex-guarded slab of
// *Header plus a free list; callers only ever hold a Handle, a plain
// integer that the shard resolves back to a *Header on demand. The slab
// itself is the only thing that keeps the Header (and its payload) reachable
// to the garbage collector, so freeing a slot is what actually lets the
// payload be reclaimed.
package backing

import (
	"sync"
	"sync/atomic"
)

// Header is the metadata attached to one backing allocation: an atomic
// refcount, the generation this slot was allocated under, and the payload
// itself. Its capacity may exceed the length of any single Value that
// references it, matching spec.md's "payload may be larger than needed."
type Header struct {
	refcount   atomic.Uint64
	generation uint32
	data       []byte
}

// Bytes returns the full payload backing this allocation. Callers apply
// their own offset/length window on top of it.
func (h *Header) Bytes() []byte {
	return h.data
}

// RefCount reports the current reference count. Exposed for tests and
// diagnostics; not part of the value-type's own invariants.
func (h *Header) RefCount() uint64 {
	return h.refcount.Load()
}

type shard struct {
	mu       sync.Mutex
	slots    []*Header
	freeList []uint32
}

func (s *shard) alloc(data []byte) (slot uint32, generation uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.freeList); n > 0 {
		slot = s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		h := s.slots[slot]
		h.generation++
		h.data = data
		h.refcount.Store(1)
		return slot, h.generation
	}

	h := &Header{data: data}
	h.refcount.Store(1)
	slot = uint32(len(s.slots))
	s.slots = append(s.slots, h)
	return slot, h.generation
}

func (s *shard) header(slot uint32, generation uint32) *Header {
	s.mu.Lock()
	h := s.slots[slot]
	s.mu.Unlock()

	if h.generation&uint32(genMask) != generation {
		panic("byteview/internal/backing: stale handle resolved after its slot was reused")
	}
	return h
}

func (s *shard) free(slot uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Drop the registry's own reference to the payload so the collector can
	// reclaim it; the slot stays allocated (and its generation bumped on
	// reuse) so late resolutions of the old handle panic instead of
	// silently reading someone else's data.
	s.slots[slot].data = nil
	s.freeList = append(s.freeList, slot)
}

// Registry is a sharded slab allocator for backing buffers.
type Registry struct {
	shards [NumShards]shard
	next   atomic.Uint64
}

// NewRegistry constructs an empty registry. Production code shares one
// instance via Global; tests construct their own to observe allocation
// counts in isolation.
func NewRegistry() *Registry {
	return &Registry{}
}

// Global is the process-wide registry backing every heap-cased Value
// constructed through the public byteview API.
var Global = NewRegistry()

// Alloc stores data (without copying it) as a fresh backing buffer and
// returns a handle to it with a refcount of one. The caller must not modify
// data afterwards.
func (r *Registry) Alloc(data []byte) Handle {
	idx := r.next.Add(1)
	s := &r.shards[idx%NumShards]
	slot, generation := s.alloc(data)
	return newHandle(uint8(idx%NumShards), slot, generation)
}

// IncRef increments the refcount of the buffer identified by h. The
// increment races only with other increments: the caller already holds a
// live reference, so the buffer cannot be concurrently freed out from under
// it.
func (r *Registry) IncRef(h Handle) {
	header := r.shards[h.shard()].header(h.slot(), h.generation())
	header.refcount.Add(1)
}

// DecRef decrements the refcount of the buffer identified by h, freeing its
// slot when the count reaches zero.
func (r *Registry) DecRef(h Handle) {
	s := &r.shards[h.shard()]
	header := s.header(h.slot(), h.generation())
	if header.refcount.Add(^uint64(0)) == 0 {
		s.free(h.slot())
	}
}

// Bytes returns the full payload behind h without touching the refcount.
// The caller must already hold a reference (directly or via a Value that
// has not been Released).
func (r *Registry) Bytes(h Handle) []byte {
	return r.shards[h.shard()].header(h.slot(), h.generation()).Bytes()
}

// RefCount reports the live refcount behind h. Exposed for tests.
func (r *Registry) RefCount(h Handle) uint64 {
	return r.shards[h.shard()].header(h.slot(), h.generation()).RefCount()
}
