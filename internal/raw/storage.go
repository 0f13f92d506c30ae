// File: internal/raw/storage.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package raw

import (
	"math"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// ZeroSizeCap is the capacity of storage for zero-size element types:
// no memory is ever allocated, only the count matters.
const ZeroSizeCap = math.MaxInt

// dangling is the placeholder base of storage without an allocation.
// It is a valid address but never dereferenced as a sized element.
var dangling uint64

// Storage owns one allocation of up to Cap() elements of T.
// It does not track which slots hold live values.
type Storage[T any] struct {
	base   unsafe.Pointer
	cap    int
	alloc  api.Allocator
	layout api.Layout
}

// NewStorage returns empty storage drawing memory from a.
// No allocation is performed.
func NewStorage[T any](a api.Allocator) Storage[T] {
	s := Storage[T]{alloc: a, layout: api.LayoutOf[T]()}
	s.reset()
	return s
}

func (s *Storage[T]) reset() {
	s.base = unsafe.Pointer(&dangling)
	if s.layout.ZeroSize() {
		s.cap = ZeroSizeCap
	} else {
		s.cap = 0
	}
}

// Ready reports whether the storage was built by NewStorage.
func (s *Storage[T]) Ready() bool { return s.base != nil }

// Cap returns the number of slots currently backed by memory.
func (s *Storage[T]) Cap() int { return s.cap }

// Base returns the address of the first slot.
func (s *Storage[T]) Base() unsafe.Pointer { return s.base }

// Layout returns the element layout.
func (s *Storage[T]) Layout() api.Layout { return s.layout }

// Slot returns the address of slot i. i must be < Cap().
func (s *Storage[T]) Slot(i int) *T {
	return (*T)(unsafe.Add(s.base, uintptr(i)*s.layout.Size))
}

// Slots returns a typed view of the first n slots. n must be <= Cap().
func (s *Storage[T]) Slots(n int) []T {
	return unsafe.Slice((*T)(s.base), n)
}

// Grow doubles the capacity (1 on first growth). Growth failures are
// fatal: capacity overflow, an oversized request and allocator errors
// all panic with *api.Error. Grow must not be called for zero-size T.
func (s *Storage[T]) Grow() {
	if s.layout.ZeroSize() {
		api.Fatal(api.NewError(api.ErrCodeZeroSizeGrow, "capacity overflow").
			WithContext("layout", s.layout.String()))
	}
	newCap := 1
	if s.cap != 0 {
		if s.cap > math.MaxInt/2 {
			api.Fatal(api.NewError(api.ErrCodeCapacityOverflow, "capacity overflow").
				WithContext("cap", s.cap))
		}
		newCap = s.cap * 2
	}
	if _, ok := s.layout.ArrayBytes(newCap); !ok {
		api.Fatal(api.NewError(api.ErrCodeCapacityOverflow, "allocation too large").
			WithContext("cap", newCap).
			WithContext("layout", s.layout.String()))
	}

	var (
		p   unsafe.Pointer
		err error
	)
	if s.cap == 0 {
		p, err = s.alloc.Allocate(s.layout, newCap)
	} else {
		p, err = s.alloc.Grow(s.base, s.layout, s.cap, newCap)
	}
	if err == nil && p == nil {
		err = api.ErrAllocFailed
	}
	if err != nil {
		api.Fatal(api.NewError(api.ErrCodeAllocFailed, "memory allocation failed").
			WithContext("cap", newCap).
			WithContext("layout", s.layout.String()).
			WithCause(err))
	}
	s.base = p
	s.cap = newCap
}

// Release frees the allocation, if any, and returns the storage to its
// empty state. Calling it again is a no-op.
func (s *Storage[T]) Release() {
	if s.cap != 0 && !s.layout.ZeroSize() {
		s.alloc.Release(s.base, s.layout, s.cap)
	}
	s.reset()
}

// Take moves the storage out. The receiver is left empty, so its own
// Release no longer frees the moved allocation.
func (s *Storage[T]) Take() Storage[T] {
	out := *s
	s.reset()
	return out
}
