// Package api
// Author: momentics
//
// Element-addressed memory allocation contracts.
//
// Memory handed out by an Allocator may be Go heap, mmap or recycled
// blocks. Containers never assume zeroed memory: a slot is written before
// it is read.

package api

import "unsafe"

// Allocator manages blocks of element slots addressed by count and layout.
type Allocator interface {
	// Allocate returns a block able to hold n elements of layout l.
	// n is always positive and l never describes a zero-size type.
	Allocate(l Layout, n int) (unsafe.Pointer, error)

	// Grow resizes the block p from oldN to newN elements, in place or by
	// relocating. The first oldN elements are preserved. On success p must
	// not be used again; on failure p is still owned by the caller.
	Grow(p unsafe.Pointer, l Layout, oldN, newN int) (unsafe.Pointer, error)

	// Release returns a block of n elements previously obtained from
	// Allocate or Grow. p must not be used afterwards.
	Release(p unsafe.Pointer, l Layout, n int)
}

// StatsSource is implemented by allocators that expose accounting.
type StatsSource interface {
	Stats() AllocatorStats
}

// AllocatorStats aggregates allocation/reuse counters.
type AllocatorStats struct {
	TotalAlloc int64 `json:"total_alloc"`
	TotalGrow  int64 `json:"total_grow"`
	TotalFree  int64 `json:"total_free"`
	InUse      int64 `json:"in_use"`
	BytesInUse int64 `json:"bytes_in_use"`
	Reused     int64 `json:"reused,omitempty"`
}
