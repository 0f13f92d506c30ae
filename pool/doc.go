// Package pool
// Author: momentics <momentics@gmail.com>
//
// Element-addressed allocators for hioload-vec containers.
// Implements a Go-heap allocator, an mmap allocator with mremap growth and
// optional huge pages (Linux), and a Recycler that parks released blocks
// in FIFO free lists. All allocators are safe for concurrent use and
// expose api.AllocatorStats.
// See heap.go, mmap_linux.go, recycler.go for implementation details.
package pool
