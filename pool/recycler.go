// File: pool/recycler.go
// Package pool implements block recycling on top of any allocator.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"log"
	"sync"
	"unsafe"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-vec/api"
)

// blockKey identifies interchangeable blocks: same layout, same count.
// Doubling growth keeps the number of distinct counts small.
type blockKey struct {
	layout api.Layout
	n      int
}

// Recycler keeps released blocks in per-size FIFO free lists and hands
// them out again before asking the backend. Growth is delegated to the
// backend. It is safe for concurrent use.
type Recycler struct {
	backend   api.Allocator
	logger    *log.Logger
	maxCached int

	mu     sync.Mutex
	free   map[blockKey]*queue.Queue
	cached int

	reused int64
}

// NewRecycler creates a Recycler. Without WithBackend it recycles Go heap
// blocks from a fresh HeapAllocator.
func NewRecycler(opts ...Option) *Recycler {
	o := buildOptions(opts)
	if o.backend == nil {
		o.backend = NewHeapAllocator()
	}
	return &Recycler{
		backend:   o.backend,
		logger:    o.logger,
		maxCached: o.maxCached,
		free:      make(map[blockKey]*queue.Queue),
	}
}

// Backend returns the allocator fresh blocks come from.
func (r *Recycler) Backend() api.Allocator { return r.backend }

func (r *Recycler) Allocate(l api.Layout, n int) (unsafe.Pointer, error) {
	r.mu.Lock()
	if q, ok := r.free[blockKey{l, n}]; ok && q.Length() > 0 {
		p := q.Remove().(unsafe.Pointer)
		r.cached--
		r.reused++
		r.mu.Unlock()
		return p, nil
	}
	r.mu.Unlock()
	return r.backend.Allocate(l, n)
}

func (r *Recycler) Grow(p unsafe.Pointer, l api.Layout, oldN, newN int) (unsafe.Pointer, error) {
	return r.backend.Grow(p, l, oldN, newN)
}

// Release parks the block for reuse, or returns it to the backend once the
// free list for its size is full.
func (r *Recycler) Release(p unsafe.Pointer, l api.Layout, n int) {
	key := blockKey{l, n}
	r.mu.Lock()
	q, ok := r.free[key]
	if !ok {
		q = queue.New()
		r.free[key] = q
	}
	if q.Length() < r.maxCached {
		q.Add(p)
		r.cached++
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.backend.Release(p, l, n)
}

// Cached returns the number of parked blocks.
func (r *Recycler) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// Purge returns every parked block to the backend.
func (r *Recycler) Purge() {
	r.mu.Lock()
	free := r.free
	r.free = make(map[blockKey]*queue.Queue)
	n := r.cached
	r.cached = 0
	r.mu.Unlock()

	for key, q := range free {
		for q.Length() > 0 {
			r.backend.Release(q.Remove().(unsafe.Pointer), key.layout, key.n)
		}
	}
	if n > 0 {
		r.logger.Printf("recycler: purged %d cached blocks", n)
	}
}

// Stats reports backend accounting plus reuse counters. Parked blocks
// count as in use by the backend.
func (r *Recycler) Stats() api.AllocatorStats {
	var st api.AllocatorStats
	if src, ok := r.backend.(api.StatsSource); ok {
		st = src.Stats()
	}
	r.mu.Lock()
	st.Reused = r.reused
	r.mu.Unlock()
	return st
}

var _ api.Allocator = (*Recycler)(nil)
var _ api.StatsSource = (*Recycler)(nil)
