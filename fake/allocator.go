// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

// Package fake provides test doubles for hioload-vec contracts.
package fake

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
)

// Op names an allocator call.
type Op string

const (
	OpAllocate Op = "allocate"
	OpGrow     Op = "grow"
	OpRelease  Op = "release"
)

// Call records one allocator invocation.
type Call struct {
	Op    Op
	Ptr   unsafe.Pointer
	OldN  int
	NewN  int
	Bytes uintptr
}

// Allocator records every call and delegates to a Go heap allocator.
// Setting FailAfter > 0 makes the FailAfter-th Allocate/Grow request, and
// every one after it, fail.
type Allocator struct {
	FailAfter int

	mu      sync.Mutex
	backend *pool.HeapAllocator
	calls   []Call
	live    map[unsafe.Pointer]int
	faults  []string
	reqs    int
}

// NewAllocator creates a recording allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		backend: pool.NewHeapAllocator(),
		live:    make(map[unsafe.Pointer]int),
	}
}

func (f *Allocator) fail() bool {
	f.reqs++
	return f.FailAfter > 0 && f.reqs >= f.FailAfter
}

func (f *Allocator) Allocate(l api.Layout, n int) (unsafe.Pointer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bytes, _ := l.ArrayBytes(n)
	f.calls = append(f.calls, Call{Op: OpAllocate, NewN: n, Bytes: bytes})
	if f.fail() {
		return nil, fmt.Errorf("fake: %w", api.ErrAllocFailed)
	}
	p, err := f.backend.Allocate(l, n)
	if err != nil {
		return nil, err
	}
	f.calls[len(f.calls)-1].Ptr = p
	f.live[p] = n
	return p, nil
}

func (f *Allocator) Grow(p unsafe.Pointer, l api.Layout, oldN, newN int) (unsafe.Pointer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bytes, _ := l.ArrayBytes(newN)
	f.calls = append(f.calls, Call{Op: OpGrow, Ptr: p, OldN: oldN, NewN: newN, Bytes: bytes})
	if n, ok := f.live[p]; !ok || n != oldN {
		f.faults = append(f.faults, fmt.Sprintf("grow of %p from %d: live count %d", p, oldN, n))
	}
	if f.fail() {
		return nil, fmt.Errorf("fake: %w", api.ErrAllocFailed)
	}
	np, err := f.backend.Grow(p, l, oldN, newN)
	if err != nil {
		return nil, err
	}
	delete(f.live, p)
	f.live[np] = newN
	return np, nil
}

func (f *Allocator) Release(p unsafe.Pointer, l api.Layout, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bytes, _ := l.ArrayBytes(n)
	f.calls = append(f.calls, Call{Op: OpRelease, Ptr: p, OldN: n, Bytes: bytes})
	if got, ok := f.live[p]; !ok || got != n {
		f.faults = append(f.faults, fmt.Sprintf("release of %p with %d: live count %d (double free?)", p, n, got))
		return
	}
	delete(f.live, p)
	f.backend.Release(p, l, n)
}

// Calls returns a copy of the recorded calls.
func (f *Allocator) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many calls of op were made.
func (f *Allocator) Count(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Live returns the number of blocks handed out and not yet released.
func (f *Allocator) Live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Faults lists contract violations seen so far: grows or releases of
// unknown blocks, or with the wrong element count.
func (f *Allocator) Faults() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.faults...)
}

// Stats delegates to the backing heap allocator.
func (f *Allocator) Stats() api.AllocatorStats { return f.backend.Stats() }

var _ api.Allocator = (*Allocator)(nil)
