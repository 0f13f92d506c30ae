// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Go-heap allocator. Blocks are typed Go arrays so the garbage collector
// scans pointer-carrying elements; Release only updates accounting.

package pool

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// HeapAllocator hands out typed blocks from the Go heap.
// It is safe for concurrent use.
type HeapAllocator struct {
	counters
}

// NewHeapAllocator creates a heap allocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

func (h *HeapAllocator) Allocate(l api.Layout, n int) (unsafe.Pointer, error) {
	bytes, err := checkRequest(l, n)
	if err != nil {
		return nil, err
	}
	p, err := makeBlock(l, n)
	if err != nil {
		return nil, err
	}
	h.onAlloc(bytes)
	return p, nil
}

func (h *HeapAllocator) Grow(p unsafe.Pointer, l api.Layout, oldN, newN int) (unsafe.Pointer, error) {
	if newN < oldN {
		return nil, fmt.Errorf("heap: %w: grow from %d to %d", api.ErrNotSupported, oldN, newN)
	}
	newBytes, err := checkRequest(l, newN)
	if err != nil {
		return nil, err
	}
	np, err := makeBlock(l, newN)
	if err != nil {
		return nil, err
	}
	typedCopy(np, p, l.Type, oldN)
	oldBytes, _ := l.ArrayBytes(oldN)
	h.onGrow(oldBytes, newBytes)
	return np, nil
}

func (h *HeapAllocator) Release(_ unsafe.Pointer, l api.Layout, n int) {
	bytes, _ := l.ArrayBytes(n)
	h.onFree(bytes)
}

// makeBlock allocates a typed Go array of n elements. Requests the
// runtime rejects are reported as errors.
func makeBlock(l api.Layout, n int) (p unsafe.Pointer, err error) {
	if l.Type == nil {
		return nil, fmt.Errorf("heap: %w: layout without element type", api.ErrUnsupportedLayout)
	}
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("heap: %w: %d x %s: %v", api.ErrAllocFailed, n, l, r)
		}
	}()
	return reflect.MakeSlice(reflect.SliceOf(l.Type), n, n).UnsafePointer(), nil
}

// typedCopy copies n elements of type t from src to dst with write
// barriers, so pointer-carrying elements stay visible to the collector.
func typedCopy(dst, src unsafe.Pointer, t reflect.Type, n int) {
	if n == 0 {
		return
	}
	at := reflect.ArrayOf(n, t)
	reflect.Copy(reflect.NewAt(at, dst).Elem(), reflect.NewAt(at, src).Elem())
}

// checkRequest validates an allocation request and returns its byte size.
func checkRequest(l api.Layout, n int) (uintptr, error) {
	if l.ZeroSize() {
		return 0, fmt.Errorf("%w: zero-size layout %s", api.ErrUnsupportedLayout, l)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: element count %d", api.ErrAllocFailed, n)
	}
	bytes, ok := l.ArrayBytes(n)
	if !ok {
		return 0, fmt.Errorf("%w: %d x %s", api.ErrCapacityOverflow, n, l)
	}
	return bytes, nil
}

var _ api.Allocator = (*HeapAllocator)(nil)
var _ api.StatsSource = (*HeapAllocator)(nil)
