//go:build linux
// +build linux

// File: pool/mmap_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux allocator backed by anonymous mappings. Growth uses mremap, which
// extends in place when the address space allows and relocates otherwise.
// With huge pages enabled, blocks are first mapped with MAP_HUGETLB and
// fall back to regular pages if that fails.

package pool

import (
	"fmt"
	"log"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-vec/api"
)

const hugePageSize = 2 << 20

type region struct {
	data []byte
	huge bool
}

// MmapAllocator maps element blocks outside the Go heap. The collector
// does not scan that memory, so only pointer-free layouts are accepted.
// It is safe for concurrent use.
type MmapAllocator struct {
	counters
	mu        sync.Mutex
	regions   map[uintptr]region
	pageSize  int
	hugePages bool
	logger    *log.Logger
}

// NewMmapAllocator creates an mmap allocator.
func NewMmapAllocator(opts ...Option) (*MmapAllocator, error) {
	o := buildOptions(opts)
	return &MmapAllocator{
		regions:   make(map[uintptr]region),
		pageSize:  unix.Getpagesize(),
		hugePages: o.hugePages,
		logger:    o.logger,
	}, nil
}

func roundUp(n, unit int) int {
	return (n + unit - 1) / unit * unit
}

func (m *MmapAllocator) Allocate(l api.Layout, n int) (unsafe.Pointer, error) {
	if !l.PointerFree() {
		return nil, fmt.Errorf("mmap: %w: %s holds pointers", api.ErrUnsupportedLayout, l)
	}
	bytes, err := checkRequest(l, n)
	if err != nil {
		return nil, err
	}
	r, err := m.mmap(int(bytes))
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(r.data))
	m.mu.Lock()
	m.regions[uintptr(p)] = r
	m.mu.Unlock()
	m.onAlloc(bytes)
	return p, nil
}

func (m *MmapAllocator) mmap(size int) (region, error) {
	const prot = unix.PROT_READ | unix.PROT_WRITE
	const flags = unix.MAP_ANONYMOUS | unix.MAP_PRIVATE
	if m.hugePages {
		data, err := unix.Mmap(-1, 0, roundUp(size, hugePageSize), prot, flags|unix.MAP_HUGETLB)
		if err == nil {
			return region{data: data, huge: true}, nil
		}
		m.logger.Printf("mmap: hugepage mapping of %d bytes failed, using regular pages: %v", size, err)
	}
	data, err := unix.Mmap(-1, 0, roundUp(size, m.pageSize), prot, flags)
	if err != nil {
		return region{}, fmt.Errorf("mmap: %w: %d bytes: %w", api.ErrAllocFailed, size, err)
	}
	return region{data: data}, nil
}

func (m *MmapAllocator) Grow(p unsafe.Pointer, l api.Layout, oldN, newN int) (unsafe.Pointer, error) {
	if newN < oldN {
		return nil, fmt.Errorf("mmap: %w: grow from %d to %d", api.ErrNotSupported, oldN, newN)
	}
	newBytes, err := checkRequest(l, newN)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regions[uintptr(p)]
	if !ok {
		return nil, fmt.Errorf("mmap: %w: unknown block %p", api.ErrAllocFailed, p)
	}
	unit := m.pageSize
	if r.huge {
		unit = hugePageSize
	}
	size := roundUp(int(newBytes), unit)
	if size > len(r.data) {
		data, err := unix.Mremap(r.data, size, unix.MREMAP_MAYMOVE)
		if err != nil {
			return nil, fmt.Errorf("mmap: %w: mremap to %d bytes: %w", api.ErrAllocFailed, size, err)
		}
		delete(m.regions, uintptr(p))
		r.data = data
		p = unsafe.Pointer(unsafe.SliceData(data))
		m.regions[uintptr(p)] = r
	}
	oldBytes, _ := l.ArrayBytes(oldN)
	m.onGrow(oldBytes, newBytes)
	return p, nil
}

func (m *MmapAllocator) Release(p unsafe.Pointer, l api.Layout, n int) {
	m.mu.Lock()
	r, ok := m.regions[uintptr(p)]
	delete(m.regions, uintptr(p))
	m.mu.Unlock()
	if !ok {
		m.logger.Printf("mmap: release of unknown block %p (%d x %s)", p, n, l)
		return
	}
	if err := unix.Munmap(r.data); err != nil {
		m.logger.Printf("mmap: munmap %p: %v", p, err)
	}
	bytes, _ := l.ArrayBytes(n)
	m.onFree(bytes)
}

// Mapped returns the number of live mappings.
func (m *MmapAllocator) Mapped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regions)
}

var _ api.Allocator = (*MmapAllocator)(nil)
var _ api.StatsSource = (*MmapAllocator)(nil)
