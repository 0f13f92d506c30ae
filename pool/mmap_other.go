//go:build !linux
// +build !linux

// File: pool/mmap_other.go
// Author: momentics <momentics@gmail.com>
//
// Stub mmap allocator for platforms without mremap.

package pool

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
)

// MmapAllocator is unavailable on this platform.
type MmapAllocator struct {
	counters
}

// NewMmapAllocator always fails outside Linux.
func NewMmapAllocator(...Option) (*MmapAllocator, error) {
	return nil, fmt.Errorf("mmap: %w on %s", api.ErrNotSupported, runtime.GOOS)
}

func (m *MmapAllocator) Allocate(api.Layout, int) (unsafe.Pointer, error) {
	return nil, api.ErrNotSupported
}

func (m *MmapAllocator) Grow(unsafe.Pointer, api.Layout, int, int) (unsafe.Pointer, error) {
	return nil, api.ErrNotSupported
}

func (m *MmapAllocator) Release(unsafe.Pointer, api.Layout, int) {}

// Mapped returns the number of live mappings.
func (m *MmapAllocator) Mapped() int { return 0 }
