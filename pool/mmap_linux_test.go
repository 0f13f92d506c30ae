//go:build linux

package pool_test

import (
	"bytes"
	"log"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
)

type sample struct {
	At    int64
	Value float64
}

func TestMmapAllocatorGrowKeepsContents(t *testing.T) {
	m, err := pool.NewMmapAllocator()
	require.NoError(t, err)
	l := api.LayoutOf[sample]()

	p, err := m.Allocate(l, 4)
	require.NoError(t, err)
	s := unsafe.Slice((*sample)(p), 4)
	for i := range s {
		s[i] = sample{At: int64(i), Value: float64(i) / 2}
	}

	// Large enough to force mremap past the first page.
	np, err := m.Grow(p, l, 4, 1<<16)
	require.NoError(t, err)
	grown := unsafe.Slice((*sample)(np), 1<<16)
	for i := 0; i < 4; i++ {
		assert.Equal(t, sample{At: int64(i), Value: float64(i) / 2}, grown[i])
	}
	grown[len(grown)-1] = sample{At: -1}
	assert.Equal(t, 1, m.Mapped())

	m.Release(np, l, 1<<16)
	assert.Zero(t, m.Mapped())
	st := m.Stats()
	assert.Equal(t, int64(1), st.TotalAlloc)
	assert.Equal(t, int64(1), st.TotalGrow)
	assert.Zero(t, st.InUse)
	assert.Zero(t, st.BytesInUse)
}

func TestMmapAllocatorRejectsPointers(t *testing.T) {
	m, err := pool.NewMmapAllocator()
	require.NoError(t, err)
	_, err = m.Allocate(api.LayoutOf[*sample](), 4)
	assert.ErrorIs(t, err, api.ErrUnsupportedLayout)
	_, err = m.Allocate(api.LayoutOf[string](), 4)
	assert.ErrorIs(t, err, api.ErrUnsupportedLayout)
}

func TestMmapAllocatorHugePageFallback(t *testing.T) {
	var out bytes.Buffer
	m, err := pool.NewMmapAllocator(pool.WithHugePages(true), pool.WithLogger(log.New(&out, "", 0)))
	require.NoError(t, err)
	l := api.LayoutOf[int64]()

	// Huge pages are usually not reserved on test hosts; either path must
	// yield usable memory.
	p, err := m.Allocate(l, 1024)
	require.NoError(t, err)
	s := unsafe.Slice((*int64)(p), 1024)
	s[1023] = 42

	np, err := m.Grow(p, l, 1024, 2048)
	require.NoError(t, err)
	assert.Equal(t, int64(42), unsafe.Slice((*int64)(np), 2048)[1023])
	m.Release(np, l, 2048)
	assert.Zero(t, m.Mapped())
}

func TestMmapAllocatorUnknownRelease(t *testing.T) {
	var out bytes.Buffer
	m, err := pool.NewMmapAllocator(pool.WithLogger(log.New(&out, "", 0)))
	require.NoError(t, err)
	var x int64
	m.Release(unsafe.Pointer(&x), api.LayoutOf[int64](), 1)
	assert.Contains(t, out.String(), "release of unknown block")
	assert.Zero(t, m.Stats().TotalFree)
}
