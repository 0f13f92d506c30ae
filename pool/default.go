package pool

import (
	"sync"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/control"
)

var (
	defaultOnce sync.Once
	defaultRec  *Recycler
)

// Default returns the process-wide allocator used by containers that were
// not given one: a Recycler over the Go heap, so vectors that come and go
// reuse each other's blocks.
func Default() api.Allocator {
	return defaultRecycler()
}

func defaultRecycler() *Recycler {
	defaultOnce.Do(func() {
		defaultRec = NewRecycler(WithBackend(NewHeapAllocator()))
	})
	return defaultRec
}

// RegisterProbes publishes the default allocator's accounting on dp as
// "pool.default" and its parked block count as "pool.default.cached".
func RegisterProbes(dp *control.DebugProbes) {
	r := defaultRecycler()
	dp.RegisterAllocator("pool.default", r)
	dp.RegisterProbe("pool.default.cached", func() any { return r.Cached() })
}
