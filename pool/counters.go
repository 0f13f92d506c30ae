// File: pool/counters.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sync/atomic"

	"github.com/momentics/hioload-vec/api"
)

// counters keeps lock-free allocation accounting shared by allocators.
type counters struct {
	totalAlloc atomic.Int64
	totalGrow  atomic.Int64
	totalFree  atomic.Int64
	inUse      atomic.Int64
	bytesInUse atomic.Int64
}

func (c *counters) onAlloc(bytes uintptr) {
	c.totalAlloc.Add(1)
	c.inUse.Add(1)
	c.bytesInUse.Add(int64(bytes))
}

func (c *counters) onGrow(oldBytes, newBytes uintptr) {
	c.totalGrow.Add(1)
	c.bytesInUse.Add(int64(newBytes) - int64(oldBytes))
}

func (c *counters) onFree(bytes uintptr) {
	c.totalFree.Add(1)
	c.inUse.Add(-1)
	c.bytesInUse.Add(-int64(bytes))
}

// Stats returns a snapshot of the counters.
func (c *counters) Stats() api.AllocatorStats {
	return api.AllocatorStats{
		TotalAlloc: c.totalAlloc.Load(),
		TotalGrow:  c.totalGrow.Load(),
		TotalFree:  c.totalFree.Load(),
		InUse:      c.inUse.Load(),
		BytesInUse: c.bytesInUse.Load(),
	}
}
