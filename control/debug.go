// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for allocator inspection.

package control

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/momentics/hioload-vec/api"
)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// RegisterAllocator exposes the allocator's stats under name.
// It reports false when a keeps no accounting.
func (dp *DebugProbes) RegisterAllocator(name string, a api.Allocator) bool {
	src, ok := a.(api.StatsSource)
	if !ok {
		return false
	}
	dp.RegisterProbe(name, func() any { return src.Stats() })
	return true
}

// Names returns the registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DumpState returns output of all probes.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any)
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// DumpJSON renders DumpState as JSON.
func (dp *DebugProbes) DumpJSON() ([]byte, error) {
	b, err := json.Marshal(dp.DumpState())
	if err != nil {
		return nil, fmt.Errorf("control: dump state: %w", err)
	}
	return b, nil
}

var _ api.Debug = (*DebugProbes)(nil)
