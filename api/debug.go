// File: api/debug.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Allocator introspection contract.

package api

// Debug collects named state probes, typically allocator accounting.
type Debug interface {
	// RegisterProbe adds or replaces a named probe.
	RegisterProbe(name string, fn func() any)

	// RegisterAllocator publishes a's AllocatorStats under name when a
	// implements StatsSource, and reports whether it did.
	RegisterAllocator(name string, a Allocator) bool

	// DumpState evaluates every probe and returns the results by name.
	DumpState() map[string]any
}
