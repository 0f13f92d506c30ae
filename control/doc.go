// Package control
// Author: momentics <momentics@gmail.com>
//
// Debug introspection layer for hioload-vec allocators.
//
// Provides a concurrent-safe probe registry: named functions whose
// results are collected into a state snapshot, with helpers to publish
// allocator accounting and export the snapshot as JSON.
package control
