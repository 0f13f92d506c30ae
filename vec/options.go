// File: vec/options.go
// Package vec defines functional options for vectors.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vec

import "github.com/momentics/hioload-vec/api"

type options struct {
	alloc api.Allocator
	hook  func(any)
}

// Option customizes vector initialization.
type Option func(*options)

// WithAllocator draws storage from a instead of pool.Default().
func WithAllocator(a api.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithDropHook registers fn to observe every element the vector or its
// iterators destroy. It runs after the element's own Drop, if any.
func WithDropHook(fn func(any)) Option {
	return func(o *options) {
		o.hook = fn
	}
}
