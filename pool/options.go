// File: pool/options.go
// Package pool defines functional options for allocators.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"log"

	"github.com/momentics/hioload-vec/api"
)

const defaultMaxCached = 64

type options struct {
	logger    *log.Logger
	hugePages bool
	maxCached int
	backend   api.Allocator
}

func buildOptions(opts []Option) options {
	o := options{
		logger:    log.Default(),
		maxCached: defaultMaxCached,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option customizes allocator initialization.
type Option func(*options)

// WithLogger routes allocator diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHugePages asks the mmap allocator to try 2 MiB pages first.
func WithHugePages(enable bool) Option {
	return func(o *options) {
		o.hugePages = enable
	}
}

// WithMaxCached bounds how many released blocks the Recycler keeps per
// layout and element count.
func WithMaxCached(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxCached = n
		}
	}
}

// WithBackend sets the allocator the Recycler draws fresh blocks from.
func WithBackend(a api.Allocator) Option {
	return func(o *options) {
		o.backend = a
	}
}
