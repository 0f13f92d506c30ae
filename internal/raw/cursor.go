// File: internal/raw/cursor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package raw

import "unsafe"

// Cursor is a two-offset [start, end) read cursor over initialized
// elements it does not own. Each step moves one element out and clears
// its slot. For zero-size T the offsets are synthetic unit counts.
type Cursor[T any] struct {
	base  unsafe.Pointer
	start uintptr
	end   uintptr
	size  uintptr
}

// Over builds a cursor spanning the n initialized elements at base.
func Over[T any](base unsafe.Pointer, n int) Cursor[T] {
	var zero T
	c := Cursor[T]{base: base, size: unsafe.Sizeof(zero)}
	if c.size == 0 {
		c.end = uintptr(n)
	} else {
		c.end = uintptr(n) * c.size
	}
	return c
}

func (c *Cursor[T]) step() uintptr {
	if c.size == 0 {
		return 1
	}
	return c.size
}

// Done reports whether the range is exhausted.
func (c *Cursor[T]) Done() bool { return c.start == c.end }

// Len returns the number of elements left.
func (c *Cursor[T]) Len() int {
	return int((c.end - c.start) / c.step())
}

// Next moves out the element at the front.
func (c *Cursor[T]) Next() (T, bool) {
	var zero T
	if c.start == c.end {
		return zero, false
	}
	if c.size == 0 {
		c.start++
		return zero, true
	}
	v := c.take(c.start)
	c.start += c.size
	return v, true
}

// NextBack moves out the element at the back.
func (c *Cursor[T]) NextBack() (T, bool) {
	var zero T
	if c.start == c.end {
		return zero, false
	}
	if c.size == 0 {
		c.end--
		return zero, true
	}
	c.end -= c.size
	return c.take(c.end), true
}

func (c *Cursor[T]) take(off uintptr) T {
	var zero T
	p := (*T)(unsafe.Add(c.base, off))
	v := *p
	*p = zero
	return v
}

// Exhaust moves out every remaining element and hands it to drop.
// drop may be nil.
func (c *Cursor[T]) Exhaust(drop func(T)) {
	for {
		v, ok := c.Next()
		if !ok {
			return
		}
		if drop != nil {
			drop(v)
		}
	}
}
