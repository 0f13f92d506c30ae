// File: vec/iter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Consuming and draining iterators. Both wrap a raw.Cursor and differ only
// in what they own: IntoIter owns the storage, Drain borrows the vector.

package vec

import (
	"iter"

	"github.com/momentics/hioload-vec/internal/raw"
)

// IntoIter owns a former vector's storage and yields its elements.
type IntoIter[T any] struct {
	buf      raw.Storage[T]
	cur      raw.Cursor[T]
	drop     func(T)
	released bool
}

// Next moves out the front element.
func (it *IntoIter[T]) Next() (T, bool) {
	x, ok := it.cur.Next()
	if it.cur.Done() {
		it.Release()
	}
	return x, ok
}

// NextBack moves out the back element.
func (it *IntoIter[T]) NextBack() (T, bool) {
	x, ok := it.cur.NextBack()
	if it.cur.Done() {
		it.Release()
	}
	return x, ok
}

// Len returns the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int { return it.cur.Len() }

// Release drops the elements not yet yielded, then frees the storage.
// It is idempotent.
func (it *IntoIter[T]) Release() {
	if it.released {
		return
	}
	it.released = true
	it.cur.Exhaust(it.drop)
	it.buf.Release()
}

// All yields the remaining elements front to back and releases the
// iterator when the loop ends, including on break.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return consume(it.Next, it.Release)
}

// Backward yields the remaining elements back to front and releases the
// iterator when the loop ends.
func (it *IntoIter[T]) Backward() iter.Seq[T] {
	return consume(it.NextBack, it.Release)
}

// Drain yields a vector's former elements. The vector itself was emptied
// when the drain was created.
type Drain[T any] struct {
	vec  *Vec[T]
	cur  raw.Cursor[T]
	drop func(T)
}

// Next moves out the front element.
func (d *Drain[T]) Next() (T, bool) {
	x, ok := d.cur.Next()
	if d.cur.Done() {
		d.Release()
	}
	return x, ok
}

// NextBack moves out the back element.
func (d *Drain[T]) NextBack() (T, bool) {
	x, ok := d.cur.NextBack()
	if d.cur.Done() {
		d.Release()
	}
	return x, ok
}

// Len returns the number of elements not yet yielded.
func (d *Drain[T]) Len() int { return d.cur.Len() }

// Release drops the elements not yet yielded and hands the vector back.
// The un-drained elements are not restored. It is idempotent.
func (d *Drain[T]) Release() {
	if d.vec == nil {
		return
	}
	d.cur.Exhaust(d.drop)
	d.vec.borrowed = false
	d.vec = nil
}

// All yields the remaining elements front to back and releases the drain
// when the loop ends, including on break.
func (d *Drain[T]) All() iter.Seq[T] {
	return consume(d.Next, d.Release)
}

// Backward yields the remaining elements back to front and releases the
// drain when the loop ends.
func (d *Drain[T]) Backward() iter.Seq[T] {
	return consume(d.NextBack, d.Release)
}

func consume[T any](next func() (T, bool), release func()) iter.Seq[T] {
	return func(yield func(T) bool) {
		defer release()
		for {
			x, ok := next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}
