// File: vec/vec.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package vec

import (
	"fmt"
	"iter"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/internal/raw"
	"github.com/momentics/hioload-vec/pool"
)

// Vec owns a raw.Storage and the first len initialized slots in it.
// The zero value is an empty vector using pool.Default().
type Vec[T any] struct {
	buf  raw.Storage[T]
	len  int
	hook func(any)

	moved    bool
	borrowed bool
}

// New returns an empty vector. No memory is allocated until the first push.
func New[T any](opts ...Option) *Vec[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	v := &Vec[T]{hook: o.hook}
	v.init(o.alloc)
	return v
}

// FromSlice returns a vector holding a copy of s.
func FromSlice[T any](s []T, opts ...Option) *Vec[T] {
	v := New[T](opts...)
	for _, x := range s {
		v.Push(x)
	}
	return v
}

// Collect pushes every value of seq into a new vector.
func Collect[T any](seq iter.Seq[T], opts ...Option) *Vec[T] {
	v := New[T](opts...)
	for x := range seq {
		v.Push(x)
	}
	return v
}

func (v *Vec[T]) init(a api.Allocator) {
	if a == nil {
		a = pool.Default()
	}
	v.buf = raw.NewStorage[T](a)
}

// live guards every call that touches element slots.
func (v *Vec[T]) live() {
	if v.moved {
		api.Fatal(api.NewError(api.ErrCodeMovedFrom, "vec: use of vector after IntoIter"))
	}
	if v.borrowed {
		api.Fatal(api.NewError(api.ErrCodeBorrowed, "vec: vector is borrowed by an unfinished Drain"))
	}
	if !v.buf.Ready() {
		v.init(nil)
	}
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int { return v.len }

// IsEmpty reports whether the vector holds no elements.
func (v *Vec[T]) IsEmpty() bool { return v.len == 0 }

// Cap returns the number of slots backed by storage.
func (v *Vec[T]) Cap() int {
	if !v.buf.Ready() && !v.moved {
		v.init(nil)
	}
	return v.buf.Cap()
}

// Push appends x, growing storage when full.
func (v *Vec[T]) Push(x T) {
	v.live()
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	*v.buf.Slot(v.len) = x
	v.len++
}

// Pop removes and returns the last element. ok is false when empty.
func (v *Vec[T]) Pop() (x T, ok bool) {
	v.live()
	if v.len == 0 {
		return x, false
	}
	v.len--
	p := v.buf.Slot(v.len)
	x = *p
	*p = *new(T)
	return x, true
}

// Insert places x at index i, shifting [i, len) one slot right.
// It panics when i > Len().
func (v *Vec[T]) Insert(i int, x T) {
	v.live()
	if i < 0 || i > v.len {
		api.Fatal(api.NewError(api.ErrCodeIndexOutOfBounds,
			fmt.Sprintf("vec: insertion index (is %d) should be <= len (is %d)", i, v.len)).
			WithContext("index", i))
	}
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	s := v.buf.Slots(v.len + 1)
	copy(s[i+1:], s[i:v.len])
	s[i] = x
	v.len++
}

// Remove takes out the element at index i, shifting (i, len) one slot
// left. It panics when i >= Len().
func (v *Vec[T]) Remove(i int) T {
	v.live()
	if i < 0 || i >= v.len {
		api.Fatal(api.NewError(api.ErrCodeIndexOutOfBounds,
			fmt.Sprintf("vec: removal index (is %d) should be < len (is %d)", i, v.len)).
			WithContext("index", i))
	}
	s := v.buf.Slots(v.len)
	x := s[i]
	copy(s[i:], s[i+1:])
	s[v.len-1] = *new(T)
	v.len--
	return x
}

func (v *Vec[T]) checkIndex(i int) {
	if i < 0 || i >= v.len {
		api.Fatal(api.NewError(api.ErrCodeIndexOutOfBounds,
			fmt.Sprintf("vec: index out of bounds: the len is %d but the index is %d", v.len, i)).
			WithContext("index", i))
	}
}

// At returns the element at index i.
func (v *Vec[T]) At(i int) T {
	v.checkIndex(i)
	return *v.buf.Slot(i)
}

// Set overwrites the element at index i and drops the previous value.
func (v *Vec[T]) Set(i int, x T) {
	v.checkIndex(i)
	p := v.buf.Slot(i)
	old := *p
	*p = x
	dropFunc[T](v.hook)(old)
}

// Ptr returns the address of element i. It is invalidated by any call
// that may grow or shift the vector. Writes through it bypass Drop.
func (v *Vec[T]) Ptr(i int) *T {
	v.checkIndex(i)
	return v.buf.Slot(i)
}

// Slice returns a read/write view of the elements. The view has no spare
// capacity, so appending to it never writes into the vector. Writes
// through the view bypass Drop.
func (v *Vec[T]) Slice() []T {
	if v.len == 0 {
		return nil
	}
	return v.buf.Slots(v.len)
}

// All yields index/value pairs front to back without consuming.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(i, *v.buf.Slot(i)) {
				return
			}
		}
	}
}

// Values yields the elements front to back without consuming.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(*v.buf.Slot(i)) {
				return
			}
		}
	}
}

// IntoIter moves the storage and every element into a consuming iterator.
// The vector must not be used afterwards; its Release becomes a no-op.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	v.live()
	n := v.len
	it := &IntoIter[T]{buf: v.buf.Take(), drop: dropFunc[T](v.hook)}
	it.cur = raw.Over[T](it.buf.Base(), n)
	v.len = 0
	v.moved = true
	if it.cur.Done() {
		it.Release()
	}
	return it
}

// Drain empties the vector and returns an iterator over its former
// elements. The length is zeroed before any element is read. Until the
// drain is exhausted or released the vector rejects mutation.
func (v *Vec[T]) Drain() *Drain[T] {
	v.live()
	n := v.len
	v.len = 0
	d := &Drain[T]{vec: v, cur: raw.Over[T](v.buf.Base(), n), drop: dropFunc[T](v.hook)}
	v.borrowed = true
	if d.cur.Done() {
		d.Release()
	}
	return d
}

// Clear drops every element and keeps the storage.
func (v *Vec[T]) Clear() {
	drop := dropFunc[T](v.hook)
	for {
		x, ok := v.Pop()
		if !ok {
			return
		}
		drop(x)
	}
}

// Release drops every element and frees the storage. The vector is empty
// and reusable afterwards. Releasing a moved-from vector does nothing.
func (v *Vec[T]) Release() {
	if v.moved || !v.buf.Ready() {
		return
	}
	v.Clear()
	v.buf.Release()
}

// dropFunc builds the destructor run on elements the container disposes of.
func dropFunc[T any](hook func(any)) func(T) {
	return func(x T) {
		if d, ok := any(x).(api.Dropper); ok {
			d.Drop()
		}
		if hook != nil {
			hook(x)
		}
	}
}
