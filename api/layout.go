// File: api/layout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Element layout descriptors shared by containers and allocators.

package api

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

// Layout describes one element slot: its size, alignment and Go type.
// Allocators address memory by element count and Layout, never by raw
// byte counts. Layout is comparable and can be used as a map key.
type Layout struct {
	Size  uintptr
	Align uintptr
	Type  reflect.Type
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  unsafe.Sizeof(zero),
		Align: unsafe.Alignof(zero),
		Type:  reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// ZeroSize reports whether elements of this layout occupy no memory.
func (l Layout) ZeroSize() bool { return l.Size == 0 }

// ArrayBytes returns the byte size of n elements. ok is false when n is
// negative or the size exceeds the maximum addressable offset.
func (l Layout) ArrayBytes(n int) (size uintptr, ok bool) {
	if n < 0 {
		return 0, false
	}
	if l.Size == 0 || n == 0 {
		return 0, true
	}
	if uintptr(n) > uintptr(math.MaxInt)/l.Size {
		return 0, false
	}
	return uintptr(n) * l.Size, true
}

// PointerFree reports whether values of the layout's type hold no Go
// pointers, i.e. whether they may live in memory the garbage collector
// does not scan.
func (l Layout) PointerFree() bool {
	if l.Type == nil {
		return false
	}
	return pointerFree(l.Type)
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the layout for logs and error context.
func (l Layout) String() string {
	return fmt.Sprintf("%v{size=%d,align=%d}", l.Type, l.Size, l.Align)
}
