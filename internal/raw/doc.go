// Package raw
// Author: momentics <momentics@gmail.com>
//
// Unsafe building blocks of the vector: an allocation-owning Storage that
// knows nothing about which slots are initialized, and a borrowed
// two-offset Cursor that moves elements out of an initialized range.
//
// Neither type is synchronized. Callers own the invariants documented on
// each method.
package raw
