package vec_test

import (
	"testing"

	"github.com/momentics/hioload-vec/api"
)

// fatalCode runs fn and returns the code of the *api.Error it panicked
// with, or ErrCodeOK if it returned normally.
func fatalCode(t *testing.T, fn func()) (code api.ErrorCode) {
	t.Helper()
	defer func() {
		code = api.CodeOf(recover())
	}()
	fn()
	return api.ErrCodeOK
}

// ledger counts destructor runs per element id.
type ledger map[int]int

type tracked struct {
	id    int
	drops ledger
}

func (e tracked) Drop() { e.drops[e.id]++ }

func pushTracked(v interface{ Push(tracked) }, drops ledger, n int) {
	for i := 0; i < n; i++ {
		v.Push(tracked{id: i, drops: drops})
	}
}

var unitDrops int

// unit is a zero-size element that counts its destructor runs.
type unit struct{}

func (unit) Drop() { unitDrops++ }

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
