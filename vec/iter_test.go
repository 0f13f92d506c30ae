package vec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/fake"
	"github.com/momentics/hioload-vec/vec"
)

// stepper is the double-ended stepping surface shared by IntoIter and Drain.
type stepper[T any] interface {
	Next() (T, bool)
	NextBack() (T, bool)
}

// frontFrontBackBackFront steps it as (front, front, back, back, front).
func frontFrontBackBackFront[T any](t *testing.T, it stepper[T]) []T {
	t.Helper()
	var got []T
	for _, back := range []bool{false, false, true, true, false} {
		var (
			x  T
			ok bool
		)
		if back {
			x, ok = it.NextBack()
		} else {
			x, ok = it.Next()
		}
		require.True(t, ok)
		got = append(got, x)
	}
	return got
}

func TestIntoIterInterleaved(t *testing.T) {
	fa := fake.NewAllocator()
	v := vec.FromSlice(ints(5), vec.WithAllocator(fa))
	it := v.IntoIter()
	assert.Equal(t, 5, it.Len())

	assert.Equal(t, []int{1, 2, 5, 4, 3}, frontFrontBackBackFront[int](t, it))
	_, ok := it.Next()
	assert.False(t, ok)
	_, ok = it.NextBack()
	assert.False(t, ok)

	assert.Zero(t, fa.Live(), "storage is freed once the iterator is exhausted")
	it.Release()
	assert.Equal(t, 1, fa.Count(fake.OpRelease))
	assert.Empty(t, fa.Faults())
}

func TestIntoIterMovesOwnership(t *testing.T) {
	fa := fake.NewAllocator()
	v := vec.FromSlice(ints(3), vec.WithAllocator(fa))
	it := v.IntoIter()

	assert.Zero(t, v.Len())
	assert.Equal(t, api.ErrCodeMovedFrom, fatalCode(t, func() { v.Push(1) }))
	assert.Equal(t, api.ErrCodeMovedFrom, fatalCode(t, func() { v.Pop() }))
	assert.Equal(t, api.ErrCodeMovedFrom, fatalCode(t, func() { v.IntoIter() }))
	assert.Equal(t, api.ErrCodeMovedFrom, fatalCode(t, func() { v.Drain() }))

	v.Release()
	assert.Zero(t, fa.Count(fake.OpRelease), "moved-from vector must not free the storage")

	var got []int
	for x := range it.All() {
		got = append(got, x)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 1, fa.Count(fake.OpRelease))
	assert.Empty(t, fa.Faults())
}

func TestIntoIterAbandonedDropsRest(t *testing.T) {
	fa := fake.NewAllocator()
	drops := ledger{}
	v := vec.New[tracked](vec.WithAllocator(fa))
	pushTracked(v, drops, 8)

	it := v.IntoIter()
	a, _ := it.Next()
	b, _ := it.NextBack()
	assert.Equal(t, 0, a.id)
	assert.Equal(t, 7, b.id)

	it.Release()
	it.Release()
	assert.Equal(t, ledger{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1}, drops)
	assert.Zero(t, fa.Live())
	assert.Empty(t, fa.Faults())

	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIntoIterBreakReleases(t *testing.T) {
	fa := fake.NewAllocator()
	drops := ledger{}
	v := vec.New[tracked](vec.WithAllocator(fa))
	pushTracked(v, drops, 6)

	var seen []int
	for e := range v.IntoIter().Backward() {
		seen = append(seen, e.id)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []int{5, 4}, seen)
	assert.Equal(t, ledger{0: 1, 1: 1, 2: 1, 3: 1}, drops)
	assert.Zero(t, fa.Live())
}

func TestIntoIterEmpty(t *testing.T) {
	fa := fake.NewAllocator()
	v := vec.New[int](vec.WithAllocator(fa))
	v.Push(1)
	_, _ = v.Pop()

	it := v.IntoIter()
	_, ok := it.Next()
	assert.False(t, ok)
	assert.Zero(t, fa.Live())
}

func TestDrainInterleaved(t *testing.T) {
	fa := fake.NewAllocator()
	v := vec.FromSlice(ints(5), vec.WithAllocator(fa))
	c := v.Cap()

	d := v.Drain()
	assert.Zero(t, v.Len(), "length is zeroed before any element is read")
	assert.Equal(t, 5, d.Len())

	assert.Equal(t, []int{1, 2, 5, 4, 3}, frontFrontBackBackFront[int](t, d))
	_, ok := d.Next()
	assert.False(t, ok)
	_, ok = d.NextBack()
	assert.False(t, ok)

	assert.Zero(t, v.Len())
	assert.Equal(t, c, v.Cap())
	assert.Zero(t, fa.Count(fake.OpRelease), "drain keeps the allocation")

	v.Push(10)
	v.Push(11)
	assert.Equal(t, []int{10, 11}, v.Slice())
	assert.Equal(t, 1, fa.Count(fake.OpAllocate), "reused the same storage")
}

func TestDrainBorrowsVector(t *testing.T) {
	v := vec.FromSlice(ints(3))
	d := v.Drain()

	assert.Equal(t, api.ErrCodeBorrowed, fatalCode(t, func() { v.Push(1) }))
	assert.Equal(t, api.ErrCodeBorrowed, fatalCode(t, func() { v.Insert(0, 1) }))
	assert.Equal(t, api.ErrCodeBorrowed, fatalCode(t, func() { v.Drain() }))
	assert.Equal(t, api.ErrCodeBorrowed, fatalCode(t, func() { v.Release() }))
	assert.Equal(t, api.ErrCodeIndexOutOfBounds, fatalCode(t, func() { v.At(0) }))

	d.Release()
	v.Push(1)
	assert.Equal(t, []int{1}, v.Slice())
}

func TestDrainAbandonedDropsRest(t *testing.T) {
	drops := ledger{}
	var hooked []int
	v := vec.New[tracked](vec.WithDropHook(func(x any) { hooked = append(hooked, x.(tracked).id) }))
	pushTracked(v, drops, 5)

	d := v.Drain()
	first, _ := d.Next()
	assert.Equal(t, 0, first.id)
	d.Release()
	d.Release()

	assert.Equal(t, ledger{1: 1, 2: 1, 3: 1, 4: 1}, drops)
	assert.Equal(t, []int{1, 2, 3, 4}, hooked)
	assert.Zero(t, v.Len(), "un-drained suffix is not restored")

	v.Release()
	assert.Len(t, drops, 4, "vector does not drop drained elements again")
}

func TestDrainAllBreakReleases(t *testing.T) {
	drops := ledger{}
	v := vec.New[tracked]()
	pushTracked(v, drops, 4)

	for e := range v.Drain().All() {
		if e.id == 1 {
			break
		}
	}
	assert.Equal(t, ledger{2: 1, 3: 1}, drops)
	v.Push(tracked{id: 9, drops: drops})
	assert.Equal(t, 1, v.Len())
}

func TestDrainEmptyDoesNotBorrow(t *testing.T) {
	v := vec.New[int]()
	d := v.Drain()
	_, ok := d.NextBack()
	assert.False(t, ok)
	v.Push(1)
	assert.Equal(t, 1, v.Len())
}

func TestZeroSizeDrain(t *testing.T) {
	fa := fake.NewAllocator()
	v := vec.New[unit](vec.WithAllocator(fa))
	for i := 0; i < 5; i++ {
		v.Push(unit{})
	}

	d := v.Drain()
	steps := []func() (unit, bool){d.Next, d.Next, d.NextBack, d.Next, d.NextBack}
	for i, step := range steps {
		x, ok := step()
		require.True(t, ok, "step %d", i)
		assert.Equal(t, unit{}, x)
	}
	_, ok := d.Next()
	assert.False(t, ok)
	_, ok = d.NextBack()
	assert.False(t, ok)
	assert.Empty(t, fa.Calls())
}

func TestZeroSizeIntoIter(t *testing.T) {
	v := vec.New[unit]()
	for i := 0; i < 5; i++ {
		v.Push(unit{})
	}
	unitDrops = 0
	it := v.IntoIter()
	_, _ = it.Next()
	_, _ = it.NextBack()
	it.Release()
	assert.Equal(t, 3, unitDrops)
}
