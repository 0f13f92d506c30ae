// Package vec
// Author: momentics <momentics@gmail.com>
//
// Vec is a contiguous growable sequence with manual control over
// allocation, element lifetime and iteration.
//
// Memory comes from an api.Allocator (pool.Default() unless configured)
// and grows by doubling. Elements the container destroys itself are
// handed to their Drop method (api.Dropper) and to the optional drop hook
// exactly once. Two ownership-transferring iterators are provided:
//
//   - IntoIter takes the vector's storage; the vector must not be used
//     again. Releasing the iterator drops unconsumed elements and frees
//     the storage.
//   - Drain borrows the vector and empties it at once. Releasing the
//     drain drops unconsumed elements; the vector keeps its capacity.
//
// Both iterators release themselves when stepped to exhaustion.
// Misuse (bad indices, touching a moved-from or drained-from vector) and
// allocation failure panic with *api.Error. A Vec is not safe for
// concurrent mutation.
package vec
