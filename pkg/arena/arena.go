// Package arena provides a slotted, vector-backed container that hands out
// stable integer handles.
//
// Values are stored in a dense slice. Inserting reuses the smallest free
// slot if one exists, otherwise appends. A handle stays valid until the
// value it refers to is erased; erased slots are recycled by later inserts.
// Trailing invalid slots are trimmed eagerly, so Cap() can shrink after an
// erase.
//
// The arena is the backing store for graph nodes and arcs: algorithms
// address parallel property vectors (capacity, cost, distance) directly by
// handle, which is why handles are plain ints over a dense [0, Cap()) range.
package arena

import (
	"fmt"
	"iter"
	"sort"

	"netflow/pkg/apperror"
)

// Arena maps a dense handle space [0, Cap()) to optional values of type T.
//
// The zero value is an empty arena ready for use. Arena is not safe for
// concurrent mutation.
type Arena[T any] struct {
	valid []bool
	data  []T
	free  []int // invalid slots below the trimmed tail, ascending
}

// =============================================================================
// Mutation
// =============================================================================

// Insert stores v in the smallest free slot, or appends a new slot if none
// is free, and returns the slot's handle. The handle remains stable until
// Erase is called with it.
func (a *Arena[T]) Insert(v T) int {
	if len(a.free) > 0 {
		h := a.free[0]
		a.free = a.free[1:]
		a.valid[h] = true
		a.data[h] = v
		return h
	}
	h := len(a.data)
	a.data = append(a.data, v)
	a.valid = append(a.valid, true)
	return h
}

// Erase invalidates the slot h and recycles it. Erasing an invalid handle
// is a no-op. After the slot is released, trailing invalid slots are popped
// so that the last physical slot is always valid.
func (a *Arena[T]) Erase(h int) {
	if !a.IsValid(h) {
		return
	}
	a.valid[h] = false
	i := sort.SearchInts(a.free, h)
	a.free = append(a.free, 0)
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = h

	// Trim unused slots from the back of the buffer. A trailing invalid
	// slot is by construction the largest entry of the free list.
	for len(a.data) > 0 && !a.valid[len(a.data)-1] {
		a.free = a.free[:len(a.free)-1]
		a.valid = a.valid[:len(a.valid)-1]
		var zero T
		a.data[len(a.data)-1] = zero
		a.data = a.data[:len(a.data)-1]
	}
}

// =============================================================================
// Access
// =============================================================================

// IsValid reports whether h refers to a live value.
func (a *Arena[T]) IsValid(h int) bool {
	return h >= 0 && h < len(a.data) && a.valid[h]
}

// At returns a pointer to the value at h after checking bounds and
// validity. An invalid handle yields an INVALID_HANDLE error.
func (a *Arena[T]) At(h int) (*T, error) {
	if !a.IsValid(h) {
		return nil, apperror.New(apperror.CodeInvalidHandle,
			fmt.Sprintf("arena: no value at handle %d", h))
	}
	return &a.data[h], nil
}

// Get returns a pointer to the value at h without any checking.
// The caller must ensure h is valid.
func (a *Arena[T]) Get(h int) *T {
	return &a.data[h]
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return len(a.data) - len(a.free)
}

// Cap returns the physical length of the handle space. Parallel property
// vectors must be sized to at least Cap().
func (a *Arena[T]) Cap() int {
	return len(a.data)
}

// Handles iterates over the valid handles in ascending order.
func (a *Arena[T]) Handles() iter.Seq[int] {
	return func(yield func(int) bool) {
		for h := range a.data {
			if a.valid[h] && !yield(h) {
				return
			}
		}
	}
}
