// Package arena provides an append-only arena with compressed pointers.
//
// The IR builder allocates instructions at a high rate while lowering a
// function body, and instructions refer to each other as operands. Storing
// those references as 32-bit arena pointers instead of native pointers keeps
// instructions small and lets the zero value mean "no value".
package arena

import (
	"fmt"
	"math/bits"
)

// chunkMinShift is the log2 of the size of the smallest chunk in an Arena.
const (
	chunkMinShift = 4
	chunkMinLen   = 1 << chunkMinShift
)

// Untyped is an untyped arena pointer.
//
// The pointer value is one plus the number of elements allocated before it,
// so the zero value is nil.
type Untyped uint32

// Nil returns whether this pointer is nil.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed pointer into an [Arena] of T.
//
// It cannot be dereferenced directly; see [Pointer.In]. The zero value is
// nil.
type Pointer[T any] Untyped

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In looks up this pointer in the given arena.
//
// arena must be the arena that allocated this pointer; otherwise this will
// return an arbitrary element or panic. Panics if p is nil.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is a slice-of-slices arena that guarantees allocated Ts are never
// moved, so pointers into it remain stable across growth.
//
// It maintains a table of chunks whose sizes double, mimicking the resizing
// behavior of an ordinary slice while keeping lookup O(1). A zero Arena is
// empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(table[0]) == chunkMinLen.
	// 2. cap(table[n]) == 2*cap(table[n-1]).
	// 3. cap(table[n]) == len(table[n]) for all but the last chunk.
	table [][]T
}

// New allocates a new value on the arena and returns its pointer.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.table == nil {
		a.table = [][]T{make([]T, 0, chunkMinLen)}
	}

	last := &a.table[len(a.table)-1]
	if len(*last) == cap(*last) {
		a.table = append(a.table, make([]T, 0, 2*cap(*last)))
		last = &a.table[len(a.table)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.Len()))
}

// At dereferences an untyped arena pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Trigger an ordinary nil dereference on purpose.
	}
	chunk, idx := a.coordinates(int(ptr) - 1)
	return &a.table[chunk][idx]
}

// Len returns the number of values allocated on this arena.
func (a *Arena[T]) Len() int {
	if len(a.table) == 0 {
		return 0
	}

	// Only the last chunk can be partially filled.
	return a.lenOfFirstNChunks(len(a.table)-1) + len(a.table[len(a.table)-1])
}

// Values calls fn for each allocated value in allocation order, together
// with its pointer, until fn returns false.
func (a *Arena[T]) Values(fn func(Untyped, *T) bool) {
	n := 1
	for _, chunk := range a.table {
		for i := range chunk {
			if !fn(Untyped(n), &chunk[i]) {
				return
			}
			n++
		}
	}
}

// lenOfNthChunk returns the length of the nth chunk, allocated or not.
func (*Arena[T]) lenOfNthChunk(n int) int {
	return chunkMinLen << n
}

// lenOfFirstNChunks returns the total length of the first n chunks.
func (a *Arena[T]) lenOfFirstNChunks(n int) int {
	// 2^m + 2^(m+1) + ... + 2^n == 2^(n+1) - 2^m, so the sum of
	// lenOfNthChunk(k) for k in [0, n) telescopes to the difference below.
	return max(0, a.lenOfNthChunk(n)-a.lenOfNthChunk(0))
}

// coordinates locates idx in the chunk table, with a bounds check.
func (a *Arena[T]) coordinates(idx int) (int, int) {
	if idx >= a.Len() || idx < 0 {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// The cumulative starting index of chunk n is (2^n - 1) << chunkMinShift,
	// so idx + chunkMinLen has its highest set bit at position
	// chunkMinShift + 1 + n; peel the offsets back off to get n.
	chunk := bits.UintSize - bits.LeadingZeros(uint(idx)+chunkMinLen)
	chunk -= chunkMinShift + 1

	idx -= a.lenOfFirstNChunks(chunk)
	return chunk, idx
}
