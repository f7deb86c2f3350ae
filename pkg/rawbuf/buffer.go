// Package rawbuf provides fixed-capacity blocks of logically
// uninitialized element storage.
//
// A Buffer owns room for exactly Capacity elements but knows nothing
// about which slots hold meaningful values. It never reads, copies, or
// finalizes elements; tracking which slots are live is entirely the
// owner's responsibility. This split between "allocated" and "live" is
// what lets the owner control construction order during relocation.
package rawbuf

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// Sizeof returns the size of T in bytes.
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// Buffer is a fixed-capacity block of storage for values of type T.
// All slots are logically uninitialized; the zero Buffer is an empty
// buffer ready for use.
//
// A Buffer must not be duplicated by struct assignment: two copies
// would share one block while each claiming ownership of it. Transfer
// ownership with Move or Swap instead.
type Buffer[T any] struct {
	slots []T
}

// New allocates a Buffer with room for capacity elements. A capacity
// of zero allocates nothing and yields a buffer with no backing block.
//
// New reports an error for a negative capacity and for a capacity
// whose total byte size is not representable, without touching the
// heap in either case. Allocation failure itself is fatal to the
// process, as is usual in Go.
func New[T any](capacity int) (Buffer[T], error) {
	if capacity < 0 {
		return Buffer[T]{}, errors.Errorf("rawbuf: negative capacity %d", capacity)
	}
	if capacity == 0 {
		return Buffer[T]{}, nil
	}
	if size := Sizeof[T](); size > 0 && capacity > math.MaxInt/int(size) {
		return Buffer[T]{}, errors.Errorf("rawbuf: out of memory: %d slots of %d bytes each", capacity, size)
	}
	return Buffer[T]{slots: make([]T, capacity)}, nil
}

// Capacity returns the number of element slots the buffer holds.
func (b *Buffer[T]) Capacity() int {
	return len(b.slots)
}

// At returns a pointer to slot i's storage. The slot may or may not
// hold a live value; the buffer does not know and the caller must.
// At panics if i is outside [0, Capacity).
func (b *Buffer[T]) At(i int) *T {
	if i < 0 || i >= len(b.slots) {
		panic(fmt.Sprintf("rawbuf: slot %d out of range [0, %d)", i, len(b.slots)))
	}
	return &b.slots[i]
}

// Region returns a window over slots [from, to). The one-past-end
// offset to == Capacity is legal, matching the usual half-open range
// convention. Region panics unless 0 <= from <= to <= Capacity.
func (b *Buffer[T]) Region(from, to int) []T {
	if from < 0 || from > to || to > len(b.slots) {
		panic(fmt.Sprintf("rawbuf: region [%d, %d) out of range [0, %d]", from, to, len(b.slots)))
	}
	return b.slots[from:to]
}

// Swap exchanges the backing blocks and capacities of b and other.
// No element storage is copied.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.slots, other.slots = other.slots, b.slots
}

// Move transfers ownership of the block to the returned buffer,
// leaving b with no block and zero capacity.
func (b *Buffer[T]) Move() Buffer[T] {
	out := Buffer[T]{slots: b.slots}
	b.slots = nil
	return out
}

// Release drops the backing block without finalizing any slot. The
// buffer is afterwards indistinguishable from a zero Buffer. Release
// on an already-empty buffer is a no-op.
func (b *Buffer[T]) Release() {
	b.slots = nil
}
