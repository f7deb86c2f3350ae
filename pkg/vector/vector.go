// Package vector implements a growable contiguous sequence on top of
// explicitly uninitialized storage from pkg/rawbuf.
//
// A Vector owns a rawbuf.Buffer plus a live count: slots [0, Len) hold
// live elements, slots [Len, Cap) are unconstructed and never read or
// finalized. Every mutating operation first secures capacity, then
// constructs or destroys elements, and commits the new size or buffer
// only once the fallible steps have succeeded. Operations that force a
// reallocation either complete fully or leave the vector observably
// unchanged; the in-place paths of Insert and Erase promise only that
// no element is leaked or destroyed twice.
//
// A vector is owned by one goroutine at a time. Sharing one across
// goroutines requires external serialization.
package vector

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/memkit/memkit/pkg/rawbuf"
)

// ErrEmpty is reported by PopBack on a vector with no elements.
var ErrEmpty = errors.New("vector: pop from empty vector")

// Vector is a growable sequence of T with explicit control over
// element construction and destruction. The zero value is an empty
// vector ready for use, but most callers want New so the vector lives
// behind a pointer; a Vector must not be duplicated by struct
// assignment (use Clone or Move).
type Vector[T any] struct {
	buf  rawbuf.Buffer[T]
	size int
}

// New returns an empty vector with no allocated storage.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewWithSize returns a vector of n zero-valued elements with capacity
// exactly n.
func NewWithSize[T any](n int) (*Vector[T], error) {
	buf, err := rawbuf.New[T](n)
	if err != nil {
		return nil, errors.Wrapf(err, "vector: constructing with size %d", n)
	}
	noteAlloc[T](n)
	// Freshly allocated slots are zeroed, which is exactly the
	// value-construction of [0, n).
	return &Vector[T]{buf: buf, size: n}, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of element slots the vector can hold before
// its next reallocation.
func (v *Vector[T]) Cap() int {
	return v.buf.Capacity()
}

// At returns a pointer to element i for reading or writing. It panics
// unless i is in [0, Len); an out-of-range index is a caller bug, not
// a recoverable condition.
func (v *Vector[T]) At(i int) *T {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vector: index %d out of range [0, %d)", i, v.size))
	}
	return v.buf.At(i)
}

// Clone returns a deep copy of the vector with capacity equal to
// Len(). If cloning an element fails, every element already cloned is
// destroyed and the partially filled buffer released before the error
// is returned; the receiver is never modified.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	buf, err := rawbuf.New[T](v.size)
	if err != nil {
		return nil, errors.Wrapf(err, "vector: cloning %d elements", v.size)
	}
	noteAlloc[T](v.size)
	src := v.buf.Region(0, v.size)
	dst := buf.Region(0, v.size)
	for i := range src {
		e, err := cloneValue(src[i])
		if err != nil {
			destroyRange(dst[:i])
			buf.Release()
			return nil, err
		}
		dst[i] = e
	}
	return &Vector[T]{buf: buf, size: v.size}, nil
}

// Move transfers the receiver's buffer and elements to a new vector in
// constant time, leaving the receiver empty with zero capacity. Move
// never fails.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{buf: v.buf.Move(), size: v.size}
	v.size = 0
	return out
}

// Swap exchanges the contents of two vectors in constant time.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.size, other.size = other.size, v.size
}

// Assign replaces the receiver's contents with a copy of src. When the
// existing capacity can hold src the copy happens in place, reusing
// the buffer; otherwise a fresh copy is built and swapped in, giving
// the strong guarantee. The in-place path promises only that a failed
// element clone leaves a consistent (but possibly partially updated)
// vector.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.size > v.buf.Capacity() {
		cp, err := src.Clone()
		if err != nil {
			return err
		}
		v.Swap(cp)
		cp.Release()
		return nil
	}
	n := min(v.size, src.size)
	for i := 0; i < n; i++ {
		e, err := cloneValue(*src.buf.At(i))
		if err != nil {
			return err
		}
		destroyValue(v.buf.At(i))
		*v.buf.At(i) = e
	}
	switch {
	case v.size > src.size:
		destroyRange(v.buf.Region(src.size, v.size))
	case v.size < src.size:
		dst := v.buf.Region(v.size, src.size)
		from := src.buf.Region(v.size, src.size)
		for i := range from {
			e, err := cloneValue(from[i])
			if err != nil {
				destroyRange(dst[:i])
				return err
			}
			dst[i] = e
		}
	}
	v.size = src.size
	return nil
}

// Release destroys all live elements and frees the buffer, returning
// the vector to the empty, zero-capacity state. It remains usable.
func (v *Vector[T]) Release() {
	destroyRange(v.buf.Region(0, v.size))
	v.size = 0
	v.buf.Release()
}

// Reserve guarantees capacity for at least n elements. It is a no-op
// when n does not exceed the current capacity; otherwise all elements
// are relocated into a freshly allocated buffer. If relocation fails,
// the new buffer is discarded and the vector is left exactly as it
// was.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Capacity() {
		return nil
	}
	return v.regrow(n)
}

// regrow allocates a buffer of capacity n, relocates the live range
// into it, and swaps it in. n must exceed the current capacity.
func (v *Vector[T]) regrow(n int) error {
	nb, err := rawbuf.New[T](n)
	if err != nil {
		return errors.Wrapf(err, "vector: reserving %d elements", n)
	}
	noteAlloc[T](n)
	if err := relocate(v.buf.Region(0, v.size), nb.Region(0, v.size)); err != nil {
		nb.Release()
		return err
	}
	v.commit(&nb)
	return nil
}

// commit swaps the freshly populated buffer in and releases the old
// block. Call only after every live element exists in nb.
func (v *Vector[T]) commit(nb *rawbuf.Buffer[T]) {
	oldCap := v.buf.Capacity()
	v.buf.Swap(nb)
	nb.Release()
	noteGrowth[T](oldCap, v.buf.Capacity(), v.size)
}

// transferRange moves every element of src into dst, emptying the
// source slots. Transfers never fail.
func transferRange[T any](src, dst []T) {
	for i := range src {
		dst[i] = moveValue(&src[i])
	}
}

// cloneRange clones every element of src into dst, which must be
// unconstructed storage of the same length. If a clone fails, the
// clones made so far are destroyed and src is left fully intact; the
// source elements are never destroyed here, so a caller relocating in
// several parts can keep them alive until every part has succeeded.
func cloneRange[T any](src, dst []T) error {
	for i := range src {
		e, err := cloneValue(src[i])
		if err != nil {
			destroyRange(dst[:i])
			return err
		}
		dst[i] = e
	}
	return nil
}

// relocate establishes the elements of src inside dst in one pass.
// Move-safe element types are transferred, their sources becoming
// unconstructed as the pass goes. Other types are cloned, and the
// sources destroyed only once every clone exists, so a failure leaves
// src untouched.
func relocate[T any](src, dst []T) error {
	if moveSafe[T]() {
		transferRange(src, dst)
		return nil
	}
	if err := cloneRange(src, dst); err != nil {
		return err
	}
	noteCopyRelocation(len(src))
	destroyRange(src)
	return nil
}

// Resize grows or shrinks the live range to exactly n elements. Growth
// reserves capacity first and zero-constructs the new slots; shrinking
// destroys the trailing elements. The size is updated last.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vector: resize to negative size %d", n))
	}
	switch {
	case n > v.size:
		if err := v.Reserve(n); err != nil {
			return err
		}
		// Unconstructed slots are kept zeroed, so exposing them is
		// value construction. The clear keeps that invariant explicit.
		clear(v.buf.Region(v.size, n))
		v.size = n
	case n < v.size:
		destroyRange(v.buf.Region(n, v.size))
		v.size = n
	}
	return nil
}

// grownCapacity returns the capacity to use when an append finds the
// buffer full: doubling, from a floor of one.
func grownCapacity(cur int) int {
	if cur == 0 {
		return 1
	}
	return 2 * cur
}

// PushBack appends a copy of value, growing the buffer if needed. For
// Cloner element types the copy goes through Clone and its failure is
// returned with the vector unchanged.
func (v *Vector[T]) PushBack(value T) error {
	_, err := v.EmplaceBack(func() (T, error) { return cloneValue(value) })
	return err
}

// EmplaceBack appends an element produced by construct, growing the
// buffer if needed, and returns a pointer to it. The element is
// constructed directly in its final slot: on the growth path it is
// placed into the new buffer before any relocation happens, so a
// failure mid-growth can neither lose nor duplicate it, and the vector
// stays unchanged. The pointer is valid until the next reallocation.
func (v *Vector[T]) EmplaceBack(construct func() (T, error)) (*T, error) {
	if v.size == v.buf.Capacity() {
		return v.appendGrow(construct)
	}
	e, err := construct()
	if err != nil {
		return nil, err
	}
	*v.buf.At(v.size) = e
	v.size++
	return v.buf.At(v.size - 1), nil
}

// appendGrow appends into a new, larger buffer: the new element first,
// then the existing elements relocated around it.
func (v *Vector[T]) appendGrow(construct func() (T, error)) (*T, error) {
	nb, err := rawbuf.New[T](grownCapacity(v.buf.Capacity()))
	if err != nil {
		return nil, errors.Wrapf(err, "vector: growing past %d elements", v.size)
	}
	noteAlloc[T](nb.Capacity())
	e, err := construct()
	if err != nil {
		nb.Release()
		return nil, err
	}
	*nb.At(v.size) = e
	if err := relocate(v.buf.Region(0, v.size), nb.Region(0, v.size)); err != nil {
		destroyValue(nb.At(v.size))
		nb.Release()
		return nil, err
	}
	v.commit(&nb)
	v.size++
	return v.buf.At(v.size - 1), nil
}

// PopBack destroys the last element. It reports ErrEmpty on an empty
// vector and leaves it empty.
func (v *Vector[T]) PopBack() error {
	if v.size == 0 {
		return ErrEmpty
	}
	destroyValue(v.buf.At(v.size - 1))
	v.size--
	return nil
}

// Insert places a copy of value at position pos, shifting the tail one
// slot toward the back. pos may equal Len, which appends. See Emplace
// for the failure guarantees.
func (v *Vector[T]) Insert(pos int, value T) error {
	_, err := v.Emplace(pos, func() (T, error) { return cloneValue(value) })
	return err
}

// Emplace constructs an element at position pos, shifting the tail one
// slot toward the back, and returns a pointer to it. It panics unless
// pos is in [0, Len].
//
// When growth is required the operation relocates into a new buffer in
// three parts (head, new element, tail) and either completes fully or
// leaves the vector unchanged. Without growth the element is
// constructed before any slot moves, so a construction failure also
// leaves the vector unchanged; the shift itself cannot fail because
// transfers are infallible.
func (v *Vector[T]) Emplace(pos int, construct func() (T, error)) (*T, error) {
	if pos < 0 || pos > v.size {
		panic(fmt.Sprintf("vector: insert position %d out of range [0, %d]", pos, v.size))
	}
	if v.size == v.buf.Capacity() {
		return v.emplaceGrow(pos, construct)
	}
	e, err := construct()
	if err != nil {
		return nil, err
	}
	if pos < v.size {
		// Shift the tail backward starting from the unconstructed
		// slot at size; each transfer empties its source, so slot pos
		// ends up unconstructed and ready for the new element.
		for i := v.size; i > pos; i-- {
			*v.buf.At(i) = moveValue(v.buf.At(i - 1))
		}
	}
	*v.buf.At(pos) = e
	v.size++
	return v.buf.At(pos), nil
}

// emplaceGrow inserts into a new, larger buffer: new element at pos,
// head [0, pos) before it, tail [pos, size) after it. A failure in
// either relocation destroys only what this call constructed and
// releases the new buffer; the old buffer is untouched on the copying
// path, so the vector is unchanged.
func (v *Vector[T]) emplaceGrow(pos int, construct func() (T, error)) (*T, error) {
	nb, err := rawbuf.New[T](grownCapacity(v.buf.Capacity()))
	if err != nil {
		return nil, errors.Wrapf(err, "vector: growing past %d elements", v.size)
	}
	noteAlloc[T](nb.Capacity())
	e, err := construct()
	if err != nil {
		nb.Release()
		return nil, err
	}
	*nb.At(pos) = e
	if moveSafe[T]() {
		transferRange(v.buf.Region(0, pos), nb.Region(0, pos))
		transferRange(v.buf.Region(pos, v.size), nb.Region(pos+1, v.size+1))
	} else {
		// The old elements stay alive until both sub-ranges have been
		// cloned; a failure in either destroys only what this call
		// constructed so far.
		if err := cloneRange(v.buf.Region(0, pos), nb.Region(0, pos)); err != nil {
			destroyValue(nb.At(pos))
			nb.Release()
			return nil, err
		}
		if err := cloneRange(v.buf.Region(pos, v.size), nb.Region(pos+1, v.size+1)); err != nil {
			destroyRange(nb.Region(0, pos+1))
			nb.Release()
			return nil, err
		}
		noteCopyRelocation(v.size)
		destroyRange(v.buf.Region(0, v.size))
	}
	v.commit(&nb)
	v.size++
	return v.buf.At(pos), nil
}

// Erase destroys the element at position pos and slides the tail one
// slot toward the front. It panics unless pos is in [0, Len). The
// slides are infallible transfers, so the vector is always consistent
// afterwards.
func (v *Vector[T]) Erase(pos int) {
	if pos < 0 || pos >= v.size {
		panic(fmt.Sprintf("vector: erase position %d out of range [0, %d)", pos, v.size))
	}
	destroyValue(v.buf.At(pos))
	for i := pos; i+1 < v.size; i++ {
		*v.buf.At(i) = moveValue(v.buf.At(i + 1))
	}
	// The last transfer left slot size-1 unconstructed.
	v.size--
}
