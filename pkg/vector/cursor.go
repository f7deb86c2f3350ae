package vector

// Cursor walks the live range of a vector from front to back.
//
//	cur := v.Iter()
//	for cur.Next() {
//		use(cur.At())
//	}
//
// A cursor is a position, not a snapshot: any operation that
// reallocates or shifts elements (growth, Insert, Erase, Swap, ...)
// invalidates every outstanding cursor. Advancing an invalidated
// cursor is memory-safe but yields unspecified elements.
type Cursor[T any] struct {
	vec *Vector[T]
	idx int
}

// Iter returns a cursor positioned before the first element.
func (v *Vector[T]) Iter() *Cursor[T] {
	return &Cursor[T]{vec: v, idx: -1}
}

// Next advances the cursor and reports whether an element is
// available.
func (c *Cursor[T]) Next() bool {
	if c.idx+1 >= c.vec.size {
		return false
	}
	c.idx++
	return true
}

// At returns the current element. Valid only after a Next that
// returned true.
func (c *Cursor[T]) At() T {
	return *c.Ref()
}

// Ref returns a pointer to the current element, valid until the next
// reallocation or shift.
func (c *Cursor[T]) Ref() *T {
	return c.vec.At(c.idx)
}

// Index returns the current position in the vector.
func (c *Cursor[T]) Index() int {
	return c.idx
}

// All returns a range-over-func iterator over (index, element) pairs
// of the live range. The same invalidation rules as for Cursor apply:
// the sequence must not be mutated while ranging.
func (v *Vector[T]) All() func(yield func(int, T) bool) {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.buf.At(i)) {
				return
			}
		}
	}
}
