package vector

// The vector treats element types uniformly except for three optional
// traits, discovered by interface assertion on the element type. A
// trait must be implemented with a value receiver to be seen.

// Cloner is implemented by element types whose duplication can fail or
// needs to be deep. The vector routes every copy of such an element
// through Clone: copy construction, PushBack, Insert, Assign, and the
// copying flavor of relocation. Types without Cloner are duplicated by
// plain assignment, which cannot fail.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Mover is implemented by element types whose transfer between slots
// must run custom logic, for example to keep an internal pointer
// pointing at the owning value. Move returns the transferred value and
// must not fail. The source slot is considered unconstructed once Move
// returns.
//
// A type implementing both Cloner and Mover is relocated with Move; a
// type implementing only Cloner is relocated with Clone so that a
// mid-relocation failure leaves the source elements untouched.
type Mover[T any] interface {
	Move() T
}

// Destroyer is implemented by element types that need a finalization
// hook. The vector invokes Destroy exactly once per live element, at
// the point the element leaves the live range: PopBack, Erase, shrink,
// overwrite during assignment, release, and after a copying
// relocation completes. Transfers (moves) do not destroy; the value
// simply lives on in its new slot.
type Destroyer interface {
	Destroy()
}

// cloneValue duplicates v, honoring Cloner when present.
func cloneValue[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v, nil
}

// moveValue transfers the element out of *src, leaving the slot
// unconstructed (zeroed). Transfers never fail.
func moveValue[T any](src *T) T {
	var out T
	if m, ok := any(*src).(Mover[T]); ok {
		out = m.Move()
	} else {
		out = *src
	}
	var zero T
	*src = zero
	return out
}

// destroyValue finalizes the live element in *p and marks the slot
// unconstructed.
func destroyValue[T any](p *T) {
	if d, ok := any(*p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

func destroyRange[T any](live []T) {
	for i := range live {
		destroyValue(&live[i])
	}
}

// moveSafe reports whether T can be relocated without a fallible
// element operation: either its copies are plain assignments, or it
// provides an explicit never-failing Move.
func moveSafe[T any]() bool {
	var zero T
	if _, ok := any(zero).(Cloner[T]); !ok {
		return true
	}
	_, ok := any(zero).(Mover[T])
	return ok
}
