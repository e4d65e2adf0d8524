package bounded

// Vec is a fixed-capacity ordered sequence.
//
// The zero value has capacity zero; construct with NewVec or NewVecOf.
// Copying a Vec copies its slice header, so the copies share storage; pass
// a Vec by pointer.
type Vec[T any] struct {
	items []T // backing storage, length == capacity
	n     int // live element count
}

// NewVec returns a Vec holding up to capacity elements.
func NewVec[T any](capacity int) Vec[T] {
	return Vec[T]{items: make([]T, capacity)}
}

// NewVecOf returns a Vec whose element slots are pre-initialized by newElem.
// Use it when the element type itself carries bounded storage, so that Grow
// hands out ready-to-use slots.
func NewVecOf[T any](capacity int, newElem func() T) Vec[T] {
	v := Vec[T]{items: make([]T, capacity)}
	for i := range v.items {
		v.items[i] = newElem()
	}
	return v
}

// Len returns the number of live elements.
func (v *Vec[T]) Len() int {
	return v.n
}

// Cap returns the fixed capacity.
func (v *Vec[T]) Cap() int {
	return len(v.items)
}

// Full reports whether the Vec is at capacity.
func (v *Vec[T]) Full() bool {
	return v.n == len(v.items)
}

// At returns the element at index i. It panics if i is outside the live
// range, matching slice indexing.
func (v *Vec[T]) At(i int) T {
	if i < 0 || i >= v.n {
		panic("bounded: index out of range")
	}
	return v.items[i]
}

// Ptr returns a pointer to the element at index i for in-place access. It
// panics if i is outside the live range.
func (v *Vec[T]) Ptr(i int) *T {
	if i < 0 || i >= v.n {
		panic("bounded: index out of range")
	}
	return &v.items[i]
}

// Append adds item at the end. It fails with ErrFull at capacity, leaving
// the Vec unchanged.
func (v *Vec[T]) Append(item T) error {
	if v.n == len(v.items) {
		return ErrFull
	}
	v.items[v.n] = item
	v.n++
	return nil
}

// Grow commits the next slot and returns a pointer to it. The slot keeps
// whatever contents it was constructed with or last held, so callers
// overwrite or reset it before use.
func (v *Vec[T]) Grow() (*T, error) {
	if v.n == len(v.items) {
		return nil, ErrFull
	}
	p := &v.items[v.n]
	v.n++
	return p, nil
}

// Truncate shortens the Vec to n live elements. It panics if n is negative
// or beyond the current length. Slot storage is retained.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 || n > v.n {
		panic("bounded: truncate out of range")
	}
	v.n = n
}

// Clear empties the Vec. Slot storage is retained for reuse.
func (v *Vec[T]) Clear() {
	v.n = 0
}

// Slice returns a view of the live elements. The view shares storage with
// the Vec; Append, Grow, Truncate and Clear invalidate it.
func (v *Vec[T]) Slice() []T {
	return v.items[:v.n]
}
