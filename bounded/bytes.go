package bounded

// Bytes is a fixed-capacity byte buffer.
//
// The zero value has capacity zero; construct with NewBytes. Copies share
// storage; pass a Bytes by pointer.
type Bytes struct {
	buf []byte // backing storage, length == capacity
	n   int    // live byte count
}

// NewBytes returns a Bytes holding up to capacity bytes.
func NewBytes(capacity int) Bytes {
	return Bytes{buf: make([]byte, capacity)}
}

// Len returns the number of live bytes.
func (b *Bytes) Len() int {
	return b.n
}

// Cap returns the fixed capacity.
func (b *Bytes) Cap() int {
	return len(b.buf)
}

// Full reports whether the buffer is at capacity.
func (b *Bytes) Full() bool {
	return b.n == len(b.buf)
}

// Set replaces the contents with a copy of p. Capacity is checked before
// anything is written, so a failed Set leaves the previous contents intact.
func (b *Bytes) Set(p []byte) error {
	if len(p) > len(b.buf) {
		return ErrFull
	}
	b.n = copy(b.buf, p)
	return nil
}

// Append adds a copy of p at the end. It fails with ErrFull when p does not
// fit, leaving the contents unchanged.
func (b *Bytes) Append(p []byte) error {
	if b.n+len(p) > len(b.buf) {
		return ErrFull
	}
	b.n += copy(b.buf[b.n:], p)
	return nil
}

// Bytes returns a view of the contents. The view shares storage with the
// buffer; Set, Append and Clear invalidate it.
func (b *Bytes) Bytes() []byte {
	return b.buf[:b.n]
}

// Clear empties the buffer. Storage is retained for reuse.
func (b *Bytes) Clear() {
	b.n = 0
}
