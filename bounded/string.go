package bounded

// String is a fixed-capacity text buffer. It stores the encoded bytes of a
// string; UTF-8 validity is enforced at the codec boundary, not here.
//
// The zero value has capacity zero; construct with NewString. Copies share
// storage; pass a String by pointer.
type String struct {
	buf []byte // backing storage, length == capacity
	n   int    // live byte count
}

// NewString returns a String holding up to capacity bytes of encoded text.
func NewString(capacity int) String {
	return String{buf: make([]byte, capacity)}
}

// Len returns the encoded length in bytes.
func (s *String) Len() int {
	return s.n
}

// Cap returns the fixed capacity in bytes.
func (s *String) Cap() int {
	return len(s.buf)
}

// Set replaces the contents with a copy of v. Capacity is checked before
// anything is written, so a failed Set leaves the previous contents intact.
func (s *String) Set(v string) error {
	if len(v) > len(s.buf) {
		return ErrFull
	}
	s.n = copy(s.buf, v)
	return nil
}

// SetBytes replaces the contents with a copy of p under the same contract
// as Set.
func (s *String) SetBytes(p []byte) error {
	if len(p) > len(s.buf) {
		return ErrFull
	}
	s.n = copy(s.buf, p)
	return nil
}

// Bytes returns a view of the encoded contents. The view shares storage
// with the String; Set, SetBytes and Clear invalidate it.
func (s *String) Bytes() []byte {
	return s.buf[:s.n]
}

// String returns the contents as a Go string. This is the one accessor that
// allocates; prefer Bytes on allocation-sensitive paths.
func (s *String) String() string {
	return string(s.buf[:s.n])
}

// Clear empties the String. Storage is retained for reuse.
func (s *String) Clear() {
	s.n = 0
}
