// Package staticproto encodes and decodes Protocol Buffers messages with
// storage fixed at construction time.
//
// Message types carry bounded containers sized when the message is built;
// the codec reads from and writes into caller-owned buffers and performs no
// allocation of its own. Error paths may allocate while formatting. For a
// strict steady state, construct messages and buffers once and reuse them:
// Marshal and Unmarshal reset nothing but the cursor, and a wire.Encoder or
// wire.Decoder can be held long-lived and Reset per call.
//
// Nothing here locks. A message, encoder or decoder instance belongs to one
// goroutine at a time; distinct instances are independent.
package staticproto

import (
	"github.com/staticproto/staticproto/wire"
)

// ===== WIRE CONTRACT ALIASES =====

// Message is the contract generated message types implement.
type Message = wire.Message

// Oneof is the contract generated oneof groups implement.
type Oneof = wire.Oneof

// Error kinds surfaced by Marshal and Unmarshal, re-exported from the wire
// package. Field context travels in a wrapping wire.FieldError.
var (
	ErrInvalidVarint    = wire.ErrInvalidVarint
	ErrUnexpectedEOF    = wire.ErrUnexpectedEOF
	ErrInvalidWireType  = wire.ErrInvalidWireType
	ErrCapacityExceeded = wire.ErrCapacityExceeded
	ErrBufferOverflow   = wire.ErrBufferOverflow
	ErrInvalidUTF8      = wire.ErrInvalidUTF8
)

// ===== TOP-LEVEL CODEC =====

// Marshal encodes m into buf and returns the byte count written. buf is
// caller-owned and never grown; a message that does not fit fails with
// wire.ErrBufferOverflow and the buffer contents are unspecified.
func Marshal(m Message, buf []byte) (int, error) {
	e := wire.NewEncoder(buf)
	if err := m.EncodeFields(e); err != nil {
		return 0, err
	}
	return e.Pos(), nil
}

// Unmarshal decodes data into m. The message is reset first so contents
// from a previous use never show through fields absent from data. On error
// the message is mid-decode and should be reset before reuse.
func Unmarshal(data []byte, m Message) error {
	m.Reset()
	d := wire.NewDecoder(data)
	return wire.DecodeMessageFields(d, m)
}

// ===== OPTIONAL FIELD PRESENCE =====

// Opt wraps a field value with explicit presence. The zero Opt is absent;
// for container types build it with NewOpt so the storage inside is sized
// up front.
type Opt[T any] struct {
	val T
	set bool
}

// NewOpt returns an absent Opt whose storage is pre-initialized to inner.
func NewOpt[T any](inner T) Opt[T] {
	return Opt[T]{val: inner}
}

// IsSet reports whether the value is present.
func (o *Opt[T]) IsSet() bool {
	return o.set
}

// Get returns the value. It is only meaningful while IsSet reports true.
func (o *Opt[T]) Get() T {
	return o.val
}

// Ptr returns the underlying storage without changing presence. Decoders
// fill through it and then call MarkSet.
func (o *Opt[T]) Ptr() *T {
	return &o.val
}

// Set stores v and marks the value present.
func (o *Opt[T]) Set(v T) {
	o.val = v
	o.set = true
}

// MarkSet marks the value present without touching the storage.
func (o *Opt[T]) MarkSet() {
	o.set = true
}

// Clear marks the value absent. The storage is kept for reuse.
func (o *Opt[T]) Clear() {
	o.set = false
}
