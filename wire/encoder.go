package wire

import (
	"fmt"
)

// Encoder handles low-level protobuf wire format encoding.
//
// An Encoder writes into a caller-owned byte slice whose length is the
// write capacity. It never grows the destination or allocates; writes that
// do not fit fail with ErrBufferOverflow. An Encoder is not safe for
// concurrent use.
type Encoder struct {
	buf []byte // destination, len(buf) is the capacity
	pos int    // next write offset
}

// NewEncoder creates a new wire format encoder over dst
func NewEncoder(dst []byte) *Encoder {
	return &Encoder{
		buf: dst,
		pos: 0,
	}
}

// Reset points the encoder at dst so it can be reused without allocating.
func (e *Encoder) Reset(dst []byte) {
	e.buf = dst
	e.pos = 0
}

// Bytes returns the written prefix of the destination buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf[:e.pos]
}

// Pos returns the number of bytes written so far.
func (e *Encoder) Pos() int {
	return e.pos
}

// Remaining returns the free byte count of the destination.
func (e *Encoder) Remaining() int {
	return len(e.buf) - e.pos
}

// EncodeTag writes a field tag
func (e *Encoder) EncodeTag(fieldNumber FieldNumber, wireType WireType) error {
	return e.EncodeVarint(uint64(MakeTag(fieldNumber, wireType)))
}

// EncodeLengthDelimited frames the bytes produced by payload with a varint
// length prefix. The payload runs first, directly at the cursor; its bytes
// are then shifted right by the size of the encoded length and the prefix
// is patched into the gap. No sizing pass, no scratch buffer.
func (e *Encoder) EncodeLengthDelimited(payload func(*Encoder) error) error {
	start := e.pos

	if err := payload(e); err != nil {
		return err
	}

	return e.patchLength(start)
}

// patchLength inserts the varint length of buf[start:pos] at start, moving
// the payload right to make room.
func (e *Encoder) patchLength(start int) error {
	length := e.pos - start
	header := VarintSize(uint64(length))

	if e.pos+header > len(e.buf) {
		return fmt.Errorf("%w: length prefix needs %d bytes, have %d", ErrBufferOverflow, header, len(e.buf)-e.pos)
	}

	copy(e.buf[start+header:e.pos+header], e.buf[start:e.pos])

	// Patch the length prefix into the gap
	v := uint64(length)
	at := start
	for v >= 0x80 {
		e.buf[at] = byte(v) | 0x80
		at++
		v >>= 7
	}
	e.buf[at] = byte(v)

	e.pos += header
	return nil
}
