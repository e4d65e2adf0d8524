package wire

import (
	"fmt"
)

// Decoder handles low-level protobuf wire format decoding.
//
// A Decoder reads from a caller-owned byte slice and never copies or
// allocates. The cursor only moves forward; embedded messages narrow the
// decode window in place instead of re-slicing, so one Decoder serves an
// entire message tree. A Decoder is not safe for concurrent use.
type Decoder struct {
	buf   []byte
	pos   int
	limit int // end of the current decode window
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf:   data,
		pos:   0,
		limit: len(data),
	}
}

// Reset points the decoder at data so it can be reused without allocating.
func (d *Decoder) Reset(data []byte) {
	d.buf = data
	d.pos = 0
	d.limit = len(data)
}

// EOF reports whether the current decode window is exhausted.
func (d *Decoder) EOF() bool {
	return d.pos >= d.limit
}

// Pos returns the cursor offset from the start of the input.
func (d *Decoder) Pos() int {
	return d.pos
}

// Remaining returns the unread byte count of the current decode window.
func (d *Decoder) Remaining() int {
	return d.limit - d.pos
}

// DecodeTag reads the next field tag and validates both halves.
func (d *Decoder) DecodeTag() (FieldNumber, WireType, error) {
	tag, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, err
	}

	// Range-check the field number on the raw value; a straight int32
	// conversion would wrap silently.
	rawNumber := tag >> 3
	if rawNumber < uint64(MinFieldNumber) || rawNumber > uint64(MaxFieldNumber) {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidFieldNumber, rawNumber)
	}

	fieldNumber, wireType := ParseTag(Tag(tag))
	if !wireType.Valid() {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidWireType, int32(wireType))
	}

	return fieldNumber, wireType, nil
}

// Skip advances past one payload of the given wire type without
// materializing it. The dispatch loop uses it for unknown field numbers.
func (d *Decoder) Skip(wireType WireType) error {
	switch wireType {
	case WireVarint:
		vd := NewVarintDecoder(d)
		return vd.SkipVarint()
	case WireFixed64:
		if d.pos+8 > d.limit {
			return ErrUnexpectedEOF
		}
		d.pos += 8
		return nil
	case WireBytes:
		bd := NewBytesDecoder(d)
		return bd.SkipBytes()
	case WireFixed32:
		if d.pos+4 > d.limit {
			return ErrUnexpectedEOF
		}
		d.pos += 4
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidWireType, int32(wireType))
	}
}

// pushLimit narrows the decode window to the next n bytes and returns the
// previous window end for popLimit. Callers bound n against Remaining
// before converting from the wire length.
func (d *Decoder) pushLimit(n int) (int, error) {
	if n < 0 || n > d.limit-d.pos {
		return 0, ErrUnexpectedEOF
	}
	prev := d.limit
	d.limit = d.pos + n
	return prev, nil
}

// popLimit restores a window end saved by pushLimit.
func (d *Decoder) popLimit(prev int) {
	d.limit = prev
}
