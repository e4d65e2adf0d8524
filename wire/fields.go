package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/staticproto/staticproto/bounded"
)

// Field-level codec shared by generated code and hand-written Message
// implementations. Decode functions verify the observed wire type against
// the field's kind before consuming any input; encode functions write the
// field tag followed by the payload and tag failures with the field number.

// checkWireType verifies the observed wire type matches the one the
// field's kind requires.
func checkWireType(got, want WireType) error {
	if got != want {
		return fmt.Errorf("%w: got %s, want %s", ErrInvalidWireType, got, want)
	}
	return nil
}

// DECODER FUNCTIONS

// DecodeBool decodes a bool field payload
func DecodeBool(d *Decoder, wireType WireType) (bool, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return false, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeBool()
}

// DecodeInt32 decodes an int32 field payload
func DecodeInt32(d *Decoder, wireType WireType) (int32, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeInt32()
}

// DecodeInt64 decodes an int64 field payload
func DecodeInt64(d *Decoder, wireType WireType) (int64, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeInt64()
}

// DecodeUint32 decodes a uint32 field payload
func DecodeUint32(d *Decoder, wireType WireType) (uint32, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeUint32()
}

// DecodeUint64 decodes a uint64 field payload
func DecodeUint64(d *Decoder, wireType WireType) (uint64, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeUint64()
}

// DecodeSint32 decodes a zigzag-encoded sint32 field payload
func DecodeSint32(d *Decoder, wireType WireType) (int32, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeSint32()
}

// DecodeSint64 decodes a zigzag-encoded sint64 field payload
func DecodeSint64(d *Decoder, wireType WireType) (int64, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeSint64()
}

// DecodeEnum decodes an enum field payload. Open enum semantics: values
// with no declared name decode to their raw number and round-trip back out.
func DecodeEnum(d *Decoder, wireType WireType) (int32, error) {
	if err := checkWireType(wireType, WireVarint); err != nil {
		return 0, err
	}
	vd := NewVarintDecoder(d)
	return vd.DecodeEnum()
}

// DecodeFixed32 decodes a fixed32 field payload
func DecodeFixed32(d *Decoder, wireType WireType) (uint32, error) {
	if err := checkWireType(wireType, WireFixed32); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeFixed32()
}

// DecodeSfixed32 decodes an sfixed32 field payload
func DecodeSfixed32(d *Decoder, wireType WireType) (int32, error) {
	if err := checkWireType(wireType, WireFixed32); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeSfixed32()
}

// DecodeFloat decodes a float field payload
func DecodeFloat(d *Decoder, wireType WireType) (float32, error) {
	if err := checkWireType(wireType, WireFixed32); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeFloat32()
}

// DecodeFixed64 decodes a fixed64 field payload
func DecodeFixed64(d *Decoder, wireType WireType) (uint64, error) {
	if err := checkWireType(wireType, WireFixed64); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeFixed64()
}

// DecodeSfixed64 decodes an sfixed64 field payload
func DecodeSfixed64(d *Decoder, wireType WireType) (int64, error) {
	if err := checkWireType(wireType, WireFixed64); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeSfixed64()
}

// DecodeDouble decodes a double field payload
func DecodeDouble(d *Decoder, wireType WireType) (float64, error) {
	if err := checkWireType(wireType, WireFixed64); err != nil {
		return 0, err
	}
	fd := NewFixedDecoder(d)
	return fd.DecodeFloat64()
}

// DecodeString decodes a string field payload into dst. The payload must
// be valid UTF-8 and fit dst's capacity; on any failure dst keeps its
// previous contents.
func DecodeString(d *Decoder, wireType WireType, dst *bounded.String) error {
	if err := checkWireType(wireType, WireBytes); err != nil {
		return err
	}

	bd := NewBytesDecoder(d)
	payload, err := bd.DecodeRawBytes()
	if err != nil {
		return err
	}

	if !utf8.Valid(payload) {
		return ErrInvalidUTF8
	}
	if err := dst.SetBytes(payload); err != nil {
		return fmt.Errorf("string of %d bytes: %w", len(payload), err)
	}
	return nil
}

// DecodeBytes decodes a bytes field payload into dst. The payload must fit
// dst's capacity; on failure dst keeps its previous contents.
func DecodeBytes(d *Decoder, wireType WireType, dst *bounded.Bytes) error {
	if err := checkWireType(wireType, WireBytes); err != nil {
		return err
	}

	bd := NewBytesDecoder(d)
	payload, err := bd.DecodeRawBytes()
	if err != nil {
		return err
	}

	if err := dst.Set(payload); err != nil {
		return fmt.Errorf("bytes of %d bytes: %w", len(payload), err)
	}
	return nil
}

// DecodeEmbedded decodes a length-delimited message payload into m by
// narrowing the decode window over the payload. The message is not reset
// first, so a field repeated in the stream merges field-by-field.
func DecodeEmbedded(d *Decoder, wireType WireType, m Message) error {
	if err := checkWireType(wireType, WireBytes); err != nil {
		return err
	}

	vd := NewVarintDecoder(d)
	length, err := vd.DecodeVarint()
	if err != nil {
		return fmt.Errorf("failed to decode message length: %w", err)
	}
	// Bound against the window before converting to int
	if length > uint64(d.Remaining()) {
		return fmt.Errorf("%w: message truncated, need %d bytes, have %d", ErrUnexpectedEOF, length, d.Remaining())
	}

	prev, err := d.pushLimit(int(length))
	if err != nil {
		return err
	}
	if err := DecodeMessageFields(d, m); err != nil {
		return err
	}
	d.popLimit(prev)
	return nil
}

// REPEATED DECODER FUNCTIONS

// DecodeRepeatedString decodes one string element into the next slot of
// vec. A failed element decode leaves vec's length unchanged.
func DecodeRepeatedString(d *Decoder, wireType WireType, vec *bounded.Vec[bounded.String]) error {
	slot, err := vec.Grow()
	if err != nil {
		return fmt.Errorf("repeated string: %w", err)
	}
	if err := DecodeString(d, wireType, slot); err != nil {
		vec.Truncate(vec.Len() - 1)
		return err
	}
	return nil
}

// DecodeRepeatedBytes decodes one bytes element into the next slot of vec.
// A failed element decode leaves vec's length unchanged.
func DecodeRepeatedBytes(d *Decoder, wireType WireType, vec *bounded.Vec[bounded.Bytes]) error {
	slot, err := vec.Grow()
	if err != nil {
		return fmt.Errorf("repeated bytes: %w", err)
	}
	if err := DecodeBytes(d, wireType, slot); err != nil {
		vec.Truncate(vec.Len() - 1)
		return err
	}
	return nil
}

// DecodeRepeatedEmbedded decodes one message element into the next slot of
// vec. The slot is reset before decoding because Truncate leaves old
// contents behind. A failed element decode leaves vec's length unchanged.
func DecodeRepeatedEmbedded[M any, PM MessagePtr[M]](d *Decoder, wireType WireType, vec *bounded.Vec[M]) error {
	slot, err := vec.Grow()
	if err != nil {
		return fmt.Errorf("repeated message: %w", err)
	}

	pm := PM(slot)
	pm.Reset()
	if err := DecodeEmbedded(d, wireType, pm); err != nil {
		vec.Truncate(vec.Len() - 1)
		return err
	}
	return nil
}

// ENCODER FUNCTIONS

// EncodeBool encodes a bool field with its tag
func EncodeBool(e *Encoder, fieldNumber FieldNumber, v bool) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeBool(v), fieldNumber)
}

// EncodeInt32 encodes an int32 field with its tag
func EncodeInt32(e *Encoder, fieldNumber FieldNumber, v int32) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeInt32(v), fieldNumber)
}

// EncodeInt64 encodes an int64 field with its tag
func EncodeInt64(e *Encoder, fieldNumber FieldNumber, v int64) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeInt64(v), fieldNumber)
}

// EncodeUint32 encodes a uint32 field with its tag
func EncodeUint32(e *Encoder, fieldNumber FieldNumber, v uint32) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeUint32(v), fieldNumber)
}

// EncodeUint64 encodes a uint64 field with its tag
func EncodeUint64(e *Encoder, fieldNumber FieldNumber, v uint64) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeUint64(v), fieldNumber)
}

// EncodeSint32 encodes a zigzag-encoded sint32 field with its tag
func EncodeSint32(e *Encoder, fieldNumber FieldNumber, v int32) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeSint32(v), fieldNumber)
}

// EncodeSint64 encodes a zigzag-encoded sint64 field with its tag
func EncodeSint64(e *Encoder, fieldNumber FieldNumber, v int64) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeSint64(v), fieldNumber)
}

// EncodeEnum encodes an enum field with its tag
func EncodeEnum(e *Encoder, fieldNumber FieldNumber, v int32) error {
	if err := e.EncodeTag(fieldNumber, WireVarint); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	ve := NewVarintEncoder(e)
	return wrapEncodingFieldError(ve.EncodeEnum(v), fieldNumber)
}

// EncodeFixed32 encodes a fixed32 field with its tag
func EncodeFixed32(e *Encoder, fieldNumber FieldNumber, v uint32) error {
	if err := e.EncodeTag(fieldNumber, WireFixed32); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeFixed32(v), fieldNumber)
}

// EncodeSfixed32 encodes an sfixed32 field with its tag
func EncodeSfixed32(e *Encoder, fieldNumber FieldNumber, v int32) error {
	if err := e.EncodeTag(fieldNumber, WireFixed32); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeSfixed32(v), fieldNumber)
}

// EncodeFloat encodes a float field with its tag
func EncodeFloat(e *Encoder, fieldNumber FieldNumber, v float32) error {
	if err := e.EncodeTag(fieldNumber, WireFixed32); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeFloat32(v), fieldNumber)
}

// EncodeFixed64 encodes a fixed64 field with its tag
func EncodeFixed64(e *Encoder, fieldNumber FieldNumber, v uint64) error {
	if err := e.EncodeTag(fieldNumber, WireFixed64); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeFixed64(v), fieldNumber)
}

// EncodeSfixed64 encodes an sfixed64 field with its tag
func EncodeSfixed64(e *Encoder, fieldNumber FieldNumber, v int64) error {
	if err := e.EncodeTag(fieldNumber, WireFixed64); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeSfixed64(v), fieldNumber)
}

// EncodeDouble encodes a double field with its tag
func EncodeDouble(e *Encoder, fieldNumber FieldNumber, v float64) error {
	if err := e.EncodeTag(fieldNumber, WireFixed64); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	fe := NewFixedEncoder(e)
	return wrapEncodingFieldError(fe.EncodeFloat64(v), fieldNumber)
}

// EncodeString encodes a string field with its tag. The contents must be
// valid UTF-8; nothing is written otherwise.
func EncodeString(e *Encoder, fieldNumber FieldNumber, s *bounded.String) error {
	if !utf8.Valid(s.Bytes()) {
		return wrapEncodingFieldError(ErrInvalidUTF8, fieldNumber)
	}
	if err := e.EncodeTag(fieldNumber, WireBytes); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	be := NewBytesEncoder(e)
	return wrapEncodingFieldError(be.EncodeBytes(s.Bytes()), fieldNumber)
}

// EncodeBytes encodes a bytes field with its tag
func EncodeBytes(e *Encoder, fieldNumber FieldNumber, b *bounded.Bytes) error {
	if err := e.EncodeTag(fieldNumber, WireBytes); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	be := NewBytesEncoder(e)
	return wrapEncodingFieldError(be.EncodeBytes(b.Bytes()), fieldNumber)
}

// EncodeEmbedded encodes a message field with its tag. The message body is
// written at the cursor and the length prefix is patched in afterwards, so
// no sizing pass or scratch buffer is needed.
func EncodeEmbedded(e *Encoder, fieldNumber FieldNumber, m Message) error {
	if err := e.EncodeTag(fieldNumber, WireBytes); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}

	start := e.pos
	if err := m.EncodeFields(e); err != nil {
		return wrapEncodingFieldError(err, fieldNumber)
	}
	return wrapEncodingFieldError(e.patchLength(start), fieldNumber)
}
