package wire

import (
	"fmt"
)

// BytesDecoder handles length-delimited bytes decoding operations
type BytesDecoder struct {
	decoder *Decoder
}

// BytesEncoder handles length-delimited bytes encoding operations
type BytesEncoder struct {
	encoder *Encoder
}

// NewBytesDecoder creates a new bytes decoder
func NewBytesDecoder(d *Decoder) *BytesDecoder {
	return &BytesDecoder{decoder: d}
}

// NewBytesEncoder creates a new bytes encoder
func NewBytesEncoder(e *Encoder) *BytesEncoder {
	return &BytesEncoder{encoder: e}
}

// DECODER METHODS

// DecodeRawBytes decodes a length-delimited payload without copying. The
// returned slice borrows the decoder's input and stays valid for as long
// as the input does.
func (bd *BytesDecoder) DecodeRawBytes() ([]byte, error) {
	// First decode the length as a varint
	vd := NewVarintDecoder(bd.decoder)
	length, err := vd.DecodeVarint()
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytes length: %w", err)
	}

	d := bd.decoder
	// Bound against the window before converting to int
	if length > uint64(d.limit-d.pos) {
		return nil, fmt.Errorf("%w: bytes truncated, need %d bytes, have %d", ErrUnexpectedEOF, length, d.limit-d.pos)
	}

	data := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(length)

	return data, nil
}

// SkipBytes skips over a length-delimited payload
func (bd *BytesDecoder) SkipBytes() error {
	vd := NewVarintDecoder(bd.decoder)
	length, err := vd.DecodeVarint()
	if err != nil {
		return err
	}

	d := bd.decoder
	if length > uint64(d.limit-d.pos) {
		return fmt.Errorf("%w: cannot skip %d bytes, only %d available", ErrUnexpectedEOF, length, d.limit-d.pos)
	}

	d.pos += int(length)
	return nil
}

// ENCODER METHODS

// EncodeBytes encodes a byte array as length-delimited. The write is
// atomic: length prefix and payload either both fit or nothing is written.
func (be *BytesEncoder) EncodeBytes(data []byte) error {
	e := be.encoder

	need := BytesSize(data)
	if e.pos+need > len(e.buf) {
		return fmt.Errorf("%w: bytes need %d bytes, have %d", ErrBufferOverflow, need, len(e.buf)-e.pos)
	}

	ve := NewVarintEncoder(e)
	if err := ve.EncodeVarint(uint64(len(data))); err != nil {
		return err
	}

	e.pos += copy(e.buf[e.pos:], data)
	return nil
}

// EncodeString encodes a string as length-delimited bytes under the same
// atomic write contract as EncodeBytes.
func (be *BytesEncoder) EncodeString(s string) error {
	e := be.encoder

	need := StringSize(s)
	if e.pos+need > len(e.buf) {
		return fmt.Errorf("%w: string needs %d bytes, have %d", ErrBufferOverflow, need, len(e.buf)-e.pos)
	}

	ve := NewVarintEncoder(e)
	if err := ve.EncodeVarint(uint64(len(s))); err != nil {
		return err
	}

	e.pos += copy(e.buf[e.pos:], s)
	return nil
}

// UTILITY FUNCTIONS

// BytesSize returns the size needed to encode the given bytes
func BytesSize(data []byte) int {
	return VarintSize(uint64(len(data))) + len(data)
}

// StringSize returns the size needed to encode the given string
func StringSize(s string) int {
	return VarintSize(uint64(len(s))) + len(s)
}

// Convenience methods for direct access

// DecodeRawBytes - convenience method for main decoder
func (d *Decoder) DecodeRawBytes() ([]byte, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeRawBytes()
}

// EncodeBytes - convenience method for main encoder
func (e *Encoder) EncodeBytes(data []byte) error {
	be := NewBytesEncoder(e)
	return be.EncodeBytes(data)
}

// EncodeString - convenience method for main encoder
func (e *Encoder) EncodeString(s string) error {
	be := NewBytesEncoder(e)
	return be.EncodeString(s)
}
