package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestDecodeVarint(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    uint64
		wantErr error
	}{
		{name: "zero", input: []byte{0x00}, want: 0},
		{name: "one", input: []byte{0x01}, want: 1},
		{name: "one_byte_max", input: []byte{0x7F}, want: 127},
		{name: "two_bytes_min", input: []byte{0x80, 0x01}, want: 128},
		{name: "three_hundred", input: []byte{0xAC, 0x02}, want: 300},
		{
			name:  "max_uint64",
			input: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01},
			want:  math.MaxUint64,
		},
		{
			// The 10th byte may only carry bit 63.
			name:    "tenth_byte_overflow",
			input:   []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02},
			wantErr: ErrInvalidVarint,
		},
		{
			name:    "unterminated_ten_bytes",
			input:   []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01},
			wantErr: ErrInvalidVarint,
		},
		{name: "truncated", input: []byte{0x80}, wantErr: ErrUnexpectedEOF},
		{name: "truncated_multi", input: []byte{0xFF, 0xFF, 0x80}, wantErr: ErrUnexpectedEOF},
		{name: "empty", input: []byte{}, wantErr: ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(tt.input)
			got, err := d.DecodeVarint()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeVarint failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			if !d.EOF() {
				t.Errorf("expected all input consumed, %d bytes left", d.Remaining())
			}
		})
	}
}

func TestEncodeVarint(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{name: "zero", value: 0, want: []byte{0x00}},
		{name: "one_byte_max", value: 127, want: []byte{0x7F}},
		{name: "two_bytes_min", value: 128, want: []byte{0x80, 0x01}},
		{name: "three_hundred", value: 300, want: []byte{0xAC, 0x02}},
		{
			name:  "max_uint64",
			value: math.MaxUint64,
			want:  []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf [10]byte
			e := NewEncoder(buf[:])
			if err := e.EncodeVarint(tt.value); err != nil {
				t.Fatalf("EncodeVarint failed: %v", err)
			}
			if !bytes.Equal(e.Bytes(), tt.want) {
				t.Errorf("expected %x, got %x", tt.want, e.Bytes())
			}
		})
	}
}

func TestEncodeVarintOverflow(t *testing.T) {
	var buf [1]byte
	e := NewEncoder(buf[:])

	err := e.EncodeVarint(128) // needs 2 bytes
	if !errors.Is(err, ErrBufferOverflow) {
		t.Fatalf("expected ErrBufferOverflow, got %v", err)
	}
	if e.Pos() != 0 {
		t.Errorf("expected no bytes written on overflow, pos is %d", e.Pos())
	}
}

func TestVarintSize(t *testing.T) {
	tests := []struct {
		value uint64
		want  int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1 << 28, 5},
		{1 << 35, 6},
		{1 << 56, 9},
		{1<<63 - 1, 9},
		{1 << 63, 10},
		{math.MaxUint64, 10},
	}

	for _, tt := range tests {
		if got := VarintSize(tt.value); got != tt.want {
			t.Errorf("VarintSize(%d): expected %d, got %d", tt.value, tt.want, got)
		}
	}
}

func TestZigZag(t *testing.T) {
	t.Run("zigzag32", func(t *testing.T) {
		pairs := []struct {
			decoded int32
			encoded uint64
		}{
			{0, 0},
			{-1, 1},
			{1, 2},
			{-2, 3},
			{2, 4},
			{math.MaxInt32, 0xFFFFFFFE},
			{math.MinInt32, 0xFFFFFFFF},
		}
		for _, p := range pairs {
			if got := EncodeZigZag32(p.decoded); got != p.encoded {
				t.Errorf("EncodeZigZag32(%d): expected %d, got %d", p.decoded, p.encoded, got)
			}
			if got := DecodeZigZag32(p.encoded); got != p.decoded {
				t.Errorf("DecodeZigZag32(%d): expected %d, got %d", p.encoded, p.decoded, got)
			}
		}
	})

	t.Run("zigzag64", func(t *testing.T) {
		pairs := []struct {
			decoded int64
			encoded uint64
		}{
			{0, 0},
			{-1, 1},
			{1, 2},
			{-2, 3},
			{math.MaxInt64, 0xFFFFFFFFFFFFFFFE},
			{math.MinInt64, 0xFFFFFFFFFFFFFFFF},
		}
		for _, p := range pairs {
			if got := EncodeZigZag64(p.decoded); got != p.encoded {
				t.Errorf("EncodeZigZag64(%d): expected %d, got %d", p.decoded, p.encoded, got)
			}
			if got := DecodeZigZag64(p.encoded); got != p.decoded {
				t.Errorf("DecodeZigZag64(%d): expected %d, got %d", p.encoded, p.decoded, got)
			}
		}
	})
}

func TestTypedVarintRoundTrips(t *testing.T) {
	var buf [16]byte

	t.Run("int32_negative_sign_extends", func(t *testing.T) {
		e := NewEncoder(buf[:])
		ve := NewVarintEncoder(e)
		if err := ve.EncodeInt32(-1); err != nil {
			t.Fatalf("EncodeInt32 failed: %v", err)
		}
		// Standard encoding: negative int32 occupies 10 bytes
		if e.Pos() != 10 {
			t.Errorf("expected 10 bytes for -1, got %d", e.Pos())
		}

		vd := NewVarintDecoder(NewDecoder(e.Bytes()))
		got, err := vd.DecodeInt32()
		if err != nil {
			t.Fatalf("DecodeInt32 failed: %v", err)
		}
		if got != -1 {
			t.Errorf("expected -1, got %d", got)
		}
	})

	t.Run("sint32_negative_stays_short", func(t *testing.T) {
		e := NewEncoder(buf[:])
		ve := NewVarintEncoder(e)
		if err := ve.EncodeSint32(-42); err != nil {
			t.Fatalf("EncodeSint32 failed: %v", err)
		}
		if e.Pos() != 1 {
			t.Errorf("expected 1 byte for zigzag -42, got %d", e.Pos())
		}

		vd := NewVarintDecoder(NewDecoder(e.Bytes()))
		got, err := vd.DecodeSint32()
		if err != nil {
			t.Fatalf("DecodeSint32 failed: %v", err)
		}
		if got != -42 {
			t.Errorf("expected -42, got %d", got)
		}
	})

	t.Run("bool", func(t *testing.T) {
		e := NewEncoder(buf[:])
		ve := NewVarintEncoder(e)
		if err := ve.EncodeBool(true); err != nil {
			t.Fatalf("EncodeBool failed: %v", err)
		}
		if err := ve.EncodeBool(false); err != nil {
			t.Fatalf("EncodeBool failed: %v", err)
		}

		vd := NewVarintDecoder(NewDecoder(e.Bytes()))
		first, err := vd.DecodeBool()
		if err != nil {
			t.Fatalf("DecodeBool failed: %v", err)
		}
		second, err := vd.DecodeBool()
		if err != nil {
			t.Fatalf("DecodeBool failed: %v", err)
		}
		if !first || second {
			t.Errorf("expected true then false, got %v then %v", first, second)
		}
	})

	t.Run("bool_nonzero_is_true", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder([]byte{0x02}))
		got, err := vd.DecodeBool()
		if err != nil {
			t.Fatalf("DecodeBool failed: %v", err)
		}
		if !got {
			t.Error("expected nonzero varint to decode as true")
		}
	})

	t.Run("enum_negative", func(t *testing.T) {
		e := NewEncoder(buf[:])
		ve := NewVarintEncoder(e)
		if err := ve.EncodeEnum(-5); err != nil {
			t.Fatalf("EncodeEnum failed: %v", err)
		}

		vd := NewVarintDecoder(NewDecoder(e.Bytes()))
		got, err := vd.DecodeEnum()
		if err != nil {
			t.Fatalf("DecodeEnum failed: %v", err)
		}
		if got != -5 {
			t.Errorf("expected -5, got %d", got)
		}
	})
}

func TestTypedVarintRangeChecks(t *testing.T) {
	encode := func(t *testing.T, v uint64) []byte {
		t.Helper()
		var buf [10]byte
		e := NewEncoder(buf[:])
		if err := e.EncodeVarint(v); err != nil {
			t.Fatalf("EncodeVarint failed: %v", err)
		}
		return e.Bytes()
	}

	t.Run("int32_overflow", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder(encode(t, 1<<32)))
		if _, err := vd.DecodeInt32(); !errors.Is(err, ErrInvalidVarint) {
			t.Errorf("expected ErrInvalidVarint, got %v", err)
		}
	})

	t.Run("uint32_overflow", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder(encode(t, math.MaxUint32+1)))
		if _, err := vd.DecodeUint32(); !errors.Is(err, ErrInvalidVarint) {
			t.Errorf("expected ErrInvalidVarint, got %v", err)
		}
	})

	t.Run("uint32_max_ok", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder(encode(t, math.MaxUint32)))
		got, err := vd.DecodeUint32()
		if err != nil {
			t.Fatalf("DecodeUint32 failed: %v", err)
		}
		if got != math.MaxUint32 {
			t.Errorf("expected %d, got %d", uint32(math.MaxUint32), got)
		}
	})

	t.Run("sint32_overflow", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder(encode(t, math.MaxUint32+1)))
		if _, err := vd.DecodeSint32(); !errors.Is(err, ErrInvalidVarint) {
			t.Errorf("expected ErrInvalidVarint, got %v", err)
		}
	})

	t.Run("enum_overflow", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder(encode(t, 1<<33)))
		if _, err := vd.DecodeEnum(); !errors.Is(err, ErrInvalidVarint) {
			t.Errorf("expected ErrInvalidVarint, got %v", err)
		}
	})
}

func TestSkipVarint(t *testing.T) {
	t.Run("skips_without_decoding", func(t *testing.T) {
		d := NewDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01, 0x07})
		vd := NewVarintDecoder(d)
		if err := vd.SkipVarint(); err != nil {
			t.Fatalf("SkipVarint failed: %v", err)
		}
		if d.Pos() != 10 {
			t.Errorf("expected position 10, got %d", d.Pos())
		}
	})

	t.Run("truncated", func(t *testing.T) {
		vd := NewVarintDecoder(NewDecoder([]byte{0x80, 0x80}))
		if err := vd.SkipVarint(); !errors.Is(err, ErrUnexpectedEOF) {
			t.Errorf("expected ErrUnexpectedEOF, got %v", err)
		}
	})

	t.Run("unterminated", func(t *testing.T) {
		data := bytes.Repeat([]byte{0x80}, 11)
		vd := NewVarintDecoder(NewDecoder(data))
		if err := vd.SkipVarint(); !errors.Is(err, ErrInvalidVarint) {
			t.Errorf("expected ErrInvalidVarint, got %v", err)
		}
	})
}
