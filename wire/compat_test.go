package wire

import (
	"bytes"
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/staticproto/staticproto/bounded"
)

// Cross-checks against protowire, the reference wire-format implementation.
// Anything encoded here must be consumable there and vice versa.

func TestVarintCompat(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1<<32 - 1, 1 << 32, 1<<63 - 1, math.MaxUint64}

	for _, v := range values {
		ref := protowire.AppendVarint(nil, v)

		var buf [10]byte
		e := NewEncoder(buf[:])
		if err := e.EncodeVarint(v); err != nil {
			t.Fatalf("EncodeVarint(%d) failed: %v", v, err)
		}
		if !bytes.Equal(e.Bytes(), ref) {
			t.Errorf("EncodeVarint(%d): expected %x, got %x", v, ref, e.Bytes())
		}

		got, err := NewDecoder(ref).DecodeVarint()
		if err != nil || got != v {
			t.Errorf("DecodeVarint(%x): expected %d, got %d (err %v)", ref, v, got, err)
		}

		refGot, n := protowire.ConsumeVarint(e.Bytes())
		if n < 0 || refGot != v {
			t.Errorf("protowire.ConsumeVarint(%x): expected %d, got %d (n %d)", e.Bytes(), v, refGot, n)
		}
	}
}

func TestTagCompat(t *testing.T) {
	tags := []struct {
		fieldNumber FieldNumber
		wireType    WireType
		refType     protowire.Type
	}{
		{1, WireVarint, protowire.VarintType},
		{2, WireBytes, protowire.BytesType},
		{15, WireFixed32, protowire.Fixed32Type},
		{16, WireFixed64, protowire.Fixed64Type},
		{19000, WireVarint, protowire.VarintType},
		{MaxFieldNumber, WireBytes, protowire.BytesType},
	}

	for _, tt := range tags {
		ref := protowire.AppendTag(nil, protowire.Number(tt.fieldNumber), tt.refType)

		var buf [8]byte
		e := NewEncoder(buf[:])
		if err := e.EncodeTag(tt.fieldNumber, tt.wireType); err != nil {
			t.Fatalf("EncodeTag(%d, %s) failed: %v", tt.fieldNumber, tt.wireType, err)
		}
		if !bytes.Equal(e.Bytes(), ref) {
			t.Errorf("EncodeTag(%d, %s): expected %x, got %x", tt.fieldNumber, tt.wireType, ref, e.Bytes())
		}

		fieldNumber, wireType, err := NewDecoder(ref).DecodeTag()
		if err != nil || fieldNumber != tt.fieldNumber || wireType != tt.wireType {
			t.Errorf("DecodeTag(%x): expected (%d, %s), got (%d, %s) err %v",
				ref, tt.fieldNumber, tt.wireType, fieldNumber, wireType, err)
		}
	}
}

func TestZigZagCompat(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -64, 63, math.MinInt64, math.MaxInt64} {
		if got, want := EncodeZigZag64(v), protowire.EncodeZigZag(v); got != want {
			t.Errorf("EncodeZigZag64(%d): expected %d, got %d", v, want, got)
		}
		if got, want := DecodeZigZag64(protowire.EncodeZigZag(v)), v; got != want {
			t.Errorf("DecodeZigZag64: expected %d, got %d", want, got)
		}
	}

	// The 32-bit form agrees with the reference 64-bit form over int32.
	for _, v := range []int32{0, -1, 1, math.MinInt32, math.MaxInt32} {
		if got, want := EncodeZigZag32(v), protowire.EncodeZigZag(int64(v)); got != want {
			t.Errorf("EncodeZigZag32(%d): expected %d, got %d", v, want, got)
		}
	}
}

func TestFixedCompat(t *testing.T) {
	var buf [8]byte

	e := NewEncoder(buf[:])
	if err := e.EncodeFixed32(0xCAFEBABE); err != nil {
		t.Fatalf("EncodeFixed32 failed: %v", err)
	}
	if ref := protowire.AppendFixed32(nil, 0xCAFEBABE); !bytes.Equal(e.Bytes(), ref) {
		t.Errorf("EncodeFixed32: expected %x, got %x", ref, e.Bytes())
	}
	if v, n := protowire.ConsumeFixed32(e.Bytes()); n < 0 || v != 0xCAFEBABE {
		t.Errorf("protowire.ConsumeFixed32: got %#x (n %d)", v, n)
	}

	e.Reset(buf[:])
	if err := e.EncodeFixed64(0x0102030405060708); err != nil {
		t.Fatalf("EncodeFixed64 failed: %v", err)
	}
	if ref := protowire.AppendFixed64(nil, 0x0102030405060708); !bytes.Equal(e.Bytes(), ref) {
		t.Errorf("EncodeFixed64: expected %x, got %x", ref, e.Bytes())
	}

	fd := NewFixedDecoder(NewDecoder(protowire.AppendFixed64(nil, math.Float64bits(math.Pi))))
	if v, err := fd.DecodeFloat64(); err != nil || v != math.Pi {
		t.Errorf("DecodeFloat64: expected %v, got %v (err %v)", math.Pi, v, err)
	}
}

func TestBytesFramingCompat(t *testing.T) {
	payload := []byte("telemetry")
	ref := protowire.AppendBytes(nil, payload)

	var buf [16]byte
	e := NewEncoder(buf[:])
	if err := e.EncodeBytes(payload); err != nil {
		t.Fatalf("EncodeBytes failed: %v", err)
	}
	if !bytes.Equal(e.Bytes(), ref) {
		t.Errorf("EncodeBytes: expected %x, got %x", ref, e.Bytes())
	}

	got, err := NewBytesDecoder(NewDecoder(ref)).DecodeRawBytes()
	if err != nil || !bytes.Equal(got, payload) {
		t.Errorf("DecodeRawBytes: expected %q, got %q (err %v)", payload, got, err)
	}

	refGot, n := protowire.ConsumeBytes(e.Bytes())
	if n < 0 || !bytes.Equal(refGot, payload) {
		t.Errorf("protowire.ConsumeBytes: expected %q, got %q (n %d)", payload, refGot, n)
	}
}

func TestMessageStreamCompat(t *testing.T) {
	t.Run("decodes_protowire_built_stream", func(t *testing.T) {
		inner := protowire.AppendTag(nil, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, 3)
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		negY := int64(-4)
		inner = protowire.AppendVarint(inner, uint64(negY)) // int32 fields sign-extend

		data := protowire.AppendTag(nil, 1, protowire.VarintType)
		data = protowire.AppendVarint(data, 77)
		data = protowire.AppendTag(data, 2, protowire.BytesType)
		data = protowire.AppendBytes(data, inner)
		data = protowire.AppendTag(data, 3, protowire.BytesType)
		data = protowire.AppendBytes(data, []byte("hot"))
		data = protowire.AppendTag(data, 8, protowire.VarintType)
		data = protowire.AppendVarint(data, 5)

		dst := newSensor()
		if err := DecodeMessageFields(NewDecoder(data), dst); err != nil {
			t.Fatalf("DecodeMessageFields failed: %v", err)
		}

		if dst.id != 77 {
			t.Errorf("id: expected 77, got %d", dst.id)
		}
		if dst.origin != (point{x: 3, y: -4}) {
			t.Errorf("origin: expected (3, -4), got (%d, %d)", dst.origin.x, dst.origin.y)
		}
		if dst.labels.Len() != 1 || dst.labels.Ptr(0).String() != "hot" {
			t.Errorf("labels: expected [hot], got %d elements", dst.labels.Len())
		}
		if dst.mode.Which() != sensorModeChannel || dst.mode.channel != 5 {
			t.Errorf("mode: expected channel 5, got variant %d", dst.mode.Which())
		}
	})

	t.Run("protowire_walks_our_stream", func(t *testing.T) {
		src := newSensor()
		src.id = 9
		src.origin = point{x: 1, y: 2}
		slot, err := src.labels.Grow()
		if err != nil {
			t.Fatalf("Grow failed: %v", err)
		}
		if err := slot.Set("aft"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		src.mode.which = sensorModeChannel
		src.mode.channel = 4

		var buf [64]byte
		e := NewEncoder(buf[:])
		if err := src.EncodeFields(e); err != nil {
			t.Fatalf("EncodeFields failed: %v", err)
		}

		var seen []protowire.Number
		b := e.Bytes()
		for len(b) > 0 {
			num, typ, n := protowire.ConsumeTag(b)
			if n < 0 {
				t.Fatalf("protowire.ConsumeTag failed: %v", protowire.ParseError(n))
			}
			b = b[n:]
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				t.Fatalf("protowire.ConsumeFieldValue(%d) failed: %v", num, protowire.ParseError(n))
			}
			b = b[n:]
			seen = append(seen, num)
		}

		want := []protowire.Number{1, 2, 3, 8}
		if len(seen) != len(want) {
			t.Fatalf("expected fields %v, got %v", want, seen)
		}
		for i := range want {
			if seen[i] != want[i] {
				t.Fatalf("expected fields %v, got %v", want, seen)
			}
		}
	})
}

func TestUnmarshalProtocStyleString(t *testing.T) {
	// A string field exactly as protoc-generated encoders emit it.
	data := protowire.AppendTag(nil, 1, protowire.BytesType)
	data = protowire.AppendString(data, "крыло")

	d := NewDecoder(data)
	_, wireType, err := d.DecodeTag()
	if err != nil {
		t.Fatalf("DecodeTag failed: %v", err)
	}
	dst := bounded.NewString(16)
	if err := DecodeString(d, wireType, &dst); err != nil {
		t.Fatalf("DecodeString failed: %v", err)
	}
	if dst.String() != "крыло" {
		t.Errorf("expected %q, got %q", "крыло", dst.String())
	}
}
