package wire

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType represents protobuf wire format types
type WireType int32

const (
	WireVarint  WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64 WireType = 1 // fixed64, sfixed64, double
	WireBytes   WireType = 2 // string, bytes, embedded messages
	WireFixed32 WireType = 5 // fixed32, sfixed32, float
)

// Valid reports whether wt is a wire type this codec can carry. The group
// markers 3 and 4 and the unassigned values 6 and 7 are rejected.
func (wt WireType) Valid() bool {
	switch wt {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
		return true
	default:
		return false
	}
}

// String returns a human-readable wire type name for diagnostics.
func (wt WireType) String() string {
	switch wt {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "bytes"
	case WireFixed32:
		return "fixed32"
	default:
		return "unknown"
	}
}

// FieldNumber represents a protobuf field number
type FieldNumber int32

// Field number bounds. 19000-19999 is reserved by the wire format for
// implementation use; the wire layer still carries such fields, schema
// validation rejects declaring them.
const (
	MinFieldNumber      FieldNumber = 1
	FirstReservedNumber FieldNumber = 19000
	LastReservedNumber  FieldNumber = 19999
	MaxFieldNumber      FieldNumber = 1<<29 - 1
)

// Valid reports whether n is in the encodable field number range.
func (n FieldNumber) Valid() bool {
	return n >= MinFieldNumber && n <= MaxFieldNumber
}

// Reserved reports whether n falls in the reserved range.
func (n FieldNumber) Reserved() bool {
	return n >= FirstReservedNumber && n <= LastReservedNumber
}

// Tag represents a protobuf field tag (field number + wire type)
type Tag uint64

// MakeTag creates a tag from field number and wire type
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag parses a tag into field number and wire type
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}
