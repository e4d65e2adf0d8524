// Package schema models .proto declarations for code generation. The
// registry builds it from parsed files; the generator resolves capacities
// into it and validates before emitting code.
package schema

import (
	"github.com/staticproto/staticproto/wire"
)

// File represents a single .proto file
type File struct {
	Name      string     // "telemetry.proto"
	Package   string     // proto package name
	GoPackage string     // go_package option, may be empty
	Syntax    string     // proto3 is the only accepted syntax
	Imports   []string   // imported file paths
	Messages  []*Message // message definitions, nested ones flattened
	Enums     []*Enum    // enum definitions, nested ones flattened
}

// Message represents a protobuf message definition
type Message struct {
	Name   string   // "Sample", nested as "Outer_Inner"
	Fields []*Field // fields outside oneof groups
	Oneofs []*Oneof // oneof groups
}

// Field represents a message field
type Field struct {
	Name         string // "user_name"
	Number       int32  // 1
	Label        Label  // singular, optional, repeated
	Kind         Kind   // scalar kind, enum, string, bytes or message
	TypeName     string // qualified type for message and enum kinds
	Capacity     int    // payload or element-count bound, 0 = unresolved
	ElemCapacity int    // per-element payload bound for repeated string/bytes
}

// Oneof represents a oneof group
type Oneof struct {
	Name    string   // "payload"
	Members []*Field // variant fields, all LabelSingular
}

// Enum represents an enum definition
type Enum struct {
	Name   string       // "Status", nested as "Outer_Status"
	Values []*EnumValue // declared values
}

// EnumValue represents an enum value
type EnumValue struct {
	Name   string // "STATUS_ACTIVE"
	Number int32  // 1
}

// Label represents field labels
type Label string

const (
	LabelSingular Label = "singular"
	LabelOptional Label = "optional"
	LabelRepeated Label = "repeated"
)

// Kind represents a field's declared type
type Kind string

const (
	KindBool     Kind = "bool"
	KindInt32    Kind = "int32"
	KindInt64    Kind = "int64"
	KindUint32   Kind = "uint32"
	KindUint64   Kind = "uint64"
	KindSint32   Kind = "sint32"
	KindSint64   Kind = "sint64"
	KindFixed32  Kind = "fixed32"
	KindSfixed32 Kind = "sfixed32"
	KindFloat    Kind = "float"
	KindFixed64  Kind = "fixed64"
	KindSfixed64 Kind = "sfixed64"
	KindDouble   Kind = "double"
	KindEnum     Kind = "enum"
	KindString   Kind = "string"
	KindBytes    Kind = "bytes"
	KindMessage  Kind = "message"
)

var kinds = map[Kind]struct{}{
	KindBool:     {},
	KindInt32:    {},
	KindInt64:    {},
	KindUint32:   {},
	KindUint64:   {},
	KindSint32:   {},
	KindSint64:   {},
	KindFixed32:  {},
	KindSfixed32: {},
	KindFloat:    {},
	KindFixed64:  {},
	KindSfixed64: {},
	KindDouble:   {},
	KindEnum:     {},
	KindString:   {},
	KindBytes:    {},
	KindMessage:  {},
}

// Known checks and returns whether k is a kind this codec handles
func (k Kind) Known() bool {
	_, ok := kinds[k]
	return ok
}

// WireType returns the wire type a field of this kind is encoded with.
func (k Kind) WireType() wire.WireType {
	switch k {
	case KindFixed32, KindSfixed32, KindFloat:
		return wire.WireFixed32
	case KindFixed64, KindSfixed64, KindDouble:
		return wire.WireFixed64
	case KindString, KindBytes, KindMessage:
		return wire.WireBytes
	default:
		return wire.WireVarint
	}
}

// Bounded reports whether a field of this kind stores its payload in a
// bounded container and therefore needs a resolved capacity.
func (k Kind) Bounded() bool {
	return k == KindString || k == KindBytes
}
