package gen

import (
	"sort"

	"github.com/staticproto/staticproto/schema"
)

const (
	rootImport    = "github.com/staticproto/staticproto"
	boundedImport = "github.com/staticproto/staticproto/bounded"
	wireImport    = "github.com/staticproto/staticproto/wire"
)

// goScalarType maps scalar field kinds to the Go type stored in the struct.
var goScalarType = map[schema.Kind]string{
	schema.KindBool:     "bool",
	schema.KindInt32:    "int32",
	schema.KindInt64:    "int64",
	schema.KindUint32:   "uint32",
	schema.KindUint64:   "uint64",
	schema.KindSint32:   "int32",
	schema.KindSint64:   "int64",
	schema.KindFixed32:  "uint32",
	schema.KindSfixed32: "int32",
	schema.KindFloat:    "float32",
	schema.KindFixed64:  "uint64",
	schema.KindSfixed64: "int64",
	schema.KindDouble:   "float64",
}

// wireFuncSuffix maps field kinds to the Encode/Decode function pair in the
// wire package, so kind fixed32 emits wire.EncodeFixed32 and wire.DecodeFixed32.
var wireFuncSuffix = map[schema.Kind]string{
	schema.KindBool:     "Bool",
	schema.KindInt32:    "Int32",
	schema.KindInt64:    "Int64",
	schema.KindUint32:   "Uint32",
	schema.KindUint64:   "Uint64",
	schema.KindSint32:   "Sint32",
	schema.KindSint64:   "Sint64",
	schema.KindFixed32:  "Fixed32",
	schema.KindSfixed32: "Sfixed32",
	schema.KindFloat:    "Float",
	schema.KindFixed64:  "Fixed64",
	schema.KindSfixed64: "Sfixed64",
	schema.KindDouble:   "Double",
	schema.KindEnum:     "Enum",
	schema.KindString:   "String",
	schema.KindBytes:    "Bytes",
	schema.KindMessage:  "Embedded",
}

// goType resolves the Go type that holds one value of the field, before any
// Opt or Vec wrapper is applied.
func (e *fileEmitter) goType(fd *schema.Field) (string, error) {
	switch fd.Kind {
	case schema.KindString:
		e.need(boundedImport, "bounded")
		return "bounded.String", nil
	case schema.KindBytes:
		e.need(boundedImport, "bounded")
		return "bounded.Bytes", nil
	case schema.KindEnum:
		en, err := e.g.reg.GetEnum(fd.TypeName)
		if err != nil {
			return "", err
		}
		return en.Name, nil
	case schema.KindMessage:
		msg, err := e.g.reg.GetMessage(fd.TypeName)
		if err != nil {
			return "", err
		}
		return msg.Name, nil
	default:
		return goScalarType[fd.Kind], nil
	}
}

// storageType resolves the full struct field type including the Opt or Vec
// wrapper for optional and repeated labels.
func (e *fileEmitter) storageType(fd *schema.Field) (string, error) {
	base, err := e.goType(fd)
	if err != nil {
		return "", err
	}
	switch fd.Label {
	case schema.LabelOptional:
		e.need(rootImport, "staticproto")
		return "staticproto.Opt[" + base + "]", nil
	case schema.LabelRepeated:
		e.need(boundedImport, "bounded")
		return "bounded.Vec[" + base + "]", nil
	default:
		return base, nil
	}
}

func zeroValue(k schema.Kind) string {
	if k == schema.KindBool {
		return "false"
	}
	return "0"
}

// encodeItem orders struct fields and oneof groups by field number for
// EncodeFields; a oneof sorts at its lowest member number.
type encodeItem struct {
	number int32
	field  *schema.Field
	oneof  *schema.Oneof
}

func encodeOrder(m *schema.Message) []encodeItem {
	items := make([]encodeItem, 0, len(m.Fields)+len(m.Oneofs))
	for _, fd := range m.Fields {
		items = append(items, encodeItem{number: fd.Number, field: fd})
	}
	for _, o := range m.Oneofs {
		min := o.Members[0].Number
		for _, fd := range o.Members[1:] {
			if fd.Number < min {
				min = fd.Number
			}
		}
		items = append(items, encodeItem{number: min, oneof: o})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].number < items[j].number })
	return items
}

// MESSAGE EMISSION

func (e *fileEmitter) genMessage(m *schema.Message) error {
	e.need(wireImport, "wire")

	if err := e.genStruct(m); err != nil {
		return err
	}
	e.genConstructor(m)
	if err := e.genInit(m); err != nil {
		return err
	}
	e.genReset(m)
	if err := e.genEncodeFields(m); err != nil {
		return err
	}
	if err := e.genDecodeField(m); err != nil {
		return err
	}
	for _, o := range m.Oneofs {
		if err := e.genOneof(m, o); err != nil {
			return err
		}
	}
	return nil
}

func (e *fileEmitter) genStruct(m *schema.Message) error {
	e.p("type ", m.Name, " struct {")
	for _, fd := range m.Fields {
		st, err := e.storageType(fd)
		if err != nil {
			return err
		}
		e.p(upperCamel(fd.Name), " ", st)
	}
	for _, o := range m.Oneofs {
		e.p(upperCamel(o.Name), " ", m.Name+upperCamel(o.Name))
	}
	e.p("}")
	e.p()
	return nil
}

func (e *fileEmitter) genConstructor(m *schema.Message) {
	e.p("func New", m.Name, "() *", m.Name, " {")
	e.p("m := &", m.Name, "{}")
	e.p("m.init()")
	e.p("return m")
	e.p("}")
	e.p()
}

func (e *fileEmitter) genInit(m *schema.Message) error {
	e.p("func (m *", m.Name, ") init() {")
	for _, fd := range m.Fields {
		if err := e.genInitField("m."+upperCamel(fd.Name), fd); err != nil {
			return err
		}
	}
	for _, o := range m.Oneofs {
		e.p("m.", upperCamel(o.Name), ".init()")
	}
	e.p("}")
	e.p()
	return nil
}

// genInitField emits the storage allocation for one field, or nothing when
// the zero value already is the ready state.
func (e *fileEmitter) genInitField(dst string, fd *schema.Field) error {
	switch fd.Label {
	case schema.LabelRepeated:
		return e.genInitRepeated(dst, fd)
	case schema.LabelOptional:
		switch fd.Kind {
		case schema.KindString:
			e.need(rootImport, "staticproto")
			e.p(dst, " = staticproto.NewOpt(bounded.NewString(", fd.Capacity, "))")
		case schema.KindBytes:
			e.need(rootImport, "staticproto")
			e.p(dst, " = staticproto.NewOpt(bounded.NewBytes(", fd.Capacity, "))")
		case schema.KindMessage:
			e.p(dst, ".Ptr().init()")
		}
		return nil
	default:
		switch fd.Kind {
		case schema.KindString:
			e.p(dst, " = bounded.NewString(", fd.Capacity, ")")
		case schema.KindBytes:
			e.p(dst, " = bounded.NewBytes(", fd.Capacity, ")")
		case schema.KindMessage:
			e.p(dst, ".init()")
		}
		return nil
	}
}

func (e *fileEmitter) genInitRepeated(dst string, fd *schema.Field) error {
	elem, err := e.goType(fd)
	if err != nil {
		return err
	}
	switch fd.Kind {
	case schema.KindString:
		e.p(dst, " = bounded.NewVecOf(", fd.Capacity, ", func() bounded.String { return bounded.NewString(", fd.ElemCapacity, ") })")
	case schema.KindBytes:
		e.p(dst, " = bounded.NewVecOf(", fd.Capacity, ", func() bounded.Bytes { return bounded.NewBytes(", fd.ElemCapacity, ") })")
	case schema.KindMessage:
		e.p(dst, " = bounded.NewVecOf(", fd.Capacity, ", func() ", elem, " {")
		e.p("var x ", elem)
		e.p("x.init()")
		e.p("return x")
		e.p("})")
	default:
		e.p(dst, " = bounded.NewVec[", elem, "](", fd.Capacity, ")")
	}
	return nil
}

func (e *fileEmitter) genReset(m *schema.Message) {
	e.p("func (m *", m.Name, ") Reset() {")
	for _, fd := range m.Fields {
		dst := "m." + upperCamel(fd.Name)
		switch {
		case fd.Label == schema.LabelOptional || fd.Label == schema.LabelRepeated:
			e.p(dst, ".Clear()")
		case fd.Kind == schema.KindMessage:
			e.p(dst, ".Reset()")
		case fd.Kind.Bounded():
			e.p(dst, ".Clear()")
		default:
			e.p(dst, " = ", zeroValue(fd.Kind))
		}
	}
	for _, o := range m.Oneofs {
		e.p("m.", upperCamel(o.Name), ".Clear()")
	}
	e.p("}")
	e.p()
}

// ENCODE EMISSION

// encodeValueExpr builds the value argument passed to the wire encode
// function: enums narrow to int32, container kinds pass a pointer.
func encodeValueExpr(fd *schema.Field, src string) string {
	switch fd.Kind {
	case schema.KindEnum:
		return "int32(" + src + ")"
	case schema.KindString, schema.KindBytes, schema.KindMessage:
		if fd.Label == schema.LabelSingular || fd.Label == "" {
			return "&" + src
		}
		return src
	default:
		return src
	}
}

func (e *fileEmitter) genEncodeCall(fd *schema.Field, number int32, val string) {
	e.p("if err := wire.Encode", wireFuncSuffix[fd.Kind], "(e, ", number, ", ", val, "); err != nil {")
	e.p("return err")
	e.p("}")
}

func (e *fileEmitter) genEncodeFields(m *schema.Message) error {
	e.p("func (m *", m.Name, ") EncodeFields(e *wire.Encoder) error {")
	for _, item := range encodeOrder(m) {
		if item.oneof != nil {
			e.p("if err := m.", upperCamel(item.oneof.Name), ".EncodeOneof(e); err != nil {")
			e.p("return err")
			e.p("}")
			continue
		}
		fd := item.field
		base := "m." + upperCamel(fd.Name)
		switch fd.Label {
		case schema.LabelOptional:
			e.p("if ", base, ".IsSet() {")
			src := base + ".Get()"
			if fd.Kind.Bounded() || fd.Kind == schema.KindMessage {
				src = base + ".Ptr()"
			}
			e.genEncodeCall(fd, fd.Number, encodeValueExpr(fd, src))
			e.p("}")
		case schema.LabelRepeated:
			e.p("for i := 0; i < ", base, ".Len(); i++ {")
			src := base + ".At(i)"
			if fd.Kind.Bounded() || fd.Kind == schema.KindMessage {
				src = base + ".Ptr(i)"
			}
			e.genEncodeCall(fd, fd.Number, encodeValueExpr(fd, src))
			e.p("}")
		default:
			e.genEncodeCall(fd, fd.Number, encodeValueExpr(fd, base))
		}
	}
	e.p("return nil")
	e.p("}")
	e.p()
	return nil
}

// DECODE EMISSION

func (e *fileEmitter) genDecodeField(m *schema.Message) error {
	e.p("func (m *", m.Name, ") DecodeField(d *wire.Decoder, fieldNumber wire.FieldNumber, wireType wire.WireType) (bool, error) {")
	if len(m.Fields) > 0 {
		e.p("switch fieldNumber {")
		for _, fd := range m.Fields {
			e.p("case ", fd.Number, ":")
			if err := e.genDecodeArm(fd); err != nil {
				return err
			}
		}
		e.p("}")
	}
	for _, o := range m.Oneofs {
		gn := upperCamel(o.Name)
		e.p("if matched, err := m.", gn, ".DecodeVariant(d, fieldNumber, wireType); matched || err != nil {")
		e.p("return matched, err")
		e.p("}")
	}
	e.p("return false, nil")
	e.p("}")
	e.p()
	return nil
}

func (e *fileEmitter) genDecodeArm(fd *schema.Field) error {
	dst := "m." + upperCamel(fd.Name)
	suffix := wireFuncSuffix[fd.Kind]
	switch fd.Label {
	case schema.LabelRepeated:
		switch fd.Kind {
		case schema.KindString, schema.KindBytes:
			e.p("return true, wire.DecodeRepeated", suffix, "(d, wireType, &", dst, ")")
		case schema.KindMessage:
			e.p("return true, wire.DecodeRepeatedEmbedded(d, wireType, &", dst, ")")
		default:
			e.genDecodeScalar(fd)
			if fd.Kind == schema.KindEnum {
				elem, err := e.goType(fd)
				if err != nil {
					return err
				}
				e.p("return true, ", dst, ".Append(", elem, "(v))")
			} else {
				e.p("return true, ", dst, ".Append(v)")
			}
		}
	case schema.LabelOptional:
		switch fd.Kind {
		case schema.KindString, schema.KindBytes, schema.KindMessage:
			e.p("if err := wire.Decode", suffix, "(d, wireType, ", dst, ".Ptr()); err != nil {")
			e.p("return true, err")
			e.p("}")
			e.p(dst, ".MarkSet()")
			e.p("return true, nil")
		default:
			e.genDecodeScalar(fd)
			if fd.Kind == schema.KindEnum {
				elem, err := e.goType(fd)
				if err != nil {
					return err
				}
				e.p(dst, ".Set(", elem, "(v))")
			} else {
				e.p(dst, ".Set(v)")
			}
			e.p("return true, nil")
		}
	default:
		switch fd.Kind {
		case schema.KindString, schema.KindBytes, schema.KindMessage:
			e.p("return true, wire.Decode", suffix, "(d, wireType, &", dst, ")")
		default:
			e.genDecodeScalar(fd)
			if fd.Kind == schema.KindEnum {
				elem, err := e.goType(fd)
				if err != nil {
					return err
				}
				e.p(dst, " = ", elem, "(v)")
			} else {
				e.p(dst, " = v")
			}
			e.p("return true, nil")
		}
	}
	return nil
}

// genDecodeScalar emits the shared decode-and-check prefix leaving the
// decoded value in v.
func (e *fileEmitter) genDecodeScalar(fd *schema.Field) {
	e.p("v, err := wire.Decode", wireFuncSuffix[fd.Kind], "(d, wireType)")
	e.p("if err != nil {")
	e.p("return true, err")
	e.p("}")
}

// ONEOF EMISSION

func oneofStorageName(fd *schema.Field) string {
	n := lowerCamel(fd.Name)
	if n == "which" {
		n = "which_"
	}
	return n
}

func (e *fileEmitter) genOneof(m *schema.Message, o *schema.Oneof) error {
	tn := m.Name + upperCamel(o.Name)

	e.p("type ", tn, " struct {")
	e.p("which wire.FieldNumber")
	for _, fd := range o.Members {
		st, err := e.goType(fd)
		if err != nil {
			return err
		}
		e.p(oneofStorageName(fd), " ", st)
	}
	e.p("}")
	e.p()

	e.p("const (")
	for _, fd := range o.Members {
		e.p(tn, "_", upperCamel(fd.Name), " wire.FieldNumber = ", fd.Number)
	}
	e.p(")")
	e.p()

	e.p("func (o *", tn, ") init() {")
	for _, fd := range o.Members {
		sn := "o." + oneofStorageName(fd)
		switch fd.Kind {
		case schema.KindString:
			e.p(sn, " = bounded.NewString(", fd.Capacity, ")")
		case schema.KindBytes:
			e.p(sn, " = bounded.NewBytes(", fd.Capacity, ")")
		case schema.KindMessage:
			e.p(sn, ".init()")
		}
	}
	e.p("}")
	e.p()

	e.p("func (o *", tn, ") Which() wire.FieldNumber { return o.which }")
	e.p()
	e.p("func (o *", tn, ") Clear() { o.which = 0 }")
	e.p()

	for _, fd := range o.Members {
		if err := e.genOneofAccessors(tn, fd); err != nil {
			return err
		}
	}

	e.genOneofEncode(tn, o)
	return e.genOneofDecode(tn, o)
}

func (e *fileEmitter) genOneofAccessors(tn string, fd *schema.Field) error {
	gn := upperCamel(fd.Name)
	sn := "o." + oneofStorageName(fd)
	cn := tn + "_" + gn
	elem, err := e.goType(fd)
	if err != nil {
		return err
	}

	switch fd.Kind {
	case schema.KindString:
		e.p("func (o *", tn, ") Set", gn, "(v string) error {")
		e.p("if err := ", sn, ".Set(v); err != nil {")
		e.p("return err")
		e.p("}")
		e.p("o.which = ", cn)
		e.p("return nil")
		e.p("}")
		e.p()
		e.p("func (o *", tn, ") ", gn, "() *bounded.String { return &", sn, " }")
	case schema.KindBytes:
		e.p("func (o *", tn, ") Set", gn, "(p []byte) error {")
		e.p("if err := ", sn, ".Set(p); err != nil {")
		e.p("return err")
		e.p("}")
		e.p("o.which = ", cn)
		e.p("return nil")
		e.p("}")
		e.p()
		e.p("func (o *", tn, ") ", gn, "() *bounded.Bytes { return &", sn, " }")
	case schema.KindMessage:
		e.p("func (o *", tn, ") Mutable", gn, "() *", elem, " {")
		e.p("if o.which != ", cn, " {")
		e.p(sn, ".Reset()")
		e.p("}")
		e.p("o.which = ", cn)
		e.p("return &", sn)
		e.p("}")
		e.p()
		e.p("func (o *", tn, ") ", gn, "() *", elem, " { return &", sn, " }")
	default:
		e.p("func (o *", tn, ") Set", gn, "(v ", elem, ") {")
		e.p("o.which = ", cn)
		e.p(sn, " = v")
		e.p("}")
		e.p()
		e.p("func (o *", tn, ") ", gn, "() ", elem, " { return ", sn, " }")
	}
	e.p()
	return nil
}

func (e *fileEmitter) genOneofEncode(tn string, o *schema.Oneof) {
	e.p("func (o *", tn, ") EncodeOneof(e *wire.Encoder) error {")
	e.p("switch o.which {")
	for _, fd := range o.Members {
		cn := tn + "_" + upperCamel(fd.Name)
		sn := "o." + oneofStorageName(fd)
		val := sn
		switch fd.Kind {
		case schema.KindEnum:
			val = "int32(" + sn + ")"
		case schema.KindString, schema.KindBytes, schema.KindMessage:
			val = "&" + sn
		}
		e.p("case ", cn, ":")
		e.p("return wire.Encode", wireFuncSuffix[fd.Kind], "(e, ", cn, ", ", val, ")")
	}
	e.p("}")
	e.p("return nil")
	e.p("}")
	e.p()
}

func (e *fileEmitter) genOneofDecode(tn string, o *schema.Oneof) error {
	e.p("func (o *", tn, ") DecodeVariant(d *wire.Decoder, fieldNumber wire.FieldNumber, wireType wire.WireType) (bool, error) {")
	e.p("switch fieldNumber {")
	for _, fd := range o.Members {
		cn := tn + "_" + upperCamel(fd.Name)
		sn := "o." + oneofStorageName(fd)
		suffix := wireFuncSuffix[fd.Kind]
		e.p("case ", cn, ":")
		switch fd.Kind {
		case schema.KindString, schema.KindBytes:
			e.p("if err := wire.Decode", suffix, "(d, wireType, &", sn, "); err != nil {")
			e.p("return true, err")
			e.p("}")
			e.p("o.which = ", cn)
			e.p("return true, nil")
		case schema.KindMessage:
			e.p("if o.which != ", cn, " {")
			e.p(sn, ".Reset()")
			e.p("}")
			e.p("if err := wire.DecodeEmbedded(d, wireType, &", sn, "); err != nil {")
			e.p("return true, err")
			e.p("}")
			e.p("o.which = ", cn)
			e.p("return true, nil")
		case schema.KindEnum:
			elem, err := e.goType(fd)
			if err != nil {
				return err
			}
			e.p("v, err := wire.DecodeEnum(d, wireType)")
			e.p("if err != nil {")
			e.p("return true, err")
			e.p("}")
			e.p("o.which = ", cn)
			e.p(sn, " = ", elem, "(v)")
			e.p("return true, nil")
		default:
			e.p("v, err := wire.Decode", suffix, "(d, wireType)")
			e.p("if err != nil {")
			e.p("return true, err")
			e.p("}")
			e.p("o.which = ", cn)
			e.p(sn, " = v")
			e.p("return true, nil")
		}
	}
	e.p("}")
	e.p("return false, nil")
	e.p("}")
	e.p()
	return nil
}
