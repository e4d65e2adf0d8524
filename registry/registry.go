// Package registry loads .proto files and converts them into the schema
// model the generator consumes. Imports resolve against a configured list
// of proto directories and are followed depth-first.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/staticproto/staticproto/schema"
)

// Registry stores converted .proto files and their symbol tables. Field
// type references are looked up here when definitions are built.
type Registry struct {
	ProtoDirectories []string // include roots for import resolution

	visited map[string]struct{}                 // files already parsed
	parsed  map[string]*protoparserparser.Proto // path -> parse tree
	files   map[string]*schema.File             // path -> converted file
	order   []string                            // conversion order, imports first

	symbols  map[string]struct{}        // every qualified message and enum name
	messages map[string]*schema.Message // qualified name -> message
	enums    map[string]*schema.Enum    // qualified name -> enum
}

// NewRegistry creates an empty registry resolving imports against protoDirs.
func NewRegistry(protoDirs ...string) *Registry {
	return &Registry{
		ProtoDirectories: protoDirs,
		visited:          make(map[string]struct{}),
		parsed:           make(map[string]*protoparserparser.Proto),
		files:            make(map[string]*schema.File),
		symbols:          make(map[string]struct{}),
		messages:         make(map[string]*schema.Message),
		enums:            make(map[string]*schema.Enum),
	}
}

// Load parses protoFile and everything it imports, then converts the new
// files into the schema model. Loading is additive across calls; a file
// already seen is not converted twice.
func (r *Registry) Load(protoFile string) error {
	paths, err := r.getAllProtoInfo(protoFile)
	if err != nil {
		return err
	}

	// Pass 1: register every message and enum name so pass 2 can resolve
	// forward and cross-file references.
	for _, p := range paths {
		if err := r.registerNames(p); err != nil {
			return fmt.Errorf("failed to register names in %s: %w", p, err)
		}
	}

	// Pass 2: build field definitions
	for _, p := range paths {
		if err := r.buildDefinitions(p); err != nil {
			return fmt.Errorf("failed to build definitions in %s: %w", p, err)
		}
	}

	return nil
}

// registerNames converts the file skeleton and registers all message and
// enum names, nested ones included. Fields wait for pass 2.
func (r *Registry) registerNames(path string) error {
	proto := r.parsed[path]

	file := &schema.File{
		Name: filepath.Base(path),
	}
	if proto.Syntax == nil {
		return fmt.Errorf("missing syntax statement")
	}
	file.Syntax = proto.Syntax.ProtobufVersion

	// Package and options come before type declarations in practice, but
	// nothing guarantees it; collect them in a first sweep.
	for _, body := range proto.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Package:
			file.Package = b.Name
		case *protoparserparser.Option:
			if b.OptionName == "go_package" {
				file.GoPackage = strings.Trim(b.Constant, `"`)
			}
		case *protoparserparser.Import:
			file.Imports = append(file.Imports, strings.Trim(b.Location, `"`))
		}
	}

	for _, body := range proto.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Package, *protoparserparser.Option, *protoparserparser.Import:
			// handled above
		case *protoparserparser.Message:
			if err := r.registerMessage(file, b, r.getFullName(file.Package, b.MessageName), b.MessageName); err != nil {
				return err
			}
		case *protoparserparser.Enum:
			if err := r.registerEnum(file, b, r.getFullName(file.Package, b.EnumName), b.EnumName); err != nil {
				return err
			}
		case *protoparserparser.Service:
			return fmt.Errorf("service %s: services are not supported", b.ServiceName)
		case *protoparserparser.Comment, *protoparserparser.EmptyStatement:
			// ignorable
		default:
			return fmt.Errorf("unsupported declaration %T", body)
		}
	}

	r.files[path] = file
	r.order = append(r.order, path)
	return nil
}

// registerMessage registers a message under its qualified proto name and a
// flattened Go-facing name ("Outer_Inner" for nested types), then recurses
// into nested declarations.
func (r *Registry) registerMessage(file *schema.File, pm *protoparserparser.Message, qualified, goName string) error {
	if _, ok := r.symbols[qualified]; ok {
		return fmt.Errorf("duplicate definition of %s", qualified)
	}

	msg := &schema.Message{Name: goName}
	r.symbols[qualified] = struct{}{}
	r.messages[qualified] = msg
	file.Messages = append(file.Messages, msg)

	for _, body := range pm.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Message:
			if err := r.registerMessage(file, b, qualified+"."+b.MessageName, goName+"_"+b.MessageName); err != nil {
				return err
			}
		case *protoparserparser.Enum:
			if err := r.registerEnum(file, b, qualified+"."+b.EnumName, goName+"_"+b.EnumName); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerEnum registers an enum and converts its values right away; they
// reference nothing, so there is no need to wait for pass 2.
func (r *Registry) registerEnum(file *schema.File, pe *protoparserparser.Enum, qualified, goName string) error {
	if _, ok := r.symbols[qualified]; ok {
		return fmt.Errorf("duplicate definition of %s", qualified)
	}

	enum := &schema.Enum{Name: goName}
	for _, body := range pe.EnumBody {
		ev, ok := body.(*protoparserparser.EnumField)
		if !ok {
			continue
		}
		number, err := strconv.ParseInt(ev.Number, 10, 32)
		if err != nil {
			return fmt.Errorf("enum %s: value %s: invalid number %q", qualified, ev.Ident, ev.Number)
		}
		enum.Values = append(enum.Values, &schema.EnumValue{
			Name:   ev.Ident,
			Number: int32(number),
		})
	}

	r.symbols[qualified] = struct{}{}
	r.enums[qualified] = enum
	file.Enums = append(file.Enums, enum)
	return nil
}

// buildDefinitions converts the fields of every message in the file.
func (r *Registry) buildDefinitions(path string) error {
	proto := r.parsed[path]
	file := r.files[path]

	for _, body := range proto.ProtoBody {
		pm, ok := body.(*protoparserparser.Message)
		if !ok {
			continue
		}
		if err := r.buildMessage(pm, r.getFullName(file.Package, pm.MessageName)); err != nil {
			return err
		}
	}
	return nil
}

// buildMessage fills the registered message at scope with its fields and
// oneof groups, recursing into nested messages. scope doubles as the name
// resolution starting point for field types.
func (r *Registry) buildMessage(pm *protoparserparser.Message, scope string) error {
	msg := r.messages[scope]

	for _, body := range pm.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Field:
			if b.IsRequired {
				return fmt.Errorf("message %s: field %s: required fields are proto2 only", scope, b.FieldName)
			}
			label := schema.LabelSingular
			if b.IsRepeated {
				label = schema.LabelRepeated
			}
			if b.IsOptional {
				label = schema.LabelOptional
			}
			fd, err := r.convertField(b.FieldName, b.Type, b.FieldNumber, label, scope)
			if err != nil {
				return fmt.Errorf("message %s: %w", scope, err)
			}
			msg.Fields = append(msg.Fields, fd)

		case *protoparserparser.Oneof:
			oneof := &schema.Oneof{Name: b.OneofName}
			for _, of := range b.OneofFields {
				fd, err := r.convertField(of.FieldName, of.Type, of.FieldNumber, schema.LabelSingular, scope)
				if err != nil {
					return fmt.Errorf("message %s: oneof %s: %w", scope, b.OneofName, err)
				}
				oneof.Members = append(oneof.Members, fd)
			}
			msg.Oneofs = append(msg.Oneofs, oneof)

		case *protoparserparser.MapField:
			return fmt.Errorf("message %s: field %s: map fields are not supported", scope, b.MapName)
		case *protoparserparser.GroupField:
			return fmt.Errorf("message %s: field %s: groups are proto2 only", scope, b.GroupName)

		case *protoparserparser.Message:
			if err := r.buildMessage(b, scope+"."+b.MessageName); err != nil {
				return err
			}

		case *protoparserparser.Enum, *protoparserparser.Reserved, *protoparserparser.Option,
			*protoparserparser.Comment, *protoparserparser.EmptyStatement:
			// enums were converted in pass 1, the rest carry no codec meaning

		default:
			return fmt.Errorf("message %s: unsupported declaration %T", scope, body)
		}
	}
	return nil
}

// scalarKinds maps proto type keywords to schema kinds.
var scalarKinds = map[string]schema.Kind{
	"bool":     schema.KindBool,
	"int32":    schema.KindInt32,
	"int64":    schema.KindInt64,
	"uint32":   schema.KindUint32,
	"uint64":   schema.KindUint64,
	"sint32":   schema.KindSint32,
	"sint64":   schema.KindSint64,
	"fixed32":  schema.KindFixed32,
	"sfixed32": schema.KindSfixed32,
	"float":    schema.KindFloat,
	"fixed64":  schema.KindFixed64,
	"sfixed64": schema.KindSfixed64,
	"double":   schema.KindDouble,
	"string":   schema.KindString,
	"bytes":    schema.KindBytes,
}

// convertField builds a schema field, resolving named types against the
// symbol table from scope outward.
func (r *Registry) convertField(name, typeName, numberStr string, label schema.Label, scope string) (*schema.Field, error) {
	number, err := strconv.ParseInt(numberStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("field %s: invalid field number %q", name, numberStr)
	}

	fd := &schema.Field{
		Name:   name,
		Number: int32(number),
		Label:  label,
	}

	if kind, ok := scalarKinds[typeName]; ok {
		fd.Kind = kind
		return fd, nil
	}

	resolved, err := getReferencedType(typeName, scope, r.symbols)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}
	if _, ok := r.messages[resolved]; ok {
		fd.Kind = schema.KindMessage
	} else {
		fd.Kind = schema.KindEnum
	}
	fd.TypeName = resolved
	return fd, nil
}

func (r *Registry) getFullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// Files returns the converted files in load order, imports first.
func (r *Registry) Files() []*schema.File {
	files := make([]*schema.File, 0, len(r.order))
	for _, p := range r.order {
		files = append(files, r.files[p])
	}
	return files
}

// GetMessage retrieves a message definition by qualified name, falling
// back to a suffix match when the package prefix is omitted.
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	if msg, exists := r.messages[name]; exists {
		return msg, nil
	}

	for fullName, msg := range r.messages {
		if strings.HasSuffix(fullName, "."+name) {
			return msg, nil
		}
	}

	return nil, fmt.Errorf("message not found: %s", name)
}

// GetEnum retrieves an enum definition by qualified name, falling back to
// a suffix match when the package prefix is omitted.
func (r *Registry) GetEnum(name string) (*schema.Enum, error) {
	if enum, exists := r.enums[name]; exists {
		return enum, nil
	}

	for fullName, enum := range r.enums {
		if strings.HasSuffix(fullName, "."+name) {
			return enum, nil
		}
	}

	return nil, fmt.Errorf("enum not found: %s", name)
}

// IsMessage reports whether the qualified name is a registered message.
func (r *Registry) IsMessage(name string) bool {
	_, ok := r.messages[name]
	return ok
}

// ListMessages returns all registered message names, sorted.
func (r *Registry) ListMessages() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListEnums returns all registered enum names, sorted.
func (r *Registry) ListEnums() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
