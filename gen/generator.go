// Package gen emits Go source for loaded .proto files: one message struct
// per declaration with fixed-capacity storage, plus the dispatch methods
// the wire codec drives. The output allocates only inside constructors.
package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"
	"sort"
	"strings"

	"github.com/staticproto/staticproto/registry"
	"github.com/staticproto/staticproto/schema"
)

// Options control naming and capacity resolution.
type Options struct {
	// PackageName overrides the output package name derived from the
	// go_package option or the proto package.
	PackageName string

	// DefaultCapacity applies to any bounded field without its own entry.
	// Zero means every bounded field needs an explicit entry.
	DefaultCapacity int

	// Capacities maps "Message.field" to a container bound and
	// "Message.field.elem" to the per-element bound of repeated
	// string/bytes fields. Message is the flattened Go name.
	Capacities map[string]int
}

// File is one generated source file.
type File struct {
	Name    string
	Content []byte
}

// Generator turns a loaded registry into generated source files.
type Generator struct {
	reg  *registry.Registry
	opts Options
}

// New creates a generator over reg.
func New(reg *registry.Registry, opts Options) *Generator {
	return &Generator{reg: reg, opts: opts}
}

// Generate resolves capacities, validates every loaded file and emits one
// Go source file per .proto file, in load order.
func (g *Generator) Generate() ([]File, error) {
	files := g.reg.Files()
	if len(files) == 0 {
		return nil, errors.New("no proto files loaded")
	}

	for _, f := range files {
		g.resolveCapacities(f)
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	if err := g.checkRecursion(files); err != nil {
		return nil, err
	}

	out := make([]File, 0, len(files))
	for _, f := range files {
		content, err := g.genFile(f)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", f.Name, err)
		}
		out = append(out, File{
			Name:    outputFileName(f.Name),
			Content: content,
		})
	}
	return out, nil
}

// resolveCapacities fills field capacities from the options. Validation
// afterwards rejects any bounded field still without a positive bound.
func (g *Generator) resolveCapacities(f *schema.File) {
	for _, m := range f.Messages {
		for _, fd := range allFields(m) {
			key := m.Name + "." + fd.Name

			needsCapacity := fd.Label == schema.LabelRepeated || fd.Kind.Bounded()
			if needsCapacity && fd.Capacity == 0 {
				if c, ok := g.opts.Capacities[key]; ok {
					fd.Capacity = c
				} else {
					fd.Capacity = g.opts.DefaultCapacity
				}
			}

			if fd.Label == schema.LabelRepeated && fd.Kind.Bounded() && fd.ElemCapacity == 0 {
				if c, ok := g.opts.Capacities[key+".elem"]; ok {
					fd.ElemCapacity = c
				} else {
					fd.ElemCapacity = g.opts.DefaultCapacity
				}
			}
		}
	}
}

// checkRecursion rejects message cycles. Every message field embeds its
// target's storage directly, so a cycle cannot be laid out.
func (g *Generator) checkRecursion(files []*schema.File) error {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[*schema.Message]int)

	var visit func(m *schema.Message, trail []string) error
	visit = func(m *schema.Message, trail []string) error {
		switch state[m] {
		case visiting:
			return fmt.Errorf("recursive message type: %s, fixed-capacity storage cannot hold a cycle",
				strings.Join(append(trail, m.Name), " -> "))
		case done:
			return nil
		}
		state[m] = visiting
		for _, fd := range allFields(m) {
			if fd.Kind != schema.KindMessage {
				continue
			}
			target, err := g.reg.GetMessage(fd.TypeName)
			if err != nil {
				return fmt.Errorf("message %s: field %s: %w", m.Name, fd.Name, err)
			}
			if err := visit(target, append(trail, m.Name)); err != nil {
				return err
			}
		}
		state[m] = done
		return nil
	}

	for _, f := range files {
		for _, m := range f.Messages {
			if err := visit(m, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// allFields returns plain fields followed by every oneof member.
func allFields(m *schema.Message) []*schema.Field {
	fields := make([]*schema.Field, 0, len(m.Fields))
	fields = append(fields, m.Fields...)
	for _, o := range m.Oneofs {
		fields = append(fields, o.Members...)
	}
	return fields
}

// packageName picks the output package: explicit option, then go_package,
// then the last proto package segment.
func (g *Generator) packageName(f *schema.File) string {
	if g.opts.PackageName != "" {
		return g.opts.PackageName
	}
	if f.GoPackage != "" {
		if i := strings.LastIndex(f.GoPackage, ";"); i >= 0 {
			return f.GoPackage[i+1:]
		}
		return path.Base(f.GoPackage)
	}
	if f.Package != "" {
		parts := strings.Split(f.Package, ".")
		return parts[len(parts)-1]
	}
	return "pb"
}

// genFile emits one formatted source file.
func (g *Generator) genFile(f *schema.File) ([]byte, error) {
	e := &fileEmitter{
		g:       g,
		imports: make(map[string]string),
	}

	for _, enum := range f.Enums {
		e.genEnum(enum)
	}
	for _, m := range f.Messages {
		if err := e.genMessage(m); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by staticproto-gen. DO NOT EDIT.\n")
	fmt.Fprintf(&out, "// source: %s\n\n", f.Name)
	fmt.Fprintf(&out, "package %s\n\n", g.packageName(f))
	e.writeImports(&out)
	out.Write(e.body.Bytes())

	src, err := format.Source(out.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not parse: %w", err)
	}
	return src, nil
}

// fileEmitter accumulates the body of one output file and the imports the
// emitted code needs.
type fileEmitter struct {
	g       *Generator
	body    bytes.Buffer
	imports map[string]string // import path -> package name
}

// p writes one line. Indentation is left to go/format.
func (e *fileEmitter) p(args ...interface{}) {
	fmt.Fprint(&e.body, args...)
	e.body.WriteByte('\n')
}

func (e *fileEmitter) need(importPath, pkg string) {
	e.imports[importPath] = pkg
}

func (e *fileEmitter) writeImports(out *bytes.Buffer) {
	if len(e.imports) == 0 {
		return
	}

	paths := make([]string, 0, len(e.imports))
	var std, mod []string
	for p := range e.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if strings.Contains(p, ".") {
			mod = append(mod, p)
		} else {
			std = append(std, p)
		}
	}

	line := func(importPath string) string {
		if pkg := e.imports[importPath]; pkg != path.Base(importPath) {
			return fmt.Sprintf("\t%s %q\n", pkg, importPath)
		}
		return fmt.Sprintf("\t%q\n", importPath)
	}

	fmt.Fprintf(out, "import (\n")
	for _, p := range std {
		out.WriteString(line(p))
	}
	if len(std) > 0 && len(mod) > 0 {
		out.WriteString("\n")
	}
	for _, p := range mod {
		out.WriteString(line(p))
	}
	fmt.Fprintf(out, ")\n\n")
}
