package schema

import (
	"fmt"

	"github.com/staticproto/staticproto/wire"
)

// Validate checks a file against the rules the generator relies on. It
// runs after capacity resolution, so unresolved bounds are errors here.
func (f *File) Validate() error {
	if f.Syntax != "proto3" {
		return fmt.Errorf("file %s: syntax %q not supported, only proto3", f.Name, f.Syntax)
	}

	for _, e := range f.Enums {
		if err := e.validate(); err != nil {
			return fmt.Errorf("file %s: enum %s: %w", f.Name, e.Name, err)
		}
	}
	for _, m := range f.Messages {
		if err := m.validate(); err != nil {
			return fmt.Errorf("file %s: message %s: %w", f.Name, m.Name, err)
		}
	}
	return nil
}

func (m *Message) validate() error {
	numbers := make(map[int32]string)
	names := make(map[string]struct{})

	check := func(fd *Field) error {
		if err := fd.validate(); err != nil {
			return err
		}
		if prev, ok := numbers[fd.Number]; ok {
			return fmt.Errorf("field %s: number %d already used by field %s", fd.Name, fd.Number, prev)
		}
		numbers[fd.Number] = fd.Name
		if _, ok := names[fd.Name]; ok {
			return fmt.Errorf("field %s: name already used", fd.Name)
		}
		names[fd.Name] = struct{}{}
		return nil
	}

	for _, fd := range m.Fields {
		if err := check(fd); err != nil {
			return err
		}
	}
	for _, o := range m.Oneofs {
		if len(o.Members) == 0 {
			return fmt.Errorf("oneof %s: no members", o.Name)
		}
		if _, ok := names[o.Name]; ok {
			return fmt.Errorf("oneof %s: name already used", o.Name)
		}
		names[o.Name] = struct{}{}
		for _, fd := range o.Members {
			if fd.Label != LabelSingular {
				return fmt.Errorf("oneof %s: member %s: oneof members cannot be %s", o.Name, fd.Name, fd.Label)
			}
			if err := check(fd); err != nil {
				return fmt.Errorf("oneof %s: %w", o.Name, err)
			}
		}
	}
	return nil
}

func (fd *Field) validate() error {
	number := wire.FieldNumber(fd.Number)
	if !number.Valid() {
		return fmt.Errorf("field %s: invalid field number %d", fd.Name, fd.Number)
	}
	if number.Reserved() {
		return fmt.Errorf("field %s: field number %d is in the reserved range %d-%d",
			fd.Name, fd.Number, wire.FirstReservedNumber, wire.LastReservedNumber)
	}

	if !fd.Kind.Known() {
		return fmt.Errorf("field %s: unknown kind %q", fd.Name, fd.Kind)
	}
	if (fd.Kind == KindMessage || fd.Kind == KindEnum) && fd.TypeName == "" {
		return fmt.Errorf("field %s: %s kind needs a type name", fd.Name, fd.Kind)
	}

	if fd.Label == LabelRepeated {
		if fd.Capacity <= 0 {
			return fmt.Errorf("field %s: repeated field needs an element-count capacity", fd.Name)
		}
		if fd.Kind.Bounded() && fd.ElemCapacity <= 0 {
			return fmt.Errorf("field %s: repeated %s needs an element capacity", fd.Name, fd.Kind)
		}
	} else if fd.Kind.Bounded() && fd.Capacity <= 0 {
		return fmt.Errorf("field %s: %s field needs a capacity", fd.Name, fd.Kind)
	}

	return nil
}

func (e *Enum) validate() error {
	if len(e.Values) == 0 {
		return fmt.Errorf("no values")
	}
	if e.Values[0].Number != 0 {
		return fmt.Errorf("first value %s must be 0, got %d", e.Values[0].Name, e.Values[0].Number)
	}

	numbers := make(map[int32]string)
	names := make(map[string]struct{})
	for _, v := range e.Values {
		if prev, ok := numbers[v.Number]; ok {
			return fmt.Errorf("value %s: number %d already used by %s", v.Name, v.Number, prev)
		}
		numbers[v.Number] = v.Name
		if _, ok := names[v.Name]; ok {
			return fmt.Errorf("value %s: name already used", v.Name)
		}
		names[v.Name] = struct{}{}
	}
	return nil
}
