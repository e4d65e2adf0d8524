package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFile() *File {
	return &File{
		Name:    "sensor.proto",
		Package: "sensor",
		Syntax:  "proto3",
		Messages: []*Message{{
			Name: "Sample",
			Fields: []*Field{
				{Name: "id", Number: 1, Label: LabelSingular, Kind: KindUint64},
				{Name: "label", Number: 2, Label: LabelSingular, Kind: KindString, Capacity: 16},
				{Name: "tags", Number: 3, Label: LabelRepeated, Kind: KindString, Capacity: 4, ElemCapacity: 8},
				{Name: "status", Number: 4, Label: LabelSingular, Kind: KindEnum, TypeName: ".sensor.Status"},
			},
			Oneofs: []*Oneof{{
				Name: "origin",
				Members: []*Field{
					{Name: "port", Number: 10, Label: LabelSingular, Kind: KindUint32},
				},
			}},
		}},
		Enums: []*Enum{{
			Name: "Status",
			Values: []*EnumValue{
				{Name: "STATUS_UNKNOWN", Number: 0},
				{Name: "STATUS_OK", Number: 1},
			},
		}},
	}
}

func TestValidateAcceptsWellFormedFile(t *testing.T) {
	require.NoError(t, validFile().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "non_proto3_syntax",
			mutate:  func(f *File) { f.Syntax = "proto2" },
			wantErr: `syntax "proto2" not supported`,
		},
		{
			name:    "duplicate_field_number",
			mutate:  func(f *File) { f.Messages[0].Fields[1].Number = 1 },
			wantErr: "number 1 already used by field id",
		},
		{
			name:    "duplicate_field_name",
			mutate:  func(f *File) { f.Messages[0].Fields[1].Name = "id" },
			wantErr: "name already used",
		},
		{
			name:    "field_number_zero",
			mutate:  func(f *File) { f.Messages[0].Fields[0].Number = 0 },
			wantErr: "invalid field number 0",
		},
		{
			name:    "field_number_reserved",
			mutate:  func(f *File) { f.Messages[0].Fields[0].Number = 19000 },
			wantErr: "reserved range 19000-19999",
		},
		{
			name:    "field_number_too_large",
			mutate:  func(f *File) { f.Messages[0].Fields[0].Number = 1 << 29 },
			wantErr: "invalid field number",
		},
		{
			name:    "unknown_kind",
			mutate:  func(f *File) { f.Messages[0].Fields[0].Kind = "int17" },
			wantErr: `unknown kind "int17"`,
		},
		{
			name:    "enum_field_without_type_name",
			mutate:  func(f *File) { f.Messages[0].Fields[3].TypeName = "" },
			wantErr: "enum kind needs a type name",
		},
		{
			name:    "string_field_without_capacity",
			mutate:  func(f *File) { f.Messages[0].Fields[1].Capacity = 0 },
			wantErr: "string field needs a capacity",
		},
		{
			name:    "repeated_field_without_capacity",
			mutate:  func(f *File) { f.Messages[0].Fields[2].Capacity = 0 },
			wantErr: "repeated field needs an element-count capacity",
		},
		{
			name:    "repeated_string_without_element_capacity",
			mutate:  func(f *File) { f.Messages[0].Fields[2].ElemCapacity = 0 },
			wantErr: "repeated string needs an element capacity",
		},
		{
			name:    "empty_oneof",
			mutate:  func(f *File) { f.Messages[0].Oneofs[0].Members = nil },
			wantErr: "no members",
		},
		{
			name:    "oneof_name_collides_with_field",
			mutate:  func(f *File) { f.Messages[0].Oneofs[0].Name = "id" },
			wantErr: "name already used",
		},
		{
			name:    "repeated_oneof_member",
			mutate:  func(f *File) { f.Messages[0].Oneofs[0].Members[0].Label = LabelRepeated },
			wantErr: "oneof members cannot be repeated",
		},
		{
			name:    "oneof_member_number_collision",
			mutate:  func(f *File) { f.Messages[0].Oneofs[0].Members[0].Number = 1 },
			wantErr: "number 1 already used",
		},
		{
			name:    "empty_enum",
			mutate:  func(f *File) { f.Enums[0].Values = nil },
			wantErr: "no values",
		},
		{
			name: "enum_first_value_nonzero",
			mutate: func(f *File) {
				f.Enums[0].Values[0].Number = 5
			},
			wantErr: "must be 0, got 5",
		},
		{
			name: "enum_alias_numbers",
			mutate: func(f *File) {
				f.Enums[0].Values[1].Number = 0
			},
			wantErr: "number 0 already used",
		},
		{
			name: "enum_duplicate_names",
			mutate: func(f *File) {
				f.Enums[0].Values[1].Name = "STATUS_UNKNOWN"
			},
			wantErr: "name already used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(f)

			err := f.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
