package h2type

import "strings"

// StructField names one member of a Struct: its name and type. Its
// position is computed by walking the struct in order, each field
// starting where the previous one's aligned size ended.
type StructField struct {
	Name string
	Type H2Type
}

// Struct is an ordered sequence of named fields, each resolved in turn
// starting at the struct's own offset.
type Struct struct {
	Fields []StructField
	align  Alignment
}

// NewStruct returns a Struct over fields, aligned per align.
func NewStruct(fields []StructField, align Alignment) Struct {
	return Struct{Fields: fields, align: align}
}

func (s Struct) Alignment() Alignment { return s.align }

// walk positions each field in turn and calls visit with its offset and
// already-computed aligned size, advancing the cursor by that size
// afterward so every caller (BaseSize, Children, ToDisplay) pays for
// AlignedSize exactly once per field.
func (s Struct) walk(off Offset, visit func(f StructField, fieldOff Offset, size int64) error) error {
	cursor := off
	for _, f := range s.Fields {
		sz, err := f.Type.AlignedSize(cursor)
		if err != nil {
			return FieldError{Field: f.Name, Err: err}
		}
		if err := visit(f, cursor, sz); err != nil {
			return FieldError{Field: f.Name, Err: err}
		}
		cursor = cursor.Advance(sz)
	}
	return nil
}

func (s Struct) BaseSize(off Offset) (int64, error) {
	var total int64
	err := s.walk(off, func(f StructField, fieldOff Offset, size int64) error {
		total += size
		return nil
	})
	return total, err
}

func (s Struct) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(s, off)
}

func (s Struct) Children(off Offset) ([]Field, error) {
	fields := make([]Field, 0, len(s.Fields))
	err := s.walk(off, func(f StructField, fieldOff Offset, size int64) error {
		fields = append(fields, Field{Name: f.Name, Type: f.Type, Offset: fieldOff})
		return nil
	})
	return fields, err
}

func (s Struct) ToDisplay(off Offset) (string, error) {
	var parts []string
	err := s.walk(off, func(f StructField, fieldOff Offset, size int64) error {
		d, err := f.Type.ToDisplay(fieldOff)
		if err != nil {
			return err
		}
		parts = append(parts, f.Name+": "+d)
		return nil
	})
	if err != nil {
		return "", err
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}

func (s Struct) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(s, off)
}
