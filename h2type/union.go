package h2type

import "strings"

// UnionVariant names one of a Union's parallel interpretations.
type UnionVariant struct {
	Name string
	Type H2Type
}

// Union holds several parallel interpretations of the same bytes; size is
// the maximum of its variants' sizes. Retained per spec.md §9's Open
// Question (the source notes intent to remove it, but do not instruct it);
// discouraged for new use the same way spec.md itself flags it.
type Union struct {
	Variants []UnionVariant
	align    Alignment
}

// NewUnion returns a Union over variants, aligned per align.
func NewUnion(variants []UnionVariant, align Alignment) Union {
	return Union{Variants: variants, align: align}
}

func (u Union) Alignment() Alignment { return u.align }

func (u Union) BaseSize(off Offset) (int64, error) {
	var max int64
	for _, v := range u.Variants {
		sz, err := v.Type.BaseSize(off)
		if err != nil {
			return 0, FieldError{Field: v.Name, Err: err}
		}
		if sz > max {
			max = sz
		}
	}
	return max, nil
}

func (u Union) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(u, off)
}

func (u Union) Children(off Offset) ([]Field, error) {
	fields := make([]Field, 0, len(u.Variants))
	for _, v := range u.Variants {
		fields = append(fields, Field{Name: v.Name, Type: v.Type, Offset: off})
	}
	return fields, nil
}

func (u Union) ToDisplay(off Offset) (string, error) {
	parts := make([]string, 0, len(u.Variants))
	for _, v := range u.Variants {
		d, err := v.Type.ToDisplay(off)
		if err != nil {
			return "", FieldError{Field: v.Name, Err: err}
		}
		parts = append(parts, v.Name+"="+d)
	}
	return "<" + strings.Join(parts, " | ") + ">", nil
}

func (u Union) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(u, off)
}
