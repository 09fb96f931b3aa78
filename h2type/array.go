package h2type

import (
	"fmt"
	"strings"
)

// CountFunc resolves an Array's element count at a given offset. A fixed
// count ignores off entirely; a late-bound count (spec.md §4.5: "count may
// be a constant or a late-bound reference") closes over a previously
// resolved value, e.g. a sibling struct field's decoded length.
type CountFunc func(off Offset) (int64, error)

// FixedCount returns a CountFunc that always yields n, regardless of off.
func FixedCount(n int64) CountFunc {
	return func(Offset) (int64, error) { return n, nil }
}

// Array is Count consecutive Element values. Count may itself require a
// Dynamic offset (a late-bound reference does); Element may be
// variable-length, in which case Array's own size is data-dependent too.
type Array struct {
	Count   CountFunc
	Element H2Type
	align   Alignment
}

// NewArray returns an Array of count Elements, using a constant count.
func NewArray(count int64, element H2Type, align Alignment) Array {
	return Array{Count: FixedCount(count), Element: element, align: align}
}

// NewArrayWithCount returns an Array whose element count is resolved by
// count at the array's own offset.
func NewArrayWithCount(count CountFunc, element H2Type, align Alignment) Array {
	return Array{Count: count, Element: element, align: align}
}

func (a Array) Alignment() Alignment { return a.align }

// walk resolves the element count, then positions each element in turn,
// calling visit with its index, offset, and already-computed aligned
// size, advancing the cursor afterward so AlignedSize is paid for once
// per element regardless of which caller (BaseSize, Children, ToDisplay)
// is walking.
func (a Array) walk(off Offset, visit func(i int64, elemOff Offset, size int64) error) error {
	n, err := a.Count(off)
	if err != nil {
		return err
	}
	cursor := off
	for i := int64(0); i < n; i++ {
		sz, err := a.Element.AlignedSize(cursor)
		if err != nil {
			return IndexError{Index: i, Err: err}
		}
		if err := visit(i, cursor, sz); err != nil {
			return IndexError{Index: i, Err: err}
		}
		cursor = cursor.Advance(sz)
	}
	return nil
}

func (a Array) BaseSize(off Offset) (int64, error) {
	var total int64
	err := a.walk(off, func(i int64, elemOff Offset, size int64) error {
		total += size
		return nil
	})
	return total, err
}

func (a Array) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(a, off)
}

func (a Array) Children(off Offset) ([]Field, error) {
	n, err := a.Count(off)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, 0, n)
	err = a.walk(off, func(i int64, elemOff Offset, size int64) error {
		fields = append(fields, Field{Name: fmt.Sprintf("[%d]", i), Type: a.Element, Offset: elemOff})
		return nil
	})
	return fields, err
}

func (a Array) ToDisplay(off Offset) (string, error) {
	var parts []string
	err := a.walk(off, func(i int64, elemOff Offset, size int64) error {
		d, err := a.Element.ToDisplay(elemOff)
		if err != nil {
			return err
		}
		parts = append(parts, d)
		return nil
	})
	if err != nil {
		return "", err
	}
	return "[ " + strings.Join(parts, ", ") + " ]", nil
}

func (a Array) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(a, off)
}
