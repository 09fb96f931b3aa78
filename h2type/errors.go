package h2type

import "fmt"

// MisalignedError is returned when a Strict-aligned type's absolute start
// is not a multiple of its required modulus.
type MisalignedError struct {
	Offset  int64
	Modulus int64
}

func (e MisalignedError) Error() string {
	return fmt.Sprintf("h2type: offset %d is not aligned to %d", e.Offset, e.Modulus)
}

// FieldError wraps a child field's resolution failure with the field's
// name, the same way validate.Error carries the offset/function of a
// failing opcode.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("h2type: field %q: %v", e.Field, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// IndexError wraps an array element's resolution failure with its index.
type IndexError struct {
	Index int64
	Err   error
}

func (e IndexError) Error() string {
	return fmt.Sprintf("h2type: index %d: %v", e.Index, e.Err)
}

func (e IndexError) Unwrap() error { return e.Err }

// UnterminatedError is returned when an NTString's terminator is not found
// within the scanned bounds.
type UnterminatedError struct {
	Pos int64
}

func (e UnterminatedError) Error() string {
	return fmt.Sprintf("h2type: no terminator found scanning from %d", e.Pos)
}

// LookupUnknownError describes an Enum or Bitmask value with no registered
// symbolic name. ToDisplay does not return it: it renders a numeric
// fallback instead, and the datareg lookups report an unknown value with
// no names and a nil error.
type LookupUnknownError struct {
	Namespace string
	Name      string
	Value     int64
}

func (e LookupUnknownError) Error() string {
	return fmt.Sprintf("h2type: value %d has no name in %s/%s", e.Value, e.Namespace, e.Name)
}
