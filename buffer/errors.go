package buffer

import (
	"fmt"

	"github.com/h2gb/h2core/bumpy"
)

// OutOfBoundsError is returned when a range falls outside a buffer's byte
// length.
type OutOfBoundsError struct {
	Range bumpy.Range
	Len   int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("buffer: range %s out of bounds for length %d", e.Range, e.Len)
}

// NameCountMismatchError is returned when Split is given a names slice not
// exactly one longer than its cuts slice.
type NameCountMismatchError struct {
	Cuts  int
	Names int
}

func (e NameCountMismatchError) Error() string {
	return fmt.Sprintf("buffer: split needs %d names for %d cuts, got %d", e.Cuts+1, e.Cuts, e.Names)
}

// InvalidCutsError is returned when Split's cut points are not strictly
// ascending within the buffer's bounds.
type InvalidCutsError struct {
	Cuts []uint64
}

func (e InvalidCutsError) Error() string {
	return fmt.Sprintf("buffer: invalid cut points %v", e.Cuts)
}

// HasAnnotationsError is returned by Transform when the buffer already has
// layer entries, since transforming would invalidate their ranges.
type HasAnnotationsError struct {
	Buffer string
}

func (e HasAnnotationsError) Error() string {
	return fmt.Sprintf("buffer: %q has annotations, cannot transform", e.Buffer)
}

// TransformationNotReversibleError is returned when Untransform is
// attempted on a one-way transformation, or Transform is attempted after
// one has already been applied.
type TransformationNotReversibleError struct {
	Buffer string
}

func (e TransformationNotReversibleError) Error() string {
	return fmt.Sprintf("buffer: %q has a non-reversible transformation applied", e.Buffer)
}

// NothingToUndoError is returned by Untransform when no transformation has
// been applied.
type NothingToUndoError struct {
	Buffer string
}

func (e NothingToUndoError) Error() string {
	return fmt.Sprintf("buffer: %q has no transformation to undo", e.Buffer)
}

// BufferNotEditableError is returned by EditBytes on a buffer whose
// IsEditable flag is false (e.g. because a one-way transformation was
// applied).
type BufferNotEditableError struct {
	Buffer string
}

func (e BufferNotEditableError) Error() string {
	return fmt.Sprintf("buffer: %q is not editable", e.Buffer)
}

// LengthMismatchError is returned by EditBytes when the replacement bytes
// are not the same length as the range being replaced.
type LengthMismatchError struct {
	Want uint64
	Got  uint64
}

func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("buffer: edit length mismatch: want %d bytes, got %d", e.Want, e.Got)
}
