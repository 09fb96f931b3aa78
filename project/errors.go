package project

import "fmt"

// NameExistsError is returned when a buffer name collides with one
// already present in the project.
type NameExistsError struct {
	Name string
}

func (e NameExistsError) Error() string {
	return fmt.Sprintf("project: buffer %q already exists", e.Name)
}

// NameMissingError is returned when an action names a buffer the project
// does not hold.
type NameMissingError struct {
	Name string
}

func (e NameMissingError) Error() string {
	return fmt.Sprintf("project: buffer %q does not exist", e.Name)
}

// UnknownActionError is returned when apply is given an Action whose Kind
// matches no known variant, e.g. a value deserialized from a newer schema
// version.
type UnknownActionError struct {
	Kind Kind
}

func (e UnknownActionError) Error() string {
	return fmt.Sprintf("project: unknown action kind %q", e.Kind)
}

// NothingToUndoError is returned by Undo when the action log is empty.
type NothingToUndoError struct{}

func (NothingToUndoError) Error() string { return "project: nothing to undo" }

// NothingToRedoError is returned by Redo when the redo stack is empty.
type NothingToRedoError struct{}

func (NothingToRedoError) Error() string { return "project: nothing to redo" }

// UndoTruncatedError is returned by Undo when the action log was cleared
// by a one-way transformation (spec.md §9's Open Question, resolved in
// DESIGN.md: truncate immediately rather than merely flag future undo) and
// the caller asks to undo past that point.
type UndoTruncatedError struct{}

func (UndoTruncatedError) Error() string {
	return "project: action log was truncated by an irreversible transformation"
}
