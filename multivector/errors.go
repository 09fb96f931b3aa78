package multivector

import "fmt"

// NameExistsError is returned when CreateVector is called with a name
// already in use.
type NameExistsError struct {
	Name string
}

func (e NameExistsError) Error() string {
	return fmt.Sprintf("multivector: vector %q already exists", e.Name)
}

// NameMissingError is returned when an operation references a vector name
// that has not been created.
type NameMissingError struct {
	Name string
}

func (e NameMissingError) Error() string {
	return fmt.Sprintf("multivector: no such vector %q", e.Name)
}

// NotEmptyError is returned when DestroyVector is called on a vector that
// still holds entries.
type NotEmptyError struct {
	Name string
}

func (e NotEmptyError) Error() string {
	return fmt.Sprintf("multivector: vector %q is not empty", e.Name)
}

// BatchError wraps the first failure encountered while validating a batch
// insertion, recording which item in the batch failed.
type BatchError struct {
	Index int
	Err   error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("multivector: batch item %d: %v", e.Index, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}
