// Package transform implements chainable, reversible byte-to-byte
// encodings applied to a Buffer: hex, base32, base64, xor, bit-reversal
// and compression stages.
package transform

import "fmt"

// Transformation is one reversible (or, for compression formats with no
// inverse guarantee, one-way) encoding stage.
type Transformation interface {
	// Name identifies the variant, e.g. "hex", "deflate".
	Name() string
	// CanTransform is a heuristic test of whether bytes looks like valid
	// input for Transform.
	CanTransform(bytes []byte) bool
	// Transform applies the stage to bytes, returning the transformed
	// output. For the built-in text codecs and compressors this decodes or
	// decompresses (e.g. hex text to raw bytes).
	Transform(bytes []byte) ([]byte, error)
	// Untransform reverses Transform, turning its output back into the
	// original. It returns NotReversibleError if IsTwoWay is false.
	Untransform(bytes []byte) ([]byte, error)
	// IsTwoWay reports whether Untransform can recover the original input.
	IsTwoWay() bool
}

// NotReversibleError is returned by Untransform on a one-way
// Transformation.
type NotReversibleError struct {
	Name string
}

func (e NotReversibleError) Error() string {
	return fmt.Sprintf("transform: %s is not reversible", e.Name)
}

// DecodeFailureError wraps a lower-level decode error with the variant that
// produced it.
type DecodeFailureError struct {
	Name string
	Err  error
}

func (e DecodeFailureError) Error() string {
	return fmt.Sprintf("transform: %s decode failed: %v", e.Name, e.Err)
}

func (e DecodeFailureError) Unwrap() error {
	return e.Err
}

// MismatchError describes Untransform input that does not look like this
// variant's own Transform output. None of the built-in variants return it.
type MismatchError struct {
	Name   string
	Reason string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("transform: %s untransform mismatch: %s", e.Name, e.Reason)
}
