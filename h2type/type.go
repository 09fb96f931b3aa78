// Package h2type implements the declarative type model used to interpret
// bytes as typed values: size, display, and child-field resolution for
// simple numerics and composite arrays/structs/enums/strings, driven by an
// Offset that may or may not carry live byte data.
//
// Grounded on wasm/types.go's ValueType/BlockType/FunctionSig (a tagged
// type with a String() method describing how to render it) and
// validate/validate.go's recursive per-opcode dispatch with path-carrying
// errors, generalized from "four fixed WASM value types" to an open set of
// variants sharing one operation bundle.
package h2type

import (
	"fmt"

	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/internal/logx"
)

var logger = logx.New("h2type")

// AlignmentKind selects how an H2Type's trailing padding (and, for Strict,
// its required starting position) is computed.
type AlignmentKind int

const (
	AlignNone AlignmentKind = iota
	AlignLoose
	AlignStrict
)

// Alignment configures how an element's aligned size is derived from its
// base size. Loose(k) rounds the base size itself up to the next multiple
// of k. Strict(k) does the same but additionally requires the element's
// absolute start offset to already be a multiple of k, failing resolution
// with MisalignedError otherwise.
type Alignment struct {
	Kind    AlignmentKind
	Modulus int64
}

// None is the zero-value Alignment: no padding, no start constraint.
func None() Alignment { return Alignment{Kind: AlignNone} }

// Loose rounds an element's base size up to the next multiple of k.
func Loose(k int64) Alignment { return Alignment{Kind: AlignLoose, Modulus: k} }

// Strict rounds an element's base size up to the next multiple of k and
// requires its absolute start to already be a multiple of k.
func Strict(k int64) Alignment { return Alignment{Kind: AlignStrict, Modulus: k} }

func roundUp(size, modulus int64) int64 {
	if modulus <= 0 || size%modulus == 0 {
		return size
	}
	return size + (modulus - size%modulus)
}

// Offset is a tagged position: Static carries only a numeric address,
// Dynamic also carries a ByteContext positioned there. Only Dynamic
// offsets can drive data-dependent computations (variable-length strings,
// lookup-formatted enums); Static offsets are accepted wherever the
// concrete type's size does not require reading bytes.
type Offset struct {
	dynamic bool
	pos     int64
	ctx     bytecontext.ByteContext
}

// Static returns an Offset carrying only a numeric address.
func Static(pos int64) Offset {
	return Offset{pos: pos}
}

// Dynamic returns an Offset positioned at ctx's current position, carrying
// ctx itself for data-dependent reads.
func Dynamic(ctx bytecontext.ByteContext) Offset {
	return Offset{dynamic: true, pos: int64(ctx.Pos()), ctx: ctx}
}

// IsDynamic reports whether o carries a ByteContext.
func (o Offset) IsDynamic() bool { return o.dynamic }

// Pos returns o's absolute address.
func (o Offset) Pos() int64 { return o.pos }

// Context returns o's ByteContext and true, or the zero ByteContext and
// false if o is Static.
func (o Offset) Context() (bytecontext.ByteContext, bool) {
	if !o.dynamic {
		return bytecontext.ByteContext{}, false
	}
	return o.ctx, true
}

// RequireDynamicError is returned when an operation that needs byte access
// (a variable-length read, a lookup-formatted display) is given a Static
// Offset.
type RequireDynamicError struct{}

func (RequireDynamicError) Error() string {
	return "h2type: operation requires a dynamic offset with byte access"
}

func (o Offset) requireContext() (bytecontext.ByteContext, error) {
	ctx, ok := o.Context()
	if !ok {
		return bytecontext.ByteContext{}, RequireDynamicError{}
	}
	return ctx, nil
}

// At returns a copy of o repositioned to pos, preserving whether it is
// Static or Dynamic.
func (o Offset) At(pos int64) Offset {
	if o.dynamic {
		return Dynamic(o.ctx.At(int(pos)))
	}
	return Static(pos)
}

// Advance returns a copy of o moved forward by delta bytes.
func (o Offset) Advance(delta int64) Offset {
	return o.At(o.pos + delta)
}

// Field names one child of a composite H2Type: its field name, its type,
// and the Offset at which that type starts.
type Field struct {
	Name   string
	Type   H2Type
	Offset Offset
}

// H2Type is the common operation bundle every type variant implements:
// size (excluding and including alignment padding), child fields, a
// rendered display, and full recursive resolution.
type H2Type interface {
	Alignment() Alignment
	BaseSize(off Offset) (int64, error)
	AlignedSize(off Offset) (int64, error)
	Children(off Offset) ([]Field, error)
	ToDisplay(off Offset) (string, error)
	Resolve(off Offset) (ResolvedType, error)
}

// ResolvedType is a value-typed snapshot of an H2Type bound to a concrete
// offset: its absolute range, rendered display, and resolved children. It
// holds no reference back into the type or the bytes it was read from, so
// it is safe to cache, persist, or hand to a host for re-display after the
// source bytes have changed.
type ResolvedType struct {
	Name     string
	Range    bumpy.Range
	Display  string
	Children []ResolvedType
}

// AlignedSizeOf computes t's aligned size at off by calling t.BaseSize and
// applying t.Alignment()'s rounding and (for Strict) start-offset check.
// Every concrete variant's AlignedSize method is a one-line call to this.
func AlignedSizeOf(t H2Type, off Offset) (int64, error) {
	align := t.Alignment()
	if align.Kind == AlignStrict && align.Modulus > 0 && off.Pos()%align.Modulus != 0 {
		return 0, MisalignedError{Offset: off.Pos(), Modulus: align.Modulus}
	}
	base, err := t.BaseSize(off)
	if err != nil {
		return 0, err
	}
	if align.Kind == AlignNone {
		return base, nil
	}
	return roundUp(base, align.Modulus), nil
}

// ResolveOf performs the generic recursive resolution every concrete
// variant's Resolve method delegates to: it reads AlignedSize for the
// range, ToDisplay for the rendered value, and recursively resolves
// Children, wrapping any child failure with the field's name.
func ResolveOf(t H2Type, off Offset) (ResolvedType, error) {
	aligned, err := t.AlignedSize(off)
	if err != nil {
		return ResolvedType{}, err
	}
	display, err := t.ToDisplay(off)
	if err != nil {
		return ResolvedType{}, err
	}
	fields, err := t.Children(off)
	if err != nil {
		return ResolvedType{}, err
	}
	children := make([]ResolvedType, 0, len(fields))
	for _, f := range fields {
		child, err := f.Type.Resolve(f.Offset)
		if err != nil {
			return ResolvedType{}, FieldError{Field: f.Name, Err: err}
		}
		child.Name = f.Name
		children = append(children, child)
	}
	start := off.Pos()
	return ResolvedType{
		Range:    bumpy.Range{Start: uint64(start), End: uint64(start + aligned)},
		Display:  display,
		Children: children,
	}, nil
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
