// Package project implements Project, the aggregate root of spec.md §4.8:
// it owns every Buffer, the shared Data registry, and a log of applied
// Actions paired with their inverses so any mutation can be undone and
// redone.
//
// Grounded on exec/vm.go, the teacher's own central stateful engine that
// owns a call stack and applies one opcode at a time, each changing state
// in a well-defined way. The action log and undo/redo have no analog in
// the teacher's VM (it never undoes an executed instruction); that part
// is grounded directly on spec.md §4.8 and §8 property 6, styled after the
// teacher's Error-wrapping-with-context idiom (validate.Error's
// {Offset, Function, Err} shape) for the Undo/Redo error taxonomy.
package project

import (
	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/buffer"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/transform"
)

// Kind discriminates the tagged variants of Action.
type Kind string

const (
	KindCreateBuffer  Kind = "create_buffer"
	KindDeleteBuffer  Kind = "delete_buffer"
	KindCloneBuffer   Kind = "clone_buffer"
	KindExtractBuffer Kind = "extract_buffer"
	KindAddLayer      Kind = "add_layer"
	KindRemoveLayer   Kind = "remove_layer"
	KindCreateEntry   Kind = "create_entry"
	KindUndefineRange Kind = "undefine_range"
	KindRestoreEntries Kind = "restore_entries"
	KindTransform     Kind = "transform"
	KindUntransform   Kind = "untransform"
	KindEditBytes     Kind = "edit_bytes"
	KindAddXref       Kind = "add_xref"
	KindRemoveXref    Kind = "remove_xref"
)

// CapturedEntry is a removed buffer.Entry plus the range it occupied,
// captured so an inverse Action can reinsert it exactly as it was.
type CapturedEntry struct {
	Range bumpy.Range
	Value buffer.Entry
}

// Action is the tagged variant of every mutating operation spec.md §4.8
// describes, plus the fields needed to apply whichever variant Kind
// selects. Only the fields relevant to Kind are populated; the rest stay
// zero, the same sum-of-variants-with-shared-fields shape h2type.Offset
// and h2type.H2Type's concrete structs use throughout this module.
type Action struct {
	Kind Kind

	// Buffer identity. Buffer is the buffer the action targets (the
	// parent for Extract, the target for Xref operations). NewName is the
	// name a Clone/Extract gives its new buffer.
	Buffer  string
	NewName string

	// Byte payloads. Bytes is the buffer's initial content for
	// CreateBuffer, or the replacement bytes for EditBytes. BaseAddress is
	// CreateBuffer's base address. Range bounds Extract/EditBytes/
	// UndefineRange.
	Bytes       []byte
	BaseAddress uint64
	Range       bumpy.Range

	// Layer/entry fields.
	Layer           string
	Offset          uint64
	Endian          bytecontext.Endian
	Type            h2type.H2Type
	CapturedEntries []CapturedEntry

	// Transformation fields.
	Transform transform.Transformation

	// Cross-reference fields. Buffer is the xref's target (the buffer
	// AddXref/RemoveXref is invoked on); FromBuffer/FromAddr identify the
	// referencing side.
	FromBuffer string
	FromAddr   uint64
}

// LogEntry pairs an applied Action with the inverse Action that undoes it,
// the unit both the action log and the redo stack are built from.
type LogEntry struct {
	Action  Action
	Inverse Action
}
