package buffer

import "github.com/h2gb/h2core/h2type"

// CreatorKind tags who or what produced an Entry.
type CreatorKind int

const (
	CreatorUser CreatorKind = iota
	CreatorSimpleType
	CreatorComplexType
	CreatorCombinator
)

func (k CreatorKind) String() string {
	switch k {
	case CreatorUser:
		return "user"
	case CreatorSimpleType:
		return "simple_type"
	case CreatorComplexType:
		return "complex_type"
	case CreatorCombinator:
		return "combinator"
	default:
		return "unknown"
	}
}

// XRef names one address, in one buffer, that references another address.
type XRef struct {
	Buffer string
	Addr   uint64
}

// Entry is a contiguous annotated range within a Layer. Its Range lives in
// the owning multivector.MultiVector's bumpy.Entry, not here. Recreator,
// when non-nil, lets Buffer.EditBytes re-derive Display (and, if the size
// still fits, the range) after the underlying bytes change.
type Entry struct {
	Creator    CreatorKind
	Display    string
	References []XRef
	Recreator  h2type.H2Type
}
