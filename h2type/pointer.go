package h2type

import (
	"fmt"

	"github.com/h2gb/h2core/bytecontext"
)

// Resolver locates the ByteContext a Pointer's pointee should be resolved
// against: the named target buffer plus the decoded address. It is a host
// concern (the type model never owns buffers itself), supplied by whatever
// wires H2Type against a buffer.Buffer.
type Resolver func(targetBuffer string, addr uint64) (bytecontext.ByteContext, error)

// Pointer reads an address of a configured width. If both Pointee and
// Deref are set, its single child is the pointee type resolved at that
// address within TargetBuffer.
type Pointer struct {
	Reader       bytecontext.Reader
	TargetBuffer string
	Pointee      H2Type
	Deref        Resolver
	align        Alignment
}

// NewPointer returns a Pointer reading with reader. Pointee/TargetBuffer/
// resolve may be left zero if the pointee is never dereferenced (e.g. a
// raw address display only).
func NewPointer(reader bytecontext.Reader, targetBuffer string, pointee H2Type, resolve Resolver, align Alignment) Pointer {
	return Pointer{Reader: reader, TargetBuffer: targetBuffer, Pointee: pointee, Deref: resolve, align: align}
}

func (p Pointer) Alignment() Alignment { return p.align }

func (p Pointer) BaseSize(off Offset) (int64, error) {
	return int64(p.Reader.Size()), nil
}

func (p Pointer) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(p, off)
}

func (p Pointer) address(off Offset) (uint64, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return 0, err
	}
	v, err := p.Reader.Read(ctx)
	if err != nil {
		return 0, err
	}
	return v.AsUint64(), nil
}

func (p Pointer) Children(off Offset) ([]Field, error) {
	if p.Pointee == nil || p.Deref == nil {
		return nil, nil
	}
	addr, err := p.address(off)
	if err != nil {
		return nil, err
	}
	target, err := p.Deref(p.TargetBuffer, addr)
	if err != nil {
		return nil, err
	}
	return []Field{{Name: "*", Type: p.Pointee, Offset: Dynamic(target)}}, nil
}

func (p Pointer) ToDisplay(off Offset) (string, error) {
	addr, err := p.address(off)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("*0x%x", addr), nil
}

func (p Pointer) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(p, off)
}
