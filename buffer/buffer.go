// Package buffer implements Buffer, Layer and Entry (spec.md §4.7): a
// byte-owning unit that can be cloned, extracted and split from siblings,
// transformed through reversible encodings, and annotated with one or
// more named Layers of Entry values backed by a multivector.MultiVector.
//
// Grounded on wasm.Module (owns sections, conceptually layers over one
// byte stream) and wasm/section.go's Section{Start, End, ID, Name, Bytes}
// shape, which is almost exactly spec.md's Entry{range, ...} one level up.
package buffer

import (
	"github.com/google/uuid"

	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/internal/logx"
	"github.com/h2gb/h2core/multivector"
	"github.com/h2gb/h2core/transform"
)

var logger = logx.New("buffer")

// ParentLink names the buffer a child was extracted or split from, and the
// offset within that parent where the child's bytes began. Resolution of
// the parent is always by name through a Project, never a direct handle
// (spec.md §9: no cyclic references in the data model).
type ParentLink struct {
	Buffer string
	Offset uint64
}

// AppliedTransform records one transformation a Buffer's bytes have passed
// through, in application order, so Buffer.Untransform can recover the
// pre-transform bytes when every stage is two-way.
type AppliedTransform struct {
	Variant transform.Transformation
}

// Buffer is a byte-owning container with a name, optional parent/child
// linkage, an ordered list of applied transformations, and layers of
// annotation Entries.
type Buffer struct {
	ID              string
	Name            string
	BaseAddress     uint64
	Bytes           []byte
	IsEditable      bool
	Transformations []AppliedTransform
	Parent          *ParentLink
	Children        map[string]struct{}
	Refs            map[string]string
	Layers          *multivector.MultiVector[Entry]
	ShowUndefined   map[string]bool
	Inbound         []XRef
}

// New returns a Buffer owning a copy of bytes, with no layers, no
// transformations, and IsEditable true. spec.md §9's Open Question on
// default-layer auto-creation is resolved as "no": Layers starts empty,
// matching the literal wasm.Module{} zero-value construction pattern
// where nothing is presupposed until something is inserted.
func New(name string, bytes []byte, baseAddress uint64) *Buffer {
	owned := make([]byte, len(bytes))
	copy(owned, bytes)
	return &Buffer{
		ID:            uuid.NewString(),
		Name:          name,
		BaseAddress:   baseAddress,
		Bytes:         owned,
		IsEditable:    true,
		Children:      make(map[string]struct{}),
		Refs:          make(map[string]string),
		Layers:        multivector.New[Entry](),
		ShowUndefined: make(map[string]bool),
	}
}

// CloneAs returns a new Buffer with the same bytes under newName. Clone
// copies bytes only; annotations (layers, entries) do not transfer
// (spec.md §3 Lifecycles).
func (b *Buffer) CloneAs(newName string) *Buffer {
	clone := New(newName, b.Bytes, b.BaseAddress)
	clone.IsEditable = b.IsEditable
	return clone
}

// Extract returns a new Buffer over the sub-range r of b's bytes, recorded
// as a child of b so a later Export can reassemble it.
func (b *Buffer) Extract(r bumpy.Range, newName string) (*Buffer, error) {
	if r.Start >= r.End || r.End > uint64(len(b.Bytes)) {
		return nil, OutOfBoundsError{Range: r, Len: len(b.Bytes)}
	}
	child := New(newName, b.Bytes[r.Start:r.End], b.BaseAddress+r.Start)
	child.Parent = &ParentLink{Buffer: b.Name, Offset: r.Start}
	b.Children[newName] = struct{}{}
	logger.Printf("extracted %q [%d,%d) from %q", newName, r.Start, r.End, b.Name)
	return child, nil
}

// Split cuts b's bytes at each address in cuts, producing len(cuts)+1
// child buffers named by newNames, each recorded as a child of b.
func (b *Buffer) Split(cuts []uint64, newNames []string) ([]*Buffer, error) {
	if len(newNames) != len(cuts)+1 {
		return nil, NameCountMismatchError{Cuts: len(cuts), Names: len(newNames)}
	}
	bounds := append([]uint64{0}, cuts...)
	bounds = append(bounds, uint64(len(b.Bytes)))
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return nil, InvalidCutsError{Cuts: cuts}
		}
	}
	children := make([]*Buffer, 0, len(newNames))
	for i, name := range newNames {
		r := bumpy.Range{Start: bounds[i], End: bounds[i+1]}
		child, err := b.Extract(r, name)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// allTwoWay reports whether every transformation already applied to b is
// two-way, the precondition Transform requires before appending another
// (spec.md §4.4, §4.7).
func (b *Buffer) allTwoWay() bool {
	for _, t := range b.Transformations {
		if !t.Variant.IsTwoWay() {
			return false
		}
	}
	return true
}

// Transform applies variant to b's bytes, requiring that b carries no
// annotations yet and that every previously applied transformation was
// two-way. Mutates b.Bytes in place and appends to Transformations. If
// variant is one-way, b.IsEditable becomes false.
func (b *Buffer) Transform(variant transform.Transformation) error {
	if b.Layers.Len() > 0 {
		return HasAnnotationsError{Buffer: b.Name}
	}
	if !b.allTwoWay() {
		return TransformationNotReversibleError{Buffer: b.Name}
	}
	out, err := variant.Transform(b.Bytes)
	if err != nil {
		return err
	}
	b.Bytes = out
	b.Transformations = append(b.Transformations, AppliedTransform{Variant: variant})
	if !variant.IsTwoWay() {
		b.IsEditable = false
	}
	logger.Printf("applied transform %s to %q", variant.Name(), b.Name)
	return nil
}

// Untransform reverses the most recently applied transformation, which
// must be two-way. On success it pops that record from Transformations.
func (b *Buffer) Untransform() error {
	if len(b.Transformations) == 0 {
		return NothingToUndoError{Buffer: b.Name}
	}
	last := b.Transformations[len(b.Transformations)-1]
	if !last.Variant.IsTwoWay() {
		return TransformationNotReversibleError{Buffer: b.Name}
	}
	out, err := last.Variant.Untransform(b.Bytes)
	if err != nil {
		return err
	}
	b.Bytes = out
	b.Transformations = b.Transformations[:len(b.Transformations)-1]
	if b.allTwoWay() {
		b.IsEditable = true
	}
	return nil
}

// Export returns b's bytes with every editable child buffer's current
// bytes merged back into the position their ParentLink recorded.
func (b *Buffer) Export(children map[string]*Buffer) []byte {
	out := make([]byte, len(b.Bytes))
	copy(out, b.Bytes)
	for name := range b.Children {
		child, ok := children[name]
		if !ok || child.Parent == nil || !child.IsEditable {
			continue
		}
		start := child.Parent.Offset
		end := start + uint64(len(child.Bytes))
		if end > uint64(len(out)) {
			continue
		}
		copy(out[start:end], child.Bytes)
	}
	return out
}
