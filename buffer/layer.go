package buffer

import (
	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/multivector"
)

// Notice reports an entry that edit-induced re-resolution could not
// cleanly restore, per spec.md §4.7's "leave undefined and notify" policy
// (the Open Question spec.md §9 raises and answers itself).
type Notice struct {
	Layer  string
	Range  bumpy.Range
	Reason string
}

// AddLayer creates a new, empty layer named name, sized to b's current
// byte length.
func (b *Buffer) AddLayer(name string) error {
	return b.Layers.CreateVector(name, uint64(len(b.Bytes)))
}

// RemoveLayer deletes layer name, destroying every entry it holds.
func (b *Buffer) RemoveLayer(name string) error {
	all, err := b.Layers.All(name)
	if err != nil {
		return err
	}
	for _, e := range all {
		if _, err := b.Layers.RemoveEntries(name, e.Range.Start); err != nil {
			return err
		}
	}
	if _, err := b.Layers.DestroyVector(name); err != nil {
		return err
	}
	delete(b.ShowUndefined, name)
	return nil
}

// CreateEntry resolves typ against b's bytes starting at offset, and
// inserts the resulting range into layer as one Entry (or, for a
// composite type, one Entry spanning the whole resolved range, with its
// field breakdown reachable by re-resolving Recreator). Returns the
// GroupID the multivector assigned.
func (b *Buffer) CreateEntry(layer string, typ h2type.H2Type, offset uint64, endian bytecontext.Endian) (multivector.GroupID, error) {
	ctx := bytecontext.New(b.Bytes, endian).At(int(offset))
	resolved, err := typ.Resolve(h2type.Dynamic(ctx))
	if err != nil {
		return 0, err
	}
	creator := CreatorSimpleType
	if len(resolved.Children) > 0 {
		creator = CreatorComplexType
	}
	entry := Entry{Creator: creator, Display: resolved.Display, Recreator: typ}
	r := bumpy.Range{Start: resolved.Range.Start, End: resolved.Range.End}
	return b.Layers.InsertEntries([]multivector.Insertion[Entry]{{Vector: layer, Range: r, Value: entry}})
}

// UndefineRange removes every entry in layer intersecting r, returning the
// entries removed (including any group siblings bound to them).
func (b *Buffer) UndefineRange(layer string, r bumpy.Range) ([]bumpy.Entry[Entry], error) {
	affected, err := b.Layers.Range(layer, r.Start, r.End)
	if err != nil {
		return nil, err
	}
	var removed []bumpy.Entry[Entry]
	seen := make(map[uint64]bool, len(affected))
	for _, e := range affected {
		if seen[e.Range.Start] {
			continue
		}
		group, err := b.Layers.RemoveEntries(layer, e.Range.Start)
		if err != nil {
			return removed, err
		}
		removed = append(removed, group...)
		for _, g := range group {
			seen[g.Range.Start] = true
		}
	}
	return removed, nil
}

// EditBytes overwrites the bytes in r with newBytes, which must be the
// same length, then runs edit-induced re-resolution (spec.md §4.7) over
// every layer entry the edit intersects: entries with a Recreator are
// removed and re-resolved at their original start; if the re-resolved
// range matches the old one and doesn't collide, they are reinserted with
// the new display, otherwise (or if there is no Recreator at all) they
// stay removed and a Notice is appended. Returns the overwritten region's
// original bytes, so a caller building an inverse action can restore them.
func (b *Buffer) EditBytes(r bumpy.Range, newBytes []byte, endian bytecontext.Endian) ([]byte, []Notice, error) {
	if !b.IsEditable {
		return nil, nil, BufferNotEditableError{Buffer: b.Name}
	}
	if r.Start >= r.End || r.End > uint64(len(b.Bytes)) {
		return nil, nil, OutOfBoundsError{Range: r, Len: len(b.Bytes)}
	}
	if uint64(len(newBytes)) != r.Len() {
		return nil, nil, LengthMismatchError{Want: r.Len(), Got: uint64(len(newBytes))}
	}

	old := make([]byte, r.Len())
	copy(old, b.Bytes[r.Start:r.End])
	copy(b.Bytes[r.Start:r.End], newBytes)

	var notices []Notice
	for _, layerName := range b.Layers.VectorNames() {
		affected, err := b.Layers.Range(layerName, r.Start, r.End)
		if err != nil {
			continue
		}
		for _, e := range affected {
			if _, stillThere := b.Layers.Get(layerName, e.Range.Start); !stillThere {
				continue
			}
			if n := b.reresolveEntry(layerName, e, endian); n != nil {
				notices = append(notices, *n)
			}
		}
	}
	return old, notices, nil
}

func (b *Buffer) reresolveEntry(layer string, e bumpy.Entry[Entry], endian bytecontext.Endian) *Notice {
	if _, err := b.Layers.RemoveEntries(layer, e.Range.Start); err != nil {
		return &Notice{Layer: layer, Range: e.Range, Reason: "remove failed: " + err.Error()}
	}
	if e.Value.Recreator == nil {
		return &Notice{Layer: layer, Range: e.Range, Reason: "no recreator; left undefined"}
	}

	ctx := bytecontext.New(b.Bytes, endian).At(int(e.Range.Start))
	resolved, err := e.Value.Recreator.Resolve(h2type.Dynamic(ctx))
	if err != nil {
		return &Notice{Layer: layer, Range: e.Range, Reason: "re-resolution failed: " + err.Error()}
	}
	newRange := bumpy.Range{Start: resolved.Range.Start, End: resolved.Range.End}
	if newRange != e.Range {
		return &Notice{Layer: layer, Range: e.Range, Reason: "resolved size changed; left undefined"}
	}

	creator := CreatorSimpleType
	if len(resolved.Children) > 0 {
		creator = CreatorComplexType
	}
	newEntry := Entry{Creator: creator, Display: resolved.Display, Recreator: e.Value.Recreator}
	if _, err := b.Layers.InsertEntries([]multivector.Insertion[Entry]{{Vector: layer, Range: newRange, Value: newEntry}}); err != nil {
		return &Notice{Layer: layer, Range: e.Range, Reason: "re-insert collided; left undefined"}
	}
	return nil
}
