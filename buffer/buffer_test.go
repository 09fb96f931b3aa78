package buffer

import (
	"testing"

	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/h2type"
	"github.com/h2gb/h2core/multivector"
	"github.com/h2gb/h2core/transform"
)

func numberType() h2type.Number {
	return h2type.NewNumber(
		bytecontext.NewReader(bytecontext.KindU16).WithEndian(bytecontext.BigEndian),
		bytecontext.NewFormatter(bytecontext.Style{Base: bytecontext.Hex, Prefix: "0x"}),
		h2type.None(),
	)
}

func TestCreateEntryAndGet(t *testing.T) {
	b := New("buf", []byte{0x12, 0x34, 0x56, 0x78}, 0)
	if err := b.AddLayer("main"); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	typ := numberType()
	if _, err := b.CreateEntry("main", typ, 0, bytecontext.BigEndian); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	entry, ok := b.Layers.Get("main", 0)
	if !ok {
		t.Fatal("expected entry at address 0")
	}
	if entry.Display != "0x1234" {
		t.Fatalf("display = %q, want 0x1234", entry.Display)
	}
	if entry.Creator != CreatorSimpleType {
		t.Fatalf("creator = %v, want SimpleType", entry.Creator)
	}
}

func TestUndefineRangeRemovesEntry(t *testing.T) {
	b := New("buf", []byte{0x12, 0x34, 0x56, 0x78}, 0)
	if err := b.AddLayer("main"); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	typ := numberType()
	if _, err := b.CreateEntry("main", typ, 0, bytecontext.BigEndian); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	removed, err := b.UndefineRange("main", bumpy.Range{Start: 0, End: 4})
	if err != nil {
		t.Fatalf("UndefineRange: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("removed = %d, want 1", len(removed))
	}
	if _, ok := b.Layers.Get("main", 0); ok {
		t.Fatal("expected entry removed")
	}
}

func TestTransformRequiresEmptyLayers(t *testing.T) {
	b := New("buf", []byte("48656c6c6f"), 0)
	if err := b.AddLayer("main"); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	typ := h2type.NewNumber(bytecontext.NewReader(bytecontext.KindU8), bytecontext.NewFormatter(bytecontext.Style{}), h2type.None())
	if _, err := b.CreateEntry("main", typ, 0, bytecontext.LittleEndian); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if err := b.Transform(transform.Hex{}); err == nil {
		t.Fatal("expected HasAnnotationsError")
	}
}

func TestTransformRoundTrip(t *testing.T) {
	b := New("buf", []byte("48656c6c6f"), 0)
	if err := b.Transform(transform.Hex{}); err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if string(b.Bytes) != "Hello" {
		t.Fatalf("bytes = %q, want Hello", b.Bytes)
	}
	if !b.IsEditable {
		t.Fatal("expected buffer to remain editable after a two-way transform")
	}
	if err := b.Untransform(); err != nil {
		t.Fatalf("Untransform: %v", err)
	}
	if string(b.Bytes) != "48656c6c6f" {
		t.Fatalf("bytes after untransform = %q", b.Bytes)
	}
}

func TestEditBytesRequiresEditable(t *testing.T) {
	b := New("buf", []byte{0, 0, 0, 0}, 0)
	b.IsEditable = false
	_, _, err := b.EditBytes(bumpy.Range{Start: 0, End: 1}, []byte{1}, bytecontext.LittleEndian)
	if err == nil {
		t.Fatal("expected BufferNotEditableError")
	}
}

func TestEditBytesReresolvesMatchingSize(t *testing.T) {
	b := New("buf", []byte{0x00, 0x00}, 0)
	if err := b.AddLayer("main"); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	typ := numberType()
	if _, err := b.CreateEntry("main", typ, 0, bytecontext.BigEndian); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	old, notices, err := b.EditBytes(bumpy.Range{Start: 0, End: 2}, []byte{0xAB, 0xCD}, bytecontext.BigEndian)
	if err != nil {
		t.Fatalf("EditBytes: %v", err)
	}
	if len(notices) != 0 {
		t.Fatalf("notices = %v, want none (same-size re-resolution)", notices)
	}
	if string(old) != "\x00\x00" {
		t.Fatalf("old bytes = %v", old)
	}
	entry, ok := b.Layers.Get("main", 0)
	if !ok {
		t.Fatal("expected entry still present after re-resolution")
	}
	if entry.Display != "0xabcd" {
		t.Fatalf("display = %q, want 0xabcd", entry.Display)
	}
}

func TestEditBytesNoticesWhenNoRecreator(t *testing.T) {
	b := New("buf", []byte{0x00, 0x00}, 0)
	if err := b.AddLayer("main"); err != nil {
		t.Fatalf("AddLayer: %v", err)
	}
	_, err := b.Layers.InsertEntries([]multivector.Insertion[Entry]{})
	_ = err
	// Insert a plain user-created entry with no recreator directly via the
	// multivector API to exercise the "no recreator" notice path.
	if _, err := b.Layers.InsertEntries([]multivector.Insertion[Entry]{{Vector: "main", Range: bumpy.Range{Start: 0, End: 2}, Value: Entry{Creator: CreatorUser, Display: "note"}}}); err != nil {
		t.Fatalf("InsertEntries: %v", err)
	}
	_, notices, err := b.EditBytes(bumpy.Range{Start: 0, End: 2}, []byte{1, 2}, bytecontext.BigEndian)
	if err != nil {
		t.Fatalf("EditBytes: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("notices = %v, want 1", notices)
	}
	if _, ok := b.Layers.Get("main", 0); ok {
		t.Fatal("expected entry with no recreator to be removed")
	}
}

func TestSplitRecordsParentage(t *testing.T) {
	b := New("parent", []byte{1, 2, 3, 4, 5, 6}, 0)
	children, err := b.Split([]uint64{2, 4}, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(children) != 3 {
		t.Fatalf("children = %d, want 3", len(children))
	}
	if len(children[1].Bytes) != 2 || children[1].Bytes[0] != 3 {
		t.Fatalf("child b bytes = %v", children[1].Bytes)
	}
	if children[1].Parent == nil || children[1].Parent.Buffer != "parent" || children[1].Parent.Offset != 2 {
		t.Fatalf("child b parent = %+v", children[1].Parent)
	}
}
