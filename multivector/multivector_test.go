package multivector

import (
	"testing"

	"github.com/h2gb/h2core/bumpy"
)

// TestGroupLifecycle exercises spec scenario S4.
func TestGroupLifecycle(t *testing.T) {
	mv := New[string]()
	if err := mv.CreateVector("A", 100); err != nil {
		t.Fatal(err)
	}
	if err := mv.CreateVector("B", 200); err != nil {
		t.Fatal(err)
	}

	if _, err := mv.InsertEntries([]Insertion[string]{
		{Vector: "A", Range: bumpy.Range{Start: 0, End: 10}, Value: "a0"},
		{Vector: "A", Range: bumpy.Range{Start: 10, End: 20}, Value: "a1"},
	}); err != nil {
		t.Fatalf("first group: %v", err)
	}

	if _, err := mv.InsertEntries([]Insertion[string]{
		{Vector: "A", Range: bumpy.Range{Start: 20, End: 30}, Value: "a2"},
		{Vector: "B", Range: bumpy.Range{Start: 0, End: 10}, Value: "b0"},
		{Vector: "B", Range: bumpy.Range{Start: 10, End: 20}, Value: "b1"},
	}); err != nil {
		t.Fatalf("second group: %v", err)
	}

	if got := mv.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}

	removed, err := mv.RemoveEntries("A", 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Fatalf("RemoveEntries(A, 15) returned %d entries, want 2", len(removed))
	}
	if mv.Len() != 3 {
		t.Fatalf("Len() after remove = %d, want 3", mv.Len())
	}

	if err := mv.UnlinkEntry("A", 20); err != nil {
		t.Fatal(err)
	}
	removed, err = mv.RemoveEntries("A", 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 {
		t.Fatalf("RemoveEntries(A, 20) after unlink returned %d entries, want 1", len(removed))
	}

	cap, err := mv.DestroyVector("A")
	if err != nil {
		t.Fatal(err)
	}
	if cap != 100 {
		t.Fatalf("DestroyVector(A) cap = %d, want 100", cap)
	}
}

func TestInsertEntriesAllOrNothing(t *testing.T) {
	mv := New[int]()
	mv.CreateVector("A", 50)

	if _, err := mv.InsertEntries([]Insertion[int]{
		{Vector: "A", Range: bumpy.Range{Start: 0, End: 10}, Value: 1},
		{Vector: "A", Range: bumpy.Range{Start: 5, End: 15}, Value: 2},
	}); err == nil {
		t.Fatal("expected overlap error")
	}
	if mv.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after rolled-back batch", mv.Len())
	}
}

func TestDestroyVectorNotEmpty(t *testing.T) {
	mv := New[int]()
	mv.CreateVector("A", 50)
	mv.InsertEntries([]Insertion[int]{{Vector: "A", Range: bumpy.Range{Start: 0, End: 1}, Value: 1}})
	if _, err := mv.DestroyVector("A"); err == nil {
		t.Fatal("expected NotEmptyError")
	}
}
