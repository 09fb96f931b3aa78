package bumpy

import "testing"

func TestInsertAndGet(t *testing.T) {
	v := New[string](100)

	if err := v.Insert(Entry[string]{Range: Range{Start: 10, End: 20}, Value: "a"}); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := v.Insert(Entry[string]{Range: Range{Start: 20, End: 30}, Value: "b"}); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	for addr := uint64(10); addr < 20; addr++ {
		e, ok := v.Get(addr)
		if !ok || e.Value != "a" {
			t.Fatalf("Get(%d) = %v, %v, want a", addr, e, ok)
		}
	}
	for addr := uint64(20); addr < 30; addr++ {
		e, ok := v.Get(addr)
		if !ok || e.Value != "b" {
			t.Fatalf("Get(%d) = %v, %v, want b", addr, e, ok)
		}
	}
	if _, ok := v.Get(9); ok {
		t.Fatalf("Get(9) should miss")
	}
	if _, ok := v.Get(30); ok {
		t.Fatalf("Get(30) should miss")
	}
}

func TestInsertOverlap(t *testing.T) {
	v := New[int](100)
	if err := v.Insert(Entry[int]{Range: Range{Start: 10, End: 20}, Value: 1}); err != nil {
		t.Fatal(err)
	}
	tests := []Range{
		{Start: 5, End: 11},
		{Start: 15, End: 16},
		{Start: 19, End: 25},
		{Start: 0, End: 100},
	}
	for _, r := range tests {
		err := v.Insert(Entry[int]{Range: r, Value: 2})
		if _, ok := err.(OverlapError); !ok {
			t.Errorf("Insert(%s) err = %v, want OverlapError", r, err)
		}
	}
}

func TestInsertOutOfBoundsAndEmpty(t *testing.T) {
	v := New[int](10)
	if err := v.Insert(Entry[int]{Range: Range{Start: 5, End: 15}}); err == nil {
		t.Fatal("expected out of bounds error")
	} else if _, ok := err.(OutOfBoundsError); !ok {
		t.Fatalf("err = %v, want OutOfBoundsError", err)
	}
	if err := v.Insert(Entry[int]{Range: Range{Start: 5, End: 5}}); err != ErrEmptyRange {
		t.Fatalf("err = %v, want ErrEmptyRange", err)
	}
}

func TestRemove(t *testing.T) {
	v := New[int](100)
	v.Insert(Entry[int]{Range: Range{Start: 0, End: 10}, Value: 1})
	v.Insert(Entry[int]{Range: Range{Start: 10, End: 20}, Value: 2})

	e, ok := v.Remove(15)
	if !ok || e.Value != 2 {
		t.Fatalf("Remove(15) = %v, %v", e, ok)
	}
	if v.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", v.Len())
	}
	if _, ok := v.Remove(15); ok {
		t.Fatalf("second Remove(15) should miss")
	}
}

func TestRangeWithGaps(t *testing.T) {
	v := New[int](100)
	v.Insert(Entry[int]{Range: Range{Start: 10, End: 20}, Value: 1})
	v.Insert(Entry[int]{Range: Range{Start: 30, End: 40}, Value: 2})

	got := v.RangeWithGaps(0, 50)
	if len(got) != 5 {
		t.Fatalf("len(got) = %d, want 5", len(got))
	}
	if _, ok := got[0].(Gap); !ok {
		t.Fatalf("got[0] = %v, want Gap", got[0])
	}
	if e, ok := got[1].(Entry[int]); !ok || e.Value != 1 {
		t.Fatalf("got[1] = %v, want entry 1", got[1])
	}
	if _, ok := got[2].(Gap); !ok {
		t.Fatalf("got[2] = %v, want Gap", got[2])
	}
	if e, ok := got[3].(Entry[int]); !ok || e.Value != 2 {
		t.Fatalf("got[3] = %v, want entry 2", got[3])
	}
	if _, ok := got[4].(Gap); !ok {
		t.Fatalf("got[4] = %v, want Gap", got[4])
	}
}

func TestDisjointInvariant(t *testing.T) {
	v := New[int](1000)
	ranges := []Range{
		{Start: 0, End: 5}, {Start: 5, End: 10}, {Start: 100, End: 200}, {Start: 50, End: 60},
	}
	for i, r := range ranges {
		if err := v.Insert(Entry[int]{Range: r, Value: i}); err != nil {
			t.Fatalf("insert %s: %v", r, err)
		}
	}
	all := v.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Range.Overlaps(all[i].Range) {
			t.Fatalf("entries %v and %v overlap", all[i-1], all[i])
		}
	}
}
