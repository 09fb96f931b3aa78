// Package multivector composes several named bumpy.Vector instances and
// lets entries that span more than one of them be bound into a group that
// is inserted, queried and removed as a single atomic unit.
package multivector

import (
	"sync/atomic"

	"github.com/h2gb/h2core/bumpy"
	"github.com/h2gb/h2core/internal/logx"
)

var logger = logx.New("multivector")

// GroupID identifies a set of entries, possibly across several vectors,
// that must be inserted and removed together. It is allocated
// monotonically by a single MultiVector instance; it carries no other
// meaning.
type GroupID uint64

// ref names one entry's location: which vector, and the address used to
// look it up.
type ref struct {
	vector string
	addr   uint64
}

// linked wraps a caller payload with the group it belongs to.
type linked[T any] struct {
	group GroupID
	value T
}

// Insertion describes one entry to add as part of a batch passed to
// InsertEntries: which named vector it goes in, its range, and its value.
type Insertion[T any] struct {
	Vector string
	Range  bumpy.Range
	Value  T
}

// MultiVector is a mapping from vector name to bumpy.Vector, plus a
// mapping from GroupID to the entries bound into that group.
type MultiVector[T any] struct {
	vectors map[string]*bumpy.Vector[linked[T]]
	groups  map[GroupID][]ref
	nextID  uint64
}

// New returns an empty MultiVector.
func New[T any]() *MultiVector[T] {
	return &MultiVector[T]{
		vectors: make(map[string]*bumpy.Vector[linked[T]]),
		groups:  make(map[GroupID][]ref),
	}
}

// CreateVector adds a new named bumpy.Vector with the given capacity.
func (m *MultiVector[T]) CreateVector(name string, capacity uint64) error {
	if _, ok := m.vectors[name]; ok {
		return NameExistsError{Name: name}
	}
	m.vectors[name] = bumpy.New[linked[T]](capacity)
	logger.Printf("created vector %q capacity %d", name, capacity)
	return nil
}

// DestroyVector removes a named vector, returning its capacity. It fails if
// the vector still holds entries.
func (m *MultiVector[T]) DestroyVector(name string) (uint64, error) {
	v, ok := m.vectors[name]
	if !ok {
		return 0, NameMissingError{Name: name}
	}
	if !v.IsEmpty() {
		return 0, NotEmptyError{Name: name}
	}
	cap := v.Capacity()
	delete(m.vectors, name)
	return cap, nil
}

// VectorNames returns the names of every vector currently registered.
func (m *MultiVector[T]) VectorNames() []string {
	out := make([]string, 0, len(m.vectors))
	for name := range m.vectors {
		out = append(out, name)
	}
	return out
}

// Len returns the total number of entries stored across all vectors.
func (m *MultiVector[T]) Len() int {
	total := 0
	for _, v := range m.vectors {
		total += v.Len()
	}
	return total
}

// Get returns the entry covering addr in the named vector, if any.
func (m *MultiVector[T]) Get(vector string, addr uint64) (T, bool) {
	v, ok := m.vectors[vector]
	if !ok {
		var zero T
		return zero, false
	}
	e, ok := v.Get(addr)
	if !ok {
		var zero T
		return zero, false
	}
	return e.Value.value, true
}

// All returns every entry currently stored in the named vector.
func (m *MultiVector[T]) All(vector string) ([]bumpy.Entry[T], error) {
	v, ok := m.vectors[vector]
	if !ok {
		return nil, NameMissingError{Name: vector}
	}
	linkedEntries := v.All()
	out := make([]bumpy.Entry[T], len(linkedEntries))
	for i, e := range linkedEntries {
		out[i] = bumpy.Entry[T]{Range: e.Range, Value: e.Value.value}
	}
	return out, nil
}

// Range returns the entries intersecting [start, end) in the named
// vector, in ascending start order.
func (m *MultiVector[T]) Range(vector string, start, end uint64) ([]bumpy.Entry[T], error) {
	v, ok := m.vectors[vector]
	if !ok {
		return nil, NameMissingError{Name: vector}
	}
	linkedEntries := v.Range(start, end)
	out := make([]bumpy.Entry[T], len(linkedEntries))
	for i, e := range linkedEntries {
		out[i] = bumpy.Entry[T]{Range: e.Range, Value: e.Value.value}
	}
	return out, nil
}

// InsertEntries validates every insertion in batch against its target
// vector and against the other insertions in the same batch, then commits
// all of them under a freshly allocated GroupID. Either every insertion
// succeeds or none do.
func (m *MultiVector[T]) InsertEntries(batch []Insertion[T]) (GroupID, error) {
	for i, ins := range batch {
		if _, ok := m.vectors[ins.Vector]; !ok {
			return 0, BatchError{Index: i, Err: NameMissingError{Name: ins.Vector}}
		}
	}

	snapshots := make(map[string][]bumpy.Entry[linked[T]], len(m.vectors))
	for name, v := range m.vectors {
		snapshots[name] = v.Snapshot()
	}

	id := GroupID(atomic.AddUint64(&m.nextID, 1))
	refs := make([]ref, 0, len(batch))

	rollback := func() {
		for name, snap := range snapshots {
			m.vectors[name].Restore(snap)
		}
	}

	for i, ins := range batch {
		v := m.vectors[ins.Vector]
		err := v.Insert(bumpy.Entry[linked[T]]{
			Range: ins.Range,
			Value: linked[T]{group: id, value: ins.Value},
		})
		if err != nil {
			rollback()
			return 0, BatchError{Index: i, Err: err}
		}
		refs = append(refs, ref{vector: ins.Vector, addr: ins.Range.Start})
	}

	m.groups[id] = refs
	logger.Printf("inserted group %d with %d entries", id, len(refs))
	return id, nil
}

// RemoveEntries resolves the group containing the entry at addr in the
// named vector and removes every entry bound to that group, across all
// vectors, returning the collected entries.
func (m *MultiVector[T]) RemoveEntries(vector string, addr uint64) ([]bumpy.Entry[T], error) {
	v, ok := m.vectors[vector]
	if !ok {
		return nil, NameMissingError{Name: vector}
	}
	e, ok := v.Get(addr)
	if !ok {
		return nil, nil
	}
	id := e.Value.group

	refs, ok := m.groups[id]
	if !ok {
		// Singleton group that was never registered (shouldn't happen, but
		// fall back to removing just this entry).
		refs = []ref{{vector: vector, addr: e.Range.Start}}
	}

	out := make([]bumpy.Entry[T], 0, len(refs))
	for _, r := range refs {
		rv, ok := m.vectors[r.vector]
		if !ok {
			continue
		}
		removed, ok := rv.Remove(r.addr)
		if !ok {
			continue
		}
		out = append(out, bumpy.Entry[T]{Range: removed.Range, Value: removed.Value.value})
	}
	delete(m.groups, id)
	return out, nil
}

// UnlinkEntry detaches the entry at addr in the named vector from its
// current group, moving it into a brand new singleton group so a later
// RemoveEntries call isolates it.
func (m *MultiVector[T]) UnlinkEntry(vector string, addr uint64) error {
	v, ok := m.vectors[vector]
	if !ok {
		return NameMissingError{Name: vector}
	}
	e, ok := v.Get(addr)
	if !ok {
		return nil
	}
	oldID := e.Value.group
	newID := GroupID(atomic.AddUint64(&m.nextID, 1))

	removed, _ := v.Remove(e.Range.Start)
	removed.Value.group = newID
	if err := v.Insert(removed); err != nil {
		// put it back exactly as it was; this should not happen since the
		// range is unchanged.
		removed.Value.group = oldID
		v.Insert(removed)
		return err
	}

	if refs, ok := m.groups[oldID]; ok {
		filtered := refs[:0]
		for _, r := range refs {
			if r.vector == vector && r.addr == e.Range.Start {
				continue
			}
			filtered = append(filtered, r)
		}
		if len(filtered) == 0 {
			delete(m.groups, oldID)
		} else {
			m.groups[oldID] = filtered
		}
	}
	m.groups[newID] = []ref{{vector: vector, addr: e.Range.Start}}
	return nil
}
