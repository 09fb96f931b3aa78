// Package datareg provides namespaced lookup tables for the four kinds of
// reference data the type model consults while rendering values:
// constants, enums, bitmasks, and named types. It only ingests
// already-parsed Go values; parsing CSV/JSON/YAML/RON data files is a
// caller concern (spec.md §1, §6), mirrored here the way wasm/operators
// holds a fully materialized name<->opcode table rather than parsing one
// from a file at init time.
package datareg

import "github.com/h2gb/h2core/internal/logx"

var logger = logx.New("datareg")

// DefaultNamespace is searched when a lookup omits a namespace.
const DefaultNamespace = "default"

// Kind selects which of the four datum kinds an operation targets.
type Kind int

const (
	KindConstants Kind = iota
	KindEnums
	KindBitmasks
	KindTypes
)

func (k Kind) String() string {
	switch k {
	case KindConstants:
		return "constants"
	case KindEnums:
		return "enums"
	case KindBitmasks:
		return "bitmasks"
	case KindTypes:
		return "types"
	default:
		return "unknown"
	}
}

// ConstantTable is a many-to-many name<->value mapping: a name can back
// several values is not meaningful, but several names can share a value
// (e.g. aliases), so the reverse index is name-per-value, not unique.
type ConstantTable struct {
	byName  map[string]int64
	byValue map[int64][]string
}

func newConstantTable(values map[string]int64) ConstantTable {
	t := ConstantTable{
		byName:  make(map[string]int64, len(values)),
		byValue: make(map[int64][]string, len(values)),
	}
	for name, v := range values {
		t.byName[name] = v
		t.byValue[v] = append(t.byValue[v], name)
	}
	return t
}

// EnumTable maps numeric values to symbolic names. Names are not required
// to be unique across values; each value carries the single name it was
// loaded with.
type EnumTable struct {
	byValue map[int64][]string
}

func newEnumTable(values map[int64]string) EnumTable {
	t := EnumTable{byValue: make(map[int64][]string, len(values))}
	for v, name := range values {
		t.byValue[v] = append(t.byValue[v], name)
	}
	return t
}

// BitmaskTable maps a bit index (0 = least significant) to the symbolic
// name of the flag occupying that bit.
type BitmaskTable struct {
	byBit map[uint]string
}

func newBitmaskTable(bits map[uint]string) BitmaskTable {
	t := BitmaskTable{byBit: make(map[uint]string, len(bits))}
	for bit, name := range bits {
		t.byBit[bit] = name
	}
	return t
}

// Registry holds every loaded datum, namespaced and keyed by name within
// its kind.
type Registry struct {
	constants map[string]map[string]ConstantTable
	enums     map[string]map[string]EnumTable
	bitmasks  map[string]map[string]BitmaskTable
	types     map[string]map[string]any
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		constants: make(map[string]map[string]ConstantTable),
		enums:     make(map[string]map[string]EnumTable),
		bitmasks:  make(map[string]map[string]BitmaskTable),
		types:     make(map[string]map[string]any),
	}
}

func resolveNamespace(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}

// LoadDatum registers an already-parsed mapping under (namespace, name)
// for kind. The shape of data must match kind:
//
//	KindConstants: map[string]int64
//	KindEnums:     map[int64]string
//	KindBitmasks:  map[uint]string
//	KindTypes:     any value the caller treats as an H2Type (stored opaque
//	               to avoid datareg depending on the h2type package)
func (r *Registry) LoadDatum(kind Kind, namespace, name string, data any) error {
	namespace = resolveNamespace(namespace)
	switch kind {
	case KindConstants:
		values, ok := data.(map[string]int64)
		if !ok {
			return DecodeFailureError{Kind: kind, Reason: "expected map[string]int64"}
		}
		if r.constants[namespace] == nil {
			r.constants[namespace] = make(map[string]ConstantTable)
		}
		r.constants[namespace][name] = newConstantTable(values)
	case KindEnums:
		values, ok := data.(map[int64]string)
		if !ok {
			return DecodeFailureError{Kind: kind, Reason: "expected map[int64]string"}
		}
		if r.enums[namespace] == nil {
			r.enums[namespace] = make(map[string]EnumTable)
		}
		r.enums[namespace][name] = newEnumTable(values)
	case KindBitmasks:
		values, ok := data.(map[uint]string)
		if !ok {
			return DecodeFailureError{Kind: kind, Reason: "expected map[uint]string"}
		}
		if r.bitmasks[namespace] == nil {
			r.bitmasks[namespace] = make(map[string]BitmaskTable)
		}
		r.bitmasks[namespace][name] = newBitmaskTable(values)
	case KindTypes:
		if r.types[namespace] == nil {
			r.types[namespace] = make(map[string]any)
		}
		r.types[namespace][name] = data
	default:
		return DecodeFailureError{Kind: kind, Reason: "unknown kind"}
	}
	logger.Printf("loaded %s/%s (%s)", namespace, name, kind)
	return nil
}

// Get returns the datum registered under (namespace, name) for kind.
func (r *Registry) Get(kind Kind, namespace, name string) (any, bool) {
	namespace = resolveNamespace(namespace)
	switch kind {
	case KindConstants:
		t, ok := r.constants[namespace][name]
		return t, ok
	case KindEnums:
		t, ok := r.enums[namespace][name]
		return t, ok
	case KindBitmasks:
		t, ok := r.bitmasks[namespace][name]
		return t, ok
	case KindTypes:
		v, ok := r.types[namespace][name]
		return v, ok
	default:
		return nil, false
	}
}

// List returns the names registered under namespace for kind.
func (r *Registry) List(kind Kind, namespace string) []string {
	namespace = resolveNamespace(namespace)
	switch kind {
	case KindConstants:
		return keysOf(r.constants[namespace])
	case KindEnums:
		return keysOf(r.enums[namespace])
	case KindBitmasks:
		return keysOf(r.bitmasks[namespace])
	case KindTypes:
		return keysOf(r.types[namespace])
	default:
		return nil
	}
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Lookup reverse-resolves value to its symbolic name(s) within the
// (namespace, name) datum, across whichever kind it was registered as.
// For a BitmaskTable, value is treated as a bitfield: every set bit with a
// known name is returned. LookupMissingError is returned when no datum is
// registered under (namespace, name).
func (r *Registry) Lookup(namespace, name string, value int64) ([]string, error) {
	namespace = resolveNamespace(namespace)
	if t, ok := r.enums[namespace][name]; ok {
		return t.byValue[value], nil
	}
	if t, ok := r.constants[namespace][name]; ok {
		return t.byValue[value], nil
	}
	if t, ok := r.bitmasks[namespace][name]; ok {
		var names []string
		for bit, bitName := range t.byBit {
			if value&(int64(1)<<bit) != 0 {
				names = append(names, bitName)
			}
		}
		return names, nil
	}
	return nil, LookupMissingError{Namespace: namespace, Name: name}
}

// LookupBitmask decomposes value against the named BitmaskTable, returning
// the names of every set bit plus the mask of bits that had no known name.
func (r *Registry) LookupBitmask(namespace, name string, value uint64) (names []string, unknown uint64, err error) {
	namespace = resolveNamespace(namespace)
	t, ok := r.bitmasks[namespace][name]
	if !ok {
		return nil, 0, LookupMissingError{Namespace: namespace, Name: name}
	}
	remaining := value
	for bit, bitName := range t.byBit {
		mask := uint64(1) << bit
		if value&mask != 0 {
			names = append(names, bitName)
			remaining &^= mask
		}
	}
	return names, remaining, nil
}
