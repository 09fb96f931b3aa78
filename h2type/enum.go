package h2type

import (
	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
)

// Enum reads a fixed-width number and looks its value up in a named
// datareg.EnumTable; display is the symbolic name when found, else the
// numeric rendering plus an "unknown" marker.
type Enum struct {
	Reader    bytecontext.Reader
	Formatter bytecontext.Formatter
	Registry  *datareg.Registry
	Namespace string
	Name      string
	align     Alignment
}

// NewEnum returns an Enum reading with reader, falling back to formatter
// for unknown values, resolved against (namespace, name) in registry.
func NewEnum(reader bytecontext.Reader, formatter bytecontext.Formatter, registry *datareg.Registry, namespace, name string, align Alignment) Enum {
	return Enum{Reader: reader, Formatter: formatter, Registry: registry, Namespace: namespace, Name: name, align: align}
}

func (e Enum) Alignment() Alignment { return e.align }

func (e Enum) BaseSize(off Offset) (int64, error) {
	return int64(e.Reader.Size()), nil
}

func (e Enum) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(e, off)
}

func (e Enum) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (e Enum) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	v, err := e.Reader.Read(ctx)
	if err != nil {
		return "", err
	}
	names, lookErr := e.Registry.Lookup(e.Namespace, e.Name, v.AsInt64())
	if lookErr != nil || len(names) == 0 {
		return e.Formatter.Format(v) + " <unknown>", nil
	}
	return names[0], nil
}

func (e Enum) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(e, off)
}
