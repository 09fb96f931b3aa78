package h2type

import (
	"fmt"
	"strings"

	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
)

// Bitmask reads a fixed-width number and decomposes it against a named
// datareg.BitmaskTable; display lists the set names joined with "|" plus
// an unknown-bits marker when the value carries bits with no known name.
type Bitmask struct {
	Reader    bytecontext.Reader
	Registry  *datareg.Registry
	Namespace string
	Name      string
	align     Alignment
}

// NewBitmask returns a Bitmask reading with reader, resolved against
// (namespace, name) in registry.
func NewBitmask(reader bytecontext.Reader, registry *datareg.Registry, namespace, name string, align Alignment) Bitmask {
	return Bitmask{Reader: reader, Registry: registry, Namespace: namespace, Name: name, align: align}
}

func (b Bitmask) Alignment() Alignment { return b.align }

func (b Bitmask) BaseSize(off Offset) (int64, error) {
	return int64(b.Reader.Size()), nil
}

func (b Bitmask) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(b, off)
}

func (b Bitmask) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (b Bitmask) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	v, err := b.Reader.Read(ctx)
	if err != nil {
		return "", err
	}
	names, unknown, err := b.Registry.LookupBitmask(b.Namespace, b.Name, v.AsUint64())
	if err != nil {
		return "", err
	}
	parts := append([]string(nil), names...)
	if unknown != 0 {
		parts = append(parts, fmt.Sprintf("unknown(0x%x)", unknown))
	}
	if len(parts) == 0 {
		return "(none)", nil
	}
	return strings.Join(parts, "|"), nil
}

func (b Bitmask) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(b, off)
}
