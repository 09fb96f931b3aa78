package h2type

import "github.com/h2gb/h2core/bytecontext"

// Number is a fixed-width integer or float, read and rendered using a
// bytecontext.Reader/Formatter pair. Its size never depends on data, so
// BaseSize accepts a Static offset; ToDisplay always needs the actual
// bytes and requires Dynamic.
type Number struct {
	Reader    bytecontext.Reader
	Formatter bytecontext.Formatter
	align     Alignment
}

// NewNumber returns a Number reading with reader and rendering with
// formatter, aligned per align.
func NewNumber(reader bytecontext.Reader, formatter bytecontext.Formatter, align Alignment) Number {
	return Number{Reader: reader, Formatter: formatter, align: align}
}

func (n Number) Alignment() Alignment { return n.align }

func (n Number) BaseSize(off Offset) (int64, error) {
	return int64(n.Reader.Size()), nil
}

func (n Number) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(n, off)
}

func (n Number) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (n Number) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	v, err := n.Reader.Read(ctx)
	if err != nil {
		return "", err
	}
	return n.Formatter.Format(v), nil
}

func (n Number) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(n, off)
}
