package h2type

import "bytes"

// NTString reads fixed-width characters until a terminator sequence (by
// default, one zero-filled code unit). Its total size includes the
// terminator. Always requires a Dynamic offset.
type NTString struct {
	CharWidth  int
	Terminator []byte
	// MaxScan bounds how many bytes ahead the terminator search looks
	// before giving up with UnterminatedError; 0 scans to the end of the
	// underlying buffer.
	MaxScan int
	align   Alignment
}

// NewNTString returns an NTString of charWidth-byte characters, terminated
// by terminator (or a zero-filled code unit if terminator is nil).
func NewNTString(charWidth int, terminator []byte, align Alignment) NTString {
	return NTString{CharWidth: charWidth, Terminator: terminator, align: align}
}

func (n NTString) Alignment() Alignment { return n.align }

func (n NTString) charWidth() int {
	if n.CharWidth <= 0 {
		return 1
	}
	return n.CharWidth
}

func (n NTString) terminator() []byte {
	if len(n.Terminator) > 0 {
		return n.Terminator
	}
	return make([]byte, n.charWidth())
}

func (n NTString) BaseSize(off Offset) (int64, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return 0, err
	}
	data := ctx.Bytes()
	pos := ctx.Pos()
	width := n.charWidth()
	term := n.terminator()

	limit := len(data)
	if n.MaxScan > 0 && pos+n.MaxScan < limit {
		limit = pos + n.MaxScan
	}
	for i := pos; i+width <= limit; i += width {
		if bytes.Equal(data[i:i+width], term) {
			return int64(i - pos + width), nil
		}
	}
	return 0, UnterminatedError{Pos: int64(pos)}
}

func (n NTString) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(n, off)
}

func (n NTString) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (n NTString) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	size, err := n.BaseSize(off)
	if err != nil {
		return "", err
	}
	width := n.charWidth()
	raw, err := ctx.Peek(int(size) - width)
	if err != nil {
		return "", err
	}
	return quote(decodeFixedWidthString(raw, width)), nil
}

func (n NTString) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(n, off)
}
