package h2type

import "github.com/h2gb/h2core/bytecontext"

// LPString reads a length with LengthReader, then that many fixed-width
// characters. Always requires a Dynamic offset: its size is data-dependent.
type LPString struct {
	LengthReader bytecontext.Reader
	CharWidth    int
	align        Alignment
}

// NewLPString returns an LPString whose length is read with lengthReader
// and whose characters are charWidth bytes wide (1 for ASCII/UTF-8 bytes,
// 2 or 4 for fixed-width wide characters).
func NewLPString(lengthReader bytecontext.Reader, charWidth int, align Alignment) LPString {
	return LPString{LengthReader: lengthReader, CharWidth: charWidth, align: align}
}

func (l LPString) Alignment() Alignment { return l.align }

func (l LPString) charWidth() int {
	if l.CharWidth <= 0 {
		return 1
	}
	return l.CharWidth
}

func (l LPString) readCount(ctx bytecontext.ByteContext) (int64, error) {
	n, err := l.LengthReader.Read(ctx)
	if err != nil {
		return 0, err
	}
	return n.AsInt64(), nil
}

func (l LPString) BaseSize(off Offset) (int64, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return 0, err
	}
	count, err := l.readCount(ctx)
	if err != nil {
		return 0, err
	}
	return int64(l.LengthReader.Size()) + count*int64(l.charWidth()), nil
}

func (l LPString) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(l, off)
}

func (l LPString) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (l LPString) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	count, err := l.readCount(ctx)
	if err != nil {
		return "", err
	}
	dataCtx := ctx.Advance(l.LengthReader.Size())
	raw, err := dataCtx.Peek(int(count) * l.charWidth())
	if err != nil {
		return "", err
	}
	return quote(decodeFixedWidthString(raw, l.charWidth())), nil
}

func (l LPString) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(l, off)
}
