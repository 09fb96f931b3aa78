package h2type

import (
	"unicode/utf8"

	"github.com/h2gb/h2core/bytecontext"
)

// Character is a single codepoint: either fixed-width (read via a
// bytecontext.Reader over a Char8/Char16/Char32 kind) or variable-width
// UTF-8, decoded directly from the underlying bytes.
type Character struct {
	Reader *bytecontext.Reader
	align  Alignment
}

// NewFixedCharacter returns a Character read as a single fixed-width code
// unit using reader (whose Kind should be one of Char8/Char16/Char32).
func NewFixedCharacter(reader bytecontext.Reader, align Alignment) Character {
	return Character{Reader: &reader, align: align}
}

// NewUTF8Character returns a Character decoded as one variable-width UTF-8
// codepoint.
func NewUTF8Character(align Alignment) Character {
	return Character{align: align}
}

func (c Character) Alignment() Alignment { return c.align }

func (c Character) BaseSize(off Offset) (int64, error) {
	if c.Reader != nil {
		return int64(c.Reader.Size()), nil
	}
	ctx, err := off.requireContext()
	if err != nil {
		return 0, err
	}
	want := utf8.UTFMax
	if remaining := ctx.Len() - ctx.Pos(); remaining < want {
		want = remaining
	}
	b, err := ctx.Peek(want)
	if err != nil {
		return 0, err
	}
	_, size := utf8.DecodeRune(b)
	return int64(size), nil
}

func (c Character) AlignedSize(off Offset) (int64, error) {
	return AlignedSizeOf(c, off)
}

func (c Character) Children(off Offset) ([]Field, error) {
	return nil, nil
}

func (c Character) ToDisplay(off Offset) (string, error) {
	ctx, err := off.requireContext()
	if err != nil {
		return "", err
	}
	if c.Reader != nil {
		v, err := c.Reader.Read(ctx)
		if err != nil {
			return "", err
		}
		return string(v.Rune()), nil
	}
	sz, err := c.BaseSize(off)
	if err != nil {
		return "", err
	}
	b, err := ctx.Peek(int(sz))
	if err != nil {
		return "", err
	}
	r, _ := utf8.DecodeRune(b)
	return string(r), nil
}

func (c Character) Resolve(off Offset) (ResolvedType, error) {
	return ResolveOf(c, off)
}
