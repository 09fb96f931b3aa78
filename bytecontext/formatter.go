package bytecontext

import (
	"math/big"
	"strconv"
	"strings"
)

// Base selects the radix a Formatter renders integers in.
type Base int

const (
	Decimal Base = iota
	Hex
	Octal
	Binary
)

// Style configures how a Formatter renders a GenericNumber: the radix,
// zero-padding width, digit-grouping separator, a literal prefix (e.g.
// "0x"), and the precision used for floating-point scientific notation.
type Style struct {
	Base                Base
	PadWidth            int
	GroupSize           int
	GroupSeparator      string
	Prefix              string
	ScientificPrecision int
	Scientific          bool
	Uppercase           bool
}

// Formatter renders a GenericNumber as a display string according to a
// Style.
type Formatter struct {
	Style Style
}

// NewFormatter returns a Formatter using style.
func NewFormatter(style Style) Formatter {
	return Formatter{Style: style}
}

func (f Formatter) radix() int {
	switch f.Style.Base {
	case Hex:
		return 16
	case Octal:
		return 8
	case Binary:
		return 2
	default:
		return 10
	}
}

// Format renders n as a string per f.Style.
func (f Formatter) Format(n GenericNumber) string {
	if n.Kind.IsChar() {
		return string(n.Rune())
	}
	if n.Kind.IsFloat() {
		return f.formatFloat(n.AsFloat64())
	}
	if n.Kind == KindU128 || n.Kind == KindI128 {
		return f.formatWide(n)
	}

	var digits string
	if n.Kind.IsSigned() {
		digits = strconv.FormatInt(n.AsInt64(), f.radix())
	} else {
		digits = strconv.FormatUint(n.AsUint64(), f.radix())
	}
	return f.decorate(digits)
}

func (f Formatter) formatFloat(v float64) string {
	if f.Style.Scientific {
		prec := f.Style.ScientificPrecision
		if prec == 0 {
			prec = 6
		}
		return strconv.FormatFloat(v, 'e', prec, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f Formatter) formatWide(n GenericNumber) string {
	// Render the 128-bit value (its raw bit pattern) from its two 64-bit
	// halves; a Decimal style is rendered in hex instead, hex/oct/bin are
	// exact.
	radix := f.radix()
	if f.Style.Base == Decimal {
		radix = 16
	}
	v := new(big.Int).SetUint64(n.High128())
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(n.AsUint64()))
	return f.decorate(v.Text(radix))
}

func (f Formatter) decorate(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	if f.Style.Uppercase {
		digits = strings.ToUpper(digits)
	}
	if f.Style.PadWidth > len(digits) {
		digits = strings.Repeat("0", f.Style.PadWidth-len(digits)) + digits
	}
	if f.Style.GroupSize > 0 && f.Style.GroupSeparator != "" {
		digits = group(digits, f.Style.GroupSize, f.Style.GroupSeparator)
	}
	out := f.Style.Prefix + digits
	if neg {
		out = "-" + out
	}
	return out
}

func group(digits string, size int, sep string) string {
	if len(digits) <= size {
		return digits
	}
	var parts []string
	for len(digits) > size {
		cut := len(digits) - size
		parts = append([]string{digits[cut:]}, parts...)
		digits = digits[:cut]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, sep)
}
