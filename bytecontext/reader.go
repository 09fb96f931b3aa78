package bytecontext

import (
	"encoding/binary"
	"math"
)

// Reader is a pure, value-typed descriptor of how to decode a fixed-width
// value out of a ByteContext: its Kind determines width, signedness and
// float-ness; Endian, if non-nil, overrides the ByteContext's own default
// for this one read.
type Reader struct {
	Kind   Kind
	Endian *Endian
}

// NewReader returns a Reader for kind using the ByteContext's own endian
// hint.
func NewReader(kind Kind) Reader {
	return Reader{Kind: kind}
}

// WithEndian returns a copy of r that always reads using endian, regardless
// of the ByteContext it is applied to.
func (r Reader) WithEndian(endian Endian) Reader {
	r.Endian = &endian
	return r
}

// Size returns the number of bytes this reader consumes.
func (r Reader) Size() int {
	return r.Kind.Width()
}

func (r Reader) endianOf(ctx ByteContext) Endian {
	if r.Endian != nil {
		return *r.Endian
	}
	return ctx.Endian()
}

func byteOrder(e Endian) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Read decodes a GenericNumber from ctx at its current position. It does
// not advance ctx; callers that walk forward do so via ctx.Advance(r.Size()).
func (r Reader) Read(ctx ByteContext) (GenericNumber, error) {
	buf, err := ctx.Peek(r.Size())
	if err != nil {
		return GenericNumber{}, err
	}
	order := byteOrder(r.endianOf(ctx))

	switch r.Kind {
	case KindU8, KindChar8:
		return GenericNumber{Kind: r.Kind, lo: uint64(buf[0])}, nil
	case KindI8:
		return NewInt(r.Kind, int64(int8(buf[0]))), nil
	case KindU16, KindChar16:
		return NewUint(r.Kind, uint64(order.Uint16(buf))), nil
	case KindI16:
		return NewInt(r.Kind, int64(int16(order.Uint16(buf)))), nil
	case KindU32, KindChar32:
		return NewUint(r.Kind, uint64(order.Uint32(buf))), nil
	case KindI32:
		return NewInt(r.Kind, int64(int32(order.Uint32(buf)))), nil
	case KindU64:
		return NewUint(r.Kind, order.Uint64(buf)), nil
	case KindI64:
		return NewInt(r.Kind, int64(order.Uint64(buf))), nil
	case KindU128:
		return readWide(buf, order, false), nil
	case KindI128:
		return readWide(buf, order, true), nil
	case KindF32:
		return NewFloat(KindF32, float64(math.Float32frombits(order.Uint32(buf)))), nil
	case KindF64:
		return NewFloat(KindF64, math.Float64frombits(order.Uint64(buf))), nil
	default:
		return GenericNumber{}, UnsupportedKindError{Kind: r.Kind}
	}
}

func readWide(buf []byte, order binary.ByteOrder, signed bool) GenericNumber {
	var hi, lo uint64
	if order == binary.BigEndian {
		hi = binary.BigEndian.Uint64(buf[0:8])
		lo = binary.BigEndian.Uint64(buf[8:16])
	} else {
		lo = binary.LittleEndian.Uint64(buf[0:8])
		hi = binary.LittleEndian.Uint64(buf[8:16])
	}
	if signed {
		return NewInt128(hi, lo)
	}
	return NewUint128(hi, lo)
}

// UnsupportedKindError is returned when a Reader is asked to decode a Kind
// with no defined fixed-width decoding (e.g. it was meant for LPString /
// NTString length-prefixed or terminated reads instead).
type UnsupportedKindError struct {
	Kind Kind
}

func (e UnsupportedKindError) Error() string {
	return "bytecontext: unsupported kind for fixed-width read: " + e.Kind.String()
}
