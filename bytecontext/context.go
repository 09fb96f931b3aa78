// Package bytecontext provides ByteContext, a cheap, cloneable cursor over
// an immutable byte slice, plus Readers that consume one to produce a
// GenericNumber.
package bytecontext

import "fmt"

// Endian selects the byte order numeric Readers use.
type Endian int

const (
	LittleEndian Endian = iota
	BigEndian
)

func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// ByteContext wraps an immutable byte slice and a current position. It is a
// value type: At returns a repositioned copy without mutating the
// receiver, so the same backing slice can be viewed from many offsets at
// once without copying the bytes themselves.
type ByteContext struct {
	data   []byte
	pos    int
	endian Endian
}

// New returns a ByteContext over data, positioned at 0, using endian as the
// default byte order for Readers that don't override it.
func New(data []byte, endian Endian) ByteContext {
	return ByteContext{data: data, endian: endian}
}

// Pos returns the current position.
func (c ByteContext) Pos() int {
	return c.pos
}

// Len returns the length of the underlying byte slice.
func (c ByteContext) Len() int {
	return len(c.data)
}

// Endian returns the context's default byte order.
func (c ByteContext) Endian() Endian {
	return c.endian
}

// Bytes returns the full underlying slice (not just the remainder from
// Pos).
func (c ByteContext) Bytes() []byte {
	return c.data
}

// At returns a copy of c repositioned to offset.
func (c ByteContext) At(offset int) ByteContext {
	c.pos = offset
	return c
}

// Advance returns a copy of c moved forward by n bytes.
func (c ByteContext) Advance(n int) ByteContext {
	return c.At(c.pos + n)
}

// ReadOutOfBoundsError is returned when a read would run past the end of
// the underlying byte slice.
type ReadOutOfBoundsError struct {
	Pos  int
	Size int
	Len  int
}

func (e ReadOutOfBoundsError) Error() string {
	return fmt.Sprintf("bytecontext: read of %d bytes at %d exceeds length %d", e.Size, e.Pos, e.Len)
}

// Peek returns the n bytes starting at the current position without
// advancing it.
func (c ByteContext) Peek(n int) ([]byte, error) {
	if c.pos < 0 || n < 0 || c.pos+n > len(c.data) {
		return nil, ReadOutOfBoundsError{Pos: c.pos, Size: n, Len: len(c.data)}
	}
	return c.data[c.pos : c.pos+n], nil
}
