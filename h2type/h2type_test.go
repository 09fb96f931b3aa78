package h2type

import (
	"testing"

	"github.com/h2gb/h2core/bytecontext"
	"github.com/h2gb/h2core/datareg"
)

// S1: numeric read at several offsets.
func TestNumberDisplay(t *testing.T) {
	data := []byte{0x00, 0x00, 0x7F, 0xFF, 0x80, 0x00, 0xFF, 0xFF}
	reader := bytecontext.NewReader(bytecontext.KindI16).WithEndian(bytecontext.BigEndian)
	formatter := bytecontext.NewFormatter(bytecontext.Style{Base: bytecontext.Decimal})
	typ := NewNumber(reader, formatter, None())

	cases := []struct {
		offset int
		want   string
	}{
		{0, "0"},
		{2, "32767"},
		{4, "-32768"},
		{6, "-1"},
	}
	for _, c := range cases {
		ctx := bytecontext.New(data, bytecontext.BigEndian).At(c.offset)
		display, err := typ.ToDisplay(Dynamic(ctx))
		if err != nil {
			t.Fatalf("offset %d: ToDisplay: %v", c.offset, err)
		}
		if display != c.want {
			t.Errorf("offset %d: display = %q, want %q", c.offset, display, c.want)
		}
		sz, err := typ.AlignedSize(Dynamic(ctx))
		if err != nil {
			t.Fatalf("offset %d: AlignedSize: %v", c.offset, err)
		}
		if sz != 2 {
			t.Errorf("offset %d: aligned size = %d, want 2", c.offset, sz)
		}
	}
}

// S2: loose alignment pads base_size 2 up to aligned_size 4.
func TestLooseAlignment(t *testing.T) {
	data := []byte{
		0x00, 0x00, 'P', 'P',
		0x7F, 0xFF, 'P', 'P',
		0x80, 0x00, 'P', 'P',
		0xFF, 0xFF, 'P', 'P',
	}
	reader := bytecontext.NewReader(bytecontext.KindU16).WithEndian(bytecontext.BigEndian)
	formatter := bytecontext.NewFormatter(bytecontext.Style{Base: bytecontext.Hex, Prefix: "0x", PadWidth: 4})
	typ := NewNumber(reader, formatter, Loose(4))

	cases := []struct {
		offset int
		want   string
	}{
		{0, "0x0000"},
		{4, "0x7fff"},
		{8, "0x8000"},
		{12, "0xffff"},
	}
	for _, c := range cases {
		ctx := bytecontext.New(data, bytecontext.BigEndian).At(c.offset)
		off := Dynamic(ctx)
		base, err := typ.BaseSize(off)
		if err != nil || base != 2 {
			t.Fatalf("offset %d: base size = %d, %v, want 2", c.offset, base, err)
		}
		aligned, err := typ.AlignedSize(off)
		if err != nil || aligned != 4 {
			t.Fatalf("offset %d: aligned size = %d, %v, want 4", c.offset, aligned, err)
		}
		display, err := typ.ToDisplay(off)
		if err != nil || display != c.want {
			t.Errorf("offset %d: display = %q, %v, want %q", c.offset, display, err, c.want)
		}
	}
}

// S3: dynamic array of LPStrings.
func TestArrayOfLPStrings(t *testing.T) {
	data := []byte{
		0x02, 'h', 'i',
		0x03, 'b', 'y', 'e',
		0x04, 't', 'e', 's', 't',
	}
	lp := NewLPString(bytecontext.NewReader(bytecontext.KindU8), 1, None())
	arr := NewArray(3, lp, None())

	ctx := bytecontext.New(data, bytecontext.LittleEndian)
	off := Dynamic(ctx)

	size, err := arr.AlignedSize(off)
	if err != nil {
		t.Fatalf("AlignedSize: %v", err)
	}
	if size != 12 {
		t.Fatalf("size = %d, want 12", size)
	}

	display, err := arr.ToDisplay(off)
	if err != nil {
		t.Fatalf("ToDisplay: %v", err)
	}
	want := `[ "hi", "bye", "test" ]`
	if display != want {
		t.Fatalf("display = %q, want %q", display, want)
	}
}

func TestStrictAlignmentRejectsMisalignedStart(t *testing.T) {
	data := make([]byte, 16)
	reader := bytecontext.NewReader(bytecontext.KindU32)
	formatter := bytecontext.NewFormatter(bytecontext.Style{Base: bytecontext.Decimal})
	typ := NewNumber(reader, formatter, Strict(4))

	ctx := bytecontext.New(data, bytecontext.LittleEndian).At(2)
	if _, err := typ.AlignedSize(Dynamic(ctx)); err == nil {
		t.Fatal("expected MisalignedError for offset 2 with modulus 4")
	}

	ctx = ctx.At(4)
	if _, err := typ.AlignedSize(Dynamic(ctx)); err != nil {
		t.Fatalf("offset 4 should satisfy modulus 4: %v", err)
	}
}

func TestStructFieldLayout(t *testing.T) {
	u8 := NewNumber(bytecontext.NewReader(bytecontext.KindU8), bytecontext.NewFormatter(bytecontext.Style{}), None())
	u16 := NewNumber(bytecontext.NewReader(bytecontext.KindU16).WithEndian(bytecontext.BigEndian), bytecontext.NewFormatter(bytecontext.Style{}), None())
	s := NewStruct([]StructField{
		{Name: "kind", Type: u8},
		{Name: "value", Type: u16},
	}, None())

	data := []byte{0x01, 0x00, 0x2A}
	ctx := bytecontext.New(data, bytecontext.BigEndian)
	off := Dynamic(ctx)

	size, err := s.AlignedSize(off)
	if err != nil {
		t.Fatalf("AlignedSize: %v", err)
	}
	if size != 3 {
		t.Fatalf("size = %d, want 3", size)
	}

	resolved, err := s.Resolve(off)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(resolved.Children))
	}
	if resolved.Children[1].Range.Start != 1 || resolved.Children[1].Range.End != 3 {
		t.Fatalf("value field range = %v, want [1,3)", resolved.Children[1].Range)
	}
}

func TestEnumUnknownFallback(t *testing.T) {
	reg := datareg.New()
	if err := reg.LoadDatum(datareg.KindEnums, "", "color", map[int64]string{1: "RED", 2: "GREEN"}); err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	e := NewEnum(bytecontext.NewReader(bytecontext.KindU8), bytecontext.NewFormatter(bytecontext.Style{}), reg, "", "color", None())

	ctx := bytecontext.New([]byte{1}, bytecontext.LittleEndian)
	display, err := e.ToDisplay(Dynamic(ctx))
	if err != nil || display != "RED" {
		t.Fatalf("display = %q, %v, want RED", display, err)
	}

	ctx = bytecontext.New([]byte{99}, bytecontext.LittleEndian)
	display, err = e.ToDisplay(Dynamic(ctx))
	if err != nil {
		t.Fatalf("ToDisplay: %v", err)
	}
	if display != "99 <unknown>" {
		t.Fatalf("display = %q, want numeric fallback", display)
	}
}

func TestBitmaskDisplay(t *testing.T) {
	reg := datareg.New()
	if err := reg.LoadDatum(datareg.KindBitmasks, "", "flags", map[uint]string{0: "READ", 1: "WRITE"}); err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	b := NewBitmask(bytecontext.NewReader(bytecontext.KindU8), reg, "", "flags", None())
	ctx := bytecontext.New([]byte{0b101}, bytecontext.LittleEndian)
	display, err := b.ToDisplay(Dynamic(ctx))
	if err != nil {
		t.Fatalf("ToDisplay: %v", err)
	}
	if display != "READ|unknown(0x4)" && display != "unknown(0x4)|READ" {
		t.Fatalf("display = %q", display)
	}
}

func TestStaticOffsetRejectsDataDependentDisplay(t *testing.T) {
	typ := NewNumber(bytecontext.NewReader(bytecontext.KindU32), bytecontext.NewFormatter(bytecontext.Style{}), None())
	if _, err := typ.ToDisplay(Static(4)); err == nil {
		t.Fatal("expected RequireDynamicError for Static offset")
	}
	if sz, err := typ.BaseSize(Static(4)); err != nil || sz != 4 {
		t.Fatalf("BaseSize on Static offset should succeed for fixed-size Number: %d, %v", sz, err)
	}
}

func TestNTStringTerminator(t *testing.T) {
	data := []byte{'h', 'i', 0x00, 0xFF}
	nt := NewNTString(1, nil, None())
	ctx := bytecontext.New(data, bytecontext.LittleEndian)
	size, err := nt.AlignedSize(Dynamic(ctx))
	if err != nil {
		t.Fatalf("AlignedSize: %v", err)
	}
	if size != 3 {
		t.Fatalf("size = %d, want 3", size)
	}
	display, err := nt.ToDisplay(Dynamic(ctx))
	if err != nil {
		t.Fatalf("ToDisplay: %v", err)
	}
	if display != `"hi"` {
		t.Fatalf("display = %q, want \"hi\"", display)
	}
}
