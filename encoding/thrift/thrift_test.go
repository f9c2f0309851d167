package thrift

import (
	"errors"
	"math"
	"testing"
)

func TestReadUvarint(t *testing.T) {
	values := []uint64{0, 1, 2, 127, 128, 300, 16383, 16384, 1<<32 - 1, 1 << 32, 1<<63 - 1, 1<<64 - 1}

	for _, want := range values {
		e := new(Encoder)
		e.WriteUvarint(want)

		d := NewDecoder(e.Bytes())
		got, err := d.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint(%d): %v", want, err)
		}
		if got != want {
			t.Errorf("ReadUvarint: got %d, want %d", got, want)
		}
		if d.Remaining() != 0 {
			t.Errorf("ReadUvarint(%d): %d bytes left unread", want, d.Remaining())
		}
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, err := NewDecoder(data).ReadUvarint()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestReadUvarintTruncated(t *testing.T) {
	_, err := NewDecoder([]byte{0x80, 0x80}).ReadUvarint()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestReadVarint(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, 63, -64, 64, math.MaxInt32, math.MinInt32, math.MaxInt64, math.MinInt64}

	for _, want := range values {
		e := new(Encoder)
		e.WriteVarint(want)

		got, err := NewDecoder(e.Bytes()).ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", want, err)
		}
		if got != want {
			t.Errorf("ReadVarint: got %d, want %d", got, want)
		}
	}
}

func TestReadI16(t *testing.T) {
	for _, want := range []int16{0, 1, -1, 42, math.MaxInt16, math.MinInt16} {
		e := new(Encoder)
		e.WriteI16(want)

		got, err := NewDecoder(e.Bytes()).ReadI16()
		if err != nil {
			t.Fatalf("ReadI16(%d): %v", want, err)
		}
		if got != want {
			t.Errorf("ReadI16: got %d, want %d", got, want)
		}
	}
}

func TestReadDouble(t *testing.T) {
	values := []float64{0, 1, -1, 0.5, math.Pi, math.MaxFloat64, math.Inf(1), math.Inf(-1)}

	for _, want := range values {
		e := new(Encoder)
		e.WriteDouble(want)

		got, err := NewDecoder(e.Bytes()).ReadDouble()
		if err != nil {
			t.Fatalf("ReadDouble(%g): %v", want, err)
		}
		if got != want {
			t.Errorf("ReadDouble: got %g, want %g", got, want)
		}
	}

	if _, err := NewDecoder([]byte{1, 2, 3}).ReadDouble(); !errors.Is(err, ErrMalformed) {
		t.Errorf("short double: got %v, want ErrMalformed", err)
	}
}

func TestReadString(t *testing.T) {
	for _, want := range []string{"", "a", "hello", "héllo wörld"} {
		e := new(Encoder)
		e.WriteString(want)

		got, err := NewDecoder(e.Bytes()).ReadString()
		if err != nil {
			t.Fatalf("ReadString(%q): %v", want, err)
		}
		if got != want {
			t.Errorf("ReadString: got %q, want %q", got, want)
		}
	}
}

func TestReadBytesZeroCopy(t *testing.T) {
	e := new(Encoder)
	e.WriteBytes([]byte("payload"))

	data := e.Bytes()
	got, err := NewDecoder(data).ReadBytes()
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &data[1] {
		t.Error("ReadBytes copied the payload instead of referencing the buffer")
	}
}

func TestReadBytesLengthOutOfBounds(t *testing.T) {
	// Declares 100 bytes of payload but supplies 2.
	_, err := NewDecoder([]byte{100, 'a', 'b'}).ReadBytes()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestReadListHeader(t *testing.T) {
	tests := []struct {
		scenario string
		size     int
		elem     Type
	}{
		{scenario: "empty", size: 0, elem: I32},
		{scenario: "inline size", size: 3, elem: BINARY},
		{scenario: "max inline size", size: 14, elem: I64},
		{scenario: "escaped size", size: 15, elem: STRUCT},
		{scenario: "large escaped size", size: 100000, elem: DOUBLE},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			e := new(Encoder)
			e.WriteListHeader(test.size, test.elem)

			d := NewDecoder(e.Bytes())
			size, elem, err := d.ReadListHeader()
			if err != nil {
				t.Fatal(err)
			}
			if size != test.size || elem != test.elem {
				t.Errorf("got (%d, %s), want (%d, %s)", size, elem, test.size, test.elem)
			}
			if d.Remaining() != 0 {
				t.Errorf("%d bytes left unread", d.Remaining())
			}
		})
	}
}

func TestReadMapHeader(t *testing.T) {
	e := new(Encoder)
	e.WriteMapHeader(3, I32, BINARY)

	size, key, val, err := NewDecoder(e.Bytes()).ReadMapHeader()
	if err != nil {
		t.Fatal(err)
	}
	if size != 3 || key != I32 || val != BINARY {
		t.Errorf("got (%d, %s, %s), want (3, I32, BINARY)", size, key, val)
	}
}

func TestReadMapHeaderEmpty(t *testing.T) {
	e := new(Encoder)
	e.WriteMapHeader(0, I32, BINARY)

	// An empty map is a single varint zero with no types byte.
	if len(e.Bytes()) != 1 {
		t.Fatalf("empty map encoded as %d bytes, want 1", len(e.Bytes()))
	}

	d := NewDecoder(e.Bytes())
	size, _, _, err := d.ReadMapHeader()
	if err != nil {
		t.Fatal(err)
	}
	if size != 0 {
		t.Errorf("got size %d, want 0", size)
	}
	if d.Remaining() != 0 {
		t.Errorf("%d bytes left unread", d.Remaining())
	}
}

func TestFieldIDDeltas(t *testing.T) {
	e := new(Encoder)
	for _, id := range []int16{1, 2, 5} {
		e.WriteFieldHeader(id, I32)
		e.WriteI32(0)
	}

	d := NewDecoder(e.Bytes())
	for _, want := range []int16{1, 2, 5} {
		id, typ, err := d.ReadFieldHeader()
		if err != nil {
			t.Fatal(err)
		}
		if id != want || typ != I32 {
			t.Errorf("got field (%d, %s), want (%d, I32)", id, typ, want)
		}
		if _, err := d.ReadI32(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFieldIDLongForm(t *testing.T) {
	// A gap greater than 15 cannot use the delta form.
	e := new(Encoder)
	e.WriteFieldHeader(1, I32)
	e.WriteI32(0)
	e.WriteFieldHeader(100, I32)
	e.WriteI32(0)

	// Long form is a bare type nibble followed by the explicit zigzag id.
	if b := e.Bytes()[2]; b>>4 != 0 {
		t.Fatalf("expected long form header, got delta %d", b>>4)
	}

	d := NewDecoder(e.Bytes())
	for _, want := range []int16{1, 100} {
		id, _, err := d.ReadFieldHeader()
		if err != nil {
			t.Fatal(err)
		}
		if id != want {
			t.Errorf("got field id %d, want %d", id, want)
		}
		if _, err := d.ReadI32(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNestedStructFieldIDs(t *testing.T) {
	// The field-id counter restarts in nested structs and is restored on
	// return, so the outer delta chain continues where it left off.
	e := new(Encoder)
	e.WriteFieldHeader(3, STRUCT)
	e.WriteStructBegin()
	e.WriteFieldHeader(1, I32)
	e.WriteI32(7)
	e.WriteStructEnd()
	e.WriteFieldHeader(4, I32) // delta 1 from 3, valid only if restored
	e.WriteI32(8)

	d := NewDecoder(e.Bytes())
	id, typ, err := d.ReadFieldHeader()
	if err != nil || id != 3 || typ != STRUCT {
		t.Fatalf("outer field: got (%d, %s, %v)", id, typ, err)
	}
	if err := d.ReadStructBegin(); err != nil {
		t.Fatal(err)
	}
	if id, _, err = d.ReadFieldHeader(); err != nil || id != 1 {
		t.Fatalf("inner field: got (%d, %v)", id, err)
	}
	if _, err := d.ReadI32(); err != nil {
		t.Fatal(err)
	}
	if _, typ, err = d.ReadFieldHeader(); err != nil || typ != STOP {
		t.Fatalf("inner stop: got (%s, %v)", typ, err)
	}
	if err := d.ReadStructEnd(); err != nil {
		t.Fatal(err)
	}
	if id, _, err = d.ReadFieldHeader(); err != nil || id != 4 {
		t.Fatalf("outer field after struct: got (%d, %v)", id, err)
	}
}

func TestStructNestingLimit(t *testing.T) {
	d := NewDecoder(nil)
	for i := 0; i < MaxNestingDepth; i++ {
		if err := d.ReadStructBegin(); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := d.ReadStructBegin(); !errors.Is(err, ErrMalformed) {
		t.Errorf("push past limit: got %v, want ErrMalformed", err)
	}
	for i := 0; i < MaxNestingDepth; i++ {
		if err := d.ReadStructEnd(); err != nil {
			t.Fatalf("pop %d: %v", i, err)
		}
	}
	if err := d.ReadStructEnd(); !errors.Is(err, ErrMalformed) {
		t.Errorf("pop on empty stack: got %v, want ErrMalformed", err)
	}
}

func TestPendingBool(t *testing.T) {
	e := new(Encoder)
	e.WriteFieldHeader(1, TRUE)
	e.WriteBool(false) // literal byte, not header-carried

	d := NewDecoder(e.Bytes())
	_, typ, err := d.ReadFieldHeader()
	if err != nil {
		t.Fatal(err)
	}
	if typ != TRUE {
		t.Fatalf("got type %s, want TRUE", typ)
	}

	pos := d.Pos()
	v, err := d.ReadBool()
	if err != nil {
		t.Fatal(err)
	}
	if !v {
		t.Error("header-carried bool: got false, want true")
	}
	if d.Pos() != pos {
		t.Error("header-carried bool consumed bytes")
	}

	// With the cache drained the next read falls back to a literal byte.
	v, err = d.ReadBool()
	if err != nil {
		t.Fatal(err)
	}
	if v {
		t.Error("literal bool: got true, want false")
	}
	if d.Pos() != pos+1 {
		t.Error("literal bool did not consume exactly one byte")
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		scenario string
		typ      Type
		encode   func(*Encoder)
	}{
		{scenario: "bool true", typ: TRUE, encode: func(e *Encoder) {}},
		{scenario: "i8", typ: I8, encode: func(e *Encoder) { e.WriteI8(42) }},
		{scenario: "i16", typ: I16, encode: func(e *Encoder) { e.WriteI16(-42) }},
		{scenario: "i32", typ: I32, encode: func(e *Encoder) { e.WriteI32(123456) }},
		{scenario: "i64", typ: I64, encode: func(e *Encoder) { e.WriteI64(-123456789) }},
		{scenario: "double", typ: DOUBLE, encode: func(e *Encoder) { e.WriteDouble(math.Pi) }},
		{scenario: "binary", typ: BINARY, encode: func(e *Encoder) { e.WriteBytes([]byte("some payload")) }},
		{
			scenario: "list of i32",
			typ:      LIST,
			encode: func(e *Encoder) {
				e.WriteListHeader(3, I32)
				for i := 0; i < 3; i++ {
					e.WriteI32(int32(i))
				}
			},
		},
		{
			scenario: "list of lists",
			typ:      LIST,
			encode: func(e *Encoder) {
				e.WriteListHeader(2, LIST)
				for i := 0; i < 2; i++ {
					e.WriteListHeader(1, BINARY)
					e.WriteBytes([]byte("x"))
				}
			},
		},
		{
			scenario: "empty map",
			typ:      MAP,
			encode:   func(e *Encoder) { e.WriteMapHeader(0, I32, I32) },
		},
		{
			scenario: "struct",
			typ:      STRUCT,
			encode: func(e *Encoder) {
				e.WriteStructBegin()
				e.WriteFieldHeader(1, I64)
				e.WriteI64(1)
				e.WriteFieldHeader(2, BINARY)
				e.WriteBytes([]byte("nested"))
				e.WriteStructEnd()
			},
		},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			e := new(Encoder)
			test.encode(e)
			e.WriteDouble(math.E) // trailing sibling data

			d := NewDecoder(e.Bytes())
			if test.typ == TRUE {
				d.pendingBool = 1
			}
			if err := d.Skip(test.typ); err != nil {
				t.Fatal(err)
			}
			v, err := d.ReadDouble()
			if err != nil {
				t.Fatal(err)
			}
			if v != math.E {
				t.Errorf("cursor landed at the wrong offset: read %g, want %g", v, math.E)
			}
		})
	}
}

func TestSkipStructWithUnknownMapField(t *testing.T) {
	// A struct containing an unknown map field of 3 (i32, binary) entries
	// must be skipped past its stop marker, leaving the cursor at the next
	// sibling's field header.
	e := new(Encoder)
	e.WriteFieldHeader(1, STRUCT)
	e.WriteStructBegin()
	e.WriteFieldHeader(9, MAP)
	e.WriteMapHeader(3, I32, BINARY)
	for i := 0; i < 3; i++ {
		e.WriteI32(int32(i))
		e.WriteBytes([]byte("value"))
	}
	e.WriteStructEnd()
	e.WriteFieldHeader(2, I32)
	e.WriteI32(777)

	d := NewDecoder(e.Bytes())
	if _, _, err := d.ReadFieldHeader(); err != nil {
		t.Fatal(err)
	}
	if err := d.Skip(STRUCT); err != nil {
		t.Fatal(err)
	}

	id, typ, err := d.ReadFieldHeader()
	if err != nil {
		t.Fatal(err)
	}
	if id != 2 || typ != I32 {
		t.Fatalf("next sibling: got (%d, %s), want (2, I32)", id, typ)
	}
	v, err := d.ReadI32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 777 {
		t.Errorf("next sibling value: got %d, want 777", v)
	}
}

func TestSkipUnknownType(t *testing.T) {
	if err := NewDecoder(nil).Skip(Type(13)); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestSkipDeeplyNestedStruct(t *testing.T) {
	// More STRUCT nesting than the decoder's stack allows must fail instead
	// of recursing unbounded.
	data := make([]byte, 0, MaxNestingDepth+1)
	for i := 0; i < MaxNestingDepth+1; i++ {
		data = append(data, 0x1c) // delta 1, type STRUCT
	}

	err := NewDecoder(data).Skip(STRUCT)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}
