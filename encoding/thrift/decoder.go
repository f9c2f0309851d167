package thrift

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Decoder reads compact protocol values from a byte buffer.
//
// The decoder tracks the last field id seen at the current struct nesting
// level, so field-id deltas resolve correctly across nested structs, and it
// caches boolean values packed into field headers until the next ReadBool.
// A decoder is bound to a single buffer and is not safe for concurrent use;
// independent decoders over independent buffers are.
type Decoder struct {
	data []byte
	pos  int

	lastFieldID int16
	fieldIDs    [MaxNestingDepth]int16
	depth       int

	// 0 = empty, 1 = true, 2 = false
	pendingBool int8
}

// NewDecoder returns a Decoder reading from data. The decoder does not copy
// data and must not outlive it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Pos returns the current read position in the buffer.
func (d *Decoder) Pos() int { return d.pos }

// Remaining returns the number of bytes left to read.
func (d *Decoder) Remaining() int { return len(d.data) - d.pos }

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, malformed("unexpected end of data at offset %d", d.pos)
	}
	v := d.data[d.pos]
	d.pos++
	return v, nil
}

// ReadUvarint reads an unsigned LEB128 varint.
func (d *Decoder) ReadUvarint() (uint64, error) {
	var x uint64
	var s uint
	for i := 0; ; i++ {
		if d.pos >= len(d.data) {
			return 0, malformed("truncated varint at offset %d", d.pos)
		}
		v := d.data[d.pos]
		d.pos++
		if v < 0x80 {
			if i >= binary.MaxVarintLen64 || i == binary.MaxVarintLen64-1 && v > 1 {
				return 0, malformed("varint overflows 64 bits at offset %d", d.pos)
			}
			return x | uint64(v)<<s, nil
		}
		x |= uint64(v&0x7f) << s
		s += 7
	}
}

// ReadVarint reads a zigzag-encoded signed varint.
func (d *Decoder) ReadVarint() (int64, error) {
	ux, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	x := int64(ux >> 1)
	if ux&1 != 0 {
		x = ^x
	}
	return x, nil
}

// ReadI8 reads a single signed byte.
func (d *Decoder) ReadI8() (int8, error) {
	v, err := d.readByte()
	return int8(v), err
}

// ReadI16 reads a zigzag varint narrowed to 16 bits.
func (d *Decoder) ReadI16() (int16, error) {
	v, err := d.ReadVarint()
	return int16(v), err
}

// ReadI32 reads a zigzag varint narrowed to 32 bits.
func (d *Decoder) ReadI32() (int32, error) {
	v, err := d.ReadVarint()
	return int32(v), err
}

// ReadI64 reads a zigzag varint.
func (d *Decoder) ReadI64() (int64, error) {
	return d.ReadVarint()
}

// ReadDouble reads an 8-byte little-endian IEEE-754 value.
func (d *Decoder) ReadDouble() (float64, error) {
	if d.pos+8 > len(d.data) {
		return 0, malformed("truncated double at offset %d", d.pos)
	}
	bits := binary.LittleEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return math.Float64frombits(bits), nil
}

// ReadBytes reads a length-prefixed byte value. The returned slice references
// the decoder's buffer; it is not a copy.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(d.data)-d.pos) {
		return nil, malformed("binary length %d exceeds %d remaining bytes at offset %d", n, len(d.data)-d.pos, d.pos)
	}
	if n == 0 {
		return nil, nil
	}
	v := d.data[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return v, nil
}

// ReadString reads a length-prefixed UTF-8 string. The returned string shares
// memory with the decoder's buffer.
func (d *Decoder) ReadString() (string, error) {
	data, err := d.ReadBytes()
	if err != nil || len(data) == 0 {
		return "", err
	}
	return unsafe.String(&data[0], len(data)), nil
}

// ReadBool returns a boolean carried by the most recent field header when one
// is pending, otherwise it decodes a literal boolean byte.
func (d *Decoder) ReadBool() (bool, error) {
	if d.pendingBool != 0 {
		v := d.pendingBool == 1
		d.pendingBool = 0
		return v, nil
	}
	v, err := d.readByte()
	return v == 1, err
}

// ReadFieldHeader reads a field header and returns the resolved field id and
// wire type. A STOP type marks the end of the enclosing struct; the id is
// meaningless in that case. Boolean field values are packed into the header
// type and cached for the next ReadBool.
func (d *Decoder) ReadFieldHeader() (int16, Type, error) {
	v, err := d.readByte()
	if err != nil {
		return 0, 0, err
	}
	typ := Type(v & 0x0f)
	if typ == STOP {
		return 0, STOP, nil
	}

	var id int16
	if delta := int16(v >> 4); delta != 0 {
		id = d.lastFieldID + delta
	} else {
		id, err = d.ReadI16()
		if err != nil {
			return 0, 0, err
		}
	}
	d.lastFieldID = id

	switch typ {
	case TRUE:
		d.pendingBool = 1
	case FALSE:
		d.pendingBool = 2
	}
	return id, typ, nil
}

// ReadListHeader reads a list or set header, returning the element count and
// element wire type.
func (d *Decoder) ReadListHeader() (int, Type, error) {
	v, err := d.readByte()
	if err != nil {
		return 0, 0, err
	}
	typ := Type(v & 0x0f)
	size := int(v >> 4)
	if size == 0x0f {
		n, err := d.ReadUvarint()
		if err != nil {
			return 0, 0, err
		}
		size = int(n)
	}
	return size, typ, nil
}

// ReadMapHeader reads a map header, returning the entry count and the key and
// value wire types. An empty map carries no types byte; both types are STOP.
func (d *Decoder) ReadMapHeader() (int, Type, Type, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return 0, 0, 0, err
	}
	if n == 0 {
		return 0, STOP, STOP, nil
	}
	v, err := d.readByte()
	if err != nil {
		return 0, 0, 0, err
	}
	return int(n), Type(v >> 4), Type(v & 0x0f), nil
}

// ReadStructBegin enters a nested struct: the current last field id is saved
// and reset, so the struct's field-id deltas resolve relative to its start.
func (d *Decoder) ReadStructBegin() error {
	if d.depth == MaxNestingDepth {
		return malformed("struct nesting exceeds %d levels at offset %d", MaxNestingDepth, d.pos)
	}
	d.fieldIDs[d.depth] = d.lastFieldID
	d.depth++
	d.lastFieldID = 0
	return nil
}

// ReadStructEnd leaves a nested struct, restoring the enclosing struct's last
// field id.
func (d *Decoder) ReadStructEnd() error {
	if d.depth == 0 {
		return malformed("unbalanced struct end at offset %d", d.pos)
	}
	d.depth--
	d.lastFieldID = d.fieldIDs[d.depth]
	return nil
}

// Skip discards a value of the given wire type without materializing it.
func (d *Decoder) Skip(typ Type) error {
	switch typ {
	case TRUE, FALSE:
		d.pendingBool = 0
		return nil
	case I8:
		_, err := d.readByte()
		return err
	case I16, I32, I64:
		_, err := d.ReadUvarint()
		return err
	case DOUBLE:
		if d.pos+8 > len(d.data) {
			return malformed("truncated double at offset %d", d.pos)
		}
		d.pos += 8
		return nil
	case BINARY:
		_, err := d.ReadBytes()
		return err
	case LIST, SET:
		size, elem, err := d.ReadListHeader()
		if err != nil {
			return err
		}
		for i := 0; i < size; i++ {
			if err := d.Skip(elem); err != nil {
				return err
			}
		}
		return nil
	case MAP:
		size, key, val, err := d.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := 0; i < size; i++ {
			if err := d.Skip(key); err != nil {
				return err
			}
			if err := d.Skip(val); err != nil {
				return err
			}
		}
		return nil
	case STRUCT:
		if err := d.ReadStructBegin(); err != nil {
			return err
		}
		for {
			_, fieldType, err := d.ReadFieldHeader()
			if err != nil {
				return err
			}
			if fieldType == STOP {
				return d.ReadStructEnd()
			}
			if err := d.Skip(fieldType); err != nil {
				return err
			}
		}
	default:
		return malformed("cannot skip unknown type %s at offset %d", typ, d.pos)
	}
}
