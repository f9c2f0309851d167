package thrift

import (
	"encoding/binary"
	"math"
)

// Encoder writes compact protocol values to an in-memory buffer, mirroring
// the Decoder's field-id delta and nesting rules. It exists primarily so
// decoders can be exercised against an independent encoding of the same wire
// format, and to serialize metadata produced programmatically.
type Encoder struct {
	buf []byte

	lastFieldID int16
	fieldIDs    [MaxNestingDepth]int16
	depth       int
}

// Bytes returns the encoded data.
func (e *Encoder) Bytes() []byte { return e.buf }

// Reset discards all encoded data and nesting state.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.lastFieldID = 0
	e.depth = 0
}

// WriteUvarint writes an unsigned LEB128 varint.
func (e *Encoder) WriteUvarint(v uint64) {
	e.buf = binary.AppendUvarint(e.buf, v)
}

// WriteVarint writes a zigzag-encoded signed varint.
func (e *Encoder) WriteVarint(v int64) {
	e.WriteUvarint(uint64(v<<1) ^ uint64(v>>63))
}

// WriteI8 writes a single signed byte.
func (e *Encoder) WriteI8(v int8) {
	e.buf = append(e.buf, byte(v))
}

// WriteI16 writes a zigzag varint.
func (e *Encoder) WriteI16(v int16) { e.WriteVarint(int64(v)) }

// WriteI32 writes a zigzag varint.
func (e *Encoder) WriteI32(v int32) { e.WriteVarint(int64(v)) }

// WriteI64 writes a zigzag varint.
func (e *Encoder) WriteI64(v int64) { e.WriteVarint(v) }

// WriteDouble writes an 8-byte little-endian IEEE-754 value.
func (e *Encoder) WriteDouble(v float64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
}

// WriteBytes writes a length-prefixed byte value.
func (e *Encoder) WriteBytes(v []byte) {
	e.WriteUvarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// WriteString writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(v string) {
	e.WriteUvarint(uint64(len(v)))
	e.buf = append(e.buf, v...)
}

// WriteBool writes a literal boolean byte, as used for list and map elements.
// Boolean struct fields are carried by the field header instead; see
// WriteFieldHeader with TRUE or FALSE.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

// WriteFieldHeader writes a field header for the given id and wire type,
// using the short delta form when the id is within 15 of the last field id at
// this nesting level and the explicit zigzag form otherwise. Boolean values
// are encoded by passing TRUE or FALSE as the type, with no value bytes.
func (e *Encoder) WriteFieldHeader(id int16, typ Type) {
	if delta := id - e.lastFieldID; delta > 0 && delta <= 15 {
		e.buf = append(e.buf, byte(delta)<<4|byte(typ))
	} else {
		e.buf = append(e.buf, byte(typ))
		e.WriteI16(id)
	}
	e.lastFieldID = id
}

// WriteListHeader writes a list or set header.
func (e *Encoder) WriteListHeader(size int, elem Type) {
	if size < 0x0f {
		e.buf = append(e.buf, byte(size)<<4|byte(elem))
	} else {
		e.buf = append(e.buf, 0xf0|byte(elem))
		e.WriteUvarint(uint64(size))
	}
}

// WriteMapHeader writes a map header. Empty maps carry no types byte.
func (e *Encoder) WriteMapHeader(size int, key, val Type) {
	e.WriteUvarint(uint64(size))
	if size > 0 {
		e.buf = append(e.buf, byte(key)<<4|byte(val))
	}
}

// WriteStructBegin enters a nested struct.
func (e *Encoder) WriteStructBegin() {
	e.fieldIDs[e.depth] = e.lastFieldID
	e.depth++
	e.lastFieldID = 0
}

// WriteStructEnd writes the stop sentinel and leaves the struct.
func (e *Encoder) WriteStructEnd() {
	e.buf = append(e.buf, byte(STOP))
	e.depth--
	e.lastFieldID = e.fieldIDs[e.depth]
}
