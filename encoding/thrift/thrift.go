// Package thrift implements the compact binary protocol used by parquet file
// metadata.
//
// Only the subset of the protocol that appears in parquet files is supported:
// the compact field/list/map headers, varint and zigzag integers, doubles, and
// length-prefixed binary. Decoding is zero-copy; byte and string values
// reference the input buffer, which must remain valid for as long as the
// decoded values are in use.
package thrift

import (
	"errors"
	"fmt"
)

// Type represents the wire type of a field in the compact protocol.
type Type int8

const (
	STOP Type = iota
	TRUE
	FALSE
	I8
	I16
	I32
	I64
	DOUBLE
	BINARY
	LIST
	SET
	MAP
	STRUCT
)

func (t Type) String() string {
	switch t {
	case STOP:
		return "STOP"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case DOUBLE:
		return "DOUBLE"
	case BINARY:
		return "BINARY"
	case LIST:
		return "LIST"
	case SET:
		return "SET"
	case MAP:
		return "MAP"
	case STRUCT:
		return "STRUCT"
	default:
		return fmt.Sprintf("Type(%d)", int8(t))
	}
}

// MaxNestingDepth is the maximum depth of nested structs a decoder or encoder
// will track. Real-world parquet metadata rarely nests past single digits;
// exceeding the bound indicates corrupt or adversarial input.
const MaxNestingDepth = 16

// ErrMalformed is the error kind reported for every protocol violation:
// truncated input, varints exceeding their representable width, invalid
// lengths, nesting deeper than MaxNestingDepth, or unknown wire types.
// Errors returned by this package all match it with errors.Is.
var ErrMalformed = errors.New("malformed thrift data")

func malformed(msg string, args ...any) error {
	return fmt.Errorf("thrift: %s: %w", fmt.Sprintf(msg, args...), ErrMalformed)
}
