package pqmeta

import (
	"strconv"
	"strings"

	"github.com/pqmeta/pqmeta/format"
)

// String renders the schema in the message format commonly used to display
// parquet schemas.
func (s *Schema) String() string {
	b := new(strings.Builder)
	printNode(b, s.root, 0)
	return b.String()
}

func printNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)

	if n.Parent == nil {
		b.WriteString("message ")
		name := n.Name()
		if name == "" {
			name = "root"
		}
		b.WriteString(name)
	} else {
		b.WriteString(n.Repetition().String())
		b.WriteString(" ")
		if n.Leaf() {
			b.WriteString(physicalTypeName(n.Element))
		} else {
			b.WriteString("group")
		}
		b.WriteString(" ")
		b.WriteString(n.Name())
	}

	if annotation := n.Element.LogicalType.String(); annotation != "" {
		b.WriteString(" (")
		b.WriteString(annotation)
		b.WriteString(")")
	}

	if n.Leaf() {
		b.WriteString(";\n")
		return
	}

	b.WriteString(" {\n")
	for _, child := range n.Children {
		printNode(b, child, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

func physicalTypeName(el *format.SchemaElement) string {
	switch *el.Type {
	case format.Boolean:
		return "boolean"
	case format.Int32:
		return "int32"
	case format.Int64:
		return "int64"
	case format.Int96:
		return "int96"
	case format.Float:
		return "float"
	case format.Double:
		return "double"
	case format.ByteArray:
		return "binary"
	case format.FixedLenByteArray:
		if el.TypeLength != nil {
			return "fixed_len_byte_array(" + strconv.Itoa(int(*el.TypeLength)) + ")"
		}
		return "fixed_len_byte_array"
	default:
		return el.Type.String()
	}
}
