// Package pqmeta reconstructs parquet schemas from the flat schema element
// list stored in a file footer, and computes the definition and repetition
// levels each leaf column needs to reassemble optional and repeated values.
//
// A Schema and its columns are immutable once constructed and may be shared
// across goroutines without synchronization.
package pqmeta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pqmeta/pqmeta/encoding/thrift"
	"github.com/pqmeta/pqmeta/format"
)

// ErrMalformedSchema is the error kind reported when a schema element list
// cannot be reconstructed into a tree: empty input, a child count pointing
// past the end of the list, or leftover elements after the tree is complete.
var ErrMalformedSchema = errors.New("malformed parquet schema")

func malformedSchema(msg string, args ...any) error {
	return fmt.Errorf("schema: %s: %w", fmt.Sprintf(msg, args...), ErrMalformedSchema)
}

// Node is one node of the reconstructed schema tree. The tree is owned
// root-to-children; Parent is a back-reference only.
type Node struct {
	Element  *format.SchemaElement
	Parent   *Node
	Children []*Node
}

// Name returns the node's field name.
func (n *Node) Name() string { return n.Element.Name }

// Leaf reports whether the node is a leaf column, which is the case exactly
// when its element carries a physical type.
func (n *Node) Leaf() bool { return n.Element.Type != nil }

// Repetition returns the node's repetition kind. Elements without one decode
// as Required, which is what legacy writers mean by omitting it.
func (n *Node) Repetition() format.FieldRepetitionType {
	if n.Element.RepetitionType != nil {
		return *n.Element.RepetitionType
	}
	return format.Required
}

// Column describes one leaf of the schema. Columns are numbered in pre-order
// traversal order, which is the order column chunks appear in each row group.
type Column struct {
	// Index is the column's position in Schema.Columns.
	Index int
	// Path is the sequence of field names from the root (excluded) to the
	// leaf.
	Path []string
	// Type is the column's physical type.
	Type format.Type
	// TypeLength is the value width for FixedLenByteArray columns, zero
	// otherwise.
	TypeLength int32
	// MaxDefinitionLevel is the number of optional or repeated fields along
	// Path. A value whose definition level is lower than this is null at
	// some level of nesting.
	MaxDefinitionLevel byte
	// MaxRepetitionLevel is the number of repeated fields along Path. A
	// value's repetition level tells which repeated level starts a new list.
	MaxRepetitionLevel byte

	Element *format.SchemaElement
	Node    *Node
}

// PathString returns the column's path with segments joined by dots.
func (c *Column) PathString() string { return strings.Join(c.Path, ".") }

// Schema is a reconstructed schema tree with its leaf columns in pre-order.
type Schema struct {
	root    *Node
	columns []*Column
	byPath  map[string]*Column
}

// NewSchema reconstructs the schema tree from the flat pre-order element
// list of a file footer, where every element is immediately followed by the
// flattened subtrees of its declared children. Construction is
// all-or-nothing: the element count must match the tree exactly.
func NewSchema(elements []format.SchemaElement) (*Schema, error) {
	if len(elements) == 0 {
		return nil, malformedSchema("empty schema element list")
	}

	pos := 0
	root, err := buildNode(elements, &pos, nil, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(elements) {
		return nil, malformedSchema("tree consumed %d of %d schema elements", pos, len(elements))
	}

	s := &Schema{root: root}
	s.collect(root, 0, 0, nil)
	s.byPath = make(map[string]*Column, len(s.columns))
	for _, c := range s.columns {
		s.byPath[c.PathString()] = c
	}
	return s, nil
}

func buildNode(elements []format.SchemaElement, pos *int, parent *Node, depth int) (*Node, error) {
	if depth > thrift.MaxNestingDepth {
		return nil, malformedSchema("nesting exceeds %d levels", thrift.MaxNestingDepth)
	}
	if *pos >= len(elements) {
		return nil, malformedSchema("element %d references children beyond the end of the list", *pos-1)
	}

	el := &elements[*pos]
	*pos++

	node := &Node{Element: el, Parent: parent}
	if el.NumChildren != nil {
		n := int(*el.NumChildren)
		if n < 0 {
			return nil, malformedSchema("element %q declares %d children", el.Name, n)
		}
		node.Children = make([]*Node, n)
		for i := 0; i < n; i++ {
			child, err := buildNode(elements, pos, node, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children[i] = child
		}
	}
	return node, nil
}

// collect walks the tree in pre-order accumulating levels. The root element
// contributes no path segment and no level change; its nominal repetition
// kind has no semantics.
func (s *Schema) collect(node *Node, def, rep byte, path []string) {
	if node.Parent != nil {
		switch node.Repetition() {
		case format.Optional:
			def++
		case format.Repeated:
			def++
			rep++
		}
		path = append(path, node.Name())
	}

	if node.Leaf() {
		col := &Column{
			Index:              len(s.columns),
			Path:               append([]string(nil), path...),
			Type:               *node.Element.Type,
			MaxDefinitionLevel: def,
			MaxRepetitionLevel: rep,
			Element:            node.Element,
			Node:               node,
		}
		if node.Element.TypeLength != nil {
			col.TypeLength = *node.Element.TypeLength
		}
		s.columns = append(s.columns, col)
		return
	}

	for _, child := range node.Children {
		s.collect(child, def, rep, path)
	}
}

// Root returns the root node of the schema tree.
func (s *Schema) Root() *Node { return s.root }

// Columns returns the leaf columns in pre-order. The returned slice must not
// be modified.
func (s *Schema) Columns() []*Column { return s.columns }

// Lookup returns the column with the given dotted path.
func (s *Schema) Lookup(path string) (*Column, bool) {
	c, ok := s.byPath[path]
	return c, ok
}
