package pqmeta_test

import (
	"errors"
	"testing"

	"github.com/pqmeta/pqmeta"
	"github.com/pqmeta/pqmeta/format"
)

func leaf(name string, typ format.Type, rep format.FieldRepetitionType) format.SchemaElement {
	t := typ
	r := rep
	return format.SchemaElement{Name: name, Type: &t, RepetitionType: &r}
}

func group(name string, rep format.FieldRepetitionType, numChildren int32) format.SchemaElement {
	r := rep
	n := numChildren
	return format.SchemaElement{Name: name, RepetitionType: &r, NumChildren: &n}
}

func root(name string, numChildren int32) format.SchemaElement {
	n := numChildren
	return format.SchemaElement{Name: name, NumChildren: &n}
}

// The schema used across tests:
//
//	message root {
//	  optional int32 a;
//	  repeated group b { required int64 c; }
//	  optional group d { repeated int32 e; }
//	}
func testElements() []format.SchemaElement {
	return []format.SchemaElement{
		root("root", 3),
		leaf("a", format.Int32, format.Optional),
		group("b", format.Repeated, 1),
		leaf("c", format.Int64, format.Required),
		group("d", format.Optional, 1),
		leaf("e", format.Int32, format.Repeated),
	}
}

func TestSchemaLevels(t *testing.T) {
	s, err := pqmeta.NewSchema(testElements())
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		path string
		typ  format.Type
		def  byte
		rep  byte
	}{
		{path: "a", typ: format.Int32, def: 1, rep: 0},
		{path: "b.c", typ: format.Int64, def: 1, rep: 1},
		{path: "d.e", typ: format.Int32, def: 2, rep: 1},
	}

	columns := s.Columns()
	if len(columns) != len(want) {
		t.Fatalf("got %d columns, want %d", len(columns), len(want))
	}
	for i, w := range want {
		c := columns[i]
		if c.Index != i {
			t.Errorf("columns[%d].Index = %d", i, c.Index)
		}
		if c.PathString() != w.path {
			t.Errorf("columns[%d]: got path %q, want %q", i, c.PathString(), w.path)
		}
		if c.Type != w.typ {
			t.Errorf("%s: got type %s, want %s", w.path, c.Type, w.typ)
		}
		if c.MaxDefinitionLevel != w.def {
			t.Errorf("%s: got definition level %d, want %d", w.path, c.MaxDefinitionLevel, w.def)
		}
		if c.MaxRepetitionLevel != w.rep {
			t.Errorf("%s: got repetition level %d, want %d", w.path, c.MaxRepetitionLevel, w.rep)
		}
	}
}

func TestSchemaTreeShape(t *testing.T) {
	s, err := pqmeta.NewSchema(testElements())
	if err != nil {
		t.Fatal(err)
	}

	r := s.Root()
	if r.Parent != nil {
		t.Error("root has a parent")
	}
	if len(r.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(r.Children))
	}
	b := r.Children[1]
	if b.Name() != "b" || b.Leaf() {
		t.Fatalf("children[1]: got %q (leaf=%v), want group b", b.Name(), b.Leaf())
	}
	if len(b.Children) != 1 || b.Children[0].Name() != "c" {
		t.Fatalf("group b children: %+v", b.Children)
	}
	if b.Children[0].Parent != b {
		t.Error("parent back-reference of c is not b")
	}
}

func TestSchemaLookup(t *testing.T) {
	s, err := pqmeta.NewSchema(testElements())
	if err != nil {
		t.Fatal(err)
	}

	c, ok := s.Lookup("d.e")
	if !ok {
		t.Fatal(`Lookup("d.e") found nothing`)
	}
	if c.MaxDefinitionLevel != 2 || c.MaxRepetitionLevel != 1 {
		t.Errorf("d.e levels: got (%d, %d), want (2, 1)", c.MaxDefinitionLevel, c.MaxRepetitionLevel)
	}

	if _, ok := s.Lookup("d"); ok {
		t.Error(`Lookup("d") matched a group node`)
	}
	if _, ok := s.Lookup("nope"); ok {
		t.Error(`Lookup("nope") matched`)
	}
}

func TestSchemaRootRepetitionIgnored(t *testing.T) {
	// Some writers mark the root repeated or required; either way it has no
	// level semantics.
	elements := testElements()
	rep := format.Repeated
	elements[0].RepetitionType = &rep

	s, err := pqmeta.NewSchema(elements)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.Lookup("a")
	if a.MaxDefinitionLevel != 1 || a.MaxRepetitionLevel != 0 {
		t.Errorf("a levels: got (%d, %d), want (1, 0)", a.MaxDefinitionLevel, a.MaxRepetitionLevel)
	}
}

func TestSchemaMissingRepetitionIsRequired(t *testing.T) {
	typ := format.Int32
	elements := []format.SchemaElement{
		root("root", 1),
		{Name: "a", Type: &typ}, // no repetition kind
	}

	s, err := pqmeta.NewSchema(elements)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := s.Lookup("a")
	if a.MaxDefinitionLevel != 0 || a.MaxRepetitionLevel != 0 {
		t.Errorf("a levels: got (%d, %d), want (0, 0)", a.MaxDefinitionLevel, a.MaxRepetitionLevel)
	}
}

func TestSchemaFixedTypeLength(t *testing.T) {
	length := int32(16)
	el := leaf("digest", format.FixedLenByteArray, format.Required)
	el.TypeLength = &length

	s, err := pqmeta.NewSchema([]format.SchemaElement{root("root", 1), el})
	if err != nil {
		t.Fatal(err)
	}
	c, _ := s.Lookup("digest")
	if c.TypeLength != 16 {
		t.Errorf("got type length %d, want 16", c.TypeLength)
	}
}

func TestSchemaChildlessGroup(t *testing.T) {
	s, err := pqmeta.NewSchema([]format.SchemaElement{
		root("root", 2),
		group("empty", format.Optional, 0),
		leaf("a", format.Int32, format.Required),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Columns()) != 1 || s.Columns()[0].PathString() != "a" {
		t.Errorf("columns: %+v", s.Columns())
	}
}

func TestSchemaEmptyElementList(t *testing.T) {
	_, err := pqmeta.NewSchema(nil)
	if !errors.Is(err, pqmeta.ErrMalformedSchema) {
		t.Errorf("got %v, want ErrMalformedSchema", err)
	}
}

func TestSchemaTooFewElements(t *testing.T) {
	// Root declares 2 children but only one element follows.
	_, err := pqmeta.NewSchema([]format.SchemaElement{
		root("root", 2),
		leaf("a", format.Int32, format.Optional),
	})
	if !errors.Is(err, pqmeta.ErrMalformedSchema) {
		t.Errorf("got %v, want ErrMalformedSchema", err)
	}
}

func TestSchemaTooManyElements(t *testing.T) {
	// A trailing element no child count accounts for.
	_, err := pqmeta.NewSchema([]format.SchemaElement{
		root("root", 1),
		leaf("a", format.Int32, format.Optional),
		leaf("b", format.Int32, format.Optional),
	})
	if !errors.Is(err, pqmeta.ErrMalformedSchema) {
		t.Errorf("got %v, want ErrMalformedSchema", err)
	}
}

func TestSchemaNegativeChildCount(t *testing.T) {
	_, err := pqmeta.NewSchema([]format.SchemaElement{root("root", -1)})
	if !errors.Is(err, pqmeta.ErrMalformedSchema) {
		t.Errorf("got %v, want ErrMalformedSchema", err)
	}
}

func TestSchemaNestingLimit(t *testing.T) {
	// A chain of single-child groups deeper than the decoder's nesting
	// bound must be rejected, not recursed into unbounded.
	var elements []format.SchemaElement
	elements = append(elements, root("root", 1))
	for i := 0; i < 20; i++ {
		elements = append(elements, group("g", format.Optional, 1))
	}
	elements = append(elements, leaf("x", format.Int32, format.Required))

	_, err := pqmeta.NewSchema(elements)
	if !errors.Is(err, pqmeta.ErrMalformedSchema) {
		t.Errorf("got %v, want ErrMalformedSchema", err)
	}
}

func TestColumnReferences(t *testing.T) {
	elements := testElements()

	s, err := pqmeta.NewSchema(elements)
	if err != nil {
		t.Fatal(err)
	}

	indexes := map[string]int{"a": 1, "b.c": 3, "d.e": 5}
	for i, c := range s.Columns() {
		if c.Element != &elements[indexes[c.PathString()]] {
			t.Errorf("columns[%d].Element does not reference the input element", i)
		}
		if c.Node == nil || c.Node.Element != c.Element {
			t.Errorf("columns[%d].Node is not the leaf node", i)
		}
	}
}
