package pqmeta_test

import (
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/pqmeta/pqmeta"
	"github.com/pqmeta/pqmeta/format"
)

func assertPrint(t *testing.T, elements []format.SchemaElement, want string) {
	t.Helper()
	s, err := pqmeta.NewSchema(elements)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.String(); got != want {
		edits := myers.ComputeEdits(span.URIFromPath("schema"), want, got)
		t.Errorf("schema mismatch:\n%s", fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits)))
	}
}

func TestSchemaString(t *testing.T) {
	assertPrint(t, testElements(), `message root {
  optional int32 a;
  repeated group b {
    required int64 c;
  }
  optional group d {
    repeated int32 e;
  }
}
`)
}

func TestSchemaStringAnnotations(t *testing.T) {
	name := leaf("name", format.ByteArray, format.Optional)
	name.LogicalType = &format.LogicalType{UTF8: &format.StringType{}}

	amount := leaf("amount", format.FixedLenByteArray, format.Required)
	length := int32(12)
	amount.TypeLength = &length
	amount.LogicalType = &format.LogicalType{Decimal: &format.DecimalType{Scale: 4, Precision: 28}}

	count := leaf("count", format.Int32, format.Required)
	count.LogicalType = &format.LogicalType{Integer: &format.IntType{BitWidth: 16, IsSigned: false}}

	assertPrint(t, []format.SchemaElement{
		root("sales", 3),
		name, amount, count,
	}, `message sales {
  optional binary name (STRING);
  required fixed_len_byte_array(12) amount (DECIMAL(28,4));
  required int32 count (UINT(16));
}
`)
}

func TestSchemaStringUnnamedRoot(t *testing.T) {
	assertPrint(t, []format.SchemaElement{
		root("", 1),
		leaf("x", format.Double, format.Required),
	}, `message root {
  required double x;
}
`)
}
