// Package format defines the parquet metadata record shapes and decodes them
// from their compact thrift representation.
//
// The struct surface is limited to the records needed to interpret a file's
// schema and locate its pages; fields this package does not model are skipped
// generically during decoding. String and byte values reference the input
// buffer, which must remain valid for the lifetime of the decoded records.
package format

import "fmt"

// Type is the physical type of a leaf column.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("Type(%d)", int32(t))
	}
}

// FieldRepetitionType describes how often a field appears relative to its
// parent.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

func (t FieldRepetitionType) String() string {
	switch t {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("FieldRepetitionType(%d)", int32(t))
	}
}

// Encoding identifies the encoding of a data or dictionary page.
type Encoding int32

const (
	Plain                Encoding = 0
	PlainDictionary      Encoding = 2
	RLE                  Encoding = 3
	BitPacked            Encoding = 4
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
	ByteStreamSplit      Encoding = 9
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return fmt.Sprintf("Encoding(%d)", int32(e))
	}
}

// CompressionCodec identifies the compression applied to column chunk pages.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Lzo          CompressionCodec = 3
	Brotli       CompressionCodec = 4
	Lz4          CompressionCodec = 5
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Lzo:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return fmt.Sprintf("CompressionCodec(%d)", int32(c))
	}
}

// PageType identifies the kind of a page.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

func (t PageType) String() string {
	switch t {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return fmt.Sprintf("PageType(%d)", int32(t))
	}
}

// ConvertedType is the deprecated pre-logical-type annotation, retained
// because legacy writers still emit it.
type ConvertedType int32

var convertedTypeNames = [...]string{
	"UTF8", "MAP", "MAP_KEY_VALUE", "LIST", "ENUM", "DECIMAL", "DATE",
	"TIME_MILLIS", "TIME_MICROS", "TIMESTAMP_MILLIS", "TIMESTAMP_MICROS",
	"UINT_8", "UINT_16", "UINT_32", "UINT_64",
	"INT_8", "INT_16", "INT_32", "INT_64",
	"JSON", "BSON", "INTERVAL",
}

func (t ConvertedType) String() string {
	if t >= 0 && int(t) < len(convertedTypeNames) {
		return convertedTypeNames[t]
	}
	return fmt.Sprintf("ConvertedType(%d)", int32(t))
}

// SchemaElement is one node of the pre-order-flattened schema tree stored in
// the file footer. A nil Type marks a group node; NumChildren is meaningful
// only during tree reconstruction.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        int32
	LogicalType    *LogicalType
}

// Logical type markers without parameters.
type (
	StringType struct{}
	MapType    struct{}
	ListType   struct{}
	EnumType   struct{}
	DateType   struct{}
	NullType   struct{}
	JsonType   struct{}
	BsonType   struct{}
	UUIDType   struct{}
)

// DecimalType annotates fixed-point decimal values.
type DecimalType struct {
	Scale     int32
	Precision int32
}

// IntType annotates integer values of a specific width and signedness.
type IntType struct {
	BitWidth int8
	IsSigned bool
}

// Time unit markers.
type (
	MilliSeconds struct{}
	MicroSeconds struct{}
	NanoSeconds  struct{}
)

// TimeUnit is the union of supported time resolutions.
type TimeUnit struct {
	Millis *MilliSeconds
	Micros *MicroSeconds
	Nanos  *NanoSeconds
}

// TimeType annotates time-of-day values.
type TimeType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

// TimestampType annotates instant values.
type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

// LogicalType is the union of logical type annotations. At most one member is
// set.
type LogicalType struct {
	UTF8      *StringType
	Map       *MapType
	List      *ListType
	Enum      *EnumType
	Decimal   *DecimalType
	Date      *DateType
	Time      *TimeType
	Timestamp *TimestampType
	Integer   *IntType
	Unknown   *NullType
	Json      *JsonType
	Bson      *BsonType
	UUID      *UUIDType
}

func (t *LogicalType) String() string {
	switch {
	case t == nil:
		return ""
	case t.UTF8 != nil:
		return "STRING"
	case t.Map != nil:
		return "MAP"
	case t.List != nil:
		return "LIST"
	case t.Enum != nil:
		return "ENUM"
	case t.Decimal != nil:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Decimal.Precision, t.Decimal.Scale)
	case t.Date != nil:
		return "DATE"
	case t.Time != nil:
		return "TIME"
	case t.Timestamp != nil:
		return "TIMESTAMP"
	case t.Integer != nil:
		sign := "UINT"
		if t.Integer.IsSigned {
			sign = "INT"
		}
		return fmt.Sprintf("%s(%d)", sign, t.Integer.BitWidth)
	case t.Unknown != nil:
		return "UNKNOWN"
	case t.Json != nil:
		return "JSON"
	case t.Bson != nil:
		return "BSON"
	case t.UUID != nil:
		return "UUID"
	default:
		return ""
	}
}

// Statistics are per-chunk or per-page value statistics.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     int64
	DistinctCount int64
	MaxValue      []byte
	MinValue      []byte
}

// KeyValue is an arbitrary key/value metadata entry.
type KeyValue struct {
	Key   string
	Value string
}

// SortingColumn describes the sort order of a row group.
type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

// PageEncodingStats counts pages of a given type and encoding in a chunk.
type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

// ColumnMetaData describes one column chunk's pages.
type ColumnMetaData struct {
	Type                  Type
	Encoding              []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	IndexPageOffset       int64
	DictionaryPageOffset  int64
	Statistics            Statistics
	EncodingStats         []PageEncodingStats
}

// ColumnChunk locates one column's data within a row group.
type ColumnChunk struct {
	FilePath          string
	FileOffset        int64
	MetaData          ColumnMetaData
	OffsetIndexOffset int64
	OffsetIndexLength int32
	ColumnIndexOffset int64
	ColumnIndexLength int32
}

// RowGroup groups one horizontal slice of the file's rows.
type RowGroup struct {
	Columns             []ColumnChunk
	TotalByteSize       int64
	NumRows             int64
	SortingColumns      []SortingColumn
	FileOffset          int64
	TotalCompressedSize int64
	Ordinal             int16
}

// TypeDefinedOrder marks column ordering by the type's natural comparison.
type TypeDefinedOrder struct{}

// ColumnOrder is the union of column ordering rules.
type ColumnOrder struct {
	TypeOrder *TypeDefinedOrder
}

// FileMetaData is the file footer.
type FileMetaData struct {
	Version          int32
	Schema           []SchemaElement
	NumRows          int64
	RowGroups        []RowGroup
	KeyValueMetadata []KeyValue
	CreatedBy        string
	ColumnOrders     []ColumnOrder
}

// DataPageHeader describes a v1 data page.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              Statistics
}

// IndexPageHeader describes an index page.
type IndexPageHeader struct{}

// DictionaryPageHeader describes a dictionary page.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  bool
}

// DataPageHeaderV2 describes a v2 data page, whose levels are stored
// uncompressed ahead of the values.
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               bool
	Statistics                 Statistics
}

// PageHeader precedes every page in a column chunk.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	CRC                  int32
	DataPageHeader       *DataPageHeader
	IndexPageHeader      *IndexPageHeader
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2
}
