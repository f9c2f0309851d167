package format

import (
	"fmt"

	"github.com/pqmeta/pqmeta/encoding/thrift"
)

// DecodeFileMetaData decodes a file footer from its compact thrift
// representation in data.
func DecodeFileMetaData(data []byte, fmd *FileMetaData) error {
	return decodeFileMetaData(thrift.NewDecoder(data), fmd)
}

// DecodePageHeader decodes a page header from the compact thrift data ahead
// of a page.
func DecodePageHeader(data []byte, ph *PageHeader) error {
	return decodePageHeader(thrift.NewDecoder(data), ph)
}

func typeError(field string, got, want thrift.Type) error {
	return fmt.Errorf("format: %s: expected %s, got %s: %w", field, want, got, thrift.ErrMalformed)
}

func isBool(t thrift.Type) bool { return t == thrift.TRUE || t == thrift.FALSE }

// decodeList reads a list header, checks the element type, and decodes each
// element in place, reusing the output slice's capacity when possible.
func decodeList[T any](d *thrift.Decoder, field string, elem thrift.Type, out *[]T, decodeElem func(*thrift.Decoder, *T) error) error {
	size, typ, err := d.ReadListHeader()
	if err != nil {
		return err
	}
	if typ != elem {
		return typeError(field+" elements", typ, elem)
	}
	if cap(*out) >= size {
		*out = (*out)[:size]
	} else {
		*out = make([]T, size)
	}
	for i := 0; i < size; i++ {
		if err := decodeElem(d, &(*out)[i]); err != nil {
			return err
		}
	}
	return nil
}

func decodeI32Elem[T ~int32](d *thrift.Decoder, v *T) error {
	n, err := d.ReadI32()
	*v = T(n)
	return err
}

func decodeStringElem(d *thrift.Decoder, v *string) error {
	s, err := d.ReadString()
	*v = s
	return err
}

// decodeStruct drives one struct's field loop: for every non-stop field it
// invokes decodeField, which returns false when the field id is not mapped
// and the value should be skipped.
func decodeStruct(d *thrift.Decoder, decodeField func(id int16, typ thrift.Type) (bool, error)) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	for {
		id, typ, err := d.ReadFieldHeader()
		if err != nil {
			return err
		}
		if typ == thrift.STOP {
			return d.ReadStructEnd()
		}
		known, err := decodeField(id, typ)
		if err != nil {
			return err
		}
		if !known {
			if err := d.Skip(typ); err != nil {
				return err
			}
		}
	}
}

// emptyStruct skips a struct-typed field whose record carries no fields we
// model, after validating the wire type.
func emptyStruct(d *thrift.Decoder, field string, typ thrift.Type) error {
	if typ != thrift.STRUCT {
		return typeError(field, typ, thrift.STRUCT)
	}
	return d.Skip(thrift.STRUCT)
}

func decodeStatistics(d *thrift.Decoder, s *Statistics) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.BINARY {
				return false, typeError("Statistics.Max", typ, thrift.BINARY)
			}
			s.Max, err = d.ReadBytes()
		case 2:
			if typ != thrift.BINARY {
				return false, typeError("Statistics.Min", typ, thrift.BINARY)
			}
			s.Min, err = d.ReadBytes()
		case 3:
			if typ != thrift.I64 {
				return false, typeError("Statistics.NullCount", typ, thrift.I64)
			}
			s.NullCount, err = d.ReadI64()
		case 4:
			if typ != thrift.I64 {
				return false, typeError("Statistics.DistinctCount", typ, thrift.I64)
			}
			s.DistinctCount, err = d.ReadI64()
		case 5:
			if typ != thrift.BINARY {
				return false, typeError("Statistics.MaxValue", typ, thrift.BINARY)
			}
			s.MaxValue, err = d.ReadBytes()
		case 6:
			if typ != thrift.BINARY {
				return false, typeError("Statistics.MinValue", typ, thrift.BINARY)
			}
			s.MinValue, err = d.ReadBytes()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeKeyValue(d *thrift.Decoder, kv *KeyValue) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.BINARY {
				return false, typeError("KeyValue.Key", typ, thrift.BINARY)
			}
			kv.Key, err = d.ReadString()
		case 2:
			if typ != thrift.BINARY {
				return false, typeError("KeyValue.Value", typ, thrift.BINARY)
			}
			kv.Value, err = d.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeSortingColumn(d *thrift.Decoder, sc *SortingColumn) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("SortingColumn.ColumnIdx", typ, thrift.I32)
			}
			sc.ColumnIdx, err = d.ReadI32()
		case 2:
			if !isBool(typ) {
				return false, typeError("SortingColumn.Descending", typ, thrift.TRUE)
			}
			sc.Descending, err = d.ReadBool()
		case 3:
			if !isBool(typ) {
				return false, typeError("SortingColumn.NullsFirst", typ, thrift.TRUE)
			}
			sc.NullsFirst, err = d.ReadBool()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodePageEncodingStats(d *thrift.Decoder, pes *PageEncodingStats) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("PageEncodingStats.PageType", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &pes.PageType)
		case 2:
			if typ != thrift.I32 {
				return false, typeError("PageEncodingStats.Encoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &pes.Encoding)
		case 3:
			if typ != thrift.I32 {
				return false, typeError("PageEncodingStats.Count", typ, thrift.I32)
			}
			pes.Count, err = d.ReadI32()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeTimeUnit(d *thrift.Decoder, tu *TimeUnit) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		switch id {
		case 1:
			tu.Millis = &MilliSeconds{}
			return true, emptyStruct(d, "TimeUnit.Millis", typ)
		case 2:
			tu.Micros = &MicroSeconds{}
			return true, emptyStruct(d, "TimeUnit.Micros", typ)
		case 3:
			tu.Nanos = &NanoSeconds{}
			return true, emptyStruct(d, "TimeUnit.Nanos", typ)
		default:
			return false, nil
		}
	})
}

func decodeTimeType(d *thrift.Decoder, tt *TimeType) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if !isBool(typ) {
				return false, typeError("TimeType.IsAdjustedToUTC", typ, thrift.TRUE)
			}
			tt.IsAdjustedToUTC, err = d.ReadBool()
		case 2:
			if typ != thrift.STRUCT {
				return false, typeError("TimeType.Unit", typ, thrift.STRUCT)
			}
			err = decodeTimeUnit(d, &tt.Unit)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeTimestampType(d *thrift.Decoder, tt *TimestampType) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if !isBool(typ) {
				return false, typeError("TimestampType.IsAdjustedToUTC", typ, thrift.TRUE)
			}
			tt.IsAdjustedToUTC, err = d.ReadBool()
		case 2:
			if typ != thrift.STRUCT {
				return false, typeError("TimestampType.Unit", typ, thrift.STRUCT)
			}
			err = decodeTimeUnit(d, &tt.Unit)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeDecimalType(d *thrift.Decoder, dt *DecimalType) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("DecimalType.Scale", typ, thrift.I32)
			}
			dt.Scale, err = d.ReadI32()
		case 2:
			if typ != thrift.I32 {
				return false, typeError("DecimalType.Precision", typ, thrift.I32)
			}
			dt.Precision, err = d.ReadI32()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeIntType(d *thrift.Decoder, it *IntType) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I8 {
				return false, typeError("IntType.BitWidth", typ, thrift.I8)
			}
			it.BitWidth, err = d.ReadI8()
		case 2:
			if !isBool(typ) {
				return false, typeError("IntType.IsSigned", typ, thrift.TRUE)
			}
			it.IsSigned, err = d.ReadBool()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeLogicalType(d *thrift.Decoder, lt *LogicalType) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			lt.UTF8 = &StringType{}
			err = emptyStruct(d, "LogicalType.UTF8", typ)
		case 2:
			lt.Map = &MapType{}
			err = emptyStruct(d, "LogicalType.Map", typ)
		case 3:
			lt.List = &ListType{}
			err = emptyStruct(d, "LogicalType.List", typ)
		case 4:
			lt.Enum = &EnumType{}
			err = emptyStruct(d, "LogicalType.Enum", typ)
		case 5:
			if typ != thrift.STRUCT {
				return false, typeError("LogicalType.Decimal", typ, thrift.STRUCT)
			}
			lt.Decimal = &DecimalType{}
			err = decodeDecimalType(d, lt.Decimal)
		case 6:
			lt.Date = &DateType{}
			err = emptyStruct(d, "LogicalType.Date", typ)
		case 7:
			if typ != thrift.STRUCT {
				return false, typeError("LogicalType.Time", typ, thrift.STRUCT)
			}
			lt.Time = &TimeType{}
			err = decodeTimeType(d, lt.Time)
		case 8:
			if typ != thrift.STRUCT {
				return false, typeError("LogicalType.Timestamp", typ, thrift.STRUCT)
			}
			lt.Timestamp = &TimestampType{}
			err = decodeTimestampType(d, lt.Timestamp)
		case 10:
			if typ != thrift.STRUCT {
				return false, typeError("LogicalType.Integer", typ, thrift.STRUCT)
			}
			lt.Integer = &IntType{}
			err = decodeIntType(d, lt.Integer)
		case 11:
			lt.Unknown = &NullType{}
			err = emptyStruct(d, "LogicalType.Unknown", typ)
		case 12:
			lt.Json = &JsonType{}
			err = emptyStruct(d, "LogicalType.Json", typ)
		case 13:
			lt.Bson = &BsonType{}
			err = emptyStruct(d, "LogicalType.Bson", typ)
		case 14:
			lt.UUID = &UUIDType{}
			err = emptyStruct(d, "LogicalType.UUID", typ)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeSchemaElement(d *thrift.Decoder, se *SchemaElement) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.Type", typ, thrift.I32)
			}
			se.Type = new(Type)
			err = decodeI32Elem(d, se.Type)
		case 2:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.TypeLength", typ, thrift.I32)
			}
			se.TypeLength = new(int32)
			*se.TypeLength, err = d.ReadI32()
		case 3:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.RepetitionType", typ, thrift.I32)
			}
			se.RepetitionType = new(FieldRepetitionType)
			err = decodeI32Elem(d, se.RepetitionType)
		case 4:
			if typ != thrift.BINARY {
				return false, typeError("SchemaElement.Name", typ, thrift.BINARY)
			}
			se.Name, err = d.ReadString()
		case 5:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.NumChildren", typ, thrift.I32)
			}
			se.NumChildren = new(int32)
			*se.NumChildren, err = d.ReadI32()
		case 6:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.ConvertedType", typ, thrift.I32)
			}
			se.ConvertedType = new(ConvertedType)
			err = decodeI32Elem(d, se.ConvertedType)
		case 7:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.Scale", typ, thrift.I32)
			}
			se.Scale = new(int32)
			*se.Scale, err = d.ReadI32()
		case 8:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.Precision", typ, thrift.I32)
			}
			se.Precision = new(int32)
			*se.Precision, err = d.ReadI32()
		case 9:
			if typ != thrift.I32 {
				return false, typeError("SchemaElement.FieldID", typ, thrift.I32)
			}
			se.FieldID, err = d.ReadI32()
		case 10:
			if typ != thrift.STRUCT {
				return false, typeError("SchemaElement.LogicalType", typ, thrift.STRUCT)
			}
			se.LogicalType = &LogicalType{}
			err = decodeLogicalType(d, se.LogicalType)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeColumnMetaData(d *thrift.Decoder, cmd *ColumnMetaData) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("ColumnMetaData.Type", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &cmd.Type)
		case 2:
			if typ != thrift.LIST {
				return false, typeError("ColumnMetaData.Encoding", typ, thrift.LIST)
			}
			err = decodeList(d, "ColumnMetaData.Encoding", thrift.I32, &cmd.Encoding, decodeI32Elem[Encoding])
		case 3:
			if typ != thrift.LIST {
				return false, typeError("ColumnMetaData.PathInSchema", typ, thrift.LIST)
			}
			err = decodeList(d, "ColumnMetaData.PathInSchema", thrift.BINARY, &cmd.PathInSchema, decodeStringElem)
		case 4:
			if typ != thrift.I32 {
				return false, typeError("ColumnMetaData.Codec", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &cmd.Codec)
		case 5:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.NumValues", typ, thrift.I64)
			}
			cmd.NumValues, err = d.ReadI64()
		case 6:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.TotalUncompressedSize", typ, thrift.I64)
			}
			cmd.TotalUncompressedSize, err = d.ReadI64()
		case 7:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.TotalCompressedSize", typ, thrift.I64)
			}
			cmd.TotalCompressedSize, err = d.ReadI64()
		case 8:
			if typ != thrift.LIST {
				return false, typeError("ColumnMetaData.KeyValueMetadata", typ, thrift.LIST)
			}
			err = decodeList(d, "ColumnMetaData.KeyValueMetadata", thrift.STRUCT, &cmd.KeyValueMetadata, decodeKeyValue)
		case 9:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.DataPageOffset", typ, thrift.I64)
			}
			cmd.DataPageOffset, err = d.ReadI64()
		case 10:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.IndexPageOffset", typ, thrift.I64)
			}
			cmd.IndexPageOffset, err = d.ReadI64()
		case 11:
			if typ != thrift.I64 {
				return false, typeError("ColumnMetaData.DictionaryPageOffset", typ, thrift.I64)
			}
			cmd.DictionaryPageOffset, err = d.ReadI64()
		case 12:
			if typ != thrift.STRUCT {
				return false, typeError("ColumnMetaData.Statistics", typ, thrift.STRUCT)
			}
			err = decodeStatistics(d, &cmd.Statistics)
		case 13:
			if typ != thrift.LIST {
				return false, typeError("ColumnMetaData.EncodingStats", typ, thrift.LIST)
			}
			err = decodeList(d, "ColumnMetaData.EncodingStats", thrift.STRUCT, &cmd.EncodingStats, decodePageEncodingStats)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeColumnChunk(d *thrift.Decoder, cc *ColumnChunk) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.BINARY {
				return false, typeError("ColumnChunk.FilePath", typ, thrift.BINARY)
			}
			cc.FilePath, err = d.ReadString()
		case 2:
			if typ != thrift.I64 {
				return false, typeError("ColumnChunk.FileOffset", typ, thrift.I64)
			}
			cc.FileOffset, err = d.ReadI64()
		case 3:
			if typ != thrift.STRUCT {
				return false, typeError("ColumnChunk.MetaData", typ, thrift.STRUCT)
			}
			err = decodeColumnMetaData(d, &cc.MetaData)
		case 4:
			if typ != thrift.I64 {
				return false, typeError("ColumnChunk.OffsetIndexOffset", typ, thrift.I64)
			}
			cc.OffsetIndexOffset, err = d.ReadI64()
		case 5:
			if typ != thrift.I32 {
				return false, typeError("ColumnChunk.OffsetIndexLength", typ, thrift.I32)
			}
			cc.OffsetIndexLength, err = d.ReadI32()
		case 6:
			if typ != thrift.I64 {
				return false, typeError("ColumnChunk.ColumnIndexOffset", typ, thrift.I64)
			}
			cc.ColumnIndexOffset, err = d.ReadI64()
		case 7:
			if typ != thrift.I32 {
				return false, typeError("ColumnChunk.ColumnIndexLength", typ, thrift.I32)
			}
			cc.ColumnIndexLength, err = d.ReadI32()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeRowGroup(d *thrift.Decoder, rg *RowGroup) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.LIST {
				return false, typeError("RowGroup.Columns", typ, thrift.LIST)
			}
			err = decodeList(d, "RowGroup.Columns", thrift.STRUCT, &rg.Columns, decodeColumnChunk)
		case 2:
			if typ != thrift.I64 {
				return false, typeError("RowGroup.TotalByteSize", typ, thrift.I64)
			}
			rg.TotalByteSize, err = d.ReadI64()
		case 3:
			if typ != thrift.I64 {
				return false, typeError("RowGroup.NumRows", typ, thrift.I64)
			}
			rg.NumRows, err = d.ReadI64()
		case 4:
			if typ != thrift.LIST {
				return false, typeError("RowGroup.SortingColumns", typ, thrift.LIST)
			}
			err = decodeList(d, "RowGroup.SortingColumns", thrift.STRUCT, &rg.SortingColumns, decodeSortingColumn)
		case 5:
			if typ != thrift.I64 {
				return false, typeError("RowGroup.FileOffset", typ, thrift.I64)
			}
			rg.FileOffset, err = d.ReadI64()
		case 6:
			if typ != thrift.I64 {
				return false, typeError("RowGroup.TotalCompressedSize", typ, thrift.I64)
			}
			rg.TotalCompressedSize, err = d.ReadI64()
		case 7:
			if typ != thrift.I16 {
				return false, typeError("RowGroup.Ordinal", typ, thrift.I16)
			}
			rg.Ordinal, err = d.ReadI16()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeColumnOrder(d *thrift.Decoder, co *ColumnOrder) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		switch id {
		case 1:
			co.TypeOrder = &TypeDefinedOrder{}
			return true, emptyStruct(d, "ColumnOrder.TypeOrder", typ)
		default:
			return false, nil
		}
	})
}

func decodeFileMetaData(d *thrift.Decoder, fmd *FileMetaData) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("FileMetaData.Version", typ, thrift.I32)
			}
			fmd.Version, err = d.ReadI32()
		case 2:
			if typ != thrift.LIST {
				return false, typeError("FileMetaData.Schema", typ, thrift.LIST)
			}
			err = decodeList(d, "FileMetaData.Schema", thrift.STRUCT, &fmd.Schema, decodeSchemaElement)
		case 3:
			if typ != thrift.I64 {
				return false, typeError("FileMetaData.NumRows", typ, thrift.I64)
			}
			fmd.NumRows, err = d.ReadI64()
		case 4:
			if typ != thrift.LIST {
				return false, typeError("FileMetaData.RowGroups", typ, thrift.LIST)
			}
			err = decodeList(d, "FileMetaData.RowGroups", thrift.STRUCT, &fmd.RowGroups, decodeRowGroup)
		case 5:
			if typ != thrift.LIST {
				return false, typeError("FileMetaData.KeyValueMetadata", typ, thrift.LIST)
			}
			err = decodeList(d, "FileMetaData.KeyValueMetadata", thrift.STRUCT, &fmd.KeyValueMetadata, decodeKeyValue)
		case 6:
			if typ != thrift.BINARY {
				return false, typeError("FileMetaData.CreatedBy", typ, thrift.BINARY)
			}
			fmd.CreatedBy, err = d.ReadString()
		case 7:
			if typ != thrift.LIST {
				return false, typeError("FileMetaData.ColumnOrders", typ, thrift.LIST)
			}
			err = decodeList(d, "FileMetaData.ColumnOrders", thrift.STRUCT, &fmd.ColumnOrders, decodeColumnOrder)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeDataPageHeader(d *thrift.Decoder, h *DataPageHeader) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeader.NumValues", typ, thrift.I32)
			}
			h.NumValues, err = d.ReadI32()
		case 2:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeader.Encoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &h.Encoding)
		case 3:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeader.DefinitionLevelEncoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &h.DefinitionLevelEncoding)
		case 4:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeader.RepetitionLevelEncoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &h.RepetitionLevelEncoding)
		case 5:
			if typ != thrift.STRUCT {
				return false, typeError("DataPageHeader.Statistics", typ, thrift.STRUCT)
			}
			err = decodeStatistics(d, &h.Statistics)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeDictionaryPageHeader(d *thrift.Decoder, h *DictionaryPageHeader) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("DictionaryPageHeader.NumValues", typ, thrift.I32)
			}
			h.NumValues, err = d.ReadI32()
		case 2:
			if typ != thrift.I32 {
				return false, typeError("DictionaryPageHeader.Encoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &h.Encoding)
		case 3:
			if !isBool(typ) {
				return false, typeError("DictionaryPageHeader.IsSorted", typ, thrift.TRUE)
			}
			h.IsSorted, err = d.ReadBool()
		default:
			return false, nil
		}
		return true, err
	})
}

func decodeDataPageHeaderV2(d *thrift.Decoder, h *DataPageHeaderV2) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.NumValues", typ, thrift.I32)
			}
			h.NumValues, err = d.ReadI32()
		case 2:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.NumNulls", typ, thrift.I32)
			}
			h.NumNulls, err = d.ReadI32()
		case 3:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.NumRows", typ, thrift.I32)
			}
			h.NumRows, err = d.ReadI32()
		case 4:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.Encoding", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &h.Encoding)
		case 5:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.DefinitionLevelsByteLength", typ, thrift.I32)
			}
			h.DefinitionLevelsByteLength, err = d.ReadI32()
		case 6:
			if typ != thrift.I32 {
				return false, typeError("DataPageHeaderV2.RepetitionLevelsByteLength", typ, thrift.I32)
			}
			h.RepetitionLevelsByteLength, err = d.ReadI32()
		case 7:
			if !isBool(typ) {
				return false, typeError("DataPageHeaderV2.IsCompressed", typ, thrift.TRUE)
			}
			h.IsCompressed, err = d.ReadBool()
		case 8:
			if typ != thrift.STRUCT {
				return false, typeError("DataPageHeaderV2.Statistics", typ, thrift.STRUCT)
			}
			err = decodeStatistics(d, &h.Statistics)
		default:
			return false, nil
		}
		return true, err
	})
}

func decodePageHeader(d *thrift.Decoder, ph *PageHeader) error {
	return decodeStruct(d, func(id int16, typ thrift.Type) (bool, error) {
		var err error
		switch id {
		case 1:
			if typ != thrift.I32 {
				return false, typeError("PageHeader.Type", typ, thrift.I32)
			}
			err = decodeI32Elem(d, &ph.Type)
		case 2:
			if typ != thrift.I32 {
				return false, typeError("PageHeader.UncompressedPageSize", typ, thrift.I32)
			}
			ph.UncompressedPageSize, err = d.ReadI32()
		case 3:
			if typ != thrift.I32 {
				return false, typeError("PageHeader.CompressedPageSize", typ, thrift.I32)
			}
			ph.CompressedPageSize, err = d.ReadI32()
		case 4:
			if typ != thrift.I32 {
				return false, typeError("PageHeader.CRC", typ, thrift.I32)
			}
			ph.CRC, err = d.ReadI32()
		case 5:
			if typ != thrift.STRUCT {
				return false, typeError("PageHeader.DataPageHeader", typ, thrift.STRUCT)
			}
			ph.DataPageHeader = &DataPageHeader{}
			err = decodeDataPageHeader(d, ph.DataPageHeader)
		case 6:
			ph.IndexPageHeader = &IndexPageHeader{}
			err = emptyStruct(d, "PageHeader.IndexPageHeader", typ)
		case 7:
			if typ != thrift.STRUCT {
				return false, typeError("PageHeader.DictionaryPageHeader", typ, thrift.STRUCT)
			}
			ph.DictionaryPageHeader = &DictionaryPageHeader{}
			err = decodeDictionaryPageHeader(d, ph.DictionaryPageHeader)
		case 8:
			if typ != thrift.STRUCT {
				return false, typeError("PageHeader.DataPageHeaderV2", typ, thrift.STRUCT)
			}
			ph.DataPageHeaderV2 = &DataPageHeaderV2{}
			err = decodeDataPageHeaderV2(d, ph.DataPageHeaderV2)
		default:
			return false, nil
		}
		return true, err
	})
}
