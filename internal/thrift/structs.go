package thrift

import (
	"github.com/apache/thrift/lib/go/thrift"

	"github.com/parquetcore/parquet-go/format"
)

// --- FileMetaData ---

func readFileMetaData(p thrift.TProtocol, m *format.FileMetaData) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			m.Version = v
		case 2:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			m.Schema = make([]format.SchemaElement, size)
			for i := 0; i < size; i++ {
				if err := readSchemaElement(p, &m.Schema[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 3:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			m.NumRows = v
		case 4:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			m.RowGroups = make([]format.RowGroup, size)
			for i := 0; i < size; i++ {
				if err := readRowGroup(p, &m.RowGroups[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 5:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			m.KeyValueMetadata = make([]format.KeyValue, size)
			for i := 0; i < size; i++ {
				if err := readKeyValue(p, &m.KeyValueMetadata[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 6:
			v, err := p.ReadString(background)
			if err != nil {
				return err
			}
			m.CreatedBy = ptr(v)
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeFileMetaData(p thrift.TProtocol, m *format.FileMetaData) error {
	if err := p.WriteStructBegin(background, "FileMetaData"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, m.Version); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "schema", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(background, thrift.STRUCT, len(m.Schema)); err != nil {
		return err
	}
	for i := range m.Schema {
		if err := writeSchemaElement(p, &m.Schema[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := writeI64Field(p, 3, m.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "row_groups", thrift.LIST, 4); err != nil {
		return err
	}
	if err := p.WriteListBegin(background, thrift.STRUCT, len(m.RowGroups)); err != nil {
		return err
	}
	for i := range m.RowGroups {
		if err := writeRowGroup(p, &m.RowGroups[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if len(m.KeyValueMetadata) > 0 {
		if err := p.WriteFieldBegin(background, "key_value_metadata", thrift.LIST, 5); err != nil {
			return err
		}
		if err := p.WriteListBegin(background, thrift.STRUCT, len(m.KeyValueMetadata)); err != nil {
			return err
		}
		for i := range m.KeyValueMetadata {
			if err := writeKeyValue(p, &m.KeyValueMetadata[i]); err != nil {
				return err
			}
		}
		if err := p.WriteListEnd(background); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if m.CreatedBy != nil {
		if err := writeStringField(p, 6, *m.CreatedBy); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- RowGroup ---

func readRowGroup(p thrift.TProtocol, g *format.RowGroup) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			g.Columns = make([]format.ColumnChunk, size)
			for i := 0; i < size; i++ {
				if err := readColumnChunk(p, &g.Columns[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 2:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			g.TotalByteSize = v
		case 3:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			g.NumRows = v
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeRowGroup(p thrift.TProtocol, g *format.RowGroup) error {
	if err := p.WriteStructBegin(background, "RowGroup"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "columns", thrift.LIST, 1); err != nil {
		return err
	}
	if err := p.WriteListBegin(background, thrift.STRUCT, len(g.Columns)); err != nil {
		return err
	}
	for i := range g.Columns {
		if err := writeColumnChunk(p, &g.Columns[i]); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := writeI64Field(p, 2, g.TotalByteSize); err != nil {
		return err
	}
	if err := writeI64Field(p, 3, g.NumRows); err != nil {
		return err
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- ColumnChunk ---

func readColumnChunk(p thrift.TProtocol, c *format.ColumnChunk) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadString(background)
			if err != nil {
				return err
			}
			c.FilePath = ptr(v)
		case 2:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.FileOffset = v
		case 3:
			c.MetaData = new(format.ColumnMetaData)
			if err := readColumnMetaData(p, c.MetaData); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeColumnChunk(p thrift.TProtocol, c *format.ColumnChunk) error {
	if err := p.WriteStructBegin(background, "ColumnChunk"); err != nil {
		return err
	}
	if c.FilePath != nil {
		if err := writeStringField(p, 1, *c.FilePath); err != nil {
			return err
		}
	}
	if err := writeI64Field(p, 2, c.FileOffset); err != nil {
		return err
	}
	if c.MetaData != nil {
		if err := p.WriteFieldBegin(background, "meta_data", thrift.STRUCT, 3); err != nil {
			return err
		}
		if err := writeColumnMetaData(p, c.MetaData); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- ColumnMetaData ---

func readColumnMetaData(p thrift.TProtocol, c *format.ColumnMetaData) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			c.Type = format.Type(v)
		case 2:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			c.Encodings = make([]format.Encoding, size)
			for i := 0; i < size; i++ {
				v, err := p.ReadI32(background)
				if err != nil {
					return err
				}
				c.Encodings[i] = format.Encoding(v)
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 3:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			c.PathInSchema = make([]string, size)
			for i := 0; i < size; i++ {
				v, err := p.ReadString(background)
				if err != nil {
					return err
				}
				c.PathInSchema[i] = v
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 4:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			c.Codec = format.CompressionCodec(v)
		case 5:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.NumValues = v
		case 6:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.TotalUncompressedSize = v
		case 7:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.TotalCompressedSize = v
		case 8:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			c.KeyValueMetadata = make([]format.KeyValue, size)
			for i := 0; i < size; i++ {
				if err := readKeyValue(p, &c.KeyValueMetadata[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		case 9:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.DataPageOffset = v
		case 10:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.IndexPageOffset = ptr(v)
		case 11:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			c.DictionaryPageOffset = ptr(v)
		case 12:
			c.Statistics = new(format.Statistics)
			if err := readStatistics(p, c.Statistics); err != nil {
				return err
			}
		case 13:
			_, size, err := p.ReadListBegin(background)
			if err != nil {
				return err
			}
			c.EncodingStats = make([]format.PageEncodingStats, size)
			for i := 0; i < size; i++ {
				if err := readPageEncodingStats(p, &c.EncodingStats[i]); err != nil {
					return err
				}
			}
			if err := p.ReadListEnd(background); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeColumnMetaData(p thrift.TProtocol, c *format.ColumnMetaData) error {
	if err := p.WriteStructBegin(background, "ColumnMetaData"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, int32(c.Type)); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "encodings", thrift.LIST, 2); err != nil {
		return err
	}
	if err := p.WriteListBegin(background, thrift.I32, len(c.Encodings)); err != nil {
		return err
	}
	for _, e := range c.Encodings {
		if err := p.WriteI32(background, int32(e)); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "path_in_schema", thrift.LIST, 3); err != nil {
		return err
	}
	if err := p.WriteListBegin(background, thrift.STRING, len(c.PathInSchema)); err != nil {
		return err
	}
	for _, s := range c.PathInSchema {
		if err := p.WriteString(background, s); err != nil {
			return err
		}
	}
	if err := p.WriteListEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := writeI32Field(p, 4, int32(c.Codec)); err != nil {
		return err
	}
	if err := writeI64Field(p, 5, c.NumValues); err != nil {
		return err
	}
	if err := writeI64Field(p, 6, c.TotalUncompressedSize); err != nil {
		return err
	}
	if err := writeI64Field(p, 7, c.TotalCompressedSize); err != nil {
		return err
	}
	if len(c.KeyValueMetadata) > 0 {
		if err := p.WriteFieldBegin(background, "key_value_metadata", thrift.LIST, 8); err != nil {
			return err
		}
		if err := p.WriteListBegin(background, thrift.STRUCT, len(c.KeyValueMetadata)); err != nil {
			return err
		}
		for i := range c.KeyValueMetadata {
			if err := writeKeyValue(p, &c.KeyValueMetadata[i]); err != nil {
				return err
			}
		}
		if err := p.WriteListEnd(background); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := writeI64Field(p, 9, c.DataPageOffset); err != nil {
		return err
	}
	if c.IndexPageOffset != nil {
		if err := writeI64Field(p, 10, *c.IndexPageOffset); err != nil {
			return err
		}
	}
	if c.DictionaryPageOffset != nil {
		if err := writeI64Field(p, 11, *c.DictionaryPageOffset); err != nil {
			return err
		}
	}
	if c.Statistics != nil {
		if err := p.WriteFieldBegin(background, "statistics", thrift.STRUCT, 12); err != nil {
			return err
		}
		if err := writeStatistics(p, c.Statistics); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if len(c.EncodingStats) > 0 {
		if err := p.WriteFieldBegin(background, "encoding_stats", thrift.LIST, 13); err != nil {
			return err
		}
		if err := p.WriteListBegin(background, thrift.STRUCT, len(c.EncodingStats)); err != nil {
			return err
		}
		for i := range c.EncodingStats {
			if err := writePageEncodingStats(p, &c.EncodingStats[i]); err != nil {
				return err
			}
		}
		if err := p.WriteListEnd(background); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

func readPageEncodingStats(p thrift.TProtocol, s *format.PageEncodingStats) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			s.PageType = format.PageType(v)
		case 2:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			s.Encoding = format.Encoding(v)
		case 3:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			s.Count = v
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writePageEncodingStats(p thrift.TProtocol, s *format.PageEncodingStats) error {
	if err := p.WriteStructBegin(background, "PageEncodingStats"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, int32(s.PageType)); err != nil {
		return err
	}
	if err := writeI32Field(p, 2, int32(s.Encoding)); err != nil {
		return err
	}
	if err := writeI32Field(p, 3, s.Count); err != nil {
		return err
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- KeyValue ---

func readKeyValue(p thrift.TProtocol, kv *format.KeyValue) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadString(background)
			if err != nil {
				return err
			}
			kv.Key = v
		case 2:
			v, err := p.ReadString(background)
			if err != nil {
				return err
			}
			kv.Value = ptr(v)
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeKeyValue(p thrift.TProtocol, kv *format.KeyValue) error {
	if err := p.WriteStructBegin(background, "KeyValue"); err != nil {
		return err
	}
	if err := writeStringField(p, 1, kv.Key); err != nil {
		return err
	}
	if kv.Value != nil {
		if err := writeStringField(p, 2, *kv.Value); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- Statistics ---

func readStatistics(p thrift.TProtocol, s *format.Statistics) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadBinary(background)
			if err != nil {
				return err
			}
			s.Max = v
		case 2:
			v, err := p.ReadBinary(background)
			if err != nil {
				return err
			}
			s.Min = v
		case 3:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			s.NullCount = ptr(v)
		case 4:
			v, err := p.ReadI64(background)
			if err != nil {
				return err
			}
			s.DistinctCount = ptr(v)
		case 5:
			v, err := p.ReadBinary(background)
			if err != nil {
				return err
			}
			s.MaxValue = v
		case 6:
			v, err := p.ReadBinary(background)
			if err != nil {
				return err
			}
			s.MinValue = v
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeStatistics(p thrift.TProtocol, s *format.Statistics) error {
	if err := p.WriteStructBegin(background, "Statistics"); err != nil {
		return err
	}
	if s.Max != nil {
		if err := writeBinaryField(p, 1, s.Max); err != nil {
			return err
		}
	}
	if s.Min != nil {
		if err := writeBinaryField(p, 2, s.Min); err != nil {
			return err
		}
	}
	if s.NullCount != nil {
		if err := writeI64Field(p, 3, *s.NullCount); err != nil {
			return err
		}
	}
	if s.DistinctCount != nil {
		if err := writeI64Field(p, 4, *s.DistinctCount); err != nil {
			return err
		}
	}
	if s.MaxValue != nil {
		if err := writeBinaryField(p, 5, s.MaxValue); err != nil {
			return err
		}
	}
	if s.MinValue != nil {
		if err := writeBinaryField(p, 6, s.MinValue); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- SchemaElement ---

func readSchemaElement(p thrift.TProtocol, e *format.SchemaElement) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.Type = ptr(format.Type(v))
		case 2:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.TypeLength = ptr(v)
		case 3:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.RepetitionType = ptr(format.FieldRepetitionType(v))
		case 4:
			v, err := p.ReadString(background)
			if err != nil {
				return err
			}
			e.Name = v
		case 5:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.NumChildren = ptr(v)
		case 6:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.ConvertedType = ptr(format.ConvertedType(v))
		case 7:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.Scale = ptr(v)
		case 8:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.Precision = ptr(v)
		case 9:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			e.FieldID = ptr(v)
		case 10:
			e.LogicalType = new(format.LogicalType)
			if err := readLogicalType(p, e.LogicalType); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeSchemaElement(p thrift.TProtocol, e *format.SchemaElement) error {
	if err := p.WriteStructBegin(background, "SchemaElement"); err != nil {
		return err
	}
	if e.Type != nil {
		if err := writeI32Field(p, 1, int32(*e.Type)); err != nil {
			return err
		}
	}
	if e.TypeLength != nil {
		if err := writeI32Field(p, 2, *e.TypeLength); err != nil {
			return err
		}
	}
	if e.RepetitionType != nil {
		if err := writeI32Field(p, 3, int32(*e.RepetitionType)); err != nil {
			return err
		}
	}
	if err := writeStringField(p, 4, e.Name); err != nil {
		return err
	}
	if e.NumChildren != nil {
		if err := writeI32Field(p, 5, *e.NumChildren); err != nil {
			return err
		}
	}
	if e.ConvertedType != nil {
		if err := writeI32Field(p, 6, int32(*e.ConvertedType)); err != nil {
			return err
		}
	}
	if e.Scale != nil {
		if err := writeI32Field(p, 7, *e.Scale); err != nil {
			return err
		}
	}
	if e.Precision != nil {
		if err := writeI32Field(p, 8, *e.Precision); err != nil {
			return err
		}
	}
	if e.FieldID != nil {
		if err := writeI32Field(p, 9, *e.FieldID); err != nil {
			return err
		}
	}
	if e.LogicalType != nil {
		if err := p.WriteFieldBegin(background, "logicalType", thrift.STRUCT, 10); err != nil {
			return err
		}
		if err := writeLogicalType(p, e.LogicalType); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- LogicalType (union; only STRING/MAP/LIST/INTEGER are modeled) ---

func readLogicalType(p thrift.TProtocol, lt *format.LogicalType) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			lt.String = &format.StringType{}
			if err := readEmptyStruct(p); err != nil {
				return err
			}
		case 2:
			lt.Map = &format.MapType{}
			if err := readEmptyStruct(p); err != nil {
				return err
			}
		case 3:
			lt.List = &format.ListType{}
			if err := readEmptyStruct(p); err != nil {
				return err
			}
		case 10:
			lt.Integer = new(format.IntType)
			if err := readIntType(p, lt.Integer); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeLogicalType(p thrift.TProtocol, lt *format.LogicalType) error {
	if err := p.WriteStructBegin(background, "LogicalType"); err != nil {
		return err
	}
	switch {
	case lt.String != nil:
		if err := writeEmptyField(p, "STRING", 1); err != nil {
			return err
		}
	case lt.Map != nil:
		if err := writeEmptyField(p, "MAP", 2); err != nil {
			return err
		}
	case lt.List != nil:
		if err := writeEmptyField(p, "LIST", 3); err != nil {
			return err
		}
	case lt.Integer != nil:
		if err := p.WriteFieldBegin(background, "INTEGER", thrift.STRUCT, 10); err != nil {
			return err
		}
		if err := writeIntType(p, lt.Integer); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

func readEmptyStruct(p thrift.TProtocol) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, _, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if err := p.Skip(background, fieldType); err != nil {
			return err
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeEmptyField(p thrift.TProtocol, name string, id int16) error {
	if err := p.WriteFieldBegin(background, name, thrift.STRUCT, id); err != nil {
		return err
	}
	if err := p.WriteStructBegin(background, name); err != nil {
		return err
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	if err := p.WriteStructEnd(background); err != nil {
		return err
	}
	return p.WriteFieldEnd(background)
}

func readIntType(p thrift.TProtocol, it *format.IntType) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadByte(background)
			if err != nil {
				return err
			}
			it.BitWidth = v
		case 2:
			v, err := p.ReadBool(background)
			if err != nil {
				return err
			}
			it.IsSigned = v
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeIntType(p thrift.TProtocol, it *format.IntType) error {
	if err := p.WriteStructBegin(background, "IntType"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "bitWidth", thrift.BYTE, 1); err != nil {
		return err
	}
	if err := p.WriteByte(background, it.BitWidth); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(background, "isSigned", thrift.BOOL, 2); err != nil {
		return err
	}
	if err := p.WriteBool(background, it.IsSigned); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(background); err != nil {
		return err
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- PageHeader ---

func readPageHeader(p thrift.TProtocol, h *format.PageHeader) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.Type = format.PageType(v)
		case 2:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.UncompressedPageSize = v
		case 3:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.CompressedPageSize = v
		case 4:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.CRC = ptr(v)
		case 5:
			h.DataPageHeader = new(format.DataPageHeader)
			if err := readDataPageHeader(p, h.DataPageHeader); err != nil {
				return err
			}
		case 7:
			h.DictionaryPageHeader = new(format.DictionaryPageHeader)
			if err := readDictionaryPageHeader(p, h.DictionaryPageHeader); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writePageHeader(p thrift.TProtocol, h *format.PageHeader) error {
	if err := p.WriteStructBegin(background, "PageHeader"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, int32(h.Type)); err != nil {
		return err
	}
	if err := writeI32Field(p, 2, h.UncompressedPageSize); err != nil {
		return err
	}
	if err := writeI32Field(p, 3, h.CompressedPageSize); err != nil {
		return err
	}
	if h.CRC != nil {
		if err := writeI32Field(p, 4, *h.CRC); err != nil {
			return err
		}
	}
	if h.DataPageHeader != nil {
		if err := p.WriteFieldBegin(background, "data_page_header", thrift.STRUCT, 5); err != nil {
			return err
		}
		if err := writeDataPageHeader(p, h.DataPageHeader); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if h.DictionaryPageHeader != nil {
		if err := p.WriteFieldBegin(background, "dictionary_page_header", thrift.STRUCT, 7); err != nil {
			return err
		}
		if err := writeDictionaryPageHeader(p, h.DictionaryPageHeader); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

func readDataPageHeader(p thrift.TProtocol, h *format.DataPageHeader) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.NumValues = v
		case 2:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.Encoding = format.Encoding(v)
		case 3:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.DefinitionLevelEncoding = format.Encoding(v)
		case 4:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.RepetitionLevelEncoding = format.Encoding(v)
		case 5:
			h.Statistics = new(format.Statistics)
			if err := readStatistics(p, h.Statistics); err != nil {
				return err
			}
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeDataPageHeader(p thrift.TProtocol, h *format.DataPageHeader) error {
	if err := p.WriteStructBegin(background, "DataPageHeader"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, h.NumValues); err != nil {
		return err
	}
	if err := writeI32Field(p, 2, int32(h.Encoding)); err != nil {
		return err
	}
	if err := writeI32Field(p, 3, int32(h.DefinitionLevelEncoding)); err != nil {
		return err
	}
	if err := writeI32Field(p, 4, int32(h.RepetitionLevelEncoding)); err != nil {
		return err
	}
	if h.Statistics != nil {
		if err := p.WriteFieldBegin(background, "statistics", thrift.STRUCT, 5); err != nil {
			return err
		}
		if err := writeStatistics(p, h.Statistics); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

func readDictionaryPageHeader(p thrift.TProtocol, h *format.DictionaryPageHeader) error {
	if _, err := p.ReadStructBegin(background); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(background)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.NumValues = v
		case 2:
			v, err := p.ReadI32(background)
			if err != nil {
				return err
			}
			h.Encoding = format.Encoding(v)
		case 3:
			v, err := p.ReadBool(background)
			if err != nil {
				return err
			}
			h.IsSorted = ptr(v)
		default:
			if err := p.Skip(background, fieldType); err != nil {
				return err
			}
		}
		if err := p.ReadFieldEnd(background); err != nil {
			return err
		}
	}
	return p.ReadStructEnd(background)
}

func writeDictionaryPageHeader(p thrift.TProtocol, h *format.DictionaryPageHeader) error {
	if err := p.WriteStructBegin(background, "DictionaryPageHeader"); err != nil {
		return err
	}
	if err := writeI32Field(p, 1, h.NumValues); err != nil {
		return err
	}
	if err := writeI32Field(p, 2, int32(h.Encoding)); err != nil {
		return err
	}
	if h.IsSorted != nil {
		if err := p.WriteFieldBegin(background, "is_sorted", thrift.BOOL, 3); err != nil {
			return err
		}
		if err := p.WriteBool(background, *h.IsSorted); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(background); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(background); err != nil {
		return err
	}
	return p.WriteStructEnd(background)
}

// --- field helpers ---

func writeI32Field(p thrift.TProtocol, id int16, v int32) error {
	if err := p.WriteFieldBegin(background, "", thrift.I32, id); err != nil {
		return err
	}
	if err := p.WriteI32(background, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(background)
}

func writeI64Field(p thrift.TProtocol, id int16, v int64) error {
	if err := p.WriteFieldBegin(background, "", thrift.I64, id); err != nil {
		return err
	}
	if err := p.WriteI64(background, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(background)
}

func writeStringField(p thrift.TProtocol, id int16, v string) error {
	if err := p.WriteFieldBegin(background, "", thrift.STRING, id); err != nil {
		return err
	}
	if err := p.WriteString(background, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(background)
}

func writeBinaryField(p thrift.TProtocol, id int16, v []byte) error {
	if err := p.WriteFieldBegin(background, "", thrift.STRING, id); err != nil {
		return err
	}
	if err := p.WriteBinary(background, v); err != nil {
		return err
	}
	return p.WriteFieldEnd(background)
}
