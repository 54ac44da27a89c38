// Package format models the on-disk wire types of the Parquet file format:
// the schema element tree, page headers and column/row-group metadata that
// the Thrift compact-binary footer (de)serializes.
//
// This package is intentionally the boundary the core specification treats
// as "external": everything here is a plain data carrier, framed to and
// from bytes by the Read*/Write* functions of internal/thrift (such as
// thrift.ReadFileMetaData and thrift.WriteFileMetaData) using the Thrift
// compact protocol. None of the nested-column
// reconstruction logic lives here.
package format

import "sort"

// Type is the physical (on-disk) type of a primitive column.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96 // deprecated, retained for legacy files
	Float
	Double
	ByteArray
	FixedLenByteArray
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
		return "UNKNOWN"
	}
}

// FieldRepetitionType is the per-node repetition kind of a schema element.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// ConvertedType is the legacy logical-type annotation. Only the tags needed
// to recognize LIST and MAP group shapes are consulted by the schema
// builder; the rest round-trip as opaque integers.
type ConvertedType int32

const (
	UTF8 ConvertedType = iota
	Map
	MapKeyValue
	List
	Enum
	Decimal
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32Converted
	Int64Converted
	Json
	Bson
	Interval
)

// LogicalType is the modern logical-type annotation union. Only the List and
// Map tags are consulted by the schema builder. internal/thrift reads and
// writes the List, Map, String and Integer tags; Timestamp is neither read
// nor written there, so it does not survive a trip through a file.
type LogicalType struct {
	List      *ListType
	Map       *MapType
	String    *StringType
	Integer   *IntType
	Timestamp *TimestampType
}

type ListType struct{}
type MapType struct{}
type StringType struct{}

type IntType struct {
	BitWidth int8
	IsSigned bool
}

type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            string // "MILLIS", "MICROS", "NANOS"
}

// Encoding identifies a page's value (or level) encoding.
type Encoding int32

const (
	Plain Encoding = iota
	GroupVarInt
	PlainDictionary
	RLE
	BitPacked
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
	RLEDictionary
	ByteStreamSplit
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	default:
		return "UNKNOWN"
	}
}

// CompressionCodec identifies the page compression codec.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = iota
	Snappy
	Gzip
	LZO
	Brotli
	Lz4
	Zstd
	Lz4Raw
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Brotli:
		return "BROTLI"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return "UNKNOWN"
	}
}

// PageType identifies the kind of a page header.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

// SchemaElement is one depth-first pre-order node of a serialized schema
// tree, exactly as produced by the Thrift footer.
type SchemaElement struct {
	Type           *Type
	TypeLength     *int32
	RepetitionType *FieldRepetitionType
	Name           string
	NumChildren    *int32
	ConvertedType  *ConvertedType
	Scale          *int32
	Precision      *int32
	FieldID        *int32
	LogicalType    *LogicalType
}

func (e *SchemaElement) GetRepetitionType() FieldRepetitionType {
	if e.RepetitionType == nil {
		return Required
	}
	return *e.RepetitionType
}

func (e *SchemaElement) GetNumChildren() int32 {
	if e.NumChildren == nil {
		return 0
	}
	return *e.NumChildren
}

func (e *SchemaElement) IsLeaf() bool {
	return e.GetNumChildren() == 0
}

// Statistics are the per-page or per-column-chunk min/max/null-count
// summary. Both the legacy (Min/Max) and modern (MinValue/MaxValue) fields
// are carried since the writer must populate both for interoperability.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     *int64
	DistinctCount *int64
	MaxValue      []byte
	MinValue      []byte
}

type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              *Statistics
}

type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  *bool
}

type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	CRC                  *int32
	DataPageHeader       *DataPageHeader
	DictionaryPageHeader *DictionaryPageHeader
}

type KeyValue struct {
	Key   string
	Value *string
}

// SortKeyValueMetadata sorts a slice of KeyValue entries by key, then value.
func SortKeyValueMetadata(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		if kv[i].Key != kv[j].Key {
			return kv[i].Key < kv[j].Key
		}
		vi, vj := "", ""
		if kv[i].Value != nil {
			vi = *kv[i].Value
		}
		if kv[j].Value != nil {
			vj = *kv[j].Value
		}
		return vi < vj
	})
}

type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	IndexPageOffset       *int64
	DictionaryPageOffset  *int64
	Statistics            *Statistics
	EncodingStats         []PageEncodingStats
}

type ColumnChunk struct {
	FilePath   *string
	FileOffset int64
	MetaData   *ColumnMetaData
}

type RowGroup struct {
	Columns       []ColumnChunk
	TotalByteSize int64
	NumRows       int64
}

type FileMetaData struct {
	Version          int32
	Schema           []SchemaElement
	NumRows          int64
	RowGroups        []RowGroup
	KeyValueMetadata []KeyValue
	CreatedBy        *string
}
