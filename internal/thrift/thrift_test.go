package thrift

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/format"
)

func TestFileMetaDataRoundTrip(t *testing.T) {
	typ := format.ByteArray
	rep := format.Optional
	one := int32(1)
	converted := format.UTF8
	createdBy := "test"
	nullCount := int64(3)

	meta := &format.FileMetaData{
		Version: 1,
		Schema: []format.SchemaElement{
			{Name: "schema", NumChildren: &one},
			{Name: "name", Type: &typ, RepetitionType: &rep, ConvertedType: &converted,
				LogicalType: &format.LogicalType{String: &format.StringType{}}},
		},
		NumRows: 4,
		RowGroups: []format.RowGroup{{
			Columns: []format.ColumnChunk{{
				FileOffset: 4,
				MetaData: &format.ColumnMetaData{
					Type:                 format.ByteArray,
					Encodings:            []format.Encoding{format.Plain, format.RLE},
					PathInSchema:         []string{"name"},
					Codec:                format.Uncompressed,
					NumValues:            4,
					DataPageOffset:       4,
					TotalCompressedSize:  120,
					TotalUncompressedSize: 120,
					Statistics: &format.Statistics{
						Min: []byte("a"), Max: []byte("z"),
						MinValue: []byte("a"), MaxValue: []byte("z"),
						NullCount: &nullCount,
					},
					EncodingStats: []format.PageEncodingStats{
						{PageType: format.DataPage, Encoding: format.Plain, Count: 1},
					},
				},
			}},
			TotalByteSize: 120,
			NumRows:       4,
		}},
		KeyValueMetadata: []format.KeyValue{{Key: "k", Value: ptr("v")}},
		CreatedBy:        &createdBy,
	}

	var buf bytes.Buffer
	n, err := WriteFileMetaData(&buf, meta)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes written, buffer holds %d", n, buf.Len())
	}

	decoded, err := ReadFileMetaData(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(meta, decoded) {
		t.Errorf("metadata mismatch:\nwant %#v\ngot  %#v", meta, decoded)
	}
}

func TestPageHeaderRoundTrip(t *testing.T) {
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 64,
		CompressedPageSize:   48,
		DataPageHeader: &format.DataPageHeader{
			NumValues:               10,
			Encoding:                format.RLEDictionary,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
		},
	}

	var buf bytes.Buffer
	if _, err := WritePageHeader(&buf, header); err != nil {
		t.Fatal(err)
	}
	decoded, err := ReadPageHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(header, decoded) {
		t.Errorf("header mismatch:\nwant %#v\ngot  %#v", header, decoded)
	}
}

func TestPageHeaderSequence(t *testing.T) {
	// headers are framed one after another in a column chunk; decoding must
	// consume exactly one header per call so the body bytes that follow
	// stay aligned
	var buf bytes.Buffer
	a := &format.PageHeader{Type: format.DictionaryPage, UncompressedPageSize: 12, CompressedPageSize: 12,
		DictionaryPageHeader: &format.DictionaryPageHeader{NumValues: 3, Encoding: format.Plain}}
	b := &format.PageHeader{Type: format.DataPage, UncompressedPageSize: 20, CompressedPageSize: 20,
		DataPageHeader: &format.DataPageHeader{NumValues: 5, Encoding: format.Plain}}
	if _, err := WritePageHeader(&buf, a); err != nil {
		t.Fatal(err)
	}
	if _, err := WritePageHeader(&buf, b); err != nil {
		t.Fatal(err)
	}

	gotA, err := ReadPageHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	gotB, err := ReadPageHeader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, gotA) || !reflect.DeepEqual(b, gotB) {
		t.Errorf("sequence mismatch:\ngot %#v\nand %#v", gotA, gotB)
	}
}
