package file

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/encoding/dict"
	"github.com/parquetcore/parquet-go/encoding/plain"
	"github.com/parquetcore/parquet-go/encoding/rle"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/thrift"
	"github.com/parquetcore/parquet-go/schema"
)

func requiredInt32Schema(t *testing.T) *schema.ColumnDescriptor {
	t.Helper()
	one := int32(1)
	req := format.Required
	typ := format.Int32
	s, err := schema.New([]format.SchemaElement{
		{Name: "schema", NumChildren: &one},
		{Name: "value", RepetitionType: &req, Type: &typ},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s.Column(s.Leaves()[0])
}

func optionalInt32Schema(t *testing.T) *schema.ColumnDescriptor {
	t.Helper()
	one := int32(1)
	opt := format.Optional
	typ := format.Int32
	s, err := schema.New([]format.SchemaElement{
		{Name: "schema", NumChildren: &one},
		{Name: "value", RepetitionType: &opt, Type: &typ},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s.Column(s.Leaves()[0])
}

func lengthPrefixedRLE(t *testing.T, levels []int32, bitWidth int) []byte {
	t.Helper()
	body, err := rle.Encode(nil, levels, bitWidth)
	if err != nil {
		t.Fatal(err)
	}
	var length [4]byte
	n := uint32(len(body))
	length[0], length[1], length[2], length[3] = byte(n), byte(n>>8), byte(n>>16), byte(n>>24)
	return append(length[:], body...)
}

func TestPageReaderDictionaryEncodedDataPage(t *testing.T) {
	desc := optionalInt32Schema(t)

	var dictValues []byte
	for _, v := range []int32{100, 200, 300} {
		dictValues = plain.AppendInt32(dictValues, v)
	}

	defLevels := []int32{1, 0, 1, 1}
	defBlock := lengthPrefixedRLE(t, defLevels, dict.BitWidth(2))

	var indexBody bytes.Buffer
	enc := new(dict.Encoder)
	enc.Reset(&indexBody)
	if err := enc.EncodeInt32([]int32{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	body := append(append([]byte{}, defBlock...), indexBody.Bytes()...)

	var file bytes.Buffer
	n1, err := thrift.WritePageHeader(&file, &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: int32(len(dictValues)),
		CompressedPageSize:   int32(len(dictValues)),
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: 3,
			Encoding:  format.Plain,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	file.Write(dictValues)

	n2, err := thrift.WritePageHeader(&file, &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(len(body)),
		CompressedPageSize:   int32(len(body)),
		DataPageHeader: &format.DataPageHeader{
			NumValues: 4,
			Encoding:  format.RLEDictionary,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	file.Write(body)

	zero := int64(0)
	chunk := &format.ColumnChunk{
		MetaData: &format.ColumnMetaData{
			Codec:                format.Uncompressed,
			DictionaryPageOffset: &zero,
			DataPageOffset:       n1 + int64(len(dictValues)),
			TotalCompressedSize:  n1 + int64(len(dictValues)) + n2 + int64(len(body)),
		},
	}

	registry := compress.NewRegistry(&uncompressed.Codec{})
	reader, err := NewPageReader(bytes.NewReader(file.Bytes()), chunk, desc, registry)
	if err != nil {
		t.Fatal(err)
	}

	if !reader.Next() {
		t.Fatalf("Next() = false, err = %v", reader.Err())
	}
	page := reader.Page()
	if want := defLevels; !reflect.DeepEqual(page.DefLevels, want) {
		t.Errorf("def levels = %v, want %v", page.DefLevels, want)
	}
	if want := []int32{100, 200, 300}; !reflect.DeepEqual(page.Values.Int32, want) {
		t.Errorf("values = %v, want %v", page.Values.Int32, want)
	}

	if reader.Next() {
		t.Fatalf("expected no further pages, err = %v", reader.Err())
	}
	if err := reader.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPageReaderPlainDataPage(t *testing.T) {
	desc := requiredInt32Schema(t)

	var values []byte
	for _, v := range []int32{10, 20, 30} {
		values = plain.AppendInt32(values, v)
	}

	var file bytes.Buffer
	n, err := thrift.WritePageHeader(&file, &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(len(values)),
		CompressedPageSize:   int32(len(values)),
		DataPageHeader: &format.DataPageHeader{
			NumValues: 3,
			Encoding:  format.Plain,
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	file.Write(values)

	chunk := &format.ColumnChunk{
		MetaData: &format.ColumnMetaData{
			Codec:               format.Uncompressed,
			DataPageOffset:      0,
			TotalCompressedSize: n + int64(len(values)),
		},
	}

	registry := compress.NewRegistry(&uncompressed.Codec{})
	reader, err := NewPageReader(bytes.NewReader(file.Bytes()), chunk, desc, registry)
	if err != nil {
		t.Fatal(err)
	}

	if !reader.Next() {
		t.Fatalf("Next() = false, err = %v", reader.Err())
	}
	page := reader.Page()
	if want := []int32{10, 20, 30}; !reflect.DeepEqual(page.Values.Int32, want) {
		t.Errorf("values = %v, want %v", page.Values.Int32, want)
	}
	if want := []int32{0, 0, 0}; !reflect.DeepEqual(page.DefLevels, want) {
		t.Errorf("def levels = %v, want %v", page.DefLevels, want)
	}
	if want := []int32{0, 0, 0}; !reflect.DeepEqual(page.RepLevels, want) {
		t.Errorf("rep levels = %v, want %v", page.RepLevels, want)
	}

	if reader.Next() {
		t.Fatal("expected a single page")
	}
	if err := reader.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
