package file

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/encoding/dict"
	"github.com/parquetcore/parquet-go/encoding/plain"
	"github.com/parquetcore/parquet-go/encoding/rle"
	"github.com/parquetcore/parquet-go/format"
)

func lengthPrefixedLevels(t *testing.T, levels []int32, bitWidth int) []byte {
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

func TestDecodePlainValuesInt32(t *testing.T) {
	var buf []byte
	for _, v := range []int32{1, 2, 3, -4} {
		buf = plain.AppendInt32(buf, v)
	}
	values, err := decodePlainValues(format.Int32, 0, buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{1, 2, 3, -4}; !reflect.DeepEqual(values.Int32, want) {
		t.Errorf("got %v, want %v", values.Int32, want)
	}
}

func TestDecodePlainValuesByteArray(t *testing.T) {
	var buf []byte
	buf = plain.AppendByteArray(buf, []byte("ab"))
	buf = plain.AppendByteArray(buf, []byte("cde"))
	values, err := decodePlainValues(format.ByteArray, 0, buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if string(values.ByteArray[0]) != "ab" || string(values.ByteArray[1]) != "cde" {
		t.Errorf("got %v", values.ByteArray)
	}
}

func TestDecodeLevelBlockRoundTrip(t *testing.T) {
	levels := []int32{0, 1, 1, 0, 1}
	buf := lengthPrefixedLevels(t, levels, dict.BitWidth(2))

	got, consumed, err := decodeLevelBlock(buf, len(levels), 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, levels) {
		t.Errorf("got %v, want %v", got, levels)
	}
	if consumed != len(buf) {
		t.Errorf("consumed %d, want %d (whole block)", consumed, len(buf))
	}
}

func TestDecodeIndicesRoundTrip(t *testing.T) {
	indices := []int32{0, 2, 1, 2, 0}

	var buf bytes.Buffer
	enc := new(dict.Encoder)
	enc.Reset(&buf)
	if err := enc.EncodeInt32(indices); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	got, err := decodeIndices(buf.Bytes(), len(indices))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, indices) {
		t.Errorf("got %v, want %v", got, indices)
	}
}

func TestDictionaryLookupOutOfRange(t *testing.T) {
	d := &Dictionary{Values: Values{Type: format.Int32, Int32: []int32{10, 20}}}
	if _, err := d.Lookup([]int32{0, 5}); err == nil {
		t.Fatal("expected an out-of-range dictionary index to error")
	}
	if got, err := d.Lookup([]int32{1, 0}); err != nil {
		t.Fatal(err)
	} else if want := (Values{Type: format.Int32, Int32: []int32{20, 10}}); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
