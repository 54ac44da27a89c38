package dict_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/encoding/dict"
)

func TestTableInsertDedups(t *testing.T) {
	table := dict.NewTable[string]()

	indices := make([]int32, 0)
	for _, v := range []string{"a", "b", "a", "c", "b", "a"} {
		indices = append(indices, table.Insert(v))
	}

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(table.Values(), want) {
		t.Fatalf("values mismatch: want %v got %v", want, table.Values())
	}
	if want := []int32{0, 1, 0, 2, 1, 0}; !reflect.DeepEqual(indices, want) {
		t.Fatalf("indices mismatch: want %v got %v", want, indices)
	}
}

func TestIndexEncoderDecoderRoundTrip(t *testing.T) {
	indices := []int32{0, 1, 2, 1, 0, 0, 0, 3, 3, 3}

	var buf bytes.Buffer
	enc := new(dict.Encoder)
	enc.Reset(&buf)
	if err := enc.EncodeInt32(indices); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := new(dict.Decoder)
	dec.Reset(&buf)
	decoded := make([]int32, len(indices))
	if _, err := dec.DecodeInt32(decoded); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(indices, decoded) {
		t.Fatalf("indices mismatch: want %v got %v", indices, decoded)
	}
}

func TestIndexDecoderZeroBitWidth(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0)

	dec := new(dict.Decoder)
	dec.Reset(&buf)
	decoded := make([]int32, 5)
	n, err := dec.DecodeInt32(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("wrong count: %d", n)
	}
	for _, v := range decoded {
		if v != 0 {
			t.Fatalf("expected all-zero indices, got %v", decoded)
		}
	}
}
