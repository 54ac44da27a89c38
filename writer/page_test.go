package writer

import (
	"bytes"
	"testing"

	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/fixtures"
)

// Pages of a repeated column must begin at a record boundary: splitPages
// may only cut where the next position carries rep_level == 0.
func TestSplitPagesRecordBoundary(t *testing.T) {
	buf := &LeafBuffer{
		DefLevels: make([]int32, 10),
		RepLevels: []int32{0, 1, 1, 0, 1, 0, 1, 1, 1, 0},
	}

	ranges := splitPages(buf, 3)
	if len(ranges) == 0 {
		t.Fatal("no page ranges produced")
	}

	prevEnd := 0
	for _, rg := range ranges {
		lo, hi := rg[0], rg[1]
		if lo != prevEnd {
			t.Fatalf("ranges not contiguous: %v", ranges)
		}
		if buf.RepLevels[lo] != 0 {
			t.Errorf("page starting at %d begins mid-record (rep=%d)", lo, buf.RepLevels[lo])
		}
		prevEnd = hi
	}
	if prevEnd != len(buf.RepLevels) {
		t.Fatalf("ranges do not cover the buffer: %v", ranges)
	}
}

func doubleRows(vs []float64) []Value {
	rows := make([]Value, len(vs))
	for i, v := range vs {
		rows[i] = Value{Kind: Struct, Fields: map[string]Value{
			"value": {Kind: Scalar, Scalar: v},
		}}
	}
	return rows
}

// A column whose distinct-value count exceeds the fallback ratio must be
// written PLAIN, with no dictionary page and no dictionary encoding
// reported in the chunk metadata.
func TestDictionaryFallbackToPlain(t *testing.T) {
	sch := fixtures.DoubleColumnSchema()

	vs := make([]float64, 64)
	for i := range vs {
		vs[i] = float64(i) * 1.5
	}
	bufs, err := ComputeLevels(sch, sch.Root, doubleRows(vs))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	meta, err := EncodeColumn(&out, bufs["value"], &uncompressed.Codec{}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if meta.DictionaryPageOffset != nil {
		t.Error("expected no dictionary page for a high-cardinality column")
	}
	for _, e := range meta.Encodings {
		if e == format.RLEDictionary {
			t.Errorf("encodings %v report a dictionary that was never written", meta.Encodings)
		}
	}
}

func TestDictionaryEncodingKept(t *testing.T) {
	sch := fixtures.DoubleColumnSchema()

	vs := make([]float64, 64)
	for i := range vs {
		vs[i] = float64(i % 3)
	}
	bufs, err := ComputeLevels(sch, sch.Root, doubleRows(vs))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	meta, err := EncodeColumn(&out, bufs["value"], &uncompressed.Codec{}, 0)
	if err != nil {
		t.Fatal(err)
	}

	if meta.DictionaryPageOffset == nil {
		t.Fatal("expected a dictionary page for a low-cardinality column")
	}
	found := false
	for _, e := range meta.Encodings {
		if e == format.RLEDictionary {
			found = true
		}
	}
	if !found {
		t.Errorf("encodings %v do not report the dictionary", meta.Encodings)
	}
}
