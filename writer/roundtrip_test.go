package writer_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/fixtures"
	"github.com/parquetcore/parquet-go/reader"
	"github.com/parquetcore/parquet-go/schema"
	"github.com/parquetcore/parquet-go/writer"
)

// valueEqual compares two reassembled values for the round-trip
// property: structurally equal modulo the nil-vs-empty-slice distinction Go
// makes but the logical model does not (an empty list is "Some([])"
// regardless of whether the slice backing it happens to be nil).
func valueEqual(a, b reader.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case reader.Null:
		return true
	case reader.Scalar:
		if ab, ok := a.Scalar.([]byte); ok {
			bb, ok := b.Scalar.([]byte)
			return ok && string(ab) == string(bb)
		}
		return a.Scalar == b.Scalar
	case reader.List:
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if !valueEqual(a.Elements[i], b.Elements[i]) {
				return false
			}
		}
		return true
	case reader.Struct:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for name, av := range a.Fields {
			bv, ok := b.Fields[name]
			if !ok || !valueEqual(av, bv) {
				return false
			}
		}
		return true
	case reader.Map:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if !valueEqual(a.Entries[i].Key, b.Entries[i].Key) || !valueEqual(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func valuesEqual(a, b []reader.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !valueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// wrapRows boxes bare field values into the Struct rows FileWriter
// expects, keyed by sch's single top-level field.
func wrapRows(sch *schema.Schema, rows []writer.Value) []writer.Value {
	field := sch.Root.Children[0].Name
	wrapped := make([]writer.Value, len(rows))
	for i, row := range rows {
		wrapped[i] = writer.Value{Kind: writer.Struct, Fields: map[string]writer.Value{field: row}}
	}
	return wrapped
}

// roundTrip writes rows through a FileWriter anchored at sch's single
// top-level field and reads them back through a fresh FileReader, giving
// the field's reassembled Values.
func roundTrip(t *testing.T, sch *schema.Schema, rows []writer.Value) []reader.Value {
	t.Helper()

	var buf bytes.Buffer
	fw, err := writer.NewFileWriter(&buf, sch)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := fw.WriteRows(wrapRows(sch, rows)); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fr, err := reader.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if fr.NumRowGroups() != 1 {
		t.Fatalf("NumRowGroups = %d, want 1", fr.NumRowGroups())
	}
	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	if int(rg.NumRows()) != len(rows) {
		t.Fatalf("NumRows = %d, want %d", rg.NumRows(), len(rows))
	}

	field := sch.Root.Children[0].Name
	values, err := rg.ReadColumn(field)
	if err != nil {
		t.Fatalf("ReadColumn(%q): %v", field, err)
	}
	return values
}

// Single-level list, mixed shapes.
func TestRoundTripSingleLevelList(t *testing.T) {
	sch := fixtures.ListInt32Schema()
	rows := fixtures.SingleLevelListRows()

	got := roundTrip(t, sch, rows)
	if !valuesEqual(got, rows) {
		t.Errorf("round-trip mismatch:\n got  %#v\n want %#v", got, rows)
	}
}

// Two-level nested list.
func TestRoundTripNestedList(t *testing.T) {
	sch := fixtures.NestedListInt32Schema()
	rows := fixtures.NestedListRows()

	got := roundTrip(t, sch, rows)
	if !valuesEqual(got, rows) {
		t.Errorf("round-trip mismatch:\n got  %#v\n want %#v", got, rows)
	}
}

// Map with a null value: row 0 must come back with both entries,
// "x" present and "y" null.
func TestRoundTripMapWithNullValue(t *testing.T) {
	sch := fixtures.MapStringInt64Schema()
	rows := fixtures.MapWithNullValueRows()

	got := roundTrip(t, sch, rows)
	if len(got) != 1 || got[0].Kind != reader.Map {
		t.Fatalf("got %#v, want a single Map value", got)
	}
	entries := got[0].Entries
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if string(entries[0].Key.Scalar.([]byte)) != "x" || entries[0].Value.Scalar.(int64) != 10 {
		t.Errorf("entry 0 = %#v, want x -> 10", entries[0])
	}
	if string(entries[1].Key.Scalar.([]byte)) != "y" || !entries[1].Value.IsNull() {
		t.Errorf("entry 1 = %#v, want y -> NULL", entries[1])
	}
}

// Struct with optional fields.
func TestRoundTripOptionalStruct(t *testing.T) {
	sch := fixtures.StructOptionalSchema()
	rows := fixtures.OptionalStructRows()

	got := roundTrip(t, sch, rows)
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	if got[0].Kind != reader.Struct ||
		string(got[0].Fields["name"].Scalar.([]byte)) != "Alice" ||
		got[0].Fields["age"].Scalar.(int32) != 30 {
		t.Errorf("row 0 = %#v, want name=Alice age=30", got[0])
	}
	if got[1].Kind != reader.Struct || !got[1].Fields["name"].IsNull() || got[1].Fields["age"].Scalar.(int32) != 25 {
		t.Errorf("row 1 = %#v, want name=NULL age=25", got[1])
	}
	if !got[2].IsNull() {
		t.Errorf("row 2 = %#v, want NULL struct", got[2])
	}
}

// Struct containing a map: four slots with struct validity
// present, present, absent, present, and the map contents (including the
// empty map and the single-null-value map) preserved per present slot.
func TestRoundTripStructWithMap(t *testing.T) {
	sch := fixtures.StructWithMapSchema()
	rows := fixtures.StructWithMapRows()

	got := roundTrip(t, sch, rows)
	if len(got) != 4 {
		t.Fatalf("got %d rows, want 4", len(got))
	}

	wantValid := []bool{true, true, false, true}
	for i, v := range wantValid {
		if got[i].IsNull() == v {
			t.Errorf("row %d validity = %v, want %v", i, !got[i].IsNull(), v)
		}
	}

	if got[0].Fields["id"].Scalar.(int32) != 1 {
		t.Errorf("row 0 id = %#v, want 1", got[0].Fields["id"])
	}
	attrs0 := got[0].Fields["attrs"].Entries
	if len(attrs0) != 2 {
		t.Fatalf("row 0 attrs = %d entries, want 2", len(attrs0))
	}

	attrs1 := got[1].Fields["attrs"]
	if attrs1.Kind != reader.Map || len(attrs1.Entries) != 0 {
		t.Errorf("row 1 attrs = %#v, want present empty map", attrs1)
	}

	attrs3 := got[3].Fields["attrs"].Entries
	if len(attrs3) != 1 || string(attrs3[0].Key.Scalar.([]byte)) != "k" || !attrs3[0].Value.IsNull() {
		t.Errorf("row 3 attrs = %#v, want single entry k -> NULL", attrs3)
	}
}

// Statistics: writing a double column with nulls and a NaN must leave
// NaN out of the null count and out of min/max tracking.
func TestRoundTripDoubleStatistics(t *testing.T) {
	sch := fixtures.DoubleColumnSchema()
	rows := fixtures.DoubleStatsRows(math.NaN())

	var buf bytes.Buffer
	fw, err := writer.NewFileWriter(&buf, sch)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := fw.WriteRows(wrapRows(sch, rows)); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fr, err := reader.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	meta, err := rg.ColumnMetaData("value")
	if err != nil {
		t.Fatalf("ColumnMetaData: %v", err)
	}
	if meta.Statistics == nil || meta.Statistics.NullCount == nil {
		t.Fatal("expected statistics with a null count")
	}
	if got := *meta.Statistics.NullCount; got != 2 {
		t.Errorf("null count = %d, want 2", got)
	}
	if min := math.Float64frombits(binary.LittleEndian.Uint64(meta.Statistics.MinValue)); min != 3 {
		t.Errorf("min = %v, want 3", min)
	}
	if max := math.Float64frombits(binary.LittleEndian.Uint64(meta.Statistics.MaxValue)); max != 8 {
		t.Errorf("max = %v, want 8", max)
	}

	got := roundTrip(t, sch, rows)
	if len(got) != 6 {
		t.Fatalf("got %d rows, want 6", len(got))
	}
	if got[0].Scalar.(float64) != 5 || !got[1].IsNull() || got[2].Scalar.(float64) != 3 {
		t.Fatalf("rows 0-2 = %#v, %#v, %#v", got[0], got[1], got[2])
	}
	if !math.IsNaN(got[3].Scalar.(float64)) {
		t.Errorf("row 3 = %#v, want NaN", got[3])
	}
	if got[4].Scalar.(float64) != 8 || !got[5].IsNull() {
		t.Fatalf("rows 4-5 = %#v, %#v", got[4], got[5])
	}
}

// Round-trip of every supported physical type, as an optional
// column with NULLs interleaved.
func TestRoundTripPrimitives(t *testing.T) {
	optionalLeafSchema := func(typ format.Type) *schema.Schema {
		one := int32(1)
		opt := format.Optional
		tt := typ
		s, err := schema.New([]format.SchemaElement{
			{Name: "schema", NumChildren: &one},
			{Name: "value", RepetitionType: &opt, Type: &tt},
		})
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	scalar := func(v any) writer.Value { return writer.Value{Kind: writer.Scalar, Scalar: v} }
	null := writer.Value{Kind: writer.Null}

	tests := []struct {
		scenario string
		typ      format.Type
		rows     []writer.Value
	}{
		{"boolean", format.Boolean, []writer.Value{scalar(true), null, scalar(false), scalar(true)}},
		{"int32", format.Int32, []writer.Value{scalar(int32(5)), null, scalar(int32(-7)), scalar(int32(0))}},
		{"int64", format.Int64, []writer.Value{scalar(int64(1 << 40)), null, scalar(int64(-3))}},
		{"float", format.Float, []writer.Value{scalar(float32(1.5)), null, scalar(float32(-2.25))}},
		{"double", format.Double, []writer.Value{scalar(float64(1.5)), null, scalar(float64(-2.25))}},
		{"byte array", format.ByteArray, []writer.Value{scalar([]byte("a")), null, scalar([]byte("bcd")), scalar([]byte{})}},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			got := roundTrip(t, optionalLeafSchema(test.typ), test.rows)
			if !valuesEqual(got, test.rows) {
				t.Errorf("round-trip mismatch:\n got  %#v\n want %#v", got, test.rows)
			}
		})
	}
}

// Record-boundary respect end to end: a tiny page size target
// forces many pages per chunk, and the rows must still reassemble intact
// since every cut lands on a rep_level == 0 position.
func TestRoundTripMultiPageListColumn(t *testing.T) {
	sch := fixtures.ListInt32Schema()
	var rows []writer.Value
	for i := 0; i < 50; i++ {
		rows = append(rows, fixtures.SingleLevelListRows()...)
	}

	var buf bytes.Buffer
	fw, err := writer.NewFileWriter(&buf, sch,
		writer.WithPageOptions(writer.WithPageBufferSize(7)))
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := fw.WriteRows(wrapRows(sch, rows)); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	fr, err := reader.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	rg, err := fr.RowGroup(0)
	if err != nil {
		t.Fatalf("RowGroup: %v", err)
	}
	got, err := rg.ReadColumn("values")
	if err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	if !valuesEqual(got, rows) {
		t.Errorf("round-trip mismatch over %d rows", len(rows))
	}
}
