package writer_test

import (
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/internal/fixtures"
	"github.com/parquetcore/parquet-go/writer"
)

// Pins the writer's exact level output for a single-level list: the input
// [Some([1,2]), None, Some([]), Some([3])] must flatten to precisely these
// (rep, def) pairs and dense values.
func TestComputeLevelsSingleLevelList(t *testing.T) {
	sch := fixtures.ListInt32Schema()
	rows := wrapRows(sch, fixtures.SingleLevelListRows())

	bufs, err := writer.ComputeLevels(sch, sch.Root, rows)
	if err != nil {
		t.Fatal(err)
	}
	buf := bufs["values.list.element"]
	if buf == nil {
		t.Fatal("no leaf buffer for values.list.element")
	}

	if want := []int32{2, 2, 0, 1, 2}; !reflect.DeepEqual(buf.DefLevels, want) {
		t.Errorf("def levels = %v, want %v", buf.DefLevels, want)
	}
	if want := []int32{0, 1, 0, 0, 0}; !reflect.DeepEqual(buf.RepLevels, want) {
		t.Errorf("rep levels = %v, want %v", buf.RepLevels, want)
	}
	if want := []int32{1, 2, 3}; !reflect.DeepEqual(buf.Values.Int32, want) {
		t.Errorf("values = %v, want %v", buf.Values.Int32, want)
	}
	if len(buf.DefLevels) < buf.Values.Len() {
		t.Error("fewer level pairs than values")
	}
}

// Pins the two-level nesting case: values [1,2,3,4] with rep [0,2,1,0]
// and every def at the leaf's max definition level.
func TestComputeLevelsNestedList(t *testing.T) {
	sch := fixtures.NestedListInt32Schema()
	rows := wrapRows(sch, fixtures.NestedListRows())

	bufs, err := writer.ComputeLevels(sch, sch.Root, rows)
	if err != nil {
		t.Fatal(err)
	}
	buf := bufs["values.list.element.list.element"]
	if buf == nil {
		t.Fatal("no leaf buffer for values.list.element.list.element")
	}

	if want := []int32{4, 4, 4, 4}; !reflect.DeepEqual(buf.DefLevels, want) {
		t.Errorf("def levels = %v, want %v", buf.DefLevels, want)
	}
	if want := []int32{0, 2, 1, 0}; !reflect.DeepEqual(buf.RepLevels, want) {
		t.Errorf("rep levels = %v, want %v", buf.RepLevels, want)
	}
	if want := []int32{1, 2, 3, 4}; !reflect.DeepEqual(buf.Values.Int32, want) {
		t.Errorf("values = %v, want %v", buf.Values.Int32, want)
	}
}

func TestComputeLevelsNullRequiredLeaf(t *testing.T) {
	sch := fixtures.ListInt32Schema()
	rows := []writer.Value{{Kind: writer.Struct, Fields: map[string]writer.Value{
		"values": {Kind: writer.List, Elements: []writer.Value{{Kind: writer.Null}}},
	}}}

	if _, err := writer.ComputeLevels(sch, sch.Root, rows); err == nil {
		t.Fatal("expected an error writing NULL into a required element")
	}
}
