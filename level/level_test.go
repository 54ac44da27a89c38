package level_test

import (
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/level"
	"github.com/parquetcore/parquet-go/schema"
)

// Single-level list, mixed shapes. Schema: optional list<int32>.
// Input: [Some([1,2]), None, Some([]), Some([3])].
func TestDefRepToListInfoSingleLevelList(t *testing.T) {
	info := schema.LevelInfo{DefLevel: 2, RepLevel: 1, RepeatedAncestorDefLevel: 1}

	defLevels := []int32{2, 2, 0, 1, 2}
	repLevels := []int32{0, 1, 0, 0, 0}

	offsets := []int32{0}
	out, err := level.DefRepToListInfo(defLevels, repLevels, info, &offsets, len(defLevels))
	if err != nil {
		t.Fatal(err)
	}

	if want := []int32{0, 2, 2, 2, 3}; !reflect.DeepEqual(offsets, want) {
		t.Errorf("offsets = %v, want %v", offsets, want)
	}
	if want := []bool{true, false, true, true}; !reflect.DeepEqual(out.ValidBits, want) {
		t.Errorf("valid bits = %v, want %v", out.ValidBits, want)
	}
	if out.NullCount != 1 {
		t.Errorf("null count = %d, want 1", out.NullCount)
	}
	if out.ValuesRead != 4 {
		t.Errorf("values read = %d, want 4", out.ValuesRead)
	}
}

func TestDefRepToListInfoOffsetsMonotone(t *testing.T) {
	info := schema.LevelInfo{DefLevel: 2, RepLevel: 1, RepeatedAncestorDefLevel: 1}
	defLevels := []int32{2, 2, 2, 0, 1, 2, 2, 2}
	repLevels := []int32{0, 1, 1, 0, 0, 0, 1, 1}

	offsets := []int32{0}
	out, err := level.DefRepToListInfo(defLevels, repLevels, info, &offsets, len(defLevels))
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			t.Fatalf("offsets not monotone: %v", offsets)
		}
	}
	if got, want := offsets[len(offsets)-1], int32(6); got != want {
		t.Errorf("final offset = %d, want %d", got, want)
	}
	if out.ValuesRead != 4 {
		t.Errorf("values read = %d, want 4", out.ValuesRead)
	}
}

func TestDefToBitmapNoRepeatedAncestor(t *testing.T) {
	info := schema.LevelInfo{DefLevel: 1, RepLevel: 0, RepeatedAncestorDefLevel: 0}
	defLevels := []int32{1, 0, 1, 1, 0}

	out := level.DefToBitmap(defLevels, info)

	if want := []bool{true, false, true, true, false}; !reflect.DeepEqual(out.ValidBits, want) {
		t.Errorf("valid bits = %v, want %v", out.ValidBits, want)
	}
	if out.NullCount != 2 {
		t.Errorf("null count = %d, want 2", out.NullCount)
	}
	if out.ValuesRead != len(defLevels) {
		t.Errorf("values read = %d, want %d", out.ValuesRead, len(defLevels))
	}
}

func TestDefRepToBitmapBumpsLevels(t *testing.T) {
	// Struct S, whose repeated descendant contributes rep levels; S's own
	// LevelInfo is {def:1,rep:0,repAncestor:0}, bumped to {2,1,0}.
	structInfo := schema.LevelInfo{DefLevel: 1, RepLevel: 0, RepeatedAncestorDefLevel: 0}

	// Two struct instances: first has 2 repeated entries, second is NULL.
	defLevels := []int32{2, 2, 0}
	repLevels := []int32{0, 1, 0}

	out, err := level.DefRepToBitmap(defLevels, repLevels, structInfo, len(defLevels))
	if err != nil {
		t.Fatal(err)
	}
	if want := []bool{true, false}; !reflect.DeepEqual(out.ValidBits, want) {
		t.Errorf("valid bits = %v, want %v", out.ValidBits, want)
	}
	if out.NullCount != 1 {
		t.Errorf("null count = %d, want 1", out.NullCount)
	}
}

func TestDefRepToListInfoUpperBoundExceeded(t *testing.T) {
	info := schema.LevelInfo{DefLevel: 1, RepLevel: 1, RepeatedAncestorDefLevel: 1}
	defLevels := []int32{1, 1, 1}
	repLevels := []int32{0, 0, 0}

	if _, err := level.DefRepToListInfo(defLevels, repLevels, info, nil, 2); err == nil {
		t.Fatal("expected an error when values_read_upper_bound is exceeded")
	}
}
