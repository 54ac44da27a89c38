package rle_test

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/parquetcore/parquet-go/encoding/rle"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		scenario string
		bitWidth int
		values   []int32
	}{
		{"empty", 1, nil},
		{"all zero bit width", 0, []int32{0, 0, 0, 0}},
		{"single run", 2, []int32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"bit packed", 3, []int32{0, 1, 2, 3, 4, 5, 6, 7, 0, 1}},
		{"mixed", 2, []int32{3, 3, 3, 3, 3, 3, 3, 3, 3, 0, 1, 2, 3, 2, 1, 0, 1, 1}},
		{"list column def levels", 2, []int32{2, 2, 0, 1, 2}},
		{"list column rep levels", 1, []int32{0, 1, 0, 0, 0}},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			encoded, err := rle.Encode(nil, test.values, test.bitWidth)
			if err != nil {
				t.Fatal(err)
			}

			decoded := make([]int32, len(test.values))
			if err := rle.Decode(decoded, encoded, test.bitWidth); err != nil {
				t.Fatal(err)
			}

			want := test.values
			if want == nil {
				want = []int32{}
			}
			if len(decoded) == 0 {
				decoded = []int32{}
			}
			if !reflect.DeepEqual(want, decoded) {
				t.Errorf("values mismatch:\nwant: %v\ngot:  %v", want, decoded)
			}
		})
	}
}

func TestEncodeDecodeRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for _, bitWidth := range []int{1, 2, 3, 5, 8, 16} {
		bitWidth := bitWidth
		t.Run("", func(t *testing.T) {
			max := int32(1) << uint(bitWidth)
			values := make([]int32, 1000)
			for i := range values {
				values[i] = r.Int31n(max)
			}

			encoded, err := rle.Encode(nil, values, bitWidth)
			if err != nil {
				t.Fatal(err)
			}

			decoded := make([]int32, len(values))
			if err := rle.Decode(decoded, encoded, bitWidth); err != nil {
				t.Fatal(err)
			}

			if !reflect.DeepEqual(values, decoded) {
				t.Fatalf("value mismatch at bit width %d", bitWidth)
			}
		})
	}
}
