package writer

import (
	"bytes"
	"math"

	"github.com/parquetcore/parquet-go/encoding/plain"
	"github.com/parquetcore/parquet-go/file"
	"github.com/parquetcore/parquet-go/format"
)

// maxStatisticsSize bounds the combined size of the min/max byte strings a
// column chunk's Statistics may carry: beyond it, both fields are dropped
// rather than truncated, since a truncated bound can no longer be trusted
// to bracket the column's actual range.
const maxStatisticsSize = 4096

// accumulator tracks the running min/max/null-count of one leaf column's
// values across every page written to a chunk, using PLAIN-encoded bytes
// as the comparable representation so it applies uniformly across
// physical types.
type accumulator struct {
	typ       format.Type
	typeLen   int32
	min, max  []byte
	hasValue  bool
	nullCount int64
}

func newAccumulator(t format.Type, typeLen int32) *accumulator {
	return &accumulator{typ: t, typeLen: typeLen}
}

func (a *accumulator) addNulls(n int) { a.nullCount += int64(n) }

// addValues folds every value of page values into the running min/max,
// comparing each against the current bound with compareValues so
// ByteArray columns sort byte-wise, floats compare with IEEE < and > (so
// -0 and +0 tie) with NaN excluded from comparison, and everything else
// sorts numerically.
func (a *accumulator) addValues(values *file.Values) {
	n := values.Len()
	for i := 0; i < n; i++ {
		v := values.Index(i)
		b := encodeComparable(a.typ, a.typeLen, v)
		if b == nil {
			continue // NaN never updates min or max
		}
		if !a.hasValue {
			a.min, a.max = b, b
			a.hasValue = true
			continue
		}
		if compareBytes(a.typ, b, a.min) < 0 {
			a.min = b
		}
		if compareBytes(a.typ, b, a.max) > 0 {
			a.max = b
		}
	}
}

// statistics returns the format.Statistics value to attach to the column
// chunk, or nil if keeping none was requested. When the accumulated
// min/max pair exceeds maxStatisticsSize, or no non-NaN value was seen,
// the result carries only the null count.
func (a *accumulator) statistics(keep bool) *format.Statistics {
	if !keep {
		return nil
	}
	nullCount := a.nullCount
	if !a.hasValue {
		return &format.Statistics{NullCount: &nullCount}
	}
	if len(a.min)+len(a.max) > maxStatisticsSize {
		return &format.Statistics{NullCount: &nullCount}
	}
	return &format.Statistics{
		Min: a.min, Max: a.max,
		MinValue: a.min, MaxValue: a.max,
		NullCount: &nullCount,
	}
}

// encodeComparable returns v's PLAIN byte encoding, used both as the wire
// representation of Statistics.Min/Max and as a byte-wise-comparable key.
// Returns nil for a float NaN, which min/max tracking excludes.
func encodeComparable(t format.Type, typeLen int32, v any) []byte {
	switch t {
	case format.Boolean:
		if v.(bool) {
			return []byte{1}
		}
		return []byte{0}
	case format.Int32:
		return plain.AppendInt32(nil, v.(int32))
	case format.Int64:
		return plain.AppendInt64(nil, v.(int64))
	case format.Float:
		f := v.(float32)
		if math.IsNaN(float64(f)) {
			return nil
		}
		return plain.AppendFloat(nil, f)
	case format.Double:
		f := v.(float64)
		if math.IsNaN(f) {
			return nil
		}
		return plain.AppendDouble(nil, f)
	case format.ByteArray:
		return v.([]byte)
	case format.FixedLenByteArray:
		return v.([]byte)
	default:
		return nil
	}
}

// compareBytes orders two PLAIN-encoded values of type t. Fixed-width
// numeric types are decoded back to their sign-and-magnitude ordering (a
// plain byte-wise comparison of little-endian two's-complement ints would
// not sort negative values correctly); byte arrays compare byte-wise,
// matching Parquet's UNSIGNED_BYTE_ARRAY comparator for variable-length
// types.
func compareBytes(t format.Type, a, b []byte) int {
	switch t {
	case format.Int32:
		return compareInt64(int64(decodeInt32(a)), int64(decodeInt32(b)))
	case format.Int64:
		return compareInt64(decodeInt64(a), decodeInt64(b))
	case format.Float:
		return compareFloat64(float64(decodeFloat32(a)), float64(decodeFloat32(b)))
	case format.Double:
		return compareFloat64(decodeFloat64(a), decodeFloat64(b))
	case format.Boolean:
		return bytes.Compare(a, b)
	default:
		return bytes.Compare(a, b)
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func decodeInt32(b []byte) int32 {
	var v int32
	for i := 3; i >= 0; i-- {
		v = v<<8 | int32(b[i])
	}
	return v
}

func decodeInt64(b []byte) int64 {
	var v int64
	for i := 7; i >= 0; i-- {
		v = v<<8 | int64(b[i])
	}
	return v
}

func decodeFloat32(b []byte) float32 {
	var bits uint32
	for i := 3; i >= 0; i-- {
		bits = bits<<8 | uint32(b[i])
	}
	return math.Float32frombits(bits)
}

func decodeFloat64(b []byte) float64 {
	var bits uint64
	for i := 7; i >= 0; i-- {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits)
}
