package file

import "github.com/parquetcore/parquet-go/format"

// Values holds one page's (or dictionary's) worth of decoded leaf values, in
// whichever field matches the column's physical type. Go has no sum type;
// this module always knows the physical type ahead of decoding (it comes
// from the ColumnDescriptor), so only one field is ever populated and a
// tagged union adds no safety a single populated slice doesn't already give.
type Values struct {
	Type      format.Type
	Boolean   []bool
	Int32     []int32
	Int64     []int64
	Float     []float32
	Double    []float64
	ByteArray [][]byte
}

// Len reports how many values are held, regardless of physical type.
func (v *Values) Len() int {
	switch v.Type {
	case format.Boolean:
		return len(v.Boolean)
	case format.Int32:
		return len(v.Int32)
	case format.Int64:
		return len(v.Int64)
	case format.Float:
		return len(v.Float)
	case format.Double:
		return len(v.Double)
	case format.ByteArray, format.FixedLenByteArray:
		return len(v.ByteArray)
	default:
		return 0
	}
}

// Index returns the i-th value boxed as an any, for callers (statistics,
// the nested reader) that operate generically across physical types.
func (v *Values) Index(i int) any {
	switch v.Type {
	case format.Boolean:
		return v.Boolean[i]
	case format.Int32:
		return v.Int32[i]
	case format.Int64:
		return v.Int64[i]
	case format.Float:
		return v.Float[i]
	case format.Double:
		return v.Double[i]
	case format.ByteArray, format.FixedLenByteArray:
		return v.ByteArray[i]
	default:
		return nil
	}
}

// Dictionary is the decoded contents of a column chunk's (at most one)
// dictionary page: a contiguous vector of unique values of the column's
// physical type, indexed by the int32 indices data pages carry.
type Dictionary struct {
	Values Values
}

func (d *Dictionary) Len() int { return d.Values.Len() }

// Lookup resolves indices against the dictionary, producing the
// materialized Values a dictionary-encoded data page logically carries.
func (d *Dictionary) Lookup(indices []int32) (Values, error) {
	out := Values{Type: d.Values.Type}
	switch d.Values.Type {
	case format.Boolean:
		out.Boolean = make([]bool, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.Boolean) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.Boolean[i] = d.Values.Boolean[idx]
		}
	case format.Int32:
		out.Int32 = make([]int32, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.Int32) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.Int32[i] = d.Values.Int32[idx]
		}
	case format.Int64:
		out.Int64 = make([]int64, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.Int64) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.Int64[i] = d.Values.Int64[idx]
		}
	case format.Float:
		out.Float = make([]float32, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.Float) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.Float[i] = d.Values.Float[idx]
		}
	case format.Double:
		out.Double = make([]float64, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.Double) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.Double[i] = d.Values.Double[idx]
		}
	case format.ByteArray, format.FixedLenByteArray:
		out.ByteArray = make([][]byte, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(d.Values.ByteArray) {
				return Values{}, &DecodeError{Reason: BadDictionaryIndex, Msg: "dictionary index out of range"}
			}
			out.ByteArray[i] = d.Values.ByteArray[idx]
		}
	}
	return out, nil
}
