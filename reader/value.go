package reader

// Kind discriminates the shape a reassembled Value carries.
type Kind int

const (
	Null Kind = iota
	Scalar
	List
	Struct
	Map
)

// Value is one reassembled logical entry: the reader's output unit at any
// schema node, scalar or nested. Go has no tagged union; only the field
// matching Kind is ever populated, mirroring how file.Values carries one
// physical-type slice at a time.
type Value struct {
	Kind Kind

	// Scalar holds the decoded leaf value (bool, int32, int64, float32,
	// float64, or []byte) when Kind == Scalar.
	Scalar any

	// Elements holds the list's reassembled elements when Kind == List.
	Elements []Value

	// Fields holds one entry per struct field, keyed by field name, when
	// Kind == Struct.
	Fields map[string]Value

	// Entries holds the map's reassembled key/value pairs when Kind == Map.
	Entries []MapEntry
}

// MapEntry is one key/value pair of a reassembled Map value. Key is never
// itself Null: Parquet's MAP logical type requires non-null keys.
type MapEntry struct {
	Key   Value
	Value Value
}

// IsNull reports whether v is the absent/null value at its frame.
func (v Value) IsNull() bool { return v.Kind == Null }
