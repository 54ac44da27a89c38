// Package writer implements the inverse of the nested array reader:
// the Level Computer flattens nested logical rows into per-leaf
// (values, def_levels, rep_levels) triples, and the Column/Page Encoder
// serializes those triples into dictionary and data pages.
package writer

import (
	"fmt"

	"github.com/parquetcore/parquet-go/file"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/reader"
	"github.com/parquetcore/parquet-go/schema"
)

// Value is the logical input shape the Level Computer flattens, the exact
// mirror of the nested array reader's output (the two paths are
// inverses of one another in the reconstruction model, so this module
// gives them one shared representation rather than two near-identical
// types).
type Value = reader.Value

// Kind re-exports reader.Kind under the writer package for callers that
// build input rows without importing package reader directly.
type Kind = reader.Kind

const (
	Null   = reader.Null
	Scalar = reader.Scalar
	List   = reader.List
	Struct = reader.Struct
	Map    = reader.Map
)

// MapEntry re-exports reader.MapEntry.
type MapEntry = reader.MapEntry

// LeafBuffer accumulates one leaf column's flattened contents across every
// row passed to the Level Computer: its def/rep level streams and its
// dense (present-only) values, ready for the Column/Page Encoder.
type LeafBuffer struct {
	Desc      *schema.ColumnDescriptor
	DefLevels []int32
	RepLevels []int32
	Values    file.Values
}

// ComputeLevels flattens rows (one Value per row) anchored at target into
// one LeafBuffer per leaf descendant of target, implementing the Level
// Computer: the inverse of the nested array reader's grouping.
func ComputeLevels(sch *schema.Schema, target *schema.Node, rows []Value) (map[string]*LeafBuffer, error) {
	bufs := make(map[string]*LeafBuffer)
	for _, leaf := range target.Leaves(nil) {
		bufs[leaf.String()] = &LeafBuffer{Desc: sch.Column(leaf), Values: file.Values{Type: leaf.Type}}
	}

	for _, row := range rows {
		if err := flatten(sch, target, row, 0, bufs); err != nil {
			return nil, err
		}
	}
	return bufs, nil
}

// flatten emits node n's contribution for one logical occurrence v, at
// repetition level rep (the rep level this occurrence's first leaf entry
// should carry: 0 at the start of a row, otherwise the RepLevel of the
// outermost list or map whose non-first element this occurrence begins).
func flatten(sch *schema.Schema, n *schema.Node, v Value, rep int, bufs map[string]*LeafBuffer) error {
	if n.Kind == schema.Leaf {
		return flattenLeaf(sch, n, v, rep, bufs)
	}

	switch {
	case n.Logical == schema.ListGroup:
		return flattenList(sch, n, v, rep, bufs)
	case n.Logical == schema.MapGroup:
		return flattenMap(sch, n, v, rep, bufs)
	default:
		return flattenStruct(sch, n, v, rep, bufs)
	}
}

func flattenLeaf(sch *schema.Schema, n *schema.Node, v Value, rep int, bufs map[string]*LeafBuffer) error {
	buf := bufs[n.String()]
	if v.IsNull() {
		if n.Required() {
			return &WriteError{Path: n.String(), Msg: "null value for a required leaf"}
		}
		buf.DefLevels = append(buf.DefLevels, int32(sch.LevelInfo(n).DefLevel-1))
		buf.RepLevels = append(buf.RepLevels, int32(rep))
		return nil
	}
	if v.Kind != Scalar {
		return &WriteError{Path: n.String(), Msg: fmt.Sprintf("expected a scalar value, got kind %d", v.Kind)}
	}
	buf.DefLevels = append(buf.DefLevels, int32(sch.LevelInfo(n).DefLevel))
	buf.RepLevels = append(buf.RepLevels, int32(rep))
	return appendScalar(&buf.Values, n.Type, v.Scalar)
}

func flattenStruct(sch *schema.Schema, n *schema.Node, v Value, rep int, bufs map[string]*LeafBuffer) error {
	if v.IsNull() {
		if n.Required() {
			return &WriteError{Path: n.String(), Msg: "null value for a required struct"}
		}
		return emitAbsent(sch, n, rep, sch.LevelInfo(n).DefLevel-1, bufs)
	}
	if v.Kind != Struct {
		return &WriteError{Path: n.String(), Msg: fmt.Sprintf("expected a struct value, got kind %d", v.Kind)}
	}
	for _, f := range n.Children {
		fv, ok := v.Fields[f.Name]
		if !ok {
			fv = Value{Kind: Null}
		}
		if err := flatten(sch, f, fv, rep, bufs); err != nil {
			return err
		}
	}
	return nil
}

func flattenList(sch *schema.Schema, n *schema.Node, v Value, rep int, bufs map[string]*LeafBuffer) error {
	mid := n.Children[0]
	element := mid.Children[0]

	if v.IsNull() {
		return emitAbsent(sch, element, rep, sch.LevelInfo(n).DefLevel-1, bufs)
	}
	if v.Kind != List {
		return &WriteError{Path: n.String(), Msg: fmt.Sprintf("expected a list value, got kind %d", v.Kind)}
	}
	if len(v.Elements) == 0 {
		return emitAbsent(sch, element, rep, sch.LevelInfo(mid).DefLevel-1, bufs)
	}
	for i, e := range v.Elements {
		elemRep := rep
		if i > 0 {
			elemRep = sch.LevelInfo(mid).RepLevel
		}
		if err := flatten(sch, element, e, elemRep, bufs); err != nil {
			return err
		}
	}
	return nil
}

func flattenMap(sch *schema.Schema, n *schema.Node, v Value, rep int, bufs map[string]*LeafBuffer) error {
	kv := n.Children[0]
	if len(kv.Children) != 2 {
		return &WriteError{Path: n.String(), Msg: "map key_value group does not have exactly two children"}
	}
	keyName, valName := kv.Children[0].Name, kv.Children[1].Name

	if v.IsNull() {
		return emitAbsent(sch, kv, rep, sch.LevelInfo(n).DefLevel-1, bufs)
	}
	if v.Kind != Map {
		return &WriteError{Path: n.String(), Msg: fmt.Sprintf("expected a map value, got kind %d", v.Kind)}
	}
	if len(v.Entries) == 0 {
		return emitAbsent(sch, kv, rep, sch.LevelInfo(kv).DefLevel-1, bufs)
	}
	for i, entry := range v.Entries {
		entryRep := rep
		if i > 0 {
			entryRep = sch.LevelInfo(kv).RepLevel
		}
		kvValue := Value{Kind: Struct, Fields: map[string]Value{keyName: entry.Key, valName: entry.Value}}
		if err := flatten(sch, kv, kvValue, entryRep, bufs); err != nil {
			return err
		}
	}
	return nil
}

// emitAbsent descends n's subtree pushing one (def, rep) pair per leaf
// with no value, for the case where some ancestor of n is absent: every
// leaf below an absent point shares that exact def level, since nothing
// deeper ever gets a chance to bump it further.
func emitAbsent(sch *schema.Schema, n *schema.Node, rep, def int, bufs map[string]*LeafBuffer) error {
	if n.Kind == schema.Leaf {
		buf := bufs[n.String()]
		buf.DefLevels = append(buf.DefLevels, int32(def))
		buf.RepLevels = append(buf.RepLevels, int32(rep))
		return nil
	}
	switch {
	case n.Logical == schema.ListGroup || n.Logical == schema.MapGroup:
		// descend through the repeated middle group: a list reaches its
		// element, a map reaches both the key and the value leaves
		return emitAbsent(sch, n.Children[0], rep, def, bufs)
	default:
		for _, f := range n.Children {
			if err := emitAbsent(sch, f, rep, def, bufs); err != nil {
				return err
			}
		}
		return nil
	}
}

func appendScalar(dst *file.Values, t format.Type, v any) error {
	switch t {
	case format.Boolean:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("scalar value %v is not a bool", v)
		}
		dst.Boolean = append(dst.Boolean, b)
	case format.Int32:
		i, ok := v.(int32)
		if !ok {
			return fmt.Errorf("scalar value %v is not an int32", v)
		}
		dst.Int32 = append(dst.Int32, i)
	case format.Int64:
		i, ok := v.(int64)
		if !ok {
			return fmt.Errorf("scalar value %v is not an int64", v)
		}
		dst.Int64 = append(dst.Int64, i)
	case format.Float:
		f, ok := v.(float32)
		if !ok {
			return fmt.Errorf("scalar value %v is not a float32", v)
		}
		dst.Float = append(dst.Float, f)
	case format.Double:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("scalar value %v is not a float64", v)
		}
		dst.Double = append(dst.Double, f)
	case format.ByteArray, format.FixedLenByteArray:
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("scalar value %v is not a []byte", v)
		}
		dst.ByteArray = append(dst.ByteArray, b)
	default:
		return fmt.Errorf("unsupported physical type %s", t)
	}
	return nil
}
