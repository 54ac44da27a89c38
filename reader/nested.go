package reader

import (
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/level"
	"github.com/parquetcore/parquet-go/schema"
)

// readCtx carries the row group's file region and schema plus the leaf
// column cache shared across a single top-level read: a schema node
// reachable from two different recursion paths (a struct field that is
// also some ancestor's representative leaf, for instance) only pays the
// page-decoding cost once.
type readCtx struct {
	sch    *schema.Schema
	rg     *format.RowGroup
	r      io.ReaderAt
	codecs *compress.Registry
	cache  map[string]*leafStream
}

func (c *readCtx) leaf(n *schema.Node) (*leafStream, error) {
	key := n.String()
	if ls, ok := c.cache[key]; ok {
		return ls, nil
	}
	desc := c.sch.Column(n)
	ls, err := readLeafColumn(c.r, c.rg, desc, c.codecs)
	if err != nil {
		return nil, err
	}
	c.cache[key] = ls
	return ls, nil
}

// readNode reassembles every occurrence of node n within the row group
//: one Value per occurrence of n's nearest enclosing repeated
// ancestor (or one per row, if n has none). It dispatches on n's shape,
// composing level.DefRepToListInfo, level.DefRepToBitmap, and
// level.DefToBitmap exactly as schema.Node.RepresentativeLeaf and
// schema.LevelInfo are built to support.
func readNode(ctx *readCtx, n *schema.Node) ([]Value, error) {
	switch {
	case n.Kind == schema.Leaf:
		return readScalar(ctx, n)
	case n.Logical == schema.ListGroup:
		return readList(ctx, n)
	case n.Logical == schema.MapGroup:
		return readMap(ctx, n)
	default:
		return readStruct(ctx, n)
	}
}

func readScalar(ctx *readCtx, n *schema.Node) ([]Value, error) {
	ls, err := ctx.leaf(n)
	if err != nil {
		return nil, err
	}
	fr := frameFor(ctx.sch, ls, n)
	out := level.DefToBitmap(fr.defLevels, ctx.sch.LevelInfo(n))

	values := make([]Value, len(fr.defLevels))
	for i := range fr.defLevels {
		if !out.ValidBits[i] {
			values[i] = Value{Kind: Null}
			continue
		}
		idx := fr.denseIdx[i]
		if idx < 0 {
			return nil, &InternalError{Msg: fmt.Sprintf("%s: valid position has no decoded value", n)}
		}
		values[i] = Value{Kind: Scalar, Scalar: ls.values.Index(int(idx))}
	}
	return values, nil
}

func readStruct(ctx *readCtx, n *schema.Node) ([]Value, error) {
	repLeaf := n.RepresentativeLeaf()
	ls, err := ctx.leaf(repLeaf)
	if err != nil {
		return nil, err
	}
	fr := frameFor(ctx.sch, ls, n)

	var out level.ValidityOutput
	if n.HasRepeatedDescendant() {
		out, err = level.DefRepToBitmap(fr.defLevels, fr.repLevels, ctx.sch.LevelInfo(n), len(fr.defLevels))
		if err != nil {
			return nil, err
		}
	} else {
		out = level.DefToBitmap(fr.defLevels, ctx.sch.LevelInfo(n))
	}

	fieldValues := make([][]Value, len(n.Children))
	for i, f := range n.Children {
		vs, err := readNode(ctx, f)
		if err != nil {
			return nil, err
		}
		if len(vs) != len(out.ValidBits) {
			return nil, &InternalError{Msg: fmt.Sprintf("%s: field %q produced %d occurrences, struct frame has %d", n, f.Name, len(vs), len(out.ValidBits))}
		}
		fieldValues[i] = vs
	}

	result := make([]Value, len(out.ValidBits))
	for i := range out.ValidBits {
		if !out.ValidBits[i] {
			result[i] = Value{Kind: Null}
			continue
		}
		fields := make(map[string]Value, len(n.Children))
		for fi, f := range n.Children {
			fields[f.Name] = fieldValues[fi][i]
		}
		result[i] = Value{Kind: Struct, Fields: fields}
	}
	return result, nil
}

func readList(ctx *readCtx, n *schema.Node) ([]Value, error) {
	mid := n.Children[0]
	element := mid.Children[0]

	repLeaf := n.RepresentativeLeaf()
	ls, err := ctx.leaf(repLeaf)
	if err != nil {
		return nil, err
	}
	fr := frameFor(ctx.sch, ls, n)

	offsets := []int32{0}
	out, err := level.DefRepToListInfo(fr.defLevels, fr.repLevels, ctx.sch.LevelInfo(mid), &offsets, len(fr.defLevels))
	if err != nil {
		return nil, err
	}

	elements, err := readNode(ctx, element)
	if err != nil {
		return nil, err
	}
	if want := int(offsets[len(offsets)-1]); len(elements) != want {
		return nil, &InternalError{Msg: fmt.Sprintf("%s: element reader produced %d values, offsets imply %d", n, len(elements), want)}
	}

	result := make([]Value, len(out.ValidBits))
	for i := range out.ValidBits {
		if !out.ValidBits[i] {
			result[i] = Value{Kind: Null}
			continue
		}
		lo, hi := offsets[i], offsets[i+1]
		result[i] = Value{Kind: List, Elements: append([]Value(nil), elements[lo:hi]...)}
	}
	return result, nil
}

func readMap(ctx *readCtx, n *schema.Node) ([]Value, error) {
	kv := n.Children[0]
	if len(kv.Children) != 2 {
		return nil, &SchemaMismatch{Path: n.String(), Msg: "map key_value group does not have exactly two children"}
	}

	repLeaf := n.RepresentativeLeaf()
	ls, err := ctx.leaf(repLeaf)
	if err != nil {
		return nil, err
	}
	fr := frameFor(ctx.sch, ls, n)

	offsets := []int32{0}
	out, err := level.DefRepToListInfo(fr.defLevels, fr.repLevels, ctx.sch.LevelInfo(kv), &offsets, len(fr.defLevels))
	if err != nil {
		return nil, err
	}

	// The repeated key_value group is the map's entry struct; its key and
	// value children each filter down to one position per entry, so reading
	// them separately and zipping by index reassembles the entries without
	// materializing an intermediate struct per pair.
	keys, err := readNode(ctx, kv.Children[0])
	if err != nil {
		return nil, err
	}
	vals, err := readNode(ctx, kv.Children[1])
	if err != nil {
		return nil, err
	}
	want := int(offsets[len(offsets)-1])
	if len(keys) != want || len(vals) != want {
		return nil, &InternalError{Msg: fmt.Sprintf("%s: key/value readers produced %d/%d entries, offsets imply %d", n, len(keys), len(vals), want)}
	}

	result := make([]Value, len(out.ValidBits))
	for i := range out.ValidBits {
		if !out.ValidBits[i] {
			result[i] = Value{Kind: Null}
			continue
		}
		lo, hi := offsets[i], offsets[i+1]
		slots := make([]MapEntry, 0, hi-lo)
		for j := lo; j < hi; j++ {
			slots = append(slots, MapEntry{Key: keys[j], Value: vals[j]})
		}
		result[i] = Value{Kind: Map, Entries: slots}
	}
	return result, nil
}
