package reader

import (
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/file"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/schema"
)

// leafStream is one leaf column's full contents for a row group: its
// def/rep level streams concatenated across every data page, its dense
// decoded values, and a precomputed map from a level-stream position to
// that position's index into values (or -1 when the position is null or
// belongs to an enclosing container that is itself absent).
type leafStream struct {
	desc      *schema.ColumnDescriptor
	defLevels []int32
	repLevels []int32
	values    file.Values
	denseIdx  []int32
}

// readLeafColumn decodes every page of the column chunk matching desc's
// path within rg, concatenating their (values, def_levels, rep_levels)
// triples (the page decoder's per-page output, joined across the chunk as the nested
// reader's unit of work).
func readLeafColumn(r io.ReaderAt, rg *format.RowGroup, desc *schema.ColumnDescriptor, codecs *compress.Registry) (*leafStream, error) {
	chunk := findColumnChunk(rg, desc.Path)
	if chunk == nil {
		return nil, &SchemaMismatch{Path: desc.Node.String(), Msg: "no column chunk for this path in row group"}
	}

	pr, err := file.NewPageReader(r, chunk, desc, codecs)
	if err != nil {
		return nil, fmt.Errorf("opening page reader for %s: %w", desc.Node, err)
	}

	ls := &leafStream{desc: desc}
	for pr.Next() {
		p := pr.Page()
		ls.defLevels = append(ls.defLevels, p.DefLevels...)
		ls.repLevels = append(ls.repLevels, p.RepLevels...)
		appendValues(&ls.values, p.Values)
	}
	if err := pr.Err(); err != nil {
		return nil, fmt.Errorf("reading column %s: %w", desc.Node, err)
	}

	ls.denseIdx = make([]int32, len(ls.defLevels))
	next := int32(0)
	for i, d := range ls.defLevels {
		if int(d) == desc.MaxDefinitionLevel {
			ls.denseIdx[i] = next
			next++
		} else {
			ls.denseIdx[i] = -1
		}
	}
	if int(next) != ls.values.Len() {
		return nil, &InternalError{Msg: fmt.Sprintf("column %s: decoded %d values but def levels imply %d", desc.Node, ls.values.Len(), next)}
	}
	return ls, nil
}

func findColumnChunk(rg *format.RowGroup, path []string) *format.ColumnChunk {
	for i := range rg.Columns {
		c := &rg.Columns[i]
		if c.MetaData == nil {
			continue
		}
		if pathEqual(c.MetaData.PathInSchema, path) {
			return c
		}
	}
	return nil
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// appendValues concatenates a page's decoded values onto an accumulator,
// one physical-type slice at a time to match file.Values' layout.
func appendValues(dst *file.Values, src file.Values) {
	dst.Type = src.Type
	switch src.Type {
	case format.Boolean:
		dst.Boolean = append(dst.Boolean, src.Boolean...)
	case format.Int32:
		dst.Int32 = append(dst.Int32, src.Int32...)
	case format.Int64:
		dst.Int64 = append(dst.Int64, src.Int64...)
	case format.Float:
		dst.Float = append(dst.Float, src.Float...)
	case format.Double:
		dst.Double = append(dst.Double, src.Double...)
	case format.ByteArray, format.FixedLenByteArray:
		dst.ByteArray = append(dst.ByteArray, src.ByteArray...)
	}
}
