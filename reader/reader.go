package reader

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/thrift"
	"github.com/parquetcore/parquet-go/schema"
)

const (
	magic            = "PAR1"
	magicLength      = len(magic)
	footerLenLength  = 4
	defaultTailBytes = magicLength + footerLenLength
)

// FileReader holds a parsed file footer: the schema and the row groups it
// describes. Use OpenFile to build one.
type FileReader struct {
	r      io.ReaderAt
	codecs *compress.Registry
	meta   *format.FileMetaData
	schema *schema.Schema
}

// Option configures a FileReader at open time, following this module's
// functional-options convention (see the Ambient Stack section of the
// design notes: every constructor that can reasonably vary takes Options
// rather than a growing positional parameter list).
type Option func(*fileConfig)

type fileConfig struct {
	codecs *compress.Registry
}

// WithCodecs overrides the compression codec registry consulted when
// decoding column chunks. By default only the identity (UNCOMPRESSED)
// codec is registered, so a chunk compressed with anything else is
// rejected unless the caller supplies a registry carrying that codec.
func WithCodecs(r *compress.Registry) Option {
	return func(c *fileConfig) { c.codecs = r }
}

// OpenFile parses the footer of a Parquet file occupying [0, size) of r:
// the magic bytes at both ends and the Thrift-encoded FileMetaData they
// bracket. Only the footer is read; column chunk bytes are read lazily by
// RowGroupReader.ReadColumn.
func OpenFile(r io.ReaderAt, size int64, opts ...Option) (*FileReader, error) {
	cfg := fileConfig{codecs: compress.NewRegistry(&uncompressed.Codec{})}
	for _, opt := range opts {
		opt(&cfg)
	}

	if size < int64(2*magicLength+footerLenLength) {
		return nil, &SchemaMismatch{Msg: "file too small to be a parquet file"}
	}

	var head [magicLength]byte
	if _, err := r.ReadAt(head[:], 0); err != nil {
		return nil, fmt.Errorf("reading magic header: %w", err)
	}
	if string(head[:]) != magic {
		return nil, &SchemaMismatch{Msg: fmt.Sprintf("invalid magic header %q", head[:])}
	}

	var tail [defaultTailBytes]byte
	if _, err := r.ReadAt(tail[:], size-int64(defaultTailBytes)); err != nil {
		return nil, fmt.Errorf("reading magic footer: %w", err)
	}
	if string(tail[footerLenLength:]) != magic {
		return nil, &SchemaMismatch{Msg: fmt.Sprintf("invalid magic footer %q", tail[footerLenLength:])}
	}
	footerLen := int64(binary.LittleEndian.Uint32(tail[:footerLenLength]))

	footerStart := size - int64(defaultTailBytes) - footerLen
	if footerStart < int64(magicLength) {
		return nil, &SchemaMismatch{Msg: "footer length extends past start of file"}
	}

	meta, err := thrift.ReadFileMetaData(io.NewSectionReader(r, footerStart, footerLen))
	if err != nil {
		return nil, fmt.Errorf("decoding file metadata: %w", err)
	}

	sch, err := schema.New(meta.Schema)
	if err != nil {
		return nil, fmt.Errorf("building schema: %w", err)
	}

	return &FileReader{r: r, codecs: cfg.codecs, meta: meta, schema: sch}, nil
}

// Schema returns the file's parsed schema tree.
func (f *FileReader) Schema() *schema.Schema { return f.schema }

// NumRowGroups returns the number of row groups recorded in the footer.
func (f *FileReader) NumRowGroups() int { return len(f.meta.RowGroups) }

// RowGroup opens the i-th row group for reading.
func (f *FileReader) RowGroup(i int) (*RowGroupReader, error) {
	if i < 0 || i >= len(f.meta.RowGroups) {
		return nil, &SchemaMismatch{Msg: fmt.Sprintf("row group index %d out of range [0,%d)", i, len(f.meta.RowGroups))}
	}
	rg := &f.meta.RowGroups[i]
	return &RowGroupReader{
		r:      f.r,
		codecs: f.codecs,
		sch:    f.schema,
		rg:     rg,
	}, nil
}

// RowGroupReader reassembles columns out of a single row group.
type RowGroupReader struct {
	r      io.ReaderAt
	codecs *compress.Registry
	sch    *schema.Schema
	rg     *format.RowGroup
}

// NumRows reports the row group's declared row count.
func (rg *RowGroupReader) NumRows() int64 { return rg.rg.NumRows }

// ReadColumn reassembles every value of the column found at path,
// returning exactly one Value per row: nested shapes (List, Struct,
// Map) compose recursively under each row's top-level Value.
func (rg *RowGroupReader) ReadColumn(path ...string) ([]Value, error) {
	n, err := rg.sch.Lookup(path...)
	if err != nil {
		return nil, &SchemaMismatch{Path: strings.Join(path, "."), Msg: err.Error()}
	}

	ctx := &readCtx{sch: rg.sch, rg: rg.rg, r: rg.r, codecs: rg.codecs, cache: make(map[string]*leafStream)}
	values, err := readNode(ctx, n)
	if err != nil {
		return nil, err
	}
	if int64(len(values)) != rg.rg.NumRows {
		return nil, &InternalError{Msg: fmt.Sprintf("column %s: reassembled %d rows, row group declares %d", n, len(values), rg.rg.NumRows)}
	}
	return values, nil
}

// ColumnMetaData returns the column chunk metadata footer entry for the
// leaf at path within this row group: encodings used, compressed and
// uncompressed sizes, and statistics, exposed for callers (parqinspect's
// meta dump) that report on a file without reassembling its rows.
func (rg *RowGroupReader) ColumnMetaData(path ...string) (*format.ColumnMetaData, error) {
	n, err := rg.sch.Lookup(path...)
	if err != nil {
		return nil, &SchemaMismatch{Path: strings.Join(path, "."), Msg: err.Error()}
	}
	if n.Kind != schema.Leaf {
		return nil, &SchemaMismatch{Path: n.String(), Msg: "not a leaf column"}
	}
	desc := rg.sch.Column(n)
	chunk := findColumnChunk(rg.rg, desc.Path)
	if chunk == nil {
		return nil, &SchemaMismatch{Path: n.String(), Msg: "no column chunk for this path in row group"}
	}
	return chunk.MetaData, nil
}

// ReadAll reassembles every top-level field of the schema, keyed by field
// name, each holding one Value per row.
func (rg *RowGroupReader) ReadAll() (map[string][]Value, error) {
	out := make(map[string][]Value, len(rg.sch.Root.Children))
	for _, field := range rg.sch.Root.Children {
		values, err := rg.ReadColumn(field.Name)
		if err != nil {
			return nil, err
		}
		out[field.Name] = values
	}
	return out, nil
}
