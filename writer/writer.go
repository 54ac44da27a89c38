package writer

import (
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/thrift"
	"github.com/parquetcore/parquet-go/schema"
)

const (
	magic = "PAR1"

	// DefaultCreatedBy identifies this module as the producer recorded in
	// a file's footer.
	DefaultCreatedBy = "github.com/parquetcore/parquet-go"
	// DefaultRowGroupTargetRows bounds how many buffered rows WriteRow
	// accumulates before it cuts a new row group on its own.
	DefaultRowGroupTargetRows = 1_000_000
)

// WriterConfig carries FileWriter options, applied through WriterOption
// functions on top of defaultWriterConfig.
type WriterConfig struct {
	CreatedBy          string
	Codec              compress.Codec
	RowGroupTargetRows int
	KeyValueMetadata   map[string]string
	PageOptions        []Option
}

// WriterOption configures a WriterConfig.
type WriterOption func(*WriterConfig)

func WithCreatedBy(s string) WriterOption { return func(c *WriterConfig) { c.CreatedBy = s } }
func WithCompression(codec compress.Codec) WriterOption {
	return func(c *WriterConfig) { c.Codec = codec }
}
func WithRowGroupTargetRows(n int) WriterOption {
	return func(c *WriterConfig) { c.RowGroupTargetRows = n }
}
func WithKeyValueMetadata(kv map[string]string) WriterOption {
	return func(c *WriterConfig) { c.KeyValueMetadata = kv }
}
func WithPageOptions(opts ...Option) WriterOption {
	return func(c *WriterConfig) { c.PageOptions = opts }
}

func defaultWriterConfig() WriterConfig {
	return WriterConfig{
		CreatedBy:          DefaultCreatedBy,
		Codec:              &uncompressed.Codec{},
		RowGroupTargetRows: DefaultRowGroupTargetRows,
	}
}

// FileWriter assembles a complete Parquet file: the PAR1 magic header,
// one or more row groups each produced by ComputeLevels + EncodeColumn,
// and the Thrift-encoded footer.
type FileWriter struct {
	w      *countingWriter
	sch    *schema.Schema
	cfg    WriterConfig
	rows   []Value
	groups []format.RowGroup
	closed bool
}

// NewFileWriter opens a new file writer over w, immediately emitting the
// magic header.
func NewFileWriter(w io.Writer, sch *schema.Schema, opts ...WriterOption) (*FileWriter, error) {
	cfg := defaultWriterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cw := &countingWriter{w: w}
	if _, err := cw.Write([]byte(magic)); err != nil {
		return nil, fmt.Errorf("writing magic header: %w", err)
	}

	return &FileWriter{w: cw, sch: sch, cfg: cfg}, nil
}

// WriteRow buffers one top-level row, a Struct value keyed by the
// schema's top-level field names, flushing a row group automatically once
// RowGroupTargetRows have accumulated. Fields missing from the row are
// written as NULL.
func (f *FileWriter) WriteRow(row Value) error {
	if f.closed {
		return &InternalError{Msg: "WriteRow called after Close"}
	}
	f.rows = append(f.rows, row)
	if len(f.rows) >= f.cfg.RowGroupTargetRows {
		return f.flushRowGroup()
	}
	return nil
}

// WriteRows buffers a whole batch, equivalent to calling WriteRow in a
// loop.
func (f *FileWriter) WriteRows(rows []Value) error {
	for _, row := range rows {
		if err := f.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileWriter) flushRowGroup() error {
	if len(f.rows) == 0 {
		return nil
	}
	rows := f.rows
	f.rows = nil

	bufs, err := ComputeLevels(f.sch, f.sch.Root, rows)
	if err != nil {
		return err
	}

	rg := format.RowGroup{NumRows: int64(len(rows))}
	for _, leaf := range f.sch.Leaves() {
		buf := bufs[leaf.String()]
		offset := f.w.n
		meta, err := EncodeColumn(f.w, buf, f.cfg.Codec, offset, f.cfg.PageOptions...)
		if err != nil {
			return fmt.Errorf("encoding column %s: %w", leaf, err)
		}
		rg.Columns = append(rg.Columns, format.ColumnChunk{FileOffset: offset, MetaData: meta})
		rg.TotalByteSize += meta.TotalUncompressedSize
	}
	f.groups = append(f.groups, rg)
	return nil
}

// Close flushes any buffered rows as a final row group, writes the
// Thrift-encoded footer, and appends the trailing footer length and magic
// bytes.
func (f *FileWriter) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if err := f.flushRowGroup(); err != nil {
		return err
	}

	var numRows int64
	for _, rg := range f.groups {
		numRows += rg.NumRows
	}

	meta := &format.FileMetaData{
		Version:   1,
		Schema:    schema.Flatten(f.sch),
		NumRows:   numRows,
		RowGroups: f.groups,
		CreatedBy: &f.cfg.CreatedBy,
	}
	for k, v := range f.cfg.KeyValueMetadata {
		val := v
		meta.KeyValueMetadata = append(meta.KeyValueMetadata, format.KeyValue{Key: k, Value: &val})
	}
	format.SortKeyValueMetadata(meta.KeyValueMetadata)

	footerStart := f.w.n
	if _, err := thrift.WriteFileMetaData(f.w, meta); err != nil {
		return fmt.Errorf("writing file metadata: %w", err)
	}
	footerLen := f.w.n - footerStart

	var trailer [8]byte
	putUint32(trailer[:4], uint32(footerLen))
	copy(trailer[4:], magic)
	_, err := f.w.Write(trailer[:])
	return err
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
