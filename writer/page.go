package writer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/encoding/dict"
	"github.com/parquetcore/parquet-go/encoding/plain"
	"github.com/parquetcore/parquet-go/encoding/rle"
	"github.com/parquetcore/parquet-go/file"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/thrift"
	"github.com/parquetcore/parquet-go/schema"
)

const (
	// DefaultPageBufferSize is the target uncompressed value count of a
	// single data page before the encoder looks for the next record
	// boundary to cut at.
	DefaultPageBufferSize = 8192
	// dictionaryFallbackRatio: a dictionary is abandoned in favor of PLAIN
	// when its distinct value count exceeds this fraction of the total
	// value count, since past that point the index stream plus dictionary
	// page cost more than encoding the values directly (adaptive
	// dictionary/PLAIN fallback).
	dictionaryFallbackRatio = 0.9
)

// Config carries Column/Page Encoder options, following this module's
// functional-options convention (mirrored from reader.Option).
type Config struct {
	PageBufferSize     int
	DictionaryEnabled  bool
	DataPageStatistics bool
}

// Option configures a Config.
type Option func(*Config)

func WithPageBufferSize(n int) Option      { return func(c *Config) { c.PageBufferSize = n } }
func WithDictionary(enabled bool) Option   { return func(c *Config) { c.DictionaryEnabled = enabled } }
func WithDataPageStatistics(b bool) Option { return func(c *Config) { c.DataPageStatistics = b } }

func defaultConfig() Config {
	return Config{
		PageBufferSize:     DefaultPageBufferSize,
		DictionaryEnabled:  true,
		DataPageStatistics: false,
	}
}

// countingWriter tracks bytes written so EncodeColumn can report a chunk's
// dictionary/data page offsets relative to the file.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// EncodeColumn serializes one leaf column's flattened contents to w as an
// optional dictionary page followed by one or more Data Page V1 pages,
// returning the format.ColumnMetaData a row group's footer entry for this
// column should carry. offset is the absolute file offset w is currently
// positioned at.
func EncodeColumn(w io.Writer, buf *LeafBuffer, codec compress.Codec, offset int64, opts ...Option) (*format.ColumnMetaData, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	desc := buf.Desc
	cw := &countingWriter{w: w}

	var dictOffset *int64
	var dictValues file.Values
	var indices []int32
	useDict := cfg.DictionaryEnabled && desc.Node.Type != format.Boolean

	if useDict {
		idx, dv := buildDictionary(buf.Values)
		total := buf.Values.Len()
		if dv.Len() == 0 || (total > 0 && float64(dv.Len())/float64(total) > dictionaryFallbackRatio) {
			useDict = false
		} else {
			indices, dictValues = idx, dv
		}
	}

	if useDict {
		start := offset + cw.n
		dictOffset = &start
		if err := writeDictionaryPage(cw, codec, dictValues); err != nil {
			return nil, err
		}
	}

	meta := &format.ColumnMetaData{
		Type:                 desc.Node.Type,
		PathInSchema:         desc.Path,
		Codec:                codec.CompressionCodec(),
		DataPageOffset:       offset + cw.n,
		DictionaryPageOffset: dictOffset,
	}

	prefixDense := densePrefix(buf.DefLevels, desc.MaxDefinitionLevel)
	stats := newAccumulator(desc.Node.Type, desc.Node.TypeLength)

	for _, rg := range splitPages(buf, cfg.PageBufferSize) {
		lo, hi := rg[0], rg[1]
		valLo, valHi := prefixDense[lo], prefixDense[hi]

		nulls := (hi - lo) - (valHi - valLo)
		stats.addNulls(nulls)
		pageValues := sliceValues(buf.Values, valLo, valHi)
		stats.addValues(&pageValues)

		var pageIndices []int32
		if useDict {
			pageIndices = indices[valLo:valHi]
		}

		uncompressed, encoding, err := encodeDataPageBody(desc, buf.DefLevels[lo:hi], buf.RepLevels[lo:hi], pageValues, pageIndices, useDict, dictValues.Len())
		if err != nil {
			return nil, err
		}
		compressed, err := codec.Encode(nil, uncompressed)
		if err != nil {
			return nil, fmt.Errorf("compressing data page: %w", err)
		}

		header := &format.PageHeader{
			Type:                 format.DataPage,
			UncompressedPageSize: int32(len(uncompressed)),
			CompressedPageSize:   int32(len(compressed)),
			DataPageHeader: &format.DataPageHeader{
				NumValues:               int32(hi - lo),
				Encoding:                encoding,
				DefinitionLevelEncoding: format.RLE,
				RepetitionLevelEncoding: format.RLE,
			},
		}
		if cfg.DataPageStatistics {
			pageStats := newAccumulator(desc.Node.Type, desc.Node.TypeLength)
			pageStats.addNulls(nulls)
			pageStats.addValues(&pageValues)
			header.DataPageHeader.Statistics = pageStats.statistics(true)
		}
		if _, err := thrift.WritePageHeader(cw, header); err != nil {
			return nil, fmt.Errorf("writing page header: %w", err)
		}
		if _, err := cw.Write(compressed); err != nil {
			return nil, fmt.Errorf("writing data page body: %w", err)
		}

		meta.EncodingStats = append(meta.EncodingStats, format.PageEncodingStats{PageType: format.DataPage, Encoding: encoding, Count: 1})
	}

	meta.NumValues = int64(len(buf.DefLevels))
	meta.TotalUncompressedSize = cw.n
	meta.TotalCompressedSize = cw.n
	meta.Statistics = stats.statistics(true)
	if useDict {
		meta.Encodings = []format.Encoding{format.Plain, format.RLE, format.RLEDictionary}
	} else {
		meta.Encodings = []format.Encoding{format.Plain, format.RLE}
	}
	return meta, nil
}

// writeDictionaryPage PLAIN-encodes dictValues, compresses the result with
// codec and writes the dictionary page header followed by its body.
func writeDictionaryPage(cw *countingWriter, codec compress.Codec, dictValues file.Values) error {
	var buf bytes.Buffer
	enc := new(plain.Encoder)
	enc.Reset(&buf)
	if err := encodePlainValues(enc, dictValues); err != nil {
		return err
	}
	compressed, err := codec.Encode(nil, buf.Bytes())
	if err != nil {
		return fmt.Errorf("compressing dictionary page: %w", err)
	}
	header := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: int32(buf.Len()),
		CompressedPageSize:   int32(len(compressed)),
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: int32(dictValues.Len()),
			Encoding:  format.Plain,
		},
	}
	if _, err := thrift.WritePageHeader(cw, header); err != nil {
		return fmt.Errorf("writing dictionary page header: %w", err)
	}
	_, err = cw.Write(compressed)
	return err
}

// densePrefix maps every level-array position to the number of present
// (non-null) values seen up to and including that position, so a [lo,hi)
// range over the level streams can be translated into the matching
// [valLo,valHi) range over the dense values slice.
func densePrefix(defLevels []int32, maxDef int) []int {
	prefix := make([]int, len(defLevels)+1)
	for i, d := range defLevels {
		prefix[i+1] = prefix[i]
		if int(d) == maxDef {
			prefix[i+1]++
		}
	}
	return prefix
}

// splitPages partitions a leaf buffer's level streams into page-sized
// ranges, cutting only at a rep_level == 0 boundary so a page never splits
// a record's repeated entries across two pages.
func splitPages(buf *LeafBuffer, targetValues int) [][2]int {
	n := len(buf.DefLevels)
	if n == 0 {
		return nil
	}
	if targetValues <= 0 {
		targetValues = n
	}

	var ranges [][2]int
	start := 0
	for start < n {
		end := start + targetValues
		if end >= n {
			ranges = append(ranges, [2]int{start, n})
			break
		}
		for end < n && buf.RepLevels[end] != 0 {
			end++
		}
		ranges = append(ranges, [2]int{start, end})
		start = end
	}
	return ranges
}

func sliceValues(v file.Values, lo, hi int) file.Values {
	out := file.Values{Type: v.Type}
	switch v.Type {
	case format.Boolean:
		out.Boolean = v.Boolean[lo:hi]
	case format.Int32:
		out.Int32 = v.Int32[lo:hi]
	case format.Int64:
		out.Int64 = v.Int64[lo:hi]
	case format.Float:
		out.Float = v.Float[lo:hi]
	case format.Double:
		out.Double = v.Double[lo:hi]
	case format.ByteArray, format.FixedLenByteArray:
		out.ByteArray = v.ByteArray[lo:hi]
	}
	return out
}

// buildDictionary deduplicates v's values into a PLAIN dictionary plus the
// per-position index referencing it. ByteArray/FixedLenByteArray
// values key the dedup table by their string conversion, since Go slices
// are not comparable and dict.Table requires a comparable type parameter.
func buildDictionary(v file.Values) ([]int32, file.Values) {
	switch v.Type {
	case format.Int32:
		t := dict.NewTable[int32]()
		indices := make([]int32, len(v.Int32))
		for i, x := range v.Int32 {
			indices[i] = t.Insert(x)
		}
		return indices, file.Values{Type: v.Type, Int32: t.Values()}
	case format.Int64:
		t := dict.NewTable[int64]()
		indices := make([]int32, len(v.Int64))
		for i, x := range v.Int64 {
			indices[i] = t.Insert(x)
		}
		return indices, file.Values{Type: v.Type, Int64: t.Values()}
	case format.Float:
		t := dict.NewTable[float32]()
		indices := make([]int32, len(v.Float))
		for i, x := range v.Float {
			indices[i] = t.Insert(x)
		}
		return indices, file.Values{Type: v.Type, Float: t.Values()}
	case format.Double:
		t := dict.NewTable[float64]()
		indices := make([]int32, len(v.Double))
		for i, x := range v.Double {
			indices[i] = t.Insert(x)
		}
		return indices, file.Values{Type: v.Type, Double: t.Values()}
	case format.ByteArray, format.FixedLenByteArray:
		t := dict.NewTable[string]()
		indices := make([]int32, len(v.ByteArray))
		for i, x := range v.ByteArray {
			indices[i] = t.Insert(string(x))
		}
		strs := t.Values()
		out := make([][]byte, len(strs))
		for i, s := range strs {
			out[i] = []byte(s)
		}
		return indices, file.Values{Type: v.Type, ByteArray: out}
	default:
		return nil, file.Values{}
	}
}

// encodeDataPageBody assembles one Data Page V1 body: the optional
// rep-level block, the optional def-level block, then the values section
// PLAIN- or RLE_DICTIONARY-encoded.
func encodeDataPageBody(desc *schema.ColumnDescriptor, defLevels, repLevels []int32, values file.Values, indices []int32, useDict bool, dictSize int) ([]byte, format.Encoding, error) {
	var buf bytes.Buffer

	if desc.MaxRepetitionLevel > 0 {
		enc := new(rle.Encoder)
		enc.Reset(&buf)
		enc.SetBitWidth(dict.BitWidth(desc.MaxRepetitionLevel + 1))
		if err := enc.EncodeInt32(repLevels); err != nil {
			return nil, 0, err
		}
		if err := enc.Flush(); err != nil {
			return nil, 0, err
		}
	}
	if desc.MaxDefinitionLevel > 0 {
		enc := new(rle.Encoder)
		enc.Reset(&buf)
		enc.SetBitWidth(dict.BitWidth(desc.MaxDefinitionLevel + 1))
		if err := enc.EncodeInt32(defLevels); err != nil {
			return nil, 0, err
		}
		if err := enc.Flush(); err != nil {
			return nil, 0, err
		}
	}

	if useDict {
		enc := new(dict.Encoder)
		enc.Reset(&buf)
		enc.SetBitWidth(dict.BitWidth(dictSize))
		if err := enc.EncodeInt32(indices); err != nil {
			return nil, 0, err
		}
		if err := enc.Flush(); err != nil {
			return nil, 0, err
		}
		return buf.Bytes(), format.RLEDictionary, nil
	}

	enc := new(plain.Encoder)
	enc.Reset(&buf)
	if err := encodePlainValues(enc, values); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), format.Plain, nil
}

func encodePlainValues(enc *plain.Encoder, values file.Values) error {
	switch values.Type {
	case format.Boolean:
		return enc.EncodeBoolean(values.Boolean)
	case format.Int32:
		return enc.EncodeInt32(values.Int32)
	case format.Int64:
		return enc.EncodeInt64(values.Int64)
	case format.Float:
		return enc.EncodeFloat(values.Float)
	case format.Double:
		return enc.EncodeDouble(values.Double)
	case format.ByteArray:
		// EncodeByteArray expects values already carrying their 4-byte
		// length prefixes, laid out back to back
		var framed []byte
		for _, b := range values.ByteArray {
			framed = plain.AppendByteArray(framed, b)
		}
		return enc.EncodeByteArray(framed)
	case format.FixedLenByteArray:
		for _, b := range values.ByteArray {
			if err := enc.EncodeFixedLenByteArray(len(b), b); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported physical type %s", values.Type)
	}
}
