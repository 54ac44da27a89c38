// Package file implements the page decoder pipeline: given a column
// chunk's file region and metadata plus a compression codec, it iterates
// the chunk's pages and produces, per data page, the (values, def_levels,
// rep_levels) triple the level algorithms and nested array reader consume.
//
// Thrift framing and compression are external collaborators: page headers
// arrive through internal/thrift, codecs through compress.Registry. This
// package owns everything downstream of that: dictionary materialization,
// RLE/bit-packed-hybrid level streams, and PLAIN/dictionary value decoding.
package file

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/encoding/dict"
	"github.com/parquetcore/parquet-go/encoding/plain"
	"github.com/parquetcore/parquet-go/encoding/rle"
	"github.com/parquetcore/parquet-go/format"
	"github.com/parquetcore/parquet-go/internal/thrift"
	"github.com/parquetcore/parquet-go/schema"
)

const defaultBufferSize = 4096

// Page is one data page's decoded contents, aligned on page boundaries per
// the pipeline's contract: it never spans two pages.
type Page struct {
	Values    Values
	DefLevels []int32
	RepLevels []int32
}

// PageReader iterates the pages of a single column chunk, transparently
// consuming the chunk's single optional leading dictionary page before
// yielding data pages. Use like a ColumnChunks iterator: call Next in a
// loop, inspect Err after it returns false.
type PageReader struct {
	desc  *schema.ColumnDescriptor
	codec compress.Codec
	src   *bufio.Reader

	dict *Dictionary
	page Page
	err  error
}

// NewPageReader opens a page reader over the column chunk's byte region in
// r, which must span at least [chunk region start, chunk region start +
// TotalCompressedSize). The region starts at the dictionary page offset
// when one is recorded, otherwise at the data page offset.
func NewPageReader(r io.ReaderAt, chunk *format.ColumnChunk, desc *schema.ColumnDescriptor, codecs *compress.Registry) (*PageReader, error) {
	meta := chunk.MetaData
	codec, err := codecs.Lookup(meta.Codec)
	if err != nil {
		return nil, err
	}

	start := meta.DataPageOffset
	if meta.DictionaryPageOffset != nil && *meta.DictionaryPageOffset < start {
		start = *meta.DictionaryPageOffset
	}

	section := io.NewSectionReader(r, start, meta.TotalCompressedSize)
	return &PageReader{
		desc:  desc,
		codec: codec,
		src:   bufio.NewReaderSize(section, defaultBufferSize),
	}, nil
}

// Err returns the error, if any, that stopped iteration. io.EOF is not
// reported here: a clean end of chunk leaves Err nil.
func (p *PageReader) Err() error { return p.err }

// Page returns the page the most recent successful Next call produced.
func (p *PageReader) Page() Page { return p.page }

// Next advances to the next data page, returning false at the end of the
// chunk or on error. Dictionary pages are decoded internally and never
// surfaced as a Page; Next skips past one transparently.
func (p *PageReader) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		header, err := thrift.ReadPageHeader(p.src)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.err = fmt.Errorf("reading page header: %w", err)
			}
			return false
		}

		body, err := p.readBody(header)
		if err != nil {
			p.err = err
			return false
		}

		switch header.Type {
		case format.DictionaryPage:
			if p.dict != nil {
				p.err = &DecodeError{Msg: "more than one dictionary page in column chunk", Path: p.path()}
				return false
			}
			d, err := p.decodeDictionaryPage(header.DictionaryPageHeader, body)
			if err != nil {
				p.err = err
				return false
			}
			p.dict = d
			continue // not surfaced to the caller; read the next header

		case format.DataPage:
			page, err := p.decodeDataPageV1(header.DataPageHeader, body)
			if err != nil {
				p.err = err
				return false
			}
			p.page = page
			return true

		case format.DataPageV2:
			p.err = &UnsupportedFeature{Feature: "data page v2"}
			return false

		default:
			p.err = &DecodeError{Reason: UnsupportedEncoding, Path: p.path(), Msg: fmt.Sprintf("unexpected page type %d", header.Type)}
			return false
		}
	}
}

func (p *PageReader) path() string {
	if p.desc == nil {
		return ""
	}
	return p.desc.Node.String()
}

// readBody reads the page's compressed bytes and returns them decompressed
// to their declared uncompressed size.
func (p *PageReader) readBody(header *format.PageHeader) ([]byte, error) {
	compressed := make([]byte, header.CompressedPageSize)
	if _, err := io.ReadFull(p.src, compressed); err != nil {
		return nil, &DecodeError{Reason: TruncatedPage, Path: p.path(), Msg: err.Error()}
	}
	uncompressed, err := p.codec.Decode(make([]byte, 0, header.UncompressedPageSize), compressed)
	if err != nil {
		return nil, fmt.Errorf("decompressing page: %w", err)
	}
	if len(uncompressed) != int(header.UncompressedPageSize) {
		return nil, &DecodeError{Reason: TruncatedPage, Path: p.path(), Msg: "decompressed size does not match page header"}
	}
	return uncompressed, nil
}

func (p *PageReader) decodeDictionaryPage(h *format.DictionaryPageHeader, body []byte) (*Dictionary, error) {
	if h.Encoding != format.Plain && h.Encoding != format.PlainDictionary {
		return nil, &DecodeError{Reason: UnsupportedEncoding, Path: p.path(), Msg: fmt.Sprintf("dictionary page encoding %s", h.Encoding)}
	}
	values, err := decodePlainValues(p.desc.Node.Type, p.desc.Node.TypeLength, body, int(h.NumValues))
	if err != nil {
		return nil, err
	}
	return &Dictionary{Values: values}, nil
}

// decodeDataPageV1 parses the optional rep-level and def-level RLE blocks,
// then decodes the values section with the page's declared encoding.
func (p *PageReader) decodeDataPageV1(h *format.DataPageHeader, body []byte) (Page, error) {
	numValues := int(h.NumValues)
	rest := body

	var repLevels []int32
	if p.desc.MaxRepetitionLevel > 0 {
		levels, consumed, err := decodeLevelBlock(rest, numValues, p.desc.MaxRepetitionLevel, p.path())
		if err != nil {
			return Page{}, err
		}
		repLevels, rest = levels, rest[consumed:]
	} else {
		repLevels = make([]int32, numValues)
	}

	var defLevels []int32
	if p.desc.MaxDefinitionLevel > 0 {
		levels, consumed, err := decodeLevelBlock(rest, numValues, p.desc.MaxDefinitionLevel, p.path())
		if err != nil {
			return Page{}, err
		}
		defLevels, rest = levels, rest[consumed:]
	} else {
		defLevels = make([]int32, numValues)
	}

	valuesCount := 0
	for _, d := range defLevels {
		if int(d) == p.desc.MaxDefinitionLevel {
			valuesCount++
		}
	}

	var values Values
	var err error
	switch h.Encoding {
	case format.Plain:
		values, err = decodePlainValues(p.desc.Node.Type, p.desc.Node.TypeLength, rest, valuesCount)

	case format.PlainDictionary, format.RLEDictionary:
		if p.dict == nil {
			return Page{}, &DecodeError{Reason: UnsupportedEncoding, Path: p.path(), Msg: "dictionary-encoded page with no preceding dictionary page"}
		}
		indices, derr := decodeIndices(rest, valuesCount)
		if derr != nil {
			return Page{}, derr
		}
		values, err = p.dict.Lookup(indices)

	default:
		err = &DecodeError{Reason: UnsupportedEncoding, Path: p.path(), Msg: h.Encoding.String()}
	}
	if err != nil {
		return Page{}, err
	}

	return Page{Values: values, DefLevels: defLevels, RepLevels: repLevels}, nil
}

// decodeLevelBlock decodes a single length-prefixed RLE/bit-packed-hybrid
// level block from the front of buf, returning the n decoded levels and the
// number of bytes of buf it consumed (the 4-byte length prefix included).
func decodeLevelBlock(buf []byte, n, maxLevel int, path string) ([]int32, int, error) {
	r := bytes.NewReader(buf)
	dec := new(rle.Decoder)
	dec.Reset(r)
	dec.SetBitWidth(dict.BitWidth(maxLevel + 1))

	levels := make([]int32, n)
	got, err := dec.DecodeInt32(levels)
	if err != nil {
		return nil, 0, &DecodeError{Reason: TruncatedPage, Path: path, Msg: err.Error()}
	}
	if got != n {
		return nil, 0, &DecodeError{Reason: LevelCountMismatch, Path: path, Msg: fmt.Sprintf("decoded %d levels, want %d", got, n)}
	}
	return levels, len(buf) - r.Len(), nil
}

// decodeIndices decodes n dictionary indices from the front of a
// PLAIN_DICTIONARY/RLE_DICTIONARY values section: a leading bit-width byte
// followed by the bit-packed-hybrid body.
func decodeIndices(buf []byte, n int) ([]int32, error) {
	if len(buf) < 1 {
		return nil, &DecodeError{Reason: InvalidBitWidth, Msg: "missing bit-width byte"}
	}
	dec := new(dict.Decoder)
	dec.Reset(bytes.NewReader(buf))

	indices := make([]int32, n)
	if _, err := dec.DecodeInt32(indices); err != nil {
		return nil, &DecodeError{Reason: InvalidBitWidth, Msg: err.Error()}
	}
	return indices, nil
}

// decodePlainValues decodes n PLAIN-encoded values of the given physical
// type from buf, used for both dictionary pages and PLAIN-encoded data
// pages.
func decodePlainValues(t format.Type, typeLength int32, buf []byte, n int) (Values, error) {
	dec := new(plain.Decoder)
	dec.Reset(bytes.NewReader(buf))

	out := Values{Type: t}
	var err error
	switch t {
	case format.Boolean:
		out.Boolean = make([]bool, n)
		_, err = dec.DecodeBoolean(out.Boolean)
	case format.Int32:
		out.Int32 = make([]int32, n)
		_, err = dec.DecodeInt32(out.Int32)
	case format.Int64:
		out.Int64 = make([]int64, n)
		_, err = dec.DecodeInt64(out.Int64)
	case format.Float:
		out.Float = make([]float32, n)
		_, err = dec.DecodeFloat(out.Float)
	case format.Double:
		out.Double = make([]float64, n)
		_, err = dec.DecodeDouble(out.Double)
	case format.ByteArray:
		out.ByteArray, err = decodeByteArrays(buf, n)
	case format.FixedLenByteArray:
		out.ByteArray, err = decodeFixedLenByteArrays(buf, int(typeLength), n)
	default:
		err = &DecodeError{Reason: UnsupportedEncoding, Msg: fmt.Sprintf("physical type %s", t)}
	}
	if err != nil {
		return Values{}, err
	}
	return out, nil
}

func decodeByteArrays(buf []byte, n int) ([][]byte, error) {
	out := make([][]byte, n)
	rest := buf
	for i := 0; i < n; i++ {
		v, next, err := plain.NextByteArray(rest)
		if err != nil {
			return nil, &DecodeError{Reason: TruncatedPage, Msg: err.Error()}
		}
		out[i] = v
		rest = next
	}
	return out, nil
}

func decodeFixedLenByteArrays(buf []byte, size, n int) ([][]byte, error) {
	if size <= 0 {
		return nil, &DecodeError{Reason: TruncatedPage, Msg: "fixed length byte array of non-positive size"}
	}
	if len(buf) < size*n {
		return nil, &DecodeError{Reason: TruncatedPage, Msg: "buffer too short for fixed length byte array values"}
	}
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = buf[i*size : (i+1)*size]
	}
	return out, nil
}
