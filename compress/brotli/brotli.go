// Package brotli implements the BROTLI parquet compression codec.
package brotli

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/format"
)

type Codec struct {
	// Quality controls the compression-speed vs compression-density
	// trade-off. Range is 0 to 11.
	Quality int
	// LGWin is the base-2 logarithm of the sliding window size. Range is
	// 10 to 24; 0 means automatic based on Quality.
	LGWin int

	compress.Compressor
}

func (c *Codec) String() string { return "BROTLI" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Brotli }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.Compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		opts := brotli.WriterOptions{Quality: c.Quality, LGWin: c.LGWin}
		return writer{brotli.NewWriterOptions(w, opts)}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	output := bytes.NewBuffer(dst[:0])
	if _, err := output.ReadFrom(brotli.NewReader(bytes.NewReader(src))); err != nil {
		return output.Bytes(), err
	}
	return output.Bytes(), nil
}

type writer struct{ *brotli.Writer }

func (w writer) Reset(ww io.Writer) { w.Writer.Reset(ww) }
