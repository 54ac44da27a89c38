// Package zstd implements the ZSTD parquet compression codec using
// klauspost/compress/zstd.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/format"
)

type Codec struct {
	compress.Compressor
	compress.Decompressor
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Zstd }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.Compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		z, err := zstd.NewWriter(nonNilWriter(w),
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedFastest),
			zstd.WithZeroFrames(true),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			return nil, err
		}
		return writer{z}, nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.Decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return reader{z}, nil
	})
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error             { r.Decoder.Close(); return nil }
func (r reader) Reset(rr io.Reader) error { return r.Decoder.Reset(rr) }

type writer struct{ *zstd.Encoder }

func (w writer) Close() error           { return w.Encoder.Close() }
func (w writer) Reset(ww io.Writer)     { w.Encoder.Reset(nonNilWriter(ww)) }

func nonNilWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	return w
}
