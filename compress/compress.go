// Package compress provides the generic APIs implemented by the parquet
// compression codecs in its sub-packages, and the external contract the core
// reconstruction engine treats as a collaborator: decompress(src, n) -> bytes,
// compress(src) -> bytes.
//
// https://github.com/apache/parquet-format/blob/master/Compression.md
package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/parquetcore/parquet-go/format"
)

// Codec represents a parquet compression codec implemented by one of the
// compress sub-packages.
//
// Codec instances must be safe to use concurrently from multiple goroutines.
type Codec interface {
	// Returns a human-readable name for the codec.
	String() string

	// Returns the code of the compression codec in the parquet format.
	CompressionCodec() format.CompressionCodec

	// Writes the compressed version of src to dst and returns it.
	Encode(dst, src []byte) ([]byte, error)

	// Writes the uncompressed version of src to dst and returns it. The
	// codec does not check the result against a declared uncompressed
	// length; that check is left to the caller.
	Decode(dst, src []byte) ([]byte, error)
}

// Reader is implemented by streaming decompressors used internally by codec
// implementations.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Writer is implemented by streaming compressors used internally by codec
// implementations.
type Writer interface {
	io.WriteCloser
	Reset(io.Writer)
}

// Compressor pools Writer instances to amortize the allocation cost of
// stateful codecs (gzip, zstd, brotli) across repeated Encode calls.
type Compressor struct {
	writers sync.Pool
}

func (c *Compressor) Encode(dst, src []byte, newWriter func(io.Writer) (Writer, error)) ([]byte, error) {
	output := bytes.NewBuffer(dst[:0])

	w, _ := c.writers.Get().(Writer)
	if w != nil {
		w.Reset(output)
	} else {
		var err error
		if w, err = newWriter(output); err != nil {
			return dst, err
		}
	}
	defer c.writers.Put(w)
	defer w.Reset(io.Discard)

	if _, err := w.Write(src); err != nil {
		return output.Bytes(), err
	}
	if err := w.Close(); err != nil {
		return output.Bytes(), err
	}
	return output.Bytes(), nil
}

// Decompressor pools Reader instances, mirroring Compressor.
type Decompressor struct {
	readers sync.Pool
}

func (d *Decompressor) Decode(dst, src []byte, newReader func(io.Reader) (Reader, error)) ([]byte, error) {
	input := bytes.NewReader(src)

	r, _ := d.readers.Get().(Reader)
	if r != nil {
		if err := r.Reset(input); err != nil {
			return dst, err
		}
	} else {
		var err error
		if r, err = newReader(input); err != nil {
			return dst, err
		}
	}

	defer func() {
		if err := r.Reset(nil); err == nil {
			d.readers.Put(r)
		}
	}()

	output := bytes.NewBuffer(dst[:0])
	_, err := output.ReadFrom(r)
	return output.Bytes(), err
}

// UnsupportedCodec is returned when a column chunk references a compression
// codec this module does not implement.
type UnsupportedCodec struct {
	Codec format.CompressionCodec
}

func (e *UnsupportedCodec) Error() string {
	return fmt.Sprintf("unsupported compression codec: %s", e.Codec)
}

// Registry resolves a format.CompressionCodec to the Codec implementation
// registered for it. Callers (the page decoder pipeline and the column
// writer) look codecs up by the identifier carried in column chunk metadata
// rather than importing codec sub-packages directly, matching the "codec
// interface" external contract.
type Registry struct {
	codecs map[format.CompressionCodec]Codec
}

func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[format.CompressionCodec]Codec, len(codecs))}
	for _, c := range codecs {
		r.codecs[c.CompressionCodec()] = c
	}
	return r
}

func (r *Registry) Lookup(code format.CompressionCodec) (Codec, error) {
	c, ok := r.codecs[code]
	if !ok {
		return nil, &UnsupportedCodec{Codec: code}
	}
	return c, nil
}
