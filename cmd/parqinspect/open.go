package main

import (
	"os"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/compress/brotli"
	"github.com/parquetcore/parquet-go/compress/gzip"
	"github.com/parquetcore/parquet-go/compress/lz4"
	"github.com/parquetcore/parquet-go/compress/snappy"
	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/compress/zstd"
	"github.com/parquetcore/parquet-go/reader"
)

// allCodecs registers every compression codec this module implements, so
// parqinspect can open a file written with any of them without the caller
// having to know in advance which one was used.
func allCodecs() *compress.Registry {
	return compress.NewRegistry(
		&uncompressed.Codec{},
		&snappy.Codec{},
		&gzip.Codec{},
		&brotli.Codec{},
		&lz4.Codec{},
		&zstd.Codec{},
	)
}

// openParquetFile opens path and parses its footer, leaving the caller
// responsible for closing the returned file handle.
func openParquetFile(path string) (*os.File, *reader.FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	fr, err := reader.OpenFile(f, st.Size(), reader.WithCodecs(allCodecs()))
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, fr, nil
}
