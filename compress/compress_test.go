package compress_test

import (
	"bytes"
	"testing"

	"github.com/parquetcore/parquet-go/compress"
	"github.com/parquetcore/parquet-go/compress/brotli"
	"github.com/parquetcore/parquet-go/compress/gzip"
	"github.com/parquetcore/parquet-go/compress/lz4"
	"github.com/parquetcore/parquet-go/compress/snappy"
	"github.com/parquetcore/parquet-go/compress/uncompressed"
	"github.com/parquetcore/parquet-go/compress/zstd"
)

func TestCompressionCodec(t *testing.T) {
	tests := []struct {
		scenario string
		codec    compress.Codec
	}{
		{scenario: "uncompressed", codec: new(uncompressed.Codec)},
		{scenario: "snappy", codec: new(snappy.Codec)},
		{scenario: "gzip", codec: new(gzip.Codec)},
		{scenario: "brotli", codec: new(brotli.Codec)},
		{scenario: "zstd", codec: new(zstd.Codec)},
		{scenario: "lz4", codec: new(lz4.Codec)},
	}

	random := bytes.Repeat([]byte("1234567890qwertyuiopasdfghjklzxcvbnm"), 1000)

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				compressed, err := test.codec.Encode(nil, random)
				if err != nil {
					t.Fatal(err)
				}

				decompressed, err := test.codec.Decode(nil, compressed)
				if err != nil {
					t.Fatal(err)
				}

				if !bytes.Equal(random, decompressed) {
					t.Errorf("content mismatch after compressing and decompressing with %s", test.codec)
				}
			}
		})
	}
}
