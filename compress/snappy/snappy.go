// Package snappy implements the SNAPPY parquet compression codec using the
// raw block API of klauspost/compress/snappy (API-compatible with
// github.com/golang/snappy, which parquet's framing historically used).
package snappy

import (
	"github.com/klauspost/compress/snappy"

	"github.com/parquetcore/parquet-go/format"
)

type Codec struct{}

func (c *Codec) String() string { return "SNAPPY" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Snappy }

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return snappy.Encode(dst[:0], src), nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return dst, err
	}
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	return snappy.Decode(dst[:n], src)
}
