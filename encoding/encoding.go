// Package encoding provides the generic APIs implemented by parquet value
// encodings in its sub-packages (plain, rle, dict).
package encoding

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/format"
)

var (
	// ErrValueTooLarge is returned when encountering values too large to be
	// loaded in memory.
	ErrValueTooLarge = errors.New("value is too large to be written to the buffer")

	// ErrBufferTooShort is returned when the destination buffer is too short
	// to receive the next value to be decoded.
	ErrBufferTooShort = errors.New("buffer is too short to contain a single value")

	// ErrNotSupported is returned when the underlying encoding does not
	// support the type of values being encoded or decoded.
	ErrNotSupported = errors.New("encoding not supported")
)

// Encoding is implemented by types representing parquet column value
// encodings.
//
// Encoding instances must be safe to use concurrently from multiple
// goroutines.
type Encoding interface {
	fmt.Stringer

	// Returns the parquet code representing the encoding.
	Encoding() format.Encoding

	// Checks whether the encoding is capable of serializing parquet values of
	// the given physical type.
	CanEncode(format.Type) bool

	// Creates a decoder reading encoded values from r. r may be nil, in
	// which case Reset must be called with a non-nil reader before use.
	NewDecoder(r io.Reader) Decoder

	// Creates an encoder writing values to w. w may be nil, in which case
	// Reset must be called with a non-nil writer before use.
	NewEncoder(w io.Writer) Encoder
}

// Encoder is implemented by encoder types.
type Encoder interface {
	// Reset clears the encoder state and changes the io.Writer values are
	// written to. Does not override a previously configured bit-width.
	Reset(io.Writer)

	// Returns the parquet code for the encoding this encoder implements.
	Encoding() format.Encoding

	EncodeBoolean(data []bool) error
	EncodeInt32(data []int32) error
	EncodeInt64(data []int64) error
	EncodeFloat(data []float32) error
	EncodeDouble(data []float64) error

	// EncodeByteArray encodes variable-length byte array values laid out
	// contiguously in data using the PLAIN convention (each value prefixed
	// by its 4-byte little-endian length).
	EncodeByteArray(data []byte) error

	// EncodeFixedLenByteArray encodes fixed-length byte array values laid
	// out contiguously in data, size bytes per value.
	EncodeFixedLenByteArray(size int, data []byte) error

	// SetBitWidth configures the bit-width used by level and dictionary
	// index encodings. Not all encodings require it.
	SetBitWidth(bitWidth int)
}

// Decoder is implemented by decoder types.
type Decoder interface {
	// Reset clears the decoder state and changes the io.Reader values are
	// read from. Does not override a previously configured bit-width.
	Reset(io.Reader)

	// Returns the parquet code for the encoding this decoder implements.
	Encoding() format.Encoding

	DecodeBoolean(data []bool) (int, error)
	DecodeInt32(data []int32) (int, error)
	DecodeInt64(data []int64) (int, error)
	DecodeFloat(data []float32) (int, error)
	DecodeDouble(data []float64) (int, error)

	// DecodeByteArray decodes variable-length byte array values into data
	// using the PLAIN convention; returns the number of values decoded.
	DecodeByteArray(data []byte) (int, error)

	DecodeFixedLenByteArray(size int, data []byte) (int, error)

	SetBitWidth(bitWidth int)
}
