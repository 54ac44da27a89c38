// Package plain implements the PLAIN parquet encoding: little-endian
// fixed-width for numeric types, 4-byte little-endian length prefix followed
// by raw bytes for variable-length byte arrays, and raw concatenated bytes
// for fixed-length byte arrays.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#plain-plain--0
package plain

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const ByteArrayLengthSize = 4

func AppendBoolean(b []byte, n int, v bool) []byte {
	i, j := n/8, uint(n%8)
	if cap(b) <= i {
		tmp := make([]byte, i+1, 2*(i+1))
		copy(tmp, b)
		b = tmp
	} else if len(b) <= i {
		b = b[:i+1]
	}
	if v {
		b[i] |= 1 << j
	} else {
		b[i] &^= 1 << j
	}
	return b
}

func AppendInt32(b []byte, v int32) []byte {
	var x [4]byte
	binary.LittleEndian.PutUint32(x[:], uint32(v))
	return append(b, x[:]...)
}

func AppendInt64(b []byte, v int64) []byte {
	var x [8]byte
	binary.LittleEndian.PutUint64(x[:], uint64(v))
	return append(b, x[:]...)
}

func AppendFloat(b []byte, v float32) []byte {
	var x [4]byte
	binary.LittleEndian.PutUint32(x[:], math.Float32bits(v))
	return append(b, x[:]...)
}

func AppendDouble(b []byte, v float64) []byte {
	var x [8]byte
	binary.LittleEndian.PutUint64(x[:], math.Float64bits(v))
	return append(b, x[:]...)
}

func AppendByteArray(b, v []byte) []byte {
	var length [ByteArrayLengthSize]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(v)))
	b = append(b, length[:]...)
	return append(b, v...)
}

func ByteArrayLength(b []byte) int {
	return int(binary.LittleEndian.Uint32(b))
}

// NextByteArray carves the next length-prefixed value off the front of b,
// returning the value and the remaining bytes.
func NextByteArray(b []byte) (value, rest []byte, err error) {
	if len(b) < ByteArrayLengthSize {
		return nil, b, ErrTooShort(len(b))
	}
	n := ByteArrayLength(b)
	if n < 0 || n > (len(b)-ByteArrayLengthSize) {
		return nil, b, ErrTooShort(len(b))
	}
	n += ByteArrayLengthSize
	return b[ByteArrayLengthSize:n:n], b[n:len(b):len(b)], nil
}

func ErrTooShort(length int) error {
	return fmt.Errorf("input of length %d is too short to contain a PLAIN encoded byte array value: %w", length, io.ErrUnexpectedEOF)
}
