// Package dict implements the dictionary-indexed value encoding: a
// dictionary page of unique values (PLAIN-encoded, built by Table)
// followed by data pages whose column values are indices into that
// dictionary, themselves encoded with the RLE/bit-packed-hybrid codec.
//
// The index stream's on-wire shape differs from levels: it is not
// length-prefixed. Its first byte gives the bit-width, and every remaining
// byte is the bit-packed-hybrid body, running to the end of the page.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#dictionary-encoding-plain_dictionary--2-and-rle_dictionary--8
package dict

import (
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/encoding"
	"github.com/parquetcore/parquet-go/encoding/rle"
	"github.com/parquetcore/parquet-go/format"
)

// Encoding adapts the dictionary index codec to the generic
// encoding.Encoding interface. Indices are always carried as int32,
// regardless of the physical type of the dictionary values they refer to.
type Encoding struct{}

func (e *Encoding) String() string { return "RLE_DICTIONARY" }

func (e *Encoding) Encoding() format.Encoding { return format.RLEDictionary }

func (e *Encoding) CanEncode(format.Type) bool { return true }

func (e *Encoding) NewDecoder(r io.Reader) encoding.Decoder {
	d := new(Decoder)
	d.Reset(r)
	return d
}

func (e *Encoding) NewEncoder(w io.Writer) encoding.Encoder {
	enc := new(Encoder)
	enc.Reset(w)
	return enc
}

type Encoder struct {
	writer   io.Writer
	indices  []int32
	bitWidth int
}

func (e *Encoder) Reset(w io.Writer) {
	e.writer = w
	e.indices = e.indices[:0]
}

func (e *Encoder) Encoding() format.Encoding { return format.RLEDictionary }

func (e *Encoder) SetBitWidth(bitWidth int) { e.bitWidth = bitWidth }

func (e *Encoder) EncodeInt32(data []int32) error {
	e.indices = append(e.indices, data...)
	return nil
}

func (e *Encoder) EncodeBoolean([]bool) error           { return encoding.ErrNotSupported }
func (e *Encoder) EncodeInt64([]int64) error            { return encoding.ErrNotSupported }
func (e *Encoder) EncodeFloat([]float32) error          { return encoding.ErrNotSupported }
func (e *Encoder) EncodeDouble([]float64) error         { return encoding.ErrNotSupported }
func (e *Encoder) EncodeByteArray([]byte) error         { return encoding.ErrNotSupported }
func (e *Encoder) EncodeFixedLenByteArray(int, []byte) error {
	return encoding.ErrNotSupported
}

// Flush writes the bit-width byte followed by the bit-packed-hybrid encoded
// index stream. Call once all indices for the page have been supplied.
func (e *Encoder) Flush() error {
	bitWidth := e.bitWidth
	if bitWidth == 0 {
		bitWidth = minBitWidth(e.indices)
	}
	if _, err := e.writer.Write([]byte{byte(bitWidth)}); err != nil {
		return err
	}
	body, err := rle.Encode(nil, e.indices, bitWidth)
	if err != nil {
		return err
	}
	_, err = e.writer.Write(body)
	return err
}

type Decoder struct {
	reader   io.Reader
	bitWidth int
	body     []byte
	read     bool
}

func (d *Decoder) Reset(r io.Reader) {
	d.reader = r
	d.body = nil
	d.read = false
}

func (d *Decoder) Encoding() format.Encoding { return format.RLEDictionary }

func (d *Decoder) SetBitWidth(bitWidth int) { d.bitWidth = bitWidth }

func (d *Decoder) load() error {
	if d.read {
		return nil
	}
	d.read = true
	b, err := io.ReadAll(d.reader)
	if err != nil {
		return fmt.Errorf("dict: %w", err)
	}
	if len(b) < 1 {
		return fmt.Errorf("dict: %w reading bit-width byte", io.ErrUnexpectedEOF)
	}
	d.bitWidth = int(b[0])
	d.body = b[1:]
	return nil
}

// DecodeInt32 decodes exactly len(data) dictionary indices. A bit-width of
// zero produces a constant-zero index stream: every value maps to the first
// (and only) dictionary entry, a case the format explicitly allows rather than
// treating as malformed.
func (d *Decoder) DecodeInt32(data []int32) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	if d.bitWidth == 0 {
		for i := range data {
			data[i] = 0
		}
		return len(data), nil
	}
	if d.bitWidth > rle.MaxBitWidth {
		return 0, fmt.Errorf("dict: invalid bit width %d", d.bitWidth)
	}
	if err := rle.Decode(data, d.body, d.bitWidth); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (d *Decoder) DecodeBoolean([]bool) (int, error)   { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeInt64([]int64) (int, error)    { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeFloat([]float32) (int, error)  { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeDouble([]float64) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeByteArray([]byte) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeFixedLenByteArray(int, []byte) (int, error) {
	return 0, encoding.ErrNotSupported
}

func minBitWidth(indices []int32) int {
	var max int32
	for _, v := range indices {
		if v > max {
			max = v
		}
	}
	width := 0
	for (int32(1) << uint(width)) <= max {
		width++
	}
	return width
}
