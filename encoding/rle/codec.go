package rle

import (
	"fmt"
	"io"

	"github.com/parquetcore/parquet-go/encoding"
	"github.com/parquetcore/parquet-go/format"
)

// Encoding adapts the RLE/bit-packed-hybrid codec to the generic
// encoding.Encoding interface. Only BOOLEAN and INT32 are supported: those
// are the only physical types RLE ever carries in this module (levels and
// dictionary indices are modeled as int32).
type Encoding struct {
	BitWidth int
}

func (e *Encoding) String() string { return "RLE" }

func (e *Encoding) Encoding() format.Encoding { return format.RLE }

func (e *Encoding) CanEncode(t format.Type) bool {
	return t == format.Boolean || t == format.Int32
}

func (e *Encoding) NewDecoder(r io.Reader) encoding.Decoder {
	d := &Decoder{bitWidth: e.BitWidth}
	d.Reset(r)
	return d
}

func (e *Encoding) NewEncoder(w io.Writer) encoding.Encoder {
	enc := &Encoder{bitWidth: e.BitWidth}
	enc.Reset(w)
	return enc
}

// Encoder buffers int32 (or boolean, reinterpreted as 0/1 int32) values and
// flushes them as a single RLE/bit-packed-hybrid run sequence on Flush,
// length-prefixed with a 4-byte little-endian size as the parquet format
// requires for level and boolean streams.
type Encoder struct {
	writer   io.Writer
	values   []int32
	bitWidth int
}

func (e *Encoder) Reset(w io.Writer) {
	e.writer = w
	e.values = e.values[:0]
}

func (e *Encoder) Encoding() format.Encoding { return format.RLE }

func (e *Encoder) SetBitWidth(bitWidth int) { e.bitWidth = bitWidth }

func (e *Encoder) EncodeBoolean(data []bool) error {
	for _, v := range data {
		if v {
			e.values = append(e.values, 1)
		} else {
			e.values = append(e.values, 0)
		}
	}
	return nil
}

func (e *Encoder) EncodeInt32(data []int32) error {
	e.values = append(e.values, data...)
	return nil
}

func (e *Encoder) EncodeInt64([]int64) error { return encoding.ErrNotSupported }
func (e *Encoder) EncodeFloat([]float32) error { return encoding.ErrNotSupported }
func (e *Encoder) EncodeDouble([]float64) error { return encoding.ErrNotSupported }
func (e *Encoder) EncodeByteArray([]byte) error { return encoding.ErrNotSupported }
func (e *Encoder) EncodeFixedLenByteArray(int, []byte) error { return encoding.ErrNotSupported }

// Flush encodes the buffered values and writes them, length-prefixed, to the
// underlying writer. Call once all values for the page have been supplied.
func (e *Encoder) Flush() error {
	body, err := Encode(nil, e.values, e.bitWidth)
	if err != nil {
		return err
	}
	var length [4]byte
	putUint32(length[:], uint32(len(body)))
	if _, err := e.writer.Write(length[:]); err != nil {
		return err
	}
	_, err = e.writer.Write(body)
	return err
}

// Decoder reads a length-prefixed RLE/bit-packed-hybrid block and yields the
// decoded int32 (or boolean) values it contains. The caller knows in advance
// how many values to request (num_values from the page header); Decode*
// methods decode exactly len(data) values from the buffered block.
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

func (d *Decoder) Encoding() format.Encoding { return format.RLE }

func (d *Decoder) SetBitWidth(bitWidth int) { d.bitWidth = bitWidth }

func (d *Decoder) load() error {
	if d.read {
		return nil
	}
	d.read = true
	var length [4]byte
	if _, err := io.ReadFull(d.reader, length[:]); err != nil {
		return fmt.Errorf("rle: reading length prefix: %w", err)
	}
	n := getUint32(length[:])
	d.body = make([]byte, n)
	if _, err := io.ReadFull(d.reader, d.body); err != nil {
		return fmt.Errorf("rle: reading %d byte block: %w", n, err)
	}
	return nil
}

func (d *Decoder) DecodeBoolean(data []bool) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	values := make([]int32, len(data))
	if err := Decode(values, d.body, 1); err != nil {
		return 0, err
	}
	for i, v := range values {
		data[i] = v != 0
	}
	return len(data), nil
}

func (d *Decoder) DecodeInt32(data []int32) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	if err := Decode(data, d.body, d.bitWidth); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (d *Decoder) DecodeInt64([]int64) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeFloat([]float32) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeDouble([]float64) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeByteArray([]byte) (int, error) { return 0, encoding.ErrNotSupported }
func (d *Decoder) DecodeFixedLenByteArray(int, []byte) (int, error) {
	return 0, encoding.ErrNotSupported
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
