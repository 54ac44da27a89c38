package plain

import (
	"fmt"
	"io"
	"math"

	"github.com/parquetcore/parquet-go/encoding"
	"github.com/parquetcore/parquet-go/format"
)

// Encoding adapts the PLAIN codec to the generic encoding.Encoding
// interface. PLAIN is the only encoding capable of carrying every physical
// type, so CanEncode always returns true.
type Encoding struct{}

func (e *Encoding) String() string { return "PLAIN" }

func (e *Encoding) Encoding() format.Encoding { return format.Plain }

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
	writer io.Writer
}

func (e *Encoder) Reset(w io.Writer) { e.writer = w }

func (e *Encoder) Encoding() format.Encoding { return format.Plain }

func (e *Encoder) SetBitWidth(int) {}

func (e *Encoder) EncodeBoolean(data []bool) error {
	buf := make([]byte, 0, (len(data)+7)/8)
	for i, v := range data {
		buf = AppendBoolean(buf, i, v)
	}
	return e.write(buf)
}

func (e *Encoder) EncodeInt32(data []int32) error {
	buf := make([]byte, 0, 4*len(data))
	for _, v := range data {
		buf = AppendInt32(buf, v)
	}
	return e.write(buf)
}

func (e *Encoder) EncodeInt64(data []int64) error {
	buf := make([]byte, 0, 8*len(data))
	for _, v := range data {
		buf = AppendInt64(buf, v)
	}
	return e.write(buf)
}

func (e *Encoder) EncodeFloat(data []float32) error {
	buf := make([]byte, 0, 4*len(data))
	for _, v := range data {
		buf = AppendFloat(buf, v)
	}
	return e.write(buf)
}

func (e *Encoder) EncodeDouble(data []float64) error {
	buf := make([]byte, 0, 8*len(data))
	for _, v := range data {
		buf = AppendDouble(buf, v)
	}
	return e.write(buf)
}

// EncodeByteArray expects data to already hold one or more PLAIN-framed
// values (4-byte little-endian length prefix followed by the value bytes),
// concatenated back to back, and writes it through unmodified.
func (e *Encoder) EncodeByteArray(data []byte) error {
	return e.write(data)
}

func (e *Encoder) EncodeFixedLenByteArray(size int, data []byte) error {
	if size > 0 && len(data)%size != 0 {
		return fmt.Errorf("plain: fixed length byte array of size %d: %w", size, encoding.ErrValueTooLarge)
	}
	return e.write(data)
}

func (e *Encoder) write(b []byte) error {
	_, err := e.writer.Write(b)
	return err
}

type Decoder struct {
	reader io.Reader
	buf    []byte
	read   bool
}

func (d *Decoder) Reset(r io.Reader) {
	d.reader = r
	d.buf = nil
	d.read = false
}

func (d *Decoder) Encoding() format.Encoding { return format.Plain }

func (d *Decoder) SetBitWidth(int) {}

func (d *Decoder) load() error {
	if d.read {
		return nil
	}
	d.read = true
	b, err := io.ReadAll(d.reader)
	if err != nil {
		return fmt.Errorf("plain: %w", err)
	}
	d.buf = b
	return nil
}

func (d *Decoder) DecodeBoolean(data []bool) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	n := len(data)
	if (n+7)/8 > len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	for i := range data {
		data[i] = (d.buf[i/8]>>uint(i%8))&1 != 0
	}
	return n, nil
}

func (d *Decoder) DecodeInt32(data []int32) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	n := len(data)
	if 4*n > len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	for i := range data {
		data[i] = int32(le32(d.buf[4*i:]))
	}
	return n, nil
}

func (d *Decoder) DecodeInt64(data []int64) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	n := len(data)
	if 8*n > len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	for i := range data {
		data[i] = int64(le64(d.buf[8*i:]))
	}
	return n, nil
}

func (d *Decoder) DecodeFloat(data []float32) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	n := len(data)
	if 4*n > len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	for i := range data {
		data[i] = math.Float32frombits(le32(d.buf[4*i:]))
	}
	return n, nil
}

func (d *Decoder) DecodeDouble(data []float64) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	n := len(data)
	if 8*n > len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	for i := range data {
		data[i] = math.Float64frombits(le64(d.buf[8*i:]))
	}
	return n, nil
}

// DecodeByteArray copies the PLAIN length-framed values remaining in the
// decoder's buffer into data, returning the number of values copied; data
// must be large enough to hold the remaining bytes.
func (d *Decoder) DecodeByteArray(data []byte) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	if len(data) < len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	copy(data, d.buf)
	count := 0
	for b := d.buf; len(b) > 0; count++ {
		_, rest, err := NextByteArray(b)
		if err != nil {
			return 0, err
		}
		b = rest
	}
	return count, nil
}

func (d *Decoder) DecodeFixedLenByteArray(size int, data []byte) (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	if size <= 0 {
		return 0, nil
	}
	if len(d.buf)%size != 0 {
		return 0, fmt.Errorf("plain: fixed length byte array of size %d: %w", size, io.ErrUnexpectedEOF)
	}
	if len(data) < len(d.buf) {
		return 0, encoding.ErrBufferTooShort
	}
	copy(data, d.buf)
	return len(d.buf) / size, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func le64(b []byte) uint64 {
	return uint64(le32(b)) | uint64(le32(b[4:]))<<32
}
