// Package thrift frames format.FileMetaData and format.PageHeader to and
// from the Thrift compact binary protocol used by the Parquet footer and
// page headers.
//
// This is the "external collaborator" the core specification describes for
// Thrift compact-binary framing: it has no knowledge of column values,
// levels, or the nested reconstruction engine, only of the metadata shapes
// in the format package.
package thrift

import (
	"context"
	"fmt"
	"io"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/parquetcore/parquet-go/format"
)

var background = context.Background()

// readTransport adapts an io.Reader into a thrift.TTransport without the
// read-ahead buffering thrift.StreamTransport introduces. Page headers
// share their reader with the page bodies that follow them, so the
// protocol must consume exactly the bytes of one header and no more.
type readTransport struct {
	io.Reader
}

func (t readTransport) Write([]byte) (int, error)   { return 0, io.ErrClosedPipe }
func (t readTransport) Close() error                { return nil }
func (t readTransport) Flush(context.Context) error { return nil }
func (t readTransport) IsOpen() bool                { return true }
func (t readTransport) Open() error                 { return nil }
func (t readTransport) RemainingBytes() uint64      { return ^uint64(0) }

func newReadProtocol(r io.Reader) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(readTransport{r}, nil)
}

func newWriteProtocol(w io.Writer) thrift.TProtocol {
	return thrift.NewTCompactProtocolConf(thrift.NewStreamTransportW(w), nil)
}

// ReadFileMetaData decodes a Thrift-compact-encoded FileMetaData footer.
func ReadFileMetaData(r io.Reader) (*format.FileMetaData, error) {
	p := newReadProtocol(r)
	m := new(format.FileMetaData)
	if err := readFileMetaData(p, m); err != nil {
		return nil, fmt.Errorf("reading file metadata: %w", err)
	}
	return m, nil
}

// WriteFileMetaData encodes m to w using the Thrift compact protocol,
// returning the number of bytes written.
func WriteFileMetaData(w io.Writer, m *format.FileMetaData) (int64, error) {
	cw := &countingWriter{w: w}
	p := newWriteProtocol(cw)
	if err := writeFileMetaData(p, m); err != nil {
		return cw.n, fmt.Errorf("writing file metadata: %w", err)
	}
	if err := p.Flush(background); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// ReadPageHeader decodes a single Thrift-compact-encoded PageHeader.
func ReadPageHeader(r io.Reader) (*format.PageHeader, error) {
	p := newReadProtocol(r)
	h := new(format.PageHeader)
	if err := readPageHeader(p, h); err != nil {
		return nil, fmt.Errorf("reading page header: %w", err)
	}
	return h, nil
}

// WritePageHeader encodes h to w using the Thrift compact protocol.
func WritePageHeader(w io.Writer, h *format.PageHeader) (int64, error) {
	cw := &countingWriter{w: w}
	p := newWriteProtocol(cw)
	if err := writePageHeader(p, h); err != nil {
		return cw.n, err
	}
	if err := p.Flush(background); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

func ptr[T any](v T) *T { return &v }
