// Package streamio adapts the standard library's io.Reader/io.Writer to
// segwire's ByteStream/ByteSink contracts, so StreamReader and WriteMessage
// can run directly over files, pipes and net.Conn without a bespoke
// transport layer.
package streamio

import (
	"fmt"
	"io"
	"net"
)

// Reader wraps an io.Reader as a segwire.ByteStream.
type Reader struct {
	r io.Reader
}

// NewReader wraps r as a segwire.ByteStream.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read fills buf[:minBytes] at minimum, blocking across short reads via
// io.ReadFull, and reports an error if the underlying reader cannot
// supply at least minBytes.
func (s *Reader) Read(buf []byte, minBytes int) (int, error) {
	if minBytes > len(buf) {
		return 0, fmt.Errorf("streamio: minBytes %d exceeds buffer length %d", minBytes, len(buf))
	}
	n, err := io.ReadFull(s.r, buf[:minBytes])
	if err != nil {
		return n, err
	}
	if minBytes < len(buf) {
		extra, _ := io.ReadFull(s.r, buf[minBytes:])
		n += extra
	}
	return n, nil
}

// Skip discards the next n bytes. If the underlying reader implements
// io.Seeker, Skip seeks forward instead of reading and discarding.
func (s *Reader) Skip(n int64) error {
	if n <= 0 {
		return nil
	}
	if seeker, ok := s.r.(io.Seeker); ok {
		_, err := seeker.Seek(n, io.SeekCurrent)
		return err
	}
	_, err := io.CopyN(io.Discard, s.r, n)
	return err
}

// Writer wraps an io.Writer as a segwire.ByteSink, gathering pieces into a
// single net.Buffers write so a net.Conn backing w gets one writev(2) call
// instead of one write(2) per piece where the OS supports it.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a segwire.ByteSink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteGather writes pieces to the underlying writer as one logical write.
func (s *Writer) WriteGather(pieces [][]byte) error {
	buffers := make(net.Buffers, len(pieces))
	for i, p := range pieces {
		buffers[i] = p
	}
	_, err := buffers.WriteTo(s.w)
	return err
}
