// Package segwiretest provides test fakes for segwire's stream
// interfaces, in the teacher's fakes-over-interfaces style (see
// testcommitter.go/testlocalreadercontext.go): plain structs implementing
// the production interface, instrumented for assertions instead of
// talking to a real backend.
package segwiretest

import "io"

// Call records one Read or Skip call a RecordingStream observed.
type Call struct {
	Op       string // "read" or "skip"
	Offset   int64  // stream offset at the time of the call
	Len      int    // requested length (buffer length for Read, n for Skip)
	MinBytes int    // minBytes argument, Read calls only
}

// RecordingStream implements segwire.ByteStream over an in-memory backing
// buffer, recording every Read and Skip call's offset and requested length
// so lazy-read property tests can assert exactly how much of the stream a
// reader pulled, and when.
type RecordingStream struct {
	data   []byte
	offset int64
	Calls  []Call
}

// NewRecordingStream returns a RecordingStream backed by data.
func NewRecordingStream(data []byte) *RecordingStream {
	return &RecordingStream{data: data}
}

// Read copies up to len(buf) bytes starting at the stream's current
// offset into buf, recording the call before advancing the offset. It
// returns io.ErrUnexpectedEOF if fewer than minBytes are available.
func (s *RecordingStream) Read(buf []byte, minBytes int) (int, error) {
	s.Calls = append(s.Calls, Call{Op: "read", Offset: s.offset, Len: len(buf), MinBytes: minBytes})

	available := int64(len(s.data)) - s.offset
	if available < int64(minBytes) {
		n := copy(buf, s.data[s.offset:])
		s.offset += int64(n)
		return n, io.ErrUnexpectedEOF
	}

	n := copy(buf, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Skip advances the stream's offset by n bytes without copying anything,
// recording the call first.
func (s *RecordingStream) Skip(n int64) error {
	s.Calls = append(s.Calls, Call{Op: "skip", Offset: s.offset, Len: int(n)})
	s.offset += n
	if s.offset > int64(len(s.data)) {
		s.offset = int64(len(s.data))
		return io.ErrUnexpectedEOF
	}
	return nil
}

// Offset returns the stream's current read cursor.
func (s *RecordingStream) Offset() int64 {
	return s.offset
}

// BytesRead returns the sum of the buffer lengths requested by every Read
// call, ignoring Skip. When every Read was fully satisfied this equals the
// number of bytes served through Read.
func (s *RecordingStream) BytesRead() int64 {
	var total int64
	for _, c := range s.Calls {
		if c.Op == "read" {
			total += int64(c.Len)
		}
	}
	return total
}
