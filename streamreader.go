package segwire

import (
	"fmt"

	"go.uber.org/zap"
)

// ByteStream is the blocking read contract StreamReader consumes. Read
// fills buf up to len(buf) bytes, blocking until at least minBytes have
// been read; it must return at least minBytes or report an error. Skip
// advances the stream by n bytes, discarding the data, positioning the
// stream past it.
type ByteStream interface {
	Read(buf []byte, minBytes int) (int, error)
	Skip(n int64) error
}

// StreamReader reads a single message's segment table and payload from a
// ByteStream. Segment 0 is read eagerly; later segments of a multi-segment
// message are read lazily, on first access, from the same stream.
//
// GetSegment is not safe to call from multiple goroutines concurrently: it
// mutates the shared read cursor. Callers touching segments from multiple
// goroutines must serialize those calls themselves.
type StreamReader struct {
	stream ByteStream
	log    *zap.Logger

	segmentCount uint32
	sizesWords   []uint32
	offsetsBytes []uint64 // payload-relative byte offset of each segment

	buf               []byte
	payloadReadBytes  uint64 // bytes of payload already pulled from stream
	totalPayloadBytes uint64
	closed            bool
}

// NewStreamReader reads the segment table and, eagerly, segment 0, from
// stream. scratch, if large enough to hold the whole payload, is reused in
// place instead of allocating; otherwise a new buffer is allocated.
func NewStreamReader(stream ByteStream, scratch []byte, opts ReaderOptions) (*StreamReader, error) {
	var header [8]byte
	if _, err := stream.Read(header[:], 8); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	segmentCount64 := uint64(loadUint32LE(header[:], 0)) + 1
	if segmentCount64 > MaxSegments {
		return nil, fmt.Errorf("%w: declared %d segments", ErrTooManySegments, segmentCount64)
	}
	segmentCount := uint32(segmentCount64)

	sizes := make([]uint32, segmentCount)
	sizes[0] = loadUint32LE(header[:], 4)

	additional := segmentCount &^ 1
	if additional > 0 {
		extra := make([]byte, int(additional)*4)
		if _, err := stream.Read(extra, len(extra)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		for i := uint32(0); i < additional; i++ {
			v := loadUint32LE(extra, int(i)*4)
			if i+1 < segmentCount {
				sizes[i+1] = v
			}
			// the final entry, when segmentCount is even, is the padding
			// word and is intentionally discarded here.
		}
	}

	var totalWords uint64
	offsets := make([]uint64, segmentCount)
	for i, sz := range sizes {
		offsets[i] = totalWords * WordSize
		totalWords += uint64(sz)
	}

	limit := opts.TraversalLimitInWords
	if limit == 0 {
		limit = defaultTraversalLimitWords
	}
	if totalWords > limit {
		return nil, fmt.Errorf("%w: declared %d words, limit %d", ErrTooLarge, totalWords, limit)
	}

	totalBytes := totalWords * WordSize
	buf := scratch
	if uint64(len(buf)) < totalBytes {
		buf = make([]byte, totalBytes)
	} else {
		buf = buf[:totalBytes]
	}

	r := &StreamReader{
		stream:            stream,
		log:               opts.logger(),
		segmentCount:      segmentCount,
		sizesWords:        sizes,
		offsetsBytes:      offsets,
		buf:               buf,
		totalPayloadBytes: totalBytes,
	}

	var eager uint64
	if segmentCount == 1 {
		eager = totalBytes
	} else {
		eager = uint64(sizes[0]) * WordSize
	}
	if eager > 0 {
		if _, err := stream.Read(buf[:eager], int(eager)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
	}
	r.payloadReadBytes = eager

	return r, nil
}

// SegmentCount returns the number of segments the table declared.
func (r *StreamReader) SegmentCount() uint32 {
	return r.segmentCount
}

// GetSegment returns the segment with the given id, reading more of the
// stream's payload if that segment hasn't been materialized yet. Returns
// the empty view for an out-of-range id.
func (r *StreamReader) GetSegment(id uint32) []byte {
	if id >= r.segmentCount {
		return emptySegment
	}

	end := r.offsetsBytes[id] + uint64(r.sizesWords[id])*WordSize
	if end > r.payloadReadBytes {
		need := end - r.payloadReadBytes
		n, err := r.stream.Read(r.buf[r.payloadReadBytes:end], int(need))
		r.payloadReadBytes += uint64(n)
		if err != nil {
			// Leave whatever was materialized in place; callers that asked
			// for a segment beyond what could be read get a short slice
			// rather than a panic. The caller already has no error channel
			// here per the GetSegment contract, so this is logged only.
			r.log.Warn("segwire: short read materializing segment", zap.Uint32("segment", id), zap.Error(err))
		}
	}

	start := r.offsetsBytes[id]
	if end > r.payloadReadBytes {
		end = r.payloadReadBytes
	}
	if start > end {
		return emptySegment
	}
	return r.buf[start:end]
}

// Close skips any payload bytes this reader never read, so the underlying
// stream is left positioned past this entire message. Safe to call more
// than once. Errors from the underlying skip are logged, not returned —
// this is the explicit, Go-idiomatic stand-in for the reference's
// exception-safe destructor drain (design note §9).
func (r *StreamReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	remaining := r.totalPayloadBytes - r.payloadReadBytes
	if remaining == 0 {
		return nil
	}
	if err := r.stream.Skip(int64(remaining)); err != nil {
		r.log.Warn("segwire: failed to drain unread payload on close", zap.Error(err))
	}
	return nil
}
