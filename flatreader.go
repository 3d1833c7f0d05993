package segwire

import "fmt"

// FlatArrayReader gives random access to the segments of a single message
// that is already fully buffered as one contiguous byte slice. It retains
// no ownership of the underlying buffer beyond the caller-provided slice's
// own lifetime.
type FlatArrayReader struct {
	segments [][]byte
	end      uint64 // word offset one past the last word this message used
}

// NewFlatArrayReader parses words as a single message per the segment
// table layout. If words is empty, the reader represents an absent message:
// every GetSegment call returns the empty view and SegmentCount is zero.
//
// On a structural parse failure the returned reader is never nil; it
// degrades to the empty-message state and the error explains why, so a
// caller that ignores the error still gets a safe, empty reader rather than
// a partially-populated one.
func NewFlatArrayReader(words []byte, opts ReaderOptions) (*FlatArrayReader, error) {
	if len(words) == 0 {
		return &FlatArrayReader{}, nil
	}

	if len(words) < 4 {
		return &FlatArrayReader{}, fmt.Errorf("%w: header truncated", ErrTruncated)
	}

	segmentCount64 := uint64(loadUint32LE(words, 0)) + 1
	if segmentCount64 > MaxSegments {
		return &FlatArrayReader{}, fmt.Errorf("%w: declared %d segments", ErrTooManySegments, segmentCount64)
	}
	segmentCount := uint32(segmentCount64)

	tableWords := tableWordsFor(segmentCount)
	tableBytes := tableWords * WordSize
	if uint64(len(words)) < tableBytes {
		return &FlatArrayReader{}, fmt.Errorf("%w: segment table truncated", ErrTruncated)
	}

	sizes := make([]uint32, segmentCount)
	var totalWords uint64
	for i := uint32(0); i < segmentCount; i++ {
		sizes[i] = loadUint32LE(words, 4+4*int(i))
		totalWords += uint64(sizes[i])
	}

	limit := opts.TraversalLimitInWords
	if limit == 0 {
		limit = defaultTraversalLimitWords
	}
	if totalWords > limit {
		return &FlatArrayReader{}, fmt.Errorf("%w: declared %d words, limit %d", ErrTooLarge, totalWords, limit)
	}

	segments := make([][]byte, segmentCount)
	offset := tableBytes
	for i := uint32(0); i < segmentCount; i++ {
		segBytes := uint64(sizes[i]) * WordSize
		if uint64(len(words)) < offset+segBytes {
			return &FlatArrayReader{}, fmt.Errorf("%w: segment %d truncated", ErrTruncated, i)
		}
		segments[i] = words[offset : offset+segBytes]
		offset += segBytes
	}

	return &FlatArrayReader{segments: segments, end: offset / WordSize}, nil
}

// SegmentCount returns the number of segments this reader parsed. Zero for
// an absent/degraded message.
func (r *FlatArrayReader) SegmentCount() uint32 {
	return uint32(len(r.segments))
}

// GetSegment returns the segment with the given id, or the empty view if id
// is out of range — that is a sentinel, not an error, used by consumers to
// terminate segment iteration.
func (r *FlatArrayReader) GetSegment(id uint32) []byte {
	if id >= uint32(len(r.segments)) {
		return emptySegment
	}
	return r.segments[id]
}

// End returns the word offset one past the last word this message used,
// so callers concatenating messages back-to-back in one buffer can find
// where the next message begins.
func (r *FlatArrayReader) End() uint64 {
	return r.end
}
