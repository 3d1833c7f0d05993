package segwire

import "fmt"

// ByteSink is the gather-write contract MessageWriter targets. WriteGather
// must write pieces as if they were concatenated, in order, as a single
// logical write — implementations that can vectorize the write (writev-style)
// should; implementations that cannot must still write pieces in full, in
// order, without interleaving with any other writer's output.
type ByteSink interface {
	WriteGather(pieces [][]byte) error
}

// inlineTableEntries is how many 32-bit table entries fit in the
// stack-resident part of the small-vector table buffer before it spills to
// a heap allocation — the Go stand-in for capnp's VLA/_alloca table buffer
// (design note: small-vector that inlines for typical sizes).
const inlineTableEntries = 66 // (64 segments + 2) rounded up to even

// segmentTable builds the little-endian 32-bit segment table described in
// the wire format, inlining the common case (≤64 segments) in a
// stack-resident array and spilling to a heap slice only for larger
// messages.
type segmentTable struct {
	inline [inlineTableEntries]uint32
	heap   []uint32
	n      int
}

func (t *segmentTable) entries() []uint32 {
	if t.n <= inlineTableEntries {
		return t.inline[:t.n]
	}
	return t.heap
}

func (t *segmentTable) set(i int, v uint32) {
	if t.n <= inlineTableEntries {
		t.inline[i] = v
		return
	}
	t.heap[i] = v
}

func buildSegmentTable(segmentCount int) *segmentTable {
	entries := (segmentCount + 2) &^ 1
	t := &segmentTable{n: entries}
	if entries > inlineTableEntries {
		t.heap = make([]uint32, entries)
	}
	return t
}

func (t *segmentTable) bytes() []byte {
	entries := t.entries()
	buf := make([]byte, len(entries)*4)
	for i, v := range entries {
		storeUint32LE(buf, i*4, v)
	}
	return buf
}

// WriteMessage writes segments to sink as a segment table followed by the
// segments themselves, as a single gathered write. segments must contain at
// least one entry. The sink, not this function, is responsible for not
// mutating or retaining the segment slices beyond the call.
func WriteMessage(sink ByteSink, segments [][]byte) error {
	if len(segments) == 0 {
		return ErrEmptyMessage
	}

	table := buildSegmentTable(len(segments))
	table.set(0, uint32(len(segments)-1))
	for i, seg := range segments {
		if len(seg)%WordSize != 0 {
			return fmt.Errorf("segwire: segment %d length %d is not a multiple of %d bytes", i, len(seg), WordSize)
		}
		table.set(i+1, uint32(len(seg)/WordSize))
	}
	// the trailing padding entry, present iff segmentCount is even, is left
	// at its zero value from buildSegmentTable's make/zero-array.

	pieces := make([][]byte, 0, len(segments)+1)
	pieces = append(pieces, table.bytes())
	pieces = append(pieces, segments...)

	return sink.WriteGather(pieces)
}

// ComputeSerializedSizeInWords returns the total size, in words, that
// WriteMessage would emit for segments: the table plus every segment.
func ComputeSerializedSizeInWords(segments [][]byte) (uint64, error) {
	if len(segments) == 0 {
		return 0, ErrEmptyMessage
	}
	total := tableWordsFor(uint32(len(segments)))
	for i, seg := range segments {
		if len(seg)%WordSize != 0 {
			return 0, fmt.Errorf("segwire: segment %d length %d is not a multiple of %d bytes", i, len(seg), WordSize)
		}
		total += uint64(len(seg)) / WordSize
	}
	return total, nil
}
