package segwire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWireFormat_SingleSegmentVector checks the exact byte layout from the
// reference: segmentCount-1=0, one segment of one word, all 0xAA.
func TestWireFormat_SingleSegmentVector(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	}

	r, err := NewFlatArrayReader(input, DefaultReaderOptions())
	require.NoError(t, err)
	require.Equal(t, uint32(1), r.SegmentCount())
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 8), r.GetSegment(0))
}

// TestWireFormat_TwoSegmentVector checks the two-segment layout: sizes 2
// and 3 words.
func TestWireFormat_TwoSegmentVector(t *testing.T) {
	header := []byte{
		0x01, 0x00, 0x00, 0x00, // segmentCount - 1 = 1
		0x02, 0x00, 0x00, 0x00, // segment 0: 2 words
		0x03, 0x00, 0x00, 0x00, // segment 1: 3 words
		0x00, 0x00, 0x00, 0x00, // padding (segmentCount is even)
	}
	seg0 := make([]byte, 16)
	seg1 := make([]byte, 24)
	for i := range seg0 {
		seg0[i] = 0x11
	}
	for i := range seg1 {
		seg1[i] = 0x22
	}
	input := append(append(append([]byte{}, header...), seg0...), seg1...)

	r, err := NewFlatArrayReader(input, DefaultReaderOptions())
	require.NoError(t, err)
	require.Equal(t, uint32(2), r.SegmentCount())
	assert.Equal(t, seg0, r.GetSegment(0))
	assert.Equal(t, seg1, r.GetSegment(1))
}

// TestWireFormat_WriteMessageVector checks that writing [[w0,w1],[w2]]
// (one 2-word segment, one 1-word segment) produces the exact 16-byte
// table prefix from the reference.
func TestWireFormat_WriteMessageVector(t *testing.T) {
	seg0 := make([]byte, 2*WordSize)
	seg1 := make([]byte, WordSize)
	for i := range seg0 {
		seg0[i] = byte(i)
	}
	for i := range seg1 {
		seg1[i] = byte(100 + i)
	}

	var out [][]byte
	sink := &captureSink{pieces: &out}
	require.NoError(t, WriteMessage(sink, [][]byte{seg0, seg1}))

	wantTable := []byte{
		0x01, 0x00, 0x00, 0x00, // segmentCount - 1 = 1
		0x02, 0x00, 0x00, 0x00, // segment 0: 2 words
		0x01, 0x00, 0x00, 0x00, // segment 1: 1 word
		0x00, 0x00, 0x00, 0x00, // padding
	}

	require.GreaterOrEqual(t, len(out), 3)
	assert.Equal(t, wantTable, out[0])
	assert.Equal(t, seg0, out[1])
	assert.Equal(t, seg1, out[2])
}

type captureSink struct {
	pieces *[][]byte
}

func (c *captureSink) WriteGather(pieces [][]byte) error {
	*c.pieces = append(*c.pieces, pieces...)
	return nil
}
