// Package segwire frames and unframes the segmented, word-addressed binary
// message format used to move messages between byte streams, flat buffers
// and byte sinks. It does not know anything about what a segment's bytes
// mean — that is the job of the caller's own arena and pointer-traversal
// layer; this package only gets the bytes to the right place, in the right
// shape, without copying them more than it has to.
package segwire

import "encoding/binary"

// WordSize is the alignment unit the wire format is built from. Segment
// sizes and table offsets are counted in words; raw reads and writes below
// this package's API boundary are counted in bytes.
const WordSize = 8

// MaxSegments caps the number of segments a header is allowed to declare,
// independent of how much data backs it. Applied before any segment slice
// is materialized, so a malicious header never causes an allocation
// proportional to an attacker-chosen segment count.
const MaxSegments = 512

func loadUint32LE(b []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(b[offset : offset+4])
}

func storeUint32LE(b []byte, offset int, v uint32) {
	binary.LittleEndian.PutUint32(b[offset:offset+4], v)
}

// tableWordsFor returns the size, in words, of the segment table for a
// message declaring segmentCount segments: the count/size entries packed
// two to a word, plus one trailing padding word when segmentCount is even.
func tableWordsFor(segmentCount uint32) uint64 {
	return uint64(segmentCount)/2 + 1
}

var emptySegment = []byte{}
