package segwiretest

// RecordingSink implements segwire.ByteSink by concatenating and
// recording every WriteGather call, so writer tests can assert both the
// final bytes and how many gathered pieces arrived per call.
type RecordingSink struct {
	Writes [][][]byte
	Data   []byte
}

// NewRecordingSink returns an empty RecordingSink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// WriteGather records pieces and appends their concatenation to Data.
func (s *RecordingSink) WriteGather(pieces [][]byte) error {
	copied := make([][]byte, len(pieces))
	for i, p := range pieces {
		cp := make([]byte, len(p))
		copy(cp, p)
		copied[i] = cp
		s.Data = append(s.Data, p...)
	}
	s.Writes = append(s.Writes, copied)
	return nil
}
