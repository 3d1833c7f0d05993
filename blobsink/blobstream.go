package blobsink

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"go.uber.org/zap"
)

// BlobStream adapts a single blob, read by HTTP range, to segwire's
// ByteStream contract. It tracks its own read cursor rather than
// downloading the whole blob up front, so StreamReader's lazy per-segment
// reads turn into one ranged GET per materialized segment instead of one
// GET for the whole message.
type BlobStream struct {
	client *azblob.BlobClient
	ctx    context.Context
	log    *zap.Logger

	offset int64
}

// NewBlobStream wraps client as a ByteStream starting at byte offset 0.
func NewBlobStream(ctx context.Context, client *azblob.BlobClient, opts ...Option) *BlobStream {
	o := newOptions(opts...)
	return &BlobStream{client: client, ctx: ctx, log: o.log}
}

// Read fills buf[:minBytes] at minimum by downloading the byte range
// [offset, offset+len(buf)) from the blob, advancing the stream's cursor
// by the number of bytes actually read.
func (s *BlobStream) Read(buf []byte, minBytes int) (int, error) {
	offset := s.offset
	count := int64(len(buf))
	resp, err := s.client.Download(s.ctx, &azblob.BlobDownloadOptions{
		Offset: &offset,
		Count:  &count,
	})
	if err != nil {
		return 0, fmt.Errorf("blobsink: download range at offset %d: %w", s.offset, err)
	}
	body := resp.Body(&azblob.RetryReaderOptions{})
	defer body.Close()

	n, err := io.ReadFull(body, buf)
	s.offset += int64(n)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return n, err
	}
	if n < minBytes {
		s.log.Warn("blobsink: short read below minimum", zap.Int("got", n), zap.Int("want", minBytes))
		return n, ErrBlobTooShort
	}
	return n, nil
}

// Skip advances the stream's cursor by n bytes without downloading them.
func (s *BlobStream) Skip(n int64) error {
	s.offset += n
	return nil
}
