package segwire

import "go.uber.org/zap"

// defaultTraversalLimitWords bounds the total words a reader will accept
// across all segments of one message, roughly 64MiB worth of words.
const defaultTraversalLimitWords = 8 << 20

// ReaderOptions provides options for FlatArrayReader and StreamReader.
// Implementations are expected to simply ignore options that don't apply
// to them.
type ReaderOptions struct {
	// TraversalLimitInWords caps the sum of all segment sizes a reader will
	// accept. Enforced before any segment is materialized.
	TraversalLimitInWords uint64

	// NestingLimit is consumed by the caller's own pointer-traversal layer,
	// not by this package; carried here so callers have one options type.
	NestingLimit int

	log *zap.Logger
}

// DefaultReaderOptions returns the options a reader uses when none are
// supplied explicitly.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		TraversalLimitInWords: defaultTraversalLimitWords,
		NestingLimit:          64,
		log:                   zap.NewNop(),
	}
}

// NewReaderOptions creates a new ReaderOptions object with the provided
// options layered over baseOpts.
func NewReaderOptions(baseOpts ReaderOptions, opts ...ReaderOption) ReaderOptions {
	options := baseOpts
	if options.log == nil {
		options.log = zap.NewNop()
	}
	for _, o := range opts {
		o(&options)
	}
	return options
}

// ReaderOption mutates a ReaderOptions value under construction.
type ReaderOption func(*ReaderOptions)

// WithTraversalLimitInWords overrides the default traversal limit.
func WithTraversalLimitInWords(words uint64) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.TraversalLimitInWords = words
	}
}

// WithNestingLimit overrides the pass-through nesting limit.
func WithNestingLimit(limit int) ReaderOption {
	return func(opts *ReaderOptions) {
		opts.NestingLimit = limit
	}
}

// WithLogger injects a logger used for best-effort diagnostics during
// destructor-safe cleanup paths (see StreamReader.Close). Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) ReaderOption {
	return func(opts *ReaderOptions) {
		if log != nil {
			opts.log = log
		}
	}
}

func (o ReaderOptions) logger() *zap.Logger {
	if o.log == nil {
		return zap.NewNop()
	}
	return o.log
}
