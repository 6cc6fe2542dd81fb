package tracing

import "errors"

var (
	// A field violates a wire-format constraint
	ErrEncoding = errors.New("encoding error")

	// Event or message kind is not part of the model
	ErrUnknownKind = errors.New("unknown event kind")

	// Stream ended in the middle of a record
	ErrTruncated = errors.New("truncated record")

	// Stream contains bytes that cannot be a record
	ErrCorrupt = errors.New("corrupt record")
)
