package tracer

import "errors"

var (
	ErrUnsupportedMessage = errors.New("message kind cannot be traced here")
	ErrNoSink             = errors.New("tracer has no sink")
)
