package tracer

import (
	"nodetrace/pkg/tracing"
	"sync/atomic"
)

// Destination for framed records, normally *tracelog.Writer
type Appender interface {
	Append(record []byte) error
}

// Implemented by the node's request/response types so they can be traced
// without this package knowing their concrete shape.
// Kinds with no trace representation return ErrUnsupportedMessage.
type Describer interface {
	TraceMessage() (tracing.Message, error)
}

type Tracer struct {
	Namespace []string
	sink      Appender
	metrics   MetricStorage
}

type MetricStorage struct {
	Emitted  atomic.Uint64 // events appended
	Failed   atomic.Uint64 // events rejected or not appended
	InFlight atomic.Uint64 // emissions currently between capture and append
}
