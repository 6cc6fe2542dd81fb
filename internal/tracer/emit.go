// Emission operations: one per event kind, each capturing time, encoding, and appending one record
package tracer

import (
	"context"
	"fmt"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/pkg/tracing"
	"reflect"
)

// Creates a tracer that appends to sink.
// A nil sink, typed-nil pointers included, makes every emission fail with ErrNoSink.
//
// Node arguments of the emission methods may be nil (recorded as an empty id).
// A nil describer is rejected with ErrUnsupportedMessage.
func New(sink Appender) (tracer *Tracer) {
	if isNil(sink) {
		sink = nil
	}
	tracer = &Tracer{
		Namespace: []string{global.NSTracer},
		sink:      sink,
	}
	return
}

func (tracer *Tracer) NodeStarted(ctx context.Context, node fmt.Stringer) (err error) {
	ts := tracing.Now()
	err = tracer.emit(ctx, ts, tracing.NewNodeStarted(idOf(node)))
	return
}

func (tracer *Tracer) Shutdown(ctx context.Context, node fmt.Stringer) (err error) {
	ts := tracing.Now()
	err = tracer.emit(ctx, ts, tracing.NewShutdown(idOf(node)))
	return
}

func (tracer *Tracer) SendOrdinaryMessage(ctx context.Context, sender, recipient fmt.Stringer, msg Describer) (err error) {
	ts := tracing.Now()

	message, err := describe(msg)
	if err == nil {
		var body tracing.SendOrdinaryMessage
		body, err = tracing.NewSendOrdinaryMessage(idOf(sender), idOf(recipient), message)
		if err == nil {
			err = tracer.emit(ctx, ts, body)
			return
		}
	}

	err = tracer.reject(ctx, tracing.KindSendOrdinaryMessage, err)
	return
}

func (tracer *Tracer) SendWhoAreYou(ctx context.Context, sender, recipient fmt.Stringer, idNonce []byte, enrSeq uint64) (err error) {
	ts := tracing.Now()

	body, err := tracing.NewSendWhoAreYou(idOf(sender), idOf(recipient), idNonce, enrSeq)
	if err != nil {
		err = tracer.reject(ctx, tracing.KindSendWhoAreYou, err)
		return
	}
	err = tracer.emit(ctx, ts, body)
	return
}

// updatedEnrSeq is nil when the handshake carries no new record
func (tracer *Tracer) SendHandshakeMessage(ctx context.Context, sender, recipient fmt.Stringer, updatedEnrSeq *uint64, msg Describer) (err error) {
	ts := tracing.Now()

	message, err := describe(msg)
	if err == nil {
		handshakeMessage, ok := message.(tracing.HandshakeMessage)
		if !ok {
			err = fmt.Errorf("%w: %s inside a handshake", ErrUnsupportedMessage, message.MessageKind())
		} else {
			var body tracing.SendHandshakeMessage
			body, err = tracing.NewSendHandshakeMessage(idOf(sender), idOf(recipient), updatedEnrSeq, handshakeMessage)
			if err == nil {
				err = tracer.emit(ctx, ts, body)
				return
			}
		}
	}

	err = tracer.reject(ctx, tracing.KindSendHandshakeMessage, err)
	return
}

// Frames and appends one event stamped with ts
func (tracer *Tracer) emit(ctx context.Context, ts tracing.Timestamp, body tracing.Body) (err error) {
	tracer.metrics.InFlight.Add(1)
	defer tracer.release()

	kind := body.Kind()

	record, err := tracing.Frame(tracing.Event{Timestamp: ts, Body: body})
	if err != nil {
		err = tracer.reject(ctx, kind, err)
		return
	}

	if tracer.sink == nil {
		err = tracer.reject(ctx, kind, ErrNoSink)
		return
	}

	err = tracer.sink.Append(record)
	if err != nil {
		err = tracer.reject(ctx, kind, err)
		return
	}

	tracer.metrics.Emitted.Add(1)
	ctx = logctx.AppendCtxTag(ctx, global.NSTracer)
	logctx.LogEvent(ctx, global.VerbosityFullData, global.InfoLog,
		"recorded %s event at %s (%d bytes)", kind, ts, len(record))
	return
}

// Counts and logs a failed emission, returning the wrapped error
func (tracer *Tracer) reject(ctx context.Context, kind tracing.Kind, cause error) (err error) {
	tracer.metrics.Failed.Add(1)
	err = fmt.Errorf("failed to trace %s event: %w", kind, cause)

	ctx = logctx.AppendCtxTag(ctx, global.NSTracer)
	logctx.LogEvent(ctx, global.VerbosityStandard, global.ErrorLog, "%v", err)
	return
}

// Resolves a describer into a traceable message
func describe(msg Describer) (message tracing.Message, err error) {
	if isNil(msg) {
		err = fmt.Errorf("%w: no message given", ErrUnsupportedMessage)
		return
	}

	message, err = msg.TraceMessage()
	if err != nil {
		err = fmt.Errorf("failed to describe message: %w", err)
		return
	}
	if message == nil {
		err = fmt.Errorf("%w: describer produced no message", ErrUnsupportedMessage)
		return
	}
	return
}

// Canonical id text. A missing identity is recorded as empty.
func idOf(node fmt.Stringer) (id string) {
	if isNil(node) {
		return
	}
	id = node.String()
	return
}

// Reports nil interfaces and interfaces wrapping a nil pointer, map, slice, func or chan
func isNil(value any) (null bool) {
	if value == nil {
		null = true
		return
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		null = v.IsNil()
	}
	return
}
