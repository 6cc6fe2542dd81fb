// Tagged event model and its length-delimited binary framing for the trace log
package tracing

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Serializes event and prefixes it with its varint length (one LogRecord)
func Frame(event Event) (record []byte, err error) {
	payload, err := Encode(event)
	if err != nil {
		return
	}

	record = make([]byte, 0, protowire.SizeBytes(len(payload)))
	record = protowire.AppendBytes(record, payload)
	return
}

// Serializes event into the record payload (no length prefix).
// Deterministic: fields are written in ascending field-number order.
// Empty and nil Distances or NodeIDs encode identically and decode as nil.
func Encode(event Event) (payload []byte, err error) {
	timestamp, err := encodeTimestamp(event.Timestamp)
	if err != nil {
		return
	}
	payload = appendMessage(payload, fieldLogTimestamp, timestamp)

	var body []byte
	var field protowire.Number
	switch ev := event.Body.(type) {
	case NodeStarted:
		field = fieldLogNodeStarted
		body = appendString(nil, fieldNodeID, ev.NodeID)
	case Shutdown:
		field = fieldLogShutdown
		body = appendString(nil, fieldNodeID, ev.NodeID)
	case SendOrdinaryMessage:
		field = fieldLogSendOrdinaryMessage
		body, err = encodeOrdinary(ev)
	case SendWhoAreYou:
		field = fieldLogSendWhoAreYou
		body = encodeWhoAreYou(ev)
	case SendHandshakeMessage:
		field = fieldLogSendHandshake
		body, err = encodeHandshake(ev)
	default:
		err = fmt.Errorf("%w: cannot encode event body %T", ErrUnknownKind, event.Body)
	}
	if err != nil {
		payload = nil
		err = fmt.Errorf("failed to encode %s event: %w", kindOf(event.Body), err)
		return
	}

	payload = appendMessage(payload, field, body)
	return
}

func encodeTimestamp(ts Timestamp) (data []byte, err error) {
	if int(ts.Nanos) > maxNanos {
		err = fmt.Errorf("%w: timestamp nanos %d outside 0-%d", ErrEncoding, ts.Nanos, maxNanos)
		return
	}
	data = appendVarint(data, fieldTimestampSeconds, uint64(ts.Seconds))
	data = appendVarint(data, fieldTimestampNanos, uint64(ts.Nanos))
	return
}

func encodeOrdinary(ev SendOrdinaryMessage) (data []byte, err error) {
	data = appendString(data, fieldSender, ev.Sender)
	data = appendString(data, fieldRecipient, ev.Recipient)

	var msg []byte
	var field protowire.Number
	switch m := ev.Message.(type) {
	case Ping:
		field = fieldOrdinaryPing
		msg = encodePing(m)
	case Pong:
		field = fieldOrdinaryPong
		msg, err = encodePong(m)
	case FindNode:
		field = fieldOrdinaryFindNode
		msg = encodeFindNode(m)
	case Nodes:
		field = fieldOrdinaryNodes
		msg = encodeNodes(m)
	case Random:
		field = fieldOrdinaryRandom
	default:
		err = fmt.Errorf("%w: cannot encode ordinary message %T", ErrUnknownKind, ev.Message)
	}
	if err != nil {
		return
	}

	data = appendMessage(data, field, msg)
	return
}

func encodeWhoAreYou(ev SendWhoAreYou) (data []byte) {
	data = appendString(data, fieldSender, ev.Sender)
	data = appendString(data, fieldRecipient, ev.Recipient)
	data = protowire.AppendTag(data, fieldWhoAreYouIDNonce, protowire.BytesType)
	data = protowire.AppendBytes(data, ev.IDNonce[:])
	data = appendVarint(data, fieldWhoAreYouEnrSeq, ev.EnrSeq)
	return
}

func encodeHandshake(ev SendHandshakeMessage) (data []byte, err error) {
	data = appendString(data, fieldSender, ev.Sender)
	data = appendString(data, fieldRecipient, ev.Recipient)

	if ev.UpdatedRecord != nil {
		record := appendVarint(nil, fieldRecordEnrSeq, ev.UpdatedRecord.EnrSeq)
		data = appendMessage(data, fieldHandshakeRecord, record)
	}

	switch m := ev.Message.(type) {
	case Ping:
		data = appendMessage(data, fieldHandshakePing, encodePing(m))
	case FindNode:
		data = appendMessage(data, fieldHandshakeFindNode, encodeFindNode(m))
	default:
		data = nil
		err = fmt.Errorf("%w: cannot encode handshake message %T", ErrUnknownKind, ev.Message)
	}
	return
}

func encodePing(m Ping) (data []byte) {
	data = appendString(data, fieldRequestID, m.RequestID)
	data = appendVarint(data, fieldEnrSeq, m.EnrSeq)
	return
}

func encodePong(m Pong) (data []byte, err error) {
	if m.RecipientPort > uint32(maxPort) {
		err = fmt.Errorf("%w: pong recipient port %d outside 0-%d", ErrEncoding, m.RecipientPort, maxPort)
		return
	}
	data = appendString(data, fieldRequestID, m.RequestID)
	data = appendVarint(data, fieldEnrSeq, m.EnrSeq)
	data = appendString(data, fieldPongIP, m.RecipientIP)
	data = appendVarint(data, fieldPongPort, uint64(m.RecipientPort))
	return
}

func encodeFindNode(m FindNode) (data []byte) {
	data = appendString(data, fieldRequestID, m.RequestID)
	if len(m.Distances) > 0 {
		var packed []byte
		for _, distance := range m.Distances {
			packed = protowire.AppendVarint(packed, distance)
		}
		data = appendMessage(data, fieldFindDistances, packed)
	}
	return
}

func encodeNodes(m Nodes) (data []byte) {
	data = appendString(data, fieldRequestID, m.RequestID)
	data = appendVarint(data, fieldNodesTotal, uint64(m.Total))
	for _, id := range m.NodeIDs {
		// Repeated strings keep empty entries so order and count survive
		data = protowire.AppendTag(data, fieldNodesIDs, protowire.BytesType)
		data = protowire.AppendString(data, id)
	}
	return
}

// Omits zero values (proto3 scalar semantics)
func appendVarint(data []byte, field protowire.Number, value uint64) (out []byte) {
	out = data
	if value == 0 {
		return
	}
	out = protowire.AppendTag(out, field, protowire.VarintType)
	out = protowire.AppendVarint(out, value)
	return
}

// Omits empty strings (proto3 scalar semantics)
func appendString(data []byte, field protowire.Number, value string) (out []byte) {
	out = data
	if value == "" {
		return
	}
	out = protowire.AppendTag(out, field, protowire.BytesType)
	out = protowire.AppendString(out, value)
	return
}

// Always written, even when empty, so presence survives decoding
func appendMessage(data []byte, field protowire.Number, msg []byte) (out []byte) {
	out = protowire.AppendTag(data, field, protowire.BytesType)
	out = protowire.AppendBytes(out, msg)
	return
}

func kindOf(body Body) (kind Kind) {
	if body == nil {
		return
	}
	kind = body.Kind()
	return
}
