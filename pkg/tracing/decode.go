package tracing

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Sequential cursor over protobuf wire fields
type fieldReader struct {
	data []byte
}

func (r *fieldReader) more() (ok bool) {
	ok = len(r.data) > 0
	return
}

func (r *fieldReader) tag() (num protowire.Number, typ protowire.Type, err error) {
	num, typ, n := protowire.ConsumeTag(r.data)
	if n < 0 {
		err = fmt.Errorf("%w: bad field tag: %v", ErrCorrupt, protowire.ParseError(n))
		return
	}
	r.data = r.data[n:]
	return
}

func (r *fieldReader) varint() (value uint64, err error) {
	value, n := protowire.ConsumeVarint(r.data)
	if n < 0 {
		err = fmt.Errorf("%w: bad varint: %v", ErrCorrupt, protowire.ParseError(n))
		return
	}
	r.data = r.data[n:]
	return
}

func (r *fieldReader) bytes() (value []byte, err error) {
	value, n := protowire.ConsumeBytes(r.data)
	if n < 0 {
		err = fmt.Errorf("%w: bad length-delimited field: %v", ErrCorrupt, protowire.ParseError(n))
		return
	}
	r.data = r.data[n:]
	return
}

// Unknown fields are skipped for forward compatibility
func (r *fieldReader) skip(num protowire.Number, typ protowire.Type) (err error) {
	n := protowire.ConsumeFieldValue(num, typ, r.data)
	if n < 0 {
		err = fmt.Errorf("%w: bad field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		return
	}
	r.data = r.data[n:]
	return
}

// Deserializes a record payload (no length prefix) back into an event
func Decode(payload []byte) (event Event, err error) {
	r := &fieldReader{data: payload}

	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		if typ != protowire.BytesType {
			if err = r.skip(num, typ); err != nil {
				return
			}
			continue
		}

		var data []byte
		data, err = r.bytes()
		if err != nil {
			return
		}

		switch num {
		case fieldLogTimestamp:
			event.Timestamp, err = decodeTimestamp(data)
		case fieldLogNodeStarted:
			var id string
			id, err = decodeNodeID(data)
			event.Body = NodeStarted{NodeID: id}
		case fieldLogShutdown:
			var id string
			id, err = decodeNodeID(data)
			event.Body = Shutdown{NodeID: id}
		case fieldLogSendOrdinaryMessage:
			event.Body, err = decodeOrdinary(data)
		case fieldLogSendWhoAreYou:
			event.Body, err = decodeWhoAreYou(data)
		case fieldLogSendHandshake:
			event.Body, err = decodeHandshake(data)
		}
		if err != nil {
			err = fmt.Errorf("failed to decode log field %d: %w", num, err)
			return
		}
	}

	if event.Body == nil {
		err = fmt.Errorf("%w: record carries no event", ErrCorrupt)
		return
	}
	return
}

func decodeTimestamp(data []byte) (ts Timestamp, err error) {
	r := &fieldReader{data: data}
	pb := &timestamppb.Timestamp{}

	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldTimestampSeconds && typ == protowire.VarintType:
			var v uint64
			v, err = r.varint()
			pb.Seconds = int64(v)
		case num == fieldTimestampNanos && typ == protowire.VarintType:
			var v uint64
			v, err = r.varint()
			pb.Nanos = int32(v)
			if v > uint64(maxNanos) {
				err = fmt.Errorf("%w: timestamp nanos %d outside 0-%d", ErrEncoding, v, maxNanos)
			}
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}

	ts, err = FromProto(pb)
	return
}

func decodeNodeID(data []byte) (id string, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		if num == fieldNodeID && typ == protowire.BytesType {
			var v []byte
			v, err = r.bytes()
			id = string(v)
		} else {
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodeOrdinary(data []byte) (body SendOrdinaryMessage, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}
		if typ != protowire.BytesType {
			if err = r.skip(num, typ); err != nil {
				return
			}
			continue
		}

		var v []byte
		v, err = r.bytes()
		if err != nil {
			return
		}

		switch num {
		case fieldSender:
			body.Sender = string(v)
		case fieldRecipient:
			body.Recipient = string(v)
		case fieldOrdinaryPing:
			body.Message, err = decodePing(v)
		case fieldOrdinaryPong:
			body.Message, err = decodePong(v)
		case fieldOrdinaryFindNode:
			body.Message, err = decodeFindNode(v)
		case fieldOrdinaryNodes:
			body.Message, err = decodeNodes(v)
		case fieldOrdinaryRandom:
			body.Message = Random{}
		}
		if err != nil {
			return
		}
	}

	if body.Message == nil {
		err = fmt.Errorf("%w: ordinary message carries no payload", ErrCorrupt)
		return
	}
	return
}

func decodeWhoAreYou(data []byte) (body SendWhoAreYou, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldSender && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			body.Sender = string(v)
		case num == fieldRecipient && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			body.Recipient = string(v)
		case num == fieldWhoAreYouIDNonce && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			if err == nil && len(v) != IDNonceLen {
				err = fmt.Errorf("%w: id-nonce must be %d bytes, got %d", ErrEncoding, IDNonceLen, len(v))
			}
			copy(body.IDNonce[:], v)
		case num == fieldWhoAreYouEnrSeq && typ == protowire.VarintType:
			body.EnrSeq, err = r.varint()
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodeHandshake(data []byte) (body SendHandshakeMessage, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}
		if typ != protowire.BytesType {
			if err = r.skip(num, typ); err != nil {
				return
			}
			continue
		}

		var v []byte
		v, err = r.bytes()
		if err != nil {
			return
		}

		switch num {
		case fieldSender:
			body.Sender = string(v)
		case fieldRecipient:
			body.Recipient = string(v)
		case fieldHandshakeRecord:
			body.UpdatedRecord, err = decodeRecord(v)
		case fieldHandshakePing:
			body.Message, err = decodePing(v)
		case fieldHandshakeFindNode:
			body.Message, err = decodeFindNode(v)
		}
		if err != nil {
			return
		}
	}

	if body.Message == nil {
		err = fmt.Errorf("%w: handshake carries no payload", ErrCorrupt)
		return
	}
	return
}

func decodeRecord(data []byte) (record *Record, err error) {
	record = &Record{}
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		if num == fieldRecordEnrSeq && typ == protowire.VarintType {
			record.EnrSeq, err = r.varint()
		} else {
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodePing(data []byte) (msg Ping, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldRequestID && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.RequestID = string(v)
		case num == fieldEnrSeq && typ == protowire.VarintType:
			msg.EnrSeq, err = r.varint()
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodePong(data []byte) (msg Pong, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldRequestID && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.RequestID = string(v)
		case num == fieldEnrSeq && typ == protowire.VarintType:
			msg.EnrSeq, err = r.varint()
		case num == fieldPongIP && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.RecipientIP = string(v)
		case num == fieldPongPort && typ == protowire.VarintType:
			var v uint64
			v, err = r.varint()
			if err == nil && v > uint64(maxPort) {
				err = fmt.Errorf("%w: pong recipient port %d outside 0-%d", ErrEncoding, v, maxPort)
			}
			msg.RecipientPort = uint32(v)
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodeFindNode(data []byte) (msg FindNode, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldRequestID && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.RequestID = string(v)
		case num == fieldFindDistances && typ == protowire.BytesType:
			// Packed encoding
			var packed []byte
			packed, err = r.bytes()
			if err != nil {
				return
			}
			inner := &fieldReader{data: packed}
			for inner.more() {
				var distance uint64
				distance, err = inner.varint()
				if err != nil {
					return
				}
				msg.Distances = append(msg.Distances, distance)
			}
		case num == fieldFindDistances && typ == protowire.VarintType:
			// Unpacked encoding is also valid for repeated scalars
			var distance uint64
			distance, err = r.varint()
			msg.Distances = append(msg.Distances, distance)
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}

func decodeNodes(data []byte) (msg Nodes, err error) {
	r := &fieldReader{data: data}
	for r.more() {
		var num protowire.Number
		var typ protowire.Type
		num, typ, err = r.tag()
		if err != nil {
			return
		}

		switch {
		case num == fieldRequestID && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.RequestID = string(v)
		case num == fieldNodesTotal && typ == protowire.VarintType:
			var v uint64
			v, err = r.varint()
			if err == nil && v > uint64(maxTotal) {
				err = fmt.Errorf("%w: nodes total %d outside 0-%d", ErrEncoding, v, maxTotal)
			}
			msg.Total = uint32(v)
		case num == fieldNodesIDs && typ == protowire.BytesType:
			var v []byte
			v, err = r.bytes()
			msg.NodeIDs = append(msg.NodeIDs, string(v))
		default:
			err = r.skip(num, typ)
		}
		if err != nil {
			return
		}
	}
	return
}
