package tracing

import (
	"bytes"
	"encoding/binary"
	"net/netip"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"google.golang.org/protobuf/encoding/protowire"
)

// Every event kind built from the same generated field values
func buildEvents(seconds int64, nanos uint32, a, b string, seq uint64, distances []uint64, ids []string, port uint16, total uint32) (events []Event, err error) {
	ts := Timestamp{Seconds: seconds, Nanos: nanos}

	pong, err := NewPong(a, seq, netip.AddrFrom4([4]byte{byte(seq), byte(seq >> 8), 0, 1}), int(port))
	if err != nil {
		return
	}
	nodes, err := NewNodes(b, int(total), ids)
	if err != nil {
		return
	}

	nonce := make([]byte, IDNonceLen)
	binary.BigEndian.PutUint64(nonce, seq)
	binary.BigEndian.PutUint64(nonce[8:], uint64(seconds))
	whoAreYou, err := NewSendWhoAreYou(a, b, nonce, seq)
	if err != nil {
		return
	}

	messages := []Message{NewPing(a, seq), pong, NewFindNode(b, distances), nodes, Random{}}
	for _, msg := range messages {
		events = append(events, Event{Timestamp: ts, Body: SendOrdinaryMessage{Sender: a, Recipient: b, Message: msg}})
	}

	withRecord, err := NewSendHandshakeMessage(a, b, &seq, NewPing(b, seq))
	if err != nil {
		return
	}
	withoutRecord, err := NewSendHandshakeMessage(b, a, nil, NewFindNode(a, distances))
	if err != nil {
		return
	}

	events = append(events,
		Event{Timestamp: ts, Body: NewNodeStarted(a)},
		Event{Timestamp: ts, Body: NewShutdown(b)},
		Event{Timestamp: ts, Body: whoAreYou},
		Event{Timestamp: ts, Body: withRecord},
		Event{Timestamp: ts, Body: withoutRecord},
	)
	return
}

func eventGenerators() (gens []gopter.Gen) {
	gens = []gopter.Gen{
		gen.Int64(),
		gen.UInt32Range(0, 999_999_999),
		gen.AnyString(),
		gen.AnyString(),
		gen.UInt64(),
		gen.SliceOf(gen.UInt64()),
		gen.SliceOf(gen.AnyString()),
		gen.UInt16(),
		gen.UInt32(),
	}
	return
}

func TestPropertyFrameRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decoding a framed event yields the same event", prop.ForAll(
		func(seconds int64, nanos uint32, a, b string, seq uint64, distances []uint64, ids []string, port uint16, total uint32) bool {
			events, err := buildEvents(seconds, nanos, a, b, seq, distances, ids, port, total)
			if err != nil {
				return false
			}

			var stream []byte
			for _, event := range events {
				record, err := Frame(event)
				if err != nil {
					return false
				}
				stream = append(stream, record...)
			}

			decoded, err := ReadAll(bytes.NewReader(stream))
			if err != nil {
				return false
			}
			return reflect.DeepEqual(decoded, events)
		},
		eventGenerators()...,
	))

	properties.TestingRun(t)
}

func TestPropertyLengthPrefix(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("length prefix equals payload size", prop.ForAll(
		func(seconds int64, nanos uint32, a, b string, seq uint64, distances []uint64, ids []string, port uint16, total uint32) bool {
			events, err := buildEvents(seconds, nanos, a, b, seq, distances, ids, port, total)
			if err != nil {
				return false
			}

			for _, event := range events {
				record, err := Frame(event)
				if err != nil {
					return false
				}
				length, n := protowire.ConsumeVarint(record)
				if n < 0 || length != uint64(len(record)-n) {
					return false
				}
			}
			return true
		},
		eventGenerators()...,
	))

	properties.TestingRun(t)
}
