package tracing

import (
	"errors"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestDecodeSkipsUnknownFields(t *testing.T) {
	event := Event{
		Timestamp: Timestamp{Seconds: 10, Nanos: 20},
		Body:      SendOrdinaryMessage{Sender: "A", Recipient: "B", Message: Ping{RequestID: "1", EnrSeq: 5}},
	}
	payload, err := Encode(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Fields a newer writer could add
	payload = protowire.AppendTag(payload, 99, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 12345)
	payload = protowire.AppendTag(payload, 100, protowire.BytesType)
	payload = protowire.AppendString(payload, "talkreq")
	payload = protowire.AppendTag(payload, 101, protowire.Fixed32Type)
	payload = protowire.AppendFixed32(payload, 7)

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("expected unknown fields to be skipped, got '%v'", err)
	}
	if !reflect.DeepEqual(got, event) {
		t.Errorf("expected %#v, got %#v", event, got)
	}
}

func TestDecodeUnpackedDistances(t *testing.T) {
	var findNode []byte
	findNode = protowire.AppendTag(findNode, fieldRequestID, protowire.BytesType)
	findNode = protowire.AppendString(findNode, "1")
	for _, distance := range []uint64{3, 1, 2} {
		findNode = protowire.AppendTag(findNode, fieldFindDistances, protowire.VarintType)
		findNode = protowire.AppendVarint(findNode, distance)
	}

	var ordinary []byte
	ordinary = appendMessage(ordinary, fieldOrdinaryFindNode, findNode)

	var payload []byte
	payload = appendMessage(payload, fieldLogTimestamp, nil)
	payload = appendMessage(payload, fieldLogSendOrdinaryMessage, ordinary)

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, ok := got.Body.(SendOrdinaryMessage)
	if !ok {
		t.Fatalf("expected SendOrdinaryMessage, got %T", got.Body)
	}
	msg, ok := body.Message.(FindNode)
	if !ok {
		t.Fatalf("expected FindNode, got %T", body.Message)
	}
	if !reflect.DeepEqual(msg.Distances, []uint64{3, 1, 2}) {
		t.Errorf("expected distances in input order, got %v", msg.Distances)
	}
}

func TestDecodeErrors(t *testing.T) {
	badNonce := appendString(nil, fieldSender, "A")
	badNonce = protowire.AppendTag(badNonce, fieldWhoAreYouIDNonce, protowire.BytesType)
	badNonce = protowire.AppendBytes(badNonce, []byte{1, 2, 3})

	badNanos := appendVarint(nil, fieldTimestampNanos, 1_000_000_000)

	badPort := appendVarint(nil, fieldPongPort, 1<<16)

	tests := []struct {
		name    string
		payload []byte
		wantErr error
	}{
		{
			name:    "empty payload has no event",
			payload: nil,
			wantErr: ErrCorrupt,
		},
		{
			name:    "timestamp only",
			payload: appendMessage(nil, fieldLogTimestamp, nil),
			wantErr: ErrCorrupt,
		},
		{
			name:    "short id-nonce",
			payload: appendMessage(nil, fieldLogSendWhoAreYou, badNonce),
			wantErr: ErrEncoding,
		},
		{
			name: "nanos out of range",
			payload: appendMessage(
				appendMessage(nil, fieldLogTimestamp, badNanos),
				fieldLogNodeStarted, nil),
			wantErr: ErrEncoding,
		},
		{
			name: "port out of range",
			payload: appendMessage(nil, fieldLogSendOrdinaryMessage,
				appendMessage(nil, fieldOrdinaryPong, badPort)),
			wantErr: ErrEncoding,
		},
		{
			name:    "ordinary message without payload",
			payload: appendMessage(nil, fieldLogSendOrdinaryMessage, appendString(nil, fieldSender, "A")),
			wantErr: ErrCorrupt,
		},
		{
			name:    "handshake without payload",
			payload: appendMessage(nil, fieldLogSendHandshake, appendString(nil, fieldSender, "A")),
			wantErr: ErrCorrupt,
		},
		{
			name:    "length exceeds payload",
			payload: []byte{byte(fieldLogNodeStarted<<3 | 2), 10, 1},
			wantErr: ErrCorrupt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error wrapping '%v', got '%v'", tt.wantErr, err)
			}
		})
	}
}
