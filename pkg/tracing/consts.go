package tracing

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	// Fixed size of the WHOAREYOU id-nonce
	IDNonceLen int = 16

	// Largest payload a reader accepts behind a length prefix
	MaxRecordLen uint64 = 16 << 20

	maxPort  int = math.MaxUint16
	maxTotal int = math.MaxUint32
	maxNanos int = 1e9 - 1
)

// Log message fields
const (
	fieldLogTimestamp           protowire.Number = 1
	fieldLogNodeStarted         protowire.Number = 2
	fieldLogSendOrdinaryMessage protowire.Number = 3
	fieldLogSendWhoAreYou       protowire.Number = 4
	fieldLogSendHandshake       protowire.Number = 5
	fieldLogShutdown            protowire.Number = 6
)

// Timestamp fields (google.protobuf.Timestamp layout)
const (
	fieldTimestampSeconds protowire.Number = 1
	fieldTimestampNanos   protowire.Number = 2
)

// Fields shared by every event that has a sender and a recipient
const (
	fieldNodeID    protowire.Number = 1
	fieldSender    protowire.Number = 1
	fieldRecipient protowire.Number = 2
)

// SendOrdinaryMessage message arms
const (
	fieldOrdinaryPing     protowire.Number = 3
	fieldOrdinaryPong     protowire.Number = 4
	fieldOrdinaryFindNode protowire.Number = 5
	fieldOrdinaryNodes    protowire.Number = 6
	fieldOrdinaryRandom   protowire.Number = 7
)

// SendWhoAreYou fields
const (
	fieldWhoAreYouIDNonce protowire.Number = 3
	fieldWhoAreYouEnrSeq  protowire.Number = 4
)

// SendHandshakeMessage fields
const (
	fieldHandshakeRecord   protowire.Number = 3
	fieldHandshakePing     protowire.Number = 4
	fieldHandshakeFindNode protowire.Number = 5
)

// Protocol message fields
const (
	fieldRequestID     protowire.Number = 1
	fieldEnrSeq        protowire.Number = 2
	fieldPongIP        protowire.Number = 3
	fieldPongPort      protowire.Number = 4
	fieldFindDistances protowire.Number = 2
	fieldNodesTotal    protowire.Number = 2
	fieldNodesIDs      protowire.Number = 3
	fieldRecordEnrSeq  protowire.Number = 1
)
