package tracing

// Wall-clock capture time of an event.
// Nanos is always within [0, 1e9).
type Timestamp struct {
	Seconds int64
	Nanos   uint32
}

// One recorded occurrence in the trace log
type Event struct {
	Timestamp Timestamp
	Body      Body
}

// Closed set of event kinds. Implemented only by the types in this package.
type Body interface {
	Kind() Kind
	isBody()
}

// Closed set of protocol messages that can be traced as ordinary messages
type Message interface {
	MessageKind() MessageKind
	isMessage()
}

// Subset of protocol messages that can ride inside a handshake
type HandshakeMessage interface {
	Message
	isHandshakeMessage()
}

type Kind uint8

const (
	KindUnknown Kind = iota
	KindNodeStarted
	KindShutdown
	KindSendOrdinaryMessage
	KindSendWhoAreYou
	KindSendHandshakeMessage
)

type MessageKind uint8

const (
	MessageUnknown MessageKind = iota
	MessagePing
	MessagePong
	MessageFindNode
	MessageNodes
	MessageRandom
)

// Lifecycle

type NodeStarted struct {
	NodeID string
}

type Shutdown struct {
	NodeID string
}

// Outbound traffic

type SendOrdinaryMessage struct {
	Sender    string
	Recipient string
	Message   Message
}

type SendWhoAreYou struct {
	Sender    string
	Recipient string
	IDNonce   [IDNonceLen]byte
	EnrSeq    uint64
}

type SendHandshakeMessage struct {
	Sender        string
	Recipient     string
	UpdatedRecord *Record // nil when the handshake carries no record
	Message       HandshakeMessage
}

// Updated node record attached to a handshake
type Record struct {
	EnrSeq uint64
}

// Protocol messages

type Ping struct {
	RequestID string
	EnrSeq    uint64
}

type Pong struct {
	RequestID     string
	EnrSeq        uint64
	RecipientIP   string
	RecipientPort uint32
}

type FindNode struct {
	RequestID string
	Distances []uint64
}

type Nodes struct {
	RequestID string
	Total     uint32
	NodeIDs   []string
}

// Padding message, carries nothing
type Random struct{}

func (NodeStarted) Kind() Kind          { return KindNodeStarted }
func (Shutdown) Kind() Kind             { return KindShutdown }
func (SendOrdinaryMessage) Kind() Kind  { return KindSendOrdinaryMessage }
func (SendWhoAreYou) Kind() Kind        { return KindSendWhoAreYou }
func (SendHandshakeMessage) Kind() Kind { return KindSendHandshakeMessage }

func (NodeStarted) isBody()          {}
func (Shutdown) isBody()             {}
func (SendOrdinaryMessage) isBody()  {}
func (SendWhoAreYou) isBody()        {}
func (SendHandshakeMessage) isBody() {}

func (Ping) MessageKind() MessageKind     { return MessagePing }
func (Pong) MessageKind() MessageKind     { return MessagePong }
func (FindNode) MessageKind() MessageKind { return MessageFindNode }
func (Nodes) MessageKind() MessageKind    { return MessageNodes }
func (Random) MessageKind() MessageKind   { return MessageRandom }

func (Ping) isMessage()     {}
func (Pong) isMessage()     {}
func (FindNode) isMessage() {}
func (Nodes) isMessage()    {}
func (Random) isMessage()   {}

func (Ping) isHandshakeMessage()     {}
func (FindNode) isHandshakeMessage() {}

func (kind Kind) String() (name string) {
	switch kind {
	case KindNodeStarted:
		name = "NodeStarted"
	case KindShutdown:
		name = "Shutdown"
	case KindSendOrdinaryMessage:
		name = "SendOrdinaryMessage"
	case KindSendWhoAreYou:
		name = "SendWhoAreYou"
	case KindSendHandshakeMessage:
		name = "SendHandshakeMessage"
	default:
		name = "Unknown"
	}
	return
}

func (kind MessageKind) String() (name string) {
	switch kind {
	case MessagePing:
		name = "PING"
	case MessagePong:
		name = "PONG"
	case MessageFindNode:
		name = "FINDNODE"
	case MessageNodes:
		name = "NODES"
	case MessageRandom:
		name = "RANDOM"
	default:
		name = "UNKNOWN"
	}
	return
}
