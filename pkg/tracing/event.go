package tracing

import (
	"fmt"
	"net/netip"
)

// Captures canonical string form of identifiers, preserving order
func IDs[T fmt.Stringer](ids []T) (canonical []string) {
	if len(ids) == 0 {
		return
	}
	canonical = make([]string, 0, len(ids))
	for _, id := range ids {
		canonical = append(canonical, id.String())
	}
	return
}

func NewPing(requestID string, enrSeq uint64) (ping Ping) {
	ping = Ping{
		RequestID: requestID,
		EnrSeq:    enrSeq,
	}
	return
}

// Builds a PONG description. Port must fit 16 bits and the address must be valid.
func NewPong(requestID string, enrSeq uint64, ip netip.Addr, port int) (pong Pong, err error) {
	if !ip.IsValid() {
		err = fmt.Errorf("%w: pong recipient address is not set", ErrEncoding)
		return
	}
	if port < 0 || port > maxPort {
		err = fmt.Errorf("%w: pong recipient port %d outside 0-%d", ErrEncoding, port, maxPort)
		return
	}

	pong = Pong{
		RequestID:     requestID,
		EnrSeq:        enrSeq,
		RecipientIP:   ip.Unmap().String(),
		RecipientPort: uint32(port),
	}
	return
}

func NewFindNode(requestID string, distances []uint64) (findNode FindNode) {
	findNode = FindNode{
		RequestID: requestID,
		Distances: append([]uint64(nil), distances...),
	}
	return
}

// Builds a NODES description. Total must fit 32 bits.
func NewNodes(requestID string, total int, nodeIDs []string) (nodes Nodes, err error) {
	if total < 0 || total > maxTotal {
		err = fmt.Errorf("%w: nodes total %d outside 0-%d", ErrEncoding, total, maxTotal)
		return
	}

	nodes = Nodes{
		RequestID: requestID,
		Total:     uint32(total),
		NodeIDs:   append([]string(nil), nodeIDs...),
	}
	return
}

func NewNodeStarted(nodeID string) (body NodeStarted) {
	body = NodeStarted{NodeID: nodeID}
	return
}

func NewShutdown(nodeID string) (body Shutdown) {
	body = Shutdown{NodeID: nodeID}
	return
}

func NewSendOrdinaryMessage(sender, recipient string, msg Message) (body SendOrdinaryMessage, err error) {
	if msg == nil {
		err = fmt.Errorf("%w: ordinary message has no payload", ErrUnknownKind)
		return
	}

	body = SendOrdinaryMessage{
		Sender:    sender,
		Recipient: recipient,
		Message:   msg,
	}
	return
}

// Builds a WHOAREYOU event. The nonce must be exactly IDNonceLen bytes.
func NewSendWhoAreYou(sender, recipient string, idNonce []byte, enrSeq uint64) (body SendWhoAreYou, err error) {
	if len(idNonce) != IDNonceLen {
		err = fmt.Errorf("%w: id-nonce must be %d bytes, got %d", ErrEncoding, IDNonceLen, len(idNonce))
		return
	}

	body = SendWhoAreYou{
		Sender:    sender,
		Recipient: recipient,
		EnrSeq:    enrSeq,
	}
	copy(body.IDNonce[:], idNonce)
	return
}

// Builds a handshake event. updatedEnrSeq is nil when no record is attached.
func NewSendHandshakeMessage(sender, recipient string, updatedEnrSeq *uint64, msg HandshakeMessage) (body SendHandshakeMessage, err error) {
	if msg == nil {
		err = fmt.Errorf("%w: handshake has no payload", ErrUnknownKind)
		return
	}

	body = SendHandshakeMessage{
		Sender:    sender,
		Recipient: recipient,
		Message:   msg,
	}
	if updatedEnrSeq != nil {
		body.UpdatedRecord = &Record{EnrSeq: *updatedEnrSeq}
	}
	return
}
