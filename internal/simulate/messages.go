package simulate

import (
	"fmt"
	"net/netip"
	"nodetrace/internal/tracer"
	"nodetrace/pkg/tracing"
)

// Simulated protocol messages as a node would hold them before sending

type pingRequest struct {
	RequestID string
	EnrSeq    uint64
}

func (req pingRequest) TraceMessage() (tracing.Message, error) {
	return tracing.NewPing(req.RequestID, req.EnrSeq), nil
}

type pongResponse struct {
	RequestID string
	EnrSeq    uint64
	Observed  netip.AddrPort // address the ping was seen from
}

func (resp pongResponse) TraceMessage() (tracing.Message, error) {
	return tracing.NewPong(resp.RequestID, resp.EnrSeq, resp.Observed.Addr(), int(resp.Observed.Port()))
}

type findNodeRequest struct {
	RequestID string
	Distances []uint64
}

func (req findNodeRequest) TraceMessage() (tracing.Message, error) {
	return tracing.NewFindNode(req.RequestID, req.Distances), nil
}

type nodesResponse[T fmt.Stringer] struct {
	RequestID string
	Total     int
	Nodes     []T
}

func (resp nodesResponse[T]) TraceMessage() (tracing.Message, error) {
	return tracing.NewNodes(resp.RequestID, resp.Total, tracing.IDs(resp.Nodes))
}

type randomPacket struct{}

func (randomPacket) TraceMessage() (tracing.Message, error) {
	return tracing.Random{}, nil
}

// Talk requests exist on the wire but have no trace representation
type talkRequest struct {
	RequestID string
	Protocol  string
}

func (req talkRequest) TraceMessage() (tracing.Message, error) {
	return nil, fmt.Errorf("%w: TALKREQ for protocol %q", tracer.ErrUnsupportedMessage, req.Protocol)
}
