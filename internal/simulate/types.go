package simulate

import (
	"context"
	"nodetrace/internal/nodeid"
	"nodetrace/internal/tracer"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	Nodes    int // simulated peers, at least two
	Messages int // exchanges to perform
	Workers  int // concurrent emitting goroutines
}

type Simulator struct {
	Namespace []string
	cfg       Config
	tracer    *tracer.Tracer
	nodes     []peer
	stats     Stats
	cancel    context.CancelFunc
	latencies []time.Duration // per exchange, guarded by mutex
	mutex     sync.Mutex
}

type peer struct {
	nodeid.Node
	enrSeq atomic.Uint64
	port   uint16
}

type Stats struct {
	Exchanges atomic.Uint64 // exchanges completed without error
	Rejected  atomic.Uint64 // messages with no trace representation
	Failed    atomic.Uint64 // exchanges whose emission failed
}

// Totals after a run
type Report struct {
	Nodes        int
	Exchanges    uint64
	Rejected     uint64
	Failed       uint64
	Duration     time.Duration
	MeanExchange time.Duration // trimmed mean of successful exchange durations
}
