// Drives the tracer with a swarm of simulated peers exchanging discovery messages
package simulate

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/internal/nodeid"
	"nodetrace/internal/tracer"
	"nodetrace/pkg/tracing"
	"sync"
	"time"
)

const (
	basePort    uint16  = 30303
	latencyTrim float64 = 0.05 // fraction dropped from each end before averaging
)

// Creates the simulated peers. Nothing is traced until Run.
func New(cfg Config, trace *tracer.Tracer) (sim *Simulator, err error) {
	if cfg.Nodes < 2 {
		err = fmt.Errorf("simulation needs at least 2 nodes, got %d", cfg.Nodes)
		return
	}
	if cfg.Messages < 0 {
		err = fmt.Errorf("message count cannot be negative")
		return
	}
	if cfg.Workers < 1 {
		cfg.Workers = global.DefaultSimWorkers
	}
	if trace == nil {
		err = fmt.Errorf("simulation needs a tracer")
		return
	}

	sim = &Simulator{
		Namespace: []string{global.NSSim},
		cfg:       cfg,
		tracer:    trace,
		nodes:     make([]peer, cfg.Nodes),
	}
	for i := range sim.nodes {
		sim.nodes[i].Node, err = nodeid.New()
		if err != nil {
			err = fmt.Errorf("failed to create node %d: %w", i, err)
			return
		}
		sim.nodes[i].enrSeq.Store(1)
		sim.nodes[i].port = basePort + uint16(i)
	}
	return
}

// Starts every node, runs the exchanges across the worker pool, then shuts every node down.
// Cancelling ctx (or Shutdown) stops handing out exchanges; in-flight ones finish.
func (sim *Simulator) Run(ctx context.Context) (report Report, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sim.mutex.Lock()
	sim.cancel = cancel
	sim.mutex.Unlock()

	ctx = logctx.AppendCtxTag(ctx, global.NSSim)
	start := time.Now()

	for i := range sim.nodes {
		err = sim.tracer.NodeStarted(ctx, &sim.nodes[i])
		if err != nil {
			err = fmt.Errorf("failed to start node %s: %w", sim.nodes[i].ID, err)
			return
		}
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"started %d nodes, running %d exchanges on %d workers", len(sim.nodes), sim.cfg.Messages, sim.cfg.Workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < sim.cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			workerCtx := logctx.AppendCtxTag(ctx, fmt.Sprintf("%s%d", global.NSWorker, w))
			for job := range jobs {
				sim.exchange(workerCtx, job)
			}
		}(w)
	}

dispatch:
	for job := 0; job < sim.cfg.Messages; job++ {
		select {
		case jobs <- job:
		case <-ctx.Done():
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog, "stopping after %d of %d exchanges", job, sim.cfg.Messages)
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	// Nodes are shut down even when the run was cancelled
	shutdownCtx := context.WithoutCancel(ctx)
	for i := range sim.nodes {
		shutdownErr := sim.tracer.Shutdown(shutdownCtx, &sim.nodes[i])
		if shutdownErr != nil && err == nil {
			err = fmt.Errorf("failed to shut down node %s: %w", sim.nodes[i].ID, shutdownErr)
		}
	}

	report = Report{
		Nodes:     len(sim.nodes),
		Exchanges: sim.stats.Exchanges.Load(),
		Rejected:  sim.stats.Rejected.Load(),
		Failed:    sim.stats.Failed.Load(),
		Duration:  time.Since(start),
	}
	sim.mutex.Lock()
	report.MeanExchange = trimmedMean(sim.latencies, latencyTrim)
	sim.mutex.Unlock()
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"finished: %d exchanges, %d rejected, %d failed in %s", report.Exchanges, report.Rejected, report.Failed, report.Duration)
	return
}

// Stops dispatching new exchanges
func (sim *Simulator) Shutdown() {
	sim.mutex.Lock()
	defer sim.mutex.Unlock()
	if sim.cancel != nil {
		sim.cancel()
	}
}

// Performs one request/response exchange chosen by job number
func (sim *Simulator) exchange(ctx context.Context, job int) {
	began := time.Now()
	sender := &sim.nodes[job%len(sim.nodes)]
	offset, err := nodeid.NumberInRange(1, len(sim.nodes)-1)
	if err != nil {
		sim.stats.Failed.Add(1)
		return
	}
	recipient := &sim.nodes[(job%len(sim.nodes)+offset)%len(sim.nodes)]

	requestID, err := nodeid.RequestID()
	if err == nil {
		switch job % 6 {
		case 0:
			err = sim.pingPong(ctx, sender, recipient, requestID)
		case 1:
			err = sim.lookup(ctx, sender, recipient, requestID)
		case 2:
			err = sim.handshake(ctx, sender, recipient, requestID)
		case 3:
			err = sim.tracer.SendOrdinaryMessage(ctx, sender, recipient, randomPacket{})
		case 4:
			err = sim.tracer.SendOrdinaryMessage(ctx, sender, recipient, talkRequest{RequestID: requestID, Protocol: "discv5-sim"})
		case 5:
			distance := sender.ID.LogDistance(recipient.ID)
			err = sim.tracer.SendHandshakeMessage(ctx, sender, recipient, nil, findNodeRequest{RequestID: requestID, Distances: []uint64{distance}})
		}
	}

	switch {
	case errors.Is(err, tracer.ErrUnsupportedMessage):
		sim.stats.Rejected.Add(1)
	case err != nil:
		sim.stats.Failed.Add(1)
	default:
		sim.stats.Exchanges.Add(1)
		sim.mutex.Lock()
		sim.latencies = append(sim.latencies, time.Since(began))
		sim.mutex.Unlock()
	}
}

func (sim *Simulator) pingPong(ctx context.Context, sender, recipient *peer, requestID string) (err error) {
	err = sim.tracer.SendOrdinaryMessage(ctx, sender, recipient, pingRequest{RequestID: requestID, EnrSeq: sender.enrSeq.Load()})
	if err != nil {
		return
	}

	observed := netip.AddrPortFrom(netip.IPv6Loopback(), sender.port)
	err = sim.tracer.SendOrdinaryMessage(ctx, recipient, sender, pongResponse{RequestID: requestID, EnrSeq: recipient.enrSeq.Load(), Observed: observed})
	return
}

// FINDNODE at the log distance of the recipient, answered with the peers at that distance
func (sim *Simulator) lookup(ctx context.Context, sender, recipient *peer, requestID string) (err error) {
	distance := recipient.ID.LogDistance(sender.ID)
	err = sim.tracer.SendOrdinaryMessage(ctx, sender, recipient, findNodeRequest{RequestID: requestID, Distances: []uint64{distance}})
	if err != nil {
		return
	}

	var found []nodeid.ID
	for i := range sim.nodes {
		if recipient.ID.LogDistance(sim.nodes[i].ID) == distance {
			found = append(found, sim.nodes[i].ID)
		}
	}
	err = sim.tracer.SendOrdinaryMessage(ctx, recipient, sender, nodesResponse[nodeid.ID]{RequestID: requestID, Total: 1, Nodes: found})
	return
}

// WHOAREYOU challenge answered by a handshake carrying a PING and a bumped record
func (sim *Simulator) handshake(ctx context.Context, sender, recipient *peer, requestID string) (err error) {
	nonce, err := nodeid.Nonce(tracing.IDNonceLen)
	if err != nil {
		return
	}
	err = sim.tracer.SendWhoAreYou(ctx, recipient, sender, nonce, sender.enrSeq.Load())
	if err != nil {
		return
	}

	local, err := sender.SharedSecret(recipient.Public)
	if err != nil {
		return
	}
	remote, err := recipient.SharedSecret(sender.Public)
	if err != nil {
		return
	}
	if string(local) != string(remote) {
		err = fmt.Errorf("session keys disagree between %s and %s", sender, recipient)
		return
	}

	updated := sender.enrSeq.Add(1)
	err = sim.tracer.SendHandshakeMessage(ctx, sender, recipient, &updated, pingRequest{RequestID: requestID, EnrSeq: updated})
	return
}
