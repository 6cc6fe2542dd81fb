package cli

import (
	"context"
	"flag"
	"fmt"
	"nodetrace/internal/global"
	"nodetrace/internal/lifecycle"
	"nodetrace/internal/logctx"
	"nodetrace/internal/metrics"
	"nodetrace/internal/simulate"
	"nodetrace/internal/tracelog"
	"nodetrace/internal/tracer"
	"time"
)

func SimulateMode(ctx context.Context, commandname string, args []string) {
	var configPath, tracePath string
	var simCfg simulate.Config
	var fresh bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &tracePath)
	commandFlags.IntVar(&simCfg.Nodes, "n", global.DefaultSimNodes, "Number of simulated nodes")
	commandFlags.IntVar(&simCfg.Messages, "m", global.DefaultSimMessages, "Number of message exchanges")
	commandFlags.IntVar(&simCfg.Workers, "w", global.DefaultSimWorkers, "Number of concurrent workers")
	commandFlags.BoolVar(&fresh, "reset", false, "Clear the trace log before simulating")
	parseFlags(commandFlags, commandname, args)

	cfg, err := loadWriterConfig(configPath, tracePath)
	exitOnError(err)
	applyLogLevel(ctx, commandFlags, cfg)

	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)
	report, registry, err := runSimulation(ctx, cfg, simCfg, fresh)
	exitOnError(err)

	fmt.Printf("%d nodes, %d exchanges, %d rejected, %d failed in %s (mean exchange %s)\n",
		report.Nodes, report.Exchanges, report.Rejected, report.Failed,
		report.Duration.Round(time.Millisecond), report.MeanExchange)
	for _, metric := range registry.Search("", nil) {
		fmt.Printf("  %-28s %d %s\n", metricPath(metric), metric.Value.Raw, metric.Value.Unit)
	}
}

// Runs one simulation against the configured log and collects writer and tracer counters
func runSimulation(ctx context.Context, cfg tracelog.Config, simCfg simulate.Config, fresh bool) (report simulate.Report, registry *metrics.Registry, err error) {
	writer, err := tracelog.New(cfg)
	if err != nil {
		return
	}
	defer writer.Close()

	if fresh {
		err = writer.Reset()
		if err != nil {
			return
		}
	}

	trace := tracer.New(writer)
	sim, err := simulate.New(simCfg, trace)
	if err != nil {
		return
	}

	sigCtx, stopSignals := context.WithCancel(ctx)
	defer stopSignals()
	go lifecycle.SignalHandler(sigCtx, sim)

	start := time.Now()
	report, err = sim.Run(ctx)
	if err != nil {
		return
	}
	trace.Drain(ctx, global.EmitDrainTimeout)

	registry = metrics.New()
	registry.Collect(time.Now(), time.Since(start), trace, writer)
	return
}

func metricPath(metric metrics.Metric) (path string) {
	for _, part := range metric.Namespace {
		path += part + "/"
	}
	path += metric.Name
	return
}
