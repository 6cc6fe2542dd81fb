package cli

import (
	"context"
	"flag"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/internal/tracelog"
)

func ResetMode(ctx context.Context, commandname string, args []string) {
	var configPath, tracePath string
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &tracePath)
	parseFlags(commandFlags, commandname, args)

	cfg, err := loadWriterConfig(configPath, tracePath)
	exitOnError(err)
	applyLogLevel(ctx, commandFlags, cfg)

	exitOnError(resetLog(ctx, cfg))
}

func resetLog(ctx context.Context, cfg tracelog.Config) (err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)

	writer, err := tracelog.New(cfg)
	if err != nil {
		return
	}
	defer writer.Close()

	err = writer.Reset()
	if err != nil {
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog, "cleared trace log %s", writer.Path())
	return
}
