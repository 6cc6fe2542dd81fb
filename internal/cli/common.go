package cli

import (
	"context"
	"flag"
	"fmt"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/internal/tracelog"
	"os"
)

func SetGlobalArguments(fs *flag.FlagSet) (requestedLevel *int) {
	// Defaults to the current level so a subcommand does not undo a root level -v
	fs.IntVar(&global.Verbosity, "v", global.Verbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	fs.IntVar(&global.Verbosity, "verbosity", global.Verbosity, "Increase detailed progress messages (Higher is more verbose) <0...5>")
	requestedLevel = &global.Verbosity
	return
}

func SetCommon(fs *flag.FlagSet, configPath *string, tracePath *string) {
	fs.StringVar(configPath, "c", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(configPath, "config", global.DefaultConfigPath, "Path to the configuration file")
	fs.StringVar(tracePath, "f", "", "Path to the trace log (overrides the configuration file)")
	fs.StringVar(tracePath, "file", "", "Path to the trace log (overrides the configuration file)")
}

// Builds writer config from the config file, or from defaults when a trace path is given directly
func loadWriterConfig(configPath, tracePath string) (cfg tracelog.Config, err error) {
	var jsonCfg tracelog.JSONConfig
	if tracePath == "" {
		jsonCfg, err = tracelog.LoadConfig(configPath)
		if err != nil {
			return
		}
	} else {
		jsonCfg.LogFile = tracePath
	}

	cfg, err = jsonCfg.NewWriterConf()
	if err != nil {
		err = fmt.Errorf("invalid configuration: %w", err)
		return
	}
	return
}

// Parses subcommand flags, printing help on -h
func parseFlags(commandFlags *flag.FlagSet, commandname string, args []string) {
	commandFlags.Usage = func() {
		PrintHelpMenu(commandFlags, commandname, global.CmdOpts)
	}
	commandFlags.Parse(args)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command line verbosity wins, otherwise the config file's level when it sets one
func applyLogLevel(ctx context.Context, commandFlags *flag.FlagSet, cfg tracelog.Config) {
	level := global.Verbosity
	explicit := level != global.VerbosityStandard
	commandFlags.Visit(func(f *flag.Flag) {
		if f.Name == "v" || f.Name == "verbosity" {
			explicit = true
		}
	})
	if !explicit && cfg.LogLevel > global.VerbosityNone {
		level = cfg.LogLevel
	}
	logctx.SetLogLevel(ctx, level)
}
