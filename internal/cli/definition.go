package cli

import "nodetrace/internal/global"

func DefineOptions() (cmdOpts *global.CommandSet) {
	// Root level
	root := &global.CommandSet{
		Description:     "Node Event Tracer (nodetrace)",
		FullDescription: "  Records peer-to-peer node events into a durable, replayable binary trace log",
		CommandName:     RootCLICommand,
		ChildCommands:   make(map[string]*global.CommandSet),
	}

	root.ChildCommands["reset"] = &global.CommandSet{
		CommandName:     "reset",
		Description:     "Clear Trace Log",
		FullDescription: "Deletes the trace log if present so the next event starts an empty log",
	}

	root.ChildCommands["verify"] = &global.CommandSet{
		CommandName:     "verify",
		Description:     "Check Trace Log Framing",
		FullDescription: "Reads every record and reports complete records, a truncated tail, or corruption",
	}

	root.ChildCommands["dump"] = &global.CommandSet{
		CommandName:     "dump",
		Description:     "Print Trace Log",
		FullDescription: "Prints one line per record in file order",
	}

	root.ChildCommands["simulate"] = &global.CommandSet{
		CommandName:     "simulate",
		Description:     "Generate Synthetic Traffic",
		FullDescription: "Runs simulated nodes exchanging discovery messages concurrently and traces every send",
	}

	root.ChildCommands["configure"] = &global.CommandSet{
		CommandName:     "configure",
		Description:     "Create Template Config",
		FullDescription: "Writes a template JSON configuration with default values",
		UsageOption:     "-c <path>",
	}

	// Version Info
	root.ChildCommands["version"] = &global.CommandSet{
		CommandName:     "version",
		Description:     "Show Version Information",
		FullDescription: "Display meta information about program",
	}

	cmdOpts = root
	return
}
