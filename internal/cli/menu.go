package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"nodetrace/internal/global"
)

const (
	RootCLICommand  string = "root"
	helpMenuTrailer string = `
Trace files are read and written as varint length-prefixed protobuf records.
Verify exits 2 when only the final record is incomplete and 1 on any other damage.
`
)

// Prints the help menu for the root or one of its commands to stdout
func PrintHelpMenu(fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	writeHelpMenu(os.Stdout, fs, command, rootCmd)
}

// Command tree is one level deep: root plus its direct commands
func writeHelpMenu(out io.Writer, fs *flag.FlagSet, command string, rootCmd *global.CommandSet) {
	program := os.Args[0]

	if command == "" || command == RootCLICommand {
		fmt.Fprintf(out, "Usage: %s [command]\n\n", program)
		fmt.Fprintln(out, rootCmd.Description)
		fmt.Fprintln(out, rootCmd.FullDescription)
		fmt.Fprintln(out)
		writeCommandList(out, rootCmd.ChildCommands)
		writeFlagOptions(out, fs)
		fmt.Fprint(out, helpMenuTrailer)
		return
	}

	cmd, ok := rootCmd.ChildCommands[command]
	if !ok {
		fmt.Fprintf(out, "Unknown command: %s\n", command)
		return
	}

	usage := program + " " + cmd.CommandName
	if cmd.UsageOption != "" {
		usage += " " + cmd.UsageOption
	}
	fmt.Fprintf(out, "Usage: %s\n\n", usage)
	if cmd.FullDescription != "" {
		fmt.Fprintf(out, "  Description:\n    %s\n\n", cmd.FullDescription)
	}
	writeFlagOptions(out, fs)
}

func writeCommandList(out io.Writer, commands map[string]*global.CommandSet) {
	if len(commands) == 0 {
		return
	}

	names := make([]string, 0, len(commands))
	width := 0
	for name := range commands {
		names = append(names, name)
		width = max(width, len(name))
	}
	sort.Strings(names)

	fmt.Fprintln(out, "  Commands:")
	for _, name := range names {
		fmt.Fprintf(out, "    %-*s  - %s\n", width, name, commands[name].Description)
	}
	fmt.Fprintln(out)
}

// One flag option as shown in help, with short and long aliases merged
type flagOption struct {
	names      []string // "-c", "--config"
	usage      string
	defaultVal string
	hasShort   bool
}

// Label column width, counting the room reserved for a missing short alias
func (opt flagOption) labelWidth() (width int) {
	width = len(strings.Join(opt.names, ", "))
	if !opt.hasShort {
		width += len("-x, ")
	}
	return
}

// Groups aliases that share usage text (-c/--config) onto one line
func collectFlagOptions(fs *flag.FlagSet) (opts []*flagOption) {
	byUsage := make(map[string]*flagOption)
	fs.VisitAll(func(arg *flag.Flag) {
		opt, seen := byUsage[arg.Usage]
		if !seen {
			opt = &flagOption{usage: arg.Usage, defaultVal: arg.DefValue}
			byUsage[arg.Usage] = opt
			opts = append(opts, opt)
		}
		if len(arg.Name) == 1 {
			opt.names = append(opt.names, "-"+arg.Name)
			opt.hasShort = true
		} else {
			opt.names = append(opt.names, "--"+arg.Name)
		}
	})

	for _, opt := range opts {
		sort.SliceStable(opt.names, func(a, b int) bool {
			return len(opt.names[a]) < len(opt.names[b])
		})
	}
	sort.Slice(opts, func(a, b int) bool {
		return strings.ToLower(opts[a].names[0]) < strings.ToLower(opts[b].names[0])
	})
	return
}

func writeFlagOptions(out io.Writer, fs *flag.FlagSet) {
	opts := collectFlagOptions(fs)

	width := 0
	for _, opt := range opts {
		width = max(width, opt.labelWidth())
	}

	fmt.Fprintln(out, "  Options:")
	for _, opt := range opts {
		indent := "  "
		if !opt.hasShort {
			indent += strings.Repeat(" ", len("-x, "))
		}
		label := strings.Join(opt.names, ", ")
		padding := strings.Repeat(" ", width-opt.labelWidth()+2)

		desc := opt.usage
		// Empty, false and zero defaults are noise
		if opt.defaultVal != "" && opt.defaultVal != "false" && opt.defaultVal != "0" {
			desc += fmt.Sprintf(" [default: %s]", opt.defaultVal)
		}
		fmt.Fprintf(out, "%s%s%s%s\n", indent, label, padding, desc)
	}
}
