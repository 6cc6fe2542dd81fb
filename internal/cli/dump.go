package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/pkg/tracing"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	colourReset string = "\033[0m"
	colourDim   string = "\033[2m"
	ellipsis    string = "..."
)

var kindColours = map[tracing.Kind]string{
	tracing.KindNodeStarted:          "\033[32m", // green
	tracing.KindShutdown:             "\033[31m", // red
	tracing.KindSendOrdinaryMessage:  "\033[36m", // cyan
	tracing.KindSendWhoAreYou:        "\033[33m", // yellow
	tracing.KindSendHandshakeMessage: "\033[35m", // magenta
}

type dumpOptions struct {
	Colour bool
	Width  int // 0 disables truncation
}

func DumpMode(ctx context.Context, commandname string, args []string) {
	var configPath, tracePath string
	var noColour bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &tracePath)
	commandFlags.BoolVar(&noColour, "no-colour", false, "Disable coloured output even on a terminal")
	parseFlags(commandFlags, commandname, args)

	cfg, err := loadWriterConfig(configPath, tracePath)
	exitOnError(err)
	applyLogLevel(ctx, commandFlags, cfg)

	file, err := os.Open(cfg.FilePath)
	exitOnError(err)
	defer file.Close()

	var opts dumpOptions
	stdoutFd := int(os.Stdout.Fd())
	if term.IsTerminal(stdoutFd) {
		opts.Colour = !noColour
		width, _, sizeErr := term.GetSize(stdoutFd)
		if sizeErr == nil {
			opts.Width = width
		}
	}

	count, err := dumpLog(file, os.Stdout, opts)
	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)
	logctx.LogEvent(ctx, global.VerbosityProgress, global.InfoLog, "printed %d records from %s", count, cfg.FilePath)
	exitOnError(err)
}

// Prints each record on its own line. A truncated tail is noted, not returned.
func dumpLog(src io.Reader, output io.Writer, opts dumpOptions) (count int, err error) {
	reader := tracing.NewReader(src)
	for {
		var event tracing.Event
		event, err = reader.Next()
		if err == io.EOF {
			err = nil
			return
		}
		if errors.Is(err, tracing.ErrTruncated) {
			fmt.Fprintf(output, "-- incomplete final record after byte %d --\n", reader.Offset())
			err = nil
			return
		}
		if err != nil {
			return
		}

		fmt.Fprintln(output, formatLine(count, event, opts))
		count++
	}
}

func formatLine(index int, event tracing.Event, opts dumpOptions) (line string) {
	kind := event.Body.Kind()
	detail := describeBody(event.Body)

	prefix := fmt.Sprintf("%6d  %s  %-20s ", index, event.Timestamp, kind)
	if opts.Width > 0 {
		detail = truncateDetail(detail, opts.Width-len(prefix))
	}

	if !opts.Colour {
		line = prefix + detail
		return
	}
	line = fmt.Sprintf("%s%6d  %s%s  %s%-20s%s %s",
		colourDim, index, event.Timestamp, colourReset,
		kindColours[kind], kind, colourReset, detail)
	return
}

// Cuts detail to room bytes, ellipsis included, without splitting a rune
func truncateDetail(detail string, room int) (out string) {
	if len(detail) <= room {
		out = detail
		return
	}

	keep := max(room-len(ellipsis), 0)
	for keep > 0 && !utf8.RuneStart(detail[keep]) {
		keep--
	}
	out = detail[:keep] + ellipsis
	return
}

func describeBody(body tracing.Body) (detail string) {
	switch ev := body.(type) {
	case tracing.NodeStarted:
		detail = "node=" + ev.NodeID
	case tracing.Shutdown:
		detail = "node=" + ev.NodeID
	case tracing.SendOrdinaryMessage:
		detail = fmt.Sprintf("%s -> %s %s", ev.Sender, ev.Recipient, describeMessage(ev.Message))
	case tracing.SendWhoAreYou:
		detail = fmt.Sprintf("%s -> %s nonce=%s enr_seq=%d", ev.Sender, ev.Recipient, hex.EncodeToString(ev.IDNonce[:]), ev.EnrSeq)
	case tracing.SendHandshakeMessage:
		detail = fmt.Sprintf("%s -> %s %s", ev.Sender, ev.Recipient, describeMessage(ev.Message))
		if ev.UpdatedRecord != nil {
			detail += fmt.Sprintf(" record.enr_seq=%d", ev.UpdatedRecord.EnrSeq)
		}
	default:
		detail = "?"
	}
	return
}

func describeMessage(msg tracing.Message) (detail string) {
	switch m := msg.(type) {
	case tracing.Ping:
		detail = fmt.Sprintf("PING id=%s enr_seq=%d", m.RequestID, m.EnrSeq)
	case tracing.Pong:
		detail = fmt.Sprintf("PONG id=%s enr_seq=%d to=%s:%d", m.RequestID, m.EnrSeq, m.RecipientIP, m.RecipientPort)
	case tracing.FindNode:
		detail = fmt.Sprintf("FINDNODE id=%s distances=%v", m.RequestID, m.Distances)
	case tracing.Nodes:
		detail = fmt.Sprintf("NODES id=%s total=%d nodes=[%s]", m.RequestID, m.Total, strings.Join(m.NodeIDs, ","))
	case tracing.Random:
		detail = "RANDOM"
	default:
		detail = "UNKNOWN"
	}
	return
}
