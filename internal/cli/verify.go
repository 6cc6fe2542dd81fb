package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"nodetrace/internal/global"
	"nodetrace/internal/logctx"
	"nodetrace/pkg/tracing"
	"os"
)

// Verify exit codes
const (
	verifyOK        int = 0
	verifyCorrupt   int = 1
	verifyTruncated int = 2
)

type verifyResult struct {
	Records  int   // complete records
	Valid    int64 // bytes covered by complete records
	FileSize int64
	Problem  error // nil, tracing.ErrTruncated or tracing.ErrCorrupt
}

func VerifyMode(ctx context.Context, commandname string, args []string) (exitCode int) {
	var configPath, tracePath string
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	SetGlobalArguments(commandFlags)
	SetCommon(commandFlags, &configPath, &tracePath)
	parseFlags(commandFlags, commandname, args)

	cfg, err := loadWriterConfig(configPath, tracePath)
	exitOnError(err)
	applyLogLevel(ctx, commandFlags, cfg)

	result, err := verifyLog(cfg.FilePath)
	exitOnError(err)

	ctx = logctx.AppendCtxTag(ctx, global.NSCLI)
	exitCode = result.exitCode()
	switch exitCode {
	case verifyOK:
		fmt.Printf("%s: %d records, %d bytes, ok\n", cfg.FilePath, result.Records, result.FileSize)
	case verifyTruncated:
		fmt.Printf("%s: %d complete records, final record truncated after byte %d of %d\n",
			cfg.FilePath, result.Records, result.Valid, result.FileSize)
	default:
		fmt.Printf("%s: %d readable records, damaged after byte %d\n", cfg.FilePath, result.Records, result.Valid)
	}
	logctx.LogEvent(ctx, global.VerbosityData, global.InfoLog, "verify result for %s: %v", cfg.FilePath, result.Problem)
	return
}

// Reads the log end to end. Damage is reported in the result, not as err.
func verifyLog(path string) (result verifyResult, err error) {
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("failed to open trace log: %w", err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("failed to stat trace log: %w", err)
		return
	}
	result.FileSize = info.Size()

	reader := tracing.NewReader(file)
	for {
		_, readErr := reader.Next()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			result.Problem = readErr
			break
		}
	}
	result.Records = reader.Count()
	result.Valid = reader.Offset()
	return
}

func (result verifyResult) exitCode() (code int) {
	switch {
	case result.Problem == nil:
		code = verifyOK
	case errors.Is(result.Problem, tracing.ErrTruncated):
		code = verifyTruncated
	default:
		code = verifyCorrupt
	}
	return
}
