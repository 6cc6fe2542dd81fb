package logctx

import (
	"context"
	"fmt"
	"nodetrace/internal/global"
	"strings"
	"time"
)

// Entry for logging events. No-op when ctx carries no logger.
func LogEvent(ctx context.Context, eventLevel int, severity string, message string, vars ...any) {
	logger := GetLogger(ctx)
	if logger == nil {
		return
	}

	// Skip formatting when there is nothing to substitute
	text := message
	if len(vars) > 0 && strings.Contains(message, "%") {
		text = fmt.Sprintf(message, vars...)
	}

	logger.log(eventLevel, severity, GetTagList(ctx), text)
}

func (logger *Logger) log(eventLevel int, severity string, tags []string, message string) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()

	if eventLevel > logger.PrintLevel && severity != global.ErrorLog {
		return
	}

	logger.queue = append(logger.queue, Entry{
		Timestamp: time.Now(),
		Tags:      tags,
		Severity:  severity,
		Message:   message,
	})
	logger.cond.Signal()
}
