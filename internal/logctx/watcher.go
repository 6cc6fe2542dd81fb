package logctx

import (
	"fmt"
	"io"
	"nodetrace/internal/global"
	"strings"
	"time"
)

const (
	dedupWindow      time.Duration = 5 * time.Second
	dedupMinRepeats  int           = 10
	suppressCooldown time.Duration = time.Minute
)

// Hold main thread exit until the watcher has printed everything
func (logger *Logger) Wait() {
	logger.wg.Wait()
}

// Wake broadcasts to a watcher blocked on the condition variable
func (logger *Logger) Wake() {
	logger.mutex.Lock()
	logger.cond.Broadcast()
	logger.mutex.Unlock()
}

// Starts a go routine that pops entries and writes them to output.
// Stops when logger.Done is closed and the queue is drained.
func StartWatcher(logger *Logger, output io.Writer) {
	logger.wg.Add(1)

	go func() {
		defer logger.wg.Done()

		var dedup dedupState
		for {
			entry, ok := logger.next()
			if !ok {
				return
			}

			if dedup.suppress(entry, output) {
				continue
			}
			fmt.Fprint(output, entry.Format())
		}
	}()
}

// Blocks for the next entry. ok is false once done and empty.
func (logger *Logger) next() (entry Entry, ok bool) {
	logger.mutex.Lock()
	defer logger.mutex.Unlock()

	for len(logger.queue) == 0 {
		select {
		case <-logger.Done:
			return
		default:
			logger.cond.Wait()
		}
	}

	entry = logger.queue[0]
	logger.queue = logger.queue[1:]
	ok = true
	return
}

// Swallows highly repetitive messages, printing a summary at most once per cooldown
func (dedup *dedupState) suppress(entry Entry, output io.Writer) (skip bool) {
	now := time.Now()

	if entry.Message == "" || entry.Message != dedup.lastMsg || now.Sub(entry.Timestamp) > dedupWindow {
		dedup.lastMsg = entry.Message
		dedup.repeatCount = 1
		return
	}

	dedup.repeatCount++
	if dedup.repeatCount >= dedupMinRepeats && now.Sub(dedup.lastSuppressTime) >= suppressCooldown {
		fmt.Fprintf(output, "[%s] [%s] [%s] Suppressed %d repeated messages: %s\n",
			padTimestamp(entry.Timestamp),
			strings.Join(entry.Tags, "/"),
			global.InfoLog,
			dedup.repeatCount,
			strings.TrimRight(dedup.lastMsg, "\n"))

		dedup.lastSuppressTime = now
		dedup.repeatCount = 0
	}
	skip = true
	return
}
