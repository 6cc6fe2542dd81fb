package logctx

import (
	"strings"
	"time"
)

// Fixed width RFC3339 with all nine fractional digits
const paddedTimestampLayout string = "2006-01-02T15:04:05.000000000Z07:00"

// Stringify full entry, always ending in exactly one newline
func (entry Entry) Format() (text string) {
	var parts []string
	if !entry.Timestamp.IsZero() {
		parts = append(parts, "["+padTimestamp(entry.Timestamp)+"]")
	}
	if len(entry.Tags) > 0 {
		parts = append(parts, "["+strings.Join(entry.Tags, "/")+"]")
	}
	if entry.Severity != "" {
		parts = append(parts, "["+entry.Severity+"]")
	}
	if entry.Message != "" {
		parts = append(parts, strings.TrimRight(entry.Message, "\n"))
	}

	if len(parts) == 0 {
		return
	}
	text = strings.Join(parts, " ") + "\n"
	return
}

// Ensures fixed length strings for timestamps
func padTimestamp(timestamp time.Time) (formatted string) {
	formatted = timestamp.Format(paddedTimestampLayout)
	return
}
