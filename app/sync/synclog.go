package sync

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Sync log actions.
const (
	ActionDryRun       = "DRY-RUN"
	ActionCreated      = "CREATED"
	ActionCreateFailed = "CREATE_FAILED"
	ActionUpdated      = "UPDATED"
	ActionUpdateFailed = "UPDATE_FAILED"
)

// Log appends line-oriented sync records to a markdown file. The file is
// opened and closed per write; there is no persistent handle.
type Log struct {
	path string
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

// Record appends one "- <timestamp>: <action> - <details>" line. Failures
// to write the log never fail the sync; they are reported and dropped.
func (l *Log) Record(action, details string) {
	line := fmt.Sprintf("- %s: %s - %s\n",
		time.Now().Format("2006-01-02 15:04:05"), action, details)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Warn("Failed to open sync log", "path", l.path, "error", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		slog.Warn("Failed to write sync log", "path", l.path, "error", err)
	}
}
