package sync

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLog_Record_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync-log.md")
	log := NewLog(path)

	log.Record(ActionCreated, "First entry (page: page-1)")
	log.Record(ActionUpdated, "Second entry (page: page-2)")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "- ") {
		t.Errorf("Expected list-item prefix, got '%s'", lines[0])
	}
	if !strings.Contains(lines[0], ActionCreated+" - First entry (page: page-1)") {
		t.Errorf("Expected created record, got '%s'", lines[0])
	}
	if !strings.Contains(lines[1], ActionUpdated) {
		t.Errorf("Expected updated record, got '%s'", lines[1])
	}
}

func TestLog_Record_PreservesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync-log.md")
	if err := os.WriteFile(path, []byte("- old line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	log := NewLog(path)
	log.Record(ActionDryRun, "Would create: New entry")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "- old line\n") {
		t.Errorf("Expected existing content preserved, got '%s'", content)
	}
	if !strings.Contains(content, "Would create: New entry") {
		t.Errorf("Expected new record appended, got '%s'", content)
	}
}

func TestLog_Record_UnwritablePathDoesNotPanic(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "missing-dir", "sync-log.md"))

	// Must not panic; write failures are reported and dropped.
	log.Record(ActionCreateFailed, "Doomed entry")
}
