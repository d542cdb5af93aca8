package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AggregateFile is the cumulative memory document at the workspace root.
const AggregateFile = "MEMORY.md"

// DailyDir holds the one-per-day memory documents, named YYYY-MM-DD.md.
const DailyDir = "memory"

// Section titles gating entry extraction. Aggregate sections are matched
// case-sensitively, daily sections case-insensitively.
var aggregateSections = []string{"Standard", "Protocol", "Lesson", "Framework"}

var dailySections = []string{
	"research", "finding", "lesson", "decision",
	"insight", "pattern", "key takeaway", "benchmark",
}

// Extractor scans the workspace memory documents and yields discrete
// entries, deduplicated across the aggregate and daily sources.
type Extractor struct {
	memoryFile string
	dailyDir   string
}

// NewExtractor creates an extractor over the aggregate memory file and the
// daily-file directory at the given paths.
func NewExtractor(memoryFile, dailyDir string) *Extractor {
	return &Extractor{memoryFile: memoryFile, dailyDir: dailyDir}
}

// Run extracts entries from MEMORY.md and from the daily files of the last
// daysBack calendar dates (today backwards), in that order, and drops
// duplicates by content hash. The first occurrence of a duplicate wins.
func (e *Extractor) Run(daysBack int) []Entry {
	all := e.parseAggregate()
	all = append(all, e.parseDaily(daysBack)...)

	seen := make(map[string]bool)
	unique := make([]Entry, 0, len(all))
	for _, entry := range all {
		hash := entryHash(entry)
		if seen[hash] {
			continue
		}
		seen[hash] = true
		unique = append(unique, entry)
	}

	slog.Info("Extraction completed", "total", len(all), "unique", len(unique))
	return unique
}

func (e *Extractor) parseAggregate() []Entry {
	data, err := os.ReadFile(e.memoryFile)
	if err != nil {
		slog.Warn("Aggregate memory file not found, skipping", "path", e.memoryFile)
		return nil
	}

	file := filepath.Base(e.memoryFile)
	entries := scanDocument(string(data), recognizeAggregate, func(title, section string) Entry {
		return Entry{
			Title:   title,
			Source:  SourceAggregate,
			File:    file,
			Section: section,
		}
	})

	slog.Debug("Parsed aggregate memory file", "entries", len(entries))
	return entries
}

func (e *Extractor) parseDaily(daysBack int) []Entry {
	var entries []Entry
	today := time.Now()

	for i := 0; i < daysBack; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		file := date + ".md"
		path := filepath.Join(e.dailyDir, file)

		data, err := os.ReadFile(path)
		if err != nil {
			// A missing daily file is expected, not an error.
			continue
		}

		dayEntries := scanDocument(string(data), recognizeDaily, func(title, section string) Entry {
			return Entry{
				Title:   title,
				Source:  SourceDaily,
				File:    file,
				Date:    date,
				Section: section,
			}
		})
		entries = append(entries, dayEntries...)
	}

	slog.Debug("Parsed daily memory files", "entries", len(entries), "days_back", daysBack)
	return entries
}

// scanDocument walks the document lines keeping two pieces of state: the
// current recognized section and the entry being accumulated. A level-2
// heading opens (or suppresses) a section, a level-3 heading inside a
// recognized section opens an entry, everything else is body text.
func scanDocument(content string, recognized func(string) bool, newEntry func(title, section string) Entry) []Entry {
	var entries []Entry
	var section string
	var open *Entry
	var buffer []string

	flush := func() {
		if open == nil {
			return
		}
		open.Body = strings.TrimSpace(strings.Join(buffer, "\n"))
		entries = append(entries, *open)
		open = nil
		buffer = nil
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			title := strings.TrimSpace(line[3:])
			if recognized(title) {
				section = title
			} else {
				section = ""
			}
		case strings.HasPrefix(line, "### ") && section != "":
			flush()
			entry := newEntry(strings.TrimSpace(line[4:]), section)
			open = &entry
		default:
			if open != nil {
				buffer = append(buffer, line)
			}
		}
	}
	flush()

	return entries
}

func recognizeAggregate(title string) bool {
	for _, keyword := range aggregateSections {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

func recognizeDaily(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range dailySections {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// entryHash keys deduplication on title, date and the first 200 characters
// of the body. Two long entries sharing that prefix silently merge; this is
// a known false-merge risk kept for compatibility with existing sync state.
func entryHash(e Entry) string {
	body := []rune(e.Body)
	if len(body) > 200 {
		body = body[:200]
	}

	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", e.Title, e.Date, string(body))))
	return hex.EncodeToString(hash[:])
}
