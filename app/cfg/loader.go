package cfg

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/openmemo/memosync/app/memory"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Workspace layout
	Workspace   string `long:"workspace" env:"WORKSPACE" default:"./workspace" description:"Workspace directory holding MEMORY.md and memory/"`
	CacheDBPath string `long:"cache-db" env:"CACHE_DB_PATH" description:"Path to the local sync cache database (default: <workspace>/memory/sync-cache.db)"`

	// Notion configuration
	NotionKeyPath string `long:"notion-key-path" env:"NOTION_KEY_PATH" default:"~/.config/notion/api_key" description:"File holding the Notion API token"`
	DatabaseID    string `long:"database-id" env:"NOTION_DATABASE_ID" description:"Notion database ID (required)" required:"true"`

	// Run configuration
	TaxonomyPath string `long:"taxonomy" env:"TAXONOMY_FILE" description:"YAML file overriding the built-in classification taxonomies (optional)"`
	DaysBack     int    `long:"days-back" env:"DAYS_BACK" default:"7" description:"How many daily memory files to scan, counting back from today"`
	Since        string `long:"since" description:"Only sync daily entries since YYYY-MM-DD (overrides --days-back)"`
	Limit        int    `long:"limit" description:"Limit the number of entries to process (0 = no limit)"`
	DryRun       bool   `long:"dry-run" description:"Preview changes without writing to Notion"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	daysBack := raw.DaysBack
	if raw.Since != "" {
		var err error
		daysBack, err = daysBackSince(raw.Since, time.Now())
		if err != nil {
			return nil, err
		}
	}

	memoryDir := filepath.Join(raw.Workspace, memory.DailyDir)

	cfg := &Cfg{
		Workspace:     raw.Workspace,
		MemoryFile:    filepath.Join(raw.Workspace, memory.AggregateFile),
		MemoryDir:     memoryDir,
		SyncLogPath:   filepath.Join(memoryDir, "sync-log.md"),
		CacheDBPath:   cmp.Or(raw.CacheDBPath, filepath.Join(memoryDir, "sync-cache.db")),
		NotionKeyPath: expandHome(raw.NotionKeyPath),
		DatabaseID:    raw.DatabaseID,
		TaxonomyPath:  raw.TaxonomyPath,
		DaysBack:      daysBack,
		Limit:         raw.Limit,
		DryRun:        raw.DryRun,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	return cfg, nil
}

// daysBackSince translates a since date into a lookback window that
// includes both the since date and today. The comparison is between
// calendar dates in now's zone, not raw hour deltas, so the window does
// not shift by a day across timezones.
func daysBackSince(since string, now time.Time) (int, error) {
	date, err := time.ParseInLocation("2006-01-02", since, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid --since date %q, expected YYYY-MM-DD: %w", since, err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Rounding absorbs the off-by-an-hour days around DST transitions.
	days := int(math.Round(today.Sub(date).Hours()/24)) + 1
	if days < 1 {
		days = 1
	}

	return days, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
