package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/openmemo/memosync/app/cfg"
	"github.com/openmemo/memosync/app/config"
	"github.com/openmemo/memosync/app/database"
	"github.com/openmemo/memosync/app/memory"
	"github.com/openmemo/memosync/app/notion"
	"github.com/openmemo/memosync/app/sync"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)
	slog.Info("Starting memosync", "version", appCfg.Version, "workspace", appCfg.Workspace)

	// A missing credential is a fatal startup condition, not a per-entry error.
	token, err := readToken(appCfg.NotionKeyPath)
	if err != nil {
		slog.Error("Notion API key not available", "path", appCfg.NotionKeyPath, "error", err)
		os.Exit(1)
	}

	taxonomies, err := config.LoadTaxonomies(appCfg.TaxonomyPath)
	if err != nil {
		slog.Error("Failed to load taxonomies", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(appCfg.CacheDBPath), 0755); err != nil {
		slog.Error("Failed to create cache directory", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.CacheDBPath)
	if err != nil {
		slog.Error("Failed to open sync cache", "path", appCfg.CacheDBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to migrate sync cache", "error", err)
		os.Exit(1)
	}
	slog.Debug("Sync cache ready", "migration_version", migrationVersion, "dirty", dirty)

	pageRepo := database.NewPageRepository(db)
	logLastRun(pageRepo)

	orchestrator := sync.NewOrchestrator(
		memory.NewExtractor(appCfg.MemoryFile, appCfg.MemoryDir),
		memory.NewClassifier(taxonomies),
		notion.NewConverter(),
		notion.NewClient(token, appCfg.DatabaseID),
		pageRepo,
		sync.NewLog(appCfg.SyncLogPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := orchestrator.Run(ctx, sync.Options{
		DaysBack: appCfg.DaysBack,
		Limit:    appCfg.Limit,
		DryRun:   appCfg.DryRun,
	})
	if err != nil {
		slog.Error("Sync aborted", "error", err,
			"created", stats.Created, "updated", stats.Updated, "failed", stats.Failed)
		os.Exit(1)
	}
}

func logLastRun(pageRepo database.PageRepository) {
	last, err := pageRepo.GetLastRun()
	if err != nil {
		slog.Warn("Failed to read run history", "error", err)
		return
	}
	if last == nil {
		return
	}

	count, err := pageRepo.GetPageCount()
	if err != nil {
		slog.Warn("Failed to count cached pages", "error", err)
	}

	slog.Info("Previous sync run", "finished_at", last.FinishedAt,
		"created", last.Created, "updated", last.Updated, "failed", last.Failed,
		"dry_run", last.DryRun, "cached_pages", count)
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("credential file %s is empty", path)
	}

	return token, nil
}
