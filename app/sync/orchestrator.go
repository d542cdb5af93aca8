package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/openmemo/memosync/app/database"
	"github.com/openmemo/memosync/app/memory"
	"github.com/openmemo/memosync/app/notion"
)

// Bodies at or below this length get no Body property and no block
// children; there is nothing worth a page body for them.
const minBodyLength = 50

// Stats tallies per-entry outcomes for the end-of-run summary.
type Stats struct {
	Created int
	Updated int
	Failed  int
	Planned int
}

// Options controls a single sync run.
type Options struct {
	DaysBack int
	Limit    int
	DryRun   bool
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeUpdated
	outcomeFailed
	outcomePlanned
)

// Orchestrator sequences extraction, classification, block conversion and
// dispatch. Processing is strictly sequential; a failure on one entry is
// isolated, tallied and never aborts the batch.
type Orchestrator struct {
	extractor  *memory.Extractor
	classifier *memory.Classifier
	converter  *notion.Converter
	client     NotionAPI
	pageRepo   database.PageRepository
	log        *Log
}

func NewOrchestrator(extractor *memory.Extractor, classifier *memory.Classifier,
	converter *notion.Converter, client NotionAPI, pageRepo database.PageRepository, log *Log) *Orchestrator {
	return &Orchestrator{
		extractor:  extractor,
		classifier: classifier,
		converter:  converter,
		client:     client,
		pageRepo:   pageRepo,
		log:        log,
	}
}

// Run executes one sync pass. The returned error is non-nil only when the
// context is cancelled mid-batch; per-entry failures end up in Stats.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (Stats, error) {
	entries := o.extractor.Run(opts.DaysBack)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	slog.Info("Starting sync", "entries", len(entries),
		"days_back", opts.DaysBack, "dry_run", opts.DryRun)

	stats := Stats{}
	startedAt := time.Now().UTC()
	var runErr error

	for i, entry := range entries {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			slog.Warn("Sync interrupted", "processed", i, "remaining", len(entries)-i)
			break
		}

		slog.Debug("Processing entry", "index", i+1, "total", len(entries), "title", entry.Title)

		switch o.processEntry(ctx, entry, opts.DryRun) {
		case outcomeCreated:
			stats.Created++
		case outcomeUpdated:
			stats.Updated++
		case outcomePlanned:
			stats.Planned++
		case outcomeFailed:
			stats.Failed++
		}
	}

	o.recordRun(startedAt, opts.DryRun, stats)

	slog.Info("Sync completed", "created", stats.Created, "updated", stats.Updated,
		"failed", stats.Failed, "planned", stats.Planned)

	return stats, runErr
}

func (o *Orchestrator) processEntry(ctx context.Context, entry memory.Entry, dryRun bool) outcome {
	meta := o.classifier.Run(entry)

	pageID, err := o.resolvePageID(ctx, entry.File, dryRun)
	if err != nil {
		slog.Error("Failed to resolve existing page", "title", entry.Title, "error", err)
		return outcomeFailed
	}

	properties := o.buildProperties(entry, meta)

	var children []notion.Block
	if utf8.RuneCountInString(entry.Body) > minBodyLength {
		children = o.converter.Run(entry.Body)
	}

	if dryRun {
		verb := "create"
		if pageID != "" {
			verb = "update"
		}
		o.log.Record(ActionDryRun, fmt.Sprintf("Would %s: %s", verb, entry.Title))
		slog.Info("Dry run", "title", entry.Title, "action", verb,
			"content_type", meta.ContentType, "domain", meta.Domain,
			"certainty", meta.Certainty, "impact", meta.Impact,
			"confidence", meta.ConfidenceScore, "tags", meta.Tags,
			"blocks", len(children))
		return outcomePlanned
	}

	if pageID != "" {
		// Updates touch properties only, never the existing block children.
		err := o.client.UpdatePage(ctx, pageID, properties)
		if err == nil {
			o.log.Record(ActionUpdated, fmt.Sprintf("%s (page: %s)", entry.Title, pageID))
			return outcomeUpdated
		}
		if !notion.IsNotFound(err) {
			o.log.Record(ActionUpdateFailed, entry.Title)
			slog.Error("Update failed", "title", entry.Title, "page_id", pageID, "error", err)
			return outcomeFailed
		}

		// The page was deleted remotely; drop the stale mapping and
		// recreate instead of failing on it forever.
		slog.Warn("Cached page no longer exists, recreating",
			"title", entry.Title, "page_id", pageID)
		if err := o.pageRepo.DeletePageID(entry.File); err != nil {
			slog.Warn("Failed to drop stale page ID", "file", entry.File, "error", err)
		}
	}

	newID, err := o.client.CreatePage(ctx, properties, children)
	if err != nil {
		o.log.Record(ActionCreateFailed, entry.Title)
		slog.Error("Create failed", "title", entry.Title, "error", err)
		return outcomeFailed
	}

	if err := o.pageRepo.SavePageID(entry.File, newID); err != nil {
		slog.Warn("Failed to cache page ID", "file", entry.File, "error", err)
	}
	o.log.Record(ActionCreated, fmt.Sprintf("%s (page: %s)", entry.Title, newID))
	return outcomeCreated
}

// resolvePageID checks the local cache before querying the remote store.
// Remote hits are cached for the next run, except in dry-run mode which
// leaves the cache untouched.
func (o *Orchestrator) resolvePageID(ctx context.Context, sourceFile string, dryRun bool) (string, error) {
	cached, err := o.pageRepo.GetPageID(sourceFile)
	if err != nil {
		slog.Warn("Page cache lookup failed", "file", sourceFile, "error", err)
	} else if cached != "" {
		return cached, nil
	}

	pageID, err := o.client.FindPageBySourceFile(ctx, sourceFile)
	if err != nil {
		return "", err
	}

	if pageID != "" && !dryRun {
		if err := o.pageRepo.SavePageID(sourceFile, pageID); err != nil {
			slog.Warn("Failed to cache page ID", "file", sourceFile, "error", err)
		}
	}

	return pageID, nil
}

func (o *Orchestrator) buildProperties(entry memory.Entry, meta memory.Metadata) notion.Properties {
	properties := notion.Properties{
		notion.PropName:            notion.TitleProperty(truncateTitle(entry.Title)),
		notion.PropContentType:     notion.SelectProperty(meta.ContentType),
		notion.PropDomain:          notion.SelectProperty(meta.Domain),
		notion.PropCertainty:       notion.SelectProperty(meta.Certainty),
		notion.PropSource:          notion.SelectProperty(string(meta.Source)),
		notion.PropConfidenceScore: notion.NumberProperty(float64(meta.ConfidenceScore)),
		notion.PropImpact:          notion.SelectProperty(meta.Impact),
		notion.PropSourceFile:      notion.RichTextProperty(entry.File),
	}

	if len(meta.Tags) > 0 {
		properties[notion.PropTags] = notion.MultiSelectProperty(meta.Tags)
	}

	if utf8.RuneCountInString(entry.Body) > minBodyLength {
		properties[notion.PropBody] = notion.RichTextProperty(
			truncateAtBoundary(entry.Body, notion.MaxTextLength))
	}

	return properties
}

func (o *Orchestrator) recordRun(startedAt time.Time, dryRun bool, stats Stats) {
	run := database.SyncRun{
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Created:    stats.Created,
		Updated:    stats.Updated,
		Failed:     stats.Failed,
		Planned:    stats.Planned,
		DryRun:     dryRun,
	}

	if err := o.pageRepo.RecordRun(run); err != nil {
		slog.Warn("Failed to record sync run", "error", err)
	}
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= notion.MaxTitleLength {
		return title
	}
	return string(runes[:notion.MaxTitleLength])
}
