package database

import (
	"database/sql"
	"fmt"
)

var _ PageRepository = (*pageRepository)(nil)

type pageRepository struct {
	db *DB
}

// NewPageRepository creates a page repository over the sync cache.
func NewPageRepository(db *DB) PageRepository {
	return &pageRepository{db: db}
}

// GetPageID returns the cached page ID for a source file, or an empty
// string when the file has not been synced before.
func (r *pageRepository) GetPageID(sourceFile string) (string, error) {
	var pageID string
	err := r.db.QueryRow(`
		SELECT page_id FROM synced_pages WHERE source_file = ?
	`, sourceFile).Scan(&pageID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up page ID: %w", err)
	}

	return pageID, nil
}

// SavePageID upserts the source file to page ID mapping.
func (r *pageRepository) SavePageID(sourceFile, pageID string) error {
	_, err := r.db.Exec(`
		INSERT INTO synced_pages (source_file, page_id)
		VALUES (?, ?)
		ON CONFLICT (source_file) DO UPDATE SET
			page_id = excluded.page_id,
			updated_at = CURRENT_TIMESTAMP
	`, sourceFile, pageID)
	if err != nil {
		return fmt.Errorf("failed to save page ID: %w", err)
	}

	return nil
}

// DeletePageID drops a cached mapping, forcing a remote lookup next run.
func (r *pageRepository) DeletePageID(sourceFile string) error {
	_, err := r.db.Exec(`DELETE FROM synced_pages WHERE source_file = ?`, sourceFile)
	if err != nil {
		return fmt.Errorf("failed to delete page ID: %w", err)
	}

	return nil
}

// GetPageCount returns the number of cached mappings.
func (r *pageRepository) GetPageCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM synced_pages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}

	return count, nil
}

// RecordRun appends one row to the run history.
func (r *pageRepository) RecordRun(run SyncRun) error {
	_, err := r.db.Exec(`
		INSERT INTO sync_runs (
			started_at, finished_at,
			created_count, updated_count, failed_count, planned_count, dry_run
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt, run.FinishedAt, run.Created, run.Updated, run.Failed, run.Planned, run.DryRun)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// GetLastRun returns the most recent run, or nil when none is recorded.
func (r *pageRepository) GetLastRun() (*SyncRun, error) {
	var run SyncRun
	err := r.db.QueryRow(`
		SELECT id, started_at, finished_at,
		       created_count, updated_count, failed_count, planned_count, dry_run
		FROM sync_runs
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.Created, &run.Updated, &run.Failed, &run.Planned, &run.DryRun)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return &run, nil
}
