package database

import "time"

// SyncRun records the outcome counts of one sync invocation.
type SyncRun struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Created    int
	Updated    int
	Failed     int
	Planned    int
	DryRun     bool
}

// PageRepository caches the mapping from source file identifiers to remote
// page IDs and keeps the run history. The cache is an optimization only:
// a miss falls back to a remote lookup.
type PageRepository interface {
	GetPageID(sourceFile string) (string, error)
	SavePageID(sourceFile, pageID string) error
	DeletePageID(sourceFile string) error
	GetPageCount() (int, error)

	RecordRun(run SyncRun) error
	GetLastRun() (*SyncRun, error)
}
