package cfg

type Cfg struct {
	// Workspace layout
	Workspace   string
	MemoryFile  string
	MemoryDir   string
	SyncLogPath string
	CacheDBPath string

	// Notion configuration
	NotionKeyPath string
	DatabaseID    string

	// Run configuration
	TaxonomyPath string
	DaysBack     int
	Limit        int
	DryRun       bool
	Debug        bool

	// Application metadata
	Version string
}
