package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sync cache connection.
type DB struct {
	*sql.DB
}

// NewConnection opens (or creates) the local SQLite sync cache at path.
func NewConnection(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync cache: %w", err)
	}

	// SQLite allows a single writer; serializing connections avoids
	// SQLITE_BUSY on the repository upserts.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sync cache: %w", err)
	}

	return &DB{db}, nil
}
