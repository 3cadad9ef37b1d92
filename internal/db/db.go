package db

import (
	"database/sql"
	"fmt"

	"github.com/nicolaskremer1/immortalis-blueprint/internal/apperrors"

	_ "modernc.org/sqlite"
)

// Open returns a single-connection handle, so every write in the process is
// serialized through one SQLite connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return db, nil
}
