package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"shelfsend/internal/database/migrations"
	"shelfsend/internal/shelf"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements shelf.History using SQLite.
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens the history database at path and migrates it to the
// latest schema. path can be a file path or ":memory:".
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is its own database, and the shutdown hook
	// may write from a different goroutine than the session loop.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Record inserts op and sets op.ID to the new row ID.
func (s *SQLiteHistory) Record(op *shelf.Operation) error {
	res, err := s.db.ExecContext(context.Background(), `
		INSERT INTO operations (session_id, operation, started_at, finished_at, entries, failures)
		VALUES (?, ?, ?, ?, ?, ?)`,
		op.SessionID, op.Operation, op.StartedAt.UTC(), op.FinishedAt.UTC(), op.Entries, op.Failures,
	)
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading operation id: %w", err)
	}
	op.ID = id
	return nil
}

// List returns up to limit operations, newest first. A limit of zero or
// less returns every operation.
func (s *SQLiteHistory) List(limit int) ([]*shelf.Operation, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(context.Background(), `
		SELECT id, session_id, operation, started_at, finished_at, entries, failures
		FROM operations
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*shelf.Operation
	for rows.Next() {
		op := &shelf.Operation{}
		if err := rows.Scan(&op.ID, &op.SessionID, &op.Operation, &op.StartedAt, &op.FinishedAt, &op.Entries, &op.Failures); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}

// CheckSchema reports whether the history file at path is at the latest
// schema version without migrating it. A missing file wraps fs.ErrNotExist.
func CheckSchema(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("history database: %w", err)
	}

	db, err := OpenConnection(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return migrations.CheckDBMigrationStatus(db)
}

// Close closes the database connection.
func (s *SQLiteHistory) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteHistory implements shelf.History interface
var _ shelf.History = (*SQLiteHistory)(nil)
