// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs in a local SQLite database so
// operators can review what was converted, when, and with which backend.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mdgen/pkg/types"
)

const dbFile = "mdgen.db"

// Store manages the conversion-run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at DataDir/mdgen.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			method TEXT NOT NULL,
			source TEXT NOT NULL,
			output_path TEXT,
			bytes INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one conversion run. A missing ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, run types.Run) (types.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, method, source, output_path, bytes, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), string(run.Method), run.Source,
		run.OutputPath, run.Bytes, string(run.Status), run.Error,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// Recent returns up to n runs, newest first. n <= 0 falls back to the
// configured maximum.
func (s *Store) Recent(ctx context.Context, n int) ([]types.Run, error) {
	if n <= 0 {
		n = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, method, source, output_path, bytes, status, error, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var run types.Run
		var kind, method, status, createdAt string
		if err := rows.Scan(&run.ID, &kind, &method, &run.Source,
			&run.OutputPath, &run.Bytes, &status, &run.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Kind = types.InputKind(kind)
		run.Method = types.ExtractionMethod(method)
		run.Status = types.RunStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Report writes a line-per-run listing of the n most recent runs.
func (s *Store) Report(ctx context.Context, w io.Writer, n int) error {
	runs, err := s.Recent(ctx, n)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no conversions recorded")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %-7s %-5s %-9s %s",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Kind, run.Method, run.Status, run.Source)
		if run.Status == types.RunFailed && run.Error != "" {
			line += " (" + run.Error + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "\n%d run(s)\n", len(runs))
	return nil
}
