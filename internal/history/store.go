// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records search runs in a local SQLite database so that
// earlier results can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/job-search/pkg/types"
)

const defaultMaxResults = 20

// timeLayout is fixed-width so that started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one recorded search run.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	Endpoint   string    `json:"endpoint" yaml:"endpoint"`
	SearchText string    `json:"search_text" yaml:"search_text"`
	Locations  []string  `json:"locations" yaml:"locations"`
	PageSize   int       `json:"page_size" yaml:"page_size"`
	Total      int       `json:"total" yaml:"total"`
	Matched    int       `json:"matched" yaml:"matched"`
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
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
			started_at TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			search_text TEXT NOT NULL,
			locations TEXT,
			page_size INTEGER NOT NULL,
			total INTEGER NOT NULL,
			matched INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_titles (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			external_path TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores r and its matched postings in one transaction and returns
// the run ID. A run without an ID is assigned a new UUID.
func (s *Store) Record(ctx context.Context, r types.RunResult) (string, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	var locations any
	if r.Config.Locations != nil {
		data, err := json.Marshal(r.Config.Locations)
		if err != nil {
			return "", fmt.Errorf("encoding locations: %w", err)
		}
		locations = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, endpoint, search_text, locations, page_size, total, matched)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.StartedAt.UTC().Format(timeLayout), r.Config.Endpoint, r.Config.SearchText,
		locations, r.Config.PageSize, len(r.All), len(r.Matched),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_titles (run_id, position, title, external_path) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range r.Matched {
		if _, err := stmt.ExecContext(ctx, id, i, p.Title, p.ExternalPath); err != nil {
			return "", fmt.Errorf("inserting title %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// List returns up to limit runs, most recent first. A limit of 0 or less
// uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, endpoint, search_text, locations, page_size, total, matched
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, endpoint, search_text, locations, page_size, total, matched
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// Titles returns the matched postings of a run in report order.
func (s *Store) Titles(ctx context.Context, runID string) ([]types.JobPosting, error) {
	if _, err := s.Get(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, external_path FROM run_titles WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	postings := []types.JobPosting{}
	for rows.Next() {
		var p types.JobPosting
		var path sql.NullString
		if err := rows.Scan(&p.Title, &path); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		p.ExternalPath = path.String
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		startedAt string
		locations sql.NullString
	)
	if err := sc.Scan(&run.ID, &startedAt, &run.Endpoint, &run.SearchText,
		&locations, &run.PageSize, &run.Total, &run.Matched); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scanning run: %w", err)
	}

	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
	}
	run.StartedAt = t

	if locations.Valid {
		if err := json.Unmarshal([]byte(locations.String), &run.Locations); err != nil {
			return Run{}, fmt.Errorf("decoding locations: %w", err)
		}
	}
	return run, nil
}
