// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps the history of generation runs in SQLite. Each
// generate invocation records one row per guide with the output path, a
// summary of the assembled document and the digest of the written file.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/opsdocs/pkg/types"
)

const (
	stateDir = ".opsdocs"
	dbFile   = "catalog.db"

	defaultLimit = 20

	// timeFormat has fixed width so stored timestamps sort as text.
	timeFormat = "2006-01-02T15:04:05.000000000Z"
)

// ErrNoRuns is returned by Latest when a guide has never been generated.
var ErrNoRuns = errors.New("no generation runs recorded")

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the catalog location for an output directory.
func DefaultPath(outputDir string) string {
	return filepath.Join(outputDir, stateDir, dbFile)
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch TEXT NOT NULL,
			guide TEXT NOT NULL,
			title TEXT NOT NULL,
			output_path TEXT NOT NULL,
			blocks INTEGER NOT NULL,
			tables INTEGER NOT NULL,
			warnings INTEGER NOT NULL,
			sha256 TEXT NOT NULL,
			export TEXT NOT NULL,
			generated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_guide ON runs(guide, generated_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts run and sets its ID. A zero GeneratedAt is set to now and
// an empty Export status to none.
func (s *Store) Record(ctx context.Context, run *types.GenerationRun) error {
	if run.GeneratedAt.IsZero() {
		run.GeneratedAt = time.Now().UTC()
	}
	if run.Export == "" {
		run.Export = types.ExportNone
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (batch, guide, title, output_path, blocks, tables, warnings, sha256, export, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Batch, run.Guide, run.Title, run.OutputPath, run.Blocks, run.Tables, run.Warnings,
		run.SHA256, string(run.Export), run.GeneratedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", run.Guide, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return nil
}

// SetExport updates the export status of a recorded run.
func (s *Store) SetExport(ctx context.Context, id int64, status types.ExportStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE runs SET export = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating export status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Guide restricts results to one guide.
	Guide string

	// Batch restricts results to the runs of one generate invocation. A
	// prefix of the batch ID is enough.
	Batch string

	// Limit caps the number of runs returned. Zero uses the default of 20.
	Limit int
}

// List returns recorded runs, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.GenerationRun, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, batch, guide, title, output_path, blocks, tables, warnings, sha256, export, generated_at
		FROM runs WHERE 1=1`)
	if opts.Guide != "" {
		qb.WriteString(` AND guide = ?`)
		args = append(args, opts.Guide)
	}
	if opts.Batch != "" {
		qb.WriteString(` AND substr(batch, 1, length(?)) = ?`)
		args = append(args, opts.Batch, opts.Batch)
	}
	qb.WriteString(` ORDER BY generated_at DESC, id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.GenerationRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Latest returns the most recent run for guide, or an error wrapping
// ErrNoRuns.
func (s *Store) Latest(ctx context.Context, guide string) (types.GenerationRun, error) {
	runs, err := s.List(ctx, ListOptions{Guide: guide, Limit: 1})
	if err != nil {
		return types.GenerationRun{}, err
	}
	if len(runs) == 0 {
		return types.GenerationRun{}, fmt.Errorf("%s: %w", guide, ErrNoRuns)
	}
	return runs[0], nil
}

func scanRun(rows *sql.Rows) (types.GenerationRun, error) {
	var (
		run         types.GenerationRun
		export      string
		generatedAt string
	)
	if err := rows.Scan(&run.ID, &run.Batch, &run.Guide, &run.Title, &run.OutputPath,
		&run.Blocks, &run.Tables, &run.Warnings, &run.SHA256, &export, &generatedAt); err != nil {
		return run, fmt.Errorf("scanning run: %w", err)
	}
	run.Export = types.ExportStatus(export)
	t, err := time.Parse(timeFormat, generatedAt)
	if err != nil {
		return run, fmt.Errorf("parsing timestamp of run %d: %w", run.ID, err)
	}
	run.GeneratedAt = t
	return run, nil
}

// FileSHA256 returns the hex SHA-256 digest of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
