// Package jobstore records batch conversions and their per-file outcomes in
// SQLite.
package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hsnony97-cyber/Load-Ext/internal/batch"
)

var ErrNotFound = errors.New("jobstore: batch not found")

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	format TEXT NOT NULL,
	output_dir TEXT NOT NULL,
	workers INTEGER NOT NULL,
	dry_run INTEGER NOT NULL,
	inputs TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL REFERENCES batches(id),
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL,
	tables INTEGER NOT NULL,
	records INTEGER NOT NULL,
	domains INTEGER NOT NULL,
	skipped TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS files_batch ON files(batch_id);
`

// Store is a SQLite backed batch.Recorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ batch.Recorder = (*Store)(nil)

// Batch is one recorded batch run.
type Batch struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Format    string    `json:"format"`
	OutputDir string    `json:"output_dir"`
	Workers   int       `json:"workers"`
	DryRun    bool      `json:"dry_run"`
	Inputs    []string  `json:"inputs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Files     []File    `json:"files,omitempty"`
}

// File is the recorded outcome of one input.
type File struct {
	Input      string         `json:"input"`
	Output     string         `json:"output,omitempty"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Tables     int            `json:"tables"`
	Records    int            `json:"records"`
	Domains    int            `json:"domains"`
	Skipped    map[string]int `json:"skipped,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Open opens (creating if needed) the job database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// Workers record concurrently; SQLite takes one writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("jobstore: create schema: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) StartBatch(ctx context.Context, id string, opts batch.Options) error {
	inputs, err := json.Marshal(opts.Inputs)
	if err != nil {
		return err
	}
	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO batches (id, status, format, output_dir, workers, dry_run, inputs, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, batch.BatchRunning, opts.Format, opts.OutputDir, opts.Workers, opts.DryRun, string(inputs), now, now)
	return err
}

func (s *Store) RecordFile(ctx context.Context, id string, r batch.FileResult) error {
	msg := ""
	if r.Err != nil {
		msg = r.Err.Error()
	}
	skipped, err := json.Marshal(r.Skipped)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO files (batch_id, input, output, status, error, tables, records, domains, skipped, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Input, r.Output, string(r.Status), msg, r.Tables, r.Records, r.Domains, string(skipped),
		r.Duration.Milliseconds(), s.now())
	return err
}

func (s *Store) FinishBatch(ctx context.Context, id string, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE batches SET status = ?, updated_at = ? WHERE id = ?`, status, s.now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

const batchColumns = `id, status, format, output_dir, workers, dry_run, inputs, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBatch(row scanner) (Batch, error) {
	var (
		b      Batch
		inputs string
	)
	if err := row.Scan(&b.ID, &b.Status, &b.Format, &b.OutputDir, &b.Workers, &b.DryRun, &inputs, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Batch{}, err
	}
	if err := json.Unmarshal([]byte(inputs), &b.Inputs); err != nil {
		return Batch{}, fmt.Errorf("jobstore: batch %s inputs: %w", b.ID, err)
	}
	return b, nil
}

// Get returns a batch with its file outcomes in record order.
func (s *Store) Get(ctx context.Context, id string) (Batch, error) {
	b, err := scanBatch(s.db.QueryRowContext(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Batch{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Batch{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, status, error, tables, records, domains, skipped, duration_ms, created_at
		 FROM files WHERE batch_id = ? ORDER BY id`, id)
	if err != nil {
		return Batch{}, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			f       File
			skipped string
		)
		if err := rows.Scan(&f.Input, &f.Output, &f.Status, &f.Error, &f.Tables, &f.Records, &f.Domains, &skipped, &f.DurationMS, &f.CreatedAt); err != nil {
			return Batch{}, err
		}
		if err := json.Unmarshal([]byte(skipped), &f.Skipped); err != nil {
			return Batch{}, fmt.Errorf("jobstore: batch %s skipped: %w", id, err)
		}
		b.Files = append(b.Files, f)
	}
	return b, rows.Err()
}

// List returns the most recent batches, newest first, without file outcomes.
func (s *Store) List(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
