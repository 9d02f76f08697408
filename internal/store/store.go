// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists batch runs and their section records in SQLite
// so outlines can be queried after the run.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docoutline/pkg/types"
)

// ErrNoRuns is returned by Query when no run has been saved yet.
var ErrNoRuns = errors.New("no runs stored")

const defaultMaxResults = 20

// Store manages the section database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one stored batch run.
type Run struct {
	ID          string   `json:"id" yaml:"id"`
	GeneratedAt string   `json:"generated_at" yaml:"generated_at"`
	Persona     string   `json:"persona" yaml:"persona"`
	Task        string   `json:"task" yaml:"task"`
	Documents   []string `json:"documents" yaml:"documents"`
	Sections    int      `json:"sections" yaml:"sections"`
}

// Open opens or creates the database at cfg.Path and creates the schema if
// it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
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
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			generated_at TEXT NOT NULL,
			persona TEXT,
			task TEXT,
			documents TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			document TEXT NOT NULL,
			page INTEGER NOT NULL,
			title TEXT NOT NULL,
			importance INTEGER NOT NULL,
			excerpt TEXT,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun stores a result and its sections under a new run ID, in one
// transaction, and returns the ID.
func (s *Store) SaveRun(ctx context.Context, result types.Result, sections []types.Section) (string, error) {
	id := uuid.NewString()

	docs, err := json.Marshal(result.Metadata.InputDocuments)
	if err != nil {
		return "", fmt.Errorf("marshaling documents: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, generated_at, persona, task, documents) VALUES (?, ?, ?, ?, ?)`,
		id, result.Metadata.ProcessingTimestamp, result.Metadata.Persona, result.Metadata.JobToBeDone, string(docs),
	); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (run_id, seq, document, page, title, importance, excerpt) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing section insert: %w", err)
	}
	defer stmt.Close()

	for i, sec := range sections {
		if _, err := stmt.ExecContext(ctx, id, i, sec.Document, sec.Page, sec.Title, sec.Rank(), sec.Excerpt); err != nil {
			return "", fmt.Errorf("inserting section %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.generated_at, r.persona, r.task, r.documents,
			(SELECT count(*) FROM sections WHERE run_id = r.id)
		FROM runs r ORDER BY r.seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r    Run
			docs string
		)
		if err := rows.Scan(&r.ID, &r.GeneratedAt, &r.Persona, &r.Task, &docs, &r.Sections); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(docs), &r.Documents); err != nil {
			return nil, fmt.Errorf("decoding documents of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// QueryOptions filters stored sections.
type QueryOptions struct {
	// Text matches titles or excerpts containing it, case-insensitively.
	Text string

	// Document restricts results to one source file.
	Document string

	// MaxRank keeps sections with importance rank <= MaxRank. Zero keeps all.
	MaxRank int

	// RunID selects a run. Empty selects the most recent run.
	RunID string

	// Limit caps the result count. Zero uses the store default.
	Limit int
}

// QueryResult is a stored section with its run and position.
type QueryResult struct {
	RunID          string `json:"run_id" yaml:"run_id"`
	Seq            int    `json:"seq" yaml:"seq"`
	Document       string `json:"document" yaml:"document"`
	PageNumber     int    `json:"page_number" yaml:"page_number"`
	SectionTitle   string `json:"section_title" yaml:"section_title"`
	ImportanceRank int    `json:"importance_rank" yaml:"importance_rank"`
	RefinedText    string `json:"refined_text" yaml:"refined_text"`
}

// Query returns the sections of one run matching opts in output order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	runID := opts.RunID
	if runID == "" {
		err := s.db.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&runID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRuns
		}
		if err != nil {
			return nil, fmt.Errorf("finding latest run: %w", err)
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args = []any{runID}
	)
	qb.WriteString(`SELECT run_id, seq, document, page, title, importance, excerpt
		FROM sections WHERE run_id = ?`)

	if opts.Text != "" {
		qb.WriteString(` AND (title LIKE ? ESCAPE '\' OR excerpt LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(opts.Text) + "%"
		args = append(args, pattern, pattern)
	}
	if opts.Document != "" {
		qb.WriteString(` AND document = ?`)
		args = append(args, opts.Document)
	}
	if opts.MaxRank > 0 {
		qb.WriteString(` AND importance <= ?`)
		args = append(args, opts.MaxRank)
	}
	qb.WriteString(` ORDER BY seq LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying sections: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			r       QueryResult
			excerpt sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.Seq, &r.Document, &r.PageNumber, &r.SectionTitle, &r.ImportanceRank, &excerpt); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		r.RefinedText = excerpt.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// escapeLike escapes the LIKE wildcards in s using backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
