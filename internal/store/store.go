// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the review corpus: citations, the screening
// criteria, and screening decisions, in a SQLite database with a
// full-text index over titles and abstracts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/screening-engine/pkg/types"
)

const dbFile = "screening.db"

// Store manages the review SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the review database at DataDir/screening.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS citations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			abstract TEXT,
			year INTEGER,
			journal TEXT,
			doi TEXT,
			format TEXT,
			pmid TEXT,
			raw TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_doi ON citations(doi)`,
		`CREATE TABLE IF NOT EXISTS criteria (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			citation_id TEXT NOT NULL REFERENCES citations(id),
			verdict TEXT NOT NULL,
			rationale TEXT,
			matched_criteria TEXT,
			confidence TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_citation_id ON decisions(citation_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='citations_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE citations_fts USING fts5(title, abstract, content=citations, content_rowid=rowid)`,
			`CREATE TRIGGER citations_ai AFTER INSERT ON citations BEGIN
				INSERT INTO citations_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER citations_ad AFTER DELETE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER citations_au AFTER UPDATE ON citations BEGIN
				INSERT INTO citations_fts(citations_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO citations_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// UpsertSummary holds counts from a citation import run.
type UpsertSummary struct {
	Inserted int
	Existing int
}

// Total returns the number of citations processed.
func (s UpsertSummary) Total() int {
	return s.Inserted + s.Existing
}

// UpsertCitations stores a batch of citations. Identity is content
// derived, so a citation whose ID is already present is identical
// content and left untouched; re-importing a file is a no-op beyond
// the counts.
func (s *Store) UpsertCitations(ctx context.Context, citations []types.Citation) (UpsertSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpsertSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO citations (id, title, authors, abstract, year, journal, doi, format, pmid, raw)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return UpsertSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary UpsertSummary
	for _, c := range citations {
		authorsJSON, _ := json.Marshal(c.Authors)
		rawJSON, _ := json.Marshal(c.Raw)
		res, err := stmt.ExecContext(ctx,
			c.ID, c.Title, string(authorsJSON), c.Abstract, c.Year,
			c.Journal, c.DOI, string(c.Format), pmidOf(c), string(rawJSON),
		)
		if err != nil {
			return UpsertSummary{}, fmt.Errorf("inserting citation %s: %w", c.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return UpsertSummary{}, fmt.Errorf("inserting citation %s: %w", c.ID, err)
		}
		if n > 0 {
			summary.Inserted++
		} else {
			summary.Existing++
		}
	}

	if err := tx.Commit(); err != nil {
		return UpsertSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// pmidOf pulls the PubMed identifier out of the raw source fields; the
// MEDLINE and PubMed XML parsers record it under different keys.
func pmidOf(c types.Citation) string {
	for _, key := range []string{"PMID", "pmid"} {
		if vs := c.Raw[key]; len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}

// ListCitations returns every stored citation ordered by ID. A limit
// of zero means no limit.
func (s *Store) ListCitations(ctx context.Context, limit int) ([]types.Citation, error) {
	q := `SELECT id, title, authors, abstract, year, journal, doi, format, raw
		FROM citations ORDER BY id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var citations []types.Citation
	for rows.Next() {
		c, err := scanCitation(rows)
		if err != nil {
			return nil, err
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

// GetCitation returns one citation by ID, or sql.ErrNoRows wrapped in
// a descriptive error when it does not exist.
func (s *Store) GetCitation(ctx context.Context, id string) (types.Citation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, authors, abstract, year, journal, doi, format, raw
		 FROM citations WHERE id = ?`, id)
	c, err := scanCitation(row)
	if err == sql.ErrNoRows {
		return types.Citation{}, fmt.Errorf("citation %s not found: %w", id, err)
	}
	return c, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCitation(row rowScanner) (types.Citation, error) {
	var (
		c           types.Citation
		authorsJSON sql.NullString
		rawJSON     sql.NullString
		format      string
	)
	err := row.Scan(&c.ID, &c.Title, &authorsJSON, &c.Abstract, &c.Year,
		&c.Journal, &c.DOI, &format, &rawJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Citation{}, err
		}
		return types.Citation{}, fmt.Errorf("scanning citation: %w", err)
	}
	c.Format = types.FormatKind(format)
	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &c.Authors)
	}
	if rawJSON.Valid {
		json.Unmarshal([]byte(rawJSON.String), &c.Raw)
	}
	return c, nil
}
