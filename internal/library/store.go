// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists fetched records in a local SQLite database
// with a full-text index over titles and abstracts.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-scout/pkg/types"
)

// Saved is a library entry: the fetched record plus local state.
type Saved struct {
	types.Record
	Read    bool
	SavedAt time.Time
}

// Stats summarizes the library contents.
type Stats struct {
	Total  int
	Unread int
}

// Store manages the library SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the library database at cfg.Path, creating the
// schema when missing.
func Open(cfg types.LibraryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			versioned_id TEXT,
			title TEXT,
			authors TEXT,
			abstract TEXT,
			published TEXT,
			updated TEXT,
			primary_category TEXT,
			categories TEXT,
			doi TEXT,
			journal_ref TEXT,
			comment TEXT,
			arxiv_url TEXT,
			pdf_url TEXT,
			read INTEGER NOT NULL DEFAULT 0,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_read ON papers(read)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, abstract, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO papers_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
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

// Save inserts records that are not yet in the library and returns the
// number inserted. Records already present are left untouched so local
// read state survives repeated saves.
func (s *Store) Save(ctx context.Context, records []types.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, r := range records {
		if r.ID == "" {
			continue
		}

		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM papers WHERE id = ?`, r.ID,
		).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("checking paper %s: %w", r.ID, err)
		}
		if exists > 0 {
			continue
		}

		authors, err := json.Marshal(r.Authors)
		if err != nil {
			return 0, fmt.Errorf("encoding authors for %s: %w", r.ID, err)
		}
		categories, err := json.Marshal(r.Categories)
		if err != nil {
			return 0, fmt.Errorf("encoding categories for %s: %w", r.ID, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO papers (id, versioned_id, title, authors, abstract,
				published, updated, primary_category, categories,
				doi, journal_ref, comment, arxiv_url, pdf_url, saved_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.VersionedID, r.Title, string(authors), r.Abstract,
			r.Published, r.Updated, r.PrimaryCategory, string(categories),
			r.DOI, r.JournalRef, r.Comment, r.ArxivURL, r.PDFURL,
			time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", r.ID, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, nil
}

const savedColumns = `id, versioned_id, title, authors, abstract,
	published, updated, primary_category, categories,
	doi, journal_ref, comment, arxiv_url, pdf_url, read, saved_at`

// Get returns the saved entry for id, or nil when absent.
func (s *Store) Get(ctx context.Context, id string) (*Saved, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+savedColumns+` FROM papers WHERE id = ?`, id)
	entry, err := scanSaved(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading paper %s: %w", id, err)
	}
	return entry, nil
}

// List returns saved entries newest first. When unreadOnly is set only
// unread entries are returned. A non-positive limit means no limit.
func (s *Store) List(ctx context.Context, unreadOnly bool, limit int) ([]Saved, error) {
	query := `SELECT ` + savedColumns + ` FROM papers`
	if unreadOnly {
		query += ` WHERE read = 0`
	}
	query += ` ORDER BY saved_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()
	return collectSaved(rows)
}

// SearchText runs a full-text query over titles and abstracts, best
// matches first.
func (s *Store) SearchText(ctx context.Context, query string, limit int) ([]Saved, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+savedColumns+` FROM papers
		 JOIN papers_fts ON papers.rowid = papers_fts.rowid
		 WHERE papers_fts MATCH ?
		 ORDER BY rank LIMIT ?`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching papers: %w", err)
	}
	defer rows.Close()
	return collectSaved(rows)
}

// MarkRead flags a saved paper as read. It reports whether the id was
// present.
func (s *Store) MarkRead(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE papers SET read = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("marking paper %s read: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("marking paper %s read: %w", id, err)
	}
	return n > 0, nil
}

// Stats returns library totals.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*), count(*) FILTER (WHERE read = 0) FROM papers`,
	).Scan(&st.Total, &st.Unread)
	if err != nil {
		return Stats{}, fmt.Errorf("counting papers: %w", err)
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaved(row rowScanner) (*Saved, error) {
	var (
		entry      Saved
		authors    string
		categories string
		savedAt    string
	)
	err := row.Scan(
		&entry.ID, &entry.VersionedID, &entry.Title, &authors, &entry.Abstract,
		&entry.Published, &entry.Updated, &entry.PrimaryCategory, &categories,
		&entry.DOI, &entry.JournalRef, &entry.Comment, &entry.ArxivURL, &entry.PDFURL,
		&entry.Read, &savedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(authors), &entry.Authors); err != nil {
		return nil, fmt.Errorf("decoding authors: %w", err)
	}
	if err := json.Unmarshal([]byte(categories), &entry.Categories); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, savedAt); err == nil {
		entry.SavedAt = t
	}
	return &entry, nil
}

func collectSaved(rows *sql.Rows) ([]Saved, error) {
	var entries []Saved
	for rows.Next() {
		entry, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating paper rows: %w", err)
	}
	return entries, nil
}
