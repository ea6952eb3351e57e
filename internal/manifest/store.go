// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists the form field inventory of generated artifacts
// in a SQLite database, so downstream tooling that reads filled PDFs can
// address every field by name without re-rendering anything.
// See docs/ARCHITECTURE.md § Field Manifest.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/review-forms/pkg/types"
)

const dbFile = "fields.db"

// Store manages the field manifest SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the manifest database at dir/fields.db. It creates
// the schema if it does not exist.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
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
		`CREATE TABLE IF NOT EXISTS artifacts (
			name TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			program TEXT NOT NULL DEFAULT '',
			year TEXT NOT NULL DEFAULT '',
			pdf_path TEXT,
			status TEXT NOT NULL,
			field_count INTEGER NOT NULL,
			generated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fields (
			artifact TEXT NOT NULL REFERENCES artifacts(name) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			prompt TEXT,
			holder TEXT,
			PRIMARY KEY (artifact, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fields_name ON fields(name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one artifact's outcome and field inventory, replacing any
// earlier run's rows for the same artifact.
func (s *Store) Record(ctx context.Context, rec types.ArtifactRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fields WHERE artifact = ?`, rec.Name); err != nil {
		return fmt.Errorf("deleting old fields: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO artifacts (name, source, program, year, pdf_path, status, field_count, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			source=excluded.source, program=excluded.program, year=excluded.year,
			pdf_path=excluded.pdf_path, status=excluded.status,
			field_count=excluded.field_count, generated_at=excluded.generated_at`,
		rec.Name, rec.Source, rec.Program, rec.Year, rec.PDFPath, string(rec.Status),
		len(rec.Fields), rec.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting artifact: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fields (artifact, position, name, kind, prompt, holder)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range rec.Fields {
		if _, err := stmt.ExecContext(ctx,
			rec.Name, i+1, f.Name, string(f.Kind), f.Prompt, string(f.Holder),
		); err != nil {
			return fmt.Errorf("inserting field %s: %w", f.Name, err)
		}
	}

	return tx.Commit()
}

// RecordAll stores every record from one generation run.
func (s *Store) RecordAll(ctx context.Context, recs []types.ArtifactRecord) error {
	for _, rec := range recs {
		if err := s.Record(ctx, rec); err != nil {
			return fmt.Errorf("recording %s: %w", rec.Name, err)
		}
	}
	return nil
}

// Artifacts returns every stored artifact in name order, field inventories
// included.
func (s *Store) Artifacts(ctx context.Context) ([]types.ArtifactRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, source, program, year, pdf_path, status, generated_at FROM artifacts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	var recs []types.ArtifactRecord
	for rows.Next() {
		var (
			rec         types.ArtifactRecord
			pdfPath     sql.NullString
			status      string
			generatedAt string
		)
		if err := rows.Scan(&rec.Name, &rec.Source, &rec.Program, &rec.Year, &pdfPath, &status, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		if pdfPath.Valid {
			rec.PDFPath = pdfPath.String
		}
		rec.Status = types.ArtifactStatus(status)
		if ts, err := time.Parse(time.RFC3339, generatedAt); err == nil {
			rec.GeneratedAt = ts
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		fields, err := s.Fields(ctx, recs[i].Name)
		if err != nil {
			return nil, err
		}
		recs[i].Fields = fields
	}
	return recs, nil
}

// Fields returns one artifact's field inventory in document order.
func (s *Store) Fields(ctx context.Context, artifact string) ([]types.FormField, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, kind, prompt, holder FROM fields WHERE artifact = ? ORDER BY position`,
		artifact)
	if err != nil {
		return nil, fmt.Errorf("querying fields for %s: %w", artifact, err)
	}
	defer rows.Close()

	var fields []types.FormField
	for rows.Next() {
		var (
			f      types.FormField
			kind   string
			prompt sql.NullString
			holder sql.NullString
		)
		if err := rows.Scan(&f.Name, &kind, &prompt, &holder); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		f.Kind = types.FieldKind(kind)
		if prompt.Valid {
			f.Prompt = prompt.String
		}
		if holder.Valid {
			f.Holder = types.Role(holder.String)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
