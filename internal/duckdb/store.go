// Package duckdb stores scan runs and their retained variants in DuckDB so
// results can be queried after the report has been written.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for persisting scan results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database path, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS scan_run_id START 1`,
		`CREATE TABLE IF NOT EXISTS scan_runs (
			run_id BIGINT PRIMARY KEY DEFAULT nextval('scan_run_id'),
			source_path VARCHAR,
			source_size BIGINT,
			source_mtime TIMESTAMP,
			record_id VARCHAR,
			sequence_length BIGINT,
			original_protein VARCHAR,
			stop_policy VARCHAR,
			stop_count BIGINT,
			synonymous_count BIGINT,
			duplicate_count BIGINT,
			skipped_count BIGINT,
			created_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS scan_variants (
			run_id BIGINT,
			nt_position BIGINT,
			ref VARCHAR,
			alt VARCHAR,
			codon_position BIGINT,
			codon_change VARCHAR,
			amino_acid_change VARCHAR,
			hgvsp VARCHAR,
			consequence VARCHAR,
			impact VARCHAR,
			protein VARCHAR,
			PRIMARY KEY (run_id, nt_position, alt)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
