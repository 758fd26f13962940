// Package store persists a built definition index to SQLite so the CLI
// can answer queries without re-parsing the program.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite data access layer for the definition dump.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	_, err := s.db.Exec(schemaDDL)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id              INTEGER PRIMARY KEY,
  path            TEXT NOT NULL UNIQUE,
  is_extern       BOOLEAN NOT NULL DEFAULT FALSE,
  hash            TEXT,
  last_indexed    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS definitions (
  id              INTEGER PRIMARY KEY,
  file_id         INTEGER NOT NULL REFERENCES files(id),
  name            TEXT NOT NULL,
  kind            TEXT NOT NULL,
  is_extern       BOOLEAN NOT NULL DEFAULT FALSE,
  in_global_scope BOOLEAN NOT NULL DEFAULT FALSE,
  line            INTEGER,
  col             INTEGER
);

CREATE INDEX IF NOT EXISTS idx_definitions_name ON definitions(name);
CREATE INDEX IF NOT EXISTS idx_definitions_file ON definitions(file_id);

CREATE TABLE IF NOT EXISTS metadata (
  key             TEXT PRIMARY KEY,
  value           TEXT
);
`

// File is one indexed input file.
type File struct {
	ID          int64
	Path        string
	IsExtern    bool
	Hash        string
	LastIndexed time.Time
}

// Definition is one dumped definition site.
type Definition struct {
	ID            int64
	FileID        int64
	Name          string
	Kind          string
	IsExtern      bool
	InGlobalScope bool
	File          string // joined from files.path on reads
	Line          int
	Col           int
}

// InsertFile inserts a file record and returns its ID.
func (s *Store) InsertFile(f *File) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO files (path, is_extern, hash, last_indexed) VALUES (?, ?, ?, ?)`,
		f.Path, f.IsExtern, f.Hash, f.LastIndexed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	return res.LastInsertId()
}

// FileByPath returns the file record for a path, or nil if absent.
func (s *Store) FileByPath(path string) (*File, error) {
	row := s.db.QueryRow(
		`SELECT id, path, is_extern, hash, last_indexed FROM files WHERE path = ?`, path,
	)
	var f File
	err := row.Scan(&f.ID, &f.Path, &f.IsExtern, &f.Hash, &f.LastIndexed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup file: %w", err)
	}
	return &f, nil
}

// AllFiles returns every file record ordered by path.
func (s *Store) AllFiles() ([]*File, error) {
	rows, err := s.db.Query(
		`SELECT id, path, is_extern, hash, last_indexed FROM files ORDER BY path`,
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.Path, &f.IsExtern, &f.Hash, &f.LastIndexed); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

// Clear deletes all files and definitions but keeps metadata.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM definitions`); err != nil {
		return fmt.Errorf("clear definitions: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM files`); err != nil {
		return fmt.Errorf("clear files: %w", err)
	}
	return nil
}

// InsertDefinitions bulk-inserts definition rows in one transaction.
func (s *Store) InsertDefinitions(defs []*Definition) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO definitions (file_id, name, kind, is_extern, in_global_scope, line, col)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range defs {
		if _, err := stmt.Exec(d.FileID, d.Name, d.Kind, d.IsExtern, d.InGlobalScope, d.Line, d.Col); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert definition %s: %w", d.Name, err)
		}
	}
	return tx.Commit()
}

// DefinitionsByName returns the definitions indexed under a simplified
// name, ordered by file, line, col.
func (s *Store) DefinitionsByName(name string) ([]*Definition, error) {
	return s.queryDefinitions(
		`SELECT d.id, d.file_id, d.name, d.kind, d.is_extern, d.in_global_scope, f.path, d.line, d.col
		 FROM definitions d JOIN files f ON f.id = d.file_id
		 WHERE d.name = ?
		 ORDER BY f.path, d.line, d.col`, name)
}

// AllDefinitions returns every definition, ordered by file, line, col,
// name for stable output.
func (s *Store) AllDefinitions() ([]*Definition, error) {
	return s.queryDefinitions(
		`SELECT d.id, d.file_id, d.name, d.kind, d.is_extern, d.in_global_scope, f.path, d.line, d.col
		 FROM definitions d JOIN files f ON f.id = d.file_id
		 ORDER BY f.path, d.line, d.col, d.name`)
}

func (s *Store) queryDefinitions(query string, args ...any) ([]*Definition, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query definitions: %w", err)
	}
	defer rows.Close()

	var defs []*Definition
	for rows.Next() {
		var d Definition
		if err := rows.Scan(&d.ID, &d.FileID, &d.Name, &d.Kind, &d.IsExtern, &d.InGlobalScope, &d.File, &d.Line, &d.Col); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, &d)
	}
	return defs, rows.Err()
}

// GetMetadata returns the value stored under key, or "" if absent.
func (s *Store) GetMetadata(key string) (string, error) {
	row := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key)
	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata upserts a metadata key/value pair.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}
