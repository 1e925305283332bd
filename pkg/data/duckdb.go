package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key   VARCHAR PRIMARY KEY,
	value VARCHAR NOT NULL
)`

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Storage is a flat, synchronous key-value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type Repository struct {
	db *sql.DB
}

var (
	duckMu  sync.Mutex
	duckDBs = map[string]*sql.DB{}
)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// NewDuckDBRepository opens (once per path) the database at path.
func NewDuckDBRepository(path string) (*Repository, error) {
	duckMu.Lock()
	defer duckMu.Unlock()

	db, ok := duckDBs[path]
	if !ok {
		var err error
		db, err = InitDuckDB(path)
		if err != nil {
			return nil, err
		}
		duckDBs[path] = db
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Repository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (r *Repository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying database and forgets it from the per-path cache.
func (r *Repository) Close() error {
	duckMu.Lock()
	for path, db := range duckDBs {
		if db == r.db {
			delete(duckDBs, path)
		}
	}
	duckMu.Unlock()
	return r.db.Close()
}
