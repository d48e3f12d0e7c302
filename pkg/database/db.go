package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path string
}

// DefaultConfig resolves the snapshot database location. The default is
// an in-memory database: the snapshot store is a transient cache, not
// durable storage. Set MEMEHUB_DB_PATH to keep snapshots across runs
// during development.
func DefaultConfig() Config {
	if p := os.Getenv("MEMEHUB_DB_PATH"); p != "" {
		return Config{Path: p}
	}
	return Config{Path: ":memory:"}
}

func (c Config) inMemory() bool {
	return c.Path == ":memory:"
}

func Open(cfg Config) (*sql.DB, error) {
	if !cfg.inMemory() {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a :memory: DSN opens a fresh database per connection; pin to one
	if cfg.inMemory() {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma foreign_keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	return db
}
