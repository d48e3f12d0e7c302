package database

import (
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS templates (
  url TEXT PRIMARY KEY,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT,
  tags TEXT,            -- JSON array as text
  popularity INTEGER,
  source TEXT,
  media_type TEXT,
  subreddit TEXT,
  upvotes INTEGER,
  author TEXT,
  permalink TEXT,
  thumbnail TEXT,
  fetched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS probes (
  url TEXT PRIMARY KEY,
  reachable INTEGER NOT NULL,
  checked_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS handoff (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  set_at INTEGER NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
