package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"memehub/pkg/models"
)

// Store keeps the last good catalog snapshot, the per-URL probe cache
// and the one-shot selected-template handoff in sqlite. With the
// default in-memory database this is all transient state; it exists so
// a failed refresh can fall back to stale data instead of an empty
// catalog.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// SaveSnapshot replaces the stored catalog with the given records.
func (s *Store) SaveSnapshot(ctx context.Context, recs []models.TemplateRecord) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM templates`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO templates (url, id, name, category, tags, popularity, source,
		                       media_type, subreddit, upvotes, author, permalink,
		                       thumbnail, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range recs {
		tagsJSON, err := json.Marshal(r.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags for %s: %w", r.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			r.URL, r.ID, r.Name, r.Category, string(tagsJSON), r.Popularity,
			string(r.Source), string(r.Media), r.Subreddit, r.Upvotes,
			r.Author, r.Permalink, r.Thumbnail, now,
		); err != nil {
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored catalog in popularity order.
func (s *Store) LoadSnapshot(ctx context.Context) ([]models.TemplateRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT url, id, name, category, tags, popularity, source, media_type,
		       subreddit, upvotes, author, permalink, thumbnail
		FROM templates
		ORDER BY popularity DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	var out []models.TemplateRecord
	for rows.Next() {
		var (
			r        models.TemplateRecord
			tagsJSON string
			src      string
			media    string
		)
		if err := rows.Scan(&r.URL, &r.ID, &r.Name, &r.Category, &tagsJSON,
			&r.Popularity, &src, &media, &r.Subreddit, &r.Upvotes,
			&r.Author, &r.Permalink, &r.Thumbnail); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}
		r.Source = models.SourceKind(src)
		r.Media = models.MediaKind(media)
		_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}
	return out, nil
}

// ProbeResult reads the cached reachability of a URL. ok is false when
// the URL has never been probed or the entry has expired.
func (s *Store) ProbeResult(ctx context.Context, url string, maxAge time.Duration) (reachable, ok bool) {
	var (
		r         int
		checkedAt int64
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT reachable, checked_at FROM probes WHERE url = ?`, url,
	).Scan(&r, &checkedAt)
	if err != nil {
		return false, false
	}
	if time.Since(time.Unix(checkedAt, 0)) > maxAge {
		return false, false
	}
	return r == 1, true
}

// SetProbeResult records a probe outcome.
func (s *Store) SetProbeResult(ctx context.Context, url string, reachable bool) error {
	r := 0
	if reachable {
		r = 1
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO probes (url, reachable, checked_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET reachable = excluded.reachable,
		                               checked_at = excluded.checked_at
	`, url, r, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert probe: %w", err)
	}
	return nil
}

// SetHandoff stores a value for a one-shot handoff between pages.
func (s *Store) SetHandoff(ctx context.Context, key, value string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO handoff (key, value, set_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, set_at = excluded.set_at
	`, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upsert handoff: %w", err)
	}
	return nil
}

// TakeHandoff reads and clears a handoff value. ok is false when no
// value was set.
func (s *Store) TakeHandoff(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.DB.QueryRowContext(ctx,
		`SELECT value FROM handoff WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("handoff query: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM handoff WHERE key = ?`, key); err != nil {
		return "", false, fmt.Errorf("handoff clear: %w", err)
	}
	return value, true, nil
}
