// Package store persists template records in SQLite. The document blob is
// opaque here: load returns the bytes plus record metadata, save writes
// them back, and the codec owns what the bytes mean.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("template not found")

// Template is one stored template row.
type Template struct {
	ID         string
	Name       string
	Sport      string
	Blob       []byte
	PreviewRef string // reference to a rendered preview image, optional
	UpdatedAt  time.Time
}

// Store wraps the templates database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS templates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	sport       TEXT NOT NULL DEFAULT '',
	blob        BLOB NOT NULL,
	preview_ref TEXT NOT NULL DEFAULT '',
	updated_at  TEXT NOT NULL
);`

// Open opens (creating if needed) the template database at path. A nil
// logger disables logging.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// Single connection: templates are edited one at a time and
	// modernc.org/sqlite serializes writers anyway.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create templates table: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Save upserts t. An empty ID is assigned; UpdatedAt is stamped.
func (s *Store) Save(ctx context.Context, t *Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (id, name, sport, blob, preview_ref, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			sport = excluded.sport,
			blob = excluded.blob,
			preview_ref = excluded.preview_ref,
			updated_at = excluded.updated_at`,
		t.ID, t.Name, t.Sport, t.Blob, t.PreviewRef, t.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save template %s: %w", t.ID, err)
	}
	s.log.Debug("template saved", zap.String("id", t.ID), zap.Int("blobBytes", len(t.Blob)))
	return nil
}

// Load returns the template row with the given id, blob included.
func (s *Store) Load(ctx context.Context, id string) (*Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, sport, blob, preview_ref, updated_at
		FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load template %s: %w", id, err)
	}
	return t, nil
}

// List returns all template rows ordered by most recently updated, blobs
// included.
func (s *Store) List(ctx context.Context) ([]*Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, sport, blob, preview_ref, updated_at
		FROM templates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []*Template
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan template row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Delete removes the template row with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete template %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func scanTemplate(scan func(dest ...any) error) (*Template, error) {
	var t Template
	var updated string
	if err := scan(&t.ID, &t.Name, &t.Sport, &t.Blob, &t.PreviewRef, &updated); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	t.UpdatedAt = ts
	return &t, nil
}
