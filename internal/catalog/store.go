package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/folioworks/folio/internal/db"
)

// Store manages persistence of artifacts.
type Store struct {
	db *db.DB
}

// NewStore creates a new catalog store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

const upsertArtifact = `INSERT INTO artifacts (key, title, overview, bullets, readme_path, position, updated_at)
	 VALUES (?, ?, ?, ?, ?, ?, ?)
	 ON CONFLICT(key) DO UPDATE SET
	   title = excluded.title,
	   overview = excluded.overview,
	   bullets = excluded.bullets,
	   readme_path = excluded.readme_path,
	   position = excluded.position,
	   updated_at = excluded.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, ex execer, a *Artifact) error {
	if a.Bullets == nil {
		a.Bullets = []string{}
	}
	bullets, err := json.Marshal(a.Bullets)
	if err != nil {
		return fmt.Errorf("encoding bullets: %w", err)
	}
	a.UpdatedAt = time.Now().UTC()

	_, err = ex.ExecContext(ctx, upsertArtifact,
		a.Key, a.Title, a.Overview, string(bullets), a.ReadmePath, a.Position, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting artifact %s: %w", a.Key, err)
	}
	return nil
}

// Upsert creates or replaces an artifact.
func (s *Store) Upsert(ctx context.Context, a Artifact) (*Artifact, error) {
	if a.Key == "" {
		return nil, fmt.Errorf("artifact key is required")
	}
	if err := upsert(ctx, s.db, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Seed replaces the whole catalog with items in one transaction. The slice
// order becomes the display order.
func (s *Store) Seed(ctx context.Context, items []Artifact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artifacts`); err != nil {
		return fmt.Errorf("clearing artifacts: %w", err)
	}
	for i := range items {
		a := items[i]
		a.Position = i
		if a.Key == "" {
			return fmt.Errorf("artifact %d: key is required", i)
		}
		if err := upsert(ctx, tx, &a); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

// Get retrieves an artifact by key. It returns nil, nil when the key is
// unknown.
func (s *Store) Get(ctx context.Context, key string) (*Artifact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, title, overview, bullets, readme_path, position, updated_at
		 FROM artifacts WHERE key = ?`, key,
	)
	a, err := scanArtifact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting artifact: %w", err)
	}
	return a, nil
}

// List returns all artifacts in display order.
func (s *Store) List(ctx context.Context) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, title, overview, bullets, readme_path, position, updated_at
		 FROM artifacts ORDER BY position, key`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning artifact: %w", err)
		}
		artifacts = append(artifacts, *a)
	}
	return artifacts, rows.Err()
}

// Delete removes an artifact.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE key = ?`, key)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(sc scanner) (*Artifact, error) {
	var a Artifact
	var bullets string
	if err := sc.Scan(&a.Key, &a.Title, &a.Overview, &bullets, &a.ReadmePath, &a.Position, &a.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bullets), &a.Bullets); err != nil {
		return nil, fmt.Errorf("decoding bullets for %s: %w", a.Key, err)
	}
	return &a, nil
}
