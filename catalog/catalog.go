package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/reco/engine"
)

// ErrInvalidFavorites reports a favorites submission with an empty name or
// two names that normalize to the same artist.
var ErrInvalidFavorites = errors.New("catalog: invalid favorites")

// Artist is a known artist.
type Artist struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}

// Catalog is the SQLite-backed artist store.
type Catalog struct {
	db *sql.DB
}

// Open registers the vector SQL functions, opens dsn and ensures the schema.
func Open(ctx context.Context, dsn string) (*Catalog, error) {
	if err := engine.RegisterVectorFunctions(nil); err != nil {
		return nil, fmt.Errorf("catalog: register functions: %w", err)
	}
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", dsn, err)
	}
	c, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// New wraps an open database and ensures the schema exists.
func New(ctx context.Context, db *sql.DB) (*Catalog, error) {
	if db == nil {
		return nil, fmt.Errorf("catalog: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("catalog: ensure schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// Ping checks the database connection.
func (c *Catalog) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

// ArtistKey normalizes a display name into the artist key: lower case with
// spaces removed.
func ArtistKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "")
}

// ListArtists returns every known artist ordered by key.
func (c *Catalog) ListArtists(ctx context.Context) ([]Artist, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT aid, display FROM artist ORDER BY aid`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list artists: %w", err)
	}
	defer rows.Close()
	var out []Artist
	for rows.Next() {
		var a Artist
		if err := rows.Scan(&a.ID, &a.Display); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DisplayNames resolves ids to display names. Unknown ids are absent from the
// returned map.
func (c *Catalog) DisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT aid, display FROM artist WHERE aid IN (` + placeholders(len(ids)) + `)`
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: display names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, display string
		if err := rows.Scan(&id, &display); err != nil {
			return nil, err
		}
		out[id] = display
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
