package catalog

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS artist (
    aid     TEXT PRIMARY KEY,
    display TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS artist_link (
    aid1 TEXT NOT NULL,
    aid2 TEXT NOT NULL,
    w    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (aid1, aid2)
);
CREATE INDEX IF NOT EXISTS artist_link_aid2 ON artist_link(aid2);
CREATE TABLE IF NOT EXISTS artist_embedding (
    pos       INTEGER PRIMARY KEY,
    aid       TEXT NOT NULL UNIQUE,
    embedding BLOB NOT NULL
);
`

// EnsureSchema creates the catalog tables if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
