package catalog

import (
	"context"
	"fmt"

	"github.com/viant/reco/embedding"
	"github.com/viant/reco/vector"
)

// Match is a row returned by NearestSQL.
type Match struct {
	Row      int
	ID       string
	Distance float64
}

// SaveEmbeddings replaces the stored embedding rows. Ids without a catalog
// entry are added with the id as display name.
func (c *Catalog) SaveEmbeddings(ctx context.Context, ids []string, rows [][]float64) error {
	if _, err := embedding.FromRows(ids, rows); err != nil {
		return err
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM artist_embedding`); err != nil {
		return fmt.Errorf("catalog: clear embeddings: %w", err)
	}
	insert, err := tx.PrepareContext(ctx, `INSERT INTO artist_embedding(pos, aid, embedding) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insert.Close()
	artist, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO artist(aid, display) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer artist.Close()

	for i, id := range ids {
		blob, err := vector.EncodeEmbedding(rows[i])
		if err != nil {
			return err
		}
		if _, err := insert.ExecContext(ctx, i, id, blob); err != nil {
			return fmt.Errorf("catalog: save embedding %s: %w", id, err)
		}
		if _, err := artist.ExecContext(ctx, id, id); err != nil {
			return fmt.Errorf("catalog: add artist %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// LoadEmbeddings reads the stored rows in row order. Failures are reported as
// *embedding.DataLoadError.
func (c *Catalog) LoadEmbeddings(ctx context.Context) (*embedding.Store, error) {
	result, err := c.db.QueryContext(ctx, `SELECT aid, embedding FROM artist_embedding ORDER BY pos`)
	if err != nil {
		return nil, embedding.NewDataLoadError("query catalog", "artist_embedding", err)
	}
	defer result.Close()
	var ids []string
	var rows [][]float64
	for result.Next() {
		var id string
		var blob []byte
		if err := result.Scan(&id, &blob); err != nil {
			return nil, embedding.NewDataLoadError("scan catalog", "artist_embedding", err)
		}
		row, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return nil, embedding.NewDataLoadError("decode catalog", "artist_embedding", fmt.Errorf("artist %s: %w", id, err))
		}
		ids = append(ids, id)
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, embedding.NewDataLoadError("query catalog", "artist_embedding", err)
	}
	return embedding.FromRows(ids, rows)
}

// NearestSQL returns the k stored rows closest to point in raw feature space,
// ordered by (distance, row). It runs entirely in SQL through vec_l2.
func (c *Catalog) NearestSQL(ctx context.Context, point []float64, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	if !vector.Finite(point) {
		return nil, fmt.Errorf("catalog: query point is not finite")
	}
	var dim int
	err := c.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(length(embedding)) / 8, 0) FROM artist_embedding`).Scan(&dim)
	if err != nil {
		return nil, fmt.Errorf("catalog: embedding dimension: %w", err)
	}
	if dim != len(point) {
		return nil, fmt.Errorf("catalog: query has %d values, stored rows have %d", len(point), dim)
	}
	blob, err := vector.EncodeEmbedding(point)
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx, `SELECT pos, aid, vec_l2(embedding, ?) AS d
FROM artist_embedding ORDER BY d, pos LIMIT ?`, blob, k)
	if err != nil {
		return nil, fmt.Errorf("catalog: nearest: %w", err)
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Row, &m.ID, &m.Distance); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
