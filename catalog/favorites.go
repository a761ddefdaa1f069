package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// SuggestionLimit caps the number of suggestions returned for a submission.
const SuggestionLimit = 5

// Suggestion is an artist linked to a favorites submission.
type Suggestion struct {
	ID      string `json:"id"`
	Display string `json:"display"`
	Weight  int    `json:"weight"`
}

const upsertLink = `INSERT INTO artist_link(aid1, aid2, w) VALUES(?, ?, 1)
ON CONFLICT(aid1, aid2) DO UPDATE SET w = w + 1`

const linkedSuggestions = `WITH links(aid, w) AS (
    SELECT aid2, w FROM artist_link WHERE aid1 IN (?, ?, ?)
    UNION ALL
    SELECT aid1, w FROM artist_link WHERE aid2 IN (?, ?, ?)
)
SELECT a.aid, a.display, SUM(l.w) AS s
FROM links l JOIN artist a ON a.aid = l.aid
WHERE l.aid NOT IN (?, ?, ?)
GROUP BY a.aid, a.display
ORDER BY s DESC, a.aid
LIMIT ?`

const popularSuggestions = `WITH links(aid, w) AS (
    SELECT aid1, w FROM artist_link
    UNION ALL
    SELECT aid2, w FROM artist_link
)
SELECT a.aid, a.display, SUM(l.w) AS s
FROM links l JOIN artist a ON a.aid = l.aid
WHERE l.aid NOT IN (?, ?, ?)
GROUP BY a.aid, a.display
ORDER BY s DESC, a.aid
LIMIT ?`

// SubmitFavorites records three favorite artists: every pair weight grows by
// one and unknown artists are added. It returns the artists most strongly
// linked to the three, or the most popular artists overall when none are
// linked yet. The three submitted artists are never suggested.
func (c *Catalog) SubmitFavorites(ctx context.Context, names [3]string) ([]Suggestion, error) {
	displays := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty artist name", ErrInvalidFavorites)
		}
		displays = append(displays, name)
	}
	sort.Strings(displays)
	keys := make([]string, len(displays))
	for i, d := range displays {
		keys[i] = ArtistKey(d)
		for j := 0; j < i; j++ {
			if keys[j] == keys[i] {
				return nil, fmt.Errorf("%w: %q and %q are the same artist", ErrInvalidFavorites, displays[j], d)
			}
		}
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, pair := range [][2]int{{0, 1}, {1, 2}, {0, 2}} {
		a, b := keys[pair[0]], keys[pair[1]]
		if a > b {
			a, b = b, a
		}
		if _, err := tx.ExecContext(ctx, upsertLink, a, b); err != nil {
			return nil, fmt.Errorf("catalog: link %s/%s: %w", a, b, err)
		}
	}
	for i, key := range keys {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO artist(aid, display) VALUES(?, ?)`, key, displays[i]); err != nil {
			return nil, fmt.Errorf("catalog: add artist %s: %w", key, err)
		}
	}

	suggestions, err := querySuggestions(ctx, tx, linkedSuggestions,
		keys[0], keys[1], keys[2], keys[0], keys[1], keys[2], keys[0], keys[1], keys[2], SuggestionLimit)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		if suggestions, err = querySuggestions(ctx, tx, popularSuggestions, keys[0], keys[1], keys[2], SuggestionLimit); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func querySuggestions(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]Suggestion, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: suggestions: %w", err)
	}
	defer rows.Close()
	var out []Suggestion
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.Display, &s.Weight); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
