package embedding

import (
	"fmt"
)

// Store is the loaded feature matrix with its index-aligned identifiers.
type Store struct {
	Matrix Matrix
	IDs    []string
}

// FromRows builds a Store from in-memory rows, enforcing the same checks as
// file loading: equal row counts, rectangular finite rows, unique non-empty ids.
func FromRows(ids []string, rows [][]float64) (*Store, error) {
	m, err := NewMatrix(rows)
	if err != nil {
		return nil, NewDataLoadError("build matrix", "", err)
	}
	if err := checkIDs(ids, m.Rows()); err != nil {
		return nil, NewDataLoadError("build ids", "", err)
	}
	return &Store{Matrix: m, IDs: append([]string(nil), ids...)}, nil
}

func checkIDs(ids []string, rows int) error {
	if len(ids) != rows {
		return fmt.Errorf("row count mismatch: %d ids for %d matrix rows", len(ids), rows)
	}
	seen := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("empty id at row %d", i)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate id %q at rows %d and %d", id, prev, i)
		}
		seen[id] = i
	}
	return nil
}
