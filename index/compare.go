package index

import (
	"errors"
	"fmt"

	"github.com/viant/reco/vector"
)

var (
	// ErrNotBuilt is returned by Query on an empty index.
	ErrNotBuilt = errors.New("index: not built")
	// ErrDimension is returned for a query or point of the wrong length.
	ErrDimension = errors.New("index: dimension mismatch")
)

// Less orders neighbours by distance, then row.
func Less(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Row < b.Row
}

// CheckPoints validates a build input and returns its dimension.
func CheckPoints(points [][]float64) (int, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("index: no points")
	}
	dim := len(points[0])
	if dim == 0 {
		return 0, fmt.Errorf("%w: zero-length points", ErrDimension)
	}
	for i, p := range points {
		if len(p) != dim {
			return 0, fmt.Errorf("%w: point %d has %d values, want %d", ErrDimension, i, len(p), dim)
		}
		if !vector.Finite(p) {
			return 0, fmt.Errorf("index: point %d is not finite", i)
		}
	}
	return dim, nil
}

// CheckQuery validates a query against the index dimension.
func CheckQuery(query []float64, dim int) error {
	if dim == 0 {
		return ErrNotBuilt
	}
	if len(query) != dim {
		return fmt.Errorf("%w: query has %d values, index has %d", ErrDimension, len(query), dim)
	}
	if !vector.Finite(query) {
		return fmt.Errorf("index: query is not finite")
	}
	return nil
}

// CheckK validates the requested neighbour count.
func CheckK(k int) error {
	if k <= 0 {
		return fmt.Errorf("index: k must be positive, got %d", k)
	}
	return nil
}
