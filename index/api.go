package index

// Neighbor is a single kNN hit: the row of the point in the build input and its
// Euclidean distance to the query.
type Neighbor struct {
	Row      int
	Distance float64
}

// Index defines a static Euclidean kNN index over a fixed point set.
// Implementations are immutable after Build and safe for concurrent Query.
type Index interface {
	// Build constructs the index over points. Rows keep their position as
	// Neighbor.Row; all points must share one non-zero dimension.
	Build(points [][]float64) error

	// Query returns the min(k, N) nearest points ordered by ascending distance,
	// ties broken by ascending row.
	Query(query []float64, k int) ([]Neighbor, error)

	// Len returns the number of indexed points.
	Len() int
}
