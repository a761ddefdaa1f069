package bruteforce

import (
	"github.com/viant/reco/index"
	"github.com/viant/reco/vector"
)

// Index is a simple brute-force Euclidean index.
type Index struct {
	points [][]float64
	dim    int
}

// New returns an empty index.
func New() *Index { return &Index{} }

// Build copies the points.
func (i *Index) Build(points [][]float64) error {
	dim, err := index.CheckPoints(points)
	if err != nil {
		return err
	}
	i.points = make([][]float64, len(points))
	for j, p := range points {
		i.points[j] = append([]float64(nil), p...)
	}
	i.dim = dim
	return nil
}

// Query returns the k nearest points by scanning all of them.
func (i *Index) Query(query []float64, k int) ([]index.Neighbor, error) {
	if err := index.CheckQuery(query, i.dim); err != nil {
		return nil, err
	}
	if err := index.CheckK(k); err != nil {
		return nil, err
	}
	if k > len(i.points) {
		k = len(i.points)
	}
	candidates := index.NewCandidates(k)
	for row, p := range i.points {
		candidates.Offer(row, vector.SquaredL2(query, p))
	}
	return candidates.Sorted(), nil
}

// Len returns the number of points.
func (i *Index) Len() int { return len(i.points) }

var _ index.Index = (*Index)(nil)
