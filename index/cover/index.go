package cover

import (
	"github.com/viant/reco/index"
	"github.com/viant/reco/internal/cover/tree"
)

// DefaultBase is the cover-tree expansion base.
const DefaultBase = 1.3

// Index implements a Euclidean kNN index on a cover tree.
type Index struct {
	base   float64
	search Search
	dim    int
	tree   *tree.Tree
}

// New returns an empty cover index.
func New(opts ...Option) *Index {
	i := &Index{base: DefaultBase}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build inserts every point in row order and freezes the tree.
func (i *Index) Build(points [][]float64) error {
	dim, err := index.CheckPoints(points)
	if err != nil {
		return err
	}
	t := tree.NewTree(i.base)
	for _, p := range points {
		t.Insert(tree.NewPoint(append([]float64(nil), p...)))
	}
	t.Freeze()
	i.tree, i.dim = t, dim
	return nil
}

// Query returns the k nearest points.
func (i *Index) Query(query []float64, k int) ([]index.Neighbor, error) {
	if err := index.CheckQuery(query, i.dim); err != nil {
		return nil, err
	}
	if err := index.CheckK(k); err != nil {
		return nil, err
	}
	if k > i.tree.Len() {
		k = i.tree.Len()
	}
	p := tree.NewPoint(query)
	if i.search == SearchBestFirst {
		return i.tree.KNearestNeighborsBestFirst(p, k), nil
	}
	return i.tree.KNearestNeighbors(p, k), nil
}

// Len returns the number of points.
func (i *Index) Len() int {
	if i.tree == nil {
		return 0
	}
	return i.tree.Len()
}

var _ index.Index = (*Index)(nil)
