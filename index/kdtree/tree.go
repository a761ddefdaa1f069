package kdtree

import (
	"math"
	"sort"

	"github.com/viant/reco/index"
	"github.com/viant/reco/vector"
)

// Index is an immutable kd-tree over a fixed point set.
type Index struct {
	points   [][]float64
	dim      int
	leafSize int
	root     *node
	depth    int
}

type node struct {
	axis  int
	split float64
	left  *node
	right *node
	rows  []int // leaf bucket; nil for inner nodes
}

// New returns an empty kd-tree.
func New(opts ...Option) *Index {
	i := &Index{leafSize: DefaultLeafSize}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Build constructs the tree. Points are copied.
func (i *Index) Build(points [][]float64) error {
	dim, err := index.CheckPoints(points)
	if err != nil {
		return err
	}
	i.dim = dim
	i.points = make([][]float64, len(points))
	for j, p := range points {
		i.points[j] = append([]float64(nil), p...)
	}
	rows := make([]int, len(points))
	for j := range rows {
		rows[j] = j
	}
	i.depth = 0
	i.root = i.build(rows, 1)
	return nil
}

func (i *Index) build(rows []int, depth int) *node {
	if depth > i.depth {
		i.depth = depth
	}
	if len(rows) <= i.leafSize {
		return &node{rows: rows}
	}
	axis, spread := i.widestAxis(rows)
	if spread == 0 {
		// every point in the bucket is identical
		return &node{rows: rows}
	}
	sort.Slice(rows, func(a, b int) bool {
		va, vb := i.points[rows[a]][axis], i.points[rows[b]][axis]
		if va != vb {
			return va < vb
		}
		return rows[a] < rows[b]
	})
	mid := len(rows) / 2
	// read before recursing, the halves are re-sorted in place on other axes
	split := i.points[rows[mid]][axis]
	left := i.build(rows[:mid], depth+1)
	right := i.build(rows[mid:], depth+1)
	return &node{axis: axis, split: split, left: left, right: right}
}

func (i *Index) widestAxis(rows []int) (int, float64) {
	best, bestSpread := 0, -1.0
	for d := 0; d < i.dim; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range rows {
			v := i.points[r][d]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi-lo > bestSpread {
			best, bestSpread = d, hi-lo
		}
	}
	return best, bestSpread
}

// Query returns the k nearest points.
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
	i.search(i.root, query, candidates)
	return candidates.Sorted(), nil
}

func (i *Index) search(n *node, query []float64, c *index.Candidates) {
	if n.rows != nil {
		for _, r := range n.rows {
			c.Offer(r, vector.SquaredL2(query, i.points[r]))
		}
		return
	}
	diff := query[n.axis] - n.split
	near, far := n.right, n.left
	if diff < 0 {
		near, far = n.left, n.right
	}
	i.search(near, query, c)
	// equality keeps the far side so ties resolve by row
	if diff*diff <= c.Worst() {
		i.search(far, query, c)
	}
}

// Len returns the number of points.
func (i *Index) Len() int { return len(i.points) }

// Depth returns the height of the tree.
func (i *Index) Depth() int { return i.depth }

var _ index.Index = (*Index)(nil)
