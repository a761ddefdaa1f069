package recommender

import (
	"fmt"

	"github.com/viant/reco/embedding"
	"github.com/viant/reco/index"
	"github.com/viant/reco/normalize"
	"github.com/viant/reco/vector"
)

// Result holds parallel slices for k neighbours, nearest first.
type Result struct {
	Distances []float64
	IDs       []string
	Points    [][]float64
}

// Len returns the number of neighbours.
func (r Result) Len() int { return len(r.IDs) }

// Recommender is the immutable artist embedding index.
type Recommender struct {
	ids    []string
	rows   map[string]int
	points [][]float64
	norm   *normalize.Normalizer
	index  index.Index
	kind   Kind
	space  Points
}

// New fits the normalizer, transforms the matrix and builds the index.
// Construction failures are reported as *embedding.DataLoadError.
func New(store *embedding.Store, opts ...Option) (*Recommender, error) {
	if store == nil {
		return nil, embedding.NewDataLoadError("build recommender", "", fmt.Errorf("store is nil"))
	}
	o := options{kind: KindAuto, points: PointsExternal}
	for _, opt := range opts {
		opt(&o)
	}
	m := store.Matrix
	if len(store.IDs) != m.Rows() {
		return nil, embedding.NewDataLoadError("build recommender", "", fmt.Errorf("row count mismatch: %d ids for %d matrix rows", len(store.IDs), m.Rows()))
	}
	norm, err := normalize.Fit(m, o.normalize...)
	if err != nil {
		return nil, embedding.NewDataLoadError("normalize", "", err)
	}
	points, err := norm.Transform(m)
	if err != nil {
		return nil, embedding.NewDataLoadError("normalize", "", err)
	}
	rows := make(map[string]int, len(store.IDs))
	for i, id := range store.IDs {
		if _, ok := rows[id]; ok {
			return nil, embedding.NewDataLoadError("build recommender", "", fmt.Errorf("duplicate id %q", id))
		}
		rows[id] = i
	}
	kind := o.kind.resolve(m.Rows(), m.Dim())
	idx := newIndex(kind)
	if err := idx.Build(points); err != nil {
		return nil, embedding.NewDataLoadError("build index", "", err)
	}
	return &Recommender{
		ids:    append([]string(nil), store.IDs...),
		rows:   rows,
		points: points,
		norm:   norm,
		index:  idx,
		kind:   kind,
		space:  o.points,
	}, nil
}

// Len returns the number of artists.
func (r *Recommender) Len() int { return len(r.ids) }

// Dim returns the embedding dimensionality.
func (r *Recommender) Dim() int { return r.norm.Dim() }

// Kind returns the index implementation in use.
func (r *Recommender) Kind() Kind { return r.kind }

// Has reports whether id is in the store.
func (r *Recommender) Has(id string) bool {
	_, ok := r.rows[id]
	return ok
}

// IDs returns a copy of the artist ids in row order.
func (r *Recommender) IDs() []string { return append([]string(nil), r.ids...) }

func (r *Recommender) row(id string) (int, error) {
	row, ok := r.rows[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return row, nil
}

// Locate returns the artist's coordinates in the external space.
func (r *Recommender) Locate(id string) ([]float64, error) {
	row, err := r.row(id)
	if err != nil {
		return nil, err
	}
	return r.norm.Unmap(r.points[row])
}

// Recommend returns the k artists nearest to id, excluding id itself.
func (r *Recommender) Recommend(id string, k int) (Result, error) {
	row, err := r.row(id)
	if err != nil {
		return Result{}, err
	}
	if k < 1 || k > len(r.ids)-1 {
		return Result{}, fmt.Errorf("%w: k=%d outside [1, %d]", ErrInvalidArgument, k, len(r.ids)-1)
	}
	// k+1 because the artist always matches itself; with duplicates of the
	// same point it may be missing from the head, hence the truncation.
	neighbors, err := r.index.Query(r.points[row], k+1)
	if err != nil {
		return Result{}, err
	}
	kept := neighbors[:0]
	for _, n := range neighbors {
		if n.Row != row {
			kept = append(kept, n)
		}
	}
	if len(kept) > k {
		kept = kept[:k]
	}
	return r.result(kept, r.space)
}

// SearchNear returns the k artists nearest to an external-space point.
// Returned points are internal coordinates.
func (r *Recommender) SearchNear(point []float64, k int) (Result, error) {
	if k < 1 || k > len(r.ids) {
		return Result{}, fmt.Errorf("%w: k=%d outside [1, %d]", ErrInvalidArgument, k, len(r.ids))
	}
	if len(point) != r.Dim() {
		return Result{}, fmt.Errorf("%w: point has %d values, want %d", ErrInvalidArgument, len(point), r.Dim())
	}
	if !vector.Finite(point) {
		return Result{}, fmt.Errorf("%w: point is not finite", ErrInvalidArgument)
	}
	u, err := r.norm.Map(point)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	neighbors, err := r.index.Query(u, k)
	if err != nil {
		return Result{}, err
	}
	return r.result(neighbors, PointsInternal)
}

// Map converts an external point to internal coordinates.
func (r *Recommender) Map(point []float64) ([]float64, error) {
	u, err := r.norm.Map(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return u, nil
}

// Unmap converts an internal point, such as one returned by SearchNear, to
// external coordinates.
func (r *Recommender) Unmap(point []float64) ([]float64, error) {
	x, err := r.norm.Unmap(point)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return x, nil
}

func (r *Recommender) result(neighbors []index.Neighbor, space Points) (Result, error) {
	res := Result{
		Distances: make([]float64, len(neighbors)),
		IDs:       make([]string, len(neighbors)),
		Points:    make([][]float64, len(neighbors)),
	}
	for i, n := range neighbors {
		res.Distances[i] = n.Distance
		res.IDs[i] = r.ids[n.Row]
		if space == PointsExternal {
			p, err := r.norm.Unmap(r.points[n.Row])
			if err != nil {
				return Result{}, err
			}
			res.Points[i] = p
			continue
		}
		res.Points[i] = append([]float64(nil), r.points[n.Row]...)
	}
	return res, nil
}
