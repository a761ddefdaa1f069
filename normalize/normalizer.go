package normalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/viant/reco/embedding"
)

var (
	// ErrDegenerateRange reports a constant-valued dimension.
	ErrDegenerateRange = errors.New("normalize: degenerate range")
	// ErrDimension reports a point whose length differs from the fitted dimension.
	ErrDimension = errors.New("normalize: dimension mismatch")
	// ErrExternalRange reports xmax <= xmin.
	ErrExternalRange = errors.New("normalize: invalid external range")
)

// Bounds holds per-dimension Min, Max and Range = Max - Min.
type Bounds struct {
	Min   []float64
	Max   []float64
	Range []float64
}

func newBounds(dim int) Bounds {
	return Bounds{Min: make([]float64, dim), Max: make([]float64, dim), Range: make([]float64, dim)}
}

// Normalizer is the fitted, immutable mapping between raw, internal and
// external coordinates.
type Normalizer struct {
	opts options
	dim  int
	// lo/hi are clamp limits; nil when clamping is off.
	lo, hi   []float64
	raw      Bounds
	scale    []float64
	internal Bounds
}

// Fit derives bounds from m. The matrix is not modified.
func Fit(m embedding.Matrix, opts ...Option) (*Normalizer, error) {
	o := newOptions(opts)
	if !(o.xmax > o.xmin) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrExternalRange, o.xmin, o.xmax)
	}
	dim := m.Dim()
	if m.Rows() == 0 || dim == 0 {
		return nil, fmt.Errorf("normalize: empty matrix")
	}
	n := &Normalizer{opts: o, dim: dim, raw: newBounds(dim), scale: make([]float64, dim)}
	if o.policy == PolicyClamp {
		n.lo, n.hi = clampLimits(m, o.clampK)
	}

	for d := 0; d < dim; d++ {
		n.raw.Min[d] = math.Inf(1)
		n.raw.Max[d] = math.Inf(-1)
	}
	for i := 0; i < m.Rows(); i++ {
		for d, v := range m.Row(i) {
			v = n.clamp(d, v)
			n.raw.Min[d] = math.Min(n.raw.Min[d], v)
			n.raw.Max[d] = math.Max(n.raw.Max[d], v)
		}
	}
	widest := 0.0
	for d := 0; d < dim; d++ {
		n.raw.Range[d] = n.raw.Max[d] - n.raw.Min[d]
		if !(n.raw.Range[d] > 0) {
			return nil, fmt.Errorf("%w: dimension %d is constant (%v)", ErrDegenerateRange, d, n.raw.Min[d])
		}
		widest = math.Max(widest, n.raw.Range[d])
	}
	for d := 0; d < dim; d++ {
		if o.scaling == ScaleProportional {
			n.scale[d] = widest
		} else {
			n.scale[d] = n.raw.Range[d]
		}
	}

	// Internal bounds are measured on the transformed data, not derived
	// analytically, so Map/Unmap agree with the points the index holds.
	n.internal = newBounds(dim)
	for d := 0; d < dim; d++ {
		n.internal.Min[d] = math.Inf(1)
		n.internal.Max[d] = math.Inf(-1)
	}
	for i := 0; i < m.Rows(); i++ {
		for d, v := range m.Row(i) {
			u := n.transform(d, v)
			n.internal.Min[d] = math.Min(n.internal.Min[d], u)
			n.internal.Max[d] = math.Max(n.internal.Max[d], u)
		}
	}
	for d := 0; d < dim; d++ {
		n.internal.Range[d] = n.internal.Max[d] - n.internal.Min[d]
		if !(n.internal.Range[d] > 0) {
			return nil, fmt.Errorf("%w: dimension %d collapsed after scaling", ErrDegenerateRange, d)
		}
	}
	return n, nil
}

// clampLimits returns mean ± k·stddev per column (population stddev).
func clampLimits(m embedding.Matrix, k float64) (lo, hi []float64) {
	dim, rows := m.Dim(), float64(m.Rows())
	lo, hi = make([]float64, dim), make([]float64, dim)
	for d := 0; d < dim; d++ {
		var mean float64
		for i := 0; i < m.Rows(); i++ {
			mean += m.At(i, d)
		}
		mean /= rows
		var ss float64
		for i := 0; i < m.Rows(); i++ {
			diff := m.At(i, d) - mean
			ss += diff * diff
		}
		sigma := math.Sqrt(ss / rows)
		lo[d], hi[d] = mean-k*sigma, mean+k*sigma
	}
	return lo, hi
}

func (n *Normalizer) clamp(d int, v float64) float64 {
	if n.lo == nil {
		return v
	}
	return math.Min(math.Max(v, n.lo[d]), n.hi[d])
}

func (n *Normalizer) transform(d int, v float64) float64 {
	return (n.clamp(d, v) - n.raw.Min[d]) / n.scale[d]
}

// Dim returns the fitted dimensionality.
func (n *Normalizer) Dim() int { return n.dim }

// RawBounds returns the post-clamp bounds of the raw data.
func (n *Normalizer) RawBounds() Bounds { return n.raw.clone() }

// InternalBounds returns the bounds of the normalized data.
func (n *Normalizer) InternalBounds() Bounds { return n.internal.clone() }

// ClampLimits returns the clip limits, or nil slices when clamping is off.
func (n *Normalizer) ClampLimits() (lo, hi []float64) {
	if n.lo == nil {
		return nil, nil
	}
	return append([]float64(nil), n.lo...), append([]float64(nil), n.hi...)
}

// Transform returns the normalized copy of m, one slice per row.
func (n *Normalizer) Transform(m embedding.Matrix) ([][]float64, error) {
	if m.Dim() != n.dim {
		return nil, fmt.Errorf("%w: matrix has %d columns, want %d", ErrDimension, m.Dim(), n.dim)
	}
	out := make([][]float64, m.Rows())
	for i := range out {
		row := m.Row(i)
		u := make([]float64, n.dim)
		for d, v := range row {
			u[d] = n.transform(d, v)
		}
		out[i] = u
	}
	return out, nil
}

// Map converts an external-space point into internal coordinates:
// Umin + (x - xmin)·Urange/(xmax - xmin).
func (n *Normalizer) Map(x []float64) ([]float64, error) {
	if len(x) != n.dim {
		return nil, fmt.Errorf("%w: point has %d values, want %d", ErrDimension, len(x), n.dim)
	}
	width := n.opts.xmax - n.opts.xmin
	u := make([]float64, n.dim)
	for d, v := range x {
		u[d] = n.internal.Min[d] + (v-n.opts.xmin)*n.internal.Range[d]/width
	}
	return u, nil
}

// Unmap converts an internal point back to external coordinates:
// xmin + (u - Umin)·(xmax - xmin)/Urange.
func (n *Normalizer) Unmap(u []float64) ([]float64, error) {
	if len(u) != n.dim {
		return nil, fmt.Errorf("%w: point has %d values, want %d", ErrDimension, len(u), n.dim)
	}
	width := n.opts.xmax - n.opts.xmin
	x := make([]float64, n.dim)
	for d, v := range u {
		x[d] = n.opts.xmin + (v-n.internal.Min[d])*width/n.internal.Range[d]
	}
	return x, nil
}

func (b Bounds) clone() Bounds {
	return Bounds{
		Min:   append([]float64(nil), b.Min...),
		Max:   append([]float64(nil), b.Max...),
		Range: append([]float64(nil), b.Range...),
	}
}
