package normalize

// Policy selects how raw bounds are derived.
type Policy int

const (
	// PolicyMinMax uses the plain column min/max.
	PolicyMinMax Policy = iota
	// PolicyClamp clips to mean ± k·stddev before taking min/max.
	PolicyClamp
)

// Scaling selects how columns are divided once shifted to zero.
type Scaling int

const (
	// ScalePerDimension divides each column by its own range (unit cube).
	ScalePerDimension Scaling = iota
	// ScaleProportional divides every column by the largest range, keeping
	// relative spread between dimensions.
	ScaleProportional
)

// DefaultClampK is the outlier clamp width in standard deviations.
const DefaultClampK = 25.0

type options struct {
	policy  Policy
	clampK  float64
	scaling Scaling
	xmin    float64
	xmax    float64
}

// Option customises Fit.
type Option func(*options)

// WithClamp enables outlier clamping at k standard deviations. k <= 0 selects
// DefaultClampK.
func WithClamp(k float64) Option {
	return func(o *options) {
		if k <= 0 {
			k = DefaultClampK
		}
		o.policy = PolicyClamp
		o.clampK = k
	}
}

// WithPolicy sets the bounds policy explicitly.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
		if p == PolicyClamp && o.clampK <= 0 {
			o.clampK = DefaultClampK
		}
	}
}

// WithScaling selects per-dimension or proportional scaling.
func WithScaling(s Scaling) Option { return func(o *options) { o.scaling = s } }

// WithExternalRange sets the [xmin, xmax] range callers use for coordinates.
func WithExternalRange(xmin, xmax float64) Option {
	return func(o *options) { o.xmin, o.xmax = xmin, xmax }
}

func newOptions(opts []Option) options {
	o := options{policy: PolicyMinMax, scaling: ScalePerDimension, xmin: 0, xmax: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
