package recommender

import (
	"fmt"
	"strings"

	"github.com/viant/reco/normalize"
)

// Points selects the coordinate space of points returned by Recommend.
type Points int

const (
	// PointsExternal unmaps results into the external range.
	PointsExternal Points = iota
	// PointsInternal returns the normalized coordinates the index holds.
	PointsInternal
)

// ParsePoints accepts "external" or "internal".
func ParsePoints(s string) (Points, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "external":
		return PointsExternal, nil
	case "internal", "normalized":
		return PointsInternal, nil
	default:
		return 0, fmt.Errorf("recommender: unknown points space %q", s)
	}
}

type options struct {
	kind      Kind
	points    Points
	normalize []normalize.Option
}

// Option configures New.
type Option func(*options)

// WithIndexKind selects the spatial index implementation.
func WithIndexKind(kind Kind) Option { return func(o *options) { o.kind = kind } }

// WithRecommendPoints selects the space of points returned by Recommend.
func WithRecommendPoints(p Points) Option { return func(o *options) { o.points = p } }

// WithNormalize forwards options to normalize.Fit.
func WithNormalize(opts ...normalize.Option) Option {
	return func(o *options) { o.normalize = append(o.normalize, opts...) }
}
