package tree

import (
	"math"

	"github.com/viant/reco/vector"
	"github.com/viant/vec/search"
)

// BuildDistance returns the float32 Euclidean distance used while inserting.
// Placement only affects pruning efficiency, never search results.
func BuildDistance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}

// squaredDistance is the full-precision metric used for scoring.
func squaredDistance(p1, p2 *Point) float64 {
	return vector.SquaredL2(p1.Values, p2.Values)
}

func distance(p1, p2 *Point) float64 {
	return math.Sqrt(squaredDistance(p1, p2))
}
