package tree

// Point represents a vector in the cover tree. Values keeps full precision for
// scoring; Vector is the float32 copy used by the build-time distance kernel.
type Point struct {
	index  int32
	Values []float64
	Vector []float32
}

// Index returns the insertion index, or -1 for a point not in a tree.
func (p *Point) Index() int32 {
	if p == nil {
		return -1
	}
	return p.index
}

// NewPoint constructs a point for the given vector.
func NewPoint(values []float64) *Point {
	vec := make([]float32, len(values))
	for i, v := range values {
		vec[i] = float32(v)
	}
	return &Point{index: -1, Values: values, Vector: vec}
}
