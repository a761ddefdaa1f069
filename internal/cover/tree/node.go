package tree

import (
	"math"

	"github.com/viant/reco/index"
)

// Node represents a cover-tree node.
type Node struct {
	level     int32
	baseLevel float64
	point     *Point
	dups      []int32 // rows of exact copies of point
	children  []Node
	radius    float64
}

// NewNode constructs a node for the provided point and level.
func NewNode(point *Point, level int32, base float64) Node {
	return Node{
		level:     level,
		baseLevel: math.Pow(base, float64(level)),
		point:     point,
	}
}

func (n *Node) offer(point *Point, c *index.Candidates) {
	d := squaredDistance(point, n.point)
	c.Offer(int(n.point.index), d)
	for _, row := range n.dups {
		c.Offer(int(row), d)
	}
}

func sameValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
