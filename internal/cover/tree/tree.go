package tree

// The insertion scheme is adapted from github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"math"
	"sort"

	"github.com/viant/reco/index"
)

// minLevel stops descent for long chains of nearly identical points.
const minLevel = -1000

// pruneSlack absorbs rounding in the triangle-inequality bound.
const pruneSlack = 1e-12

// Tree is a cover tree for Euclidean kNN. Insert is build-time only and not
// safe for concurrent use; after Freeze the tree is read-only and queries may
// run concurrently without locking.
type Tree struct {
	root   *Node
	base   float64
	size   int32
	frozen bool
}

// NewTree constructs a cover tree with the provided base.
func NewTree(base float64) *Tree {
	if base <= 1 {
		base = 1.3
	}
	return &Tree{base: base}
}

// Len returns the number of inserted points.
func (t *Tree) Len() int { return int(t.size) }

// Insert adds a point and returns its index. It panics after Freeze.
func (t *Tree) Insert(point *Point) int32 {
	if t.frozen {
		panic("tree: insert after freeze")
	}
	point.index = t.size
	t.size++
	if t.root == nil {
		node := NewNode(point, 0, t.base)
		t.root = &node
		return point.index
	}
	t.insert(point)
	return point.index
}

func (t *Tree) insert(point *Point) {
	d := float64(BuildDistance(point, t.root.point))
	if d >= t.root.baseLevel {
		// promote the new point to a root that covers the old one
		level := t.root.level + 1
		for d >= math.Pow(t.base, float64(level)) {
			level++
		}
		newRoot := NewNode(point, level, t.base)
		newRoot.children = append(newRoot.children, *t.root)
		t.root = &newRoot
		return
	}
	node := t.root
	for {
		if sameValues(point.Values, node.point.Values) {
			node.dups = append(node.dups, point.index)
			return
		}
		next := -1
		nextDist := float32(math.MaxFloat32)
		if node.level > minLevel {
			cover := float32(math.Pow(t.base, float64(node.level-1)))
			for i := range node.children {
				cd := BuildDistance(point, node.children[i].point)
				if cd < cover && cd < nextDist {
					next, nextDist = i, cd
				}
			}
		}
		if next < 0 {
			node.children = append(node.children, NewNode(point, node.level-1, t.base))
			return
		}
		node = &node.children[next]
	}
}

// Freeze computes per-node subtree radii and makes the tree read-only.
func (t *Tree) Freeze() {
	if t.frozen {
		return
	}
	if t.root != nil {
		t.computeRadius(t.root)
	}
	t.frozen = true
}

func (t *Tree) computeRadius(n *Node) float64 {
	maxR := 0.0
	for i := range n.children {
		child := &n.children[i]
		cr := t.computeRadius(child)
		if d := distance(n.point, child.point) + cr; d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	return maxR
}

// KNearestNeighbors runs a depth-first kNN search. Results are ordered by
// distance, then insertion index. The tree must be frozen.
func (t *Tree) KNearestNeighbors(point *Point, k int) []index.Neighbor {
	if t.root == nil || k <= 0 || !t.frozen {
		return nil
	}
	c := index.NewCandidates(k)
	t.kNearestNeighbors(t.root, point, c)
	return c.Sorted()
}

func (t *Tree) kNearestNeighbors(node *Node, point *Point, c *index.Candidates) {
	node.offer(point, c)
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float64
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: distance(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if cd.dist-cd.child.radius > math.Sqrt(c.Worst())+pruneSlack {
			continue
		}
		t.kNearestNeighbors(cd.child, point, c)
	}
}

// KNearestNeighborsBestFirst performs a best-first search with a node priority
// queue ordered by lower bound. The tree must be frozen.
func (t *Tree) KNearestNeighborsBestFirst(point *Point, k int) []index.Neighbor {
	if t.root == nil || k <= 0 || !t.frozen {
		return nil
	}
	c := index.NewCandidates(k)
	pq := &nodeQueue{}
	heap.Init(pq)
	rootDist := distance(point, t.root.point)
	heap.Push(pq, nodeItem{node: t.root, lb: rootDist - t.root.radius})

	for pq.Len() > 0 {
		top := heap.Pop(pq).(nodeItem)
		if top.lb > math.Sqrt(c.Worst())+pruneSlack {
			break
		}
		top.node.offer(point, c)
		for i := range top.node.children {
			child := &top.node.children[i]
			cd := distance(point, child.point)
			lb := cd - child.radius
			if lb > math.Sqrt(c.Worst())+pruneSlack {
				continue
			}
			heap.Push(pq, nodeItem{node: child, lb: lb})
		}
	}
	return c.Sorted()
}

type nodeItem struct {
	node *Node
	lb   float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].lb < q[j].lb }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
