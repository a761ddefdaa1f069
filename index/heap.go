package index

import (
	"container/heap"
	"math"
	"sort"
)

// Candidates is a bounded max-heap keeping the k best neighbours seen so far.
// Distances are stored squared while searching; Sorted takes the root.
type Candidates struct {
	k     int
	items candidateHeap
}

// NewCandidates returns an empty heap with capacity k.
func NewCandidates(k int) *Candidates {
	return &Candidates{k: k, items: make(candidateHeap, 0, k)}
}

// Full reports whether k candidates are held.
func (c *Candidates) Full() bool { return len(c.items) >= c.k }

// Worst returns the current k-th squared distance, +Inf until full.
func (c *Candidates) Worst() float64 {
	if !c.Full() {
		return math.Inf(1)
	}
	return c.items[0].Distance
}

// Offer considers a point at squared distance d2.
func (c *Candidates) Offer(row int, d2 float64) {
	n := Neighbor{Row: row, Distance: d2}
	if !c.Full() {
		heap.Push(&c.items, n)
		return
	}
	if Less(n, c.items[0]) {
		c.items[0] = n
		heap.Fix(&c.items, 0)
	}
}

// Sorted drains the heap into ascending order with Euclidean distances.
func (c *Candidates) Sorted() []Neighbor {
	out := make([]Neighbor, len(c.items))
	copy(out, c.items)
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	for i := range out {
		out[i].Distance = math.Sqrt(out[i].Distance)
	}
	return out
}

// candidateHeap keeps the worst candidate at the root.
type candidateHeap []Neighbor

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return Less(h[j], h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
