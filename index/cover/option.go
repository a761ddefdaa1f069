package cover

// Search selects the traversal used for queries.
type Search int

const (
	// SearchDepthFirst visits children nearest-first, recursively.
	SearchDepthFirst Search = iota
	// SearchBestFirst expands nodes from a priority queue keyed by lower bound.
	SearchBestFirst
)

// Option configures the cover index.
type Option func(*Index)

// WithBase sets the cover-tree base; values <= 1 keep the default.
func WithBase(base float64) Option {
	return func(i *Index) {
		if base > 1 {
			i.base = base
		}
	}
}

// WithSearch selects the query traversal.
func WithSearch(s Search) Option { return func(i *Index) { i.search = s } }
