package kdtree

// DefaultLeafSize is the bucket size below which nodes stop splitting.
const DefaultLeafSize = 8

// Option configures the kd-tree.
type Option func(*Index)

// WithLeafSize sets the leaf bucket size; values below 1 are ignored.
func WithLeafSize(n int) Option {
	return func(i *Index) {
		if n >= 1 {
			i.leafSize = n
		}
	}
}
