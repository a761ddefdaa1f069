// Package index defines a minimal abstraction for static Euclidean kNN
// indexes and selects an implementation by name. Implementations in this
// module are a kd-tree (default), a cover tree and a brute-force baseline.
// All of them return identical orderings: ascending distance, then row.
package index
