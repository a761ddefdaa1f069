// Package kdtree implements a static kd-tree for exact Euclidean kNN. Nodes
// split at the median of the dimension with the widest spread; leaves hold
// small buckets that are scanned linearly.
package kdtree
