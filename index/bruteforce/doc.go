// Package bruteforce provides a Euclidean kNN index that answers queries by
// scanning every point. It is the reference the tree indexes are tested
// against and the fallback for tiny datasets.
package bruteforce
