// Package vector holds the numeric plumbing shared by the loader, the indexes
// and the catalog:
//   - Euclidean distance helpers over float64 vectors
//   - Embedding encoding (BLOB) for SQLite storage
//   - A compact little-endian matrix format for feature files
package vector
