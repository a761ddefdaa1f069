// Package recommender answers artist proximity queries over a normalized
// embedding space.
//
// A Recommender is built once from an embedding.Store: the matrix is fitted by
// a normalize.Normalizer, transformed into internal coordinates and indexed.
// After New returns nothing is written again, so a single instance serves
// concurrent callers without locking.
//
// Coordinates crossing the API are in the external range ([0,1] per dimension
// unless configured otherwise):
//   - Locate returns external coordinates.
//   - Recommend returns external coordinates by default; WithRecommendPoints
//     switches it to internal coordinates.
//   - SearchNear takes an external point and returns internal coordinates;
//     use Unmap to convert them.
package recommender
