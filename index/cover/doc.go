// Package cover adapts the internal cover tree to the index.Index API. The
// tree is built once, frozen, and then queried without locks.
package cover
