// Package catalog persists what the service knows about artists in SQLite:
// display names, the co-occurrence weights users build up by submitting
// favorites, and optionally the embedding rows themselves so a deployment can
// boot from the database instead of matrix files.
//
// Tables:
//   - artist(aid, display): one row per normalized artist key
//   - artist_link(aid1, aid2, w): undirected pair weights, aid1 < aid2
//   - artist_embedding(pos, aid, embedding): raw feature rows as BLOBs
//
// The store uses the vec_l2 scalar registered by package engine for the
// SQL-side nearest neighbour query.
package catalog
