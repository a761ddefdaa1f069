// Package coverart looks up album cover thumbnails for an artist through the
// Discogs database search API. Successful responses are kept in a bounded
// Cache (in-process LRU or Redis with a TTL) and remote calls go through a
// circuit breaker so a failing upstream is not hammered by every request.
package coverart
