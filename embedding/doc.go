// Package embedding loads the per-artist feature matrix and its parallel
// identifier list. Files are read once at startup; every failure surfaces as a
// *DataLoadError so the service refuses to become ready.
//
// Supported matrix formats are JSON (array of rows), CSV (one row per line)
// and the little-endian binary layout written by vector.EncodeMatrix.
// Identifier lists are JSON string arrays or plain text, one id per line.
package embedding
