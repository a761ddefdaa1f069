// Package normalize rescales a raw feature matrix into a bounded coordinate
// space and maps points between that internal space and the external range
// ([0,1] by default) that API callers see.
//
// Fitting optionally clips each column to mean ± k·stddev before taking
// min/max, so a few extreme rows cannot compress everyone else's resolution.
package normalize
