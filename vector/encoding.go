package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeEmbedding encodes a slice of float64 values into a BLOB representation
// suitable for storage in SQLite. The encoding is a little-endian sequence of
// IEEE 754 float64 values without a length prefix; the length is derived from
// the BLOB size on decode.
func EncodeEmbedding(vec []float64) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, len(vec)*8)
	for i, v := range vec {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b, nil
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding back into a
// slice of float64 values.
func DecodeEmbedding(b []byte) ([]float64, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 8)", len(b))
	}
	n := len(b) / 8
	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return vec, nil
}

// EncodeMatrix stores: dim(uint32), n(uint32), then n*dim float64 values in
// row order.
func EncodeMatrix(rows [][]float64) ([]byte, error) {
	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}
	out := make([]byte, 8, 8+len(rows)*dim*8)
	binary.LittleEndian.PutUint32(out[0:4], uint32(dim))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(rows)))
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("vector: row %d has %d values, want %d", i, len(row), dim)
		}
		for _, v := range row {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
		}
	}
	return out, nil
}

// DecodeMatrix restores rows written by EncodeMatrix. The header is checked
// against the payload size before anything is allocated.
func DecodeMatrix(data []byte) ([][]float64, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("vector: invalid matrix data")
	}
	dim := uint64(binary.LittleEndian.Uint32(data[0:4]))
	n := uint64(binary.LittleEndian.Uint32(data[4:8]))
	if n > 0 && dim == 0 {
		return nil, fmt.Errorf("vector: matrix header has %d rows of dimension 0", n)
	}
	payload := uint64(len(data) - 8)
	// n*dim fits in uint64, n*dim*8 may not
	if payload%8 != 0 || payload/8 != n*dim {
		return nil, fmt.Errorf("vector: matrix size mismatch: %d payload bytes for %d x %d values", payload, n, dim)
	}
	values := make([]float64, n*dim)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8+i*8:]))
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = values[uint64(i)*dim : uint64(i+1)*dim : uint64(i+1)*dim]
	}
	return rows, nil
}
