package embedding

import (
	"fmt"

	"github.com/viant/reco/vector"
)

// Matrix is an N×D row-major feature matrix. Row order is significant.
type Matrix struct {
	rows int
	dim  int
	data []float64
}

// NewMatrix validates and packs rows into a Matrix. Rows are copied.
func NewMatrix(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, fmt.Errorf("matrix has no rows")
	}
	dim := len(rows[0])
	if dim == 0 {
		return Matrix{}, fmt.Errorf("matrix has no columns")
	}
	data := make([]float64, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return Matrix{}, fmt.Errorf("row %d has %d values, want %d", i, len(row), dim)
		}
		if !vector.Finite(row) {
			return Matrix{}, fmt.Errorf("row %d contains a non-finite value", i)
		}
		data = append(data, row...)
	}
	return Matrix{rows: len(rows), dim: dim, data: data}, nil
}

// Rows returns N.
func (m Matrix) Rows() int { return m.rows }

// Dim returns D.
func (m Matrix) Dim() int { return m.dim }

// Row returns row i. The slice aliases the matrix and must not be modified.
func (m Matrix) Row(i int) []float64 {
	return m.data[i*m.dim : (i+1)*m.dim : (i+1)*m.dim]
}

// At returns the value at row i, column d.
func (m Matrix) At(i, d int) float64 { return m.data[i*m.dim+d] }

// Column copies column d.
func (m Matrix) Column(d int) []float64 {
	out := make([]float64, m.rows)
	for i := range out {
		out[i] = m.data[i*m.dim+d]
	}
	return out
}

// RowSlices copies the matrix into independent row slices.
func (m Matrix) RowSlices() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = append([]float64(nil), m.Row(i)...)
	}
	return out
}
