package vector

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodeDecodeEmbedding_RoundTrip(t *testing.T) {
	orig := []float64{0.0, 1.5, -2.25, 3.75, 1e-12}

	b, err := EncodeEmbedding(orig)
	if err != nil {
		t.Fatalf("EncodeEmbedding failed: %v", err)
	}

	decoded, err := DecodeEmbedding(b)
	if err != nil {
		t.Fatalf("DecodeEmbedding failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeDecodeEmbedding_Empty(t *testing.T) {
	b, err := EncodeEmbedding(nil)
	if err != nil {
		t.Fatalf("EncodeEmbedding(nil) failed: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}

	vec, err := DecodeEmbedding(nil)
	if err != nil {
		t.Fatalf("DecodeEmbedding(nil) failed: %v", err)
	}
	if len(vec) != 0 {
		t.Fatalf("expected empty slice for nil blob, got len=%d", len(vec))
	}
	if _, err := DecodeEmbedding([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for odd blob length")
	}
}

func TestEncodeDecodeMatrix(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}, {-5, 6.5}}
	data, err := EncodeMatrix(rows)
	if err != nil {
		t.Fatalf("EncodeMatrix failed: %v", err)
	}
	got, err := DecodeMatrix(data)
	if err != nil {
		t.Fatalf("DecodeMatrix failed: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("rows = %d, want %d", len(got), len(rows))
	}
	for i := range rows {
		for j := range rows[i] {
			if got[i][j] != rows[i][j] {
				t.Fatalf("got[%d][%d] = %v, want %v", i, j, got[i][j], rows[i][j])
			}
		}
	}
	if _, err := DecodeMatrix(data[:len(data)-1]); err == nil {
		t.Fatalf("expected truncated matrix error")
	}
	if _, err := EncodeMatrix([][]float64{{1, 2}, {3}}); err == nil {
		t.Fatalf("expected ragged matrix error")
	}
}

func TestDecodeMatrix_HeaderChecks(t *testing.T) {
	header := func(dim, n uint32, payload int) []byte {
		data := make([]byte, 8+payload)
		binary.LittleEndian.PutUint32(data[0:4], dim)
		binary.LittleEndian.PutUint32(data[4:8], n)
		return data
	}
	var testCases = []struct {
		description string
		data        []byte
	}{
		{description: "huge header, no payload", data: header(1<<31, 1<<30, 0)},
		{description: "header product wraps", data: header(1<<31, 1<<31, 0)},
		{description: "max header", data: header(math.MaxUint32, math.MaxUint32, 8)},
		{description: "zero dim with rows", data: header(0, 3, 0)},
		{description: "partial value", data: header(1, 1, 4)},
		{description: "extra payload", data: header(1, 1, 16)},
	}
	for _, testCase := range testCases {
		if _, err := DecodeMatrix(testCase.data); err == nil {
			t.Fatalf("%s: expected error", testCase.description)
		}
	}
	rows, err := DecodeMatrix(header(2, 0, 0))
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty matrix = %v, %v", rows, err)
	}
}
