package embedding

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/viant/reco/vector"
)

// Format names an on-disk encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatBinary Format = "bin"
	FormatText   Format = "txt"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	case ".bin", ".vec":
		return FormatBinary
	case ".txt", ".lst":
		return FormatText
	default:
		return FormatAuto
	}
}

// Load reads the feature matrix and the identifier list from disk.
func Load(matrixPath, idsPath string) (*Store, error) {
	rows, err := readFile(matrixPath, func(r io.Reader) ([][]float64, error) {
		return DecodeMatrix(r, FormatOf(matrixPath))
	})
	if err != nil {
		return nil, NewDataLoadError("load matrix", matrixPath, err)
	}
	ids, err := readFile(idsPath, func(r io.Reader) ([]string, error) {
		return DecodeIDs(r, FormatOf(idsPath))
	})
	if err != nil {
		return nil, NewDataLoadError("load ids", idsPath, err)
	}
	return FromRows(ids, rows)
}

// Decode reads a Store from already opened sources.
func Decode(matrix io.Reader, matrixFormat Format, ids io.Reader, idsFormat Format) (*Store, error) {
	rows, err := DecodeMatrix(matrix, matrixFormat)
	if err != nil {
		return nil, NewDataLoadError("decode matrix", "", err)
	}
	list, err := DecodeIDs(ids, idsFormat)
	if err != nil {
		return nil, NewDataLoadError("decode ids", "", err)
	}
	return FromRows(list, rows)
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return decode(bufio.NewReader(f))
}

// DecodeMatrix parses rows in the given format. FormatAuto is treated as JSON.
func DecodeMatrix(r io.Reader, format Format) ([][]float64, error) {
	switch format {
	case FormatJSON, FormatAuto:
		var raw [][]*float64
		if err := decodeJSON(r, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON matrix: %w", err)
		}
		rows := make([][]float64, len(raw))
		for i, values := range raw {
			if values == nil {
				return nil, fmt.Errorf("invalid JSON matrix: row %d is null", i)
			}
			rows[i] = make([]float64, len(values))
			for j, v := range values {
				if v == nil {
					return nil, fmt.Errorf("invalid JSON matrix: row %d column %d is null", i, j)
				}
				rows[i][j] = *v
			}
		}
		return rows, nil
	case FormatCSV:
		return decodeCSV(r)
	case FormatBinary:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return vector.DecodeMatrix(data)
	default:
		return nil, fmt.Errorf("unsupported matrix format %q", format)
	}
}

func decodeCSV(r io.Reader) ([][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 0
	var rows [][]float64
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV matrix: %w", err)
		}
		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", len(rows), j, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DecodeIDs parses an identifier list. FormatAuto is treated as JSON.
func DecodeIDs(r io.Reader, format Format) ([]string, error) {
	switch format {
	case FormatJSON, FormatAuto:
		var raw []*string
		if err := decodeJSON(r, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON id list: %w", err)
		}
		ids := make([]string, len(raw))
		for i, id := range raw {
			if id == nil {
				return nil, fmt.Errorf("invalid JSON id list: entry %d is null", i)
			}
			ids[i] = *id
		}
		return ids, nil
	case FormatText:
		var ids []string
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ids = append(ids, strings.TrimSpace(scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		for len(ids) > 0 && ids[len(ids)-1] == "" {
			ids = ids[:len(ids)-1]
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("unsupported id list format %q", format)
	}
}

// decodeJSON reads exactly one JSON value from r.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("unexpected data after the top-level value")
	}
	return nil
}
