package embedding

import (
	"errors"
	"fmt"
)

// ErrDataLoad marks every loader and construction failure.
var ErrDataLoad = errors.New("data load failed")

// DataLoadError describes a missing, malformed or inconsistent input.
type DataLoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("embedding: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("embedding: %s: %v", e.Op, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDataLoad) match any DataLoadError.
func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// NewDataLoadError wraps err for the given operation.
func NewDataLoadError(op, path string, err error) error {
	return &DataLoadError{Op: op, Path: path, Err: err}
}
