package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset indicates the source parsed but held no values.
var ErrEmptyDataset = errors.New("empty dataset")

// ErrUnsupportedFormat indicates an extension or document shape no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// LoadError reports which source and format failed to load.
type LoadError struct {
	Path   string
	Format string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("load %s %q: %v", e.Format, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(path, format string, err error) *LoadError {
	return &LoadError{Path: path, Format: format, Err: err}
}
