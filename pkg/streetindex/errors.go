package streetindex

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates an input file extension with no importer.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ImportError represents an error while reading labels from an input file.
type ImportError struct {
	Path   string
	Format string // "csv", "tsv", "json", "xlsx-cells", "xlsx-shapes"
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error in %q (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(path, format string, err error) *ImportError {
	return &ImportError{
		Path:   path,
		Format: format,
		Err:    err,
	}
}
