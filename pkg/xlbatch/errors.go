package xlbatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedSpec indicates an extraction spec missing required keys.
	ErrMalformedSpec = errors.New("malformed extraction spec")
	// ErrExtractionFailed indicates an extraction function returned an error.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrUnreadableWorkbook indicates a file that could not be opened as a workbook.
	ErrUnreadableWorkbook = errors.New("unreadable workbook")
	// ErrMissingSheet indicates a resolved sheet that the workbook cannot provide.
	ErrMissingSheet = errors.New("missing sheet")
	// ErrUnsupportedFunction indicates a directive naming an unknown function.
	ErrUnsupportedFunction = errors.New("unsupported function")
)

// FileError reports a failure while processing one file.
type FileError struct {
	Path     string
	Sheet    string
	Function string
	Err      error
}

func (e *FileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Path)
	if e.Sheet != "" {
		fmt.Fprintf(&b, " sheet %q", e.Sheet)
	}
	if e.Function != "" {
		fmt.Fprintf(&b, " (%s)", e.Function)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, sheet, function string, err error) *FileError {
	return &FileError{
		Path:     path,
		Sheet:    sheet,
		Function: function,
		Err:      err,
	}
}

// specError builds an ErrMalformedSpec for entry index (0-based).
func specError(index int, format string, args ...any) error {
	return fmt.Errorf("%w: entry %d: %s", ErrMalformedSpec, index+1, fmt.Sprintf(format, args...))
}
