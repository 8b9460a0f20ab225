package trace

import (
	"errors"
	"fmt"
)

// Domain errors for analysis operations.
var (
	// ErrMalformedInput indicates an export missing expected keys or with the wrong shape.
	ErrMalformedInput = errors.New("trace: malformed input")

	// ErrDegenerateTrajectory indicates too few samples, non-monotonic timestamps
	// or zero-length segments.
	ErrDegenerateTrajectory = errors.New("trace: degenerate trajectory")

	// ErrPatternMismatch indicates a filename that does not encode the grouping key.
	ErrPatternMismatch = errors.New("trace: filename does not match key pattern")

	// ErrZeroMotion indicates a trace whose peak speed is zero.
	ErrZeroMotion = errors.New("trace: robot never moved")

	// ErrDimensionMismatch indicates paired slices of different lengths.
	ErrDimensionMismatch = errors.New("trace: dimension mismatch")
)

// FileError wraps an error with the export file and robot it came from.
type FileError struct {
	Path    string
	Robot   string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Robot == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s: robot %s: %v", e.Path, e.Robot, e.Wrapped)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}
