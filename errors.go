package colorsplit

import "errors"

// Error categories. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	// ErrInvalidArgument reports an unrecognized transform kind, mode,
	// format or worker count. Nothing has been read or written.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIOFailure reports that the input could not be read or decoded.
	ErrIOFailure = errors.New("input failure")

	// ErrWorkerFailure reports that a parallel worker failed. No output
	// raster is produced.
	ErrWorkerFailure = errors.New("worker failure")

	// ErrWriteFailure reports that an output file could not be written.
	// No output file is left behind.
	ErrWriteFailure = errors.New("write failure")
)

// OpError records a failed operation together with its category and cause.
//
// Both Kind and Err are visible to errors.Is and errors.As, so callers can
// test for the category (ErrWriteFailure) or the cause (fs.ErrPermission).
type OpError struct {
	// Op is the operation that failed, e.g. "load" or "save".
	Op string

	// Target is the file path or argument value the operation acted on.
	// It may be empty.
	Target string

	// Kind is one of the Err* categories above.
	Kind error

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	s := "colorsplit: " + e.Op
	if e.Target != "" {
		s += " " + e.Target
	}
	return s + ": " + e.Err.Error()
}

// Unwrap returns the category and the cause.
func (e *OpError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func opError(op, target string, kind, err error) *OpError {
	return &OpError{Op: op, Target: target, Kind: kind, Err: err}
}
