package scenario

import "fmt"

// LoadError describes a failure loading or validating a scenario file.
type LoadError struct {
	// File is the path of the offending file, if known.
	File string

	// Message describes the problem.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	switch {
	case e.File != "" && e.Cause != nil:
		return fmt.Sprintf("scenario %s: %s: %v", e.File, e.Message, e.Cause)
	case e.File != "":
		return fmt.Sprintf("scenario %s: %s", e.File, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("scenario: %s: %v", e.Message, e.Cause)
	default:
		return fmt.Sprintf("scenario: %s", e.Message)
	}
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}
