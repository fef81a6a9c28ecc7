package bom

import "fmt"

// UnsupportedFormatError means neither the file extension nor the byte
// signature matched any extractor. Fatal for the whole session: the
// caller expects exactly the requested number of target results, so a
// target is never silently skipped.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Filename)
}

// ParseError is a document-level failure: the bytes could not be
// decoded as the detected format, or a required column is absent.
// Row-level quantity issues are RowWarnings instead, not ParseErrors.
type ParseError struct {
	Role     Role
	Filename string
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s %q: %s", e.Role, e.Filename, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is a structural precondition violation (empty master,
// too many targets). Surfaced before any comparison work begins.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ComparisonError is a defensive invariant violation inside the
// comparison engine, e.g. a duplicate part number surviving
// normalization. It indicates an implementation bug.
type ComparisonError struct {
	Message string
}

func (e *ComparisonError) Error() string { return e.Message }
