package recon

import "fmt"

// FormatError marks a file whose content matches no known schema. Files with
// this error are reported as skipped, not as failures.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return e.Msg
}

// NewFormatError creates a FormatError.
func NewFormatError(format string, a ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, a...)}
}

// ParseError marks a cell or row value that cannot be interpreted. It aborts
// the transaction of the enclosing file.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError without an underlying cause.
func NewParseError(format string, a ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, a...)}
}

// PersistenceError marks a write rejected by the store. It aborts the
// enclosing transaction; a connectivity loss additionally aborts the batch.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
