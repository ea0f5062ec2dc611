package models

import (
	"errors"
	"fmt"
)

// ErrMissingColumns is wrapped by a LoadError when the header lacks required columns.
var ErrMissingColumns = errors.New("missing required columns")

// LoadError reports a source that is missing, unreadable or not tabular.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FormatError reports a value that violates a fixed input format.
type FormatError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("row %d: column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
