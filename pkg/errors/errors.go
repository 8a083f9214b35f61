package errors

import (
	"fmt"
)

// ParseError represents a stylesheet or theme parsing failure with optional
// line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SelectorError reports a malformed selector. Malformed selectors are
// non-fatal during rendering; a rule carrying one simply never matches.
type SelectorError struct {
	Selector string
	Message  string
}

// NewSelectorError constructs a SelectorError.
func NewSelectorError(selector, message string) error {
	return &SelectorError{Selector: selector, Message: message}
}

func (e *SelectorError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("selector error: %q: %s", e.Selector, e.Message)
}

// ValidationError captures theme validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
