package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResult is returned when an analysis step needs at least one row.
	ErrEmptyResult = errors.New("query returned no results, cannot perform analysis")
	// ErrNotFound marks an unknown metric or entity in the URL path.
	ErrNotFound = errors.New("resource not found")
)

// ReasonCode identifies which query policy rule rejected a query.
type ReasonCode string

const (
	ReasonTooShort           ReasonCode = "query_too_short"
	ReasonTooLong            ReasonCode = "query_too_long"
	ReasonNotSelect          ReasonCode = "not_select"
	ReasonForbiddenKeyword   ReasonCode = "forbidden_keyword"
	ReasonMultipleStatements ReasonCode = "multiple_statements"
	ReasonInvalidLimit       ReasonCode = "invalid_limit"
	ReasonInvalidParameter   ReasonCode = "invalid_parameter"
)

// ValidationError is a client-facing rejection; Message is returned verbatim.
type ValidationError struct {
	Reason  ReasonCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(reason ReasonCode, format string, args ...any) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// DatabaseError wraps a failure reported by the database driver.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	if e.Op == "" {
		return "database error: " + e.Err.Error()
	}
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// Detail is the driver message surfaced to clients.
func (e *DatabaseError) Detail() string {
	return "Database error: " + e.Err.Error()
}
