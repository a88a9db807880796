package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nfrund/regdesk/internal/domain"
)

// Common database errors that can be checked using errors.Is()
var (
	// ErrInvalidInput is returned when invalid input is provided to a method.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrQueryFailed is returned when a statement reports a non-OK status.
	ErrQueryFailed = errors.New("query execution failed")
)

// DBError represents a database error with additional context.
type DBError struct {
	// The underlying error that was returned by the database driver.
	err error

	// Additional context about where the error occurred.
	context string

	// The query that was being executed when the error occurred.
	query string
}

// NewDBError creates a new DBError with the given error and context.
// The context should describe what operation was being performed when the error occurred.
func NewDBError(err error, context string) *DBError {
	return &DBError{
		err:     err,
		context: context,
	}
}

// WithQuery adds query information to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// Error returns the error message.
func (e *DBError) Error() string {
	msg := e.context
	if e.query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, strings.TrimSpace(e.query))
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DBError) Unwrap() error {
	return e.err
}

// isUniqueViolation reports whether err comes from a unique index refusing
// a write. SurrealDB reports these as "Database index `x` already contains".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domain.ErrAlreadyRegistered) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already contains") ||
		strings.Contains(msg, "violates unique constraint")
}
