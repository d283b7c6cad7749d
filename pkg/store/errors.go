package store

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound matches any *NotFoundError through errors.Is.
var ErrNotFound = errors.New("record not found")

// NotFoundError is returned when an update targets an id that is not present.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("List %s to see the ids currently held.", e.Resource)
}

// ConflictError is returned when seed data repeats an id.
type ConflictError struct {
	Resource string
	ID       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.ID)
}

// StatusCode returns the HTTP status code for this error.
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// UnknownFieldError is returned when a search names a field the store does not have.
type UnknownFieldError struct {
	Resource string
	Field    string
	Known    []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s has no searchable field %q", e.Resource, e.Field)
}

// StatusCode returns the HTTP status code for this error.
func (e *UnknownFieldError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *UnknownFieldError) Hint() string {
	return fmt.Sprintf("Searchable fields for %s: %s.", e.Resource, strings.Join(e.Known, ", "))
}

// ExpressionError is returned when a filter expression fails to compile or run.
type ExpressionError struct {
	Expression string
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("filter %q: %v", e.Expression, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for this error.
func (e *ExpressionError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ExpressionError) Hint() string {
	return `Filters are boolean expressions over record fields, e.g. available && publishedYear < 1950.`
}

// StatusCodeError is an interface for errors that have an HTTP status code.
type StatusCodeError interface {
	error
	StatusCode() int
}

// HintError is an interface for errors that provide resolution hints.
type HintError interface {
	error
	Hint() string
}
