package models

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmitInFlight is returned when a create/save is attempted while a
	// previous one on the same pipeline has not settled yet.
	ErrSubmitInFlight = errors.New("a submit is already in progress")

	// ErrNotImplemented marks operations the application exposes but does not
	// implement (customer edit and delete).
	ErrNotImplemented = errors.New("not implemented")
)

// ValidationError reports a required field that is missing or blank. The write
// is never attempted.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing or blank", e.Field)
}

// DuplicateError reports an integrity-guard rejection: a category or product
// with the same name already exists in the cached snapshot.
type DuplicateError struct {
	Entity string
	Name   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Name)
}

// ReferenceError reports a product creation naming a category that does not
// exist in the cached snapshot.
type ReferenceError struct {
	Entity string
	Name   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %q does not exist", e.Entity, e.Name)
}

// RemoteOperationError wraps a failed store call. It is surfaced to the caller
// as-is; there is no automatic retry.
type RemoteOperationError struct {
	Op         string
	Collection string
	Err        error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("store %s on %q failed: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}
