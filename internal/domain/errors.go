package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed input before any storage access.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced row that does not exist. Inside the
// placement transaction it aborts the whole order.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// ConflictError reports a unique-key or foreign-key violation surfaced by
// the store.
type ConflictError struct {
	Constraint string
	Message    string
}

func (e ConflictError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("constraint %s violated: %s", e.Constraint, e.Message)
	}
	return e.Message
}

// StorageError reports a connection or transport failure. It is fatal to
// the current operation and never retried by this layer.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}
