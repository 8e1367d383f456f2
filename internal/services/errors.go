package services

import "fmt"

// ValidationError reports bad input, e.g. an empty or non-positive price set.
// It is returned before any database write is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that no product exists with the given id.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ID)
}

// ConflictError reports a duplicate product name rejected by the unique
// constraint.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product name '%s' already exists", e.Name)
}

// PersistenceError wraps any other failure from the store. The enclosing
// transaction has already been rolled back when it is returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
