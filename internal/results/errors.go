package results

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation indicates that results lack required fields.
	ErrValidation = errors.New("results: validation failed")

	// ErrSelection indicates that a filter requested values not present in the results.
	ErrSelection = errors.New("results: selection failed")

	// ErrAlreadyCleaned indicates that the results have already been cleaned.
	ErrAlreadyCleaned = errors.New("results: already cleaned")
)

// ValidationError is the error returned when results lack required fields.
type ValidationError struct {
	// Missing contains the missing fields.
	Missing []string

	// Reason is an OPTIONAL explanation.
	Reason string
}

var _ error = &ValidationError{}

// Error implements error.
func (err *ValidationError) Error() string {
	if len(err.Missing) <= 0 {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), err.Reason)
	}
	return fmt.Sprintf("%s: missing fields: %s", ErrValidation.Error(), strings.Join(err.Missing, ", "))
}

// Unwrap allows using errors.Is with [ErrValidation].
func (err *ValidationError) Unwrap() error {
	return ErrValidation
}

// SelectionError is the error returned when filtering by values that are
// not present in the results.
type SelectionError struct {
	// Field is the field we were filtering by.
	Field string

	// Missing contains the missing values.
	Missing []string
}

var _ error = &SelectionError{}

// Error implements error.
func (err *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s not found: %s", ErrSelection.Error(), err.Field, strings.Join(err.Missing, ", "))
}

// Unwrap allows using errors.Is with [ErrSelection].
func (err *SelectionError) Unwrap() error {
	return ErrSelection
}
