// Package errors provides error handling for strand.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll

	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the record store. The request boundary maps each to a
// distinct user-visible status; in particular ErrUnparseable and
// ErrConflictingFilters are never collapsed into the same signal.
// Use these with errors.Is() for type-safe error checking, and wrap them with
// errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("record not found")

	// ErrDuplicate indicates a record with the same fingerprint already exists
	ErrDuplicate = New("record already exists")

	// ErrInvalidRequest indicates the request was malformed or invalid
	ErrInvalidRequest = New("invalid request")

	// ErrInvalidCriteria indicates a malformed structured filter field.
	// Wrappers name the offending field.
	ErrInvalidCriteria = New("invalid filter criteria")

	// ErrUnparseable indicates no recognized pattern matched a query phrase
	ErrUnparseable = New("unparseable query phrase")

	// ErrConflictingFilters indicates derived criteria violate min_length <= max_length
	ErrConflictingFilters = New("conflicting length filters")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsDuplicateError checks if an error is or wraps ErrDuplicate
func IsDuplicateError(err error) bool {
	return err != nil && Is(err, ErrDuplicate)
}

// IsInvalidRequestError checks if an error is or wraps ErrInvalidRequest
func IsInvalidRequestError(err error) bool {
	return err != nil && Is(err, ErrInvalidRequest)
}

// IsInvalidCriteriaError checks if an error is or wraps ErrInvalidCriteria
func IsInvalidCriteriaError(err error) bool {
	return err != nil && Is(err, ErrInvalidCriteria)
}

// IsUnparseableError checks if an error is or wraps ErrUnparseable
func IsUnparseableError(err error) bool {
	return err != nil && Is(err, ErrUnparseable)
}

// IsConflictingFiltersError checks if an error is or wraps ErrConflictingFilters
func IsConflictingFiltersError(err error) bool {
	return err != nil && Is(err, ErrConflictingFilters)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidRequestError creates an invalid-request error with a formatted message
func NewInvalidRequestError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidRequest, Newf(format, args...).Error())
}

// NewInvalidCriteriaError creates an invalid-criteria error naming the offending field
func NewInvalidCriteriaError(field string, format string, args ...interface{}) error {
	return Wrapf(Wrap(ErrInvalidCriteria, Newf(format, args...).Error()), "field %q", field)
}
