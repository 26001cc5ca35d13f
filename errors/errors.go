package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrValidation    = fmt.Errorf("validation error")
	ErrDuplicateRsvp = fmt.Errorf("duplicate rsvp")
	ErrNotFound      = fmt.Errorf("not found")
	ErrStore         = fmt.Errorf("store error")
	ErrTxnContention = fmt.Errorf("transaction contention")
)

// StoreError carries an infrastructure failure (timeout, capacity, I/O).
// It matches ErrStore with errors.Is and keeps the cause for logging.
type StoreError struct {
	Op    string
	Cause error
}

func NewStoreError(op string, cause error) *StoreError {
	return &StoreError{Op: op, Cause: cause}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStore, e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// IsStoreError reports whether err is or wraps a StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return stderrors.As(err, &storeErr)
}

// ValidationError lists the request fields that were missing or invalid.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	switch {
	case len(e.Missing) > 0 && len(e.Invalid) > 0:
		return fmt.Sprintf("%s: missing %v, invalid %v", ErrValidation, e.Missing, e.Invalid)
	case len(e.Missing) > 0:
		return fmt.Sprintf("%s: missing %v", ErrValidation, e.Missing)
	default:
		return fmt.Sprintf("%s: invalid %v", ErrValidation, e.Invalid)
	}
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Is and As mirror the standard library so callers only import this package.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
