// Package apperror holds the business failures returned by the booking and
// notification services. Callers match them with errors.As; anything else is
// an infrastructure fault.
package apperror

import (
	"errors"
	"fmt"

	"labBooker/internal/models"
)

type ValidationCode string

const (
	CodeMissing   ValidationCode = "missing"
	CodeInvalid   ValidationCode = "invalid"
	CodeOrdering  ValidationCode = "ordering"
	CodeInPast    ValidationCode = "in_past"
	CodeTooLong   ValidationCode = "too_long"
	CodeTooShort  ValidationCode = "too_short"
	CodeAttendees ValidationCode = "attendees"
)

type ValidationError struct {
	Field  string
	Code   ValidationCode
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validation(field string, code ValidationCode, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Code: code, Reason: fmt.Sprintf(format, args...)}
}

type ConflictError struct {
	Reason    string
	Conflicts []models.BookingSummary
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (%d conflicting booking(s))", e.Reason, len(e.Conflicts))
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

type StateCode string

const (
	StateAlreadyConfirmed  StateCode = "already_confirmed"
	StateAlreadyCancelled  StateCode = "already_cancelled"
	StateBookingCancelled  StateCode = "booking_cancelled"
	StateIllegalTransition StateCode = "illegal_transition"
)

type StateError struct {
	Code   StateCode
	Reason string
}

func (e *StateError) Error() string {
	return e.Reason
}

func State(code StateCode, format string, args ...any) *StateError {
	return &StateError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// IsBusiness reports whether err is one of the typed business failures.
func IsBusiness(err error) bool {
	var (
		validationErr *ValidationError
		conflictErr   *ConflictError
		notFoundErr   *NotFoundError
		authErr       *AuthorizationError
		stateErr      *StateError
	)

	return errors.As(err, &validationErr) ||
		errors.As(err, &conflictErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &authErr) ||
		errors.As(err, &stateErr)
}
