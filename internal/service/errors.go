package service

import (
	"errors"
	"strings"
)

var (
	// ErrEmptySelection is returned when checkout or payment is attempted
	// without any selected seats.
	ErrEmptySelection = errors.New("no seats selected")
	// ErrMatchRequired is returned when checkout has no match context.
	ErrMatchRequired = errors.New("match details required")
	// ErrInvalidPayment is returned when the payment form fails validation.
	ErrInvalidPayment = errors.New("invalid payment details")
	// ErrPaymentInProgress is returned when a checkout is submitted again
	// while its first payment is still processing.
	ErrPaymentInProgress = errors.New("payment already processing")
	// ErrSessionNotFound indicates an unknown or expired booking session.
	ErrSessionNotFound = errors.New("booking session not found")
)

// FieldError names a single payment form field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports a rejected checkout or payment.  Err is one of
// the sentinel errors above so callers can use errors.Is.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return e.Err.Error() + ": " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return e.Err }
