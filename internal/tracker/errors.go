package tracker

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fivehundred/internal/ledger"
)

var (
	// ErrEmptyName is returned when a custom food has no name.
	ErrEmptyName = errors.New("name is required")
	// ErrInvalidNumber is returned for input that is not a finite number.
	ErrInvalidNumber = errors.New("not a valid number")
	// ErrNoSelection is returned when adding a measured food without one.
	ErrNoSelection = errors.New("no food selected")
	// ErrIndexOutOfRange is returned by edit and remove for a bad index.
	ErrIndexOutOfRange = ledger.ErrIndexOutOfRange
	// ErrProfileIncomplete is returned when onboarding input is missing or invalid.
	ErrProfileIncomplete = errors.New("profile incomplete")
	// ErrInvalidDate is returned for a date not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
	// ErrOutOfRange is returned for numbers outside the accepted range.
	ErrOutOfRange = errors.New("out of range")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
