package ledger

import (
	"errors"

	"spendwise/internal/money"
)

var (
	// ErrMissingFields means at least one required form field was blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidAmount means the amount is not a positive two-decimal number.
	ErrInvalidAmount = money.ErrInvalidAmount
	// ErrInvalidDate means the date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNotFound covers both missing records and records owned by someone else.
	ErrNotFound = errors.New("not found or access denied")
)

// ValidationError carries a user-facing message for a rejected submission.
// Kind is one of ErrMissingFields, ErrInvalidAmount or ErrInvalidDate.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

var (
	errMissing = &ValidationError{Kind: ErrMissingFields, Message: "All required fields must be filled."}
	errAmount  = &ValidationError{Kind: ErrInvalidAmount, Message: "Please enter a valid amount."}
	errDate    = &ValidationError{Kind: ErrInvalidDate, Message: "Please enter a valid date."}
)
