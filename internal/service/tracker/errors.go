package tracker

import "errors"

// ErrRecordNotFound indicates a row action referenced an id that no longer exists.
var ErrRecordNotFound = errors.New("record not found")

// ErrUnknownAction indicates Dispatch received an action kind with no handler.
var ErrUnknownAction = errors.New("unknown action")

// User facing validation messages.
const (
	msgCheckInput    = "Please check the input values."
	msgFillAll       = "Please fill in all fields."
	msgEnterNumber   = "Please enter a number."
	msgStockNegative = "Stock cannot go below zero."
	msgStockTooLarge = "Stock is too large."
)

// ValidationError carries the message shown to the user when input is rejected.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by rejected user input.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
